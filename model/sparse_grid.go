package model

// CellState is the stored state of a coordinate
type CellState uint8

const (
	// Absent means the coordinate has no entry
	Absent CellState = iota
	// Alive means the cell is part of the current population
	Alive
	// Tombstoned marks a cell that died in the most recent turn and is purged on the next one
	Tombstoned
)

func (s CellState) String() string {
	switch s {
	case Alive:
		return "alive"
	case Tombstoned:
		return "tombstoned"
	default:
		return "absent"
	}
}

// SparseGrid stores cell states keyed by coordinate. Only touched cells take memory.
type SparseGrid struct {
	cells map[Coord]CellState
	alive int
}

// NewSparseGrid creates an empty grid
func NewSparseGrid() *SparseGrid {
	return &SparseGrid{cells: make(map[Coord]CellState)}
}

// Get returns the state of c, Absent when there is no entry
func (g *SparseGrid) Get(c Coord) CellState {
	return g.cells[c]
}

// Set inserts or overwrites the entry for c. Setting Absent removes it.
func (g *SparseGrid) Set(c Coord, state CellState) {
	if state == Absent {
		g.Remove(c)
		return
	}
	if g.cells[c] == Alive {
		g.alive--
	}
	g.cells[c] = state
	if state == Alive {
		g.alive++
	}
}

// Remove deletes the entry for c if present
func (g *SparseGrid) Remove(c Coord) {
	state, ok := g.cells[c]
	if !ok {
		return
	}
	if state == Alive {
		g.alive--
	}
	delete(g.cells, c)
}

// Len returns the number of touched coordinates
func (g *SparseGrid) Len() int { return len(g.cells) }

// LiveCount returns the number of alive coordinates
func (g *SparseGrid) LiveCount() int { return g.alive }

// LiveCoordinates returns every alive coordinate
func (g *SparseGrid) LiveCoordinates() CoordSet {
	return g.collect(func(s CellState) bool { return s == Alive }, g.alive)
}

// TombstonedCoordinates returns every coordinate marked dead in the last turn
func (g *SparseGrid) TombstonedCoordinates() CoordSet {
	return g.collect(func(s CellState) bool { return s == Tombstoned }, len(g.cells)-g.alive)
}

// TouchedCoordinates returns every coordinate with an entry
func (g *SparseGrid) TouchedCoordinates() CoordSet {
	return g.collect(func(CellState) bool { return true }, len(g.cells))
}

func (g *SparseGrid) collect(keep func(CellState) bool, size int) CoordSet {
	out := make(CoordSet, size)
	for c, s := range g.cells {
		if keep(s) {
			out[c] = struct{}{}
		}
	}
	return out
}

// BoundingBox returns the tightest box around all touched coordinates, or the zero Box when empty
func (g *SparseGrid) BoundingBox() Box {
	var (
		box   Box
		first = true
	)
	for c := range g.cells {
		if first {
			box = Box{MinX: c.X, MinY: c.Y, MaxX: c.X, MaxY: c.Y}
			first = false
			continue
		}
		box.MinX = min(box.MinX, c.X)
		box.MinY = min(box.MinY, c.Y)
		box.MaxX = max(box.MaxX, c.X)
		box.MaxY = max(box.MaxY, c.Y)
	}
	return box
}

// Neighbors returns the Moore neighborhood of c
func (g *SparseGrid) Neighbors(c Coord) [8]Coord {
	return c.Neighbors()
}

/*
Frontier returns every coordinate without an entry that has at least one alive neighbor,
restricted to the bounding box padded by one cell.

Candidates are generated from the neighborhoods of alive cells rather than by scanning the
padded box, so the cost follows the population and not the box area.

Coordinates with a component equal to math.MinInt or math.MaxInt are never candidates, the same
limit Seed applies. No cell can be born there, so neighborhoods and the padded box never overflow.
*/
func (g *SparseGrid) Frontier() CoordSet {
	out := make(CoordSet)
	if g.alive == 0 {
		return out
	}
	padded := g.BoundingBox().Pad(1)
	for c, s := range g.cells {
		if s != Alive {
			continue
		}
		for _, n := range c.Neighbors() {
			if !n.valid() {
				continue
			}
			if _, touched := g.cells[n]; touched || !padded.Contains(n) {
				continue
			}
			out[n] = struct{}{}
		}
	}
	return out
}

// purgeTombstones removes every Tombstoned entry
func (g *SparseGrid) purgeTombstones() int {
	purged := 0
	for c, s := range g.cells {
		if s == Tombstoned {
			delete(g.cells, c)
			purged++
		}
	}
	return purged
}
