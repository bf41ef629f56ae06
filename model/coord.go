package model

import (
	"math"
	"sort"
)

// Coord identifies one cell of the unbounded grid
type Coord struct {
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
}

// neighborOffsets lists the Moore neighborhood, row by row
var neighborOffsets = [8]Coord{
	{-1, -1}, {0, -1}, {1, -1},
	{-1, 0}, {1, 0},
	{-1, 1}, {0, 1}, {1, 1},
}

// Neighbors returns the 8 cells adjacent to c
func (c Coord) Neighbors() [8]Coord {
	var out [8]Coord
	for i, off := range neighborOffsets {
		out[i] = Coord{X: c.X + off.X, Y: c.Y + off.Y}
	}
	return out
}

// valid reports whether the neighborhood of c can be computed without overflow
func (c Coord) valid() bool {
	return c.X != math.MinInt && c.X != math.MaxInt &&
		c.Y != math.MinInt && c.Y != math.MaxInt
}

// CoordSet is an unordered set of coordinates
type CoordSet map[Coord]struct{}

// NewCoordSet builds a set from the given coordinates
func NewCoordSet(cells ...Coord) CoordSet {
	s := make(CoordSet, len(cells))
	for _, c := range cells {
		s[c] = struct{}{}
	}
	return s
}

// Add inserts c into the set
func (s CoordSet) Add(c Coord) { s[c] = struct{}{} }

// Contains reports whether c is in the set
func (s CoordSet) Contains(c Coord) bool {
	_, ok := s[c]
	return ok
}

// Len returns the number of coordinates in the set
func (s CoordSet) Len() int { return len(s) }

// Sorted returns the coordinates ordered by row, then column
func (s CoordSet) Sorted() []Coord {
	out := make([]Coord, 0, len(s))
	for c := range s {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Y != out[j].Y {
			return out[i].Y < out[j].Y
		}
		return out[i].X < out[j].X
	})
	return out
}

// Box is an axis-aligned rectangle with inclusive bounds
type Box struct {
	MinX int `json:"min_x"`
	MinY int `json:"min_y"`
	MaxX int `json:"max_x"`
	MaxY int `json:"max_y"`
}

// Pad grows the box by n >= 0 cells on every side, clamping at the int limits
func (b Box) Pad(n int) Box {
	return Box{MinX: subSat(b.MinX, n), MinY: subSat(b.MinY, n), MaxX: addSat(b.MaxX, n), MaxY: addSat(b.MaxY, n)}
}

// BoxAround returns a width x height box centred on c, shifted inward where it would pass an
// int limit. width and height must be positive.
func BoxAround(c Coord, width, height int) Box {
	minX := subSat(c.X, (width-1)/2)
	minY := subSat(c.Y, (height-1)/2)
	maxX, maxY := addSat(minX, width-1), addSat(minY, height-1)
	return Box{MinX: subSat(maxX, width-1), MinY: subSat(maxY, height-1), MaxX: maxX, MaxY: maxY}
}

func addSat(v, n int) int {
	if v > math.MaxInt-n {
		return math.MaxInt
	}
	return v + n
}

func subSat(v, n int) int {
	if v < math.MinInt+n {
		return math.MinInt
	}
	return v - n
}

// Contains reports whether c lies inside the box
func (b Box) Contains(c Coord) bool {
	return c.X >= b.MinX && c.X <= b.MaxX && c.Y >= b.MinY && c.Y <= b.MaxY
}

// Area returns the number of cells covered by the box, saturating at math.MaxInt
func (b Box) Area() int {
	w := uint(b.MaxX) - uint(b.MinX) + 1
	h := uint(b.MaxY) - uint(b.MinY) + 1
	if w == 0 || h == 0 || w > math.MaxInt || h > math.MaxInt/w {
		return math.MaxInt
	}
	return int(w * h)
}

// Center returns the middle cell of the box, rounding towards MinX and MinY
func (b Box) Center() Coord {
	return Coord{
		X: int(uint(b.MinX) + (uint(b.MaxX)-uint(b.MinX))/2),
		Y: int(uint(b.MinY) + (uint(b.MaxY)-uint(b.MinY))/2),
	}
}
