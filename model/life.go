package model

import (
	"crypto/md5"
	"encoding/binary"
	"fmt"
	"log/slog"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/sparse-gol/rules"
)

// ErrInvalidCoordinate is returned by Seed when an input is not a usable integer pair
var ErrInvalidCoordinate = errors.New("invalid coordinate")

// Life runs Conway's Game of Life (B3/S23) over a SparseGrid.
//
// Life is not safe for concurrent use. Advance is the only mutator after Seed and callers must
// not read from Life while an Advance is running.
type Life struct {
	grid       *SparseGrid
	generation int
	pool       *CoordSetPool
	logger     *slog.Logger
}

// Option configures a Life
type Option func(*Life)

// WithLogger sets the logger used for per-turn debug output
func WithLogger(logger *slog.Logger) Option {
	return func(l *Life) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// WithSetPool shares a scratch set pool between several Life instances
func WithSetPool(pool *CoordSetPool) Option {
	return func(l *Life) {
		if pool != nil {
			l.pool = pool
		}
	}
}

// NewLife creates a Life with an empty grid
func NewLife(opts ...Option) *Life {
	l := &Life{
		grid:   NewSparseGrid(),
		pool:   NewCoordSetPool(),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Seed replaces the current state with a fresh grid where every given cell is alive.
// On error the previous state is left untouched.
func (l *Life) Seed(cells []Coord) error {
	for _, c := range cells {
		if !c.valid() {
			return errors.Wrapf(ErrInvalidCoordinate, "[Seed] coordinate out of range: (%d, %d)", c.X, c.Y)
		}
	}

	grid := NewSparseGrid()
	for _, c := range cells {
		grid.Set(c, Alive)
	}
	l.grid = grid
	l.generation = 0

	l.logger.Debug("grid seeded", "cells", grid.LiveCount())
	return nil
}

// SeedPairs seeds the grid from loosely typed pairs, as decoded from pattern files.
// Every element must hold exactly two integers.
func (l *Life) SeedPairs(pairs [][]int) error {
	cells := make([]Coord, 0, len(pairs))
	for i, p := range pairs {
		if len(p) != 2 {
			return errors.Wrapf(ErrInvalidCoordinate, "[SeedPairs] element %d has %d components: %v", i, len(p), p)
		}
		cells = append(cells, Coord{X: p[0], Y: p[1]})
	}
	return l.Seed(cells)
}

// Generation returns the number of turns advanced since the last Seed
func (l *Life) Generation() int { return l.generation }

// LiveCount returns the number of alive cells
func (l *Life) LiveCount() int { return l.grid.LiveCount() }

// LiveCells returns a snapshot of the alive cells
func (l *Life) LiveCells() CoordSet { return l.grid.LiveCoordinates() }

// DeadTouchedCells returns a snapshot of the cells that died in the last turn
func (l *Life) DeadTouchedCells() CoordSet { return l.grid.TombstonedCoordinates() }

// Touched returns the number of stored entries, alive or tombstoned
func (l *Life) Touched() int { return l.grid.Len() }

// Bounds returns the bounding box of the stored entries
func (l *Life) Bounds() Box { return l.grid.BoundingBox() }

// Advance runs the given number of turns. Zero or negative counts do nothing.
func (l *Life) Advance(turns int) {
	for i := 0; i < max(turns, 0); i++ {
		l.step()
	}
}

// step evaluates one generation. Every decision is made against the live snapshot taken
// before the commit, so the update is synchronous.
func (l *Life) step() {
	purged := l.grid.purgeTombstones()

	live := l.grid.LiveCoordinates()
	frontier := l.grid.Frontier()

	births, deaths := l.pool.Get(), l.pool.Get()
	defer l.pool.Put(births)
	defer l.pool.Put(deaths)

	for c := range live {
		if !rules.ApplyConwayRules(countLive(c, live), true) {
			deaths.Add(c)
		}
	}
	for c := range frontier {
		if rules.ApplyConwayRules(countLive(c, live), false) {
			births.Add(c)
		}
	}

	for c := range deaths {
		l.grid.Set(c, Tombstoned)
	}
	for c := range births {
		l.grid.Set(c, Alive)
	}
	l.generation++

	l.logger.Debug("turn evaluated",
		"generation", l.generation,
		"domain", len(live)+len(frontier),
		"born", len(births),
		"died", len(deaths),
		"purged", purged,
		"living", l.grid.LiveCount(),
	)
}

func countLive(c Coord, live CoordSet) (count int) {
	for _, n := range c.Neighbors() {
		if live.Contains(n) {
			count++
		}
	}
	return
}

// Hash returns an MD5 digest of the alive cells, independent of map iteration order
func (l *Life) Hash() string {
	h := md5.New()
	buf := make([]byte, 16)
	for _, c := range l.grid.LiveCoordinates().Sorted() {
		binary.LittleEndian.PutUint64(buf[:8], uint64(c.X))
		binary.LittleEndian.PutUint64(buf[8:], uint64(c.Y))
		h.Write(buf)
	}
	return fmt.Sprintf("%x", h.Sum(nil))
}
