package model

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSparseGridGetSetRemove(t *testing.T) {
	g := NewSparseGrid()
	c := Coord{3, -4}

	assert.Equal(t, Absent, g.Get(c))

	g.Set(c, Alive)
	assert.Equal(t, Alive, g.Get(c))
	assert.Equal(t, 1, g.LiveCount())

	g.Set(c, Tombstoned)
	assert.Equal(t, Tombstoned, g.Get(c))
	assert.Equal(t, 0, g.LiveCount())
	assert.Equal(t, 1, g.Len())

	g.Remove(c)
	assert.Equal(t, Absent, g.Get(c))
	assert.Equal(t, 0, g.Len())

	// removing a missing entry is a no-op
	g.Remove(c)
	assert.Equal(t, 0, g.Len())
}

func TestSparseGridSetAbsentRemoves(t *testing.T) {
	g := NewSparseGrid()
	g.Set(Coord{0, 0}, Alive)
	g.Set(Coord{0, 0}, Absent)

	assert.Equal(t, 0, g.Len())
	assert.Equal(t, 0, g.LiveCount())
}

func TestSparseGridLiveCountOnOverwrite(t *testing.T) {
	g := NewSparseGrid()
	g.Set(Coord{0, 0}, Alive)
	g.Set(Coord{0, 0}, Alive)
	assert.Equal(t, 1, g.LiveCount())

	g.Set(Coord{1, 0}, Tombstoned)
	g.Set(Coord{1, 0}, Alive)
	assert.Equal(t, 2, g.LiveCount())
}

func TestSparseGridCoordinateViews(t *testing.T) {
	g := NewSparseGrid()
	g.Set(Coord{0, 0}, Alive)
	g.Set(Coord{1, 1}, Alive)
	g.Set(Coord{5, 5}, Tombstoned)

	assert.Equal(t, NewCoordSet(Coord{0, 0}, Coord{1, 1}), g.LiveCoordinates())
	assert.Equal(t, NewCoordSet(Coord{5, 5}), g.TombstonedCoordinates())
	assert.Equal(t, NewCoordSet(Coord{0, 0}, Coord{1, 1}, Coord{5, 5}), g.TouchedCoordinates())
}

func TestSparseGridBoundingBox(t *testing.T) {
	g := NewSparseGrid()
	assert.Equal(t, Box{}, g.BoundingBox())

	g.Set(Coord{-2, 3}, Alive)
	assert.Equal(t, Box{MinX: -2, MinY: 3, MaxX: -2, MaxY: 3}, g.BoundingBox())

	g.Set(Coord{4, -1}, Tombstoned)
	assert.Equal(t, Box{MinX: -2, MinY: -1, MaxX: 4, MaxY: 3}, g.BoundingBox())
}

func TestSparseGridNeighbors(t *testing.T) {
	g := NewSparseGrid()
	n := g.Neighbors(Coord{0, 0})

	set := NewCoordSet(n[:]...)
	require.Equal(t, 8, set.Len())
	assert.False(t, set.Contains(Coord{0, 0}))
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			if dx == 0 && dy == 0 {
				continue
			}
			assert.True(t, set.Contains(Coord{dx, dy}), "missing (%d,%d)", dx, dy)
		}
	}
}

func TestSparseGridFrontierEmpty(t *testing.T) {
	g := NewSparseGrid()
	assert.Empty(t, g.Frontier())

	// a store holding only tombstones has no alive neighbors to offer
	g.Set(Coord{0, 0}, Tombstoned)
	assert.Empty(t, g.Frontier())
}

func TestSparseGridFrontierSingleCell(t *testing.T) {
	g := NewSparseGrid()
	g.Set(Coord{5, 5}, Alive)

	f := g.Frontier()
	assert.Equal(t, 8, f.Len())
	assert.False(t, f.Contains(Coord{5, 5}))
	assert.True(t, f.Contains(Coord{4, 4}))
	assert.True(t, f.Contains(Coord{6, 6}))
}

func TestSparseGridFrontierExcludesTouched(t *testing.T) {
	g := NewSparseGrid()
	g.Set(Coord{0, 0}, Alive)
	g.Set(Coord{1, 0}, Alive)
	g.Set(Coord{0, 1}, Tombstoned)

	f := g.Frontier()
	assert.False(t, f.Contains(Coord{0, 0}))
	assert.False(t, f.Contains(Coord{1, 0}))
	assert.False(t, f.Contains(Coord{0, 1}))
	// 3x4 block around the pair minus the 3 touched cells
	assert.Equal(t, 9, f.Len())

	box := g.BoundingBox().Pad(1)
	for c := range f {
		assert.True(t, box.Contains(c))
	}
}

func TestSparseGridPurgeTombstones(t *testing.T) {
	g := NewSparseGrid()
	g.Set(Coord{0, 0}, Alive)
	g.Set(Coord{1, 0}, Tombstoned)
	g.Set(Coord{2, 0}, Tombstoned)

	assert.Equal(t, 2, g.purgeTombstones())
	assert.Equal(t, NewCoordSet(Coord{0, 0}), g.TouchedCoordinates())
	assert.Equal(t, 1, g.LiveCount())
}

func TestCoordSetSorted(t *testing.T) {
	s := NewCoordSet(Coord{2, 1}, Coord{-1, 1}, Coord{5, -3})
	assert.Equal(t, []Coord{{5, -3}, {-1, 1}, {2, 1}}, s.Sorted())
}

func TestSparseGridFrontierAtIntLimit(t *testing.T) {
	g := NewSparseGrid()
	g.Set(Coord{math.MaxInt - 1, 0}, Alive)

	f := g.Frontier()
	// the three neighbors in the MaxInt column are not representable as neighborhoods
	assert.Equal(t, 5, f.Len())
	for c := range f {
		assert.Less(t, c.X, math.MaxInt)
	}
	assert.True(t, f.Contains(Coord{math.MaxInt - 2, 0}))
}

func TestBoxPadSaturates(t *testing.T) {
	b := Box{MinX: math.MinInt + 1, MinY: -1, MaxX: math.MaxInt - 1, MaxY: 1}

	assert.Equal(t, Box{MinX: math.MinInt, MinY: -3, MaxX: math.MaxInt, MaxY: 3}, b.Pad(2))
	assert.Equal(t, Box{MinX: 0, MinY: 0, MaxX: 2, MaxY: 2}, Box{MinX: 1, MinY: 1, MaxX: 1, MaxY: 1}.Pad(1))
}

func TestBoxAreaSaturates(t *testing.T) {
	assert.Equal(t, 1, Box{}.Area())
	assert.Equal(t, 12, Box{MinX: -1, MinY: 0, MaxX: 2, MaxY: 2}.Area())
	assert.Equal(t, math.MaxInt, Box{MinX: math.MinInt + 1, MinY: 0, MaxX: math.MaxInt - 1, MaxY: 0}.Area())
	assert.Equal(t, math.MaxInt, Box{MinX: 0, MinY: 0, MaxX: 1 << 40, MaxY: 1 << 40}.Area())
}

func TestBoxCenter(t *testing.T) {
	assert.Equal(t, Coord{1, 0}, Box{MinX: 0, MinY: -1, MaxX: 2, MaxY: 1}.Center())
	assert.Equal(t, Coord{-1, 5}, Box{MinX: -2, MinY: 5, MaxX: 1, MaxY: 6}.Center())
	assert.Equal(t, Coord{-1, 0}, Box{MinX: math.MinInt + 1, MinY: 0, MaxX: math.MaxInt - 1, MaxY: 0}.Center())
}

func TestBoxAround(t *testing.T) {
	assert.Equal(t, Box{MinX: -2, MinY: -1, MaxX: 3, MaxY: 1}, BoxAround(Coord{0, 0}, 6, 3))
	assert.Equal(t, Box{MinX: 5, MinY: 5, MaxX: 5, MaxY: 5}, BoxAround(Coord{5, 5}, 1, 1))

	// shifted inward at the int limits
	assert.Equal(t, Box{MinX: math.MaxInt - 39, MinY: math.MinInt, MaxX: math.MaxInt, MaxY: math.MinInt + 3},
		BoxAround(Coord{math.MaxInt - 1, math.MinInt + 1}, 40, 4))
}
