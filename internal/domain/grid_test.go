package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGridMarksNonSeats(t *testing.T) {
	g, err := NewGrid(Layout{
		Dimensions: [2]int{5, 4},
		EmptyRows:  []int{1},
		EmptyCols:  []int{2},
		EmptyBoxes: [][4]int{{3, 5, 3, 4}},
		Gaps:       [][2]int{{0, 0}},
	})
	require.NoError(t, err)

	assert.Equal(t, NotASeat, g.At(Coord{X: 0, Y: 1}))
	assert.Equal(t, NotASeat, g.At(Coord{X: 2, Y: 3}))
	assert.Equal(t, NotASeat, g.At(Coord{X: 3, Y: 3}))
	assert.Equal(t, NotASeat, g.At(Coord{X: 4, Y: 3}))
	assert.Equal(t, NotASeat, g.At(Coord{X: 0, Y: 0}))
	assert.Equal(t, Empty, g.At(Coord{X: 1, Y: 0}))

	// 20 cells - row 1 (5) - col 2 on rows 0,2,3 (3) - box (2) - gap (1)
	assert.Equal(t, 9, g.TotalSeats())
	assert.Equal(t, 9, g.Unfilled())
	assert.Len(t, g.EmptyCoords(), 9)
}

func TestNewGridRejectsOutOfRange(t *testing.T) {
	cases := []struct {
		name string
		l    Layout
	}{
		{"zero dims", Layout{Dimensions: [2]int{0, 3}}},
		{"row", Layout{Dimensions: [2]int{3, 3}, EmptyRows: []int{3}}},
		{"col", Layout{Dimensions: [2]int{3, 3}, EmptyCols: []int{-1}}},
		{"box", Layout{Dimensions: [2]int{3, 3}, EmptyBoxes: [][4]int{{0, 4, 0, 1}}}},
		{"gap", Layout{Dimensions: [2]int{3, 3}, Gaps: [][2]int{{3, 0}}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewGrid(tc.l)
			require.ErrorIs(t, err, ErrInvalidLayout)
		})
	}
}

func TestOccupyKeepsBookkeeping(t *testing.T) {
	g, err := NewGrid(Layout{Dimensions: [2]int{3, 1}, Gaps: [][2]int{{2, 0}}})
	require.NoError(t, err)

	require.NoError(t, g.Occupy(Coord{X: 0, Y: 0}, 1))
	assert.Equal(t, Cell(1), g.At(Coord{X: 0, Y: 0}))
	assert.False(t, g.IsEmptySeat(Coord{X: 0, Y: 0}))
	assert.Equal(t, 1, g.Unfilled())
	assert.Equal(t, []Coord{{X: 1, Y: 0}}, g.EmptyCoords())

	// occupied, non-seat and out-of-range writes all fail
	require.ErrorIs(t, g.Occupy(Coord{X: 0, Y: 0}, 2), ErrInvalidSeatAccess)
	require.ErrorIs(t, g.Occupy(Coord{X: 2, Y: 0}, 2), ErrInvalidSeatAccess)
	require.ErrorIs(t, g.Occupy(Coord{X: 9, Y: 9}, 2), ErrInvalidSeatAccess)
	assert.Equal(t, 1, g.Unfilled())
	assert.Equal(t, 2, g.NextGroupID())
}

func TestOccupyManyIsNotAtomic(t *testing.T) {
	g, err := NewGrid(Layout{Dimensions: [2]int{3, 1}})
	require.NoError(t, err)
	require.NoError(t, g.Occupy(Coord{X: 2, Y: 0}, 1))

	err = g.OccupyMany([]Coord{{X: 0, Y: 0}, {X: 2, Y: 0}}, 2)
	require.ErrorIs(t, err, ErrInvalidSeatAccess)
	assert.Equal(t, Cell(2), g.At(Coord{X: 0, Y: 0}), "seats before the failure stay written")
	assert.False(t, g.AreAllEmpty([]Coord{{X: 1, Y: 0}, {X: 2, Y: 0}}))
	assert.True(t, g.AreAllEmpty([]Coord{{X: 1, Y: 0}}))
}

func TestCloneIsIndependent(t *testing.T) {
	g, err := NewGrid(Layout{Dimensions: [2]int{2, 2}})
	require.NoError(t, err)
	cp := g.Clone()
	require.NoError(t, cp.Occupy(Coord{X: 0, Y: 0}, 1))

	assert.True(t, g.IsEmptySeat(Coord{X: 0, Y: 0}))
	assert.Equal(t, 4, g.Unfilled())
	assert.Equal(t, 3, cp.Unfilled())
}

func TestCellsRoundTrip(t *testing.T) {
	g, err := NewGrid(Layout{Dimensions: [2]int{3, 2}, Gaps: [][2]int{{1, 1}}})
	require.NoError(t, err)
	require.NoError(t, g.OccupyMany([]Coord{{X: 0, Y: 0}, {X: 1, Y: 0}}, 1))

	snap := g.Cells()
	assert.Equal(t, [][]int{{1, 1, 0}, {0, -1, 0}}, snap)

	back, err := GridFromCells(snap, UnitPitch)
	require.NoError(t, err)
	assert.Equal(t, g.EmptyCoords(), back.EmptyCoords())
	assert.Equal(t, g.TotalSeats(), back.TotalSeats())
	assert.Equal(t, 2, back.NextGroupID())

	_, err = GridFromCells([][]int{{0, 0}, {0}}, UnitPitch)
	require.ErrorIs(t, err, ErrInvalidLayout)
}

func TestRegularBlocks(t *testing.T) {
	l, err := RegularBlocks([2]int{3, 2}, [2]int{2, 3})
	require.NoError(t, err)
	assert.Equal(t, [2]int{7, 8}, l.Dimensions)
	assert.Equal(t, []int{3}, l.EmptyCols)
	assert.Equal(t, []int{2, 5}, l.EmptyRows)

	g, err := NewGrid(l)
	require.NoError(t, err)
	assert.Equal(t, 3*2*2*3, g.TotalSeats())
}

func TestSeatPitchDistance(t *testing.T) {
	p := SeatPitch{Width: 0.5, Length: 2}
	assert.InDelta(t, 2.5, p.Distance(Coord{X: 0, Y: 0}, Coord{X: 3, Y: 1}), 1e-9)
	assert.InDelta(t, 5.0, SeatPitch{}.Distance(Coord{X: 0, Y: 0}, Coord{X: 3, Y: 4}), 1e-9)
}
