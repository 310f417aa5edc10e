package solver

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"svw.info/seatplan/internal/domain"
)

func mustGrid(t *testing.T, l domain.Layout) *domain.Grid {
	t.Helper()
	g, err := domain.NewGrid(l)
	require.NoError(t, err)
	return g
}

// bruteShapes lists every legal shape of size k on a w x h board.
func bruteShapes(w, h int, k domain.GroupSize) []domain.Placement {
	var out []domain.Placement
	for y := 0; y < h; y++ {
		for x := 0; x+int(k) <= w; x++ {
			out = append(out, row(x, y, int(k)))
		}
	}
	if k == domain.Quad {
		for y := 0; y+1 < h; y++ {
			for x := 0; x+1 < w; x++ {
				out = append(out, box(x, y))
			}
		}
	}
	return out
}

func sortedKey(p domain.Placement) []domain.Coord {
	s := slices.Clone(p)
	slices.SortFunc(s, func(a, b domain.Coord) int {
		if a.Y != b.Y {
			return a.Y - b.Y
		}
		return a.X - b.X
	})
	return s
}

func sameShapes(a, b [][]domain.Coord) bool {
	if len(a) != len(b) {
		return false
	}
	for _, p := range a {
		if !slices.ContainsFunc(b, func(q []domain.Coord) bool { return slices.Equal(p, q) }) {
			return false
		}
	}
	return true
}

// Every occupancy pattern of a 4x3 board, every anchor, every size: the
// predicate and the enumeration agree with a brute-force search.
func TestFeasibilityMatchesBruteForce(t *testing.T) {
	const w, h = 4, 3
	for mask := 0; mask < 1<<(w*h); mask++ {
		g := mustGrid(t, domain.Layout{Dimensions: [2]int{w, h}})
		for i := 0; i < w*h; i++ {
			if mask&(1<<i) != 0 {
				require.NoError(t, g.Occupy(domain.Coord{X: i % w, Y: i / w}, 1))
			}
		}
		for k := domain.Single; k <= domain.Quad; k++ {
			shapes := bruteShapes(w, h, k)
			for y := -1; y <= h; y++ {
				for x := -1; x <= w; x++ {
					c := domain.Coord{X: x, Y: y}
					var want [][]domain.Coord
					for _, p := range shapes {
						if p.Contains(c) && g.AreAllEmpty(p) {
							want = append(want, sortedKey(p))
						}
					}
					got, err := Configurations(g, k, c)
					require.NoError(t, err)
					var gotKeys [][]domain.Coord
					for _, p := range got {
						gotKeys = append(gotKeys, sortedKey(p))
					}
					if !sameShapes(want, gotKeys) {
						require.ElementsMatch(t, want, gotKeys, "mask=%b k=%d c=%v", mask, k, c)
					}
					if Feasible(g, k, c) != (len(want) > 0) {
						t.Fatalf("Feasible mismatch mask=%b k=%d c=%v want=%v", mask, k, c, len(want) > 0)
					}
				}
			}
		}
	}
}

func TestConfigurationOrder(t *testing.T) {
	g := mustGrid(t, domain.Layout{Dimensions: [2]int{7, 2}})
	c := domain.Coord{X: 3, Y: 1}

	pairs, err := Configurations(g, domain.Pair, c)
	require.NoError(t, err)
	assert.Equal(t, []domain.Placement{
		{{X: 3, Y: 1}, {X: 4, Y: 1}},
		{{X: 2, Y: 1}, {X: 3, Y: 1}},
	}, pairs)

	quads, err := Configurations(g, domain.Quad, c)
	require.NoError(t, err)
	// four row offsets, then the two boxes reaching up into row 0
	require.Len(t, quads, 6)
	assert.Equal(t, row(3, 1, 4), quads[0])
	assert.Equal(t, row(0, 1, 4), quads[3])
	assert.Equal(t, box(3, 0), quads[4])
	assert.Equal(t, box(2, 0), quads[5])
}

func TestUnsupportedGroupSize(t *testing.T) {
	g := mustGrid(t, domain.Layout{Dimensions: [2]int{6, 1}})
	_, err := Configurations(g, domain.GroupSize(5), domain.Coord{})
	require.ErrorIs(t, err, domain.ErrUnsupportedGroupSize)
	assert.False(t, Feasible(g, domain.GroupSize(5), domain.Coord{}))
}
