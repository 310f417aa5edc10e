package solver

import (
	"fmt"

	"svw.info/seatplan/internal/domain"
)

// candidates lists every shape of size k that contains c, empty or not, in
// preference order: pairs extend right then left, trios and row-quads slide
// the run start from x down to x-k+1, and quads then try the four 2x2 boxes
// whose top-left corner is (x,y), (x-1,y), (x,y-1), (x-1,y-1).
func candidates(k domain.GroupSize, c domain.Coord) ([]domain.Placement, error) {
	switch k {
	case domain.Single:
		return []domain.Placement{{c}}, nil
	case domain.Pair:
		return []domain.Placement{
			row(c.X, c.Y, 2),
			row(c.X-1, c.Y, 2),
		}, nil
	case domain.Trio:
		out := make([]domain.Placement, 0, 3)
		for off := 0; off < 3; off++ {
			out = append(out, row(c.X-off, c.Y, 3))
		}
		return out, nil
	case domain.Quad:
		out := make([]domain.Placement, 0, 8)
		for off := 0; off < 4; off++ {
			out = append(out, row(c.X-off, c.Y, 4))
		}
		out = append(out,
			box(c.X, c.Y),
			box(c.X-1, c.Y),
			box(c.X, c.Y-1),
			box(c.X-1, c.Y-1),
		)
		return out, nil
	default:
		return nil, fmt.Errorf("%w: %d", domain.ErrUnsupportedGroupSize, int(k))
	}
}

func row(x0, y, n int) domain.Placement {
	p := make(domain.Placement, n)
	for i := range p {
		p[i] = domain.Coord{X: x0 + i, Y: y}
	}
	return p
}

func box(x0, y0 int) domain.Placement {
	return domain.Placement{
		{X: x0, Y: y0}, {X: x0 + 1, Y: y0},
		{X: x0, Y: y0 + 1}, {X: x0 + 1, Y: y0 + 1},
	}
}

// Feasible reports whether a group of size k can be seated with one member at c.
// Unsupported sizes are never feasible.
func Feasible(g *domain.Grid, k domain.GroupSize, c domain.Coord) bool {
	if !g.IsEmptySeat(c) {
		return false
	}
	shapes, err := candidates(k, c)
	if err != nil {
		return false
	}
	for _, p := range shapes {
		if g.AreAllEmpty(p) {
			return true
		}
	}
	return false
}

// Configurations returns every all-empty placement of size k that contains c,
// in preference order. The first entry is the naive choice.
func Configurations(g *domain.Grid, k domain.GroupSize, c domain.Coord) ([]domain.Placement, error) {
	shapes, err := candidates(k, c)
	if err != nil {
		return nil, err
	}
	if !g.IsEmptySeat(c) {
		return nil, nil
	}
	out := shapes[:0]
	for _, p := range shapes {
		if g.AreAllEmpty(p) {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out, nil
}
