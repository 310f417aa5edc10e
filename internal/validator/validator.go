package validator

import (
	"context"
	"slices"

	"svw.info/seatplan/internal/domain"
	"svw.info/seatplan/internal/solver"
)

// SeatingValidator audits a seated grid: every group must sit in a legal
// shape for its size and the grid's bookkeeping must agree with its cells.
type SeatingValidator struct{}

func New() *SeatingValidator { return &SeatingValidator{} }

// Validate returns the coordinates of every seat that belongs to a malformed
// group, plus any empty seat the grid's counters disagree about.
func (v *SeatingValidator) Validate(ctx context.Context, g *domain.Grid) (bool, []domain.Coord, error) {
	conf := make([]domain.Coord, 0, 8)
	groups := g.Groups()
	ids := make([]int, 0, len(groups))
	for id := range groups {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return false, nil, err
		}
		seats := groups[id]
		if !legalShape(g, seats) {
			conf = append(conf, seats...)
		}
	}

	// bookkeeping: the empty set must be exactly the Empty cells
	empties := g.EmptyCoords()
	if len(empties) != g.Unfilled() {
		conf = append(conf, empties...)
	}
	for _, c := range empties {
		if g.At(c) != domain.Empty {
			conf = append(conf, c)
		}
	}
	return len(conf) == 0, conf, nil
}

// legalShape checks seats against the shapes a group of that size may take.
func legalShape(g *domain.Grid, seats []domain.Coord) bool {
	k, err := domain.ParseGroupSize(len(seats))
	if err != nil {
		return false
	}
	// A group's seats are occupied, so test the shape on a scratch grid
	// where exactly those seats are free.
	scratch, err := domain.GridFromCells(onlyFree(g, seats), g.Pitch())
	if err != nil {
		return false
	}
	for _, p := range mustConfigs(scratch, k, seats[0]) {
		if len(p) == len(seats) && containsAll(seats, p) {
			return true
		}
	}
	return false
}

func onlyFree(g *domain.Grid, seats []domain.Coord) [][]int {
	rows := make([][]int, g.Height())
	for y := range rows {
		rows[y] = make([]int, g.Width())
		for x := range rows[y] {
			rows[y][x] = int(domain.NotASeat)
		}
	}
	for _, c := range seats {
		rows[c.Y][c.X] = int(domain.Empty)
	}
	return rows
}

func mustConfigs(g *domain.Grid, k domain.GroupSize, c domain.Coord) []domain.Placement {
	cfgs, err := solver.Configurations(g, k, c)
	if err != nil {
		return nil
	}
	return cfgs
}

func containsAll(seats []domain.Coord, p domain.Placement) bool {
	for _, c := range p {
		if !slices.Contains(seats, c) {
			return false
		}
	}
	return true
}
