package solver

import (
	"math"

	"svw.info/seatplan/internal/domain"
)

// DistanceField holds, for every empty seat, the distance to the nearest
// occupied seat. Values never grow during a run. Until something is
// occupied there is no information and Value reports 0.
type DistanceField struct {
	values map[domain.Coord]float64
}

// NewDistanceField computes the field for the grid's current occupancy.
func NewDistanceField(g *domain.Grid) *DistanceField {
	f := &DistanceField{values: make(map[domain.Coord]float64, g.EmptyCount())}
	for _, c := range g.EmptyCoords() {
		f.values[c] = math.Inf(1)
	}
	f.Recompute(g)
	return f
}

// Value is the field at c, or 0 when unknown.
func (f *DistanceField) Value(c domain.Coord) float64 {
	v, ok := f.values[c]
	if !ok || math.IsInf(v, 1) {
		return 0
	}
	return v
}

// Known reports whether c has a finite distance.
func (f *DistanceField) Known(c domain.Coord) bool {
	v, ok := f.values[c]
	return ok && !math.IsInf(v, 1)
}

// Mean is the average field value over a placement's seats.
func (f *DistanceField) Mean(p domain.Placement) float64 {
	if len(p) == 0 {
		return 0
	}
	sum := 0.0
	for _, c := range p {
		sum += f.Value(c)
	}
	return sum / float64(len(p))
}

// Recompute rebuilds the field against every occupied seat and returns the
// empty coordinates whose value changed, in row-major order.
func (f *DistanceField) Recompute(g *domain.Grid) []domain.Coord {
	return f.refresh(g, g.OccupiedCoords())
}

// Update folds in a fresh placement. Since the field only shrinks, comparing
// against the newly occupied seats gives the same result as Recompute.
func (f *DistanceField) Update(g *domain.Grid, placed domain.Placement) []domain.Coord {
	return f.refresh(g, placed)
}

func (f *DistanceField) refresh(g *domain.Grid, sources []domain.Coord) []domain.Coord {
	for c := range f.values {
		if !g.IsEmptySeat(c) {
			delete(f.values, c)
		}
	}
	if len(sources) == 0 {
		return nil
	}
	var changed []domain.Coord
	for _, c := range g.EmptyCoords() {
		cur, ok := f.values[c]
		if !ok {
			cur = math.Inf(1)
		}
		best := cur
		for _, s := range sources {
			if d := g.Distance(c, s); d < best {
				best = d
			}
		}
		f.values[c] = best
		if best != cur {
			changed = append(changed, c)
		}
	}
	return changed
}
