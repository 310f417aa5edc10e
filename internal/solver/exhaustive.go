package solver

import (
	"context"

	"svw.info/seatplan/internal/domain"
	"svw.info/seatplan/internal/ports"
)

// ExhaustiveSolver scans every empty seat for every group and takes the
// placement with the highest mean distance anywhere on the grid. The first
// group of a run has no distances to go by, so it is packed toward the origin
// (smallest coordinate sum) instead. Deterministic for a deterministic pop order.
type ExhaustiveSolver struct {
	opts Options
}

func NewExhaustiveSolver(opts Options) *ExhaustiveSolver {
	return &ExhaustiveSolver{opts: opts.withDefaults()}
}

func (s *ExhaustiveSolver) Name() string { return domain.StrategyExhaustive.String() }

func (s *ExhaustiveSolver) Solve(ctx context.Context, g *domain.Grid, q *domain.GroupQueue) (ports.Stats, error) {
	return run(ctx, s.Name(), s.opts, g, q, &exhaustiveRun{field: NewDistanceField(g)})
}

type exhaustiveRun struct {
	field   *DistanceField
	started bool
}

func (p *exhaustiveRun) choose(g *domain.Grid, k domain.GroupSize, st *ports.Stats) (domain.Placement, error) {
	var best domain.Placement
	bestScore := 0.0
	for _, c := range g.EmptyCoords() {
		st.Probes++
		cfgs, err := Configurations(g, k, c)
		if err != nil {
			return nil, err
		}
		for _, cfg := range cfgs {
			var score float64
			if p.started {
				score = p.field.Mean(cfg)
			} else {
				score = -float64(cfg.CoordSum())
			}
			if best == nil || score > bestScore {
				best, bestScore = cfg, score
			}
		}
	}
	return best, nil
}

func (p *exhaustiveRun) placed(g *domain.Grid, seats domain.Placement) {
	p.started = true
	p.field.Update(g, seats)
}
