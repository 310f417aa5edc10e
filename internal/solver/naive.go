package solver

import (
	"context"

	"github.com/zyedidia/generic/mapset"

	"svw.info/seatplan/internal/domain"
	"svw.info/seatplan/internal/ports"
)

// NaiveSolver draws anchors uniformly at random and seats each group with the
// first shape that fits there. It is the baseline the greedy solvers beat.
type NaiveSolver struct {
	opts Options
}

func NewNaiveSolver(opts Options) *NaiveSolver { return &NaiveSolver{opts: opts.withDefaults()} }

func (s *NaiveSolver) Name() string { return domain.StrategyNaive.String() }

func (s *NaiveSolver) Solve(ctx context.Context, g *domain.Grid, q *domain.GroupQueue) (ports.Stats, error) {
	return run(ctx, s.Name(), s.opts, g, q, s)
}

func (s *NaiveSolver) choose(g *domain.Grid, k domain.GroupSize, st *ports.Stats) (domain.Placement, error) {
	empties := g.EmptyCoords()
	failed := mapset.New[domain.Coord]()
	for failed.Size() < len(empties) {
		c := empties[s.opts.Rand.Intn(len(empties))]
		if failed.Has(c) {
			continue
		}
		st.Probes++
		cfgs, err := Configurations(g, k, c)
		if err != nil {
			return nil, err
		}
		if len(cfgs) > 0 {
			return cfgs[0], nil
		}
		failed.Put(c)
	}
	return nil, nil
}

func (s *NaiveSolver) placed(*domain.Grid, domain.Placement) {}
