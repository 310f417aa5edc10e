package solver

import (
	"context"

	"svw.info/seatplan/internal/domain"
	"svw.info/seatplan/internal/ports"
)

// PrioritySolver anchors each group at the empty seat farthest from everyone
// already seated, then picks the shape through that anchor with the highest
// mean distance.
type PrioritySolver struct {
	opts Options
}

func NewPrioritySolver(opts Options) *PrioritySolver {
	return &PrioritySolver{opts: opts.withDefaults()}
}

func (s *PrioritySolver) Name() string { return domain.StrategyPriority.String() }

func (s *PrioritySolver) Solve(ctx context.Context, g *domain.Grid, q *domain.GroupQueue) (ports.Stats, error) {
	p := &priorityRun{field: NewDistanceField(g), queue: newSeatQueue()}
	for _, c := range g.EmptyCoords() {
		p.queue.Push(c, p.field.Value(c))
	}
	return run(ctx, s.Name(), s.opts, g, q, p)
}

type priorityRun struct {
	field *DistanceField
	queue *seatQueue
	stash []domain.Coord // popped anchors that did not fit the current group
}

func (p *priorityRun) choose(g *domain.Grid, k domain.GroupSize, st *ports.Stats) (domain.Placement, error) {
	for {
		c, _, ok := p.queue.Pop()
		if !ok {
			return nil, nil
		}
		if !g.IsEmptySeat(c) {
			continue
		}
		st.Probes++
		cfgs, err := Configurations(g, k, c)
		if err != nil {
			p.stash = append(p.stash, c)
			return nil, err
		}
		if len(cfgs) == 0 {
			p.stash = append(p.stash, c)
			continue
		}
		// For pairs this compares the two neighbours directly; an occupied
		// side never appears among the configurations.
		return bestByMean(p.field, cfgs), nil
	}
}

func (p *priorityRun) placed(g *domain.Grid, seats domain.Placement) {
	for _, c := range seats {
		p.queue.Remove(c)
	}
	for _, c := range p.field.Update(g, seats) {
		p.queue.Update(c, p.field.Value(c))
	}
	for _, c := range p.stash {
		if g.IsEmptySeat(c) {
			p.queue.Push(c, p.field.Value(c))
		}
	}
	p.stash = p.stash[:0]
}
