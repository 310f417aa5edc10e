package solver

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"svw.info/seatplan/internal/domain"
	"svw.info/seatplan/internal/ports"
)

// Options are shared by every strategy.
type Options struct {
	// Order decides which queued group is seated next.
	Order domain.PopOrder
	// Rand drives random pops and naive anchor draws. Defaults to seed 1.
	Rand *rand.Rand
	// Logger receives one debug record per placement.
	Logger *slog.Logger
}

func (o Options) withDefaults() Options {
	if o.Rand == nil {
		o.Rand = rand.New(rand.NewSource(1))
	}
	if o.Logger == nil {
		o.Logger = slog.New(slog.DiscardHandler)
	}
	return o
}

// New returns the solver for a strategy.
func New(kind domain.Strategy, opts Options) ports.Solver {
	switch kind {
	case domain.StrategyNaive:
		return NewNaiveSolver(opts)
	case domain.StrategyPriority:
		return NewPrioritySolver(opts)
	default:
		return NewExhaustiveSolver(opts)
	}
}

// placer is the per-strategy part of a run.
type placer interface {
	// choose picks seats for one group, or returns nil when no empty seat admits it.
	choose(g *domain.Grid, k domain.GroupSize, st *ports.Stats) (domain.Placement, error)
	// placed is called after the seats were written.
	placed(g *domain.Grid, p domain.Placement)
}

// run pops groups until the queue is empty, seating each one with p.
// A group that fits nowhere ends the run; seats already written stay written.
func run(ctx context.Context, name string, opts Options, g *domain.Grid, q *domain.GroupQueue, p placer) (ports.Stats, error) {
	start := time.Now()
	var st ports.Stats
	done := func(err error) (ports.Stats, error) {
		st.Duration = time.Since(start)
		return st, err
	}

	id := g.NextGroupID()
	for !q.Empty() {
		if err := ctx.Err(); err != nil {
			return done(err)
		}
		n, _ := q.Pop(opts.Order, opts.Rand)
		k, err := domain.ParseGroupSize(n)
		if err != nil {
			return done(err)
		}
		seats, err := p.choose(g, k, &st)
		if err != nil {
			return done(err)
		}
		if seats == nil {
			return done(&domain.PlacementError{Size: n, GroupID: id, Remaining: q.Len()})
		}
		if !g.AreAllEmpty(seats) {
			return done(fmt.Errorf("%s chose occupied seats %v: %w", name, seats, domain.ErrInvalidSeatAccess))
		}
		if err := g.OccupyMany(seats, id); err != nil {
			return done(err)
		}
		p.placed(g, seats)
		opts.Logger.Debug("placed group", "solver", name, "id", id, "size", n, "seats", seats, "unfilled", g.Unfilled())
		st.Groups++
		st.Seated += n
		id++
	}
	return done(nil)
}

// bestByMean picks the placement with the highest mean field value; the
// earliest one wins ties.
func bestByMean(f *DistanceField, cfgs []domain.Placement) domain.Placement {
	var best domain.Placement
	bestScore := 0.0
	for _, p := range cfgs {
		if s := f.Mean(p); best == nil || s > bestScore {
			best, bestScore = p, s
		}
	}
	return best
}
