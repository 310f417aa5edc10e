// Package suggest estimates how many tickets a venue can sell while keeping
// groups apart, by bisecting over head counts and bootstrapping random group
// mixes at each count.
package suggest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"runtime"

	"golang.org/x/sync/errgroup"

	"svw.info/seatplan/internal/domain"
	"svw.info/seatplan/internal/evaluate"
	"svw.info/seatplan/internal/generator"
	"svw.info/seatplan/internal/ports"
	"svw.info/seatplan/internal/solver"
)

// ErrNoSafeCount means not even a single ticket passes.
var ErrNoSafeCount = errors.New("no safe ticket count")

// Config tunes the search.
type Config struct {
	// Threshold is the cross-group distance a trial must not undercut.
	Threshold float64 `json:"threshold" yaml:"threshold" validate:"gt=0"`
	// Tolerance is the accepted fraction of failing trials.
	Tolerance float64 `json:"tolerance" yaml:"tolerance" validate:"gte=0,lte=1"`
	// Bootstrap is the number of trials per candidate count.
	Bootstrap int `json:"bootstrap" yaml:"bootstrap" validate:"gt=0"`
	// EarlyStop aborts a count after this many trials if failures already
	// exceed twice the tolerance. Zero disables it.
	EarlyStop int `json:"earlyStop" yaml:"early_stop" validate:"gte=0"`
	// Parallelism caps concurrent trials; zero means GOMAXPROCS.
	Parallelism int `json:"parallelism" yaml:"parallelism" validate:"gte=0"`
	// Seed makes every trial reproducible regardless of scheduling.
	Seed int64 `json:"seed" yaml:"seed"`
	// Order is the group pop order used by each trial's solver.
	Order domain.PopOrder `json:"order" yaml:"order"`
}

// DefaultConfig mirrors the usual event setup: 1.5 seat spacing, 5% tolerance.
func DefaultConfig() Config {
	return Config{
		Threshold: 1.5,
		Tolerance: 0.05,
		Bootstrap: 100,
		EarlyStop: 25,
		Seed:      1,
	}
}

// Suggester implements ports.Suggester.
type Suggester struct {
	cfg       Config
	newSolver func(rng *rand.Rand) ports.Solver
	eval      ports.Evaluator
	logger    *slog.Logger
	onTrial   func(ok bool)
}

// Option customises a Suggester.
type Option func(*Suggester)

// WithSolver replaces the default exhaustive solver.
func WithSolver(f func(rng *rand.Rand) ports.Solver) Option {
	return func(s *Suggester) { s.newSolver = f }
}

func WithEvaluator(e ports.Evaluator) Option { return func(s *Suggester) { s.eval = e } }

func WithLogger(l *slog.Logger) Option { return func(s *Suggester) { s.logger = l } }

// WithTrialObserver is called once per finished trial, possibly concurrently.
func WithTrialObserver(f func(ok bool)) Option { return func(s *Suggester) { s.onTrial = f } }

func New(cfg Config, opts ...Option) *Suggester {
	s := &Suggester{
		cfg:    cfg,
		eval:   evaluate.New(),
		logger: slog.New(slog.DiscardHandler),
	}
	s.newSolver = func(rng *rand.Rand) ports.Solver {
		return solver.NewExhaustiveSolver(solver.Options{Order: s.cfg.Order, Rand: rng})
	}
	for _, o := range opts {
		o(s)
	}
	if s.cfg.Parallelism <= 0 {
		s.cfg.Parallelism = runtime.GOMAXPROCS(0)
	}
	return s
}

// Suggest returns the largest head count judged safe for the empty grid g,
// given relative weights of group sizes. g itself is never modified.
func (s *Suggester) Suggest(ctx context.Context, g *domain.Grid, weights map[int]float64) (int, error) {
	return s.search(g.Unfilled(), func(n int) (bool, error) {
		return s.IsSafe(ctx, g, weights, n)
	})
}

// search bisects [0, seats] with safe until the bracket is narrower than five,
// then scans down from just above it.
func (s *Suggester) search(seats int, safe func(n int) (bool, error)) (int, error) {
	b := &bisection{min: 0, max: float64(seats)}
	n := b.first()
	for !b.converged() {
		s.logger.Info("searching", "attendees", n)
		ok, err := safe(n)
		if err != nil {
			return 0, err
		}
		if ok {
			n = b.more()
		} else {
			n = b.less()
		}
	}
	s.logger.Info("initial convergence", "min", math.Round(b.min), "max", math.Round(b.max))

	for n := min(int(b.max)+1, seats); n > 0; n-- {
		ok, err := safe(n)
		if err != nil {
			return 0, err
		}
		if ok {
			return n, nil
		}
	}
	return 0, ErrNoSafeCount
}

// IsSafe runs the bootstrap for one head count.
func (s *Suggester) IsSafe(ctx context.Context, g *domain.Grid, weights map[int]float64, count int) (bool, error) {
	gen := generator.Weighted{Weights: weights}
	total := s.cfg.Bootstrap
	results := make([]bool, total)

	batch := func(from, to int) error {
		eg, ctx := errgroup.WithContext(ctx)
		eg.SetLimit(s.cfg.Parallelism)
		for i := from; i < to; i++ {
			eg.Go(func() error {
				ok, err := s.trial(ctx, g, gen, count, i)
				if err != nil {
					return fmt.Errorf("trial %d at %d attendees: %w", i, count, err)
				}
				results[i] = ok
				if s.onTrial != nil {
					s.onTrial(ok)
				}
				return nil
			})
		}
		return eg.Wait()
	}

	if early := s.cfg.EarlyStop; early > 0 && early < total {
		if err := batch(0, early); err != nil {
			return false, err
		}
		if !passes(results[:early], 2*s.cfg.Tolerance) {
			s.logger.Info("stopping early", "attendees", count, "failures", failures(results[:early]), "trials", early)
			return false, nil
		}
		if err := batch(early, total); err != nil {
			return false, err
		}
	} else if err := batch(0, total); err != nil {
		return false, err
	}

	ok := passes(results, s.cfg.Tolerance)
	s.logger.Info("bootstrap finished", "attendees", count, "safe", ok, "failures", failures(results), "trials", total)
	return ok, nil
}

// trial seats one random group mix on a private copy of g.
func (s *Suggester) trial(ctx context.Context, g *domain.Grid, gen ports.Generator, count, i int) (bool, error) {
	rng := rand.New(rand.NewSource(s.cfg.Seed*1_000_003 + int64(count)*7_919 + int64(i)))
	q, err := gen.Generate(rng, count)
	if err != nil {
		return false, err
	}
	grid := g.Clone()
	if _, err := s.newSolver(rng).Solve(ctx, grid, q); err != nil {
		if errors.Is(err, domain.ErrNoFeasiblePlacement) {
			return false, nil
		}
		return false, err
	}
	return !s.eval.Violates(grid, s.cfg.Threshold), nil
}

func failures(runs []bool) int {
	n := 0
	for _, ok := range runs {
		if !ok {
			n++
		}
	}
	return n
}

func passes(runs []bool, tolerance float64) bool {
	if len(runs) == 0 {
		return true
	}
	return float64(failures(runs))/float64(len(runs)) <= tolerance
}

// bisection halves [min, max] around the last probe. Probes round half to even.
type bisection struct {
	min, max, last float64
}

func (b *bisection) first() int {
	b.last = (b.max + b.min) / 2
	return int(math.RoundToEven(b.last))
}

func (b *bisection) more() int {
	b.min = b.last
	return b.first()
}

func (b *bisection) less() int {
	b.max = b.last
	return b.first()
}

func (b *bisection) converged() bool { return b.max-b.min < 5 }
