package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"svw.info/seatplan/internal/domain"
	"svw.info/seatplan/internal/evaluate"
	"svw.info/seatplan/internal/generator"
	"svw.info/seatplan/internal/ports"
	"svw.info/seatplan/internal/solver"
	"svw.info/seatplan/internal/suggest"
)

type Service struct {
	Evaluator ports.Evaluator
	Validator ports.Validator
	Storage   ports.Storage
	// Suggest holds the defaults each suggestion starts from.
	Suggest suggest.Config
	Logger  *slog.Logger
}

func NewService(e ports.Evaluator, v ports.Validator, st ports.Storage, sc suggest.Config, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{Evaluator: e, Validator: v, Storage: st, Suggest: sc, Logger: logger}
}

var errNotConfigured = errors.New("usecase dependency not configured")

// ErrBadRequest marks inputs that cannot describe a solve.
var ErrBadRequest = errors.New("bad request")

// SolveRequest describes one seating run. Groups wins over Supply.
type SolveRequest struct {
	Layout   domain.Layout
	Groups   []int
	Supply   *generator.Distribution
	Total    int
	Strategy domain.Strategy
	Order    domain.PopOrder
	Seed     int64
	// Threshold, when positive, adds a violation report.
	Threshold float64
}

type SolveResult struct {
	Run    *domain.Run
	Grid   *domain.Grid
	Stats  ports.Stats
	Report *evaluate.ThresholdReport
}

// Solve builds the venue, draws or takes the groups and seats them. When a
// group cannot be seated the partial result comes back with the error.
func (u *Service) Solve(ctx context.Context, req SolveRequest) (*SolveResult, error) {
	ctx, span := tracer.Start(ctx, "usecase.Solve",
		trace.WithAttributes(
			attribute.String("strategy", req.Strategy.String()),
			attribute.String("order", req.Order.String()),
			attribute.Int64("seed", req.Seed),
		),
	)
	defer span.End()

	g, err := domain.NewGrid(req.Layout)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "invalid layout")
		return nil, err
	}
	rng := rand.New(rand.NewSource(req.Seed))
	q, err := u.queue(req, rng)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "invalid groups")
		return nil, err
	}
	groups := q.Sizes()
	span.SetAttributes(
		attribute.Int("seats", g.TotalSeats()),
		attribute.Int("groups", q.Len()),
		attribute.Int("people", q.Total()),
	)

	s := solver.New(req.Strategy, solver.Options{Order: req.Order, Rand: rng, Logger: u.Logger})
	stats, solveErr := s.Solve(ctx, g, q)

	strategy := req.Strategy.String()
	solveDuration.WithLabelValues(strategy).Observe(stats.Duration.Seconds())
	groupsPlaced.Add(float64(stats.Groups))
	peopleSeated.Add(float64(stats.Seated))

	res := &SolveResult{
		Grid:  g,
		Stats: stats,
		Run: &domain.Run{
			ID:        uuid.NewString(),
			Name:      req.Layout.Name,
			Strategy:  req.Strategy,
			Order:     req.Order,
			Seed:      req.Seed,
			Groups:    groups,
			Cells:     g.Cells(),
			Pitch:     g.Pitch(),
			Seated:    stats.Seated,
			CreatedAt: time.Now().Unix(),
		},
	}
	if score, err := evaluate.NearestDistance(g); err == nil {
		res.Run.Score = score
	}
	if req.Threshold > 0 {
		rep := evaluate.CloserThan(g, req.Threshold)
		res.Report = &rep
	}

	if solveErr != nil {
		outcome := "error"
		if errors.Is(solveErr, domain.ErrNoFeasiblePlacement) {
			outcome = "no_placement"
		}
		solvesTotal.WithLabelValues(strategy, outcome).Inc()
		res.Run.Error = solveErr.Error()
		span.RecordError(solveErr)
		span.SetStatus(codes.Error, outcome)
		u.Logger.Warn("solve stopped", "strategy", strategy, "seated", stats.Seated, "err", solveErr)
		return res, solveErr
	}
	solvesTotal.WithLabelValues(strategy, "ok").Inc()
	span.SetStatus(codes.Ok, "")
	u.Logger.Info("solved", "strategy", strategy, "groups", stats.Groups, "seated", stats.Seated, "dur", stats.Duration)
	return res, nil
}

func (u *Service) queue(req SolveRequest, rng *rand.Rand) (*domain.GroupQueue, error) {
	if len(req.Groups) > 0 {
		for _, n := range req.Groups {
			if _, err := domain.ParseGroupSize(n); err != nil {
				return nil, err
			}
		}
		return domain.NewGroupQueue(req.Groups...), nil
	}
	if req.Supply == nil || req.Total <= 0 {
		return nil, fmt.Errorf("%w: need groups or a supply with a positive total", ErrBadRequest)
	}
	gen, err := req.Supply.Generator()
	if err != nil {
		return nil, err
	}
	return gen.Generate(rng, req.Total)
}

// Evaluation scores a seat map.
type Evaluation struct {
	// Nearest is the mean nearest cross-group distance; nil with fewer than two groups.
	Nearest *float64
	Report  evaluate.ThresholdReport
}

func (u *Service) Evaluate(ctx context.Context, cells [][]int, pitch domain.SeatPitch, threshold float64) (Evaluation, error) {
	if u.Evaluator == nil {
		return Evaluation{}, errNotConfigured
	}
	_, span := tracer.Start(ctx, "usecase.Evaluate", trace.WithAttributes(attribute.Float64("threshold", threshold)))
	defer span.End()

	g, err := domain.GridFromCells(cells, pitch)
	if err != nil {
		span.RecordError(err)
		return Evaluation{}, err
	}
	var ev Evaluation
	if d, err := u.Evaluator.NearestDistance(g); err == nil {
		ev.Nearest = &d
	} else if !errors.Is(err, evaluate.ErrNotEnoughGroups) {
		return Evaluation{}, err
	}
	ev.Report = evaluate.CloserThan(g, threshold)
	return ev, nil
}

func (u *Service) Validate(ctx context.Context, cells [][]int) (bool, []domain.Coord, error) {
	if u.Validator == nil {
		return false, nil, errNotConfigured
	}
	ctx, span := tracer.Start(ctx, "usecase.Validate")
	defer span.End()

	g, err := domain.GridFromCells(cells, domain.UnitPitch)
	if err != nil {
		span.RecordError(err)
		return false, nil, err
	}
	ok, conflicts, err := u.Validator.Validate(ctx, g)
	span.SetAttributes(attribute.Bool("valid", ok), attribute.Int("conflicts", len(conflicts)))
	return ok, conflicts, err
}

// SuggestOverrides replaces the service defaults for one call. Zero fields keep the default.
type SuggestOverrides struct {
	Threshold float64
	Tolerance *float64
	Bootstrap int
	Seed      *int64
}

func (u *Service) suggestConfig(o SuggestOverrides) suggest.Config {
	cfg := u.Suggest
	if o.Threshold > 0 {
		cfg.Threshold = o.Threshold
	}
	if o.Tolerance != nil {
		cfg.Tolerance = *o.Tolerance
	}
	if o.Bootstrap > 0 {
		cfg.Bootstrap = o.Bootstrap
	}
	if o.Seed != nil {
		cfg.Seed = *o.Seed
	}
	return cfg
}

// SuggestTickets estimates the largest safe head count for an empty venue.
func (u *Service) SuggestTickets(ctx context.Context, l domain.Layout, weights map[int]float64, o SuggestOverrides) (int, error) {
	cfg := u.suggestConfig(o)
	if cfg.Bootstrap <= 0 || cfg.Threshold <= 0 {
		return 0, fmt.Errorf("%w: suggestion needs a positive threshold and bootstrap", ErrBadRequest)
	}
	ctx, span := tracer.Start(ctx, "usecase.SuggestTickets",
		trace.WithAttributes(
			attribute.Float64("threshold", cfg.Threshold),
			attribute.Float64("tolerance", cfg.Tolerance),
			attribute.Int("bootstrap", cfg.Bootstrap),
		),
	)
	defer span.End()

	g, err := domain.NewGrid(l)
	if err != nil {
		span.RecordError(err)
		return 0, err
	}
	var sg ports.Suggester = suggest.New(cfg,
		suggest.WithLogger(u.Logger),
		suggest.WithEvaluator(u.evaluator()),
		suggest.WithTrialObserver(func(ok bool) { suggestTrials.WithLabelValues(trialResult(ok)).Inc() }),
	)
	n, err := sg.Suggest(ctx, g, weights)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return 0, err
	}
	span.SetAttributes(attribute.Int("suggested", n))
	u.Logger.Info("suggested", "venue", l.Name, "tickets", n, "seats", g.TotalSeats())
	return n, nil
}

func (u *Service) evaluator() ports.Evaluator {
	if u.Evaluator != nil {
		return u.Evaluator
	}
	return evaluate.New()
}

// Persistence

// Save stores a run, assigning an id and timestamp when missing.
func (u *Service) Save(ctx context.Context, r *domain.Run) error {
	if u.Storage == nil {
		return errNotConfigured
	}
	if r != nil && r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r != nil && r.CreatedAt == 0 {
		r.CreatedAt = time.Now().Unix()
	}
	return u.Storage.Save(ctx, r)
}

func (u *Service) Load(ctx context.Context, id string) (*domain.Run, error) {
	if u.Storage == nil {
		return nil, errNotConfigured
	}
	return u.Storage.Load(ctx, id)
}

func (u *Service) List(ctx context.Context) ([]domain.RunMeta, error) {
	if u.Storage == nil {
		return nil, errNotConfigured
	}
	return u.Storage.List(ctx)
}
