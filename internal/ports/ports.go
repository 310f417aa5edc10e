package ports

import (
	"context"
	"math/rand"
	"time"

	"svw.info/seatplan/internal/domain"
)

// Stats captures what a solve did and how long it took.
type Stats struct {
	Groups   int           // groups placed
	Seated   int           // people placed
	Probes   int           // feasibility checks performed
	Duration time.Duration
}

// Solver seats every queued group on the grid, mutating both.
type Solver interface {
	Name() string
	Solve(ctx context.Context, g *domain.Grid, q *domain.GroupQueue) (Stats, error)
}

// Generator produces a group queue summing to exactly total people.
type Generator interface {
	Generate(rng *rand.Rand, total int) (*domain.GroupQueue, error)
}

// Evaluator scores a seated grid.
type Evaluator interface {
	NearestDistance(g *domain.Grid) (float64, error)
	Violates(g *domain.Grid, threshold float64) bool
}

// Validator audits a seated grid for shape and bookkeeping errors.
type Validator interface {
	Validate(ctx context.Context, g *domain.Grid) (ok bool, conflicts []domain.Coord, err error)
}

// Suggester finds the largest ticket count that keeps groups apart.
type Suggester interface {
	Suggest(ctx context.Context, g *domain.Grid, weights map[int]float64) (int, error)
}

// Storage persists and retrieves solved runs.
type Storage interface {
	Save(ctx context.Context, r *domain.Run) error
	Load(ctx context.Context, id string) (*domain.Run, error)
	List(ctx context.Context) ([]domain.RunMeta, error)
}
