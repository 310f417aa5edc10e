package usecase

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("seatplan.usecase")

var (
	// solveDuration tracks engine wall time per strategy
	solveDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "seatplan_solve_duration_seconds",
		Help:    "Seat assignment duration in seconds",
		Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10), // 0.1ms to ~26s
	}, []string{"strategy"})

	// solvesTotal counts solves by strategy and outcome
	solvesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "seatplan_solves_total",
		Help: "Total seat assignments by strategy and outcome",
	}, []string{"strategy", "outcome"})

	groupsPlaced = promauto.NewCounter(prometheus.CounterOpts{
		Name: "seatplan_groups_placed_total",
		Help: "Total groups seated across all solves",
	})

	peopleSeated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "seatplan_people_seated_total",
		Help: "Total people seated across all solves",
	})

	// suggestTrials counts bootstrap trials by result
	suggestTrials = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "seatplan_suggest_trials_total",
		Help: "Total ticket suggestion trials by result",
	}, []string{"result"})
)

func trialResult(ok bool) string {
	if ok {
		return "pass"
	}
	return "fail"
}
