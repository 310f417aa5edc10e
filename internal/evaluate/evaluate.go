// Package evaluate scores a finished seat map by how close members of
// different groups ended up.
package evaluate

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"svw.info/seatplan/internal/domain"
)

// ErrNotEnoughGroups means fewer than two groups are seated, so there is no
// cross-group distance to measure.
var ErrNotEnoughGroups = errors.New("fewer than two groups seated")

// Reduction collapses per-seat violation counts into one number.
type Reduction int

const (
	ReduceMean  Reduction = iota // mean violations per occupied seat
	ReduceTotal                  // number of violating seat pairs
	ReduceAny                    // 1 if anything violates, else 0
)

// ParseReduction accepts mean|total|any (also "boolean").
func ParseReduction(s string) (Reduction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "mean":
		return ReduceMean, nil
	case "total", "sum":
		return ReduceTotal, nil
	case "any", "boolean", "bool":
		return ReduceAny, nil
	default:
		return ReduceMean, fmt.Errorf("unknown reduction %q", s)
	}
}

// Evaluator implements ports.Evaluator.
type Evaluator struct{}

func New() *Evaluator { return &Evaluator{} }

func (Evaluator) NearestDistance(g *domain.Grid) (float64, error) { return NearestDistance(g) }

func (Evaluator) Violates(g *domain.Grid, threshold float64) bool {
	return CloserThan(g, threshold).Violated()
}

// NearestDistance is the mean, over occupied seats, of the distance to the
// closest seat held by a different group.
func NearestDistance(g *domain.Grid) (float64, error) {
	occ := g.OccupiedCoords()
	sum, n := 0.0, 0
	for i, a := range occ {
		ga := g.At(a)
		best := math.Inf(1)
		for j, b := range occ {
			if i == j || g.At(b) == ga {
				continue
			}
			if d := g.Distance(a, b); d < best {
				best = d
			}
		}
		if math.IsInf(best, 1) {
			continue
		}
		sum += best
		n++
	}
	if n == 0 {
		return 0, ErrNotEnoughGroups
	}
	return sum / float64(n), nil
}

// ThresholdReport counts cross-group neighbours strictly closer than a threshold.
type ThresholdReport struct {
	Threshold float64 `json:"threshold"`
	Seats     int     `json:"seats"`     // occupied seats examined
	PerSeat   []int   `json:"-"`         // violations per occupied seat, row-major
	Pairs     int     `json:"pairs"`     // unordered violating pairs
	Flagged   int     `json:"flagged"`   // seats with at least one violation
	MeanCount float64 `json:"meanCount"` // mean violations per seat
}

// Violated reports whether any pair is too close.
func (r ThresholdReport) Violated() bool { return r.Pairs > 0 }

// Reduce applies a reduction to the report.
func (r ThresholdReport) Reduce(red Reduction) float64 {
	switch red {
	case ReduceTotal:
		return float64(r.Pairs)
	case ReduceAny:
		if r.Violated() {
			return 1
		}
		return 0
	default:
		return r.MeanCount
	}
}

// CloserThan builds the threshold report for g.
func CloserThan(g *domain.Grid, threshold float64) ThresholdReport {
	occ := g.OccupiedCoords()
	rep := ThresholdReport{Threshold: threshold, Seats: len(occ), PerSeat: make([]int, len(occ))}
	for i := 0; i < len(occ); i++ {
		for j := i + 1; j < len(occ); j++ {
			if g.At(occ[i]) == g.At(occ[j]) {
				continue
			}
			if g.Distance(occ[i], occ[j]) < threshold {
				rep.PerSeat[i]++
				rep.PerSeat[j]++
				rep.Pairs++
			}
		}
	}
	total := 0
	for _, c := range rep.PerSeat {
		total += c
		if c > 0 {
			rep.Flagged++
		}
	}
	if len(occ) > 0 {
		rep.MeanCount = float64(total) / float64(len(occ))
	}
	return rep
}
