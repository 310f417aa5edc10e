// Package generator draws the group sizes a venue has to seat.
//
// Every generator keeps drawing until the next draw would reach the requested
// head count, then adds one final group holding the remainder, so the queue
// always sums to exactly the total.
package generator

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"slices"

	"svw.info/seatplan/internal/domain"
)

var (
	ErrBadParameters = errors.New("invalid distribution parameters")
	ErrTotalMismatch = errors.New("group counts do not match requested total")
)

// fill draws sizes until the next one would reach total and closes with the remainder.
func fill(total int, draw func() int) *domain.GroupQueue {
	if total <= 0 {
		return domain.NewGroupQueue()
	}
	var groups []int
	sum := 0
	next := draw()
	for sum+next < total {
		groups = append(groups, next)
		sum += next
		next = draw()
	}
	groups = append(groups, total-sum)
	return domain.NewGroupQueue(groups...)
}

// Uniform draws sizes uniformly from [1, Max).
type Uniform struct {
	Max int
}

func (u Uniform) Generate(rng *rand.Rand, total int) (*domain.GroupQueue, error) {
	if u.Max < 2 {
		return nil, fmt.Errorf("%w: uniform max %d must be at least 2", ErrBadParameters, u.Max)
	}
	return fill(total, func() int { return 1 + rng.Intn(u.Max-1) }), nil
}

// Decaying weights size i (1..Max) by Lambda^(i-1).
type Decaying struct {
	Lambda float64
	Max    int
}

func (d Decaying) Generate(rng *rand.Rand, total int) (*domain.GroupQueue, error) {
	if d.Max < 1 || d.Lambda <= 0 {
		return nil, fmt.Errorf("%w: decaying lambda %v max %d", ErrBadParameters, d.Lambda, d.Max)
	}
	weights := make(map[int]float64, d.Max)
	w := 1.0
	for size := 1; size <= d.Max; size++ {
		weights[size] = w
		w *= d.Lambda
	}
	draw, err := weightedDraw(rng, weights)
	if err != nil {
		return nil, err
	}
	return fill(total, draw), nil
}

// Normal rounds normal draws to the nearest size and redraws anything outside [1, Max].
type Normal struct {
	Mean float64
	Std  float64
	Max  int
}

const maxRedraws = 10000

func (n Normal) Generate(rng *rand.Rand, total int) (*domain.GroupQueue, error) {
	if n.Max < 1 || n.Std < 0 {
		return nil, fmt.Errorf("%w: normal mean %v std %v max %d", ErrBadParameters, n.Mean, n.Std, n.Max)
	}
	var drawErr error
	draw := func() int {
		for i := 0; i < maxRedraws; i++ {
			v := int(math.RoundToEven(rng.NormFloat64()*n.Std + n.Mean))
			if v >= 1 && v <= n.Max {
				return v
			}
		}
		drawErr = fmt.Errorf("%w: normal(%v, %v) never lands in [1, %d]", ErrBadParameters, n.Mean, n.Std, n.Max)
		return total // ends the fill loop
	}
	q := fill(total, draw)
	if drawErr != nil {
		return nil, drawErr
	}
	return q, nil
}

// Custom seats an explicit number of groups of each size.
type Custom struct {
	Counts map[int]int
}

// Generate ignores rng. A positive total must match the counts.
func (c Custom) Generate(_ *rand.Rand, total int) (*domain.GroupQueue, error) {
	var groups []int
	sum := 0
	for size, count := range c.Counts {
		if size < 1 || count < 0 {
			return nil, fmt.Errorf("%w: %d groups of size %d", ErrBadParameters, count, size)
		}
		for i := 0; i < count; i++ {
			groups = append(groups, size)
		}
		sum += size * count
	}
	if total > 0 && total != sum {
		return nil, fmt.Errorf("%w: counts sum to %d, want %d", ErrTotalMismatch, sum, total)
	}
	return domain.NewGroupQueue(groups...), nil
}

// Weighted draws sizes in proportion to relative weights.
type Weighted struct {
	Weights map[int]float64
}

func (w Weighted) Generate(rng *rand.Rand, total int) (*domain.GroupQueue, error) {
	draw, err := weightedDraw(rng, w.Weights)
	if err != nil {
		return nil, err
	}
	return fill(total, draw), nil
}

func weightedDraw(rng *rand.Rand, weights map[int]float64) (func() int, error) {
	sizes := make([]int, 0, len(weights))
	for size, wt := range weights {
		if size < 1 || wt < 0 || math.IsNaN(wt) || math.IsInf(wt, 0) {
			return nil, fmt.Errorf("%w: weight %v for size %d", ErrBadParameters, wt, size)
		}
		if wt > 0 {
			sizes = append(sizes, size)
		}
	}
	if len(sizes) == 0 {
		return nil, fmt.Errorf("%w: no positive weights", ErrBadParameters)
	}
	slices.Sort(sizes)
	cum := make([]float64, len(sizes))
	acc := 0.0
	for i, s := range sizes {
		acc += weights[s]
		cum[i] = acc
	}
	return func() int {
		r := rng.Float64() * acc
		for i, c := range cum {
			if r < c {
				return sizes[i]
			}
		}
		return sizes[len(sizes)-1]
	}, nil
}
