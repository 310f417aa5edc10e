package suggest

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"svw.info/seatplan/internal/domain"
)

func row(t *testing.T, n int) *domain.Grid {
	t.Helper()
	g, err := domain.NewGrid(domain.Layout{Dimensions: [2]int{n, 1}})
	require.NoError(t, err)
	return g
}

func TestSearchMonotoneOracle(t *testing.T) {
	tests := []struct {
		name  string
		seats int
		limit int
		want  int
	}{
		{"middle", 100, 37, 37},
		{"everything safe", 10, 10, 10},
		{"only one", 50, 1, 1},
		{"near the top", 64, 60, 60},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(DefaultConfig())
			var probes []int
			got, err := s.search(tt.seats, func(n int) (bool, error) {
				probes = append(probes, n)
				return n <= tt.limit, nil
			})
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			for _, p := range probes {
				assert.LessOrEqual(t, p, tt.seats)
			}
		})
	}
}

func TestSearchProbeSequence(t *testing.T) {
	s := New(DefaultConfig())
	var probes []int
	got, err := s.search(100, func(n int) (bool, error) {
		probes = append(probes, n)
		return n <= 37, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 37, got)
	// 37.5 rounds to 38; the bracket [34.375, 37.5] ends bisection, then the scan starts at 38.
	assert.Equal(t, []int{50, 25, 38, 31, 34, 38, 37}, probes)
}

func TestSearchNothingSafe(t *testing.T) {
	s := New(DefaultConfig())
	_, err := s.search(20, func(int) (bool, error) { return false, nil })
	assert.ErrorIs(t, err, ErrNoSafeCount)
}

func TestSearchPropagatesErrors(t *testing.T) {
	boom := errors.New("boom")
	s := New(DefaultConfig())
	_, err := s.search(20, func(int) (bool, error) { return false, boom })
	assert.ErrorIs(t, err, boom)
}

func TestIsSafe(t *testing.T) {
	singles := map[int]float64{1: 1}
	tests := []struct {
		name  string
		count int
		want  bool
	}{
		{"two singles at the ends", 2, true},
		{"five singles spaced", 5, true},
		{"six singles touch", 6, false},
		{"more people than seats", 11, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Bootstrap = 10
			s := New(cfg)
			g := row(t, 10)
			got, err := s.IsSafe(context.Background(), g, singles, tt.count)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, 10, g.Unfilled(), "trials must not touch the caller's grid")
		})
	}
}

func TestIsSafeStopsEarly(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Bootstrap = 100
	cfg.EarlyStop = 25
	var trials atomic.Int64
	s := New(cfg, WithTrialObserver(func(bool) { trials.Add(1) }))

	ok, err := s.IsSafe(context.Background(), row(t, 10), map[int]float64{1: 1}, 10)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.EqualValues(t, 25, trials.Load())

	trials.Store(0)
	ok, err = s.IsSafe(context.Background(), row(t, 10), map[int]float64{1: 1}, 2)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.EqualValues(t, 100, trials.Load())
}

func TestIsSafeRejectsBadWeights(t *testing.T) {
	s := New(DefaultConfig())
	_, err := s.IsSafe(context.Background(), row(t, 10), map[int]float64{}, 3)
	assert.Error(t, err)
}

func TestSuggestSinglesOnARow(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Bootstrap = 20
	cfg.Parallelism = 4
	s := New(cfg)

	got, err := s.Suggest(context.Background(), row(t, 10), map[int]float64{1: 1})
	require.NoError(t, err)
	assert.Equal(t, 5, got)
}

func TestSuggestIsReproducible(t *testing.T) {
	layout := domain.Layout{Dimensions: [2]int{9, 6}, EmptyCols: []int{4}}
	weights := map[int]float64{1: 0.4, 2: 0.4, 3: 0.1, 4: 0.1}
	cfg := DefaultConfig()
	cfg.Bootstrap = 12
	cfg.Seed = 7

	var got []int
	for _, par := range []int{1, 3} {
		cfg.Parallelism = par
		g, err := domain.NewGrid(layout)
		require.NoError(t, err)
		n, err := New(cfg).Suggest(context.Background(), g, weights)
		require.NoError(t, err)
		got = append(got, n)
	}
	assert.Equal(t, got[0], got[1])
	assert.Positive(t, got[0])
}
