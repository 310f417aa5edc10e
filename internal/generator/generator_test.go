package generator

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"svw.info/seatplan/internal/ports"
)

func TestGeneratorsHitTotalExactly(t *testing.T) {
	cases := []struct {
		name string
		gen  ports.Generator
		max  int
	}{
		{"uniform", Uniform{Max: 5}, 4},
		{"decaying", Decaying{Lambda: 0.5, Max: 4}, 4},
		{"normal", Normal{Mean: 2, Std: 1, Max: 4}, 4},
		{"weighted", Weighted{Weights: map[int]float64{1: 0.3, 2: 0.4, 3: 0.2, 4: 0.1}}, 4},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			for seed := int64(1); seed <= 20; seed++ {
				total := 10 + int(seed)*7
				q, err := tc.gen.Generate(rand.New(rand.NewSource(seed)), total)
				require.NoError(t, err)
				assert.Equal(t, total, q.Total())
				for _, s := range q.Sizes() {
					assert.GreaterOrEqual(t, s, 1)
					assert.LessOrEqual(t, s, tc.max)
				}
			}
		})
	}
}

func TestGeneratorsAreReproducible(t *testing.T) {
	gen := Weighted{Weights: map[int]float64{1: 1, 2: 2, 4: 1}}
	a, err := gen.Generate(rand.New(rand.NewSource(99)), 60)
	require.NoError(t, err)
	b, err := gen.Generate(rand.New(rand.NewSource(99)), 60)
	require.NoError(t, err)
	assert.Equal(t, a.Sizes(), b.Sizes())
}

func TestWeightedSkipsZeroWeights(t *testing.T) {
	q, err := Weighted{Weights: map[int]float64{2: 1, 3: 0}}.Generate(rand.New(rand.NewSource(1)), 41)
	require.NoError(t, err)
	sizes := q.Sizes()
	// every draw is a pair; only the closing remainder can differ
	for _, s := range sizes[1:] {
		assert.Equal(t, 2, s)
	}
	assert.Equal(t, 1, sizes[0])
}

func TestCustom(t *testing.T) {
	q, err := Custom{Counts: map[int]int{1: 2, 3: 1}}.Generate(nil, 0)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 1, 3}, q.Sizes())

	_, err = Custom{Counts: map[int]int{1: 2}}.Generate(nil, 5)
	require.ErrorIs(t, err, ErrTotalMismatch)
}

func TestBadParameters(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for name, gen := range map[string]ports.Generator{
		"uniform max":     Uniform{Max: 1},
		"decaying lambda": Decaying{Lambda: 0, Max: 3},
		"normal range":    Normal{Mean: 10, Std: 0, Max: 4},
		"no weights":      Weighted{},
		"negative weight": Weighted{Weights: map[int]float64{1: -1}},
	} {
		_, err := gen.Generate(rng, 10)
		assert.ErrorIs(t, err, ErrBadParameters, name)
	}
}

func TestZeroTotalIsEmpty(t *testing.T) {
	q, err := Uniform{Max: 4}.Generate(rand.New(rand.NewSource(1)), 0)
	require.NoError(t, err)
	assert.True(t, q.Empty())
}

func TestDistributionGenerator(t *testing.T) {
	g, err := Distribution{Kind: "decaying", Lambda: 0.4, Max: 4}.Generator()
	require.NoError(t, err)
	assert.Equal(t, Decaying{Lambda: 0.4, Max: 4}, g)

	_, err = Distribution{Kind: "poisson"}.Generator()
	require.ErrorIs(t, err, ErrBadParameters)
}
