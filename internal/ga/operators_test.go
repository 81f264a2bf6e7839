package ga

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFactoriesRespectRanges(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 200; i++ {
		wide := WideInit().New(rng, 8)
		narrow := NarrowInit().New(rng, 8)
		require.Len(t, wide.Genome, 8)
		require.Len(t, narrow.Genome, 8)
		for j := range wide.Genome {
			require.GreaterOrEqual(t, wide.Genome[j], -5.0)
			require.Less(t, wide.Genome[j], 5.0)
			require.GreaterOrEqual(t, narrow.Genome[j], 0.0)
			require.Less(t, narrow.Genome[j], 1.0)
		}
		assert.False(t, wide.Valid)
	}
}

func TestOnePointCrossoverSwapsTails(t *testing.T) {
	a := &Individual{Genome: []float64{1, 1, 1, 1}, Valid: true}
	b := &Individual{Genome: []float64{2, 2, 2, 2}, Valid: true}

	// Intn(3) = 1 so the cut is at index 2
	children, err := OnePointCrossover{}.Mate(fixedSource{index: 1}, a, b)
	require.NoError(t, err)
	require.Len(t, children, 2)
	assert.Equal(t, []float64{1, 1, 2, 2}, children[0].Genome)
	assert.Equal(t, []float64{2, 2, 1, 1}, children[1].Genome)
	assert.False(t, children[0].Valid)
	assert.False(t, children[1].Valid)
}

func TestOnePointCrossoverSingleGeneIsNoop(t *testing.T) {
	a := &Individual{Genome: []float64{1}, Valid: true}
	b := &Individual{Genome: []float64{2}, Valid: true}

	children, err := OnePointCrossover{}.Mate(fixedSource{}, a, b)
	require.NoError(t, err)
	assert.Equal(t, []float64{1}, children[0].Genome)
	assert.Equal(t, []float64{2}, children[1].Genome)
	assert.True(t, children[0].Valid)
}

func TestUniformCrossoverKeepsGenePositions(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	a := &Individual{Genome: []float64{1, 2, 3, 4, 5}}
	b := &Individual{Genome: []float64{-1, -2, -3, -4, -5}}

	children, err := UniformCrossover{Rate: 0.5}.Mate(rng, a, b)
	require.NoError(t, err)
	for i := range children[0].Genome {
		x, y := children[0].Genome[i], children[1].Genome[i]
		assert.Equal(t, 0.0, x+y, "gene %d must come from one parent each", i)
		assert.Equal(t, float64(i+1), max(x, y))
	}
}

func TestTournamentSelectorReturnsDetachedWinners(t *testing.T) {
	pool := Population{
		{Genome: []float64{1}, Fitness: 1, Valid: true},
		{Genome: []float64{2}, Fitness: 2, Valid: true},
		{Genome: []float64{3}, Fitness: 3, Valid: true},
	}
	rng := rand.New(rand.NewSource(8))

	out := TournamentSelector{Size: 4}.Select(rng, pool, 10, 1)
	require.Len(t, out, 10)
	for _, ind := range out {
		for _, p := range pool {
			assert.NotSame(t, p, ind)
		}
	}
}

func TestTournamentSelectHonoursWeight(t *testing.T) {
	pool := Population{
		{Genome: []float64{1}, Fitness: 1},
		{Genome: []float64{9}, Fitness: 9},
	}
	// a tournament over every slot always finds the extreme
	src := &cyclingSource{}
	assert.Equal(t, 9.0, TournamentSelect(src, pool, 2, 1).Fitness)
	assert.Equal(t, 1.0, TournamentSelect(src, pool, 2, -1).Fitness)
}

func TestTournamentSelectorEmptyPool(t *testing.T) {
	out := TournamentSelector{Size: 4}.Select(fixedSource{}, Population{}, 5, 1)
	assert.Empty(t, out)
}

func TestPopulationHelpers(t *testing.T) {
	pop := Population{
		{Genome: []float64{1}, Fitness: 4, Valid: true},
		{Genome: []float64{2}},
		{Genome: []float64{3}, Fitness: 7, Valid: true},
	}
	assert.Equal(t, []float64{4, 7}, pop.Fitnesses())
	assert.Len(t, pop.Invalid(), 1)
	assert.Equal(t, 7.0, pop.Best(1).Fitness)
	assert.Equal(t, 0.0, pop.Best(-1).Fitness)

	clone := pop.Clone()
	clone[0].Genome[0] = 42
	assert.Equal(t, 1.0, pop[0].Genome[0])

	pop.SortByFitness(1)
	assert.Equal(t, 7.0, pop[0].Fitness)
}

// cyclingSource walks the pool in order
type cyclingSource struct {
	next int
}

func (s *cyclingSource) Float64() float64     { return 0 }
func (s *cyclingSource) NormFloat64() float64 { return 0 }
func (s *cyclingSource) Intn(n int) int {
	v := s.next % n
	s.next++
	return v
}
