package eval

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"galab/internal/ga"
)

func TestRastrigin(t *testing.T) {
	assert.Equal(t, 0.0, Rastrigin([]float64{0, 0, 0}))
	assert.InDelta(t, 1.0, Rastrigin([]float64{1}), 1e-9)
	assert.InDelta(t, 2.0, Rastrigin([]float64{1, -1}), 1e-9)
	// at 0.5 the cosine term is -1: 10 + 0.25 + 10
	assert.InDelta(t, 20.25, Rastrigin([]float64{0.5}), 1e-9)
}

func TestOtherBenchmarks(t *testing.T) {
	assert.Equal(t, 14.0, Sphere([]float64{1, 2, 3}))
	assert.InDelta(t, 0.0, Ackley([]float64{0, 0}), 1e-12)
	assert.Equal(t, 0.0, Ackley(nil))
	assert.Equal(t, 0.0, Rosenbrock([]float64{1, 1, 1}))
	assert.Equal(t, 101.0, Rosenbrock([]float64{0, 1}))
}

func TestLookup(t *testing.T) {
	fn, err := Lookup("rastrigin")
	require.NoError(t, err)
	assert.Equal(t, 0.0, fn([]float64{0}))

	_, err = Lookup("griewank")
	assert.Error(t, err)
	assert.Equal(t, []string{"ackley", "rastrigin", "rosenbrock", "sphere"}, Names())
}

func TestEvaluatorScoresPopulation(t *testing.T) {
	e := NewEvaluator(Sphere)
	pop := ga.Population{
		{Genome: []float64{1, 1}},
		{Genome: []float64{2, 0}},
	}

	n, err := e.Evaluate(pop)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, 2, e.Count())
	assert.True(t, pop[0].Valid)
	assert.Equal(t, 2.0, pop[0].Fitness)
	assert.Equal(t, 4.0, pop[1].Fitness)
}

func TestEvaluatorRejectsNonFiniteFitness(t *testing.T) {
	e := NewEvaluator(func(x []float64) float64 {
		if x[0] < 0 {
			return math.NaN()
		}
		return x[0]
	})
	pop := ga.Population{
		{Genome: []float64{1}},
		{Genome: []float64{-1}},
		{Genome: []float64{2}},
	}

	n, err := e.Evaluate(pop)
	assert.ErrorIs(t, err, ErrNonFinite)
	assert.Equal(t, 1, n)
	assert.False(t, pop[1].Valid)
	assert.False(t, pop[2].Valid)

	_, err = NewEvaluator(func([]float64) float64 { return math.Inf(1) }).Evaluate(ga.Population{{Genome: []float64{0}}})
	assert.ErrorIs(t, err, ErrNonFinite)
}
