package ga

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scored(fitness float64, genes ...float64) *Individual {
	return &Individual{Genome: genes, Fitness: fitness, Valid: true}
}

func TestHallOfFameKeepsBestFirst(t *testing.T) {
	hof := NewHallOfFame(3, 1)
	require.NoError(t, hof.Update(Population{scored(1, 1), scored(5, 5), scored(3, 3), scored(4, 4)}))

	require.Equal(t, 3, hof.Len())
	assert.Equal(t, 5.0, hof.At(0).Fitness)
	assert.Equal(t, 4.0, hof.At(1).Fitness)
	assert.Equal(t, 3.0, hof.At(2).Fitness)
}

func TestHallOfFameMinimises(t *testing.T) {
	hof := NewHallOfFame(2, -1)
	require.NoError(t, hof.Update(Population{scored(1, 1), scored(5, 5), scored(0.5, 0.5)}))

	assert.Equal(t, 0.5, hof.At(0).Fitness)
	assert.Equal(t, 1.0, hof.At(1).Fitness)
}

func TestHallOfFameDeduplicatesEqualGenomes(t *testing.T) {
	hof := NewHallOfFame(3, 1)
	require.NoError(t, hof.Update(Population{scored(5, 1, 2), scored(5, 1, 2), scored(2, 3, 4)}))
	require.NoError(t, hof.Update(Population{scored(5, 1, 2)}))

	assert.Equal(t, 2, hof.Len())
}

func TestHallOfFameStoresCopies(t *testing.T) {
	hof := NewHallOfFame(1, 1)
	best := scored(9, 1, 2, 3)
	require.NoError(t, hof.Update(Population{best}))

	best.Genome[0] = 100
	best.Fitness = -1
	assert.Equal(t, []float64{1, 2, 3}, hof.At(0).Genome)
	assert.Equal(t, 9.0, hof.At(0).Fitness)
	assert.NotSame(t, best, hof.At(0))
}

func TestHallOfFameIgnoresUnevaluated(t *testing.T) {
	hof := NewHallOfFame(3, 1)
	require.NoError(t, hof.Update(Population{{Genome: []float64{1}}}))
	assert.Equal(t, 0, hof.Len())
}

func TestHallOfFameZeroSize(t *testing.T) {
	hof := NewHallOfFame(0, 1)
	require.NoError(t, hof.Update(Population{scored(1, 1)}))
	assert.Equal(t, 0, hof.Len())
}

func TestHallOfFameHandsOutCopies(t *testing.T) {
	hof := NewHallOfFame(2, 1)
	require.NoError(t, hof.Update(Population{scored(9, 1, 2), scored(4, 3, 4)}))

	top := hof.At(0)
	top.Genome[0] = 100
	top.Fitness = -50

	items := hof.Items()
	items[1].Genome[1] = 100
	items[0], items[1] = items[1], items[0]

	assert.Equal(t, []float64{1, 2}, hof.At(0).Genome)
	assert.Equal(t, 9.0, hof.At(0).Fitness)
	assert.Equal(t, []float64{3, 4}, hof.At(1).Genome)

	// the untouched entries still rank and deduplicate as before
	require.NoError(t, hof.Update(Population{scored(9, 1, 2), scored(5, 7, 7)}))
	assert.Equal(t, []float64{1, 2}, hof.At(0).Genome)
	assert.Equal(t, []float64{7, 7}, hof.At(1).Genome)
}
