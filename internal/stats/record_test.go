package stats

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeUsesPopulationStdDev(t *testing.T) {
	rec := Compute(4, 12, []float64{1, 2, 3, 4})

	assert.Equal(t, 4, rec.Generation)
	assert.Equal(t, 12, rec.Evaluations)
	assert.InDelta(t, 2.5, rec.Mean, 1e-12)
	assert.InDelta(t, math.Sqrt(1.25), rec.Std, 1e-12)
	assert.Equal(t, 1.0, rec.Min)
	assert.Equal(t, 4.0, rec.Max)
}

func TestComputeEmptyGeneration(t *testing.T) {
	rec := Compute(1, 0, nil)
	assert.Equal(t, Record{Generation: 1}, rec)
}

func TestComputeSingleValue(t *testing.T) {
	rec := Compute(1, 1, []float64{3})
	assert.Equal(t, 3.0, rec.Mean)
	assert.Equal(t, 0.0, rec.Std)
}

func TestColumn(t *testing.T) {
	log := []Record{
		{Generation: 1, Mean: 1, Min: 0, Max: 2},
		{Generation: 2, Mean: 3, Min: 1, Max: 5},
	}
	assert.Equal(t, []float64{1, 3}, Column(log, "avg"))
	assert.Equal(t, []float64{2, 5}, Column(log, "max"))
	assert.True(t, math.IsNaN(Column(log, "median")[0]))
}

func TestPlotWritesImage(t *testing.T) {
	log := make([]Record, 0, 20)
	for g := 1; g <= 20; g++ {
		log = append(log, Compute(g, 8, []float64{float64(g), float64(2 * g), float64(3 * g)}))
	}
	path := filepath.Join(t.TempDir(), "plots", "run.png")

	require.NoError(t, Plot(log, "Original algorithm", path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}
