package logging

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"galab/internal/ga"
	"galab/internal/stats"
	"galab/internal/storage"
)

func TestLoggerWritesCSVAndJSONL(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "runs", "original.csv")
	jsonPath := filepath.Join(dir, "runs", "original.jsonl")
	var console bytes.Buffer

	l, err := NewLogger(csvPath, jsonPath, &console, nil)
	require.NoError(t, err)
	require.NoError(t, l.Init())

	log := []stats.Record{
		stats.Compute(1, 80, []float64{1, 2, 3}),
		stats.Compute(2, 77, []float64{2, 3, 4}),
	}
	for _, rec := range log {
		require.NoError(t, l.LogGeneration(rec))
	}
	l.Close()

	f, err := os.Open(csvPath)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"gen", "nevals", "avg", "std", "min", "max"}, rows[0])
	assert.Equal(t, "77", rows[2][1])

	loaded, err := LoadRecords(jsonPath)
	require.NoError(t, err)
	assert.Equal(t, log, loaded)

	assert.Contains(t, console.String(), "nevals")
	assert.Equal(t, 3, bytes.Count(console.Bytes(), []byte("\n")))
}

func TestLoggerIgnoresRecordsBeforeInit(t *testing.T) {
	dir := t.TempDir()
	l, err := NewLogger(filepath.Join(dir, "a.csv"), filepath.Join(dir, "a.jsonl"), nil, nil)
	require.NoError(t, err)
	assert.NoError(t, l.LogGeneration(stats.Record{Generation: 1}))
}

func TestLoadRecordsReportsBadLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.jsonl")
	require.NoError(t, os.WriteFile(path, []byte("{\"generation\":1}\nnot json\n"), 0644))

	_, err := LoadRecords(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad.jsonl:2")
}

func TestHallOfFameArtifact(t *testing.T) {
	hof := ga.NewHallOfFame(3, 1)
	require.NoError(t, hof.Update(ga.Population{
		{Genome: []float64{1, 2}, Fitness: 3, Valid: true},
		{Genome: []float64{4, 5}, Fitness: 9, Valid: true},
	}))

	champions := Champions(hof)
	require.Len(t, champions, 2)
	assert.Equal(t, 1, champions[0].Rank)
	assert.Equal(t, 9.0, champions[0].Fitness)

	champions[0].Genome[0] = 100
	assert.Equal(t, 4.0, hof.At(0).Genome[0])

	path := filepath.Join(t.TempDir(), "hof.json")
	artifact := HallOfFameArtifact{RunID: "r1", Label: "Modified algorithm", Generation: 10, Champions: Champions(hof)}
	require.NoError(t, SaveHallOfFame(path, artifact))

	loaded, err := LoadHallOfFame(path)
	require.NoError(t, err)
	assert.Equal(t, artifact, loaded)
}

func TestWriteReport(t *testing.T) {
	var buf bytes.Buffer
	log := []stats.Record{
		{Generation: 1, Evaluations: 80, Mean: 1, Max: 2},
		{Generation: 50, Evaluations: 79, Mean: 5, Max: 9},
	}
	champions := []storage.Champion{
		{Rank: 1, Fitness: 9, Genome: []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}},
	}

	WriteReport(&buf, "Original algorithm", log, champions)

	out := buf.String()
	assert.Contains(t, out, "Original algorithm")
	assert.Contains(t, out, "Hall of Fame")
	assert.Contains(t, out, "9.000000")
	assert.Contains(t, out, "+2]")
}
