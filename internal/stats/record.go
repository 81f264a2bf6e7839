package stats

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Record holds per-generation fitness statistics. Records are created once
// per generation and never modified afterwards.
type Record struct {
	Generation  int     `json:"generation"`
	Evaluations int     `json:"nevals"`
	Mean        float64 `json:"avg"`
	Std         float64 `json:"std"`
	Min         float64 `json:"min"`
	Max         float64 `json:"max"`
}

// Compute aggregates the fitness values of one generation. The standard
// deviation is the population one (divides by n). An empty generation has
// all-zero statistics.
func Compute(gen, nevals int, fitness []float64) Record {
	rec := Record{Generation: gen, Evaluations: nevals}
	if len(fitness) == 0 {
		return rec
	}

	rec.Mean, rec.Std = stat.PopMeanStdDev(fitness, nil)
	rec.Min = floats.Min(fitness)
	rec.Max = floats.Max(fitness)
	return rec
}

// Column returns one statistic across the log, keyed by its JSON name
func Column(log []Record, name string) []float64 {
	out := make([]float64, len(log))
	for i, rec := range log {
		switch name {
		case "avg":
			out[i] = rec.Mean
		case "std":
			out[i] = rec.Std
		case "min":
			out[i] = rec.Min
		case "max":
			out[i] = rec.Max
		default:
			out[i] = math.NaN()
		}
	}
	return out
}
