package eval

import (
	"errors"
	"fmt"
	"math"

	"galab/internal/ga"
)

// ErrNonFinite is returned when the benchmark produces NaN or an infinity
var ErrNonFinite = errors.New("eval: non-finite fitness")

// Evaluator handles fitness computation for a population. Evaluation is
// sequential; individuals are visited in slot order.
type Evaluator struct {
	fn    Func
	count int
}

// NewEvaluator creates a new evaluator
func NewEvaluator(fn Func) *Evaluator {
	return &Evaluator{fn: fn}
}

// Evaluate scores every individual in pop and returns how many it scored.
// It stops at the first non-finite fitness.
func (e *Evaluator) Evaluate(pop ga.Population) (int, error) {
	for i, ind := range pop {
		fitness := e.fn(ind.Genome)
		if math.IsNaN(fitness) || math.IsInf(fitness, 0) {
			return i, fmt.Errorf("%w: %v", ErrNonFinite, fitness)
		}
		ind.Fitness = fitness
		ind.Valid = true
		e.count++
	}
	return len(pop), nil
}

// Count returns the total number of evaluations performed so far
func (e *Evaluator) Count() int {
	return e.count
}
