package ga

import (
	"errors"
	"fmt"
	"iter"
	"slices"

	"galab/internal/stats"
)

var (
	// ErrInvalidParams is returned when the driver is configured with values
	// that cannot produce a run.
	ErrInvalidParams = errors.New("ga: invalid parameters")
	// ErrConsumed is yielded when a finished generation sequence is ranged
	// over a second time.
	ErrConsumed = errors.New("ga: generation sequence already consumed")
)

// Evaluator assigns a fitness to every individual it is given and reports
// how many evaluations it performed.
type Evaluator interface {
	Evaluate(pop Population) (int, error)
}

// Toolbox bundles the operators a run is built from
type Toolbox struct {
	Init     Factory
	Evaluate Evaluator
	Mate     Crossover
	Mutate   Mutator
	Select   Selector
}

// Params are the mu+lambda hyperparameters
type Params struct {
	Dimension      int
	Mu             int     // survivors per generation, also the initial population size
	Lambda         int     // offspring per generation
	CXPB           float64 // probability an offspring comes from crossover
	MUTPB          float64 // probability an offspring comes from mutation
	Generations    int
	HallOfFameSize int
	Weight         float64 // +1 maximise, -1 minimise
}

// Validate checks params before any generation runs
func (p Params) Validate() error {
	switch {
	case p.Dimension <= 0:
		return fmt.Errorf("%w: dimension must be positive, got %d", ErrInvalidParams, p.Dimension)
	case p.Mu < 0 || p.Lambda < 0:
		return fmt.Errorf("%w: mu and lambda must not be negative (mu=%d lambda=%d)", ErrInvalidParams, p.Mu, p.Lambda)
	case p.Generations < 0:
		return fmt.Errorf("%w: generations must not be negative, got %d", ErrInvalidParams, p.Generations)
	case p.CXPB < 0 || p.MUTPB < 0 || p.CXPB+p.MUTPB > 1:
		return fmt.Errorf("%w: cxpb + mutpb must lie in [0, 1] (cxpb=%g mutpb=%g)", ErrInvalidParams, p.CXPB, p.MUTPB)
	case p.Weight != 1 && p.Weight != -1:
		return fmt.Errorf("%w: weight must be 1 or -1, got %g", ErrInvalidParams, p.Weight)
	}
	return nil
}

func (t Toolbox) validate() error {
	if t.Init == nil || t.Evaluate == nil || t.Mate == nil || t.Mutate == nil || t.Select == nil {
		return fmt.Errorf("%w: toolbox is missing an operator", ErrInvalidParams)
	}
	return nil
}

// Algorithm drives a (mu + lambda) evolutionary strategy. Parents compete
// with their offspring for survival. Tournament selection can still drop the
// best parent; only the hall-of-fame best is guaranteed never to get worse.
type Algorithm struct {
	params     Params
	toolbox    Toolbox
	rng        Source
	population Population
	hof        *HallOfFame
	consumed   bool
}

// NewAlgorithm validates the configuration and creates the initial
// population of Mu individuals.
func NewAlgorithm(rng Source, toolbox Toolbox, params Params) (*Algorithm, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if err := toolbox.validate(); err != nil {
		return nil, err
	}
	return &Algorithm{
		params:     params,
		toolbox:    toolbox,
		rng:        rng,
		population: NewPopulation(rng, toolbox.Init, params.Mu, params.Dimension),
		hof:        NewHallOfFame(params.HallOfFameSize, params.Weight),
	}, nil
}

// Population returns the current population
func (a *Algorithm) Population() Population {
	return a.population
}

// HallOfFame returns the best individuals seen so far
func (a *Algorithm) HallOfFame() *HallOfFame {
	return a.hof
}

// Params returns the run parameters
func (a *Algorithm) Params() Params {
	return a.params
}

// Generations returns the lazy sequence of per-generation records. It
// yields exactly Params.Generations records unless an error stops the run,
// in which case the error is yielded once and the sequence ends. The
// sequence can be ranged over only once.
func (a *Algorithm) Generations() iter.Seq2[stats.Record, error] {
	return func(yield func(stats.Record, error) bool) {
		if a.consumed {
			yield(stats.Record{}, ErrConsumed)
			return
		}
		a.consumed = true

		if _, err := a.toolbox.Evaluate.Evaluate(a.population.Invalid()); err != nil {
			yield(stats.Record{}, fmt.Errorf("evaluate initial population: %w", err))
			return
		}
		if err := a.hof.Update(a.population); err != nil {
			yield(stats.Record{}, err)
			return
		}

		for gen := 1; gen <= a.params.Generations; gen++ {
			rec, err := a.step(gen)
			if err != nil {
				yield(stats.Record{}, fmt.Errorf("generation %d: %w", gen, err))
				return
			}
			if !yield(rec, nil) {
				return
			}
		}
	}
}

// Run drains the generation sequence into a log
func (a *Algorithm) Run() ([]stats.Record, error) {
	var log []stats.Record
	for rec, err := range a.Generations() {
		if err != nil {
			return log, err
		}
		log = append(log, rec)
	}
	return log, nil
}

func (a *Algorithm) step(gen int) (stats.Record, error) {
	offspring, err := a.vary()
	if err != nil {
		return stats.Record{}, err
	}

	nevals, err := a.toolbox.Evaluate.Evaluate(offspring.Invalid())
	if err != nil {
		return stats.Record{}, err
	}
	if err := a.hof.Update(offspring); err != nil {
		return stats.Record{}, err
	}

	pool := append(slices.Clone(a.population), offspring...)
	a.population = a.toolbox.Select.Select(a.rng, pool, a.params.Mu, a.params.Weight)

	return stats.Compute(gen, nevals, a.population.Fitnesses()), nil
}

// vary produces Lambda offspring. Each one comes from crossover, mutation
// or plain reproduction, never from more than one of them.
func (a *Algorithm) vary() (Population, error) {
	n := len(a.population)
	if n == 0 {
		return Population{}, nil
	}

	offspring := make(Population, 0, a.params.Lambda)
	for range a.params.Lambda {
		r := a.rng.Float64()
		switch {
		case r < a.params.CXPB:
			i, j := a.pickPair(n)
			children, err := a.toolbox.Mate.Mate(a.rng, a.population[i].Clone(), a.population[j].Clone())
			if err != nil {
				return nil, fmt.Errorf("mate: %w", err)
			}
			offspring = append(offspring, children[0])
		case r < a.params.CXPB+a.params.MUTPB:
			children, err := a.toolbox.Mutate.Mutate(a.rng, a.population[a.rng.Intn(n)].Clone())
			if err != nil {
				return nil, fmt.Errorf("mutate: %w", err)
			}
			offspring = append(offspring, children[0])
		default:
			offspring = append(offspring, a.population[a.rng.Intn(n)].Clone())
		}
	}
	return offspring, nil
}

// pickPair draws two distinct parent indexes when the population allows it
func (a *Algorithm) pickPair(n int) (int, int) {
	i := a.rng.Intn(n)
	if n < 2 {
		return i, i
	}
	j := a.rng.Intn(n - 1)
	if j >= i {
		j++
	}
	return i, j
}
