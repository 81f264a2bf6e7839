package ga

import (
	"math/rand"
	"slices"
	"sort"
)

// Source is the random stream consumed by factories and operators.
// *rand.Rand satisfies it.
type Source interface {
	Float64() float64
	Intn(n int) int
	NormFloat64() float64
}

var _ Source = (*rand.Rand)(nil)

// Individual is a fixed-length real vector with its fitness.
// Valid is false until the individual has been evaluated.
type Individual struct {
	Genome  []float64
	Fitness float64
	Valid   bool
}

// Len returns the genome dimension
func (ind *Individual) Len() int {
	return len(ind.Genome)
}

// Invalidate marks the fitness as stale after a variation
func (ind *Individual) Invalidate() {
	ind.Fitness = 0
	ind.Valid = false
}

// Clone creates a deep copy of an individual
func (ind *Individual) Clone() *Individual {
	return &Individual{
		Genome:  slices.Clone(ind.Genome),
		Fitness: ind.Fitness,
		Valid:   ind.Valid,
	}
}

// Equal reports exact genome equality
func (ind *Individual) Equal(other *Individual) bool {
	return slices.Equal(ind.Genome, other.Genome)
}

// Population is an unordered collection of individuals. Each slot owns its
// individual; two slots never point at the same value.
type Population []*Individual

// NewPopulation creates a new random population
func NewPopulation(rng Source, factory Factory, size, dim int) Population {
	if size <= 0 {
		return Population{}
	}
	pop := make(Population, size)
	for i := range pop {
		pop[i] = factory.New(rng, dim)
	}
	return pop
}

// Size returns the population size
func (p Population) Size() int {
	return len(p)
}

// Fitnesses returns the fitness of every valid individual
func (p Population) Fitnesses() []float64 {
	out := make([]float64, 0, len(p))
	for _, ind := range p {
		if ind.Valid {
			out = append(out, ind.Fitness)
		}
	}
	return out
}

// Invalid returns the individuals that still need evaluation
func (p Population) Invalid() Population {
	var out Population
	for _, ind := range p {
		if !ind.Valid {
			out = append(out, ind)
		}
	}
	return out
}

// SortByFitness sorts individuals best first for the given weight
// (+1 maximises, -1 minimises).
func (p Population) SortByFitness(weight float64) {
	sort.SliceStable(p, func(i, j int) bool {
		return weight*p[i].Fitness > weight*p[j].Fitness
	})
}

// Best returns the individual with the best weighted fitness
func (p Population) Best(weight float64) *Individual {
	if len(p) == 0 {
		return nil
	}
	best := p[0]
	for _, ind := range p[1:] {
		if weight*ind.Fitness > weight*best.Fitness {
			best = ind
		}
	}
	return best
}

// Clone creates a deep copy of every slot
func (p Population) Clone() Population {
	out := make(Population, len(p))
	for i, ind := range p {
		out[i] = ind.Clone()
	}
	return out
}
