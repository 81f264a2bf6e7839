package ga

import (
	"errors"
	"math"
)

// Bound is the half-width of the search box every component is clipped to
const Bound = 5.0

// ErrEmptyGenome is returned by operators that need at least one component
var ErrEmptyGenome = errors.New("ga: genome has no components")

// Offspring is the explicit result list shared by every variation operator.
// Mutators return one element, crossover returns its children.
type Offspring []*Individual

// Mutator perturbs an individual in place
type Mutator interface {
	Mutate(rng Source, ind *Individual) (Offspring, error)
}

// ElementwiseMutator adds Gaussian noise to each gene with probability
// D*Scale, then clips it to the box.
//
// The probability grows with the dimension and saturates at 1 for D >= 7
// with the default Scale of 0.15, so every gene moves on large genomes.
// That is the behaviour of the reference experiment and is kept as is.
type ElementwiseMutator struct {
	Sigma float64
	Scale float64
	Bound float64
}

// NewElementwiseMutator returns the mutator used by the original experiment
func NewElementwiseMutator() ElementwiseMutator {
	return ElementwiseMutator{Sigma: 0.2, Scale: 0.15, Bound: Bound}
}

// GeneProbability is the effective per-gene mutation probability for a
// genome of length dim.
func (m ElementwiseMutator) GeneProbability(dim int) float64 {
	return math.Min(1, float64(dim)*m.Scale)
}

func (m ElementwiseMutator) Mutate(rng Source, ind *Individual) (Offspring, error) {
	threshold := float64(ind.Len()) * m.Scale
	for i := range ind.Genome {
		if rng.Float64() < threshold {
			ind.Genome[i] = Clip(ind.Genome[i]+rng.NormFloat64()*m.Sigma, m.Bound)
		}
	}
	ind.Invalidate()
	return Offspring{ind}, nil
}

// SingleIndexMutator moves exactly one uniformly chosen gene
type SingleIndexMutator struct {
	Sigma float64
	Bound float64
}

// NewSingleIndexMutator returns the mutator used by the modified experiment
func NewSingleIndexMutator() SingleIndexMutator {
	return SingleIndexMutator{Sigma: 0.7, Bound: Bound}
}

func (m SingleIndexMutator) Mutate(rng Source, ind *Individual) (Offspring, error) {
	if ind.Len() == 0 {
		return nil, ErrEmptyGenome
	}
	i := rng.Intn(ind.Len())
	ind.Genome[i] = Clip(ind.Genome[i]+rng.NormFloat64()*m.Sigma, m.Bound)
	ind.Invalidate()
	return Offspring{ind}, nil
}

// GaussianMutator adds N(Mu, Sigma) noise to each gene independently with
// probability IndPB. Genes are not clipped, so they may leave the box.
type GaussianMutator struct {
	Mu    float64
	Sigma float64
	IndPB float64
}

// NewGaussianMutator returns the library Gaussian mutation the first
// experiment script registers (sigma 0.5, indpb 0.2).
func NewGaussianMutator() GaussianMutator {
	return GaussianMutator{Mu: 0, Sigma: 0.5, IndPB: 0.2}
}

func (m GaussianMutator) Mutate(rng Source, ind *Individual) (Offspring, error) {
	for i := range ind.Genome {
		if rng.Float64() < m.IndPB {
			ind.Genome[i] += m.Mu + rng.NormFloat64()*m.Sigma
		}
	}
	ind.Invalidate()
	return Offspring{ind}, nil
}

// Clip limits v to [-bound, bound]
func Clip(v, bound float64) float64 {
	return math.Max(-bound, math.Min(bound, v))
}
