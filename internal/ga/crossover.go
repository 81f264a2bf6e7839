package ga

// Crossover recombines two parents in place and returns both children
type Crossover interface {
	Mate(rng Source, a, b *Individual) (Offspring, error)
}

// OnePointCrossover swaps the tails of both genomes after a random cut in
// [1, D-1]. Genomes shorter than two genes are returned untouched.
type OnePointCrossover struct{}

func (OnePointCrossover) Mate(rng Source, a, b *Individual) (Offspring, error) {
	size := min(a.Len(), b.Len())
	if size < 2 {
		return Offspring{a, b}, nil
	}
	point := 1 + rng.Intn(size-1)
	for i := point; i < size; i++ {
		a.Genome[i], b.Genome[i] = b.Genome[i], a.Genome[i]
	}
	a.Invalidate()
	b.Invalidate()
	return Offspring{a, b}, nil
}

// UniformCrossover swaps each gene independently with probability Rate
type UniformCrossover struct {
	Rate float64
}

func (u UniformCrossover) Mate(rng Source, a, b *Individual) (Offspring, error) {
	size := min(a.Len(), b.Len())
	for i := 0; i < size; i++ {
		if rng.Float64() < u.Rate {
			// Swap genes
			a.Genome[i], b.Genome[i] = b.Genome[i], a.Genome[i]
		}
	}
	a.Invalidate()
	b.Invalidate()
	return Offspring{a, b}, nil
}
