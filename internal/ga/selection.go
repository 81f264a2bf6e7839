package ga

// Selector picks k survivors from a pool. The returned individuals are
// owned by the caller and never alias each other or the pool.
type Selector interface {
	Select(rng Source, pool Population, k int, weight float64) Population
}

// TournamentSelector runs k tournaments of Size aspirants drawn with
// replacement and keeps each winner.
type TournamentSelector struct {
	Size int
}

func (t TournamentSelector) Select(rng Source, pool Population, k int, weight float64) Population {
	if len(pool) == 0 || k <= 0 {
		return Population{}
	}
	out := make(Population, k)
	for i := range out {
		out[i] = TournamentSelect(rng, pool, t.Size, weight).Clone()
	}
	return out
}

// TournamentSelect selects an individual using tournament selection
func TournamentSelect(rng Source, pool Population, k int, weight float64) *Individual {
	if len(pool) == 0 {
		return nil
	}
	if k < 1 {
		k = 1
	}

	best := pool[rng.Intn(len(pool))]
	for i := 1; i < k; i++ {
		candidate := pool[rng.Intn(len(pool))]
		if weight*candidate.Fitness > weight*best.Fitness {
			best = candidate
		}
	}
	return best
}
