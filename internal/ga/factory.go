package ga

// Factory produces one new individual of the given dimension
type Factory interface {
	New(rng Source, dim int) *Individual
}

// UniformInit draws every component uniformly from [Low, High)
type UniformInit struct {
	Low  float64
	High float64
}

// WideInit covers the whole search box, [-5, 5)
func WideInit() UniformInit {
	return UniformInit{Low: -Bound, High: Bound}
}

// NarrowInit starts everyone in the unit interval, [0, 1)
func NarrowInit() UniformInit {
	return UniformInit{Low: 0, High: 1}
}

func (u UniformInit) New(rng Source, dim int) *Individual {
	if dim < 0 {
		dim = 0
	}
	genome := make([]float64, dim)
	span := u.High - u.Low
	for i := range genome {
		genome[i] = rng.Float64()*span + u.Low
	}
	return &Individual{Genome: genome}
}
