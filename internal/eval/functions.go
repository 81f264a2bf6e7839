package eval

import (
	"fmt"
	"math"
	"sort"
)

// Func maps a genome to a scalar fitness. Implementations must be pure.
type Func func(x []float64) float64

// Rastrigin is the multimodal benchmark 10*D + sum(x^2 - 10*cos(2*pi*x)).
// Its global minimum is 0 at the origin.
func Rastrigin(x []float64) float64 {
	sum := 10 * float64(len(x))
	for _, v := range x {
		sum += v*v - 10*math.Cos(2*math.Pi*v)
	}
	return sum
}

// Sphere is the sum of squares
func Sphere(x []float64) float64 {
	var sum float64
	for _, v := range x {
		sum += v * v
	}
	return sum
}

// Ackley with the usual a=20, b=0.2, c=2*pi
func Ackley(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	n := float64(len(x))
	var sq, cs float64
	for _, v := range x {
		sq += v * v
		cs += math.Cos(2 * math.Pi * v)
	}
	return -20*math.Exp(-0.2*math.Sqrt(sq/n)) - math.Exp(cs/n) + 20 + math.E
}

// Rosenbrock is the banana valley, minimum 0 at (1, ..., 1)
func Rosenbrock(x []float64) float64 {
	var sum float64
	for i := 0; i+1 < len(x); i++ {
		a := x[i+1] - x[i]*x[i]
		b := 1 - x[i]
		sum += 100*a*a + b*b
	}
	return sum
}

var functions = map[string]Func{
	"rastrigin":  Rastrigin,
	"sphere":     Sphere,
	"ackley":     Ackley,
	"rosenbrock": Rosenbrock,
}

// Lookup returns the benchmark function registered under name
func Lookup(name string) (Func, error) {
	fn, ok := functions[name]
	if !ok {
		return nil, fmt.Errorf("unknown benchmark function %q (known: %v)", name, Names())
	}
	return fn, nil
}

// Names lists the registered benchmark functions
func Names() []string {
	names := make([]string, 0, len(functions))
	for name := range functions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
