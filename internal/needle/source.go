package needle

import "math/rand/v2"

// Source yields uniform values in [0, 1).
type Source interface {
	Float64() float64
}

// NewSource returns a reproducible PCG stream for the given seed. Use one
// Source per sampling call.
func NewSource(seed uint64) Source {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// uniform draws n values from [lo, hi), consuming n values of src.
func uniform(src Source, n int, lo, hi float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = lo + (hi-lo)*src.Float64()
	}
	return out
}
