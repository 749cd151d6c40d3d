package needle

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summary describes a convergence sequence. Checkpoints with no hits are
// excluded from the statistics but counted in Undefined.
type Summary struct {
	Checkpoints int     `json:"checkpoints"`
	Undefined   int     `json:"undefined"`
	Final       float64 `json:"final"`
	FinalError  float64 `json:"final_abs_error"`
	Mean        float64 `json:"mean"`
	StdDev      float64 `json:"stddev"`
	Min         float64 `json:"min"`
	Max         float64 `json:"max"`
}

// Summarize computes Summary for seq. An empty sequence yields the zero value.
func Summarize(seq []Estimate) Summary {
	s := Summary{Checkpoints: len(seq)}
	if len(seq) == 0 {
		return s
	}

	vals := make([]float64, 0, len(seq))
	for _, e := range seq {
		if e.Pi == 0 {
			s.Undefined++
			continue
		}
		vals = append(vals, e.Pi)
	}

	s.Final = seq[len(seq)-1].Pi
	if s.Final != 0 {
		s.FinalError = math.Abs(s.Final - math.Pi)
	}
	if len(vals) == 0 {
		return s
	}

	s.Mean = stat.Mean(vals, nil)
	if len(vals) > 1 {
		s.StdDev = stat.StdDev(vals, nil)
	}
	s.Min = floats.Min(vals)
	s.Max = floats.Max(vals)
	return s
}
