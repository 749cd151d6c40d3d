package sweep

import (
	"errors"
	"math"

	"github.com/minhua89/buffon-needle-simulation/internal/monitoring"
	"github.com/minhua89/buffon-needle-simulation/internal/needle"
	"gonum.org/v1/gonum/stat"
)

// Config selects the grid and run size of a sweep.
type Config struct {
	Lengths   []float64
	Distances []float64
	Seeds     []uint64
	Trials    int
	Step      int
	// Tolerance is the half-width around pi counted as a good final estimate.
	Tolerance float64
}

// Validate reports configuration errors before any run starts.
func (c Config) Validate() error {
	switch {
	case len(c.Lengths) == 0:
		return errors.New("sweep: no needle lengths")
	case len(c.Distances) == 0:
		return errors.New("sweep: no line distances")
	case len(c.Seeds) == 0:
		return errors.New("sweep: no seeds")
	case c.Trials <= 0:
		return errors.New("sweep: trials must be positive")
	case !(c.Tolerance > 0):
		return errors.New("sweep: tolerance must be positive")
	}
	for _, v := range c.Lengths {
		if !finite(v) || v <= 0 {
			return errors.New("sweep: needle lengths must be positive and finite")
		}
	}
	for _, v := range c.Distances {
		if !finite(v) || v <= 0 {
			return errors.New("sweep: line distances must be positive and finite")
		}
	}
	return nil
}

// CellResult summarises the final estimates of every seed for one (l, d).
type CellResult struct {
	NeedleLength float64
	LineDistance float64
	ShortNeedle  bool
	Runs         int
	Undefined    int
	Mean         float64
	StdDev       float64
	MeanAbsError float64
	WithinTol    float64
}

// Run executes one convergence run per (length, distance, seed) and returns
// one CellResult per (length, distance) in input order.
func Run(cfg Config) ([]CellResult, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	results := make([]CellResult, 0, len(cfg.Lengths)*len(cfg.Distances))
	for _, l := range cfg.Lengths {
		for _, d := range cfg.Distances {
			p := needle.Params{NeedleLength: l, LineDistance: d, Trials: cfg.Trials}
			if !p.ShortNeedle() {
				monitoring.Logf("WARNING: l=%g > d=%g, classical Buffon formula does not apply", l, d)
			}
			results = append(results, runCell(p, cfg))
		}
	}
	return results, nil
}

func runCell(p needle.Params, cfg Config) CellResult {
	r := CellResult{
		NeedleLength: p.NeedleLength,
		LineDistance: p.LineDistance,
		ShortNeedle:  p.ShortNeedle(),
		Runs:         len(cfg.Seeds),
	}

	finals := make([]float64, 0, len(cfg.Seeds))
	absErrs := make([]float64, 0, len(cfg.Seeds))
	within := 0
	for _, seed := range cfg.Seeds {
		seq := needle.EstimateConvergence(p, cfg.Step, needle.NewSource(seed))
		if len(seq) == 0 || seq[len(seq)-1].Pi == 0 {
			r.Undefined++
			continue
		}
		final := seq[len(seq)-1].Pi
		finals = append(finals, final)
		absErr := math.Abs(final - math.Pi)
		absErrs = append(absErrs, absErr)
		if absErr <= cfg.Tolerance {
			within++
		}
	}

	if len(finals) > 0 {
		r.Mean = stat.Mean(finals, nil)
		r.MeanAbsError = stat.Mean(absErrs, nil)
	}
	if len(finals) > 1 {
		r.StdDev = stat.StdDev(finals, nil)
	}
	r.WithinTol = float64(within) / float64(r.Runs)
	return r
}
