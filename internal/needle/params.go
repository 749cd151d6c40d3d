// Package needle implements the Buffon's needle Monte Carlo engine: needle
// sampling, line-crossing detection, and pi estimation from hit counts.
//
// The engine holds no state between calls. Every operation is a pure
// function of its parameters and the random Source supplied by the caller.
package needle

// DisplayWidth is the horizontal extent used for needle centres. It only
// affects diagrams; crossing detection ignores x.
const DisplayWidth = 10.0

// Params describes one simulation run. NeedleLength and LineDistance are
// assumed positive and Trials at least one; the engine does not check.
type Params struct {
	NeedleLength float64 `json:"needle_length"`
	LineDistance float64 `json:"line_distance"`
	Trials       int     `json:"trials"`
}

// ShortNeedle reports whether the needle is no longer than the line spacing,
// the regime in which P(hit) = 2l/(pi*d) holds.
func (p Params) ShortNeedle() bool {
	return p.NeedleLength <= p.LineDistance
}

// WithTrials returns a copy of p with the trial count replaced.
func (p Params) WithTrials(n int) Params {
	p.Trials = n
	return p
}
