package needle

import "math"

// Estimate is the pi estimate obtained after Trials needles. Pi is 0 when no
// needle crossed a line.
type Estimate struct {
	Trials int     `json:"trials"`
	Pi     float64 `json:"pi_estimate"`
}

// EstimatePi applies pi ≈ 2·l·n / (d·h). Zero hits yield 0 rather than a
// division by zero.
func EstimatePi(hits, trials int, needleLength, lineDistance float64) float64 {
	if hits <= 0 {
		return 0
	}
	return (2 * needleLength * float64(trials)) / (lineDistance * float64(hits))
}

// NewEstimate builds the Estimate for a hit count over trials needles.
func NewEstimate(hits, trials int, needleLength, lineDistance float64) Estimate {
	return Estimate{
		Trials: trials,
		Pi:     EstimatePi(hits, trials, needleLength, lineDistance),
	}
}

// StdError approximates the standard error of EstimatePi by propagating the
// binomial variance of the hit fraction. It returns 0 when the hit fraction
// is 0 or 1.
func StdError(hits, trials int, needleLength, lineDistance float64) float64 {
	if hits <= 0 || trials <= 0 || hits >= trials {
		return 0
	}
	p := float64(hits) / float64(trials)
	est := EstimatePi(hits, trials, needleLength, lineDistance)
	return est * math.Sqrt((1-p)/(float64(trials)*p))
}
