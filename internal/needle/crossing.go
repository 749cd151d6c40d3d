package needle

import "math"

// CrossingRule decides whether a sampled needle crosses a line. Each rule is
// only meaningful for the sample type its sampler produces.
type CrossingRule[S any] interface {
	Crosses(sample S) bool
}

// BandRule detects crossings of the infinite family of lines y = k*d by
// comparing the bands that hold each endpoint.
type BandRule struct {
	LineDistance float64
}

// Band returns floor(y / d), the index of the strip containing y.
func (r BandRule) Band(y float64) int {
	return int(math.Floor(y / r.LineDistance))
}

// Crosses reports whether the endpoints of n fall in different bands.
func (r BandRule) Crosses(n Needle) bool {
	return r.Band(n.Y0) != r.Band(n.Y1)
}

// HalfAngleRule is the closed-form test y <= (l/2)·sin(theta) for Drop samples.
// The classical derivation assumes NeedleLength <= line distance; for longer
// needles the test is still evaluated but no longer describes the geometry.
type HalfAngleRule struct {
	NeedleLength float64
}

// Crosses reports whether d reaches the nearest line.
func (r HalfAngleRule) Crosses(d Drop) bool {
	return d.Distance <= (r.NeedleLength/2)*math.Sin(d.Angle)
}

// CountHits returns the number of samples the rule classifies as crossings.
func CountHits[S any](rule CrossingRule[S], samples []S) int {
	hits := 0
	for _, s := range samples {
		if rule.Crosses(s) {
			hits++
		}
	}
	return hits
}

var (
	_ CrossingRule[Needle] = BandRule{}
	_ CrossingRule[Drop]   = HalfAngleRule{}
)
