package needle

// Diagram is the result of a full-geometry run, suitable for drawing needles
// across the lines y = 0 and y = LineDistance.
type Diagram struct {
	Params  Params   `json:"params"`
	Needles []Needle `json:"needles"`
	Hits    int      `json:"hits"`
	Pi      float64  `json:"pi_estimate"`
}

// Segments returns each needle as (x0, y0, x1, y1).
func (d Diagram) Segments() [][4]float64 {
	out := make([][4]float64, len(d.Needles))
	for i, n := range d.Needles {
		out[i] = [4]float64{n.X0, n.Y0, n.X1, n.Y1}
	}
	return out
}

// SimulateNeedles drops p.Trials needles with the full-geometry sampler,
// counts band crossings and estimates pi from them.
func SimulateNeedles(p Params, src Source) Diagram {
	needles := SampleNeedles(p, src)
	hits := CountHits[Needle](BandRule{LineDistance: p.LineDistance}, needles)
	return Diagram{
		Params:  p,
		Needles: needles,
		Hits:    hits,
		Pi:      EstimatePi(hits, p.Trials, p.NeedleLength, p.LineDistance),
	}
}

// EstimateConvergence draws p.Trials half-angle samples once and returns the
// estimate at every checkpoint multiple of step.
func EstimateConvergence(p Params, step int, src Source) []Estimate {
	return Converge(p, SampleDrops(p, src), step)
}
