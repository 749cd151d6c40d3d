package needle

import "math"

// Needle is a full-geometry sample: centre, orientation in [0, pi), and the
// endpoints derived from them.
type Needle struct {
	CenterX float64 `json:"center_x"`
	CenterY float64 `json:"center_y"`
	Angle   float64 `json:"angle"`
	X0      float64 `json:"x0"`
	Y0      float64 `json:"y0"`
	X1      float64 `json:"x1"`
	Y1      float64 `json:"y1"`
}

// NewNeedle places a needle of the given length centred on (cx, cy).
func NewNeedle(cx, cy, angle, length float64) Needle {
	half := length / 2
	dx := half * math.Cos(angle)
	dy := half * math.Sin(angle)
	return Needle{
		CenterX: cx,
		CenterY: cy,
		Angle:   angle,
		X0:      cx - dx,
		X1:      cx + dx,
		Y0:      cy - dy,
		Y1:      cy + dy,
	}
}

// Length returns the distance between the endpoints.
func (n Needle) Length() float64 {
	return math.Hypot(n.X1-n.X0, n.Y1-n.Y0)
}

// Drop is a symmetry-reduced sample: distance from the needle centre to the
// nearest line in [0, d/2) and acute angle in [0, pi/2).
type Drop struct {
	Distance float64 `json:"distance"`
	Angle    float64 `json:"angle"`
}

// SampleNeedles draws p.Trials full-geometry needles. All centre heights are
// drawn first, then all centre x positions, then all angles.
func SampleNeedles(p Params, src Source) []Needle {
	n := p.Trials
	if n <= 0 {
		return nil
	}
	ys := uniform(src, n, 0, p.LineDistance)
	xs := uniform(src, n, 0, DisplayWidth)
	angles := uniform(src, n, 0, math.Pi)

	needles := make([]Needle, n)
	for i := range needles {
		needles[i] = NewNeedle(xs[i], ys[i], angles[i], p.NeedleLength)
	}
	return needles
}

// SampleDrops draws p.Trials half-angle samples, all distances before all
// angles.
func SampleDrops(p Params, src Source) []Drop {
	n := p.Trials
	if n <= 0 {
		return nil
	}
	dists := uniform(src, n, 0, p.LineDistance/2)
	angles := uniform(src, n, 0, math.Pi/2)

	drops := make([]Drop, n)
	for i := range drops {
		drops[i] = Drop{Distance: dists[i], Angle: angles[i]}
	}
	return drops
}
