package render

import (
	"fmt"

	"github.com/minhua89/buffon-needle-simulation/internal/fsutil"
	"github.com/minhua89/buffon-needle-simulation/internal/needle"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// NeedlePlot draws the needles of d over the lines y = 0 and
// y = LineDistance, titled with the estimate.
func NeedlePlot(d needle.Diagram) (*plot.Plot, error) {
	if len(d.Needles) == 0 {
		return nil, ErrNoData
	}
	dist := d.Params.LineDistance

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Dropped %d needles - pi ≈ %.5f", len(d.Needles), d.Pi)

	for _, y := range []float64{0, dist} {
		l, err := plotter.NewLine(plotter.XYs{{X: 0, Y: y}, {X: diagramXMax, Y: y}})
		if err != nil {
			return nil, err
		}
		l.Color = lineColor
		l.Width = vg.Points(2)
		p.Add(l)
	}

	for i, n := range d.Needles {
		l, err := plotter.NewLine(plotter.XYs{{X: n.X0, Y: n.Y0}, {X: n.X1, Y: n.Y1}})
		if err != nil {
			return nil, fmt.Errorf("needle %d: %w", i, err)
		}
		l.Color = needleColor
		l.Width = vg.Points(1.5)
		p.Add(l)
	}

	// Fixed extents; Add widens the axes to fit needles near the edges.
	p.X.Min = 0
	p.X.Max = diagramXMax
	p.Y.Min = -diagramMargin
	p.Y.Max = dist + diagramMargin
	return p, nil
}

// SaveNeedlePlot renders d to a PNG file.
func SaveNeedlePlot(fsys fsutil.FileSystem, path string, d needle.Diagram) error {
	p, err := NeedlePlot(d)
	if err != nil {
		return err
	}
	if err := savePNG(fsys, path, p); err != nil {
		return fmt.Errorf("save needle plot: %w", err)
	}
	return nil
}
