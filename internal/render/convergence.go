package render

import (
	"fmt"
	"math"

	"github.com/minhua89/buffon-needle-simulation/internal/fsutil"
	"github.com/minhua89/buffon-needle-simulation/internal/needle"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// convergenceXYs converts a sequence to plot points.
func convergenceXYs(seq []needle.Estimate) plotter.XYs {
	pts := make(plotter.XYs, len(seq))
	for i, e := range seq {
		pts[i] = plotter.XY{X: float64(e.Trials), Y: e.Pi}
	}
	return pts
}

// ConvergencePlot draws the estimate at each checkpoint against a dashed
// reference line at pi.
func ConvergencePlot(seq []needle.Estimate) (*plot.Plot, error) {
	if len(seq) == 0 {
		return nil, ErrNoData
	}

	p := plot.New()
	p.Title.Text = "Pi estimate by number of trials"
	p.X.Label.Text = "Trials"
	p.Y.Label.Text = "Estimated pi"

	line, points, err := plotter.NewLinePoints(convergenceXYs(seq))
	if err != nil {
		return nil, err
	}
	line.Color = seriesColor
	line.Width = vg.Points(1.5)
	points.Color = seriesColor
	points.Radius = vg.Points(2)

	first, last := float64(seq[0].Trials), float64(seq[len(seq)-1].Trials)
	ref, err := plotter.NewLine(plotter.XYs{{X: first, Y: math.Pi}, {X: last, Y: math.Pi}})
	if err != nil {
		return nil, err
	}
	ref.Color = piColor
	ref.Width = vg.Points(1)
	ref.Dashes = []vg.Length{vg.Points(6), vg.Points(4)}

	p.Add(line, points, ref, plotter.NewGrid())
	p.Legend.Add("Estimated pi", line, points)
	p.Legend.Add(fmt.Sprintf("True pi ≈ %.4f", math.Pi), ref)
	p.Legend.Top = true
	p.Legend.XOffs = -10
	p.Legend.YOffs = -10
	return p, nil
}

// SaveConvergencePlot renders seq to a PNG file.
func SaveConvergencePlot(fsys fsutil.FileSystem, path string, seq []needle.Estimate) error {
	p, err := ConvergencePlot(seq)
	if err != nil {
		return err
	}
	if err := savePNG(fsys, path, p); err != nil {
		return fmt.Errorf("save convergence plot: %w", err)
	}
	return nil
}
