// Package render draws simulation results: PNG plots with gonum/plot and
// interactive HTML charts with go-echarts. It only consumes the results of
// the needle engine and never samples on its own.
package render

import (
	"errors"
	"fmt"
	"image/color"
	"io"

	"github.com/minhua89/buffon-needle-simulation/internal/fsutil"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
)

// ErrNoData is returned when there is nothing to draw, such as a
// convergence run shorter than one checkpoint.
var ErrNoData = errors.New("no data to render")

// Diagram axis extents.
const (
	diagramXMax   = 12.0
	diagramMargin = 1.0
)

var (
	lineColor   = color.RGBA{A: 255}
	needleColor = color.RGBA{R: 220, A: 255}
	piColor     = color.RGBA{R: 255, A: 255}
	seriesColor = color.RGBA{R: 31, G: 119, B: 180, A: 255}
)

// Default PNG canvas.
var (
	PlotWidth  = 10 * vg.Inch
	PlotHeight = 5 * vg.Inch
)

// writePNG encodes p as PNG into w.
func writePNG(p *plot.Plot, w io.Writer) error {
	wt, err := p.WriterTo(PlotWidth, PlotHeight, "png")
	if err != nil {
		return fmt.Errorf("create png writer: %w", err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// savePNG writes p to path on fsys.
func savePNG(fsys fsutil.FileSystem, path string, p *plot.Plot) error {
	f, err := fsys.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := writePNG(p, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
