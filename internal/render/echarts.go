package render

import (
	"fmt"
	"io"
	"math"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/minhua89/buffon-needle-simulation/internal/fsutil"
	"github.com/minhua89/buffon-needle-simulation/internal/needle"
)

// ConvergenceChart builds an HTML line chart of the estimates with a dashed
// true-pi series.
func ConvergenceChart(seq []needle.Estimate) (*charts.Line, error) {
	if len(seq) == 0 {
		return nil, ErrNoData
	}

	x := make([]int, len(seq))
	est := make([]opts.LineData, len(seq))
	ref := make([]opts.LineData, len(seq))
	lo, hi := math.Pi, math.Pi
	for i, e := range seq {
		x[i] = e.Trials
		est[i] = opts.LineData{Value: e.Pi}
		ref[i] = opts.LineData{Value: math.Pi}
		if e.Pi != 0 {
			lo = math.Min(lo, e.Pi)
			hi = math.Max(hi, e.Pi)
		}
	}
	// Pad so the extreme checkpoints are not drawn on the frame.
	pad := math.Max((hi-lo)*0.1, 0.01)

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Buffon's needle", Width: "100%", Height: "500px"}),
		charts.WithTitleOpts(opts.Title{Title: "Pi estimate by number of trials", Subtitle: fmt.Sprintf("checkpoints=%d final=%.5f", len(seq), seq[len(seq)-1].Pi)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Top: "bottom"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Trials", NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Estimated pi", Min: roundDown(lo-pad), Max: roundUp(hi+pad)}),
	)
	line.SetXAxis(x).
		AddSeries("Estimated pi", est,
			charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(true)}),
		).
		AddSeries(fmt.Sprintf("True pi ≈ %.4f", math.Pi), ref,
			charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(false)}),
			charts.WithLineStyleOpts(opts.LineStyle{Color: "red", Type: "dashed"}),
		)
	return line, nil
}

// NeedleChart builds a scatter of needle centres split into crossing and
// clear needles, plus a bar of the hit split.
func NeedleChart(d needle.Diagram) (*charts.Scatter, *charts.Bar, error) {
	if len(d.Needles) == 0 {
		return nil, nil, ErrNoData
	}

	rule := needle.BandRule{LineDistance: d.Params.LineDistance}
	hit := make([]opts.ScatterData, 0, d.Hits)
	miss := make([]opts.ScatterData, 0, len(d.Needles)-d.Hits)
	for _, n := range d.Needles {
		pt := opts.ScatterData{Value: []interface{}{n.CenterX, n.CenterY}}
		if rule.Crosses(n) {
			hit = append(hit, pt)
		} else {
			miss = append(miss, pt)
		}
	}

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "100%", Height: "500px"}),
		charts.WithTitleOpts(opts.Title{Title: "Needle centres", Subtitle: fmt.Sprintf("needles=%d hits=%d pi≈%.5f", len(d.Needles), d.Hits, d.Pi)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Min: 0, Max: diagramXMax, Name: "x", NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Min: 0, Max: d.Params.LineDistance, Name: "y", NameLocation: "middle", NameGap: 30}),
	)
	scatter.AddSeries("crossing", hit, charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 6}), charts.WithItemStyleOpts(opts.ItemStyle{Color: "#ff5252"}))
	scatter.AddSeries("clear", miss, charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 4}), charts.WithItemStyleOpts(opts.ItemStyle{Color: "#9e9e9e"}))

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "100%", Height: "360px"}),
		charts.WithTitleOpts(opts.Title{Title: "Crossings"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	bar.SetXAxis([]string{"Hits", "Misses"}).
		AddSeries("needles", []opts.BarData{
			{Value: d.Hits},
			{Value: len(d.Needles) - d.Hits},
		}, charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Position: "top"}))

	return scatter, bar, nil
}

// RenderHTML writes a page holding every chart that has data. It returns
// ErrNoData when neither the diagram nor the sequence has any.
func RenderHTML(w io.Writer, d needle.Diagram, seq []needle.Estimate) error {
	page := components.NewPage()
	page.PageTitle = "Buffon's needle"
	added := 0

	if scatter, bar, err := NeedleChart(d); err == nil {
		page.AddCharts(scatter, bar)
		added++
	}
	if line, err := ConvergenceChart(seq); err == nil {
		page.AddCharts(line)
		added++
	}
	if added == 0 {
		return ErrNoData
	}

	if err := page.Render(w); err != nil {
		return fmt.Errorf("render page: %w", err)
	}
	return nil
}

// SaveHTML writes RenderHTML output to path on fsys.
func SaveHTML(fsys fsutil.FileSystem, path string, d needle.Diagram, seq []needle.Estimate) error {
	f, err := fsys.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := RenderHTML(f, d, seq); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func roundDown(v float64) float64 { return math.Floor(v*100) / 100 }
func roundUp(v float64) float64   { return math.Ceil(v*100) / 100 }
