// Command buffon runs the Buffon's needle simulation: a needle diagram and a
// convergence sequence, written as plots, CSV and JSON into a run directory.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/minhua89/buffon-needle-simulation/internal/config"
	"github.com/minhua89/buffon-needle-simulation/internal/fsutil"
	"github.com/minhua89/buffon-needle-simulation/internal/monitoring"
	"github.com/minhua89/buffon-needle-simulation/internal/needle"
	"github.com/minhua89/buffon-needle-simulation/internal/render"
	"github.com/minhua89/buffon-needle-simulation/internal/report"
	"github.com/minhua89/buffon-needle-simulation/internal/version"
)

// Output file names inside the run directory.
const (
	needlesPNG     = "needles.png"
	convergencePNG = "convergence.png"
	reportHTML     = "report.html"
)

type options struct {
	configPath  string
	length      float64
	distance    float64
	needles     int
	trials      int
	step        int
	seed        uint64
	outDir      string
	noPlots     bool
	showVersion bool
}

func parseFlags(args []string, stderr io.Writer) (*options, *flag.FlagSet, error) {
	fs := flag.NewFlagSet("buffon", flag.ContinueOnError)
	fs.SetOutput(stderr)

	o := &options{}
	fs.StringVar(&o.configPath, "config", "", "path to a JSON simulation config")
	fs.Float64Var(&o.length, "length", 0, "needle length l (0.1-2.0)")
	fs.Float64Var(&o.distance, "distance", 0, "line distance d (0.2-3.0)")
	fs.IntVar(&o.needles, "needles", 0, "needles in the diagram (10-500)")
	fs.IntVar(&o.trials, "trials", 0, "trials in the convergence run (1000-100000)")
	fs.IntVar(&o.step, "step", 0, "checkpoint step of the convergence run")
	fs.Uint64Var(&o.seed, "seed", 0, "random seed (default: config seed or time based)")
	fs.StringVar(&o.outDir, "out", "", "base output directory")
	fs.BoolVar(&o.noPlots, "no-plots", false, "skip PNG and HTML output")
	fs.BoolVar(&o.showVersion, "version", false, "print version and exit")

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return o, fs, nil
}

// loadConfig merges the config file (or defaults) with explicitly set flags
// and validates the result.
func loadConfig(o *options, fs *flag.FlagSet) (*config.SimulationConfig, error) {
	cfg := config.DefaultSimulationConfig()
	if o.configPath != "" {
		loaded, err := config.LoadSimulationConfig(o.configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "length":
			cfg.NeedleLength = &o.length
		case "distance":
			cfg.LineDistance = &o.distance
		case "needles":
			cfg.DiagramTrials = &o.needles
		case "trials":
			cfg.ConvergenceTrials = &o.trials
		case "step":
			cfg.CheckpointStep = &o.step
		case "seed":
			cfg.Seed = &o.seed
		case "out":
			cfg.OutputDir = &o.outDir
		}
	})

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// simulate runs both procedures, each on its own stream. The convergence
// stream is derived from the diagram seed so one seed reproduces a run.
func simulate(cfg *config.SimulationConfig) *report.RunSummary {
	seed := cfg.GetSeed()
	convSeed := seed + 1

	dp := cfg.DiagramParams()
	cp := cfg.ConvergenceParams()
	if !dp.ShortNeedle() {
		monitoring.Logf("WARNING: needle length %g exceeds line distance %g; the classical estimate assumes l <= d", dp.NeedleLength, dp.LineDistance)
	}

	done := monitoring.Timed("needle diagram")
	d := needle.SimulateNeedles(dp, needle.NewSource(seed))
	done()
	monitoring.Logf("diagram: %d needles, %d hits, pi ≈ %.5f", dp.Trials, d.Hits, d.Pi)

	done = monitoring.Timed("convergence")
	seq := needle.EstimateConvergence(cp, cfg.GetCheckpointStep(), needle.NewSource(convSeed))
	done()
	if len(seq) == 0 {
		monitoring.Logf("convergence: %d trials is below one checkpoint of %d", cp.Trials, cfg.GetCheckpointStep())
	} else {
		last := seq[len(seq)-1]
		monitoring.Logf("convergence: %d checkpoints, final pi ≈ %.5f after %d trials", len(seq), last.Pi, last.Trials)
	}

	return report.NewRunSummary(d, seed, seq, cp, convSeed, cfg.GetCheckpointStep())
}

// writeArtefacts writes every output of s into its run directory and
// returns that directory.
func writeArtefacts(fsys fsutil.FileSystem, cfg *config.SimulationConfig, s *report.RunSummary, plots bool) (string, error) {
	dir := report.RunDir(cfg.GetOutputDir(), s.RunID, s.CreatedAt)
	if err := report.WriteRun(fsys, dir, s); err != nil {
		return "", err
	}
	if !plots {
		return dir, nil
	}

	d := s.Diagram.Diagram()
	seq := s.Convergence.Estimates

	if err := render.SaveNeedlePlot(fsys, filepath.Join(dir, needlesPNG), d); err != nil && !errors.Is(err, render.ErrNoData) {
		return "", err
	}
	if err := render.SaveConvergencePlot(fsys, filepath.Join(dir, convergencePNG), seq); err != nil && !errors.Is(err, render.ErrNoData) {
		return "", err
	}
	if err := render.SaveHTML(fsys, filepath.Join(dir, reportHTML), d, seq); err != nil && !errors.Is(err, render.ErrNoData) {
		return "", err
	}
	return dir, nil
}

func run(args []string, fsys fsutil.FileSystem, stdout, stderr io.Writer) error {
	o, fs, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}
	if o.showVersion {
		fmt.Fprintln(stdout, version.String())
		return nil
	}

	cfg, err := loadConfig(o, fs)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	s := simulate(cfg)
	dir, err := writeArtefacts(fsys, cfg, s, !o.noPlots)
	if err != nil {
		return fmt.Errorf("write artefacts: %w", err)
	}

	fmt.Fprintf(stdout, "run %s\n", s.RunID)
	fmt.Fprintf(stdout, "diagram pi ≈ %.5f (%d/%d hits)\n", s.Diagram.Pi, s.Diagram.Hits, s.Diagram.Params.Trials)
	if st := s.Convergence.Stats; st.Checkpoints > 0 {
		fmt.Fprintf(stdout, "convergence pi ≈ %.5f (|error| %.5f over %d checkpoints)\n", st.Final, st.FinalError, st.Checkpoints)
	}
	fmt.Fprintf(stdout, "output: %s\n", dir)
	return nil
}

func main() {
	log.SetPrefix("buffon: ")
	log.SetFlags(log.LstdFlags)

	start := time.Now()
	if err := run(os.Args[1:], fsutil.OSFileSystem{}, os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		log.Fatalf("%v", err)
	}
	monitoring.Logf("done in %s", time.Since(start).Round(time.Millisecond))
}
