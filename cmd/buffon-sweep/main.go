// Command buffon-sweep repeats the convergence run over a grid of needle
// lengths, line distances and seeds, and reports how the final estimates
// spread around pi.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/minhua89/buffon-needle-simulation/internal/fsutil"
	"github.com/minhua89/buffon-needle-simulation/internal/monitoring"
	"github.com/minhua89/buffon-needle-simulation/internal/needle"
	"github.com/minhua89/buffon-needle-simulation/internal/sweep"
)

func parseConfig(args []string, stderr io.Writer) (sweep.Config, string, error) {
	fs := flag.NewFlagSet("buffon-sweep", flag.ContinueOnError)
	fs.SetOutput(stderr)

	lengths := fs.String("lengths", "1.0", "needle lengths: comma list or min:max:step")
	distances := fs.String("distances", "2.0", "line distances: comma list or min:max:step")
	seeds := fs.String("seeds", "1:20", "seeds: comma list or first:last")
	trials := fs.Int("trials", 100000, "trials per run")
	step := fs.Int("step", needle.DefaultCheckpointStep, "checkpoint step")
	tol := fs.Float64("tolerance", 0.05, "half-width around pi counted as a good estimate")
	out := fs.String("out", "", "CSV output path (default stdout table only)")

	if err := fs.Parse(args); err != nil {
		return sweep.Config{}, "", err
	}

	var cfg sweep.Config
	var err error
	if cfg.Lengths, err = sweep.ParseParamList(*lengths); err != nil {
		return cfg, "", fmt.Errorf("-lengths: %w", err)
	}
	if cfg.Distances, err = sweep.ParseParamList(*distances); err != nil {
		return cfg, "", fmt.Errorf("-distances: %w", err)
	}
	if cfg.Seeds, err = sweep.ParseSeeds(*seeds); err != nil {
		return cfg, "", fmt.Errorf("-seeds: %w", err)
	}
	cfg.Trials = *trials
	cfg.Step = *step
	cfg.Tolerance = *tol
	return cfg, *out, cfg.Validate()
}

func writeTable(w io.Writer, results []sweep.CellResult) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "l\td\truns\tmean\tstddev\tmean |err|\twithin tol")
	for _, r := range results {
		note := ""
		if !r.ShortNeedle {
			note = " (l > d)"
		}
		fmt.Fprintf(tw, "%.3f\t%.3f%s\t%d\t%.5f\t%.5f\t%.5f\t%.0f%%\n",
			r.NeedleLength, r.LineDistance, note, r.Runs-r.Undefined, r.Mean, r.StdDev, r.MeanAbsError, 100*r.WithinTol)
	}
	return tw.Flush()
}

func run(args []string, fsys fsutil.FileSystem, stdout, stderr io.Writer) error {
	cfg, out, err := parseConfig(args, stderr)
	if err != nil {
		return err
	}

	monitoring.Logf("sweeping %d lengths x %d distances x %d seeds, %d trials each",
		len(cfg.Lengths), len(cfg.Distances), len(cfg.Seeds), cfg.Trials)
	done := monitoring.Timed("sweep")
	results, err := sweep.Run(cfg)
	done()
	if err != nil {
		return err
	}

	if err := writeTable(stdout, results); err != nil {
		return err
	}
	if out == "" {
		return nil
	}

	if err := fsys.MkdirAll(filepath.Dir(out), 0755); err != nil {
		return fmt.Errorf("failed to create output dir: %w", err)
	}
	f, err := fsys.Create(out)
	if err != nil {
		return fmt.Errorf("create %s: %w", out, err)
	}
	if err := sweep.WriteCSV(f, results); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", out, err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	monitoring.Logf("wrote %s", out)
	return nil
}

func main() {
	log.SetPrefix("buffon-sweep: ")

	if err := run(os.Args[1:], fsutil.OSFileSystem{}, os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		log.Fatalf("%v", err)
	}
}
