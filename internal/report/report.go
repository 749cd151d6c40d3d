// Package report writes the tabular and JSON artefacts of a simulation run.
package report

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/minhua89/buffon-needle-simulation/internal/fsutil"
	"github.com/minhua89/buffon-needle-simulation/internal/needle"
)

// ConvergenceHeader is the header row of the convergence CSV.
var ConvergenceHeader = []string{"trials", "pi_estimate", "abs_error"}

// WriteConvergenceCSV writes one row per checkpoint. abs_error is empty for
// checkpoints without hits.
func WriteConvergenceCSV(w io.Writer, seq []needle.Estimate) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(ConvergenceHeader); err != nil {
		return err
	}
	for _, e := range seq {
		absErr := ""
		if e.Pi != 0 {
			absErr = strconv.FormatFloat(math.Abs(e.Pi-math.Pi), 'f', 6, 64)
		}
		row := []string{
			strconv.Itoa(e.Trials),
			strconv.FormatFloat(e.Pi, 'f', 6, 64),
			absErr,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// DiagramSummary is the JSON view of the needle diagram run.
type DiagramSummary struct {
	Params   needle.Params `json:"params"`
	Seed     uint64        `json:"seed"`
	Hits     int           `json:"hits"`
	Pi       float64       `json:"pi_estimate"`
	StdError float64       `json:"std_error"`

	Needles []needle.Needle `json:"needles"`
}

// Diagram rebuilds the engine result the summary was made from.
func (s DiagramSummary) Diagram() needle.Diagram {
	return needle.Diagram{Params: s.Params, Needles: s.Needles, Hits: s.Hits, Pi: s.Pi}
}

// ConvergenceSummary is the JSON view of the convergence run.
type ConvergenceSummary struct {
	Params         needle.Params     `json:"params"`
	Seed           uint64            `json:"seed"`
	CheckpointStep int               `json:"checkpoint_step"`
	Stats          needle.Summary    `json:"stats"`
	Estimates      []needle.Estimate `json:"estimates"`
}

// RunSummary describes one invocation of the simulator.
type RunSummary struct {
	RunID       string             `json:"run_id"`
	CreatedAt   time.Time          `json:"created_at"`
	ShortNeedle bool               `json:"short_needle"`
	Diagram     DiagramSummary     `json:"diagram"`
	Convergence ConvergenceSummary `json:"convergence"`
}

// NewRunSummary assembles a summary with a fresh run ID.
func NewRunSummary(d needle.Diagram, diagramSeed uint64, seq []needle.Estimate, convParams needle.Params, convSeed uint64, step int) *RunSummary {
	return &RunSummary{
		RunID:       uuid.New().String(),
		CreatedAt:   time.Now().UTC(),
		ShortNeedle: d.Params.ShortNeedle(),
		Diagram: DiagramSummary{
			Params:   d.Params,
			Seed:     diagramSeed,
			Hits:     d.Hits,
			Pi:       d.Pi,
			StdError: needle.StdError(d.Hits, d.Params.Trials, d.Params.NeedleLength, d.Params.LineDistance),
			Needles:  d.Needles,
		},
		Convergence: ConvergenceSummary{
			Params:         convParams,
			Seed:           convSeed,
			CheckpointStep: step,
			Stats:          needle.Summarize(seq),
			Estimates:      seq,
		},
	}
}

// WriteSummaryJSON writes s as indented JSON.
func WriteSummaryJSON(w io.Writer, s *RunSummary) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("encode summary: %w", err)
	}
	return nil
}

// RunDir returns the output directory for a run: <base>/<date>_<time>_<id8>.
func RunDir(baseDir, runID string, at time.Time) string {
	short := runID
	if len(short) > 8 {
		short = short[:8]
	}
	return filepath.Join(baseDir, at.Format("20060102_150405")+"_"+short)
}

// Artefact file names inside a run directory.
const (
	SummaryFile     = "summary.json"
	ConvergenceFile = "convergence.csv"
)

// ErrRunExists is returned when dir already holds a run summary.
var ErrRunExists = errors.New("report: run already written")

// WriteRun writes the summary and the convergence CSV into dir, creating
// it first. An existing summary in dir is never overwritten.
func WriteRun(fsys fsutil.FileSystem, dir string, s *RunSummary) error {
	if fsys.Exists(filepath.Join(dir, SummaryFile)) {
		return fmt.Errorf("%w: %s", ErrRunExists, dir)
	}
	if err := fsys.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create output dir: %w", err)
	}

	if err := writeFile(fsys, filepath.Join(dir, SummaryFile), func(w io.Writer) error {
		return WriteSummaryJSON(w, s)
	}); err != nil {
		return err
	}
	return writeFile(fsys, filepath.Join(dir, ConvergenceFile), func(w io.Writer) error {
		return WriteConvergenceCSV(w, s.Convergence.Estimates)
	})
}

func writeFile(fsys fsutil.FileSystem, path string, fill func(io.Writer) error) error {
	var buf bytes.Buffer
	if err := fill(&buf); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := fsys.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
