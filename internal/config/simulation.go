package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/minhua89/buffon-needle-simulation/internal/needle"
)

// DefaultConfigPath is the path to the canonical simulation defaults file.
const DefaultConfigPath = "config/buffon.defaults.json"

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// Recognised parameter ranges.
const (
	MinNeedleLength      = 0.1
	MaxNeedleLength      = 2.0
	MinLineDistance      = 0.2
	MaxLineDistance      = 3.0
	MinDiagramTrials     = 10
	MaxDiagramTrials     = 500
	MinConvergenceTrials = 1000
	MaxConvergenceTrials = 100000
)

// SimulationConfig is the JSON configuration for a simulation run. Nil
// fields fall back to the defaults returned by the Get* methods, so
// partial files are safe.
type SimulationConfig struct {
	NeedleLength      *float64 `json:"needle_length,omitempty"`
	LineDistance      *float64 `json:"line_distance,omitempty"`
	DiagramTrials     *int     `json:"diagram_trials,omitempty"`
	ConvergenceTrials *int     `json:"convergence_trials,omitempty"`
	CheckpointStep    *int     `json:"checkpoint_step,omitempty"`

	// Seed fixes the random streams; nil means a fresh seed per run.
	Seed      *uint64 `json:"seed,omitempty"`
	OutputDir *string `json:"output_dir,omitempty"`
}

func ptrFloat64(v float64) *float64 { return &v }
func ptrInt(v int) *int             { return &v }
func ptrString(v string) *string    { return &v }

// DefaultSimulationConfig returns a config with every field set to its default.
func DefaultSimulationConfig() *SimulationConfig {
	return &SimulationConfig{
		NeedleLength:      ptrFloat64(1.0),
		LineDistance:      ptrFloat64(2.0),
		DiagramTrials:     ptrInt(100),
		ConvergenceTrials: ptrInt(10000),
		CheckpointStep:    ptrInt(needle.DefaultCheckpointStep),
		OutputDir:         ptrString("plots"),
	}
}

// LoadSimulationConfig loads a SimulationConfig from a JSON file.
// The file must have a .json extension and be at most 1MB.
func LoadSimulationConfig(path string) (*SimulationConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := &SimulationConfig{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// MustLoadDefaultConfig loads DefaultConfigPath, searching the current
// directory and its parents. Panics if the file cannot be loaded; intended
// for test setup.
func MustLoadDefaultConfig() *SimulationConfig {
	candidates := []string{
		DefaultConfigPath,
		"../" + DefaultConfigPath,
		"../../" + DefaultConfigPath,
		"../../../" + DefaultConfigPath,
	}
	for _, path := range candidates {
		if cfg, err := LoadSimulationConfig(path); err == nil {
			return cfg
		}
	}
	panic("cannot find " + DefaultConfigPath + " - run tests from repository root")
}

// Validate checks every set field against the recognised ranges.
func (c *SimulationConfig) Validate() error {
	if c.NeedleLength != nil {
		if v := *c.NeedleLength; v < MinNeedleLength || v > MaxNeedleLength {
			return fmt.Errorf("%w: needle_length must be between %g and %g, got %g", ErrInvalidConfig, MinNeedleLength, MaxNeedleLength, v)
		}
	}
	if c.LineDistance != nil {
		if v := *c.LineDistance; v < MinLineDistance || v > MaxLineDistance {
			return fmt.Errorf("%w: line_distance must be between %g and %g, got %g", ErrInvalidConfig, MinLineDistance, MaxLineDistance, v)
		}
	}
	if c.DiagramTrials != nil {
		if v := *c.DiagramTrials; v < MinDiagramTrials || v > MaxDiagramTrials {
			return fmt.Errorf("%w: diagram_trials must be between %d and %d, got %d", ErrInvalidConfig, MinDiagramTrials, MaxDiagramTrials, v)
		}
	}
	if c.ConvergenceTrials != nil {
		if v := *c.ConvergenceTrials; v < MinConvergenceTrials || v > MaxConvergenceTrials {
			return fmt.Errorf("%w: convergence_trials must be between %d and %d, got %d", ErrInvalidConfig, MinConvergenceTrials, MaxConvergenceTrials, v)
		}
	}
	if c.CheckpointStep != nil && *c.CheckpointStep <= 0 {
		return fmt.Errorf("%w: checkpoint_step must be positive, got %d", ErrInvalidConfig, *c.CheckpointStep)
	}
	if c.OutputDir != nil && *c.OutputDir == "" {
		return fmt.Errorf("%w: output_dir must not be empty", ErrInvalidConfig)
	}
	return nil
}

// GetNeedleLength returns the needle_length value or the default.
func (c *SimulationConfig) GetNeedleLength() float64 {
	if c.NeedleLength == nil {
		return 1.0
	}
	return *c.NeedleLength
}

// GetLineDistance returns the line_distance value or the default.
func (c *SimulationConfig) GetLineDistance() float64 {
	if c.LineDistance == nil {
		return 2.0
	}
	return *c.LineDistance
}

// GetDiagramTrials returns the diagram_trials value or the default.
func (c *SimulationConfig) GetDiagramTrials() int {
	if c.DiagramTrials == nil {
		return 100
	}
	return *c.DiagramTrials
}

// GetConvergenceTrials returns the convergence_trials value or the default.
func (c *SimulationConfig) GetConvergenceTrials() int {
	if c.ConvergenceTrials == nil {
		return 10000
	}
	return *c.ConvergenceTrials
}

// GetCheckpointStep returns the checkpoint_step value or the default.
func (c *SimulationConfig) GetCheckpointStep() int {
	if c.CheckpointStep == nil {
		return needle.DefaultCheckpointStep
	}
	return *c.CheckpointStep
}

// GetOutputDir returns the output_dir value or the default.
func (c *SimulationConfig) GetOutputDir() string {
	if c.OutputDir == nil || *c.OutputDir == "" {
		return "plots"
	}
	return *c.OutputDir
}

// GetSeed returns the configured seed, or a fresh one from seedFunc.
func (c *SimulationConfig) GetSeed() uint64 {
	if c.Seed == nil {
		return seedFunc()
	}
	return *c.Seed
}

// DiagramParams returns the engine parameters for the needle diagram.
func (c *SimulationConfig) DiagramParams() needle.Params {
	return c.geometry().WithTrials(c.GetDiagramTrials())
}

// ConvergenceParams returns the engine parameters for the convergence run.
func (c *SimulationConfig) ConvergenceParams() needle.Params {
	return c.geometry().WithTrials(c.GetConvergenceTrials())
}

func (c *SimulationConfig) geometry() needle.Params {
	return needle.Params{NeedleLength: c.GetNeedleLength(), LineDistance: c.GetLineDistance()}
}
