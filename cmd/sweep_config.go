package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/inference-sim/fcfs-sim/sim/sweep"
	"github.com/inference-sim/fcfs-sim/sim/trace"
)

// SweepConfig represents a sweep definition file.
// All top-level keys must be listed to satisfy KnownFields(true) strict parsing.
type SweepConfig struct {
	Seed            int64     `yaml:"seed"`
	CustomerCount   int       `yaml:"customer_count"`
	ServeTimes      []float64 `yaml:"serve_times"`
	ServerCounts    []int     `yaml:"server_counts"`
	WindowDurations []float64 `yaml:"window_durations"`
	Workers         int       `yaml:"workers"`
	Trace           string    `yaml:"trace"`
}

// DefaultSweepConfig is the lunch-queue study: 1250 employees arriving over
// half an hour to two hours, served in 5 to 45 seconds by 1 to 5 servers.
func DefaultSweepConfig() SweepConfig {
	return SweepConfig{
		Seed:            42,
		CustomerCount:   1250,
		ServeTimes:      []float64{5, 10, 15, 30, 45},
		ServerCounts:    []int{1, 2, 3, 5},
		WindowDurations: []float64{1800, 3600, 7200},
		Trace:           string(trace.TraceLevelNone),
	}
}

// LoadSweepConfig parses a sweep YAML file. Keys missing from the file keep
// their DefaultSweepConfig values; unknown keys are an error.
func LoadSweepConfig(path string) (SweepConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return SweepConfig{}, fmt.Errorf("reading sweep config: %w", err)
	}
	return ParseSweepConfig(data)
}

// ParseSweepConfig decodes YAML on top of DefaultSweepConfig. An empty
// document yields the defaults.
func ParseSweepConfig(data []byte) (SweepConfig, error) {
	cfg := DefaultSweepConfig()
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return SweepConfig{}, fmt.Errorf("parsing sweep config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return SweepConfig{}, err
	}
	return cfg, nil
}

// Validate checks the sweep shape. Individual parameter values are checked
// per trial so one bad value does not stop the rest of the sweep.
func (c SweepConfig) Validate() error {
	switch {
	case len(c.ServeTimes) == 0:
		return fmt.Errorf("sweep config: serve_times must not be empty")
	case len(c.ServerCounts) == 0:
		return fmt.Errorf("sweep config: server_counts must not be empty")
	case len(c.WindowDurations) == 0:
		return fmt.Errorf("sweep config: window_durations must not be empty")
	case c.Workers < 0:
		return fmt.Errorf("sweep config: workers must not be negative, got %d", c.Workers)
	case !trace.IsValidTraceLevel(c.Trace):
		return fmt.Errorf("sweep config: unknown trace level %q", c.Trace)
	}
	return nil
}

// Grid returns the parameter grid described by c.
func (c SweepConfig) Grid() sweep.Grid {
	return sweep.Grid{
		ServeTimes:      c.ServeTimes,
		ServerCounts:    c.ServerCounts,
		WindowDurations: c.WindowDurations,
		CustomerCount:   c.CustomerCount,
	}
}
