package cmd

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/bradleyombachi/rrsim/sim"
)

// RunConfig is the YAML form of a simulation run.
// Nil pointer fields mean "not set in YAML" and leave the flag value in place.
type RunConfig struct {
	Quantum      *int64          `yaml:"quantum"`
	MaxSeqLen    *int            `yaml:"max_seq_len"`
	LogLevel     string          `yaml:"log_level"`
	SortArrivals *bool           `yaml:"sort_arrivals"`
	Source       string          `yaml:"source"`
	Processes    []ProcessConfig `yaml:"processes"`
}

// ProcessConfig is one inline process definition.
type ProcessConfig struct {
	ID      int   `yaml:"id"`
	Arrival int64 `yaml:"arrival"`
	Burst   int64 `yaml:"burst"`
}

// LoadRunConfig reads and parses a YAML run configuration file.
// Uses strict parsing: unrecognized keys (typos) are rejected.
func LoadRunConfig(path string) (*RunConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading run config: %w", err)
	}
	var cfg RunConfig
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("parsing run config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &cfg, nil
}

// Validate checks parameter ranges that can be judged without the workload.
func (c *RunConfig) Validate() error {
	if c.Quantum != nil && *c.Quantum <= 0 {
		return fmt.Errorf("quantum must be positive, got %d", *c.Quantum)
	}
	if c.MaxSeqLen != nil && *c.MaxSeqLen < 0 {
		return fmt.Errorf("max_seq_len must be non-negative, got %d", *c.MaxSeqLen)
	}
	if c.Source != "" && len(c.Processes) > 0 {
		return fmt.Errorf("source and processes are mutually exclusive")
	}
	return nil
}

// SimProcesses converts the inline processes, in file order.
func (c *RunConfig) SimProcesses() []sim.Process {
	if len(c.Processes) == 0 {
		return nil
	}
	out := make([]sim.Process, len(c.Processes))
	for i, p := range c.Processes {
		out[i] = sim.NewProcess(p.ID, p.Arrival, p.Burst)
	}
	return out
}
