package cli

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// RunConfig is the optional YAML configuration for the run command.
// Flags given on the command line override file values.
type RunConfig struct {
	// Budget is the per-query time budget (Go duration string, e.g. "1s").
	Budget Duration `yaml:"budget,omitempty"`

	// Slice is the length of one improvement solve (e.g. "100ms").
	Slice Duration `yaml:"slice,omitempty"`

	// Tolerance absorbs numeric noise in the monotonicity check.
	// Zero means: derive from the fixture's smallest obstacle radius.
	Tolerance float64 `yaml:"tolerance,omitempty"`

	// MaxQueries caps queries per planner variant.
	MaxQueries int `yaml:"max_queries,omitempty"`

	// Planners selects variants by name; empty means all registered.
	Planners []string `yaml:"planners,omitempty"`
}

// Duration wraps time.Duration for YAML duration-string decoding.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return fmt.Errorf("duration must be a string like \"500ms\": %w", err)
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// LoadRunConfig reads and parses a run configuration YAML file.
// Unknown fields (typos) and invalid values are rejected.
func LoadRunConfig(path string) (*RunConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg RunConfig
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // reject unknown fields
	if err := decoder.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateRunConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// validateRunConfig checks that set fields are usable.
func validateRunConfig(c *RunConfig) error {
	if c.Budget < 0 {
		return fmt.Errorf("budget must be positive")
	}
	if c.Slice < 0 {
		return fmt.Errorf("slice must be positive")
	}
	if c.Budget > 0 && c.Slice > 0 && time.Duration(c.Slice) > time.Duration(c.Budget) {
		return fmt.Errorf("slice %v exceeds budget %v", time.Duration(c.Slice), time.Duration(c.Budget))
	}
	if c.Tolerance < 0 {
		return fmt.Errorf("tolerance must be non-negative")
	}
	if c.MaxQueries < 0 {
		return fmt.Errorf("max_queries must be non-negative")
	}
	for i, name := range c.Planners {
		if name == "" {
			return fmt.Errorf("planners[%d]: name is empty", i)
		}
	}
	return nil
}
