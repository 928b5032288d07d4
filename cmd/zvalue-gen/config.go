package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/wippyai/zvalue/errors"
)

const defaultOutput = "zvalue_gen.go"

// Config controls a generator run. Flags override values read from file.
type Config struct {
	// Output is the file name written into each package directory.
	Output string `yaml:"output"`

	// Dir is the directory patterns are resolved in.
	Dir string `yaml:"dir"`

	// Patterns select the packages to process.
	Patterns []string `yaml:"patterns"`

	Verbose bool `yaml:"verbose"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() Config {
	return Config{
		Output:   defaultOutput,
		Dir:      ".",
		Patterns: []string{"."},
	}
}

// LoadConfig reads the YAML file at path over the defaults. An empty path
// yields the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrap(errors.PhaseConfig, errors.KindInvalidData, err, "decode "+path)
	}
	return cfg, cfg.Validate()
}

// Validate checks that the output file and patterns are usable.
func (c Config) Validate() error {
	if c.Output == "" || filepath.Base(c.Output) != c.Output {
		return errors.InvalidInput(errors.PhaseConfig, fmt.Sprintf("output %q must be a file name", c.Output))
	}
	if !strings.HasSuffix(c.Output, ".go") || strings.HasSuffix(c.Output, "_test.go") {
		return errors.InvalidInput(errors.PhaseConfig, fmt.Sprintf("output %q must be a non-test Go file", c.Output))
	}
	if len(c.Patterns) == 0 {
		return errors.InvalidInput(errors.PhaseConfig, "at least one package pattern is required")
	}
	return nil
}
