package config

import (
	"fmt"
	"slices"

	"github.com/ludo-technologies/pysmell/domain"
	"github.com/ludo-technologies/pysmell/internal/detector"
	"github.com/ludo-technologies/pysmell/internal/logging"
	"github.com/ludo-technologies/pysmell/internal/smell"
)

// Default settings outside the detector sections
const (
	// DefaultOutputFormat is the report format used when none is configured
	DefaultOutputFormat = "text"

	// DefaultWorkers of 0 lets the service use one worker per CPU
	DefaultWorkers = 0

	// DefaultLogLevel only lets warnings and errors through
	DefaultLogLevel = "warn"
)

// Config represents the main configuration structure
type Config struct {
	// Output holds report settings
	Output OutputConfig `mapstructure:"output" yaml:"output"`

	// Analysis holds file selection and scheduling settings
	Analysis AnalysisConfig `mapstructure:"analysis" yaml:"analysis"`

	// Log holds logger settings
	Log LogConfig `mapstructure:"log" yaml:"log"`

	// Thresholds maps a detector name to its thresholds in filter order.
	// They are read from the [long_function], [long_parameter_list] and
	// [god_class] sections.
	Thresholds map[string][]smell.Threshold `mapstructure:"-" yaml:"-"`

	// Path is the file the configuration was read from. Empty when only
	// defaults and environment variables apply.
	Path string `mapstructure:"-" yaml:"-"`
}

// OutputConfig holds configuration for output formatting
type OutputConfig struct {
	// Format specifies the output format: text, json, yaml, csv, html
	Format string `mapstructure:"format" yaml:"format"`

	// Directory receives report files; empty means .pysmell/reports under the working directory
	Directory string `mapstructure:"directory" yaml:"directory"`

	// ShowDetails adds the per-metric thresholds to text reports
	ShowDetails bool `mapstructure:"show_details" yaml:"show_details"`
}

// AnalysisConfig holds general analysis configuration
type AnalysisConfig struct {
	IncludePatterns []string `mapstructure:"include_patterns" yaml:"include_patterns"`
	ExcludePatterns []string `mapstructure:"exclude_patterns" yaml:"exclude_patterns"`
	Recursive       bool     `mapstructure:"recursive" yaml:"recursive"`

	// Workers bounds the number of files detected concurrently; 0 means one per CPU
	Workers int `mapstructure:"workers" yaml:"workers"`

	// Detectors restricts the run to the named detectors; empty runs all of them
	Detectors []string `mapstructure:"detectors" yaml:"detectors"`
}

// LogConfig holds logger configuration
type LogConfig struct {
	Level string `mapstructure:"level" yaml:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Output: OutputConfig{
			Format: DefaultOutputFormat,
		},
		Analysis: AnalysisConfig{
			IncludePatterns: []string{"**/*.py"},
			ExcludePatterns: []string{},
			Recursive:       true,
			Workers:         DefaultWorkers,
			Detectors:       []string{},
		},
		Log: LogConfig{
			Level: DefaultLogLevel,
		},
		Thresholds: detector.AllDefaultThresholds(),
	}
}

// Validate validates the configuration values
func (c *Config) Validate() error {
	switch domain.OutputFormat(c.Output.Format) {
	case domain.OutputFormatText, domain.OutputFormatJSON, domain.OutputFormatYAML,
		domain.OutputFormatCSV, domain.OutputFormatHTML:
	default:
		return fmt.Errorf("invalid output.format '%s', must be one of: text, json, yaml, csv, html", c.Output.Format)
	}

	if c.Analysis.Workers < 0 {
		return fmt.Errorf("analysis.workers must be >= 0, got %d", c.Analysis.Workers)
	}

	for _, name := range c.Analysis.Detectors {
		if !slices.Contains(detector.Names(), name) {
			return fmt.Errorf("analysis.detectors: unknown detector '%s', must be one of: %v", name, detector.Names())
		}
	}

	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}

	if _, err := detector.NewRegistry(c.Thresholds, nil); err != nil {
		return err
	}
	return nil
}
