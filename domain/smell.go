package domain

import (
	"context"
	"io"
)

// Detector names
const (
	DetectorLongFunction      = "long_function"
	DetectorLongParameterList = "long_parameter_list"
	DetectorGodClass          = "god_class"
)

// SmellRequest represents a request for code smell detection
type SmellRequest struct {
	// Input files or directories to analyze
	Paths []string

	// Output configuration
	OutputFormat OutputFormat
	OutputWriter io.Writer
	OutputPath   string // Report file; empty writes to OutputWriter
	NoOpen       bool   // Don't auto-open HTML in browser
	ShowDetails  bool

	// Analysis options
	Recursive       bool
	IncludePatterns []string
	ExcludePatterns []string
	Workers         int // 0 = one per CPU

	// Detectors restricts the run to the named detectors; empty runs all
	Detectors []string

	// Overrides sets configuration keys from the command line, keyed
	// "<section>.<key>" (e.g. "god_class.absolute_wmc")
	Overrides map[string]string

	// Thresholds holds the resolved thresholds per detector; nil uses the defaults
	Thresholds map[string][]ThresholdInfo

	// Configuration
	ConfigPath string

	// ExplicitFlags records the flags set on the command line; only those
	// override configuration file values
	ExplicitFlags map[string]bool
}

// MetricValue is one measured metric of a smell
type MetricValue struct {
	Name      string  `json:"name" yaml:"name"`
	Value     float64 `json:"value" yaml:"value"`
	Threshold float64 `json:"threshold" yaml:"threshold"`

	// Float is set for fractional metrics such as TCC
	Float bool `json:"-" yaml:"-"`
}

// Smell is a candidate that survived every cut of its detector
type Smell struct {
	Type    string        `json:"type" yaml:"type"`
	File    string        `json:"file" yaml:"file"`
	Line    int           `json:"line" yaml:"line"`
	Subject string        `json:"subject" yaml:"subject"`
	Metrics []MetricValue `json:"metrics" yaml:"metrics"`
}

// ThresholdInfo describes one cut of a detector
type ThresholdInfo struct {
	Metric        string  `json:"metric" yaml:"metric"`
	Absolute      float64 `json:"absolute" yaml:"absolute"`
	Percentage    float64 `json:"percentage" yaml:"percentage"`
	UsePercentage bool    `json:"use_percentage" yaml:"use_percentage"`
	Bound         string  `json:"bound" yaml:"bound"`

	// Float is set when the metric is fractional
	Float bool `json:"-" yaml:"-"`
}

// DetectorResult holds the outcome of one detector
type DetectorResult struct {
	Name        string          `json:"name" yaml:"name"`
	Metrics     []string        `json:"metrics" yaml:"metrics"`
	FilterOrder []string        `json:"filter_order" yaml:"filter_order"`
	Thresholds  []ThresholdInfo `json:"thresholds" yaml:"thresholds"`

	// Candidates is the number of candidates before filtering
	Candidates int     `json:"candidates" yaml:"candidates"`
	Smells     []Smell `json:"smells" yaml:"smells"`

	// Error is set when filtering stopped early; Smells then holds the
	// result of the last completed cut
	Error string `json:"error,omitempty" yaml:"error,omitempty"`
}

// SmellSummary represents aggregate statistics
type SmellSummary struct {
	FilesAnalyzed    int            `json:"files_analyzed" yaml:"files_analyzed"`
	FilesSkipped     int            `json:"files_skipped" yaml:"files_skipped"`
	TotalCandidates  int            `json:"total_candidates" yaml:"total_candidates"`
	TotalSmells      int            `json:"total_smells" yaml:"total_smells"`
	SmellsByDetector map[string]int `json:"smells_by_detector" yaml:"smells_by_detector"`
}

// SmellResponse represents the complete detection result
type SmellResponse struct {
	RunID     string           `json:"run_id" yaml:"run_id"`
	Detectors []DetectorResult `json:"detectors" yaml:"detectors"`
	Summary   SmellSummary     `json:"summary" yaml:"summary"`

	// Warnings and issues
	Warnings []string `json:"warnings" yaml:"warnings"`
	Errors   []string `json:"errors" yaml:"errors"`

	// Metadata
	GeneratedAt string      `json:"generated_at" yaml:"generated_at"`
	Version     string      `json:"version" yaml:"version"`
	Config      interface{} `json:"config" yaml:"config"`
}

// Smells returns every smell of the response in detector order
func (r *SmellResponse) Smells() []Smell {
	var smells []Smell
	for _, d := range r.Detectors {
		smells = append(smells, d.Smells...)
	}
	return smells
}

// DetectorInfo describes a registered detector and its defaults
type DetectorInfo struct {
	Name        string          `json:"name" yaml:"name"`
	Description string          `json:"description" yaml:"description"`
	Metrics     []string        `json:"metrics" yaml:"metrics"`
	FilterOrder []string        `json:"filter_order" yaml:"filter_order"`
	Thresholds  []ThresholdInfo `json:"thresholds" yaml:"thresholds"`
}

// SmellService defines the core business logic for smell detection
type SmellService interface {
	// Detect runs the detectors over the files of the request
	Detect(ctx context.Context, req SmellRequest) (*SmellResponse, error)

	// Detectors lists the available detectors with their default thresholds
	Detectors() []DetectorInfo
}

// SmellConfigurationLoader loads detection settings
type SmellConfigurationLoader interface {
	// LoadConfig loads configuration from the specified path, or discovers
	// it from target, and applies the command line overrides
	LoadConfig(path, target string, overrides map[string]string) (*SmellRequest, error)

	// MergeConfig merges CLI flags with configuration file
	MergeConfig(base *SmellRequest, override *SmellRequest) *SmellRequest
}

// SmellOutputFormatter defines the interface for formatting detection results
type SmellOutputFormatter interface {
	// Format formats the response according to the specified format
	Format(response *SmellResponse, format OutputFormat) (string, error)

	// Write writes the formatted output to the writer
	Write(response *SmellResponse, format OutputFormat, writer io.Writer) error
}

// DefaultSmellRequest returns a SmellRequest with default values
func DefaultSmellRequest() *SmellRequest {
	return &SmellRequest{
		OutputFormat:    OutputFormatText,
		Recursive:       true,
		IncludePatterns: []string{"**/*.py"},
		ExcludePatterns: []string{},
	}
}
