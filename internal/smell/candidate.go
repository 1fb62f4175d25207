package smell

import "fmt"

// MaxMetrics bounds the number of metrics a candidate can carry
const MaxMetrics = 3

// Location points at the line a smell was found on.
// File is the identifier handed in by the source loader.
type Location struct {
	File string `json:"file" yaml:"file"`
	Line int    `json:"line" yaml:"line"`
}

// Metric is a named measurement on a candidate
type Metric struct {
	Name  string `json:"name" yaml:"name"`
	Value Value  `json:"value" yaml:"value"`
}

// Candidate is one located finding with its measured metrics.
// Metrics keep insertion order; lookups are by name.
type Candidate struct {
	Location Location `json:"location" yaml:"location"`
	Subject  string   `json:"subject,omitempty" yaml:"subject,omitempty"`
	Metrics  []Metric `json:"metrics" yaml:"metrics"`
}

// NewCandidate creates a candidate without metrics
func NewCandidate(file string, line int, subject string) *Candidate {
	return &Candidate{
		Location: Location{File: file, Line: line},
		Subject:  subject,
		Metrics:  make([]Metric, 0, MaxMetrics),
	}
}

// AddMetric appends a metric, rejecting duplicates and overflow
func (c *Candidate) AddMetric(name string, value Value) error {
	if len(c.Metrics) >= MaxMetrics {
		return fmt.Errorf("%w: cannot add %s", ErrTooManyMetrics, name)
	}
	if _, ok := c.Metric(name); ok {
		return fmt.Errorf("%w: %s", ErrDuplicateMetric, name)
	}
	c.Metrics = append(c.Metrics, Metric{Name: name, Value: value})
	return nil
}

// Metric returns the metric value by name
func (c *Candidate) Metric(name string) (Value, bool) {
	for _, m := range c.Metrics {
		if m.Name == name {
			return m.Value, true
		}
	}
	return Value{}, false
}

// MetricNames returns the metric names in insertion order
func (c *Candidate) MetricNames() []string {
	names := make([]string, len(c.Metrics))
	for i, m := range c.Metrics {
		names[i] = m.Name
	}
	return names
}
