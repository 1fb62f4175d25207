package smell

import (
	"errors"
	"fmt"
)

var (
	// ErrKindMismatch is returned when an int value is compared against a float value
	ErrKindMismatch = errors.New("numeric kind mismatch")

	// ErrTooManyMetrics is returned when a candidate already holds MaxMetrics metrics
	ErrTooManyMetrics = errors.New("maximum number of metrics reached")

	// ErrDuplicateMetric is returned when a candidate already holds a metric with the same name
	ErrDuplicateMetric = errors.New("duplicate metric name")

	// ErrLayoutMismatch is returned when a candidate's metric names differ from the set's layout
	ErrLayoutMismatch = errors.New("candidate metrics do not match smell set layout")

	// ErrMissingThreshold is returned when a filter step has no threshold for its metric
	ErrMissingThreshold = errors.New("missing threshold configuration")

	// ErrUnknownMetric is returned when a set does not carry the metric a filter step sorts by
	ErrUnknownMetric = errors.New("metric does not exist in smell set")

	// ErrInvalidThreshold is returned by Threshold.Validate
	ErrInvalidThreshold = errors.New("invalid threshold")
)

// FilterError reports a failed filter step of one detector.
// The smell set keeps the state left by the last successful cut.
type FilterError struct {
	Detector string
	Metric   string
	Err      error
}

func (e *FilterError) Error() string {
	return fmt.Sprintf("filter %s: metric %s: %v", e.Detector, e.Metric, e.Err)
}

func (e *FilterError) Unwrap() error {
	return e.Err
}
