package smell

import (
	"fmt"
	"strings"
)

// Bound tells which side of a threshold a smell lies on
type Bound int

const (
	boundUnset Bound = iota
	// KeepHigh keeps values at or above the threshold (large values smell)
	KeepHigh
	// KeepLow keeps values at or below the threshold (small values smell)
	KeepLow
)

// String returns the configuration spelling of the bound
func (b Bound) String() string {
	switch b {
	case KeepHigh:
		return "keep_high"
	case KeepLow:
		return "keep_low"
	default:
		return "unset"
	}
}

// ParseBound parses "keep_high" or "keep_low" (dashes accepted)
func ParseBound(s string) (Bound, error) {
	switch strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_") {
	case "keep_high", "high":
		return KeepHigh, nil
	case "keep_low", "low":
		return KeepLow, nil
	}
	return boundUnset, fmt.Errorf("%w: unknown bound %q (want keep_high or keep_low)", ErrInvalidThreshold, s)
}

// Keys are the configuration keys a threshold is read from
type Keys struct {
	Absolute      string
	Percentage    string
	UsePercentage string
}

// Threshold is the cut rule for one metric of a detector
type Threshold struct {
	Metric        string
	Absolute      Value
	Percentage    float64
	UsePercentage bool
	Bound         Bound
	Keys          Keys
}

// Ascending reports the sort order that puts the smelliest items first
func (t Threshold) Ascending() bool {
	return t.Bound == KeepLow
}

// Violates reports whether v falls on the non-smelly side of the threshold
func (t Threshold) Violates(v Value) (bool, error) {
	cmp, err := v.Compare(t.Absolute)
	if err != nil {
		return false, err
	}
	if t.Bound == KeepLow {
		return cmp > 0, nil
	}
	return cmp < 0, nil
}

// Validate checks the threshold before first use
func (t Threshold) Validate() error {
	if t.Metric == "" {
		return fmt.Errorf("%w: empty metric name", ErrInvalidThreshold)
	}
	if t.Percentage < 0 || t.Percentage > 1 {
		return fmt.Errorf("%w: %s percentage %.2f outside [0, 1]", ErrInvalidThreshold, t.Metric, t.Percentage)
	}
	if t.Bound != KeepHigh && t.Bound != KeepLow {
		return fmt.Errorf("%w: %s has no bound direction", ErrInvalidThreshold, t.Metric)
	}
	if t.Absolute.FloatValue() < 0 {
		return fmt.Errorf("%w: %s absolute value %s is negative", ErrInvalidThreshold, t.Metric, t.Absolute)
	}
	return nil
}

// Lookup finds the threshold for a metric
func Lookup(thresholds []Threshold, metric string) (Threshold, bool) {
	for _, t := range thresholds {
		if t.Metric == metric {
			return t, true
		}
	}
	return Threshold{}, false
}
