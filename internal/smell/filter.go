package smell

import (
	"math"
)

// Filter runs the sort-and-cut pipeline over one detector's set.
//
// The population size is captured when the filter is created, so every
// percentage cut is a fraction of the pre-filter count rather than of what
// earlier cuts left visible.
type Filter struct {
	detector string
	set      *Set
	total    int
}

// NewFilter captures the current visible count of set as the population size
func NewFilter(detector string, set *Set) *Filter {
	return &Filter{
		detector: detector,
		set:      set,
		total:    set.Len(),
	}
}

// Total returns the population size captured at creation
func (f *Filter) Total() int {
	return f.total
}

// Apply sorts the visible candidates by the threshold's metric and cuts them
func (f *Filter) Apply(t Threshold) error {
	if err := f.set.SortBy(t.Metric, t.Ascending()); err != nil {
		return f.fail(t.Metric, err)
	}

	if t.UsePercentage {
		f.set.Truncate(int(math.Floor(float64(f.total) * t.Percentage)))
		return nil
	}

	visible := f.set.Visible()
	for i := range visible {
		v, _ := visible[i].Metric(t.Metric)
		violates, err := t.Violates(v)
		if err != nil {
			return f.fail(t.Metric, err)
		}
		if violates {
			f.set.Truncate(i)
			break
		}
	}
	return nil
}

// Run applies the thresholds for the given metrics in order. A metric
// without a threshold stops the run; earlier cuts are kept.
func (f *Filter) Run(thresholds []Threshold, order []string) error {
	for _, metric := range order {
		t, ok := Lookup(thresholds, metric)
		if !ok {
			return f.fail(metric, ErrMissingThreshold)
		}
		if err := f.Apply(t); err != nil {
			return err
		}
	}
	return nil
}

func (f *Filter) fail(metric string, err error) error {
	return &FilterError{Detector: f.detector, Metric: metric, Err: err}
}
