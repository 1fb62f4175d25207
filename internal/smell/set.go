package smell

import (
	"fmt"
	"slices"
)

// InitialCapacity is the number of candidates a new set reserves
const InitialCapacity = 32

// Set is the ordered collection of candidates owned by one detector.
//
// Cuts never release storage: Truncate only moves the visible boundary, so
// items past Len() are still stored and a later, larger Truncate exposes
// them again.
type Set struct {
	items  []Candidate
	count  int
	layout []string
}

// NewSet creates an empty set
func NewSet() *Set {
	return &Set{
		items: make([]Candidate, 0, InitialCapacity),
	}
}

// Add appends a candidate. The first candidate fixes the metric layout of
// the set; later candidates must carry the same metric names.
func (s *Set) Add(c Candidate) error {
	names := c.MetricNames()
	if s.layout == nil {
		s.layout = names
	} else if !sameNames(s.layout, names) {
		return fmt.Errorf("%w: have %v, got %v", ErrLayoutMismatch, s.layout, names)
	}

	// Anything past the visible boundary is discarded before appending so
	// the new item becomes visible.
	s.items = append(s.items[:s.count], c)
	s.count = len(s.items)
	return nil
}

// Merge appends the visible candidates of other
func (s *Set) Merge(other *Set) error {
	if other == nil {
		return nil
	}
	for _, c := range other.Visible() {
		if err := s.Add(c); err != nil {
			return err
		}
	}
	return nil
}

// Len returns the number of visible candidates
func (s *Set) Len() int {
	return s.count
}

// Stored returns the number of physically stored candidates
func (s *Set) Stored() int {
	return len(s.items)
}

// Layout returns the metric names shared by every candidate
func (s *Set) Layout() []string {
	return slices.Clone(s.layout)
}

// At returns the i-th visible candidate
func (s *Set) At(i int) Candidate {
	return s.items[:s.count][i]
}

// Visible returns the visible prefix. The slice aliases the set's storage.
func (s *Set) Visible() []Candidate {
	return s.items[:s.count]
}

// Truncate sets the visible count, clamped to the stored range
func (s *Set) Truncate(n int) {
	switch {
	case n < 0:
		n = 0
	case n > len(s.items):
		n = len(s.items)
	}
	s.count = n
}

// SortBy stably reorders the visible candidates by the named metric
func (s *Set) SortBy(metric string, ascending bool) error {
	if s.count == 0 {
		return nil
	}
	if !slices.Contains(s.layout, metric) {
		return fmt.Errorf("%w: %s", ErrUnknownMetric, metric)
	}

	visible := s.items[:s.count]
	kind := mustMetric(&visible[0], metric).Kind()
	for i := range visible {
		if k := mustMetric(&visible[i], metric).Kind(); k != kind {
			return fmt.Errorf("%w: metric %s holds both %s and %s values", ErrKindMismatch, metric, kind, k)
		}
	}

	slices.SortStableFunc(visible, func(a, b Candidate) int {
		cmp, _ := mustMetric(&a, metric).Compare(mustMetric(&b, metric))
		if ascending {
			return cmp
		}
		return -cmp
	})
	return nil
}

func mustMetric(c *Candidate, name string) Value {
	v, _ := c.Metric(name)
	return v
}

func sameNames(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for _, name := range b {
		if !slices.Contains(a, name) {
			return false
		}
	}
	return true
}
