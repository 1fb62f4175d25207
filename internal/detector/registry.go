package detector

import (
	"errors"
	"fmt"
	"slices"

	"go.uber.org/zap"

	"github.com/ludo-technologies/pysmell/internal/smell"
	"github.com/ludo-technologies/pysmell/internal/syntax"
)

// Registry is the fixed, ordered set of detectors exercised by a run.
// It is built once and not mutated afterwards.
type Registry struct {
	detectors []Detector
}

// NewRegistry builds the detectors in registration order. thresholds maps a
// detector name to its thresholds; only restricts the registry to the named
// detectors when non-empty. Every threshold is validated here, before first use.
func NewRegistry(thresholds map[string][]smell.Threshold, logger *zap.Logger, only ...string) (*Registry, error) {
	for _, name := range only {
		if !slices.Contains(Names(), name) {
			return nil, fmt.Errorf("unknown detector %q (available: %v)", name, Names())
		}
	}

	r := &Registry{}
	for _, name := range Names() {
		if len(only) > 0 && !slices.Contains(only, name) {
			continue
		}
		ths := thresholds[name]
		if err := validate(name, ths); err != nil {
			return nil, err
		}

		switch name {
		case NameLongFunction:
			r.detectors = append(r.detectors, NewLongFunction(ths, logger))
		case NameLongParameterList:
			r.detectors = append(r.detectors, NewLongParameterList(ths, logger))
		case NameGodClass:
			r.detectors = append(r.detectors, NewGodClass(ths, logger))
		}
	}
	return r, nil
}

// validate checks every threshold and that its absolute value has the kind
// the detector measures the metric in
func validate(name string, thresholds []smell.Threshold) error {
	defaults := DefaultThresholds(name)
	for _, t := range thresholds {
		if err := t.Validate(); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		def, ok := smell.Lookup(defaults, t.Metric)
		if !ok {
			return fmt.Errorf("%s: %w: unknown metric %s", name, smell.ErrInvalidThreshold, t.Metric)
		}
		if def.Absolute.Kind() != t.Absolute.Kind() {
			return fmt.Errorf("%s: %w: %s threshold must be %s", name, smell.ErrInvalidThreshold, t.Metric, def.Absolute.Kind())
		}
	}
	return nil
}

// Detectors returns the detectors in registration order
func (r *Registry) Detectors() []Detector {
	return r.detectors
}

// Get returns a detector by name
func (r *Registry) Get(name string) (Detector, bool) {
	for _, d := range r.detectors {
		if d.Name() == name {
			return d, true
		}
	}
	return nil, false
}

// Result is the outcome of one detector after filtering
type Result struct {
	Detector Detector
	Set      *smell.Set

	// Total is the number of candidates before filtering
	Total int

	// Err is the filter failure, if any. Set keeps the state of the last successful cut.
	Err error
}

// Run holds one smell set per detector of a registry. A Run is not safe for
// concurrent use; parallel workers use their own runs and merge them.
type Run struct {
	registry *Registry
	sets     []*smell.Set
	results  []Result
}

// NewRun creates empty smell sets for every detector
func (r *Registry) NewRun() *Run {
	run := &Run{registry: r, sets: make([]*smell.Set, len(r.detectors))}
	for i := range run.sets {
		run.sets[i] = smell.NewSet()
	}
	return run
}

// DetectFile runs every detector over a tree. A failing detector leaves its
// set untouched for this file; the others continue.
func (run *Run) DetectFile(tree *syntax.Tree) []error {
	var errs []error
	for i, d := range run.registry.detectors {
		scratch := smell.NewSet()
		if err := d.Detect(tree, scratch); err != nil {
			errs = append(errs, err)
			continue
		}
		if err := run.sets[i].Merge(scratch); err != nil {
			errs = append(errs, &DetectError{Detector: d.Name(), File: tree.File, Err: err})
		}
	}
	return errs
}

// Merge appends the candidates of another run of the same registry
func (run *Run) Merge(other *Run) error {
	if other.registry != run.registry {
		return errors.New("cannot merge runs of different registries")
	}
	for i := range run.sets {
		if err := run.sets[i].Merge(other.sets[i]); err != nil {
			return fmt.Errorf("%s: %w", run.registry.detectors[i].Name(), err)
		}
	}
	return nil
}

// Set returns the smell set of a detector
func (run *Run) Set(name string) *smell.Set {
	for i, d := range run.registry.detectors {
		if d.Name() == name {
			return run.sets[i]
		}
	}
	return nil
}

// Filter runs every detector's filter once, in registration order.
// Filter failures are isolated per detector and returned together.
func (run *Run) Filter() []error {
	var errs []error
	run.results = make([]Result, len(run.sets))
	for i, d := range run.registry.detectors {
		set := run.sets[i]
		run.results[i] = Result{Detector: d, Set: set, Total: set.Len()}
		if err := d.Filter(set); err != nil {
			run.results[i].Err = err
			errs = append(errs, err)
		}
	}
	return errs
}

// Results returns the per-detector outcome. Before Filter has run, Total
// equals the current candidate count.
func (run *Run) Results() []Result {
	if run.results != nil {
		return run.results
	}
	results := make([]Result, len(run.sets))
	for i, d := range run.registry.detectors {
		results[i] = Result{Detector: d, Set: run.sets[i], Total: run.sets[i].Len()}
	}
	return results
}
