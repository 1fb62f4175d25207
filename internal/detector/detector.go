package detector

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/ludo-technologies/pysmell/internal/smell"
	"github.com/ludo-technologies/pysmell/internal/syntax"
)

// Detector names, also used as configuration section names
const (
	NameLongFunction      = "long_function"
	NameLongParameterList = "long_parameter_list"
	NameGodClass          = "god_class"
)

// Metric names
const (
	MetricLOC             = "LOC"
	MetricCC              = "CC"
	MetricNumberParameter = "NUMBER_PARAMETER"
	MetricWMC             = "WMC"
	MetricATFD            = "ATFD"
	MetricTCC             = "TCC"
)

// Kind enumerates the detector variants
type Kind int

const (
	KindLongFunction Kind = iota
	KindLongParameterList
	KindGodClass
)

// Detector finds smell candidates in syntax trees and prunes them with its thresholds.
//
// Detect only appends to the set it is given and may run for many files
// concurrently as long as each call gets its own set. Filter runs once per
// run, after every file has been detected.
type Detector interface {
	Name() string
	Kind() Kind

	// Metrics returns the metric names of every candidate, in candidate order
	Metrics() []string

	// FilterOrder returns the metrics the filter cuts by, in order
	FilterOrder() []string

	Thresholds() []smell.Threshold
	Detect(tree *syntax.Tree, set *smell.Set) error
	Filter(set *smell.Set) error
}

// DetectError reports a detector that could not process one file.
// The file is skipped for that detector only.
type DetectError struct {
	Detector string
	File     string
	Err      error
}

func (e *DetectError) Error() string {
	return fmt.Sprintf("detect %s in %s: %v", e.Detector, e.File, e.Err)
}

func (e *DetectError) Unwrap() error {
	return e.Err
}

// base holds what every variant shares
type base struct {
	name       string
	kind       Kind
	metrics    []string
	order      []string
	thresholds []smell.Threshold
	logger     *zap.Logger
}

func (b *base) Name() string                  { return b.name }
func (b *base) Kind() Kind                    { return b.kind }
func (b *base) Metrics() []string             { return b.metrics }
func (b *base) FilterOrder() []string         { return b.order }
func (b *base) Thresholds() []smell.Threshold { return b.thresholds }

// Filter runs the sort-and-cut pipeline once per metric in filter order
func (b *base) Filter(set *smell.Set) error {
	return smell.NewFilter(b.name, set).Run(b.thresholds, b.order)
}

func (b *base) query(tree *syntax.Tree, kind syntax.QueryKind) (*syntax.Query, error) {
	q, err := tree.Profile.Query(kind)
	if err != nil {
		return nil, &DetectError{Detector: b.name, File: tree.File, Err: err}
	}
	return q, nil
}

func (b *base) fail(tree *syntax.Tree, err error) error {
	return &DetectError{Detector: b.name, File: tree.File, Err: err}
}
