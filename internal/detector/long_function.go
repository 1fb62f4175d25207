package detector

import (
	"go.uber.org/zap"

	"github.com/ludo-technologies/pysmell/internal/logging"
	"github.com/ludo-technologies/pysmell/internal/metrics"
	"github.com/ludo-technologies/pysmell/internal/smell"
	"github.com/ludo-technologies/pysmell/internal/syntax"
)

// LongFunction flags functions that are long or structurally complex
type LongFunction struct {
	base
}

// NewLongFunction creates the long-function detector
func NewLongFunction(thresholds []smell.Threshold, logger *zap.Logger) *LongFunction {
	return &LongFunction{base{
		name:       NameLongFunction,
		kind:       KindLongFunction,
		metrics:    []string{MetricLOC, MetricCC},
		order:      []string{MetricLOC, MetricCC},
		thresholds: thresholds,
		logger:     logging.OrNop(logger),
	}}
}

// Detect adds one candidate per function definition with its LOC and CC
func (d *LongFunction) Detect(tree *syntax.Tree, set *smell.Set) error {
	q, err := d.query(tree, syntax.QueryFunctions)
	if err != nil {
		return err
	}

	for _, m := range q.Matches(tree.Root) {
		fn := m[syntax.CaptureFunction]

		cc, err := metrics.Cyclomatic(tree, fn)
		if err != nil {
			return d.fail(tree, err)
		}

		candidate := smell.NewCandidate(tree.File, fn.StartLine(), metrics.FunctionName(tree, fn))
		if err := candidate.AddMetric(MetricLOC, smell.Int(int64(metrics.LOC(fn)))); err != nil {
			return d.fail(tree, err)
		}
		if err := candidate.AddMetric(MetricCC, smell.Int(int64(cc))); err != nil {
			return d.fail(tree, err)
		}
		if err := set.Add(*candidate); err != nil {
			return d.fail(tree, err)
		}
	}
	return nil
}
