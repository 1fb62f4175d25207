package detector

import (
	"go.uber.org/zap"

	"github.com/ludo-technologies/pysmell/internal/logging"
	"github.com/ludo-technologies/pysmell/internal/metrics"
	"github.com/ludo-technologies/pysmell/internal/smell"
	"github.com/ludo-technologies/pysmell/internal/syntax"
)

// LongParameterList flags functions declaring too many parameters
type LongParameterList struct {
	base
}

// NewLongParameterList creates the long-parameter-list detector
func NewLongParameterList(thresholds []smell.Threshold, logger *zap.Logger) *LongParameterList {
	return &LongParameterList{base{
		name:       NameLongParameterList,
		kind:       KindLongParameterList,
		metrics:    []string{MetricNumberParameter},
		order:      []string{MetricNumberParameter},
		thresholds: thresholds,
		logger:     logging.OrNop(logger),
	}}
}

// Detect adds one candidate per parameter list, located on the list's line
func (d *LongParameterList) Detect(tree *syntax.Tree, set *smell.Set) error {
	q, err := d.query(tree, syntax.QueryParameters)
	if err != nil {
		return err
	}

	for _, m := range q.Matches(tree.Root) {
		params := m[syntax.CaptureParams]
		count := metrics.ParameterCount(tree, params)

		candidate := smell.NewCandidate(tree.File, params.StartLine(), metrics.FunctionName(tree, params.Parent()))
		if err := candidate.AddMetric(MetricNumberParameter, smell.Int(int64(count))); err != nil {
			return d.fail(tree, err)
		}
		if err := set.Add(*candidate); err != nil {
			return d.fail(tree, err)
		}
	}
	return nil
}
