package detector

import (
	"errors"

	"go.uber.org/zap"

	"github.com/ludo-technologies/pysmell/internal/logging"
	"github.com/ludo-technologies/pysmell/internal/metrics"
	"github.com/ludo-technologies/pysmell/internal/smell"
	"github.com/ludo-technologies/pysmell/internal/syntax"
)

// GodClass flags classes with high complexity, heavy use of other objects'
// data and low cohesion
type GodClass struct {
	base
}

// NewGodClass creates the god-class detector. Candidates carry WMC, ATFD
// and TCC; filtering cuts by WMC, then TCC, then ATFD.
func NewGodClass(thresholds []smell.Threshold, logger *zap.Logger) *GodClass {
	return &GodClass{base{
		name:       NameGodClass,
		kind:       KindGodClass,
		metrics:    []string{MetricWMC, MetricATFD, MetricTCC},
		order:      []string{MetricWMC, MetricTCC, MetricATFD},
		thresholds: thresholds,
		logger:     logging.OrNop(logger),
	}}
}

// Detect adds one candidate per class definition
func (d *GodClass) Detect(tree *syntax.Tree, set *smell.Set) error {
	q, err := d.query(tree, syntax.QueryClasses)
	if err != nil {
		return err
	}

	for _, m := range q.Matches(tree.Root) {
		classNode := m[syntax.CaptureClass]

		cls, err := metrics.NewClass(tree, classNode)
		if errors.Is(err, metrics.ErrNoClassName) {
			d.logger.Warn("skipping class without name",
				zap.String("file", tree.File),
				zap.Int("line", classNode.StartLine()))
			continue
		}
		if err != nil {
			return d.fail(tree, err)
		}

		measured, err := metrics.MeasureClass(tree, cls)
		if err != nil {
			return d.fail(tree, err)
		}

		candidate := smell.NewCandidate(tree.File, classNode.StartLine(), cls.Name)
		for _, metric := range []smell.Metric{
			{Name: MetricWMC, Value: smell.Int(int64(measured.WMC))},
			{Name: MetricATFD, Value: smell.Int(int64(measured.ATFD))},
			{Name: MetricTCC, Value: smell.Float(measured.TCC)},
		} {
			if err := candidate.AddMetric(metric.Name, metric.Value); err != nil {
				return d.fail(tree, err)
			}
		}
		if err := set.Add(*candidate); err != nil {
			return d.fail(tree, err)
		}

		d.logger.Debug("class summary",
			zap.String("class", cls.Name),
			zap.String("file", tree.File),
			zap.Int("wmc", measured.WMC),
			zap.Int("atfd", measured.ATFD),
			zap.Float64("tcc", measured.TCC))
	}
	return nil
}
