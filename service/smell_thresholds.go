package service

import (
	"fmt"
	"math"

	"github.com/ludo-technologies/pysmell/domain"
	"github.com/ludo-technologies/pysmell/internal/detector"
	"github.com/ludo-technologies/pysmell/internal/smell"
)

// ThresholdInfos converts detector thresholds to their report form
func ThresholdInfos(thresholds []smell.Threshold) []domain.ThresholdInfo {
	infos := make([]domain.ThresholdInfo, len(thresholds))
	for i, t := range thresholds {
		infos[i] = domain.ThresholdInfo{
			Metric:        t.Metric,
			Absolute:      t.Absolute.FloatValue(),
			Percentage:    t.Percentage,
			UsePercentage: t.UsePercentage,
			Bound:         t.Bound.String(),
			Float:         t.Absolute.IsFloat(),
		}
	}
	return infos
}

// AllThresholdInfos converts a thresholds map keyed by detector name
func AllThresholdInfos(all map[string][]smell.Threshold) map[string][]domain.ThresholdInfo {
	infos := make(map[string][]domain.ThresholdInfo, len(all))
	for name, thresholds := range all {
		infos[name] = ThresholdInfos(thresholds)
	}
	return infos
}

// ThresholdsFromInfo builds detector thresholds from their report form.
// Detectors missing from infos keep their defaults; a detector listed with
// fewer metrics than it filters by runs without the missing ones.
func ThresholdsFromInfo(infos map[string][]domain.ThresholdInfo) (map[string][]smell.Threshold, error) {
	all := detector.AllDefaultThresholds()
	for name, list := range infos {
		defaults, ok := all[name]
		if !ok {
			return nil, fmt.Errorf("unknown detector '%s'", name)
		}

		thresholds := make([]smell.Threshold, 0, len(list))
		for _, info := range list {
			t, err := thresholdFromInfo(defaults, info)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", name, err)
			}
			thresholds = append(thresholds, t)
		}
		all[name] = thresholds
	}
	return all, nil
}

func thresholdFromInfo(defaults []smell.Threshold, info domain.ThresholdInfo) (smell.Threshold, error) {
	t, ok := smell.Lookup(defaults, info.Metric)
	if !ok {
		return smell.Threshold{}, fmt.Errorf("%w: unknown metric %s", smell.ErrInvalidThreshold, info.Metric)
	}

	if t.Absolute.IsFloat() {
		t.Absolute = smell.Float(info.Absolute)
	} else {
		if info.Absolute != math.Trunc(info.Absolute) {
			return smell.Threshold{}, fmt.Errorf("%w: %s threshold %v is not an integer", smell.ErrInvalidThreshold, info.Metric, info.Absolute)
		}
		t.Absolute = smell.Int(int64(info.Absolute))
	}

	t.Percentage = info.Percentage
	t.UsePercentage = info.UsePercentage
	if info.Bound != "" {
		bound, err := smell.ParseBound(info.Bound)
		if err != nil {
			return smell.Threshold{}, err
		}
		t.Bound = bound
	}
	return t, nil
}
