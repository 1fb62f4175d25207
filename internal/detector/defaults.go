package detector

import (
	"github.com/ludo-technologies/pysmell/internal/smell"
)

// Names returns the detector names in registration order
func Names() []string {
	return []string{NameLongFunction, NameLongParameterList, NameGodClass}
}

// DefaultThresholds returns the default thresholds of a detector, in filter order.
// The configuration keys are the ones read from the detector's config section.
func DefaultThresholds(name string) []smell.Threshold {
	switch name {
	case NameLongFunction:
		return []smell.Threshold{
			{
				Metric:     MetricLOC,
				Absolute:   smell.Int(40),
				Percentage: 0.10,
				Bound:      smell.KeepHigh,
				Keys:       smell.Keys{Absolute: "absolute_LOC", Percentage: "top_percentage_LOC", UsePercentage: "use_percentage"},
			},
			{
				Metric:     MetricCC,
				Absolute:   smell.Int(10),
				Percentage: 0.10,
				Bound:      smell.KeepHigh,
				Keys:       smell.Keys{Absolute: "absolute_CC", Percentage: "top_percentage_CC", UsePercentage: "use_percentage"},
			},
		}
	case NameLongParameterList:
		return []smell.Threshold{
			{
				Metric:     MetricNumberParameter,
				Absolute:   smell.Int(5),
				Percentage: 0.10,
				Bound:      smell.KeepHigh,
				Keys:       smell.Keys{Absolute: "absolute_param_count", Percentage: "top_percentage_param_count", UsePercentage: "use_percentage"},
			},
		}
	case NameGodClass:
		return []smell.Threshold{
			{
				Metric:     MetricWMC,
				Absolute:   smell.Int(47),
				Percentage: 0.10,
				Bound:      smell.KeepHigh,
				Keys:       smell.Keys{Absolute: "absolute_wmc", Percentage: "top_percentage_wmc", UsePercentage: "use_percentage_wmc"},
			},
			{
				Metric:     MetricTCC,
				Absolute:   smell.Float(0.33),
				Percentage: 0.10,
				Bound:      smell.KeepLow,
				Keys:       smell.Keys{Absolute: "absolute_tcc", Percentage: "bottom_percentage_tcc", UsePercentage: "use_percentage_tcc"},
			},
			{
				Metric:     MetricATFD,
				Absolute:   smell.Int(6),
				Percentage: 0.10,
				Bound:      smell.KeepHigh,
				Keys:       smell.Keys{Absolute: "absolute_atfd", Percentage: "top_percentage_atfd", UsePercentage: "use_percentage_atfd"},
			},
		}
	}
	return nil
}

// AllDefaultThresholds returns the defaults of every detector keyed by name
func AllDefaultThresholds() map[string][]smell.Threshold {
	all := make(map[string][]smell.Threshold)
	for _, name := range Names() {
		all[name] = DefaultThresholds(name)
	}
	return all
}
