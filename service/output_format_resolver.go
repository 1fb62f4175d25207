package service

import (
	"fmt"

	"github.com/ludo-technologies/pysmell/domain"
)

// OutputFormatResolver resolves output format and file extension from flags.
type OutputFormatResolver struct{}

func NewOutputFormatResolver() *OutputFormatResolver { return &OutputFormatResolver{} }

// Determine evaluates format flags and returns the selected format and extension.
// At most one of html/json/csv/yaml may be true; none selects text, which has
// no file extension because it is always written to stdout.
func (r *OutputFormatResolver) Determine(html, json, csv, yaml bool) (domain.OutputFormat, string, error) {
	var selected []domain.OutputFormat
	for _, flag := range []struct {
		set    bool
		format domain.OutputFormat
	}{
		{html, domain.OutputFormatHTML},
		{json, domain.OutputFormatJSON},
		{csv, domain.OutputFormatCSV},
		{yaml, domain.OutputFormatYAML},
	} {
		if flag.set {
			selected = append(selected, flag.format)
		}
	}

	switch len(selected) {
	case 0:
		return domain.OutputFormatText, "", nil
	case 1:
		return selected[0], Extension(selected[0]), nil
	default:
		return "", "", fmt.Errorf("only one output format flag can be specified")
	}
}

// Extension returns the report file extension of a format; text has none
func Extension(format domain.OutputFormat) string {
	if format == domain.OutputFormatText {
		return ""
	}
	return string(format)
}
