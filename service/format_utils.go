package service

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"

	"github.com/ludo-technologies/pysmell/domain"
)

// EncodeJSON returns an indented JSON string for the given value.
func EncodeJSON(v interface{}) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", domain.NewOutputError("failed to marshal JSON", err)
	}
	return string(data), nil
}

// WriteJSON writes indented JSON for the given value to the writer.
func WriteJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return domain.NewOutputError("failed to encode JSON", err)
	}
	return nil
}

// EncodeYAML returns a YAML string for the given value.
func EncodeYAML(v interface{}) (string, error) {
	var sb strings.Builder
	if err := WriteYAML(&sb, v); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// WriteYAML writes YAML for the given value to the writer.
func WriteYAML(w io.Writer, v interface{}) error {
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return domain.NewOutputError("failed to encode YAML", err)
	}
	return nil
}

// Standard formatting constants
const (
	HeaderWidth    = 40
	SectionPadding = 2
	ItemPadding    = 4
)

// FormatUtils provides shared text formatting. With colour enabled the
// headers and values are styled with lipgloss; otherwise output is plain.
type FormatUtils struct {
	color bool

	title   lipgloss.Style
	section lipgloss.Style
	smell   lipgloss.Style
	dim     lipgloss.Style
	warn    lipgloss.Style
	err     lipgloss.Style
}

// NewFormatUtils creates a new format utilities instance
func NewFormatUtils(color bool) *FormatUtils {
	return &FormatUtils{
		color:   color,
		title:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205")),
		section: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("81")),
		smell:   lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
		dim:     lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		warn:    lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
		err:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196")),
	}
}

func (f *FormatUtils) render(style lipgloss.Style, s string) string {
	if !f.color {
		return s
	}
	return style.Render(s)
}

// FormatMainHeader creates a standardized main header
func (f *FormatUtils) FormatMainHeader(title string) string {
	return f.render(f.title, title) + "\n" + strings.Repeat("=", HeaderWidth) + "\n\n"
}

// FormatSectionHeader creates a standardized section header
func (f *FormatUtils) FormatSectionHeader(title string) string {
	title = strings.ToUpper(title)
	return f.render(f.section, title) + "\n" + strings.Repeat("-", len(title)) + "\n"
}

// FormatLabelWithIndent creates a formatted label with specific indentation
func (f *FormatUtils) FormatLabelWithIndent(indent int, label string, value interface{}) string {
	return fmt.Sprintf("%s%s: %v\n", strings.Repeat(" ", indent), label, value)
}

// Smell highlights a smell location
func (f *FormatUtils) Smell(s string) string { return f.render(f.smell, s) }

// Dim renders secondary information
func (f *FormatUtils) Dim(s string) string { return f.render(f.dim, s) }

// Warning renders a warning line
func (f *FormatUtils) Warning(s string) string { return f.render(f.warn, s) }

// Error renders an error line
func (f *FormatUtils) Error(s string) string { return f.render(f.err, s) }

// FormatMetricValue prints integer metrics without decimals and fractional
// ones with two
func FormatMetricValue(v float64, float bool) string {
	if float {
		return strconv.FormatFloat(v, 'f', 2, 64)
	}
	return strconv.FormatInt(int64(v), 10)
}

// FormatThreshold prints the cut of a threshold, e.g. ">= 40" or "top 10%"
func FormatThreshold(t domain.ThresholdInfo) string {
	keepLow := t.Bound == "keep_low"
	if t.UsePercentage {
		side := "top"
		if keepLow {
			side = "bottom"
		}
		return fmt.Sprintf("%s %.0f%%", side, t.Percentage*100)
	}
	op := ">="
	if keepLow {
		op = "<="
	}
	return fmt.Sprintf("%s %s", op, FormatMetricValue(t.Absolute, t.Float))
}
