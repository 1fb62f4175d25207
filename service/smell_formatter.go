package service

import (
	_ "embed"
	"encoding/csv"
	"fmt"
	"html/template"
	"io"
	"strconv"
	"strings"

	"github.com/ludo-technologies/pysmell/domain"
	"github.com/ludo-technologies/pysmell/internal/smell"
)

//go:embed templates/smell_report.html.tmpl
var smellReportTemplate string

var htmlReport = template.Must(template.New("smell_report").Funcs(template.FuncMap{
	"title":     detectorTitle,
	"threshold": FormatThreshold,
	"metric": func(m domain.MetricValue) string {
		return FormatMetricValue(m.Value, m.Float)
	},
}).Parse(smellReportTemplate))

// SmellFormatterImpl implements the SmellOutputFormatter interface
type SmellFormatterImpl struct {
	color       bool
	showDetails bool
}

// NewSmellFormatter creates a formatter. color styles the text report;
// showDetails adds the thresholds of every detector to it.
func NewSmellFormatter(color, showDetails bool) *SmellFormatterImpl {
	return &SmellFormatterImpl{color: color, showDetails: showDetails}
}

// Format formats the response according to the specified format
func (f *SmellFormatterImpl) Format(response *domain.SmellResponse, format domain.OutputFormat) (string, error) {
	switch format {
	case domain.OutputFormatText, "":
		return f.formatText(response), nil
	case domain.OutputFormatJSON:
		return EncodeJSON(response)
	case domain.OutputFormatYAML:
		return EncodeYAML(response)
	case domain.OutputFormatCSV:
		return f.formatCSV(response)
	case domain.OutputFormatHTML:
		return f.formatHTML(response)
	default:
		return "", domain.NewUnsupportedFormatError(string(format))
	}
}

// Write writes the formatted output to the writer
func (f *SmellFormatterImpl) Write(response *domain.SmellResponse, format domain.OutputFormat, writer io.Writer) error {
	switch format {
	case domain.OutputFormatJSON:
		return WriteJSON(writer, response)
	case domain.OutputFormatYAML:
		return WriteYAML(writer, response)
	}

	formatted, err := f.Format(response, format)
	if err != nil {
		return err
	}
	if _, err := io.WriteString(writer, formatted); err != nil {
		return domain.NewOutputError("failed to write output", err)
	}
	return nil
}

func detectorTitle(name string) string {
	words := strings.Split(name, "_")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

func (f *SmellFormatterImpl) formatText(response *domain.SmellResponse) string {
	var builder strings.Builder
	utils := NewFormatUtils(f.color)
	indent := strings.Repeat(" ", SectionPadding)

	builder.WriteString(utils.FormatMainHeader("Code Smell Report"))

	for _, d := range response.Detectors {
		builder.WriteString(utils.FormatSectionHeader(detectorTitle(d.Name)))
		builder.WriteString(utils.Dim(fmt.Sprintf("%s%d of %d candidates kept", indent, len(d.Smells), d.Candidates)))
		builder.WriteString("\n")

		if f.showDetails {
			cuts := make([]string, len(d.Thresholds))
			for i, t := range d.Thresholds {
				cuts[i] = t.Metric + " " + FormatThreshold(t)
			}
			builder.WriteString(utils.FormatLabelWithIndent(SectionPadding, "Filter", strings.Join(cuts, ", ")))
		}
		if d.Error != "" {
			builder.WriteString(indent + utils.Error("filter stopped: "+d.Error) + "\n")
		}

		if len(d.Smells) == 0 {
			builder.WriteString(indent + "No smells found\n\n")
			continue
		}
		for _, s := range d.Smells {
			builder.WriteString(f.formatSmellLine(utils, s))
		}
		builder.WriteString("\n")
	}

	builder.WriteString(utils.FormatSectionHeader("Summary"))
	builder.WriteString(utils.FormatLabelWithIndent(SectionPadding, "Files analyzed", response.Summary.FilesAnalyzed))
	builder.WriteString(utils.FormatLabelWithIndent(SectionPadding, "Files skipped", response.Summary.FilesSkipped))
	builder.WriteString(utils.FormatLabelWithIndent(SectionPadding, "Candidates", response.Summary.TotalCandidates))
	builder.WriteString(utils.FormatLabelWithIndent(SectionPadding, "Smells", response.Summary.TotalSmells))

	if len(response.Errors) > 0 {
		builder.WriteString("\n")
		builder.WriteString(utils.FormatSectionHeader("Errors"))
		for _, e := range response.Errors {
			builder.WriteString(indent + utils.Error(e) + "\n")
		}
	}
	if len(response.Warnings) > 0 {
		builder.WriteString("\n")
		builder.WriteString(utils.FormatSectionHeader("Warnings"))
		for _, w := range response.Warnings {
			builder.WriteString(indent + utils.Warning(w) + "\n")
		}
	}

	return builder.String()
}

func (f *SmellFormatterImpl) formatSmellLine(utils *FormatUtils, s domain.Smell) string {
	metrics := make([]string, len(s.Metrics))
	for i, m := range s.Metrics {
		metrics[i] = m.Name + "=" + FormatMetricValue(m.Value, m.Float)
	}

	location := fmt.Sprintf("%s:%d", s.File, s.Line)
	return fmt.Sprintf("%s%s  %s  %s\n",
		strings.Repeat(" ", ItemPadding), utils.Smell(location), s.Subject, utils.Dim(strings.Join(metrics, " ")))
}

// formatCSV writes one row per smell with a fixed number of metric column
// groups; groups a smell does not fill stay empty
func (f *SmellFormatterImpl) formatCSV(response *domain.SmellResponse) (string, error) {
	var builder strings.Builder
	writer := csv.NewWriter(&builder)

	header := []string{"smell_type", "file_name", "line", "subject"}
	for i := 1; i <= smell.MaxMetrics; i++ {
		header = append(header,
			fmt.Sprintf("metric%d_name", i),
			fmt.Sprintf("metric%d_value", i),
			fmt.Sprintf("metric%d_threshold", i))
	}
	if err := writer.Write(header); err != nil {
		return "", domain.NewOutputError("failed to write CSV header", err)
	}

	for _, s := range response.Smells() {
		row := []string{s.Type, s.File, strconv.Itoa(s.Line), s.Subject}
		for i := 0; i < smell.MaxMetrics; i++ {
			if i >= len(s.Metrics) {
				row = append(row, "", "", "")
				continue
			}
			m := s.Metrics[i]
			row = append(row, m.Name, FormatMetricValue(m.Value, m.Float), FormatMetricValue(m.Threshold, m.Float))
		}
		if err := writer.Write(row); err != nil {
			return "", domain.NewOutputError("failed to write CSV row", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", domain.NewOutputError("CSV writer error", err)
	}
	return builder.String(), nil
}

func (f *SmellFormatterImpl) formatHTML(response *domain.SmellResponse) (string, error) {
	var builder strings.Builder
	if err := htmlReport.Execute(&builder, response); err != nil {
		return "", domain.NewOutputError("failed to render HTML report", err)
	}
	return builder.String(), nil
}

// WithDetails returns a copy of the formatter with the threshold details
// of the text report switched on or off
func (f *SmellFormatterImpl) WithDetails(show bool) domain.SmellOutputFormatter {
	clone := *f
	clone.showDetails = show
	return &clone
}
