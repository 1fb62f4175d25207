package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"text/template"

	"github.com/pelletier/go-toml/v2"
)

// defaultConfigTmpl contains the embedded default configuration template
//
//go:embed default_config.toml.tmpl
var defaultConfigTmpl string

// defaultConfigValues holds the values the template is rendered with
type defaultConfigValues struct {
	Output   OutputConfig
	Analysis AnalysisConfig
	Log      LogConfig
	Sections []Section
}

// GenerateDefaultConfigTOML renders the default config template and checks
// that the result parses as TOML
func GenerateDefaultConfigTOML() (string, error) {
	tmpl, err := template.New("default_config").Funcs(template.FuncMap{
		"quoteList": quoteList,
	}).Parse(defaultConfigTmpl)
	if err != nil {
		return "", fmt.Errorf("failed to parse default config template: %w", err)
	}

	def := DefaultConfig()
	values := defaultConfigValues{
		Output:   def.Output,
		Analysis: def.Analysis,
		Log:      def.Log,
		Sections: Sections(def.Thresholds),
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, values); err != nil {
		return "", fmt.Errorf("failed to render default config template: %w", err)
	}

	var check map[string]any
	if err := toml.Unmarshal(buf.Bytes(), &check); err != nil {
		return "", fmt.Errorf("rendered default config is not valid TOML: %w", err)
	}
	return buf.String(), nil
}

func quoteList(items []string) string {
	var buf bytes.Buffer
	buf.WriteString("[")
	for i, item := range items {
		if i > 0 {
			buf.WriteString(", ")
		}
		fmt.Fprintf(&buf, "%q", item)
	}
	buf.WriteString("]")
	return buf.String()
}
