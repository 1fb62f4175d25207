package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ludo-technologies/pysmell/internal/detector"
	"github.com/ludo-technologies/pysmell/internal/smell"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func threshold(t *testing.T, cfg *Config, name, metric string) smell.Threshold {
	t.Helper()
	th, ok := smell.Lookup(cfg.Thresholds[name], metric)
	require.True(t, ok, "no %s threshold for %s", metric, name)
	return th
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "text", cfg.Output.Format)
	assert.True(t, cfg.Analysis.Recursive)
	assert.Equal(t, []string{"**/*.py"}, cfg.Analysis.IncludePatterns)
	assert.Equal(t, 0, cfg.Analysis.Workers)
	assert.Equal(t, detector.AllDefaultThresholds(), cfg.Thresholds)
	assert.NoError(t, cfg.Validate())
}

func TestConfigValidation(t *testing.T) {
	tests := []struct {
		name          string
		modify        func(*Config)
		errorContains string
	}{
		{"valid", func(*Config) {}, ""},
		{"bad format", func(c *Config) { c.Output.Format = "xml" }, "output.format"},
		{"negative workers", func(c *Config) { c.Analysis.Workers = -1 }, "analysis.workers"},
		{"unknown detector", func(c *Config) { c.Analysis.Detectors = []string{"feature_envy"} }, "unknown detector"},
		{"bad log level", func(c *Config) { c.Log.Level = "loud" }, "log.level"},
		{"bad percentage", func(c *Config) { c.Thresholds[detector.NameGodClass][0].Percentage = 1.5 }, "outside [0, 1]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			err := cfg.Validate()
			if tt.errorContains == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errorContains)
		})
	}
}

func TestLoadConfigWithTarget_PysmellToml(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, ConfigFileName, `
[output]
format = "json"

[analysis]
workers = 4
detectors = ["god_class"]

[long_function]
use_percentage = true
absolute_LOC = 30
top_percentage_LOC = 0.25

[long_parameter_list]
absolute_param_count = 4
bound_NUMBER_PARAMETER = "keep_low"

[god_class]
absolute_tcc = 0.5
`)

	cfg, err := LoadConfigWithTarget("", dir)
	require.NoError(t, err)

	assert.Equal(t, path, cfg.Path)
	assert.Equal(t, "json", cfg.Output.Format)
	assert.Equal(t, 4, cfg.Analysis.Workers)
	assert.Equal(t, []string{"god_class"}, cfg.Analysis.Detectors)

	loc := threshold(t, cfg, detector.NameLongFunction, detector.MetricLOC)
	assert.Equal(t, smell.Int(30), loc.Absolute)
	assert.InDelta(t, 0.25, loc.Percentage, 1e-9)
	assert.True(t, loc.UsePercentage)

	// the switch is shared by both long-function metrics
	cc := threshold(t, cfg, detector.NameLongFunction, detector.MetricCC)
	assert.True(t, cc.UsePercentage)
	assert.Equal(t, smell.Int(10), cc.Absolute)

	params := threshold(t, cfg, detector.NameLongParameterList, detector.MetricNumberParameter)
	assert.Equal(t, smell.Int(4), params.Absolute)
	assert.Equal(t, smell.KeepLow, params.Bound)

	tcc := threshold(t, cfg, detector.NameGodClass, detector.MetricTCC)
	assert.Equal(t, smell.Float(0.5), tcc.Absolute)
	assert.Equal(t, smell.KeepLow, tcc.Bound)

	wmc := threshold(t, cfg, detector.NameGodClass, detector.MetricWMC)
	assert.Equal(t, smell.Int(47), wmc.Absolute)
	assert.False(t, wmc.UsePercentage)
}

func TestLoadConfigWithTarget_WalksUp(t *testing.T) {
	root := t.TempDir()
	path := writeFile(t, root, ConfigFileName, "[god_class]\nabsolute_wmc = 60\n")
	target := writeFile(t, root, "pkg/sub/module.py", "x = 1\n")

	cfg, err := LoadConfigWithTarget("", target)
	require.NoError(t, err)
	assert.Equal(t, path, cfg.Path)
	assert.Equal(t, smell.Int(60), threshold(t, cfg, detector.NameGodClass, detector.MetricWMC).Absolute)
}

func TestLoadConfigWithTarget_Pyproject(t *testing.T) {
	t.Run("tool section is read", func(t *testing.T) {
		dir := t.TempDir()
		path := writeFile(t, dir, PyprojectFileName, `
[project]
name = "demo"

[tool.pysmell.god_class]
use_percentage_atfd = true
top_percentage_atfd = 0.2

[tool.pysmell.output]
format = "csv"
`)
		cfg, err := LoadConfigWithTarget("", dir)
		require.NoError(t, err)
		assert.Equal(t, path, cfg.Path)
		assert.Equal(t, "csv", cfg.Output.Format)

		atfd := threshold(t, cfg, detector.NameGodClass, detector.MetricATFD)
		assert.True(t, atfd.UsePercentage)
		assert.InDelta(t, 0.2, atfd.Percentage, 1e-9)
	})

	t.Run("pyproject without tool section is skipped", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, PyprojectFileName, "[project]\nname = \"demo\"\n")
		assert.Equal(t, "", FindConfigFile(dir))
	})

	t.Run("dedicated file wins", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, PyprojectFileName, "[tool.pysmell.output]\nformat = \"csv\"\n")
		path := writeFile(t, dir, ConfigFileName, "[output]\nformat = \"yaml\"\n")
		assert.Equal(t, path, FindConfigFile(dir))
	})
}

func TestLoadConfig_ExplicitYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "smells.yaml", `
long_function:
  absolute_CC: 15
output:
  format: html
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "html", cfg.Output.Format)
	assert.Equal(t, smell.Int(15), threshold(t, cfg, detector.NameLongFunction, detector.MetricCC).Absolute)
}

func TestLoadConfig_EnvironmentOverride(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, ConfigFileName, "[god_class]\nabsolute_wmc = 60\n")
	t.Setenv("PYSMELL_GOD_CLASS_ABSOLUTE_WMC", "70")
	t.Setenv("PYSMELL_LONG_FUNCTION_USE_PERCENTAGE", "true")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, smell.Int(70), threshold(t, cfg, detector.NameGodClass, detector.MetricWMC).Absolute)
	assert.True(t, threshold(t, cfg, detector.NameLongFunction, detector.MetricLOC).UsePercentage)
}

func TestLoadConfigWithOverrides(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ConfigFileName, "[god_class]\nabsolute_wmc = 60\n")
	t.Setenv("PYSMELL_GOD_CLASS_ABSOLUTE_ATFD", "9")

	cfg, err := LoadConfigWithOverrides("", dir, map[string]string{
		"god_class.absolute_wmc":             "80",
		"god_class.absolute_atfd":            "3",
		"long_function.absolute_LOC":         "25",
		"long_parameter_list.use_percentage": "true",
		"output.format":                      "json",
	})
	require.NoError(t, err)

	assert.Equal(t, smell.Int(80), threshold(t, cfg, detector.NameGodClass, detector.MetricWMC).Absolute)
	assert.Equal(t, smell.Int(3), threshold(t, cfg, detector.NameGodClass, detector.MetricATFD).Absolute)
	assert.Equal(t, smell.Int(25), threshold(t, cfg, detector.NameLongFunction, detector.MetricLOC).Absolute)
	assert.True(t, threshold(t, cfg, detector.NameLongParameterList, detector.MetricNumberParameter).UsePercentage)
	assert.Equal(t, "json", cfg.Output.Format)

	t.Run("unknown key", func(t *testing.T) {
		_, err := LoadConfigWithOverrides("", dir, map[string]string{"god_class.absolute_noc": "3"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown key")
	})

	t.Run("bad value", func(t *testing.T) {
		_, err := LoadConfigWithOverrides("", dir, map[string]string{"god_class.absolute_wmc": "lots"})
		assert.Error(t, err)
	})
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"fractional integer threshold", "[long_function]\nabsolute_LOC = 40.5\n"},
		{"percentage out of range", "[long_function]\ntop_percentage_LOC = 1.5\n"},
		{"unknown bound", "[god_class]\nbound_WMC = \"sideways\"\n"},
		{"non numeric threshold", "[god_class]\nabsolute_atfd = \"many\"\n"},
		{"unknown format", "[output]\nformat = \"xml\"\n"},
		{"malformed toml", "[god_class\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, t.TempDir(), ConfigFileName, tt.content)
			_, err := LoadConfig(path)
			assert.Error(t, err)
		})
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.toml"))
	assert.Error(t, err)
}

func TestGenerateDefaultConfigTOML(t *testing.T) {
	content, err := GenerateDefaultConfigTOML()
	require.NoError(t, err)

	assert.Contains(t, content, "[long_function]")
	assert.Contains(t, content, "absolute_LOC = 40")
	assert.Contains(t, content, "absolute_tcc = 0.33")
	assert.Contains(t, content, `bound_TCC = "keep_low"`)
	// long_function lists its shared switch once, long_parameter_list has its own
	assert.Equal(t, 2, bytes.Count([]byte(content), []byte("\nuse_percentage = ")))

	path := writeFile(t, t.TempDir(), ConfigFileName, content)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, detector.AllDefaultThresholds(), cfg.Thresholds)
	assert.Equal(t, DefaultConfig().Output, cfg.Output)
}

func TestWriteThresholds(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteThresholds(&buf, DefaultConfig()))

	out := buf.String()
	assert.Contains(t, out, "current configuration (defaults):")
	assert.Contains(t, out, "\nlong_parameter_list:\nuse_percentage: false\nabsolute_param_count: 5\ntop_percentage_param_count: 0.10\nbound_NUMBER_PARAMETER: keep_high\n")
	assert.Contains(t, out, "absolute_tcc: 0.33\nbottom_percentage_tcc: 0.10\nbound_TCC: keep_low\n")
}
