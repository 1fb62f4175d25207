package config

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cast"
	"github.com/spf13/viper"

	"github.com/ludo-technologies/pysmell/internal/detector"
	"github.com/ludo-technologies/pysmell/internal/smell"
)

const (
	// ConfigFileName is the dedicated configuration file
	ConfigFileName = ".pysmell.toml"

	// PyprojectFileName is read for its [tool.pysmell] table
	PyprojectFileName = "pyproject.toml"

	// EnvPrefix prefixes environment overrides, e.g. PYSMELL_GOD_CLASS_ABSOLUTE_WMC
	EnvPrefix = "PYSMELL"
)

// LoadConfig loads configuration from configPath, or discovers it starting
// at the working directory when configPath is empty
func LoadConfig(configPath string) (*Config, error) {
	return LoadConfigWithTarget(configPath, "")
}

// LoadConfigWithTarget loads configuration with ruff-like priority:
//  1. configPath when given
//  2. .pysmell.toml found walking up from targetPath
//  3. pyproject.toml with a [tool.pysmell] table found walking up from targetPath
//  4. defaults
//
// Environment variables override every source.
func LoadConfigWithTarget(configPath, targetPath string) (*Config, error) {
	return LoadConfigWithOverrides(configPath, targetPath, nil)
}

// LoadConfigWithOverrides loads configuration like LoadConfigWithTarget and
// then applies overrides keyed "<section>.<key>", e.g. "god_class.absolute_wmc".
// Overrides win over environment variables.
func LoadConfigWithOverrides(configPath, targetPath string, overrides map[string]string) (*Config, error) {
	if configPath == "" {
		configPath = FindConfigFile(startDir(targetPath))
	}

	v := newViper()
	if configPath != "" {
		if err := readInto(v, configPath); err != nil {
			return nil, err
		}
	}

	known := knownKeys()
	for key, value := range overrides {
		if !known[strings.ToLower(key)] {
			return nil, fmt.Errorf("invalid configuration: unknown key '%s'", key)
		}
		v.Set(key, value)
	}

	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	thresholds, err := thresholdsFrom(v)
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	cfg.Thresholds = thresholds
	cfg.Path = configPath

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// FindConfigFile walks up from startDir looking for .pysmell.toml first and
// then for a pyproject.toml carrying a [tool.pysmell] table. It returns the
// empty string when neither exists.
func FindConfigFile(startDir string) string {
	if path, ok := walkUp(startDir, func(dir string) (string, bool) {
		path := filepath.Join(dir, ConfigFileName)
		_, err := os.Stat(path)
		return path, err == nil
	}); ok {
		return path
	}

	path, _ := walkUp(startDir, func(dir string) (string, bool) {
		path := filepath.Join(dir, PyprojectFileName)
		section, err := readPyprojectSection(path)
		return path, err == nil && section != nil
	})
	return path
}

func walkUp(startDir string, found func(dir string) (string, bool)) (string, bool) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		dir = startDir
	}
	for {
		if path, ok := found(dir); ok {
			return path, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

func startDir(targetPath string) string {
	if targetPath == "" {
		return "."
	}
	info, err := os.Stat(targetPath)
	if err == nil && !info.IsDir() {
		return filepath.Dir(targetPath)
	}
	return targetPath
}

// pyprojectFile represents the part of pyproject.toml we read
type pyprojectFile struct {
	Tool struct {
		Pysmell map[string]any `toml:"pysmell"`
	} `toml:"tool"`
}

// readPyprojectSection returns the [tool.pysmell] table, or nil when the file has none
func readPyprojectSection(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var pyproject pyprojectFile
	if err := toml.Unmarshal(data, &pyproject); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return pyproject.Tool.Pysmell, nil
}

func readInto(v *viper.Viper, path string) error {
	if filepath.Base(path) == PyprojectFileName {
		section, err := readPyprojectSection(path)
		if err != nil {
			return fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if section == nil {
			return nil
		}
		return v.MergeConfigMap(section)
	}

	v.SetConfigFile(path)
	if filepath.Ext(path) == "" {
		v.SetConfigType("toml")
	}
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	return nil
}

// newViper registers every known key with its default so that environment
// variables apply to keys absent from the file
func newViper() *viper.Viper {
	v := viper.New()

	def := DefaultConfig()
	v.SetDefault("output.format", def.Output.Format)
	v.SetDefault("output.directory", def.Output.Directory)
	v.SetDefault("output.show_details", def.Output.ShowDetails)
	v.SetDefault("analysis.include_patterns", def.Analysis.IncludePatterns)
	v.SetDefault("analysis.exclude_patterns", def.Analysis.ExcludePatterns)
	v.SetDefault("analysis.recursive", def.Analysis.Recursive)
	v.SetDefault("analysis.workers", def.Analysis.Workers)
	v.SetDefault("analysis.detectors", def.Analysis.Detectors)
	v.SetDefault("log.level", def.Log.Level)

	for _, section := range Sections(def.Thresholds) {
		for _, e := range section.Entries {
			v.SetDefault(section.Name+"."+e.Key, e.Value)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// knownKeys lists every lower-cased key newViper registers
func knownKeys() map[string]bool {
	keys := map[string]bool{
		"output.format":             true,
		"output.directory":          true,
		"output.show_details":       true,
		"analysis.include_patterns": true,
		"analysis.exclude_patterns": true,
		"analysis.recursive":        true,
		"analysis.workers":          true,
		"analysis.detectors":        true,
		"log.level":                 true,
	}
	for _, section := range Sections(detector.AllDefaultThresholds()) {
		for _, e := range section.Entries {
			keys[strings.ToLower(section.Name+"."+e.Key)] = true
		}
	}
	return keys
}

// BoundKey is the optional key overriding the bound direction of a metric
func BoundKey(metric string) string {
	return "bound_" + metric
}

func thresholdsFrom(v *viper.Viper) (map[string][]smell.Threshold, error) {
	all := detector.AllDefaultThresholds()
	for name, thresholds := range all {
		for i := range thresholds {
			if err := resolve(v, name, &thresholds[i]); err != nil {
				return nil, err
			}
		}
	}
	return all, nil
}

func resolve(v *viper.Viper, section string, t *smell.Threshold) error {
	key := func(k string) string { return section + "." + k }

	absolute, err := toValue(v.Get(key(t.Keys.Absolute)), t.Absolute.Kind())
	if err != nil {
		return fmt.Errorf("%s: %w", key(t.Keys.Absolute), err)
	}
	t.Absolute = absolute

	if t.Percentage, err = cast.ToFloat64E(v.Get(key(t.Keys.Percentage))); err != nil {
		return fmt.Errorf("%s: %w", key(t.Keys.Percentage), err)
	}
	if t.UsePercentage, err = cast.ToBoolE(v.Get(key(t.Keys.UsePercentage))); err != nil {
		return fmt.Errorf("%s: %w", key(t.Keys.UsePercentage), err)
	}

	bound, err := cast.ToStringE(v.Get(key(BoundKey(t.Metric))))
	if err != nil {
		return fmt.Errorf("%s: %w", key(BoundKey(t.Metric)), err)
	}
	if t.Bound, err = smell.ParseBound(bound); err != nil {
		return fmt.Errorf("%s: %w", key(BoundKey(t.Metric)), err)
	}
	return nil
}

// toValue converts a raw configuration value to the kind the metric is measured in
func toValue(raw any, kind smell.Kind) (smell.Value, error) {
	f, err := cast.ToFloat64E(raw)
	if err != nil {
		return smell.Value{}, err
	}
	if kind == smell.KindFloat {
		return smell.Float(f), nil
	}
	if f != math.Trunc(f) {
		return smell.Value{}, fmt.Errorf("%w: %v is not an integer", smell.ErrInvalidThreshold, raw)
	}
	return smell.Int(int64(f)), nil
}
