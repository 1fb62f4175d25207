package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/ludo-technologies/pysmell/internal/config"
	"github.com/ludo-technologies/pysmell/internal/logging"
)

// GetExplicitFlags extracts which flags were explicitly set from a cobra command
func GetExplicitFlags(cmd *cobra.Command) map[string]bool {
	explicitFlags := make(map[string]bool)
	if cmd != nil {
		cmd.Flags().Visit(func(f *pflag.Flag) {
			explicitFlags[f.Name] = true
		})
	}
	return explicitFlags
}

// parseOverrides turns repeated key=value flags into configuration overrides
func parseOverrides(values []string) (map[string]string, error) {
	if len(values) == 0 {
		return nil, nil
	}
	overrides := make(map[string]string, len(values))
	for _, value := range values {
		key, val, ok := strings.Cut(value, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" || !strings.Contains(key, ".") {
			return nil, fmt.Errorf("invalid --set value %q: expected <section>.<key>=<value>", value)
		}
		overrides[strings.ToLower(key)] = strings.TrimSpace(val)
	}
	return overrides, nil
}

// newLogger builds the logger from the persistent --verbose and --log-level
// flags, falling back to log.level of the configuration
func newLogger(cmd *cobra.Command, configPath, targetPath string) (*zap.Logger, error) {
	verbose, _ := cmd.Flags().GetBool("verbose")
	level, _ := cmd.Flags().GetString("log-level")
	if level == "" {
		if cfg, err := config.LoadConfigWithTarget(configPath, targetPath); err == nil {
			level = cfg.Log.Level
		}
	}
	return logging.New(level, verbose)
}
