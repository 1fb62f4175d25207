package main

import (
	"github.com/spf13/cobra"

	"github.com/ludo-technologies/pysmell/internal/config"
)

// ConfigCommand prints the effective detector configuration
type ConfigCommand struct {
	configPath string
	overrides  []string
}

// NewConfigCommand creates a new config command
func NewConfigCommand() *ConfigCommand {
	return &ConfigCommand{}
}

// CreateCobraCommand creates the cobra command for printing the configuration
func (c *ConfigCommand) CreateCobraCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config [path]",
		Short: "Show the effective detector thresholds",
		Long: `Print the thresholds every detector would use for path, after the
configuration file, PYSMELL_ environment variables and --set overrides
have been applied.

Examples:
  pysmell config
  pysmell config src/
  pysmell config --set god_class.use_percentage_tcc=true`,
		Args: cobra.MaximumNArgs(1),
		RunE: c.runConfig,
	}

	cmd.Flags().StringVarP(&c.configPath, "config", "c", "", "Configuration file path")
	cmd.Flags().StringArrayVar(&c.overrides, "set", nil, "Override a configuration key, e.g. god_class.absolute_wmc=60")

	return cmd
}

func (c *ConfigCommand) runConfig(cmd *cobra.Command, args []string) error {
	overrides, err := parseOverrides(c.overrides)
	if err != nil {
		return err
	}

	cfg, err := config.LoadConfigWithOverrides(c.configPath, getTargetPathFromArgs(args), overrides)
	if err != nil {
		return err
	}
	return config.WriteThresholds(cmd.OutOrStdout(), cfg)
}

// NewConfigCmd creates and returns the config cobra command
func NewConfigCmd() *cobra.Command {
	return NewConfigCommand().CreateCobraCommand()
}
