package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/ludo-technologies/pysmell/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "pysmell",
	Short: "A code smell detector for Python",
	Long: `pysmell finds code smells in Python sources using tree-sitter metrics
and an adaptive threshold filter.

Detectors:
  • long_function        - functions with high LOC and cyclomatic complexity
  • long_parameter_list  - functions with many parameters
  • god_class            - classes with high WMC, high ATFD and low TCC

Each detector filters its candidates metric by metric, keeping either the
candidates beyond an absolute threshold or the worst percentage of them.`,
	Version:       version.Short(),
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().String("log-level", "", "Log level (debug|info|warn|error)")

	rootCmd.AddCommand(NewDetectCmd())
	rootCmd.AddCommand(NewInitCmd())
	rootCmd.AddCommand(NewConfigCmd())
	rootCmd.AddCommand(NewVersionCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
