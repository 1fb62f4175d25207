package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/ludo-technologies/pysmell/app"
	"github.com/ludo-technologies/pysmell/domain"
	"github.com/ludo-technologies/pysmell/service"
)

// DetectCommand represents the detect command
type DetectCommand struct {
	// Output format flags
	json bool
	csv  bool
	html bool
	yaml bool

	noOpen      bool
	showDetails bool
	outputDir   string

	recursive       bool
	includePatterns []string
	excludePatterns []string
	workers         int
	detectors       []string
	overrides       []string
	configPath      string
}

// NewDetectCommand creates a new detect command
func NewDetectCommand() *DetectCommand {
	return &DetectCommand{recursive: true}
}

// CreateCobraCommand creates the cobra command for smell detection
func (d *DetectCommand) CreateCobraCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "detect [paths...]",
		Short: "Detect code smells in Python files",
		Long: `Detect long functions, long parameter lists and god classes.

Thresholds come from .pysmell.toml or the [tool.pysmell] table of
pyproject.toml, found by walking up from the first path. Single values can
be overridden per run with --set.

Examples:
  pysmell detect src/
  pysmell detect --detectors god_class src/
  pysmell detect --set god_class.absolute_wmc=60 src/
  pysmell detect --set long_function.use_percentage=true src/
  pysmell detect --html --output-dir reports src/`,
		Args: cobra.MinimumNArgs(1),
		RunE: d.runDetect,
	}

	cmd.Flags().BoolVar(&d.json, "json", false, "Generate JSON report file")
	cmd.Flags().BoolVar(&d.csv, "csv", false, "Generate CSV report file")
	cmd.Flags().BoolVar(&d.html, "html", false, "Generate HTML report file")
	cmd.Flags().BoolVar(&d.yaml, "yaml", false, "Generate YAML report file")
	cmd.Flags().BoolVar(&d.noOpen, "no-open", false, "Don't auto-open HTML in browser")
	cmd.Flags().BoolVar(&d.showDetails, "details", false, "Show the thresholds of every detector")
	cmd.Flags().StringVarP(&d.outputDir, "output-dir", "o", "", "Directory for report files")

	cmd.Flags().BoolVar(&d.recursive, "recursive", true, "Recursively analyze subdirectories")
	cmd.Flags().StringSliceVar(&d.includePatterns, "include", nil, "Include file patterns")
	cmd.Flags().StringSliceVar(&d.excludePatterns, "exclude", nil, "Exclude file patterns")
	cmd.Flags().IntVarP(&d.workers, "workers", "j", 0, "Files analyzed concurrently (0 = one per CPU)")
	cmd.Flags().StringSliceVarP(&d.detectors, "detectors", "d", nil, "Detectors to run (long_function,long_parameter_list,god_class)")
	cmd.Flags().StringArrayVar(&d.overrides, "set", nil, "Override a configuration key, e.g. god_class.absolute_wmc=60")
	cmd.Flags().StringVarP(&d.configPath, "config", "c", "", "Configuration file path")

	return cmd
}

func (d *DetectCommand) runDetect(cmd *cobra.Command, args []string) error {
	format, extension, err := service.NewOutputFormatResolver().Determine(d.html, d.json, d.csv, d.yaml)
	if err != nil {
		return err
	}

	overrides, err := parseOverrides(d.overrides)
	if err != nil {
		return err
	}

	target := getTargetPathFromArgs(args)
	outputPath := ""
	if extension != "" {
		outputPath, err = generateOutputFilePath("smells", extension, d.outputDir, d.configPath, target)
		if err != nil {
			return err
		}
	}

	logger, err := newLogger(cmd, d.configPath, target)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	progress := service.NewNoOpProgressManager()
	if service.IsInteractiveEnvironment() {
		progress = service.NewProgressManager()
	}

	request := domain.SmellRequest{
		Paths:           args,
		OutputFormat:    format,
		OutputWriter:    cmd.OutOrStdout(),
		OutputPath:      outputPath,
		NoOpen:          d.noOpen,
		ShowDetails:     d.showDetails,
		Recursive:       d.recursive,
		IncludePatterns: d.includePatterns,
		ExcludePatterns: d.excludePatterns,
		Workers:         d.workers,
		Detectors:       d.detectors,
		Overrides:       overrides,
		ConfigPath:      d.configPath,
		ExplicitFlags:   GetExplicitFlags(cmd),
	}

	fileReader := service.NewFileReader()
	useCase, err := app.NewSmellUseCaseBuilder().
		WithService(service.NewSmellService(fileReader, progress, logger)).
		WithFileReader(fileReader).
		WithFormatter(service.NewSmellFormatter(useColor(cmd.OutOrStdout()), d.showDetails)).
		WithConfigLoader(service.NewSmellConfigurationLoader()).
		WithOutputWriter(service.NewFileOutputWriter(cmd.ErrOrStderr())).
		Build()
	if err != nil {
		return fmt.Errorf("failed to create detect use case: %w", err)
	}

	if err := useCase.Execute(cmd.Context(), request); err != nil {
		reportError(cmd.ErrOrStderr(), err)
		return err
	}
	return nil
}

// useColor reports whether the text report goes to a terminal that accepts colour
func useColor(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// reportError prints a categorized error with recovery suggestions
func reportError(w io.Writer, err error) {
	categorizer := service.NewErrorCategorizer()
	categorized := categorizer.Categorize(err)

	fmt.Fprintf(w, "%s: %v\n", categorized.Category, err)
	suggestions := categorizer.GetRecoverySuggestions(categorized.Category)
	if len(suggestions) == 0 {
		return
	}
	fmt.Fprintln(w, "\nSuggestions:")
	for _, s := range suggestions {
		fmt.Fprintf(w, "  • %s\n", s)
	}
}

// NewDetectCmd creates and returns the detect cobra command
func NewDetectCmd() *cobra.Command {
	return NewDetectCommand().CreateCobraCommand()
}
