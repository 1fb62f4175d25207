package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ludo-technologies/pysmell/internal/config"
)

// generateTimestampedFileName generates a filename with timestamp suffix
func generateTimestampedFileName(command, extension string) string {
	timestamp := time.Now().Format("20060102_150405")
	return fmt.Sprintf("%s_%s.%s", command, timestamp, extension)
}

// resolveOutputDirectory picks the report directory: the flag value, then
// the configured output.directory, then .pysmell/reports under the working directory
func resolveOutputDirectory(flagDir, configPath, targetPath string) (string, error) {
	if flagDir != "" {
		return flagDir, nil
	}

	cfg, err := config.LoadConfigWithTarget(configPath, targetPath)
	if err != nil {
		return "", fmt.Errorf("failed to load configuration: %w", err)
	}
	if cfg.Output.Directory != "" {
		return cfg.Output.Directory, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return filepath.Join(".pysmell", "reports"), nil
	}
	return filepath.Join(cwd, ".pysmell", "reports"), nil
}

// generateOutputFilePath returns the report path and creates its directory
func generateOutputFilePath(command, extension, flagDir, configPath, targetPath string) (string, error) {
	outputDir, err := resolveOutputDirectory(flagDir, configPath, targetPath)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory %s: %w", outputDir, err)
	}
	return filepath.Join(outputDir, generateTimestampedFileName(command, extension)), nil
}

// getTargetPathFromArgs extracts the first argument as target path, or returns empty string
func getTargetPathFromArgs(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return ""
}
