package service

import (
	"errors"
	"strings"

	"github.com/ludo-technologies/pysmell/domain"
	"github.com/ludo-technologies/pysmell/internal/smell"
)

// ErrorCategorizerImpl implements the ErrorCategorizer interface
type ErrorCategorizerImpl struct {
	patterns []categoryPatterns
}

type categoryPatterns struct {
	category domain.ErrorCategory
	patterns []string
}

// NewErrorCategorizer creates a new error categorizer
func NewErrorCategorizer() domain.ErrorCategorizer {
	return &ErrorCategorizerImpl{
		// checked in order; the first match wins
		patterns: []categoryPatterns{
			{domain.ErrorCategoryConfig, []string{"config", "threshold", "toml", "yaml", "unknown detector", "unknown key"}},
			{domain.ErrorCategoryInput, []string{"no python files", "file not found", "no such file", "permission denied", "cannot access"}},
			{domain.ErrorCategoryOutput, []string{"output", "write", "report", "format"}},
			{domain.ErrorCategoryProcessing, []string{"parse", "syntax", "detect", "filter", "cancel"}},
		},
	}
}

// Categorize determines the category of an error. Domain error codes and
// threshold errors are recognised before falling back to message patterns.
func (ec *ErrorCategorizerImpl) Categorize(err error) *domain.CategorizedError {
	if err == nil {
		return nil
	}

	category := ec.categoryOf(err)
	return &domain.CategorizedError{
		Category: category,
		Message:  categoryMessages[category],
		Original: err,
	}
}

func (ec *ErrorCategorizerImpl) categoryOf(err error) domain.ErrorCategory {
	var de domain.DomainError
	if errors.As(err, &de) {
		switch de.Code {
		case domain.ErrCodeConfigError:
			return domain.ErrorCategoryConfig
		case domain.ErrCodeInvalidInput, domain.ErrCodeFileNotFound:
			return domain.ErrorCategoryInput
		case domain.ErrCodeOutputError, domain.ErrCodeUnsupportedFormat:
			return domain.ErrorCategoryOutput
		case domain.ErrCodeParseError, domain.ErrCodeDetectionError:
			return domain.ErrorCategoryProcessing
		}
	}
	if errors.Is(err, smell.ErrInvalidThreshold) {
		return domain.ErrorCategoryConfig
	}

	msg := strings.ToLower(err.Error())
	for _, cp := range ec.patterns {
		for _, pattern := range cp.patterns {
			if strings.Contains(msg, pattern) {
				return cp.category
			}
		}
	}
	return domain.ErrorCategoryUnknown
}

var categoryMessages = map[domain.ErrorCategory]string{
	domain.ErrorCategoryInput:      "Failed to process input files or directories",
	domain.ErrorCategoryConfig:     "Configuration file or settings error",
	domain.ErrorCategoryOutput:     "Failed to generate or write output",
	domain.ErrorCategoryProcessing: "Error during smell detection",
	domain.ErrorCategoryUnknown:    "An unexpected error occurred",
}

// GetRecoverySuggestions returns recovery suggestions for an error category
func (ec *ErrorCategorizerImpl) GetRecoverySuggestions(category domain.ErrorCategory) []string {
	switch category {
	case domain.ErrorCategoryInput:
		return []string{
			"Check that files/directories exist and contain Python files",
			"Review include/exclude patterns in [analysis]",
		}
	case domain.ErrorCategoryConfig:
		return []string{
			"Try: pysmell config to print the effective thresholds",
			"Try: pysmell init --force to regenerate .pysmell.toml",
			"Percentages must lie in [0, 1] and bounds be keep_high or keep_low",
		}
	case domain.ErrorCategoryOutput:
		return []string{
			"Check write permissions of the output directory",
			"Use one of the formats: text, json, yaml, csv, html",
		}
	case domain.ErrorCategoryProcessing:
		return []string{
			"Some files may have syntax errors; they are skipped and listed in the report",
			"Run with --verbose for detailed logs",
		}
	}
	return []string{
		"Run with --verbose for detailed error information",
		"Report the issue if it persists",
	}
}
