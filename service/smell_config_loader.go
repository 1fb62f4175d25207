package service

import (
	"github.com/ludo-technologies/pysmell/domain"
	"github.com/ludo-technologies/pysmell/internal/config"
)

// SmellConfigurationLoaderImpl implements the SmellConfigurationLoader interface
type SmellConfigurationLoaderImpl struct{}

// NewSmellConfigurationLoader creates a new configuration loader service
func NewSmellConfigurationLoader() *SmellConfigurationLoaderImpl {
	return &SmellConfigurationLoaderImpl{}
}

// LoadConfig loads the configuration at path, or the one discovered from
// target, applies overrides and converts it to a request
func (cl *SmellConfigurationLoaderImpl) LoadConfig(path, target string, overrides map[string]string) (*domain.SmellRequest, error) {
	cfg, err := config.LoadConfigWithOverrides(path, target, overrides)
	if err != nil {
		return nil, domain.NewConfigError("failed to load configuration", err)
	}
	return cl.configToRequest(cfg), nil
}

// LoadDefaultConfig returns the request built from the defaults alone
func (cl *SmellConfigurationLoaderImpl) LoadDefaultConfig() *domain.SmellRequest {
	return cl.configToRequest(config.DefaultConfig())
}

// MergeConfig merges CLI flags with the configuration file. Paths, writers
// and overrides always come from the command line; settings with a file
// counterpart only win when their flag was set explicitly.
func (cl *SmellConfigurationLoaderImpl) MergeConfig(base *domain.SmellRequest, override *domain.SmellRequest) *domain.SmellRequest {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	merged := *base
	explicit := func(names ...string) bool {
		for _, name := range names {
			if override.ExplicitFlags[name] {
				return true
			}
		}
		return false
	}

	if len(override.Paths) > 0 {
		merged.Paths = override.Paths
	}
	if override.OutputWriter != nil {
		merged.OutputWriter = override.OutputWriter
	}
	if override.OutputPath != "" {
		merged.OutputPath = override.OutputPath
	}
	merged.NoOpen = override.NoOpen

	if explicit("json", "yaml", "csv", "html", "format") && override.OutputFormat != "" {
		merged.OutputFormat = override.OutputFormat
	}
	if explicit("details") {
		merged.ShowDetails = override.ShowDetails
	}
	if explicit("recursive") {
		merged.Recursive = override.Recursive
	}
	if explicit("workers") {
		merged.Workers = override.Workers
	}
	if explicit("detectors") || len(override.Detectors) > 0 {
		merged.Detectors = override.Detectors
	}
	if len(override.IncludePatterns) > 0 {
		merged.IncludePatterns = override.IncludePatterns
	}
	if len(override.ExcludePatterns) > 0 {
		merged.ExcludePatterns = override.ExcludePatterns
	}
	if override.ConfigPath != "" {
		merged.ConfigPath = override.ConfigPath
	}
	if override.Overrides != nil {
		merged.Overrides = override.Overrides
	}
	if override.Thresholds != nil {
		merged.Thresholds = override.Thresholds
	}
	merged.ExplicitFlags = override.ExplicitFlags

	return &merged
}

func (cl *SmellConfigurationLoaderImpl) configToRequest(cfg *config.Config) *domain.SmellRequest {
	return &domain.SmellRequest{
		OutputFormat:    domain.OutputFormat(cfg.Output.Format),
		ShowDetails:     cfg.Output.ShowDetails,
		Recursive:       cfg.Analysis.Recursive,
		IncludePatterns: cfg.Analysis.IncludePatterns,
		ExcludePatterns: cfg.Analysis.ExcludePatterns,
		Workers:         cfg.Analysis.Workers,
		Detectors:       cfg.Analysis.Detectors,
		Thresholds:      AllThresholdInfos(cfg.Thresholds),
		ConfigPath:      cfg.Path,
	}
}
