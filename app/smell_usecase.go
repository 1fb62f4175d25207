package app

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/ludo-technologies/pysmell/domain"
	svc "github.com/ludo-technologies/pysmell/service"
)

// detailFormatter is implemented by formatters that can add threshold
// details to their text report
type detailFormatter interface {
	WithDetails(show bool) domain.SmellOutputFormatter
}

// SmellUseCase orchestrates the smell detection workflow
type SmellUseCase struct {
	service      domain.SmellService
	fileReader   domain.FileReader
	formatter    domain.SmellOutputFormatter
	configLoader domain.SmellConfigurationLoader
	output       domain.ReportWriter
}

// NewSmellUseCase creates a new smell detection use case
func NewSmellUseCase(
	service domain.SmellService,
	fileReader domain.FileReader,
	formatter domain.SmellOutputFormatter,
	configLoader domain.SmellConfigurationLoader,
) *SmellUseCase {
	return &SmellUseCase{
		service:      service,
		fileReader:   fileReader,
		formatter:    formatter,
		configLoader: configLoader,
		output:       svc.NewFileOutputWriter(nil),
	}
}

// prepare validates the request, merges the configuration into it and
// resolves the files to analyze
func (uc *SmellUseCase) prepare(req domain.SmellRequest, requireOutput bool) (domain.SmellRequest, error) {
	if err := uc.validateRequest(req, requireOutput); err != nil {
		return req, domain.NewInvalidInputError("invalid request", err)
	}

	finalReq, err := uc.loadAndMergeConfig(req)
	if err != nil {
		return req, err
	}

	files, err := ResolveFilePaths(
		uc.fileReader,
		finalReq.Paths,
		finalReq.Recursive,
		finalReq.IncludePatterns,
		finalReq.ExcludePatterns,
		true,
	)
	if err != nil {
		if isDomainError(err) {
			return req, err
		}
		return req, domain.NewFileNotFoundError("failed to collect files", err)
	}
	if len(files) == 0 {
		return req, domain.NewInvalidInputError("no Python files found in the specified paths", nil)
	}

	finalReq.Paths = files
	return finalReq, nil
}

// Execute runs the detectors and writes the formatted report
func (uc *SmellUseCase) Execute(ctx context.Context, req domain.SmellRequest) error {
	finalReq, err := uc.prepare(req, true)
	if err != nil {
		return err
	}

	response, err := uc.service.Detect(ctx, finalReq)
	if err != nil {
		return err
	}

	formatter := uc.formatter
	if df, ok := formatter.(detailFormatter); ok {
		formatter = df.WithDetails(finalReq.ShowDetails)
	}

	var out io.Writer
	if finalReq.OutputPath == "" {
		out = finalReq.OutputWriter
	}
	return uc.output.Write(out, finalReq.OutputPath, finalReq.OutputFormat, finalReq.NoOpen, func(w io.Writer) error {
		return formatter.Write(response, finalReq.OutputFormat, w)
	})
}

// DetectAndReturn runs the detectors and returns the response without formatting
func (uc *SmellUseCase) DetectAndReturn(ctx context.Context, req domain.SmellRequest) (*domain.SmellResponse, error) {
	finalReq, err := uc.prepare(req, false)
	if err != nil {
		return nil, err
	}
	return uc.service.Detect(ctx, finalReq)
}

// Detectors lists the available detectors
func (uc *SmellUseCase) Detectors() []domain.DetectorInfo {
	return uc.service.Detectors()
}

func (uc *SmellUseCase) validateRequest(req domain.SmellRequest, requireOutput bool) error {
	if len(req.Paths) == 0 {
		return fmt.Errorf("no input paths specified")
	}
	if requireOutput && req.OutputWriter == nil && req.OutputPath == "" {
		return fmt.Errorf("output writer or output path is required")
	}
	if req.Workers < 0 {
		return fmt.Errorf("workers cannot be negative")
	}
	return nil
}

// loadAndMergeConfig loads configuration, discovering it from the first
// path when none is given, and merges the request over it
func (uc *SmellUseCase) loadAndMergeConfig(req domain.SmellRequest) (domain.SmellRequest, error) {
	if uc.configLoader == nil {
		return req, nil
	}

	target := ""
	if len(req.Paths) > 0 {
		target = req.Paths[0]
	}

	configReq, err := uc.configLoader.LoadConfig(req.ConfigPath, target, req.Overrides)
	if err != nil {
		if isDomainError(err) {
			return req, err
		}
		return req, domain.NewConfigError("failed to load configuration", err)
	}
	if configReq == nil {
		return req, nil
	}

	return *uc.configLoader.MergeConfig(configReq, &req), nil
}

// SmellUseCaseBuilder provides a builder pattern for creating SmellUseCase
type SmellUseCaseBuilder struct {
	service      domain.SmellService
	fileReader   domain.FileReader
	formatter    domain.SmellOutputFormatter
	configLoader domain.SmellConfigurationLoader
	output       domain.ReportWriter
}

// NewSmellUseCaseBuilder creates a new builder
func NewSmellUseCaseBuilder() *SmellUseCaseBuilder {
	return &SmellUseCaseBuilder{}
}

// WithService sets the smell service
func (b *SmellUseCaseBuilder) WithService(service domain.SmellService) *SmellUseCaseBuilder {
	b.service = service
	return b
}

// WithFileReader sets the file reader
func (b *SmellUseCaseBuilder) WithFileReader(fileReader domain.FileReader) *SmellUseCaseBuilder {
	b.fileReader = fileReader
	return b
}

// WithFormatter sets the output formatter
func (b *SmellUseCaseBuilder) WithFormatter(formatter domain.SmellOutputFormatter) *SmellUseCaseBuilder {
	b.formatter = formatter
	return b
}

// WithConfigLoader sets the configuration loader
func (b *SmellUseCaseBuilder) WithConfigLoader(configLoader domain.SmellConfigurationLoader) *SmellUseCaseBuilder {
	b.configLoader = configLoader
	return b
}

// WithOutputWriter sets the report writer
func (b *SmellUseCaseBuilder) WithOutputWriter(output domain.ReportWriter) *SmellUseCaseBuilder {
	b.output = output
	return b
}

// Build creates the SmellUseCase; the configuration loader is optional
func (b *SmellUseCaseBuilder) Build() (*SmellUseCase, error) {
	if b.service == nil {
		return nil, fmt.Errorf("smell service is required")
	}
	if b.fileReader == nil {
		return nil, fmt.Errorf("file reader is required")
	}
	if b.formatter == nil {
		return nil, fmt.Errorf("output formatter is required")
	}

	uc := NewSmellUseCase(b.service, b.fileReader, b.formatter, b.configLoader)
	if b.output != nil {
		uc.output = b.output
	}
	return uc, nil
}

func isDomainError(err error) bool {
	var domainErr domain.DomainError
	return errors.As(err, &domainErr)
}
