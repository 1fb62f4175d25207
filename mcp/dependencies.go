package mcp

import (
	"go.uber.org/zap"

	"github.com/ludo-technologies/pysmell/app"
	"github.com/ludo-technologies/pysmell/domain"
	"github.com/ludo-technologies/pysmell/internal/logging"
	"github.com/ludo-technologies/pysmell/service"
)

// Dependencies aggregates the shared services required by MCP handlers.
type Dependencies struct {
	fileReader domain.FileReader
	logger     *zap.Logger
	configPath string
}

// NewDependencies constructs the dependency set. configPath may be empty to
// trigger discovery from the analyzed path.
func NewDependencies(logger *zap.Logger, configPath string) *Dependencies {
	return &Dependencies{
		fileReader: service.NewFileReader(),
		logger:     logging.OrNop(logger),
		configPath: configPath,
	}
}

// ConfigPath returns the configured config file path (may be empty to trigger discovery).
func (d *Dependencies) ConfigPath() string {
	return d.configPath
}

// BuildSmellUseCase assembles a fresh SmellUseCase. Progress output is
// disabled since stdout carries the MCP transport.
func (d *Dependencies) BuildSmellUseCase() (*app.SmellUseCase, error) {
	return app.NewSmellUseCaseBuilder().
		WithService(service.NewSmellService(d.fileReader, service.NewNoOpProgressManager(), d.logger)).
		WithFileReader(d.fileReader).
		WithFormatter(service.NewSmellFormatter(false, false)).
		WithConfigLoader(service.NewSmellConfigurationLoader()).
		Build()
}
