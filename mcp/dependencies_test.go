package mcp

import (
	"go.uber.org/zap"

	"github.com/ludo-technologies/pysmell/domain"
)

func NewTestDependencies(fr domain.FileReader, path string) *Dependencies {
	return &Dependencies{
		fileReader: fr,
		logger:     zap.NewNop(),
		configPath: path,
	}
}
