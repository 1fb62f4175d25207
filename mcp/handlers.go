package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/mcp"
	"go.uber.org/zap"

	"github.com/ludo-technologies/pysmell/domain"
)

// HandlerSet exposes MCP tool handlers with shared dependencies.
type HandlerSet struct {
	deps *Dependencies
}

// NewHandlerSet constructs a handler set.
func NewHandlerSet(deps *Dependencies) *HandlerSet {
	if deps == nil {
		deps = NewDependencies(nil, "")
	}
	return &HandlerSet{deps: deps}
}

// HandleDetectSmells handles the detect_smells tool
func (h *HandlerSet) HandleDetectSmells(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return mcp.NewToolResultError("invalid arguments format"), nil
	}

	path, ok := args["path"].(string)
	if !ok || path == "" {
		return mcp.NewToolResultError("path parameter is required and must be a string"), nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return mcp.NewToolResultError(fmt.Sprintf("path does not exist: %s", path)), nil
	}

	var detectors []string
	if raw, ok := args["detectors"].([]interface{}); ok {
		for _, d := range raw {
			if name, ok := d.(string); ok {
				detectors = append(detectors, name)
			}
		}
	}

	configPath := h.deps.ConfigPath()
	if cp, ok := args["config_path"].(string); ok && cp != "" {
		configPath = cp
	}

	useCase, err := h.deps.BuildSmellUseCase()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to create detector: %v", err)), nil
	}

	req := *domain.DefaultSmellRequest()
	req.Paths = []string{path}
	req.OutputFormat = domain.OutputFormatJSON
	req.Detectors = detectors
	req.ConfigPath = configPath
	req.ExplicitFlags = map[string]bool{"detectors": len(detectors) > 0}

	response, err := useCase.DetectAndReturn(ctx, req)
	if err != nil {
		h.deps.logger.Warn("detect_smells failed", zap.String("path", path), zap.Error(err))
		return mcp.NewToolResultError(fmt.Sprintf("detection failed: %v", err)), nil
	}

	return jsonResult(response)
}

// HandleListDetectors handles the list_detectors tool
func (h *HandlerSet) HandleListDetectors(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	useCase, err := h.deps.BuildSmellUseCase()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to create detector: %v", err)), nil
	}
	return jsonResult(useCase.Detectors())
}

func jsonResult(v interface{}) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
