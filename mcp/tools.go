package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/ludo-technologies/pysmell/internal/detector"
)

// RegisterTools registers the pysmell MCP tools with the server
func RegisterTools(s *server.MCPServer, h *HandlerSet) {
	s.AddTool(mcp.NewTool("detect_smells",
		mcp.WithDescription("Detect long functions, long parameter lists and god classes in Python code using tree-sitter metrics and adaptive thresholds"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Path to Python code (file or directory) to analyze")),
		mcp.WithArray("detectors",
			mcp.WithStringEnumItems(detector.Names()),
			mcp.Description("Detectors to run. Options: long_function, long_parameter_list, god_class. Default: all detectors")),
		mcp.WithString("config_path",
			mcp.Description("Configuration file; discovered from path when omitted")),
	), h.HandleDetectSmells)

	s.AddTool(mcp.NewTool("list_detectors",
		mcp.WithDescription("List the available smell detectors with their metrics, filter order and default thresholds"),
	), h.HandleListDetectors)
}
