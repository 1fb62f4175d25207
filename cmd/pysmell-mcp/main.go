package main

import (
	"fmt"
	"os"

	mcpserver "github.com/mark3labs/mcp-go/server"
	flag "github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/ludo-technologies/pysmell/internal/logging"
	"github.com/ludo-technologies/pysmell/internal/version"
	"github.com/ludo-technologies/pysmell/mcp"
)

const serverName = "pysmell"

func main() {
	configPath := flag.StringP("config", "c", "", "Configuration file path")
	logLevel := flag.String("log-level", "info", "Log level (debug|info|warn|error)")
	flag.Parse()

	// the logger writes to stderr, stdout carries JSON-RPC
	logger, err := logging.New(*logLevel, false)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	server := mcpserver.NewMCPServer(
		serverName,
		version.Short(),
		mcpserver.WithToolCapabilities(true),
		mcpserver.WithLogging(),
	)

	mcp.RegisterTools(server, mcp.NewHandlerSet(mcp.NewDependencies(logger, *configPath)))

	logger.Info("starting MCP server",
		zap.String("name", serverName),
		zap.String("version", version.Short()),
		zap.Strings("tools", []string{"detect_smells", "list_detectors"}))

	if err := mcpserver.ServeStdio(server); err != nil {
		logger.Error("server error", zap.Error(err))
		os.Exit(1)
	}
}
