// Package mcpserver exposes the site pipeline as an MCP tool server.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"sitegen/internal/builder"
	"sitegen/internal/sources"
)

// Runner runs the site pipeline. *builder.Builder implements it.
type Runner interface {
	Run(ctx context.Context, query string) (*builder.Result, error)
}

// Server is the MCP server for sitegen.
type Server struct {
	mcp    *server.MCPServer
	runner Runner
	loader *sources.Loader
	logger *slog.Logger
}

// Deps holds everything the MCP server needs from main.
type Deps struct {
	Runner  Runner
	Loader  *sources.Loader
	Logger  *slog.Logger
	Version string
}

// New creates the MCP server with its tools and resources registered.
func New(deps Deps) *Server {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	version := deps.Version
	if version == "" {
		version = "dev"
	}
	s := &Server{
		runner: deps.Runner,
		loader: deps.Loader,
		logger: logger,
	}
	s.mcp = server.NewMCPServer(
		"sitegen",
		version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio serves MCP on stdin/stdout until the client disconnects.
func (s *Server) ServeStdio() error {
	s.logger.Info("starting MCP stdio server")
	return server.ServeStdio(s.mcp)
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{Type: "text", Text: text},
		},
	}
}

// jsonResult serializes v to JSON and wraps it in a text tool result.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal result: %w", err)
	}
	return textResult(string(data)), nil
}
