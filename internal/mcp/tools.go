package mcpserver

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"sitegen/internal/errs"
	"sitegen/internal/utils"
)

func (s *Server) registerTools() {
	// ── generate_site ──────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("generate_site",
		mcp.WithDescription("Generate an Astro + TailwindCSS website from a description: pages, layouts, a build plan and the code for every task"),
		mcp.WithString("query",
			mcp.Description("What the site should be, e.g. \"Generate me a plumbing site\""),
			mcp.Required(),
		),
	), s.handleGenerateSite)
}

func (s *Server) handleGenerateSite(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query := strings.TrimSpace(req.GetString("query", ""))
	if query == "" {
		return mcp.NewToolResultError("query is required"), nil
	}

	res, err := s.runner.Run(ctx, query)
	if err != nil {
		s.logger.Error("generate_site failed", "query", query, "error", err)
		msg := fmt.Sprintf("%s failed at %q: %v", errs.KindOf(err), errs.StageOf(err), err)
		if utils.IsTransient(err) {
			msg += " (transient, try again)"
		}
		return mcp.NewToolResultError(msg), nil
	}
	return jsonResult(res)
}
