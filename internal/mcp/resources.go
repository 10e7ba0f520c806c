package mcpserver

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
)

const (
	styleGuideURI     = "sitegen://style-guide"
	layoutTemplateURI = "sitegen://layout-template"
)

func (s *Server) registerResources() {
	// ── sitegen://style-guide ──────────────────────────
	s.mcp.AddResource(mcp.NewResource(
		styleGuideURI,
		"Style Guide",
		mcp.WithResourceDescription("Theme, component classes and accessibility rules every stage is given"),
		mcp.WithMIMEType("application/json"),
	), s.handleStyleGuideResource)

	// ── sitegen://layout-template ──────────────────────
	s.mcp.AddResource(mcp.NewResource(
		layoutTemplateURI,
		"Generic Page Layout",
		mcp.WithResourceDescription("Section template every generated page layout keeps"),
		mcp.WithMIMEType("application/json"),
	), s.handleLayoutTemplateResource)
}

func (s *Server) handleStyleGuideResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return s.readSource(styleGuideURI, s.loader.StyleGuidePath())
}

func (s *Server) handleLayoutTemplateResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return s.readSource(layoutTemplateURI, s.loader.LayoutTemplatePath())
}

func (s *Server) readSource(uri, path string) ([]mcp.ResourceContents, error) {
	data, err := s.loader.Raw(path)
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
