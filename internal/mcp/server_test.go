package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/spf13/afero"

	"sitegen/internal/builder"
	"sitegen/internal/errs"
	"sitegen/internal/logging"
	"sitegen/internal/sources"
	"sitegen/internal/types"
)

type stubRunner struct {
	res   *builder.Result
	err   error
	calls []string
}

func (s *stubRunner) Run(_ context.Context, query string) (*builder.Result, error) {
	s.calls = append(s.calls, query)
	return s.res, s.err
}

func testServer(t *testing.T, runner Runner) *Server {
	t.Helper()
	fs := afero.NewMemMapFs()
	_ = afero.WriteFile(fs, "sg.yaml", []byte("theme:\n  colors:\n    primary:\n      DEFAULT: \"#1A73E8\"\n"), 0o644)
	return New(Deps{
		Runner: runner,
		Loader: sources.NewLoader(fs, "sg.yaml", "layout.json"),
		Logger: logging.Nop(),
	})
}

func callTool(args map[string]any) mcp.CallToolRequest {
	var req mcp.CallToolRequest
	req.Params.Name = "generate_site"
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	if len(res.Content) != 1 {
		t.Fatalf("content = %v, want one item", res.Content)
	}
	text, ok := res.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("content[0] = %T, want mcp.TextContent", res.Content[0])
	}
	return text.Text
}

func TestGenerateSiteTool(t *testing.T) {
	runner := &stubRunner{res: &builder.Result{
		RunID: "run-1",
		Pages: []types.Page{{Path: "/", Description: "Home"}},
		Code:  []types.GeneratedCode{{TaskIndex: 0, TaskDescription: "Set up", Code: "<h1/>", Language: "Astro"}},
	}}
	s := testServer(t, runner)

	res, err := s.handleGenerateSite(context.Background(), callTool(map[string]any{"query": "Generate me a plumbing site"}))
	if err != nil {
		t.Fatalf("handleGenerateSite() error = %v", err)
	}
	if res.IsError {
		t.Fatalf("tool reported error: %s", resultText(t, res))
	}
	if len(runner.calls) != 1 || runner.calls[0] != "Generate me a plumbing site" {
		t.Errorf("runner calls = %v", runner.calls)
	}

	var got builder.Result
	if err := json.Unmarshal([]byte(resultText(t, res)), &got); err != nil {
		t.Fatalf("result is not a Result: %v", err)
	}
	if got.RunID != "run-1" || len(got.Code) != 1 || got.Code[0].Language != "Astro" {
		t.Errorf("result = %+v", got)
	}
}

func TestGenerateSiteToolErrors(t *testing.T) {
	tests := []struct {
		name string
		args map[string]any
		err  error
		want string
	}{
		{"missing query", map[string]any{}, nil, "query is required"},
		{"blank query", map[string]any{"query": "  "}, nil, "query is required"},
		{"shape mismatch", map[string]any{"query": "q"}, errs.ShapeMismatch("tasks", "not a list"), `shape_mismatch failed at "tasks"`},
		{"transient", map[string]any{"query": "q"}, errs.Upstream("pages", errors.New("503 service unavailable")), "transient"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := testServer(t, &stubRunner{err: tt.err})
			res, err := s.handleGenerateSite(context.Background(), callTool(tt.args))
			if err != nil {
				t.Fatalf("handleGenerateSite() error = %v", err)
			}
			if !res.IsError {
				t.Fatal("expected a tool error result")
			}
			if text := resultText(t, res); !strings.Contains(text, tt.want) {
				t.Errorf("text = %q, want it to contain %q", text, tt.want)
			}
		})
	}
}

func TestResources(t *testing.T) {
	s := testServer(t, &stubRunner{})

	contents, err := s.handleStyleGuideResource(context.Background(), mcp.ReadResourceRequest{})
	if err != nil {
		t.Fatalf("style guide resource error = %v", err)
	}
	text, ok := contents[0].(mcp.TextResourceContents)
	if !ok {
		t.Fatalf("contents[0] = %T", contents[0])
	}
	if text.URI != styleGuideURI || text.MIMEType != "application/json" {
		t.Errorf("URI = %q, MIMEType = %q", text.URI, text.MIMEType)
	}
	// YAML sources are served as JSON.
	if !json.Valid([]byte(text.Text)) || !strings.Contains(text.Text, "#1A73E8") {
		t.Errorf("style guide text = %s", text.Text)
	}

	if _, err := s.handleLayoutTemplateResource(context.Background(), mcp.ReadResourceRequest{}); !errors.Is(err, errs.ErrConfigMissing) {
		t.Errorf("missing template error = %v, want ErrConfigMissing", err)
	}
}
