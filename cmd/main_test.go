package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"sitegen/config"
	"sitegen/internal/ai"
	"sitegen/internal/ai/prompts"
	"sitegen/internal/errs"
)

type scriptedModel struct {
	queries []string
}

func (m *scriptedModel) Complete(_ context.Context, req ai.Request) ([]string, error) {
	switch req.Stage {
	case prompts.StagePages:
		var in struct {
			Query string `json:"query"`
		}
		_ = json.Unmarshal([]byte(req.User), &in)
		m.queries = append(m.queries, in.Query)
		return []string{`{"pages": [{"path": "/", "description": "Home"}]}`}, nil
	case prompts.StageLayoutGuide:
		return []string{"Header: logo left, menu right"}, nil
	case prompts.StagePageLayout:
		var in struct {
			GenericLayout json.RawMessage `json:"generic_layout"`
		}
		_ = json.Unmarshal([]byte(req.User), &in)
		return []string{`{"page_layout": ` + string(in.GenericLayout) + `}`}, nil
	case prompts.StageTasks:
		return []string{`{"tasks": [{"task_description": "Create the home page"}]}`}, nil
	case prompts.StageTaskCode:
		return []string{"```astro\n<h1>Plumbing</h1>\n```"}, nil
	}
	return nil, errors.New("unexpected stage " + req.Stage)
}

func useModel(t *testing.T, m ai.Model) {
	t.Helper()
	orig := newModel
	newModel = func(config.Config, *slog.Logger) ai.Model { return m }
	t.Cleanup(func() { newModel = orig })
}

func setEnv(t *testing.T) {
	t.Helper()
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("STYLE_GUIDE_PATH", "../style_guide.json")
	t.Setenv("LAYOUT_TEMPLATE_PATH", "../site_page_layout.json")
	t.Setenv("LOG_LEVEL", "ERROR")
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--config-dir", t.TempDir()}, args...))
	err := root.Execute()
	return out.String(), err
}

func TestRootRunsPipeline(t *testing.T) {
	setEnv(t)
	m := &scriptedModel{}
	useModel(t, m)

	out, err := execute(t, "--query", "Generate a plumbing site")
	if err != nil {
		t.Fatalf("Execute() error = %v\n%s", err, out)
	}
	if len(m.queries) != 1 || m.queries[0] != "Generate a plumbing site" {
		t.Errorf("queries = %v", m.queries)
	}
	for _, want := range []string{
		"Pages generated",
		"Layout guides generated",
		"Page layouts generated",
		"Tasks generated",
		"Task code generated",
		"[1/1] Create the home page",
		"<h1>Plumbing</h1>",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRootDefaultQuery(t *testing.T) {
	setEnv(t)
	m := &scriptedModel{}
	useModel(t, m)

	if out, err := execute(t); err != nil {
		t.Fatalf("Execute() error = %v\n%s", err, out)
	}
	if len(m.queries) != 1 || m.queries[0] != defaultQuery {
		t.Errorf("queries = %v, want [%q]", m.queries, defaultQuery)
	}
}

func TestRootMissingStyleGuide(t *testing.T) {
	setEnv(t)
	t.Setenv("STYLE_GUIDE_PATH", "../no_such_style_guide.json")
	m := &scriptedModel{}
	useModel(t, m)

	out, err := execute(t)
	if !errors.Is(err, errs.ErrConfigMissing) {
		t.Fatalf("Execute() error = %v, want ErrConfigMissing", err)
	}
	if len(m.queries) != 0 {
		t.Error("model called before sources loaded")
	}
	if !strings.Contains(out, "Run failed at setup (config_missing)") {
		t.Errorf("output = %s", out)
	}
}

func TestRootInvalidConfig(t *testing.T) {
	setEnv(t)
	t.Setenv("SELECTION_POLICY", "random")
	useModel(t, &scriptedModel{})

	if _, err := execute(t); err == nil || !strings.Contains(err.Error(), "SELECTION_POLICY") {
		t.Fatalf("Execute() error = %v, want SELECTION_POLICY complaint", err)
	}
}
