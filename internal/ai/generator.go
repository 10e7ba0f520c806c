package ai

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sort"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"sitegen/internal/errs"
)

// Options configures the OpenAI-compatible Generator.
type Options struct {
	APIKey      string
	BaseURL     string // empty uses api.openai.com; any OpenAI-compatible endpoint works
	Model       string
	Temperature float32
	MaxTokens   int
	JSONMode    bool          // request response_format json_object
	Timeout     time.Duration // per-request HTTP timeout, 0 for none
	Logger      *slog.Logger
}

// Generator implements Model over the chat completions API.
type Generator struct {
	client      *openai.Client
	model       string
	temperature float32
	maxTokens   int
	jsonMode    bool
	logger      *slog.Logger
}

func NewGenerator(opts Options) *Generator {
	config := openai.DefaultConfig(opts.APIKey)
	if opts.BaseURL != "" {
		config.BaseURL = opts.BaseURL
	}
	if opts.Timeout > 0 {
		config.HTTPClient = &http.Client{Timeout: opts.Timeout}
	}
	model := opts.Model
	if model == "" {
		model = openai.GPT4o
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Generator{
		client:      openai.NewClientWithConfig(config),
		model:       model,
		temperature: opts.Temperature,
		maxTokens:   opts.MaxTokens,
		jsonMode:    opts.JSONMode,
		logger:      logger,
	}
}

// Complete sends one chat completion request asking for req.Candidates choices.
func (g *Generator) Complete(ctx context.Context, req Request) ([]string, error) {
	chatReq := openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: req.System},
			{Role: openai.ChatMessageRoleUser, Content: req.User},
		},
		Temperature: g.temperature,
		MaxTokens:   g.maxTokens,
	}
	if req.Candidates > 1 {
		chatReq.N = req.Candidates
	}
	if g.jsonMode {
		chatReq.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	g.logger.Debug("model request", "stage", req.Stage, "model", g.model, "candidates", req.Candidates)

	resp, err := g.client.CreateChatCompletion(ctx, chatReq)
	if err != nil {
		return nil, errs.Upstream(req.Stage, fmt.Errorf("openai chat completion failed: %w", err))
	}
	if len(resp.Choices) == 0 {
		g.logger.Warn("empty model response", "stage", req.Stage, "usage", resp.Usage)
		return nil, errs.ShapeMismatch(req.Stage, "openai returned no choices")
	}

	choices := append([]openai.ChatCompletionChoice(nil), resp.Choices...)
	sort.SliceStable(choices, func(i, j int) bool { return choices[i].Index < choices[j].Index })

	out := make([]string, len(choices))
	for i, c := range choices {
		out[i] = c.Message.Content
	}

	g.logger.Debug("model response",
		"stage", req.Stage,
		"choices", len(out),
		"prompt_tokens", resp.Usage.PromptTokens,
		"completion_tokens", resp.Usage.CompletionTokens,
	)
	return out, nil
}
