package builder

import (
	"context"

	"sitegen/internal/ai"
	"sitegen/internal/ai/prompts"
	"sitegen/internal/types"
)

type taskCodeInput struct {
	StyleGuide       types.StyleGuide `json:"style_guide"`
	TaskDescription  string           `json:"task_description"`
	Pages            []string         `json:"pages"`
	PageDescriptions []string         `json:"page_descriptions"`
}

type taskCodeOutput struct {
	TaskCode string `json:"task_code"`
}

// GenerateTaskCode produces the source for one task. The text is opaque and
// never compiled or checked.
func (b *Builder) GenerateTaskCode(ctx context.Context, styleGuide types.StyleGuide, task types.Task, pages, descriptions []string) (string, error) {
	in := taskCodeInput{
		StyleGuide:       styleGuide,
		TaskDescription:  task.Description,
		Pages:            pages,
		PageDescriptions: descriptions,
	}
	out, err := ai.Predict[taskCodeOutput](ctx, b.model, prompts.TaskCode, in, b.call)
	if err != nil {
		return "", err
	}
	return out.TaskCode, nil
}
