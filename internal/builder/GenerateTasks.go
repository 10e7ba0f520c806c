package builder

import (
	"context"
	"fmt"

	"sitegen/internal/ai"
	"sitegen/internal/ai/prompts"
	"sitegen/internal/types"
)

type tasksInput struct {
	PageLayouts      []types.PageLayout `json:"page_layouts"`
	StyleGuide       types.StyleGuide   `json:"style_guide"`
	PageDescriptions []string           `json:"page_descriptions"`
}

type tasksOutput struct {
	Tasks []types.Task `json:"tasks"`
}

func (o tasksOutput) Validate() error {
	for i, t := range o.Tasks {
		if err := t.Validate(); err != nil {
			return fmt.Errorf("tasks[%d]: %w", i, err)
		}
	}
	return nil
}

// GenerateTasks plans the build as an ordered task list. An empty plan is
// allowed.
func (b *Builder) GenerateTasks(ctx context.Context, layouts []types.PageLayout, styleGuide types.StyleGuide, descriptions []string) ([]types.Task, error) {
	in := tasksInput{
		PageLayouts:      layouts,
		StyleGuide:       styleGuide,
		PageDescriptions: descriptions,
	}
	out, err := ai.Predict[tasksOutput](ctx, b.model, prompts.TaskList, in, b.call)
	if err != nil {
		return nil, err
	}
	return out.Tasks, nil
}
