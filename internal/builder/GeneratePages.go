package builder

import (
	"context"
	"fmt"

	"sitegen/internal/ai"
	"sitegen/internal/ai/prompts"
	"sitegen/internal/types"
)

type pagesInput struct {
	Query string `json:"query"`
}

type pagesOutput struct {
	Pages []types.Page `json:"pages"`
}

func (o pagesOutput) Validate() error {
	for i, p := range o.Pages {
		if err := p.Validate(); err != nil {
			return fmt.Errorf("pages[%d]: %w", i, err)
		}
	}
	return nil
}

// GeneratePages asks the model for the pages a site needs. Paths are not
// deduplicated.
func (b *Builder) GeneratePages(ctx context.Context, query string) ([]types.Page, error) {
	out, err := ai.Predict[pagesOutput](ctx, b.model, prompts.PageSet, pagesInput{Query: query}, b.call)
	if err != nil {
		return nil, err
	}
	return out.Pages, nil
}
