package builder

import (
	"context"
	"errors"
	"strings"

	"sitegen/internal/ai"
	"sitegen/internal/ai/prompts"
	"sitegen/internal/types"
)

type layoutGuideInput struct {
	Page            string           `json:"page"`
	PageDescription string           `json:"page_description"`
	StyleGuide      types.StyleGuide `json:"style_guide"`
}

type layoutGuideOutput struct {
	LayoutGuide string `json:"layout_guide"`
}

func (o layoutGuideOutput) Validate() error {
	if strings.TrimSpace(o.LayoutGuide) == "" {
		return errors.New("layout guide is empty")
	}
	return nil
}

// GenerateLayoutGuide describes the sections of one page in plain English.
func (b *Builder) GenerateLayoutGuide(ctx context.Context, page types.Page, styleGuide types.StyleGuide) (string, error) {
	in := layoutGuideInput{
		Page:            page.Path,
		PageDescription: page.Description,
		StyleGuide:      styleGuide,
	}
	out, err := ai.Predict[layoutGuideOutput](ctx, b.model, prompts.LayoutGuide, in, b.call)
	if err != nil {
		return "", err
	}
	return out.LayoutGuide, nil
}
