package builder

import (
	"context"

	"sitegen/internal/ai"
	"sitegen/internal/ai/prompts"
	"sitegen/internal/errs"
	"sitegen/internal/types"
)

type pageLayoutInput struct {
	GenericLayout   types.PageLayout `json:"generic_layout"`
	StyleGuide      types.StyleGuide `json:"style_guide"`
	PageDescription string           `json:"page_description"`
	LayoutGuide     string           `json:"layout_guide,omitempty"`
}

type pageLayoutOutput struct {
	PageLayout types.PageLayout `json:"page_layout"`
}

func (o pageLayoutOutput) Validate() error { return o.PageLayout.Validate() }

// GeneratePageLayout specialises the generic layout for one page. The result
// keeps the template's section sequence. guide is only sent when layout guide
// feeding is enabled.
func (b *Builder) GeneratePageLayout(ctx context.Context, generic types.PageLayout, styleGuide types.StyleGuide, description, guide string) (types.PageLayout, error) {
	sig := prompts.PageLayout
	in := pageLayoutInput{
		GenericLayout:   generic,
		StyleGuide:      styleGuide,
		PageDescription: description,
	}
	if b.feedLayoutGuide && guide != "" {
		sig = prompts.PageLayoutWithGuide
		in.LayoutGuide = guide
	}

	out, err := ai.Predict[pageLayoutOutput](ctx, b.model, sig, in, b.call)
	if err != nil {
		return types.PageLayout{}, err
	}
	if err := out.PageLayout.MatchesTemplate(generic); err != nil {
		return types.PageLayout{}, errs.New(errs.KindShapeMismatch, sig.Name, err)
	}
	return out.PageLayout, nil
}
