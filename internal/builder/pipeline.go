package builder

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"sitegen/internal/ai/prompts"
	"sitegen/internal/errs"
	"sitegen/internal/types"
	"sitegen/internal/utils"
)

// Run executes the whole pipeline for query: pages, a layout guide per page,
// a page layout per page, the task plan, then code for each task. Sources are
// loaded before any model call. The first failing stage aborts the run and no
// partial result is returned.
func (b *Builder) Run(ctx context.Context, query string) (*Result, error) {
	runID := uuid.New().String()
	logger := b.logger.With("run_id", runID)
	logger.Info("run started", "query", query)

	styleGuide, err := b.loader.StyleGuide()
	if err != nil {
		return nil, err
	}
	template, err := b.loader.LayoutTemplate()
	if err != nil {
		return nil, err
	}
	digest, err := styleGuide.Digest()
	if err != nil {
		return nil, errs.ConfigMissing(b.loader.StyleGuidePath(), err)
	}
	unchanged := func(stage string) error {
		got, err := styleGuide.Digest()
		if err != nil {
			return errs.New(errs.KindInvariantViolation, stage, err)
		}
		if got != digest {
			return errs.New(errs.KindInvariantViolation, stage, errors.New("style guide changed during run"))
		}
		return nil
	}

	res := &Result{RunID: runID, Query: query}

	res.Pages, err = b.GeneratePages(ctx, query)
	if err != nil {
		return nil, b.fail(logger, err)
	}
	if err := unchanged(prompts.StagePages); err != nil {
		return nil, b.fail(logger, err)
	}
	b.progress(runID, MarkerPages, len(res.Pages))

	paths := make([]string, len(res.Pages))
	descriptions := make([]string, len(res.Pages))
	for i, p := range res.Pages {
		paths[i] = p.Path
		descriptions[i] = p.Description
	}

	res.LayoutGuides = make([]string, 0, len(res.Pages))
	for _, p := range res.Pages {
		guide, err := b.GenerateLayoutGuide(ctx, p, styleGuide)
		if err != nil {
			return nil, b.fail(logger, err)
		}
		if err := unchanged(prompts.StageLayoutGuide); err != nil {
			return nil, b.fail(logger, err)
		}
		logger.Debug("layout guide", "page", p.Path, "guide", guide)
		res.LayoutGuides = append(res.LayoutGuides, guide)
	}
	b.progress(runID, MarkerLayoutGuides, len(res.LayoutGuides))

	res.PageLayouts = make([]types.PageLayout, 0, len(res.Pages))
	for i, p := range res.Pages {
		layout, err := b.GeneratePageLayout(ctx, template, styleGuide, p.Description, res.LayoutGuides[i])
		if err != nil {
			return nil, b.fail(logger, err)
		}
		if err := unchanged(prompts.StagePageLayout); err != nil {
			return nil, b.fail(logger, err)
		}
		logger.Debug("page layout", "page", p.Path, "sections", len(layout.Page.Layout.Sections))
		res.PageLayouts = append(res.PageLayouts, layout)
	}
	b.progress(runID, MarkerPageLayouts, len(res.PageLayouts))

	res.Tasks, err = b.GenerateTasks(ctx, res.PageLayouts, styleGuide, descriptions)
	if err != nil {
		return nil, b.fail(logger, err)
	}
	if err := unchanged(prompts.StageTasks); err != nil {
		return nil, b.fail(logger, err)
	}
	b.progress(runID, MarkerTasks, len(res.Tasks))

	res.Code = make([]types.GeneratedCode, 0, len(res.Tasks))
	for i, task := range res.Tasks {
		code, err := b.GenerateTaskCode(ctx, styleGuide, task, paths, descriptions)
		if err != nil {
			return nil, b.fail(logger, err)
		}
		if err := unchanged(prompts.StageTaskCode); err != nil {
			return nil, b.fail(logger, err)
		}
		res.Code = append(res.Code, types.GeneratedCode{
			TaskIndex:       i,
			TaskDescription: task.Description,
			Code:            code,
			Language:        utils.DetermineLanguage(utils.FenceTag(code)),
		})
	}
	b.progress(runID, MarkerTaskCode, len(res.Code))

	logger.Info("run finished", "pages", len(res.Pages), "tasks", len(res.Tasks))
	return res, nil
}

func (b *Builder) fail(logger *slog.Logger, err error) error {
	logger.Error("run failed",
		"stage", errs.StageOf(err),
		"kind", errs.KindOf(err).String(),
		"transient", utils.IsTransient(err),
		"error", err,
	)
	return err
}
