package builder

import (
	"log/slog"

	"sitegen/internal/ai"
	"sitegen/internal/sources"
	"sitegen/internal/types"
)

// Progress markers reported after each phase of a run.
const (
	MarkerPages        = "Pages generated"
	MarkerLayoutGuides = "Layout guides generated"
	MarkerPageLayouts  = "Page layouts generated"
	MarkerTasks        = "Tasks generated"
	MarkerTaskCode     = "Task code generated"
)

// Observer is told when a phase of a run finishes.
type Observer interface {
	Progress(runID, marker string, count int)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(runID, marker string, count int)

func (f ObserverFunc) Progress(runID, marker string, count int) { f(runID, marker, count) }

// Options wires a Builder. Model and Loader are required.
type Options struct {
	Model  ai.Model
	Loader *sources.Loader
	Call   ai.CallOptions

	// FeedLayoutGuide sends each page's layout guide to the page layout call.
	FeedLayoutGuide bool

	Logger   *slog.Logger
	Observer Observer
}

// Builder runs the five generation stages against one model.
type Builder struct {
	model           ai.Model
	loader          *sources.Loader
	call            ai.CallOptions
	feedLayoutGuide bool
	logger          *slog.Logger
	observer        Observer
}

func NewBuilder(opts Options) *Builder {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	loader := opts.Loader
	if loader == nil {
		loader = sources.NewLoader(nil, "", "")
	}
	call := opts.Call
	if call.Logger == nil {
		call.Logger = logger
	}
	return &Builder{
		model:           opts.Model,
		loader:          loader,
		call:            call,
		feedLayoutGuide: opts.FeedLayoutGuide,
		logger:          logger,
		observer:        opts.Observer,
	}
}

// Loader returns the sources the builder reads.
func (b *Builder) Loader() *sources.Loader { return b.loader }

// Result is everything one run produced, in generation order.
type Result struct {
	RunID        string                `json:"run_id"`
	Query        string                `json:"query"`
	Pages        []types.Page          `json:"pages"`
	LayoutGuides []string              `json:"layout_guides"`
	PageLayouts  []types.PageLayout    `json:"page_layouts"`
	Tasks        []types.Task          `json:"tasks"`
	Code         []types.GeneratedCode `json:"code"`
}

func (b *Builder) progress(runID, marker string, count int) {
	b.logger.Info(marker, "run_id", runID, "count", count)
	if b.observer != nil {
		b.observer.Progress(runID, marker, count)
	}
}
