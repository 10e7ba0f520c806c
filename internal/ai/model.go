package ai

import (
	"context"
	"log/slog"
)

// Model is the boundary to the text-generation service. It returns every
// candidate completion for a request, in candidate order.
type Model interface {
	Complete(ctx context.Context, req Request) ([]string, error)
}

// Request is one structured call.
type Request struct {
	Stage      string // signature name, used for logging and errors
	System     string // rendered instruction and output contract
	User       string // JSON-encoded input fields
	Candidates int    // number of completions to ask for
}

// CallOptions controls how Predict samples and picks a completion.
type CallOptions struct {
	Candidates     int
	Policy         SelectionPolicy
	ChainOfThought bool // ask for a "reasoning" field before the outputs
	Logger         *slog.Logger
}

func (o CallOptions) defaults() CallOptions {
	if o.Candidates < 1 {
		o.Candidates = 1
	}
	if o.Policy == nil {
		o.Policy = Last{}
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	return o
}
