// Package errs defines the failure kinds a pipeline run can end with.
//
// Every stage error is wrapped in an *Error carrying its Kind and the stage
// that produced it. Callers branch on the kind with errors.Is against the
// sentinels below, or with KindOf:
//
//	if errors.Is(err, errs.ErrConfigMissing) { ... }
//	switch errs.KindOf(err) { ... }
package errs

import (
	"errors"
	"fmt"
)

// Kind classifies a pipeline failure.
type Kind int

const (
	KindUnknown Kind = iota
	// KindShapeMismatch: the model answered, but not in the declared output shape.
	KindShapeMismatch
	// KindConfigMissing: the style guide or layout template is absent or malformed.
	KindConfigMissing
	// KindUpstreamFailure: the model call itself failed (network, quota, timeout).
	KindUpstreamFailure
	// KindInvariantViolation: a run-wide invariant was broken, e.g. the style guide changed.
	KindInvariantViolation
)

func (k Kind) String() string {
	switch k {
	case KindShapeMismatch:
		return "shape_mismatch"
	case KindConfigMissing:
		return "config_missing"
	case KindUpstreamFailure:
		return "upstream_failure"
	case KindInvariantViolation:
		return "invariant_violation"
	default:
		return "unknown"
	}
}

// Sentinels matched by (*Error).Is.
var (
	ErrShapeMismatch      = errors.New("shape mismatch")
	ErrConfigMissing      = errors.New("config missing")
	ErrUpstreamFailure    = errors.New("upstream failure")
	ErrInvariantViolation = errors.New("invariant violation")
)

func (k Kind) sentinel() error {
	switch k {
	case KindShapeMismatch:
		return ErrShapeMismatch
	case KindConfigMissing:
		return ErrConfigMissing
	case KindUpstreamFailure:
		return ErrUpstreamFailure
	case KindInvariantViolation:
		return ErrInvariantViolation
	}
	return nil
}

// Error is a classified pipeline error.
type Error struct {
	Kind  Kind
	Stage string // empty when the failure is not tied to a stage
	Err   error
}

func (e *Error) Error() string {
	if e.Stage == "" {
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", e.Stage, e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is the sentinel for e's kind.
func (e *Error) Is(target error) bool {
	s := e.Kind.sentinel()
	return s != nil && target == s
}

// New wraps err with a kind and stage. A nil err yields nil.
func New(kind Kind, stage string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Stage: stage, Err: err}
}

// ShapeMismatch builds a KindShapeMismatch error from a format string.
func ShapeMismatch(stage, format string, args ...any) error {
	return &Error{Kind: KindShapeMismatch, Stage: stage, Err: fmt.Errorf(format, args...)}
}

// ConfigMissing wraps a source loading failure.
func ConfigMissing(source string, err error) error {
	return New(KindConfigMissing, "", fmt.Errorf("%s: %w", source, err))
}

// Upstream wraps a failed model call.
func Upstream(stage string, err error) error {
	return New(KindUpstreamFailure, stage, err)
}

// KindOf returns the kind of the outermost *Error in err's chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// StageOf returns the stage recorded on err, if any.
func StageOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Stage
	}
	return ""
}
