package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"sitegen/internal/errs"
)

// Validator is implemented by output types that check their own shape.
type Validator interface {
	Validate() error
}

// Predict runs one structured call: it sends inputs under sig, decodes every
// candidate completion into Out, validates it, and returns the candidate the
// selection policy picks. Decode and validation failures surface as
// errs.KindShapeMismatch; model call failures as errs.KindUpstreamFailure.
func Predict[Out any](ctx context.Context, m Model, sig Signature, inputs any, opts CallOptions) (Out, error) {
	var zero Out
	opts = opts.defaults()

	user, err := json.MarshalIndent(inputs, "", "  ")
	if err != nil {
		return zero, fmt.Errorf("%s: encode inputs: %w", sig.Name, err)
	}

	req := Request{
		Stage:      sig.Name,
		System:     sig.Render(opts.ChainOfThought),
		User:       string(user),
		Candidates: opts.Candidates,
	}
	raws, err := m.Complete(ctx, req)
	if err != nil {
		if errs.KindOf(err) != errs.KindUnknown {
			return zero, err
		}
		return zero, errs.Upstream(sig.Name, err)
	}
	if len(raws) == 0 {
		return zero, errs.ShapeMismatch(sig.Name, "model returned no completions")
	}

	values := make([]Out, len(raws))
	cands := make([]Candidate, len(raws))
	for i, raw := range raws {
		v, reasoning, err := decodeCandidate[Out](sig, raw)
		values[i] = v
		cands[i] = Candidate{Index: i, Raw: raw, Reasoning: reasoning, Err: err}
		if err != nil {
			opts.Logger.Debug("candidate rejected", "stage", sig.Name, "candidate", i, "error", err, "raw", raw)
		}
	}

	idx, err := opts.Policy.Select(cands)
	if err != nil {
		return zero, errs.New(errs.KindShapeMismatch, sig.Name, fmt.Errorf("%s policy: %w", opts.Policy.Name(), err))
	}

	opts.Logger.Debug("candidate selected",
		"stage", sig.Name,
		"policy", opts.Policy.Name(),
		"candidate", idx,
		"of", len(cands),
		"reasoning", cands[idx].Reasoning,
	)
	return values[idx], nil
}

// wrapperKeys are keys models commonly nest a lone answer under.
var wrapperKeys = []string{"result", "output", "data", "response"}

func decodeCandidate[Out any](sig Signature, raw string) (Out, string, error) {
	var out Out
	cleaned := CleanJSON(raw)
	if cleaned == "" {
		return out, "", errors.New("empty completion")
	}

	var envelope map[string]json.RawMessage
	isObject := json.Unmarshal([]byte(cleaned), &envelope) == nil
	reasoning := ""
	if isObject {
		if r, ok := envelope["reasoning"]; ok {
			_ = json.Unmarshal(r, &reasoning)
		}
	}

	payload := []byte(cleaned)
	if !isObject || !hasKeys(envelope, sig.OutputNames()) {
		if len(sig.Outputs) != 1 {
			return out, reasoning, fmt.Errorf("missing output fields %v", sig.OutputNames())
		}
		value, err := loneValue(sig.Outputs[0], cleaned, envelope, isObject)
		if err != nil {
			return out, reasoning, err
		}
		payload, err = json.Marshal(map[string]json.RawMessage{sig.Outputs[0].Name: value})
		if err != nil {
			return out, reasoning, err
		}
	}

	if err := json.Unmarshal(payload, &out); err != nil {
		return out, reasoning, fmt.Errorf("decode %v: %w", sig.OutputNames(), err)
	}
	if v, ok := any(out).(Validator); ok {
		if err := v.Validate(); err != nil {
			return out, reasoning, err
		}
	}
	return out, reasoning, nil
}

// loneValue recovers the value of a single-output signature when the model
// skipped the envelope: a wrapped object, a bare value, or plain text for
// string fields.
func loneValue(f Field, cleaned string, envelope map[string]json.RawMessage, isObject bool) (json.RawMessage, error) {
	if isObject {
		for _, key := range wrapperKeys {
			if v, ok := envelope[key]; ok {
				return v, nil
			}
		}
	}
	if json.Valid([]byte(cleaned)) {
		return json.RawMessage(cleaned), nil
	}
	if f.Type == "str" {
		return json.Marshal(cleaned)
	}
	return nil, fmt.Errorf("completion is not JSON and %q is not text", f.Name)
}

func hasKeys(m map[string]json.RawMessage, keys []string) bool {
	for _, k := range keys {
		if _, ok := m[k]; !ok {
			return false
		}
	}
	return true
}

// CleanJSON trims whitespace and a surrounding ```json fence.
func CleanJSON(s string) string {
	s = strings.TrimSpace(s)
	lower := strings.ToLower(s)
	if strings.HasPrefix(lower, "```json") {
		s = s[len("```json"):]
	} else if strings.HasPrefix(s, "```\n") {
		s = s[len("```"):]
	} else {
		return s
	}
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
