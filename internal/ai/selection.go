package ai

import (
	"errors"
	"fmt"
	"strings"
)

// Candidate is one decoded completion.
type Candidate struct {
	Index     int
	Raw       string
	Reasoning string
	Err       error // decode or validation failure; nil means usable
}

// SelectionPolicy picks which candidate completion a stage keeps.
type SelectionPolicy interface {
	Name() string
	// Select returns the index of the chosen candidate, or an error when the
	// policy cannot produce a usable one.
	Select(cands []Candidate) (int, error)
}

// Policy names accepted by ParsePolicy.
const (
	PolicyLast       = "last"
	PolicyFirst      = "first"
	PolicyLastValid  = "last-valid"
	PolicyBestScored = "best-scored"
)

var errNoCandidates = errors.New("no candidates")

// Last keeps the final candidate, valid or not.
type Last struct{}

func (Last) Name() string { return PolicyLast }

func (Last) Select(cands []Candidate) (int, error) {
	if len(cands) == 0 {
		return 0, errNoCandidates
	}
	i := len(cands) - 1
	return i, cands[i].Err
}

// First keeps the first candidate, valid or not.
type First struct{}

func (First) Name() string { return PolicyFirst }

func (First) Select(cands []Candidate) (int, error) {
	if len(cands) == 0 {
		return 0, errNoCandidates
	}
	return 0, cands[0].Err
}

// LastValid keeps the last candidate that decoded and validated.
type LastValid struct{}

func (LastValid) Name() string { return PolicyLastValid }

func (LastValid) Select(cands []Candidate) (int, error) {
	if len(cands) == 0 {
		return 0, errNoCandidates
	}
	for i := len(cands) - 1; i >= 0; i-- {
		if cands[i].Err == nil {
			return i, nil
		}
	}
	return 0, allFailed(cands)
}

// BestScored keeps the valid candidate with the highest score. Ties go to the
// earlier candidate. A nil Score ranks by raw length.
type BestScored struct {
	Score func(Candidate) float64
}

func (BestScored) Name() string { return PolicyBestScored }

func (p BestScored) Select(cands []Candidate) (int, error) {
	if len(cands) == 0 {
		return 0, errNoCandidates
	}
	score := p.Score
	if score == nil {
		score = func(c Candidate) float64 { return float64(len(c.Raw)) }
	}
	best, bestScore := -1, 0.0
	for i, c := range cands {
		if c.Err != nil {
			continue
		}
		s := score(c)
		if best == -1 || s > bestScore {
			best, bestScore = i, s
		}
	}
	if best == -1 {
		return 0, allFailed(cands)
	}
	return best, nil
}

func allFailed(cands []Candidate) error {
	errList := make([]error, 0, len(cands))
	for _, c := range cands {
		errList = append(errList, fmt.Errorf("candidate %d: %w", c.Index, c.Err))
	}
	return fmt.Errorf("all %d candidates failed: %w", len(cands), errors.Join(errList...))
}

// ParsePolicy resolves a configured policy name.
func ParsePolicy(name string) (SelectionPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", PolicyLast:
		return Last{}, nil
	case PolicyFirst:
		return First{}, nil
	case PolicyLastValid:
		return LastValid{}, nil
	case PolicyBestScored:
		return BestScored{}, nil
	default:
		return nil, fmt.Errorf("unknown selection policy %q", name)
	}
}
