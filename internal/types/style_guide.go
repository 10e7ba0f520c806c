package types

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
)

// StyleGuide describes the site's theme tokens, component variants and
// accessibility settings. It is loaded once per run and never modified.
type StyleGuide struct {
	Theme         Theme         `json:"theme"`
	Components    Components    `json:"components"`
	Accessibility Accessibility `json:"accessibility"`
}

type ColorVariants struct {
	Default string `json:"DEFAULT"`
	Light   string `json:"light"`
	Dark    string `json:"dark"`
}

type Colors struct {
	Primary   ColorVariants     `json:"primary"`
	Secondary ColorVariants     `json:"secondary"`
	Neutral   map[string]string `json:"neutral,omitempty"`
	Feedback  map[string]string `json:"feedback,omitempty"`
}

type FontSizeMap struct {
	XS   string `json:"xs"`
	SM   string `json:"sm"`
	Base string `json:"base"`
	LG   string `json:"lg"`
	XL   string `json:"xl"`
	XL2  string `json:"2xl"`
}

type Theme struct {
	Colors       Colors              `json:"colors"`
	FontFamily   map[string][]string `json:"fontFamily,omitempty"`
	FontSize     FontSizeMap         `json:"fontSize"`
	FontWeight   map[string]int      `json:"fontWeight,omitempty"`
	LineHeight   map[string]string   `json:"lineHeight,omitempty"`
	Spacing      map[string]string   `json:"spacing,omitempty"`
	BorderRadius map[string]string   `json:"borderRadius,omitempty"`
	Screens      map[string]string   `json:"screens,omitempty"`
	Container    map[string]any      `json:"container,omitempty"` // bool or string values
	BoxShadow    map[string]string   `json:"boxShadow,omitempty"`
}

// Components maps each component to its style variants
// (base, primary, secondary, disabled) and their utility classes.
type Components struct {
	Button map[string]string `json:"button,omitempty"`
	Card   map[string]string `json:"card,omitempty"`
	Input  map[string]string `json:"input,omitempty"`
}

type Accessibility struct {
	FocusOutline string `json:"focusOutline"`
	Contrast     string `json:"contrast"`
}

func (s StyleGuide) Validate() error {
	if s.Theme.Colors.Primary.Default == "" {
		return errors.New("theme.colors.primary.DEFAULT is required")
	}
	return nil
}

// Digest is a sha256 over the canonical JSON encoding. encoding/json sorts
// map keys, so equal guides always hash the same.
func (s StyleGuide) Digest() (string, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}
