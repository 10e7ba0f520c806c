// Package sources loads the read-only inputs of a run: the style guide and
// the generic page layout template.
//
// Files are read through an afero.Fs and decoded by extension (.json, .yaml,
// .yml, .toml). Every failure, missing file or bad content alike, is reported
// as errs.KindConfigMissing.
package sources

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"sitegen/internal/errs"
	"sitegen/internal/types"
)

const (
	DefaultStyleGuidePath     = "./style_guide.json"
	DefaultLayoutTemplatePath = "./site_page_layout.json"
)

// Loader reads sources from a filesystem.
type Loader struct {
	fs                 afero.Fs
	styleGuidePath     string
	layoutTemplatePath string
}

// NewLoader returns a Loader. Empty paths fall back to the defaults.
func NewLoader(fs afero.Fs, styleGuidePath, layoutTemplatePath string) *Loader {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	if styleGuidePath == "" {
		styleGuidePath = DefaultStyleGuidePath
	}
	if layoutTemplatePath == "" {
		layoutTemplatePath = DefaultLayoutTemplatePath
	}
	return &Loader{fs: fs, styleGuidePath: styleGuidePath, layoutTemplatePath: layoutTemplatePath}
}

func (l *Loader) StyleGuidePath() string     { return l.styleGuidePath }
func (l *Loader) LayoutTemplatePath() string { return l.layoutTemplatePath }

// StyleGuide loads and validates the style guide.
func (l *Loader) StyleGuide() (types.StyleGuide, error) {
	var sg types.StyleGuide
	if err := l.decodeFile(l.styleGuidePath, &sg); err != nil {
		return types.StyleGuide{}, errs.ConfigMissing("style guide", err)
	}
	if err := sg.Validate(); err != nil {
		return types.StyleGuide{}, errs.ConfigMissing("style guide", fmt.Errorf("%s: %w", l.styleGuidePath, err))
	}
	return sg, nil
}

// LayoutTemplate loads and validates the generic page layout.
func (l *Loader) LayoutTemplate() (types.PageLayout, error) {
	var layout types.PageLayout
	if err := l.decodeFile(l.layoutTemplatePath, &layout); err != nil {
		return types.PageLayout{}, errs.ConfigMissing("layout template", err)
	}
	if err := layout.Validate(); err != nil {
		return types.PageLayout{}, errs.ConfigMissing("layout template", fmt.Errorf("%s: %w", l.layoutTemplatePath, err))
	}
	return layout, nil
}

// Raw returns the file's bytes re-encoded as indented JSON, whatever its
// on-disk format.
func (l *Loader) Raw(path string) ([]byte, error) {
	var v any
	if err := l.decodeFile(path, &v); err != nil {
		return nil, errs.ConfigMissing(path, err)
	}
	return json.MarshalIndent(v, "", "  ")
}

func (l *Loader) decodeFile(path string, target any) error {
	data, err := afero.ReadFile(l.fs, path)
	if err != nil {
		return err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return fmt.Errorf("%s is empty", path)
	}
	if err := Decode(path, data, target); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

// Decode unmarshals data according to the extension of name. YAML and TOML go
// through a generic map and then JSON, so one set of json tags serves every
// format.
func Decode(name string, data []byte, target any) error {
	switch ext := strings.ToLower(filepath.Ext(name)); ext {
	case ".json", "":
		return json.Unmarshal(data, target)
	case ".yaml", ".yml":
		var m map[string]any
		if err := yaml.Unmarshal(data, &m); err != nil {
			return err
		}
		return viaJSON(m, target)
	case ".toml":
		var m map[string]any
		if err := toml.Unmarshal(data, &m); err != nil {
			return err
		}
		return viaJSON(m, target)
	default:
		return fmt.Errorf("unsupported source format %q", ext)
	}
}

func viaJSON(m map[string]any, target any) error {
	data, err := json.Marshal(m)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, target)
}
