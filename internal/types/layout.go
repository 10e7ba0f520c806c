package types

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// PageLayout is the structured layout of one page. Sections are in render order.
type PageLayout struct {
	Page LayoutPage `json:"page"`
}

type LayoutPage struct {
	Path   string `json:"path"`
	Layout Layout `json:"layout"`
}

type Layout struct {
	Type     string    `json:"_type"` // e.g. "vertical"
	Sections []Section `json:"sections"`
}

type Section struct {
	ID            string              `json:"_id"`
	Role          string              `json:"role"`
	Position      string              `json:"position,omitempty"`
	MaxWidth      string              `json:"maxWidth,omitempty"`
	Variant       string              `json:"variant,omitempty"`
	Alignment     string              `json:"alignment,omitempty"`
	Columns       *FlexInt            `json:"columns,omitempty"`
	Content       []ContentItem       `json:"content,omitempty"`
	ContentBlocks []ContentBlock      `json:"contentBlocks,omitempty"`
	Responsive    *ResponsiveSettings `json:"responsive,omitempty"`
}

// ContentItem is a leaf descriptor: heading, image, button and so on.
type ContentItem struct {
	Type        string   `json:"_type"`
	Level       *FlexInt `json:"level,omitempty"`
	Orientation string   `json:"orientation,omitempty"`
	Variant     string   `json:"variant,omitempty"`
	Label       string   `json:"label,omitempty"`
	Subtype     string   `json:"subtype,omitempty"`
}

// ContentBlock is a typed prose block.
type ContentBlock struct {
	Type         string   `json:"_type"`
	HeadingLevel *FlexInt `json:"headingLevel,omitempty"`
	Content      []string `json:"content,omitempty"`
}

// ResponsiveSettings holds per-breakpoint overrides. MDPlus and LGPlus apply
// at "md and above" and "lg and above".
type ResponsiveSettings struct {
	Mobile  *ResponsiveConfig `json:"mobile,omitempty"`
	Desktop *ResponsiveConfig `json:"desktop,omitempty"`
	MDPlus  *ResponsiveConfig `json:"md+,omitempty"`
	LGPlus  *ResponsiveConfig `json:"lg+,omitempty"`
}

// UnmarshalJSON accepts md_plus / lg_plus as aliases of md+ / lg+.
func (r *ResponsiveSettings) UnmarshalJSON(data []byte) error {
	var raw struct {
		Mobile      *ResponsiveConfig `json:"mobile"`
		Desktop     *ResponsiveConfig `json:"desktop"`
		MDPlus      *ResponsiveConfig `json:"md+"`
		LGPlus      *ResponsiveConfig `json:"lg+"`
		MDPlusAlias *ResponsiveConfig `json:"md_plus"`
		LGPlusAlias *ResponsiveConfig `json:"lg_plus"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	r.Mobile = raw.Mobile
	r.Desktop = raw.Desktop
	r.MDPlus = raw.MDPlus
	if r.MDPlus == nil {
		r.MDPlus = raw.MDPlusAlias
	}
	r.LGPlus = raw.LGPlus
	if r.LGPlus == nil {
		r.LGPlus = raw.LGPlusAlias
	}
	return nil
}

// ResponsiveConfig replaces menu style, item order or column count at a breakpoint.
type ResponsiveConfig struct {
	Menu    string   `json:"menu,omitempty"`
	Order   []string `json:"order,omitempty"`
	Columns *FlexInt `json:"columns,omitempty"`
}

// Validate checks required fields down the tree.
func (l PageLayout) Validate() error {
	if strings.TrimSpace(l.Page.Path) == "" {
		return errors.New("layout page path is empty")
	}
	if len(l.Page.Layout.Sections) == 0 {
		return fmt.Errorf("layout for %q has no sections", l.Page.Path)
	}
	for i, s := range l.Page.Layout.Sections {
		if err := s.Validate(); err != nil {
			return fmt.Errorf("section %d: %w", i, err)
		}
	}
	return nil
}

func (s Section) Validate() error {
	if strings.TrimSpace(s.ID) == "" {
		return errors.New("section _id is empty")
	}
	if strings.TrimSpace(s.Role) == "" {
		return fmt.Errorf("section %q has no role", s.ID)
	}
	for i, item := range s.Content {
		if strings.TrimSpace(item.Type) == "" {
			return fmt.Errorf("section %q content[%d] has no _type", s.ID, i)
		}
	}
	for i, block := range s.ContentBlocks {
		if strings.TrimSpace(block.Type) == "" {
			return fmt.Errorf("section %q contentBlocks[%d] has no _type", s.ID, i)
		}
	}
	return nil
}

// SectionIDs returns the section ids in render order.
func (l PageLayout) SectionIDs() []string {
	ids := make([]string, len(l.Page.Layout.Sections))
	for i, s := range l.Page.Layout.Sections {
		ids[i] = s.ID
	}
	return ids
}

// MatchesTemplate checks that l keeps the template's section sequence.
func (l PageLayout) MatchesTemplate(template PageLayout) error {
	got, want := l.SectionIDs(), template.SectionIDs()
	if len(got) != len(want) {
		return fmt.Errorf("layout has %d sections, template has %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			return fmt.Errorf("section %d is %q, template has %q", i, got[i], want[i])
		}
	}
	return nil
}
