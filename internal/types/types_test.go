package types

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestPageDecodeAcceptsPageKey(t *testing.T) {
	var pages []Page
	data := `[{"path": "/", "description": "Home page"}, {"page": "/contact/", "description": "Contact page"}]`
	if err := json.Unmarshal([]byte(data), &pages); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if len(pages) != 2 {
		t.Fatalf("len(pages) = %d, want 2", len(pages))
	}
	if pages[1].Path != "/contact/" {
		t.Errorf("pages[1].Path = %q, want %q", pages[1].Path, "/contact/")
	}
	for _, p := range pages {
		if err := p.Validate(); err != nil {
			t.Errorf("Validate(%+v) = %v", p, err)
		}
	}

	out, err := json.Marshal(pages[1])
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(out), `"path":"/contact/"`) {
		t.Errorf("Marshal() = %s, want path key", out)
	}
}

func TestPageValidate(t *testing.T) {
	tests := []struct {
		name    string
		page    Page
		wantErr bool
	}{
		{"ok", Page{Path: "/", Description: "Home"}, false},
		{"no path", Page{Description: "Home"}, true},
		{"blank description", Page{Path: "/", Description: "  "}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.page.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestTaskDecodeAliases(t *testing.T) {
	data := `[
		{"task_description": "Scaffold the Astro project"},
		{"description": "Add Tailwind config"},
		{"task": "Build the home page"},
		"Build the contact page"
	]`
	var tasks []Task
	if err := json.Unmarshal([]byte(data), &tasks); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	want := []string{
		"Scaffold the Astro project",
		"Add Tailwind config",
		"Build the home page",
		"Build the contact page",
	}
	if len(tasks) != len(want) {
		t.Fatalf("len(tasks) = %d, want %d", len(tasks), len(want))
	}
	for i, w := range want {
		if tasks[i].Description != w {
			t.Errorf("tasks[%d].Description = %q, want %q", i, tasks[i].Description, w)
		}
	}
	if err := (Task{}).Validate(); err == nil {
		t.Error("empty task should not validate")
	}
}

func TestFlexInt(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{`3`, 3, false},
		{`"4"`, 4, false},
		{`2.0`, 2, false},
		{`"three"`, 0, true},
		{`[1]`, 0, true},
	}
	for _, tt := range tests {
		var f FlexInt
		err := json.Unmarshal([]byte(tt.in), &f)
		if (err != nil) != tt.wantErr {
			t.Errorf("Unmarshal(%s) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && int(f) != tt.want {
			t.Errorf("Unmarshal(%s) = %d, want %d", tt.in, f, tt.want)
		}
	}

	var nilF *FlexInt
	if nilF.Int() != 0 {
		t.Error("nil FlexInt should read as 0")
	}
}

const sampleLayout = `{
  "page": {
    "path": "/",
    "layout": {
      "_type": "vertical",
      "sections": [
        {
          "_id": "header",
          "role": "navigation",
          "position": "sticky-top",
          "responsive": {
            "mobile": {"menu": "hamburger"},
            "md_plus": {"menu": "inline", "order": ["logo", "links", "cta"]}
          }
        },
        {
          "_id": "hero",
          "role": "banner",
          "columns": "2",
          "content": [
            {"_type": "heading", "level": 1},
            {"_type": "button", "variant": "primary", "label": "Call now"}
          ],
          "responsive": {"lg+": {"columns": 2}}
        },
        {
          "_id": "about",
          "role": "content",
          "contentBlocks": [{"_type": "prose", "headingLevel": "2", "content": ["We fix pipes."]}]
        }
      ]
    }
  }
}`

func TestPageLayoutDecode(t *testing.T) {
	var layout PageLayout
	if err := json.Unmarshal([]byte(sampleLayout), &layout); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if err := layout.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	ids := layout.SectionIDs()
	want := []string{"header", "hero", "about"}
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("SectionIDs()[%d] = %q, want %q", i, ids[i], want[i])
		}
	}

	sections := layout.Page.Layout.Sections
	if sections[0].Responsive.MDPlus == nil || sections[0].Responsive.MDPlus.Menu != "inline" {
		t.Errorf("md_plus alias not decoded: %+v", sections[0].Responsive)
	}
	if got := sections[0].Responsive.MDPlus.Order; len(got) != 3 || got[0] != "logo" {
		t.Errorf("md+ order = %v", got)
	}
	if sections[1].Columns.Int() != 2 {
		t.Errorf("hero columns = %d, want 2", sections[1].Columns.Int())
	}
	if sections[1].Responsive.LGPlus.Columns.Int() != 2 {
		t.Errorf("hero lg+ columns = %d, want 2", sections[1].Responsive.LGPlus.Columns.Int())
	}
	if sections[2].ContentBlocks[0].HeadingLevel.Int() != 2 {
		t.Errorf("about headingLevel = %d, want 2", sections[2].ContentBlocks[0].HeadingLevel.Int())
	}
}

func TestPageLayoutValidate(t *testing.T) {
	base := func() PageLayout {
		return PageLayout{Page: LayoutPage{Path: "/", Layout: Layout{Type: "vertical", Sections: []Section{
			{ID: "hero", Role: "banner", Content: []ContentItem{{Type: "heading", Level: IntPtr(1)}}},
		}}}}
	}

	tests := []struct {
		name   string
		mutate func(*PageLayout)
	}{
		{"no path", func(l *PageLayout) { l.Page.Path = "" }},
		{"no sections", func(l *PageLayout) { l.Page.Layout.Sections = nil }},
		{"no id", func(l *PageLayout) { l.Page.Layout.Sections[0].ID = "" }},
		{"no role", func(l *PageLayout) { l.Page.Layout.Sections[0].Role = "" }},
		{"untyped item", func(l *PageLayout) { l.Page.Layout.Sections[0].Content[0].Type = "" }},
		{"untyped block", func(l *PageLayout) {
			l.Page.Layout.Sections[0].ContentBlocks = []ContentBlock{{Content: []string{"x"}}}
		}},
	}

	if err := base().Validate(); err != nil {
		t.Fatalf("base layout Validate() = %v", err)
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := base()
			tt.mutate(&l)
			if err := l.Validate(); err == nil {
				t.Error("Validate() = nil, want error")
			}
		})
	}
}

func TestMatchesTemplate(t *testing.T) {
	mk := func(ids ...string) PageLayout {
		l := PageLayout{Page: LayoutPage{Path: "/"}}
		for _, id := range ids {
			l.Page.Layout.Sections = append(l.Page.Layout.Sections, Section{ID: id, Role: "r"})
		}
		return l
	}
	template := mk("header", "hero", "footer")

	if err := mk("header", "hero", "footer").MatchesTemplate(template); err != nil {
		t.Errorf("same order: MatchesTemplate() = %v", err)
	}
	if err := mk("hero", "header", "footer").MatchesTemplate(template); err == nil {
		t.Error("reordered sections should not match")
	}
	if err := mk("header", "footer").MatchesTemplate(template); err == nil {
		t.Error("dropped section should not match")
	}
}

func TestStyleGuideDigestStable(t *testing.T) {
	sg := StyleGuide{
		Theme: Theme{
			Colors:  Colors{Primary: ColorVariants{Default: "#1A73E8"}},
			Spacing: map[string]string{"sm": "0.5rem", "lg": "2rem", "md": "1rem"},
		},
	}
	a, err := sg.Digest()
	if err != nil {
		t.Fatal(err)
	}
	b, _ := sg.Digest()
	if a != b {
		t.Errorf("Digest() not stable: %s != %s", a, b)
	}

	sg.Theme.Spacing["xl"] = "4rem"
	c, _ := sg.Digest()
	if c == a {
		t.Error("Digest() did not change after mutation")
	}
	if err := (StyleGuide{}).Validate(); err == nil {
		t.Error("empty style guide should not validate")
	}
}
