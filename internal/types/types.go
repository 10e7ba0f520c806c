package types

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cast"
)

// Page is one page of the site, e.g. {path: "/contact/", description: "..."}.
type Page struct {
	Path        string `json:"path"`
	Description string `json:"description"`
}

// UnmarshalJSON also accepts "page" as the path key.
func (p *Page) UnmarshalJSON(data []byte) error {
	var raw struct {
		Path        string `json:"path"`
		Page        string `json:"page"`
		Description string `json:"description"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	p.Path = raw.Path
	if p.Path == "" {
		p.Path = raw.Page
	}
	p.Description = raw.Description
	return nil
}

func (p Page) Validate() error {
	if strings.TrimSpace(p.Path) == "" {
		return errors.New("page path is empty")
	}
	if strings.TrimSpace(p.Description) == "" {
		return fmt.Errorf("page %q has no description", p.Path)
	}
	return nil
}

// Task is one step of the ordered build plan.
type Task struct {
	Description string `json:"task_description"`
}

// UnmarshalJSON accepts "task_description", "description" or "task".
func (t *Task) UnmarshalJSON(data []byte) error {
	var raw struct {
		TaskDescription string `json:"task_description"`
		Description     string `json:"description"`
		Task            string `json:"task"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		// A bare string is a task too.
		var s string
		if errStr := json.Unmarshal(data, &s); errStr != nil {
			return err
		}
		t.Description = s
		return nil
	}
	switch {
	case raw.TaskDescription != "":
		t.Description = raw.TaskDescription
	case raw.Description != "":
		t.Description = raw.Description
	default:
		t.Description = raw.Task
	}
	return nil
}

func (t Task) Validate() error {
	if strings.TrimSpace(t.Description) == "" {
		return errors.New("task description is empty")
	}
	return nil
}

// GeneratedCode is the opaque output of one task. Code is never parsed.
type GeneratedCode struct {
	TaskIndex       int    `json:"task_index"`
	TaskDescription string `json:"task_description"`
	Code            string `json:"code"`
	Language        string `json:"language"`
}

// FlexInt decodes integers the model sends as numbers or numeric strings.
type FlexInt int

func (f *FlexInt) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	n, err := cast.ToIntE(v)
	if err != nil {
		return fmt.Errorf("not an integer: %s", data)
	}
	*f = FlexInt(n)
	return nil
}

// Int returns the value, or 0 for nil.
func (f *FlexInt) Int() int {
	if f == nil {
		return 0
	}
	return int(*f)
}

// IntPtr is a convenience for building layouts in code.
func IntPtr(n int) *FlexInt {
	f := FlexInt(n)
	return &f
}
