package prompts

import "sitegen/internal/ai"

// Stage names, also used as log and error labels.
const (
	StagePages        = "pages"
	StageLayoutGuide  = "layout_guide"
	StagePageLayout   = "page_layout"
	StageTasks        = "tasks"
	StageTaskCode     = "task_code"
	siteStackSentence = "The site is built with Astro and TailwindCSS."
)

// PageSet asks for the list of pages a site needs.
var PageSet = ai.Signature{
	Name: StagePages,
	Instruction: `
		You are a website planner. Generate the pages of a website for the user's query.
		` + siteStackSentence + `
		Each page has a URL path (for example "/" or "/contact/") and a description of
		what the page contains and who it is for.`,
	Inputs: []ai.Field{
		{Name: "query", Type: "str", Desc: "what the user wants the site to be"},
	},
	Outputs: []ai.Field{
		{Name: "pages", Type: "list[{path: str, description: str}]", Desc: "every page of the site, in navigation order"},
	},
}

// LayoutGuide asks for a plain-English layout narrative for one page.
var LayoutGuide = ai.Signature{
	Name: StageLayoutGuide,
	Instruction: `
		Give detailed descriptions of the layout guide of each section of a website page
		in plain English, given the style guide and the page description.
		Refrain from including any direct coding syntax.
		Example:
			Hero Section:
			   - Takes up full width of page
			   - On the left side has text that reads ... with a CTA button
			   - On right side has an image of ...`,
	Inputs: []ai.Field{
		{Name: "page", Type: "str", Desc: "page path"},
		{Name: "page_description", Type: "str"},
		{Name: "style_guide", Type: "StyleGuide"},
	},
	Outputs: []ai.Field{
		{Name: "layout_guide", Type: "str", Desc: "text describing the layout guide for a web page"},
	},
}

// PageLayout asks for a structured layout specialised from the generic one.
var PageLayout = ai.Signature{
	Name: StagePageLayout,
	Instruction: `
		Generate a page layout for a webpage given a generic JSON that represents a page
		layout, the style guide, and the page description.
		Keep exactly the sections of the generic layout, with the same "_id" values and in
		the same order. Fill every field in for this page; keep the JSON structure of the
		generic layout (sections, content items, content blocks, responsive overrides).`,
	Inputs: []ai.Field{
		{Name: "generic_layout", Type: "PageLayout"},
		{Name: "style_guide", Type: "StyleGuide"},
		{Name: "page_description", Type: "str"},
	},
	Outputs: []ai.Field{
		{Name: "page_layout", Type: "PageLayout"},
	},
}

// PageLayoutWithGuide is PageLayout with the page's layout guide as an extra input.
var PageLayoutWithGuide = withInput(PageLayout, ai.Field{
	Name: "layout_guide",
	Type: "str",
	Desc: "plain-English layout narrative for this page; follow it",
})

// TaskList asks for the ordered build plan.
var TaskList = ai.Signature{
	Name: StageTasks,
	Instruction: `
		Generate a sequential list of coding-related tasks to build out the website in one go.
		` + siteStackSentence + `
		Tasks are executed one at a time in the listed order, so put project setup first and
		make every task depend only on tasks before it.`,
	Inputs: []ai.Field{
		{Name: "page_layouts", Type: "list[PageLayout]"},
		{Name: "style_guide", Type: "StyleGuide"},
		{Name: "page_descriptions", Type: "list[str]"},
	},
	Outputs: []ai.Field{
		{Name: "tasks", Type: "list[{task_description: str}]"},
	},
}

// TaskCode asks for the code of one task.
var TaskCode = ai.Signature{
	Name: StageTaskCode,
	Instruction: `
		Generate .astro, package.json, and necessary TailwindCSS code for the given task
		description. Use the provided list of pages and page descriptions to understand the
		pages the site needs, then generate the necessary code.`,
	Inputs: []ai.Field{
		{Name: "style_guide", Type: "StyleGuide"},
		{Name: "task_description", Type: "str"},
		{Name: "pages", Type: "list[str]"},
		{Name: "page_descriptions", Type: "list[str]"},
	},
	Outputs: []ai.Field{
		{Name: "task_code", Type: "str", Desc: "code that is generated as specified by the task description"},
	},
}

func withInput(sig ai.Signature, f ai.Field) ai.Signature {
	sig.Inputs = append(append([]ai.Field(nil), sig.Inputs...), f)
	return sig
}
