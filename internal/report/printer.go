// Package report prints pipeline progress and results to a terminal.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"sitegen/internal/builder"
	"sitegen/internal/errs"
	"sitegen/internal/utils"
)

var (
	PrimaryColor = lipgloss.Color("#1A73E8")
	SuccessColor = lipgloss.Color("#10B981")
	ErrorColor   = lipgloss.Color("#F87171")
	MutedColor   = lipgloss.Color("#9CA3AF")

	Marker = lipgloss.NewStyle().Foreground(SuccessColor).Bold(true)
	Count  = lipgloss.NewStyle().Foreground(MutedColor)
	Title  = lipgloss.NewStyle().Foreground(PrimaryColor).Bold(true)
	Label  = lipgloss.NewStyle().Foreground(MutedColor).Italic(true)
	Failed = lipgloss.NewStyle().Foreground(ErrorColor).Bold(true)

	Code = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderLeft(true).
		BorderForeground(MutedColor).
		PaddingLeft(1)
)

// Printer writes styled run output. It implements builder.Observer.
type Printer struct {
	w io.Writer
}

func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

func (p *Printer) Progress(_, marker string, count int) {
	fmt.Fprintf(p.w, "%s %s\n", Marker.Render(marker), Count.Render(fmt.Sprintf("(%d)", count)))
}

// Result prints the collected code list, one block per task in plan order.
func (p *Printer) Result(res *builder.Result) {
	fmt.Fprintln(p.w, Title.Render(fmt.Sprintf("Run %s: %d pages, %d tasks", res.RunID, len(res.Pages), len(res.Tasks))))
	for _, pg := range res.Pages {
		fmt.Fprintf(p.w, "  %s %s\n", pg.Path, Label.Render(pg.Description))
	}
	total := len(res.Code)
	for _, c := range res.Code {
		fmt.Fprintln(p.w)
		fmt.Fprintf(p.w, "%s %s\n",
			Title.Render(fmt.Sprintf("[%d/%d] %s", c.TaskIndex+1, total, c.TaskDescription)),
			Label.Render(c.Language),
		)
		fmt.Fprintln(p.w, Code.Render(strings.TrimRight(c.Code, "\n")))
	}
}

// Error prints a failed run with its stage and kind.
func (p *Printer) Error(err error) {
	kind := errs.KindOf(err).String()
	if utils.IsTransient(err) {
		kind += ", transient"
	}
	stage := errs.StageOf(err)
	if stage == "" {
		stage = "setup"
	}
	fmt.Fprintf(p.w, "%s %s\n", Failed.Render(fmt.Sprintf("Run failed at %s (%s):", stage, kind)), err)
}
