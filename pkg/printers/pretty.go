package printers

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"github.com/paloj/copyto/pkg/history"
	"github.com/paloj/copyto/pkg/target"
)

type PrettyPrint struct{}

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(color.Output, "")
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)
	_, _ = t.Fprintln(color.Output, title)
}

// Targets renders the registry as the numbered list the remove operation
// indexes into.
func (pp *PrettyPrint) Targets(reg target.Registry) {
	if len(reg) == 0 {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Fprint(color.Output, " no targets\n\n")
		return
	}

	bold := color.New(color.Bold)
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("  #"), bold.Sprint("Nickname"), bold.Sprint("Path"))
	for i, t := range reg {
		tbl.AddRow(fmt.Sprintf("%3d", i+1), t.Nickname, t.Path)
	}
	tbl.RightAlign(0)
	_, _ = fmt.Fprintln(color.Output, tbl)
	_, _ = fmt.Fprintln(color.Output, "")
}

// History renders past copy runs, oldest first.
func (pp *PrettyPrint) History(records []*history.Record) {
	if len(records) == 0 {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Fprint(color.Output, " no runs recorded\n\n")
		return
	}

	bold := color.New(color.Bold)
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Started"), bold.Sprint("Nickname"), bold.Sprint("Destination"), bold.Sprint("Took"), bold.Sprint("Result"))
	for _, r := range records {
		tbl.AddRow(
			r.Started.Format("2006-01-02 15:04"),
			r.Nickname,
			r.Destination,
			r.Duration.Round(time.Second).String(),
			r.Outcome(),
		)
	}
	_, _ = fmt.Fprintln(color.Output, tbl)
	_, _ = fmt.Fprintln(color.Output, "")
}

// Copied reports a finished copy run.
func (pp *PrettyPrint) Copied(dest string, failed bool) {
	if failed {
		r := color.New(color.FgHiRed, color.Bold)
		_, _ = r.Fprintf(color.Output, "copy to %s failed\n", dest)
		return
	}
	g := color.New(color.FgHiGreen)
	_, _ = g.Fprintf(color.Output, "copied to %s\n", dest)
}

// Error reports a non-fatal failure without leaving the surrounding flow.
func (pp *PrettyPrint) Error(err error) {
	r := color.New(color.FgHiRed)
	_, _ = r.Fprintf(color.Output, "error: %v\n", err)
}
