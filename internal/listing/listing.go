// Package listing renders the existing versions of a scene as a table.
package listing

import (
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/joe/smart-save/pkg/scenefile"
)

// Report is the version listing of one descriptor/task pair in a folder.
type Report struct {
	// Folder is shown in the title, e.g. an sftp:// URL
	Folder  string
	Matches []scenefile.Match
	Next    scenefile.Record
}

// Render returns the report as a rounded table with VERSION and FILE columns
// and the next available file name in the footer.
func (r Report) Render() string {
	tw := table.NewWriter()

	style := table.StyleRounded
	style.Format.Footer = text.FormatDefault
	tw.SetStyle(style)

	if r.Folder != "" {
		tw.SetTitle(r.Folder)
	}

	tw.AppendHeader(table.Row{"VERSION", "FILE"})

	for _, m := range r.Matches {
		tw.AppendRow(table.Row{strconv.Itoa(m.Version), m.Name})
	}

	if len(r.Matches) == 0 {
		tw.AppendRow(table.Row{"-", "no versions yet"})
	}

	tw.AppendFooter(table.Row{"next " + strconv.Itoa(r.Next.Version), r.Next.Filename()})

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight, AlignHeader: text.AlignLeft},
		{Number: 2, Align: text.AlignLeft, AlignHeader: text.AlignLeft},
	})

	return tw.Render()
}
