package cli

import (
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// Table is a rounded go-pretty table with cyan headers.
type Table struct {
	w table.Writer
}

// NewTable creates a table rendered to out. An empty title is omitted.
func NewTable(out io.Writer, title string, headers ...string) *Table {
	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.SetStyle(table.StyleRounded)
	if title != "" {
		t.SetTitle(text.Bold.Sprint(title))
	}

	if len(headers) > 0 {
		row := make(table.Row, len(headers))
		for i, h := range headers {
			row[i] = text.FgHiCyan.Sprint(h)
		}
		t.AppendHeader(row)
	}
	return &Table{w: t}
}

// NewKeyValueTable creates a two-column PARAMETER/VALUE table.
func NewKeyValueTable(out io.Writer, title string) *Table {
	return NewTable(out, title, "PARAMETER", "VALUE")
}

// AppendRow adds a row.
func (t *Table) AppendRow(cells ...interface{}) {
	t.w.AppendRow(table.Row(cells))
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return t.w.Length()
}

// Render writes the table to its output.
func (t *Table) Render() {
	t.w.Render()
}
