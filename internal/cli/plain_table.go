package cli

import (
	"io"
	"strings"
	"unicode/utf8"
)

// PlainTableWriter prints kubectl-style columns without borders or colors,
// for output that is piped into grep, awk or cut.
type PlainTableWriter struct {
	headers     []string
	rows        [][]string
	widths      []int
	padding     int
	showHeaders bool
	out         io.Writer
}

// NewPlainTableWriter creates a writer that prints headers by default.
func NewPlainTableWriter(out io.Writer) *PlainTableWriter {
	return &PlainTableWriter{
		padding:     3,
		showHeaders: true,
		out:         out,
	}
}

// SetHeaders sets the column headers, uppercased.
func (w *PlainTableWriter) SetHeaders(headers ...string) {
	w.headers = make([]string, len(headers))
	w.widths = make([]int, len(headers))
	for i, h := range headers {
		w.headers[i] = strings.ToUpper(h)
		w.widths[i] = utf8.RuneCountInString(w.headers[i])
	}
}

// SetNoHeaders suppresses the header row.
func (w *PlainTableWriter) SetNoHeaders(noHeaders bool) {
	w.showHeaders = !noHeaders
}

// AppendRow adds a row. Missing cells are left blank and extra cells dropped.
func (w *PlainTableWriter) AppendRow(cells ...string) {
	row := make([]string, len(w.headers))
	for i := range row {
		if i >= len(cells) {
			continue
		}
		row[i] = cells[i]
		if n := utf8.RuneCountInString(cells[i]); n > w.widths[i] {
			w.widths[i] = n
		}
	}
	w.rows = append(w.rows, row)
}

// Render writes the table. Nothing is written without headers, or without
// rows when headers are suppressed.
func (w *PlainTableWriter) Render() {
	if len(w.headers) == 0 || (len(w.rows) == 0 && !w.showHeaders) {
		return
	}
	if w.showHeaders {
		w.writeRow(w.headers)
	}
	for _, row := range w.rows {
		w.writeRow(row)
	}
}

func (w *PlainTableWriter) writeRow(row []string) {
	var sb strings.Builder
	last := len(row) - 1
	for i, cell := range row {
		sb.WriteString(cell)
		if i < last {
			sb.WriteString(strings.Repeat(" ", w.widths[i]-utf8.RuneCountInString(cell)+w.padding))
		}
	}
	_, _ = io.WriteString(w.out, strings.TrimRight(sb.String(), " ")+"\n")
}
