package tabular

import (
	"fmt"
	"html"
	"io"

	"github.com/bjaus/tabular/seq"
)

// writeHTML streams rows into a table body.
func writeHTML(w io.Writer, columns []string, rows seq.Seq[Record], cfg *RenderConfig) error {
	if len(columns) == 0 {
		return eachRecord(rows, func(Record) error { return nil })
	}
	aligns := make([]Alignment, len(columns))
	for i, c := range columns {
		aligns[i] = cfg.Align[c]
	}
	hw := &htmlWriter{w: w, aligns: aligns}

	hw.line("<table>")
	if cfg.Title != "" {
		hw.printf("  <caption>%s</caption>\n", html.EscapeString(cfg.Title))
	}
	if !cfg.NoHeader {
		hw.section("thead", "th", columns)
	}
	hw.line("  <tbody>")
	if hw.err != nil {
		return hw.err
	}
	err := eachRecord(rows, func(rec Record) error {
		hw.row("td", rec.Row())
		return hw.err
	})
	if err != nil {
		return err
	}
	hw.line("  </tbody>")
	if len(cfg.Footer) > 0 {
		hw.section("tfoot", "td", cfg.Footer)
	}
	hw.line("</table>")
	return hw.err
}

// htmlWriter keeps the first write error and skips every later write.
type htmlWriter struct {
	w      io.Writer
	aligns []Alignment
	err    error
}

func (h *htmlWriter) printf(format string, args ...any) {
	if h.err == nil {
		_, h.err = fmt.Fprintf(h.w, format, args...)
	}
}

func (h *htmlWriter) line(s string) { h.printf("%s\n", s) }

func (h *htmlWriter) section(tag, cell string, cells []string) {
	h.printf("  <%s>\n", tag)
	h.row(cell, cells)
	h.printf("  </%s>\n", tag)
}

func (h *htmlWriter) row(cell string, cells []string) {
	h.line("    <tr>")
	for i, c := range cells {
		h.printf("      <%s%s>%s</%s>\n", cell, alignStyle(h.aligns, i), html.EscapeString(c), cell)
	}
	h.line("    </tr>")
}

func alignStyle(aligns []Alignment, col int) string {
	if col >= len(aligns) {
		return ""
	}
	switch aligns[col] {
	case AlignRight:
		return ` style="text-align: right"`
	case AlignCenter:
		return ` style="text-align: center"`
	default:
		return ""
	}
}
