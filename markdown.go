package tabular

import (
	"fmt"
	"io"
	"strings"

	"github.com/bjaus/tabular/seq"
)

func writeMarkdown(w io.Writer, columns []string, rows seq.Seq[Record], cfg *RenderConfig) error {
	if len(columns) == 0 {
		return eachRecord(rows, func(Record) error { return nil })
	}
	records, err := seq.Collect(rows)
	if err != nil {
		return err
	}
	header := make([]string, len(columns))
	for i, c := range columns {
		header[i] = escapeMarkdown(c)
	}
	cells := make([][]string, len(records))
	for i, rec := range records {
		cells[i] = rec.Row()
		for j, c := range cells[i] {
			cells[i][j] = escapeMarkdown(c)
		}
	}

	// Minimum 3 for alignment markers.
	widths := computeWidths(len(columns), header, cells, nil)
	aligns := make([]Alignment, len(columns))
	for i, c := range columns {
		widths[i] = max(widths[i], 3)
		aligns[i] = cfg.Align[c]
	}

	if err := writeMarkdownRow(w, header, widths, aligns); err != nil {
		return err
	}
	sep := make([]string, len(columns))
	for i, width := range widths {
		switch aligns[i] {
		case AlignRight:
			sep[i] = strings.Repeat("-", width-1) + ":"
		case AlignCenter:
			sep[i] = ":" + strings.Repeat("-", width-2) + ":"
		default:
			sep[i] = strings.Repeat("-", width)
		}
	}
	if _, err := fmt.Fprintf(w, "| %s |\n", strings.Join(sep, " | ")); err != nil {
		return err
	}
	for _, row := range cells {
		if err := writeMarkdownRow(w, row, widths, aligns); err != nil {
			return err
		}
	}
	return nil
}

var markdownEscaper = strings.NewReplacer("|", `\|`, "\n", " ")

func escapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}

func writeMarkdownRow(w io.Writer, cells []string, widths []int, aligns []Alignment) error {
	padded := make([]string, len(widths))
	for i, width := range widths {
		padded[i] = alignCell(cells[i], width, aligns[i])
	}
	_, err := fmt.Fprintf(w, "| %s |\n", strings.Join(padded, " | "))
	return err
}
