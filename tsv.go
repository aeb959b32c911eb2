package tabular

import (
	"fmt"
	"io"
	"strings"

	"github.com/bjaus/tabular/seq"
)

func writeTSV(w io.Writer, columns []string, rows seq.Seq[Record], cfg *RenderConfig) error {
	if !cfg.NoHeader && len(columns) > 0 {
		if err := writeTSVRow(w, columns); err != nil {
			return err
		}
	}
	return eachRecord(rows, func(rec Record) error {
		return writeTSVRow(w, rec.Row())
	})
}

var tsvEscaper = strings.NewReplacer("\t", `\t`, "\n", `\n`, "\r", `\r`, `\`, `\\`)

func writeTSVRow(w io.Writer, cells []string) error {
	escaped := make([]string, len(cells))
	for i, c := range cells {
		escaped[i] = tsvEscaper.Replace(c)
	}
	_, err := fmt.Fprintln(w, strings.Join(escaped, "\t"))
	return err
}
