package tabular

import (
	"encoding/csv"
	"io"

	"github.com/bjaus/tabular/seq"
)

func writeCSV(w io.Writer, columns []string, rows seq.Seq[Record], cfg *RenderConfig) error {
	cw := csv.NewWriter(w)
	cw.Comma = cfg.delimiter()
	if !cfg.NoHeader && len(columns) > 0 {
		if err := flushCSV(cw, columns); err != nil {
			return err
		}
	}
	return eachRecord(rows, func(rec Record) error {
		return flushCSV(cw, rec.Row())
	})
}

// flushCSV writes one record and flushes it, so streamed rows reach w as
// they arrive.
func flushCSV(cw *csv.Writer, cells []string) error {
	if err := cw.Write(cells); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}

func writeCSVRow(w io.Writer, cells []string) error {
	return flushCSV(csv.NewWriter(w), cells)
}
