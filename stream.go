package tabular

import (
	"io"

	"github.com/bjaus/tabular/seq"
)

// WriteIter renders records from a sequence as they arrive. Columns names
// the header and the column order of layout formats; it should match the
// records' columns.
//
// JSON, JSONL, CSV, TSV, HTML, Plain and GoTemplate write each record
// immediately. Table, Markdown and YAML need every record before writing
// and collect the sequence first.
func WriteIter(w io.Writer, f Format, columns []string, rows seq.Seq[Record], opts ...RenderOption) error {
	cfg := newRenderConfig(opts)
	if cfg.Columns != nil {
		sel := selectColumns(columns, []Option{Only(cfg.Columns...)})
		columns = sel.names
		rows = seq.MapFunc(rows, func(rec Record) Record {
			return rec.project(sel.names)
		})
	}
	return render(w, f, columns, rows, cfg)
}

// WriteChan renders records from a channel until it is closed.
// It is a thin wrapper around [WriteIter].
func WriteChan(w io.Writer, f Format, columns []string, ch <-chan Record, opts ...RenderOption) error {
	return WriteIter(w, f, columns, seq.FromChan(ch), opts...)
}
