package tabular

import (
	"io"

	"github.com/bjaus/tabular/seq"
)

func writeJSONL(w io.Writer, rows seq.Seq[Record], cfg *RenderConfig) error {
	enc := newJSONEncoder(w, cfg)
	return eachRecord(rows, func(rec Record) error {
		return enc.Encode(rec)
	})
}
