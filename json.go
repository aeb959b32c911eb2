package tabular

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/bjaus/tabular/seq"
)

// writeJSON streams rows as the elements of one JSON array.
func writeJSON(w io.Writer, rows seq.Seq[Record], cfg *RenderConfig) error {
	if _, err := io.WriteString(w, "["); err != nil {
		return err
	}
	var buf bytes.Buffer
	enc := newJSONEncoder(&buf, cfg)
	first := true
	err := eachRecord(rows, func(rec Record) error {
		buf.Reset()
		if !first {
			buf.WriteByte(',')
		}
		first = false
		if err := enc.Encode(rec); err != nil {
			return err
		}
		_, err := w.Write(bytes.TrimSuffix(buf.Bytes(), []byte("\n")))
		return err
	})
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, "]\n")
	return err
}

func newJSONEncoder(w io.Writer, cfg *RenderConfig) *json.Encoder {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if cfg.Indent != "" {
		enc.SetIndent("", cfg.Indent)
	}
	return enc
}
