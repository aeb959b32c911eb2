package tabular

import (
	"io"

	"gopkg.in/yaml.v3"

	"github.com/bjaus/tabular/seq"
)

// writeYAML collects every row; the encoder needs a complete document.
func writeYAML(w io.Writer, rows seq.Seq[Record], cfg *RenderConfig) error {
	records, err := seq.Collect(rows)
	if err != nil {
		return err
	}
	if records == nil {
		records = []Record{}
	}
	enc := yaml.NewEncoder(w)
	if cfg.Indent != "" {
		enc.SetIndent(len(cfg.Indent))
	}
	if err := enc.Encode(records); err != nil {
		return err
	}
	return enc.Close()
}
