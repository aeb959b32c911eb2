package tabular

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/bjaus/tabular/seq"
)

// Format represents an output format.
type Format string

const (
	JSON     Format = "json"
	YAML     Format = "yaml"
	CSV      Format = "csv"
	Table    Format = "table"
	Markdown Format = "markdown"
	Plain    Format = "plain"
	TSV      Format = "tsv"
	JSONL    Format = "jsonl"
	HTML     Format = "html"
)

const goTemplatePrefix = "go-template="

var formats = []Format{JSON, YAML, CSV, Table, Markdown, Plain, TSV, JSONL, HTML}

// String returns the format name.
func (f Format) String() string { return string(f) }

// Formats returns all supported static format names.
// GoTemplate is not included because it is parameterized.
func Formats() []Format {
	out := make([]Format, len(formats))
	copy(out, formats)
	return out
}

// GoTemplate returns a Format that renders each row with a Go text/template.
// The template runs against the row as a map of column name to value, and
// every row is written on its own line.
func GoTemplate(tmpl string) Format {
	return Format(goTemplatePrefix + tmpl)
}

// ParseFormat parses a format string. Recognizes all static formats and
// go-template=<tmpl> strings.
func ParseFormat(s string) (Format, error) {
	if strings.HasPrefix(s, goTemplatePrefix) {
		return Format(s), nil
	}
	for _, f := range formats {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

// Write classifies data and renders its rows to w. Data is anything
// [Classify] accepts; a value that is not tabular yields an error wrapping
// [ErrNotTabular].
func Write(w io.Writer, f Format, data any, opts ...RenderOption) error {
	r, err := Read(data)
	if err != nil {
		return err
	}
	cfg := newRenderConfig(opts)
	var only []Option
	if cfg.Columns != nil {
		only = append(only, Only(cfg.Columns...))
	}
	columns := selectColumns(r.Meta.Columns, only).names
	return render(w, f, columns, ToRows(r, only...), cfg)
}

// Marshal renders data and returns the bytes.
func Marshal(f Format, data any, opts ...RenderOption) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, f, data, opts...); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func render(w io.Writer, f Format, columns []string, rows seq.Seq[Record], cfg *RenderConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	Logger().Debug().Str(FieldFormat, f.String()).Strs(FieldColumns, columns).Msg("rendering rows")
	switch f {
	case JSON:
		return writeJSON(w, rows, cfg)
	case YAML:
		return writeYAML(w, rows, cfg)
	case CSV:
		return writeCSV(w, columns, rows, cfg)
	case Table:
		return writeTable(w, columns, rows, cfg)
	case Markdown:
		return writeMarkdown(w, columns, rows, cfg)
	case Plain:
		return writePlain(w, rows)
	case TSV:
		return writeTSV(w, columns, rows, cfg)
	case JSONL:
		return writeJSONL(w, rows, cfg)
	case HTML:
		return writeHTML(w, columns, rows, cfg)
	default:
		if tmpl, ok := strings.CutPrefix(string(f), goTemplatePrefix); ok {
			return writeGoTemplate(w, tmpl, rows)
		}
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, f)
	}
}

// eachRecord calls fn for every record and stops at the first error,
// returning fn's error ahead of a traversal error.
func eachRecord(rows seq.Seq[Record], fn func(Record) error) error {
	var ferr error
	err := rows.Each(func(rec Record) bool {
		ferr = fn(rec)
		return ferr == nil
	})
	if ferr != nil {
		return ferr
	}
	return err
}
