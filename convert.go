package tabular

import (
	"github.com/bjaus/tabular/seq"
)

// Series is one named column.
type Series struct {
	Name   string
	Values seq.Seq[any]
}

// Option configures [ToRows] and [ToColumns].
type Option func(*convertConfig)

type convertConfig struct {
	only map[string]struct{}
}

// Only retains the named columns. Names that are not columns of the reader
// are ignored. Column order stays as the reader defines it.
func Only(names ...string) Option {
	return func(c *convertConfig) {
		if c.only == nil {
			c.only = make(map[string]struct{}, len(names))
		}
		for _, n := range names {
			c.only[n] = struct{}{}
		}
	}
}

// selection holds the retained column positions and names.
type selection struct {
	index []int
	names []string
}

func selectColumns(columns []string, opts []Option) selection {
	var cfg convertConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	var sel selection
	for i, c := range columns {
		if cfg.only != nil {
			if _, keep := cfg.only[c]; !keep {
				continue
			}
		}
		sel.index = append(sel.index, i)
		sel.names = append(sel.names, c)
	}
	return sel
}

func pick[T any](vs []T, index []int) []T {
	out := make([]T, len(index))
	for j, i := range index {
		out[j] = vs[i]
	}
	return out
}

// ToRows returns the reader's rows as records.
//
// A Rows reader is mapped and keeps its count and slicing. A Columns reader
// is zipped column-wise and has whatever count and slicing the zip can
// establish. Traversal errors, including [RowShapeError], surface from the
// returned sequence.
func ToRows(r *Reader, opts ...Option) seq.Seq[Record] {
	sel := selectColumns(r.Meta.Columns, opts)
	switch r.Kind {
	case Rows:
		width := len(r.Meta.Columns)
		return seq.Map(r.Rows(), func(vec []any) (Record, error) {
			if len(vec) != width {
				violate("row has %d values for %d columns", len(vec), width)
			}
			return Record{columns: sel.names, values: pick(vec, sel.index)}, nil
		})
	case Columns:
		series, err := columnSeries(r)
		if err != nil {
			return seq.Fail[Record](err)
		}
		return seq.Zip(pick(series, sel.index), func(vals []any) (Record, error) {
			return Record{columns: sel.names, values: vals}, nil
		})
	default:
		violate("unknown reader kind %s", r.Kind)
		return nil
	}
}

// ToColumns returns the reader's columns as named series.
//
// A Columns reader only has its outer list of series built; the series
// stay lazy. A Rows reader is traversed once, in full, and every retained
// column is materialized in memory.
func ToColumns(r *Reader, opts ...Option) ([]Series, error) {
	sel := selectColumns(r.Meta.Columns, opts)
	switch r.Kind {
	case Columns:
		series, err := columnSeries(r)
		if err != nil {
			return nil, err
		}
		out := make([]Series, len(sel.index))
		for j, i := range sel.index {
			out[j] = Series{Name: sel.names[j], Values: series[i]}
		}
		return out, nil
	case Rows:
		return materialize(r, sel)
	default:
		violate("unknown reader kind %s", r.Kind)
		return nil, nil
	}
}

func columnSeries(r *Reader) ([]seq.Seq[any], error) {
	series, err := seq.Collect(r.Columns())
	if err != nil {
		return nil, err
	}
	if len(series) != len(r.Meta.Columns) {
		violate("reader has %d series for %d columns", len(series), len(r.Meta.Columns))
	}
	return series, nil
}

func materialize(r *Reader, sel selection) ([]Series, error) {
	width := len(r.Meta.Columns)
	acc := make([][]any, len(sel.index))
	rows := 0
	err := r.Rows().Each(func(vec []any) bool {
		if len(vec) != width {
			violate("row has %d values for %d columns", len(vec), width)
		}
		for j, i := range sel.index {
			acc[j] = append(acc[j], vec[i])
		}
		rows++
		return true
	})
	if err != nil {
		return nil, err
	}
	Logger().Debug().Int(FieldRows, rows).Strs(FieldColumns, sel.names).Msg("materialized rows into columns")

	out := make([]Series, len(sel.index))
	for j := range sel.index {
		out[j] = Series{Name: sel.names[j], Values: seq.NewList(acc[j])}
	}
	return out, nil
}

// ColumnMap indexes series by name. A later series wins over an earlier one
// with the same name.
func ColumnMap(series []Series) map[string]seq.Seq[any] {
	m := make(map[string]seq.Seq[any], len(series))
	for _, s := range series {
		m[s.Name] = s.Values
	}
	return m
}

// FromSeries returns a Columns reader over series, in order.
func FromSeries(series []Series) *Reader {
	names := make([]string, len(series))
	values := make([]seq.Seq[any], len(series))
	for i, s := range series {
		names[i], values[i] = s.Name, s.Values
	}
	return columnReader(names, values)
}
