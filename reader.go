package tabular

import (
	"fmt"
	"maps"

	"github.com/bjaus/tabular/seq"
)

// Kind tells whether a [Reader] yields rows or columns.
type Kind int

const (
	// Rows readers yield one value vector per row.
	Rows Kind = iota + 1
	// Columns readers yield one series per column.
	Columns
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case Rows:
		return "rows"
	case Columns:
		return "columns"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ExtensionKey addresses a metadata extension entry.
type ExtensionKey struct {
	Namespace string
	Key       string
}

// Metadata describes the data behind a [Reader].
type Metadata struct {
	// Columns is the ordered list of column names.
	Columns []string

	// Count is the exact number of rows when HasCount is set. It is
	// advisory: consumers must not rely on it being present.
	Count    int
	HasCount bool

	// Extension holds source-specific metadata, keyed by namespace.
	Extension map[ExtensionKey]any
}

// RowCount returns the row count when it is known.
func (m Metadata) RowCount() (int, bool) { return m.Count, m.HasCount }

// Reader is a normalized, immutable view of tabular data: a kind, metadata,
// and the underlying sequence of row vectors or column series. It owns no
// resources; it only refers to the data it was built from.
type Reader struct {
	Kind Kind
	Meta Metadata

	rows seq.Seq[[]any]
	cols seq.Seq[seq.Seq[any]]
}

// Tabular is implemented by values that know their own tabular shape. The
// classifier returns their Reader as-is instead of inspecting them.
type Tabular interface {
	TabularReader() *Reader
}

// NewRowReader returns a Rows reader. Every vector yielded by rows must have
// one value per column, in column order.
func NewRowReader(columns []string, rows seq.Seq[[]any]) *Reader {
	return &Reader{Kind: Rows, Meta: Metadata{Columns: columns}, rows: rows}
}

// NewColumnReader returns a Columns reader with one series per column, in
// column order.
func NewColumnReader(columns []string, series []seq.Seq[any]) *Reader {
	return &Reader{Kind: Columns, Meta: Metadata{Columns: columns}, cols: seq.NewList(series)}
}

// Rows returns the row vectors. It panics with an [InvariantViolation] on a
// Columns reader.
func (r *Reader) Rows() seq.Seq[[]any] {
	if r.Kind != Rows || r.rows == nil {
		violate("rows requested from a %s reader", r.Kind)
	}
	return r.rows
}

// Columns returns the column series. It panics with an [InvariantViolation]
// on a Rows reader.
func (r *Reader) Columns() seq.Seq[seq.Seq[any]] {
	if r.Kind != Columns || r.cols == nil {
		violate("columns requested from a %s reader", r.Kind)
	}
	return r.cols
}

// WithCount returns a copy of r with a known row count.
func (r *Reader) WithCount(n int) *Reader {
	c := *r
	c.Meta.Count, c.Meta.HasCount = n, true
	return &c
}

// WithExtension returns a copy of r carrying an extension entry.
func (r *Reader) WithExtension(namespace, key string, value any) *Reader {
	c := *r
	c.Meta.Extension = maps.Clone(r.Meta.Extension)
	if c.Meta.Extension == nil {
		c.Meta.Extension = make(map[ExtensionKey]any)
	}
	c.Meta.Extension[ExtensionKey{Namespace: namespace, Key: key}] = value
	return &c
}

// Extension returns an extension entry.
func (r *Reader) Extension(namespace, key string) (any, bool) {
	v, ok := r.Meta.Extension[ExtensionKey{Namespace: namespace, Key: key}]
	return v, ok
}
