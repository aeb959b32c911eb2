package tabular

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// KeyValue is a single named value. A slice of KeyValue is both a
// pair-list row (name and cell) and a column-oriented table (name and
// series).
type KeyValue struct {
	Key   string
	Value any
}

// Record is one row keyed by column name, in column order.
type Record struct {
	columns []string
	values  []any
}

// NewRecord returns a record over the given columns and values. It panics
// with an [InvariantViolation] when their lengths differ.
func NewRecord(columns []string, values []any) Record {
	if len(columns) != len(values) {
		violate("record has %d columns but %d values", len(columns), len(values))
	}
	return Record{columns: columns, values: values}
}

// Columns returns a copy of the column names in order. Records read from the
// same source share their names.
func (r Record) Columns() []string { return slices.Clone(r.columns) }

// Values returns the cell values in column order.
func (r Record) Values() []any { return r.values }

// Len returns the number of columns.
func (r Record) Len() int { return len(r.columns) }

// Get returns the value of the named column.
func (r Record) Get(name string) (any, bool) {
	for i, c := range r.columns {
		if c == name {
			return r.values[i], true
		}
	}
	return nil, false
}

// project restricts the record to names, in that order. Names the record
// lacks get nil values.
func (r Record) project(names []string) Record {
	vals := make([]any, len(names))
	for i, n := range names {
		vals[i], _ = r.Get(n)
	}
	return Record{columns: names, values: vals}
}

// Map returns the record as a map. Column order is lost.
func (r Record) Map() map[string]any {
	m := make(map[string]any, len(r.columns))
	for i, c := range r.columns {
		m[c] = r.values[i]
	}
	return m
}

// Pairs returns the record as an ordered pair list.
func (r Record) Pairs() []KeyValue {
	out := make([]KeyValue, len(r.columns))
	for i, c := range r.columns {
		out[i] = KeyValue{Key: c, Value: r.values[i]}
	}
	return out
}

// Row returns the cell values formatted as strings.
func (r Record) Row() []string {
	out := make([]string, len(r.values))
	for i, v := range r.values {
		out[i] = cellString(v)
	}
	return out
}

// String formats the record as space-separated key=value pairs.
func (r Record) String() string {
	parts := make([]string, len(r.columns))
	for i, c := range r.columns {
		parts[i] = c + "=" + cellString(r.values[i])
	}
	return strings.Join(parts, " ")
}

// MarshalJSON encodes the record as a JSON object with keys in column order.
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, c := range r.columns {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := marshalJSON(c)
		if err != nil {
			return nil, err
		}
		val, err := marshalJSON(r.values[i])
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", c, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalYAML encodes the record as a YAML mapping with keys in column order.
func (r Record) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for i, c := range r.columns {
		var val yaml.Node
		if err := val.Encode(r.values[i]); err != nil {
			return nil, fmt.Errorf("column %q: %w", c, err)
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: c},
			&val,
		)
	}
	return node, nil
}

// marshalJSON encodes v without escaping HTML characters.
func marshalJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

func cellString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(x)
	}
}
