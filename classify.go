package tabular

import (
	"fmt"
	"maps"
	"reflect"
	"slices"

	"github.com/bjaus/tabular/seq"
)

// Classify inspects v once and returns a [Reader] over it, or false when v
// is not tabular. It never traverses the data behind the Reader; at most it
// reads the head row of a row-oriented sequence.
//
// Rules are tried in order and the first match wins:
//
//  1. A Reader, or a value implementing [Tabular], is returned as-is.
//  2. A non-empty slice of [KeyValue] whose every value is a sequence is
//     column-oriented, with columns in encounter order.
//  3. A map with string keys whose every value is a sequence is
//     column-oriented, with columns in sorted order.
//  4. Any other sequence is row-oriented. A map head row gives sorted
//     columns; a pair-list head row gives its keys in order. An empty
//     sequence gives a Rows reader with no columns. Any other head row
//     means the value is not tabular.
//
// A sequence is anything [seq.Of] recognizes.
func Classify(v any) (*Reader, bool) {
	r, err := classify(v)
	return r, err == nil
}

// Read is like [Classify] but reports why v is not tabular. The error wraps
// [ErrNotTabular], or the error returned while reading the head row.
func Read(v any) (*Reader, error) {
	return classify(v)
}

func classify(v any) (*Reader, error) {
	r, err := dispatch(v)
	if err != nil {
		Logger().Debug().Err(err).Str(FieldType, fmt.Sprintf("%T", v)).Msg("value is not tabular")
		return nil, err
	}
	ev := Logger().Debug().Str(FieldKind, r.Kind.String()).Strs(FieldColumns, r.Meta.Columns)
	if n, ok := r.Meta.RowCount(); ok {
		ev = ev.Int(FieldCount, n)
	}
	ev.Msg("classified tabular value")
	return r, nil
}

func dispatch(v any) (*Reader, error) {
	switch x := v.(type) {
	case *Reader:
		if x != nil {
			return x, nil
		}
	case Reader:
		return &x, nil
	case Tabular:
		if r := x.TabularReader(); r != nil {
			return r, nil
		}
	}
	if r, ok := columnPairs(v); ok {
		return r, nil
	}
	if r, ok := columnMap(v); ok {
		return r, nil
	}
	if s, ok := seq.Of(v); ok {
		return rowsOf(s, v)
	}
	return nil, notTabular(v)
}

func notTabular(v any) error {
	return fmt.Errorf("%w, got: %v", ErrNotTabular, v)
}

// columnPairs matches a non-empty pair list of (name, series).
func columnPairs(v any) (*Reader, bool) {
	var pairs []KeyValue
	switch x := v.(type) {
	case []KeyValue:
		pairs = x
	default:
		s, ok := seq.Of(v)
		if !ok {
			return nil, false
		}
		ix, ok := s.(seq.Indexed[any])
		if !ok {
			return nil, false
		}
		pairs = make([]KeyValue, ix.Len())
		for i := range pairs {
			kv, ok := ix.At(i).(KeyValue)
			if !ok {
				return nil, false
			}
			pairs[i] = kv
		}
	}
	if len(pairs) == 0 {
		return nil, false
	}
	names := make([]string, len(pairs))
	series := make([]seq.Seq[any], len(pairs))
	for i, kv := range pairs {
		s, ok := seq.Of(kv.Value)
		if !ok {
			return nil, false
		}
		names[i], series[i] = kv.Key, s
	}
	return columnReader(names, series), true
}

// columnMap matches a map of name to series. An empty map is an empty
// sequence of pairs and classifies as an empty Rows reader.
func columnMap(v any) (*Reader, bool) {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil, false
	}
	if rv.Len() == 0 {
		return emptyRows(), true
	}
	byName := make(map[string]seq.Seq[any], rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		s, ok := seq.Of(iter.Value().Interface())
		if !ok {
			return nil, false
		}
		byName[iter.Key().String()] = s
	}
	names := sortedKeys(byName)
	series := make([]seq.Seq[any], len(names))
	for i, name := range names {
		series[i] = byName[name]
	}
	return columnReader(names, series), true
}

func columnReader(names []string, series []seq.Seq[any]) *Reader {
	r := NewColumnReader(names, series)
	n := -1
	for _, s := range series {
		c, ok := s.(seq.Counter)
		if !ok {
			return r
		}
		m, ok := c.Count()
		if !ok {
			return r
		}
		if n < 0 || m < n {
			n = m
		}
	}
	if n >= 0 {
		r.Meta.Count, r.Meta.HasCount = n, true
	}
	return r
}

// rowsOf classifies a sequence of rows by its head row.
func rowsOf(s seq.Seq[any], v any) (*Reader, error) {
	head, ok, err := seq.First(s)
	if err != nil {
		return nil, fmt.Errorf("read head row: %w", err)
	}
	if !ok {
		return emptyRows(), nil
	}
	columns, ok := headColumns(head)
	if !ok {
		return nil, notTabular(v)
	}
	if seq.IsSinglePass(s) {
		s = seq.Unread(head, s)
	}
	body := seq.Map(s, func(row any) ([]any, error) {
		return convertRow(columns, row)
	})
	r := NewRowReader(columns, body)
	if c, counted := s.(seq.Counter); counted {
		if n, known := c.Count(); known {
			r.Meta.Count, r.Meta.HasCount = n, true
		}
	}
	return r, nil
}

func emptyRows() *Reader {
	r := NewRowReader([]string{}, seq.Empty[[]any]())
	r.Meta.Count, r.Meta.HasCount = 0, true
	return r
}

// headColumns derives the column list from the head row.
func headColumns(head any) ([]string, bool) {
	if pairs, ok := asPairs(head); ok {
		columns := make([]string, len(pairs))
		for i, kv := range pairs {
			columns[i] = kv.Key
		}
		return columns, true
	}
	if m, ok := asMap(head); ok {
		return sortedKeys(m), true
	}
	return nil, false
}

// asPairs recognizes a pair-list row.
func asPairs(row any) ([]KeyValue, bool) {
	switch x := row.(type) {
	case []KeyValue:
		return x, true
	case Record:
		return x.Pairs(), true
	case []any:
		if len(x) == 0 {
			return nil, false
		}
		pairs := make([]KeyValue, len(x))
		for i, e := range x {
			kv, ok := e.(KeyValue)
			if !ok {
				return nil, false
			}
			pairs[i] = kv
		}
		return pairs, true
	}
	return nil, false
}

// asMap recognizes a map row with string-kinded keys.
func asMap(row any) (map[string]any, bool) {
	if m, ok := row.(map[string]any); ok {
		return m, true
	}
	rv := reflect.ValueOf(row)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil, false
	}
	m := make(map[string]any, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		m[iter.Key().String()] = iter.Value().Interface()
	}
	return m, true
}

func sortedKeys[V any](m map[string]V) []string {
	return slices.Sorted(maps.Keys(m))
}
