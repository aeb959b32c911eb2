package arrowtab

import (
	"errors"
	"fmt"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/bjaus/tabular"
	"github.com/bjaus/tabular/seq"
)

// Namespace holds the reader extension entries set by [FromRecord].
const Namespace = "arrow"

// SchemaKey is the extension key of the source schema.
const SchemaKey = "schema"

// ErrUnsupportedType is returned when a value has no Arrow counterpart.
var ErrUnsupportedType = errors.New("unsupported arrow type")

// Record adapts an Arrow record to [tabular.Tabular].
type Record struct {
	arrow.Record
}

// TabularReader implements [tabular.Tabular].
func (r Record) TabularReader() *tabular.Reader { return FromRecord(r.Record) }

// FromRecord returns a column-oriented reader over rec. The reader refers to
// rec's arrays without retaining them; rec must outlive it.
func FromRecord(rec arrow.Record) *tabular.Reader {
	schema := rec.Schema()
	names := make([]string, rec.NumCols())
	series := make([]seq.Seq[any], rec.NumCols())
	for i, col := range rec.Columns() {
		names[i] = schema.Field(i).Name
		series[i] = &column{arr: col}
	}
	return tabular.NewColumnReader(names, series).
		WithCount(int(rec.NumRows())).
		WithExtension(Namespace, SchemaKey, schema)
}

// column is one Arrow array as a sequence of Go values.
type column struct {
	arr arrow.Array
}

func (c *column) Len() int     { return c.arr.Len() }
func (c *column) At(i int) any { return value(c.arr, i) }

func (c *column) Each(yield func(any) bool) error {
	for i := range c.arr.Len() {
		if !yield(value(c.arr, i)) {
			return nil
		}
	}
	return nil
}

func (c *column) Count() (int, bool) { return c.arr.Len(), true }

func (c *column) Slice() (seq.Slicing[any], bool) {
	return seq.Slicing[any]{
		Size: c.arr.Len(),
		Range: func(offset, length int) ([]any, error) {
			out := make([]any, length)
			for i := range out {
				out[i] = value(c.arr, offset+i)
			}
			return out, nil
		},
	}, true
}

// value returns the Go value at position i. Nulls are nil.
func value(arr arrow.Array, i int) any {
	if arr.IsNull(i) {
		return nil
	}
	switch a := arr.(type) {
	case *array.Boolean:
		return a.Value(i)
	case *array.Int8:
		return a.Value(i)
	case *array.Int16:
		return a.Value(i)
	case *array.Int32:
		return a.Value(i)
	case *array.Int64:
		return a.Value(i)
	case *array.Uint8:
		return a.Value(i)
	case *array.Uint16:
		return a.Value(i)
	case *array.Uint32:
		return a.Value(i)
	case *array.Uint64:
		return a.Value(i)
	case *array.Float32:
		return a.Value(i)
	case *array.Float64:
		return a.Value(i)
	case *array.String:
		return a.Value(i)
	case *array.Binary:
		return a.Value(i)
	default:
		return arr.GetOneForMarshal(i)
	}
}

// ToRecord builds a record from r's rows. The caller owns the record and
// must release it.
func ToRecord(mem memory.Allocator, r *tabular.Reader) (arrow.Record, error) {
	columns := r.Meta.Columns
	values := make([][]any, len(columns))
	rows := 0
	err := tabular.ToRows(r).Each(func(rec tabular.Record) bool {
		for j, v := range rec.Values() {
			values[j] = append(values[j], v)
		}
		rows++
		return true
	})
	if err != nil {
		return nil, err
	}

	var source *arrow.Schema
	if s, ok := r.Extension(Namespace, SchemaKey); ok {
		source, _ = s.(*arrow.Schema)
	}

	fields := make([]arrow.Field, len(columns))
	arrays := make([]arrow.Array, 0, len(columns))
	defer func() {
		for _, a := range arrays {
			a.Release()
		}
	}()
	for j, name := range columns {
		dt, err := columnType(source, name, values[j])
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", name, err)
		}
		arr, err := build(mem, dt, values[j])
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", name, err)
		}
		arrays = append(arrays, arr)
		fields[j] = arrow.Field{Name: name, Type: dt, Nullable: true}
	}
	tabular.Logger().Debug().Int(tabular.FieldRows, rows).Strs(tabular.FieldColumns, columns).Msg("built arrow record")
	return array.NewRecord(arrow.NewSchema(fields, nil), arrays, int64(rows)), nil
}

// columnType prefers the source schema's type when it is one ToRecord can
// build.
func columnType(source *arrow.Schema, name string, values []any) (arrow.DataType, error) {
	if source != nil {
		if idx := source.FieldIndices(name); len(idx) == 1 {
			if dt := source.Field(idx[0]).Type; buildable(dt) {
				return dt, nil
			}
		}
	}
	for _, v := range values {
		if v != nil {
			return inferType(v)
		}
	}
	return arrow.Null, nil
}

func inferType(v any) (arrow.DataType, error) {
	switch v.(type) {
	case bool:
		return arrow.FixedWidthTypes.Boolean, nil
	case int, int64:
		return arrow.PrimitiveTypes.Int64, nil
	case int8:
		return arrow.PrimitiveTypes.Int8, nil
	case int16:
		return arrow.PrimitiveTypes.Int16, nil
	case int32:
		return arrow.PrimitiveTypes.Int32, nil
	case uint, uint64:
		return arrow.PrimitiveTypes.Uint64, nil
	case uint8:
		return arrow.PrimitiveTypes.Uint8, nil
	case uint16:
		return arrow.PrimitiveTypes.Uint16, nil
	case uint32:
		return arrow.PrimitiveTypes.Uint32, nil
	case float32:
		return arrow.PrimitiveTypes.Float32, nil
	case float64:
		return arrow.PrimitiveTypes.Float64, nil
	case string:
		return arrow.BinaryTypes.String, nil
	case []byte:
		return arrow.BinaryTypes.Binary, nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedType, v)
	}
}

func buildable(dt arrow.DataType) bool {
	switch dt.ID() {
	case arrow.NULL, arrow.BOOL,
		arrow.INT8, arrow.INT16, arrow.INT32, arrow.INT64,
		arrow.UINT8, arrow.UINT16, arrow.UINT32, arrow.UINT64,
		arrow.FLOAT32, arrow.FLOAT64, arrow.STRING, arrow.BINARY:
		return true
	}
	return false
}

func build(mem memory.Allocator, dt arrow.DataType, values []any) (arrow.Array, error) {
	b := array.NewBuilder(mem, dt)
	defer b.Release()
	b.Reserve(len(values))
	for _, v := range values {
		if v == nil {
			b.AppendNull()
			continue
		}
		if err := appendValue(b, v); err != nil {
			return nil, err
		}
	}
	return b.NewArray(), nil
}

func appendValue(b array.Builder, v any) error {
	switch b := b.(type) {
	case *array.BooleanBuilder:
		return appendAs(b.Append, v)
	case *array.Int8Builder:
		return appendAs(b.Append, v)
	case *array.Int16Builder:
		return appendAs(b.Append, v)
	case *array.Int32Builder:
		return appendAs(b.Append, v)
	case *array.Int64Builder:
		if n, ok := v.(int); ok {
			v = int64(n)
		}
		return appendAs(b.Append, v)
	case *array.Uint8Builder:
		return appendAs(b.Append, v)
	case *array.Uint16Builder:
		return appendAs(b.Append, v)
	case *array.Uint32Builder:
		return appendAs(b.Append, v)
	case *array.Uint64Builder:
		if n, ok := v.(uint); ok {
			v = uint64(n)
		}
		return appendAs(b.Append, v)
	case *array.Float32Builder:
		return appendAs(b.Append, v)
	case *array.Float64Builder:
		return appendAs(b.Append, v)
	case *array.StringBuilder:
		return appendAs(b.Append, v)
	case *array.BinaryBuilder:
		return appendAs(b.Append, v)
	default:
		return fmt.Errorf("%w: %T in a %s column", ErrUnsupportedType, v, b.Type())
	}
}

func appendAs[T any](add func(T), v any) error {
	x, ok := v.(T)
	if !ok {
		var zero T
		return fmt.Errorf("%w: %T in a column of %T", ErrUnsupportedType, v, zero)
	}
	add(x)
	return nil
}
