package tabular_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bjaus/tabular"
	"github.com/bjaus/tabular/seq"
)

func sherlock() []map[string]any {
	return []map[string]any{
		{"id": 1, "name": "Sherlock"},
		{"id": 2, "name": "John"},
	}
}

func byColumn() []tabular.KeyValue {
	return []tabular.KeyValue{
		{Key: "id", Value: []int{1, 2}},
		{Key: "name", Value: []string{"Sherlock", "John"}},
	}
}

func read(t *testing.T, v any) *tabular.Reader {
	t.Helper()
	r, err := tabular.Read(v)
	require.NoError(t, err)
	return r
}

func recordMaps(t *testing.T, rows seq.Seq[tabular.Record]) []map[string]any {
	t.Helper()
	recs, err := seq.Collect(rows)
	require.NoError(t, err)
	out := make([]map[string]any, len(recs))
	for i, rec := range recs {
		out[i] = rec.Map()
	}
	return out
}

func seriesValues(t *testing.T, series []tabular.Series) map[string][]any {
	t.Helper()
	out := make(map[string][]any, len(series))
	for _, s := range series {
		vals, err := seq.Collect(s.Values)
		require.NoError(t, err)
		out[s.Name] = vals
	}
	return out
}

func TestToRows(t *testing.T) {
	t.Parallel()
	want := []map[string]any{
		{"id": 1, "name": "Sherlock"},
		{"id": 2, "name": "John"},
	}
	tests := map[string]any{
		"rows":    sherlock(),
		"columns": byColumn(),
	}
	for name, input := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			r := read(t, input)
			rows := tabular.ToRows(r)

			n, err := seq.Count(rows)
			require.NoError(t, err)
			assert.Equal(t, 2, n)
			assert.Equal(t, want, recordMaps(t, rows))

			recs, err := seq.Collect(rows)
			require.NoError(t, err)
			for _, rec := range recs {
				assert.Equal(t, []string{"id", "name"}, rec.Columns())
			}
		})
	}
}

func TestToRowsOnly(t *testing.T) {
	t.Parallel()
	tests := map[string]any{
		"rows":    sherlock(),
		"columns": byColumn(),
	}
	for name, input := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			r := read(t, input)
			got := recordMaps(t, tabular.ToRows(r, tabular.Only("name", "unknown")))
			assert.Equal(t, []map[string]any{{"name": "Sherlock"}, {"name": "John"}}, got)
		})
	}
}

func TestToRowsOnlyNothing(t *testing.T) {
	t.Parallel()
	rows := tabular.ToRows(read(t, byColumn()), tabular.Only("unknown"))
	got, err := seq.Collect(rows)
	require.NoError(t, err)
	assert.Empty(t, got)

	rows = tabular.ToRows(read(t, sherlock()), tabular.Only("unknown"))
	got, err = seq.Collect(rows)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Zero(t, got[0].Len())
}

func TestToRowsSlicesWithoutTraversal(t *testing.T) {
	t.Parallel()
	r := read(t, []tabular.KeyValue{
		{Key: "n", Value: seq.NewRange(0, 1000, 1)},
		{Key: "sq", Value: seq.NewRange(0, 3000, 3)},
	})
	got, err := seq.Slice(tabular.ToRows(r), 500, 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, []any{500, 1500}, got[0].Values())
	assert.Equal(t, []any{501, 1503}, got[1].Values())
}

func TestToRowsLazyShapeError(t *testing.T) {
	t.Parallel()
	r := read(t, []map[string]any{
		{"x": 1, "y": 2},
		{"x": 3, "y": 4},
		{"x": 5},
	})
	var seen []any
	err := tabular.ToRows(r).Each(func(rec tabular.Record) bool {
		v, _ := rec.Get("x")
		seen = append(seen, v)
		return true
	})
	var shape *tabular.RowShapeError
	require.ErrorAs(t, err, &shape)
	assert.Equal(t, []string{"y"}, shape.Columns)
	assert.Equal(t, []any{1, 3}, seen)
}

func TestToColumns(t *testing.T) {
	t.Parallel()
	want := map[string][]any{
		"id":   {1, 2},
		"name": {"Sherlock", "John"},
	}
	tests := map[string]any{
		"rows":    sherlock(),
		"columns": byColumn(),
	}
	for name, input := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			series, err := tabular.ToColumns(read(t, input))
			require.NoError(t, err)
			require.Len(t, series, 2)
			assert.Equal(t, "id", series[0].Name)
			assert.Equal(t, "name", series[1].Name)
			assert.Equal(t, want, seriesValues(t, series))

			n, err := seq.Count(series[0].Values)
			require.NoError(t, err)
			assert.Equal(t, 2, n)
		})
	}
}

func TestToColumnsOnly(t *testing.T) {
	t.Parallel()
	series, err := tabular.ToColumns(read(t, sherlock()), tabular.Only("name"))
	require.NoError(t, err)
	assert.Equal(t, map[string][]any{"name": {"Sherlock", "John"}}, seriesValues(t, series))
}

func TestToColumnsKeepsSeriesLazy(t *testing.T) {
	t.Parallel()
	pulled := 0
	series := seq.Func[any](func(yield func(any) bool) error {
		for i := range 3 {
			pulled++
			if !yield(i) {
				return nil
			}
		}
		return nil
	})
	r := read(t, []tabular.KeyValue{{Key: "n", Value: series}})

	out, err := tabular.ToColumns(r)
	require.NoError(t, err)
	assert.Zero(t, pulled)

	vals, err := seq.Collect(out[0].Values)
	require.NoError(t, err)
	assert.Equal(t, []any{0, 1, 2}, vals)
}

func TestToColumnsIgnoresInflatedCount(t *testing.T) {
	t.Parallel()
	r := tabular.NewRowReader([]string{"n"}, seq.ListOf([]any{1}, []any{2})).WithCount(math.MaxInt)
	series, err := tabular.ToColumns(r)
	require.NoError(t, err)
	assert.Equal(t, map[string][]any{"n": {1, 2}}, seriesValues(t, series))
}

func TestToColumnsShapeError(t *testing.T) {
	t.Parallel()
	r := read(t, []map[string]any{{"x": 1}, {"x": 2, "y": 3}})
	_, err := tabular.ToColumns(r)
	var shape *tabular.RowShapeError
	require.ErrorAs(t, err, &shape)
	assert.Equal(t, tabular.MissingReferenceColumns, shape.Kind)
	assert.Equal(t, []string{"y"}, shape.Columns)
}

func TestRoundTrip(t *testing.T) {
	t.Parallel()
	series, err := tabular.ToColumns(read(t, sherlock()))
	require.NoError(t, err)

	back := tabular.FromSeries(series)
	assert.Equal(t, tabular.Columns, back.Kind)
	n, known := back.Meta.RowCount()
	assert.True(t, known)
	assert.Equal(t, 2, n)

	assert.Equal(t, []map[string]any{
		{"id": 1, "name": "Sherlock"},
		{"id": 2, "name": "John"},
	}, recordMaps(t, tabular.ToRows(back)))
}

func TestColumnMap(t *testing.T) {
	t.Parallel()
	series, err := tabular.ToColumns(read(t, byColumn()))
	require.NoError(t, err)

	m := tabular.ColumnMap(series)
	require.Len(t, m, 2)
	vals, err := seq.Collect(m["name"])
	require.NoError(t, err)
	assert.Equal(t, []any{"Sherlock", "John"}, vals)
}

func TestZipStopsAtShortestSeries(t *testing.T) {
	t.Parallel()
	r := read(t, map[string]any{"a": []int{1, 2, 3}, "b": []int{4, 5}})
	n, known := r.Meta.RowCount()
	assert.True(t, known)
	assert.Equal(t, 2, n)
	assert.Len(t, recordMaps(t, tabular.ToRows(r)), 2)
}

func TestInvariantViolations(t *testing.T) {
	t.Parallel()
	tests := map[string]func(){
		"short row vector": func() {
			r := tabular.NewRowReader([]string{"a", "b"}, seq.ListOf([]any{1}))
			_, _ = seq.Collect(tabular.ToRows(r))
		},
		"short row vector materialized": func() {
			r := tabular.NewRowReader([]string{"a", "b"}, seq.ListOf([]any{1}))
			_, _ = tabular.ToColumns(r)
		},
		"series count": func() {
			r := tabular.NewColumnReader([]string{"a", "b"}, []seq.Seq[any]{seq.ListOf[any](1)})
			_, _ = tabular.ToColumns(r)
		},
		"rows of columns reader": func() {
			r := tabular.NewColumnReader([]string{"a"}, []seq.Seq[any]{seq.ListOf[any](1)})
			r.Rows()
		},
		"columns of rows reader": func() {
			r := tabular.NewRowReader([]string{"a"}, seq.ListOf([]any{1}))
			r.Columns()
		},
		"record length": func() {
			tabular.NewRecord([]string{"a"}, nil)
		},
	}
	for name, fn := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			defer func() {
				rec := recover()
				require.NotNil(t, rec)
				v, ok := rec.(*tabular.InvariantViolation)
				require.True(t, ok, "panic value %T", rec)
				assert.Contains(t, v.Error(), "invariant violated")
			}()
			fn()
		})
	}
}
