package seq_test

import (
	"errors"
	"iter"
	"testing"

	"github.com/bjaus/tabular/seq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errBoom = errors.New("boom")

// stream is a sequence without any optional capability.
func stream[T any](items ...T) seq.Seq[T] {
	return seq.Func[T](func(yield func(T) bool) error {
		for _, v := range items {
			if !yield(v) {
				return nil
			}
		}
		return nil
	})
}

// resource counts how often its traversal was opened and closed.
type resource struct {
	opened, closed int
	failAt         int
}

func (r *resource) seq(n int) seq.Seq[int] {
	return seq.Func[int](func(yield func(int) bool) error {
		r.opened++
		defer func() { r.closed++ }()
		for i := range n {
			if r.failAt > 0 && i == r.failAt {
				return errBoom
			}
			if !yield(i + 1) {
				return nil
			}
		}
		return nil
	})
}

func TestListCapabilities(t *testing.T) {
	t.Parallel()
	l := seq.ListOf(1, 2, 3)

	n, ok := l.Count()
	assert.True(t, ok)
	assert.Equal(t, 3, n)

	found, ok := l.Contains(2)
	assert.True(t, ok)
	assert.True(t, found)

	found, ok = l.Contains(9)
	assert.True(t, ok)
	assert.False(t, found)

	sc, ok := l.Slice()
	require.True(t, ok)
	assert.Equal(t, 3, sc.Size)
	require.NotNil(t, sc.Range)
	got, err := sc.Range(1, 2)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 3}, got)
}

func TestRange(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		r    seq.Range
		want []int
	}{
		"ascending":  {r: seq.NewRange(0, 5, 1), want: []int{0, 1, 2, 3, 4}},
		"stepped":    {r: seq.NewRange(0, 7, 3), want: []int{0, 3, 6}},
		"descending": {r: seq.NewRange(5, 0, -2), want: []int{5, 3, 1}},
		"empty":      {r: seq.NewRange(3, 3, 1), want: nil},
		"backwards":  {r: seq.NewRange(5, 0, 1), want: nil},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			got, err := seq.Collect[int](tt.r)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			n, ok := tt.r.Count()
			assert.True(t, ok)
			assert.Equal(t, len(tt.want), n)
		})
	}
}

func TestRangeContains(t *testing.T) {
	t.Parallel()
	r := seq.NewRange(1, 10, 3) // 1, 4, 7
	for v, want := range map[int]bool{1: true, 4: true, 7: true, 10: false, 2: false, -2: false} {
		found, ok := r.Contains(v)
		assert.True(t, ok)
		assert.Equal(t, want, found, "value %d", v)
	}
}

func TestRangeZeroStepPanics(t *testing.T) {
	t.Parallel()
	assert.Panics(t, func() { seq.NewRange(0, 1, 0) })
}

func TestCountFallback(t *testing.T) {
	t.Parallel()
	n, err := seq.Count(stream("a", "b", "c"))
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestContainsFallback(t *testing.T) {
	t.Parallel()
	s := stream([]int{1}, []int{2, 3})
	found, err := seq.Contains(s, []int{2, 3})
	require.NoError(t, err)
	assert.True(t, found)

	found, err = seq.Contains(s, []int{4})
	require.NoError(t, err)
	assert.False(t, found)
}

func TestSliceAgreesWithLinearWalk(t *testing.T) {
	t.Parallel()
	items := []int{10, 11, 12, 13, 14, 15, 16}
	sliced := seq.NewList(items)
	linear := stream(items...)
	strided := seq.NewRange(10, 17, 1)
	for offset := 0; offset <= len(items)+1; offset++ {
		for length := 0; length <= len(items)+1; length++ {
			for step := 1; step <= 3; step++ {
				want, err := seq.SliceStep(linear, offset, length, step)
				require.NoError(t, err)
				got, err := seq.SliceStep[int](sliced, offset, length, step)
				require.NoError(t, err)
				assert.Equal(t, want, emptyAsNil(got), "list offset=%d length=%d step=%d", offset, length, step)
				got, err = seq.SliceStep[int](strided, offset, length, step)
				require.NoError(t, err)
				assert.Equal(t, want, emptyAsNil(got), "range offset=%d length=%d step=%d", offset, length, step)
			}
		}
	}
}

func TestSliceInvalid(t *testing.T) {
	t.Parallel()
	_, err := seq.Slice[int](seq.ListOf(1), -1, 1)
	assert.ErrorIs(t, err, seq.ErrInvalidSlice)
	_, err = seq.SliceStep[int](seq.ListOf(1), 0, 1, 0)
	assert.ErrorIs(t, err, seq.ErrInvalidSlice)
}

func TestFirst(t *testing.T) {
	t.Parallel()
	res := &resource{}
	v, ok, err := seq.First(res.seq(3))
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 1, v)
	assert.Equal(t, 1, res.closed)

	_, ok, err = seq.First(seq.Empty[int]())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAllYieldsTraversalError(t *testing.T) {
	t.Parallel()
	res := &resource{failAt: 2}
	var got []int
	var gotErr error
	for v, err := range seq.All(res.seq(5)) {
		if err != nil {
			gotErr = err
			break
		}
		got = append(got, v)
	}
	assert.Equal(t, []int{1, 2}, got)
	assert.ErrorIs(t, gotErr, errBoom)
}

func TestFromIterAndChan(t *testing.T) {
	t.Parallel()
	var it iter.Seq[string] = func(yield func(string) bool) {
		for _, s := range []string{"a", "b", "c"} {
			if !yield(s) {
				return
			}
		}
	}
	got, err := seq.Slice(seq.FromIter(it), 1, 5)
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "c"}, got)

	ch := make(chan int, 3)
	ch <- 1
	ch <- 2
	ch <- 3
	close(ch)
	all, err := seq.Collect(seq.FromChan(ch))
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, all)
}

func TestSinglePass(t *testing.T) {
	t.Parallel()
	ch := make(chan int)
	close(ch)
	tests := map[string]struct {
		in   seq.Seq[any]
		want bool
	}{
		"channel":        {in: seq.FromChan(ch).(interface{ Any() seq.Seq[any] }).Any(), want: true},
		"once":           {in: seq.Once(stream[any](1)), want: true},
		"mapped channel": {in: seq.Map(seq.FromChan(ch), func(v int) (any, error) { return v, nil }), want: true},
		"list":           {in: seq.ListOf[any](1, 2)},
		"func":           {in: stream[any](1)},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, seq.IsSinglePass(tt.in))
		})
	}
}

func TestUnread(t *testing.T) {
	t.Parallel()
	ch := make(chan int, 3)
	ch <- 1
	ch <- 2
	ch <- 3
	close(ch)
	src := seq.FromChan(ch)

	head, ok, err := seq.First(src)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 1, head)

	rest := seq.Unread(head, src)
	assert.True(t, seq.IsSinglePass(rest))
	got, err := seq.Collect(rest)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, got)

	again, err := seq.Collect(rest)
	require.NoError(t, err)
	assert.Empty(t, again)
}

func TestUnreadStopsAtHead(t *testing.T) {
	t.Parallel()
	rest := seq.Unread(0, stream(1, 2))
	got, err := seq.Slice(rest, 0, 1)
	require.NoError(t, err)
	assert.Equal(t, []int{0}, got)

	got, err = seq.Collect(rest)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, got)
}

func TestFail(t *testing.T) {
	t.Parallel()
	_, err := seq.Collect(seq.Fail[int](errBoom))
	assert.ErrorIs(t, err, errBoom)
}

func TestOf(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		in   any
		want []any
		ok   bool
	}{
		"any slice":   {in: []any{1, "a"}, want: []any{1, "a"}, ok: true},
		"typed slice": {in: []string{"a", "b"}, want: []any{"a", "b"}, ok: true},
		"array":       {in: [2]int{4, 5}, want: []any{4, 5}, ok: true},
		"list":        {in: seq.ListOf(1.5), want: []any{1.5}, ok: true},
		"range":       {in: seq.NewRange(0, 2, 1), want: []any{0, 1}, ok: true},
		"mapped": {
			in:   seq.MapFunc[int](seq.ListOf(1, 2), func(v int) int { return v * 10 }),
			want: []any{10, 20},
			ok:   true,
		},
		"scalar": {in: 42, ok: false},
		"string": {in: "abc", ok: false},
		"map":    {in: map[string]int{"a": 1}, ok: false},
		"nil":    {in: nil, ok: false},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			s, ok := seq.Of(tt.in)
			require.Equal(t, tt.ok, ok)
			if !ok {
				return
			}
			got, err := seq.Collect(s)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBoxKeepsCapabilities(t *testing.T) {
	t.Parallel()
	boxed := seq.Box[int](seq.ListOf(1, 2, 3))

	n, ok := boxed.(seq.Counter).Count()
	assert.True(t, ok)
	assert.Equal(t, 3, n)

	found, err := seq.Contains(boxed, any(2))
	require.NoError(t, err)
	assert.True(t, found)

	found, ok = boxed.(seq.Member[any]).Contains("2")
	assert.True(t, ok)
	assert.False(t, found)

	got, err := seq.Slice(boxed, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, []any{2}, got)
}

func emptyAsNil[T any](vs []T) []T {
	if len(vs) == 0 {
		return nil
	}
	return vs
}
