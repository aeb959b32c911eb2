package seq

import (
	"iter"
	"reflect"
)

// Box returns s as a sequence of any, keeping its capabilities. A
// sequence that already yields any is returned unchanged, and a mapped
// sequence is re-mapped rather than wrapped.
func Box[T any](s Seq[T]) Seq[any] {
	if a, ok := any(s).(Seq[any]); ok {
		return a
	}
	if _, ok := s.(composable[T]); ok {
		return Map(s, func(v T) (any, error) { return v, nil })
	}
	if ix, ok := s.(Indexed[T]); ok {
		return &indexedBox[T]{box: box[T]{s: s}, ix: ix}
	}
	return &box[T]{s: s}
}

type box[T any] struct {
	s Seq[T]
}

func (b *box[T]) Each(yield func(any) bool) error {
	return b.s.Each(func(v T) bool { return yield(v) })
}

func (b *box[T]) SinglePass() bool { return IsSinglePass(b.s) }

func (b *box[T]) Count() (int, bool) {
	if c, ok := b.s.(Counter); ok {
		return c.Count()
	}
	return 0, false
}

func (b *box[T]) Contains(v any) (bool, bool) {
	m, ok := b.s.(Member[T])
	if !ok {
		return false, false
	}
	t, ok := v.(T)
	if !ok {
		// nil only converts to the zero value of a nilable element type;
		// any other value of a foreign type cannot be an element.
		if v != nil || !isNilable[T]() {
			return false, true
		}
	}
	return m.Contains(t)
}

func (b *box[T]) Slice() (Slicing[any], bool) {
	sl, ok := b.s.(Slicer[T])
	if !ok {
		return Slicing[any]{}, false
	}
	sc, ok := sl.Slice()
	if !ok {
		return Slicing[any]{}, false
	}
	return mapSlicing(sc, func(v T) (any, error) { return v, nil }), true
}

type indexedBox[T any] struct {
	box[T]
	ix Indexed[T]
}

func (b *indexedBox[T]) Len() int     { return b.ix.Len() }
func (b *indexedBox[T]) At(i int) any { return b.ix.At(i) }

func isNilable[T any]() bool {
	t := reflect.TypeFor[T]()
	switch t.Kind() {
	case reflect.Interface, reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return true
	}
	return false
}

// Of recognizes v as a sequence of any. It accepts sequences of any, values
// with an Any method (every sequence in this package), iter.Seq[any], and
// Go slices and arrays of any element type.
func Of(v any) (Seq[any], bool) {
	switch s := v.(type) {
	case nil:
		return nil, false
	case Seq[any]:
		return s, true
	case interface{ Any() Seq[any] }:
		return s.Any(), true
	case iter.Seq[any]:
		return FromIter(s), true
	case []any:
		return NewList(s), true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		return &reflected{v: rv}, true
	}
	return nil, false
}

// reflected is a List over a slice or array of arbitrary element type.
type reflected struct {
	v reflect.Value
}

func (r *reflected) Len() int     { return r.v.Len() }
func (r *reflected) At(i int) any { return r.v.Index(i).Interface() }

func (r *reflected) Each(yield func(any) bool) error {
	for i := range r.v.Len() {
		if !yield(r.At(i)) {
			return nil
		}
	}
	return nil
}

func (r *reflected) Count() (int, bool) { return r.v.Len(), true }

func (r *reflected) Contains(v any) (bool, bool) {
	for i := range r.v.Len() {
		if reflect.DeepEqual(r.At(i), v) {
			return true, true
		}
	}
	return false, true
}

func (r *reflected) Slice() (Slicing[any], bool) {
	return Slicing[any]{
		Size: r.v.Len(),
		Range: func(offset, length int) ([]any, error) {
			out := make([]any, length)
			for i := range out {
				out[i] = r.At(offset + i)
			}
			return out, nil
		},
	}, true
}
