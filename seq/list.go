package seq

import (
	"iter"
	"reflect"
	"sync/atomic"
)

// List is an in-memory sequence backed by a slice. It counts, tests
// membership and slices without traversal.
type List[T any] struct {
	items []T
}

// NewList returns a List over items. The slice is not copied; callers must
// not modify it while the List is in use.
func NewList[T any](items []T) *List[T] {
	return &List[T]{items: items}
}

// ListOf returns a List over the given values.
func ListOf[T any](items ...T) *List[T] {
	return &List[T]{items: items}
}

// Empty returns an empty sequence.
func Empty[T any]() Seq[T] {
	return &List[T]{}
}

func (l *List[T]) Each(yield func(T) bool) error {
	for _, v := range l.items {
		if !yield(v) {
			return nil
		}
	}
	return nil
}

func (l *List[T]) Count() (int, bool) { return len(l.items), true }

func (l *List[T]) Contains(v T) (bool, bool) {
	for _, x := range l.items {
		if reflect.DeepEqual(x, v) {
			return true, true
		}
	}
	return false, true
}

func (l *List[T]) Slice() (Slicing[T], bool) {
	return Slicing[T]{
		Size: len(l.items),
		Range: func(offset, length int) ([]T, error) {
			return append([]T(nil), l.items[offset:offset+length]...), nil
		},
	}, true
}

// Len returns the number of elements.
func (l *List[T]) Len() int { return len(l.items) }

// At returns the i-th element.
func (l *List[T]) At(i int) T { return l.items[i] }

// Values returns the backing slice. It must be treated as read-only.
func (l *List[T]) Values() []T { return l.items }

// Any returns the list as a sequence of any.
func (l *List[T]) Any() Seq[any] { return Box[T](l) }

// FromIter adapts an iter.Seq. The result has no optional capabilities; wrap
// it with [Once] when the iterator cannot be restarted.
func FromIter[T any](it iter.Seq[T]) Seq[T] {
	return Func[T](func(yield func(T) bool) error {
		for v := range it {
			if !yield(v) {
				return nil
			}
		}
		return nil
	})
}

// FromChan adapts a channel. The sequence is single-pass: values received by
// one traversal are not seen by the next.
func FromChan[T any](ch <-chan T) Seq[T] {
	return Once[T](Func[T](func(yield func(T) bool) error {
		for v := range ch {
			if !yield(v) {
				return nil
			}
		}
		return nil
	}))
}

// Once marks s as [SinglePass]. Consumers that peek at the first element of
// a single-pass sequence push it back with [Unread] instead of traversing
// the sequence again.
func Once[T any](s Seq[T]) Seq[T] {
	return once[T]{s: s}
}

type once[T any] struct {
	s Seq[T]
}

func (o once[T]) Each(yield func(T) bool) error { return o.s.Each(yield) }

func (once[T]) SinglePass() bool { return true }

// Any returns the sequence as a sequence of any.
func (o once[T]) Any() Seq[any] { return Box[T](o) }

// Unread returns a single-pass sequence that yields head and then whatever s
// still holds. head is yielded by the first traversal only.
func Unread[T any](head T, s Seq[T]) Seq[T] {
	var taken atomic.Bool
	return Once[T](Func[T](func(yield func(T) bool) error {
		if !taken.Swap(true) && !yield(head) {
			return nil
		}
		return s.Each(yield)
	}))
}

// Func is a sequence defined by its traversal function. It is the natural
// shape for streams over external resources: open in the function, release
// with defer, and stop when yield returns false.
type Func[T any] func(yield func(T) bool) error

func (f Func[T]) Each(yield func(T) bool) error { return f(yield) }

// Any returns the sequence as a sequence of any.
func (f Func[T]) Any() Seq[any] { return Box[T](f) }

// Fail returns a sequence whose traversal fails with err before yielding.
func Fail[T any](err error) Seq[T] {
	return Func[T](func(func(T) bool) error { return err })
}
