package seq

import (
	"errors"
	"fmt"
	"iter"
	"reflect"
)

// ErrInvalidSlice is returned when a slice request has a negative offset or
// length, or a step below one.
var ErrInvalidSlice = errors.New("invalid slice")

// Seq is a possibly lazy, possibly unbounded sequence of values.
type Seq[T any] interface {
	// Each calls yield for every element in order until yield returns false
	// or the sequence is exhausted. A non-nil error aborts the traversal and
	// is returned to the consumer.
	Each(yield func(T) bool) error
}

// Counter reports the exact number of elements without traversing them.
// ok is false when the count is not cheaply known.
type Counter interface {
	Count() (n int, ok bool)
}

// Member reports whether v occurs in the sequence without a linear scan.
// ok is false when the sequence cannot answer cheaply.
type Member[T any] interface {
	Contains(v T) (found, ok bool)
}

// Slicer exposes random-access slicing. ok is false when the sequence
// cannot slice without walking it.
type Slicer[T any] interface {
	Slice() (Slicing[T], bool)
}

// Indexed is a fully materialized sequence with constant-time positional
// access. [Zip] walks Indexed inputs directly instead of pulling them.
type Indexed[T any] interface {
	Seq[T]
	Len() int
	At(i int) T
}

// SinglePass is implemented by sequences that can be traversed only once,
// such as channel streams. Elements taken by one traversal are gone for the
// next.
type SinglePass interface {
	SinglePass() bool
}

// IsSinglePass reports whether s declares itself single-pass.
func IsSinglePass[T any](s Seq[T]) bool {
	sp, ok := s.(SinglePass)
	return ok && sp.SinglePass()
}

// Slicing describes how a sequence slices. Size is the exact element count.
// Exactly one of All, Range and Strided is set:
//
//   - All materializes the whole sequence, which the caller then indexes.
//   - Range returns length elements starting at offset.
//   - Strided returns length elements starting at offset, taking every
//     step-th element.
//
// Callers always pass arguments that stay within Size.
type Slicing[T any] struct {
	Size    int
	All     func() ([]T, error)
	Range   func(offset, length int) ([]T, error)
	Strided func(offset, length, step int) ([]T, error)
}

// fetch returns length elements from offset, every step-th, adapting
// whichever form s carries. The requested span must lie within Size.
func (s Slicing[T]) fetch(offset, length, step int) ([]T, error) {
	if length == 0 {
		return nil, nil
	}
	switch {
	case s.Strided != nil:
		return s.Strided(offset, length, step)
	case s.Range != nil:
		if step == 1 {
			return s.Range(offset, length)
		}
		span, err := s.Range(offset, (length-1)*step+1)
		if err != nil {
			return nil, err
		}
		return every(span, 0, length, step), nil
	case s.All != nil:
		all, err := s.All()
		if err != nil {
			return nil, err
		}
		return every(all, offset, length, step), nil
	default:
		return nil, fmt.Errorf("%w: slicing has no slicing function", ErrInvalidSlice)
	}
}

// take clamps the request to Size and fetches it.
func (s Slicing[T]) take(offset, length, step int) ([]T, error) {
	if offset >= s.Size {
		return nil, nil
	}
	avail := (s.Size - offset + step - 1) / step
	return s.fetch(offset, min(length, avail), step)
}

func every[T any](vs []T, offset, length, step int) []T {
	out := make([]T, 0, length)
	for i := offset; i < len(vs) && len(out) < length; i += step {
		out = append(out, vs[i])
	}
	return out
}

// Count returns the number of elements in s, traversing it when s cannot
// count cheaply. Counting an unbounded sequence without a count never returns.
func Count[T any](s Seq[T]) (int, error) {
	if c, ok := s.(Counter); ok {
		if n, ok := c.Count(); ok {
			return n, nil
		}
	}
	n := 0
	err := s.Each(func(T) bool {
		n++
		return true
	})
	return n, err
}

// Contains reports whether v occurs in s. Without a [Member] capability it
// scans s, comparing elements structurally.
func Contains[T any](s Seq[T], v T) (bool, error) {
	if m, ok := s.(Member[T]); ok {
		if found, ok := m.Contains(v); ok {
			return found, nil
		}
	}
	found := false
	err := s.Each(func(x T) bool {
		if reflect.DeepEqual(x, v) {
			found = true
			return false
		}
		return true
	})
	return found, err
}

// Slice returns up to length elements of s starting at offset.
func Slice[T any](s Seq[T], offset, length int) ([]T, error) {
	return SliceStep(s, offset, length, 1)
}

// SliceStep returns up to length elements of s starting at offset, taking
// every step-th element. It uses the [Slicer] capability when available and
// walks s with a counter otherwise.
func SliceStep[T any](s Seq[T], offset, length, step int) ([]T, error) {
	if offset < 0 || length < 0 || step < 1 {
		return nil, fmt.Errorf("%w: offset %d, length %d, step %d", ErrInvalidSlice, offset, length, step)
	}
	if length == 0 {
		return nil, nil
	}
	if sl, ok := s.(Slicer[T]); ok {
		if sc, ok := sl.Slice(); ok {
			return sc.take(offset, length, step)
		}
	}
	var out []T
	i := 0
	err := s.Each(func(v T) bool {
		if i >= offset && (i-offset)%step == 0 {
			out = append(out, v)
		}
		i++
		return len(out) < length
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Collect traverses s and returns its elements.
func Collect[T any](s Seq[T]) ([]T, error) {
	if l, ok := s.(*List[T]); ok {
		return append([]T(nil), l.items...), nil
	}
	var out []T
	err := s.Each(func(v T) bool {
		out = append(out, v)
		return true
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// First returns the first element of s. It slices when s can, and otherwise
// starts a traversal and stops it after one element.
func First[T any](s Seq[T]) (v T, ok bool, err error) {
	head, err := Slice(s, 0, 1)
	if err != nil || len(head) == 0 {
		return v, false, err
	}
	return head[0], true, nil
}

// All adapts s to a range-over-func iterator. A traversal error is yielded
// once, paired with the zero value, as the final element.
func All[T any](s Seq[T]) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		stopped := false
		err := s.Each(func(v T) bool {
			if !yield(v, nil) {
				stopped = true
				return false
			}
			return true
		})
		if err != nil && !stopped {
			var zero T
			yield(zero, err)
		}
	}
}
