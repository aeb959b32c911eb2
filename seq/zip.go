package seq

import (
	"iter"
	"slices"
)

// Zip returns a sequence yielding combine(e0, e1, ..., eN-1) for the i-th
// elements of every input, stopping at the first exhausted input. Zipping no
// sequences yields nothing.
//
// combine receives a fresh slice for every tuple and may keep it. An error
// from combine or from any input stops the traversal and is returned by
// Each. Inputs that were started are always stopped before Each returns,
// whichever way it returns.
//
// Count is the minimum of the input counts when every input counts. Slicing
// is supported when every input slices. Membership is never supported.
//
// Zip panics if combine is nil.
func Zip[T, U any](seqs []Seq[T], combine func([]T) (U, error)) Seq[U] {
	if combine == nil {
		panic("seq.Zip: combine must not be nil")
	}
	return &zipped[T, U]{seqs: slices.Clone(seqs), combine: combine}
}

// Tuples zips seqs into slices holding the i-th element of each.
func Tuples[T any](seqs ...Seq[T]) Seq[[]T] {
	return Zip(seqs, func(vs []T) ([]T, error) { return vs, nil })
}

type zipped[T, U any] struct {
	seqs    []Seq[T]
	combine func([]T) (U, error)
}

func (z *zipped[T, U]) Each(yield func(U) bool) error {
	if len(z.seqs) == 0 {
		return nil
	}
	if ixs, ok := z.indexed(); ok {
		return z.eachIndexed(ixs, yield)
	}
	return z.eachPulled(yield)
}

// indexed returns the inputs as Indexed when all of them are.
func (z *zipped[T, U]) indexed() ([]Indexed[T], bool) {
	ixs := make([]Indexed[T], len(z.seqs))
	for i, s := range z.seqs {
		ix, ok := s.(Indexed[T])
		if !ok {
			return nil, false
		}
		ixs[i] = ix
	}
	return ixs, true
}

func (z *zipped[T, U]) eachIndexed(ixs []Indexed[T], yield func(U) bool) error {
	n := ixs[0].Len()
	for _, ix := range ixs[1:] {
		n = min(n, ix.Len())
	}
	for i := range n {
		tuple := make([]T, len(ixs))
		for j, ix := range ixs {
			tuple[j] = ix.At(i)
		}
		u, err := z.combine(tuple)
		if err != nil {
			return err
		}
		if !yield(u) {
			return nil
		}
	}
	return nil
}

// eachPulled drives every input in lockstep through iter.Pull2. Each input
// is suspended after producing one element; its stop function is deferred
// so that exhaustion, consumer stop, errors and panics all release it.
func (z *zipped[T, U]) eachPulled(yield func(U) bool) error {
	nexts := make([]func() (T, error, bool), len(z.seqs))
	for i, s := range z.seqs {
		next, stop := iter.Pull2(All(s))
		defer stop()
		nexts[i] = next
	}
	for {
		tuple := make([]T, len(nexts))
		for i, next := range nexts {
			v, err, ok := next()
			if !ok {
				return nil
			}
			if err != nil {
				return err
			}
			tuple[i] = v
		}
		u, err := z.combine(tuple)
		if err != nil {
			return err
		}
		if !yield(u) {
			return nil
		}
	}
}

func (z *zipped[T, U]) Count() (int, bool) {
	if len(z.seqs) == 0 {
		return 0, true
	}
	n := -1
	for _, s := range z.seqs {
		c, ok := s.(Counter)
		if !ok {
			return 0, false
		}
		m, ok := c.Count()
		if !ok {
			return 0, false
		}
		if n < 0 || m < n {
			n = m
		}
	}
	return n, true
}

func (z *zipped[T, U]) Contains(U) (bool, bool) { return false, false }

// Slice requests the same window from every input and combines the results
// positionally. When any input slices with a step, the result does too, and
// inputs without one serve strides from a contiguous window.
func (z *zipped[T, U]) Slice() (Slicing[U], bool) {
	if len(z.seqs) == 0 {
		return Slicing[U]{Range: func(int, int) ([]U, error) { return nil, nil }}, true
	}
	scs := make([]Slicing[T], len(z.seqs))
	size := -1
	strided := false
	for i, s := range z.seqs {
		sl, ok := s.(Slicer[T])
		if !ok {
			return Slicing[U]{}, false
		}
		sc, ok := sl.Slice()
		if !ok {
			return Slicing[U]{}, false
		}
		scs[i] = sc
		if size < 0 || sc.Size < size {
			size = sc.Size
		}
		strided = strided || sc.Strided != nil
	}
	if strided {
		return Slicing[U]{
			Size: size,
			Strided: func(offset, length, step int) ([]U, error) {
				return z.sliceAll(scs, offset, length, step)
			},
		}, true
	}
	return Slicing[U]{
		Size: size,
		Range: func(offset, length int) ([]U, error) {
			return z.sliceAll(scs, offset, length, 1)
		},
	}, true
}

func (z *zipped[T, U]) sliceAll(scs []Slicing[T], offset, length, step int) ([]U, error) {
	parts := make([][]T, len(scs))
	n := length
	for i, sc := range scs {
		part, err := sc.fetch(offset, length, step)
		if err != nil {
			return nil, err
		}
		parts[i] = part
		n = min(n, len(part))
	}
	out := make([]U, n)
	for i := range out {
		tuple := make([]T, len(parts))
		for j, part := range parts {
			tuple[j] = part[i]
		}
		u, err := z.combine(tuple)
		if err != nil {
			return nil, err
		}
		out[i] = u
	}
	return out, nil
}

// Any returns the sequence as a sequence of any.
func (z *zipped[T, U]) Any() Seq[any] { return Box[U](z) }
