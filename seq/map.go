package seq

// composable is implemented by mapped sequences so that mapping them again
// folds into a single adapter over the original source.
type composable[T any] interface {
	parts() (Seq[any], func(any) (T, error))
}

// Map returns a sequence yielding fn(v) for every v in s. fn runs once per
// element, in traversal order, and never before traversal starts. The first
// error returned by fn stops the traversal and is returned by Each.
//
// Map(Map(s, f), g) is represented as one adapter over s holding the
// composition of f and g. Count and slicing delegate to s; membership is
// never supported because fn cannot be inverted.
//
// Map panics if fn is nil.
func Map[T, U any](s Seq[T], fn func(T) (U, error)) Seq[U] {
	if fn == nil {
		panic("seq.Map: fn must not be nil")
	}
	if c, ok := s.(composable[T]); ok {
		src, inner := c.parts()
		return &mapped[U]{
			src: src,
			fn: func(v any) (U, error) {
				t, err := inner(v)
				if err != nil {
					var zero U
					return zero, err
				}
				return fn(t)
			},
		}
	}
	return &mapped[U]{
		src: Box(s),
		fn: func(v any) (U, error) {
			t, _ := v.(T)
			return fn(t)
		},
	}
}

// MapFunc is [Map] for transforms that cannot fail.
func MapFunc[T, U any](s Seq[T], fn func(T) U) Seq[U] {
	if fn == nil {
		panic("seq.MapFunc: fn must not be nil")
	}
	return Map(s, func(v T) (U, error) { return fn(v), nil })
}

type mapped[U any] struct {
	src Seq[any]
	fn  func(any) (U, error)
}

func (m *mapped[U]) parts() (Seq[any], func(any) (U, error)) { return m.src, m.fn }

func (m *mapped[U]) Each(yield func(U) bool) error {
	var fnErr error
	err := m.src.Each(func(v any) bool {
		u, err := m.fn(v)
		if err != nil {
			fnErr = err
			return false
		}
		return yield(u)
	})
	if fnErr != nil {
		return fnErr
	}
	return err
}

func (m *mapped[U]) Count() (int, bool) {
	if c, ok := m.src.(Counter); ok {
		return c.Count()
	}
	return 0, false
}

func (m *mapped[U]) Contains(U) (bool, bool) { return false, false }

func (m *mapped[U]) SinglePass() bool { return IsSinglePass(m.src) }

func (m *mapped[U]) Slice() (Slicing[U], bool) {
	sl, ok := m.src.(Slicer[any])
	if !ok {
		return Slicing[U]{}, false
	}
	sc, ok := sl.Slice()
	if !ok {
		return Slicing[U]{}, false
	}
	return mapSlicing(sc, m.fn), true
}

// Any returns the sequence as a sequence of any, still as a single adapter.
func (m *mapped[U]) Any() Seq[any] { return Box[U](m) }

// mapSlicing post-composes fn over whichever slicing form sc carries.
func mapSlicing[T, U any](sc Slicing[T], fn func(T) (U, error)) Slicing[U] {
	out := Slicing[U]{Size: sc.Size}
	switch {
	case sc.Strided != nil:
		out.Strided = func(offset, length, step int) ([]U, error) {
			vs, err := sc.Strided(offset, length, step)
			if err != nil {
				return nil, err
			}
			return mapAll(vs, fn)
		}
	case sc.Range != nil:
		out.Range = func(offset, length int) ([]U, error) {
			vs, err := sc.Range(offset, length)
			if err != nil {
				return nil, err
			}
			return mapAll(vs, fn)
		}
	case sc.All != nil:
		out.All = func() ([]U, error) {
			vs, err := sc.All()
			if err != nil {
				return nil, err
			}
			return mapAll(vs, fn)
		}
	}
	return out
}

func mapAll[T, U any](vs []T, fn func(T) (U, error)) ([]U, error) {
	out := make([]U, len(vs))
	for i, v := range vs {
		u, err := fn(v)
		if err != nil {
			return nil, err
		}
		out[i] = u
	}
	return out, nil
}
