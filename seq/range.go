package seq

// Range is the integer progression start, start+step, ... up to but not
// including stop.
type Range struct {
	start, stop, step int
}

// NewRange returns the progression from start towards stop. It panics if
// step is zero.
func NewRange(start, stop, step int) Range {
	if step == 0 {
		panic("seq.NewRange: step must not be zero")
	}
	return Range{start: start, stop: stop, step: step}
}

// Len returns the number of elements.
func (r Range) Len() int {
	switch {
	case r.step > 0 && r.stop > r.start:
		return (r.stop - r.start + r.step - 1) / r.step
	case r.step < 0 && r.stop < r.start:
		return (r.start - r.stop - r.step - 1) / -r.step
	default:
		return 0
	}
}

// At returns the i-th element.
func (r Range) At(i int) int { return r.start + i*r.step }

func (r Range) Each(yield func(int) bool) error {
	n := r.Len()
	for i := range n {
		if !yield(r.At(i)) {
			return nil
		}
	}
	return nil
}

func (r Range) Count() (int, bool) { return r.Len(), true }

func (r Range) Contains(v int) (bool, bool) {
	off := v - r.start
	if off%r.step != 0 {
		return false, true
	}
	i := off / r.step
	return i >= 0 && i < r.Len(), true
}

func (r Range) Slice() (Slicing[int], bool) {
	return Slicing[int]{
		Size: r.Len(),
		Strided: func(offset, length, step int) ([]int, error) {
			out := make([]int, length)
			for i := range out {
				out[i] = r.At(offset + i*step)
			}
			return out, nil
		},
	}, true
}

// Any returns the range as a sequence of any.
func (r Range) Any() Seq[any] { return Box[int](r) }
