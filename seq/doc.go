// Package seq defines a capability-polymorphic sequence contract and the lazy
// adapters that transform sequences without giving up their capabilities.
//
// # Contract
//
// Every sequence implements [Seq], a consumer-driven fold:
//
//	err := s.Each(func(v T) bool {
//	    return keepGoing
//	})
//
// Three optional interfaces layer on top. Each can be absent, or present and
// report unsupported through its boolean result:
//
//   - [Counter] → exact element count without traversal
//   - [Member] → membership test without a linear scan
//   - [Slicer] → random-access slicing, described by a [Slicing]
//
// A sequence that cannot be traversed twice, such as a channel, says so by
// implementing [SinglePass]. [Once] marks any sequence that way and [Unread]
// pushes a consumed first element back in front of one.
//
// The package helpers [Count], [Contains], [Slice] and [SliceStep] use a
// capability when it is available and fall back to a linear traversal
// otherwise.
//
// # Built-in sequences
//
//   - [List] → an in-memory slice (count, membership, slicing)
//   - [Range] → an integer progression (count, membership, strided slicing)
//   - [Func] → any traversal function, including ones that hold resources
//   - [FromIter] and [FromChan] → adapters for iter.Seq and channels
//   - [Of] → dynamic recognition of slices, arrays and sequences of any
//
// # Adapters
//
// [Map] applies a transform lazily. Mapping a mapped sequence folds the two
// transforms into one adapter, so deep chains never nest. Count and slicing
// are delegated to the source.
//
// [Zip] combines N sequences element-wise, stopping at the shortest. It keeps
// count and slicing when every input has them. When traversal has to pull
// inputs one element at a time, every input that was started is stopped
// exactly once on every exit path, so sequences that hold open resources
// release them.
package seq
