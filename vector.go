package cachelineef

import "unsafe"

// Vector is an ordered sequence of Chunk records plus the logical number of
// values they hold. Chunk j encodes the values at indices
// [44*j, min(44*(j+1), n)). A built Vector is immutable: there is no mutating
// method on this type.
type Vector struct {
	chunks []Chunk
	n      int
}

// TryBuild partitions values into consecutive windows of at most 44 and
// encodes each window with TryBuildChunk, stopping at the first window whose
// span exceeds the encodable window and returning ErrOverflow in that case.
// values must be sorted in non-decreasing order and every element must fit
// in 40 bits; violating either is a precondition violation (panic), the same
// as for TryBuildChunk.
func TryBuild(values []uint64) (*Vector, error) {
	numChunks := (len(values) + chunkCap - 1) / chunkCap
	chunks := newAlignedChunks(numChunks)
	for j := range chunks {
		i := j * chunkCap
		end := i + chunkCap
		if end > len(values) {
			end = len(values)
		}
		if i > 0 && values[i] < values[i-1] {
			panicf("TryBuild: values must be non-decreasing, values[%d]=%d < values[%d]=%d",
				i, values[i], i-1, values[i-1])
		}
		c, err := TryBuildChunk(values[i:end])
		if err != nil {
			return nil, err
		}
		chunks[j] = c
	}
	if len(chunks) == 0 {
		// An empty input has no windows to reject: produce an empty,
		// usable Vector rather than panicking, since Vector (unlike Chunk)
		// has no "must be non-empty" precondition of its own.
		return &Vector{}, nil
	}
	return &Vector{chunks: chunks, n: len(values)}, nil
}

// Build is like TryBuild but panics, identifying the offending window,
// instead of returning ErrOverflow.
func Build(values []uint64) *Vector {
	v, err := TryBuild(values)
	if err != nil {
		for i := 0; i < len(values); i += chunkCap {
			end := min(i+chunkCap, len(values))
			if _, werr := TryBuildChunk(values[i:end]); werr != nil {
				panicf("Build: window values[%d:%d] (%d to %d): %v",
					i, end, values[i], values[end-1], werr)
			}
		}
		panicf("Build: %v", err)
	}
	return v
}

// At returns the value originally stored at position i. It panics if i is
// outside [0, Len()).
func (v *Vector) At(i int) uint64 {
	if i < 0 || i >= v.n {
		panicf("At: index %d out of bounds for length %d", i, v.n)
	}
	return v.chunks[i/chunkCap].At(i % chunkCap)
}

// AtUnchecked is like At but skips the bounds check. Calling it with an
// index outside [0, Len()) is undefined behavior: the caller owns that
// precondition.
func (v *Vector) AtUnchecked(i int) uint64 {
	return v.chunks[i/chunkCap].At(i % chunkCap)
}

// Prefetch issues a non-faulting hint that the cacheline backing index i is
// about to be read, letting the caller overlap the load with other work. It
// has no effect on the result of any later At call; it is purely a
// performance hint and is a no-op on platforms without a supported
// intrinsic, or when i is out of bounds.
func (v *Vector) Prefetch(i int) {
	if i < 0 || i >= v.n {
		return
	}
	j := i / chunkCap
	prefetchChunk(&v.chunks[j])
}

// Len returns the number of values the Vector holds.
func (v *Vector) Len() int {
	return v.n
}

// ByteSize returns the number of bytes occupied by the Vector's chunk array:
// 64 * ceil(Len()/44), regardless of any framing the host adds around it.
func (v *Vector) ByteSize() int {
	return len(v.chunks) * 64
}

// Bytes returns the wire-format bytes of v's chunk array: ByteSize() bytes
// that a host can persist and later reopen with a zero-copy reader, such as
// the diskvec package. The returned slice aliases v's backing storage and is
// only valid as long as v is reachable.
func (v *Vector) Bytes() []byte {
	if len(v.chunks) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&v.chunks[0])), len(v.chunks)*chunkSize)
}

// PrefetchChunk issues the same prefetch hint as (*Vector).Prefetch for an
// arbitrary Chunk, regardless of which slice backs it. Storage backends that
// keep chunks outside this package, such as diskvec, use this to prefetch
// into a memory-mapped chunk array.
func PrefetchChunk(c *Chunk) {
	prefetchChunk(c)
}
