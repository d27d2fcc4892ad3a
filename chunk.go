package cachelineef

import (
	"math/bits"

	"github.com/bitsquared/cachelineef/internal/bitselect"
)

const (
	// chunkCap is the maximum number of values a single chunk can hold.
	chunkCap = 44

	// boundaryBits is the width of the high_boundaries bitmap in bits.
	boundaryBits = 128

	// maxSpan is the largest value[last]-value[first] a chunk can encode:
	// every value beyond the first chunkCap boundary positions must fit in
	// the (boundaryBits - chunkCap) remaining "zero" slots of the bitmap,
	// each worth 256.
	maxSpan = 256 * (boundaryBits - chunkCap)

	// domainBits is the width of the value domain; values must fit in 40
	// bits.
	domainBits = 40
)

// Chunk is a fixed-size, 64-byte, 64-byte-aligned record encoding up to 44
// sorted 40-bit values whose span (max-min) is at most 21504. A single load
// of a Chunk brings every byte needed to decode any of its values into one
// cacheline.
//
// The zero Chunk has no set boundary bits and so encodes no values; At on it
// returns a meaningless result. TryBuildChunk never produces it: an empty
// input is rejected instead.
type Chunk struct {
	// highBoundaries is a 128-bit unary-style bitmap (two little-endian
	// 64-bit words) with exactly one set bit per stored value. The i-th set
	// bit's position minus i equals the i-th value's high-part delta from
	// reducedOffset.
	highBoundaries [2]uint64

	// reducedOffset is floor(values[0]/256), the shared high-order baseline
	// for every value in the chunk.
	reducedOffset uint32

	// lowBits holds the low 8 bits of each value. Entries at or beyond the
	// chunk's value count are zero and are never read by At, which trusts
	// the caller to only pass indices below the count it encoded.
	lowBits [chunkCap]byte
}

// sizeof Chunk must stay at exactly 64 bytes: two uint64 words (16 bytes) +
// one uint32 (4 bytes) + 44 bytes of lowBits = 64 bytes with no padding,
// since every field up to the byte array is already naturally aligned and
// the array itself needs no padding at the end of a struct. Go has no
// repr(align) equivalent, so the type itself is only 8-byte aligned; the
// 64-byte placement of a Vector's chunks comes from newAlignedChunks
// (align.go). chunk_test.go checks the size and vector_test.go the
// placement.

// TryBuildChunk encodes values, a non-empty, non-decreasing slice of at most
// 44 values each below 2^40, into a Chunk.
//
// It panics if values is empty, longer than 44 elements, not sorted in
// non-decreasing order, or contains a value that does not fit in 40 bits:
// these are programmer errors, not data-dependent conditions. If every
// precondition holds but the value span (values[len-1]-values[0]) exceeds
// 21504, TryBuildChunk returns ErrOverflow instead of panicking, since that
// condition depends on the data rather than caller misuse.
func TryBuildChunk(values []uint64) (Chunk, error) {
	if len(values) == 0 {
		panicf("TryBuildChunk: values must not be empty")
	}
	if len(values) > chunkCap {
		panicf("TryBuildChunk: got %d values, at most %d allowed", len(values), chunkCap)
	}
	for i := 1; i < len(values); i++ {
		if values[i] < values[i-1] {
			panicf("TryBuildChunk: values must be non-decreasing, values[%d]=%d < values[%d]=%d",
				i, values[i], i-1, values[i-1])
		}
	}
	last := values[len(values)-1]
	if last >= 1<<domainBits {
		panicf("TryBuildChunk: value %d does not fit in %d bits", last, domainBits)
	}
	if last-values[0] > maxSpan {
		return Chunk{}, ErrOverflow
	}

	offset := values[0] >> 8
	// Implied by last < 2^40 since offset <= last>>8 < 2^32; kept anyway as
	// defense in depth against a future change to domainBits.
	if offset > 1<<32-1 {
		panicf("TryBuildChunk: offset %d does not fit in 32 bits", offset)
	}

	var c Chunk
	c.reducedOffset = uint32(offset)
	for i, v := range values {
		c.lowBits[i] = byte(v & 0xff)

		p := i + int((v>>8)-offset)
		if p >= boundaryBits {
			return Chunk{}, ErrOverflow
		}
		c.highBoundaries[p/64] |= 1 << uint(p%64)
	}
	return c, nil
}

// BuildChunk is like TryBuildChunk but panics instead of returning
// ErrOverflow, for callers that have already validated (or don't care
// about) the span constraint.
func BuildChunk(values []uint64) Chunk {
	c, err := TryBuildChunk(values)
	if err != nil {
		panicf("BuildChunk: %v", err)
	}
	return c
}

// At returns the value originally encoded at position idx, where idx is in
// [0, count) for whatever count the chunk was built with. A Chunk does not
// know its own count: calling At with idx >= count reads the
// zero-initialized tail of lowBits and returns a meaningless result rather
// than an error. Vector.At enforces the real bound before delegating here.
func (c Chunk) At(idx int) uint64 {
	p0 := bits.OnesCount64(c.highBoundaries[0])

	var onePos int
	if idx < p0 {
		onePos = bitselect.InWord(c.highBoundaries[0], idx)
	} else {
		onePos = 64 + bitselect.InWord(c.highBoundaries[1], idx-p0)
	}

	return 256*uint64(c.reducedOffset) + 256*uint64(onePos-idx) + uint64(c.lowBits[idx])
}
