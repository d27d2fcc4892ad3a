// Package diskvec provides a read-only, on-disk transport for a
// cachelineef.Vector: a file-backed storage backend whose chunk array is
// mapped into memory read-only and decoded in place.
//
// Create persists a Vector's wire bytes plus an 8-byte little-endian
// trailer holding its logical length. Open maps that file back in without
// copying it, and the resulting Vector answers At the same way an in-memory
// cachelineef.Vector would: one cacheline touch per query.
package diskvec

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"unsafe"

	"github.com/natefinch/atomic"

	"github.com/bitsquared/cachelineef"
)

const trailerSize = 8

// Vector is a read-only cachelineef.Vector backed by a memory-mapped file.
// It must be closed with Close once the caller is done with it; calling any
// other method afterward is a precondition violation, the same class of
// contract violation cachelineef.Vector.AtUnchecked documents for an
// out-of-range index.
type Vector struct {
	chunks []cachelineef.Chunk
	n      int
	close  func() error
}

// Create builds a Vector from values (see cachelineef.Build for the
// preconditions on values; Build panics on a violation and on a window whose
// span is too large, and Create does not recover that panic) and
// atomically writes its wire bytes to path, so a reader can never observe a
// partially written file.
func Create(path string, values []uint64) error {
	v := cachelineef.Build(values)

	buf := make([]byte, len(v.Bytes())+trailerSize)
	copy(buf, v.Bytes())
	binary.LittleEndian.PutUint64(buf[len(buf)-trailerSize:], uint64(v.Len()))

	return atomic.WriteFile(path, bytes.NewReader(buf))
}

// Open memory-maps path and returns a Vector over its contents without
// copying them. It returns an error for ordinary I/O failures (the file
// does not exist, cannot be mapped, and so on); a file whose size does not
// match 64*ceil(n/44)+8 for the n it claims to hold is a malformed-container
// precondition violation and panics, the same as an empty or too-long chunk
// would during Build.
func Open(path string) (*Vector, error) {
	data, closeFn, err := openMapped(path)
	if err != nil {
		return nil, fmt.Errorf("diskvec: open %s: %w", path, err)
	}
	if len(data) < trailerSize {
		closeFn()
		panic(fmt.Sprintf("diskvec: %s is too small (%d bytes) to hold a trailer", path, len(data)))
	}

	chunkBytes := data[:len(data)-trailerSize]
	n := int(binary.LittleEndian.Uint64(data[len(data)-trailerSize:]))

	wantChunks := 0
	if n > 0 {
		wantChunks = (n + 43) / 44
	}
	if len(chunkBytes) != wantChunks*64 {
		closeFn()
		panic(fmt.Sprintf("diskvec: %s has %d chunk bytes, want %d for n=%d", path, len(chunkBytes), wantChunks*64, n))
	}

	var chunks []cachelineef.Chunk
	if wantChunks > 0 {
		chunks = unsafe.Slice((*cachelineef.Chunk)(unsafe.Pointer(&chunkBytes[0])), wantChunks)
	}

	return &Vector{chunks: chunks, n: n, close: closeFn}, nil
}

// Len returns the number of values the Vector holds.
func (v *Vector) Len() int { return v.n }

// ByteSize returns the number of bytes occupied by the chunk array, 64 *
// ceil(Len()/44).
func (v *Vector) ByteSize() int { return len(v.chunks) * 64 }

// At returns the value stored at position i, panicking if i is outside
// [0, Len()).
func (v *Vector) At(i int) uint64 {
	if i < 0 || i >= v.n {
		panic(fmt.Sprintf("diskvec: index %d out of bounds for length %d", i, v.n))
	}
	return v.chunks[i/44].At(i % 44)
}

// AtUnchecked is like At but skips the bounds check; the caller asserts
// i < Len().
func (v *Vector) AtUnchecked(i int) uint64 {
	return v.chunks[i/44].At(i % 44)
}

// Prefetch issues a prefetch hint for the cacheline backing index i. It is a
// pure performance hint and a no-op for an out-of-bounds i.
func (v *Vector) Prefetch(i int) {
	if i < 0 || i >= v.n {
		return
	}
	cachelineef.PrefetchChunk(&v.chunks[i/44])
}

// Close unmaps the backing file. The Vector must not be used afterward.
func (v *Vector) Close() error {
	return v.close()
}
