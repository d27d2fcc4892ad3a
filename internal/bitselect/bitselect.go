// Package bitselect provides the select-in-word primitive the chunk decoder
// relies on: given a 64-bit word, return the bit position of its k-th
// (0-indexed) set bit.
//
// The wider codec treats this as a primitive whose implementation is free to
// vary by platform; this package supplies the portable one, built entirely
// on math/bits so it behaves identically on every GOARCH. A native
// implementation could instead lean on a hardware PDEP/TZCNT sequence where
// available (see the cpuinfo package), but nothing in this module requires
// that for correctness.
package bitselect

import "math/bits"

// InWord returns the bit position of the k-th set bit of word, where k is
// 0-indexed. The caller must ensure k < bits.OnesCount64(word); for an
// out-of-range k it returns 64, which is not a bit position.
func InWord(word uint64, k int) int {
	for ; k > 0; k-- {
		word &= word - 1 // clear the lowest set bit
	}
	return bits.TrailingZeros64(word)
}
