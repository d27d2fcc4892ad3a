//go:build amd64

package cachelineef

import "unsafe"

//go:noescape
func prefetchT0(addr unsafe.Pointer)

// prefetchChunk issues a PREFETCHT0 hint for the cacheline at c's address.
func prefetchChunk(c *Chunk) {
	prefetchT0(unsafe.Pointer(c))
}
