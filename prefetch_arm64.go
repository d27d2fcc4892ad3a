//go:build arm64

package cachelineef

// TODO: issue a PRFM hint via assembly once we have a benchmark showing it
// helps on the target hardware; for now this is a no-op, same as on any
// architecture without a supported intrinsic.
func prefetchChunk(c *Chunk) {}
