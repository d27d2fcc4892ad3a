package cachelineef

import (
	"errors"
	"math/bits"
	"sort"
	"testing"
	"unsafe"

	"github.com/bitsquared/cachelineef/internal/testutil"
)

func TestChunkSize(t *testing.T) {
	if got := unsafe.Sizeof(Chunk{}); got != 64 {
		t.Errorf("unsafe.Sizeof(Chunk{}) = %d, want 64", got)
	}
}

func TestChunkRoundTripScenarios(t *testing.T) {
	vectors := []struct {
		desc   string
		values []uint64
	}{
		{desc: "single value", values: []uint64{0}},
		{desc: "low-bit only", values: seq(0, 44)},
		{desc: "high-bit steps", values: stride(256, 44)},
		{desc: "max span", values: []uint64{0, 21504}},
		{desc: "offset encoding", values: []uint64{1_000_000, 1_000_100}},
	}
	for _, v := range vectors {
		t.Run(v.desc, func(t *testing.T) {
			c, err := TryBuildChunk(v.values)
			if err != nil {
				t.Fatalf("TryBuildChunk: %v", err)
			}
			for i, want := range v.values {
				if got := c.At(i); got != want {
					t.Errorf("At(%d) = %d, want %d", i, got, want)
				}
			}
		})
	}
}

func TestChunkExactLayout(t *testing.T) {
	// "Low-bit only": reducedOffset=0, bits 0..43 set in word 0, word 1 zero,
	// lowBits[i]=i.
	c, err := TryBuildChunk(seq(0, 44))
	if err != nil {
		t.Fatal(err)
	}
	wantWord0 := uint64(0x00000FFFFFFFFFFF)
	if c.highBoundaries[0] != wantWord0 {
		t.Errorf("highBoundaries[0] = %#x, want %#x", c.highBoundaries[0], wantWord0)
	}
	if c.highBoundaries[1] != 0 {
		t.Errorf("highBoundaries[1] = %#x, want 0", c.highBoundaries[1])
	}

	// "High-bit steps": v[i] = 256*i, p_i = 2i.
	c, err = TryBuildChunk(stride(256, 44))
	if err != nil {
		t.Fatal(err)
	}
	wantWord0 = 0x5555555555555555
	wantWord1 := uint64(0x0000000000555555)
	if c.highBoundaries[0] != wantWord0 {
		t.Errorf("highBoundaries[0] = %#x, want %#x", c.highBoundaries[0], wantWord0)
	}
	if c.highBoundaries[1] != wantWord1 {
		t.Errorf("highBoundaries[1] = %#x, want %#x", c.highBoundaries[1], wantWord1)
	}

	// "Max span": p_0=0 (bit 0 of word 0), p_1=85 (bit 21 of word 1).
	c, err = TryBuildChunk([]uint64{0, 21504})
	if err != nil {
		t.Fatal(err)
	}
	if c.highBoundaries[0] != 1 {
		t.Errorf("highBoundaries[0] = %#x, want 0x1", c.highBoundaries[0])
	}
	if c.highBoundaries[1] != 1<<21 {
		t.Errorf("highBoundaries[1] = %#x, want %#x", c.highBoundaries[1], uint64(1)<<21)
	}

	// "Offset encoding": reducedOffset=3906, lowBits={64,164}.
	c, err = TryBuildChunk([]uint64{1_000_000, 1_000_100})
	if err != nil {
		t.Fatal(err)
	}
	if c.reducedOffset != 3906 {
		t.Errorf("reducedOffset = %d, want 3906", c.reducedOffset)
	}
	if c.lowBits[0] != 64 || c.lowBits[1] != 164 {
		t.Errorf("lowBits = {%d,%d}, want {64,164}", c.lowBits[0], c.lowBits[1])
	}
	if c.highBoundaries[0] != 0b11 {
		t.Errorf("highBoundaries[0] = %#b, want 0b11", c.highBoundaries[0])
	}
}

func TestChunkOverflowRejected(t *testing.T) {
	_, err := TryBuildChunk([]uint64{0, 21505})
	if !errors.Is(err, ErrOverflow) {
		t.Fatalf("TryBuildChunk({0, 21505}) error = %v, want ErrOverflow", err)
	}
}

func TestBuildChunkPanicsOnOverflow(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("BuildChunk({0, 21505}) did not panic")
		}
	}()
	BuildChunk([]uint64{0, 21505})
}

func TestChunkPreconditionPanics(t *testing.T) {
	vectors := []struct {
		desc   string
		values []uint64
	}{
		{desc: "empty", values: nil},
		{desc: "too long", values: seq(0, 45)},
		{desc: "unsorted", values: []uint64{5, 3}},
		{desc: "value too large", values: []uint64{1 << 40}},
	}
	for _, v := range vectors {
		t.Run(v.desc, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Fatalf("TryBuildChunk(%v) did not panic", v.values)
				}
			}()
			TryBuildChunk(v.values)
		})
	}
}

func TestChunkBitmapPopulation(t *testing.T) {
	r := testutil.NewRand(42)
	for trial := 0; trial < 1000; trial++ {
		k := 1 + r.Intn(44)
		values := randomChunkValues(r, k)
		c, err := TryBuildChunk(values)
		if err != nil {
			t.Fatalf("TryBuildChunk: %v", err)
		}
		got := bits.OnesCount64(c.highBoundaries[0]) + bits.OnesCount64(c.highBoundaries[1])
		if got != k {
			t.Errorf("popcount = %d, want %d", got, k)
		}
	}
}

// TestChunkRandomProperty: random base, 44 values drawn uniformly within
// the encodable span, sorted, encoded, and read back.
func TestChunkRandomProperty(t *testing.T) {
	trials := 1_000_000
	if testing.Short() {
		trials = 200
	}
	r := testutil.NewRand(7)
	maxSpanForTest := uint64((128 - 44) * 256)
	for trial := 0; trial < trials; trial++ {
		offset := r.Uint64n(1 << 40)
		values := make([]uint64, 44)
		for i := range values {
			values[i] = offset + r.Uint64n(maxSpanForTest)
		}
		sort.Slice(values, func(i, j int) bool { return values[i] < values[j] })

		c, err := TryBuildChunk(values)
		if err != nil {
			t.Fatalf("trial %d: TryBuildChunk: %v", trial, err)
		}
		for i, want := range values {
			if got := c.At(i); got != want {
				t.Fatalf("trial %d: At(%d) = %d, want %d; values=%v", trial, i, got, want, values)
			}
		}
	}
}

func seq(start uint64, n int) []uint64 {
	values := make([]uint64, n)
	for i := range values {
		values[i] = start + uint64(i)
	}
	return values
}

func stride(step uint64, n int) []uint64 {
	values := make([]uint64, n)
	for i := range values {
		values[i] = uint64(i) * step
	}
	return values
}

func randomChunkValues(r *testutil.Rand, k int) []uint64 {
	maxSpanForTest := uint64((128 - 44) * 256)
	offset := r.Uint64n(1 << 30)
	values := make([]uint64, k)
	for i := range values {
		values[i] = offset + r.Uint64n(maxSpanForTest)
	}
	sort.Slice(values, func(i, j int) bool { return values[i] < values[j] })
	return values
}
