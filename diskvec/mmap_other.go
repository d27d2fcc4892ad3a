//go:build !unix

package diskvec

import "os"

// openMapped falls back to an ordinary read on platforms without a
// supported mmap syscall wrapper (golang.org/x/sys/unix only covers unix
// targets). This loses both the zero-copy property and the guarantee that
// chunks land on cacheline boundaries, since os.ReadFile's allocation is
// only guaranteed pointer-width aligned; At still returns correct values,
// it just may cost more than one cacheline touch per query on this path.
func openMapped(path string) (data []byte, closeFn func() error, err error) {
	data, err = os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	return data, func() error { return nil }, nil
}
