//go:build unix

package diskvec

import (
	"os"

	"golang.org/x/sys/unix"
)

// openMapped memory-maps path read-only and returns its contents along with
// a function that unmaps it.
func openMapped(path string) (data []byte, closeFn func() error, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return nil, nil, err
	}
	size := int(fi.Size())
	if size == 0 {
		return nil, func() error { return nil }, nil
	}

	mapped, err := unix.Mmap(int(f.Fd()), 0, size, unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return nil, nil, err
	}

	return mapped, func() error { return unix.Munmap(mapped) }, nil
}
