//go:build unix

package grep

import (
	"os"

	"golang.org/x/sys/unix"
)

// mapFile maps the file read-only. The returned cleanup must be called once
// the data is no longer referenced.
func mapFile(f *os.File, size int64) ([]byte, func() error, error) {
	if size <= 0 || int64(int(size)) != size {
		return nil, nil, errMapUnavailable
	}
	data, err := unix.Mmap(int(f.Fd()), 0, int(size), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return nil, nil, err
	}
	return data, func() error { return unix.Munmap(data) }, nil
}
