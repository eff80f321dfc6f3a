package grep

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"os"
)

// Files at or above this size are memory-mapped instead of read through a
// scanner, so big logs cost page faults rather than copies.
const mmapThreshold = 1 << 20

var errMapUnavailable = errors.New("memory mapping unavailable")

// ForEachLine calls fn for every line of r, without the trailing newline.
// Iteration stops at the first error from fn.
func ForEachLine(r *bufio.Reader, fn func(line []byte) error) error {
	for {
		line, err := r.ReadBytes('\n')
		if len(line) > 0 {
			line = bytes.TrimSuffix(line, []byte{'\n'})
			if fnErr := fn(line); fnErr != nil {
				return fnErr
			}
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
	}
}

// ForEachFileLine opens path and calls fn for each of its lines. Large files
// are memory-mapped where the platform supports it; everything else goes
// through a buffered reader.
func ForEachFileLine(path string, fn func(line []byte) error) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if st, statErr := f.Stat(); statErr == nil && st.Size() >= mmapThreshold {
		if data, unmap, mapErr := mapFile(f, st.Size()); mapErr == nil {
			defer unmap()
			return forEachMappedLine(data, fn)
		}
	}

	return ForEachLine(bufio.NewReaderSize(f, 64<<10), fn)
}

// forEachMappedLine splits mapped data on '\n' without copying.
func forEachMappedLine(data []byte, fn func(line []byte) error) error {
	for len(data) > 0 {
		nl := bytes.IndexByte(data, '\n')
		if nl < 0 {
			return fn(data)
		}
		if err := fn(data[:nl]); err != nil {
			return err
		}
		data = data[nl+1:]
	}
	return nil
}
