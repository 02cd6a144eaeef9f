//go:build windows

package mmap

import (
	"io"
	"os"
)

// Windows fallback: read the file into memory instead of mapping it.
// Snapshot reads are sequential, so the copy is acceptable there.
func mmap(f *os.File, size int) ([]byte, error) {
	data := make([]byte, size)
	if _, err := f.ReadAt(data, 0); err != nil && err != io.EOF {
		return nil, err
	}
	return data, nil
}

func munmap([]byte) error { return nil }
