// Package mmap provides read-only memory mapping of files for zero-copy
// snapshot reads.
package mmap

import "os"

// Mapping is a read-only memory-mapped file.
type Mapping struct {
	f    *os.File
	data []byte
}

// Open maps the file at path read-only. Empty files map to a nil byte
// slice.
func Open(path string) (*Mapping, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	fi, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, err
	}

	size := int(fi.Size())
	if size == 0 {
		return &Mapping{f: f}, nil
	}

	data, err := mmap(f, size)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	return &Mapping{f: f, data: data}, nil
}

// Bytes returns the mapped contents. The slice is valid until Close.
func (m *Mapping) Bytes() []byte { return m.data }

// Close unmaps the file and closes the descriptor.
func (m *Mapping) Close() error {
	if m.data != nil {
		if err := munmap(m.data); err != nil {
			_ = m.f.Close()
			return err
		}
		m.data = nil
	}
	return m.f.Close()
}
