package main

import (
	"bytes"
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// mmapFile maps path read-only and returns the buffer with its unmap
// function. The engine never opens files itself; the harness hands it the
// mapped bytes.
func mmapFile(path string) ([]byte, func() error, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return nil, nil, err
	}
	size := fi.Size()
	if size == 0 {
		return nil, func() error { return nil }, nil
	}

	data, err := unix.Mmap(int(f.Fd()), 0, int(size), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return nil, nil, fmt.Errorf("mmap %s: %w", path, err)
	}
	return data, func() error { return unix.Munmap(data) }, nil
}

// truncateRecords clips data to roughly limit bytes without splitting a
// record: the cut lands just past the first line terminator at or after the
// limit.
func truncateRecords(data []byte, limit int) []byte {
	if limit <= 0 || limit >= len(data) {
		return data
	}
	if j := bytes.IndexByte(data[limit:], '\n'); j >= 0 {
		return data[:limit+j+1]
	}
	return data
}
