package main

import (
	"bytes"
	"fmt"
)

// splitChunks divides data into n contiguous chunks, one per worker. Naive
// equal-sized boundaries are snapped forward past the next line terminator,
// so every chunk starts on a record and every record lands in exactly one
// chunk. The chunks tile data exactly: no gap, no overlap. When data has
// fewer lines than n, the surplus chunks come out empty.
func splitChunks(data []byte, n int) [][]byte {
	chunks := make([][]byte, n)
	chunkSize := len(data) / n
	var start int
	for i := range chunks {
		end := len(data)
		if i < n-1 {
			end = (i + 1) * chunkSize
			if j := bytes.IndexByte(data[end:], '\n'); j >= 0 {
				end += j + 1
			} else {
				end = len(data)
			}
		}
		chunks[i] = data[start:end]
		start = end
	}
	return chunks
}

// validateChunks verifies the partitioning contract before any scanning
// begins: the chunks must reproduce data exactly when concatenated, and
// every chunk except the last must end at a line terminator. A violation is
// an errChunkAlignment, surfaced as fatal by the checked configuration.
func validateChunks(data []byte, chunks [][]byte) error {
	var total int
	for i, c := range chunks {
		total += len(c)
		if len(c) > 0 && i < len(chunks)-1 && c[len(c)-1] != '\n' {
			return fmt.Errorf("%w: chunk %d does not end at a line terminator", errChunkAlignment, i)
		}
	}
	if total != len(data) {
		return fmt.Errorf("%w: chunks cover %d of %d bytes", errChunkAlignment, total, len(data))
	}
	return nil
}
