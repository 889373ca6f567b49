package main

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math/bits"
)

// The delimiter scan works on 8-byte words instead of single bytes. XORing a
// word against a broadcast ';' turns every delimiter byte into 0x00, and the
// classic zero-byte trick below turns each zero byte into a set high bit that
// a count-trailing-zeros pulls out. Station names shorter than a cache line
// are located in one or two word comparisons instead of a per-byte branch.
const (
	semicolonBroadcast uint64 = 0x3B3B3B3B3B3B3B3B
	onesBroadcast      uint64 = 0x0101010101010101
	highBitBroadcast   uint64 = 0x8080808080808080
)

// zeroByteMask returns a word with bit pos*8+7 set for every zero byte of x,
// and zero if x has no zero bytes.
// https://graphics.stanford.edu/~seander/bithacks.html#ZeroInWord
func zeroByteMask(x uint64) uint64 {
	return (x - onesBroadcast) &^ x & highBitBroadcast
}

// FNV-1a, folded over the name 16 bits at a time so the hash keeps up with
// the word-at-a-time delimiter scan.
const (
	fnvOffset uint64 = 14695981039346656037
	fnvPrime  uint64 = 1099511628211
)

func hashWord(h, v uint64) uint64 {
	h = (h ^ (v & 0xffff)) * fnvPrime
	h = (h ^ (v >> 16 & 0xffff)) * fnvPrime
	h = (h ^ (v >> 32 & 0xffff)) * fnvPrime
	h = (h ^ (v >> 48)) * fnvPrime
	return h
}

// loadWord reads up to 8 bytes of b starting at i as a little-endian word,
// zero-padding past the end of the slice. It never touches b[len(b):], so a
// scan cannot read past its chunk.
func loadWord(b []byte, i int) uint64 {
	if i+8 <= len(b) {
		return binary.LittleEndian.Uint64(b[i:])
	}
	var w uint64
	for j := len(b) - 1; j >= i; j-- {
		w = w<<8 | uint64(b[j])
	}
	return w
}

// findName scans chunk from pos for the ';' delimiter, hashing the station
// name in the same pass. It returns the delimiter index together with the
// direct hash of chunk[pos:end], or end == -1 when the chunk holds no further
// delimiter. The final partial word is masked down to the name bytes before
// hashing, so the hash depends only on the name, never on its position.
func findName(chunk []byte, pos int) (end int, hash uint64) {
	h := fnvOffset
	for i := pos; i < len(chunk); i += 8 {
		w := loadWord(chunk, i)
		m := zeroByteMask(w ^ semicolonBroadcast)
		if m == 0 {
			h = hashWord(h, w)
			continue
		}
		k := bits.TrailingZeros64(m) >> 3
		if k > 0 {
			mask := uint64(1)<<(8*k) - 1
			h = hashWord(h, w&mask)
		}
		return i + k, h
	}
	return -1, 0
}

// scanChunk tokenizes every record of a chunk and folds it into the table.
// This is the fast configuration: the input is assumed well-formed and no
// shape checks run in the loop. A chunk produced by splitChunks is always
// record-aligned, so the scan starts on a station name.
func scanChunk(chunk []byte, t *statTable) {
	for i := 0; i < len(chunk); {
		end, hash := findName(chunk, i)
		if end < 0 {
			return
		}
		temp, next := parseTemp(chunk, end+1)
		t.upsert(chunk[i:end], hash, temp)
		i = next + 1 // skip the line terminator
	}
}

// scanChunkChecked is the validating twin of scanChunk: same tokenization,
// but every record is checked against the expected shape and the first
// malformed one aborts the scan with errInvalidRecord.
func scanChunkChecked(chunk []byte, t *statTable) error {
	for i := 0; i < len(chunk); {
		end, hash := findName(chunk, i)
		if end < 0 {
			return fmt.Errorf("%w: no delimiter before chunk end at offset %d", errInvalidRecord, i)
		}
		if end == i {
			return fmt.Errorf("%w: empty station name at offset %d", errInvalidRecord, i)
		}
		if j := bytes.IndexByte(chunk[i:end], '\n'); j >= 0 {
			return fmt.Errorf("%w: record without delimiter at offset %d", errInvalidRecord, i)
		}
		vstart := end + 1
		vend := vstart
		for vend < len(chunk) && chunk[vend] != '\n' {
			vend++
		}
		temp, err := parseTempChecked(chunk[vstart:vend])
		if err != nil {
			return fmt.Errorf("offset %d: %w", vstart, err)
		}
		t.upsert(chunk[i:end], hash, temp)
		i = vend + 1
	}
	return nil
}
