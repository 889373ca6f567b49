package main

import (
	"bytes"
	"math/bits"
)

// stationStats is one station's running aggregate. Sum is widened to int64:
// a billion observations of 99.9 still fit with room to spare, which int32
// does not give.
type stationStats struct {
	min   Temperature
	max   Temperature
	sum   int64
	count uint32
}

func (s *stationStats) add(t Temperature) {
	s.min = min(s.min, t)
	s.max = max(s.max, t)
	s.sum += int64(t)
	s.count++
}

func (s *stationStats) merge(o *stationStats) {
	s.min = min(s.min, o.min)
	s.max = max(s.max, o.max)
	s.sum += o.sum
	s.count += o.count
}

// mean returns the arithmetic mean in tenths, rounding a half away from
// zero. count is never zero: no entry exists without at least one add.
func (s *stationStats) mean() Temperature {
	sum := s.sum
	neg := sum < 0
	if neg {
		sum = -sum
	}
	c := int64(s.count)
	m := sum / c
	if (sum%c)*2 >= c {
		m++
	}
	if neg {
		m = -m
	}
	return Temperature(m)
}

type tableEntry struct {
	hash  uint64
	name  []byte // table-owned copy; nil marks an empty slot
	stats stationStats
}

// statTable maps station-name bytes to their stationStats using open
// addressing with linear probing. The hash is supplied by the caller: the
// tokenizer already touched every name byte to find the delimiter, so the
// table never hashes a key itself, not on insert and not on growth. Equal
// hashes do not imply equal keys, so probing always byte-compares on a hash
// match.
type statTable struct {
	entries []tableEntry
	mask    uint64
	used    int
}

// newStatTable sizes the table for about capacity distinct stations before
// the first growth.
func newStatTable(capacity int) *statTable {
	if capacity < 8 {
		capacity = 8
	}
	size := 1 << bits.Len(uint(2*capacity-1))
	return &statTable{
		entries: make([]tableEntry, size),
		mask:    uint64(size - 1),
	}
}

// upsert locates or creates the entry for name and folds temp into its
// aggregate. hash must be the direct hash the tokenizer computed for these
// name bytes. On first insert the name is copied into table-owned storage:
// the chunk it points into is only borrowed for the scan phase.
func (t *statTable) upsert(name []byte, hash uint64, temp Temperature) {
	i := hash & t.mask
	for {
		e := &t.entries[i]
		if e.name == nil {
			owned := make([]byte, len(name))
			copy(owned, name)
			*e = tableEntry{
				hash:  hash,
				name:  owned,
				stats: stationStats{min: temp, max: temp, sum: int64(temp), count: 1},
			}
			t.grew()
			return
		}
		if e.hash == hash && bytes.Equal(e.name, name) {
			e.stats.add(temp)
			return
		}
		i = (i + 1) & t.mask
	}
}

// mergeFrom combines another table's entries into this one, as if both had
// seen all the input. The operation is associative and commutative, so
// per-worker tables can be folded in any order. The other table is consumed:
// its (already owned) name slices are adopted rather than copied.
func (t *statTable) mergeFrom(o *statTable) {
	for i := range o.entries {
		if e := &o.entries[i]; e.name != nil {
			t.foldEntry(e.hash, e.name, &e.stats)
		}
	}
}

func (t *statTable) foldEntry(hash uint64, name []byte, s *stationStats) {
	i := hash & t.mask
	for {
		e := &t.entries[i]
		if e.name == nil {
			*e = tableEntry{hash: hash, name: name, stats: *s}
			t.grew()
			return
		}
		if e.hash == hash && bytes.Equal(e.name, name) {
			e.stats.merge(s)
			return
		}
		i = (i + 1) & t.mask
	}
}

func (t *statTable) grew() {
	t.used++
	if 2*t.used > len(t.entries) {
		t.grow()
	}
}

// grow doubles the table and redistributes the existing entries by their
// stored hash. Keys are never rehashed; the hash travels with the entry.
func (t *statTable) grow() {
	old := t.entries
	t.entries = make([]tableEntry, 2*len(old))
	t.mask = uint64(len(t.entries) - 1)
	for i := range old {
		e := &old[i]
		if e.name == nil {
			continue
		}
		j := e.hash & t.mask
		for t.entries[j].name != nil {
			j = (j + 1) & t.mask
		}
		t.entries[j] = *e
	}
}

// each visits every occupied entry in table order.
func (t *statTable) each(f func(name []byte, s *stationStats)) {
	for i := range t.entries {
		if e := &t.entries[i]; e.name != nil {
			f(e.name, &e.stats)
		}
	}
}
