package main

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStatTable_Upsert(t *testing.T) {
	table := newStatTable(8)
	name := []byte("Hamburg")
	h := hashOf("Hamburg")

	table.upsert(name, h, 123)
	table.upsert(name, h, -45)
	table.upsert(name, h, 200)

	require.Equal(t, 1, table.used)
	table.each(func(gotName []byte, s *stationStats) {
		require.Equal(t, "Hamburg", string(gotName))
		require.Equal(t, Temperature(-45), s.min)
		require.Equal(t, Temperature(200), s.max)
		require.EqualValues(t, 278, s.sum)
		require.EqualValues(t, 3, s.count)
	})
}

// Equal hash does not imply equal key: two names inserted under the very
// same hash must still get separate entries.
func TestStatTable_HashCollision(t *testing.T) {
	table := newStatTable(8)
	const h = uint64(0xdeadbeef)

	table.upsert([]byte("Hamburg"), h, 10)
	table.upsert([]byte("Bulawayo"), h, 20)
	table.upsert([]byte("Hamburg"), h, 30)

	require.Equal(t, 2, table.used)
	got := map[string]uint32{}
	table.each(func(name []byte, s *stationStats) {
		got[string(name)] = s.count
	})
	require.Equal(t, map[string]uint32{"Hamburg": 2, "Bulawayo": 1}, got)
}

// The table must own its keys: mutating the scanned buffer after an upsert
// must not change stored names.
func TestStatTable_CopiesNames(t *testing.T) {
	table := newStatTable(8)
	buf := []byte("Odesa")
	table.upsert(buf, hashOf("Odesa"), 5)
	copy(buf, "XXXXX")

	table.each(func(name []byte, _ *stationStats) {
		require.Equal(t, "Odesa", string(name))
	})
}

// Growth redistributes the stored (key, hash, aggregate) triples; nothing
// may be lost or double-counted no matter how often the table doubles.
func TestStatTable_Growth(t *testing.T) {
	table := newStatTable(8)
	const stations = 1000

	for i := 0; i < stations; i++ {
		name := fmt.Sprintf("station-%04d", i)
		table.upsert([]byte(name), hashOf(name), Temperature(i%1999-999))
		table.upsert([]byte(name), hashOf(name), Temperature(i%1999-999))
	}

	require.Equal(t, stations, table.used)
	seen := 0
	table.each(func(_ []byte, s *stationStats) {
		seen++
		require.EqualValues(t, 2, s.count)
		require.Equal(t, s.min, s.max)
	})
	require.Equal(t, stations, seen)
}

// Merging a fixed set of tables in any permutation must produce the same
// aggregates, which is what allows any reduction order.
func TestStatTable_MergeOrderIndependent(t *testing.T) {
	records := func(seed int64, n int) *statTable {
		rng := rand.New(rand.NewSource(seed))
		table := newStatTable(8)
		for i := 0; i < n; i++ {
			name := fmt.Sprintf("st-%02d", rng.Intn(40))
			table.upsert([]byte(name), hashOf(name), Temperature(rng.Intn(1999)-999))
		}
		return table
	}

	build := func(order []int) string {
		tables := make([]*statTable, 3)
		for i, seed := range order {
			tables[i] = records(int64(seed), 500)
		}
		return renderReport(collectEntries(reduceTables(tables)))
	}

	want := build([]int{1, 2, 3})
	require.Equal(t, want, build([]int{3, 2, 1}))
	require.Equal(t, want, build([]int{2, 3, 1}))
	require.Equal(t, want, build([]int{1, 3, 2}))
}
