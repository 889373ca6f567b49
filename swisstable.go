package main

import (
	"bytes"

	"github.com/dolthub/swiss"
)

// summarizeSwiss runs the parallel chunk pipeline over a swiss map keyed by
// the station name, letting the map do its own hashing. It exists as a
// middle ground between the baseline and the direct-hash engine: same
// partitioning and fixed-point decoding, off-the-shelf table.
func summarizeSwiss(data []byte, workers int) (string, error) {
	chunks := splitChunks(data, workerCount(workers))

	results := make(chan *swiss.Map[string, *stationStats], len(chunks))
	for _, chunk := range chunks {
		go func(chunk []byte) {
			m := swiss.NewMap[string, *stationStats](initialStations)
			for i := 0; i < len(chunk); {
				j := bytes.IndexByte(chunk[i:], ';')
				if j < 0 {
					break
				}
				name := chunk[i : i+j]
				temp, next := parseTemp(chunk, i+j+1)
				if st, found := m.Get(string(name)); found {
					st.add(temp)
				} else {
					m.Put(string(name), &stationStats{min: temp, max: temp, sum: int64(temp), count: 1})
				}
				i = next + 1
			}
			results <- m
		}(chunk)
	}

	merged := <-results
	for i := 1; i < len(chunks); i++ {
		m := <-results
		m.Iter(func(name string, st *stationStats) bool {
			if cur, found := merged.Get(name); found {
				cur.merge(st)
			} else {
				merged.Put(name, st)
			}
			return false
		})
	}

	entries := make([]reportEntry, 0, merged.Count())
	merged.Iter(func(name string, st *stationStats) bool {
		entries = append(entries, reportEntry{name: name, stats: *st})
		return false
	})
	return renderReport(entries), nil
}
