package main

import (
	"bufio"
	"bytes"
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/exp/maps"
)

// summarizeBaseline is the reference implementation: a bufio scanner, the
// stdlib map and strconv, no tricks. Every other version is measured against
// it and must produce a byte-identical report.
func summarizeBaseline(data []byte, workers int) (string, error) {
	_ = workers // single-threaded on purpose

	stats := make(map[string]*stationStats, initialStations)

	s := bufio.NewScanner(bytes.NewReader(data))
	for s.Scan() {
		line := s.Text()
		name, value, ok := strings.Cut(line, ";")
		if !ok || name == "" {
			return "", fmt.Errorf("%w: line %q", errInvalidRecord, line)
		}
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return "", fmt.Errorf("%w: line %q: %v", errInvalidRecord, line, err)
		}
		temp := Temperature(math.Round(v * 10))

		if st, found := stats[name]; found {
			st.add(temp)
		} else {
			stats[name] = &stationStats{min: temp, max: temp, sum: int64(temp), count: 1}
		}
	}
	if err := s.Err(); err != nil {
		return "", err
	}

	entries := make([]reportEntry, 0, len(stats))
	for _, name := range maps.Keys(stats) {
		entries = append(entries, reportEntry{name: name, stats: *stats[name]})
	}
	return renderReport(entries), nil
}
