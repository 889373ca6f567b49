package main

import "sort"

// reportEntry is one line of the final report, fully merged.
type reportEntry struct {
	name  string
	stats stationStats
}

// reduceTables folds all per-worker tables into the first one. A sequential
// fold is enough: merging dominates nothing, the scan phase does.
func reduceTables(tables []*statTable) *statTable {
	global := tables[0]
	for _, t := range tables[1:] {
		global.mergeFrom(t)
	}
	return global
}

func collectEntries(t *statTable) []reportEntry {
	entries := make([]reportEntry, 0, t.used)
	t.each(func(name []byte, s *stationStats) {
		entries = append(entries, reportEntry{name: string(name), stats: *s})
	})
	return entries
}

// renderReport sorts the entries by station name and renders the report:
// "{Name=min/mean/max, ...}", each figure with exactly one fractional digit.
// Station names are opaque byte strings, so the sort is byte-lexicographic.
func renderReport(entries []reportEntry) string {
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].name < entries[j].name
	})

	buf := make([]byte, 0, 2+32*len(entries))
	buf = append(buf, '{')
	for i := range entries {
		e := &entries[i]
		if i > 0 {
			buf = append(buf, ',', ' ')
		}
		buf = append(buf, e.name...)
		buf = append(buf, '=')
		buf = appendTemp(buf, e.stats.min)
		buf = append(buf, '/')
		buf = appendTemp(buf, e.stats.mean())
		buf = append(buf, '/')
		buf = appendTemp(buf, e.stats.max)
	}
	buf = append(buf, '}')
	return string(buf)
}
