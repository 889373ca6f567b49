package main

// A summarizeFunc computes the full report for a measurement buffer using at
// most the given number of workers. All versions must agree byte for byte on
// the same buffer; only their speed differs.
type summarizeFunc func(data []byte, workers int) (string, error)

type version struct {
	name string
	run  summarizeFunc
}

// versions lists the competing engine variants, slowest first. The bench
// harness selects them by name and interleaves their runs.
var versions = []version{
	{"baseline", summarizeBaseline},
	{"swiss", summarizeSwiss},
	{"checked", SummarizeChecked},
	{"fast", Summarize},
}

func versionByName(name string) (version, bool) {
	for _, v := range versions {
		if v.name == name {
			return v, true
		}
	}
	return version{}, false
}
