package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/andreyvit/diff"
	"github.com/pkg/profile"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("brc: ")

	if len(os.Args) < 2 {
		usage()
	}
	switch os.Args[1] {
	case "bench":
		runBench(os.Args[2:])
	case "base":
		runBase(os.Args[2:])
	case "profile":
		runProfile(os.Args[2:])
	default:
		usage()
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `usage:
  %[1]s bench [-f file] [-r repeats] [-p workers] [-n bytes] version...
  %[1]s base [-f file] [-p workers] [-n bytes] [-v version]
  %[1]s profile [-f file] [-p workers] [-v version]

versions: %[2]s
`, filepath.Base(os.Args[0]), strings.Join(versionNames(), ", "))
	os.Exit(2)
}

func versionNames() []string {
	names := make([]string, len(versions))
	for i, v := range versions {
		names[i] = v.name
	}
	return names
}

// runBench times the selected versions over the same mapped buffer,
// interleaving them across repeats so cache warmth and clock drift spread
// evenly instead of favoring whoever runs last. The engine performs no
// timing of its own; the wall clock wraps each call from the outside.
func runBench(args []string) {
	fs := flag.NewFlagSet("bench", flag.ExitOnError)
	file := fs.String("f", "data/measurements.txt", "measurement file")
	repeats := fs.Int("r", 1, "repetitions per version")
	workers := fs.Int("p", runtime.NumCPU(), "worker count")
	maxBytes := fs.Int("n", 0, "truncate the input near this many bytes (0 = whole file)")
	fs.Parse(args)

	if fs.NArg() == 0 {
		log.Fatal("bench: at least one version required")
	}
	selected := make([]version, 0, fs.NArg())
	for _, name := range fs.Args() {
		v, ok := versionByName(name)
		if !ok {
			log.Fatalf("bench: unknown version %q (have %s)", name, strings.Join(versionNames(), ", "))
		}
		selected = append(selected, v)
	}

	data, munmap, err := mmapFile(*file)
	if err != nil {
		log.Fatal(err)
	}
	defer munmap()
	data = truncateRecords(data, *maxBytes)

	expected := readExpected(*file, *maxBytes)

	times := make([][]time.Duration, len(selected))
	for r := 0; r < *repeats; r++ {
		for i, v := range selected {
			fmt.Fprintf(os.Stderr, "repeat %d/%d  %-10s\r", r+1, *repeats, v.name)

			start := time.Now()
			report, err := v.run(data, *workers)
			elapsed := time.Since(start)
			if err != nil {
				log.Fatalf("bench: %s: %v", v.name, err)
			}
			times[i] = append(times[i], elapsed)

			if expected != "" {
				if got := reportToOut(report); got != expected {
					log.Fatalf("bench: %s: report mismatch:\n%s", v.name, diff.LineDiff(expected, got))
				}
			}
		}
	}
	fmt.Fprintf(os.Stderr, "%40s\r", "")

	fmt.Printf("results from %d repetitions (min/avg/max seconds):\n", *repeats)
	for i, v := range selected {
		lo, avg, hi := summarizeTimes(times[i])
		fmt.Printf("%-10s %.2f / %.2f / %.2f\n", v.name, lo.Seconds(), avg.Seconds(), hi.Seconds())
	}
}

// runBase records one version's report as the expected output for later
// bench runs. It refuses to clobber an existing recording.
func runBase(args []string) {
	fs := flag.NewFlagSet("base", flag.ExitOnError)
	file := fs.String("f", "data/measurements.txt", "measurement file")
	workers := fs.Int("p", runtime.NumCPU(), "worker count")
	name := fs.String("v", "checked", "version to record")
	maxBytes := fs.Int("n", 0, "truncate the input near this many bytes (0 = whole file)")
	fs.Parse(args)

	v, ok := versionByName(*name)
	if !ok {
		log.Fatalf("base: unknown version %q", *name)
	}

	out := outPath(*file, *maxBytes)
	if _, err := os.Stat(out); err == nil {
		log.Fatalf("base: output already exists: %s", out)
	}

	data, munmap, err := mmapFile(*file)
	if err != nil {
		log.Fatal(err)
	}
	defer munmap()
	data = truncateRecords(data, *maxBytes)

	report, err := v.run(data, *workers)
	if err != nil {
		log.Fatalf("base: %s: %v", v.name, err)
	}
	if err := os.WriteFile(out, []byte(reportToOut(report)+"\n"), 0o644); err != nil {
		log.Fatal(err)
	}
	fmt.Printf("baseline output written to %s\n", out)
}

// runProfile runs a version once under a CPU profile.
func runProfile(args []string) {
	fs := flag.NewFlagSet("profile", flag.ExitOnError)
	file := fs.String("f", "data/measurements.txt", "measurement file")
	workers := fs.Int("p", runtime.NumCPU(), "worker count")
	name := fs.String("v", "fast", "version to profile")
	fs.Parse(args)

	v, ok := versionByName(*name)
	if !ok {
		log.Fatalf("profile: unknown version %q", *name)
	}

	data, munmap, err := mmapFile(*file)
	if err != nil {
		log.Fatal(err)
	}
	defer munmap()

	p := profile.Start(profile.CPUProfile, profile.ProfilePath("."))
	start := time.Now()
	_, err = v.run(data, *workers)
	elapsed := time.Since(start)
	p.Stop()

	if err != nil {
		log.Fatalf("profile: %s: %v", v.name, err)
	}
	fmt.Printf("%s: %.2fs\n", v.name, elapsed.Seconds())
}

// reportToOut converts the braced report into the line-per-station form
// stored in .out files.
func reportToOut(report string) string {
	s := strings.TrimSuffix(strings.TrimPrefix(report, "{"), "}")
	return strings.ReplaceAll(s, ", ", "\n")
}

// outPath derives the expected-output path: measurements.txt becomes
// measurements.out, or measurements_5000.out when the input is truncated.
func outPath(file string, maxBytes int) string {
	base := strings.TrimSuffix(file, filepath.Ext(file))
	if maxBytes > 0 {
		base = fmt.Sprintf("%s_%d", base, maxBytes)
	}
	return base + ".out"
}

func readExpected(file string, maxBytes int) string {
	b, err := os.ReadFile(outPath(file, maxBytes))
	if err != nil {
		return ""
	}
	return strings.TrimRight(string(b), "\n")
}

func summarizeTimes(ts []time.Duration) (lo, avg, hi time.Duration) {
	lo, hi = ts[0], ts[0]
	var total time.Duration
	for _, t := range ts {
		lo = min(lo, t)
		hi = max(hi, t)
		total += t
	}
	return lo, total / time.Duration(len(ts)), hi
}
