package main

import (
	"errors"
	"runtime"

	"golang.org/x/sync/errgroup"
)

var (
	// errInvalidRecord marks a record that fails the StationName;Temperature
	// shape. Only the checked configuration looks for it; the fast one
	// assumes well-formed input and produces undefined numbers instead.
	errInvalidRecord = errors.New("invalid record format")

	// errChunkAlignment marks a partitioning that failed to line up with
	// record boundaries. Fatal before any scanning begins.
	errChunkAlignment = errors.New("chunk not aligned to record boundary")
)

// initialStations sizes each worker's table. The reference data set has
// ~400 distinct stations; the table grows on its own past this.
const initialStations = 1 << 10

func workerCount(workers int) int {
	if workers < 1 {
		return runtime.NumCPU()
	}
	return workers
}

// Summarize is the engine entry point: it aggregates the whole measurement
// buffer into the rendered report. One goroutine scans each chunk into its
// own table with nothing shared, the join barrier is the results channel,
// and the tables are merged only after every worker is done. The worker
// count affects speed, never the report.
//
// This is the fast configuration: malformed input is not detected. Use
// SummarizeChecked when the input is not trusted.
func Summarize(data []byte, workers int) (string, error) {
	chunks := splitChunks(data, workerCount(workers))

	results := make(chan *statTable, len(chunks))
	for _, chunk := range chunks {
		go func(chunk []byte) {
			t := newStatTable(initialStations)
			scanChunk(chunk, t)
			results <- t
		}(chunk)
	}

	tables := make([]*statTable, 0, len(chunks))
	for range chunks {
		tables = append(tables, <-results)
	}
	return renderReport(collectEntries(reduceTables(tables))), nil
}

// SummarizeChecked is the checked configuration of the engine: identical
// aggregation, but the partitioning is validated up front and every record
// is shape-checked during the scan. The first fault aborts the whole
// computation; there is no partial report.
func SummarizeChecked(data []byte, workers int) (string, error) {
	chunks := splitChunks(data, workerCount(workers))
	if err := validateChunks(data, chunks); err != nil {
		return "", err
	}

	tables := make([]*statTable, len(chunks))
	var g errgroup.Group
	for i, chunk := range chunks {
		i, chunk := i, chunk
		g.Go(func() error {
			t := newStatTable(initialStations)
			if err := scanChunkChecked(chunk, t); err != nil {
				return err
			}
			tables[i] = t
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return "", err
	}
	return renderReport(collectEntries(reduceTables(tables))), nil
}
