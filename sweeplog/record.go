// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sweeplog

// A Record is a single benchmark result parsed from a sweep log.
type Record struct {
	// Ratio is the compaction ratio in effect when the line was read.
	Ratio float64

	// Name is the benchmark name exactly as printed, without the
	// depth argument (for example, "BM_AddOrder_No_Match").
	Name string

	// Depth is the order book depth the benchmark ran at. Depth 0
	// is a cold start.
	Depth int

	// Iters is the iteration count reported by the benchmark.
	Iters int64

	// RealTime and CPUTime are the per-iteration wall and CPU times
	// in nanoseconds.
	RealTime, CPUTime float64

	// Throughput is in millions of items per second.
	Throughput float64

	// Percentiles are the latency percentiles printed on the same
	// line, in the order they appeared. Values are in nanoseconds.
	Percentiles []Percentile

	fileName string
	line     int
}

// A Percentile is one latency percentile counter, such as p99.
type Percentile struct {
	Label string  // "p50", "p99", "p999", ...
	Nanos float64 // value in nanoseconds
}

// Pos returns the file name and 1-based line number the record was
// read from, or "", 0 if it was not read by a Reader.
func (r *Record) Pos() (fileName string, line int) {
	return r.fileName, r.line
}

// Clone makes a copy of r that shares no state with r.
func (r *Record) Clone() *Record {
	r2 := *r
	r2.Percentiles = append([]Percentile(nil), r.Percentiles...)
	return &r2
}
