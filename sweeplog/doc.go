// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package sweeplog reads the console output of a Google Benchmark
// compaction-ratio sweep.
//
// A sweep log interleaves two kinds of lines. A ratio announcement
// sets the compaction ratio under which the following results were
// measured:
//
//	Testing Compaction Ratio: 0.75
//
// A result line reports one benchmark at one order book depth:
//
//	BM_AddOrder_No_Match/1000   337 ns   337 ns   2202227 items_per_second=2.97052M/s p50=310 p99=1.2k
//
// Every other line is ignored. A result line is only reported once a
// ratio has been announced in the same input; earlier result lines
// are dropped and counted in Stats.Orphaned.
//
// Throughput is normalized to millions of items per second and
// latency percentiles to nanoseconds.
package sweeplog
