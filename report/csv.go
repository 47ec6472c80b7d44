// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package report

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/orderbook/ratiostudy/sweep"
)

// WriteThroughputCSV writes one row per throughput value of m with
// the columns operation, ratio, depth and mops (millions of
// operations per second).
func WriteThroughputCSV(w io.Writer, m *sweep.Model) error {
	cw := csv.NewWriter(w)
	cw.Write([]string{"operation", "ratio", "depth", "mops"})
	for _, p := range throughputPoints(m.Throughput) {
		cw.Write([]string{p.op, strof(p.ratio), strconv.Itoa(p.depth), strof(p.mops)})
	}
	cw.Flush()
	return cw.Error()
}

// WriteLatencyCSV writes one row per latency percentile of m with the
// columns operation, ratio, depth, percentile and ns.
func WriteLatencyCSV(w io.Writer, m *sweep.Model) error {
	cw := csv.NewWriter(w)
	cw.Write([]string{"operation", "ratio", "depth", "percentile", "ns"})
	for _, p := range latencyPoints(m.Latency) {
		cw.Write([]string{p.op, strof(p.ratio), strconv.Itoa(p.depth), p.label, strof(p.ns)})
	}
	cw.Flush()
	return cw.Error()
}

// strof formats x with the fewest digits that read back exactly.
func strof(x float64) string {
	return strconv.FormatFloat(x, 'g', -1, 64)
}
