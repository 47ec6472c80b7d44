// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sweep

import "github.com/orderbook/ratiostudy/sweeplog"

// A Builder accumulates records into a Model.
//
// Values are keyed by (benchmark, ratio, depth). A later record for
// the same key replaces the earlier one, percentiles included;
// nothing is averaged.
type Builder struct {
	m       *Model
	records int
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{m: newModel()}
}

// Add adds rec, measured at rec.Ratio, to the model.
func (b *Builder) Add(rec *sweeplog.Record) {
	b.records++
	b.SetThroughput(rec.Name, rec.Ratio, rec.Depth, rec.Throughput)

	lat := b.model().Latency
	if len(rec.Percentiles) == 0 {
		lat.remove(rec.Name, rec.Ratio, rec.Depth)
		return
	}
	ps := new(Percentiles)
	for _, p := range rec.Percentiles {
		ps.put(p.Label, p.Nanos)
	}
	lat.series(rec.Name).set(rec.Ratio, rec.Depth, ps)
}

// SetThroughput sets the throughput, in millions of operations per
// second, of op at (ratio, depth).
func (b *Builder) SetThroughput(op string, ratio float64, depth int, mops float64) {
	b.model().Throughput.series(op).set(ratio, depth, mops)
}

// SetLatency sets the latency percentile label of op at
// (ratio, depth) to ns nanoseconds. Other percentiles at the same
// point are kept, which is how Consolidate merges the latency of
// several benchmarks.
func (b *Builder) SetLatency(op string, ratio float64, depth int, label string, ns float64) {
	ps := b.model().Latency.series(op).cell(ratio, depth, func() *Percentiles { return new(Percentiles) })
	ps.put(label, ns)
}

// Records returns the number of records added with Add.
func (b *Builder) Records() int {
	return b.records
}

// Model returns the model built so far. The Builder starts over
// with an empty model, so the returned Model is never modified
// again.
func (b *Builder) Model() *Model {
	m := b.model()
	b.m = nil
	b.records = 0
	return m
}

func (b *Builder) model() *Model {
	if b.m == nil {
		b.m = newModel()
	}
	return b.m
}
