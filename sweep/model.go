// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sweep

import "sort"

// A Grid holds one value per (operation, ratio, depth).
//
// Operations are benchmark names in a raw model and canonical
// operation names in a consolidated one.
type Grid[V any] struct {
	ops index[string, *Series[V]]
}

// A Series is the part of a Grid for a single operation, keyed by
// ratio and then depth.
type Series[V any] struct {
	Name   string
	ratios index[float64, *index[int, V]]
}

// Ops returns the operations in g in the order they first appeared.
func (g *Grid[V]) Ops() []string {
	return g.ops.ordered()
}

// Len returns the number of operations in g.
func (g *Grid[V]) Len() int {
	return g.ops.len()
}

// Op returns the series for op, or nil if g has no values for op.
func (g *Grid[V]) Op(op string) *Series[V] {
	s, _ := g.ops.get(op)
	return s
}

// Get returns the value at (op, ratio, depth).
func (g *Grid[V]) Get(op string, ratio float64, depth int) (V, bool) {
	s := g.Op(op)
	if s == nil {
		var zero V
		return zero, false
	}
	return s.At(ratio, depth)
}

// series returns the series for op, creating it if necessary.
func (g *Grid[V]) series(op string) *Series[V] {
	return g.ops.ensure(op, func() *Series[V] { return &Series[V]{Name: op} })
}

// remove deletes the value at (op, ratio, depth), along with the
// ratio and the operation if nothing else is left under them.
func (g *Grid[V]) remove(op string, ratio float64, depth int) {
	s := g.Op(op)
	if s == nil {
		return
	}
	ds, ok := s.ratios.get(ratio)
	if !ok {
		return
	}
	ds.delete(depth)
	if ds.len() == 0 {
		s.ratios.delete(ratio)
	}
	if s.ratios.len() == 0 {
		g.ops.delete(op)
	}
}

// Ratios returns the ratios of s in the order they first appeared.
func (s *Series[V]) Ratios() []float64 {
	return s.ratios.ordered()
}

// SortedRatios returns the ratios of s in increasing order.
func (s *Series[V]) SortedRatios() []float64 {
	rs := s.Ratios()
	sort.Float64s(rs)
	return rs
}

// Depths returns every depth recorded at any ratio of s, in
// increasing order.
func (s *Series[V]) Depths() []int {
	seen := make(map[int]bool)
	var ds []int
	for _, r := range s.ratios.keys {
		for _, d := range s.ratios.m[r].keys {
			if !seen[d] {
				seen[d] = true
				ds = append(ds, d)
			}
		}
	}
	sort.Ints(ds)
	return ds
}

// DepthsAt returns the depths recorded at ratio in the order they
// first appeared.
func (s *Series[V]) DepthsAt(ratio float64) []int {
	ds, ok := s.ratios.get(ratio)
	if !ok {
		return nil
	}
	return ds.ordered()
}

// At returns the value at (ratio, depth).
func (s *Series[V]) At(ratio float64, depth int) (V, bool) {
	ds, ok := s.ratios.get(ratio)
	if !ok {
		var zero V
		return zero, false
	}
	return ds.get(depth)
}

// set stores v at (ratio, depth), replacing any earlier value.
func (s *Series[V]) set(ratio float64, depth int, v V) {
	s.ratios.ensure(ratio, func() *index[int, V] { return new(index[int, V]) }).put(depth, v)
}

// cell returns the value at (ratio, depth), first storing mk() if
// there is none.
func (s *Series[V]) cell(ratio float64, depth int, mk func() V) V {
	return s.ratios.ensure(ratio, func() *index[int, V] { return new(index[int, V]) }).ensure(depth, mk)
}

// Percentiles maps percentile labels such as "p99" to latencies in
// nanoseconds.
type Percentiles struct {
	index[string, float64]
}

// Labels returns the percentile labels in the order they first
// appeared.
func (p *Percentiles) Labels() []string {
	return p.ordered()
}

// Get returns the latency for label.
func (p *Percentiles) Get(label string) (float64, bool) {
	return p.get(label)
}

// Len returns the number of percentiles in p.
func (p *Percentiles) Len() int {
	return p.len()
}

// A Model is the aggregated result of a sweep. Throughput values are
// in millions of operations per second and latencies in nanoseconds.
//
// Every result has a throughput; only results that printed
// percentile counters contribute to Latency.
type Model struct {
	Throughput *Grid[float64]
	Latency    *Grid[*Percentiles]
}

func newModel() *Model {
	return &Model{
		Throughput: new(Grid[float64]),
		Latency:    new(Grid[*Percentiles]),
	}
}

// Empty reports whether m holds no measurements.
func (m *Model) Empty() bool {
	return m == nil || m.Throughput.Len() == 0 && m.Latency.Len() == 0
}
