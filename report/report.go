// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package report renders a sweep study as text, CSV, JSON, HTML and
// charts. Nothing in this package modifies the study it is given.
package report

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/orderbook/ratiostudy/sweep"
)

var numbers = message.NewPrinter(language.English)

// DepthLabel describes an order book depth for a legend or table:
// "cold start" for 0 and "1,000 orders" for 1000.
func DepthLabel(depth int) string {
	if depth == 0 {
		return "cold start"
	}
	return numbers.Sprintf("%d orders", depth)
}

// RatioLabel describes a compaction ratio for a legend.
func RatioLabel(ratio float64) string {
	return fmt.Sprintf("Ratio %.2f", ratio)
}

// FileStem turns an operation name into something safe to use in a
// file name.
func FileStem(op string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_', r == '.':
			return r
		}
		return '_'
	}, op)
}

// A point is one throughput value, for the flat output formats.
type point struct {
	op    string
	ratio float64
	depth int
	mops  float64
}

// throughputPoints lists every value of g by operation, then
// increasing ratio, then increasing depth.
func throughputPoints(g *sweep.Grid[float64]) []point {
	var out []point
	for _, op := range g.Ops() {
		s := g.Op(op)
		depths := s.Depths()
		for _, ratio := range s.SortedRatios() {
			for _, depth := range depths {
				if v, ok := s.At(ratio, depth); ok {
					out = append(out, point{op, ratio, depth, v})
				}
			}
		}
	}
	return out
}

// A latencyPoint is one percentile value.
type latencyPoint struct {
	op    string
	ratio float64
	depth int
	label string
	ns    float64
}

// latencyPoints is like throughputPoints for latency. Percentiles at
// one point keep their input order.
func latencyPoints(g *sweep.Grid[*sweep.Percentiles]) []latencyPoint {
	var out []latencyPoint
	for _, op := range g.Ops() {
		s := g.Op(op)
		depths := s.Depths()
		for _, ratio := range s.SortedRatios() {
			for _, depth := range depths {
				ps, ok := s.At(ratio, depth)
				if !ok {
					continue
				}
				for _, label := range ps.Labels() {
					ns, _ := ps.Get(label)
					out = append(out, latencyPoint{op, ratio, depth, label, ns})
				}
			}
		}
	}
	return out
}
