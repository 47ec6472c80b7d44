// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sweep

// Best is the ratio with the highest throughput at one depth.
type Best struct {
	Depth      int
	Ratio      float64
	Throughput float64
}

// BestRatios returns, for each depth of s in increasing order, the
// ratio with the highest throughput at that depth. When several
// ratios tie, the one that appeared first in the input wins.
func BestRatios(s *Series[float64]) []Best {
	if s == nil {
		return nil
	}
	var out []Best
	ratios := s.Ratios()
	for _, depth := range s.Depths() {
		var best Best
		found := false
		for _, ratio := range ratios {
			v, ok := s.At(ratio, depth)
			if !ok {
				continue
			}
			if !found || v > best.Throughput {
				best = Best{depth, ratio, v}
				found = true
			}
		}
		if found {
			out = append(out, best)
		}
	}
	return out
}

// An OpSummary summarizes the throughput of one operation.
type OpSummary struct {
	Op      string
	Best    []Best
	Ranking []RatioScore
}

// Summarize summarizes every operation of g, in the order of
// g.Ops.
func Summarize(g *Grid[float64]) []OpSummary {
	var out []OpSummary
	for _, op := range g.Ops() {
		s := g.Op(op)
		out = append(out, OpSummary{
			Op:      op,
			Best:    BestRatios(s),
			Ranking: RankRatios(s),
		})
	}
	return out
}
