// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sweep

import (
	"math"
	"sort"

	"github.com/aclements/go-moremath/stats"
)

// A RatioScore condenses the throughput of one ratio across all the
// depths it was measured at.
type RatioScore struct {
	Ratio   float64
	Depths  int     // number of depths measured
	Mean    float64 // arithmetic mean throughput
	GeoMean float64 // geometric mean throughput; NaN unless all values are >0
}

// RankRatios scores every ratio of s and orders them from the
// highest geometric mean throughput to the lowest. Ratios whose
// geometric mean is undefined come last. Ties keep input order.
func RankRatios(s *Series[float64]) []RatioScore {
	if s == nil {
		return nil
	}
	var out []RatioScore
	for _, ratio := range s.Ratios() {
		var xs []float64
		for _, depth := range s.DepthsAt(ratio) {
			v, _ := s.At(ratio, depth)
			xs = append(xs, v)
		}
		out = append(out, RatioScore{
			Ratio:   ratio,
			Depths:  len(xs),
			Mean:    stats.Mean(xs),
			GeoMean: stats.GeoMean(xs),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		gi, gj := out[i].GeoMean, out[j].GeoMean
		if math.IsNaN(gj) {
			return !math.IsNaN(gi)
		}
		return gi > gj
	})
	return out
}
