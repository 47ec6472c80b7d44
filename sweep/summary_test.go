// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sweep

import (
	"math"
	"reflect"
	"testing"
)

type pt struct {
	ratio float64
	depth int
	mops  float64
}

func series(t *testing.T, points ...pt) *Series[float64] {
	t.Helper()
	var b Builder
	for _, p := range points {
		b.SetThroughput("op", p.ratio, p.depth, p.mops)
	}
	return b.Model().Throughput.Op("op")
}

func TestBestRatios(t *testing.T) {
	s := series(t,
		pt{0.5, 1000, 2.1},
		pt{0.75, 1000, 3.4},
		pt{0.9, 1000, 3.0},
		pt{0.5, 0, 1.0},
		pt{0.9, 0, 1.5},
		pt{0.75, 10, 0.2},
	)
	want := []Best{
		{Depth: 0, Ratio: 0.9, Throughput: 1.5},
		{Depth: 10, Ratio: 0.75, Throughput: 0.2},
		{Depth: 1000, Ratio: 0.75, Throughput: 3.4},
	}
	if got := BestRatios(s); !reflect.DeepEqual(got, want) {
		t.Errorf("got %+v\nwant %+v", got, want)
	}
}

func TestBestRatiosTie(t *testing.T) {
	// The first maximum in input order wins, not the lowest ratio
	// nor the last one.
	s := series(t,
		pt{0.9, 100, 2},
		pt{0.5, 100, 2},
		pt{0.75, 100, 1},
	)
	want := []Best{{Depth: 100, Ratio: 0.9, Throughput: 2}}
	if got := BestRatios(s); !reflect.DeepEqual(got, want) {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestBestRatiosZero(t *testing.T) {
	// A depth with only zero throughput still has a best ratio.
	s := series(t, pt{0.5, 0, 0}, pt{0.6, 0, 0})
	want := []Best{{Depth: 0, Ratio: 0.5, Throughput: 0}}
	if got := BestRatios(s); !reflect.DeepEqual(got, want) {
		t.Errorf("got %+v, want %+v", got, want)
	}
	if BestRatios(nil) != nil {
		t.Error("BestRatios(nil) != nil")
	}
}

func TestRankRatios(t *testing.T) {
	s := series(t,
		pt{0.5, 1, 2}, pt{0.5, 2, 8}, // geomean 4
		pt{0.75, 1, 5}, pt{0.75, 2, 5}, // geomean 5
		pt{0.9, 1, 0}, pt{0.9, 2, 100}, // undefined
		pt{0.95, 1, 1},
	)
	got := RankRatios(s)
	order := make([]float64, len(got))
	for i, r := range got {
		order[i] = r.Ratio
	}
	if want := []float64{0.75, 0.5, 0.95, 0.9}; !reflect.DeepEqual(order, want) {
		t.Errorf("order %v, want %v", order, want)
	}
	if g := got[1].GeoMean; math.Abs(g-4) > 1e-9 {
		t.Errorf("geomean of 0.5 = %v, want 4", g)
	}
	if got[1].Mean != 5 || got[1].Depths != 2 {
		t.Errorf("0.5 scored %+v, want mean 5 over 2 depths", got[1])
	}
	if !math.IsNaN(got[3].GeoMean) {
		t.Errorf("geomean with a zero = %v, want NaN", got[3].GeoMean)
	}
}

func TestSummarize(t *testing.T) {
	var b Builder
	b.SetThroughput("B", 0.5, 1, 1)
	b.SetThroughput("A", 0.5, 1, 2)
	sum := Summarize(b.Model().Throughput)
	if len(sum) != 2 || sum[0].Op != "B" || sum[1].Op != "A" {
		t.Fatalf("got %+v", sum)
	}
	if len(sum[1].Best) != 1 || sum[1].Best[0].Throughput != 2 {
		t.Errorf("A best %+v", sum[1].Best)
	}
	if len(sum[1].Ranking) != 1 {
		t.Errorf("A ranking %+v", sum[1].Ranking)
	}
}
