// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package report

import (
	"encoding/json"
	"io"
	"math"

	"github.com/orderbook/ratiostudy/sweep"
	"github.com/orderbook/ratiostudy/sweeplog"
)

// jsonStudy is the JSON form of a study. Maps keyed by floats don't
// survive JSON, so the model is flattened into points.
type jsonStudy struct {
	Stats      *sweeplog.Stats `json:"stats,omitempty"`
	Throughput []jsonPoint     `json:"throughput"`
	Latency    []jsonLatency   `json:"latency,omitempty"`
	Summary    []jsonSummary   `json:"summary"`
}

type jsonPoint struct {
	Op    string  `json:"op"`
	Ratio float64 `json:"ratio"`
	Depth int     `json:"depth"`
	MOps  float64 `json:"mops"`
}

type jsonLatency struct {
	Op         string  `json:"op"`
	Ratio      float64 `json:"ratio"`
	Depth      int     `json:"depth"`
	Percentile string  `json:"percentile"`
	Nanos      float64 `json:"ns"`
}

type jsonSummary struct {
	Op      string      `json:"op"`
	Best    []jsonBest  `json:"best"`
	Ranking []jsonScore `json:"ranking"`
}

type jsonBest struct {
	Depth int     `json:"depth"`
	Ratio float64 `json:"ratio"`
	MOps  float64 `json:"mops"`
}

type jsonScore struct {
	Ratio   float64  `json:"ratio"`
	Depths  int      `json:"depths"`
	Mean    float64  `json:"mean"`
	GeoMean *float64 `json:"geomean"` // null when undefined
}

// WriteJSON writes the canonical model and summary of st as indented
// JSON.
func WriteJSON(w io.Writer, st *sweep.Study) error {
	out := jsonStudy{
		Throughput: []jsonPoint{},
		Summary:    []jsonSummary{},
	}
	if st.Stats != (sweeplog.Stats{}) {
		stats := st.Stats
		out.Stats = &stats
	}
	for _, p := range throughputPoints(st.Canonical.Throughput) {
		out.Throughput = append(out.Throughput, jsonPoint{p.op, p.ratio, p.depth, p.mops})
	}
	for _, p := range latencyPoints(st.Canonical.Latency) {
		out.Latency = append(out.Latency, jsonLatency{p.op, p.ratio, p.depth, p.label, p.ns})
	}
	for _, op := range st.Summary {
		js := jsonSummary{Op: op.Op, Best: []jsonBest{}, Ranking: []jsonScore{}}
		for _, b := range op.Best {
			js.Best = append(js.Best, jsonBest{b.Depth, b.Ratio, b.Throughput})
		}
		for _, r := range op.Ranking {
			sc := jsonScore{Ratio: r.Ratio, Depths: r.Depths, Mean: r.Mean}
			if !math.IsNaN(r.GeoMean) {
				gm := r.GeoMean
				sc.GeoMean = &gm
			}
			js.Ranking = append(js.Ranking, sc)
		}
		out.Summary = append(out.Summary, js)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "\t")
	return enc.Encode(out)
}
