// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package report

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/brewer"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/orderbook/ratiostudy/sweep"
)

// ChartOptions control how charts are drawn and saved.
type ChartOptions struct {
	// Dir is the directory to write charts into. It is created if
	// necessary.
	Dir string

	// Format is the image format and file extension: "png",
	// "svg", "pdf" and the other formats plot.Save supports.
	// The default is "png".
	Format string

	// Width and Height are the image size. The defaults are 12 by 7
	// inches.
	Width, Height vg.Length
}

func (o *ChartOptions) defaults() {
	if o.Format == "" {
		o.Format = "png"
	}
	if o.Width == 0 {
		o.Width = 12 * vg.Inch
	}
	if o.Height == 0 {
		o.Height = 7 * vg.Inch
	}
}

const throughputAxis = "Throughput (M ops/sec)"

// Charts draws the charts for every operation of m and returns the
// paths of the files it wrote.
//
// For each operation there is a throughput-versus-ratio chart with a
// line per depth and a throughput-versus-depth chart with a line per
// ratio. The depth axis is logarithmic, so cold starts (depth 0) are
// left off the depth chart. Operations with latency percentiles also
// get a latency-versus-ratio chart per percentile.
func Charts(m *sweep.Model, opts ChartOptions) ([]string, error) {
	opts.defaults()
	if err := os.MkdirAll(opts.Dir, 0777); err != nil {
		return nil, err
	}

	var written []string
	save := func(p *plot.Plot, stem string) error {
		path := filepath.Join(opts.Dir, stem+"."+opts.Format)
		if err := p.Save(opts.Width, opts.Height, path); err != nil {
			return fmt.Errorf("saving %s: %w", path, err)
		}
		written = append(written, path)
		return nil
	}

	for _, op := range m.Throughput.Ops() {
		s := m.Throughput.Op(op)
		stem := FileStem(op)

		p, err := ratioChart(s)
		if err != nil {
			return written, err
		}
		if err := save(p, stem+"_ratio_comparison"); err != nil {
			return written, err
		}

		p, err = depthChart(s)
		if err != nil {
			return written, err
		}
		if p != nil {
			if err := save(p, stem+"_depth_comparison"); err != nil {
				return written, err
			}
		}
	}

	for _, op := range m.Latency.Ops() {
		s := m.Latency.Op(op)
		for _, label := range percentileLabels(s) {
			p, err := latencyChart(s, label)
			if err != nil {
				return written, err
			}
			if err := save(p, FileStem(op)+"_"+label+"_latency"); err != nil {
				return written, err
			}
		}
	}
	return written, nil
}

// ratioChart plots throughput against ratio with a line per depth.
func ratioChart(s *sweep.Series[float64]) (*plot.Plot, error) {
	p := newPlot(s.Name+": Throughput vs Compaction Ratio", "Compaction Ratio", throughputAxis)
	depths := s.Depths()
	ratios := s.SortedRatios()
	colors := palette(len(depths))
	for i, depth := range depths {
		var xys plotter.XYs
		for _, ratio := range ratios {
			if v, ok := s.At(ratio, depth); ok {
				xys = append(xys, plotter.XY{X: ratio, Y: v})
			}
		}
		if err := addLine(p, xys, DepthLabel(depth), colors[i]); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// depthChart plots throughput against depth with a line per ratio.
// It returns nil if s has no positive depths.
func depthChart(s *sweep.Series[float64]) (*plot.Plot, error) {
	var depths []int
	for _, d := range s.Depths() {
		if d > 0 {
			depths = append(depths, d)
		}
	}
	if len(depths) == 0 {
		return nil, nil
	}

	p := newPlot(s.Name+": Throughput vs Depth", "Order Book Depth", throughputAxis)
	// A log axis needs a non-empty range; with one depth the
	// axis is padded below zero.
	if len(depths) > 1 {
		p.X.Scale = plot.LogScale{}
	}
	ticks := make([]plot.Tick, len(depths))
	for i, d := range depths {
		ticks[i] = plot.Tick{Value: float64(d), Label: strconv.Itoa(d)}
	}
	p.X.Tick.Marker = plot.ConstantTicks(ticks)

	ratios := s.SortedRatios()
	colors := palette(len(ratios))
	for i, ratio := range ratios {
		var xys plotter.XYs
		for _, depth := range depths {
			if v, ok := s.At(ratio, depth); ok {
				xys = append(xys, plotter.XY{X: float64(depth), Y: v})
			}
		}
		if err := addLine(p, xys, RatioLabel(ratio), colors[i]); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// latencyChart plots one latency percentile against ratio with a
// line per depth.
func latencyChart(s *sweep.Series[*sweep.Percentiles], label string) (*plot.Plot, error) {
	p := newPlot(fmt.Sprintf("%s: %s Latency vs Compaction Ratio", s.Name, label), "Compaction Ratio", label+" latency (ns)")
	depths := s.Depths()
	ratios := s.SortedRatios()
	colors := palette(len(depths))
	for i, depth := range depths {
		var xys plotter.XYs
		for _, ratio := range ratios {
			ps, ok := s.At(ratio, depth)
			if !ok {
				continue
			}
			if ns, ok := ps.Get(label); ok {
				xys = append(xys, plotter.XY{X: ratio, Y: ns})
			}
		}
		if err := addLine(p, xys, DepthLabel(depth), colors[i]); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// percentileLabels returns every percentile label in s in the order
// first seen.
func percentileLabels(s *sweep.Series[*sweep.Percentiles]) []string {
	seen := make(map[string]bool)
	var labels []string
	for _, ratio := range s.Ratios() {
		for _, depth := range s.DepthsAt(ratio) {
			ps, _ := s.At(ratio, depth)
			for _, l := range ps.Labels() {
				if !seen[l] {
					seen[l] = true
					labels = append(labels, l)
				}
			}
		}
	}
	return labels
}

func newPlot(title, xLabel, yLabel string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel
	p.Legend.Top = true
	p.Legend.Padding = vg.Millimeter

	grid := plotter.NewGrid()
	grid.Vertical.Color = color.Gray{200}
	grid.Horizontal.Color = color.Gray{200}
	p.Add(grid)
	return p
}

// addLine adds a line with point markers to p. Empty lines are
// skipped.
func addLine(p *plot.Plot, xys plotter.XYs, label string, c color.Color) error {
	if len(xys) == 0 {
		return nil
	}
	l, pts, err := plotter.NewLinePoints(xys)
	if err != nil {
		return err
	}
	l.Color = c
	l.Width = vg.Points(2)
	pts.GlyphStyle.Color = c
	pts.GlyphStyle.Shape = draw.CircleGlyph{}
	pts.GlyphStyle.Radius = vg.Points(3)
	p.Add(l, pts)
	p.Legend.Add(label, l, pts)
	return nil
}

// palette returns n colors, repeating if n exceeds what the palette
// offers.
func palette(n int) []color.Color {
	const maxColors = 12
	size := min(max(n, 3), maxColors)
	pal, err := brewer.GetPalette(brewer.TypeQualitative, "Paired", size)
	var base []color.Color
	if err == nil {
		base = pal.Colors()
	} else {
		base = []color.Color{color.Black}
	}
	out := make([]color.Color, n)
	for i := range out {
		out[i] = base[i%len(base)]
	}
	return out
}
