// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package report

import (
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/orderbook/ratiostudy/internal/texttab"
	"github.com/orderbook/ratiostudy/sweep"
)

// WriteSummary writes, for each operation of the study, the best
// ratio at every depth followed by the ratios ranked by geometric
// mean throughput.
func WriteSummary(w io.Writer, st *sweep.Study) error {
	if _, err := fmt.Fprintf(w, "PERFORMANCE SUMMARY\n"); err != nil {
		return err
	}
	for _, op := range st.Summary {
		if _, err := fmt.Fprintf(w, "\n%s\n", op.Op); err != nil {
			return err
		}

		var tab texttab.Table
		indent := texttab.LeftMargin("  ")
		tab.Row().Cell("depth", indent).Cell("best ratio", texttab.Right).Cell("M ops/s", texttab.Right)
		for _, b := range op.Best {
			tab.Row().Cell(DepthLabel(b.Depth), indent).
				Cell(fmt.Sprintf("%.2f", b.Ratio), texttab.Right).
				Cell(fmt.Sprintf("%.2f", b.Throughput), texttab.Right)
		}
		tab.Row()
		tab.Row().Cell("ratio", indent).Cell("geomean", texttab.Right).Cell("mean", texttab.Right).Cell("depths", texttab.Right)
		for _, r := range op.Ranking {
			gm := "-"
			if !math.IsNaN(r.GeoMean) {
				gm = fmt.Sprintf("%.2f", r.GeoMean)
			}
			tab.Row().Cell(fmt.Sprintf("%.2f", r.Ratio), indent).
				Cell(gm, texttab.Right).
				Cell(fmt.Sprintf("%.2f", r.Mean), texttab.Right).
				Cell(strconv.Itoa(r.Depths), texttab.Right)
		}
		if err := tab.Format(w); err != nil {
			return err
		}
	}
	return nil
}
