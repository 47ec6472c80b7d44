// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sweeplog

import "strconv"

// Google Benchmark prints counters with a decimal magnitude suffix.
// A scale converts a suffixed value to the unit we store.
type scale struct {
	mul, div float64
}

func (s scale) apply(v float64) float64 {
	return v * s.mul / s.div
}

// rateScales convert items_per_second to millions of items per
// second.
var rateScales = map[string]scale{
	"":  {1, 1e6},
	"k": {1, 1e3},
	"K": {1, 1e3},
	"M": {1, 1},
	"G": {1e3, 1},
}

// nanoScales convert a percentile counter to nanoseconds.
var nanoScales = map[string]scale{
	"":  {1, 1},
	"k": {1e3, 1},
	"K": {1e3, 1},
}

// parseScaled parses num as a float and applies the scale for
// suffix. ok is false if num is not a number or suffix is unknown.
func parseScaled(num []byte, suffix string, scales map[string]scale) (val float64, ok bool) {
	s, known := scales[suffix]
	if !known {
		return 0, false
	}
	v, err := strconv.ParseFloat(string(num), 64)
	if err != nil {
		return 0, false
	}
	return s.apply(v), true
}
