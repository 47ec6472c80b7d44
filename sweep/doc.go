// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package sweep aggregates the records of a compaction-ratio sweep
// into a model keyed by benchmark, ratio and depth, folds benchmark
// variants into canonical operations, and picks the best ratio for
// each depth.
//
// The typical flow is
//
//	study, err := sweep.Analyze(&sweeplog.Files{Paths: paths}, sweep.DefaultRules())
//	if errors.Is(err, sweep.ErrNoData) {
//		...
//	}
//
// A Model is built once by a Builder and is read-only afterwards.
// Every ordered accessor returns keys in the order they were first
// seen in the input, except Depths, which is sorted.
package sweep
