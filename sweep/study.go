// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sweep

import (
	"errors"

	"github.com/orderbook/ratiostudy/sweeplog"
)

// ErrNoData is returned when an input holds no benchmark results.
var ErrNoData = errors.New("no benchmark data found")

// A Source is a stream of sweep records, such as a *sweeplog.Reader
// or *sweeplog.Files.
type Source interface {
	Scan() bool
	Result() *sweeplog.Record
	Err() error
	Stats() sweeplog.Stats
}

// A Study is the full analysis of a sweep.
type Study struct {
	// Raw is keyed by benchmark name.
	Raw *Model
	// Canonical is keyed by canonical operation.
	Canonical *Model
	// Summary has one entry per canonical operation with
	// throughput, in the order of Canonical.Throughput.Ops.
	Summary []OpSummary
	// Stats describes the lines read to build Raw. It is zero for a
	// Study made by NewStudy.
	Stats sweeplog.Stats
}

// Analyze reads every record from src and analyzes them under rules.
// It returns ErrNoData if src held no results, and the first I/O
// error from src otherwise.
func Analyze(src Source, rules Rules) (*Study, error) {
	var b Builder
	for src.Scan() {
		b.Add(src.Result())
	}
	if err := src.Err(); err != nil {
		return nil, err
	}
	st, err := NewStudy(b.Model(), rules)
	if err != nil {
		return nil, err
	}
	st.Stats = src.Stats()
	return st, nil
}

// NewStudy analyzes a raw model, for example one loaded from a
// store. It returns ErrNoData if raw is empty.
func NewStudy(raw *Model, rules Rules) (*Study, error) {
	if raw.Empty() {
		return nil, ErrNoData
	}
	canon := Consolidate(raw, rules)
	return &Study{
		Raw:       raw,
		Canonical: canon,
		Summary:   Summarize(canon.Throughput),
	}, nil
}
