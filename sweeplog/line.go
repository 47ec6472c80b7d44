// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sweeplog

import (
	"bytes"
	"regexp"
	"strconv"
)

// DefaultRatioLabel is the label the order book benchmark prints
// before each compaction ratio.
const DefaultRatioLabel = "Testing Compaction Ratio"

// A Context is the parsing state carried from one line to the next.
// The zero Context has no ratio.
type Context struct {
	Ratio    float64
	HasRatio bool
}

// A LineKind classifies a line of a sweep log.
type LineKind int

const (
	// LineInert is a line that is neither an announcement nor a
	// result.
	LineInert LineKind = iota
	// LineRatio is a ratio announcement.
	LineRatio
	// LineResult is a result line that produced a Record.
	LineResult
	// LineOrphan is a result line seen before any ratio announcement.
	// It produces no Record.
	LineOrphan
)

func (k LineKind) String() string {
	switch k {
	case LineInert:
		return "inert"
	case LineRatio:
		return "announcement"
	case LineResult:
		return "result"
	case LineOrphan:
		return "orphan"
	}
	return "LineKind(" + strconv.Itoa(int(k)) + ")"
}

// resultRE matches the fixed part of a result line:
// name/depth, real time, CPU time, iterations and items_per_second.
var resultRE = regexp.MustCompile(`([A-Za-z_]\w*)/(\d+)\s+([0-9.]+)\s+ns\s+([0-9.]+)\s+ns\s+(\d+)\s+items_per_second=([0-9.]+)([kKMG]?)/s`)

// percentileRE matches a single whitespace-separated percentile
// counter such as p99=12.5k. The value is checked by nanosRE.
var percentileRE = regexp.MustCompile(`^p(\d+)=(.*)$`)

// nanosRE matches a percentile value: a number with an optional
// k suffix.
var nanosRE = regexp.MustCompile(`^([0-9.]+)([kK]?)$`)

// A Parser recognizes the lines of a sweep log. A Parser holds no
// per-input state and may be shared.
type Parser struct {
	ratioRE *regexp.Regexp
}

// NewParser returns a Parser that recognizes ratio announcements
// introduced by label, as in "<label>: 0.75".
func NewParser(label string) *Parser {
	return &Parser{
		ratioRE: regexp.MustCompile(regexp.QuoteMeta(label) + `:\s+([0-9.]+)`),
	}
}

var defaultParser = NewParser(DefaultRatioLabel)

// ParseLine parses line with the default announcement label.
// See Parser.ParseLine.
func ParseLine(ctx Context, line []byte) (Context, *Record, LineKind) {
	return defaultParser.ParseLine(ctx, line)
}

// ParseLine parses one line of a sweep log given the context left by
// the previous line. It returns the context for the next line and,
// if the line is a result under an announced ratio, its Record.
//
// Lines that do not parse, including lines whose numbers are
// malformed, are LineInert and leave ctx unchanged.
func (p *Parser) ParseLine(ctx Context, line []byte) (Context, *Record, LineKind) {
	if m := p.ratioRE.FindSubmatch(line); m != nil {
		if ratio, err := strconv.ParseFloat(string(m[1]), 64); err == nil {
			return Context{Ratio: ratio, HasRatio: true}, nil, LineRatio
		}
		// A garbled announcement is just noise. Fall through in
		// case the rest of the line is a result.
	}

	rec, ok := parseResult(line)
	if !ok {
		return ctx, nil, LineInert
	}
	if !ctx.HasRatio {
		return ctx, nil, LineOrphan
	}
	rec.Ratio = ctx.Ratio
	return ctx, rec, LineResult
}

// parseResult parses the result fields of line, including any
// percentile counters. It reports false if line is not a result
// line or any of its numbers are malformed.
func parseResult(line []byte) (*Record, bool) {
	m := resultRE.FindSubmatchIndex(line)
	if m == nil {
		return nil, false
	}
	field := func(i int) []byte { return line[m[2*i]:m[2*i+1]] }

	rec := &Record{Name: string(field(1))}
	var err error
	if rec.Depth, err = strconv.Atoi(string(field(2))); err != nil {
		return nil, false
	}
	if rec.RealTime, err = strconv.ParseFloat(string(field(3)), 64); err != nil {
		return nil, false
	}
	if rec.CPUTime, err = strconv.ParseFloat(string(field(4)), 64); err != nil {
		return nil, false
	}
	if rec.Iters, err = strconv.ParseInt(string(field(5)), 10, 64); err != nil {
		return nil, false
	}
	var ok bool
	if rec.Throughput, ok = parseScaled(field(6), string(field(7)), rateScales); !ok {
		return nil, false
	}

	// Percentile counters only ever follow the fixed fields. A
	// malformed percentile value rejects the whole line; counters
	// that are not percentiles are ignored.
	for _, f := range bytes.Fields(line[m[1]:]) {
		pm := percentileRE.FindSubmatch(f)
		if pm == nil {
			continue
		}
		vm := nanosRE.FindSubmatch(pm[2])
		if vm == nil {
			return nil, false
		}
		ns, ok := parseScaled(vm[1], string(vm[2]), nanoScales)
		if !ok {
			return nil, false
		}
		rec.Percentiles = append(rec.Percentiles, Percentile{"p" + string(pm[1]), ns})
	}
	return rec, true
}
