// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sweep

import (
	"errors"
	"reflect"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/orderbook/ratiostudy/sweeplog"
)

const studyLog = `BM_AddOrder_No_Match/1000 100 ns 100 ns 10 items_per_second=9M/s
Testing Compaction Ratio: 0.5
BM_AddOrder_No_Match/0     300 ns 300 ns 1000 items_per_second=1.2M/s
BM_AddOrder_No_Match/1000  400 ns 400 ns 1000 items_per_second=2.1M/s
BM_AddOrder_Latency/1000   500 ns 500 ns 1000 items_per_second=1.9M/s p50=310 p99=1.5k
BM_CancelOrder/1000        900 ns 900 ns 1000 items_per_second=900K/s
Testing Compaction Ratio: 0.75
BM_AddOrder_No_Match/0     300 ns 300 ns 1000 items_per_second=1.1M/s
BM_AddOrder_No_Match/1000  300 ns 300 ns 1000 items_per_second=3.4M/s
BM_AddOrder_Latency/1000   500 ns 500 ns 1000 items_per_second=3.9M/s p50=300 p99=1.2k
BM_AddOrder_No_Match/1000  300 ns 300 ns 1000 items_per_second=3.3M/s
Testing Compaction Ratio: 0.9
BM_AddOrder_No_Match/1000  x ns 300 ns 1000 items_per_second=8.0M/s
BM_AddOrder_No_Match/1000  300 ns 300 ns 1000 items_per_second=3.0M/s
`

func analyze(t *testing.T, log string) *Study {
	t.Helper()
	st, err := Analyze(sweeplog.NewReader(strings.NewReader(log), "study"), DefaultRules())
	if err != nil {
		t.Fatal(err)
	}
	return st
}

func TestAnalyze(t *testing.T) {
	st := analyze(t, studyLog)

	wantStats := sweeplog.Stats{Lines: 14, Announcements: 3, Records: 9, Orphaned: 1}
	if st.Stats != wantStats {
		t.Errorf("stats %+v, want %+v", st.Stats, wantStats)
	}

	if got, want := st.Raw.Throughput.Ops(), []string{"BM_AddOrder_No_Match", "BM_AddOrder_Latency", "BM_CancelOrder"}; !reflect.DeepEqual(got, want) {
		t.Errorf("raw ops %v, want %v", got, want)
	}
	if got, want := st.Canonical.Throughput.Ops(), []string{"Add Order", "Cancel Order"}; !reflect.DeepEqual(got, want) {
		t.Errorf("canonical ops %v, want %v", got, want)
	}
	// The repeated 0.75/1000 line replaced the first one.
	if v, _ := st.Canonical.Throughput.Get("Add Order", 0.75, 1000); v != 3.3 {
		t.Errorf("Add Order at 0.75/1000 = %v, want 3.3", v)
	}
	if v, _ := st.Canonical.Throughput.Get("Cancel Order", 0.5, 1000); v != 0.9 {
		t.Errorf("Cancel Order at 0.5/1000 = %v, want 0.9", v)
	}
	ps, _ := st.Canonical.Latency.Get("Add Order", 0.75, 1000)
	if v, _ := ps.Get("p99"); v != 1200 {
		t.Errorf("Add Order p99 at 0.75/1000 = %v, want 1200", v)
	}

	wantBest := []Best{
		{Depth: 0, Ratio: 0.5, Throughput: 1.2},
		{Depth: 1000, Ratio: 0.75, Throughput: 3.3},
	}
	if len(st.Summary) != 2 || st.Summary[0].Op != "Add Order" {
		t.Fatalf("summary %+v", st.Summary)
	}
	if got := st.Summary[0].Best; !reflect.DeepEqual(got, wantBest) {
		t.Errorf("best %+v\nwant %+v", got, wantBest)
	}
}

func TestAnalyzeDeterministic(t *testing.T) {
	a, b := analyze(t, studyLog), analyze(t, studyLog)
	if !reflect.DeepEqual(a, b) {
		t.Error("two analyses of the same input differ")
	}
}

func TestAnalyzeNoData(t *testing.T) {
	for _, log := range []string{
		"",
		"nothing to see here\n",
		// Results, but never a ratio.
		"BM_AddOrder_No_Match/1000 100 ns 100 ns 10 items_per_second=9M/s\n",
	} {
		_, err := Analyze(sweeplog.NewReader(strings.NewReader(log), "empty"), DefaultRules())
		if !errors.Is(err, ErrNoData) {
			t.Errorf("%q: got error %v, want ErrNoData", log, err)
		}
	}
}

func TestAnalyzeIOError(t *testing.T) {
	errBoom := errors.New("boom")
	_, err := Analyze(sweeplog.NewReader(iotest.ErrReader(errBoom), "broken"), DefaultRules())
	if !errors.Is(err, errBoom) {
		t.Errorf("got error %v, want %v", err, errBoom)
	}
}

func TestAnalyzeLongLine(t *testing.T) {
	log := "Testing Compaction Ratio: 0.5\n" +
		"BM_MatchOrder/1000 1 ns 1 ns 1 items_per_second=2M/s\n" +
		strings.Repeat("#", 2<<20) + "\n" +
		"BM_MatchOrder/10000 1 ns 1 ns 1 items_per_second=3M/s\n"
	st := analyze(t, log)
	for depth, want := range map[int]float64{1000: 2, 10000: 3} {
		if got, ok := st.Canonical.Throughput.Get(string(MatchOrder), 0.5, depth); !ok || got != want {
			t.Errorf("depth %d: got %v, %v; want %v", depth, got, ok, want)
		}
	}
	if st.Stats.Long != 1 {
		t.Errorf("got stats %+v, want 1 long line", st.Stats)
	}
}

func TestAnalyzeLatencyReplaced(t *testing.T) {
	st := analyze(t, `Testing Compaction Ratio: 0.5
BM_CancelOrder_Latency/100 1 ns 1 ns 1 items_per_second=1M/s p50=100 p99=900
BM_CancelOrder_Latency/100 1 ns 1 ns 1 items_per_second=1M/s p50=110
`)
	ps, ok := st.Raw.Latency.Get("BM_CancelOrder_Latency", 0.5, 100)
	if !ok {
		t.Fatal("no latency")
	}
	if got, want := ps.Labels(), []string{"p50"}; !reflect.DeepEqual(got, want) {
		t.Errorf("labels %v, want %v", got, want)
	}
	if v, _ := ps.Get("p50"); v != 110 {
		t.Errorf("p50 = %v, want 110", v)
	}
}

func TestNewStudy(t *testing.T) {
	if _, err := NewStudy(NewBuilder().Model(), nil); !errors.Is(err, ErrNoData) {
		t.Errorf("empty model: got %v, want ErrNoData", err)
	}
	var b Builder
	b.SetLatency("BM_L", 0.5, 1, "p50", 10)
	st, err := NewStudy(b.Model(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(st.Summary) != 0 {
		t.Errorf("latency-only study has summary %+v", st.Summary)
	}
}
