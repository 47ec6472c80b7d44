// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sweep

import (
	"reflect"
	"strings"
	"testing"
)

func TestConsolidateSuppression(t *testing.T) {
	var b Builder
	b.Add(rec("BM_AddOrder_Latency", 0.5, 1000, 1.5, pct("p99", 800)))
	b.Add(rec("BM_AddOrder_No_Match", 0.5, 1000, 2.9))
	// The latency variant alone at another depth is still dropped:
	// suppression is decided per benchmark, not per key.
	b.Add(rec("BM_AddOrder_Latency", 0.5, 10, 1.1, pct("p50", 300)))
	raw := b.Model()

	canon := Consolidate(raw, DefaultRules())
	if got, want := canon.Throughput.Ops(), []string{"Add Order"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("ops %v, want %v", got, want)
	}
	if v, _ := canon.Throughput.Get("Add Order", 0.5, 1000); v != 2.9 {
		t.Errorf("Add Order throughput %v, want 2.9 from BM_AddOrder_No_Match", v)
	}
	if _, ok := canon.Throughput.Get("Add Order", 0.5, 10); ok {
		t.Error("superseded benchmark contributed throughput at depth 10")
	}

	// Latency is kept from the superseded benchmark.
	ps, ok := canon.Latency.Get("Add Order", 0.5, 1000)
	if !ok {
		t.Fatal("no Add Order latency at depth 1000")
	}
	if v, _ := ps.Get("p99"); v != 800 {
		t.Errorf("p99 %v, want 800", v)
	}
	if ps, ok := canon.Latency.Get("Add Order", 0.5, 10); !ok || ps.Len() != 1 {
		t.Errorf("Add Order latency at depth 10 missing")
	}

	// The input is untouched.
	if raw.Throughput.Op("BM_AddOrder_Latency") == nil {
		t.Error("Consolidate modified its input")
	}
}

func TestConsolidateWithoutPreferred(t *testing.T) {
	var b Builder
	b.Add(rec("BM_AddOrder_Latency", 0.5, 1000, 1.5))
	canon := Consolidate(b.Model(), DefaultRules())
	if v, ok := canon.Throughput.Get("Add Order", 0.5, 1000); !ok || v != 1.5 {
		t.Errorf("got %v, %v; want the latency variant's 1.5", v, ok)
	}
}

func TestConsolidateIdentity(t *testing.T) {
	var b Builder
	b.Add(rec("BM_Exchange_RealisticWorkload", 0.5, 0, 4))
	b.Add(rec("BM_CancelOrder", 0.5, 0, 1))
	canon := Consolidate(b.Model(), DefaultRules())
	want := []string{"BM_Exchange_RealisticWorkload", "Cancel Order"}
	if got := canon.Throughput.Ops(); !reflect.DeepEqual(got, want) {
		t.Errorf("ops %v, want %v", got, want)
	}
	// A nil rule set maps everything to itself.
	canon = Consolidate(canon, nil)
	if got := canon.Throughput.Ops(); !reflect.DeepEqual(got, want) {
		t.Errorf("nil rules: ops %v, want %v", got, want)
	}
}

func TestConsolidateMerge(t *testing.T) {
	rules := Rules{
		"BM_X1": {Canonical: "X"},
		"BM_X2": {Canonical: "X"},
	}
	var b Builder
	b.Add(rec("BM_X1", 0.5, 1, 1))
	b.Add(rec("BM_X2", 0.5, 1, 2))
	b.Add(rec("BM_X1", 0.5, 2, 3))
	canon := Consolidate(b.Model(), rules)
	// BM_X2 comes later in the model, so it wins the shared key.
	if v, _ := canon.Throughput.Get("X", 0.5, 1); v != 2 {
		t.Errorf("X at depth 1 = %v, want 2", v)
	}
	if v, _ := canon.Throughput.Get("X", 0.5, 2); v != 3 {
		t.Errorf("X at depth 2 = %v, want 3", v)
	}
}

func TestRulesLookup(t *testing.T) {
	rules := DefaultRules()
	if r := rules.Lookup("BM_AddOrder_Latency"); r != (Rule{AddOrder, "BM_AddOrder_No_Match"}) {
		t.Errorf("got %+v", r)
	}
	if r := rules.Lookup("BM_Other"); r != (Rule{Canonical: "BM_Other"}) {
		t.Errorf("got %+v", r)
	}
}

func TestReadRules(t *testing.T) {
	rules, err := ReadRules(strings.NewReader(`{
		"BM_Foo": {"canonical": "Foo"},
		"BM_Foo_Latency": {"canonical": "Foo", "supersededBy": "BM_Foo"}
	}`))
	if err != nil {
		t.Fatal(err)
	}
	want := Rules{
		"BM_Foo":         {Canonical: "Foo"},
		"BM_Foo_Latency": {Canonical: "Foo", SupersededBy: "BM_Foo"},
	}
	if !reflect.DeepEqual(rules, want) {
		t.Errorf("got %+v, want %+v", rules, want)
	}

	for _, bad := range []string{
		`{"BM_Foo": {}}`,
		`{"BM_Foo": {"canonical": "Foo", "supersededBy": "BM_Foo"}}`,
		`[1, 2]`,
		`{`,
	} {
		if _, err := ReadRules(strings.NewReader(bad)); err == nil {
			t.Errorf("%s: want error", bad)
		}
	}
}
