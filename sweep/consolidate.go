// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sweep

import (
	"encoding/json"
	"fmt"
	"io"
)

// An Operation is a canonical order book operation. Several
// benchmarks may measure the same Operation.
type Operation string

const (
	AddOrder    Operation = "Add Order"
	CancelOrder Operation = "Cancel Order"
	MatchOrder  Operation = "Match Order"
	ModifyOrder Operation = "Modify Order"
)

// A Rule says how one benchmark contributes to a canonical
// operation.
type Rule struct {
	// Canonical is the operation the benchmark measures.
	Canonical Operation `json:"canonical"`

	// SupersededBy, if not empty, names a preferred benchmark for
	// the same operation. If the preferred benchmark appears
	// anywhere in the input, this benchmark's throughput is
	// dropped. Its latency is always kept.
	SupersededBy string `json:"supersededBy,omitempty"`
}

// Rules maps benchmark names to their Rule.
type Rules map[string]Rule

// Lookup returns the rule for the benchmark raw. Benchmarks without
// a rule are their own canonical operation.
func (rs Rules) Lookup(raw string) Rule {
	if r, ok := rs[raw]; ok {
		return r
	}
	return Rule{Canonical: Operation(raw)}
}

// DefaultRules returns the rules for the order book benchmarks. The
// *_Latency variants time every call individually, which skews their
// throughput, so the plain variant is preferred when both ran.
func DefaultRules() Rules {
	rules := make(Rules)
	for _, v := range []struct {
		op             Operation
		plain, latency string
	}{
		{AddOrder, "BM_AddOrder_No_Match", "BM_AddOrder_Latency"},
		{CancelOrder, "BM_CancelOrder", "BM_CancelOrder_Latency"},
		{MatchOrder, "BM_MatchOrder", "BM_MatchOrder_Latency"},
		{ModifyOrder, "BM_ModifyOrder", "BM_ModifyOrder_Latency"},
	} {
		rules[v.plain] = Rule{Canonical: v.op}
		rules[v.latency] = Rule{Canonical: v.op, SupersededBy: v.plain}
	}
	return rules
}

// ReadRules decodes rules from JSON of the form
//
//	{"BM_Foo_Latency": {"canonical": "Foo", "supersededBy": "BM_Foo"}}
func ReadRules(r io.Reader) (Rules, error) {
	var rules Rules
	if err := json.NewDecoder(r).Decode(&rules); err != nil {
		return nil, fmt.Errorf("decoding rules: %w", err)
	}
	for raw, rule := range rules {
		if rule.Canonical == "" {
			return nil, fmt.Errorf("rule for %s: missing canonical operation", raw)
		}
		if rule.SupersededBy == raw {
			return nil, fmt.Errorf("rule for %s: benchmark supersedes itself", raw)
		}
	}
	return rules, nil
}

// Consolidate returns a model keyed by canonical operation instead
// of benchmark name. m is not modified.
//
// When two benchmarks supply a value for the same canonical key, the
// one that comes later in m wins.
func Consolidate(m *Model, rules Rules) *Model {
	var b Builder
	for _, raw := range m.Throughput.Ops() {
		rule := rules.Lookup(raw)
		if rule.SupersededBy != "" && m.Throughput.Op(rule.SupersededBy) != nil {
			continue
		}
		s := m.Throughput.Op(raw)
		for _, ratio := range s.Ratios() {
			for _, depth := range s.DepthsAt(ratio) {
				v, _ := s.At(ratio, depth)
				b.SetThroughput(string(rule.Canonical), ratio, depth, v)
			}
		}
	}
	for _, raw := range m.Latency.Ops() {
		op := string(rules.Lookup(raw).Canonical)
		s := m.Latency.Op(raw)
		for _, ratio := range s.Ratios() {
			for _, depth := range s.DepthsAt(ratio) {
				ps, _ := s.At(ratio, depth)
				for _, label := range ps.Labels() {
					ns, _ := ps.Get(label)
					b.SetLatency(op, ratio, depth, label, ns)
				}
			}
		}
	}
	return b.Model()
}
