// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sweep

// index is a map that remembers the order in which keys were first
// inserted. Overwriting a key keeps its position.
type index[K comparable, V any] struct {
	keys []K
	m    map[K]V
}

func (x *index[K, V]) get(k K) (V, bool) {
	v, ok := x.m[k]
	return v, ok
}

func (x *index[K, V]) put(k K, v V) {
	if x.m == nil {
		x.m = make(map[K]V)
	}
	if _, ok := x.m[k]; !ok {
		x.keys = append(x.keys, k)
	}
	x.m[k] = v
}

// ensure returns the value for k, first inserting mk() if k is
// absent.
func (x *index[K, V]) ensure(k K, mk func() V) V {
	if v, ok := x.m[k]; ok {
		return v
	}
	v := mk()
	x.put(k, v)
	return v
}

// delete removes k. Later keys move up one position.
func (x *index[K, V]) delete(k K) {
	if _, ok := x.m[k]; !ok {
		return
	}
	delete(x.m, k)
	for i, k2 := range x.keys {
		if k2 == k {
			x.keys = append(x.keys[:i], x.keys[i+1:]...)
			break
		}
	}
}

func (x *index[K, V]) len() int {
	return len(x.keys)
}

// ordered returns a copy of the keys in insertion order.
func (x *index[K, V]) ordered() []K {
	return append([]K(nil), x.keys...)
}
