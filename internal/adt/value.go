// Copyright 2024 The Optics Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package adt

// Value is the heterogeneous value domain the evaluator walks: scalars,
// ordered sequences, keyed mappings, positional tuples, and tagged
// variants (a Tuple whose first element is an Atom) — spec.md §3.
type Value interface {
	Kind() Kind
	// Inspect returns a debug rendering, used by the tracer and by the
	// `~~`/`!~` string-rendering comparison operators (spec.md §4.10).
	Inspect() string
}

// Nil is the ambient "null" scalar — what unwrapping a None produces
// (spec.md §3 invariants).
type Nil struct{}

func (Nil) Kind() Kind        { return KindNil }
func (Nil) Inspect() string   { return "nil" }

// Bool is the boolean scalar.
type Bool bool

func (Bool) Kind() Kind { return KindBool }
func (b Bool) Inspect() string {
	if b {
		return "true"
	}
	return "false"
}

// String is the string scalar.
type String string

func (String) Kind() Kind      { return KindString }
func (s String) Inspect() string { return string(s) }

// Atom is the symbolic-atom scalar (an Elixir-style `:name` literal). It
// also acts as the discriminator of a tagged variant when it occupies
// position 0 of a Tuple.
type Atom string

func (Atom) Kind() Kind        { return KindAtom }
func (a Atom) Inspect() string { return ":" + string(a) }

// Seq is an ordered sequence of values (spec.md §3 "ordered sequence").
type Seq struct {
	Elems []Value
}

func NewSeq(elems ...Value) Seq { return Seq{Elems: elems} }

func (Seq) Kind() Kind { return KindSeq }

func (s Seq) Inspect() string {
	out := "["
	for i, e := range s.Elems {
		if i > 0 {
			out += ", "
		}
		out += e.Inspect()
	}
	return out + "]"
}

// Get returns the element at position idx, supporting negative indices
// that address from the end (spec.md §4.2 / §9's negative-index
// decision). ok is false when idx is out of range.
func (s Seq) Get(idx int64) (Value, bool) {
	return indexInto(s.Elems, idx)
}

// Set returns a copy of s with the element at position idx replaced.
// idx must already have been validated by Get.
func (s Seq) Set(idx int64, v Value) Seq {
	n := resolveIndex(idx, len(s.Elems))
	elems := make([]Value, len(s.Elems))
	copy(elems, s.Elems)
	elems[n] = v
	return Seq{Elems: elems}
}

// Tuple is a fixed-arity positional product (spec.md §3 "positional
// tuple"). A Tuple whose first element is an Atom is a tagged variant.
type Tuple struct {
	Elems []Value
}

func NewTuple(elems ...Value) Tuple { return Tuple{Elems: elems} }

func (Tuple) Kind() Kind { return KindTuple }

func (t Tuple) Inspect() string {
	out := "{"
	for i, e := range t.Elems {
		if i > 0 {
			out += ", "
		}
		out += e.Inspect()
	}
	return out + "}"
}

func (t Tuple) Get(idx int64) (Value, bool) {
	return indexInto(t.Elems, idx)
}

func (t Tuple) Set(idx int64, v Value) Tuple {
	n := resolveIndex(idx, len(t.Elems))
	elems := make([]Value, len(t.Elems))
	copy(elems, t.Elems)
	elems[n] = v
	return Tuple{Elems: elems}
}

// Tag reports the discriminator atom of t, if t is a non-empty tuple
// whose first element is an Atom.
func (t Tuple) Tag() (Atom, bool) {
	if len(t.Elems) == 0 {
		return "", false
	}
	a, ok := t.Elems[0].(Atom)
	return a, ok
}

// mapKey is the internal, comparable representation of a Map key: a
// string key or an atom key (spec.md §3: "mapping whose keys are
// strings or atoms"). The two are never coerced into each other.
type mapKey struct {
	atom bool
	s    string
}

// Map is an immutable keyed mapping preserving insertion order for
// iteration (spec.md §4.4's "mapping key set is considered unordered
// for correctness" — we preserve an order so results are deterministic,
// but callers must not depend on it being anything but "this
// container's own order").
type Map struct {
	keys []Value // each a String or Atom, in iteration order
	vals map[mapKey]Value
}

// NewMap builds a Map from key/value pairs, preserving the given order.
func NewMap(keys []Value, vals []Value) Map {
	m := Map{vals: make(map[mapKey]Value, len(keys))}
	for i, k := range keys {
		mk, ok := toMapKey(k)
		if !ok {
			continue
		}
		if _, exists := m.vals[mk]; !exists {
			m.keys = append(m.keys, k)
		}
		m.vals[mk] = vals[i]
	}
	return m
}

func toMapKey(k Value) (mapKey, bool) {
	switch v := k.(type) {
	case String:
		return mapKey{s: string(v)}, true
	case Atom:
		return mapKey{atom: true, s: string(v)}, true
	default:
		return mapKey{}, false
	}
}

func (Map) Kind() Kind { return KindMap }

func (m Map) Inspect() string {
	out := "{"
	for i, k := range m.keys {
		if i > 0 {
			out += ", "
		}
		mk, _ := toMapKey(k)
		out += k.Inspect() + ": " + m.vals[mk].Inspect()
	}
	return out + "}"
}

// Keys returns the map's keys in iteration order.
func (m Map) Keys() []Value { return m.keys }

// Len reports the number of entries.
func (m Map) Len() int { return len(m.keys) }

// Get looks up key with exact-type matching: a String key never matches
// an Atom-keyed entry and vice versa (spec.md §4.2: "exact-type match;
// no cross-type coercion").
func (m Map) Get(key Value) (Value, bool) {
	mk, ok := toMapKey(key)
	if !ok {
		return nil, false
	}
	v, ok := m.vals[mk]
	return v, ok
}

// Set returns a copy of m with key bound to v, preserving key's existing
// position or appending it if new.
func (m Map) Set(key Value, v Value) Map {
	mk, ok := toMapKey(key)
	if !ok {
		return m
	}
	keys := m.keys
	if _, exists := m.vals[mk]; !exists {
		keys = append(append([]Value{}, m.keys...), key)
	}
	vals := make(map[mapKey]Value, len(m.vals)+1)
	for k, v := range m.vals {
		vals[k] = v
	}
	vals[mk] = v
	return Map{keys: keys, vals: vals}
}

// Values returns the map's values in iteration (key) order.
func (m Map) Values() []Value {
	out := make([]Value, len(m.keys))
	for i, k := range m.keys {
		mk, _ := toMapKey(k)
		out[i] = m.vals[mk]
	}
	return out
}

func indexInto(elems []Value, idx int64) (Value, bool) {
	n := resolveIndex(idx, len(elems))
	if n < 0 || n >= len(elems) {
		return nil, false
	}
	return elems[n], true
}

// resolveIndex maps a possibly-negative index to a position in
// [0,length), or returns a value outside that range when out of bounds
// (spec.md §9: "negative indices ... address from the end ... out of
// range -> None").
func resolveIndex(idx int64, length int) int {
	n := int(idx)
	if n < 0 {
		n += length
	}
	if n < 0 || n >= length {
		return -1
	}
	return n
}
