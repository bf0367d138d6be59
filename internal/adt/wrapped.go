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

// wrappedKind tags which of the three Wrapped variants is active
// (spec.md §3 "Wrapped outcome").
type wrappedKind int

const (
	wrNone wrappedKind = iota
	wrSingle
	wrMany
)

// Wrapped is the uniform None/Single/Many outcome every optic produces
// (spec.md §3, §4.1). The zero value is None.
type Wrapped struct {
	kind   wrappedKind
	single Value
	many   []Wrapped
}

// None is a missing focus.
func None() Wrapped { return Wrapped{kind: wrNone} }

// WrapSingle wraps exactly one focus.
func WrapSingle(v Value) Wrapped { return Wrapped{kind: wrSingle, single: v} }

// WrapMany wraps a multi-focus. Elements are themselves Wrapped, per the
// invariant that "a Many's elements are themselves wrapped".
func WrapMany(vs []Wrapped) Wrapped { return Wrapped{kind: wrMany, many: vs} }

func (w Wrapped) IsNone() bool   { return w.kind == wrNone }
func (w Wrapped) IsSingle() bool { return w.kind == wrSingle }
func (w Wrapped) IsMany() bool   { return w.kind == wrMany }

// Many returns the elements of a Many outcome (nil otherwise).
func (w Wrapped) Many() []Wrapped { return w.many }

// SingleValue returns the value of a Single outcome (the zero Value
// otherwise).
func (w Wrapped) SingleValue() Value { return w.single }

// Unwrap collapses a Wrapped to a plain Value: None -> Nil{}, Single(v)
// -> v, Many(vs) -> a Seq of the recursively unwrapped elements
// (spec.md §3 invariants).
func Unwrap(w Wrapped) Value {
	switch w.kind {
	case wrNone:
		return Nil{}
	case wrSingle:
		return w.single
	case wrMany:
		elems := make([]Value, len(w.many))
		for i, e := range w.many {
			elems[i] = Unwrap(e)
		}
		return Seq{Elems: elems}
	default:
		return Nil{}
	}
}

// UnwrapList is like Unwrap but renders a Many as a Go slice of Values
// directly, for callers (the facade's Select) that need a flat list
// rather than a Seq value.
func UnwrapList(w Wrapped) []Value {
	switch w.kind {
	case wrNone:
		return nil
	case wrMany:
		out := make([]Value, 0, len(w.many))
		for _, e := range w.many {
			out = append(out, Unwrap(e))
		}
		return out
	default:
		return []Value{w.single}
	}
}

// SelectWrapped is the combinator Sequence.Select uses to lift the next
// optic's per-element Select to the outer wrapper (spec.md §4.1):
// None propagates, Single(v) delegates to f(v), and Many maps f over
// each element's unwrapped value, dropping None results.
func SelectWrapped(w Wrapped, f func(Value) Wrapped) Wrapped {
	switch w.kind {
	case wrNone:
		return None()
	case wrSingle:
		return f(w.single)
	case wrMany:
		var out []Wrapped
		for _, e := range w.many {
			r := f(Unwrap(e))
			if !r.IsNone() {
				out = append(out, r)
			}
		}
		return WrapMany(out)
	default:
		return None()
	}
}

// TransformWrapped is the transform-side counterpart of SelectWrapped:
// None propagates, Single(v) delegates to tf(v), and Many maps tf over
// each element.
func TransformWrapped(w Wrapped, tf func(Value) Wrapped) Wrapped {
	switch w.kind {
	case wrNone:
		return None()
	case wrSingle:
		return tf(w.single)
	case wrMany:
		out := make([]Wrapped, len(w.many))
		for i, e := range w.many {
			out[i] = tf(Unwrap(e))
		}
		return WrapMany(out)
	default:
		return None()
	}
}
