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

import "github.com/opticpath/optics/optics/errors"

// Slice focuses several children by index/key, preserving the order of
// Indices rather than the container's natural order (spec.md §4.3).
type Slice struct {
	Indices []Selector
}

func (Slice) label() string { return "slice" }

func (s Slice) Select(ctx *OpContext, v Value) (Wrapped, error) {
	child, pop := ctx.push(s.label())
	defer pop()
	switch vv := v.(type) {
	case Map:
		var out []Wrapped
		for _, sel := range s.Indices {
			if sel.Kind == SelInt {
				continue // keys outside the container are skipped
			}
			val, ok := vv.Get(sel.AsKey())
			if !ok {
				continue
			}
			child.emit(EventPick, s.label(), "")
			out = append(out, WrapSingle(val))
		}
		return WrapMany(out), nil

	case Seq:
		return selectIndexed(child, s.Indices, vv.Elems)

	case Tuple:
		return selectIndexed(child, s.Indices, vv.Elems)

	default:
		return Wrapped{}, child.errf(errors.BadTarget, "Slice: cannot focus into a %s", v.Kind())
	}
}

func selectIndexed(ctx *OpContext, sels []Selector, elems []Value) (Wrapped, error) {
	var out []Wrapped
	for _, sel := range sels {
		if sel.Kind != SelInt {
			continue
		}
		v, ok := indexInto(elems, sel.Int)
		if !ok {
			continue
		}
		ctx.emit(EventPick, "slice", "")
		out = append(out, WrapSingle(v))
	}
	return WrapMany(out), nil
}

func (s Slice) Transform(ctx *OpContext, v Value, cont Continuation) (Wrapped, error) {
	child, pop := ctx.push(s.label())
	defer pop()
	switch vv := v.(type) {
	case Map:
		cur := vv
		for _, sel := range s.Indices {
			if sel.Kind == SelInt {
				continue
			}
			key := sel.AsKey()
			old, ok := cur.Get(key)
			if !ok {
				continue
			}
			child.emit(EventPick, s.label(), "")
			r, err := cont(child, old)
			if err != nil {
				return Wrapped{}, err
			}
			cur = cur.Set(key, Unwrap(r))
		}
		return WrapSingle(cur), nil

	case Seq:
		elems, err := transformIndexed(child, s.Indices, vv.Elems, cont)
		if err != nil {
			return Wrapped{}, err
		}
		return WrapSingle(Seq{Elems: elems}), nil

	case Tuple:
		elems, err := transformIndexed(child, s.Indices, vv.Elems, cont)
		if err != nil {
			return Wrapped{}, err
		}
		return WrapSingle(Tuple{Elems: elems}), nil

	default:
		return Wrapped{}, child.errf(errors.BadTarget, "Slice: cannot focus into a %s", v.Kind())
	}
}

func transformIndexed(ctx *OpContext, sels []Selector, elems []Value, cont Continuation) ([]Value, error) {
	out := make([]Value, len(elems))
	copy(out, elems)
	for _, sel := range sels {
		if sel.Kind != SelInt {
			continue
		}
		n := resolveIndex(sel.Int, len(elems))
		if n < 0 {
			continue
		}
		ctx.emit(EventPick, "slice", "")
		r, err := cont(ctx, out[n])
		if err != nil {
			return nil, err
		}
		out[n] = Unwrap(r)
	}
	return out, nil
}
