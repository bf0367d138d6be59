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

// One focuses exactly one child of a collection (spec.md §4.2).
type One struct {
	Index Selector
}

func (o One) label() string { return o.Index.String() }

// Select pushes its own depth on entry, so a One nested inside a
// Sequence (or recursing over a Seq's elements below) reports one
// nesting level deeper than its caller, and emits EventPick whenever it
// actually focuses an element.
func (o One) Select(ctx *OpContext, v Value) (Wrapped, error) {
	child, pop := ctx.push(o.label())
	defer pop()
	return o.doSelect(child, v)
}

func (o One) doSelect(ctx *OpContext, v Value) (Wrapped, error) {
	switch vv := v.(type) {
	case Seq:
		if o.Index.Kind == SelInt {
			elem, ok := vv.Get(o.Index.Int)
			if !ok {
				return None(), nil
			}
			ctx.emit(EventPick, o.label(), "")
			return WrapSingle(elem), nil
		}
		// sequence + non-integer index: recurse into each element,
		// collecting a Many of the successful results; elements that
		// cannot be focused are dropped.
		var out []Wrapped
		for _, e := range vv.Elems {
			r, err := o.doSelect(ctx, e)
			if err != nil {
				continue
			}
			if !r.IsNone() {
				out = append(out, r)
			}
		}
		return WrapMany(out), nil

	case Tuple:
		if o.Index.Kind != SelInt {
			return Wrapped{}, ctx.errf(errors.BadTarget,
				"One(%s): a tuple can only be indexed by position", o.label())
		}
		elem, ok := vv.Get(o.Index.Int)
		if !ok {
			return None(), nil
		}
		ctx.emit(EventPick, o.label(), "")
		return WrapSingle(elem), nil

	case Map:
		if o.Index.Kind == SelInt {
			return Wrapped{}, ctx.errf(errors.BadTarget,
				"One(%s): a mapping can only be indexed by string/atom key", o.label())
		}
		val, ok := vv.Get(o.Index.AsKey())
		if !ok {
			return None(), nil
		}
		ctx.emit(EventPick, o.label(), "")
		return WrapSingle(val), nil

	default:
		return Wrapped{}, ctx.errf(errors.BadTarget,
			"One(%s): cannot focus into a %s", o.label(), v.Kind())
	}
}

func (o One) Transform(ctx *OpContext, v Value, cont Continuation) (Wrapped, error) {
	child, pop := ctx.push(o.label())
	defer pop()
	return o.doTransform(child, v, cont)
}

func (o One) doTransform(ctx *OpContext, v Value, cont Continuation) (Wrapped, error) {
	switch vv := v.(type) {
	case Seq:
		if o.Index.Kind == SelInt {
			elem, ok := vv.Get(o.Index.Int)
			if !ok {
				return WrapSingle(v), nil
			}
			ctx.emit(EventPick, o.label(), "")
			r, err := cont(ctx, elem)
			if err != nil {
				return Wrapped{}, err
			}
			return WrapSingle(vv.Set(o.Index.Int, Unwrap(r))), nil
		}
		// Sequence of mappings/tuples: transform each element with the
		// same One, preserving the elements' own structure — the
		// result is a Many of per-element outcomes (spec.md §4.2).
		out := make([]Wrapped, len(vv.Elems))
		for i, e := range vv.Elems {
			r, err := o.doTransform(ctx, e, cont)
			if err != nil {
				return Wrapped{}, err
			}
			out[i] = r
		}
		return WrapMany(out), nil

	case Tuple:
		if o.Index.Kind != SelInt {
			return Wrapped{}, ctx.errf(errors.BadTarget,
				"One(%s): a tuple can only be indexed by position", o.label())
		}
		elem, ok := vv.Get(o.Index.Int)
		if !ok {
			return WrapSingle(v), nil
		}
		ctx.emit(EventPick, o.label(), "")
		r, err := cont(ctx, elem)
		if err != nil {
			return Wrapped{}, err
		}
		return WrapSingle(vv.Set(o.Index.Int, Unwrap(r))), nil

	case Map:
		if o.Index.Kind == SelInt {
			return Wrapped{}, ctx.errf(errors.BadTarget,
				"One(%s): a mapping can only be indexed by string/atom key", o.label())
		}
		key := o.Index.AsKey()
		val, ok := vv.Get(key)
		if !ok {
			// Missing key: value returned unchanged in a Single.
			return WrapSingle(v), nil
		}
		ctx.emit(EventPick, o.label(), "")
		r, err := cont(ctx, val)
		if err != nil {
			return Wrapped{}, err
		}
		return WrapSingle(vv.Set(key, Unwrap(r))), nil

	default:
		return Wrapped{}, ctx.errf(errors.BadTarget,
			"One(%s): cannot focus into a %s", o.label(), v.Kind())
	}
}
