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

// All focuses every child of a sequence/tuple/mapping (spec.md §4.4).
// On a scalar it yields None.
type All struct{}

func (All) label() string { return "all" }

func (a All) Select(ctx *OpContext, v Value) (Wrapped, error) {
	child, pop := ctx.push(a.label())
	defer pop()
	switch vv := v.(type) {
	case Seq:
		return manyOfValues(child, vv.Elems), nil
	case Tuple:
		return manyOfValues(child, vv.Elems), nil
	case Map:
		return manyOfValues(child, vv.Values()), nil
	default:
		return None(), nil
	}
}

func manyOfValues(ctx *OpContext, vs []Value) Wrapped {
	out := make([]Wrapped, len(vs))
	for i, v := range vs {
		ctx.emit(EventPick, "all", "")
		out[i] = WrapSingle(v)
	}
	return WrapMany(out)
}

func (a All) Transform(ctx *OpContext, v Value, cont Continuation) (Wrapped, error) {
	child, pop := ctx.push(a.label())
	defer pop()
	switch vv := v.(type) {
	case Seq:
		elems := make([]Value, len(vv.Elems))
		for i, e := range vv.Elems {
			child.emit(EventPick, a.label(), "")
			r, err := cont(child, e)
			if err != nil {
				return Wrapped{}, err
			}
			elems[i] = Unwrap(r)
		}
		return WrapSingle(Seq{Elems: elems}), nil

	case Tuple:
		elems := make([]Value, len(vv.Elems))
		for i, e := range vv.Elems {
			child.emit(EventPick, a.label(), "")
			r, err := cont(child, e)
			if err != nil {
				return Wrapped{}, err
			}
			elems[i] = Unwrap(r)
		}
		return WrapSingle(Tuple{Elems: elems}), nil

	case Map:
		cur := vv
		for _, k := range vv.Keys() {
			old, _ := vv.Get(k)
			child.emit(EventPick, a.label(), "")
			r, err := cont(child, old)
			if err != nil {
				return Wrapped{}, err
			}
			cur = cur.Set(k, Unwrap(r))
		}
		return WrapSingle(cur), nil

	default:
		return None(), nil
	}
}
