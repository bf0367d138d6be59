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

// PredicateFunc is a compiled filter predicate (spec.md §4.10: "a
// predicate closure of shape (element, options) → boolean"). ctx
// carries the per-call converter/function bindings a lazily-bound
// predicate needs to resolve.
type PredicateFunc func(ctx *OpContext, v Value) (bool, error)

// Filter keeps only elements satisfying Predicate: it retains original
// elements on select, transforms matching elements on transform
// (spec.md §4.5).
type Filter struct {
	Predicate PredicateFunc
}

func (Filter) label() string { return "filter" }

// test evaluates the predicate and emits the EventMatch spec.md §D.3
// requires so a trace sink can tell which elements a Filter inspected,
// not just which ones it ultimately kept (that's EventPick).
func (f Filter) test(ctx *OpContext, v Value) (bool, error) {
	ok, err := f.Predicate(ctx, v)
	if err != nil {
		return false, err
	}
	detail := "false"
	if ok {
		detail = "true"
	}
	ctx.emit(EventMatch, f.label(), detail)
	return ok, nil
}

func (f Filter) Select(ctx *OpContext, v Value) (Wrapped, error) {
	child, pop := ctx.push(f.label())
	defer pop()
	switch vv := v.(type) {
	case Seq:
		return filterMany(child, f, vv.Elems)
	case Tuple:
		return filterMany(child, f, vv.Elems)
	default:
		ok, err := f.test(child, v)
		if err != nil {
			return Wrapped{}, err
		}
		if !ok {
			return None(), nil
		}
		child.emit(EventPick, f.label(), "")
		return WrapSingle(v), nil
	}
}

func filterMany(ctx *OpContext, f Filter, elems []Value) (Wrapped, error) {
	var out []Wrapped
	for _, e := range elems {
		ok, err := f.test(ctx, e)
		if err != nil {
			return Wrapped{}, err
		}
		if ok {
			ctx.emit(EventPick, f.label(), "")
			out = append(out, WrapSingle(e))
		}
	}
	return WrapMany(out), nil
}

func (f Filter) Transform(ctx *OpContext, v Value, cont Continuation) (Wrapped, error) {
	child, pop := ctx.push(f.label())
	defer pop()
	switch vv := v.(type) {
	case Seq:
		elems, err := filterTransform(child, f, vv.Elems, cont)
		if err != nil {
			return Wrapped{}, err
		}
		return WrapSingle(Seq{Elems: elems}), nil
	case Tuple:
		elems, err := filterTransform(child, f, vv.Elems, cont)
		if err != nil {
			return Wrapped{}, err
		}
		return WrapSingle(Tuple{Elems: elems}), nil
	default:
		ok, err := f.test(child, v)
		if err != nil {
			return Wrapped{}, err
		}
		if !ok {
			return WrapSingle(v), nil
		}
		child.emit(EventPick, f.label(), "")
		r, err := cont(child, v)
		if err != nil {
			return Wrapped{}, err
		}
		return WrapSingle(Unwrap(r)), nil
	}
}

func filterTransform(ctx *OpContext, f Filter, elems []Value, cont Continuation) ([]Value, error) {
	out := make([]Value, len(elems))
	for i, e := range elems {
		ok, err := f.test(ctx, e)
		if err != nil {
			return nil, err
		}
		if !ok {
			out[i] = e
			continue
		}
		ctx.emit(EventPick, f.label(), "")
		r, err := cont(ctx, e)
		if err != nil {
			return nil, err
		}
		out[i] = Unwrap(r)
	}
	return out, nil
}
