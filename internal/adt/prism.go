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

// PatternElem is one position of a non-rest Prism pattern: either an
// extraction name, or the empty string for an ignored ("nil") position
// (spec.md §4.6).
type PatternElem struct {
	Name string
}

// Prism matches a tagged variant (tag, a1, ..., ak), optionally
// extracting/reshaping/retagging it (spec.md §4.6).
type Prism struct {
	Tag     Atom
	Rest    bool // arity-agnostic "rest" pattern
	Pattern []PatternElem

	OutputTag     *Atom
	OutputPattern []string
}

func (p Prism) label() string { return "prism:" + string(p.Tag) }

// match tests v against the tag/arity pattern, emitting the EventMatch
// spec.md §D.3 requires so a trace sink can see a Prism's match
// attempts, not just its eventual pick.
func (p Prism) match(ctx *OpContext, v Value) (Tuple, bool) {
	t, matched := p.doMatch(v)
	detail := "false"
	if matched {
		detail = "true"
	}
	ctx.emit(EventMatch, p.label(), detail)
	return t, matched
}

func (p Prism) doMatch(v Value) (Tuple, bool) {
	t, ok := v.(Tuple)
	if !ok {
		return Tuple{}, false
	}
	tag, ok := t.Tag()
	if !ok || tag != p.Tag {
		return Tuple{}, false
	}
	if p.Rest {
		if len(t.Elems) < 1 {
			return Tuple{}, false
		}
		return t, true
	}
	if len(t.Elems) != len(p.Pattern)+1 {
		return Tuple{}, false
	}
	return t, true
}

// prismShape is the extracted view a Filter/leaf continuation operates
// on, plus enough bookkeeping to put transformed values back.
type prismShape struct {
	shape Value
	names []string // extraction names in pattern order; empty for rest/zero-name
	vals  []Value  // parallel to names
	idxs  []int    // original tuple index of each name
}

func (s prismShape) valueFor(name string) (Value, int, bool) {
	for i, n := range s.names {
		if n == name {
			return s.vals[i], i, true
		}
	}
	return nil, -1, false
}

func (p Prism) extract(t Tuple) prismShape {
	if p.Rest {
		return prismShape{shape: Tuple{Elems: append([]Value{}, t.Elems[1:]...)}}
	}
	var names []string
	var vals []Value
	var idxs []int
	for i, pe := range p.Pattern {
		if pe.Name == "" {
			continue
		}
		names = append(names, pe.Name)
		vals = append(vals, t.Elems[i+1])
		idxs = append(idxs, i+1)
	}
	switch len(names) {
	case 0:
		return prismShape{shape: Tuple{Elems: append([]Value{}, t.Elems...)}}
	case 1:
		return prismShape{shape: vals[0], names: names, vals: vals, idxs: idxs}
	default:
		return prismShape{shape: Tuple{Elems: append([]Value{}, vals...)}, names: names, vals: vals, idxs: idxs}
	}
}

// reshape applies output_tag/output_pattern to the extracted values of a
// select call, or returns the plain shape when neither is set (spec.md
// §4.6 "Output reshaping").
func (p Prism) reshape(ctx *OpContext, t Tuple, sh prismShape) (Value, error) {
	if p.OutputTag == nil && p.OutputPattern == nil {
		return sh.shape, nil
	}
	tag := Value(p.Tag)
	if p.OutputTag != nil {
		tag = Value(*p.OutputTag)
	}
	if len(sh.names) == 0 {
		if len(p.OutputPattern) > 0 {
			return nil, ctx.errf(errors.InvalidOutputPattern,
				"prism :%s: output_pattern references names but the pattern extracts none", p.Tag)
		}
		base := t.Elems[1:]
		if p.Rest {
			base = sh.shape.(Tuple).Elems
		}
		return Tuple{Elems: append([]Value{tag}, base...)}, nil
	}
	order := sh.names
	if p.OutputPattern != nil {
		order = p.OutputPattern
	}
	vals := make([]Value, len(order))
	for i, n := range order {
		v, _, ok := sh.valueFor(n)
		if !ok {
			return nil, ctx.errf(errors.InvalidOutputPattern,
				"prism :%s: output_pattern name %q is not part of the input pattern", p.Tag, n)
		}
		vals[i] = v
	}
	return Tuple{Elems: append([]Value{tag}, vals...)}, nil
}

func (p Prism) Select(ctx *OpContext, v Value) (Wrapped, error) {
	child, pop := ctx.push(p.label())
	defer pop()
	t, ok := p.match(child, v)
	if !ok {
		return None(), nil
	}
	sh := p.extract(t)
	out, err := p.reshape(child, t, sh)
	if err != nil {
		return Wrapped{}, err
	}
	child.emit(EventPick, p.label(), "")
	return WrapSingle(out), nil
}

// Transform threads the extracted shape through cont and reassembles the
// tuple, applying output_tag/output_pattern if present, or else
// substituting the transformed values back into their original positions
// (spec.md §4.6).
func (p Prism) Transform(ctx *OpContext, v Value, cont Continuation) (Wrapped, error) {
	child, pop := ctx.push(p.label())
	defer pop()
	t, ok := p.match(child, v)
	if !ok {
		return WrapSingle(v), nil
	}
	child.emit(EventPick, p.label(), "")
	sh := p.extract(t)
	r, err := cont(child, sh.shape)
	if err != nil {
		return Wrapped{}, err
	}
	newShape := Unwrap(r)

	if p.Rest {
		return p.reassembleRest(child, t, newShape)
	}
	if len(sh.names) == 0 {
		return p.reassembleWhole(child, newShape)
	}
	return p.reassembleNamed(child, t, sh, newShape)
}

func (p Prism) reassembleRest(ctx *OpContext, t Tuple, newShape Value) (Wrapped, error) {
	nt, ok := newShape.(Tuple)
	if !ok {
		return Wrapped{}, ctx.errf(errors.BadArityTransform,
			"prism :%s: rest transform must return a tuple of the same shape", p.Tag)
	}
	if p.OutputPattern != nil && len(p.OutputPattern) > 0 {
		return Wrapped{}, ctx.errf(errors.InvalidOutputPattern,
			"prism :%s: output_pattern references names but the pattern extracts none", p.Tag)
	}
	tag := Value(p.Tag)
	if p.OutputTag != nil {
		tag = Value(*p.OutputTag)
	}
	return WrapSingle(Tuple{Elems: append([]Value{tag}, nt.Elems...)}), nil
}

func (p Prism) reassembleWhole(ctx *OpContext, newShape Value) (Wrapped, error) {
	nt, ok := newShape.(Tuple)
	if !ok {
		return Wrapped{}, ctx.errf(errors.BadArityTransform,
			"prism :%s: filter-only transform must return a tuple of the same arity", p.Tag)
	}
	if p.OutputPattern != nil && len(p.OutputPattern) > 0 {
		return Wrapped{}, ctx.errf(errors.InvalidOutputPattern,
			"prism :%s: output_pattern references names but the pattern extracts none", p.Tag)
	}
	if p.OutputTag == nil {
		return WrapSingle(nt), nil
	}
	elems := append([]Value{}, nt.Elems...)
	if len(elems) > 0 {
		elems[0] = Value(*p.OutputTag)
	}
	return WrapSingle(Tuple{Elems: elems}), nil
}

func (p Prism) reassembleNamed(ctx *OpContext, t Tuple, sh prismShape, newShape Value) (Wrapped, error) {
	var newVals []Value
	if len(sh.names) == 1 {
		newVals = []Value{newShape}
	} else {
		nt, ok := newShape.(Tuple)
		if !ok || len(nt.Elems) != len(sh.names) {
			return Wrapped{}, ctx.errf(errors.BadArityTransform,
				"prism :%s: transform must return a tuple matching the extracted pattern", p.Tag)
		}
		newVals = nt.Elems
	}

	if p.OutputTag == nil && p.OutputPattern == nil {
		elems := append([]Value{}, t.Elems...)
		for i, idx := range sh.idxs {
			elems[idx] = newVals[i]
		}
		return WrapSingle(Tuple{Elems: elems}), nil
	}

	tag := Value(p.Tag)
	if p.OutputTag != nil {
		tag = Value(*p.OutputTag)
	}
	order := sh.names
	if p.OutputPattern != nil {
		order = p.OutputPattern
	}
	outVals := make([]Value, len(order))
	for i, n := range order {
		_, idx, ok := sh.valueFor(n)
		if !ok {
			return Wrapped{}, ctx.errf(errors.InvalidOutputPattern,
				"prism :%s: output_pattern name %q is not part of the input pattern", p.Tag, n)
		}
		outVals[i] = newVals[idx]
	}
	return WrapSingle(Tuple{Elems: append([]Value{tag}, outVals...)}), nil
}
