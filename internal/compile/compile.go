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

// Package compile turns the syntax trees produced by optics/parser into
// the runtime optics that internal/adt evaluates (spec.md §2's
// "Expression AST -> Expression Compiler -> predicate closure" and the
// path parser's "driver emits a single optic for a single-component
// path, else a Sequence").
package compile

import (
	"github.com/mpvl/unique"

	"github.com/opticpath/optics/internal/adt"
	"github.com/opticpath/optics/optics/ast"
	"github.com/opticpath/optics/optics/errors"
)

// Path compiles a parsed path into a runtime Optic. A single-component
// path compiles to that one optic directly; longer paths compile to a
// *adt.Sequence (spec.md §4.11).
func Path(p *ast.Path) (adt.Optic, error) {
	lenses := make([]adt.Optic, 0, len(p.Components))
	for _, c := range p.Components {
		o, err := component(c)
		if err != nil {
			return nil, err
		}
		lenses = append(lenses, o)
	}
	if len(lenses) == 1 {
		return lenses[0], nil
	}
	return &adt.Sequence{Lenses: lenses}, nil
}

func component(c ast.Component) (adt.Optic, error) {
	switch n := c.(type) {
	case ast.Key:
		return adt.One{Index: adt.StringSelector(n.Name)}, nil
	case ast.AtomKey:
		return adt.One{Index: adt.AtomSelector(n.Name)}, nil
	case ast.ConverterRef:
		return adt.IsoRef{Name: n.Name}, nil
	case ast.Bracket:
		return bracket(n)
	case ast.Prism:
		return prism(n)
	default:
		return nil, errors.Newf(errors.ParseError, errors.NoPos, "compile: unknown component %T", c)
	}
}

func bracket(n ast.Bracket) (adt.Optic, error) {
	switch body := n.Body.(type) {
	case ast.All:
		return adt.All{}, nil

	case ast.FilterBody:
		pred, err := Predicate(body.Expr)
		if err != nil {
			return nil, err
		}
		return adt.Filter{Predicate: pred}, nil

	case ast.IndexList:
		if len(body.Indices) == 1 {
			return adt.One{Index: adt.IntSelector(body.Indices[0])}, nil
		}
		sels := make([]adt.Selector, len(body.Indices))
		for i, idx := range body.Indices {
			sels[i] = adt.IntSelector(idx)
		}
		return adt.Slice{Indices: sels}, nil

	case ast.KeyList:
		if len(body.Keys) == 1 {
			return adt.One{Index: adt.StringSelector(body.Keys[0])}, nil
		}
		sels := make([]adt.Selector, len(body.Keys))
		for i, k := range body.Keys {
			sels[i] = adt.StringSelector(k)
		}
		return adt.Slice{Indices: sels}, nil

	case ast.AtomKeyList:
		if len(body.Keys) == 1 {
			return adt.One{Index: adt.AtomSelector(body.Keys[0])}, nil
		}
		sels := make([]adt.Selector, len(body.Keys))
		for i, k := range body.Keys {
			sels[i] = adt.AtomSelector(k)
		}
		return adt.Slice{Indices: sels}, nil

	default:
		return nil, errors.Newf(errors.ParseError, errors.NoPos, "compile: unknown bracket body %T", body)
	}
}

func prism(n ast.Prism) (adt.Optic, error) {
	names := extractionNames(n.Pattern)
	if dup, ok := firstDuplicate(names); ok {
		return nil, errors.Newf(errors.ParseError, errors.NoPos,
			"prism :%s: extraction name %q used more than once", n.Tag, dup)
	}

	pat := make([]adt.PatternElem, len(n.Pattern))
	for i, e := range n.Pattern {
		if !e.Ignore {
			pat[i] = adt.PatternElem{Name: e.Name}
		}
	}

	p := adt.Prism{Tag: adt.Atom(n.Tag), Rest: n.Rest, Pattern: pat}

	if n.HasOutputTag {
		tag := adt.Atom(n.OutputTag)
		p.OutputTag = &tag
	}
	if n.HasOutputPattern {
		p.OutputPattern = n.OutputPattern
		valid := map[string]bool{}
		for _, nm := range names {
			valid[nm] = true
		}
		for _, nm := range n.OutputPattern {
			if !valid[nm] {
				return nil, errors.Newf(errors.InvalidOutputPattern, errors.NoPos,
					"prism :%s: output pattern name %q is not extracted by the input pattern", n.Tag, nm)
			}
		}
	}
	return p, nil
}

func extractionNames(pattern []ast.PrismElem) []string {
	var out []string
	for _, e := range pattern {
		if !e.Ignore {
			out = append(out, e.Name)
		}
	}
	return out
}

// firstDuplicate reports the first name that occurs more than once.
// mpvl/unique's sort-and-collapse decides whether any collision exists;
// a scan of names in their original order then picks the one reported.
func firstDuplicate(names []string) (string, bool) {
	if len(names) < 2 {
		return "", false
	}
	sorted := append([]string{}, names...)
	unique.Sort(unique.StringSlice{P: &sorted})
	if len(sorted) == len(names) {
		return "", false
	}
	seen := map[string]int{}
	for _, n := range names {
		seen[n]++
		if seen[n] > 1 {
			return n, true
		}
	}
	return "", false
}
