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

package compile

import (
	"strings"

	"github.com/opticpath/optics/internal/adt"
	"github.com/opticpath/optics/optics/ast"
	"github.com/opticpath/optics/optics/errors"
	"github.com/opticpath/optics/optics/token"
)

// Predicate compiles a filter-expression AST into a predicate closure
// (spec.md §4.10). The closure is always bound lazily against the
// OpContext passed at evaluation time, since that is where per-call
// converters/functions live; a "static" expression (no converters, no
// function calls) simply never touches ctx.Converters/ctx.Functions.
func Predicate(e ast.Expr) (adt.PredicateFunc, error) {
	switch n := e.(type) {
	case ast.Logical:
		return logicalPredicate(n)
	case ast.Compare:
		return comparePredicate(n)
	default:
		return nil, errors.Newf(errors.ParseError, errors.NoPos, "compile: unknown expression node %T", e)
	}
}

func logicalPredicate(n ast.Logical) (adt.PredicateFunc, error) {
	switch n.Op {
	case ast.OpNot:
		inner, err := Predicate(n.Left)
		if err != nil {
			return nil, err
		}
		return func(ctx *adt.OpContext, v adt.Value) (bool, error) {
			ok, err := inner(ctx, v)
			if err != nil {
				return false, err
			}
			return !ok, nil
		}, nil

	case ast.OpAnd:
		left, err := Predicate(n.Left)
		if err != nil {
			return nil, err
		}
		right, err := Predicate(n.Right)
		if err != nil {
			return nil, err
		}
		return func(ctx *adt.OpContext, v adt.Value) (bool, error) {
			ok, err := left(ctx, v)
			if err != nil || !ok {
				return false, err
			}
			return right(ctx, v)
		}, nil

	case ast.OpOr:
		left, err := Predicate(n.Left)
		if err != nil {
			return nil, err
		}
		right, err := Predicate(n.Right)
		if err != nil {
			return nil, err
		}
		return func(ctx *adt.OpContext, v adt.Value) (bool, error) {
			ok, err := left(ctx, v)
			if err != nil || ok {
				return ok, err
			}
			return right(ctx, v)
		}, nil

	case ast.OpGet:
		op := n.Left.(ast.Operand)
		return func(ctx *adt.OpContext, v adt.Value) (bool, error) {
			val, err := resolveOperand(ctx, v, op)
			if err != nil {
				return false, err
			}
			return truthy(val), nil
		}, nil

	default:
		return nil, errors.Newf(errors.ParseError, errors.NoPos, "compile: unknown logical op %d", n.Op)
	}
}

func comparePredicate(n ast.Compare) (adt.PredicateFunc, error) {
	return func(ctx *adt.OpContext, v adt.Value) (bool, error) {
		l, err := resolveOperand(ctx, v, n.Left)
		if err != nil {
			return false, err
		}
		r, err := resolveOperand(ctx, v, n.Right)
		if err != nil {
			return false, err
		}
		return compareValues(n.Op, l, r)
	}, nil
}

func truthy(v adt.Value) bool {
	switch x := v.(type) {
	case adt.Nil:
		return false
	case adt.Bool:
		return bool(x)
	default:
		return true
	}
}

func compareValues(op ast.CompareOp, l, r adt.Value) (bool, error) {
	switch op {
	case ast.OpEq:
		return structuralEqual(l, r), nil
	case ast.OpNeq:
		return !structuralEqual(l, r), nil
	case ast.OpStrEq:
		return l.Inspect() == r.Inspect(), nil
	case ast.OpStrNeq:
		return l.Inspect() != r.Inspect(), nil
	}
	c := naturalCompare(l, r)
	switch op {
	case ast.OpLt:
		return c < 0, nil
	case ast.OpLte:
		return c <= 0, nil
	case ast.OpGt:
		return c > 0, nil
	case ast.OpGte:
		return c >= 0, nil
	default:
		return false, errors.Newf(errors.ParseError, errors.NoPos, "compile: unknown comparison op %d", op)
	}
}

// naturalCompare drives the ordering operators: Int/Float dispatch to
// their own three-way apd.Decimal comparator (spec.md §4.10), strings
// compare lexicographically, booleans false<true, and anything else
// falls back to comparing the display rendering (a deterministic, if
// arbitrary, total order).
func naturalCompare(l, r adt.Value) int {
	if ln, ok := adt.AsNumber(l); ok {
		if rn, ok2 := adt.AsNumber(r); ok2 {
			return ln.Cmp(rn)
		}
	}
	if ls, ok := l.(adt.String); ok {
		if rs, ok2 := r.(adt.String); ok2 {
			return strings.Compare(string(ls), string(rs))
		}
	}
	if lb, ok := l.(adt.Bool); ok {
		if rb, ok2 := r.(adt.Bool); ok2 {
			return boolCompare(bool(lb), bool(rb))
		}
	}
	return strings.Compare(l.Inspect(), r.Inspect())
}

func boolCompare(a, b bool) int {
	if a == b {
		return 0
	}
	if !a {
		return -1
	}
	return 1
}

// structuralEqual implements `==`/`!=` (spec.md §4.10: "compare by
// structural equality"). Numbers compare via Cmp so 1 == 1.0; containers
// compare elementwise/keywise; mismatched kinds are never equal.
func structuralEqual(l, r adt.Value) bool {
	if ln, ok := adt.AsNumber(l); ok {
		rn, ok2 := adt.AsNumber(r)
		return ok2 && ln.Cmp(rn) == 0
	}
	switch lv := l.(type) {
	case adt.Nil:
		_, ok := r.(adt.Nil)
		return ok
	case adt.Bool:
		rv, ok := r.(adt.Bool)
		return ok && lv == rv
	case adt.String:
		rv, ok := r.(adt.String)
		return ok && lv == rv
	case adt.Atom:
		rv, ok := r.(adt.Atom)
		return ok && lv == rv
	case adt.Seq:
		rv, ok := r.(adt.Seq)
		return ok && equalElems(lv.Elems, rv.Elems)
	case adt.Tuple:
		rv, ok := r.(adt.Tuple)
		return ok && equalElems(lv.Elems, rv.Elems)
	case adt.Map:
		rv, ok := r.(adt.Map)
		return ok && equalMaps(lv, rv)
	default:
		return false
	}
}

func equalElems(l, r []adt.Value) bool {
	if len(l) != len(r) {
		return false
	}
	for i := range l {
		if !structuralEqual(l[i], r[i]) {
			return false
		}
	}
	return true
}

func equalMaps(l, r adt.Map) bool {
	if l.Len() != r.Len() {
		return false
	}
	for _, k := range l.Keys() {
		lv, _ := l.Get(k)
		rv, ok := r.Get(k)
		if !ok || !structuralEqual(lv, rv) {
			return false
		}
	}
	return true
}

// resolveOperand implements spec.md §4.10's "Operand resolution against
// an element e and options o".
func resolveOperand(ctx *adt.OpContext, e adt.Value, op ast.Operand) (adt.Value, error) {
	base, err := resolveOperandBase(ctx, e, op.Base)
	if err != nil {
		return nil, err
	}
	for _, name := range op.Converters {
		iso, err := ctx.ResolveConverter(name, nil)
		if err != nil {
			return nil, err
		}
		base, err = iso.Forward(base)
		if err != nil {
			return nil, err
		}
	}
	return base, nil
}

func resolveOperandBase(ctx *adt.OpContext, e adt.Value, base ast.OperandBase) (adt.Value, error) {
	switch b := base.(type) {
	case ast.Self:
		return e, nil

	case ast.Field:
		cur := e
		for _, seg := range b.Chain {
			m, ok := cur.(adt.Map)
			if !ok {
				return adt.Nil{}, nil
			}
			var key adt.Value
			if seg.IsAtom {
				key = adt.Atom(seg.Name)
			} else {
				key = adt.String(seg.Name)
			}
			val, ok := m.Get(key)
			if !ok {
				return adt.Nil{}, nil
			}
			cur = val
		}
		return cur, nil

	case ast.Literal:
		return literalValue(b)

	case ast.FunctionCall:
		fn, err := ctx.ResolveFunction(b.Name)
		if err != nil {
			return nil, err
		}
		args := make([]adt.Value, len(b.Args))
		for i, a := range b.Args {
			v, err := resolveOperand(ctx, e, a)
			if err != nil {
				return nil, err
			}
			args[i] = v
		}
		return fn(args)

	default:
		return nil, errors.Newf(errors.ParseError, errors.NoPos, "compile: unknown operand %T", base)
	}
}

func literalValue(lit ast.Literal) (adt.Value, error) {
	switch lit.Kind {
	case token.STRING:
		return adt.String(lit.Text), nil
	case token.TRUE:
		return adt.Bool(true), nil
	case token.FALSE:
		return adt.Bool(false), nil
	case token.NIL:
		return adt.Nil{}, nil
	case token.ATOM:
		return adt.Atom(lit.Text[1:]), nil
	case token.NUMBER:
		if strings.Contains(lit.Text, ".") {
			var f adt.Float
			if _, _, err := f.Dec.SetString(lit.Text); err != nil {
				return nil, errors.Newf(errors.ParseError, errors.NoPos, "invalid numeric literal %q: %v", lit.Text, err)
			}
			return f, nil
		}
		var i adt.Int
		if _, _, err := i.Dec.SetString(lit.Text); err != nil {
			return nil, errors.Newf(errors.ParseError, errors.NoPos, "invalid numeric literal %q: %v", lit.Text, err)
		}
		return i, nil
	default:
		return nil, errors.Newf(errors.ParseError, errors.NoPos, "compile: unknown literal kind %s", lit.Kind)
	}
}
