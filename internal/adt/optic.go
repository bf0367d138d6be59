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

// Optic is implemented by each of the six optic kinds (spec.md §3's
// optic AST table) plus Sequence. Select/Transform operate at the
// per-element level: Sequence.Select is the only place SelectWrapped is
// called to lift that logic across a Wrapped outcome (spec.md §4.1,
// §4.8); Sequence.Transform chains continuations instead and does not
// call TransformWrapped.
type Optic interface {
	// Select focuses v, an unwrapped Value.
	Select(ctx *OpContext, v Value) (Wrapped, error)
	// Transform focuses v and replaces the focus with whatever cont
	// returns, threading the rest of the chain (or the caller's leaf
	// function, at the last optic) through cont.
	Transform(ctx *OpContext, v Value, cont Continuation) (Wrapped, error)
}

// Continuation is what an Optic.Transform calls on each focused
// sub-value; it is either the next optic in the chain, or — at the last
// optic — a thin wrapper around the caller's leaf transform function.
type Continuation func(ctx *OpContext, v Value) (Wrapped, error)

// LeafContinuation adapts a plain value-to-value transform function (the
// caller's `f` in spec.md §6's `transform(data, path, f, options?)`) into
// the Continuation shape the last optic in a chain expects.
func LeafContinuation(f func(Value) (Value, error)) Continuation {
	return func(ctx *OpContext, x Value) (Wrapped, error) {
		nv, err := f(x)
		if err != nil {
			return Wrapped{}, err
		}
		return WrapSingle(nv), nil
	}
}

// Sequence composes optics left-to-right (spec.md §4.8). Opts is a
// converter binding table for this Sequence; Select and Transform do not
// read it and compile.Path never sets it. The second tier of IsoRef
// resolution is IsoRef.LocalOpts, which compile.Path also leaves nil, so
// a compiled path resolves converters against the per-call bindings and
// the builtins only. Sequence itself implements Optic, so a Sequence nested inside another
// Sequence behaves identically to having spliced its lenses in place
// (spec.md §8 property 5, "Sequence associativity of composition").
type Sequence struct {
	Lenses []Optic
	Opts   map[string]Iso
}

// Select folds the optic list left-to-right: the first optic sees the
// raw value, each subsequent optic sees the wrapped outcome of the
// previous one via SelectWrapped, which distributes across a Many and
// short-circuits on None. Each lens's own Select pushes its own depth
// on entry; between lenses Sequence bumps the base depth with step (no
// event of its own) so the chain reports one nesting level deeper per
// lens, the same shape Transform's continuation-passing produces.
func (s *Sequence) Select(ctx *OpContext, v Value) (Wrapped, error) {
	if len(s.Lenses) == 0 {
		return WrapSingle(v), nil
	}
	cur, err := s.Lenses[0].Select(ctx, v)
	if err != nil {
		return Wrapped{}, err
	}
	next := ctx
	for _, opt := range s.Lenses[1:] {
		next = next.step()
		lensCtx := next
		var stepErr error
		cur = SelectWrapped(cur, func(uv Value) Wrapped {
			r, err := opt.Select(lensCtx, uv)
			if err != nil {
				stepErr = err
				return None()
			}
			return r
		})
		if stepErr != nil {
			return Wrapped{}, stepErr
		}
	}
	return cur, nil
}

// Transform threads cont — the rest of an enclosing chain, or a
// LeafContinuation at the very top — through every lens in order, last
// to first, so that the first lens is the outermost call (spec.md
// §4.8). Each lens's own Transform pushes its own depth and invokes
// cont with that pushed context, so the next lens in the chain pushes
// from one level deeper without Sequence needing its own step here.
func (s *Sequence) Transform(ctx *OpContext, v Value, cont Continuation) (Wrapped, error) {
	chain := cont
	for i := len(s.Lenses) - 1; i >= 0; i-- {
		opt := s.Lenses[i]
		next := chain
		chain = func(ctx *OpContext, x Value) (Wrapped, error) {
			return opt.Transform(ctx, x, next)
		}
	}
	return chain(ctx, v)
}
