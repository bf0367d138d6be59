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

// IsoOptic wraps an already-resolved bidirectional converter (spec.md
// §4.7). select applies Forward; transform applies Forward, then the
// continuation, then Backward.
type IsoOptic struct {
	Conv Iso
}

func (o IsoOptic) label() string { return "iso:" + o.Conv.Name }

func (o IsoOptic) Select(ctx *OpContext, v Value) (Wrapped, error) {
	child, pop := ctx.push(o.label())
	defer pop()
	fv, err := o.Conv.Forward(v)
	if err != nil {
		return Wrapped{}, child.errf(errors.BadTarget, "converter %q: %v", o.Conv.Name, err)
	}
	child.emit(EventPick, o.label(), "")
	return WrapSingle(fv), nil
}

func (o IsoOptic) Transform(ctx *OpContext, v Value, cont Continuation) (Wrapped, error) {
	child, pop := ctx.push(o.label())
	defer pop()
	fv, err := o.Conv.Forward(v)
	if err != nil {
		return Wrapped{}, child.errf(errors.BadTarget, "converter %q: %v", o.Conv.Name, err)
	}
	child.emit(EventPick, o.label(), "")
	r, err := cont(child, fv)
	if err != nil {
		return Wrapped{}, err
	}
	bv, err := o.Conv.Backward(Unwrap(r))
	if err != nil {
		return Wrapped{}, child.errf(errors.BadTarget, "converter %q: %v", o.Conv.Name, err)
	}
	return WrapSingle(bv), nil
}

// IsoRef is an unresolved converter reference (spec.md §4.7); resolution
// happens at evaluation time against the three-tier lookup on OpContext,
// so the same path AST can be reused with different option bindings.
type IsoRef struct {
	Name      string
	LocalOpts map[string]Iso
}

func (r IsoRef) resolve(ctx *OpContext) (IsoOptic, error) {
	iso, err := ctx.resolveConverter(r.Name, r.LocalOpts)
	if err != nil {
		return IsoOptic{}, err
	}
	return IsoOptic{Conv: iso}, nil
}

func (r IsoRef) Select(ctx *OpContext, v Value) (Wrapped, error) {
	o, err := r.resolve(ctx)
	if err != nil {
		return Wrapped{}, err
	}
	return o.Select(ctx, v)
}

func (r IsoRef) Transform(ctx *OpContext, v Value, cont Continuation) (Wrapped, error) {
	o, err := r.resolve(ctx)
	if err != nil {
		return Wrapped{}, err
	}
	return o.Transform(ctx, v, cont)
}
