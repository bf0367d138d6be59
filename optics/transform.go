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

package optics

import (
	"github.com/opticpath/optics/internal/adt"
)

// Transform evaluates path_or_optic against data, threading f to the
// leaf focus; the result has the same top-level kind as data, with
// non-focused parts structurally identical (spec.md §6).
func Transform(data Value, pathOrOptic pathLike, f func(Value) (Value, error), opts ...Option) (Value, error) {
	p, err := resolvePathLike(pathOrOptic)
	if err != nil {
		return nil, err
	}
	s := newSettings()
	for _, o := range opts {
		o(s)
	}
	ctx := s.newOpContext()

	if ctx.Tracer != nil {
		ctx.Tracer.Emit(adt.Event{Kind: adt.EventStart, CallID: ctx.CallID, Label: p.src})
		defer ctx.Tracer.Emit(adt.Event{Kind: adt.EventEnd, CallID: ctx.CallID, Label: p.src})
	}

	w, err := p.optic.Transform(ctx, data, adt.LeafContinuation(f))
	if err != nil {
		if ctx.Tracer != nil {
			ctx.Tracer.Emit(adt.Event{Kind: adt.EventException, CallID: ctx.CallID, Detail: err.Error()})
		}
		return nil, err
	}
	return adt.Unwrap(w), nil
}
