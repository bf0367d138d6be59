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

// Select evaluates path_or_optic (a path string or a *Path) against
// data and returns the unwrapped outcome: None -> nil, Single -> its
// value, Many -> a Seq of the unwrapped elements (spec.md §6).
func Select(data Value, pathOrOptic pathLike, opts ...Option) (Value, error) {
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

	w, err := p.optic.Select(ctx, data)
	if err != nil {
		if ctx.Tracer != nil {
			ctx.Tracer.Emit(adt.Event{Kind: adt.EventException, CallID: ctx.CallID, Detail: err.Error()})
		}
		return nil, err
	}
	return adt.Unwrap(w), nil
}
