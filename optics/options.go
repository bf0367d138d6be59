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
	"os"

	"github.com/opticpath/optics/internal/adt"
	"github.com/opticpath/optics/tracing"
)

// settings accumulates the options recognized by select/transform
// (spec.md §6's option table): converter bindings, function bindings,
// and the trace sink.
type settings struct {
	converters map[string]adt.Iso
	functions  map[string]adt.FilterFunc
	tracer     adt.Tracer
}

func newSettings() *settings {
	return &settings{
		converters: map[string]adt.Iso{},
		functions:  map[string]adt.FilterFunc{},
	}
}

// Option configures one call to Select or Transform (the functional
// options pattern, following the teacher's cue.BuildOption/cue.Option
// shape).
type Option func(*settings)

// WithConverter binds name as a converter usable from `::name` path
// components or filter-expression iso-chains (spec.md §6: "<atom>:
// Iso(fwd,bwd)").
func WithConverter(name string, forward, backward func(Value) (Value, error)) Option {
	return func(s *settings) {
		s.converters[name] = adt.Iso{
			Name:     name,
			Forward:  adt.IsoFunc(forward),
			Backward: adt.IsoFunc(backward),
		}
	}
}

// WithFunction binds name as a function usable from filter expressions
// (`foo(@.x)`, spec.md §6: "<atom>: function").
func WithFunction(name string, fn func(args []Value) (Value, error)) Option {
	return func(s *settings) {
		s.functions[name] = adt.FilterFunc(fn)
	}
}

// Tracer receives the structured trace events of spec.md §9 (start,
// match, pick, end, exception).
type Tracer = adt.Tracer

// WithTrace binds an explicit trace sink (spec.md §6's "trace: ... |
// sink" form).
func WithTrace(t Tracer) Option {
	return func(s *settings) { s.tracer = t }
}

// WithTraceEnabled turns tracing on or off using the default
// kr/pretty-rendered sink written to stderr (spec.md §6's "trace: bool"
// form).
func WithTraceEnabled(enabled bool) Option {
	return func(s *settings) {
		if enabled {
			s.tracer = tracing.NewPrettyTracer(os.Stderr)
		} else {
			s.tracer = nil
		}
	}
}

func (s *settings) newOpContext() *adt.OpContext {
	ctx := adt.NewOpContext()
	ctx.Converters = s.converters
	ctx.Functions = s.functions
	ctx.Builtins = builtinCatalogue()
	ctx.Tracer = s.tracer
	if s.tracer != nil {
		ctx.CallID = tracing.NewCallID()
	}
	return ctx
}
