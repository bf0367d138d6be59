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

// IsoFunc is one direction of an Iso conversion.
type IsoFunc func(Value) (Value, error)

// Iso is a named bidirectional converter (spec.md §4.7). Forward is used
// by select; transform applies Forward, then the caller's function,
// then Backward.
type Iso struct {
	Name     string
	Forward  IsoFunc
	Backward IsoFunc
}

// FilterFunc is a function usable from a filter expression's
// FunctionCall node (spec.md §4.10).
type FilterFunc func(args []Value) (Value, error)

// EventKind distinguishes the trace events named in spec.md §9.
type EventKind int

const (
	EventStart EventKind = iota
	EventMatch
	EventPick
	EventEnd
	EventException
)

// Event is one trace record; Tracer implementations render or forward
// it. This is the external trace-sink collaborator of spec.md §5/§9 —
// the core only ever calls Emit, fire-and-forget.
type Event struct {
	Kind   EventKind
	Depth  int
	CallID string
	Label  string
	Detail string
}

// Tracer receives trace events. Optional: a nil Tracer means tracing is
// disabled, and the evaluator must work without one (spec.md §9).
type Tracer interface {
	Emit(Event)
}

// OpContext is threaded through every Select/Transform call, carrying
// the per-call converter/function bindings, the optional tracer, and
// the recursion depth counter (spec.md §5's "opaque sink handle ...
// carrying a depth counter").
type OpContext struct {
	// Converters/Functions are the per-call options (highest-priority
	// resolution tier, spec.md §4.7).
	Converters map[string]Iso
	Functions  map[string]FilterFunc
	// Builtins is the catalogue consulted last.
	Builtins map[string]Iso

	Tracer Tracer
	CallID string
	Depth  int
	path   []string
}

// NewOpContext builds a bare context with no bindings and no tracer.
func NewOpContext() *OpContext {
	return &OpContext{
		Converters: map[string]Iso{},
		Functions:  map[string]FilterFunc{},
		Builtins:   map[string]Iso{},
	}
}

// push enters one optic's evaluation, returning a child context one
// depth deeper and a func that emits the matching EventEnd. Every optic
// implementation's Select/Transform calls this once on entry so nested
// optics (a Sequence's lenses, a Prism's extracted shape, an Iso's
// wrapped value) report increasing Depth instead of the flat depth-0
// log spec.md §9/§D.3 warns against.
func (c *OpContext) push(label string) (*OpContext, func()) {
	child := *c
	child.Depth = c.Depth + 1
	child.path = append(append([]string{}, c.path...), label)
	if c.Tracer != nil {
		c.Tracer.Emit(Event{Kind: EventStart, Depth: child.Depth, CallID: c.CallID, Label: label})
	}
	return &child, func() {
		if c.Tracer != nil {
			c.Tracer.Emit(Event{Kind: EventEnd, Depth: child.Depth, CallID: c.CallID, Label: label})
		}
	}
}

// step returns a context one level deeper than c without emitting an
// event. A Sequence uses it between its lenses so the second, third,
// ... lens each pushes its own Start/End one level past the previous
// lens's, instead of every lens in the chain pushing from the same
// base depth (push, by contrast, is for a lens's own evaluation and
// does emit Start/End).
func (c *OpContext) step() *OpContext {
	child := *c
	child.Depth++
	return &child
}

// emit reports a Match or Pick fact at the context's current depth,
// without entering a new nesting level (that's push's job).
func (c *OpContext) emit(kind EventKind, label, detail string) {
	if c.Tracer != nil {
		c.Tracer.Emit(Event{Kind: kind, Depth: c.Depth, CallID: c.CallID, Label: label, Detail: detail})
	}
}

func (c *OpContext) errf(kind errors.Kind, format string, args ...interface{}) *errors.Error {
	e := errors.Newf(kind, errors.NoPos, format, args...)
	e.Path = append([]string{}, c.path...)
	return e
}

// resolveConverter implements the three-tier lookup of spec.md §4.7:
// per-call options, then localOpts (an IsoRef's LocalOpts; nil for
// paths built by compile.Path and for filter-expression iso-chains),
// then the built-in catalogue.
func (c *OpContext) resolveConverter(name string, localOpts map[string]Iso) (Iso, error) {
	if iso, ok := c.Converters[name]; ok {
		return iso, nil
	}
	if localOpts != nil {
		if iso, ok := localOpts[name]; ok {
			return iso, nil
		}
	}
	if iso, ok := c.Builtins[name]; ok {
		return iso, nil
	}
	names := make([]string, 0, len(c.Builtins))
	for n := range c.Builtins {
		names = append(names, n)
	}
	return Iso{}, c.errf(errors.UnresolvedConverter,
		"unresolved converter %q (available built-ins: %v)", name, names)
}

func (c *OpContext) resolveFunction(name string) (FilterFunc, error) {
	if fn, ok := c.Functions[name]; ok {
		return fn, nil
	}
	return nil, c.errf(errors.UnknownFunction, "unknown function %q", name)
}

// ResolveConverter and ResolveFunction are the exported forms of the
// lookups above (three tiers for converters, per-call bindings only for
// functions), used by internal/compile's filter-expression
// operand resolution (spec.md §4.10), which lives outside this package.
func (c *OpContext) ResolveConverter(name string, localOpts map[string]Iso) (Iso, error) {
	return c.resolveConverter(name, localOpts)
}

func (c *OpContext) ResolveFunction(name string) (FilterFunc, error) {
	return c.resolveFunction(name)
}
