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

// Package errors defines the shared error type raised by the path parser,
// the expression parser/compiler, and the optics evaluator.
//
// The taxonomy mirrors spec.md §7: a single Kind identifies why a call
// failed (parse-error, bad-target, unresolved-converter, ...), and a
// position/path pair identifies where.
package errors

import (
	"fmt"
	"strings"
)

// Kind identifies one of the failure categories an Error can carry.
type Kind string

const (
	ParseError            Kind = "parse-error"
	BadTarget              Kind = "bad-target"
	UnresolvedConverter    Kind = "unresolved-converter"
	UnknownFunction        Kind = "unknown-function"
	InvalidOutputPattern   Kind = "invalid-output-pattern"
	ArityMismatch          Kind = "arity-mismatch"
	BadArityTransform      Kind = "bad-arity-transform"
)

// Pos is a source position within a path or filter-expression string.
type Pos struct {
	Offset int // byte offset, 0-based
	Line   int // 1-based
	Column int // 1-based
}

// NoPos is the zero value, used when a failure has no useful source
// position (e.g. a runtime evaluation failure).
var NoPos = Pos{}

func (p Pos) String() string {
	if p == NoPos {
		return "-"
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Error is the error type every failure in this module's core is reported
// as. It satisfies the standard error interface.
type Error struct {
	Kind Kind
	Pos  Pos
	// Path is the chain of optic/expression labels active when the error
	// occurred, innermost last (e.g. ["users", "all", "age"]).
	Path []string
	msg  string
}

func (e *Error) Error() string {
	b := &strings.Builder{}
	if e.Pos != NoPos {
		fmt.Fprintf(b, "%s: ", e.Pos)
	}
	b.WriteString(e.msg)
	if len(e.Path) > 0 {
		fmt.Fprintf(b, " (at %s)", strings.Join(e.Path, ""))
	}
	if e.Kind != "" {
		fmt.Fprintf(b, " [%s]", e.Kind)
	}
	return b.String()
}

// Newf builds a new Error of the given kind at the given position.
func Newf(kind Kind, pos Pos, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Pos: pos, msg: fmt.Sprintf(format, args...)}
}

// WithPath returns a copy of e with seg prepended to Path. (The evaluator
// in internal/adt does not call it; it fills Path directly when it builds
// an error.)
func (e *Error) WithPath(seg string) *Error {
	cp := *e
	cp.Path = append([]string{seg}, e.Path...)
	return &cp
}

// Is reports whether err is an *Error of the given kind.
func Is(err error, kind Kind) bool {
	e, ok := err.(*Error)
	return ok && e.Kind == kind
}

// List collects multiple parse errors (the path/expression scanners keep
// going after a syntax error so a single ParsePath call can report more
// than one problem).
type List []*Error

func (l List) Error() string {
	if len(l) == 0 {
		return "no errors"
	}
	parts := make([]string, len(l))
	for i, e := range l {
		parts[i] = e.Error()
	}
	return strings.Join(parts, "\n")
}

// Append adds err to the list if it is non-nil, flattening nested Lists.
func Append(l List, err error) List {
	switch e := err.(type) {
	case nil:
		return l
	case *Error:
		return append(l, e)
	case List:
		return append(l, e...)
	default:
		return append(l, Newf(ParseError, NoPos, "%s", e.Error()))
	}
}

// Err returns nil if the list is empty, else the list itself as an error.
func (l List) Err() error {
	if len(l) == 0 {
		return nil
	}
	return l
}
