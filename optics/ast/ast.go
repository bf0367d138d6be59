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

// Package ast defines the syntax trees produced by optics/parser: the
// path-language tree (spec.md §4.11) and the filter-expression tree
// (spec.md §4.9 / §3 "Expression AST"). These are plain data — no
// evaluation logic is attached, matching the teacher's split between
// cue/ast (syntax) and internal/core/adt (evaluated form).
package ast

import "github.com/opticpath/optics/optics/token"

// Path is a parsed path: an ordered list of Components.
type Path struct {
	Components []Component
}

// Component is one step of a path (spec.md §4.11 grammar: component).
type Component interface {
	componentNode()
	Pos() token.Pos
}

// Key is a bare identifier component: `name` -> One(string key).
type Key struct {
	Name string
	At   token.Pos
}

// AtomKey is a `:name` component -> One(atom key).
type AtomKey struct {
	Name string // without the leading ':'
	At   token.Pos
}

// ConverterRef is a standalone `::name` component -> IsoRef(name).
type ConverterRef struct {
	Name string
	At   token.Pos
}

// Bracket is a `[...]` component.
type Bracket struct {
	Body BracketBody
	At   token.Pos
}

// BracketBody is the payload of a Bracket: one of All, FilterBody,
// IndexList, KeyList, AtomKeyList.
type BracketBody interface{ bracketBodyNode() }

// All represents `[*]`.
type All struct{}

// FilterBody represents `[?expr]`.
type FilterBody struct {
	Expr Expr
}

// IndexList represents `[i,j,...]`, all-integer index lists (negative
// indices allowed).
type IndexList struct {
	Indices []int64
}

// KeyList represents `[name,...]`, string-keyed lists.
type KeyList struct {
	Keys []string
}

// AtomKeyList represents `[:a,:b,...]`, atom-keyed lists.
type AtomKeyList struct {
	Keys []string // without leading ':'
}

func (All) bracketBodyNode()         {}
func (FilterBody) bracketBodyNode()  {}
func (IndexList) bracketBodyNode()   {}
func (KeyList) bracketBodyNode()     {}
func (AtomKeyList) bracketBodyNode() {}

// PrismElem is one slot of a prism pattern: either an extraction name
// or the ignore marker ("_").
type PrismElem struct {
	Ignore bool
	Name   string
}

// Prism is a `:{:tag, ...}` component, with an optional `-> ...` retag.
type Prism struct {
	Tag  string // without leading ':'
	Rest bool   // bare-tag or ",..." body
	Pattern []PrismElem

	HasOutputTag     bool
	OutputTag        string // without leading ':'
	HasOutputPattern bool
	OutputPattern    []string // extraction names, reordered/duplicated/dropped

	At token.Pos
}

func (Key) componentNode()          {}
func (AtomKey) componentNode()      {}
func (ConverterRef) componentNode() {}
func (Bracket) componentNode()      {}
func (Prism) componentNode()        {}

func (n Key) Pos() token.Pos          { return n.At }
func (n AtomKey) Pos() token.Pos      { return n.At }
func (n ConverterRef) Pos() token.Pos { return n.At }
func (n Bracket) Pos() token.Pos      { return n.At }
func (n Prism) Pos() token.Pos        { return n.At }

// --- Filter-expression AST (spec.md §3 "Expression AST", §4.9) ---

// Expr is any node of the filter-expression language.
type Expr interface {
	exprNode()
	Pos() token.Pos
}

// LogicalOp and CompareOp enumerate the operators of comparison/logical
// nodes (spec.md §3: "Each ... {left, op, right}").
type LogicalOp int

const (
	OpAnd LogicalOp = iota
	OpOr
	OpNot
	OpGet // bare truthiness check; Left set, Right nil
)

type CompareOp int

const (
	OpEq CompareOp = iota
	OpNeq
	OpLt
	OpLte
	OpGt
	OpGte
	OpStrEq
	OpStrNeq
)

// Logical is an `and`/`or`/`not`/bare-operand node.
type Logical struct {
	Op    LogicalOp
	Left  Expr // nil for... never; Get/Not use Left only
	Right Expr // nil for Not and Get
	At    token.Pos
}

// Compare is a comparison node.
type Compare struct {
	Op    CompareOp
	Left  Operand
	Right Operand
	At    token.Pos
}

func (Logical) exprNode() {}
func (Compare) exprNode() {}

func (n Logical) Pos() token.Pos { return n.At }
func (n Compare) Pos() token.Pos { return n.At }

// Operand is one side of a comparison, or the sole child of a Logical
// OpGet node: Self, Field, Literal, or FunctionCall, optionally followed
// by an iso-chain.
type Operand struct {
	Base       OperandBase
	Converters []string // `::a::b`, applied forward left-to-right; may be empty
	At         token.Pos
}

func (o Operand) Pos() token.Pos { return o.At }
func (o Operand) exprNode()      {}

// OperandBase is the unconverted core of an Operand.
type OperandBase interface{ operandBaseNode() }

// Self represents the bare `@` operand.
type Self struct{}

// FieldSeg is one step of a field chain: a string-keyed or atom-keyed
// access.
type FieldSeg struct {
	IsAtom bool
	Name   string
}

// Field represents a field-chain operand (`@.a.b`, `@:a`, or bare `a.b`).
type Field struct {
	Chain []FieldSeg
}

// Literal represents a string/number/bool/nil/atom literal operand.
type Literal struct {
	Kind  token.Kind // STRING, NUMBER, TRUE, FALSE, NIL, ATOM
	Text  string
}

// FunctionCall represents `name(arg, ...)`.
type FunctionCall struct {
	Name string
	Args []Operand
}

func (Self) operandBaseNode()         {}
func (Field) operandBaseNode()        {}
func (Literal) operandBaseNode()      {}
func (FunctionCall) operandBaseNode() {}
