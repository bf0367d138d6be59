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

// Package adt is the optics engine core: the heterogeneous Value algebra
// (spec.md §3), the Wrapped outcome sum and its combinators (§4.1), the
// six optic kinds plus Sequence (§4.2-§4.8), and the evaluator/driver.
//
// The name follows the teacher's internal/core/adt ("abstract data
// types") — the evaluated representation, as distinct from the raw
// syntax tree in optics/ast.
package adt

// Kind identifies the structural category of a Value (spec.md §3).
type Kind int

const (
	KindNil Kind = iota
	KindInt
	KindFloat
	KindBool
	KindString
	KindAtom
	KindSeq
	KindMap
	KindTuple
)

func (k Kind) String() string {
	switch k {
	case KindNil:
		return "nil"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindString:
		return "string"
	case KindAtom:
		return "atom"
	case KindSeq:
		return "sequence"
	case KindMap:
		return "mapping"
	case KindTuple:
		return "tuple"
	default:
		return "unknown"
	}
}
