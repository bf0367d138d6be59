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

import "strconv"

// SelectorKind distinguishes the three ways a One/Slice index can be
// expressed (spec.md §3: "index: integer | string | atom").
type SelectorKind int

const (
	SelInt SelectorKind = iota
	SelString
	SelAtom
)

// Selector is one index/key used by One and Slice.
type Selector struct {
	Kind SelectorKind
	Int  int64
	Str  string // used for both SelString and SelAtom
}

func IntSelector(i int64) Selector    { return Selector{Kind: SelInt, Int: i} }
func StringSelector(s string) Selector { return Selector{Kind: SelString, Str: s} }
func AtomSelector(s string) Selector   { return Selector{Kind: SelAtom, Str: s} }

func (s Selector) String() string {
	switch s.Kind {
	case SelInt:
		return strconv.FormatInt(s.Int, 10)
	case SelAtom:
		return ":" + s.Str
	default:
		return s.Str
	}
}

// AsKey converts the selector to the Value used as a mapping key (valid
// only for SelString/SelAtom).
func (s Selector) AsKey() Value {
	if s.Kind == SelAtom {
		return Atom(s.Str)
	}
	return String(s.Str)
}
