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

package adt_test

import (
	"testing"

	"github.com/go-quicktest/qt"

	"github.com/opticpath/optics/internal/adt"
)

func ctx() *adt.OpContext { return adt.NewOpContext() }

func TestPrismSelectSingleName(t *testing.T) {
	p := adt.Prism{Tag: "ok", Pattern: []adt.PatternElem{{Name: "v"}}}
	v := adt.NewTuple(adt.Atom("ok"), adt.NewInt(5))

	w, err := p.Select(ctx(), v)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.IsTrue(w.IsSingle()))
	qt.Assert(t, qt.Equals(w.SingleValue().Inspect(), "5"))
}

func TestPrismSelectMismatchedTagIsNone(t *testing.T) {
	p := adt.Prism{Tag: "ok", Pattern: []adt.PatternElem{{Name: "v"}}}
	v := adt.NewTuple(adt.Atom("err"), adt.NewInt(5))

	w, err := p.Select(ctx(), v)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.IsTrue(w.IsNone()))
}

func TestPrismTransformSingleName(t *testing.T) {
	p := adt.Prism{Tag: "ok", Pattern: []adt.PatternElem{{Name: "v"}}}
	v := adt.NewTuple(adt.Atom("ok"), adt.NewInt(5))

	w, err := p.Transform(ctx(), v, adt.LeafContinuation(func(x adt.Value) (adt.Value, error) {
		return adt.NewInt(x.(adt.Int).Int64() + 1), nil
	}))
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(adt.Unwrap(w).Inspect(), "{:ok, 6}"))
}

func TestPrismTransformMismatchedTagIsUnchanged(t *testing.T) {
	p := adt.Prism{Tag: "ok", Pattern: []adt.PatternElem{{Name: "v"}}}
	v := adt.NewTuple(adt.Atom("err"), adt.NewString("boom"))

	w, err := p.Transform(ctx(), v, adt.LeafContinuation(func(x adt.Value) (adt.Value, error) {
		t.Fatal("continuation must not run on a non-matching tuple")
		return x, nil
	}))
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(adt.Unwrap(w).Inspect(), "{:err, boom}"))
}

func TestPrismRestPattern(t *testing.T) {
	p := adt.Prism{Tag: "point", Rest: true}
	v := adt.NewTuple(adt.Atom("point"), adt.NewInt(1), adt.NewInt(2), adt.NewInt(3))

	w, err := p.Select(ctx(), v)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(w.SingleValue().Inspect(), "{1, 2, 3}"))
}

func TestPrismOutputTagRetags(t *testing.T) {
	tag := adt.Atom("fail")
	p := adt.Prism{Tag: "ok", Pattern: []adt.PatternElem{{Name: "v"}}, OutputTag: &tag}
	v := adt.NewTuple(adt.Atom("ok"), adt.NewInt(5))

	w, err := p.Select(ctx(), v)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(w.SingleValue().Inspect(), "{:fail, 5}"))
}

func TestPrismIgnoredPositionDropsFromShape(t *testing.T) {
	p := adt.Prism{Tag: "pair", Pattern: []adt.PatternElem{{}, {Name: "b"}}}
	v := adt.NewTuple(adt.Atom("pair"), adt.NewString("ignored"), adt.NewString("kept"))

	w, err := p.Select(ctx(), v)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(w.SingleValue().Inspect(), "kept"))
}

func TestPrismZeroNamePatternYieldsWholeTuple(t *testing.T) {
	p := adt.Prism{Tag: "pair", Pattern: []adt.PatternElem{{}, {}}}
	v := adt.NewTuple(adt.Atom("pair"), adt.NewInt(1), adt.NewInt(2))

	w, err := p.Select(ctx(), v)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(w.SingleValue().Inspect(), "{:pair, 1, 2}"))
}
