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

func isEven(ctx *adt.OpContext, v adt.Value) (bool, error) {
	i, ok := v.(adt.Int)
	return ok && i.Int64()%2 == 0, nil
}

func TestFilterSelectRetainsMatching(t *testing.T) {
	f := adt.Filter{Predicate: isEven}
	v := adt.NewSeq(adt.NewInt(1), adt.NewInt(2), adt.NewInt(3), adt.NewInt(4))

	w, err := f.Select(ctx(), v)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(adt.Unwrap(w).Inspect(), "[2, 4]"))
}

func TestFilterSelectLengthInvariant(t *testing.T) {
	f := adt.Filter{Predicate: func(ctx *adt.OpContext, v adt.Value) (bool, error) { return true, nil }}
	v := adt.NewSeq(adt.NewInt(1), adt.NewInt(2))

	w, err := f.Select(ctx(), v)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(len(adt.UnwrapList(w)), 2))
}

func TestFilterTransformOnlyTouchesMatching(t *testing.T) {
	f := adt.Filter{Predicate: isEven}
	v := adt.NewSeq(adt.NewInt(1), adt.NewInt(2), adt.NewInt(3), adt.NewInt(4))

	w, err := f.Transform(ctx(), v, adt.LeafContinuation(func(x adt.Value) (adt.Value, error) {
		return adt.NewInt(x.(adt.Int).Int64() * 10), nil
	}))
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(adt.Unwrap(w).Inspect(), "[1, 20, 3, 40]"))
}

func TestSequenceComposesLeftToRight(t *testing.T) {
	seq := &adt.Sequence{Lenses: []adt.Optic{
		adt.One{Index: adt.StringSelector("users")},
		adt.All{},
		adt.One{Index: adt.StringSelector("name")},
	}}
	v := adt.NewMap(
		[]adt.Value{adt.String("users")},
		[]adt.Value{adt.NewSeq(
			adt.NewMap([]adt.Value{adt.String("name")}, []adt.Value{adt.String("Ada")}),
			adt.NewMap([]adt.Value{adt.String("name")}, []adt.Value{adt.String("Lin")}),
		)},
	)

	w, err := seq.Select(ctx(), v)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(adt.Unwrap(w).Inspect(), "[Ada, Lin]"))
}

func TestSequenceNestedAssociativity(t *testing.T) {
	inner := &adt.Sequence{Lenses: []adt.Optic{
		adt.One{Index: adt.StringSelector("a")},
		adt.One{Index: adt.StringSelector("b")},
	}}
	outer := &adt.Sequence{Lenses: []adt.Optic{inner, adt.One{Index: adt.StringSelector("c")}}}
	flat := &adt.Sequence{Lenses: []adt.Optic{
		adt.One{Index: adt.StringSelector("a")},
		adt.One{Index: adt.StringSelector("b")},
		adt.One{Index: adt.StringSelector("c")},
	}}

	v := adt.NewMap([]adt.Value{adt.String("a")}, []adt.Value{
		adt.NewMap([]adt.Value{adt.String("b")}, []adt.Value{
			adt.NewMap([]adt.Value{adt.String("c")}, []adt.Value{adt.NewInt(42)}),
		}),
	})

	w1, err := outer.Select(ctx(), v)
	qt.Assert(t, qt.IsNil(err))
	w2, err := flat.Select(ctx(), v)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(adt.Unwrap(w1).Inspect(), adt.Unwrap(w2).Inspect()))
}
