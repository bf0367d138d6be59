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

package compile_test

import (
	"testing"

	"github.com/go-quicktest/qt"

	"github.com/opticpath/optics/internal/adt"
	"github.com/opticpath/optics/internal/compile"
	"github.com/opticpath/optics/optics/parser"
)

func mustCompile(t *testing.T, src string) adt.Optic {
	t.Helper()
	tree, err := parser.ParsePath(src)
	qt.Assert(t, qt.IsNil(err))
	o, err := compile.Path(tree)
	qt.Assert(t, qt.IsNil(err))
	return o
}

func TestCompileSingleComponentSkipsSequence(t *testing.T) {
	o := mustCompile(t, "name")
	_, ok := o.(adt.One)
	qt.Assert(t, qt.IsTrue(ok))
}

func TestCompileMultiComponentBuildsSequence(t *testing.T) {
	o := mustCompile(t, "users[*].name")
	_, ok := o.(*adt.Sequence)
	qt.Assert(t, qt.IsTrue(ok))
}

func TestCompileSingleIndexListCollapsesToOne(t *testing.T) {
	o := mustCompile(t, "[0]")
	_, ok := o.(adt.One)
	qt.Assert(t, qt.IsTrue(ok))
}

func TestCompileMultiIndexListBuildsSlice(t *testing.T) {
	o := mustCompile(t, "[0,2]")
	_, ok := o.(adt.Slice)
	qt.Assert(t, qt.IsTrue(ok))
}

func TestCompilePrismDuplicateExtractionNameErrors(t *testing.T) {
	tree, err := parser.ParsePath(":{:ok, v, v}")
	qt.Assert(t, qt.IsNil(err))
	_, err = compile.Path(tree)
	qt.Assert(t, qt.ErrorMatches(err, ".*used more than once.*"))
}

func TestCompileFilterBuildsPredicate(t *testing.T) {
	o := mustCompile(t, "[?@ > 1]")
	f, ok := o.(adt.Filter)
	qt.Assert(t, qt.IsTrue(ok))

	ok1, err := f.Predicate(adt.NewOpContext(), adt.NewInt(2))
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.IsTrue(ok1))

	ok2, err := f.Predicate(adt.NewOpContext(), adt.NewInt(0))
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.IsFalse(ok2))
}

func TestCompileNumericEqualityAcrossIntAndFloat(t *testing.T) {
	o := mustCompile(t, "[?@ == 1]")
	f := o.(adt.Filter)

	ok, err := f.Predicate(adt.NewOpContext(), adt.NewFloat(1.0))
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.IsTrue(ok))
}

func TestCompileStringRenderEquality(t *testing.T) {
	o := mustCompile(t, `[?@ ~~ "1"]`)
	f := o.(adt.Filter)

	ok, err := f.Predicate(adt.NewOpContext(), adt.NewInt(1))
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.IsTrue(ok))
}
