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

package parser_test

import (
	"testing"

	"github.com/go-quicktest/qt"

	"github.com/opticpath/optics/optics/ast"
	"github.com/opticpath/optics/optics/parser"
)

func TestParsePathComponents(t *testing.T) {
	p, err := parser.ParsePath("users[*].name::upper")
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(len(p.Components), 4))

	_, ok := p.Components[0].(ast.Key)
	qt.Assert(t, qt.IsTrue(ok))
	_, ok = p.Components[1].(ast.Bracket)
	qt.Assert(t, qt.IsTrue(ok))
	_, ok = p.Components[2].(ast.Key)
	qt.Assert(t, qt.IsTrue(ok))
	_, ok = p.Components[3].(ast.ConverterRef)
	qt.Assert(t, qt.IsTrue(ok))
}

func TestParsePathUnterminatedBracketErrors(t *testing.T) {
	_, err := parser.ParsePath("users[")
	qt.Assert(t, qt.IsNotNil(err))
}

func TestParsePrismWithOutputPattern(t *testing.T) {
	p, err := parser.ParsePath(":{:ok, a, b} -> :{:ok, b, a}")
	qt.Assert(t, qt.IsNil(err))
	pr := p.Components[0].(ast.Prism)
	qt.Assert(t, qt.Equals(pr.Tag, "ok"))
	qt.Assert(t, qt.DeepEquals(pr.OutputPattern, []string{"b", "a"}))
}

func TestParsePrismInvalidOutputPatternNameErrors(t *testing.T) {
	_, err := parser.ParsePath(":{:ok, a} -> :{:ok, z}")
	qt.Assert(t, qt.IsNotNil(err))
}

func TestParseExprPrecedence(t *testing.T) {
	e, err := parser.ParseExpr("@ > 1 and @ < 10 or not @ == 5")
	qt.Assert(t, qt.IsNil(err))
	top, ok := e.(ast.Logical)
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(top.Op, ast.OpOr))
}

func TestParseAtomKeyList(t *testing.T) {
	p, err := parser.ParsePath("[:a,:b]")
	qt.Assert(t, qt.IsNil(err))
	b := p.Components[0].(ast.Bracket)
	kl, ok := b.Body.(ast.AtomKeyList)
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.DeepEquals(kl.Keys, []string{"a", "b"}))
}
