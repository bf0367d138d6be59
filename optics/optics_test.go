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

package optics_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/go-quicktest/qt"

	"github.com/opticpath/optics/internal/adt"
	"github.com/opticpath/optics/optics"
	"github.com/opticpath/optics/tracing"
)

func mustFromGo(t *testing.T, v interface{}) optics.Value {
	t.Helper()
	val, err := optics.FromGo(v)
	qt.Assert(t, qt.IsNil(err))
	return val
}

func TestSelectKey(t *testing.T) {
	data := mustFromGo(t, map[string]interface{}{"name": "Ada"})
	got, err := optics.Select(data, "name")
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(got.Inspect(), "Ada"))
}

func TestSelectMissingKeyIsNil(t *testing.T) {
	data := mustFromGo(t, map[string]interface{}{"name": "Ada"})
	got, err := optics.Select(data, "age")
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(got.Inspect(), "nil"))
}

func TestSelectAllOnSeq(t *testing.T) {
	data := mustFromGo(t, []interface{}{1, 2, 3})
	got, err := optics.Select(data, "[*]")
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(got.Inspect(), "[1, 2, 3]"))
}

func TestSelectFilter(t *testing.T) {
	data := mustFromGo(t, []interface{}{1, 2, 3, 4})
	got, err := optics.Select(data, "[?@ > 2]")
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(got.Inspect(), "[3, 4]"))
}

func TestSelectNestedPath(t *testing.T) {
	data := mustFromGo(t, map[string]interface{}{
		"users": []interface{}{
			map[string]interface{}{"name": "Ada", "age": 30},
			map[string]interface{}{"name": "Lin", "age": 40},
		},
	})
	got, err := optics.Select(data, "users[*].name")
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(got.Inspect(), "[Ada, Lin]"))
}

func TestTransformReplacesFocus(t *testing.T) {
	data := mustFromGo(t, map[string]interface{}{"count": 1})
	got, err := optics.Transform(data, "count", func(v optics.Value) (optics.Value, error) {
		return optics.NewInt(9), nil
	})
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(got.Inspect(), "{count: 9}"))
}

func TestTransformPreservesUnfocusedShape(t *testing.T) {
	data := mustFromGo(t, map[string]interface{}{"a": 1, "b": 2})
	got, err := optics.Transform(data, "a", func(v optics.Value) (optics.Value, error) {
		return optics.NewInt(100), nil
	})
	qt.Assert(t, qt.IsNil(err))

	bv, err := optics.Select(got, "b")
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(bv.Inspect(), "2"))
}

func TestParsePathReusable(t *testing.T) {
	p, err := optics.ParsePath("users[*].name")
	qt.Assert(t, qt.IsNil(err))

	for i := 0; i < 2; i++ {
		data := mustFromGo(t, map[string]interface{}{
			"users": []interface{}{map[string]interface{}{"name": fmt.Sprintf("u%d", i)}},
		})
		got, err := optics.Select(data, p)
		qt.Assert(t, qt.IsNil(err))
		qt.Assert(t, qt.Equals(got.Inspect(), fmt.Sprintf("[u%d]", i)))
	}
}

func TestWithConverterSelectAppliesForward(t *testing.T) {
	data := mustFromGo(t, map[string]interface{}{"n": "ADA"})
	got, err := optics.Select(data, "n::lower", optics.WithConverter("lower",
		func(v optics.Value) (optics.Value, error) {
			return optics.NewString(strings.ToLower(v.Inspect())), nil
		},
		func(v optics.Value) (optics.Value, error) {
			return optics.NewString(strings.ToUpper(v.Inspect())), nil
		},
	))
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(got.Inspect(), "ada"))
}

func TestWithFunction(t *testing.T) {
	data := mustFromGo(t, []interface{}{1, 2, 3})
	got, err := optics.Select(data, "[?isEven(@)]", optics.WithFunction("isEven",
		func(args []optics.Value) (optics.Value, error) {
			n, ok := optics.AsInt(args[0])
			if !ok {
				return optics.NewBool(false), nil
			}
			return optics.NewBool(n%2 == 0), nil
		},
	))
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(got.Inspect(), "[2]"))
}

func TestUnresolvedConverterErrors(t *testing.T) {
	data := mustFromGo(t, map[string]interface{}{"n": "42"})
	_, err := optics.Select(data, "n::nope")
	qt.Assert(t, qt.ErrorMatches(err, ".*unresolved converter.*"))
}

func TestParseErrorOnBadPath(t *testing.T) {
	_, err := optics.ParsePath("users[")
	qt.Assert(t, qt.IsNotNil(err))
}

func TestUnknownFunctionErrors(t *testing.T) {
	data := mustFromGo(t, []interface{}{1, 2})
	_, err := optics.Select(data, "[?f(@) == 1]")
	qt.Assert(t, qt.ErrorMatches(err, ".*unknown function.*"))
}

func TestBuiltinIntegerConverter(t *testing.T) {
	data := mustFromGo(t, map[string]interface{}{"n": "7"})
	got, err := optics.Select(data, "n::integer")
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(got.Inspect(), "7"))
}

func TestTraceCollectorRecordsEvents(t *testing.T) {
	data := mustFromGo(t, map[string]interface{}{"x": 1})
	coll := tracing.NewCollector()
	_, err := optics.Select(data, "x", optics.WithTrace(coll))
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.IsTrue(len(coll.Events) > 0))
}

// TestTraceReportsNestingDepth exercises a multi-component path and a
// filter so the trace sink sees real nesting (one depth per lens of the
// compiled Sequence) plus at least one Match and one Pick event, rather
// than the flat depth-0 log a trace-only-emits-start/end engine would
// produce.
func TestTraceReportsNestingDepth(t *testing.T) {
	data := mustFromGo(t, map[string]interface{}{
		"users": []interface{}{
			map[string]interface{}{"age": 17},
			map[string]interface{}{"age": 30},
		},
	})
	coll := tracing.NewCollector()
	got, err := optics.Select(data, "users[?@.age > 18].age", optics.WithTrace(coll))
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(got.Inspect(), "[30]"))

	var maxDepth int
	var sawMatch, sawPick bool
	for _, e := range coll.Events {
		if e.Depth > maxDepth {
			maxDepth = e.Depth
		}
		if e.Kind == adt.EventMatch {
			sawMatch = true
		}
		if e.Kind == adt.EventPick {
			sawPick = true
		}
	}
	// "users", the filter, and ".age" are three lenses of one Sequence;
	// the facade call sits at depth 0 and each lens pushes one level
	// deeper than the one before it, so a correctly nested evaluation
	// reaches at least depth 2 well before the third lens.
	qt.Assert(t, qt.IsTrue(maxDepth >= 2))
	qt.Assert(t, qt.IsTrue(sawMatch))
	qt.Assert(t, qt.IsTrue(sawPick))
}
