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

import (
	"github.com/cockroachdb/apd/v3"
)

// Int is the integer scalar, backed by apd.Decimal so it shares a single
// arbitrary-precision representation and three-way comparator with
// Float (spec.md §4.10: "if the left operand is a tagged struct-like
// value exposing a three-way compare (lt|eq|gt), use it to drive the
// ordering operators").
type Int struct {
	Dec apd.Decimal
}

func NewInt(v int64) Int {
	var i Int
	i.Dec.SetInt64(v)
	return i
}

func (Int) Kind() Kind      { return KindInt }
func (i Int) Inspect() string { return i.Dec.String() }

// Int64 reports i as an int64. It returns 0 when i has a fractional part
// or does not fit in an int64.
func (i Int) Int64() int64 {
	n, _ := i.Dec.Int64()
	return n
}

// Cmp is the three-way comparator the expression compiler's ordering
// operators (<, <=, >, >=) dispatch to (spec.md §4.10).
func (i Int) Cmp(other Number) int {
	return cmpDecimal(&i.Dec, other.decimal())
}

// Float is the floating-point scalar, likewise backed by apd.Decimal.
type Float struct {
	Dec apd.Decimal
}

func NewFloat(v float64) Float {
	var f Float
	f.Dec.SetFloat64(v)
	return f
}

func (Float) Kind() Kind        { return KindFloat }
func (f Float) Inspect() string { return f.Dec.String() }

func (f Float) Float64() float64 {
	v, _ := f.Dec.Float64()
	return v
}

func (f Float) Cmp(other Number) int {
	return cmpDecimal(&f.Dec, other.decimal())
}

// Number is implemented by Int and Float: any scalar exposing the
// three-way apd.Decimal comparator.
type Number interface {
	Value
	decimal() *apd.Decimal
}

func (i Int) decimal() *apd.Decimal   { return &i.Dec }
func (f Float) decimal() *apd.Decimal { return &f.Dec }

func cmpDecimal(a, b *apd.Decimal) int {
	return a.Cmp(b)
}

// AsNumber reports whether v is an Int or Float, returning it as a
// Number for use with Cmp.
func AsNumber(v Value) (Number, bool) {
	switch n := v.(type) {
	case Int:
		return n, true
	case Float:
		return n, true
	default:
		return nil, false
	}
}
