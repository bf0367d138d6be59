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

package optics

import (
	"fmt"

	"github.com/opticpath/optics/builtins"
	"github.com/opticpath/optics/internal/adt"
)

// Value is the heterogeneous value domain of spec.md §3: any scalar,
// ordered sequence, keyed mapping, positional tuple, or tagged variant.
// It is the type every Select/Transform call consumes and produces.
type Value = adt.Value

func builtinCatalogue() map[string]adt.Iso { return builtins.Catalogue() }

// Atom is a symbolic-atom scalar (an Elixir-style `:name` literal). It
// also acts as the discriminator of a tagged variant when it is the
// first element of a Tuple.
type Atom = adt.Atom

// Tuple is a fixed-arity positional product with no native Go
// equivalent; build one with NewTuple or NewTagged.
type Tuple = adt.Tuple

func NewNil() Value            { return adt.Nil{} }
func NewBool(b bool) Value     { return adt.Bool(b) }
func NewString(s string) Value { return adt.String(s) }
func NewAtom(name string) Value { return adt.Atom(name) }
func NewInt(v int64) Value     { return adt.NewInt(v) }
func NewFloat(v float64) Value { return adt.NewFloat(v) }
func NewSeq(elems ...Value) Value { return adt.NewSeq(elems...) }
func NewTuple(elems ...Value) Value { return adt.NewTuple(elems...) }

// NewTagged builds a tagged variant (tag, args...): a Tuple whose first
// element is an Atom discriminator (spec.md §3).
func NewTagged(tag string, args ...Value) Value {
	return adt.NewTuple(append([]Value{adt.Atom(tag)}, args...)...)
}

// AsInt reports whether v is an Int scalar, returning its int64 value.
// Convenience for WithFunction callbacks working with filter-expression
// arguments (spec.md §4.10's "<atom>: function").
func AsInt(v Value) (int64, bool) {
	i, ok := v.(adt.Int)
	if !ok {
		return 0, false
	}
	return i.Int64(), true
}

// NewMap builds a mapping from string-keyed pairs, in the given order.
func NewMap(pairs map[string]Value, order []string) Value {
	keys := make([]Value, len(order))
	vals := make([]Value, len(order))
	for i, k := range order {
		keys[i] = adt.String(k)
		vals[i] = pairs[k]
	}
	return adt.NewMap(keys, vals)
}

// FromGo converts a native Go value — the shapes produced by
// encoding/json, gopkg.in/yaml.v3, or literal Go maps/slices — into the
// heterogeneous Value domain. Atoms and tuples have no native Go
// representation and are never produced by FromGo; build them with
// NewAtom/NewTuple/NewTagged when a path needs to match against them.
func FromGo(v interface{}) (Value, error) {
	switch x := v.(type) {
	case nil:
		return adt.Nil{}, nil
	case bool:
		return adt.Bool(x), nil
	case string:
		return adt.String(x), nil
	case int:
		return adt.NewInt(int64(x)), nil
	case int64:
		return adt.NewInt(x), nil
	case float64:
		return adt.NewFloat(x), nil
	case []interface{}:
		elems := make([]Value, len(x))
		for i, e := range x {
			ev, err := FromGo(e)
			if err != nil {
				return nil, err
			}
			elems[i] = ev
		}
		return adt.Seq{Elems: elems}, nil
	case map[string]interface{}:
		keys := make([]Value, 0, len(x))
		vals := make([]Value, 0, len(x))
		for k, e := range x {
			ev, err := FromGo(e)
			if err != nil {
				return nil, err
			}
			keys = append(keys, adt.String(k))
			vals = append(vals, ev)
		}
		return adt.NewMap(keys, vals), nil
	default:
		return nil, fmt.Errorf("optics: FromGo: unsupported Go type %T", v)
	}
}

// ToGo converts a Value back into native Go data: Seq/Tuple become
// []interface{}, Map becomes map[string]interface{} (an Atom key is
// rendered with its leading ':' so it stays distinguishable from a
// string key of the same name), and Atom becomes a bare string with its
// leading ':' kept for the same reason.
func ToGo(v Value) interface{} {
	switch x := v.(type) {
	case adt.Nil:
		return nil
	case adt.Bool:
		return bool(x)
	case adt.String:
		return string(x)
	case adt.Atom:
		return ":" + string(x)
	case adt.Int:
		return x.Int64()
	case adt.Float:
		return x.Float64()
	case adt.Seq:
		out := make([]interface{}, len(x.Elems))
		for i, e := range x.Elems {
			out[i] = ToGo(e)
		}
		return out
	case adt.Tuple:
		out := make([]interface{}, len(x.Elems))
		for i, e := range x.Elems {
			out[i] = ToGo(e)
		}
		return out
	case adt.Map:
		out := make(map[string]interface{}, x.Len())
		for _, k := range x.Keys() {
			val, _ := x.Get(k)
			out[fmt.Sprint(ToGo(k))] = ToGo(val)
		}
		return out
	default:
		return nil
	}
}
