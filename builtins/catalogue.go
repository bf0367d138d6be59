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

// Package builtins is the built-in converter catalogue consulted as the
// last tier of IsoRef resolution (spec.md §4.7): integer, float, string,
// atom, base64, and json. These are ordinary Iso values — nothing here
// is special-cased by the evaluator.
package builtins

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/cockroachdb/apd/v3"

	"github.com/opticpath/optics/internal/adt"
)

// Catalogue returns the built-in converter table, fresh each call so
// callers never share mutable state.
func Catalogue() map[string]adt.Iso {
	return map[string]adt.Iso{
		"integer": integerIso(),
		"float":   floatIso(),
		"string":  stringIso(),
		"atom":    atomIso(),
		"base64":  base64Iso(),
		"json":    jsonIso(),
	}
}

func integerIso() adt.Iso {
	return adt.Iso{
		Name: "integer",
		Forward: func(v adt.Value) (adt.Value, error) {
			var i adt.Int
			if _, _, err := i.Dec.SetString(renderScalar(v)); err != nil {
				return nil, fmt.Errorf("integer: cannot parse %s: %w", v.Inspect(), err)
			}
			return i, nil
		},
		Backward: func(v adt.Value) (adt.Value, error) {
			i, ok := v.(adt.Int)
			if !ok {
				return nil, fmt.Errorf("integer: backward expects an Int, got %s", v.Kind())
			}
			return adt.String(i.Dec.String()), nil
		},
	}
}

func floatIso() adt.Iso {
	return adt.Iso{
		Name: "float",
		Forward: func(v adt.Value) (adt.Value, error) {
			var f adt.Float
			if _, _, err := f.Dec.SetString(renderScalar(v)); err != nil {
				return nil, fmt.Errorf("float: cannot parse %s: %w", v.Inspect(), err)
			}
			return f, nil
		},
		Backward: func(v adt.Value) (adt.Value, error) {
			f, ok := v.(adt.Float)
			if !ok {
				return nil, fmt.Errorf("float: backward expects a Float, got %s", v.Kind())
			}
			return adt.String(f.Dec.String()), nil
		},
	}
}

// stringIso renders any scalar to its string form, and makes a
// best-effort attempt to parse it back on the way out: a string that
// parses as a bool or a number comes back as a Bool, Int or Float (so an
// original string such as "42" does not round-trip as a string); any
// other string comes back unchanged.
func stringIso() adt.Iso {
	return adt.Iso{
		Name: "string",
		Forward: func(v adt.Value) (adt.Value, error) {
			return adt.String(renderScalar(v)), nil
		},
		Backward: func(v adt.Value) (adt.Value, error) {
			s, ok := v.(adt.String)
			if !ok {
				return nil, fmt.Errorf("string: backward expects a String, got %s", v.Kind())
			}
			if b, err := strconv.ParseBool(string(s)); err == nil {
				return adt.Bool(b), nil
			}
			var dec apd.Decimal
			if _, _, err := dec.SetString(string(s)); err == nil {
				if _, err := dec.Int64(); err == nil {
					return adt.Int{Dec: dec}, nil
				}
				return adt.Float{Dec: dec}, nil
			}
			return s, nil
		},
	}
}

func atomIso() adt.Iso {
	return adt.Iso{
		Name: "atom",
		Forward: func(v adt.Value) (adt.Value, error) {
			s, ok := v.(adt.String)
			if !ok {
				return nil, fmt.Errorf("atom: forward expects a String, got %s", v.Kind())
			}
			return adt.Atom(s), nil
		},
		Backward: func(v adt.Value) (adt.Value, error) {
			a, ok := v.(adt.Atom)
			if !ok {
				return nil, fmt.Errorf("atom: backward expects an Atom, got %s", v.Kind())
			}
			return adt.String(a), nil
		},
	}
}

func base64Iso() adt.Iso {
	return adt.Iso{
		Name: "base64",
		Forward: func(v adt.Value) (adt.Value, error) {
			s, ok := v.(adt.String)
			if !ok {
				return nil, fmt.Errorf("base64: forward expects a String, got %s", v.Kind())
			}
			return adt.String(base64.StdEncoding.EncodeToString([]byte(s))), nil
		},
		Backward: func(v adt.Value) (adt.Value, error) {
			s, ok := v.(adt.String)
			if !ok {
				return nil, fmt.Errorf("base64: backward expects a String, got %s", v.Kind())
			}
			raw, err := base64.StdEncoding.DecodeString(string(s))
			if err != nil {
				return nil, fmt.Errorf("base64: %w", err)
			}
			return adt.String(raw), nil
		},
	}
}

// jsonIso parses/renders a JSON document into/from the heterogeneous
// value domain: objects become mappings, arrays become sequences,
// numbers become Int or Float depending on whether they carry a
// fractional part.
func jsonIso() adt.Iso {
	return adt.Iso{
		Name: "json",
		Forward: func(v adt.Value) (adt.Value, error) {
			s, ok := v.(adt.String)
			if !ok {
				return nil, fmt.Errorf("json: forward expects a String, got %s", v.Kind())
			}
			var raw interface{}
			dec := json.NewDecoder(strings.NewReader(string(s)))
			dec.UseNumber()
			if err := dec.Decode(&raw); err != nil {
				return nil, fmt.Errorf("json: %w", err)
			}
			return fromJSON(raw), nil
		},
		Backward: func(v adt.Value) (adt.Value, error) {
			raw, err := toJSON(v)
			if err != nil {
				return nil, err
			}
			b, err := json.Marshal(raw)
			if err != nil {
				return nil, fmt.Errorf("json: %w", err)
			}
			return adt.String(b), nil
		},
	}
}

func renderScalar(v adt.Value) string {
	switch x := v.(type) {
	case adt.String:
		return string(x)
	case adt.Atom:
		return string(x)
	default:
		return v.Inspect()
	}
}

func fromJSON(raw interface{}) adt.Value {
	switch x := raw.(type) {
	case nil:
		return adt.Nil{}
	case bool:
		return adt.Bool(x)
	case string:
		return adt.String(x)
	case json.Number:
		var dec apd.Decimal
		dec.SetString(x.String())
		if _, err := dec.Int64(); err == nil {
			return adt.Int{Dec: dec}
		}
		return adt.Float{Dec: dec}
	case []interface{}:
		elems := make([]adt.Value, len(x))
		for i, e := range x {
			elems[i] = fromJSON(e)
		}
		return adt.Seq{Elems: elems}
	case map[string]interface{}:
		keys := make([]adt.Value, 0, len(x))
		vals := make([]adt.Value, 0, len(x))
		for k, e := range x {
			keys = append(keys, adt.String(k))
			vals = append(vals, fromJSON(e))
		}
		return adt.NewMap(keys, vals)
	default:
		return adt.Nil{}
	}
}

func toJSON(v adt.Value) (interface{}, error) {
	switch x := v.(type) {
	case adt.Nil:
		return nil, nil
	case adt.Bool:
		return bool(x), nil
	case adt.String:
		return string(x), nil
	case adt.Atom:
		return string(x), nil
	case adt.Int:
		n, _ := x.Dec.Int64()
		return n, nil
	case adt.Float:
		f, _ := x.Dec.Float64()
		return f, nil
	case adt.Seq:
		out := make([]interface{}, len(x.Elems))
		for i, e := range x.Elems {
			r, err := toJSON(e)
			if err != nil {
				return nil, err
			}
			out[i] = r
		}
		return out, nil
	case adt.Tuple:
		out := make([]interface{}, len(x.Elems))
		for i, e := range x.Elems {
			r, err := toJSON(e)
			if err != nil {
				return nil, err
			}
			out[i] = r
		}
		return out, nil
	case adt.Map:
		out := make(map[string]interface{}, x.Len())
		for _, k := range x.Keys() {
			val, _ := x.Get(k)
			r, err := toJSON(val)
			if err != nil {
				return nil, err
			}
			out[renderScalar(k)] = r
		}
		return out, nil
	default:
		return nil, fmt.Errorf("json: cannot render a %s", v.Kind())
	}
}
