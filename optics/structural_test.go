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
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/opticpath/optics/optics"
)

// TestSelectPurityStructuralEquality exercises spec.md §8 property #1:
// select does not mutate its input, and two structurally equal inputs
// select to structurally equal results. cmp.Diff compares the Go-native
// projection of both the document (to catch mutation) and the result
// (to catch divergence) so a failure reports exactly which branch of
// the tree changed rather than just "not equal".
func TestSelectPurityStructuralEquality(t *testing.T) {
	raw := map[string]interface{}{
		"users": []interface{}{
			map[string]interface{}{"name": "a", "age": 3},
			map[string]interface{}{"name": "b", "age": 5},
		},
	}

	dataA, err := optics.FromGo(raw)
	if err != nil {
		t.Fatal(err)
	}
	dataB, err := optics.FromGo(raw)
	if err != nil {
		t.Fatal(err)
	}

	before := optics.ToGo(dataA)

	gotA, err := optics.Select(dataA, "users[*].name")
	if err != nil {
		t.Fatal(err)
	}
	gotB, err := optics.Select(dataB, "users[*].name")
	if err != nil {
		t.Fatal(err)
	}

	if diff := cmp.Diff(before, optics.ToGo(dataA)); diff != "" {
		t.Errorf("select mutated its input document (-before +after):\n%s", diff)
	}
	if diff := cmp.Diff(optics.ToGo(gotA), optics.ToGo(gotB)); diff != "" {
		t.Errorf("select on structurally equal inputs diverged (-a +b):\n%s", diff)
	}
}

// TestIdentityTransformStructuralEquality exercises spec.md §8 property
// #3: transforming with the identity function reproduces the original
// document exactly.
func TestIdentityTransformStructuralEquality(t *testing.T) {
	raw := map[string]interface{}{
		"a": map[string]interface{}{"b": map[string]interface{}{"c": 10}},
	}
	data, err := optics.FromGo(raw)
	if err != nil {
		t.Fatal(err)
	}

	got, err := optics.Transform(data, "a.b.c", func(v optics.Value) (optics.Value, error) {
		return v, nil
	})
	if err != nil {
		t.Fatal(err)
	}

	if diff := cmp.Diff(optics.ToGo(data), optics.ToGo(got)); diff != "" {
		t.Errorf("identity transform changed the document (-want +got):\n%s", diff)
	}
}
