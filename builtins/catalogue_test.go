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

package builtins_test

import (
	"testing"

	"github.com/go-quicktest/qt"

	"github.com/opticpath/optics/builtins"
	"github.com/opticpath/optics/internal/adt"
)

func TestIntegerConverterRoundTrip(t *testing.T) {
	cat := builtins.Catalogue()
	iso := cat["integer"]

	fwd, err := iso.Forward(adt.String("42"))
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(fwd.Inspect(), "42"))

	back, err := iso.Backward(fwd)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(back.Inspect(), "42"))
}

func TestBase64ConverterRoundTrip(t *testing.T) {
	iso := builtins.Catalogue()["base64"]

	fwd, err := iso.Forward(adt.String("hello"))
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(fwd.Inspect(), "aGVsbG8="))

	back, err := iso.Backward(fwd)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(back.Inspect(), "hello"))
}

func TestJSONConverterParsesObjects(t *testing.T) {
	iso := builtins.Catalogue()["json"]

	fwd, err := iso.Forward(adt.String(`{"a": 1, "b": [2, 3]}`))
	qt.Assert(t, qt.IsNil(err))
	m, ok := fwd.(adt.Map)
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(m.Len(), 2))
}

func TestAtomConverterRejectsNonString(t *testing.T) {
	iso := builtins.Catalogue()["atom"]
	_, err := iso.Forward(adt.NewInt(1))
	qt.Assert(t, qt.IsNotNil(err))
}
