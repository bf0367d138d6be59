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

	"github.com/opticpath/optics/internal/adt"
	"github.com/opticpath/optics/internal/compile"
	"github.com/opticpath/optics/optics/parser"
)

// Path is a parsed, compiled path: a single optic, or a Sequence of
// optics for a multi-component path (spec.md §4.11).
type Path struct {
	optic adt.Optic
	src   string
}

// ParsePath parses a path string into a reusable Path. A Path is an
// immutable value, safe to share and to evaluate against many data
// trees and option sets.
func ParsePath(src string) (*Path, error) {
	tree, err := parser.ParsePath(src)
	if err != nil {
		return nil, err
	}
	optic, err := compile.Path(tree)
	if err != nil {
		return nil, err
	}
	return &Path{optic: optic, src: src}, nil
}

func (p *Path) String() string { return p.src }

// pathLike is anything select/transform accept in place of a path: a
// path string (parsed fresh for the call) or an already-parsed *Path.
type pathLike interface{}

func resolvePathLike(p pathLike) (*Path, error) {
	switch v := p.(type) {
	case *Path:
		return v, nil
	case string:
		return ParsePath(v)
	default:
		return nil, fmt.Errorf("optics: expected a path string or *optics.Path, got %T", p)
	}
}
