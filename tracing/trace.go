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

// Package tracing provides Tracer implementations for the optional trace
// sink described in spec.md §5/§9: an opaque external collaborator that
// the evaluator writes fire-and-forget events to.
package tracing

import (
	"fmt"
	"io"
	"sync"

	"github.com/google/uuid"
	"github.com/kr/pretty"

	"github.com/opticpath/optics/internal/adt"
)

// NewCallID mints a fresh per-evaluation call id (spec.md §5: "an opaque
// sink handle ... carrying a depth counter"; the call id groups every
// event emitted during one select/transform call).
func NewCallID() string {
	return uuid.NewString()
}

var eventNames = map[adt.EventKind]string{
	adt.EventStart:     "start",
	adt.EventMatch:     "match",
	adt.EventPick:      "pick",
	adt.EventEnd:       "end",
	adt.EventException: "exception",
}

// PrettyTracer writes each event as a kr/pretty-formatted line to w. It
// is the demonstrator sink used by cmd/optics's --trace flag.
type PrettyTracer struct {
	w  io.Writer
	mu sync.Mutex
}

func NewPrettyTracer(w io.Writer) *PrettyTracer { return &PrettyTracer{w: w} }

func (t *PrettyTracer) Emit(e adt.Event) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprintf(t.w, "%*s%s %# v\n", e.Depth*2, "", eventNames[e.Kind], pretty.Formatter(e))
}

// Collector accumulates events in memory, for tests that assert on trace
// shape rather than rendered text.
type Collector struct {
	mu     sync.Mutex
	Events []adt.Event
}

func NewCollector() *Collector { return &Collector{} }

func (c *Collector) Emit(e adt.Event) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Events = append(c.Events, e)
}
