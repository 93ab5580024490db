// Copyright 2025 The Weaver Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package traverse

import (
	"github.com/cockroachdb/swiss"
	"github.com/robinloom/weaver/internal/classify"
)

// Outcome is the result of Visited.Enter.
type Outcome int8

const (
	// Expand means the value is new and must be expanded.
	Expand Outcome = iota
	// Cycle means the value is being expanded by an ancestor.
	Cycle
	// Shared means the value was already expanded elsewhere in the graph.
	Shared
)

// Visited tracks the identities of referenced values during a single weave.
//
// The path set holds the values currently being expanded between the root
// and the current position; entering one of them again means the graph has
// a cycle. The done set holds every value whose expansion has finished and is
// only consulted when shared values are not re-expanded.
//
// A Visited is created per call and must not be shared between goroutines.
type Visited struct {
	path     swiss.Map[classify.Identity, struct{}]
	done     swiss.Map[classify.Identity, struct{}]
	reexpand bool
}

// Init initializes the sets. If reexpand is set, values reached again through
// a different path are expanded again; cycles are always cut.
func (v *Visited) Init(reexpand bool) {
	v.path.Init(8)
	v.done.Init(8)
	v.reexpand = reexpand
}

// Enter records that the value with the given identity is about to be
// expanded. It returns Expand if the caller should proceed, in which case it
// must call Leave once done. Values without identity are always expanded.
func (v *Visited) Enter(id classify.Identity) Outcome {
	if id.IsZero() {
		return Expand
	}
	if _, ok := v.path.Get(id); ok {
		return Cycle
	}
	if !v.reexpand {
		if _, ok := v.done.Get(id); ok {
			return Shared
		}
	}
	v.path.Put(id, struct{}{})
	return Expand
}

// Leave pops id from the open path and marks it as expanded.
func (v *Visited) Leave(id classify.Identity) {
	if id.IsZero() {
		return
	}
	v.path.Delete(id)
	if !v.reexpand {
		v.done.Put(id, struct{}{})
	}
}

// Open returns the number of values on the open path.
func (v *Visited) Open() int {
	return v.path.Len()
}
