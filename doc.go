// Copyright 2025 The Weaver Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package weaver renders arbitrary Go values as human-readable text.
//
// A value is classified, its properties are enumerated through reflection
// (or through a Describer), and the resulting object graph is traversed with
// a bounded depth, bounded sequence lengths and identity-based cycle
// detection. One of several weaving machines then lays the graph out:
//
//	Inline            Person[name=John Doe, birthday=1990-01-01]
//
//	Multiline         Person
//	                  name: John Doe
//	                  birthday: 1990-01-01
//
//	Tree              Person
//	                  |-- name=John Doe
//	                  `-- birthday=1990-01-01
//
//	Bullet            Person
//	                   - name=John Doe
//	                   - birthday=1990-01-01
//
//	Card              ╭ Person ───────────────╮
//	                  │ name     : John Doe   │
//	                  │ birthday : 1990-01-01 │
//	                  ╰───────────────────────╯
//
// Weaving never fails. Values that cannot be read render as "[?]", values
// whose String, Error or MarshalText method panics render as
// "[ERROR] <kind>", and cycles, deep nesting and long sequences are cut
// short with an explicit marker.
//
// Struct fields are controlled with the `weave` tag:
//
//	Password string `weave:"-"`             // never shown
//	Mom      string `weave:"mother"`        // shown as mother=...
//	Token    string `weave:",redact"`       // shown as Token=***
//	PIN      string `weave:",redact=####"`  // shown as PIN=####
//
// Fields whose names look like credentials (password, secret, token and
// similar) are redacted unless sensitivity detection is disabled.
//
// A value referenced from several places is expanded where it is first
// reached. Later references, like references back to an ancestor, render
// as the type header alone (Leaf[] inline, a bare "Right" line in a tree),
// which is also how an empty struct looks. Set Options.ReexpandShared to
// expand every shared reference in full; cycles are cut either way.
//
// A Weaver is immutable once built and safe for concurrent use:
//
//	w := weaver.MustNew(weaver.Tree, weaver.DefaultOptions().WithMaxDepth(2))
//	fmt.Println(w.Weave(order))
package weaver
