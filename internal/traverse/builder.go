// Copyright 2025 The Weaver Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package traverse builds the intermediate tree that the hierarchical weaving
// machines (tree and bullet) render.
//
// Building starts at the root value and descends into composites and
// sequences. Scalars and opaque values become leaves labelled with their
// textual form, nil properties are skipped, and redacted or inaccessible
// properties become leaves carrying the mask or the "[?]" placeholder. A
// composite or sequence is expanded only while its depth is below
// Config.MaxDepth, only if it is not already being expanded by an ancestor,
// and (unless Config.ReexpandShared is set) only the first time it is
// reached. Sequences show at most Config.MaxSequenceLength elements followed
// by an "<n> more" leaf.
package traverse

import (
	"reflect"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/robinloom/weaver/internal/base"
	"github.com/robinloom/weaver/internal/classify"
	"github.com/robinloom/weaver/internal/introspect"
	"github.com/robinloom/weaver/internal/invariants"
)

// Config controls how the tree is built.
type Config struct {
	MaxDepth          int
	MaxSequenceLength int
	ReexpandShared    bool
	// ShowDataTypes prefixes property names with "{Type} ".
	ShowDataTypes bool
	Properties    introspect.Config
	// Logger receives the causes of recovered failures. Optional.
	Logger base.Logger
	// Mark wraps the textual form of scalar and opaque values. Optional.
	Mark func(string) string
}

// Stats counts the events of a single build.
type Stats struct {
	Cycles            int
	Shared            int
	DepthTruncations  int
	LengthTruncations int
	Failures          int
}

// Build constructs the tree for v.
func Build(v reflect.Value, cfg Config) (*Node, Stats) {
	b := builder{cfg: cfg}
	b.visited.Init(cfg.ReexpandShared)
	root := b.root(classify.Of(v))
	if invariants.Enabled {
		checkTree(root, cfg)
	}
	return root, b.stats
}

type builder struct {
	cfg     Config
	visited Visited
	stats   Stats
}

func (b *builder) root(c classify.Value) *Node {
	switch c.Kind {
	case classify.Null, classify.Opaque, classify.Scalar:
		return &Node{Label: b.str(c)}
	}
	root := &Node{Label: classify.ClassName(c)}
	b.expand(root, c, 0)
	return root
}

func (b *builder) expand(n *Node, c classify.Value, depth int) {
	if depth >= b.cfg.MaxDepth {
		b.stats.DepthTruncations++
		return
	}
	switch b.visited.Enter(c.ID) {
	case Cycle:
		b.stats.Cycles++
		return
	case Shared:
		b.stats.Shared++
		return
	}
	defer b.visited.Leave(c.ID)

	if c.Kind == classify.Sequence {
		b.sequence(n, c, depth)
	} else {
		b.composite(n, c, depth)
	}
}

func (b *builder) composite(n *Node, c classify.Value, depth int) {
	entries, err := introspect.Properties(c, b.cfg.Properties)
	if err != nil {
		b.fail(err)
		n.Add(&Node{Label: err.Error()})
	}
	for _, e := range entries {
		name := b.fieldName(e)
		switch {
		case e.Redacted:
			n.Add(leaf(name, e.Mask))
			continue
		case e.Inaccessible:
			n.Add(leaf(name, base.Inaccessible))
			continue
		}
		ec := classify.Of(e.Value)
		switch ec.Kind {
		case classify.Null:
		case classify.Opaque, classify.Scalar:
			n.Add(leaf(name, b.str(ec)))
		default:
			b.expand(n.Add(&Node{Label: name}), ec, depth+1)
		}
	}
}

func (b *builder) sequence(n *Node, c classify.Value, depth int) {
	count := 0
	truncated := false
	for e := range c.Elements() {
		if count >= b.cfg.MaxSequenceLength {
			truncated = true
			break
		}
		count++
		ec := classify.Of(e.Value)
		switch ec.Kind {
		case classify.Null, classify.Opaque, classify.Scalar:
			n.Add(&Node{Label: e.Prefix + b.str(ec)})
		case classify.Composite:
			b.expand(n.Add(&Node{Label: e.Prefix + classify.ClassName(ec)}), ec, depth+1)
		case classify.Sequence:
			b.expand(n.Add(&Node{Label: strings.TrimSpace(e.Prefix)}), ec, depth+1)
		}
	}
	invariants.CheckBounds(count, b.cfg.MaxSequenceLength)
	if truncated {
		b.stats.LengthTruncations++
		n.Add(&Node{Label: base.More(max(invariants.SafeSub(c.Len(), count), 1))})
	}
}

func (b *builder) fieldName(e introspect.Entry) string {
	if !b.cfg.ShowDataTypes || e.Type == nil {
		return e.Name
	}
	return "{" + classify.TypeName(e.Type) + "} " + e.Name
}

func (b *builder) str(c classify.Value) string {
	s, err := classify.String(c)
	if err != nil {
		b.fail(err)
		return err.Error()
	}
	if b.cfg.Mark != nil && c.Kind != classify.Null {
		return b.cfg.Mark(s)
	}
	return s
}

func (b *builder) fail(err error) {
	b.stats.Failures++
	classify.Report(b.cfg.Logger, err)
}

func checkTree(root *Node, cfg Config) {
	for n := range root.All() {
		if d := n.Depth(); d > max(cfg.MaxDepth, 0) {
			panic(errors.AssertionFailedf("node at depth %d exceeds max depth %d", d, cfg.MaxDepth))
		}
	}
}
