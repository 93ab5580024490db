// Copyright 2025 The Weaver Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package weaver

import (
	"strings"

	"github.com/robinloom/weaver/internal/traverse"
)

// treePrinter renders the intermediate tree with branch connectors:
//
//	Person
//	|-- name=John Doe
//	`-- neighbor
//	    `-- name=Peter
type treePrinter struct {
	opts  *Options
	buf   strings.Builder
	open  []bool
	stats *traverse.Stats
}

func renderTree(root *traverse.Node, o *Options, stats *traverse.Stats) string {
	p := treePrinter{opts: o, stats: stats}
	p.node(root)
	return strings.TrimSuffix(p.buf.String(), "\n")
}

func (p *treePrinter) node(n *traverse.Node) {
	if p.buf.Len() >= p.opts.GlobalLengthLimit {
		p.stats.LengthTruncations++
		return
	}
	if !n.IsRoot() {
		// open has one entry per ancestor below the root, plus one for n.
		for _, more := range p.open[:len(p.open)-1] {
			if more {
				p.buf.WriteRune(p.opts.Tree.BranchChar)
				p.buf.WriteString("   ")
			} else {
				p.buf.WriteString("    ")
			}
		}
		if n.IsLastChild() {
			p.buf.WriteRune(p.opts.Tree.LastBranchChar)
		} else {
			p.buf.WriteRune(p.opts.Tree.BranchChar)
		}
		p.buf.WriteString("-- ")
	}
	p.buf.WriteString(n.Content())
	p.buf.WriteByte('\n')

	for i, c := range n.Children {
		p.open = append(p.open, i < len(n.Children)-1)
		p.node(c)
		p.open = p.open[:len(p.open)-1]
	}
}
