// Copyright 2025 The Weaver Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package traverse

import (
	"iter"
	"strings"
)

// Node is a node of the intermediate tree shared by the hierarchical weaving
// machines.
type Node struct {
	// Label is the display string of the value, or the header of a composite
	// or sequence.
	Label string
	// Field is the property name; it is only meaningful when Named is set.
	// Sequence elements are unnamed and carry their index in the label.
	Field string
	Named bool
	// Children are kept in insertion order.
	Children []*Node
	parent   *Node
}

// Add appends child to n and returns it.
func (n *Node) Add(child *Node) *Node {
	child.parent = n
	n.Children = append(n.Children, child)
	return child
}

// Parent returns the parent of n, or nil for the root.
func (n *Node) Parent() *Node {
	return n.parent
}

// IsRoot returns true if n has no parent.
func (n *Node) IsRoot() bool {
	return n.parent == nil
}

// Depth returns the number of ancestors of n.
func (n *Node) Depth() int {
	d := 0
	for p := n.parent; p != nil; p = p.parent {
		d++
	}
	return d
}

// IsLastChild returns true if n is the last child of its parent. The root
// is its own last child.
func (n *Node) IsLastChild() bool {
	if n.parent == nil {
		return true
	}
	return n.parent.Children[len(n.parent.Children)-1] == n
}

// Content returns "field=label" for named nodes and the label otherwise.
func (n *Node) Content() string {
	if n.Named {
		return n.Field + "=" + n.Label
	}
	return n.Label
}

// All returns an iterator over n and its descendants in pre-order.
func (n *Node) All() iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		n.walk(yield)
	}
}

func (n *Node) walk(yield func(*Node) bool) bool {
	if !yield(n) {
		return false
	}
	for _, c := range n.Children {
		if !c.walk(yield) {
			return false
		}
	}
	return true
}

// String renders the tree with two spaces of indentation per level. It is
// meant for debugging and tests.
func (n *Node) String() string {
	var b strings.Builder
	base := n.Depth()
	for d := range n.All() {
		b.WriteString(strings.Repeat("  ", d.Depth()-base))
		b.WriteString(d.Content())
		b.WriteByte('\n')
	}
	return b.String()
}

func leaf(field, label string) *Node {
	return &Node{Field: field, Named: true, Label: label}
}
