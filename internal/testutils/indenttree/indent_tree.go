// Copyright 2025 The Weaver Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package indenttree parses a hierarchy defined using indentation; see
// Parse. Tests use it to compare renderings that lay out the same tree with
// different glyphs.
package indenttree

import (
	"strings"

	"github.com/cockroachdb/errors"
)

// Parse parses a multi-line input string into trees of nodes. For example:
//
//	a
//	 a1
//	  a11
//	 a2
//	b
//	 b1
//
// is parsed into two nodes (a and b). Node a has two children (a1, a2), and
// a1 has one child (a11); node b has one child (b1).
//
// A line is a child of the closest preceding line with less indentation.
// Siblings must share the same indentation, and tabs cannot be used.
func Parse(input string) ([]Node, error) {
	input = strings.TrimSuffix(input, "\n")
	if input == "" {
		return nil, errors.Errorf("empty input")
	}
	type open struct {
		indent int
		node   *Node
	}
	root := &Node{}
	stack := []open{{indent: -1, node: root}}
	for i, line := range strings.Split(input, "\n") {
		value := strings.TrimLeft(line, " ")
		indent := len(line) - len(value)
		switch {
		case value == "":
			return nil, errors.Errorf("line %d: empty line", i+1)
		case value[0] == '\t':
			return nil, errors.Errorf("line %d: tab indentation", i+1)
		}
		for stack[len(stack)-1].indent >= indent {
			stack = stack[:len(stack)-1]
		}
		parent := stack[len(stack)-1].node
		if n := len(parent.children); n > 0 && parent.children[n-1].indent != indent {
			return nil, errors.Errorf("line %d: inconsistent indentation", i+1)
		}
		parent.children = append(parent.children, Node{value: value, indent: indent})
		stack = append(stack, open{indent: indent, node: &parent.children[len(parent.children)-1]})
	}
	return root.children, nil
}

// Node in a hierarchy returned by Parse.
type Node struct {
	value    string
	indent   int
	children []Node
}

// Value returns the contents of the line for this node (without the
// indentation).
func (n *Node) Value() string {
	return n.value
}

// Children returns the child nodes, if any.
func (n *Node) Children() []Node {
	return n.children
}

// Format renders nodes with two spaces of indentation per level, passing
// every value through fn first. A nil fn keeps values unchanged.
func Format(nodes []Node, fn func(string) string) string {
	var b strings.Builder
	var walk func(nodes []Node, depth int)
	walk = func(nodes []Node, depth int) {
		for i := range nodes {
			v := nodes[i].value
			if fn != nil {
				v = fn(v)
			}
			b.WriteString(strings.Repeat("  ", depth))
			b.WriteString(v)
			b.WriteByte('\n')
			walk(nodes[i].children, depth+1)
		}
	}
	walk(nodes, 0)
	return b.String()
}
