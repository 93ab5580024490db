// Copyright 2025 The Weaver Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package weaver

import (
	"strings"

	"github.com/robinloom/weaver/internal/traverse"
)

func renderBullet(root *traverse.Node, o *Options, stats *traverse.Stats) string {
	var buf strings.Builder
	for n := range root.All() {
		if buf.Len() >= o.GlobalLengthLimit {
			stats.LengthTruncations++
			break
		}
		if depth := n.Depth(); depth > 0 {
			buf.WriteString(strings.Repeat(" ", o.Bullet.Indentation*depth-1))
			buf.WriteRune(o.Bullet.char(depth))
			buf.WriteByte(' ')
		}
		buf.WriteString(n.Content())
		buf.WriteByte('\n')
	}
	return strings.TrimSuffix(buf.String(), "\n")
}

// char returns the bullet of the given level; the root is level 0.
func (b BulletOptions) char(depth int) rune {
	switch depth {
	case 1:
		return b.FirstLevelChar
	case 2:
		return b.SecondLevelChar
	default:
		return b.DeeperLevelChar
	}
}
