// Copyright 2025 The Weaver Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package ascii

import "github.com/cockroachdb/errors"

// BoxChars is the set of runes used to draw a frame.
type BoxChars struct {
	TopLeft, TopRight       rune
	BottomLeft, BottomRight rune
	Horizontal, Vertical    rune
}

// UnicodeLight draws frames with light, rounded box-drawing characters.
var UnicodeLight = BoxChars{
	TopLeft: '╭', TopRight: '╮',
	BottomLeft: '╰', BottomRight: '╯',
	Horizontal: '─', Vertical: '│',
}

// ASCII draws frames with plain ASCII characters.
var ASCII = BoxChars{
	TopLeft: '+', TopRight: '+',
	BottomLeft: '+', BottomRight: '+',
	Horizontal: '-', Vertical: '|',
}

// ParseBoxChars returns the named box character set: "unicode-light" or
// "ascii".
func ParseBoxChars(name string) (BoxChars, error) {
	switch name {
	case "unicode-light":
		return UnicodeLight, nil
	case "ascii":
		return ASCII, nil
	}
	return BoxChars{}, errors.Errorf("unknown box characters %q", errors.Safe(name))
}

// Name returns the name accepted by ParseBoxChars, or "custom".
func (bc BoxChars) Name() string {
	switch bc {
	case UnicodeLight:
		return "unicode-light"
	case ASCII:
		return "ascii"
	}
	return "custom"
}

// Frame draws a frame of the given outer width and height with its top left
// corner at the cursor. The title is embedded in the top border, preceded
// and followed by a space:
//
//	╭ Title ──╮
//	│         │
//	╰─────────╯
//
// The frame is widened if the title does not fit. It returns the cursor of
// the first content cell, two columns in from the left border.
func (c Cursor) Frame(width, height int, title string, bc BoxChars) Cursor {
	width = max(width, Width(title)+5)
	height = max(height, 2)

	top := c.WriteString(string(bc.TopLeft))
	if title != "" {
		top = top.WriteString(" " + title + " ")
	}
	top = top.Repeat(width-1-(top.Column()-c.Column()), bc.Horizontal)
	top.WriteString(string(bc.TopRight))

	for i := 1; i < height-1; i++ {
		row := c.Down(i)
		row.WriteString(string(bc.Vertical))
		row.Right(width - 1).WriteString(string(bc.Vertical))
	}

	bottom := c.Down(height - 1).WriteString(string(bc.BottomLeft))
	bottom.Repeat(width-2, bc.Horizontal).WriteString(string(bc.BottomRight))
	return c.Down(1).Right(2)
}
