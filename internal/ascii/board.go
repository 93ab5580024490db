// Copyright 2025 The Weaver Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package ascii implements a rune canvas for laying out boxed text.
package ascii

import (
	"slices"
	"strings"
	"unicode/utf8"
)

// Board is a grid of runes that grows as text is written to it. Unwritten
// cells are spaces; trailing spaces are trimmed when the board is rendered.
type Board struct {
	buf   []rune
	width int
}

// Make returns a new Board with the given initial width and height.
func Make(width, height int) Board {
	return Board{buf: make([]rune, 0, max(width, 1)*height), width: max(width, 1)}
}

// At returns a cursor at the given row and column.
func (b *Board) At(r, c int) Cursor {
	return Cursor{b: b, r: r, c: c}
}

// NewLine returns a cursor at the beginning of a new last line.
func (b *Board) NewLine() Cursor {
	r := b.Lines()
	b.row(r)
	return b.At(r, 0)
}

// Lines returns the number of lines on the board.
func (b *Board) Lines() int {
	return len(b.buf) / b.width
}

// Width returns the current width of the board.
func (b *Board) Width() int {
	return b.width
}

// String returns the board as a string, one line per row.
func (b *Board) String() string {
	var sb strings.Builder
	for r := 0; r < b.Lines(); r++ {
		if r > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(strings.TrimRight(string(b.buf[r*b.width:(r+1)*b.width]), " "))
	}
	return sb.String()
}

// Reset clears the board and sets its width.
func (b *Board) Reset(w int) {
	b.buf = b.buf[:0]
	b.width = max(w, 1)
}

func (b *Board) set(r, c int, ch rune) {
	if c >= b.width {
		b.widen(c + 1)
	}
	b.row(r)[c] = ch
}

func (b *Board) widen(w int) {
	lines := b.Lines()
	buf := make([]rune, w*lines)
	for i := range buf {
		buf[i] = ' '
	}
	for i := 0; i < lines; i++ {
		copy(buf[i*w:], b.buf[i*b.width:(i+1)*b.width])
	}
	b.buf, b.width = buf, w
}

func (b *Board) row(r int) []rune {
	if n := (r+1)*b.width - len(b.buf); n > 0 {
		b.buf = slices.Grow(b.buf, n)
		for range n {
			b.buf = append(b.buf, ' ')
		}
	}
	return b.buf[r*b.width : (r+1)*b.width]
}

// Cursor is a position on a Board. Cursors are values; moving one returns a
// new cursor.
type Cursor struct {
	b    *Board
	r, c int
}

// Row returns the row of the cursor.
func (c Cursor) Row() int { return c.r }

// Column returns the column of the cursor.
func (c Cursor) Column() int { return c.c }

// Right returns a cursor n columns to the right.
func (c Cursor) Right(n int) Cursor {
	c.c += n
	return c
}

// Down returns a cursor n rows below, in the same column.
func (c Cursor) Down(n int) Cursor {
	c.r += n
	return c
}

// SetColumn returns a cursor on the same row at the given column.
func (c Cursor) SetColumn(col int) Cursor {
	c.c = col
	return c
}

// WriteString writes s starting at the cursor and returns the cursor just
// past the written text. Newlines move to the next row, back to the column
// the write started at.
func (c Cursor) WriteString(s string) Cursor {
	start := c.c
	for _, ch := range s {
		if ch == '\n' {
			c.r, c.c = c.r+1, start
			continue
		}
		c.b.set(c.r, c.c, ch)
		c.c++
	}
	return c
}

// Repeat writes ch n times and returns the cursor past the last one.
func (c Cursor) Repeat(n int, ch rune) Cursor {
	for range n {
		c.b.set(c.r, c.c, ch)
		c.c++
	}
	return c
}

// Width returns the number of columns s occupies on a board.
func Width(s string) int {
	return utf8.RuneCountInString(s)
}
