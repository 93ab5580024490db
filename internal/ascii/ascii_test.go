// Copyright 2025 The Weaver Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package ascii

import (
	"testing"

	"github.com/cockroachdb/crlib/crstrings"
	"github.com/cockroachdb/datadriven"
	"github.com/stretchr/testify/require"
)

func TestFrameDatadriven(t *testing.T) {
	datadriven.RunTest(t, "testdata/frame", func(t *testing.T, td *datadriven.TestData) string {
		switch td.Cmd {
		case "frame":
			var w, h int
			var title string
			td.ScanArgs(t, "w", &w)
			td.ScanArgs(t, "h", &h)
			td.ScanArgs(t, "title", &title)
			bc := UnicodeLight
			if td.HasArg("ascii") {
				bc = ASCII
			}
			board := Make(w, h)
			cur := board.At(0, 0).Frame(w, h, title, bc)
			for i, line := range crstrings.Lines(td.Input) {
				cur.Down(i).WriteString(line)
			}
			return board.String()
		default:
			td.Fatalf(t, "unknown command: %s", td.Cmd)
			return ""
		}
	})
}

func TestBoard(t *testing.T) {
	board := Make(3, 1)
	board.At(0, 0).WriteString("Hello\nworld!")
	require.Equal(t, "Hello\nworld!", board.String())
	require.Equal(t, 2, board.Lines())
	require.Equal(t, 6, board.Width())

	board.Reset(4)
	require.Equal(t, "", board.String())
	cur := board.At(1, 2).WriteString("ab\ncd")
	require.Equal(t, 2, cur.Row())
	require.Equal(t, 4, cur.Column())
	require.Equal(t, "\n  ab\n  cd", board.String())

	board.Reset(1)
	board.NewLine().Repeat(3, '─')
	board.NewLine().Right(1).WriteString("é")
	require.Equal(t, "───\n é", board.String())
	require.Equal(t, 3, Width("───"))
}

func TestParseBoxChars(t *testing.T) {
	for _, bc := range []BoxChars{UnicodeLight, ASCII} {
		parsed, err := ParseBoxChars(bc.Name())
		require.NoError(t, err)
		require.Equal(t, bc, parsed)
	}
	_, err := ParseBoxChars("heavy")
	require.Error(t, err)
	require.Equal(t, "custom", BoxChars{}.Name())
}
