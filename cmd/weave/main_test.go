// Copyright 2025 The Weaver Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/robinloom/weaver"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, stdin string, args ...string) (string, string) {
	t.Helper()
	var out, errOut bytes.Buffer
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	t.Cleanup(resetFlags)
	require.NoError(t, rootCmd.Execute())
	return out.String(), errOut.String()
}

// resetFlags restores the flags of the reused commands to their defaults.
func resetFlags() {
	for _, cmd := range []*cobra.Command{renderCmd, optionsCmd} {
		for _, name := range []string{"config", "max-depth", "max-sequence-length", "omit-class-name", "mode", "redactable", "stats"} {
			if f := cmd.Flags().Lookup(name); f != nil {
				_ = f.Value.Set(f.DefValue)
				f.Changed = false
			}
		}
	}
}

func TestRender(t *testing.T) {
	const doc = `{"name": "John Doe", "tags": ["a", "b"], "address": {"city": "Berlin"}}`

	out, _ := execute(t, doc, "render", "--mode", "inline")
	require.Equal(t, "Object[address=Object[city=Berlin], name=John Doe, tags=[a, b]]\n", out)

	out, _ = execute(t, doc, "render", "--mode", "tree")
	require.Equal(t, strings.Join([]string{
		"Object",
		"|-- address",
		"|   `-- city=Berlin",
		"|-- name=John Doe",
		"`-- tags",
		"    |-- [0] a",
		"    `-- [1] b",
	}, "\n")+"\n", out)
}

func TestRenderStats(t *testing.T) {
	out, errOut := execute(t, `[1, 2, 3]`, "render", "--mode", "inline", "--stats", "--max-sequence-length", "2")
	require.Equal(t, "[1, 2, ... 1 more]\n", out)
	require.Contains(t, errOut, "weaves: 1")
}

func TestRenderZeroLimits(t *testing.T) {
	const doc = `{"name": "Jane", "tags": ["a", "b"]}`

	out, _ := execute(t, doc, "render", "--max-depth", "0")
	require.Equal(t, "Object[]\n", out)

	out, _ = execute(t, doc, "render", "--max-sequence-length", "0")
	require.Equal(t, "Object[name=Jane, tags=[... 2 more]]\n", out)
}

func TestOptions(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "weaver.ini")
	require.NoError(t, os.WriteFile(path, []byte("[Options]\n  max_depth=7\n"), 0o644))

	out, _ := execute(t, "", "options", "--config", path)
	opts := weaver.DefaultOptions()
	require.NoError(t, opts.Parse(out))
	require.Equal(t, 7, opts.MaxDepth)
}

func TestDocument(t *testing.T) {
	v := document(map[string]any{"b": 1.0, "a": []any{map[string]any{"c": true}}})
	o, ok := v.(*Object)
	require.True(t, ok)
	props := o.WeaveProperties()
	require.Len(t, props, 2)
	require.Equal(t, "a", props[0].Name)
	require.Equal(t, "b", props[1].Name)
	elems := props[0].Value.([]any)
	require.IsType(t, &Object{}, elems[0])
}
