// Copyright 2025 The Weaver Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package indenttree

import (
	"fmt"
	"strings"
	"testing"

	"github.com/cockroachdb/datadriven"
)

func TestIndentTree(t *testing.T) {
	datadriven.RunTest(t, "testdata/parse", func(t *testing.T, d *datadriven.TestData) string {
		switch d.Cmd {
		case "parse":
			nodes, err := Parse(d.Input)
			if err != nil {
				return fmt.Sprintf("error: %s", err)
			}
			return Format(nodes, func(s string) string {
				return fmt.Sprintf("<%s>", strings.TrimSpace(s))
			})

		default:
			t.Fatalf("unknown command: %s", d.Cmd)
			return ""
		}
	})
}
