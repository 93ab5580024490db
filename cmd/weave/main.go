// Copyright 2025 The Weaver Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"
)

var (
	configPath string
	modeName   string
	maxDepth   int
	maxSeqLen  int
	omitClass  bool
	redactable bool
	showStats  bool
)

var rootCmd = &cobra.Command{
	Use:   "weave [command] (flags)",
	Short: "render JSON documents as woven text",
	Long:  ``,
}

func init() {
	cobra.EnableCommandSorting = false
	rootCmd.AddCommand(
		renderCmd,
		optionsCmd,
		modesCmd,
	)

	for _, cmd := range []*cobra.Command{renderCmd, optionsCmd} {
		cmd.Flags().StringVar(
			&configPath, "config", "", "read options from an INI file, as printed by the options command")
		cmd.Flags().IntVar(
			&maxDepth, "max-depth", 0, "maximum nesting depth; 0 shows type names only")
		cmd.Flags().IntVar(
			&maxSeqLen, "max-sequence-length", 0, "maximum number of elements per sequence")
		cmd.Flags().BoolVar(
			&omitClass, "omit-class-name", false, "do not print type names")
	}
	renderCmd.Flags().StringVarP(
		&modeName, "mode", "m", "inline", "weaving mode (see the modes command)")
	renderCmd.Flags().BoolVar(
		&redactable, "redactable", false, "enclose values in redaction markers")
	renderCmd.Flags().BoolVar(
		&showStats, "stats", false, "print weaving statistics to stderr")
}

func main() {
	log.SetFlags(0)
	if err := rootCmd.Execute(); err != nil {
		// Cobra has already printed the error message.
		os.Exit(1)
	}
}
