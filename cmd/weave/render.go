// Copyright 2025 The Weaver Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/robinloom/weaver"
	"github.com/robinloom/weaver/internal/jsoncodec"
	"github.com/spf13/cobra"
)

var renderCmd = &cobra.Command{
	Use:   "render [<file>]",
	Short: "render the JSON documents of a file or of stdin",
	Long: `
Decodes every JSON document of the named file (or of stdin) and prints it
woven in the selected mode, one document after the other. JSON objects are
rendered as composites named "Object" with their keys in sorted order.
`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRender,
}

var optionsCmd = &cobra.Command{
	Use:   "options",
	Short: "print the effective options",
	Long: `
Prints the options after applying the config file, WEAVER_* environment
variables and flags, in the format accepted by --config.
`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := loadOptions(cmd)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), opts.String())
		return nil
	},
}

var modesCmd = &cobra.Command{
	Use:   "modes",
	Short: "list the weaving modes",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		for _, m := range weaver.Modes() {
			fmt.Fprintln(cmd.OutOrStdout(), m)
		}
	},
}

// loadOptions layers the defaults, the config file, the environment and the
// flags, in that order.
func loadOptions(cmd *cobra.Command) (*weaver.Options, error) {
	opts := weaver.DefaultOptions()
	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, err
		}
		if err := opts.Parse(string(data)); err != nil {
			return nil, errors.Wrapf(err, "%s", configPath)
		}
	}
	if err := opts.LoadEnv(nil); err != nil {
		return nil, err
	}
	flags := cmd.Flags()
	if flags.Changed("max-depth") {
		opts = opts.WithMaxDepth(maxDepth)
	}
	if flags.Changed("max-sequence-length") {
		opts = opts.WithMaxSequenceLength(maxSeqLen)
	}
	if flags.Changed("omit-class-name") {
		opts.OmitClassName = omitClass
	}
	return opts, opts.Validate()
}

func runRender(cmd *cobra.Command, args []string) error {
	mode, err := weaver.ParseMode(modeName)
	if err != nil {
		return err
	}
	opts, err := loadOptions(cmd)
	if err != nil {
		return err
	}
	var metrics *weaver.Metrics
	if showStats {
		metrics = weaver.NewMetrics(prometheus.NewRegistry())
		if err := metrics.Register(); err != nil {
			return err
		}
		opts = opts.WithMetrics(metrics)
	}

	var in io.Reader = cmd.InOrStdin()
	if len(args) == 1 {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}
	docs, err := jsoncodec.DecodeAll(in)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	w, err := weaver.New(mode, opts)
	if err != nil {
		return err
	}
	for _, d := range docs {
		v := document(d)
		if redactable {
			s, err := weaver.WeaveRedactable(v, mode, opts)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, s)
			continue
		}
		fmt.Fprintln(out, w.Weave(v))
	}
	if showStats {
		fmt.Fprintln(cmd.ErrOrStderr(), metrics.Snapshot())
	}
	return nil
}
