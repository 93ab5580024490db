// Copyright 2025 The Weaver Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package weaver

import (
	"reflect"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/robinloom/weaver/internal/base"
	"github.com/robinloom/weaver/internal/classify"
	"github.com/robinloom/weaver/internal/introspect"
	"github.com/robinloom/weaver/internal/traverse"
)

// Mode selects a weaving machine.
type Mode int8

const (
	// Inline renders the value on a single line: Person[name=John, age=42].
	Inline Mode = iota
	// Multiline renders the class name followed by one property per line.
	Multiline
	// MultilineVerbose is Multiline with data types, capitalized names and
	// the fields of embedded structs promoted.
	MultilineVerbose
	// Tree renders the value as an ASCII tree.
	Tree
	// Bullet renders the value as an indented bullet list.
	Bullet
	// Card renders the first level of the value inside a box.
	Card
)

var modeNames = [...]string{
	Inline:           "inline",
	Multiline:        "multiline",
	MultilineVerbose: "multiline-verbose",
	Tree:             "tree",
	Bullet:           "bullet",
	Card:             "card",
}

// String implements fmt.Stringer.
func (m Mode) String() string {
	if m >= 0 && int(m) < len(modeNames) {
		return modeNames[m]
	}
	return "unknown"
}

// ParseMode returns the mode with the given name. Names are matched
// case-insensitively and underscores are accepted in place of dashes.
func ParseMode(s string) (Mode, error) {
	name := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "_", "-")
	for m, n := range modeNames {
		if n == name {
			return Mode(m), nil
		}
	}
	return 0, errors.Errorf("weaver: unknown mode %q", errors.Safe(s))
}

// Modes returns all modes in declaration order.
func Modes() []Mode {
	return []Mode{Inline, Multiline, MultilineVerbose, Tree, Bullet, Card}
}

// Weaver renders values as strings. Implementations are immutable and safe
// for concurrent use.
type Weaver interface {
	Weave(v any) string
}

// New returns a Weaver for the given mode. The options are copied; later
// changes to opts do not affect the returned Weaver. A nil opts uses the
// defaults.
func New(mode Mode, opts *Options) (Weaver, error) {
	o, err := prepare(mode, opts)
	if err != nil {
		return nil, err
	}
	return newWeaver(mode, o, nil), nil
}

func prepare(mode Mode, opts *Options) (*Options, error) {
	if mode < Inline || mode > Card {
		return nil, errors.Errorf("weaver: unknown mode %d", errors.Safe(int(mode)))
	}
	o := opts.Clone()
	o.EnsureDefaults()
	if err := o.Validate(); err != nil {
		return nil, err
	}
	return o, nil
}

// MustNew is like New but panics on invalid options.
func MustNew(mode Mode, opts *Options) Weaver {
	w, err := New(mode, opts)
	if err != nil {
		panic(err)
	}
	return w
}

var defaultWeavers = func() [len(modeNames)]*weaver {
	var ws [len(modeNames)]*weaver
	for _, m := range Modes() {
		ws[m] = newWeaver(m, DefaultOptions(), nil)
	}
	return ws
}()

// Weave renders v inline with the default options.
func Weave(v any) string {
	return defaultWeavers[Inline].Weave(v)
}

// WeaveMode renders v in the given mode with the default options. Unknown
// modes fall back to Inline.
func WeaveMode(v any, mode Mode) string {
	if mode < Inline || mode > Card {
		mode = Inline
	}
	return defaultWeavers[mode].Weave(v)
}

type weaver struct {
	mode Mode
	opts *Options
	// mark wraps the textual form of leaf values; nil leaves them unchanged.
	mark func(string) string
}

func newWeaver(mode Mode, o *Options, mark func(string) string) *weaver {
	return &weaver{mode: mode, opts: o, mark: mark}
}

// Weave implements the Weaver interface. It never panics: a panic escaping a
// machine is recovered and rendered as a failure placeholder.
func (w *weaver) Weave(v any) (out string) {
	var stats traverse.Stats
	defer func() {
		if r := recover(); r != nil {
			kind := classify.FailureKind(r)
			w.opts.Logger.Errorf("weaver: recovered %s while weaving %s: %v", kind, w.mode, r)
			stats.Failures++
			out = base.ErrorPlaceholder(kind)
		}
		w.opts.Metrics.observe(w.mode, stats, len(out))
	}()
	rv := reflect.ValueOf(v)
	switch w.mode {
	case Tree, Bullet:
		root, s := traverse.Build(rv, w.traverseConfig())
		stats = s
		if w.mode == Tree {
			return renderTree(root, w.opts, &stats)
		}
		return renderBullet(root, w.opts, &stats)
	case Card:
		m := cardMachine{opts: w.opts, props: w.propertiesConfig()}
		out = m.weave(rv)
		stats = m.stats
		return out
	default:
		m := w.linearMachine()
		out = m.weave(rv)
		stats = m.stats
		return out
	}
}

func (w *weaver) propertiesConfig() introspect.Config {
	o := w.opts
	cfg := introspect.Config{
		Included:     o.IncludedFields,
		Excluded:     o.ExcludedFields,
		Inherited:    o.ShowInheritedFields,
		ExportedOnly: o.ExportedFieldsOnly,
		Capitalize:   o.CapitalizeFields,
		Alphabetical: o.OrderFieldsAlphabetically,
		Mask:         o.Mask,
	}
	if !o.DisableSensitivityDetection {
		cfg.Sensitive = o.Sensitive
	}
	if w.mode == MultilineVerbose {
		cfg.Inherited, cfg.Capitalize = true, true
	}
	return cfg
}

func (w *weaver) traverseConfig() traverse.Config {
	return traverse.Config{
		MaxDepth:          w.opts.MaxDepth,
		MaxSequenceLength: w.opts.MaxSequenceLength,
		ReexpandShared:    w.opts.ReexpandShared,
		ShowDataTypes:     w.opts.ShowDataTypes,
		Properties:        w.propertiesConfig(),
		Logger:            w.opts.Logger,
		Mark:              w.mark,
	}
}
