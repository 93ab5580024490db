// Copyright 2025 The Weaver Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package weaver

import (
	"log/slog"

	"github.com/robinloom/weaver/internal/classify"
)

// weavingLogger weaves the composite and sequence arguments of every log
// call before handing them to the wrapped Logger. Scalars, errors and other
// opaque values are passed through unchanged so that the wrapped logger
// keeps formatting them with its own verbs.
type weavingLogger struct {
	l Logger
	w Weaver
}

var _ Logger = (*weavingLogger)(nil)

// NewWeavingLogger returns a Logger that renders object arguments with a
// Weaver of the given mode before delegating to l.
func NewWeavingLogger(l Logger, mode Mode, opts *Options) (Logger, error) {
	w, err := New(mode, opts)
	if err != nil {
		return nil, err
	}
	return &weavingLogger{l: l, w: w}, nil
}

func (l *weavingLogger) Infof(format string, args ...interface{}) {
	l.l.Infof(format, l.weave(args)...)
}

func (l *weavingLogger) Errorf(format string, args ...interface{}) {
	l.l.Errorf(format, l.weave(args)...)
}

func (l *weavingLogger) Fatalf(format string, args ...interface{}) {
	l.l.Fatalf(format, l.weave(args)...)
}

func (l *weavingLogger) weave(args []interface{}) []interface{} {
	var out []interface{}
	for i, a := range args {
		switch classify.OfAny(a).Kind {
		case classify.Composite, classify.Sequence:
			if out == nil {
				out = append([]interface{}(nil), args...)
			}
			out[i] = l.w.Weave(a)
		}
	}
	if out == nil {
		return args
	}
	return out
}

type lazyValue struct {
	w Weaver
	v any
}

// LogValue implements slog.LogValuer.
func (l lazyValue) LogValue() slog.Value {
	return slog.StringValue(l.w.Weave(l.v))
}

// Lazy returns a slog.LogValuer that weaves v in the given mode with the
// default options, only when a handler actually formats the record.
func Lazy(v any, mode Mode) slog.LogValuer {
	if mode < Inline || mode > Card {
		mode = Inline
	}
	return lazyValue{w: defaultWeavers[mode], v: v}
}

// LazyWith is like Lazy but weaves with w.
func LazyWith(w Weaver, v any) slog.LogValuer {
	return lazyValue{w: w, v: v}
}
