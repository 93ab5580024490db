// Copyright 2025 The Weaver Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package weaver

import (
	"reflect"
	"strings"

	"github.com/robinloom/weaver/internal/base"
	"github.com/robinloom/weaver/internal/classify"
	"github.com/robinloom/weaver/internal/introspect"
	"github.com/robinloom/weaver/internal/invariants"
	"github.com/robinloom/weaver/internal/traverse"
)

// linearMachine renders a value as a flat string. Composites nest inline;
// only the root composite uses the top separators, which lets the Multiline
// modes put one property per line while nested values stay on it.
type linearMachine struct {
	opts      *Options
	top       LinearOptions
	nested    LinearOptions
	props     introspect.Config
	showTypes bool
	mark      func(string) string

	buf     strings.Builder
	visited traverse.Visited
	stats   traverse.Stats
}

func (w *weaver) linearMachine() *linearMachine {
	m := &linearMachine{
		opts:      w.opts,
		top:       w.opts.Linear,
		nested:    w.opts.Linear,
		props:     w.propertiesConfig(),
		showTypes: w.opts.ShowDataTypes,
		mark:      w.mark,
	}
	switch w.mode {
	case MultilineVerbose:
		m.showTypes = true
		fallthrough
	case Multiline:
		m.top = multilineOptions
		if w.opts.OmitClassName {
			m.top.ClassNameFieldsSeparator = ""
		}
	}
	m.visited.Init(w.opts.ReexpandShared)
	return m
}

func (m *linearMachine) weave(v reflect.Value) string {
	m.value(classify.Of(v), 0, true)
	return m.buf.String()
}

func (m *linearMachine) limitReached() bool {
	return m.buf.Len() >= m.opts.GlobalLengthLimit
}

func (m *linearMachine) value(c classify.Value, depth int, top bool) {
	switch c.Kind {
	case classify.Null:
		m.buf.WriteString(base.Null)
	case classify.Opaque, classify.Scalar:
		m.leaf(c)
	case classify.Sequence:
		m.sequence(c, depth)
	case classify.Composite:
		m.composite(c, depth, top)
	}
}

func (m *linearMachine) leaf(c classify.Value) {
	s, err := classify.String(c)
	switch {
	case err != nil:
		m.fail(err)
		s = err.Error()
	case m.mark != nil:
		s = m.mark(s)
	}
	m.buf.WriteString(s)
}

func (m *linearMachine) composite(c classify.Value, depth int, top bool) {
	sep := m.nested
	if top {
		sep = m.top
	}
	if !m.opts.OmitClassName {
		m.buf.WriteString(sep.ClassNamePrefix)
		m.buf.WriteString(classify.ClassName(c))
		m.buf.WriteString(sep.ClassNameSuffix)
	}
	m.buf.WriteString(sep.ClassNameFieldsSeparator)
	defer m.buf.WriteString(sep.GlobalSuffix)

	if !m.enter(c, depth) {
		return
	}
	defer m.visited.Leave(c.ID)

	entries, err := introspect.Properties(c, m.props)
	if err != nil {
		m.fail(err)
		m.buf.WriteString(err.Error())
		return
	}
	for i, e := range entries {
		if i > 0 {
			m.buf.WriteString(sep.FieldSeparator)
		}
		if m.limitReached() {
			m.buf.WriteString("...")
			break
		}
		if m.showTypes && e.Type != nil {
			m.buf.WriteString(classify.TypeName(e.Type))
			m.buf.WriteByte(' ')
		}
		m.buf.WriteString(e.Name)
		m.buf.WriteString(sep.FieldValueSeparator)
		switch {
		case e.Redacted:
			m.buf.WriteString(e.Mask)
		case e.Inaccessible:
			m.buf.WriteString(base.Inaccessible)
		default:
			m.value(classify.Of(e.Value), depth+1, false)
		}
	}
}

func (m *linearMachine) sequence(c classify.Value, depth int) {
	m.buf.WriteByte('[')
	defer m.buf.WriteByte(']')

	if !m.enter(c, depth) {
		return
	}
	defer m.visited.Leave(c.ID)

	count := 0
	for e := range c.Elements() {
		if count > 0 {
			m.buf.WriteString(", ")
		}
		if count >= m.opts.MaxSequenceLength {
			m.stats.LengthTruncations++
			m.buf.WriteString("... ")
			m.buf.WriteString(base.More(max(invariants.SafeSub(c.Len(), count), 1)))
			return
		}
		if m.limitReached() {
			m.buf.WriteString("...")
			return
		}
		if e.Keyed {
			m.buf.WriteString(e.Key)
			m.buf.WriteByte('=')
		}
		m.value(classify.Of(e.Value), depth+1, false)
		count++
	}
}

// enter reports whether the composite or sequence c at the given depth is
// expanded, recording why not otherwise. On true the caller must Leave.
func (m *linearMachine) enter(c classify.Value, depth int) bool {
	if depth >= m.opts.MaxDepth {
		m.stats.DepthTruncations++
		return false
	}
	switch m.visited.Enter(c.ID) {
	case traverse.Cycle:
		m.stats.Cycles++
		return false
	case traverse.Shared:
		m.stats.Shared++
		return false
	}
	return true
}

func (m *linearMachine) fail(err error) {
	m.stats.Failures++
	classify.Report(m.opts.Logger, err)
}
