// Copyright 2025 The Weaver Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package weaver

import (
	"reflect"
	"strconv"
	"strings"

	"github.com/cockroachdb/crlib/crhumanize"
	"github.com/robinloom/weaver/internal/ascii"
	"github.com/robinloom/weaver/internal/base"
	"github.com/robinloom/weaver/internal/classify"
	"github.com/robinloom/weaver/internal/introspect"
	"github.com/robinloom/weaver/internal/invariants"
	"github.com/robinloom/weaver/internal/traverse"
)

// cardMachine renders the first level of a value as aligned rows inside a
// box:
//
//	╭ User ───────────────╮
//	│ name  : Alice       │
//	│ age   : 28          │
//	│ tags  : []string(3) │
//	╰─────────────────────╯
//
// Composite and sequence properties are summarized, never expanded, so the
// machine needs no visited set.
type cardMachine struct {
	opts  *Options
	props introspect.Config
	stats traverse.Stats
	size  int
}

type cardRow struct {
	key, value string
}

func (m *cardMachine) weave(v reflect.Value) string {
	c := classify.Of(v)
	var rows []cardRow
	switch c.Kind {
	case classify.Composite:
		entries, err := introspect.Properties(c, m.props)
		if err != nil {
			m.fail(err)
			return err.Error()
		}
		for _, e := range entries {
			if !m.add(&rows, e.Name, m.entry(e)) {
				break
			}
		}
	case classify.Sequence:
		count := 0
		for e := range c.Elements() {
			if count >= m.opts.MaxSequenceLength {
				m.stats.LengthTruncations++
				m.add(&rows, "...", base.More(max(invariants.SafeSub(c.Len(), count), 1)))
				break
			}
			if !m.add(&rows, strings.TrimSpace(e.Prefix), m.summary(classify.Of(e.Value))) {
				break
			}
			count++
		}
	default:
		return m.summary(c)
	}
	title := classify.ClassName(c)
	if m.opts.OmitClassName {
		title = ""
	}
	return m.draw(title, rows)
}

// add appends a row unless the length budget is exhausted, in which case it
// reports false.
func (m *cardMachine) add(rows *[]cardRow, key, value string) bool {
	if m.size >= m.opts.GlobalLengthLimit {
		m.stats.LengthTruncations++
		return false
	}
	value = strings.ReplaceAll(value, "\n", " ")
	*rows = append(*rows, cardRow{key: key, value: value})
	m.size += len(key) + len(value)
	return true
}

func (m *cardMachine) entry(e introspect.Entry) string {
	switch {
	case e.Redacted:
		return e.Mask
	case e.Inaccessible:
		return base.Inaccessible
	}
	return m.summary(classify.Of(e.Value))
}

// summary returns the one-line form of a row value: leaves as themselves,
// sequences as Type(len) and composites as Type(number of properties).
func (m *cardMachine) summary(c classify.Value) string {
	switch c.Kind {
	case classify.Sequence:
		return classify.ClassName(c) + "(" + string(crhumanize.Count(int64(c.Len()), crhumanize.Compact)) + ")"
	case classify.Composite:
		entries, err := introspect.Properties(c, m.props)
		if err != nil {
			m.fail(err)
			return err.Error()
		}
		return classify.ClassName(c) + "(" + strconv.Itoa(len(entries)) + ")"
	}
	s, err := classify.String(c)
	if err != nil {
		m.fail(err)
		return err.Error()
	}
	return s
}

func (m *cardMachine) draw(title string, rows []cardRow) string {
	keyWidth := 0
	for _, r := range rows {
		keyWidth = max(keyWidth, ascii.Width(r.key))
	}
	lines := make([]string, len(rows))
	// The inner width leaves one column of padding after the longest row.
	inner := ascii.Width(title) + 4
	for i, r := range rows {
		lines[i] = r.key + strings.Repeat(" ", keyWidth-ascii.Width(r.key)+1) + ": " + r.value
		inner = max(inner, ascii.Width(lines[i])+3)
	}

	width, height := inner+1, len(rows)+2
	b := ascii.Make(width, height)
	content := b.At(0, 0).Frame(width, height, title, m.opts.Card.Box)
	for i, l := range lines {
		content.Down(i).WriteString(l)
	}
	return b.String()
}

func (m *cardMachine) fail(err error) {
	m.stats.Failures++
	classify.Report(m.opts.Logger, err)
}
