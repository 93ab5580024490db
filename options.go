// Copyright 2025 The Weaver Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package weaver

import (
	"fmt"
	"slices"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/robinloom/weaver/internal/ascii"
	"github.com/robinloom/weaver/internal/base"
	"github.com/robinloom/weaver/internal/introspect"
)

const (
	defaultMaxDepth          = 4
	defaultMaxSequenceLength = 10
	defaultGlobalLengthLimit = 10000
	defaultBulletIndentation = 2
)

// LinearOptions holds the separators of the Inline machine:
//
//	<prefix>Person<suffix><fields sep>name<value sep>John<field sep>age<value sep>42<global suffix>
type LinearOptions struct {
	ClassNamePrefix          string
	ClassNameSuffix          string
	ClassNameFieldsSeparator string
	FieldValueSeparator      string
	FieldSeparator           string
	GlobalSuffix             string
}

// DefaultLinearOptions produces Person[name=John, age=42].
var DefaultLinearOptions = LinearOptions{
	ClassNameFieldsSeparator: "[",
	FieldValueSeparator:      "=",
	FieldSeparator:           ", ",
	GlobalSuffix:             "]",
}

// multilineOptions are the separators used at the top level of the
// Multiline machines.
var multilineOptions = LinearOptions{
	ClassNameFieldsSeparator: "\n",
	FieldValueSeparator:      ": ",
	FieldSeparator:           "\n",
}

// TreeOptions configures the Tree machine.
type TreeOptions struct {
	// BranchChar starts the connector of every child but the last, and the
	// vertical line continuing past it.
	BranchChar rune
	// LastBranchChar starts the connector of the last child.
	LastBranchChar rune
}

// BulletOptions configures the Bullet machine.
type BulletOptions struct {
	FirstLevelChar  rune
	SecondLevelChar rune
	// DeeperLevelChar is used from the third level on.
	DeeperLevelChar rune
	// Indentation is the number of spaces per level.
	Indentation int
}

// CardOptions configures the Card machine.
type CardOptions struct {
	Box ascii.BoxChars
}

// Options holds the render configuration shared by all weaving machines.
// The zero value of every field selects its default; see EnsureDefaults. A
// limit of zero is kept when it is set through WithMaxDepth,
// WithMaxSequenceLength, WithGlobalLengthLimit, Parse or LoadEnv.
type Options struct {
	// IncludedFields restricts properties to the listed names (Go field name
	// or `weave` tag name). ExcludedFields removes the listed names.
	IncludedFields []string
	ExcludedFields []string

	// MaxDepth is the depth below which composites and sequences are
	// expanded. The root is at depth 0.
	MaxDepth int
	// MaxSequenceLength is the number of elements shown per sequence.
	MaxSequenceLength int
	// GlobalLengthLimit is the output length after which no further
	// properties, lines or rows are emitted.
	GlobalLengthLimit int

	OmitClassName             bool
	CapitalizeFields          bool
	ShowDataTypes             bool
	ShowInheritedFields       bool
	OrderFieldsAlphabetically bool
	// ExportedFieldsOnly skips unexported struct fields.
	ExportedFieldsOnly bool
	// ReexpandShared expands a value every time it is reached instead of
	// only the first time. Otherwise later references render as the bare
	// type header, the same as a cut cycle. Cycles are cut either way.
	ReexpandShared bool

	// DisableSensitivityDetection turns off the Sensitive predicate. Fields
	// tagged `weave:",redact"` are still redacted.
	DisableSensitivityDetection bool
	// Sensitive reports whether a property holds a secret. Defaults to
	// DefaultSensitive.
	Sensitive func(Field) bool
	// Mask replaces the values of redacted properties.
	Mask string

	Linear LinearOptions
	Tree   TreeOptions
	Bullet BulletOptions
	Card   CardOptions

	// Logger receives the causes of recovered failures. Defaults to
	// NoopLogger.
	Logger Logger
	// Metrics, if set, records weaving statistics.
	Metrics *Metrics

	// explicit records the limits that were set to a value on purpose, so
	// that EnsureDefaults keeps an explicit zero.
	explicit limitSet
}

type limitSet uint8

const (
	maxDepthSet limitSet = 1 << iota
	maxSequenceLengthSet
	globalLengthLimitSet
)

// DefaultOptions returns a new Options with all defaults filled in.
func DefaultOptions() *Options {
	o := &Options{}
	o.EnsureDefaults()
	return o
}

// EnsureDefaults ensures that the default values for all options are set if a
// valid value was not already specified.
func (o *Options) EnsureDefaults() {
	if o.MaxDepth == 0 && o.explicit&maxDepthSet == 0 {
		o.MaxDepth = defaultMaxDepth
	}
	if o.MaxSequenceLength == 0 && o.explicit&maxSequenceLengthSet == 0 {
		o.MaxSequenceLength = defaultMaxSequenceLength
	}
	if o.GlobalLengthLimit == 0 && o.explicit&globalLengthLimitSet == 0 {
		o.GlobalLengthLimit = defaultGlobalLengthLimit
	}
	if o.Sensitive == nil {
		o.Sensitive = DefaultSensitive
	}
	if o.Mask == "" {
		o.Mask = base.DefaultMask
	}
	if o.Linear == (LinearOptions{}) {
		o.Linear = DefaultLinearOptions
	}
	if o.Tree.BranchChar == 0 {
		o.Tree.BranchChar = '|'
	}
	if o.Tree.LastBranchChar == 0 {
		o.Tree.LastBranchChar = '`'
	}
	if o.Bullet.FirstLevelChar == 0 {
		o.Bullet.FirstLevelChar = '-'
	}
	if o.Bullet.SecondLevelChar == 0 {
		o.Bullet.SecondLevelChar = '-'
	}
	if o.Bullet.DeeperLevelChar == 0 {
		o.Bullet.DeeperLevelChar = '-'
	}
	if o.Bullet.Indentation == 0 {
		o.Bullet.Indentation = defaultBulletIndentation
	}
	if o.Card.Box == (ascii.BoxChars{}) {
		o.Card.Box = ascii.UnicodeLight
	}
	if o.Logger == nil {
		o.Logger = NoopLogger{}
	}
}

// Clone creates a shallow copy of the supplied options. The field lists are
// copied so the clone can be modified independently.
func (o *Options) Clone() *Options {
	if o == nil {
		return &Options{}
	}
	n := *o
	n.IncludedFields = slices.Clone(o.IncludedFields)
	n.ExcludedFields = slices.Clone(o.ExcludedFields)
	return &n
}

// Validate verifies that the options are mutually consistent. It presumes
// EnsureDefaults has been called.
func (o *Options) Validate() error {
	var buf strings.Builder
	if o.MaxDepth < 0 {
		fmt.Fprintf(&buf, "MaxDepth (%d) must be >= 0\n", o.MaxDepth)
	}
	if o.MaxSequenceLength < 0 {
		fmt.Fprintf(&buf, "MaxSequenceLength (%d) must be >= 0\n", o.MaxSequenceLength)
	}
	if o.GlobalLengthLimit < 0 {
		fmt.Fprintf(&buf, "GlobalLengthLimit (%d) must be >= 0\n", o.GlobalLengthLimit)
	}
	if o.Bullet.Indentation < 1 {
		fmt.Fprintf(&buf, "Bullet.Indentation (%d) must be >= 1\n", o.Bullet.Indentation)
	}
	for _, name := range o.IncludedFields {
		if slices.Contains(o.ExcludedFields, name) {
			fmt.Fprintf(&buf, "field %q is both included and excluded\n", name)
		}
	}
	if buf.Len() == 0 {
		return nil
	}
	return errors.New(buf.String())
}

// WithIncludedFields returns a copy of o that only shows the named fields.
// The excluded fields are cleared.
func (o *Options) WithIncludedFields(names ...string) *Options {
	n := o.Clone()
	n.IncludedFields, n.ExcludedFields = slices.Clone(names), nil
	return n
}

// WithExcludedFields returns a copy of o that hides the named fields. The
// included fields are cleared.
func (o *Options) WithExcludedFields(names ...string) *Options {
	n := o.Clone()
	n.ExcludedFields, n.IncludedFields = slices.Clone(names), nil
	return n
}

// WithMaxDepth returns a copy of o with the given maximum depth. A depth of
// zero shows the root header only.
func (o *Options) WithMaxDepth(d int) *Options {
	n := o.Clone()
	n.setMaxDepth(d)
	return n
}

// WithMaxSequenceLength returns a copy of o with the given maximum sequence
// length. A length of zero shows no elements, only how many were left out.
func (o *Options) WithMaxSequenceLength(l int) *Options {
	n := o.Clone()
	n.setMaxSequenceLength(l)
	return n
}

// WithGlobalLengthLimit returns a copy of o with the given output length
// limit.
func (o *Options) WithGlobalLengthLimit(l int) *Options {
	n := o.Clone()
	n.setGlobalLengthLimit(l)
	return n
}

func (o *Options) setMaxDepth(d int) {
	o.MaxDepth = d
	o.explicit |= maxDepthSet
}

func (o *Options) setMaxSequenceLength(l int) {
	o.MaxSequenceLength = l
	o.explicit |= maxSequenceLengthSet
}

func (o *Options) setGlobalLengthLimit(l int) {
	o.GlobalLengthLimit = l
	o.explicit |= globalLengthLimitSet
}

// WithOmitClassName returns a copy of o with OmitClassName set.
func (o *Options) WithOmitClassName(b bool) *Options {
	n := o.Clone()
	n.OmitClassName = b
	return n
}

// WithCapitalizeFields returns a copy of o with CapitalizeFields set.
func (o *Options) WithCapitalizeFields(b bool) *Options {
	n := o.Clone()
	n.CapitalizeFields = b
	return n
}

// WithShowDataTypes returns a copy of o with ShowDataTypes set.
func (o *Options) WithShowDataTypes(b bool) *Options {
	n := o.Clone()
	n.ShowDataTypes = b
	return n
}

// WithShowInheritedFields returns a copy of o with ShowInheritedFields set.
func (o *Options) WithShowInheritedFields(b bool) *Options {
	n := o.Clone()
	n.ShowInheritedFields = b
	return n
}

// WithOrderFieldsAlphabetically returns a copy of o with
// OrderFieldsAlphabetically set.
func (o *Options) WithOrderFieldsAlphabetically(b bool) *Options {
	n := o.Clone()
	n.OrderFieldsAlphabetically = b
	return n
}

// WithMask returns a copy of o with the given redaction mask.
func (o *Options) WithMask(mask string) *Options {
	n := o.Clone()
	n.Mask = mask
	return n
}

// WithLinear returns a copy of o with the given separators.
func (o *Options) WithLinear(l LinearOptions) *Options {
	n := o.Clone()
	n.Linear = l
	return n
}

// WithBranchChars returns a copy of o with the given tree connectors.
func (o *Options) WithBranchChars(branch, last rune) *Options {
	n := o.Clone()
	n.Tree = TreeOptions{BranchChar: branch, LastBranchChar: last}
	return n
}

// WithBulletChars returns a copy of o with the given bullets.
func (o *Options) WithBulletChars(first, second, deeper rune) *Options {
	n := o.Clone()
	n.Bullet.FirstLevelChar, n.Bullet.SecondLevelChar, n.Bullet.DeeperLevelChar = first, second, deeper
	return n
}

// WithBoxChars returns a copy of o drawing cards with the given characters.
func (o *Options) WithBoxChars(bc BoxChars) *Options {
	n := o.Clone()
	n.Card.Box = bc
	return n
}

// WithLogger returns a copy of o reporting to l.
func (o *Options) WithLogger(l Logger) *Options {
	n := o.Clone()
	n.Logger = l
	return n
}

// WithMetrics returns a copy of o recording into m.
func (o *Options) WithMetrics(m *Metrics) *Options {
	n := o.Clone()
	n.Metrics = m
	return n
}

// Field describes a property to a sensitivity predicate.
type Field = introspect.Field

// DefaultSensitive is the default sensitivity predicate. It matches common
// credential names (password, passwd, pwd, secret, token, apiKey, privateKey)
// and raw byte or rune slices.
func DefaultSensitive(f Field) bool {
	return introspect.DefaultSensitive(f)
}
