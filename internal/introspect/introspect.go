// Copyright 2025 The Weaver Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package introspect enumerates the named properties of composite values.
//
// Struct fields are described once per type and cached. The `weave` struct
// tag controls how a field is presented:
//
//	Password string `weave:",redact"`      // value replaced by the mask
//	Token    string `weave:",redact=•••"`  // value replaced by a custom mask
//	Mother   string `weave:"Mom"`          // shown as "Mom"
//	cache    []byte `weave:"-"`            // never shown
//
// Types implementing Describer provide their properties themselves and are
// not reflected upon.
package introspect

import (
	"reflect"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"
	"unsafe"

	"github.com/cockroachdb/errors"
	"github.com/robinloom/weaver/internal/base"
	"github.com/robinloom/weaver/internal/classify"
)

// Property is a named value exposed by a Describer.
type Property struct {
	Name  string
	Value any
	// Redact replaces the value with Mask, or with the configured mask when
	// Mask is empty.
	Redact bool
	Mask   string
	// Err marks the property as inaccessible; its value is not shown.
	Err error
}

// Describer is implemented by types that enumerate their own properties.
type Describer interface {
	WeaveProperties() []Property
}

// Field is the static description of a property handed to sensitivity
// predicates.
type Field struct {
	// Name is the Go field name or the Describer property name.
	Name string
	// Tag is the name given by the `weave` tag, if any.
	Tag string
	// Type is the declared type of the field; nil for Describer properties
	// with a nil value.
	Type reflect.Type
}

// Config controls which properties are enumerated and how they are named.
type Config struct {
	// Included restricts the properties to the listed names, matched against
	// the Go field name or the tag name. Empty means all.
	Included []string
	// Excluded removes the listed names.
	Excluded []string
	// Inherited promotes the fields of embedded structs in place of a single
	// property named after the embedded type.
	Inherited bool
	// ExportedOnly skips unexported fields.
	ExportedOnly bool
	Capitalize   bool
	Alphabetical bool
	// Sensitive reports whether a property must be redacted. Nil disables
	// the check.
	Sensitive func(Field) bool
	Mask      string
}

// Entry is an enumerated property.
type Entry struct {
	// Name is the display name, after renaming and capitalization.
	Name string
	// Type is the declared type of the property.
	Type         reflect.Type
	Value        reflect.Value
	Redacted     bool
	Mask         string
	Inaccessible bool
}

// Properties enumerates the properties of the composite value c. A panic
// raised while enumerating (for example by a Describer) is returned as a
// *classify.Failure together with the properties collected before it.
func Properties(c classify.Value, cfg Config) (entries []Entry, err error) {
	if c.Kind != classify.Composite {
		return nil, errors.AssertionFailedf("properties of non-composite %s value", errors.Safe(c.Kind))
	}
	defer func() {
		if r := recover(); r != nil {
			err = &classify.Failure{Kind: classify.FailureKind(r), Cause: r}
		}
	}()
	v := c.V
	if d, ok := describer(v); ok {
		entries = described(d.WeaveProperties(), cfg)
	} else {
		if !v.CanAddr() {
			cp := reflect.New(v.Type()).Elem()
			cp.Set(v)
			v = cp
		}
		for _, f := range Describe(v.Type(), cfg.Inherited, cfg.ExportedOnly) {
			if !f.selected(cfg) {
				continue
			}
			entries = append(entries, f.entry(v, cfg))
		}
	}
	if cfg.Alphabetical {
		slices.SortStableFunc(entries, func(a, b Entry) int {
			return strings.Compare(a.Name, b.Name)
		})
	}
	return entries, nil
}

func describer(v reflect.Value) (Describer, bool) {
	if v.CanInterface() {
		if d, ok := v.Interface().(Describer); ok {
			return d, true
		}
	}
	if v.CanAddr() && v.Addr().CanInterface() {
		if d, ok := v.Addr().Interface().(Describer); ok {
			return d, true
		}
	}
	return nil, false
}

func described(props []Property, cfg Config) []Entry {
	entries := make([]Entry, 0, len(props))
	for _, p := range props {
		if !selected(cfg, p.Name, "") {
			continue
		}
		e := Entry{Name: displayName(p.Name, cfg), Value: reflect.ValueOf(p.Value)}
		if p.Value != nil {
			e.Type = reflect.TypeOf(p.Value)
		}
		switch {
		case p.Err != nil:
			e.Inaccessible = true
		case p.Redact:
			e.Redacted, e.Mask = true, maskOr(p.Mask, cfg.Mask)
		case cfg.Sensitive != nil && cfg.Sensitive(Field{Name: p.Name, Type: e.Type}):
			e.Redacted, e.Mask = true, maskOr("", cfg.Mask)
		}
		entries = append(entries, e)
	}
	return entries
}

func (f *FieldDesc) selected(cfg Config) bool {
	return selected(cfg, f.GoName, f.TagName)
}

func selected(cfg Config, name, tag string) bool {
	match := func(list []string) bool {
		return slices.Contains(list, name) || (tag != "" && slices.Contains(list, tag))
	}
	if match(cfg.Excluded) {
		return false
	}
	return len(cfg.Included) == 0 || match(cfg.Included)
}

func (f *FieldDesc) entry(parent reflect.Value, cfg Config) (e Entry) {
	e = Entry{Name: displayName(f.Name(), cfg), Type: f.Type}
	switch {
	case f.Redact:
		e.Redacted, e.Mask = true, maskOr(f.Mask, cfg.Mask)
		return e
	case cfg.Sensitive != nil && cfg.Sensitive(Field{Name: f.GoName, Tag: f.TagName, Type: f.Type}):
		e.Redacted, e.Mask = true, maskOr("", cfg.Mask)
		return e
	}
	defer func() {
		if r := recover(); r != nil {
			e.Value, e.Inaccessible = reflect.Value{}, true
		}
	}()
	fv, err := parent.FieldByIndexErr(f.Index)
	if err != nil {
		// Promoted through a nil embedded pointer.
		return e
	}
	if !fv.CanInterface() {
		fv = reflect.NewAt(fv.Type(), unsafe.Pointer(fv.UnsafeAddr())).Elem()
	}
	e.Value = fv
	return e
}

func maskOr(mask, def string) string {
	switch {
	case mask != "":
		return mask
	case def != "":
		return def
	default:
		return base.DefaultMask
	}
}

func displayName(name string, cfg Config) string {
	if cfg.Capitalize {
		return Capitalize(name)
	}
	return name
}

// Capitalize upper-cases the first letter of s.
func Capitalize(s string) string {
	r, n := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError || unicode.IsUpper(r) {
		return s
	}
	return string(unicode.ToUpper(r)) + s[n:]
}
