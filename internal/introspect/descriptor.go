// Copyright 2025 The Weaver Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package introspect

import (
	"reflect"
	"slices"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/robinloom/weaver/internal/classify"
)

// FieldDesc describes a struct field as seen by the weaving machines. It is
// derived from the struct type and its tags only.
type FieldDesc struct {
	// Index is the index sequence for reflect.Value.FieldByIndex.
	Index   []int
	GoName  string
	TagName string
	Type    reflect.Type
	Redact  bool
	Mask    string
}

// Name returns the tag name if set and the Go field name otherwise.
func (f *FieldDesc) Name() string {
	if f.TagName != "" {
		return f.TagName
	}
	return f.GoName
}

type descKey struct {
	typ          reflect.Type
	inherited    bool
	exportedOnly bool
}

// descCacheSize bounds the number of struct types whose descriptors are
// retained.
const descCacheSize = 1024

var descCache = func() *lru.Cache[descKey, []FieldDesc] {
	c, err := lru.New[descKey, []FieldDesc](descCacheSize)
	if err != nil {
		panic(err)
	}
	return c
}()

// Describe returns the descriptors of the visible fields of the struct type
// t in declaration order. Fields tagged `weave:"-"` are omitted. The result
// is cached and must not be modified.
func Describe(t reflect.Type, inherited, exportedOnly bool) []FieldDesc {
	key := descKey{typ: t, inherited: inherited, exportedOnly: exportedOnly}
	if d, ok := descCache.Get(key); ok {
		return d
	}
	var out []FieldDesc
	var walk func(t reflect.Type, index []int)
	walk = func(t reflect.Type, index []int) {
		for i := 0; i < t.NumField(); i++ {
			sf := t.Field(i)
			tag := parseTag(sf.Tag.Get("weave"))
			if tag.ignore {
				continue
			}
			idx := append(slices.Clone(index), i)
			if inherited && sf.Anonymous && tag.name == "" {
				if et := embeddedStruct(sf.Type); et != nil {
					walk(et, idx)
					continue
				}
			}
			if exportedOnly && !sf.IsExported() {
				continue
			}
			out = append(out, FieldDesc{
				Index:   idx,
				GoName:  sf.Name,
				TagName: tag.name,
				Type:    sf.Type,
				Redact:  tag.redact,
				Mask:    tag.mask,
			})
		}
	}
	walk(t, nil)
	descCache.Add(key, out)
	return out
}

// embeddedStruct returns the struct type promoted by an embedded field of
// type t, or nil if the field is not a traversable struct.
func embeddedStruct(t reflect.Type) reflect.Type {
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct || classify.IsStdType(t) {
		return nil
	}
	return t
}

type weaveTag struct {
	name   string
	ignore bool
	redact bool
	mask   string
}

func parseTag(s string) weaveTag {
	if s == "-" {
		return weaveTag{ignore: true}
	}
	name, opts, _ := strings.Cut(s, ",")
	tag := weaveTag{name: name}
	for opts != "" {
		var opt string
		opt, opts, _ = strings.Cut(opts, ",")
		switch {
		case opt == "redact":
			tag.redact = true
		case strings.HasPrefix(opt, "redact="):
			tag.redact, tag.mask = true, strings.TrimPrefix(opt, "redact=")
		case opt == "ignore":
			tag.ignore = true
		}
	}
	return tag
}
