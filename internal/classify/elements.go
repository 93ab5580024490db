// Copyright 2025 The Weaver Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package classify

import (
	"cmp"
	"fmt"
	"iter"
	"reflect"
	"slices"
	"strconv"
	"strings"
)

// Element is one entry of a Sequence value.
type Element struct {
	Index int
	// Key is the rendered map key; empty for slices, arrays and containers.
	Key   string
	Keyed bool
	Value reflect.Value
	// Prefix is the label prefix shown before the element: "[i] " for slices
	// and arrays, "(i) " for containers and "(key) " for maps.
	Prefix string
}

// Len returns the number of elements of a Sequence value.
func (c Value) Len() int {
	if c.Kind != Sequence {
		return 0
	}
	if s, ok := container(c.V); ok {
		return s.Len()
	}
	return c.V.Len()
}

// Elements returns an iterator over the elements of a Sequence value. Map
// entries are produced in key order.
func (c Value) Elements() iter.Seq[Element] {
	return func(yield func(Element) bool) {
		if c.Kind != Sequence {
			return
		}
		if s, ok := container(c.V); ok {
			i := 0
			for x := range s.Elements() {
				e := Element{Index: i, Value: reflect.ValueOf(x), Prefix: "(" + strconv.Itoa(i) + ") "}
				if !yield(e) {
					return
				}
				i++
			}
			return
		}
		v := c.V
		switch v.Kind() {
		case reflect.Map:
			for i, k := range SortedKeys(v) {
				key := KeyString(k)
				e := Element{Index: i, Key: key, Keyed: true, Value: v.MapIndex(k), Prefix: "(" + key + ") "}
				if !yield(e) {
					return
				}
			}
		case reflect.Slice, reflect.Array:
			for i := 0; i < v.Len(); i++ {
				e := Element{Index: i, Value: v.Index(i), Prefix: "[" + strconv.Itoa(i) + "] "}
				if !yield(e) {
					return
				}
			}
		}
	}
}

func container(v reflect.Value) (Container, bool) {
	if !v.CanInterface() {
		return nil, false
	}
	s, ok := v.Interface().(Container)
	return s, ok
}

// KeyString renders a map key. Keys that cannot be stringified render as
// their failure placeholder. Struct keys render inline with their fields,
// as in Point[X=1, Y=2], and array keys as [a, b].
func KeyString(k reflect.Value) string {
	var b strings.Builder
	writeKey(&b, k, 0)
	return b.String()
}

// maxKeyDepth bounds the nesting rendered for a composite key; pointers
// inside keys may lead back to the key itself.
const maxKeyDepth = 4

func writeKey(b *strings.Builder, k reflect.Value, depth int) {
	c := Of(k)
	switch {
	case c.Kind == Composite:
		b.WriteString(TypeName(c.V.Type()))
		b.WriteByte('[')
		if depth < maxKeyDepth {
			for i := 0; i < c.V.NumField(); i++ {
				if i > 0 {
					b.WriteString(", ")
				}
				b.WriteString(c.V.Type().Field(i).Name)
				b.WriteByte('=')
				writeKey(b, c.V.Field(i), depth+1)
			}
		}
		b.WriteByte(']')
		return
	case c.Kind == Sequence && c.V.Kind() == reflect.Array:
		b.WriteByte('[')
		if depth < maxKeyDepth {
			for i := 0; i < c.V.Len(); i++ {
				if i > 0 {
					b.WriteString(", ")
				}
				writeKey(b, c.V.Index(i), depth+1)
			}
		}
		b.WriteByte(']')
		return
	}
	s, err := String(c)
	if err != nil {
		s = err.Error()
	}
	b.WriteString(s)
}

// SortedKeys returns the keys of the map m in a deterministic order: numbers
// numerically, strings lexically and anything else by its printed form.
func SortedKeys(m reflect.Value) []reflect.Value {
	keys := m.MapKeys()
	slices.SortStableFunc(keys, compareKeys)
	return keys
}

func compareKeys(a, b reflect.Value) int {
	for a.Kind() == reflect.Interface && !a.IsNil() {
		a = a.Elem()
	}
	for b.Kind() == reflect.Interface && !b.IsNil() {
		b = b.Elem()
	}
	if a.Kind() != b.Kind() {
		return cmp.Compare(a.Kind(), b.Kind())
	}
	switch a.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return cmp.Compare(a.Int(), b.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return cmp.Compare(a.Uint(), b.Uint())
	case reflect.Float32, reflect.Float64:
		return cmp.Compare(a.Float(), b.Float())
	case reflect.String:
		return strings.Compare(a.String(), b.String())
	case reflect.Bool:
		switch {
		case a.Bool() == b.Bool():
			return 0
		case !a.Bool():
			return -1
		default:
			return 1
		}
	}
	if a.CanInterface() && b.CanInterface() {
		return strings.Compare(fmt.Sprint(a.Interface()), fmt.Sprint(b.Interface()))
	}
	return 0
}
