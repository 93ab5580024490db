// Copyright 2025 The Weaver Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package classify decides how a value participates in weaving. Every value
// falls into exactly one Kind:
//
//   - Null: nil pointers, interfaces, maps, slices, funcs and chans.
//   - Opaque: values rendered through their own short textual form and never
//     traversed. These are the types declared by the standard library, errors,
//     encoding.TextMarshaler and redact.SafeFormatter implementations, named
//     basic types with a String method (enums), funcs and chans.
//   - Scalar: booleans, numbers and strings, rendered as literals.
//   - Sequence: slices, arrays, maps and Container implementations.
//   - Composite: structs, traversed field by field.
//
// Pointers and interfaces are looked through. Method based checks are made at
// every level of indirection so that pointer receivers are honored.
package classify

import (
	"encoding"
	"fmt"
	"iter"
	"reflect"

	"github.com/cockroachdb/redact"
)

// Kind is the weaving category of a value.
type Kind int8

const (
	// Null is a nil value.
	Null Kind = iota
	// Opaque is a value rendered through its own textual form.
	Opaque
	// Scalar is a basic value rendered as a literal.
	Scalar
	// Sequence is an ordered or keyed group of elements.
	Sequence
	// Composite is a value with named properties.
	Composite
)

var kindNames = [...]string{
	Null:      "null",
	Opaque:    "opaque",
	Scalar:    "scalar",
	Sequence:  "sequence",
	Composite: "composite",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", int8(k))
}

// Container is implemented by user types that hold elements and want to be
// woven as a sequence rather than by their fields.
type Container interface {
	Len() int
	Elements() iter.Seq[any]
}

// Identity identifies a referenced value by address and type. Two values
// with equal identities are the same object; values reached without a
// reference (for example a struct stored inline in its parent) have the zero
// Identity.
type Identity struct {
	addr uintptr
	typ  reflect.Type
	n    int
}

// IsZero returns true if the identity does not refer to any object.
func (id Identity) IsZero() bool {
	return id.typ == nil
}

// Value is a classified value.
type Value struct {
	Kind Kind
	// V is the value the classification was decided on. For composites this
	// is the struct itself; for opaque values and containers matched through a
	// pointer receiver it is the pointer.
	V reflect.Value
	// ID is the identity of the innermost reference traversed to reach V.
	ID Identity
}

// Of classifies v.
func Of(v reflect.Value) Value {
	var id Identity
	for v.IsValid() && (v.Kind() == reflect.Interface || v.Kind() == reflect.Pointer) {
		if v.IsNil() {
			return Value{Kind: Null}
		}
		if v.Kind() == reflect.Pointer {
			id = Identity{addr: v.Pointer(), typ: v.Type()}
			if k, ok := byMethods(v); ok {
				return Value{Kind: k, V: v, ID: id}
			}
		}
		v = v.Elem()
	}
	if !v.IsValid() {
		return Value{Kind: Null}
	}
	switch v.Kind() {
	case reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.UnsafePointer:
		if v.IsNil() {
			return Value{Kind: Null}
		}
	}
	if k, ok := byMethods(v); ok {
		return Value{Kind: k, V: v, ID: id}
	}
	if v.CanAddr() {
		if k, ok := byMethods(v.Addr()); ok {
			return Value{Kind: k, V: v.Addr(), ID: id}
		}
	}
	if IsStdType(v.Type()) {
		return Value{Kind: Opaque, V: v, ID: id}
	}
	switch v.Kind() {
	case reflect.Map:
		return Value{Kind: Sequence, V: v, ID: Identity{addr: v.Pointer(), typ: v.Type()}}
	case reflect.Slice:
		return Value{Kind: Sequence, V: v, ID: Identity{addr: v.Pointer(), typ: v.Type(), n: v.Len()}}
	case reflect.Array:
		return Value{Kind: Sequence, V: v, ID: id}
	case reflect.Struct:
		return Value{Kind: Composite, V: v, ID: id}
	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		return Value{Kind: Scalar, V: v, ID: id}
	default:
		return Value{Kind: Opaque, V: v, ID: id}
	}
}

// OfAny classifies an arbitrary value.
func OfAny(x any) Value {
	return Of(reflect.ValueOf(x))
}

func byMethods(v reflect.Value) (Kind, bool) {
	if !v.CanInterface() {
		return 0, false
	}
	switch v.Interface().(type) {
	case error, redact.SafeFormatter, encoding.TextMarshaler:
		return Opaque, true
	case Container:
		return Sequence, true
	case fmt.Stringer:
		if isBasic(indirect(v.Type()).Kind()) {
			return Opaque, true
		}
	}
	return 0, false
}

func isBasic(k reflect.Kind) bool {
	switch k {
	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		return true
	}
	return false
}

func indirect(t reflect.Type) reflect.Type {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}
