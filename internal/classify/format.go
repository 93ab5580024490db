// Copyright 2025 The Weaver Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package classify

import (
	"encoding"
	"fmt"
	"reflect"
	"runtime"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/redact"
	"github.com/robinloom/weaver/internal/base"
)

// Failure is returned by String when producing the textual form of a value
// panicked or returned an error.
type Failure struct {
	// Kind is the short name of the failure, see FailureKind.
	Kind  string
	Cause interface{}
}

// Error returns the placeholder rendered in place of the value.
func (f *Failure) Error() string {
	return base.ErrorPlaceholder(f.Kind)
}

// FailureKind names the cause of a failure: "RuntimeError" for runtime
// panics, the short type name of the root cause for errors and "panic" for
// anything else.
func FailureKind(r interface{}) string {
	switch x := r.(type) {
	case runtime.Error:
		return "RuntimeError"
	case error:
		return strings.TrimLeft(TypeName(reflect.TypeOf(errors.UnwrapAll(x))), "*")
	default:
		return "panic"
	}
}

// Report logs the cause of a failure returned by String or by property
// enumeration. A nil logger discards it.
func Report(l base.Logger, err error) {
	if l == nil {
		return
	}
	var f *Failure
	if errors.As(err, &f) {
		l.Errorf("weaver: recovered %s: %v", f.Kind, f.Cause)
		return
	}
	l.Errorf("weaver: %v", err)
}

// String returns the textual form of a Null, Opaque or Scalar value. For
// sequences and composites it returns the type name. Panics raised by user
// methods are recovered and returned as a *Failure.
func String(c Value) (s string, err error) {
	defer func() {
		if r := recover(); r != nil {
			s, err = "", &Failure{Kind: FailureKind(r), Cause: r}
		}
	}()
	switch c.Kind {
	case Null:
		return base.Null, nil
	case Scalar:
		return scalar(c.V), nil
	case Opaque:
		return opaque(c.V)
	default:
		return TypeName(c.V.Type()), nil
	}
}

func opaque(v reflect.Value) (string, error) {
	if v.CanInterface() {
		switch x := v.Interface().(type) {
		case error:
			return x.Error(), nil
		case redact.SafeFormatter:
			return redact.StringWithoutMarkers(x), nil
		case encoding.TextMarshaler:
			b, err := x.MarshalText()
			if err != nil {
				return "", &Failure{Kind: FailureKind(err), Cause: err}
			}
			return string(b), nil
		case fmt.Stringer:
			return x.String(), nil
		}
	}
	switch v.Kind() {
	case reflect.Func, reflect.Chan, reflect.UnsafePointer:
		return TypeName(v.Type()), nil
	}
	if v.CanInterface() {
		return fmt.Sprint(v.Interface()), nil
	}
	return TypeName(v.Type()), nil
}

func scalar(v reflect.Value) string {
	switch v.Kind() {
	case reflect.Bool:
		return strconv.FormatBool(v.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(v.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(v.Uint(), 10)
	case reflect.Float32:
		return strconv.FormatFloat(v.Float(), 'g', -1, 32)
	case reflect.Float64:
		return strconv.FormatFloat(v.Float(), 'g', -1, 64)
	case reflect.Complex64:
		return strconv.FormatComplex(v.Complex(), 'g', -1, 64)
	case reflect.Complex128:
		return strconv.FormatComplex(v.Complex(), 'g', -1, 128)
	case reflect.String:
		return v.String()
	}
	return TypeName(v.Type())
}
