// Copyright 2025 The Weaver Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package main

import (
	"maps"
	"slices"

	"github.com/robinloom/weaver"
)

// Object is a decoded JSON object. It describes itself so that it is woven
// as a composite rather than as a map.
type Object struct {
	props []weaver.Property
}

// WeaveProperties implements weaver.Describer.
func (o *Object) WeaveProperties() []weaver.Property {
	return o.props
}

// document converts a decoded JSON value so that objects become *Object.
func document(v any) any {
	switch x := v.(type) {
	case map[string]any:
		o := &Object{props: make([]weaver.Property, 0, len(x))}
		for _, k := range slices.Sorted(maps.Keys(x)) {
			o.props = append(o.props, weaver.Property{Name: k, Value: document(x[k])})
		}
		return o
	case []any:
		out := make([]any, len(x))
		for i := range x {
			out[i] = document(x[i])
		}
		return out
	default:
		return v
	}
}
