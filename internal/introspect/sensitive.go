// Copyright 2025 The Weaver Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package introspect

import (
	"reflect"
	"strings"
)

var sensitiveNames = map[string]struct{}{
	"password":   {},
	"passwd":     {},
	"pwd":        {},
	"secret":     {},
	"token":      {},
	"apikey":     {},
	"privatekey": {},
}

var (
	bytesType = reflect.TypeOf([]byte(nil))
	runesType = reflect.TypeOf([]rune(nil))
)

// DefaultSensitive reports whether a property likely holds a credential.
// Names are compared case-insensitively with underscores and dashes removed,
// so "api_key", "APIKey" and "apiKey" all match. Raw byte and rune slices
// are always considered sensitive.
func DefaultSensitive(f Field) bool {
	if f.Type == bytesType || f.Type == runesType {
		return true
	}
	return sensitiveName(f.Name) || (f.Tag != "" && sensitiveName(f.Tag))
}

func sensitiveName(name string) bool {
	n := strings.ToLower(name)
	n = strings.NewReplacer("_", "", "-", "").Replace(n)
	_, ok := sensitiveNames[n]
	return ok
}
