// Copyright 2025 The Weaver Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package classify

import (
	"reflect"
	"strings"
)

// TypeName returns the name of t with every package qualifier removed, for
// example "Person", "[]Person", "map[string]*Person" or "Box[Person]".
func TypeName(t reflect.Type) string {
	if t == nil {
		return "nil"
	}
	return stripQualifiers(t.String())
}

// ClassName returns the header under which a composite or sequence value is
// shown. Unnamed maps are called "map".
func ClassName(c Value) string {
	if !c.V.IsValid() {
		return "null"
	}
	t := indirect(c.V.Type())
	if t.Kind() == reflect.Map && t.Name() == "" {
		return "map"
	}
	return TypeName(t)
}

// IsStdType returns true if t is a named type declared by the standard
// library. Standard library import paths have no dot in their first element.
func IsStdType(t reflect.Type) bool {
	pkg := t.PkgPath()
	if pkg == "" || pkg == "main" {
		return false
	}
	first, _, _ := strings.Cut(pkg, "/")
	return !strings.Contains(first, ".")
}

func stripQualifiers(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	start := -1
	flush := func(end int) {
		word := s[start:end]
		var variadic bool
		if strings.HasPrefix(word, "...") {
			variadic, word = true, word[3:]
		}
		if i := strings.LastIndexByte(word, '.'); i >= 0 {
			word = word[i+1:]
		}
		if variadic {
			b.WriteString("...")
		}
		b.WriteString(word)
	}
	for i := 0; i < len(s); i++ {
		if isWordByte(s[i]) {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			flush(i)
			start = -1
		}
		b.WriteByte(s[i])
	}
	if start >= 0 {
		flush(len(s))
	}
	return b.String()
}

func isWordByte(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	case c == '_', c == '.', c == '/', c == '-', c >= 0x80:
		return true
	}
	return false
}
