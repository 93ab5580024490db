// Copyright 2025 The Weaver Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package base

import "strconv"

const (
	// Null is rendered for nil values.
	Null = "null"
	// Inaccessible is rendered for properties whose value could not be read.
	Inaccessible = "[?]"
	// DefaultMask replaces the value of redacted properties.
	DefaultMask = "***"
)

// ErrorPlaceholder returns the text rendered in place of a value whose
// stringification failed with a failure of the given kind.
func ErrorPlaceholder(kind string) string {
	return "[ERROR] " + kind
}

// More returns the marker appended to a sequence that was cut after its
// first elements; n is the number of omitted elements.
func More(n int) string {
	return strconv.Itoa(n) + " more"
}
