// Copyright 2025 The Weaver Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package weaver

import (
	"github.com/robinloom/weaver/internal/ascii"
	"github.com/robinloom/weaver/internal/base"
	"github.com/robinloom/weaver/internal/classify"
	"github.com/robinloom/weaver/internal/introspect"
)

// Property is a named value exposed by a Describer.
type Property = introspect.Property

// Describer is implemented by types that enumerate their own properties
// instead of having their fields reflected upon.
type Describer = introspect.Describer

// Container is implemented by types that are woven as a sequence of
// elements rather than by their fields.
type Container = classify.Container

// BoxChars is the set of runes used to draw cards.
type BoxChars = ascii.BoxChars

var (
	// UnicodeLight draws cards with light, rounded box-drawing characters.
	UnicodeLight = ascii.UnicodeLight
	// ASCII draws cards with plain ASCII characters.
	ASCII = ascii.ASCII
)

// Logger defines an interface for writing log messages.
type Logger = base.Logger

// DefaultLogger logs to the Go stdlib logs.
type DefaultLogger = base.DefaultLogger

// NoopLogger does nothing.
type NoopLogger = base.NoopLogger
