// Copyright 2025 The Weaver Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package base defines the small set of types shared by the weaving machines
// and the internal packages that feed them: the Logger used to report
// recovered failures and the placeholders rendered in place of values that
// could not be read or stringified.
package base
