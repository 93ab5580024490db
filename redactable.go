// Copyright 2025 The Weaver Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package weaver

import "github.com/cockroachdb/redact"

// WeaveRedactable renders v like a Weaver of the given mode would, with the
// textual form of every leaf value enclosed in redaction markers. Class
// names, property names, masks and structural characters are left
// unmarked, so redact.RedactableString.Redact keeps the shape of the value
// while hiding its data.
//
// Card output is marked as a whole: markers inside the box would break the
// alignment of its rows.
func WeaveRedactable(v any, mode Mode, opts *Options) (redact.RedactableString, error) {
	o, err := prepare(mode, opts)
	if err != nil {
		return "", err
	}
	if mode == Card {
		return redact.Sprint(newWeaver(mode, o, nil).Weave(v)), nil
	}
	return redact.RedactableString(newWeaver(mode, o, markUnsafe).Weave(v)), nil
}

func markUnsafe(s string) string {
	return string(redact.Sprint(s))
}
