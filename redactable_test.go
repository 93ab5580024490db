// Copyright 2025 The Weaver Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package weaver

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWeaveRedactable(t *testing.T) {
	s, err := WeaveRedactable(fixtures["person"](), Inline, nil)
	require.NoError(t, err)
	require.Equal(t, "Person[name=‹John Doe›, birthday=‹1990-01-01›]", string(s))
	require.Equal(t, "Person[name=‹×›, birthday=‹×›]", string(s.Redact()))
	require.Equal(t, "Person[name=John Doe, birthday=1990-01-01]", s.StripMarkers())

	s, err = WeaveRedactable(fixtures["neighbors"](), Tree, nil)
	require.NoError(t, err)
	require.Equal(t, "Person\n|-- name=‹×›\n`-- neighbor\n    `-- name=‹×›", string(s.Redact()))

	s, err = WeaveRedactable(fixtures["vault"](), Inline, nil)
	require.NoError(t, err)
	require.Equal(t, "Vault[Owner=‹×›, Token=***, Inner=***, pin=####]", string(s.Redact()))

	s, err = WeaveRedactable(fixtures["person"](), Card, nil)
	require.NoError(t, err)
	require.NotContains(t, string(s.Redact()), "John Doe")
	require.Equal(t, WeaveMode(fixtures["person"](), Card), s.StripMarkers())

	_, err = WeaveRedactable(nil, Mode(9), nil)
	require.Error(t, err)
}
