// Copyright 2025 The Weaver Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package introspect

import (
	"fmt"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/kr/pretty"
	"github.com/robinloom/weaver/internal/classify"
	"github.com/stretchr/testify/require"
)

type entity struct {
	ID int
}

type account struct {
	entity
	Name     string
	Password string
	Mother   string `weave:"Mom"`
	PIN      int    `weave:",redact=####"`
	Note     string `weave:",redact"`
	cache    []int  `weave:"-"`
	balance  int
}

type node struct {
	*entity
	Label string
}

type selfDescribed struct{}

func (selfDescribed) WeaveProperties() []Property {
	return []Property{
		{Name: "visible", Value: 1},
		{Name: "hidden", Value: 2, Redact: true},
		{Name: "broken", Err: errors.New("no access")},
		{Name: "token", Value: "abc"},
	}
}

type panicDescriber struct{}

func (panicDescriber) WeaveProperties() []Property { panic("describe") }

// summarize renders entries one per line as name=value, using the markers
// the weaving machines substitute.
func summarize(entries []Entry) string {
	var b strings.Builder
	for _, e := range entries {
		fmt.Fprintf(&b, "%s=", e.Name)
		switch {
		case e.Redacted:
			b.WriteString(e.Mask)
		case e.Inaccessible:
			b.WriteString("[?]")
		default:
			s, err := classify.String(classify.Of(e.Value))
			if err != nil {
				s = err.Error()
			}
			b.WriteString(s)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func testAccount() account {
	return account{
		entity:   entity{ID: 7},
		Name:     "John0815",
		Password: "hunter2",
		Mother:   "Gina",
		PIN:      1234,
		Note:     "private",
		cache:    []int{1},
		balance:  42,
	}
}

func TestProperties(t *testing.T) {
	cfg := Config{Sensitive: DefaultSensitive}
	entries, err := Properties(classify.OfAny(testAccount()), cfg)
	require.NoError(t, err)
	// The embedded struct is a composite property of its own.
	require.Equal(t, "entity", entries[0].Name)
	require.Equal(t, classify.Composite, classify.Of(entries[0].Value).Kind)
	require.Equal(t, `Name=John0815
Password=***
Mom=Gina
PIN=####
Note=***
balance=42
`, summarize(entries[1:]))
}

func TestPropertiesInherited(t *testing.T) {
	cfg := Config{Inherited: true, ExportedOnly: true, Sensitive: DefaultSensitive, Mask: "<hidden>"}
	entries, err := Properties(classify.OfAny(testAccount()), cfg)
	require.NoError(t, err)
	require.Equal(t, `ID=7
Name=John0815
Password=<hidden>
Mom=Gina
PIN=####
Note=<hidden>
`, summarize(entries))
}

func TestPropertiesNilEmbeddedPointer(t *testing.T) {
	entries, err := Properties(classify.OfAny(&node{Label: "x"}), Config{Inherited: true})
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, "ID", entries[0].Name)
	require.Equal(t, classify.Null, classify.Of(entries[0].Value).Kind)
	require.Equal(t, "Label", entries[1].Name)
}

func TestPropertiesFiltering(t *testing.T) {
	a := classify.OfAny(testAccount())
	testCases := []struct {
		cfg    Config
		expect string
	}{
		{Config{Included: []string{"Name", "Mom"}}, "Name=John0815\nMom=Gina\n"},
		{Config{Included: []string{"Mother"}}, "Mom=Gina\n"},
		{Config{Excluded: []string{"entity", "Password", "PIN", "Note", "balance"}}, "Name=John0815\nMom=Gina\n"},
		{
			Config{Included: []string{"Name", "Mom", "balance"}, Alphabetical: true, Capitalize: true},
			"Balance=42\nMom=Gina\nName=John0815\n",
		},
		{Config{Included: []string{"Name"}, Excluded: []string{"Name"}}, ""},
	}
	for i, tc := range testCases {
		t.Run(fmt.Sprint(i), func(t *testing.T) {
			entries, err := Properties(a, tc.cfg)
			require.NoError(t, err)
			require.Equal(t, tc.expect, summarize(entries))
		})
	}
}

func TestPropertiesDescriber(t *testing.T) {
	entries, err := Properties(classify.OfAny(selfDescribed{}), Config{Sensitive: DefaultSensitive})
	require.NoError(t, err)
	require.Equal(t, "visible=1\nhidden=***\nbroken=[?]\ntoken=***\n", summarize(entries))

	_, err = Properties(classify.OfAny(panicDescriber{}), Config{})
	require.Error(t, err)
	require.Equal(t, "[ERROR] panic", err.Error())
}

func TestPropertiesNonComposite(t *testing.T) {
	_, err := Properties(classify.OfAny(3), Config{})
	require.Error(t, err)
}

func TestDescribeCached(t *testing.T) {
	typ := classify.OfAny(account{}).V.Type()
	a := Describe(typ, false, false)
	b := Describe(typ, false, false)
	require.Same(t, &a[0], &b[0])
	if diff := pretty.Diff(a[3], FieldDesc{
		Index:   []int{3},
		GoName:  "Mother",
		TagName: "Mom",
		Type:    a[3].Type,
	}); len(diff) > 0 {
		t.Fatalf("unexpected descriptor:\n%s", strings.Join(diff, "\n"))
	}
}

func TestParseTag(t *testing.T) {
	require.Equal(t, weaveTag{ignore: true}, parseTag("-"))
	require.Equal(t, weaveTag{name: "Mom"}, parseTag("Mom"))
	require.Equal(t, weaveTag{redact: true}, parseTag(",redact"))
	require.Equal(t, weaveTag{name: "pin", redact: true, mask: "•"}, parseTag("pin,redact=•"))
	require.Equal(t, weaveTag{}, parseTag(""))
}

func TestDefaultSensitive(t *testing.T) {
	for _, name := range []string{"password", "Password", "PWD", "api_key", "APIKey", "privateKey", "secret", "token"} {
		require.True(t, DefaultSensitive(Field{Name: name}), name)
	}
	for _, name := range []string{"name", "tokens", "passage"} {
		require.False(t, DefaultSensitive(Field{Name: name}), name)
	}
	require.True(t, DefaultSensitive(Field{Name: "data", Type: bytesType}))
	require.True(t, DefaultSensitive(Field{Name: "x", Tag: "secret"}))
}

func TestCapitalize(t *testing.T) {
	require.Equal(t, "Name", Capitalize("name"))
	require.Equal(t, "Name", Capitalize("Name"))
	require.Equal(t, "", Capitalize(""))
	require.Equal(t, "Éclair", Capitalize("éclair"))
}
