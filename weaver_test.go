// Copyright 2025 The Weaver Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package weaver

import (
	"fmt"
	"iter"
	"slices"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/cockroachdb/crlib/testutils/leaktest"
	"github.com/cockroachdb/datadriven"
	"github.com/cockroachdb/errors"
	"github.com/robinloom/weaver/internal/base"
	"github.com/robinloom/weaver/internal/testutils/indenttree"
	"github.com/stretchr/testify/require"
)

type date struct{ y, m, d int }

func (d date) MarshalText() ([]byte, error) {
	return []byte(fmt.Sprintf("%04d-%02d-%02d", d.y, d.m, d.d)), nil
}

type exploding int

func (exploding) String() string { panic("kaboom") }

type broken int

func (broken) String() string {
	var m map[string]int
	m["x"] = 1
	return ""
}

type Twin struct {
	name    string
	sibling *Twin
}

type Leaf struct{ V int }

type Stack struct{ items []any }

func (s *Stack) Len() int { return len(s.items) }

func (s *Stack) Elements() iter.Seq[any] { return slices.Values(s.items) }

// Locker describes itself; its second property cannot be read.
type Locker struct{}

func (Locker) WeaveProperties() []Property {
	return []Property{
		{Name: "ok", Value: 1},
		{Name: "locked", Err: errors.New("sealed")},
	}
}

var fixtures = map[string]func() any{
	"person": func() any {
		type Person struct {
			name     string
			birthday date
		}
		return Person{name: "John Doe", birthday: date{1990, 1, 1}}
	},
	"neighbors": func() any {
		type Person struct {
			name     string
			neighbor *Person
		}
		return &Person{name: "Jane", neighbor: &Person{name: "Peter"}}
	},
	"account": func() any {
		type Account struct {
			name     string
			password string `weave:"-"`
		}
		return Account{name: "John0815", password: "password"}
	},
	"twins": func() any {
		castor := &Twin{name: "Castor"}
		castor.sibling = &Twin{name: "Pollux", sibling: castor}
		return castor
	},
	"narcissus": func() any {
		t := &Twin{name: "Narcissus"}
		t.sibling = t
		return t
	},
	"diamond": func() any {
		type Diamond struct{ Left, Right *Leaf }
		l := &Leaf{V: 1}
		return Diamond{Left: l, Right: l}
	},
	"lists":   func() any { return [][]int{{1, 2}, {3}} },
	"numbers": func() any { return []int{1, 2, 3, 4, 5} },
	"vault": func() any {
		type Vault struct {
			Owner string
			Token string
			Inner *Leaf  `weave:",redact"`
			PIN   string `weave:"pin,redact=####"`
		}
		return Vault{Owner: "Alice", Token: "hunter2", Inner: &Leaf{V: 7}, PIN: "1234"}
	},
	"family": func() any {
		type Family struct {
			Mother string `weave:"Mom"`
			Kids   []string
			Pets   map[string]int
		}
		return Family{Mother: "Gina", Kids: []string{"Ann", "Bob"}, Pets: map[string]int{"dog": 1, "cat": 2}}
	},
	"gadget": func() any {
		type Gadget struct {
			Name  string
			Part  exploding
			Panel broken
		}
		return Gadget{Name: "radio"}
	},
	"stack":  func() any { return &Stack{items: []any{"a", 2, nil}} },
	"locker": func() any { return Locker{} },
	"grid": func() any {
		type Point struct{ X, Y int }
		return map[Point]string{{1, 2}: "a", {1, 3}: "b"}
	},
	"empty": func() any {
		type Empty struct{}
		return Empty{}
	},
	"scalar": func() any { return 42 },
	"nil":    func() any { return nil },
}

// parseWeaveArgs builds the mode and options of a "weave" command.
func parseWeaveArgs(t *testing.T, d *datadriven.TestData) (Mode, *Options, any) {
	var (
		mode    Mode
		opts    = &Options{}
		fixture func() any
		err     error
	)
	atoi := func(s string) int {
		n, err := strconv.Atoi(s)
		require.NoError(t, err)
		return n
	}
	for _, arg := range d.CmdArgs {
		switch arg.Key {
		case "mode":
			mode, err = ParseMode(arg.Vals[0])
			require.NoError(t, err)
		case "fixture":
			var ok bool
			fixture, ok = fixtures[arg.Vals[0]]
			require.True(t, ok, "unknown fixture %s", arg.Vals[0])
		case "max-depth":
			opts = opts.WithMaxDepth(atoi(arg.Vals[0]))
		case "max-sequence-length":
			opts = opts.WithMaxSequenceLength(atoi(arg.Vals[0]))
		case "global-length-limit":
			opts = opts.WithGlobalLengthLimit(atoi(arg.Vals[0]))
		case "include":
			opts.IncludedFields = arg.Vals
		case "exclude":
			opts.ExcludedFields = arg.Vals
		case "omit-class-name":
			opts.OmitClassName = true
		case "capitalize":
			opts.CapitalizeFields = true
		case "show-types":
			opts.ShowDataTypes = true
		case "alphabetical":
			opts.OrderFieldsAlphabetically = true
		case "reexpand":
			opts.ReexpandShared = true
		case "no-sensitivity":
			opts.DisableSensitivityDetection = true
		case "ascii":
			opts.Card.Box = ASCII
		default:
			t.Fatalf("unknown argument %s", arg.Key)
		}
	}
	require.NotNil(t, fixture, "fixture required")
	return mode, opts, fixture()
}

func TestWeave(t *testing.T) {
	defer leaktest.AfterTest(t)()

	datadriven.RunTest(t, "testdata/weave", func(t *testing.T, d *datadriven.TestData) string {
		switch d.Cmd {
		case "weave":
			mode, opts, v := parseWeaveArgs(t, d)
			w, err := New(mode, opts)
			if err != nil {
				return fmt.Sprintf("error: %s", err)
			}
			return w.Weave(v)

		default:
			t.Fatalf("unknown command: %s", d.Cmd)
			return ""
		}
	})
}

func TestLinearScenarios(t *testing.T) {
	require.Equal(t, "Person[name=John Doe, birthday=1990-01-01]", Weave(fixtures["person"]()))
	require.Equal(t, "Person[name=Jane, neighbor=Person[name=Peter, neighbor=null]]", Weave(fixtures["neighbors"]()))
	require.Equal(t, "Account[name=John0815]", Weave(fixtures["account"]()))
	require.NotEmpty(t, Weave(fixtures["twins"]()))
}

func TestRepeatedCallsAreIdempotent(t *testing.T) {
	for _, mode := range Modes() {
		t.Run(mode.String(), func(t *testing.T) {
			for _, name := range []string{"twins", "diamond", "family"} {
				v := fixtures[name]()
				require.Equal(t, WeaveMode(v, mode), WeaveMode(v, mode), name)
			}
		})
	}
}

func TestCyclesTerminate(t *testing.T) {
	type Ring struct {
		ID   int
		Next *Ring
	}
	for n := 1; n <= 3; n++ {
		ring := make([]*Ring, n)
		for i := range ring {
			ring[i] = &Ring{ID: i}
		}
		for i := range ring {
			ring[i].Next = ring[(i+1)%n]
		}
		for _, mode := range Modes() {
			out := MustNew(mode, DefaultOptions().WithMaxDepth(100)).Weave(ring[0])
			require.NotEmpty(t, out, "%d-cycle, %s", n, mode)
			require.Less(t, len(out), 2000, "%d-cycle, %s", n, mode)
		}
	}
}

func TestRedactionPrecedence(t *testing.T) {
	v := fixtures["vault"]()
	for _, mode := range Modes() {
		out := WeaveMode(v, mode)
		require.NotContains(t, out, "hunter2", mode)
		require.NotContains(t, out, "1234", mode)
		require.NotContains(t, out, "V=7", mode)
	}
}

func TestNullFieldsOmitted(t *testing.T) {
	v := fixtures["neighbors"]()
	require.NotContains(t, WeaveMode(v, Tree), "null")
	require.NotContains(t, WeaveMode(v, Bullet), "null")
	require.Contains(t, WeaveMode(v, Inline), "neighbor=null")
}

// TestTreeAndBulletAgree checks that both hierarchical machines lay out the
// same tree.
func TestTreeAndBulletAgree(t *testing.T) {
	treeGlyphs := strings.NewReplacer("|-- ", "    ", "`-- ", "    ", "|   ", "    ")
	for _, name := range []string{"person", "neighbors", "twins", "family", "lists", "diamond"} {
		v := fixtures[name]()
		tree, err := indenttree.Parse(treeGlyphs.Replace(WeaveMode(v, Tree)))
		require.NoError(t, err, name)
		bullet, err := indenttree.Parse(WeaveMode(v, Bullet))
		require.NoError(t, err, name)
		require.Equal(t,
			indenttree.Format(tree, nil),
			indenttree.Format(bullet, func(s string) string { return strings.TrimPrefix(s, "- ") }),
			name)
	}
}

func TestFailureIsLogged(t *testing.T) {
	var log base.InMemLogger
	w := MustNew(Inline, DefaultOptions().WithLogger(&log))
	require.Equal(t, "Gadget[Name=radio, Part=[ERROR] panic, Panel=[ERROR] RuntimeError]", w.Weave(fixtures["gadget"]()))
	require.Contains(t, log.String(), "weaver: recovered panic: kaboom\n")
	require.Contains(t, log.String(), "weaver: recovered RuntimeError: assignment to entry in nil map\n")
}

func TestConcurrentWeave(t *testing.T) {
	defer leaktest.AfterTest(t)()

	w := MustNew(Tree, nil)
	v := fixtures["twins"]()
	want := w.Weave(v)
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				if got := w.Weave(v); got != want {
					t.Errorf("got %q, want %q", got, want)
					return
				}
			}
		}()
	}
	wg.Wait()
}

func TestNewInvalid(t *testing.T) {
	_, err := New(Mode(42), nil)
	require.Error(t, err)
	_, err = New(Inline, &Options{MaxDepth: -1})
	require.ErrorContains(t, err, "MaxDepth (-1) must be >= 0")
	require.Panics(t, func() { MustNew(Inline, &Options{GlobalLengthLimit: -1}) })
}

func TestParseMode(t *testing.T) {
	for _, m := range Modes() {
		got, err := ParseMode(strings.ToUpper(m.String()))
		require.NoError(t, err)
		require.Equal(t, m, got)
	}
	m, err := ParseMode("multiline_verbose")
	require.NoError(t, err)
	require.Equal(t, MultilineVerbose, m)
	_, err = ParseMode("sideways")
	require.Error(t, err)
	require.Equal(t, "unknown", Mode(-1).String())
}

func TestCustomGlyphs(t *testing.T) {
	tree := MustNew(Tree, DefaultOptions().WithBranchChars('+', '\\'))
	require.Equal(t, "Twin\n+-- name=Castor\n\\-- sibling\n    +-- name=Pollux\n    \\-- sibling", tree.Weave(fixtures["twins"]()))

	bullet := MustNew(Bullet, DefaultOptions().WithBulletChars('*', 'o', '.'))
	require.Equal(t, "Person\n * name=Jane\n * neighbor\n   o name=Peter", bullet.Weave(fixtures["neighbors"]()))
}
