// Copyright 2025 The Weaver Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package weaver

import (
	"bytes"
	"fmt"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/cockroachdb/errors"
	"github.com/robinloom/weaver/internal/ascii"
)

// optionKeys lists the keys of every section, in the order String writes
// them.
var optionKeys = []struct {
	section string
	keys    []string
}{
	{"Options", []string{
		"max_depth",
		"max_sequence_length",
		"global_length_limit",
		"included_fields",
		"excluded_fields",
		"omit_class_name",
		"capitalize_fields",
		"show_data_types",
		"show_inherited_fields",
		"order_fields_alphabetically",
		"exported_fields_only",
		"reexpand_shared",
		"sensitivity_detection",
		"mask",
	}},
	{"Linear", []string{
		"class_name_prefix",
		"class_name_suffix",
		"class_name_fields_separator",
		"field_value_separator",
		"field_separator",
		"global_suffix",
	}},
	{"Tree", []string{"branch_char", "last_branch_char"}},
	{"Bullet", []string{"first_level_char", "second_level_char", "deeper_level_char", "indentation"}},
	{"Card", []string{"box"}},
}

// String returns the options in an INI-like format that Parse accepts.
// Sensitive, Logger and Metrics cannot be serialized and are omitted.
func (o *Options) String() string {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "[Options]\n")
	fmt.Fprintf(&buf, "  max_depth=%d\n", o.MaxDepth)
	fmt.Fprintf(&buf, "  max_sequence_length=%d\n", o.MaxSequenceLength)
	fmt.Fprintf(&buf, "  global_length_limit=%d\n", o.GlobalLengthLimit)
	fmt.Fprintf(&buf, "  included_fields=%s\n", strings.Join(o.IncludedFields, ","))
	fmt.Fprintf(&buf, "  excluded_fields=%s\n", strings.Join(o.ExcludedFields, ","))
	fmt.Fprintf(&buf, "  omit_class_name=%t\n", o.OmitClassName)
	fmt.Fprintf(&buf, "  capitalize_fields=%t\n", o.CapitalizeFields)
	fmt.Fprintf(&buf, "  show_data_types=%t\n", o.ShowDataTypes)
	fmt.Fprintf(&buf, "  show_inherited_fields=%t\n", o.ShowInheritedFields)
	fmt.Fprintf(&buf, "  order_fields_alphabetically=%t\n", o.OrderFieldsAlphabetically)
	fmt.Fprintf(&buf, "  exported_fields_only=%t\n", o.ExportedFieldsOnly)
	fmt.Fprintf(&buf, "  reexpand_shared=%t\n", o.ReexpandShared)
	fmt.Fprintf(&buf, "  sensitivity_detection=%t\n", !o.DisableSensitivityDetection)
	fmt.Fprintf(&buf, "  mask=%q\n", o.Mask)

	fmt.Fprintf(&buf, "\n")
	fmt.Fprintf(&buf, "[Linear]\n")
	fmt.Fprintf(&buf, "  class_name_prefix=%q\n", o.Linear.ClassNamePrefix)
	fmt.Fprintf(&buf, "  class_name_suffix=%q\n", o.Linear.ClassNameSuffix)
	fmt.Fprintf(&buf, "  class_name_fields_separator=%q\n", o.Linear.ClassNameFieldsSeparator)
	fmt.Fprintf(&buf, "  field_value_separator=%q\n", o.Linear.FieldValueSeparator)
	fmt.Fprintf(&buf, "  field_separator=%q\n", o.Linear.FieldSeparator)
	fmt.Fprintf(&buf, "  global_suffix=%q\n", o.Linear.GlobalSuffix)

	fmt.Fprintf(&buf, "\n")
	fmt.Fprintf(&buf, "[Tree]\n")
	fmt.Fprintf(&buf, "  branch_char=%q\n", o.Tree.BranchChar)
	fmt.Fprintf(&buf, "  last_branch_char=%q\n", o.Tree.LastBranchChar)

	fmt.Fprintf(&buf, "\n")
	fmt.Fprintf(&buf, "[Bullet]\n")
	fmt.Fprintf(&buf, "  first_level_char=%q\n", o.Bullet.FirstLevelChar)
	fmt.Fprintf(&buf, "  second_level_char=%q\n", o.Bullet.SecondLevelChar)
	fmt.Fprintf(&buf, "  deeper_level_char=%q\n", o.Bullet.DeeperLevelChar)
	fmt.Fprintf(&buf, "  indentation=%d\n", o.Bullet.Indentation)

	fmt.Fprintf(&buf, "\n")
	fmt.Fprintf(&buf, "[Card]\n")
	fmt.Fprintf(&buf, "  box=%s\n", o.Card.Box.Name())
	return buf.String()
}

// parseOptions takes options serialized by Options.String() and parses them
// into keys and values, calling visitKeyValue for each pair.
func parseOptions(s string, visitKeyValue func(section, key, value string) error) error {
	var section string
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if len(line) == 0 || line[0] == ';' || line[0] == '#' {
			// Skip blank lines and comments.
			continue
		}
		n := len(line)
		if line[0] == '[' && line[n-1] == ']' {
			section = line[1 : n-1]
			continue
		}

		pos := strings.Index(line, "=")
		if pos < 0 {
			const maxLen = 50
			if len(line) > maxLen {
				line = line[:maxLen-3] + "..."
			}
			return errors.Errorf("weaver: invalid key=value syntax: %q", errors.Safe(line))
		}
		key := strings.TrimSpace(line[:pos])
		value := strings.TrimSpace(line[pos+1:])
		if err := visitKeyValue(section, key, value); err != nil {
			return err
		}
	}
	return nil
}

// Parse parses options from the specified string, as written by String.
// Keys that are not present keep their current value.
func (o *Options) Parse(s string) error {
	return parseOptions(s, o.set)
}

// LoadEnv sets options from environment variables. Keys of the [Options]
// section are read from WEAVER_<KEY> and keys of the other sections from
// WEAVER_<SECTION>_<KEY>, upper-cased; for example WEAVER_MAX_DEPTH and
// WEAVER_TREE_BRANCH_CHAR. A nil lookup reads the process environment.
func (o *Options) LoadEnv(lookup func(string) (string, bool)) error {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	var err error
	for _, s := range optionKeys {
		for _, key := range s.keys {
			name := "WEAVER_" + strings.ToUpper(key)
			if s.section != "Options" {
				name = "WEAVER_" + strings.ToUpper(s.section) + "_" + strings.ToUpper(key)
			}
			if value, ok := lookup(name); ok {
				if e := o.set(s.section, key, strings.TrimSpace(value)); e != nil {
					err = errors.CombineErrors(err, errors.Wrapf(e, "%s", errors.Safe(name)))
				}
			}
		}
	}
	return err
}

func (o *Options) set(section, key, value string) error {
	var err error
	switch section {
	case "Options":
		switch key {
		case "max_depth":
			var n int
			if n, err = strconv.Atoi(value); err == nil {
				o.setMaxDepth(n)
			}
		case "max_sequence_length":
			var n int
			if n, err = strconv.Atoi(value); err == nil {
				o.setMaxSequenceLength(n)
			}
		case "global_length_limit":
			var n int
			if n, err = strconv.Atoi(value); err == nil {
				o.setGlobalLengthLimit(n)
			}
		case "included_fields":
			o.IncludedFields = parseList(value)
		case "excluded_fields":
			o.ExcludedFields = parseList(value)
		case "omit_class_name":
			o.OmitClassName, err = strconv.ParseBool(value)
		case "capitalize_fields":
			o.CapitalizeFields, err = strconv.ParseBool(value)
		case "show_data_types":
			o.ShowDataTypes, err = strconv.ParseBool(value)
		case "show_inherited_fields":
			o.ShowInheritedFields, err = strconv.ParseBool(value)
		case "order_fields_alphabetically":
			o.OrderFieldsAlphabetically, err = strconv.ParseBool(value)
		case "exported_fields_only":
			o.ExportedFieldsOnly, err = strconv.ParseBool(value)
		case "reexpand_shared":
			o.ReexpandShared, err = strconv.ParseBool(value)
		case "sensitivity_detection":
			var enabled bool
			enabled, err = strconv.ParseBool(value)
			o.DisableSensitivityDetection = !enabled
		case "mask":
			o.Mask, err = parseString(value)
		default:
			return unknownOption(section, key)
		}
	case "Linear":
		var s string
		s, err = parseString(value)
		switch key {
		case "class_name_prefix":
			o.Linear.ClassNamePrefix = s
		case "class_name_suffix":
			o.Linear.ClassNameSuffix = s
		case "class_name_fields_separator":
			o.Linear.ClassNameFieldsSeparator = s
		case "field_value_separator":
			o.Linear.FieldValueSeparator = s
		case "field_separator":
			o.Linear.FieldSeparator = s
		case "global_suffix":
			o.Linear.GlobalSuffix = s
		default:
			return unknownOption(section, key)
		}
	case "Tree":
		switch key {
		case "branch_char":
			o.Tree.BranchChar, err = parseRune(value)
		case "last_branch_char":
			o.Tree.LastBranchChar, err = parseRune(value)
		default:
			return unknownOption(section, key)
		}
	case "Bullet":
		switch key {
		case "first_level_char":
			o.Bullet.FirstLevelChar, err = parseRune(value)
		case "second_level_char":
			o.Bullet.SecondLevelChar, err = parseRune(value)
		case "deeper_level_char":
			o.Bullet.DeeperLevelChar, err = parseRune(value)
		case "indentation":
			o.Bullet.Indentation, err = strconv.Atoi(value)
		default:
			return unknownOption(section, key)
		}
	case "Card":
		switch key {
		case "box":
			o.Card.Box, err = ascii.ParseBoxChars(value)
		default:
			return unknownOption(section, key)
		}
	default:
		return errors.Errorf("weaver: unknown section: %s", errors.Safe(section))
	}
	if err != nil {
		return errors.Wrapf(err, "weaver: invalid value for %s.%s", errors.Safe(section), errors.Safe(key))
	}
	return nil
}

func unknownOption(section, key string) error {
	return errors.Errorf("weaver: unknown option: %s.%s", errors.Safe(section), errors.Safe(key))
}

func parseList(value string) []string {
	var out []string
	for _, f := range strings.Split(value, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// parseString unquotes a Go-quoted value; unquoted values are taken as is.
func parseString(value string) (string, error) {
	if len(value) >= 2 && value[0] == '"' {
		return strconv.Unquote(value)
	}
	return value, nil
}

// parseRune accepts a single character, either bare or Go-quoted ('x' or
// "x").
func parseRune(value string) (rune, error) {
	if len(value) >= 2 && (value[0] == '\'' || value[0] == '"') {
		s, err := strconv.Unquote(value)
		if err != nil {
			return 0, err
		}
		value = s
	}
	if utf8.RuneCountInString(value) != 1 {
		return 0, errors.Errorf("expected a single character, got %q", value)
	}
	r, _ := utf8.DecodeRuneInString(value)
	return r, nil
}
