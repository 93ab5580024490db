// Copyright 2025 The Weaver Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package jsoncodec wraps the JSON codec used by the weave command.
package jsoncodec

import (
	"io"

	"github.com/bytedance/sonic"
	"github.com/cockroachdb/errors"
)

var defaultConfig = sonic.ConfigStd

func Marshal(v any) ([]byte, error) {
	return defaultConfig.Marshal(v)
}

func MarshalIndent(v any, prefix, indent string) ([]byte, error) {
	return defaultConfig.MarshalIndent(v, prefix, indent)
}

func Unmarshal(data []byte, v any) error {
	return defaultConfig.Unmarshal(data, v)
}

func Encode(w io.Writer, v any) error {
	enc := defaultConfig.NewEncoder(w)
	return enc.Encode(v)
}

// DecodeAll decodes every JSON document in r, in order. Objects decode to
// map[string]any, arrays to []any and numbers to float64.
func DecodeAll(r io.Reader) ([]any, error) {
	dec := defaultConfig.NewDecoder(r)
	var docs []any
	for {
		var v any
		if err := dec.Decode(&v); err != nil {
			if errors.Is(err, io.EOF) {
				return docs, nil
			}
			return docs, errors.Wrapf(err, "decoding document %d", errors.Safe(len(docs)+1))
		}
		docs = append(docs, v)
	}
}
