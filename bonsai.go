// Copyright (c) 2025 Niema Moshiri and The Zaparoo Project.
// SPDX-License-Identifier: GPL-3.0-or-later
//
// This file is part of bonsai.
//
// bonsai is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// bonsai is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with bonsai.  If not, see <https://www.gnu.org/licenses/>.

// Package bonsai implements a typed-AST codec: a schema-driven transform
// from a tree of nodes to a deduplicated graph, a compact bitstream
// encoding of that graph, and an outer brotli-compressed container
// framing the bitstream alongside its string table.
package bonsai

import (
	"encoding/json"
	"io"
	"math/big"

	"github.com/ZaparooProject/bonsai/internal/bitio"
	"github.com/ZaparooProject/bonsai/internal/graph"
	"github.com/ZaparooProject/bonsai/schema"
)

// Encode transforms tree against sch, encodes the resulting graph, and
// writes the finished container to w. tree must be built from
// map[string]any nodes (a "type" string key plus field values), []any
// lists, and bool/string/nil leaves, matching the shape produced by
// decoding JSON with a json.Decoder configured via UseNumber.
func Encode(sch *schema.Schema, tree any, w io.Writer) error {
	g, err := graph.Transform(sch, tree)
	if err != nil {
		return err
	}
	bitstream, strs, err := graph.EncodeGraph(sch, g)
	if err != nil {
		return err
	}
	return writeContainer(w, strs, bitstream)
}

// Decode reads a bonsai container from r and rebuilds the tree it holds,
// against sch. The returned tree has the same shape Encode accepts,
// except Number fields whose decimal exponent is zero come back as
// *big.Int and all others (including whole numbers written with an
// exponent, such as 1e2) as float64.
func Decode(sch *schema.Schema, r io.Reader) (any, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	strs, bitstream, err := readContainer(data)
	if err != nil {
		return nil, err
	}
	g, err := graph.DecodeGraph(sch, bitio.NewReader(bitstream), strs)
	if err != nil {
		return nil, err
	}
	return graph.Materialize(g), nil
}

// EncodeJSON parses r as JSON (preserving number literals exactly, the
// way the tree-building step of Encode requires) and encodes the result
// against sch, writing the finished container to w.
func EncodeJSON(sch *schema.Schema, r io.Reader, w io.Writer) error {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	var tree any
	if err := dec.Decode(&tree); err != nil {
		return err
	}
	return Encode(sch, tree, w)
}

// DecodeJSON decodes a bonsai container from r against sch and writes
// its tree back out as JSON to w.
func DecodeJSON(sch *schema.Schema, r io.Reader, w io.Writer) error {
	tree, err := Decode(sch, r)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(jsonSafe(tree))
}

// jsonSafe rewrites *big.Int leaves as json.Number so they marshal as
// bare JSON integers rather than through big.Int's quoting MarshalText.
func jsonSafe(v any) any {
	switch x := v.(type) {
	case *big.Int:
		return json.Number(x.String())
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, e := range x {
			out[k] = jsonSafe(e)
		}
		return out
	case []any:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = jsonSafe(e)
		}
		return out
	default:
		return v
	}
}
