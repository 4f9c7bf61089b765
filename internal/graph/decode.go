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

package graph

import (
	"fmt"

	"github.com/ZaparooProject/bonsai/internal/bitio"
	"github.com/ZaparooProject/bonsai/internal/huffman"
	"github.com/ZaparooProject/bonsai/schema"
)

// DecodeError reports malformed graph-bitstream content: an out-of-range
// back-reference rank, a string-table underrun, or similar.
type DecodeError struct {
	Reason string
}

func (e DecodeError) Error() string {
	return fmt.Sprintf("graph decode error: %s", e.Reason)
}

// Decoder holds the state threaded through one graph-body decoding pass:
// the decoding counterpart of Encoder, with the string table read
// front to back and the node pool built as nodes are materialised.
type Decoder struct {
	sch       *schema.Schema
	r         *bitio.Reader
	strings   []string
	stringPos int
	contexts  map[schema.FieldKey]refContext
	recent    map[schema.FieldKey]*recentList
	nodes     []Node
}

// DecodeGraph reads a graph bitstream body written by EncodeGraph: the
// used-types bitmap, per-field codebooks, and the root node's fields
// recursively. strs is the string table in production order.
func DecodeGraph(sch *schema.Schema, r *bitio.Reader, strs []string) (*Graph, error) {
	used := []string{schema.NullType}
	for _, t := range sch.Order {
		present, err := r.ReadBool()
		if err != nil {
			return nil, err
		}
		if present {
			used = append(used, t)
		}
	}

	d := &Decoder{
		sch:      sch,
		r:        r,
		strings:  strs,
		contexts: map[schema.FieldKey]refContext{},
		recent:   map[schema.FieldKey]*recentList{},
	}
	if err := d.prepareContexts(used); err != nil {
		return nil, err
	}

	rootIdx, err := d.decodeNodeInner(sch.RootType)
	if err != nil {
		return nil, err
	}

	return &Graph{Nodes: d.nodes, RootIndex: rootIdx, UsedTypes: used}, nil
}

func (d *Decoder) prepareContexts(used []string) error {
	keys := d.sch.OrderedReferenceFieldKeys(used)
	alphabets := d.sch.ReferenceFields(used)

	for _, key := range keys {
		alphabet := alphabets[key]
		switch {
		case len(alphabet) == 0:
			return InvariantError{Reason: fmt.Sprintf("%s.%s: empty reference context", key.Owner, key.Field)}
		case len(alphabet) == 1:
			d.contexts[key] = refContext{singleton: alphabet[0]}
			continue
		}

		hasCodebook, err := d.r.ReadBool()
		if err != nil {
			return err
		}
		if hasCodebook {
			code, err := huffman.ReadCodebook(d.r, alphabet)
			if err != nil {
				return err
			}
			d.contexts[key] = refContext{code: code}
		} else {
			idx, err := d.r.ReadUint(bitLenCeil(len(alphabet)))
			if err != nil {
				return err
			}
			if int(idx) >= len(alphabet) {
				return DecodeError{Reason: fmt.Sprintf("%s.%s: context index out of range", key.Owner, key.Field)}
			}
			d.contexts[key] = refContext{singleton: alphabet[idx]}
		}
	}
	return nil
}

func (d *Decoder) decodeNodeInner(nodeType string) (int, error) {
	fields := d.sch.Fields(nodeType)
	values := make(map[string]any, len(fields))
	for _, f := range fields {
		key := schema.FieldKey{Owner: nodeType, Field: f.Name}
		v, err := d.decodeField(f.Kind, key)
		if err != nil {
			return 0, err
		}
		values[f.Name] = v
	}
	idx := len(d.nodes)
	d.nodes = append(d.nodes, Node{Type: nodeType, Fields: values})
	return idx, nil
}

func (d *Decoder) decodeField(kind schema.Kind, key schema.FieldKey) (any, error) {
	switch k := kind.(type) {
	case schema.Scalar:
		switch k.Of {
		case schema.Boolean:
			return d.r.ReadBool()
		case schema.String:
			return d.popString()
		case schema.Number:
			return readNumber(d.r)
		}
		return nil, InvariantError{Reason: "unknown scalar kind"}

	case schema.Enum:
		idx, err := d.r.ReadUint(bitLenCeil(len(k.Variants)))
		if err != nil {
			return nil, err
		}
		if int(idx) >= len(k.Variants) {
			return nil, DecodeError{Reason: "enum variant index out of range"}
		}
		return k.Variants[idx], nil

	case schema.List:
		return d.decodeList(k, key)

	case schema.Ref:
		return d.decodeNodeRef(key)
	}
	return nil, InvariantError{Reason: "unknown field kind"}
}

func (d *Decoder) decodeList(k schema.List, key schema.FieldKey) ([]any, error) {
	if ctx, ok := d.contexts[key]; ok && ctx.isNullOnly() {
		return []any{}, nil
	}

	items := []any{}
	if k.NonEmpty {
		v, err := d.decodeField(k.Of, key)
		if err != nil {
			return nil, err
		}
		items = append(items, v)
	}
	for {
		cont, err := d.r.ReadBool()
		if err != nil {
			return nil, err
		}
		if !cont {
			break
		}
		v, err := d.decodeField(k.Of, key)
		if err != nil {
			return nil, err
		}
		items = append(items, v)
	}
	return items, nil
}

func (d *Decoder) decodeNodeRef(key schema.FieldKey) (ChildRef, error) {
	ctx, ok := d.contexts[key]
	if !ok {
		return ChildRef{}, InvariantError{Reason: fmt.Sprintf("%s.%s: no context prepared for reference field", key.Owner, key.Field)}
	}
	validTypes := ctx.validTypes()
	validSet := toSet(validTypes)
	rl := d.recentListFor(key)

	isBack, err := d.r.ReadBool()
	if err != nil {
		return ChildRef{}, err
	}

	var nodeIdx int
	isNull := false

	if isBack {
		rank64, err := d.r.ReadUE(4)
		if err != nil {
			return ChildRef{}, err
		}
		idx, found := rl.popAtValidRank(int(rank64), validSet)
		if !found {
			return ChildRef{}, DecodeError{Reason: fmt.Sprintf("%s.%s: back-reference rank out of range", key.Owner, key.Field)}
		}
		nodeIdx = idx
	} else {
		actualType := ctx.singleton
		if len(validTypes) >= 2 {
			actualType, err = ctx.code.ReadSymbol(d.r)
			if err != nil {
				return ChildRef{}, err
			}
		}
		if actualType == schema.NullType {
			isNull = true
		} else {
			idx, err := d.decodeNodeInner(actualType)
			if err != nil {
				return ChildRef{}, err
			}
			nodeIdx = idx
		}
	}

	if !isNull {
		rl.insertFront(nodeIdx, d.nodes[nodeIdx].Type)
	}
	return ChildRef{Index: nodeIdx, Null: isNull}, nil
}

func (d *Decoder) recentListFor(key schema.FieldKey) *recentList {
	rl, ok := d.recent[key]
	if !ok {
		rl = &recentList{}
		d.recent[key] = rl
	}
	return rl
}

func (d *Decoder) popString() (string, error) {
	if d.stringPos >= len(d.strings) {
		return "", DecodeError{Reason: "string table underrun"}
	}
	s := d.strings[d.stringPos]
	d.stringPos++
	return s, nil
}
