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

// refContext is a resolved reference-field position: either a Huffman
// codebook over ≥2 observed destination types, or a single type known
// without any bits at all (because only one type was ever observed, or
// because the schema admits only one type there to begin with).
type refContext struct {
	code      *huffman.Code[string]
	singleton string
}

func (c refContext) validTypes() []string {
	if c.code != nil {
		return c.code.Symbols()
	}
	return []string{c.singleton}
}

func (c refContext) isNullOnly() bool {
	return c.code == nil && c.singleton == schema.NullType
}

// Encoder holds the state threaded through one graph-body encoding pass:
// the per-context codebooks established during header production, the
// per-context move-to-front recency lists, and, per context, the set of
// pool indices already emitted through that context (a node shared by
// two distinct reference positions is inlined once per position it's
// first seen from, since each position's recency list is independent).
type Encoder struct {
	sch      *schema.Schema
	g        *Graph
	w        *bitio.Writer
	strings  []string
	contexts map[schema.FieldKey]refContext
	recent   map[schema.FieldKey]*recentList
	everSeen map[schema.FieldKey]map[int]bool
}

// EncodeGraph writes g's bitstream body (used-types bitmap, per-field
// codebooks, then the root node's fields recursively) and returns the
// string-table entries in the order fields referenced them.
func EncodeGraph(sch *schema.Schema, g *Graph) (bitstream []byte, strs []string, err error) {
	w := bitio.NewWriter()

	usedSet := make(map[string]bool, len(g.UsedTypes))
	for _, t := range g.UsedTypes {
		usedSet[t] = true
	}
	for _, t := range sch.Order {
		if err := w.WriteBool(usedSet[t]); err != nil {
			return nil, nil, err
		}
	}

	e := &Encoder{
		sch:      sch,
		g:        g,
		w:        w,
		contexts: map[schema.FieldKey]refContext{},
		recent:   map[schema.FieldKey]*recentList{},
		everSeen: map[schema.FieldKey]map[int]bool{},
	}
	if err := e.prepareContexts(); err != nil {
		return nil, nil, err
	}

	if err := e.encodeNodeInner(g.RootIndex); err != nil {
		return nil, nil, err
	}

	if err := w.Flush(); err != nil {
		return nil, nil, err
	}
	return w.Bytes(), e.strings, nil
}

func (e *Encoder) prepareContexts() error {
	keys := e.sch.OrderedReferenceFieldKeys(e.g.UsedTypes)
	alphabets := e.sch.ReferenceFields(e.g.UsedTypes)

	for _, key := range keys {
		alphabet := alphabets[key]
		switch {
		case len(alphabet) == 0:
			return InvariantError{Reason: fmt.Sprintf("%s.%s: empty reference context", key.Owner, key.Field)}
		case len(alphabet) == 1:
			e.contexts[key] = refContext{singleton: alphabet[0]}
			continue
		}

		counts := e.g.Stats[key]
		switch len(counts) {
		case 0:
			return InvariantError{Reason: fmt.Sprintf("%s.%s: no observed references despite being a used field", key.Owner, key.Field)}
		case 1:
			if err := e.w.WriteBool(false); err != nil {
				return err
			}
			var single string
			for t := range counts {
				single = t
			}
			idx := indexOfString(alphabet, single)
			if err := e.w.WriteUint(uint64(idx), bitLenCeil(len(alphabet))); err != nil {
				return err
			}
			e.contexts[key] = refContext{singleton: single}
		default:
			if err := e.w.WriteBool(true); err != nil {
				return err
			}
			code, err := huffman.FromCounts(counts)
			if err != nil {
				return err
			}
			if err := code.WriteCodebook(alphabet, e.w); err != nil {
				return err
			}
			e.contexts[key] = refContext{code: code}
		}
	}
	return nil
}

func (e *Encoder) encodeNodeInner(nodeIdx int) error {
	node := e.g.Nodes[nodeIdx]
	for _, f := range e.sch.Fields(node.Type) {
		key := schema.FieldKey{Owner: node.Type, Field: f.Name}
		if err := e.encodeField(f.Kind, node.Fields[f.Name], key); err != nil {
			return err
		}
	}
	return nil
}

func (e *Encoder) encodeField(kind schema.Kind, val any, key schema.FieldKey) error {
	switch k := kind.(type) {
	case schema.Scalar:
		switch k.Of {
		case schema.Boolean:
			return e.w.WriteBool(val.(bool))
		case schema.String:
			e.strings = append(e.strings, val.(string))
			return nil
		case schema.Number:
			return writeNumber(e.w, val.(Decimal))
		}
		return InvariantError{Reason: "unknown scalar kind"}

	case schema.Enum:
		idx := indexOfString(k.Variants, val.(string))
		return e.w.WriteUint(uint64(idx), bitLenCeil(len(k.Variants)))

	case schema.List:
		return e.encodeList(k, val.([]any), key)

	case schema.Ref:
		return e.encodeNodeRef(val.(ChildRef), key)
	}
	return InvariantError{Reason: "unknown field kind"}
}

func (e *Encoder) encodeList(k schema.List, items []any, key schema.FieldKey) error {
	if ctx, ok := e.contexts[key]; ok && ctx.isNullOnly() {
		return nil
	}
	for i, item := range items {
		if !(k.NonEmpty && i == 0) {
			if err := e.w.WriteBool(true); err != nil {
				return err
			}
		}
		if err := e.encodeField(k.Of, item, key); err != nil {
			return err
		}
	}
	return e.w.WriteBool(false)
}

func (e *Encoder) encodeNodeRef(ref ChildRef, key schema.FieldKey) error {
	ctx, ok := e.contexts[key]
	if !ok {
		return InvariantError{Reason: fmt.Sprintf("%s.%s: no context prepared for reference field", key.Owner, key.Field)}
	}
	validTypes := ctx.validTypes()
	validSet := toSet(validTypes)
	rl := e.recentListFor(key)

	if !ref.Null && e.everSeen[key][ref.Index] {
		rank, found := rl.findAndRemove(ref.Index, validSet)
		if !found {
			return InvariantError{Reason: fmt.Sprintf("%s.%s: back-reference target absent from its recent list", key.Owner, key.Field)}
		}
		if err := e.w.WriteBool(true); err != nil {
			return err
		}
		if err := e.w.WriteUE(uint64(rank), 4); err != nil {
			return err
		}
	} else {
		if err := e.w.WriteBool(false); err != nil {
			return err
		}
		actualType := schema.NullType
		if !ref.Null {
			actualType = e.g.Nodes[ref.Index].Type
			if !validSet[actualType] {
				return InvariantError{Reason: fmt.Sprintf("%s.%s: target type %q not admitted by context", key.Owner, key.Field, actualType)}
			}
		}
		if len(validTypes) >= 2 {
			if err := ctx.code.WriteSymbol(actualType, e.w); err != nil {
				return err
			}
		}
		if !ref.Null {
			if err := e.encodeNodeInner(ref.Index); err != nil {
				return err
			}
		}
	}

	if !ref.Null {
		if e.everSeen[key] == nil {
			e.everSeen[key] = map[int]bool{}
		}
		e.everSeen[key][ref.Index] = true
		rl.insertFront(ref.Index, e.g.Nodes[ref.Index].Type)
	}
	return nil
}

func (e *Encoder) recentListFor(key schema.FieldKey) *recentList {
	rl, ok := e.recent[key]
	if !ok {
		rl = &recentList{}
		e.recent[key] = rl
	}
	return rl
}

func indexOfString(xs []string, x string) int {
	for i, v := range xs {
		if v == x {
			return i
		}
	}
	return -1
}

func toSet(xs []string) map[string]bool {
	m := make(map[string]bool, len(xs))
	for _, x := range xs {
		m[x] = true
	}
	return m
}

// bitLenCeil returns the number of bits needed to index n distinct
// values, i.e. ceil(log2(n)); bitLenCeil(1) is 0 (no choice to encode).
func bitLenCeil(n int) int {
	if n <= 1 {
		return 0
	}
	b := 0
	for v := n - 1; v > 0; v >>= 1 {
		b++
	}
	return b
}
