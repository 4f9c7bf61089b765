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

// Package graph implements the tree-to-graph transform and the graph
// bitstream encoder/decoder: the structural-sharing, Huffman-coded,
// back-reference-aware core of the codec. A schema tells it the shape of
// nodes; it never knows about JSON or the outer container framing.
package graph

import (
	"fmt"
	"strings"

	"github.com/ZaparooProject/bonsai/schema"
)

// ChildRef is a NodeRef field's transformed value: either the distinguished
// absent reference (Null) or a pool index.
type ChildRef struct {
	Index int
	Null  bool
}

func (c ChildRef) String() string {
	if c.Null {
		return "null"
	}
	return fmt.Sprintf("#%d", c.Index)
}

// Node is one entry in the structural-sharing pool: a concrete type plus
// its already-transformed field values. Field values are one of: bool,
// string, Decimal, ChildRef, or []any (a transformed List, whose elements
// are themselves one of these kinds).
type Node struct {
	Type   string
	Fields map[string]any
}

// Graph is a schema tree reduced to a deduplicated node pool, ready for
// bitstream encoding.
type Graph struct {
	Nodes     []Node
	Stats     map[schema.FieldKey]map[string]int
	RootIndex int
	UsedTypes []string // Null, then concrete types appearing in Nodes, in schema order
}

// SchemaViolationError reports that an input tree does not conform to
// the shape its schema declares.
type SchemaViolationError struct {
	Reason string
}

func (e SchemaViolationError) Error() string {
	return fmt.Sprintf("schema violation: %s", e.Reason)
}

// InvariantError reports that a codec-internal invariant the encoder or
// decoder relies on did not hold (a bug, or a hand-crafted malicious
// input engineered to violate it).
type InvariantError struct {
	Reason string
}

func (e InvariantError) Error() string {
	return fmt.Sprintf("invariant violated: %s", e.Reason)
}

type graphBuilder struct {
	sch     *schema.Schema
	nodes   []Node
	indices map[string]int
	stats   map[schema.FieldKey]map[string]int
}

// Transform reduces tree (a JSON-shaped value: map[string]any for nodes,
// []any for lists, plus bool/string/json.Number/nil scalars) to a Graph,
// per sch. It performs a post-order traversal, deduplicating structurally
// identical subtrees and tallying per-reference-field type frequencies
// as it goes.
func Transform(sch *schema.Schema, tree any) (*Graph, error) {
	root, ok := tree.(map[string]any)
	if !ok {
		return nil, SchemaViolationError{Reason: "root value is not a node object"}
	}

	g := &graphBuilder{
		sch:     sch,
		indices: map[string]int{},
		stats:   map[schema.FieldKey]map[string]int{},
	}
	rootIdx, err := g.transformNode(root)
	if err != nil {
		return nil, err
	}

	usedSet := map[string]struct{}{}
	for _, n := range g.nodes {
		usedSet[n.Type] = struct{}{}
	}
	used := []string{schema.NullType}
	for _, t := range sch.Order {
		if _, ok := usedSet[t]; ok {
			used = append(used, t)
		}
	}

	return &Graph{Nodes: g.nodes, Stats: g.stats, RootIndex: rootIdx, UsedTypes: used}, nil
}

func (g *graphBuilder) transformNode(raw map[string]any) (int, error) {
	typeName, ok := raw["type"].(string)
	if !ok {
		return 0, SchemaViolationError{Reason: "node object missing string \"type\""}
	}
	if _, ok := g.sch.Types[typeName]; !ok {
		return 0, SchemaViolationError{Reason: fmt.Sprintf("unknown node type %q", typeName)}
	}

	fields := g.sch.Fields(typeName)
	values := make(map[string]any, len(fields))
	var key strings.Builder
	key.WriteString(typeName)

	for _, f := range fields {
		rawVal, present := raw[f.Name]
		if !present {
			return 0, SchemaViolationError{Reason: fmt.Sprintf("%s.%s: missing field", typeName, f.Name)}
		}
		val, err := g.transformField(f.Kind, rawVal, typeName, f.Name)
		if err != nil {
			return 0, err
		}
		values[f.Name] = val
		key.WriteByte('\x1f')
		key.WriteString(f.Name)
		key.WriteByte('\x1f')
		writeStructuralKey(&key, val)
	}

	if idx, ok := g.indices[key.String()]; ok {
		return idx, nil
	}
	idx := len(g.nodes)
	g.nodes = append(g.nodes, Node{Type: typeName, Fields: values})
	g.indices[key.String()] = idx
	return idx, nil
}

func (g *graphBuilder) transformField(kind schema.Kind, raw any, ownerType, fieldName string) (any, error) {
	switch k := kind.(type) {
	case schema.Scalar:
		switch k.Of {
		case schema.Boolean:
			b, ok := raw.(bool)
			if !ok {
				return nil, SchemaViolationError{Reason: fmt.Sprintf("%s.%s: expected boolean", ownerType, fieldName)}
			}
			return b, nil
		case schema.String:
			s, ok := raw.(string)
			if !ok {
				return nil, SchemaViolationError{Reason: fmt.Sprintf("%s.%s: expected string", ownerType, fieldName)}
			}
			return s, nil
		case schema.Number:
			s, err := numberLiteral(raw)
			if err != nil {
				return nil, SchemaViolationError{Reason: fmt.Sprintf("%s.%s: %s", ownerType, fieldName, err)}
			}
			dec, err := ParseDecimal(s)
			if err != nil {
				return nil, SchemaViolationError{Reason: fmt.Sprintf("%s.%s: %s", ownerType, fieldName, err)}
			}
			return dec, nil
		}
		return nil, SchemaViolationError{Reason: "unknown scalar kind"}

	case schema.Enum:
		s, ok := raw.(string)
		if !ok {
			return nil, SchemaViolationError{Reason: fmt.Sprintf("%s.%s: expected enum string", ownerType, fieldName)}
		}
		found := false
		for _, v := range k.Variants {
			if v == s {
				found = true
				break
			}
		}
		if !found {
			return nil, SchemaViolationError{Reason: fmt.Sprintf("%s.%s: %q is not a declared variant", ownerType, fieldName, s)}
		}
		return s, nil

	case schema.List:
		if raw == nil {
			return nil, SchemaViolationError{Reason: fmt.Sprintf("%s.%s: list field is null", ownerType, fieldName)}
		}
		arr, ok := raw.([]any)
		if !ok {
			return nil, SchemaViolationError{Reason: fmt.Sprintf("%s.%s: expected list", ownerType, fieldName)}
		}
		if k.NonEmpty && len(arr) == 0 {
			return nil, SchemaViolationError{Reason: fmt.Sprintf("%s.%s: list must be non-empty", ownerType, fieldName)}
		}
		out := make([]any, len(arr))
		for i, item := range arr {
			v, err := g.transformField(k.Of, item, ownerType, fieldName)
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return out, nil

	case schema.Ref:
		if err := g.recordRefStat(ownerType, fieldName, raw); err != nil {
			return nil, err
		}
		if raw == nil {
			return ChildRef{Null: true}, nil
		}
		childMap, ok := raw.(map[string]any)
		if !ok {
			return nil, SchemaViolationError{Reason: fmt.Sprintf("%s.%s: expected node object or null", ownerType, fieldName)}
		}
		idx, err := g.transformNode(childMap)
		if err != nil {
			return nil, err
		}
		return ChildRef{Index: idx}, nil
	}
	return nil, SchemaViolationError{Reason: "unknown field kind"}
}

func (g *graphBuilder) recordRefStat(ownerType, fieldName string, raw any) error {
	typeName := schema.NullType
	if raw != nil {
		m, ok := raw.(map[string]any)
		if !ok {
			return SchemaViolationError{Reason: fmt.Sprintf("%s.%s: expected node object or null", ownerType, fieldName)}
		}
		t, ok := m["type"].(string)
		if !ok {
			return SchemaViolationError{Reason: fmt.Sprintf("%s.%s: referenced object missing \"type\"", ownerType, fieldName)}
		}
		typeName = t
	}
	key := schema.FieldKey{Owner: ownerType, Field: fieldName}
	if g.stats[key] == nil {
		g.stats[key] = map[string]int{}
	}
	g.stats[key][typeName]++
	return nil
}

// numberLiteral extracts a decimal numeral's source text from a
// JSON-decoded value: the String form of any fmt.Stringer (json.Number,
// or a *big.Int from a decoded tree being re-encoded) or a plain string.
// Anything else, float64 included, is rejected.
func numberLiteral(raw any) (string, error) {
	switch v := raw.(type) {
	case fmt.Stringer:
		return v.String(), nil
	case string:
		return v, nil
	default:
		return "", fmt.Errorf("expected a number literal, got %T", raw)
	}
}

// writeStructuralKey appends a canonical, collision-resistant encoding of
// v (a transformed field value) to key. Go has no hashable slice/map
// type, so this stands in for the tuple-of-items key a language with
// structural tuple equality would use directly.
func writeStructuralKey(key *strings.Builder, v any) {
	switch x := v.(type) {
	case bool:
		if x {
			key.WriteString("T")
		} else {
			key.WriteString("F")
		}
	case string:
		fmt.Fprintf(key, "s%d:%s", len(x), x)
	case Decimal:
		fmt.Fprintf(key, "n%d,%v,%d", x.Sign, x.Digits, x.Exponent)
	case ChildRef:
		if x.Null {
			key.WriteString("r-")
		} else {
			fmt.Fprintf(key, "r%d", x.Index)
		}
	case []any:
		key.WriteString("[")
		for _, e := range x {
			writeStructuralKey(key, e)
			key.WriteByte(',')
		}
		key.WriteString("]")
	default:
		fmt.Fprintf(key, "?%v", x)
	}
}
