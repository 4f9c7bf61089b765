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

// Package schema declares the node-type meta-model a Schema is built
// from: a closed set of node types, each with an ordered list of named,
// typed fields, plus the subtype graph and reference-field context
// enumeration the codec needs.
package schema

import (
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
)

// NullType is the distinguished "absent reference" pseudo-type, present
// implicitly in every Schema and always first in the used-types order.
const NullType = "Null"

// ScalarType names a scalar leaf field kind.
type ScalarType int

const (
	Boolean ScalarType = iota
	String
	Number
)

// Kind is the type of a single field: Scalar, Enum, List, or Ref.
type Kind interface {
	isKind()
}

// Scalar is a Boolean, String, or Number leaf.
type Scalar struct {
	Of ScalarType
}

func (Scalar) isKind() {}

// Enum is one of a finite ordered list of variant values.
type Enum struct {
	Variants []string
}

func (Enum) isKind() {}

// List is an ordered, possibly empty sequence of values of Of.
// NonEmpty requires at least one element.
type List struct {
	Of       Kind
	NonEmpty bool
}

func (List) isKind() {}

// Ref is a reference to a child node whose concrete type lies in the
// transitive subtype closure of Dest. Optional references include
// NullType in Dest.
type Ref struct {
	Dest []string
}

func (Ref) isKind() {}

// Optional builds a Ref that also admits NullType, the sugar for
// Optional(NodeRef(T...)) = NodeRef(Null, T...).
func Optional(dest ...string) Ref {
	return Ref{Dest: append([]string{NullType}, dest...)}
}

// Field is a single named, typed field of a node type.
type Field struct {
	Name string
	Kind Kind
}

// Type is one declared node type. Parent and Mixin name other declared
// types whose fields are inherited (Mixin models the source schema's
// secondary, non-primary base — e.g. the shared `parameters` field
// FunctionDeclaration and FunctionExpression both inherit from a
// `Function` mixin alongside their primary Statement/PrimaryExpression
// parent).
type Type struct {
	Name   string
	Parent string
	Mixin  string
	Fields []Field
}

// Schema is a closed set of node types plus a designated root type.
// Order lists the schema's node type names, abstract parent types
// included (NullType excluded — it is always implicit and always first;
// a type used only as a Mixin may be left out) in the fixed, schema-defined enumeration
// order used for the used-types bitmap and reference-context alphabets;
// this order must be identical between the encoder and decoder builds of
// a schema, so it is an explicit field rather than derived from Go map
// iteration.
type Schema struct {
	Types    map[string]*Type
	RootType string
	Order    []string

	// fieldsCache memoizes Fields, since every node visit during encoding
	// or decoding re-asks for the same type's inherited field list;
	// lazily built so a Schema can still be declared as a plain literal.
	cacheOnce   sync.Once
	fieldsCache *lru.Cache[string, []Field]
}

// Fields returns the ordered field list for a concrete type, walking the
// Mixin then Parent chain and prepending inherited fields before the
// type's own, matching declaration order in the source schema.
func (s *Schema) Fields(typeName string) []Field {
	s.cacheOnce.Do(func() {
		c, _ := lru.New[string, []Field](len(s.Types) + 1)
		s.fieldsCache = c
	})
	if fields, ok := s.fieldsCache.Get(typeName); ok {
		return fields
	}

	t, ok := s.Types[typeName]
	if !ok {
		return nil
	}

	var fields []Field
	if t.Mixin != "" {
		fields = append(fields, s.Fields(t.Mixin)...)
	}
	if t.Parent != "" {
		fields = append(fields, s.Fields(t.Parent)...)
	}
	fields = append(fields, t.Fields...)

	s.fieldsCache.Add(typeName, fields)
	return fields
}

// IsSubtype reports whether typeName is ancestor or a transitive
// Parent/Mixin descendant of ancestor.
func (s *Schema) IsSubtype(typeName, ancestor string) bool {
	for cur := typeName; cur != ""; {
		if cur == ancestor {
			return true
		}
		t, ok := s.Types[cur]
		if !ok {
			return false
		}
		if t.Mixin != "" && s.IsSubtype(t.Mixin, ancestor) {
			return true
		}
		cur = t.Parent
	}
	return false
}

// ConcreteSubtypes returns the transitive set of descendants of typeName
// (through Parent and Mixin links), in a fixed order derived from
// Schema's type registration order. Intermediate abstract types are
// returned along with the leaf types. andSelf includes typeName itself.
func (s *Schema) ConcreteSubtypes(typeName string, andSelf bool) []string {
	var out []string
	for _, name := range s.orderedTypeNames() {
		if name == typeName {
			if andSelf {
				out = append(out, name)
			}
			continue
		}
		if s.IsSubtype(name, typeName) {
			out = append(out, name)
		}
	}
	return out
}

// orderedTypeNames returns NullType followed by every concrete type name
// in Schema.Order — the fixed total order the used-types bitmap and
// reference-context alphabets are built against.
func (s *Schema) orderedTypeNames() []string {
	out := make([]string, 0, len(s.Order)+1)
	out = append(out, NullType)
	out = append(out, s.Order...)
	return out
}

// FieldKey identifies a single reference-field position: an owning
// concrete type and a field name.
type FieldKey struct {
	Owner string
	Field string
}

// ReferenceFields enumerates every reference-kind field position present
// in used (including positions nested inside List), yielding for each
// the subset of used types admissible at that position. A type named as
// some other type's Parent or Mixin counts as abstract and is never
// admitted.
func (s *Schema) ReferenceFields(used []string) map[FieldKey][]string {
	usedSet := make(map[string]struct{}, len(used))
	for _, u := range used {
		usedSet[u] = struct{}{}
	}

	out := map[FieldKey][]string{}
	for _, owner := range used {
		for _, f := range s.Fields(owner) {
			ref, ok := refKind(f.Kind)
			if !ok {
				continue
			}
			key := FieldKey{Owner: owner, Field: f.Name}
			out[key] = s.admissibleTypes(ref, usedSet)
		}
	}
	return out
}

// OrderedReferenceFieldKeys returns the same keys ReferenceFields would
// produce for used, but in a fixed, deterministic order: used types in
// used's own order, each one's fields in declaration order. Encoder and
// decoder must walk reference-field positions in lockstep, so this order
// (rather than Go's unspecified map iteration) is what header production
// and parsing both rely on.
func (s *Schema) OrderedReferenceFieldKeys(used []string) []FieldKey {
	var out []FieldKey
	for _, owner := range used {
		for _, f := range s.Fields(owner) {
			if _, ok := refKind(f.Kind); !ok {
				continue
			}
			out = append(out, FieldKey{Owner: owner, Field: f.Name})
		}
	}
	return out
}

// refKind unwraps a Ref, possibly nested inside a List.
func refKind(k Kind) (Ref, bool) {
	switch v := k.(type) {
	case Ref:
		return v, true
	case List:
		return refKind(v.Of)
	default:
		return Ref{}, false
	}
}

func (s *Schema) admissibleTypes(ref Ref, usedSet map[string]struct{}) []string {
	abstract := map[string]bool{}
	for _, t := range s.Types {
		if t.Parent != "" {
			abstract[t.Parent] = true
		}
		if t.Mixin != "" {
			abstract[t.Mixin] = true
		}
	}
	var out []string
	for _, name := range s.orderedTypeNames() {
		if _, inUse := usedSet[name]; !inUse || abstract[name] {
			continue
		}
		for _, dest := range ref.Dest {
			if dest == NullType {
				if name == NullType {
					out = append(out, name)
				}
				continue
			}
			if s.IsSubtype(name, dest) {
				out = append(out, name)
				break
			}
		}
	}
	return out
}
