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
	"math/big"
	"testing"

	"github.com/ZaparooProject/bonsai/internal/bitio"
	"github.com/ZaparooProject/bonsai/schema"
)

func testSchema() *schema.Schema {
	return &schema.Schema{
		RootType: "Script",
		Order: []string{
			"Statement", "ExprStatement", "ReturnStatement",
			"Expression", "Identifier", "Literal", "Script",
		},
		Types: map[string]*schema.Type{
			"Statement":  {Name: "Statement"},
			"Expression": {Name: "Expression"},
			"ExprStatement": {
				Name: "ExprStatement", Parent: "Statement",
				Fields: []schema.Field{{Name: "expr", Kind: schema.Ref{Dest: []string{"Expression"}}}},
			},
			"ReturnStatement": {
				Name: "ReturnStatement", Parent: "Statement",
				Fields: []schema.Field{{Name: "expr", Kind: schema.Optional("Expression")}},
			},
			"Identifier": {
				Name: "Identifier", Parent: "Expression",
				Fields: []schema.Field{{Name: "name", Kind: schema.Scalar{Of: schema.String}}},
			},
			"Literal": {
				Name: "Literal", Parent: "Expression",
				Fields: []schema.Field{{Name: "value", Kind: schema.Scalar{Of: schema.Number}}},
			},
			"Script": {
				Name: "Script",
				Fields: []schema.Field{{Name: "body", Kind: schema.List{Of: schema.Ref{Dest: []string{"Statement"}}}}},
			},
		},
	}
}

func identifierExpr(name string) map[string]any {
	return map[string]any{
		"type": "ExprStatement",
		"expr": map[string]any{"type": "Identifier", "name": name},
	}
}

func testTree() map[string]any {
	return map[string]any{
		"type": "Script",
		"body": []any{
			identifierExpr("x"),
			identifierExpr("x"), // structurally identical -> should dedup to the same pool entry
			map[string]any{"type": "ReturnStatement", "expr": nil},
			map[string]any{
				"type": "ExprStatement",
				"expr": map[string]any{"type": "Literal", "value": "42"},
			},
		},
	}
}

func TestTransformDeduplicates(t *testing.T) {
	sch := testSchema()
	g, err := Transform(sch, testTree())
	if err != nil {
		t.Fatalf("Transform: %v", err)
	}

	body := g.Nodes[g.RootIndex].Fields["body"].([]any)
	if len(body) != 4 {
		t.Fatalf("body length = %d, want 4", len(body))
	}
	ref0 := body[0].(ChildRef)
	ref1 := body[1].(ChildRef)
	if ref0.Index != ref1.Index {
		t.Errorf("identical ExprStatements should dedup to the same pool index, got %d and %d", ref0.Index, ref1.Index)
	}

	ret := body[2].(ChildRef)
	retNode := g.Nodes[ret.Index]
	if !retNode.Fields["expr"].(ChildRef).Null {
		t.Errorf("ReturnStatement.expr should be Null")
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	sch := testSchema()
	g, err := Transform(sch, testTree())
	if err != nil {
		t.Fatalf("Transform: %v", err)
	}

	bitstream, strs, err := EncodeGraph(sch, g)
	if err != nil {
		t.Fatalf("EncodeGraph: %v", err)
	}

	r := bitio.NewReader(bitstream)
	decoded, err := DecodeGraph(sch, r, strs)
	if err != nil {
		t.Fatalf("DecodeGraph: %v", err)
	}

	tree := Materialize(decoded).(map[string]any)
	if tree["type"] != "Script" {
		t.Fatalf("root type = %v", tree["type"])
	}
	body := tree["body"].([]any)
	if len(body) != 4 {
		t.Fatalf("decoded body length = %d, want 4", len(body))
	}

	first := body[0].(map[string]any)
	second := body[1].(map[string]any)
	firstID := first["expr"].(map[string]any)["name"]
	secondID := second["expr"].(map[string]any)["name"]
	if firstID != "x" || secondID != "x" {
		t.Errorf("identifier names = %v, %v, want x, x", firstID, secondID)
	}

	third := body[2].(map[string]any)
	if third["type"] != "ReturnStatement" || third["expr"] != nil {
		t.Errorf("ReturnStatement mismatch: %+v", third)
	}

	fourth := body[3].(map[string]any)
	lit := fourth["expr"].(map[string]any)
	val, ok := lit["value"].(*big.Int)
	if !ok || val.String() != "42" {
		t.Errorf("Literal.value = %v, want big.Int 42", lit["value"])
	}
}

func TestEncodeDecodeBackReference(t *testing.T) {
	// A back-reference only arises once a node has already been
	// referenced once; the second identical ExprStatement in testTree
	// forces the Script.body list to encode one fresh reference and one
	// back-reference at the same context.
	sch := testSchema()
	g, err := Transform(sch, testTree())
	if err != nil {
		t.Fatalf("Transform: %v", err)
	}
	// Identifier, ExprStatement(Identifier), ReturnStatement, Literal,
	// ExprStatement(Literal), Script: six pool entries, with the two
	// identical ExprStatement(Identifier) tree nodes collapsed to one.
	if len(g.Nodes) != 6 {
		t.Fatalf("pool size = %d, want 6", len(g.Nodes))
	}

	bitstream, strs, err := EncodeGraph(sch, g)
	if err != nil {
		t.Fatalf("EncodeGraph: %v", err)
	}
	decoded, err := DecodeGraph(sch, bitio.NewReader(bitstream), strs)
	if err != nil {
		t.Fatalf("DecodeGraph: %v", err)
	}
	// The back-reference resolves to the already-decoded pool entry, so no
	// second copy is materialised and both body slots share one index.
	if len(decoded.Nodes) != 6 {
		t.Fatalf("decoded pool size = %d, want 6", len(decoded.Nodes))
	}
	body := decoded.Nodes[decoded.RootIndex].Fields["body"].([]any)
	if body[0].(ChildRef).Index != body[1].(ChildRef).Index {
		t.Errorf("back-referenced body entries decoded to indices %d and %d, want the same", body[0].(ChildRef).Index, body[1].(ChildRef).Index)
	}
}
