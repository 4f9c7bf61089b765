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

package bonsai

import (
	"bytes"
	"math/big"
	"strings"
	"testing"

	"github.com/ZaparooProject/bonsai/schema"
)

func testSchema() *schema.Schema {
	return &schema.Schema{
		RootType: "Script",
		Order: []string{
			"Statement", "ExprStatement", "Expression", "Identifier",
			"Literal", "Script",
		},
		Types: map[string]*schema.Type{
			"Statement":  {Name: "Statement"},
			"Expression": {Name: "Expression"},
			"ExprStatement": {
				Name: "ExprStatement", Parent: "Statement",
				Fields: []schema.Field{{Name: "expr", Kind: schema.Ref{Dest: []string{"Expression"}}}},
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

func testTree() map[string]any {
	return map[string]any{
		"type": "Script",
		"body": []any{
			map[string]any{
				"type": "ExprStatement",
				"expr": map[string]any{"type": "Identifier", "name": "x"},
			},
			map[string]any{
				"type": "ExprStatement",
				"expr": map[string]any{"type": "Literal", "value": "42"},
			},
		},
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	sch := testSchema()

	var buf bytes.Buffer
	if err := Encode(sch, testTree(), &buf); err != nil {
		t.Fatalf("Encode: %v", err)
	}

	got, err := Decode(sch, &buf)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	tree := got.(map[string]any)
	body := tree["body"].([]any)
	if len(body) != 2 {
		t.Fatalf("body length = %d, want 2", len(body))
	}

	id := body[0].(map[string]any)["expr"].(map[string]any)
	if id["name"] != "x" {
		t.Errorf("identifier name = %v, want x", id["name"])
	}

	lit := body[1].(map[string]any)["expr"].(map[string]any)
	val, ok := lit["value"].(*big.Int)
	if !ok || val.String() != "42" {
		t.Errorf("literal value = %v, want big.Int 42", lit["value"])
	}
}

func TestEncodeJSONDecodeJSONRoundTrip(t *testing.T) {
	sch := testSchema()
	input := `{"type":"Script","body":[
		{"type":"ExprStatement","expr":{"type":"Identifier","name":"x"}},
		{"type":"ExprStatement","expr":{"type":"Literal","value":42}}
	]}`

	var encoded bytes.Buffer
	if err := EncodeJSON(sch, strings.NewReader(input), &encoded); err != nil {
		t.Fatalf("EncodeJSON: %v", err)
	}

	var out bytes.Buffer
	if err := DecodeJSON(sch, &encoded, &out); err != nil {
		t.Fatalf("DecodeJSON: %v", err)
	}

	if !strings.Contains(out.String(), `"name": "x"`) {
		t.Errorf("decoded JSON missing identifier name, got: %s", out.String())
	}
	if !strings.Contains(out.String(), `"value": 42`) {
		t.Errorf("decoded JSON literal should be a bare integer, got: %s", out.String())
	}
}

func TestDecodeCorruptMagicIsFormatError(t *testing.T) {
	sch := testSchema()

	var buf bytes.Buffer
	if err := Encode(sch, testTree(), &buf); err != nil {
		t.Fatalf("Encode: %v", err)
	}

	corrupt := buf.Bytes()
	corrupt[0] ^= 0xFF

	_, err := Decode(sch, bytes.NewReader(corrupt))
	if _, ok := err.(FormatError); !ok {
		t.Errorf("Decode with corrupt magic = %v (%T), want FormatError", err, err)
	}
}
