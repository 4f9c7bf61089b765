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

// Materialize substitutes a Graph's pool entries inline starting from
// its root, producing the same JSON-shaped tree Transform consumes:
// map[string]any nodes (with "type"), []any lists, and bool/string/nil
// leaves, with numbers in place of Decimal values. Numbers are exposed as
// *big.Int when the decoded exponent is zero and float64 otherwise, per
// the decode rule (so 1e2 comes back as float64 100).
func Materialize(g *Graph) any {
	return nodeToTree(g, g.RootIndex)
}

func nodeToTree(g *Graph, idx int) map[string]any {
	n := g.Nodes[idx]
	out := make(map[string]any, len(n.Fields)+1)
	out["type"] = n.Type
	for k, v := range n.Fields {
		out[k] = valueToTree(g, v)
	}
	return out
}

func valueToTree(g *Graph, v any) any {
	switch x := v.(type) {
	case ChildRef:
		if x.Null {
			return nil
		}
		return nodeToTree(g, x.Index)
	case []any:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = valueToTree(g, e)
		}
		return out
	case Decimal:
		if x.IsInteger() {
			return x.BigInt()
		}
		return x.Float64()
	default:
		return v
	}
}
