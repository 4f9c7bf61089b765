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

import "github.com/ZaparooProject/bonsai/internal/huffman"

// digitSymbol is one symbol of the vardecimal alphabet: the end-of-digits
// marker, or a single base-10 digit.
type digitSymbol struct {
	end   bool
	digit int8
}

// vardecimal is the fixed canonical code every Number field's digit
// sequence is written against: alphabet {end, 0, 1, ..., 9}, length
// counts (0, 1, 2, 8) — zero 1-bit codes, one 2-bit code (end-of-
// sequence, the commonest symbol), two 3-bit codes, and eight 4-bit
// codes. This is a fixed construction, not derived from observed
// frequencies, so it is built once with New rather than FromCounts.
var vardecimal = mustVardecimal()

func mustVardecimal() *huffman.Code[digitSymbol] {
	symbols := []digitSymbol{
		{end: true},
		{digit: 0}, {digit: 1}, {digit: 2}, {digit: 3}, {digit: 4},
		{digit: 5}, {digit: 6}, {digit: 7}, {digit: 8}, {digit: 9},
	}
	code, err := huffman.New(symbols, []int{0, 1, 2, 8})
	if err != nil {
		panic("bonsai: vardecimal code failed to construct: " + err.Error())
	}
	return code
}
