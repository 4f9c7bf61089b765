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

package huffman

import (
	"strings"
	"testing"

	"github.com/ZaparooProject/bonsai/internal/bitio"
)

func roundtrip(t *testing.T, message string, alphabet []rune) string {
	t.Helper()

	counts := map[rune]int{}
	for _, c := range message {
		counts[c]++
	}

	enc, err := FromCounts(counts)
	if err != nil {
		t.Fatalf("FromCounts: %v", err)
	}

	w := bitio.NewWriter()
	if err := enc.WriteCodebook(alphabet, w); err != nil {
		t.Fatalf("WriteCodebook: %v", err)
	}
	runes := []rune(message)
	if err := w.WriteUint(uint64(len(runes)), 10); err != nil {
		t.Fatal(err)
	}
	for _, c := range runes {
		if err := enc.WriteSymbol(c, w); err != nil {
			t.Fatalf("WriteSymbol(%q): %v", c, err)
		}
	}
	if err := w.Flush(); err != nil {
		t.Fatal(err)
	}

	r := bitio.NewReader(w.Bytes())
	dec, err := ReadCodebook(r, alphabet)
	if err != nil {
		t.Fatalf("ReadCodebook: %v", err)
	}
	n, err := r.ReadUint(10)
	if err != nil {
		t.Fatal(err)
	}

	var sb strings.Builder
	for i := uint64(0); i < n; i++ {
		sym, err := dec.ReadSymbol(r)
		if err != nil {
			t.Fatalf("ReadSymbol[%d]: %v", i, err)
		}
		sb.WriteRune(sym)
	}
	return sb.String()
}

func TestRoundTripBasic(t *testing.T) {
	message := "Lorem ipsum dolor sit amet, consectetur adipiscing elit. Nullam quis dignissim turpis. " +
		"Praesent quis lobortis tortor, pretium tincidunt tortor. Sed bibendum lacus vitae orci egestas, " +
		"sit amet consequat leo auctor. Etiam sed turpis vitae neque turpis duis."
	alphabet := make([]rune, 0, 128)
	for c := rune(0x20); c < 0x7F; c++ {
		alphabet = append(alphabet, c)
	}
	alphabet = append(alphabet, '\n')

	got := roundtrip(t, message, alphabet)
	if got != message {
		t.Errorf("round-trip mismatch:\n got: %q\nwant: %q", got, message)
	}
}

func TestRoundTripDenseAlphabet(t *testing.T) {
	message := "thequickbrownfoxjumpsoverthelazydog"
	alphabet := []rune("abcdefghijklmnopqrstuvwxyz")

	got := roundtrip(t, message, alphabet)
	if got != message {
		t.Errorf("round-trip mismatch:\n got: %q\nwant: %q", got, message)
	}
}

func TestCanonicalConstruction(t *testing.T) {
	code, err := New([]rune("abcd"), []int{1, 1, 2})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	code.buildCodeMap()

	want := map[rune]packedCode{
		'a': {1, 0b0},
		'b': {2, 0b10},
		'c': {3, 0b110},
		'd': {3, 0b111},
	}
	for sym, w := range want {
		got, ok := code.codeMap[sym]
		if !ok {
			t.Fatalf("missing code for %q", sym)
		}
		if got != w {
			t.Errorf("%q: got %+v, want %+v", sym, got, w)
		}
	}
}

func TestConstructionFailures(t *testing.T) {
	cases := []struct {
		name    string
		symbols []rune
		lengths []int
	}{
		{"too few symbols", []rune("a"), []int{1}},
		{"symbol/length count mismatch", []rune("abc"), []int{1, 1, 2}},
		{"length exceeds slot budget", []rune("abcde"), []int{1, 1, 3}},
		{"incomplete code", []rune("ab"), []int{1, 1}},
		{"duplicate symbols", []rune("aa"), []int{2}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if _, err := New(c.symbols, c.lengths); err == nil {
				t.Fatalf("expected construction error for %s", c.name)
			}
		})
	}
}
