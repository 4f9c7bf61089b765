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

// Package huffman builds canonical Huffman codes from symbol frequencies
// and encodes/decodes symbols and codebooks against the bit-level
// streams in internal/bitio.
package huffman

import (
	"container/heap"
	"fmt"

	"github.com/ZaparooProject/bonsai/internal/bitio"
)

// ConstructionError reports why a CanonicalCode could not be built.
type ConstructionError struct {
	Reason string
}

func (e ConstructionError) Error() string {
	return fmt.Sprintf("invalid canonical code: %s", e.Reason)
}

// DecodeError reports a failure while reading a symbol or codebook.
type DecodeError struct {
	Reason string
}

func (e DecodeError) Error() string {
	return fmt.Sprintf("huffman decode error: %s", e.Reason)
}

// Code is a canonical Huffman code: a symbol permutation plus the count
// of codes at each length, in increasing length order.
type Code[S comparable] struct {
	symbols      []S
	lengthCounts []int
	codeMap      map[S]packedCode
}

type packedCode struct {
	length int
	code   uint64
}

// Symbols returns the code's symbol alphabet in canonical order.
func (c *Code[S]) Symbols() []S { return c.symbols }

// New constructs a canonical code directly from a symbol permutation and
// a length-count histogram (length_counts[i] = number of codes of length
// i+1). It validates completeness per the construction rules.
func New[S comparable](symbols []S, lengthCounts []int) (*Code[S], error) {
	if len(symbols) < 2 {
		return nil, ConstructionError{Reason: "two or more symbols required"}
	}

	total := 0
	for _, c := range lengthCounts {
		total += c
	}
	if total != len(symbols) {
		return nil, ConstructionError{Reason: "symbol/code count mismatch"}
	}

	seen := make(map[S]struct{}, len(symbols))
	for _, s := range symbols {
		if _, dup := seen[s]; dup {
			return nil, ConstructionError{Reason: "symbols are not unique"}
		}
		seen[s] = struct{}{}
	}

	count, slots := 0, 0
	for _, ls := range lengthSlots(lengthCounts) {
		count, slots = ls.count, ls.slots
		if count > slots {
			return nil, ConstructionError{Reason: "not enough codes available for length"}
		}
	}
	if count < slots {
		return nil, ConstructionError{Reason: "incomplete Huffman code"}
	}

	return &Code[S]{symbols: symbols, lengthCounts: lengthCounts}, nil
}

// FromCounts builds the optimal canonical code for the given symbol
// frequencies via a standard Huffman-tree construction.
func FromCounts[S comparable](counts map[S]int) (*Code[S], error) {
	lengths := codeLengths(counts)

	type symLen = struct {
		sym S
		len int
	}
	ordered := make([]symLen, 0, len(lengths))
	for s, l := range lengths {
		ordered = append(ordered, symLen{s, l})
	}
	sortByLength(ordered)

	symbols := make([]S, len(ordered))
	maxLen := 0
	for i, sl := range ordered {
		symbols[i] = sl.sym
		if sl.len > maxLen {
			maxLen = sl.len
		}
	}

	lengthCounts := make([]int, maxLen)
	for _, sl := range ordered {
		lengthCounts[sl.len-1]++
	}

	return New(symbols, lengthCounts)
}

func sortByLength[S comparable](xs []struct {
	sym S
	len int
}) {
	// stable insertion sort: symbol count per field is small (a handful
	// of subtypes or the 11-symbol vardecimal alphabet), so this avoids
	// pulling in sort.Slice's reflection-based comparator for no benefit.
	for i := 1; i < len(xs); i++ {
		j := i
		for j > 0 && xs[j-1].len > xs[j].len {
			xs[j-1], xs[j] = xs[j], xs[j-1]
			j--
		}
	}
}

// heap node for Huffman tree construction.
type treeNode struct {
	weight int
	leaf   bool
	leafAt int // index into the symbols slice passed to construction, if leaf
	left   *treeNode
	right  *treeNode
}

type nodeHeap []*treeNode

func (h nodeHeap) Len() int            { return len(h) }
func (h nodeHeap) Less(i, j int) bool  { return h[i].weight < h[j].weight }
func (h nodeHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *nodeHeap) Push(x interface{}) { *h = append(*h, x.(*treeNode)) }
func (h *nodeHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// codeLengths builds a Huffman tree from frequency counts and returns
// the resulting code length for every symbol.
func codeLengths[S comparable](counts map[S]int) map[S]int {
	type entry struct {
		sym    S
		weight int
	}
	entries := make([]entry, 0, len(counts))
	for s, c := range counts {
		entries = append(entries, entry{s, c})
	}

	symbols := make([]S, len(entries))
	h := make(nodeHeap, len(entries))
	for i, e := range entries {
		symbols[i] = e.sym
		h[i] = &treeNode{weight: e.weight, leaf: true, leafAt: i}
	}
	heap.Init(&h)

	for h.Len() > 1 {
		a := heap.Pop(&h).(*treeNode)
		b := heap.Pop(&h).(*treeNode)
		heap.Push(&h, &treeNode{weight: a.weight + b.weight, left: a, right: b})
	}

	lengths := make(map[S]int, len(entries))
	var walk func(n *treeNode, depth int)
	walk = func(n *treeNode, depth int) {
		if n.leaf {
			lengths[symbols[n.leafAt]] = depth
			return
		}
		walk(n.left, depth+1)
		walk(n.right, depth+1)
	}
	if h.Len() == 1 {
		root := h[0]
		if root.leaf {
			lengths[symbols[root.leafAt]] = 1
		} else {
			walk(root, 0)
		}
	}

	return lengths
}

type lengthSlot struct {
	count int
	slots int
}

// lengthSlots yields the number of codes available at each length, per
// spec: slots[1] = 2, slots[l+1] = (slots[l] - count[l]) << 1.
func lengthSlots(lengthCounts []int) []lengthSlot {
	out := make([]lengthSlot, len(lengthCounts))
	slots := 2
	for i, count := range lengthCounts {
		out[i] = lengthSlot{count: count, slots: slots}
		slots = (slots - count) << 1
	}
	return out
}

func (c *Code[S]) buildCodeMap() {
	m := make(map[S]packedCode, len(c.symbols))
	var code uint64
	index := 0
	for length, count := range c.lengthCounts {
		for x := 0; x < count; x++ {
			m[c.symbols[index+x]] = packedCode{length: length + 1, code: code + uint64(x)}
		}
		code = (code + uint64(count)) << 1
		index += count
	}
	c.codeMap = m
}

// WriteSymbol writes symbol's canonical code to w.
func (c *Code[S]) WriteSymbol(symbol S, w *bitio.Writer) error {
	if c.codeMap == nil {
		c.buildCodeMap()
	}
	pc, ok := c.codeMap[symbol]
	if !ok {
		return DecodeError{Reason: "symbol not in code"}
	}
	return w.WriteUint(pc.code, pc.length)
}

// ReadSymbol reads a symbol from r using this canonical code.
func (c *Code[S]) ReadSymbol(r *bitio.Reader) (S, error) {
	var code, first uint64
	index := 0
	for _, count := range c.lengthCounts {
		bit, err := r.ReadUint(1)
		if err != nil {
			var zero S
			return zero, err
		}
		code = code<<1 | bit
		if code < first+uint64(count) {
			return c.symbols[index+int(code-first)], nil
		}
		index += count
		first = (first + uint64(count)) << 1
	}

	var zero S
	return zero, DecodeError{Reason: "max code length exceeded while reading symbol"}
}

// WriteCodebook serialises the codebook against a known alphabet, using
// a shrinking-alphabet index for each symbol in canonical order.
func (c *Code[S]) WriteCodebook(alphabet []S, w *bitio.Writer) error {
	remaining := append([]S(nil), alphabet...)

	for _, ls := range lengthSlots(c.lengthCounts) {
		countBits := bitLen(ls.slots)
		if err := w.WriteUint(uint64(ls.count), countBits); err != nil {
			return err
		}
	}

	for _, symbol := range c.symbols {
		lenBits := bitLen(len(remaining) - 1)
		index := indexOf(remaining, symbol)
		if index < 0 {
			return ConstructionError{Reason: "symbol not present in alphabet"}
		}
		if err := w.WriteUint(uint64(index), lenBits); err != nil {
			return err
		}
		remaining = append(remaining[:index], remaining[index+1:]...)
	}

	return nil
}

// ReadCodebook reads a canonical Huffman codebook from r against a known
// alphabet.
func ReadCodebook[S comparable](r *bitio.Reader, alphabet []S) (*Code[S], error) {
	remaining := append([]S(nil), alphabet...)
	var lengthCounts []int

	slots := 2
	for slots != 0 {
		countBits := bitLen(slots)
		count, err := r.ReadUint(countBits)
		if err != nil {
			return nil, err
		}
		lengthCounts = append(lengthCounts, int(count))
		slots = (slots - int(count)) << 1
	}

	numSymbols := 0
	for _, c := range lengthCounts {
		numSymbols += c
	}

	symbols := make([]S, 0, numSymbols)
	for i := 0; i < numSymbols; i++ {
		lenBits := bitLen(len(remaining) - 1)
		index, err := r.ReadUint(lenBits)
		if err != nil {
			return nil, err
		}
		if int(index) >= len(remaining) {
			return nil, DecodeError{Reason: "codebook alphabet index out of range"}
		}
		symbols = append(symbols, remaining[index])
		remaining = append(remaining[:index], remaining[index+1:]...)
	}

	return New(symbols, lengthCounts)
}

func indexOf[S comparable](xs []S, x S) int {
	for i, v := range xs {
		if v == x {
			return i
		}
	}
	return -1
}

// bitLen returns the number of bits needed to represent values in
// [0, n], i.e. ceil(log2(n+1)), matching (n).bit_length() in the source.
func bitLen(n int) int {
	if n <= 0 {
		return 0
	}
	b := 0
	for n > 0 {
		n >>= 1
		b++
	}
	return b
}
