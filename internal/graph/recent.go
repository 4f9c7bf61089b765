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

// recentList is the move-to-front recency list kept for one reference
// context: the pool indices most recently seen through that field
// position, most-recent first, alongside each entry's concrete type so
// a rank can be computed restricted to a context's admissible types.
// Stored as two parallel slices rather than a slice of structs — the
// type tags are scanned independently of the indices during a
// context-filtered rank lookup.
type recentList struct {
	indices []int
	types   []string
}

func (r *recentList) insertFront(idx int, typ string) {
	r.indices = append(r.indices, 0)
	copy(r.indices[1:], r.indices[:len(r.indices)-1])
	r.indices[0] = idx

	r.types = append(r.types, "")
	copy(r.types[1:], r.types[:len(r.types)-1])
	r.types[0] = typ
}

func (r *recentList) removeAt(pos int) {
	r.indices = append(r.indices[:pos], r.indices[pos+1:]...)
	r.types = append(r.types[:pos], r.types[pos+1:]...)
}

// findAndRemove locates idx among entries whose type is in validTypes,
// returning its rank within that filtered view (and removing it), for
// the encoder's back-reference path.
func (r *recentList) findAndRemove(idx int, validTypes map[string]bool) (rank int, ok bool) {
	count := 0
	for i, x := range r.indices {
		if !validTypes[r.types[i]] {
			continue
		}
		if x == idx {
			r.removeAt(i)
			return count, true
		}
		count++
	}
	return -1, false
}

// popAtValidRank removes and returns the entry at rank within the
// filtered (validTypes-only) view, for the decoder's back-reference path.
func (r *recentList) popAtValidRank(rank int, validTypes map[string]bool) (idx int, ok bool) {
	count := 0
	for i, x := range r.indices {
		if !validTypes[r.types[i]] {
			continue
		}
		if count == rank {
			r.removeAt(i)
			return x, true
		}
		count++
	}
	return -1, false
}
