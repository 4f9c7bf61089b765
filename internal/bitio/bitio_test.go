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

package bitio

import "testing"

func TestUintRoundTrip(t *testing.T) {
	cases := []struct {
		value uint64
		nbits int
	}{
		{0, 0},
		{0, 1},
		{1, 1},
		{5, 3},
		{255, 8},
		{1, 64},
		{1<<64 - 1, 64},
		{12345, 20},
	}

	for _, c := range cases {
		w := NewWriter()
		if err := w.WriteUint(c.value, c.nbits); err != nil {
			t.Fatalf("WriteUint(%d, %d): %v", c.value, c.nbits, err)
		}
		if err := w.Flush(); err != nil {
			t.Fatalf("Flush: %v", err)
		}

		r := NewReader(w.Bytes())
		got, err := r.ReadUint(c.nbits)
		if err != nil {
			t.Fatalf("ReadUint(%d): %v", c.nbits, err)
		}
		if got != c.value {
			t.Errorf("value=%d nbits=%d: got %d", c.value, c.nbits, got)
		}
	}
}

func TestUERoundTrip(t *testing.T) {
	values := []uint64{0, 1, 2, 123, 456, 1000000}
	orders := []int{0, 4, 10}

	for _, order := range orders {
		for _, v := range values {
			w := NewWriter()
			if err := w.WriteUE(v, order); err != nil {
				t.Fatalf("WriteUE(%d, %d): %v", v, order, err)
			}
			if err := w.Flush(); err != nil {
				t.Fatalf("Flush: %v", err)
			}

			r := NewReader(w.Bytes())
			got, err := r.ReadUE(order)
			if err != nil {
				t.Fatalf("ReadUE(order=%d) after writing %d: %v", order, v, err)
			}
			if got != v {
				t.Errorf("order=%d value=%d: got %d", order, v, got)
			}
		}
	}
}

func TestSERoundTrip(t *testing.T) {
	values := []int64{0, 1, -1, 123456, -123456}
	orders := []int{0, 4, 10}

	for _, order := range orders {
		for _, v := range values {
			w := NewWriter()
			if err := w.WriteSE(v, order); err != nil {
				t.Fatalf("WriteSE(%d, %d): %v", v, order, err)
			}
			if err := w.Flush(); err != nil {
				t.Fatalf("Flush: %v", err)
			}

			r := NewReader(w.Bytes())
			got, err := r.ReadSE(order)
			if err != nil {
				t.Fatalf("ReadSE(order=%d) after writing %d: %v", order, v, err)
			}
			if got != v {
				t.Errorf("order=%d value=%d: got %d", order, v, got)
			}
		}
	}
}

func TestBoolRoundTrip(t *testing.T) {
	w := NewWriter()
	vals := []bool{true, false, false, true, true}
	for _, v := range vals {
		if err := w.WriteBool(v); err != nil {
			t.Fatalf("WriteBool: %v", err)
		}
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	r := NewReader(w.Bytes())
	for i, want := range vals {
		got, err := r.ReadBool()
		if err != nil {
			t.Fatalf("ReadBool[%d]: %v", i, err)
		}
		if got != want {
			t.Errorf("bit %d: got %v want %v", i, got, want)
		}
	}
}

func TestSequentialMixedFields(t *testing.T) {
	w := NewWriter()
	_ = w.WriteUint(7, 3)
	_ = w.WriteBool(true)
	_ = w.WriteUE(42, 4)
	_ = w.WriteSE(-17, 0)
	_ = w.WriteUint(0, 0)
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	r := NewReader(w.Bytes())
	if v, err := r.ReadUint(3); err != nil || v != 7 {
		t.Fatalf("ReadUint(3) = %d, %v", v, err)
	}
	if v, err := r.ReadBool(); err != nil || !v {
		t.Fatalf("ReadBool = %v, %v", v, err)
	}
	if v, err := r.ReadUE(4); err != nil || v != 42 {
		t.Fatalf("ReadUE(4) = %d, %v", v, err)
	}
	if v, err := r.ReadSE(0); err != nil || v != -17 {
		t.Fatalf("ReadSE(0) = %d, %v", v, err)
	}
	if v, err := r.ReadUint(0); err != nil || v != 0 {
		t.Fatalf("ReadUint(0) = %d, %v", v, err)
	}
}

func TestSeekRewindsToStart(t *testing.T) {
	w := NewWriter()
	if err := w.WriteUint(0xAB, 8); err != nil {
		t.Fatal(err)
	}
	if err := w.Seek(0); err != nil {
		t.Fatalf("Seek(0): %v", err)
	}
	if err := w.WriteUint(0xCD, 8); err != nil {
		t.Fatal(err)
	}
	if err := w.Flush(); err != nil {
		t.Fatal(err)
	}

	r := NewReader(w.Bytes())
	got, err := r.ReadUint(8)
	if err != nil {
		t.Fatal(err)
	}
	if got != 0xCD {
		t.Errorf("got %x, want 0xCD", got)
	}
}

func TestTellTracksPosition(t *testing.T) {
	w := NewWriter()
	if w.Tell() != 0 {
		t.Fatalf("initial Tell() = %d", w.Tell())
	}
	_ = w.WriteUint(1, 3)
	if w.Tell() != 3 {
		t.Fatalf("Tell() after 3 bits = %d", w.Tell())
	}
	_ = w.WriteUint(1, 5)
	if w.Tell() != 8 {
		t.Fatalf("Tell() after 8 bits = %d", w.Tell())
	}
}
