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

import "github.com/ZaparooProject/bonsai/internal/bitio"

// writeNumber emits d's digit sequence against vardecimal, a sign bit
// (only if any digits were written), and the exponent.
func writeNumber(w *bitio.Writer, d Decimal) error {
	digits := d.Digits
	if d.IsZero() {
		digits = nil
	}
	for _, dg := range digits {
		if err := vardecimal.WriteSymbol(digitSymbol{digit: int8(dg)}, w); err != nil {
			return err
		}
	}
	if err := vardecimal.WriteSymbol(digitSymbol{end: true}, w); err != nil {
		return err
	}
	if len(digits) > 0 {
		if err := w.WriteBool(d.Sign == 1); err != nil {
			return err
		}
	}
	return w.WriteSE(int64(d.Exponent), 0)
}

// readNumber is writeNumber's inverse.
func readNumber(r *bitio.Reader) (Decimal, error) {
	var digits []int
	for {
		sym, err := vardecimal.ReadSymbol(r)
		if err != nil {
			return Decimal{}, err
		}
		if sym.end {
			break
		}
		digits = append(digits, int(sym.digit))
	}

	sign := 0
	if len(digits) > 0 {
		b, err := r.ReadBool()
		if err != nil {
			return Decimal{}, err
		}
		if b {
			sign = 1
		}
	}

	exp, err := r.ReadSE(0)
	if err != nil {
		return Decimal{}, err
	}

	if len(digits) == 0 {
		digits = []int{0}
	}
	return Decimal{Sign: sign, Digits: digits, Exponent: int(exp)}, nil
}
