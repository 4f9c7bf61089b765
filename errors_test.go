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
	"errors"
	"strings"
	"testing"
)

func TestErrorKindsImplementError(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want string
	}{
		{"FormatError", FormatError{Reason: "bad magic"}, "bad magic"},
		{"DecodeError", DecodeError{Reason: "rank out of range"}, "rank out of range"},
		{"SchemaViolationError", SchemaViolationError{Reason: "unknown type"}, "unknown type"},
		{"InvariantError", InvariantError{Reason: "target not admitted"}, "target not admitted"},
	}
	for _, c := range cases {
		if !strings.Contains(c.err.Error(), c.want) {
			t.Errorf("%s.Error() = %q, want it to contain %q", c.name, c.err.Error(), c.want)
		}
		var target interface{ Error() string }
		if !errors.As(c.err, &target) {
			t.Errorf("%s should satisfy the error interface via errors.As", c.name)
		}
	}
}
