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

import "fmt"

// FormatError indicates the outer container is not a bonsai container:
// a missing magic, a truncated section, or a length field inconsistent
// with the bytes actually present.
type FormatError struct {
	Reason string
}

func (e FormatError) Error() string {
	return fmt.Sprintf("bonsai: invalid container: %s", e.Reason)
}

// DecodeError indicates the graph bitstream itself is malformed: a
// canonical-code lookup that exceeded its maximum length, a codebook
// that fails to validate, an out-of-range enum index, or an out-of-range
// recent-nodes rank.
type DecodeError struct {
	Reason string
}

func (e DecodeError) Error() string {
	return fmt.Sprintf("bonsai: decode error: %s", e.Reason)
}

// SchemaViolationError indicates the input tree does not conform to its
// schema: an unrecognised node type, or a field value whose shape does
// not match its declared kind.
type SchemaViolationError struct {
	Reason string
}

func (e SchemaViolationError) Error() string {
	return fmt.Sprintf("bonsai: schema violation: %s", e.Reason)
}

// InvariantError indicates an encoder-internal invariant did not hold:
// a reference target whose concrete type is not admitted by its context.
type InvariantError struct {
	Reason string
}

func (e InvariantError) Error() string {
	return fmt.Sprintf("bonsai: invariant violated: %s", e.Reason)
}
