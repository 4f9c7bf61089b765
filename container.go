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
	"encoding/binary"
	"io"
	"strings"

	"github.com/andybalholm/brotli"
)

// magic identifies a bonsai container: the two characters "盆栽"
// ("bonsai", literally "tray planting") encoded UTF-16 big-endian.
var magic = [4]byte{0x76, 0xC6, 0x68, 0x3D}

// writeContainer assembles the outer framing: magic, the brotli-
// compressed string table (NUL-joined UTF-8), then the graph bitstream.
func writeContainer(w io.Writer, strs []string, graphBitstream []byte) error {
	if _, err := w.Write(magic[:]); err != nil {
		return err
	}

	stringTableBin := []byte(joinNUL(strs))

	var compressed bytes.Buffer
	bw := brotli.NewWriter(&compressed)
	if _, err := bw.Write(stringTableBin); err != nil {
		return err
	}
	if err := bw.Close(); err != nil {
		return err
	}

	if err := writeUint32(w, uint32(len(stringTableBin))); err != nil {
		return err
	}
	if err := writeUint32(w, uint32(compressed.Len())); err != nil {
		return err
	}
	if _, err := w.Write(compressed.Bytes()); err != nil {
		return err
	}

	if err := writeUint32(w, uint32(len(graphBitstream))); err != nil {
		return err
	}
	_, err := w.Write(graphBitstream)
	return err
}

// readContainer parses the outer framing and returns the decompressed
// string table entries and the raw graph bitstream bytes.
func readContainer(data []byte) (strs []string, graphBitstream []byte, err error) {
	if len(data) < 4 || data[0] != magic[0] || data[1] != magic[1] || data[2] != magic[2] || data[3] != magic[3] {
		return nil, nil, FormatError{Reason: "missing or incorrect magic bytes"}
	}
	r := bytes.NewReader(data[4:])

	uncompressedLen, err := readUint32(r)
	if err != nil {
		return nil, nil, FormatError{Reason: "truncated string-table length"}
	}
	compressedLen, err := readUint32(r)
	if err != nil {
		return nil, nil, FormatError{Reason: "truncated compressed-length field"}
	}

	compressed := make([]byte, compressedLen)
	if _, err := io.ReadFull(r, compressed); err != nil {
		return nil, nil, FormatError{Reason: "truncated string-table section"}
	}

	stringTableBin, err := io.ReadAll(brotli.NewReader(bytes.NewReader(compressed)))
	if err != nil {
		return nil, nil, FormatError{Reason: "corrupt brotli string-table section: " + err.Error()}
	}
	if uint32(len(stringTableBin)) != uncompressedLen {
		return nil, nil, FormatError{Reason: "decompressed string-table length does not match header"}
	}

	graphLen, err := readUint32(r)
	if err != nil {
		return nil, nil, FormatError{Reason: "truncated graph-bitstream length"}
	}
	graphBitstream = make([]byte, graphLen)
	if _, err := io.ReadFull(r, graphBitstream); err != nil {
		return nil, nil, FormatError{Reason: "truncated graph bitstream"}
	}

	// strings.Split("", "\x00") == []string{""}, matching Python's
	// b''.split(b'\0') — both yield one phantom empty entry for a
	// genuinely empty string table, which no String field decode ever
	// pops, so it's harmless to carry.
	return strings.Split(string(stringTableBin), "\x00"), graphBitstream, nil
}

func joinNUL(strs []string) string {
	return strings.Join(strs, "\x00")
}

func writeUint32(w io.Writer, v uint32) error {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	_, err := w.Write(b[:])
	return err
}

func readUint32(r io.Reader) (uint32, error) {
	var b [4]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(b[:]), nil
}
