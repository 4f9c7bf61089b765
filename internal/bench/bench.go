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

//go:build bench

// Package bench compares the string table's brotli-compressed size
// against zstd and flate, for developers sanity-checking a schema
// change. It is never linked into the codec's normal build.
package bench

import (
	"bytes"
	"compress/flate"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
)

// Result holds one codec's compressed size for the same input.
type Result struct {
	Codec string
	Bytes int
}

// Compare compresses data with zstd and flate and returns their sizes
// alongside the brotli size the caller already has, in the order
// brotli, zstd, flate, for a developer to eyeball which one actually
// wins on this schema's string table.
func Compare(data []byte, brotliSize int) ([]Result, error) {
	results := []Result{{Codec: "brotli", Bytes: brotliSize}}

	zstdSize, err := zstdSize(data)
	if err != nil {
		return nil, fmt.Errorf("zstd: %w", err)
	}
	results = append(results, Result{Codec: "zstd", Bytes: zstdSize})

	flateSize, err := flateSize(data)
	if err != nil {
		return nil, fmt.Errorf("flate: %w", err)
	}
	results = append(results, Result{Codec: "flate", Bytes: flateSize})

	return results, nil
}

func zstdSize(data []byte) (int, error) {
	var buf bytes.Buffer
	w, err := zstd.NewWriter(&buf, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
	if err != nil {
		return 0, err
	}
	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return 0, err
	}
	if err := w.Close(); err != nil {
		return 0, err
	}
	return buf.Len(), nil
}

func flateSize(data []byte) (int, error) {
	var buf bytes.Buffer
	w, err := flate.NewWriter(&buf, flate.BestCompression)
	if err != nil {
		return 0, err
	}
	if _, err := io.Copy(w, bytes.NewReader(data)); err != nil {
		_ = w.Close()
		return 0, err
	}
	if err := w.Close(); err != nil {
		return 0, err
	}
	return buf.Len(), nil
}
