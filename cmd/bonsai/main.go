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

// Command bonsai encodes and decodes typed ASTs to and from the bonsai
// container format.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/ZaparooProject/bonsai"
	"github.com/ZaparooProject/bonsai/schema"
	"github.com/ZaparooProject/bonsai/specs/shiftes5"
)

var (
	specName = flag.String("spec", "shiftes5", "registered schema to encode/decode against")
	verbose  = flag.Bool("verbose", false, "print the output file's total size in bytes to stderr")
	version  = flag.Bool("version", false, "print version and exit")
)

const appVersion = "0.1.0"

var registeredSpecs = map[string]*schema.Schema{
	"shiftes5": shiftes5.Schema,
}

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] encode|decode INPUT OUTPUT\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Encodes or decodes a typed AST against a registered schema.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s encode ast.json ast.bonsai\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s decode ast.bonsai ast.json\n", os.Args[0])
	}
	flag.Parse()

	if *version {
		fmt.Printf("bonsai version %s\n", appVersion)
		os.Exit(0)
	}

	args := flag.Args()
	if len(args) != 3 {
		fmt.Fprintf(os.Stderr, "Error: expected encode|decode INPUT OUTPUT\n")
		flag.Usage()
		os.Exit(1)
	}

	sch, ok := registeredSpecs[*specName]
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown spec %q\n", *specName)
		os.Exit(1)
	}

	cmd, inputPath, outputPath := args[0], args[1], args[2]

	in, err := os.Open(inputPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening input: %v\n", err)
		os.Exit(1)
	}
	defer in.Close()

	out, err := os.Create(outputPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	switch cmd {
	case "encode":
		err = runEncode(sch, in, out)
	case "decode":
		err = runDecode(sch, in, out)
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown command %q (want encode or decode)\n", cmd)
		flag.Usage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runEncode(sch *schema.Schema, in *os.File, out *os.File) error {
	if err := bonsai.EncodeJSON(sch, in, out); err != nil {
		return err
	}
	if *verbose {
		reportSize(out)
	}
	return nil
}

func runDecode(sch *schema.Schema, in *os.File, out *os.File) error {
	if err := bonsai.DecodeJSON(sch, in, out); err != nil {
		return err
	}
	if *verbose {
		reportSize(out)
	}
	return nil
}

func reportSize(f *os.File) {
	info, err := f.Stat()
	if err != nil {
		return
	}
	fmt.Fprintf(os.Stderr, "%s: %d bytes\n", f.Name(), info.Size())
}
