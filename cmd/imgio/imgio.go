// Copyright 2025 The Etc2 Authors.
//
// Licensed under the Apache License, Version 2.0 <LICENSE-APACHE or
// https://www.apache.org/licenses/LICENSE-2.0>. This file may not be copied,
// modified, or distributed except according to those terms.
//
// SPDX-License-Identifier: Apache-2.0

// ----------------

// imgio inspects and converts GPU-ish image containers: KTX1, KTX2,
// PNG, JPEG, WebP, EXR, and whatever the STB fallback decoder
// recognizes.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nigeltao/imgio/lib/imgio"
	"github.com/nigeltao/imgio/lib/imgprov"
)

const usageStr = `imgio inspects and converts image containers.

Usage: choose one of

    imgio info <path>
    imgio convert -out=<path> <path>

info prints the size, format, layer/mip counts and cubemap-ness of the
input image.

convert loads the input image (dispatched by its extension, falling back
to content sniffing) and writes it to -out, dispatched by -out's
extension: one of .ktx, .ktx2, .png, .exr.

convert also accepts:

    -zlib=true|false   supercompress KTX2 levels with zlib (default true)
`

var ErrMissingArg = errors.New("imgio: missing required argument")

func main() {
	if err := main1(); err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
}

func main1() error {
	flag.Usage = func() { os.Stderr.WriteString(usageStr) }
	if len(os.Args) < 2 {
		flag.Usage()
		return ErrMissingArg
	}

	switch os.Args[1] {
	case "info":
		return runInfo(os.Args[2:])
	case "convert":
		return runConvert(os.Args[2:])
	case "-help", "--help", "help":
		flag.Usage()
		return nil
	default:
		flag.Usage()
		return fmt.Errorf("imgio: unknown subcommand %q", os.Args[1])
	}
}

func runInfo(args []string) error {
	fs := flag.NewFlagSet("info", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return ErrMissingArg
	}

	p, err := imgio.LoadImagePath(fs.Arg(0))
	if err != nil {
		return err
	}
	printInfo(os.Stdout, fs.Arg(0), p)
	return nil
}

func printInfo(w *os.File, path string, p imgprov.Provider) {
	fmt.Fprintf(w, "%s\n", path)
	fmt.Fprintf(w, "  size:    %dx%dx%d\n", p.Size().W, p.Size().H, p.Size().D)
	fmt.Fprintf(w, "  format:  %v\n", p.Format())
	fmt.Fprintf(w, "  layers:  %d\n", p.Layers())
	fmt.Fprintf(w, "  mips:    %d\n", p.Mips())
	fmt.Fprintf(w, "  cubemap: %v\n", p.Cubemap())
}

func runConvert(args []string) error {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	out := fs.String("out", "", "output path; its extension selects the writer")
	zlib := fs.Bool("zlib", true, "supercompress KTX2 levels with zlib")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 || *out == "" {
		return ErrMissingArg
	}

	p, err := imgio.LoadImagePath(fs.Arg(0))
	if err != nil {
		return err
	}

	f, err := os.Create(*out)
	if err != nil {
		return err
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(*out)) {
	case ".ktx":
		return imgio.WriteKTX(f, p)
	case ".ktx2":
		return imgio.WriteKTX2(f, p, *zlib)
	case ".png":
		return imgio.WritePNG(f, p)
	case ".exr":
		f.Close()
		return imgio.WriteEXR(*out, p)
	default:
		return fmt.Errorf("imgio: unrecognized -out extension %q", filepath.Ext(*out))
	}
}
