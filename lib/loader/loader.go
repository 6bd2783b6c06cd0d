// Copyright 2025 The Etc2 Authors.
//
// Licensed under the Apache License, Version 2.0 <LICENSE-APACHE or
// https://www.apache.org/licenses/LICENSE-2.0>. This file may not be copied,
// modified, or distributed except according to those terms.
//
// SPDX-License-Identifier: Apache-2.0

// ----------------

// Package loader implements extension-hinted, try-in-order dispatch
// across this module's codec adapters: given a stream and an optional
// extension hint, it tries the hinted codec first, then every other
// codec in a fixed order, rewinding the stream between attempts. The
// STB fallback adapter is always tried last, hint or not.
package loader

import (
	"io"
	"strings"

	"github.com/nigeltao/imgio/lib/codecexr"
	"github.com/nigeltao/imgio/lib/codecjpeg"
	"github.com/nigeltao/imgio/lib/codecpng"
	"github.com/nigeltao/imgio/lib/codecstb"
	"github.com/nigeltao/imgio/lib/codecwebp"
	"github.com/nigeltao/imgio/lib/imgprov"
	"github.com/nigeltao/imgio/lib/iostream"
	"github.com/nigeltao/imgio/lib/ktx1"
	"github.com/nigeltao/imgio/lib/ktx2"
)

// entry pairs a canonical file extension with the codec that owns it.
// decode receives a fresh io.Reader positioned at the start of the
// stream on every attempt.
type entry struct {
	ext    string
	decode func(r io.Reader) (imgprov.Provider, error)
}

// table is the fixed dispatch order: typed codecs first (in no
// particular priority relative to each other, since only one can match
// the extension hint), then the STB fallback last.
var table = []entry{
	{".ktx", ktx1.Decode},
	{".ktx2", decodeKTX2ViaReader},
	{".png", codecpng.Decode},
	{".jpg", codecjpeg.Decode},
	{".jpeg", codecjpeg.Decode},
	{".webp", codecwebp.Decode},
	{".exr", func(r io.Reader) (imgprov.Provider, error) { return codecexr.Decode(r, false) }},
	{"", codecstb.Decode}, // STB fallback: no extension claims it, always tried last.
}

// decodeKTX2ViaReader adapts ktx2.Decode's iostream.Stream parameter to
// the table's uniform io.Reader signature: it reads the reader's
// remaining bytes into memory and wraps them in a MemStream. KTX2 files
// are read whole into memory regardless (spec.md §4.F), so this costs
// nothing beyond a second copy when r is itself memory-backed.
func decodeKTX2ViaReader(r io.Reader) (imgprov.Provider, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return ktx2.Decode(iostream.NewMemStream(b))
}

// Load tries to decode stream as an image, using ext (a filename
// extension such as ".png", case-insensitive, leading dot optional) as
// a hint for which codec to try first. It returns the first codec that
// succeeds; if every codec fails, it returns the error from the last
// attempt (the STB fallback).
//
// On failure of each attempt, stream is rewound to its start before the
// next codec is tried: per spec.md §4.H, a codec takes ownership of the
// stream only on success.
func Load(stream iostream.Stream, ext string) (imgprov.Provider, error) {
	order := orderFor(normalizeExt(ext))

	var lastErr error
	for _, e := range order {
		if _, err := stream.Seek(0, iostream.SeekSet); err != nil {
			return nil, err
		}
		p, err := e.decode(&streamReader{s: stream})
		if err == nil {
			return p, nil
		}
		lastErr = err
	}
	return nil, lastErr
}

func normalizeExt(ext string) string {
	ext = strings.ToLower(ext)
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}

// orderFor returns table reordered so the hinted extension's entry (if
// any) comes first, preserving the relative order of everything else.
func orderFor(ext string) []entry {
	if ext == "" {
		return table
	}
	order := make([]entry, 0, len(table))
	var hinted *entry
	for i := range table {
		if table[i].ext == ext {
			hinted = &table[i]
			continue
		}
	}
	if hinted == nil {
		return table
	}
	order = append(order, *hinted)
	for i := range table {
		if table[i].ext != ext {
			order = append(order, table[i])
		}
	}
	return order
}

// streamReader adapts iostream.Stream to io.Reader so codecs written
// against the standard Go reader contract can be driven by the same
// Stream the ktx2 and STB-fallback paths already use. ReadPartial
// reports end-of-stream as (0, nil); this wrapper translates that into
// io.EOF the way os.File and bytes.Reader do.
type streamReader struct {
	s iostream.Stream
}

func (r *streamReader) Read(buf []byte) (int, error) {
	n, err := r.s.ReadPartial(buf)
	if err != nil {
		return n, err
	}
	if n == 0 {
		return 0, io.EOF
	}
	return n, nil
}
