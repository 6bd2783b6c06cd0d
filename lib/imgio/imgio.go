// Copyright 2025 The Etc2 Authors.
//
// Licensed under the Apache License, Version 2.0 <LICENSE-APACHE or
// https://www.apache.org/licenses/LICENSE-2.0>. This file may not be copied,
// modified, or distributed except according to those terms.
//
// SPDX-License-Identifier: Apache-2.0

package imgio

import (
	"io"
	"os"
	"path/filepath"

	"github.com/nigeltao/imgio/lib/codecexr"
	"github.com/nigeltao/imgio/lib/codecpng"
	"github.com/nigeltao/imgio/lib/imgprov"
	"github.com/nigeltao/imgio/lib/iostream"
	"github.com/nigeltao/imgio/lib/ktx1"
	"github.com/nigeltao/imgio/lib/ktx2"
	"github.com/nigeltao/imgio/lib/loader"
	"github.com/nigeltao/imgio/lib/pixfmt"
)

// LoadImage decodes stream as whichever container loader.Load
// recognizes, using ext (a filename extension, leading dot optional) as
// a hint for which codec to try first.
func LoadImage(stream iostream.Stream, ext string) (imgprov.Provider, error) {
	p, err := loader.Load(stream, ext)
	if err != nil {
		return nil, NewReadError(InvalidType, err)
	}
	return p, nil
}

// LoadImagePath opens path and decodes it, using the path's own
// extension as the loader hint.
func LoadImagePath(path string) (imgprov.Provider, error) {
	f, err := iostream.OpenFile(path)
	if err != nil {
		return nil, NewReadError(CantOpen, err)
	}
	defer f.Close()
	return LoadImage(f, filepath.Ext(path))
}

// LoadImageBytes decodes an in-memory container with no extension hint.
func LoadImageBytes(b []byte) (imgprov.Provider, error) {
	return LoadImage(iostream.NewMemStream(b), "")
}

// LoadImageLayers loads every path in paths independently, then
// combines them into one multi-layer (or, if asSlices, one
// multi-slice-volume) Provider. Every loaded image must share the same
// size and format; cubemap requires len(paths) to be a multiple of 6.
func LoadImageLayers(paths []string, cubemap, asSlices bool) (imgprov.Provider, error) {
	subs := make([]imgprov.Provider, len(paths))
	for i, path := range paths {
		p, err := LoadImagePath(path)
		if err != nil {
			return nil, err
		}
		subs[i] = p
	}
	if asSlices {
		return imgprov.WrapVolumeSlices(subs)
	}
	return imgprov.WrapLayers(subs, cubemap)
}

// WriteKTX writes p as a KTX 1.1 container.
func WriteKTX(w io.Writer, p imgprov.Provider) error {
	if err := ktx1.Encode(w, p); err != nil {
		return NewWriteError(WriteUnsupportedFormat, err)
	}
	return nil
}

// WriteKTX2 writes p as a KTX 2.0 container, zlib-supercompressing every
// level when useZlib is true.
func WriteKTX2(w io.Writer, p imgprov.Provider, useZlib bool) error {
	if err := ktx2.Encode(w, p, useZlib); err != nil {
		return NewWriteError(WriteUnsupportedFormat, err)
	}
	return nil
}

// WritePNG writes p's mip 0, layer 0 face as a PNG.
func WritePNG(w io.Writer, p imgprov.Provider) error {
	if err := codecpng.Encode(w, p); err != nil {
		return NewWriteError(WriteUnsupportedFormat, err)
	}
	return nil
}

// WriteEXR writes p's mip 0, layer 0 face as an OpenEXR image. path is
// opened for writing; unlike the other Write* functions, this mirrors
// the upstream writeExr signature (spec.md §6), which is path-based
// rather than stream-based.
func WriteEXR(path string, p imgprov.Provider) error {
	f, err := os.Create(path)
	if err != nil {
		return NewWriteError(WriteCantOpen, err)
	}
	defer f.Close()
	if err := codecexr.Encode(f, p); err != nil {
		return NewWriteError(WriteUnsupportedFormat, err)
	}
	return nil
}

// ReadImageData copies (mip, layer) of p into a freshly allocated,
// tightly packed blob.
func ReadImageData(p imgprov.Provider, mip, layer int) ([]byte, error) {
	size := pixfmt.SizeBytes(p.Size(), mip, p.Format())
	dst := make([]byte, size)
	if err := p.ReadInto(dst, mip, layer); err != nil {
		return nil, NewReadError(Internal, err)
	}
	return dst, nil
}
