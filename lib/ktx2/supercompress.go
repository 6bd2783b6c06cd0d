// Copyright 2025 The Etc2 Authors.
//
// Licensed under the Apache License, Version 2.0 <LICENSE-APACHE or
// https://www.apache.org/licenses/LICENSE-2.0>. This file may not be copied,
// modified, or distributed except according to those terms.
//
// SPDX-License-Identifier: Apache-2.0

package ktx2

import (
	"bytes"
	"io"

	"github.com/klauspost/compress/zlib"
)

// SupercompressionScheme identifies how a KTX2 level's bytes are encoded
// on disk, independent of the pixel format.
type SupercompressionScheme uint32

const (
	SchemeNone SupercompressionScheme = 0
	SchemeZlib SupercompressionScheme = 3
)

// decompressor abstracts the supercompression codec so the level cache in
// Provider doesn't need to know which scheme produced a level's bytes.
type decompressor interface {
	decompress(compressed []byte, uncompressedLength int64) ([]byte, error)
}

type identityDecompressor struct{}

func (identityDecompressor) decompress(compressed []byte, uncompressedLength int64) ([]byte, error) {
	if int64(len(compressed)) != uncompressedLength {
		return nil, ErrLevelLengthMismatch
	}
	return compressed, nil
}

type zlibDecompressor struct{}

func (zlibDecompressor) decompress(compressed []byte, uncompressedLength int64) ([]byte, error) {
	zr, err := zlib.NewReader(bytes.NewReader(compressed))
	if err != nil {
		return nil, err
	}
	defer zr.Close()
	out := make([]byte, uncompressedLength)
	if _, err := io.ReadFull(zr, out); err != nil {
		return nil, err
	}
	if n, _ := zr.Read(make([]byte, 1)); n != 0 {
		return nil, ErrLevelLengthMismatch
	}
	return out, nil
}

func decompressorFor(scheme SupercompressionScheme) (decompressor, bool) {
	switch scheme {
	case SchemeNone:
		return identityDecompressor{}, true
	case SchemeZlib:
		return zlibDecompressor{}, true
	default:
		return nil, false
	}
}

// compressZlibLevel6 compresses src with zlib at level 6, flushing at
// Z_FINISH (zlib.Writer.Close does this).
func compressZlibLevel6(src []byte) ([]byte, error) {
	var buf bytes.Buffer
	zw, err := zlib.NewWriterLevel(&buf, 6)
	if err != nil {
		return nil, err
	}
	if _, err := zw.Write(src); err != nil {
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
