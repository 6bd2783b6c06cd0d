// Copyright 2025 The Etc2 Authors.
//
// Licensed under the Apache License, Version 2.0 <LICENSE-APACHE or
// https://www.apache.org/licenses/LICENSE-2.0>. This file may not be copied,
// modified, or distributed except according to those terms.
//
// SPDX-License-Identifier: Apache-2.0

package codecexr

import (
	"bytes"
	"io"

	"github.com/klauspost/compress/zlib"
)

// unzip reverses OpenEXR's ZIP/ZIPS chunk encoding: zlib-inflate, undo the
// cumulative byte predictor, then de-interleave the even/odd byte halves
// back into their original order.
func unzip(compressed []byte, uncompressedLen int) ([]byte, error) {
	zr, err := zlib.NewReader(bytes.NewReader(compressed))
	if err != nil {
		return nil, err
	}
	defer zr.Close()
	tmp := make([]byte, uncompressedLen)
	if _, err := io.ReadFull(zr, tmp); err != nil {
		return nil, err
	}

	for i := 1; i < len(tmp); i++ {
		tmp[i] = tmp[i] + tmp[i-1] - 128
	}

	out := make([]byte, len(tmp))
	half := (len(tmp) + 1) / 2
	t1, t2 := tmp[:half], tmp[half:]
	for i := 0; i < len(out); i += 2 {
		out[i] = t1[i/2]
	}
	for i := 1; i < len(out); i += 2 {
		out[i] = t2[i/2]
	}
	return out, nil
}

// zip applies OpenEXR's ZIP/ZIPS chunk encoding: interleave even/odd
// bytes, apply the cumulative byte predictor, then zlib-deflate.
func zip(raw []byte) ([]byte, error) {
	n := len(raw)
	half := (n + 1) / 2
	tmp := make([]byte, n)
	for i := 0; i < n; i += 2 {
		tmp[i/2] = raw[i]
	}
	for i := 1; i < n; i += 2 {
		tmp[half+i/2] = raw[i]
	}

	for i := len(tmp) - 1; i > 0; i-- {
		tmp[i] = tmp[i] - tmp[i-1] + 128
	}

	var buf bytes.Buffer
	zw, err := zlib.NewWriterLevel(&buf, 6)
	if err != nil {
		return nil, err
	}
	if _, err := zw.Write(tmp); err != nil {
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
