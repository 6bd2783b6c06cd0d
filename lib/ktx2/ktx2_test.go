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
	"testing"

	"github.com/nigeltao/imgio/lib/imgprov"
	"github.com/nigeltao/imgio/lib/iostream"
	"github.com/nigeltao/imgio/lib/pixfmt"
)

func buildCubemapNoLayers(tt *testing.T) imgprov.Provider {
	size := pixfmt.Extent3D{W: 4, H: 4, D: 1}
	mips := pixfmt.NumMipLevels(size) // 3 for a 4x4 base
	faces := make([][]byte, mips*6)
	for m := 0; m < mips; m++ {
		n := pixfmt.SizeBytes(size, m, pixfmt.R8G8B8A8Srgb)
		for f := 0; f < 6; f++ {
			faces[m*6+f] = bytes.Repeat([]byte{byte(m*10 + f)}, int(n))
		}
	}
	p, err := imgprov.NewOwningFaces(size, pixfmt.R8G8B8A8Srgb, 6, mips, true, faces)
	if err != nil {
		tt.Fatalf("NewOwningFaces: %v", err)
	}
	return p
}

func TestEncodeCubemapWithoutLayersUncompressedLength(tt *testing.T) {
	p := buildCubemapNoLayers(tt)

	var buf bytes.Buffer
	if err := Encode(&buf, p, false); err != nil {
		tt.Fatalf("Encode: %v", err)
	}

	got, err := Decode(iostream.NewMemStream(buf.Bytes()))
	if err != nil {
		tt.Fatalf("Decode: %v", err)
	}
	kp := got.(*Provider)
	if kp.levels[0].uncompressedLength != 384 {
		tt.Errorf("levels[0].uncompressedLength = %d, want 384", kp.levels[0].uncompressedLength)
	}
	if got.Layers() != 6 || !got.Cubemap() {
		tt.Errorf("Layers/Cubemap = %d/%v, want 6/true", got.Layers(), got.Cubemap())
	}

	for m := 0; m < p.Mips(); m++ {
		for f := 0; f < 6; f++ {
			want, err := p.ReadBorrow(m, f)
			if err != nil {
				tt.Fatalf("want ReadBorrow(%d,%d): %v", m, f, err)
			}
			face, err := got.ReadBorrow(m, f)
			if err != nil {
				tt.Fatalf("ReadBorrow(%d,%d): %v", m, f, err)
			}
			if !bytes.Equal(face, want) {
				tt.Errorf("face (%d,%d) differs after round trip", m, f)
			}
		}
	}
}

func TestEncodeDecodeWithZlibSupercompression(tt *testing.T) {
	size := pixfmt.Extent3D{W: 8, H: 8, D: 1}
	blob := bytes.Repeat([]byte{0xAB}, int(pixfmt.SizeBytes(size, 0, pixfmt.R8G8B8A8Unorm)))
	p, err := imgprov.NewOwningFaces(size, pixfmt.R8G8B8A8Unorm, 1, 1, false, [][]byte{blob})
	if err != nil {
		tt.Fatalf("NewOwningFaces: %v", err)
	}

	var buf bytes.Buffer
	if err := Encode(&buf, p, true); err != nil {
		tt.Fatalf("Encode(zlib): %v", err)
	}

	got, err := Decode(iostream.NewMemStream(buf.Bytes()))
	if err != nil {
		tt.Fatalf("Decode: %v", err)
	}
	face, err := got.ReadBorrow(0, 0)
	if err != nil {
		tt.Fatalf("ReadBorrow: %v", err)
	}
	if !bytes.Equal(face, blob) {
		tt.Errorf("decompressed face differs from source")
	}

	kp := got.(*Provider)
	if kp.scheme != SchemeZlib {
		tt.Errorf("scheme = %d, want SchemeZlib", kp.scheme)
	}
}

func TestKeyValueAndDFDDataRoundTrip(tt *testing.T) {
	p := buildCubemapNoLayers(tt)

	var buf bytes.Buffer
	if err := Encode(&buf, p, false); err != nil {
		tt.Fatalf("Encode: %v", err)
	}
	decoded, err := Decode(iostream.NewMemStream(buf.Bytes()))
	if err != nil {
		tt.Fatalf("Decode: %v", err)
	}
	kp := decoded.(*Provider)
	kp.dfd = []byte{1, 2, 3, 4, 5, 6, 7, 8}
	kp.kvd = []byte{9, 9, 9, 9}

	var buf2 bytes.Buffer
	if err := Encode(&buf2, kp, false); err != nil {
		tt.Fatalf("re-Encode: %v", err)
	}
	decoded2, err := Decode(iostream.NewMemStream(buf2.Bytes()))
	if err != nil {
		tt.Fatalf("re-Decode: %v", err)
	}
	kp2 := decoded2.(*Provider)
	if !bytes.Equal(kp2.dfd, kp.dfd) {
		tt.Errorf("dfd = % 02X, want % 02X", kp2.dfd, kp.dfd)
	}
	if !bytes.Equal(kp2.kvd, kp.kvd) {
		tt.Errorf("kvd = % 02X, want % 02X", kp2.kvd, kp.kvd)
	}

	for m := 0; m < p.Mips(); m++ {
		for f := 0; f < 6; f++ {
			want, err := p.ReadBorrow(m, f)
			if err != nil {
				tt.Fatalf("want ReadBorrow(%d,%d): %v", m, f, err)
			}
			face, err := decoded2.ReadBorrow(m, f)
			if err != nil {
				tt.Fatalf("ReadBorrow(%d,%d): %v", m, f, err)
			}
			if !bytes.Equal(face, want) {
				tt.Errorf("face (%d,%d) differs once dfd/kvd are present", m, f)
			}
		}
	}
}

func TestReadBorrowRejectsOutOfBoundsLevel(tt *testing.T) {
	p := buildCubemapNoLayers(tt)
	var buf bytes.Buffer
	if err := Encode(&buf, p, false); err != nil {
		tt.Fatalf("Encode: %v", err)
	}

	got, err := Decode(iostream.NewMemStream(buf.Bytes()))
	if err != nil {
		tt.Fatalf("Decode: %v", err)
	}
	kp := got.(*Provider)
	kp.levels[0].byteLength += uint64(len(kp.span)) // now runs past the end of span

	if _, err := kp.ReadBorrow(0, 0); err != ErrUnexpectedEnd {
		tt.Errorf("ReadBorrow with out-of-bounds level: got %v, want ErrUnexpectedEnd", err)
	}
}

func TestDecodeRejectsUnsupportedFormat(tt *testing.T) {
	size := pixfmt.Extent3D{W: 2, H: 2, D: 1}
	p, err := imgprov.NewOwningFaces(size, pixfmt.R8G8B8A8Unorm, 1, 1, false, [][]byte{make([]byte, 16)})
	if err != nil {
		tt.Fatalf("NewOwningFaces: %v", err)
	}
	var buf bytes.Buffer
	if err := Encode(&buf, p, false); err != nil {
		tt.Fatalf("Encode: %v", err)
	}
	raw := buf.Bytes()
	raw[12], raw[13], raw[14], raw[15] = 0, 0, 0, 0 // vkFormat = 0

	if _, err := Decode(iostream.NewMemStream(raw)); err != ErrUnsupportedFormat {
		tt.Errorf("Decode(vkFormat=0): got %v, want ErrUnsupportedFormat", err)
	}
}
