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
	"math"
	"testing"

	"github.com/nigeltao/imgio/lib/imgprov"
	"github.com/nigeltao/imgio/lib/pixfmt"
)

func TestDecodeRejectsNonEXR(tt *testing.T) {
	if _, err := Decode(bytes.NewReader([]byte("not an exr file")), false); err != ErrInvalidType {
		tt.Errorf("Decode: got %v, want ErrInvalidType", err)
	}
}

func TestEncodeRejectsUnrepresentableFormat(tt *testing.T) {
	size := pixfmt.Extent3D{W: 1, H: 1, D: 1}
	p, err := imgprov.NewOwningFaces(size, pixfmt.R8G8B8A8Unorm, 1, 1, false, [][]byte{{1, 2, 3, 4}})
	if err != nil {
		tt.Fatalf("NewOwningFaces: %v", err)
	}
	var buf bytes.Buffer
	if err := Encode(&buf, p); err != ErrCantRepresent {
		tt.Errorf("Encode: got %v, want ErrCantRepresent", err)
	}
}

func TestEncodeDecodeRoundTripRGBAFloat32(tt *testing.T) {
	size := pixfmt.Extent3D{W: 2, H: 2, D: 1}
	var blob []byte
	for i := 0; i < 4; i++ {
		v := float32(i) + 0.5
		var c [4]byte
		bits := math.Float32bits(v)
		c[0] = byte(bits)
		c[1] = byte(bits >> 8)
		c[2] = byte(bits >> 16)
		c[3] = byte(bits >> 24)
		blob = append(blob, c[:]...) // R
		blob = append(blob, c[:]...) // G
		blob = append(blob, c[:]...) // B
		blob = append(blob, c[:]...) // A
	}
	p, err := imgprov.NewOwningFaces(size, pixfmt.R32G32B32A32Sfloat, 1, 1, false, [][]byte{blob})
	if err != nil {
		tt.Fatalf("NewOwningFaces: %v", err)
	}

	var buf bytes.Buffer
	if err := Encode(&buf, p); err != nil {
		tt.Fatalf("Encode: %v", err)
	}

	got, err := Decode(bytes.NewReader(buf.Bytes()), false)
	if err != nil {
		tt.Fatalf("Decode: %v", err)
	}
	if got.Format() != pixfmt.R32G32B32A32Sfloat {
		tt.Fatalf("Format = %v, want R32G32B32A32Sfloat", got.Format())
	}
	if got.Size() != size {
		tt.Fatalf("Size = %v, want %v", got.Size(), size)
	}
	face, err := got.ReadBorrow(0, 0)
	if err != nil {
		tt.Fatalf("ReadBorrow: %v", err)
	}
	if !bytes.Equal(face, blob) {
		tt.Errorf("face = % 02X, want % 02X", face, blob)
	}
}

func TestEncodeDecodeRoundTripSingleChannelHalf(tt *testing.T) {
	size := pixfmt.Extent3D{W: 3, H: 17, D: 1} // 17 rows exercises a partial final ZIP block
	blob := make([]byte, size.W*size.H*2)
	for i := range blob {
		blob[i] = byte(i)
	}
	p, err := imgprov.NewOwningFaces(size, pixfmt.R16Sfloat, 1, 1, false, [][]byte{blob})
	if err != nil {
		tt.Fatalf("NewOwningFaces: %v", err)
	}

	var buf bytes.Buffer
	if err := Encode(&buf, p); err != nil {
		tt.Fatalf("Encode: %v", err)
	}

	got, err := Decode(bytes.NewReader(buf.Bytes()), false)
	if err != nil {
		tt.Fatalf("Decode: %v", err)
	}
	if got.Format() != pixfmt.R16Sfloat {
		tt.Fatalf("Format = %v, want R16Sfloat", got.Format())
	}
	face, err := got.ReadBorrow(0, 0)
	if err != nil {
		tt.Fatalf("ReadBorrow: %v", err)
	}
	if !bytes.Equal(face, blob) {
		tt.Errorf("face = % 02X, want % 02X", face, blob)
	}
}
