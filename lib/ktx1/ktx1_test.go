// Copyright 2025 The Etc2 Authors.
//
// Licensed under the Apache License, Version 2.0 <LICENSE-APACHE or
// https://www.apache.org/licenses/LICENSE-2.0>. This file may not be copied,
// modified, or distributed except according to those terms.
//
// SPDX-License-Identifier: Apache-2.0

package ktx1

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/nigeltao/imgio/lib/imgprov"
	"github.com/nigeltao/imgio/lib/pixfmt"
)

func TestEncodeRGBA8OnePixelIsExactly72Bytes(tt *testing.T) {
	size := pixfmt.Extent3D{W: 1, H: 1, D: 1}
	payload := []byte{0x11, 0x22, 0x33, 0x44}
	p, err := imgprov.NewOwningFaces(size, pixfmt.R8G8B8A8Unorm, 1, 1, false, [][]byte{payload})
	if err != nil {
		tt.Fatalf("NewOwningFaces: %v", err)
	}

	var buf bytes.Buffer
	if err := Encode(&buf, p); err != nil {
		tt.Fatalf("Encode: %v", err)
	}
	if buf.Len() != 72 {
		tt.Fatalf("encoded length = %d, want 72", buf.Len())
	}

	got, err := Decode(bytes.NewReader(buf.Bytes()))
	if err != nil {
		tt.Fatalf("Decode: %v", err)
	}
	if got.Size() != size || got.Format() != pixfmt.R8G8B8A8Unorm || got.Layers() != 1 || got.Mips() != 1 {
		tt.Fatalf("Decode: got size=%v format=%v layers=%d mips=%d", got.Size(), got.Format(), got.Layers(), got.Mips())
	}
	face, err := got.ReadBorrow(0, 0)
	if err != nil {
		tt.Fatalf("ReadBorrow: %v", err)
	}
	if !bytes.Equal(face, payload) {
		tt.Errorf("ReadBorrow(0,0) = % 02X, want % 02X", face, payload)
	}
}

func TestRoundTripCubemapNoArrayLayers(tt *testing.T) {
	size := pixfmt.Extent3D{W: 4, H: 4, D: 1}
	faces := make([][]byte, 6)
	for i := range faces {
		faces[i] = bytes.Repeat([]byte{byte(i + 1)}, int(pixfmt.SizeBytes(size, 0, pixfmt.R8G8B8A8Srgb)))
	}
	p, err := imgprov.NewOwningFaces(size, pixfmt.R8G8B8A8Srgb, 6, 1, true, faces)
	if err != nil {
		tt.Fatalf("NewOwningFaces: %v", err)
	}

	var buf bytes.Buffer
	if err := Encode(&buf, p); err != nil {
		tt.Fatalf("Encode: %v", err)
	}

	got, err := Decode(bytes.NewReader(buf.Bytes()))
	if err != nil {
		tt.Fatalf("Decode: %v", err)
	}
	if got.Layers() != 6 || !got.Cubemap() {
		tt.Fatalf("Decode: layers=%d cubemap=%v, want 6 and true", got.Layers(), got.Cubemap())
	}
	for i := 0; i < 6; i++ {
		face, err := got.ReadBorrow(0, i)
		if err != nil {
			tt.Fatalf("ReadBorrow(0,%d): %v", i, err)
		}
		if !bytes.Equal(face, faces[i]) {
			tt.Errorf("face %d differs after round trip", i)
		}
	}
}

func TestKeyValueDataRoundTrips(tt *testing.T) {
	size := pixfmt.Extent3D{W: 1, H: 1, D: 1}
	payload := []byte{0xAA, 0xBB, 0xCC, 0xDD}
	p, err := imgprov.NewOwningFaces(size, pixfmt.R8G8B8A8Unorm, 1, 1, false, [][]byte{payload})
	if err != nil {
		tt.Fatalf("NewOwningFaces: %v", err)
	}

	var buf bytes.Buffer
	if err := Encode(&buf, p); err != nil {
		tt.Fatalf("Encode: %v", err)
	}
	raw := buf.Bytes()

	// Splice an 8-byte, 4-byte-aligned key/value block between the
	// 64-byte header and the rest of the file, and fix up
	// bytesOfKeyValueData (the header's last field, at byte offset 60).
	kv := []byte{'f', 'o', 'o', 0, 'b', 'a', 'r', 0}
	header := append([]byte{}, raw[:64]...)
	binary.LittleEndian.PutUint32(header[60:], uint32(len(kv)))
	spliced := append(append(header, kv...), raw[64:]...)

	got, err := Decode(bytes.NewReader(spliced))
	if err != nil {
		tt.Fatalf("Decode: %v", err)
	}
	face, err := got.ReadBorrow(0, 0)
	if err != nil || !bytes.Equal(face, payload) {
		tt.Fatalf("ReadBorrow(0,0) = % 02X (err=%v), want % 02X", face, err, payload)
	}

	var buf2 bytes.Buffer
	if err := Encode(&buf2, got); err != nil {
		tt.Fatalf("re-Encode: %v", err)
	}
	if !bytes.Equal(buf2.Bytes(), spliced) {
		tt.Errorf("re-Encode did not reproduce the spliced key/value block:\ngot  % 02X\nwant % 02X", buf2.Bytes(), spliced)
	}
}

func TestDecodeRejectsBigEndian(tt *testing.T) {
	size := pixfmt.Extent3D{W: 1, H: 1, D: 1}
	p, err := imgprov.NewOwningFaces(size, pixfmt.R8G8B8A8Unorm, 1, 1, false, [][]byte{{1, 2, 3, 4}})
	if err != nil {
		tt.Fatalf("NewOwningFaces: %v", err)
	}
	var buf bytes.Buffer
	if err := Encode(&buf, p); err != nil {
		tt.Fatalf("Encode: %v", err)
	}
	raw := buf.Bytes()
	raw[12], raw[13], raw[14], raw[15] = 0x04, 0x03, 0x02, 0x01 // endianness field, byte-swapped

	if _, err := Decode(bytes.NewReader(raw)); err != ErrInvalidEndianess {
		tt.Errorf("Decode(byte-swapped): got %v, want ErrInvalidEndianess", err)
	}
}
