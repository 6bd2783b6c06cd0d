// Copyright 2025 The Etc2 Authors.
//
// Licensed under the Apache License, Version 2.0 <LICENSE-APACHE or
// https://www.apache.org/licenses/LICENSE-2.0>. This file may not be copied,
// modified, or distributed except according to those terms.
//
// SPDX-License-Identifier: Apache-2.0

package imgio

import (
	"bytes"
	"testing"

	"github.com/nigeltao/imgio/lib/imgprov"
	"github.com/nigeltao/imgio/lib/pixfmt"
)

func TestWriteKTXThenLoadImageBytesRoundTrips(tt *testing.T) {
	size := pixfmt.Extent3D{W: 1, H: 1, D: 1}
	payload := []byte{0x11, 0x22, 0x33, 0x44}
	p, err := imgprov.NewOwningFaces(size, pixfmt.R8G8B8A8Unorm, 1, 1, false, [][]byte{payload})
	if err != nil {
		tt.Fatalf("NewOwningFaces: %v", err)
	}

	var buf bytes.Buffer
	if err := WriteKTX(&buf, p); err != nil {
		tt.Fatalf("WriteKTX: %v", err)
	}

	got, err := LoadImageBytes(buf.Bytes())
	if err != nil {
		tt.Fatalf("LoadImageBytes: %v", err)
	}
	if got.Format() != pixfmt.R8G8B8A8Unorm || got.Size() != size {
		tt.Fatalf("LoadImageBytes: got format=%v size=%v", got.Format(), got.Size())
	}
	face, err := ReadImageData(got, 0, 0)
	if err != nil {
		tt.Fatalf("ReadImageData: %v", err)
	}
	if !bytes.Equal(face, payload) {
		tt.Errorf("ReadImageData = % 02X, want % 02X", face, payload)
	}
}

func TestWritePNGThenLoadImageBytesRoundTrips(tt *testing.T) {
	size := pixfmt.Extent3D{W: 2, H: 1, D: 1}
	payload := []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08}
	p, err := imgprov.NewOwningFaces(size, pixfmt.R8G8B8A8Unorm, 1, 1, false, [][]byte{payload})
	if err != nil {
		tt.Fatalf("NewOwningFaces: %v", err)
	}

	var buf bytes.Buffer
	if err := WritePNG(&buf, p); err != nil {
		tt.Fatalf("WritePNG: %v", err)
	}

	got, err := LoadImageBytes(buf.Bytes())
	if err != nil {
		tt.Fatalf("LoadImageBytes: %v", err)
	}
	face, err := ReadImageData(got, 0, 0)
	if err != nil {
		tt.Fatalf("ReadImageData: %v", err)
	}
	if !bytes.Equal(face, payload) {
		tt.Errorf("ReadImageData = % 02X, want % 02X", face, payload)
	}
}

func TestLoadImageBytesFailsOnGarbage(tt *testing.T) {
	if _, err := LoadImageBytes([]byte("not an image")); err == nil {
		tt.Errorf("LoadImageBytes: got nil error, want an error")
	} else if kind, ok := ReadErrorKindOf(err); !ok || kind != InvalidType {
		tt.Errorf("ReadErrorKindOf: got (%v, %v), want (InvalidType, true)", kind, ok)
	}
}
