// Copyright 2025 The Etc2 Authors.
//
// Licensed under the Apache License, Version 2.0 <LICENSE-APACHE or
// https://www.apache.org/licenses/LICENSE-2.0>. This file may not be copied,
// modified, or distributed except according to those terms.
//
// SPDX-License-Identifier: Apache-2.0

package codecpng

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/nigeltao/imgio/lib/imgprov"
	"github.com/nigeltao/imgio/lib/pixfmt"
)

func encodePNG(tt *testing.T, img image.Image) []byte {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		tt.Fatalf("png.Encode: %v", err)
	}
	return buf.Bytes()
}

func TestDecodeGrayscale(tt *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 2, 2))
	img.SetGray(0, 0, color.Gray{Y: 0x10})
	img.SetGray(1, 0, color.Gray{Y: 0x20})
	img.SetGray(0, 1, color.Gray{Y: 0x30})
	img.SetGray(1, 1, color.Gray{Y: 0x40})

	p, err := Decode(bytes.NewReader(encodePNG(tt, img)))
	if err != nil {
		tt.Fatalf("Decode: %v", err)
	}
	if p.Format() != pixfmt.R8Srgb {
		tt.Fatalf("Format = %v, want R8Srgb", p.Format())
	}
	face, err := p.ReadBorrow(0, 0)
	if err != nil {
		tt.Fatalf("ReadBorrow: %v", err)
	}
	if want := []byte{0x10, 0x20, 0x30, 0x40}; !bytes.Equal(face, want) {
		tt.Errorf("face = % 02X, want % 02X", face, want)
	}
}

func TestDecodeRGBAPadsOpaqueAlpha(tt *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	img.SetRGBA(0, 0, color.RGBA{R: 0x11, G: 0x22, B: 0x33, A: 0xFF})

	p, err := Decode(bytes.NewReader(encodePNG(tt, img)))
	if err != nil {
		tt.Fatalf("Decode: %v", err)
	}
	if p.Format() != pixfmt.R8G8B8A8Srgb {
		tt.Fatalf("Format = %v, want R8G8B8A8Srgb", p.Format())
	}
	face, err := p.ReadBorrow(0, 0)
	if err != nil {
		tt.Fatalf("ReadBorrow: %v", err)
	}
	if want := []byte{0x11, 0x22, 0x33, 0xFF}; !bytes.Equal(face, want) {
		tt.Errorf("face = % 02X, want % 02X", face, want)
	}
}

func TestDecodePalettedExpandsToRGBA(tt *testing.T) {
	pal := color.Palette{color.RGBA{R: 0xAA, G: 0xBB, B: 0xCC, A: 0xFF}, color.RGBA{A: 0xFF}}
	img := image.NewPaletted(image.Rect(0, 0, 2, 1), pal)
	img.SetColorIndex(0, 0, 0)
	img.SetColorIndex(1, 0, 1)

	p, err := Decode(bytes.NewReader(encodePNG(tt, img)))
	if err != nil {
		tt.Fatalf("Decode: %v", err)
	}
	if p.Format() != pixfmt.R8G8B8A8Srgb {
		tt.Fatalf("Format = %v, want R8G8B8A8Srgb", p.Format())
	}
	face, err := p.ReadBorrow(0, 0)
	if err != nil {
		tt.Fatalf("ReadBorrow: %v", err)
	}
	if want := []byte{0xAA, 0xBB, 0xCC, 0xFF, 0, 0, 0, 0xFF}; !bytes.Equal(face, want) {
		tt.Errorf("face = % 02X, want % 02X", face, want)
	}
}

func TestEncodeRejectsUnsupportedFormat(tt *testing.T) {
	size := pixfmt.Extent3D{W: 1, H: 1, D: 1}
	p, err := imgprov.NewOwningFaces(size, pixfmt.R16G16B16Sfloat, 1, 1, false, [][]byte{make([]byte, 6)})
	if err != nil {
		tt.Fatalf("NewOwningFaces: %v", err)
	}
	var buf bytes.Buffer
	if err := Encode(&buf, p); err != ErrUnsupportedFormat {
		tt.Errorf("Encode: got %v, want ErrUnsupportedFormat", err)
	}
}

func TestEncodeDecodeRoundTripRGBA8(tt *testing.T) {
	size := pixfmt.Extent3D{W: 2, H: 1, D: 1}
	blob := []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08}
	p, err := imgprov.NewOwningFaces(size, pixfmt.R8G8B8A8Unorm, 1, 1, false, [][]byte{blob})
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
	face, err := got.ReadBorrow(0, 0)
	if err != nil {
		tt.Fatalf("ReadBorrow: %v", err)
	}
	if !bytes.Equal(face, blob) {
		tt.Errorf("face = % 02X, want % 02X", face, blob)
	}
}
