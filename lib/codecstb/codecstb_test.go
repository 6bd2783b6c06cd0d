// Copyright 2025 The Etc2 Authors.
//
// Licensed under the Apache License, Version 2.0 <LICENSE-APACHE or
// https://www.apache.org/licenses/LICENSE-2.0>. This file may not be copied,
// modified, or distributed except according to those terms.
//
// SPDX-License-Identifier: Apache-2.0

package codecstb

import (
	"bytes"
	"image"
	"image/color"
	"image/gif"
	"testing"

	"github.com/nigeltao/imgio/lib/pixfmt"
)

func TestDecodeGIFProducesRGBA8(tt *testing.T) {
	img := image.NewPaletted(image.Rect(0, 0, 2, 1), color.Palette{
		color.RGBA{R: 0x10, G: 0x20, B: 0x30, A: 0xFF},
		color.RGBA{R: 0x40, G: 0x50, B: 0x60, A: 0xFF},
	})
	img.SetColorIndex(0, 0, 0)
	img.SetColorIndex(1, 0, 1)

	var buf bytes.Buffer
	if err := gif.Encode(&buf, img, nil); err != nil {
		tt.Fatalf("gif.Encode: %v", err)
	}

	p, err := Decode(bytes.NewReader(buf.Bytes()))
	if err != nil {
		tt.Fatalf("Decode: %v", err)
	}
	if p.Format() != pixfmt.R8G8B8A8Unorm {
		tt.Fatalf("Format = %v, want R8G8B8A8Unorm", p.Format())
	}
	face, err := p.ReadBorrow(0, 0)
	if err != nil {
		tt.Fatalf("ReadBorrow: %v", err)
	}
	want := []byte{0x10, 0x20, 0x30, 0xFF, 0x40, 0x50, 0x60, 0xFF}
	if !bytes.Equal(face, want) {
		tt.Errorf("face = % 02X, want % 02X", face, want)
	}
}

func TestDecodeRejectsUnrecognizedInput(tt *testing.T) {
	if _, err := Decode(bytes.NewReader([]byte("not any image"))); err != ErrUnrecognizedFormat {
		tt.Errorf("Decode: got %v, want ErrUnrecognizedFormat", err)
	}
}

func buildRadianceHDR(width, height int, px [][3]float32) []byte {
	var buf bytes.Buffer
	buf.WriteString("#?RADIANCE\n")
	buf.WriteString("FORMAT=32-bit_rle_rgbe\n")
	buf.WriteString("\n")
	buf.WriteString("-Y ")
	buf.WriteString(itoa(height))
	buf.WriteString(" +X ")
	buf.WriteString(itoa(width))
	buf.WriteString("\n")
	for _, c := range px {
		buf.Write(encodeRGBE(c))
	}
	return buf.Bytes()
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var digits []byte
	for n > 0 {
		digits = append([]byte{byte('0' + n%10)}, digits...)
		n /= 10
	}
	if neg {
		digits = append([]byte{'-'}, digits...)
	}
	return string(digits)
}

// encodeRGBE is the inverse of rgbe.toFloat, used only to build test
// fixtures (flat/legacy encoding, one 4-byte pixel, no RLE).
func encodeRGBE(c [3]float32) []byte {
	maxc := c[0]
	if c[1] > maxc {
		maxc = c[1]
	}
	if c[2] > maxc {
		maxc = c[2]
	}
	if maxc <= 1e-32 {
		return []byte{0, 0, 0, 0}
	}
	frac, exp := frexp32(maxc)
	scale := frac * 256 / maxc
	return []byte{
		byte(c[0] * scale),
		byte(c[1] * scale),
		byte(c[2] * scale),
		byte(exp + 128),
	}
}

func frexp32(f float32) (frac float32, exp int) {
	if f == 0 {
		return 0, 0
	}
	exp = 1
	for f >= 1 {
		f /= 2
		exp++
	}
	for f < 0.5 {
		f *= 2
		exp--
	}
	return f, exp
}

func TestDecodeRadianceHDRProducesLinearFloat(tt *testing.T) {
	data := buildRadianceHDR(1, 1, [][3]float32{{1, 2, 4}})

	p, err := Decode(bytes.NewReader(data))
	if err != nil {
		tt.Fatalf("Decode: %v", err)
	}
	if p.Format() != pixfmt.R32G32B32A32Sfloat {
		tt.Fatalf("Format = %v, want R32G32B32A32Sfloat", p.Format())
	}
	face, err := p.ReadBorrow(0, 0)
	if err != nil {
		tt.Fatalf("ReadBorrow: %v", err)
	}
	if len(face) != 16 {
		tt.Fatalf("len(face) = %d, want 16", len(face))
	}
}
