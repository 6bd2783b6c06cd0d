// Copyright 2025 The Etc2 Authors.
//
// Licensed under the Apache License, Version 2.0 <LICENSE-APACHE or
// https://www.apache.org/licenses/LICENSE-2.0>. This file may not be copied,
// modified, or distributed except according to those terms.
//
// SPDX-License-Identifier: Apache-2.0

package codecjpeg

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"testing"

	"github.com/nigeltao/imgio/lib/pixfmt"
)

func TestDecodeProducesSrgbWithOpaqueAlpha(tt *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.SetRGBA(x, y, color.RGBA{R: 0x80, G: 0x40, B: 0x20, A: 0xFF})
		}
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 100}); err != nil {
		tt.Fatalf("jpeg.Encode: %v", err)
	}

	p, err := Decode(bytes.NewReader(buf.Bytes()))
	if err != nil {
		tt.Fatalf("Decode: %v", err)
	}
	if p.Format() != pixfmt.R8G8B8A8Srgb {
		tt.Fatalf("Format = %v, want R8G8B8A8Srgb", p.Format())
	}
	if p.Size().W != 4 || p.Size().H != 4 || p.Layers() != 1 || p.Mips() != 1 {
		tt.Fatalf("Size/Layers/Mips = %v/%d/%d", p.Size(), p.Layers(), p.Mips())
	}
	face, err := p.ReadBorrow(0, 0)
	if err != nil {
		tt.Fatalf("ReadBorrow: %v", err)
	}
	if face[3] != 0xFF {
		tt.Errorf("alpha = %#x, want 0xFF", face[3])
	}
}
