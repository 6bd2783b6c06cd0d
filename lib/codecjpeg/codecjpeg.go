// Copyright 2025 The Etc2 Authors.
//
// Licensed under the Apache License, Version 2.0 <LICENSE-APACHE or
// https://www.apache.org/licenses/LICENSE-2.0>. This file may not be copied,
// modified, or distributed except according to those terms.
//
// SPDX-License-Identifier: Apache-2.0

// ----------------

// Package codecjpeg adapts the standard library's image/jpeg to the
// provider abstraction. JPEG has no alpha channel and no useful notion of
// linear-light color, so Decode always produces a single-mip,
// single-layer r8g8b8a8Srgb provider with a fully opaque alpha.
package codecjpeg

import (
	"image/color"
	"image/jpeg"
	"io"

	"github.com/nigeltao/imgio/lib/imgprov"
	"github.com/nigeltao/imgio/lib/pixfmt"
	"github.com/nigeltao/imgio/lib/texel"
)

// Decode reads a baseline or progressive JPEG from r.
func Decode(r io.Reader) (imgprov.Provider, error) {
	img, err := jpeg.Decode(r)
	if err != nil {
		return nil, err
	}
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	// JPEG sample bytes are already gamma-encoded. r8g8b8a8Unorm and
	// r8g8b8a8Srgb share an identical byte layout; writing through the
	// Unorm encoding stores the sample bytes verbatim, and the provider
	// is then labeled Srgb so readers decode them as gamma-encoded.
	const storeFormat = pixfmt.R8G8B8A8Unorm
	const format = pixfmt.R8G8B8A8Srgb
	elemSize := pixfmt.ElementSize(format)

	blob := make([]byte, w*h*elemSize)
	i := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			nc := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			c := texel.RGBA{
				R: float64(nc.R) / 0xFF,
				G: float64(nc.G) / 0xFF,
				B: float64(nc.B) / 0xFF,
				A: 1,
			}
			if err := texel.Write(storeFormat, blob[i:i+elemSize], c); err != nil {
				return nil, err
			}
			i += elemSize
		}
	}

	size := pixfmt.Extent3D{W: w, H: h, D: 1}
	return imgprov.NewOwningFaces(size, format, 1, 1, false, [][]byte{blob})
}
