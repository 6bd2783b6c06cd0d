// Copyright 2025 The Etc2 Authors.
//
// Licensed under the Apache License, Version 2.0 <LICENSE-APACHE or
// https://www.apache.org/licenses/LICENSE-2.0>. This file may not be copied,
// modified, or distributed except according to those terms.
//
// SPDX-License-Identifier: Apache-2.0

// ----------------

// Package codecwebp adapts golang.org/x/image/webp to the provider
// abstraction. WebP support here is decode-only: the x/image decoder has
// no corresponding encoder, and this module's WebP scope never calls for
// writing one.
package codecwebp

import (
	"image/color"
	"io"

	"golang.org/x/image/webp"

	"github.com/nigeltao/imgio/lib/imgprov"
	"github.com/nigeltao/imgio/lib/pixfmt"
	"github.com/nigeltao/imgio/lib/texel"
)

// Decode reads a lossy or lossless WebP image from r, always producing a
// single-mip, single-layer r8g8b8a8Srgb provider.
func Decode(r io.Reader) (imgprov.Provider, error) {
	img, err := webp.Decode(r)
	if err != nil {
		return nil, err
	}
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
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
				A: float64(nc.A) / 0xFF,
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
