// Copyright 2025 The Etc2 Authors.
//
// Licensed under the Apache License, Version 2.0 <LICENSE-APACHE or
// https://www.apache.org/licenses/LICENSE-2.0>. This file may not be copied,
// modified, or distributed except according to those terms.
//
// SPDX-License-Identifier: Apache-2.0

// ----------------

// Package codecstb is the last-resort fallback decoder: it is tried when
// the filename extension is unknown or every typed loader has already
// failed. It always produces 4 channels, either r8g8b8a8Unorm (via the
// registered stdlib/x/image decoders: GIF, BMP, TIFF) or
// r32g32b32a32Sfloat for a Radiance .hdr input.
package codecstb

import (
	"bufio"
	"errors"
	"image"
	"image/color"
	"io"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/nigeltao/imgio/lib/imgprov"
	"github.com/nigeltao/imgio/lib/pixfmt"
	"github.com/nigeltao/imgio/lib/texel"
)

var ErrUnrecognizedFormat = errors.New("codecstb: no registered decoder recognized this stream")

// Decode tries the Radiance HDR sniff first (mirroring stb_image's
// stbi_is_hdr check), then falls back to image.Decode, which dispatches
// across every format blank-imported above.
func Decode(r io.Reader) (imgprov.Provider, error) {
	br := bufio.NewReader(r)
	if isRadianceHDR(br) {
		return decodeRadianceHDR(br)
	}

	img, _, err := image.Decode(br)
	if err != nil {
		return nil, ErrUnrecognizedFormat
	}
	return fromImage(img)
}

func fromImage(img image.Image) (imgprov.Provider, error) {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	const format = pixfmt.R8G8B8A8Unorm
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
			if err := texel.Write(format, blob[i:i+elemSize], c); err != nil {
				return nil, err
			}
			i += elemSize
		}
	}

	size := pixfmt.Extent3D{W: w, H: h, D: 1}
	return imgprov.NewOwningFaces(size, format, 1, 1, false, [][]byte{blob})
}
