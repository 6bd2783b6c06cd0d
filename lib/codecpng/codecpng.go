// Copyright 2025 The Etc2 Authors.
//
// Licensed under the Apache License, Version 2.0 <LICENSE-APACHE or
// https://www.apache.org/licenses/LICENSE-2.0>. This file may not be copied,
// modified, or distributed except according to those terms.
//
// SPDX-License-Identifier: Apache-2.0

// ----------------

// Package codecpng adapts the standard library's image/png to the
// provider abstraction: Decode promotes any PNG bit depth/color type to
// one of a handful of Formats, and Encode supports the Unorm/Srgb subset
// of those Formats spec.md §4.G names.
package codecpng

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"

	"github.com/nigeltao/imgio/lib/imgprov"
	"github.com/nigeltao/imgio/lib/pixfmt"
	"github.com/nigeltao/imgio/lib/texel"
)

var ErrUnsupportedFormat = errors.New("codecpng: format not supported for PNG encode")

// Decode reads a PNG from r. Palette entries are expanded to RGB, tRNS
// resolves to alpha, and 3-channel RGB is padded to RGBA with full
// opacity — all handled by image/png's own decoding into a concrete
// image.Image; Decode only has to pick the matching Format.
func Decode(r io.Reader) (imgprov.Provider, error) {
	img, err := png.Decode(r)
	if err != nil {
		return nil, err
	}
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	format := formatFor(img)
	// 8-bit PNG samples are already gamma-encoded; r8...Unorm and
	// r8...Srgb share an identical byte layout, so the samples are
	// written through the Unorm encoding and the provider is labeled
	// Srgb. 16-bit PNG has no such convention and is tagged Unorm.
	storeFormat := storeFormatFor(format)
	elemSize := pixfmt.ElementSize(format)

	blob := make([]byte, w*h*elemSize)
	i := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := nonPremultiplied(img.At(x, y))
			if err := texel.Write(storeFormat, blob[i:i+elemSize], c); err != nil {
				return nil, err
			}
			i += elemSize
		}
	}

	size := pixfmt.Extent3D{W: w, H: h, D: 1}
	return imgprov.NewOwningFaces(size, format, 1, 1, false, [][]byte{blob})
}

func formatFor(img image.Image) pixfmt.Format {
	switch img.(type) {
	case *image.Gray:
		return pixfmt.R8Srgb
	case *image.Gray16:
		return pixfmt.R16Unorm
	case *image.NRGBA64, *image.RGBA64:
		return pixfmt.R16G16B16A16Unorm
	default: // *image.NRGBA, *image.RGBA, *image.Paletted, or any other image.Image
		return pixfmt.R8G8B8A8Srgb
	}
}

// storeFormatFor returns the Unorm format sharing format's byte layout,
// used to write already gamma-encoded 8-bit samples without a spurious
// linear-to-sRGB conversion.
func storeFormatFor(format pixfmt.Format) pixfmt.Format {
	switch format {
	case pixfmt.R8Srgb:
		return pixfmt.R8Unorm
	case pixfmt.R8G8B8Srgb:
		return pixfmt.R8G8B8Unorm
	case pixfmt.R8G8B8A8Srgb:
		return pixfmt.R8G8B8A8Unorm
	default:
		return format
	}
}

// nonPremultiplied converts c to a linear-space texel.RGBA, undoing
// image/color's alpha premultiplication.
func nonPremultiplied(c color.Color) texel.RGBA {
	switch px := color.NRGBA64Model.Convert(c).(type) {
	case color.NRGBA64:
		return texel.RGBA{
			R: float64(px.R) / 0xFFFF,
			G: float64(px.G) / 0xFFFF,
			B: float64(px.B) / 0xFFFF,
			A: float64(px.A) / 0xFFFF,
		}
	default:
		return texel.RGBA{A: 1}
	}
}

// Encode writes p's mip 0, layer 0 to w as a PNG. p's format must be one
// of r8/r8g8b8/r8g8b8a8 (Unorm or Srgb) or r16/r16g16b16/r16g16b16a16
// (Unorm).
func Encode(w io.Writer, p imgprov.Provider) error {
	format := p.Format()
	channels := len(pixfmt.Channels(format))
	elemSize := pixfmt.ElementSize(format)
	bits := 8
	if elemSize/channels >= 2 {
		bits = 16
	}

	switch {
	case channels == 1 && bits == 8 && (format == pixfmt.R8Unorm || format == pixfmt.R8Srgb):
	case channels == 1 && bits == 16 && format == pixfmt.R16Unorm:
	case channels == 3 && bits == 8 && (format == pixfmt.R8G8B8Unorm || format == pixfmt.R8G8B8Srgb):
	case channels == 3 && bits == 16 && format == pixfmt.R16G16B16Unorm:
	case channels == 4 && bits == 8 && (format == pixfmt.R8G8B8A8Unorm || format == pixfmt.R8G8B8A8Srgb):
	case channels == 4 && bits == 16 && format == pixfmt.R16G16B16A16Unorm:
	default:
		return ErrUnsupportedFormat
	}

	size := p.Size()
	face, err := p.ReadBorrow(0, 0)
	if err != nil {
		return err
	}

	// 8-bit Srgb texels are already gamma-encoded PNG samples; reading them
	// through the Unorm encoding keeps the bytes verbatim.
	readFormat := storeFormatFor(format)
	var img image.Image
	switch {
	case channels == 1 && bits == 8:
		img = fillGray(size.W, size.H, readFormat, elemSize, face)
	case channels == 1 && bits == 16:
		img = fillGray16(size.W, size.H, readFormat, elemSize, face)
	case bits == 8:
		img = fillNRGBA(size.W, size.H, readFormat, elemSize, face)
	default:
		img = fillNRGBA64(size.W, size.H, readFormat, elemSize, face)
	}
	return png.Encode(w, img)
}

func fillGray(w, h int, format pixfmt.Format, elemSize int, face []byte) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, w, h))
	i := 0
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c, _ := texel.Read(format, face[i:i+elemSize])
			img.SetGray(x, y, color.Gray{Y: clampByte(c.R)})
			i += elemSize
		}
	}
	return img
}

func fillGray16(w, h int, format pixfmt.Format, elemSize int, face []byte) *image.Gray16 {
	img := image.NewGray16(image.Rect(0, 0, w, h))
	i := 0
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c, _ := texel.Read(format, face[i:i+elemSize])
			img.SetGray16(x, y, color.Gray16{Y: clampWord(c.R)})
			i += elemSize
		}
	}
	return img
}

func fillNRGBA(w, h int, format pixfmt.Format, elemSize int, face []byte) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	i := 0
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c, _ := texel.Read(format, face[i:i+elemSize])
			if len(pixfmt.Channels(format)) == 3 {
				c.A = 1
			}
			img.SetNRGBA(x, y, color.NRGBA{R: clampByte(c.R), G: clampByte(c.G), B: clampByte(c.B), A: clampByte(c.A)})
			i += elemSize
		}
	}
	return img
}

func fillNRGBA64(w, h int, format pixfmt.Format, elemSize int, face []byte) *image.NRGBA64 {
	img := image.NewNRGBA64(image.Rect(0, 0, w, h))
	i := 0
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c, _ := texel.Read(format, face[i:i+elemSize])
			if len(pixfmt.Channels(format)) == 3 {
				c.A = 1
			}
			img.SetNRGBA64(x, y, color.NRGBA64{R: clampWord(c.R), G: clampWord(c.G), B: clampWord(c.B), A: clampWord(c.A)})
			i += elemSize
		}
	}
	return img
}

func clampByte(v float64) uint8 {
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	return uint8(v*255 + 0.5)
}

func clampWord(v float64) uint16 {
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	return uint16(v*65535 + 0.5)
}
