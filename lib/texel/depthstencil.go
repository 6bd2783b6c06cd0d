// Copyright 2025 The Etc2 Authors.
//
// Licensed under the Apache License, Version 2.0 <LICENSE-APACHE or
// https://www.apache.org/licenses/LICENSE-2.0>. This file may not be copied,
// modified, or distributed except according to those terms.
//
// SPDX-License-Identifier: Apache-2.0

package texel

import (
	"encoding/binary"
	"math"

	"github.com/nigeltao/imgio/lib/pixfmt"
)

// readDepthStencil decodes combined and single-aspect depth/stencil
// formats. Depth lands in RGBA.R (normalized where applicable), stencil in
// RGBA.G (unnormalized).
func readDepthStencil(f pixfmt.Format, src []byte) RGBA {
	var out RGBA
	switch f {
	case pixfmt.D16Unorm:
		out.R = float64(binary.LittleEndian.Uint16(src)) / 65535
	case pixfmt.X8D24UnormPack32:
		w := binary.LittleEndian.Uint32(src)
		out.R = float64(w&0x00FFFFFF) / float64(1<<24-1)
	case pixfmt.D32Sfloat:
		out.R = float64(math.Float32frombits(binary.LittleEndian.Uint32(src)))
	case pixfmt.S8Uint:
		out.G = float64(src[0])
	case pixfmt.D16UnormS8Uint:
		out.R = float64(binary.LittleEndian.Uint16(src[0:2])) / 65535
		out.G = float64(src[2])
	case pixfmt.D24UnormS8Uint:
		d := uint32(src[0])<<16 | uint32(src[1])<<8 | uint32(src[2])
		out.R = float64(d) / float64(1<<24-1)
		out.G = float64(src[3])
	case pixfmt.D32SfloatS8Uint:
		out.R = float64(math.Float32frombits(binary.LittleEndian.Uint32(src[0:4])))
		out.G = float64(src[4])
	}
	return out
}

func writeDepthStencil(f pixfmt.Format, dst []byte, c RGBA) {
	switch f {
	case pixfmt.D16Unorm:
		binary.LittleEndian.PutUint16(dst, uint16(clamp(c.R, 0, 1)*65535+0.5))
	case pixfmt.X8D24UnormPack32:
		d := uint32(clamp(c.R, 0, 1)*float64(1<<24-1) + 0.5)
		binary.LittleEndian.PutUint32(dst, d&0x00FFFFFF)
	case pixfmt.D32Sfloat:
		binary.LittleEndian.PutUint32(dst, math.Float32bits(float32(c.R)))
	case pixfmt.S8Uint:
		dst[0] = uint8(c.G)
	case pixfmt.D16UnormS8Uint:
		binary.LittleEndian.PutUint16(dst[0:2], uint16(clamp(c.R, 0, 1)*65535+0.5))
		dst[2] = uint8(c.G)
	case pixfmt.D24UnormS8Uint:
		d := uint32(clamp(c.R, 0, 1)*float64(1<<24-1) + 0.5)
		dst[0] = byte(d >> 16)
		dst[1] = byte(d >> 8)
		dst[2] = byte(d)
		dst[3] = uint8(c.G)
	case pixfmt.D32SfloatS8Uint:
		binary.LittleEndian.PutUint32(dst[0:4], math.Float32bits(float32(c.R)))
		dst[4] = uint8(c.G)
	}
}
