// Copyright 2025 The Etc2 Authors.
//
// Licensed under the Apache License, Version 2.0 <LICENSE-APACHE or
// https://www.apache.org/licenses/LICENSE-2.0>. This file may not be copied,
// modified, or distributed except according to those terms.
//
// SPDX-License-Identifier: Apache-2.0

// ----------------

// Package texel implements the per-texel format engine: Read and Write
// convert between a Format's on-disk byte representation and an RGBA
// value in linear (or, for depth/stencil, depth/stencil) space, over a
// rolling byte cursor supplied by the caller.
//
// Block-compressed formats, multi-planar/YCbCr formats, and
// b10g11r11UfloatPack32 are not supported: callers get ErrUnsupportedFormat.
package texel

import (
	"encoding/binary"
	"errors"
	"math"

	"github.com/nigeltao/imgio/lib/pixfmt"
)

var (
	ErrUnsupportedFormat = errors.New("texel: format not supported by the format engine")
	ErrBufferTooSmall    = errors.New("texel: buffer smaller than one element")
)

// RGBA is a texel's value in floating-point space. For depth/stencil
// formats, R holds the (normalized, where applicable) depth value and G
// holds the unnormalized stencil value; B and A are unused.
type RGBA struct {
	R, G, B, A float64
}

// Read decodes one texel of format f from the front of src, which must be
// at least pixfmt.ElementSize(f) bytes long.
func Read(f pixfmt.Format, src []byte) (RGBA, error) {
	if pixfmt.IsCompressed(f) || pixfmt.IsUnsupportedByEngine(f) {
		return RGBA{}, ErrUnsupportedFormat
	}
	n := pixfmt.ElementSize(f)
	if len(src) < n {
		return RGBA{}, ErrBufferTooSmall
	}
	src = src[:n]

	switch {
	case pixfmt.IsDepthStencil(f):
		return readDepthStencil(f, src), nil
	case pixfmt.IsSharedExponent(f):
		return readSharedExponent(src), nil
	default:
		return readNumeric(f, src), nil
	}
}

// Write encodes c as one texel of format f into the front of dst, which
// must be at least pixfmt.ElementSize(f) bytes long.
func Write(f pixfmt.Format, dst []byte, c RGBA) error {
	if pixfmt.IsCompressed(f) || pixfmt.IsUnsupportedByEngine(f) {
		return ErrUnsupportedFormat
	}
	n := pixfmt.ElementSize(f)
	if len(dst) < n {
		return ErrBufferTooSmall
	}
	dst = dst[:n]

	switch {
	case pixfmt.IsDepthStencil(f):
		writeDepthStencil(f, dst, c)
	case pixfmt.IsSharedExponent(f):
		writeSharedExponent(dst, c)
	default:
		writeNumeric(f, dst, c)
	}
	return nil
}

// Convert decodes one texel of srcF from src and re-encodes it as one
// texel of dstF into dst.
func Convert(dstF pixfmt.Format, dst []byte, srcF pixfmt.Format, src []byte) error {
	c, err := Read(srcF, src)
	if err != nil {
		return err
	}
	return Write(dstF, dst, c)
}

// --- generic unpacked / packed-bitfield numeric path ---

func readWordLE(b []byte) uint64 {
	var buf [8]byte
	copy(buf[:], b)
	return binary.LittleEndian.Uint64(buf[:])
}

func writeWordLE(dst []byte, w uint64, nbytes int) {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], w)
	copy(dst, buf[:nbytes])
}

func readNumeric(f pixfmt.Format, src []byte) RGBA {
	channels := pixfmt.Channels(f)
	widths := pixfmt.Widths(f)
	kind := pixfmt.Kind(f)
	isSRGB := kind == pixfmt.SRGBKind

	var raws []uint64
	if pixfmt.IsPacked(f) {
		totalBits := 0
		for _, w := range widths {
			totalBits += int(w)
		}
		word := readWordLE(src)
		raws = make([]uint64, len(channels))
		offset := 0
		for i, w := range widths {
			shift := totalBits - offset - int(w)
			mask := uint64(1)<<uint(w) - 1
			raws[i] = (word >> uint(shift)) & mask
			offset += int(w)
		}
	} else {
		raws = make([]uint64, len(channels))
		off := 0
		for i, w := range widths {
			nbytes := int(w) / 8
			raws[i] = readWordLE(src[off : off+nbytes])
			off += nbytes
		}
	}

	var out RGBA
	out.A = 1
	for i, ch := range channels {
		v := numericToFloat(raws[i], int(widths[i]), kind)
		if isSRGB && ch != pixfmt.ChA {
			v = srgbToLinear(v)
		}
		switch ch {
		case pixfmt.ChR:
			out.R = v
		case pixfmt.ChG:
			out.G = v
		case pixfmt.ChB:
			out.B = v
		case pixfmt.ChA:
			out.A = v
		}
	}
	return out
}

func numericToFloat(raw uint64, bits int, kind pixfmt.NumKind) float64 {
	switch kind {
	case pixfmt.UNORM, pixfmt.SRGBKind:
		return float64(raw) / float64(uint64(1)<<uint(bits)-1)
	case pixfmt.SNORM:
		signed := int64(raw) - int64(1)<<uint(bits-1)
		return float64(signed) / float64(int64(1)<<uint(bits-1)-1)
	case pixfmt.UINT, pixfmt.USCALED:
		return float64(raw)
	case pixfmt.SINT, pixfmt.SSCALED:
		signed := int64(raw) - int64(1)<<uint(bits-1)
		return float64(signed)
	case pixfmt.SFLOAT:
		return floatBitsToFloat64(raw, bits)
	}
	return 0
}

func floatBitsToFloat64(raw uint64, bits int) float64 {
	switch bits {
	case 16:
		return float64(math.Float32frombits(half16ToFloat32Bits(uint16(raw))))
	case 32:
		return float64(math.Float32frombits(uint32(raw)))
	case 64:
		return math.Float64frombits(raw)
	}
	return 0
}

func float64ToFloatBits(v float64, bits int) uint64 {
	switch bits {
	case 16:
		return uint64(float32ToHalf16(float32(v)))
	case 32:
		return uint64(math.Float32bits(float32(v)))
	case 64:
		return math.Float64bits(v)
	}
	return 0
}

func writeNumeric(f pixfmt.Format, dst []byte, c RGBA) {
	channels := pixfmt.Channels(f)
	widths := pixfmt.Widths(f)
	kind := pixfmt.Kind(f)
	isSRGB := kind == pixfmt.SRGBKind

	raws := make([]uint64, len(channels))
	for i, ch := range channels {
		var v float64
		switch ch {
		case pixfmt.ChR:
			v = c.R
		case pixfmt.ChG:
			v = c.G
		case pixfmt.ChB:
			v = c.B
		case pixfmt.ChA:
			v = c.A
		}
		if isSRGB && ch != pixfmt.ChA {
			v = linearToSRGB(v)
		}
		raws[i] = floatToNumeric(v, int(widths[i]), kind)
	}

	if pixfmt.IsPacked(f) {
		totalBits := 0
		for _, w := range widths {
			totalBits += int(w)
		}
		var word uint64
		offset := 0
		for i, w := range widths {
			shift := totalBits - offset - int(w)
			word |= raws[i] << uint(shift)
			offset += int(w)
		}
		writeWordLE(dst, word, (totalBits+7)/8)
	} else {
		off := 0
		for i, w := range widths {
			nbytes := int(w) / 8
			writeWordLE(dst[off:off+nbytes], raws[i], nbytes)
			off += nbytes
		}
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func floatToNumeric(v float64, bits int, kind pixfmt.NumKind) uint64 {
	switch kind {
	case pixfmt.UNORM, pixfmt.SRGBKind:
		v = clamp(v, 0, 1)
		return uint64(v*float64(uint64(1)<<uint(bits)-1) + 0.5)
	case pixfmt.SNORM:
		v = clamp(v, -1, 1)
		max := int64(1)<<uint(bits-1) - 1
		signed := int64(v * float64(max))
		return uint64(signed + int64(1)<<uint(bits-1))
	case pixfmt.UINT, pixfmt.USCALED:
		return uint64(v)
	case pixfmt.SINT, pixfmt.SSCALED:
		signed := int64(v)
		return uint64(signed + int64(1)<<uint(bits-1))
	case pixfmt.SFLOAT:
		return float64ToFloatBits(v, bits)
	}
	return 0
}
