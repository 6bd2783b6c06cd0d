// Copyright 2025 The Etc2 Authors.
//
// Licensed under the Apache License, Version 2.0 <LICENSE-APACHE or
// https://www.apache.org/licenses/LICENSE-2.0>. This file may not be copied,
// modified, or distributed except according to those terms.
//
// SPDX-License-Identifier: Apache-2.0

package pixfmt

// ElementSize returns the byte size of one texel (uncompressed formats) or
// one block (compressed formats). Depth+stencil formats return the sum of
// their plane sizes.
func ElementSize(f Format) int {
	e, ok := lookup(f)
	if !ok {
		return 0
	}
	return e.elementSize()
}

// ElementSizeAspect returns the byte size of a single aspect plane of f.
// For non-depth-stencil formats, aspect is ignored and ElementSize(f) is
// returned.
func ElementSizeAspect(f Format, aspect Aspect) int {
	e, ok := lookup(f)
	if !ok {
		return 0
	}
	if !e.depthStencil {
		return e.elementSize()
	}
	return e.planeSize[aspect]
}

// BlockExtent returns f's block extent in texels: {1,1,1} for uncompressed
// formats.
func BlockExtent(f Format) Extent3D {
	e, ok := lookup(f)
	if !ok || e.block == (Extent3D{}) {
		return Extent3D{1, 1, 1}
	}
	return e.block
}

// AspectMask returns f's aspect bitmask.
func AspectMask(f Format) Aspect {
	e, ok := lookup(f)
	if !ok {
		return AspectColor
	}
	return e.aspect()
}

// IsSRGB reports whether f is an sRGB-nonlinear format.
func IsSRGB(f Format) bool {
	e, ok := lookup(f)
	return ok && (e.kind == SRGBKind)
}

// ToggleSRGB returns f's sRGB/linear partner format. It is bijective on the
// subset of formats that have one, and the identity elsewhere.
func ToggleSRGB(f Format) Format {
	e, ok := lookup(f)
	if !ok || e.srgbPartner == Undefined {
		return f
	}
	return e.srgbPartner
}

func shr1(v, m int) int {
	r := v >> uint(m)
	if r < 1 {
		return 1
	}
	return r
}

// MipSize returns the extent of mip level m of a base extent size.
func MipSize(size Extent3D, m int) Extent3D {
	return Extent3D{
		W: shr1(size.W, m),
		H: shr1(size.H, m),
		D: shr1(size.D, m),
	}
}

// NumMipLevels returns the size of a full mip chain for extent.
func NumMipLevels(extent Extent3D) int {
	maxDim := extent.W
	if extent.H > maxDim {
		maxDim = extent.H
	}
	if extent.D > maxDim {
		maxDim = extent.D
	}
	n := 1
	for maxDim > 1 {
		maxDim >>= 1
		n++
	}
	return n
}

func ceilDiv(a, b int) int {
	if b <= 0 {
		return a
	}
	return (a + b - 1) / b
}

// SizeBytes returns the tightly-packed byte size of mip level m of size,
// in format f: the number of (possibly block-rounded) texels times the
// format's element size.
func SizeBytes(size Extent3D, m int, f Format) int64 {
	ext := MipSize(size, m)
	b := BlockExtent(f)
	bw := ceilDiv(ext.W, b.W)
	bh := ceilDiv(ext.H, b.H)
	bd := ceilDiv(ext.D, b.D)
	return int64(bw) * int64(bh) * int64(bd) * int64(ElementSize(f))
}

// blockCountExtent returns size in block units at mip m (not multiplied by
// element size), used by TightTexelNumber.
func blockCountExtent(size Extent3D, m int, f Format) Extent3D {
	ext := MipSize(size, m)
	b := BlockExtent(f)
	return Extent3D{
		W: ceilDiv(ext.W, b.W),
		H: ceilDiv(ext.H, b.H),
		D: ceilDiv(ext.D, b.D),
	}
}

// TightTexelNumber returns the texel (or block) index of (m, l, x, y, z)
// within a tight-linear blob covering mips [firstMip, ...), ordered
// mip-major, then layer, then depth-slice, then row, then column. Multiply
// by ElementSize(f) to get a byte offset.
func TightTexelNumber(size Extent3D, layers int, m int, l int, x, y, z int, firstMip int, f Format) int64 {
	var n int64
	for i := firstMip; i < m; i++ {
		n += blockCountExtent(size, i, f).Prod() * int64(layers)
	}
	mExt := blockCountExtent(size, m, f)
	n += int64(l) * mExt.Prod()
	n += int64(z)*int64(mExt.H)*int64(mExt.W) + int64(y)*int64(mExt.W) + int64(x)
	return n
}

// TightTexelCount returns the total number of texels (or blocks) spanned by
// mips [firstMip, firstMip+mips) of a tight-linear blob.
func TightTexelCount(size Extent3D, layers int, mips int, firstMip int, f Format) int64 {
	var n int64
	for i := firstMip; i < firstMip+mips; i++ {
		n += blockCountExtent(size, i, f).Prod() * int64(layers)
	}
	return n
}
