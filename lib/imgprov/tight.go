// Copyright 2025 The Etc2 Authors.
//
// Licensed under the Apache License, Version 2.0 <LICENSE-APACHE or
// https://www.apache.org/licenses/LICENSE-2.0>. This file may not be copied,
// modified, or distributed except according to those terms.
//
// SPDX-License-Identifier: Apache-2.0

package imgprov

import (
	"github.com/nigeltao/imgio/lib/pixfmt"
)

// TightLinearImageProvider views a single contiguous blob as a full mip
// chain, ordered mip-major then layer then depth-slice then row then
// column (pixfmt.TightTexelNumber addressing). It never copies on
// ReadBorrow: each call slices the backing blob.
type TightLinearImageProvider struct {
	size     pixfmt.Extent3D
	format   pixfmt.Format
	layers   int
	mips     int
	firstMip int
	cubemap  bool
	blob     []byte
}

// NewTightLinear wraps blob, which must be exactly
// TightTexelCount(size, layers, mips, firstMip, format) * ElementSize(format)
// bytes, as a Provider.
func NewTightLinear(size pixfmt.Extent3D, format pixfmt.Format, layers, mips, firstMip int, cubemap bool, blob []byte) (*TightLinearImageProvider, error) {
	if layers < 1 || mips < 1 {
		return nil, ErrBadArgument
	}
	want := pixfmt.TightTexelCount(size, layers, mips, firstMip, format) * int64(pixfmt.ElementSize(format))
	if int64(len(blob)) != want {
		return nil, ErrBadArgument
	}
	p := &TightLinearImageProvider{
		size: size, format: format, layers: layers, mips: mips,
		firstMip: firstMip, cubemap: cubemap, blob: blob,
	}
	if err := Validate(p); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *TightLinearImageProvider) Size() pixfmt.Extent3D { return p.size }
func (p *TightLinearImageProvider) Format() pixfmt.Format { return p.format }
func (p *TightLinearImageProvider) Layers() int            { return p.layers }
func (p *TightLinearImageProvider) Mips() int               { return p.mips }
func (p *TightLinearImageProvider) Cubemap() bool           { return p.cubemap }

func (p *TightLinearImageProvider) faceOffsets(mip, layer int) (start, end int64, err error) {
	if err := checkRange(p, mip, layer); err != nil {
		return 0, 0, err
	}
	elem := int64(pixfmt.ElementSize(p.format))
	n0 := pixfmt.TightTexelNumber(p.size, p.layers, p.firstMip+mip, layer, 0, 0, 0, p.firstMip, p.format)
	faceTexels := pixfmt.TightTexelCount(p.size, 1, 1, p.firstMip+mip, p.format)
	return n0 * elem, (n0 + faceTexels) * elem, nil
}

func (p *TightLinearImageProvider) ReadBorrow(mip, layer int) ([]byte, error) {
	start, end, err := p.faceOffsets(mip, layer)
	if err != nil {
		return nil, err
	}
	return p.blob[start:end], nil
}

func (p *TightLinearImageProvider) ReadInto(dst []byte, mip, layer int) error {
	b, err := p.ReadBorrow(mip, layer)
	if err != nil {
		return err
	}
	if len(dst) < len(b) {
		return ErrBufferTooSmall
	}
	copy(dst, b)
	return nil
}
