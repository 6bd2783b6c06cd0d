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

// MultiImageProvider composes N single-layer sub-providers into one,
// either as additional array layers (LayerMode) or as additional depth
// slices of a volume (VolumeMode). All sub-providers must agree on size,
// format and mip count.
type MultiImageProvider struct {
	subs    []Provider
	volume  bool
	size    pixfmt.Extent3D
	format  pixfmt.Format
	mips    int
	cubemap bool
}

// NewMultiLayer stacks subs (each a single-layer Provider) as consecutive
// array layers of the result, marked as a cubemap when cubemap is true.
// Requesting a cubemap when len(subs) is not a multiple of 6 returns
// ErrBadArgument.
func NewMultiLayer(subs []Provider, cubemap bool) (*MultiImageProvider, error) {
	if len(subs) == 0 {
		return nil, ErrBadArgument
	}
	if cubemap && len(subs)%6 != 0 {
		return nil, ErrBadArgument
	}
	base := subs[0]
	size, format, mips := base.Size(), base.Format(), base.Mips()
	for _, s := range subs {
		if s.Layers() != 1 {
			return nil, ErrBadArgument
		}
		if s.Size() != size || s.Format() != format || s.Mips() != mips {
			return nil, ErrBadArgument
		}
	}
	p := &MultiImageProvider{subs: subs, volume: false, size: size, format: format, mips: mips, cubemap: cubemap}
	if err := Validate(p); err != nil {
		return nil, err
	}
	return p, nil
}

// NewMultiVolume stacks subs (each a single-layer, single-depth-slice
// Provider) as consecutive depth slices of mip 0 of a volume. Only mip 0
// is addressable this way: volumes built from 2-D slices have no mip
// chain of their own (spec.md §4.D).
func NewMultiVolume(subs []Provider) (*MultiImageProvider, error) {
	if len(subs) == 0 {
		return nil, ErrBadArgument
	}
	base := subs[0]
	w, h, format := base.Size().W, base.Size().H, base.Format()
	for _, s := range subs {
		if s.Layers() != 1 || s.Mips() != 1 || s.Size().D != 1 {
			return nil, ErrBadArgument
		}
		if s.Size().W != w || s.Size().H != h || s.Format() != format {
			return nil, ErrBadArgument
		}
	}
	size := pixfmt.Extent3D{W: w, H: h, D: len(subs)}
	p := &MultiImageProvider{subs: subs, volume: true, size: size, format: format, mips: 1}
	if err := Validate(p); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *MultiImageProvider) Size() pixfmt.Extent3D { return p.size }
func (p *MultiImageProvider) Format() pixfmt.Format { return p.format }
func (p *MultiImageProvider) Mips() int             { return p.mips }
func (p *MultiImageProvider) Cubemap() bool         { return p.cubemap }

func (p *MultiImageProvider) Layers() int {
	if p.volume {
		return 1
	}
	return len(p.subs)
}

// ReadBorrow assembles a volume's depth slices into a freshly allocated,
// tightly strided buffer: slice z lands at offset z*sliceSize(0). Only
// mip 0, layer 0 is addressable this way (spec.md §4.D).
func (p *MultiImageProvider) ReadBorrow(mip, layer int) ([]byte, error) {
	if p.volume {
		if mip != 0 || layer != 0 {
			return nil, ErrOutOfRange
		}
		dst := make([]byte, pixfmt.SizeBytes(p.size, 0, p.format))
		if err := p.readVolumeInto(dst); err != nil {
			return nil, err
		}
		return dst, nil
	}
	if err := checkRange(p, mip, layer); err != nil {
		return nil, err
	}
	return p.subs[layer].ReadBorrow(mip, 0)
}

func (p *MultiImageProvider) ReadInto(dst []byte, mip, layer int) error {
	if p.volume {
		if mip != 0 || layer != 0 {
			return ErrOutOfRange
		}
		return p.readVolumeInto(dst)
	}
	if err := checkRange(p, mip, layer); err != nil {
		return err
	}
	return p.subs[layer].ReadInto(dst, mip, 0)
}

// readVolumeInto fills dst (at least the size of the whole mip-0 volume)
// by reading each depth slice at offset z*sliceSize(0).
func (p *MultiImageProvider) readVolumeInto(dst []byte) error {
	sliceSize := pixfmt.SizeBytes(pixfmt.Extent3D{W: p.size.W, H: p.size.H, D: 1}, 0, p.format)
	if int64(len(dst)) < sliceSize*int64(len(p.subs)) {
		return ErrBufferTooSmall
	}
	for z, s := range p.subs {
		off := sliceSize * int64(z)
		if err := s.ReadInto(dst[off:off+sliceSize], 0, 0); err != nil {
			return err
		}
	}
	return nil
}

// ReadSliceBorrow returns a view of depth slice z of a volume built by
// NewMultiVolume.
func (p *MultiImageProvider) ReadSliceBorrow(z int) ([]byte, error) {
	if !p.volume {
		return nil, ErrBadArgument
	}
	if z < 0 || z >= len(p.subs) {
		return nil, ErrOutOfRange
	}
	return p.subs[z].ReadBorrow(0, 0)
}

// ReadSliceInto copies depth slice z of a volume built by NewMultiVolume
// into dst.
func (p *MultiImageProvider) ReadSliceInto(dst []byte, z int) error {
	if !p.volume {
		return ErrBadArgument
	}
	if z < 0 || z >= len(p.subs) {
		return ErrOutOfRange
	}
	return p.subs[z].ReadInto(dst, 0, 0)
}
