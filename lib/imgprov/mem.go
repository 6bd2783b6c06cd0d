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

// MemImageProvider owns (or borrows) one byte blob per (mip, layer) pair,
// indexed id = mip*layers + layer. ReadBorrow is O(1) pointer arithmetic.
type MemImageProvider struct {
	size    pixfmt.Extent3D
	format  pixfmt.Format
	layers  int
	mips    int
	cubemap bool
	blobs   [][]byte
}

func newMem(size pixfmt.Extent3D, format pixfmt.Format, layers, mips int, cubemap bool, blobs [][]byte, owned bool) (*MemImageProvider, error) {
	if layers < 1 || mips < 1 {
		return nil, ErrBadArgument
	}
	if len(blobs) != layers*mips {
		return nil, ErrBadArgument
	}
	p := &MemImageProvider{size: size, format: format, layers: layers, mips: mips, cubemap: cubemap}
	if owned {
		p.blobs = make([][]byte, len(blobs))
		for i, b := range blobs {
			cp := make([]byte, len(b))
			copy(cp, b)
			p.blobs[i] = cp
		}
	} else {
		p.blobs = blobs
	}
	if err := Validate(p); err != nil {
		return nil, err
	}
	for m := 0; m < mips; m++ {
		want := pixfmt.SizeBytes(size, m, format)
		for l := 0; l < layers; l++ {
			if int64(len(p.blobs[m*layers+l])) != want {
				return nil, ErrBadArgument
			}
		}
	}
	return p, nil
}

// NewOwningFaces copies blobs (one per (mip, layer), id = mip*layers+layer)
// into a new MemImageProvider.
func NewOwningFaces(size pixfmt.Extent3D, format pixfmt.Format, layers, mips int, cubemap bool, blobs [][]byte) (*MemImageProvider, error) {
	return newMem(size, format, layers, mips, cubemap, blobs, true)
}

// NewBorrowingFaces wraps blobs without copying; the caller must keep them
// alive and unmodified for the Provider's lifetime.
func NewBorrowingFaces(size pixfmt.Extent3D, format pixfmt.Format, layers, mips int, cubemap bool, blobs [][]byte) (*MemImageProvider, error) {
	return newMem(size, format, layers, mips, cubemap, blobs, false)
}

func (p *MemImageProvider) Size() pixfmt.Extent3D  { return p.size }
func (p *MemImageProvider) Format() pixfmt.Format  { return p.format }
func (p *MemImageProvider) Layers() int            { return p.layers }
func (p *MemImageProvider) Mips() int              { return p.mips }
func (p *MemImageProvider) Cubemap() bool          { return p.cubemap }

func (p *MemImageProvider) ReadBorrow(mip, layer int) ([]byte, error) {
	if err := checkRange(p, mip, layer); err != nil {
		return nil, err
	}
	return p.blobs[mip*p.layers+layer], nil
}

func (p *MemImageProvider) ReadInto(dst []byte, mip, layer int) error {
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
