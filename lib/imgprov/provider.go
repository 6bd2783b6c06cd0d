// Copyright 2025 The Etc2 Authors.
//
// Licensed under the Apache License, Version 2.0 <LICENSE-APACHE or
// https://www.apache.org/licenses/LICENSE-2.0>. This file may not be copied,
// modified, or distributed except according to those terms.
//
// SPDX-License-Identifier: Apache-2.0

// ----------------

// Package imgprov implements the image provider abstraction: a uniform
// read contract over decoded or decodable images, plus the in-memory and
// multi-image (layered/sliced) wrappers built on it.
//
// A Provider is constructed by a codec or wrapper, is never mutated after
// construction, and is destroyed by its owner. It carries no internal
// locks: see spec.md §5 for the concurrency contract.
package imgprov

import (
	"errors"

	"github.com/nigeltao/imgio/lib/pixfmt"
)

var (
	ErrBadArgument   = errors.New("imgprov: bad argument")
	ErrOutOfRange    = errors.New("imgprov: mip or layer out of range")
	ErrBufferTooSmall = errors.New("imgprov: destination buffer smaller than one face")
)

// Provider is the polymorphic value every codec and wrapper in this module
// produces: a uniform read contract over a (possibly) multi-mip,
// multi-layer, optionally cube-mapped image.
//
// ReadBorrow's returned slice is only valid until the next call to
// ReadBorrow or ReadInto on the same Provider, or until the Provider is
// discarded: callers sharing a Provider across goroutines must either
// serialize access to it or use ReadInto exclusively.
type Provider interface {
	Size() pixfmt.Extent3D
	Format() pixfmt.Format
	Layers() int
	Mips() int
	Cubemap() bool

	// ReadBorrow returns a view of face (mip, layer), valid until the next
	// call on this Provider.
	ReadBorrow(mip, layer int) ([]byte, error)

	// ReadInto copies face (mip, layer) into dst, which must be at least
	// FaceSize(p, mip) bytes.
	ReadInto(dst []byte, mip, layer int) error
}

// FaceSize returns the byte size of one fully-packed 2-D (or 3-D, for
// mip 0 of a volume) face at mip m of p.
func FaceSize(p Provider, mip int) int64 {
	return pixfmt.SizeBytes(p.Size(), mip, p.Format())
}

// Validate checks the invariants spec.md §3 and §8 place on any exposed
// Provider.
func Validate(p Provider) error {
	size := p.Size()
	if size.W < 1 || size.H < 1 || size.D < 1 {
		return ErrBadArgument
	}
	if p.Layers() < 1 || p.Mips() < 1 {
		return ErrBadArgument
	}
	if p.Cubemap() && (p.Layers() == 0 || p.Layers()%6 != 0) {
		return ErrBadArgument
	}
	if size.D > 1 && p.Layers() != 1 {
		return ErrBadArgument
	}
	if p.Format() == pixfmt.Undefined {
		return ErrBadArgument
	}
	return nil
}

func checkRange(p Provider, mip, layer int) error {
	if mip < 0 || mip >= p.Mips() || layer < 0 || layer >= p.Layers() {
		return ErrOutOfRange
	}
	return nil
}
