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

// WrapOwnedFaces builds a Provider that owns a copy of each (mip, layer)
// blob in faces (id = mip*layers+layer).
func WrapOwnedFaces(size pixfmt.Extent3D, format pixfmt.Format, layers, mips int, cubemap bool, faces [][]byte) (Provider, error) {
	return NewOwningFaces(size, format, layers, mips, cubemap, faces)
}

// WrapBorrowedFaces builds a Provider that aliases each (mip, layer) blob
// in faces without copying. The caller must keep faces alive and
// unmodified for the Provider's lifetime.
func WrapBorrowedFaces(size pixfmt.Extent3D, format pixfmt.Format, layers, mips int, cubemap bool, faces [][]byte) (Provider, error) {
	return NewBorrowingFaces(size, format, layers, mips, cubemap, faces)
}

// WrapTightLinear builds a Provider over a single contiguous, tightly
// packed blob spanning mips [firstMip, firstMip+mips) of size, without
// copying it.
func WrapTightLinear(size pixfmt.Extent3D, format pixfmt.Format, layers, mips, firstMip int, cubemap bool, blob []byte) (Provider, error) {
	return NewTightLinear(size, format, layers, mips, firstMip, cubemap, blob)
}

// WrapLayers composes single-layer providers as consecutive array layers,
// optionally marking the result as a cubemap.
func WrapLayers(subs []Provider, cubemap bool) (Provider, error) {
	return NewMultiLayer(subs, cubemap)
}

// WrapVolumeSlices composes single-layer, single-slice 2-D providers as
// consecutive depth slices of a volume's mip 0.
func WrapVolumeSlices(subs []Provider) (Provider, error) {
	return NewMultiVolume(subs)
}
