// Copyright 2025 The Etc2 Authors.
//
// Licensed under the Apache License, Version 2.0 <LICENSE-APACHE or
// https://www.apache.org/licenses/LICENSE-2.0>. This file may not be copied,
// modified, or distributed except according to those terms.
//
// SPDX-License-Identifier: Apache-2.0

package imgprov

import (
	"testing"

	"github.com/nigeltao/imgio/lib/pixfmt"
)

func oneLayerFace(size pixfmt.Extent3D, format pixfmt.Format, fill byte) Provider {
	n := pixfmt.SizeBytes(size, 0, format)
	blob := make([]byte, n)
	for i := range blob {
		blob[i] = fill
	}
	p, err := NewOwningFaces(size, format, 1, 1, false, [][]byte{blob})
	if err != nil {
		panic(err)
	}
	return p
}

func TestMultiLayerComposesLayers(tt *testing.T) {
	size := pixfmt.Extent3D{W: 2, H: 2, D: 1}
	subs := []Provider{
		oneLayerFace(size, pixfmt.R8G8B8A8Unorm, 1),
		oneLayerFace(size, pixfmt.R8G8B8A8Unorm, 2),
		oneLayerFace(size, pixfmt.R8G8B8A8Unorm, 3),
	}
	p, err := NewMultiLayer(subs, false)
	if err != nil {
		tt.Fatalf("NewMultiLayer: %v", err)
	}
	if p.Layers() != 3 {
		tt.Fatalf("Layers() = %d, want 3", p.Layers())
	}
	for l, want := range []byte{1, 2, 3} {
		got, err := p.ReadBorrow(0, l)
		if err != nil {
			tt.Fatalf("ReadBorrow(0,%d): %v", l, err)
		}
		if got[0] != want {
			tt.Errorf("ReadBorrow(0,%d)[0] = %d, want %d", l, got[0], want)
		}
	}
}

func TestMultiLayerRejectsMismatchedSubs(tt *testing.T) {
	a := oneLayerFace(pixfmt.Extent3D{W: 2, H: 2, D: 1}, pixfmt.R8G8B8A8Unorm, 1)
	b := oneLayerFace(pixfmt.Extent3D{W: 4, H: 4, D: 1}, pixfmt.R8G8B8A8Unorm, 2)
	if _, err := NewMultiLayer([]Provider{a, b}, false); err != ErrBadArgument {
		tt.Errorf("NewMultiLayer(mismatched sizes): got %v, want ErrBadArgument", err)
	}
}

func TestMultiLayerCubemapRequiresMultipleOfSix(tt *testing.T) {
	size := pixfmt.Extent3D{W: 2, H: 2, D: 1}
	subs := []Provider{
		oneLayerFace(size, pixfmt.R8G8B8A8Unorm, 1),
		oneLayerFace(size, pixfmt.R8G8B8A8Unorm, 2),
	}
	if _, err := NewMultiLayer(subs, true); err != ErrBadArgument {
		tt.Errorf("NewMultiLayer(2 faces, cubemap): got %v, want ErrBadArgument", err)
	}
}

func TestMultiVolumeComposesDepthSlices(tt *testing.T) {
	size := pixfmt.Extent3D{W: 2, H: 2, D: 1}
	subs := []Provider{
		oneLayerFace(size, pixfmt.R8G8B8A8Unorm, 10),
		oneLayerFace(size, pixfmt.R8G8B8A8Unorm, 20),
	}
	p, err := NewMultiVolume(subs)
	if err != nil {
		tt.Fatalf("NewMultiVolume: %v", err)
	}
	if p.Size().D != 2 || p.Layers() != 1 {
		tt.Fatalf("Size/Layers = %v/%d, want D=2 Layers=1", p.Size(), p.Layers())
	}
	s0, err := p.ReadSliceBorrow(0)
	if err != nil || s0[0] != 10 {
		tt.Errorf("ReadSliceBorrow(0): got %v (err=%v), want first byte 10", s0, err)
	}
	s1, err := p.ReadSliceBorrow(1)
	if err != nil || s1[0] != 20 {
		tt.Errorf("ReadSliceBorrow(1): got %v (err=%v), want first byte 20", s1, err)
	}
	strided, err := p.ReadBorrow(0, 0)
	if err != nil {
		tt.Fatalf("ReadBorrow on volume: %v", err)
	}
	sliceSize := pixfmt.SizeBytes(pixfmt.Extent3D{W: size.W, H: size.H, D: 1}, 0, pixfmt.R8G8B8A8Unorm)
	if strided[0] != 10 || strided[sliceSize] != 20 {
		tt.Errorf("ReadBorrow on volume: got %v, want slice 0 starting with 10 and slice 1 (at offset %d) starting with 20", strided, sliceSize)
	}

	dst := make([]byte, 2*sliceSize)
	if err := p.ReadInto(dst, 0, 0); err != nil {
		tt.Fatalf("ReadInto on volume: %v", err)
	}
	if dst[0] != 10 || dst[sliceSize] != 20 {
		tt.Errorf("ReadInto on volume: got %v, want slice 0 starting with 10 and slice 1 (at offset %d) starting with 20", dst, sliceSize)
	}
}
