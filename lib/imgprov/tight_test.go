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

func TestTightLinearSingleMipTwoLayers(tt *testing.T) {
	size := pixfmt.Extent3D{W: 2, H: 2, D: 1}
	// layer 0: bytes 0..15, layer 1: bytes 16..31, each texel one R8G8B8A8 word.
	blob := make([]byte, 32)
	for i := range blob {
		blob[i] = byte(i)
	}

	p, err := NewTightLinear(size, pixfmt.R8G8B8A8Unorm, 2, 1, 0, false, blob)
	if err != nil {
		tt.Fatalf("NewTightLinear: %v", err)
	}

	got0, err := p.ReadBorrow(0, 0)
	if err != nil {
		tt.Fatalf("ReadBorrow(0,0): %v", err)
	}
	if got0[0] != 0 || len(got0) != 16 {
		tt.Errorf("layer 0: got[0]=%d len=%d, want 0 and 16", got0[0], len(got0))
	}

	got1, err := p.ReadBorrow(0, 1)
	if err != nil {
		tt.Fatalf("ReadBorrow(0,1): %v", err)
	}
	if got1[0] != 16 || len(got1) != 16 {
		tt.Errorf("layer 1: got[0]=%d len=%d, want 16 and 16", got1[0], len(got1))
	}
}

func TestTightLinearRejectsWrongLength(tt *testing.T) {
	size := pixfmt.Extent3D{W: 2, H: 2, D: 1}
	if _, err := NewTightLinear(size, pixfmt.R8G8B8A8Unorm, 1, 1, 0, false, make([]byte, 15)); err != ErrBadArgument {
		tt.Errorf("NewTightLinear(short blob): got %v, want ErrBadArgument", err)
	}
}

func TestTightLinearMipChainOrdering(tt *testing.T) {
	size := pixfmt.Extent3D{W: 4, H: 4, D: 1}
	// mip 0: 16 texels, mip 1: 4 texels, mip 2: 1 texel; 1 layer, R8 (element size 1).
	n := pixfmt.TightTexelCount(size, 1, 3, 0, pixfmt.R8Unorm)
	blob := make([]byte, n)
	for i := range blob {
		blob[i] = byte(i)
	}

	p, err := NewTightLinear(size, pixfmt.R8Unorm, 1, 3, 0, false, blob)
	if err != nil {
		tt.Fatalf("NewTightLinear: %v", err)
	}

	mip0, err := p.ReadBorrow(0, 0)
	if err != nil || len(mip0) != 16 {
		tt.Fatalf("ReadBorrow(0,0): len=%d err=%v, want len 16", len(mip0), err)
	}
	mip1, err := p.ReadBorrow(1, 0)
	if err != nil || len(mip1) != 4 || mip1[0] != 16 {
		tt.Fatalf("ReadBorrow(1,0): got %v (err=%v), want 4 bytes starting at 16", mip1, err)
	}
	mip2, err := p.ReadBorrow(2, 0)
	if err != nil || len(mip2) != 1 || mip2[0] != 20 {
		tt.Fatalf("ReadBorrow(2,0): got %v (err=%v), want [20]", mip2, err)
	}
}
