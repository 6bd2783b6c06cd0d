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

func TestValidateRejectsBadArguments(tt *testing.T) {
	ok := &MemImageProvider{
		size: pixfmt.Extent3D{W: 1, H: 1, D: 1}, format: pixfmt.R8G8B8A8Unorm,
		layers: 1, mips: 1, blobs: [][]byte{make([]byte, 4)},
	}
	if err := Validate(ok); err != nil {
		tt.Fatalf("Validate(ok): %v", err)
	}

	testCases := []struct {
		name string
		p    *MemImageProvider
	}{
		{"zero width", &MemImageProvider{size: pixfmt.Extent3D{W: 0, H: 1, D: 1}, format: pixfmt.R8G8B8A8Unorm, layers: 1, mips: 1}},
		{"zero layers", &MemImageProvider{size: pixfmt.Extent3D{W: 1, H: 1, D: 1}, format: pixfmt.R8G8B8A8Unorm, layers: 0, mips: 1}},
		{"volume with multiple layers", &MemImageProvider{size: pixfmt.Extent3D{W: 1, H: 1, D: 2}, format: pixfmt.R8G8B8A8Unorm, layers: 2, mips: 1}},
		{"cubemap not multiple of 6", &MemImageProvider{size: pixfmt.Extent3D{W: 1, H: 1, D: 1}, format: pixfmt.R8G8B8A8Unorm, layers: 3, mips: 1, cubemap: true}},
		{"undefined format", &MemImageProvider{size: pixfmt.Extent3D{W: 1, H: 1, D: 1}, format: pixfmt.Undefined, layers: 1, mips: 1}},
	}
	for _, tc := range testCases {
		if err := Validate(tc.p); err == nil {
			tt.Errorf("tc=%q: Validate: got nil error, want non-nil", tc.name)
		}
	}
}

func TestMemImageProviderOwnershipAndAddressing(tt *testing.T) {
	size := pixfmt.Extent3D{W: 2, H: 2, D: 1}
	mip0a := []byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16}
	mip0b := []byte{21, 22, 23, 24, 25, 26, 27, 28, 29, 30, 31, 32, 33, 34, 35, 36}
	faces := [][]byte{mip0a, mip0b} // mips=1, layers=2, id = mip*layers+layer

	p, err := NewOwningFaces(size, pixfmt.R8G8B8A8Unorm, 2, 1, false, faces)
	if err != nil {
		tt.Fatalf("NewOwningFaces: %v", err)
	}

	mip0a[0] = 0xFF // mutate caller's slice; owning provider must not see it
	got, err := p.ReadBorrow(0, 0)
	if err != nil {
		tt.Fatalf("ReadBorrow(0,0): %v", err)
	}
	if got[0] != 1 {
		tt.Errorf("owning provider observed caller mutation: got[0]=%d, want 1", got[0])
	}

	got1, err := p.ReadBorrow(0, 1)
	if err != nil {
		tt.Fatalf("ReadBorrow(0,1): %v", err)
	}
	if got1[0] != 21 {
		tt.Errorf("ReadBorrow(0,1)[0] = %d, want 21", got1[0])
	}

	if _, err := p.ReadBorrow(1, 0); err != ErrOutOfRange {
		tt.Errorf("ReadBorrow(1,0): got %v, want ErrOutOfRange", err)
	}
}

func TestMemImageProviderBorrowingAliases(tt *testing.T) {
	size := pixfmt.Extent3D{W: 2, H: 2, D: 1}
	face := []byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16}
	p, err := NewBorrowingFaces(size, pixfmt.R8G8B8A8Unorm, 1, 1, false, [][]byte{face})
	if err != nil {
		tt.Fatalf("NewBorrowingFaces: %v", err)
	}
	face[0] = 0xFF
	got, err := p.ReadBorrow(0, 0)
	if err != nil {
		tt.Fatalf("ReadBorrow: %v", err)
	}
	if got[0] != 0xFF {
		tt.Errorf("borrowing provider did not alias caller's slice: got[0]=%d, want 0xFF", got[0])
	}
}

func TestMemImageProviderReadIntoBufferTooSmall(tt *testing.T) {
	size := pixfmt.Extent3D{W: 2, H: 2, D: 1}
	face := make([]byte, 16)
	p, err := NewOwningFaces(size, pixfmt.R8G8B8A8Unorm, 1, 1, false, [][]byte{face})
	if err != nil {
		tt.Fatalf("NewOwningFaces: %v", err)
	}
	if err := p.ReadInto(make([]byte, 8), 0, 0); err != ErrBufferTooSmall {
		tt.Errorf("ReadInto(short buf): got %v, want ErrBufferTooSmall", err)
	}
}
