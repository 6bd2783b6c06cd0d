// Copyright 2025 The Etc2 Authors.
//
// Licensed under the Apache License, Version 2.0 <LICENSE-APACHE or
// https://www.apache.org/licenses/LICENSE-2.0>. This file may not be copied,
// modified, or distributed except according to those terms.
//
// SPDX-License-Identifier: Apache-2.0

package loader

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/nigeltao/imgio/lib/imgprov"
	"github.com/nigeltao/imgio/lib/iostream"
	"github.com/nigeltao/imgio/lib/ktx1"
	"github.com/nigeltao/imgio/lib/pixfmt"
)

func TestLoadDispatchesOnExtensionHint(tt *testing.T) {
	size := pixfmt.Extent3D{W: 1, H: 1, D: 1}
	p, err := imgprov.NewOwningFaces(size, pixfmt.R8G8B8A8Unorm, 1, 1, false, [][]byte{{0x11, 0x22, 0x33, 0x44}})
	if err != nil {
		tt.Fatalf("NewOwningFaces: %v", err)
	}
	var buf bytes.Buffer
	if err := ktx1.Encode(&buf, p); err != nil {
		tt.Fatalf("ktx1.Encode: %v", err)
	}

	stream := iostream.NewMemStream(buf.Bytes())
	got, err := Load(stream, ".ktx")
	if err != nil {
		tt.Fatalf("Load: %v", err)
	}
	if got.Format() != pixfmt.R8G8B8A8Unorm || got.Size() != size {
		tt.Fatalf("Load: got format=%v size=%v", got.Format(), got.Size())
	}
}

func TestLoadSucceedsWithoutExtensionHint(tt *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	img.SetRGBA(0, 0, color.RGBA{R: 1, G: 2, B: 3, A: 0xFF})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		tt.Fatalf("png.Encode: %v", err)
	}

	stream := iostream.NewMemStream(buf.Bytes())
	got, err := Load(stream, "")
	if err != nil {
		tt.Fatalf("Load: %v", err)
	}
	if got.Format() != pixfmt.R8G8B8A8Srgb {
		tt.Fatalf("Load: got format=%v, want R8G8B8A8Srgb", got.Format())
	}
}

func TestLoadRewindsBetweenAttempts(tt *testing.T) {
	// A PNG stream hinted as ".ktx" must fail the ktx1 attempt, then
	// rewind and succeed via the png entry later in the table.
	img := image.NewGray(image.Rect(0, 0, 1, 1))
	img.SetGray(0, 0, color.Gray{Y: 0x42})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		tt.Fatalf("png.Encode: %v", err)
	}

	stream := iostream.NewMemStream(buf.Bytes())
	got, err := Load(stream, ".ktx")
	if err != nil {
		tt.Fatalf("Load: %v", err)
	}
	if got.Format() != pixfmt.R8Srgb {
		tt.Fatalf("Load: got format=%v, want R8Srgb", got.Format())
	}
}

func TestLoadFailsOnUnrecognizedInput(tt *testing.T) {
	stream := iostream.NewMemStream([]byte("not any recognized container"))
	if _, err := Load(stream, ""); err == nil {
		tt.Errorf("Load: got nil error for unrecognized input, want an error")
	}
}
