// Copyright 2025 The Etc2 Authors.
//
// Licensed under the Apache License, Version 2.0 <LICENSE-APACHE or
// https://www.apache.org/licenses/LICENSE-2.0>. This file may not be copied,
// modified, or distributed except according to those terms.
//
// SPDX-License-Identifier: Apache-2.0

package texel

import (
	"encoding/binary"
	"math"
)

// readSharedExponent decodes e5b9g9r9UfloatPack32: bits [31:27] exponent,
// [26:18] B, [17:9] G, [8:0] R, scale = 2^(exp-15-9).
func readSharedExponent(src []byte) RGBA {
	w := binary.LittleEndian.Uint32(src)
	exp := int((w >> 27) & 0x1F)
	b := uint32((w >> 18) & 0x1FF)
	g := uint32((w >> 9) & 0x1FF)
	r := uint32(w & 0x1FF)
	scale := math.Ldexp(1, exp-15-9)
	return RGBA{R: float64(r) * scale, G: float64(g) * scale, B: float64(b) * scale, A: 1}
}

// writeSharedExponent encodes rgb as e5b9g9r9UfloatPack32, per spec.md
// §4.C's shared-exponent encode algorithm.
func writeSharedExponent(dst []byte, c RGBA) {
	const maxVal = (511.0 / 512.0) * 131072 // 2^17
	r, g, b := clamp(c.R, 0, maxVal), clamp(c.G, 0, maxVal), clamp(c.B, 0, maxVal)

	maxrgb := r
	if g > maxrgb {
		maxrgb = g
	}
	if b > maxrgb {
		maxrgb = b
	}

	expShared := 0
	if maxrgb > 0 {
		expShared = int(math.Floor(math.Log2(maxrgb))) + 1 + 15
	}
	if expShared < 0 {
		expShared = 0
	}
	denom := math.Ldexp(1, expShared-15-9)

	round := func(v float64) uint32 { return uint32(math.Floor(v + 0.5)) }
	if round(maxrgb/denom) == 512 {
		expShared++
		denom *= 2
	}

	mr := round(r / denom)
	mg := round(g / denom)
	mb := round(b / denom)

	w := uint32(expShared&0x1F)<<27 | (mb&0x1FF)<<18 | (mg&0x1FF)<<9 | (mr & 0x1FF)
	binary.LittleEndian.PutUint32(dst, w)
}
