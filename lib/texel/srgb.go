// Copyright 2025 The Etc2 Authors.
//
// Licensed under the Apache License, Version 2.0 <LICENSE-APACHE or
// https://www.apache.org/licenses/LICENSE-2.0>. This file may not be copied,
// modified, or distributed except according to those terms.
//
// SPDX-License-Identifier: Apache-2.0

package texel

import "math"

// linearToSRGB applies the exact (not pow-2.2-approximated) IEC 61966-2-1
// transfer function.
func linearToSRGB(x float64) float64 {
	if x <= 0 {
		return 0
	}
	if x < 0.0031308 {
		return 12.92 * x
	}
	return 1.055*math.Pow(x, 1/2.4) - 0.055
}

// srgbToLinear is the inverse of linearToSRGB.
func srgbToLinear(x float64) float64 {
	if x <= 0 {
		return 0
	}
	if x < 0.04045 {
		return x / 12.92
	}
	return math.Pow((x+0.055)/1.055, 2.4)
}
