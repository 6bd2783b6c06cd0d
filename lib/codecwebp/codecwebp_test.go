// Copyright 2025 The Etc2 Authors.
//
// Licensed under the Apache License, Version 2.0 <LICENSE-APACHE or
// https://www.apache.org/licenses/LICENSE-2.0>. This file may not be copied,
// modified, or distributed except according to those terms.
//
// SPDX-License-Identifier: Apache-2.0

package codecwebp

import (
	"bytes"
	"testing"
)

func TestDecodeRejectsNonWebP(tt *testing.T) {
	if _, err := Decode(bytes.NewReader([]byte("not a webp file"))); err == nil {
		tt.Errorf("Decode: got nil error for non-WebP input, want an error")
	}
}
