// Copyright 2025 The Etc2 Authors.
//
// Licensed under the Apache License, Version 2.0 <LICENSE-APACHE or
// https://www.apache.org/licenses/LICENSE-2.0>. This file may not be copied,
// modified, or distributed except according to those terms.
//
// SPDX-License-Identifier: Apache-2.0

//go:build !unix

package iostream

import "os"

// mmapFile is unavailable on non-unix targets; ReadStreamMemoryMap falls
// back to the copy strategy.
func mmapFile(f *os.File, size int64) (mapping, span []byte, ok bool) {
	return nil, nil, false
}

func munmap(mapping []byte) error { return nil }
