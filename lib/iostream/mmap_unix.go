// Copyright 2025 The Etc2 Authors.
//
// Licensed under the Apache License, Version 2.0 <LICENSE-APACHE or
// https://www.apache.org/licenses/LICENSE-2.0>. This file may not be copied,
// modified, or distributed except according to those terms.
//
// SPDX-License-Identifier: Apache-2.0

//go:build unix

package iostream

import (
	"os"

	"golang.org/x/sys/unix"
)

// mmapFile maps f read-only, rounding the mapping length up to page
// granularity. It returns the full mapping (for Munmap) and a span sliced
// back down to size (for Span()).
func mmapFile(f *os.File, size int64) (mapping, span []byte, ok bool) {
	if size <= 0 {
		return nil, nil, false
	}
	pageSize := int64(unix.Getpagesize())
	mapLen := ((size + pageSize - 1) / pageSize) * pageSize

	data, err := unix.Mmap(int(f.Fd()), 0, int(mapLen), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return nil, nil, false
	}
	return data, data[:size], true
}

func munmap(mapping []byte) error {
	return unix.Munmap(mapping)
}
