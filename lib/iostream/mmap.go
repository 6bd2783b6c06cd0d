// Copyright 2025 The Etc2 Authors.
//
// Licensed under the Apache License, Version 2.0 <LICENSE-APACHE or
// https://www.apache.org/licenses/LICENSE-2.0>. This file may not be copied,
// modified, or distributed except according to those terms.
//
// SPDX-License-Identifier: Apache-2.0

package iostream

import "io"

// ReadStreamMemoryMap owns a Stream plus, optionally, an OS mapping, and
// exposes the whole stream as a contiguous byte span. Three strategies are
// tried in order (spec.md §3):
//
//  1. If the stream is backed by a real file, mmap the whole file read-only.
//  2. If the stream already aliases memory, alias it directly (no copy).
//  3. Otherwise, read the entire stream into an owned buffer.
type ReadStreamMemoryMap struct {
	stream   Stream
	span     []byte // the size-exact view handed out by Span()
	mapping  []byte // the full page-rounded mapping; only set for strategyMmap
	strategy strategy
}

type strategy int

const (
	strategyNone strategy = iota
	strategyMmap
	strategyAlias
	strategyCopy
)

// New builds a ReadStreamMemoryMap over stream, which must be positioned at
// its start. If failOnCopy is true and neither mmap nor aliasing applies,
// New returns an empty (zero strategy) map instead of copying, and does not
// take ownership of stream.
func New(stream Stream, failOnCopy bool) (*ReadStreamMemoryMap, error) {
	if f, size, ok := AsFile(stream); ok {
		if mapping, span, ok := mmapFile(f, size); ok {
			return &ReadStreamMemoryMap{stream: stream, span: span, mapping: mapping, strategy: strategyMmap}, nil
		}
	}
	if b, ok := AsMemory(stream); ok {
		return &ReadStreamMemoryMap{stream: stream, span: b, strategy: strategyAlias}, nil
	}
	if failOnCopy {
		return &ReadStreamMemoryMap{}, nil
	}

	length, err := stream.Length()
	if err != nil {
		return nil, err
	}
	if _, err := stream.Seek(0, SeekSet); err != nil {
		return nil, err
	}
	buf := make([]byte, length)
	if err := stream.Read(buf); err != nil && err != io.EOF {
		return nil, err
	}
	return &ReadStreamMemoryMap{stream: stream, span: buf, strategy: strategyCopy}, nil
}

// Span returns the mapped bytes. Its length equals the stream's length; it
// remains valid until Release or garbage collection of m.
func (m *ReadStreamMemoryMap) Span() []byte { return m.span }

// Release unmaps the OS mapping, if one was taken, and drops the span.
func (m *ReadStreamMemoryMap) Release() error {
	var err error
	if m.strategy == strategyMmap {
		err = munmap(m.mapping)
	}
	m.span = nil
	m.mapping = nil
	m.strategy = strategyNone
	return err
}
