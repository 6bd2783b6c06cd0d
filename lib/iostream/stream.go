// Copyright 2025 The Etc2 Authors.
//
// Licensed under the Apache License, Version 2.0 <LICENSE-APACHE or
// https://www.apache.org/licenses/LICENSE-2.0>. This file may not be copied,
// modified, or distributed except according to those terms.
//
// SPDX-License-Identifier: Apache-2.0

// ----------------

// Package iostream implements the uniform random-access byte stream
// abstraction that codecs are built on: Stream for seek/read/write, and
// ReadStreamMemoryMap for the transparent mmap-or-copy upgrade used when
// reading whole containers into memory.
package iostream

import (
	"errors"
	"os"
)

// Origin selects the reference point for Seek.
type Origin int

const (
	SeekSet Origin = iota
	SeekCurrent
	SeekEnd
)

var ErrNotSupported = errors.New("iostream: operation not supported by this stream")

// Stream is the uniform contract codecs are written against. It is
// implemented by *FileStream and *MemStream; callers that need to know
// whether a stream is file- or memory-backed use AsFile / AsMemory rather
// than type-asserting on the concrete type.
type Stream interface {
	// ReadPartial reads into buf, returning the number of bytes actually
	// read (which may be less than len(buf)) and a negative n only on I/O
	// error.
	ReadPartial(buf []byte) (n int, err error)

	// Read fails if fewer than len(buf) bytes are available.
	Read(buf []byte) error

	// WritePartial writes buf, returning the number of bytes written.
	WritePartial(buf []byte) (n int, err error)

	// Write fails unless all of buf was written.
	Write(buf []byte) error

	Seek(offset int64, origin Origin) (int64, error)
	Address() int64
	Length() (int64, error)
	EOF() bool
}

// AsFile returns s's underlying *os.File and its length, or ok=false if s
// is not file-backed. Used by ReadStreamMemoryMap instead of dynamic
// downcasting (spec.md §9's capability-query replacement for RTTI).
func AsFile(s Stream) (file *os.File, size int64, ok bool) {
	fd, ok := s.(fileDescriptor)
	if !ok {
		return nil, 0, false
	}
	return fd.osFile()
}

// AsMemory returns s's backing byte slice, or ok=false if s does not alias
// one directly.
func AsMemory(s Stream) (b []byte, ok bool) {
	m, ok := s.(memorySlice)
	if !ok {
		return nil, false
	}
	return m.bytes(), true
}

type fileDescriptor interface {
	osFile() (handle *os.File, size int64, ok bool)
}

type memorySlice interface {
	bytes() []byte
}
