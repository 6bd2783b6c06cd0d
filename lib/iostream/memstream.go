// Copyright 2025 The Etc2 Authors.
//
// Licensed under the Apache License, Version 2.0 <LICENSE-APACHE or
// https://www.apache.org/licenses/LICENSE-2.0>. This file may not be copied,
// modified, or distributed except according to those terms.
//
// SPDX-License-Identifier: Apache-2.0

package iostream

import "io"

// MemStream is a Stream backed by an in-memory byte slice.
type MemStream struct {
	buf []byte
	pos int64
	eof bool
}

// NewMemStream wraps buf. Writes past the end of buf grow it.
func NewMemStream(buf []byte) *MemStream {
	return &MemStream{buf: buf}
}

// Bytes returns the stream's current backing slice.
func (s *MemStream) Bytes() []byte { return s.buf }

func (s *MemStream) bytes() []byte { return s.buf }

func (s *MemStream) ReadPartial(buf []byte) (int, error) {
	if s.pos >= int64(len(s.buf)) {
		s.eof = true
		return 0, nil
	}
	n := copy(buf, s.buf[s.pos:])
	s.pos += int64(n)
	if s.pos >= int64(len(s.buf)) {
		s.eof = true
	}
	return n, nil
}

func (s *MemStream) Read(buf []byte) error {
	n, _ := s.ReadPartial(buf)
	if n != len(buf) {
		return io.ErrUnexpectedEOF
	}
	return nil
}

func (s *MemStream) WritePartial(buf []byte) (int, error) {
	end := s.pos + int64(len(buf))
	if end > int64(len(s.buf)) {
		grown := make([]byte, end)
		copy(grown, s.buf)
		s.buf = grown
	}
	n := copy(s.buf[s.pos:end], buf)
	s.pos += int64(n)
	return n, nil
}

func (s *MemStream) Write(buf []byte) error {
	n, err := s.WritePartial(buf)
	if err != nil {
		return err
	}
	if n != len(buf) {
		return io.ErrShortWrite
	}
	return nil
}

func (s *MemStream) Seek(offset int64, origin Origin) (int64, error) {
	var base int64
	switch origin {
	case SeekSet:
		base = 0
	case SeekCurrent:
		base = s.pos
	case SeekEnd:
		base = int64(len(s.buf))
	default:
		return 0, ErrNotSupported
	}
	pos := base + offset
	if pos < 0 {
		return 0, ErrNotSupported
	}
	s.pos = pos
	if !(origin == SeekEnd && offset == 0) {
		s.eof = false
	}
	return pos, nil
}

func (s *MemStream) Address() int64 { return s.pos }

func (s *MemStream) Length() (int64, error) { return int64(len(s.buf)), nil }

func (s *MemStream) EOF() bool { return s.eof }
