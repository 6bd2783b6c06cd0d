// Copyright 2025 The Etc2 Authors.
//
// Licensed under the Apache License, Version 2.0 <LICENSE-APACHE or
// https://www.apache.org/licenses/LICENSE-2.0>. This file may not be copied,
// modified, or distributed except according to those terms.
//
// SPDX-License-Identifier: Apache-2.0

package iostream

import (
	"errors"
	"io"
	"os"
)

// FileStream is a Stream backed by an *os.File.
type FileStream struct {
	f    *os.File
	eof  bool
	size int64
}

// OpenFile opens path for reading and wraps it in a FileStream.
func OpenFile(path string) (*FileStream, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	return NewFileStream(f)
}

// CreateFile creates (truncating) path for writing and wraps it in a
// FileStream.
func CreateFile(path string) (*FileStream, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	return NewFileStream(f)
}

// NewFileStream wraps an already-open *os.File.
func NewFileStream(f *os.File) (*FileStream, error) {
	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	return &FileStream{f: f, size: fi.Size()}, nil
}

func (s *FileStream) Close() error { return s.f.Close() }

func (s *FileStream) ReadPartial(buf []byte) (int, error) {
	n, err := s.f.Read(buf)
	if errors.Is(err, io.EOF) {
		s.eof = true
		err = nil
	}
	if err != nil {
		return -1, err
	}
	return n, nil
}

func (s *FileStream) Read(buf []byte) error {
	_, err := io.ReadFull(s.f, buf)
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		s.eof = true
	}
	return err
}

func (s *FileStream) WritePartial(buf []byte) (int, error) {
	return s.f.Write(buf)
}

func (s *FileStream) Write(buf []byte) error {
	n, err := s.f.Write(buf)
	if err != nil {
		return err
	}
	if n != len(buf) {
		return io.ErrShortWrite
	}
	return nil
}

func (s *FileStream) Seek(offset int64, origin Origin) (int64, error) {
	var whence int
	switch origin {
	case SeekSet:
		whence = io.SeekStart
	case SeekCurrent:
		whence = io.SeekCurrent
	case SeekEnd:
		whence = io.SeekEnd
	default:
		return 0, ErrNotSupported
	}
	pos, err := s.f.Seek(offset, whence)
	if err == nil && !(origin == SeekEnd && offset == 0) {
		s.eof = false
	}
	return pos, err
}

func (s *FileStream) Address() int64 {
	pos, _ := s.f.Seek(0, io.SeekCurrent)
	return pos
}

func (s *FileStream) Length() (int64, error) {
	fi, err := s.f.Stat()
	if err != nil {
		return 0, err
	}
	return fi.Size(), nil
}

func (s *FileStream) EOF() bool { return s.eof }

func (s *FileStream) osFile() (*os.File, int64, bool) { return s.f, s.size, true }
