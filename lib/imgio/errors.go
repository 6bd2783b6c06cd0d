// Copyright 2025 The Etc2 Authors.
//
// Licensed under the Apache License, Version 2.0 <LICENSE-APACHE or
// https://www.apache.org/licenses/LICENSE-2.0>. This file may not be copied,
// modified, or distributed except according to those terms.
//
// SPDX-License-Identifier: Apache-2.0

// ----------------

// Package imgio is the top-level convenience API: load an image from a
// path, stream or byte slice without caring which container it's in, and
// write one of the containers this module owns end-to-end (KTX1, KTX2,
// PNG, EXR). It also defines the closed ReadErrorKind/WriteErrorKind
// enums every codec package reports through.
package imgio

import (
	"errors"
	"fmt"
)

// ReadErrorKind classifies why a loader failed to produce a Provider.
type ReadErrorKind int

const (
	CantOpen ReadErrorKind = iota
	InvalidType
	Internal
	UnexpectedEnd
	InvalidEndianess
	UnsupportedFormat
	CantRepresent
	Empty
)

func (k ReadErrorKind) String() string {
	switch k {
	case CantOpen:
		return "cant_open"
	case InvalidType:
		return "invalid_type"
	case Internal:
		return "internal"
	case UnexpectedEnd:
		return "unexpected_end"
	case InvalidEndianess:
		return "invalid_endianess"
	case UnsupportedFormat:
		return "unsupported_format"
	case CantRepresent:
		return "cant_represent"
	case Empty:
		return "empty"
	default:
		return "unknown"
	}
}

// WriteErrorKind classifies why a writer failed to encode a Provider.
type WriteErrorKind int

const (
	WriteCantOpen WriteErrorKind = iota
	WriteCantWrite
	WriteUnsupportedFormat
	WriteInternal
	WriteReadError
)

func (k WriteErrorKind) String() string {
	switch k {
	case WriteCantOpen:
		return "write_cant_open"
	case WriteCantWrite:
		return "write_cant_write"
	case WriteUnsupportedFormat:
		return "write_unsupported_format"
	case WriteInternal:
		return "write_internal"
	case WriteReadError:
		return "write_read_error"
	default:
		return "unknown"
	}
}

// ReadError is the error every codec package returns from its loader
// entry point: Kind lets callers switch on coarse category, Err carries
// the underlying sentinel or wrapped I/O error for errors.Is/errors.As.
type ReadError struct {
	Kind ReadErrorKind
	Err  error
}

func (e *ReadError) Error() string {
	if e.Err == nil {
		return "imgio: read error: " + e.Kind.String()
	}
	return fmt.Sprintf("imgio: read error (%s): %v", e.Kind, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// WriteError is the write-side counterpart of ReadError.
type WriteError struct {
	Kind WriteErrorKind
	Err  error
}

func (e *WriteError) Error() string {
	if e.Err == nil {
		return "imgio: write error: " + e.Kind.String()
	}
	return fmt.Sprintf("imgio: write error (%s): %v", e.Kind, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// NewReadError wraps err (which may be nil) as a ReadError of kind.
func NewReadError(kind ReadErrorKind, err error) *ReadError {
	return &ReadError{Kind: kind, Err: err}
}

// NewWriteError wraps err (which may be nil) as a WriteError of kind.
func NewWriteError(kind WriteErrorKind, err error) *WriteError {
	return &WriteError{Kind: kind, Err: err}
}

// ReadErrorKindOf extracts the Kind of err if it (or something it wraps)
// is a *ReadError.
func ReadErrorKindOf(err error) (ReadErrorKind, bool) {
	var re *ReadError
	if errors.As(err, &re) {
		return re.Kind, true
	}
	return 0, false
}

// WriteErrorKindOf extracts the Kind of err if it (or something it wraps)
// is a *WriteError.
func WriteErrorKindOf(err error) (WriteErrorKind, bool) {
	var we *WriteError
	if errors.As(err, &we) {
		return we.Kind, true
	}
	return 0, false
}
