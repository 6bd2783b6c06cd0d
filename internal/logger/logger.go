// Copyright 2025 The Etc2 Authors.
//
// Licensed under the Apache License, Version 2.0 <LICENSE-APACHE or
// https://www.apache.org/licenses/LICENSE-2.0>. This file may not be copied,
// modified, or distributed except according to those terms.
//
// SPDX-License-Identifier: Apache-2.0

// Package logger is the thin *slog.Logger wrapper this module's codecs log
// their warnings through. Get accepts a nil *slog.Logger and returns this
// package's Default() in that case, so logging is never required to use
// this module.
package logger

import (
	"log/slog"
	"os"
)

// Default returns the package-wide fallback logger: a text handler on
// stderr at Warn level, since the warnings this module emits (dropped EXR
// layers, faceCount==0, and the like) are the only thing worth seeing by
// default.
func Default() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))
}

// Get returns l, or Default() if l is nil.
func Get(l *slog.Logger) *slog.Logger {
	if l == nil {
		return Default()
	}
	return l
}
