// Copyright 2025 The Etc2 Authors.
//
// Licensed under the Apache License, Version 2.0 <LICENSE-APACHE or
// https://www.apache.org/licenses/LICENSE-2.0>. This file may not be copied,
// modified, or distributed except according to those terms.
//
// SPDX-License-Identifier: Apache-2.0

// ----------------

// Package pixfmt implements the pixel format registry: a closed enumeration
// of Format values matching (a subset of) Vulkan's VkFormat numeric space,
// plus the pure geometric functions (element size, block extent, mip size,
// tight linear addressing) derived from a single static metadata table.
//
// The table is built once, in an init function, and never mutated
// afterwards: the registry is frozen at build time.
package pixfmt

// Format is a pixel format, numbered the way Vulkan numbers VkFormat.
//
// Not every VkFormat value is registered; unregistered values behave as
// Undefined when queried.
type Format int32

const Undefined = Format(0)

// NumKind is the numerical interpretation of a Format's components.
type NumKind uint8

const (
	KindNone NumKind = iota
	UNORM
	SNORM
	USCALED
	SSCALED
	UINT
	SINT
	SFLOAT
	UFLOAT
	SRGBKind
)

// Aspect is a subresource selector bitmask.
type Aspect uint8

const (
	AspectColor Aspect = 1 << iota
	AspectDepth
	AspectStencil
	AspectMetadata
	AspectPlane0
	AspectPlane1
	AspectPlane2
)

// Channel names one on-disk component of a Format.
type Channel uint8

const (
	ChR Channel = iota
	ChG
	ChB
	ChA
	ChD // depth
	ChS // stencil
	ChX // unused / padding
)

// Extent3D is a width/height/depth triple, in texels (or blocks).
type Extent3D struct {
	W, H, D int
}

func (e Extent3D) Prod() int64 { return int64(e.W) * int64(e.H) * int64(e.D) }

// entry is one row of the static format table.
type entry struct {
	name string

	// channels lists the on-disk component order, MSB-first for packed
	// formats, byte-ahead-of-byte for unpacked formats.
	channels []Channel
	widths   []uint8 // bit width per channel, same order as channels

	kind   NumKind
	packed bool // true: one little-endian word, MSB-first bitfields

	block      Extent3D // {1,1,1} unless compressed
	compressed bool     // block-compressed: opaque bytes, no texel decode

	depthStencil bool           // combined depth+stencil format
	planeSize    map[Aspect]int // per-aspect byte size, depthStencil only

	srgbPartner Format // the other half of an UNORM<->SRGB pair, or Undefined

	sharedExponent bool // e5b9g9r9-style
	unsupported    bool // registered (so ElementSize etc. work) but the
	// format engine refuses to read/write it (spec.md §4.C Limitations)
}

func (e entry) aspect() Aspect {
	if e.depthStencil {
		a := Aspect(0)
		for aspect := range e.planeSize {
			a |= aspect
		}
		return a
	}
	return AspectColor
}

// elementSize is the on-disk byte size of one texel (or, for compressed
// formats, one block).
func (e entry) elementSize() int {
	if e.depthStencil {
		total := 0
		for _, n := range e.planeSize {
			total += n
		}
		return total
	}
	bits := 0
	for _, w := range e.widths {
		bits += int(w)
	}
	return (bits + 7) / 8
}

var table = map[Format]entry{}
var nameTable = map[Format]string{}

func register(f Format, e entry) {
	table[f] = e
	nameTable[f] = e.name
}

func lookup(f Format) (entry, bool) {
	e, ok := table[f]
	return e, ok
}

// String returns the format's Vulkan-style name, or "VK_FORMAT_UNDEFINED"
// for an unregistered value.
func (f Format) String() string {
	if n, ok := nameTable[f]; ok {
		return n
	}
	return "VK_FORMAT_UNDEFINED"
}

// IsCompressed reports whether f is block-compressed (BC/ETC2/EAC/ASTC):
// its texels are never decoded individually, only passed through as bytes.
func IsCompressed(f Format) bool {
	e, ok := lookup(f)
	return ok && e.compressed
}

// IsDepthStencil reports whether f combines a depth and a stencil aspect.
func IsDepthStencil(f Format) bool {
	e, ok := lookup(f)
	return ok && e.depthStencil
}

// IsUnsupportedByEngine reports whether the format engine (package texel)
// refuses to read/write this format, per spec.md §4.C Limitations.
func IsUnsupportedByEngine(f Format) bool {
	e, ok := lookup(f)
	return ok && e.unsupported
}

// Channels returns f's on-disk component list, in storage order.
func Channels(f Format) []Channel {
	e, ok := lookup(f)
	if !ok {
		return nil
	}
	return e.channels
}

// Widths returns the bit width of each of f's on-disk components, matching
// Channels(f) index for index.
func Widths(f Format) []uint8 {
	e, ok := lookup(f)
	if !ok {
		return nil
	}
	return e.widths
}

// Kind returns f's numerical interpretation.
func Kind(f Format) NumKind {
	e, _ := lookup(f)
	return e.kind
}

// IsPacked reports whether f's components share one little-endian machine
// word (extracted MSB-first) rather than being individually byte-aligned.
func IsPacked(f Format) bool {
	e, ok := lookup(f)
	return ok && e.packed
}

// IsSharedExponent reports whether f is the e5b9g9r9-style shared-exponent
// format.
func IsSharedExponent(f Format) bool {
	e, ok := lookup(f)
	return ok && e.sharedExponent
}
