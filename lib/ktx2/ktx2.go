// Copyright 2025 The Etc2 Authors.
//
// Licensed under the Apache License, Version 2.0 <LICENSE-APACHE or
// https://www.apache.org/licenses/LICENSE-2.0>. This file may not be copied,
// modified, or distributed except according to those terms.
//
// SPDX-License-Identifier: Apache-2.0

// ----------------

// Package ktx2 reads and writes the Vulkan-style KTX 2.0 container: a
// 12-byte magic, a 15-field little-endian header, a level index of
// (offset, length, uncompressedLength) triples, and optionally
// zlib-supercompressed level data.
package ktx2

import (
	"bytes"
	"errors"
	"io"

	"github.com/nigeltao/imgio/internal/logger"
	"github.com/nigeltao/imgio/lib/imgprov"
	"github.com/nigeltao/imgio/lib/iostream"
	"github.com/nigeltao/imgio/lib/pixfmt"
)

var (
	// ErrInvalidType is returned when the stream does not begin with the
	// KTX2 magic bytes.
	ErrInvalidType = errors.New("ktx2: not a KTX2 file")
	// ErrUnsupportedFormat is returned for vkFormat == 0 or an unknown
	// supercompressionScheme.
	ErrUnsupportedFormat = errors.New("ktx2: unsupported format or supercompression scheme")
	// ErrEmpty is returned when pixelWidth == 0.
	ErrEmpty = errors.New("ktx2: pixelWidth is zero")
	// ErrUnexpectedEnd is returned when the stream ends before the header
	// or level index has been fully read.
	ErrUnexpectedEnd = errors.New("ktx2: unexpected end of stream")
	// ErrLevelLengthMismatch is returned when a decompressed level's
	// length disagrees with its uncompressedByteLength field.
	ErrLevelLengthMismatch = errors.New("ktx2: decompressed level length does not match uncompressedByteLength")
)

// Provider is the KTX2-backed imgprov.Provider. Supercompressed levels are
// decompressed lazily, once per level, into an owned cache entry.
type Provider struct {
	size    pixfmt.Extent3D
	format  pixfmt.Format
	faces   int
	layers  int // total faces*arrayLayers, matching imgprov.Provider.Layers
	cubemap bool
	levels  []levelInfo
	scheme  SupercompressionScheme
	decomp  decompressor

	dfd []byte // raw Data Format Descriptor, opaque, re-emitted on Encode
	kvd []byte // raw Key/Value Data, opaque, re-emitted on Encode
	sgd []byte // raw Supercompression Global Data, opaque, re-emitted on Encode

	span  []byte // the whole container, from the stream's ReadStreamMemoryMap
	cache map[int][]byte
}

// byteRange returns span[offset:offset+length], or (nil, nil) when length
// is zero, or an error if the range runs past the end of span.
func byteRange(span []byte, offset, length uint64) ([]byte, error) {
	if length == 0 {
		return nil, nil
	}
	end := offset + length
	if end < offset || end > uint64(len(span)) {
		return nil, ErrUnexpectedEnd
	}
	return span[offset:end], nil
}

// Decode reads a full KTX2 container from stream and returns an image
// provider over its levels. stream is read via a ReadStreamMemoryMap, so
// decode never copies more than the supercompressed levels it actually
// decompresses.
func Decode(stream iostream.Stream) (imgprov.Provider, error) {
	mm, err := iostream.New(stream, false)
	if err != nil {
		return nil, err
	}
	span := mm.Span()

	if len(span) < headerSize || !bytes.Equal(span[:12], magic[:]) {
		return nil, ErrInvalidType
	}
	h := decodeHeader(span[12:headerSize])

	if h.vkFormat == 0 {
		return nil, ErrUnsupportedFormat
	}
	if h.pixelWidth == 0 {
		return nil, ErrEmpty
	}
	scheme := SupercompressionScheme(h.supercompressionScheme)
	decomp, ok := decompressorFor(scheme)
	if !ok {
		return nil, ErrUnsupportedFormat
	}
	faceCount := h.faceCount
	if faceCount == 0 {
		logger.Get(nil).Warn("ktx2: faceCount is 0, treating it as 1")
		faceCount = 1 // spec: faceCount==0 treated as 1, with warning
	}

	levelIndexEnd := headerSize + int(h.levelCount)*levelEntrySize
	if len(span) < levelIndexEnd {
		return nil, ErrUnexpectedEnd
	}
	levels := decodeLevelIndex(span[headerSize:levelIndexEnd], h.levelCount)

	dfd, err := byteRange(span, uint64(h.dfdByteOffset), uint64(h.dfdByteLength))
	if err != nil {
		return nil, err
	}
	kvd, err := byteRange(span, uint64(h.kvdByteOffset), uint64(h.kvdByteLength))
	if err != nil {
		return nil, err
	}
	sgd, err := byteRange(span, uint64(h.sgdByteOffset), uint64(h.sgdByteLength))
	if err != nil {
		return nil, err
	}

	arrayLayers := h.layerCount
	if arrayLayers == 0 {
		arrayLayers = 1
	}
	totalLayers := int(faceCount) * int(arrayLayers)

	size := pixfmt.Extent3D{W: int(h.pixelWidth), H: int(h.pixelHeight), D: int(h.pixelDepth)}
	if size.H < 1 {
		size.H = 1
	}
	if size.D < 1 {
		size.D = 1
	}

	p := &Provider{
		size:    size,
		format:  pixfmt.Format(h.vkFormat),
		faces:   int(faceCount),
		layers:  totalLayers,
		cubemap: faceCount == 6 && h.layerCount == 0,
		levels:  levels,
		scheme:  scheme,
		decomp:  decomp,
		dfd:     dfd,
		kvd:     kvd,
		sgd:     sgd,
		span:    span,
		cache:   map[int][]byte{},
	}
	if err := imgprov.Validate(p); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Provider) Size() pixfmt.Extent3D { return p.size }
func (p *Provider) Format() pixfmt.Format { return p.format }
func (p *Provider) Layers() int           { return p.layers }
func (p *Provider) Mips() int             { return len(p.levels) }
func (p *Provider) Cubemap() bool         { return p.cubemap }

func (p *Provider) faceSize(mip int) int64 {
	return pixfmt.SizeBytes(p.size, mip, p.format)
}

// levelBytes returns the uncompressed bytes of level mip, decompressing
// and caching it on first access.
func (p *Provider) levelBytes(mip int) ([]byte, error) {
	if b, ok := p.cache[mip]; ok {
		return b, nil
	}
	lvl := p.levels[mip]
	compressed, err := byteRange(p.span, lvl.byteOffset, lvl.byteLength)
	if err != nil {
		return nil, err
	}
	b, err := p.decomp.decompress(compressed, int64(lvl.uncompressedLength))
	if err != nil {
		return nil, err
	}
	p.cache[mip] = b
	return b, nil
}

func (p *Provider) ReadBorrow(mip, layer int) ([]byte, error) {
	if mip < 0 || mip >= p.Mips() || layer < 0 || layer >= p.layers {
		return nil, imgprov.ErrOutOfRange
	}
	b, err := p.levelBytes(mip)
	if err != nil {
		return nil, err
	}
	faceSize := p.faceSize(mip)
	start := int64(layer) * faceSize
	return b[start : start+faceSize], nil
}

func (p *Provider) ReadInto(dst []byte, mip, layer int) error {
	b, err := p.ReadBorrow(mip, layer)
	if err != nil {
		return err
	}
	if len(dst) < len(b) {
		return imgprov.ErrBufferTooSmall
	}
	copy(dst, b)
	return nil
}

func gcd(a, b int64) int64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

func align(elementSize int, to int64) int64 {
	e := int64(elementSize)
	if e == 0 {
		return to
	}
	g := gcd(e, to)
	return e * to / g // lcm(elementSize, to)
}

func padTo(pos, alignment int64) int64 {
	if alignment == 0 {
		return 0
	}
	rem := pos % alignment
	if rem == 0 {
		return 0
	}
	return alignment - rem
}

// Encode writes p to w as a KTX2 container. When useZlib is true, every
// level is zlib-supercompressed at level 6; otherwise levels are written
// raw (supercompressionScheme 0). If p was produced by Decode and carried
// a DFD, key/value, or supercompression-global-data block, those blocks
// are re-emitted unchanged.
func Encode(w io.Writer, p imgprov.Provider, useZlib bool) error {
	var dfd, kvd, sgd []byte
	if dp, ok := p.(*Provider); ok {
		dfd, kvd, sgd = dp.dfd, dp.kvd, dp.sgd
	}

	buf := &bytes.Buffer{}
	buf.Write(magic[:])

	headerPos := buf.Len()
	buf.Write(make([]byte, headerFieldCount*4))

	mips := p.Mips()
	levels := make([]levelInfo, mips)
	levelIndexPos := buf.Len()
	buf.Write(make([]byte, mips*levelEntrySize))

	var dfdByteOffset, kvdByteOffset, sgdByteOffset uint32
	if len(dfd) > 0 {
		dfdByteOffset = uint32(buf.Len())
		buf.Write(dfd)
	}
	if len(kvd) > 0 {
		kvdByteOffset = uint32(buf.Len())
		buf.Write(kvd)
	}
	if len(sgd) > 0 {
		pad := padTo(int64(buf.Len()), 8)
		buf.Write(make([]byte, pad))
		sgdByteOffset = uint32(buf.Len())
		buf.Write(sgd)
	}

	totalLayers := p.Layers()
	faceCount := 1
	if p.Cubemap() {
		faceCount = 6
	}
	arrayLayers := totalLayers / faceCount

	elementSize := pixfmt.ElementSize(p.Format())
	for m := 0; m < mips; m++ {
		alignment := align(elementSize, 4)
		pad := padTo(int64(buf.Len()), alignment)
		buf.Write(make([]byte, pad))

		byteOffset := uint64(buf.Len())
		faceSize := imgprov.FaceSize(p, m)
		uncompressedLength := faceSize * int64(totalLayers)

		raw := make([]byte, 0, uncompressedLength)
		for l := 0; l < totalLayers; l++ {
			face, err := p.ReadBorrow(m, l)
			if err != nil {
				return err
			}
			raw = append(raw, face...)
		}

		var byteLength uint64
		if useZlib {
			compressed, err := compressZlibLevel6(raw)
			if err != nil {
				return err
			}
			buf.Write(compressed)
			byteLength = uint64(len(compressed))
		} else {
			buf.Write(raw)
			byteLength = uint64(len(raw))
		}

		levels[m] = levelInfo{byteOffset: byteOffset, byteLength: byteLength, uncompressedLength: uint64(uncompressedLength)}
	}

	scheme := SupercompressionScheme(SchemeNone)
	if useZlib {
		scheme = SchemeZlib
	}

	layerCount := uint32(arrayLayers)
	if layerCount == 1 {
		layerCount = 0
	}
	h := header{
		vkFormat:               uint32(p.Format()),
		typeSize:               uint32(elementSize),
		pixelWidth:             uint32(p.Size().W),
		pixelHeight:            uint32(p.Size().H),
		pixelDepth:             uint32(p.Size().D),
		layerCount:             layerCount,
		faceCount:              uint32(faceCount),
		levelCount:             uint32(mips),
		supercompressionScheme: uint32(scheme),
		dfdByteOffset:          dfdByteOffset,
		dfdByteLength:          uint32(len(dfd)),
		kvdByteOffset:          kvdByteOffset,
		kvdByteLength:          uint32(len(kvd)),
		sgdByteOffset:          sgdByteOffset,
		sgdByteLength:          uint32(len(sgd)),
	}
	if h.pixelDepth == 1 {
		h.pixelDepth = 0
	}

	raw := buf.Bytes()
	encodeHeaderInto(raw[headerPos:headerPos+headerFieldCount*4], h)
	encodeLevelIndexInto(raw[levelIndexPos:levelIndexPos+mips*levelEntrySize], levels)

	_, err := w.Write(raw)
	return err
}
