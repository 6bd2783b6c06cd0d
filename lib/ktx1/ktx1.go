// Copyright 2025 The Etc2 Authors.
//
// Licensed under the Apache License, Version 2.0 <LICENSE-APACHE or
// https://www.apache.org/licenses/LICENSE-2.0>. This file may not be copied,
// modified, or distributed except according to those terms.
//
// SPDX-License-Identifier: Apache-2.0

// ----------------

// Package ktx1 reads and writes the GL-style KTX 1.1 container: a 12-byte
// magic, a 13-field little-endian header, an optional key/value block,
// then one u32-prefixed, 4-byte-padded image block per mip level.
package ktx1

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/nigeltao/imgio/lib/imgprov"
	"github.com/nigeltao/imgio/lib/pixfmt"
)

var magic = [12]byte{0xAB, 0x4B, 0x54, 0x58, 0x20, 0x31, 0x31, 0xBB, 0x0D, 0x0A, 0x1A, 0x0A}

const nativeEndianness = 0x04030201

const headerFieldCount = 13

var (
	// ErrInvalidType is returned when the stream does not begin with the
	// KTX1 magic bytes.
	ErrInvalidType = errors.New("ktx1: not a KTX1 file")
	// ErrInvalidEndianess is returned when the header's endianness field
	// is not 0x04030201: only native-ordered files are accepted.
	ErrInvalidEndianess = errors.New("ktx1: non-native endianness")
	// ErrCantRepresent is returned for header combinations this reader
	// refuses to address (a 3-D texture with faces or array layers).
	ErrCantRepresent = errors.New("ktx1: cannot represent pixelDepth>1 with faces or array elements")
	// ErrUnsupportedFormat is returned when glInternalFormat has no entry
	// in the format table.
	ErrUnsupportedFormat = errors.New("ktx1: unsupported glInternalFormat")
	// ErrUnexpectedEnd is returned when the stream ends before the header
	// or a declared image block has been fully read.
	ErrUnexpectedEnd = errors.New("ktx1: unexpected end of stream")
	// ErrImageSizeMismatch is returned (wrapped) when a decoded imageSize
	// field disagrees with the addressing formula.
	ErrImageSizeMismatch = errors.New("ktx1: imageSize field does not match computed face size")
)

// header is the 13-field KTX1 header, decoded in native byte order.
type header struct {
	endianness            uint32
	glType                uint32
	glTypeSize            uint32
	glFormat              uint32
	glInternalFormat      uint32
	glBaseInternalFormat  uint32
	pixelWidth            uint32
	pixelHeight           uint32
	pixelDepth            uint32
	numberOfArrayElements uint32
	numberOfFaces         uint32
	numberOfMipmapLevels  uint32
	bytesOfKeyValueData   uint32
}

func readHeader(r io.Reader) (header, error) {
	var buf [12 + 4*headerFieldCount]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		if err == io.ErrUnexpectedEOF || err == io.EOF {
			return header{}, ErrUnexpectedEnd
		}
		return header{}, err
	}
	if !equalBytes(buf[:12], magic[:]) {
		return header{}, ErrInvalidType
	}
	fields := buf[12:]
	get := func(i int) uint32 { return binary.LittleEndian.Uint32(fields[i*4:]) }

	h := header{
		endianness:            get(0),
		glType:                get(1),
		glTypeSize:            get(2),
		glFormat:              get(3),
		glInternalFormat:      get(4),
		glBaseInternalFormat:  get(5),
		pixelWidth:            get(6),
		pixelHeight:           get(7),
		pixelDepth:            get(8),
		numberOfArrayElements: get(9),
		numberOfFaces:         get(10),
		numberOfMipmapLevels:  get(11),
		bytesOfKeyValueData:   get(12),
	}
	if h.endianness != nativeEndianness {
		return header{}, ErrInvalidEndianess
	}
	return h, nil
}

func equalBytes(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func ceilAlign4(n int64) int64 { return (n + 3) &^ 3 }

// isCubemapSpecialCase reports the KTX1 "6 faces, no array elements"
// layout, in which imageSize(m) is a single face's size rather than
// layers*padFace(m).
func isCubemapSpecialCase(numArrayElements, numFaces uint32) bool {
	return numArrayElements == 0 && numFaces == 6
}

// decodedProvider is what Decode returns: an imgprov.Provider plus the
// raw key/value block, kept opaque so Encode can re-emit it unchanged.
type decodedProvider struct {
	imgprov.Provider
	keyValueData []byte
}

// Decode reads a full KTX1 container from r and returns an image
// provider over its decoded faces. The returned provider owns copies of
// the face data; r need not stay alive afterwards.
func Decode(r io.Reader) (imgprov.Provider, error) {
	h, err := readHeader(r)
	if err != nil {
		return nil, err
	}
	if h.pixelDepth > 1 && (h.numberOfFaces > 1 || h.numberOfArrayElements > 1) {
		return nil, ErrCantRepresent
	}

	format, ok := formatFromGLInternalFormat(h.glInternalFormat)
	if !ok {
		return nil, ErrUnsupportedFormat
	}

	numFaces := h.numberOfFaces
	if numFaces == 0 {
		numFaces = 1
	}
	numMips := h.numberOfMipmapLevels
	if numMips == 0 {
		numMips = 1
	}
	numArrayElements := h.numberOfArrayElements
	if numArrayElements == 0 {
		numArrayElements = 1
	}
	cubemap := numFaces == 6 && h.numberOfArrayElements == 0
	layers := int(numFaces * numArrayElements)

	size := pixfmt.Extent3D{W: int(h.pixelWidth), H: int(h.pixelHeight), D: int(h.pixelDepth)}
	if size.D < 1 {
		size.D = 1
	}

	var keyValueData []byte
	if h.bytesOfKeyValueData > 0 {
		keyValueData = make([]byte, h.bytesOfKeyValueData)
		if _, err := io.ReadFull(r, keyValueData); err != nil {
			return nil, ErrUnexpectedEnd
		}
	}

	faces := make([][]byte, int(numMips)*layers)
	for m := 0; m < int(numMips); m++ {
		var sizeBuf [4]byte
		if _, err := io.ReadFull(r, sizeBuf[:]); err != nil {
			return nil, ErrUnexpectedEnd
		}
		imageSize := int64(binary.LittleEndian.Uint32(sizeBuf[:]))

		faceSize := pixfmt.SizeBytes(size, m, format)
		padFace := ceilAlign4(faceSize)

		wantImageSize := int64(layers) * padFace
		if isCubemapSpecialCase(h.numberOfArrayElements, numFaces) {
			wantImageSize = faceSize
		}
		if imageSize != wantImageSize {
			return nil, fmt.Errorf("ktx1: %w: mip %d: header says %d, computed %d", ErrImageSizeMismatch, m, imageSize, wantImageSize)
		}

		for l := 0; l < layers; l++ {
			buf := make([]byte, padFace)
			if _, err := io.ReadFull(r, buf); err != nil {
				return nil, ErrUnexpectedEnd
			}
			faces[m*layers+l] = buf[:faceSize]
		}
	}

	inner, err := imgprov.NewBorrowingFaces(size, format, layers, int(numMips), cubemap, faces)
	if err != nil {
		return nil, err
	}
	if len(keyValueData) == 0 {
		return inner, nil
	}
	return &decodedProvider{Provider: inner, keyValueData: keyValueData}, nil
}

// Encode writes p to w as a KTX1 container. If p was produced by Decode
// and carried a key/value block, that block is re-emitted unchanged.
func Encode(w io.Writer, p imgprov.Provider) error {
	glFormat, ok := glInternalFormatFromFormat(p.Format())
	if !ok {
		return ErrUnsupportedFormat
	}

	var keyValueData []byte
	if dp, ok := p.(*decodedProvider); ok {
		keyValueData = dp.keyValueData
	}

	if _, err := w.Write(magic[:]); err != nil {
		return err
	}

	layers := p.Layers()
	numFaces, numArrayElements := uint32(1), uint32(layers)
	if p.Cubemap() {
		numFaces, numArrayElements = 6, uint32(layers/6)
		if numArrayElements == 1 {
			numArrayElements = 0
		}
	}

	h := header{
		endianness:            nativeEndianness,
		glType:                glFormat.glType,
		glTypeSize:            glFormat.glTypeSize,
		glFormat:              glFormat.glPixelFormat,
		glInternalFormat:      glFormat.glInternalFormat,
		glBaseInternalFormat:  glFormat.glBaseInternalFormat,
		pixelWidth:            uint32(p.Size().W),
		pixelHeight:           uint32(p.Size().H),
		pixelDepth:            uint32(p.Size().D),
		numberOfArrayElements: numArrayElements,
		numberOfFaces:         numFaces,
		numberOfMipmapLevels:  uint32(p.Mips()),
		bytesOfKeyValueData:   uint32(len(keyValueData)),
	}
	if h.pixelDepth == 1 {
		h.pixelDepth = 0
	}

	var fields [headerFieldCount]uint32 = [headerFieldCount]uint32{
		h.endianness, h.glType, h.glTypeSize, h.glFormat, h.glInternalFormat,
		h.glBaseInternalFormat, h.pixelWidth, h.pixelHeight, h.pixelDepth,
		h.numberOfArrayElements, h.numberOfFaces, h.numberOfMipmapLevels,
		h.bytesOfKeyValueData,
	}
	var buf [4 * headerFieldCount]byte
	for i, v := range fields {
		binary.LittleEndian.PutUint32(buf[i*4:], v)
	}
	if _, err := w.Write(buf[:]); err != nil {
		return err
	}
	if len(keyValueData) > 0 {
		if _, err := w.Write(keyValueData); err != nil {
			return err
		}
	}

	for m := 0; m < p.Mips(); m++ {
		faceSize := imgprov.FaceSize(p, m)
		padFace := ceilAlign4(faceSize)

		imageSize := int64(layers) * padFace
		if isCubemapSpecialCase(h.numberOfArrayElements, numFaces) {
			imageSize = faceSize
		}

		var sizeBuf [4]byte
		binary.LittleEndian.PutUint32(sizeBuf[:], uint32(imageSize))
		if _, err := w.Write(sizeBuf[:]); err != nil {
			return err
		}

		pad := make([]byte, padFace-faceSize)
		for l := 0; l < layers; l++ {
			face, err := p.ReadBorrow(m, l)
			if err != nil {
				return err
			}
			if _, err := w.Write(face); err != nil {
				return err
			}
			if len(pad) > 0 {
				if _, err := w.Write(pad); err != nil {
					return err
				}
			}
		}
	}
	return nil
}
