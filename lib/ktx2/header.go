// Copyright 2025 The Etc2 Authors.
//
// Licensed under the Apache License, Version 2.0 <LICENSE-APACHE or
// https://www.apache.org/licenses/LICENSE-2.0>. This file may not be copied,
// modified, or distributed except according to those terms.
//
// SPDX-License-Identifier: Apache-2.0

package ktx2

import "encoding/binary"

var magic = [12]byte{0xAB, 0x4B, 0x54, 0x58, 0x20, 0x32, 0x30, 0xBB, 0x0D, 0x0A, 0x1A, 0x0A}

const headerFieldCount = 15
const headerSize = 12 + 4*headerFieldCount
const levelEntrySize = 3 * 8

type header struct {
	vkFormat              uint32
	typeSize              uint32
	pixelWidth            uint32
	pixelHeight           uint32
	pixelDepth            uint32
	layerCount            uint32
	faceCount             uint32
	levelCount            uint32
	supercompressionScheme uint32
	dfdByteOffset         uint32
	dfdByteLength         uint32
	kvdByteOffset         uint32
	kvdByteLength         uint32
	sgdByteOffset         uint32
	sgdByteLength         uint32
}

func (h header) fields() [headerFieldCount]uint32 {
	return [headerFieldCount]uint32{
		h.vkFormat, h.typeSize, h.pixelWidth, h.pixelHeight, h.pixelDepth,
		h.layerCount, h.faceCount, h.levelCount, h.supercompressionScheme,
		h.dfdByteOffset, h.dfdByteLength, h.kvdByteOffset, h.kvdByteLength,
		h.sgdByteOffset, h.sgdByteLength,
	}
}

func decodeHeader(b []byte) header {
	get := func(i int) uint32 { return binary.LittleEndian.Uint32(b[i*4:]) }
	return header{
		vkFormat:               get(0),
		typeSize:               get(1),
		pixelWidth:             get(2),
		pixelHeight:            get(3),
		pixelDepth:             get(4),
		layerCount:             get(5),
		faceCount:              get(6),
		levelCount:             get(7),
		supercompressionScheme: get(8),
		dfdByteOffset:          get(9),
		dfdByteLength:          get(10),
		kvdByteOffset:          get(11),
		kvdByteLength:          get(12),
		sgdByteOffset:          get(13),
		sgdByteLength:          get(14),
	}
}

func encodeHeaderInto(b []byte, h header) {
	fields := h.fields()
	for i, v := range fields {
		binary.LittleEndian.PutUint32(b[i*4:], v)
	}
}

type levelInfo struct {
	byteOffset         uint64
	byteLength         uint64
	uncompressedLength uint64
}

func decodeLevelIndex(b []byte, count uint32) []levelInfo {
	levels := make([]levelInfo, count)
	for i := range levels {
		off := i * levelEntrySize
		levels[i] = levelInfo{
			byteOffset:         binary.LittleEndian.Uint64(b[off:]),
			byteLength:         binary.LittleEndian.Uint64(b[off+8:]),
			uncompressedLength: binary.LittleEndian.Uint64(b[off+16:]),
		}
	}
	return levels
}

func encodeLevelIndexInto(b []byte, levels []levelInfo) {
	for i, lvl := range levels {
		off := i * levelEntrySize
		binary.LittleEndian.PutUint64(b[off:], lvl.byteOffset)
		binary.LittleEndian.PutUint64(b[off+8:], lvl.byteLength)
		binary.LittleEndian.PutUint64(b[off+16:], lvl.uncompressedLength)
	}
}
