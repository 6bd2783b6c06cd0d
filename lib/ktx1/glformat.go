// Copyright 2025 The Etc2 Authors.
//
// Licensed under the Apache License, Version 2.0 <LICENSE-APACHE or
// https://www.apache.org/licenses/LICENSE-2.0>. This file may not be copied,
// modified, or distributed except according to those terms.
//
// SPDX-License-Identifier: Apache-2.0

package ktx1

import "github.com/nigeltao/imgio/lib/pixfmt"

// GL enum values, as assigned by the Khronos OpenGL / OpenGL ES registry.
// Only a subset is declared, covering the rows of glFormatTable below.
const (
	glRed        = 0x1903
	glRG         = 0x8227
	glRGB        = 0x1907
	glRGBA       = 0x1908
	glRedInteger = 0x8D94
	glRGInteger  = 0x8228
	glRGBInteger = 0x8D98
	glRGBAInteger = 0x8D99

	glByte          = 0x1400
	glUnsignedByte  = 0x1401
	glShort         = 0x1402
	glUnsignedShort = 0x1403
	glInt           = 0x1404
	glUnsignedInt   = 0x1405
	glFloat         = 0x1406
	glHalfFloat     = 0x140B
	glUnsignedInt5999Rev = 0x8C3E

	glR8      = 0x8229
	glRG8     = 0x822B
	glRGB8    = 0x8051
	glRGBA8   = 0x8058
	glSRGB8         = 0x8C41
	glSRGB8Alpha8   = 0x8C43
	glR8Snorm    = 0x8F94
	glRG8Snorm   = 0x8F95
	glRGB8Snorm  = 0x8F96
	glRGBA8Snorm = 0x8F97
	glR8I     = 0x8231
	glRG8I    = 0x8237
	glRGB8I   = 0x8D8F
	glRGBA8I  = 0x8D8E
	glR8UI    = 0x8232
	glRG8UI   = 0x8238
	glRGB8UI  = 0x8D7D
	glRGBA8UI = 0x8D7C

	glR16      = 0x822A
	glRG16     = 0x822C
	glRGB16    = 0x8054
	glRGBA16   = 0x805B
	glR16F     = 0x822D
	glRG16F    = 0x822F
	glRGB16F   = 0x881B
	glRGBA16F  = 0x881A
	glR16Snorm = 0x8F98
	glR16I    = 0x8233
	glR16UI   = 0x8234

	glR32F      = 0x822E
	glRG32F     = 0x8230
	glRGB32F    = 0x8815
	glRGBA32F   = 0x8814
	glR32I      = 0x8235
	glRG32I     = 0x823B
	glRGB32I    = 0x8D83
	glRGBA32I   = 0x8D82
	glR32UI     = 0x8236
	glRG32UI    = 0x823C
	glRGB32UI   = 0x8D71
	glRGBA32UI  = 0x8D70

	glRGB9E5 = 0x8C3D

	glCompressedRGBABPTCUnorm     = 0x8E8C
	glCompressedSRGBAlphaBPTCUnorm = 0x8E8D
)

// glFormatEntry is one row of the glInternalFormat <-> Format table,
// mirroring imgio's C++ formatMap: glInternalFormat is the KTX1 header's
// "internal format" enum, glPixelFormat/glPixelType are the companion
// "format"/"type" fields a full GL upload would also need and which KTX1
// stores alongside it for historical reasons.
type glFormatEntry struct {
	glInternalFormat     uint32
	glPixelFormat        uint32
	glPixelType          uint32
	glType               uint32
	glTypeSize           uint32
	glBaseInternalFormat uint32
	format               pixfmt.Format
}

var glFormatTable = buildGLFormatTable()

func buildGLFormatTable() []glFormatEntry {
	return []glFormatEntry{
		{glR8, glRed, glUnsignedByte, glUnsignedByte, 1, glRed, pixfmt.R8Unorm},
		{glRG8, glRG, glUnsignedByte, glUnsignedByte, 1, glRG, pixfmt.R8G8Unorm},
		{glRGB8, glRGB, glUnsignedByte, glUnsignedByte, 1, glRGB, pixfmt.R8G8B8Unorm},
		{glRGBA8, glRGBA, glUnsignedByte, glUnsignedByte, 1, glRGBA, pixfmt.R8G8B8A8Unorm},

		{glSRGB8, glRGB, glUnsignedByte, glUnsignedByte, 1, glRGB, pixfmt.R8G8B8Srgb},
		{glSRGB8Alpha8, glRGBA, glUnsignedByte, glUnsignedByte, 1, glRGBA, pixfmt.R8G8B8A8Srgb},

		{glR8Snorm, glRed, glByte, glByte, 1, glRed, pixfmt.R8Snorm},
		{glRG8Snorm, glRG, glByte, glByte, 1, glRG, pixfmt.R8G8Snorm},
		{glRGB8Snorm, glRGB, glByte, glByte, 1, glRGB, pixfmt.R8G8B8Snorm},
		{glRGBA8Snorm, glRGBA, glByte, glByte, 1, glRGBA, pixfmt.R8G8B8A8Snorm},

		{glR8I, glRedInteger, glByte, glByte, 1, glRedInteger, pixfmt.R8Sint},
		{glRG8I, glRGInteger, glByte, glByte, 1, glRGInteger, pixfmt.R8G8Sint},
		{glRGB8I, glRGBInteger, glByte, glByte, 1, glRGBInteger, pixfmt.R8G8B8Sint},
		{glRGBA8I, glRGBAInteger, glByte, glByte, 1, glRGBAInteger, pixfmt.R8G8B8A8Sint},

		{glR8UI, glRedInteger, glUnsignedByte, glUnsignedByte, 1, glRedInteger, pixfmt.R8Uint},
		{glRG8UI, glRGInteger, glUnsignedByte, glUnsignedByte, 1, glRGInteger, pixfmt.R8G8Uint},
		{glRGB8UI, glRGBInteger, glUnsignedByte, glUnsignedByte, 1, glRGBInteger, pixfmt.R8G8B8Uint},
		{glRGBA8UI, glRGBAInteger, glUnsignedByte, glUnsignedByte, 1, glRGBAInteger, pixfmt.R8G8B8A8Uint},

		{glR16, glRed, glUnsignedShort, glUnsignedShort, 2, glRed, pixfmt.R16Unorm},
		{glRG16, glRG, glUnsignedShort, glUnsignedShort, 2, glRG, pixfmt.R16G16Unorm},
		{glRGB16, glRGB, glUnsignedShort, glUnsignedShort, 2, glRGB, pixfmt.R16G16B16Unorm},
		{glRGBA16, glRGBA, glUnsignedShort, glUnsignedShort, 2, glRGBA, pixfmt.R16G16B16A16Unorm},

		{glR16F, glRed, glHalfFloat, glHalfFloat, 2, glRed, pixfmt.R16Sfloat},
		{glRG16F, glRG, glHalfFloat, glHalfFloat, 2, glRG, pixfmt.R16G16Sfloat},
		{glRGB16F, glRGB, glHalfFloat, glHalfFloat, 2, glRGB, pixfmt.R16G16B16Sfloat},
		{glRGBA16F, glRGBA, glHalfFloat, glHalfFloat, 2, glRGBA, pixfmt.R16G16B16A16Sfloat},

		{glR16Snorm, glRed, glShort, glShort, 2, glRed, pixfmt.R16Snorm},

		{glR16I, glRedInteger, glShort, glShort, 2, glRedInteger, pixfmt.R16Sint},
		{glR16UI, glRedInteger, glUnsignedShort, glUnsignedShort, 2, glRedInteger, pixfmt.R16Uint},

		{glR32F, glRed, glFloat, glFloat, 4, glRed, pixfmt.R32Sfloat},
		{glRG32F, glRG, glFloat, glFloat, 4, glRG, pixfmt.R32G32Sfloat},
		{glRGBA32F, glRGBA, glFloat, glFloat, 4, glRGBA, pixfmt.R32G32B32A32Sfloat},

		{glR32I, glRedInteger, glInt, glInt, 4, glRedInteger, pixfmt.R32Sint},
		{glRG32I, glRGInteger, glInt, glInt, 4, glRGInteger, pixfmt.R32Sint},
		{glRGBA32I, glRGBAInteger, glInt, glInt, 4, glRGBAInteger, pixfmt.R32G32B32A32Sint},

		{glR32UI, glRedInteger, glUnsignedInt, glUnsignedInt, 4, glRedInteger, pixfmt.R32Uint},
		{glRG32UI, glRGInteger, glUnsignedInt, glUnsignedInt, 4, glRGInteger, pixfmt.R32G32Uint},
		{glRGBA32UI, glRGBAInteger, glUnsignedInt, glUnsignedInt, 4, glRGBAInteger, pixfmt.R32G32B32A32Uint},

		{glRGB9E5, glRGB, glUnsignedInt5999Rev, glUnsignedInt5999Rev, 4, glRGB, pixfmt.E5B9G9R9UfloatPack32},

		{glCompressedRGBABPTCUnorm, glRGBA, 0, 0, 0, glRGBA, pixfmt.Bc7UnormBlock},
		{glCompressedSRGBAlphaBPTCUnorm, glRGBA, 0, 0, 0, glRGBA, pixfmt.Bc7SrgbBlock},
	}
}

// formatFromGLInternalFormat maps a KTX1 glInternalFormat value to a
// Format, as the parser side of the table.
func formatFromGLInternalFormat(glInternalFormat uint32) (pixfmt.Format, bool) {
	for _, e := range glFormatTable {
		if e.glInternalFormat == glInternalFormat {
			return e.format, true
		}
	}
	return pixfmt.Undefined, false
}

// glInternalFormatFromFormat is the writer side of the table.
func glInternalFormatFromFormat(f pixfmt.Format) (glFormatEntry, bool) {
	for _, e := range glFormatTable {
		if e.format == f {
			return e, true
		}
	}
	return glFormatEntry{}, false
}
