// Copyright 2025 The Etc2 Authors.
//
// Licensed under the Apache License, Version 2.0 <LICENSE-APACHE or
// https://www.apache.org/licenses/LICENSE-2.0>. This file may not be copied,
// modified, or distributed except according to those terms.
//
// SPDX-License-Identifier: Apache-2.0

package pixfmt

// Format constants, numbered to match the corresponding VkFormat. Not every
// VkFormat value is represented; this is the subset the format engine
// (package texel) and the KTX1/KTX2 codecs actually exercise.
const (
	R4G4UnormPack8     = Format(1)
	R4G4B4A4UnormPack16 = Format(2)
	B4G4R4A4UnormPack16 = Format(3)
	R5G6B5UnormPack16   = Format(4)
	B5G6R5UnormPack16   = Format(5)
	R5G5B5A1UnormPack16 = Format(6)
	B5G5R5A1UnormPack16 = Format(7)
	A1R5G5B5UnormPack16 = Format(8)

	R8Unorm = Format(9)
	R8Snorm = Format(10)
	R8Uint  = Format(13)
	R8Sint  = Format(14)
	R8Srgb  = Format(15)

	R8G8Unorm = Format(16)
	R8G8Snorm = Format(17)
	R8G8Uint  = Format(20)
	R8G8Sint  = Format(21)
	R8G8Srgb  = Format(22)

	R8G8B8Unorm = Format(23)
	R8G8B8Snorm = Format(24)
	R8G8B8Uint  = Format(27)
	R8G8B8Sint  = Format(28)
	R8G8B8Srgb  = Format(29)

	B8G8R8Unorm = Format(30)
	B8G8R8Srgb  = Format(36)

	R8G8B8A8Unorm = Format(37)
	R8G8B8A8Snorm = Format(38)
	R8G8B8A8Uint  = Format(41)
	R8G8B8A8Sint  = Format(42)
	R8G8B8A8Srgb  = Format(43)

	B8G8R8A8Unorm = Format(44)
	B8G8R8A8Snorm = Format(45)
	B8G8R8A8Uint  = Format(48)
	B8G8R8A8Sint  = Format(49)
	B8G8R8A8Srgb  = Format(50)

	A8B8G8R8UnormPack32 = Format(51)
	A8B8G8R8SrgbPack32  = Format(57)

	A2R10G10B10UnormPack32 = Format(58)
	A2B10G10R10UnormPack32 = Format(64)
	A2B10G10R10UintPack32  = Format(68)

	R16Unorm   = Format(70)
	R16Snorm   = Format(71)
	R16Uint    = Format(74)
	R16Sint    = Format(75)
	R16Sfloat  = Format(76)
	R16G16Unorm  = Format(77)
	R16G16Sfloat = Format(83)
	R16G16B16Unorm  = Format(84)
	R16G16B16Sfloat = Format(90)
	R16G16B16A16Unorm  = Format(91)
	R16G16B16A16Snorm  = Format(92)
	R16G16B16A16Uint   = Format(95)
	R16G16B16A16Sint   = Format(96)
	R16G16B16A16Sfloat = Format(97)

	R32Uint  = Format(98)
	R32Sint  = Format(99)
	R32Sfloat = Format(100)
	R32G32Uint   = Format(101)
	R32G32Sfloat = Format(103)
	R32G32B32Uint   = Format(104)
	R32G32B32Sfloat = Format(106)
	R32G32B32A32Uint   = Format(107)
	R32G32B32A32Sint   = Format(108)
	R32G32B32A32Sfloat = Format(109)

	B10G11R11UfloatPack32 = Format(122)
	E5B9G9R9UfloatPack32  = Format(123)

	D16Unorm        = Format(124)
	X8D24UnormPack32 = Format(125)
	D32Sfloat       = Format(126)
	S8Uint          = Format(127)
	D16UnormS8Uint  = Format(128)
	D24UnormS8Uint  = Format(129)
	D32SfloatS8Uint = Format(130)

	Bc1RgbUnormBlock   = Format(131)
	Bc1RgbSrgbBlock    = Format(132)
	Bc1RgbaUnormBlock  = Format(133)
	Bc1RgbaSrgbBlock   = Format(134)
	Bc2UnormBlock      = Format(135)
	Bc2SrgbBlock       = Format(136)
	Bc3UnormBlock      = Format(137)
	Bc3SrgbBlock       = Format(138)
	Bc4UnormBlock      = Format(139)
	Bc4SnormBlock      = Format(140)
	Bc5UnormBlock      = Format(141)
	Bc5SnormBlock      = Format(142)
	Bc6hUfloatBlock    = Format(143)
	Bc6hSfloatBlock    = Format(144)
	Bc7UnormBlock      = Format(145)
	Bc7SrgbBlock       = Format(146)

	Etc2R8G8B8UnormBlock   = Format(147)
	Etc2R8G8B8SrgbBlock    = Format(148)
	Etc2R8G8B8A1UnormBlock = Format(149)
	Etc2R8G8B8A1SrgbBlock  = Format(150)
	Etc2R8G8B8A8UnormBlock = Format(151)
	Etc2R8G8B8A8SrgbBlock  = Format(152)

	EacR11UnormBlock   = Format(153)
	EacR11SnormBlock   = Format(154)
	EacR11G11UnormBlock = Format(155)
	EacR11G11SnormBlock = Format(156)

	Astc4x4UnormBlock = Format(157)
	Astc4x4SrgbBlock  = Format(158)
	Astc8x8UnormBlock = Format(171)
	Astc8x8SrgbBlock  = Format(172)
)

func unpacked(f Format, name string, kind NumKind, byteWidth uint8, channels ...Channel) {
	widths := make([]uint8, len(channels))
	for i := range widths {
		widths[i] = byteWidth * 8
	}
	register(f, entry{name: name, channels: channels, widths: widths, kind: kind})
}

func packed(f Format, name string, kind NumKind, widthsMSBFirst []uint8, channels ...Channel) {
	register(f, entry{name: name, channels: channels, widths: widthsMSBFirst, kind: kind, packed: true})
}

func pair(unorm, srgb Format) {
	u, s := table[unorm], table[srgb]
	u.srgbPartner = srgb
	s.srgbPartner = unorm
	table[unorm], table[srgb] = u, s
}

func block(f Format, name string, elementSize int, ext Extent3D, srgbPartner Format) {
	register(f, entry{name: name, compressed: true, block: ext,
		widths: []uint8{uint8(elementSize) * 8}, channels: []Channel{ChX},
		srgbPartner: srgbPartner})
}

func depthStencil(f Format, name string, planes map[Aspect]int) {
	register(f, entry{name: name, depthStencil: true, planeSize: planes})
}

func init() {
	// 8 bit unpacked, R/RG/RGB/RGBA and BGR/BGRA order.
	unpacked(R8Unorm, "VK_FORMAT_R8_UNORM", UNORM, 1, ChR)
	unpacked(R8Snorm, "VK_FORMAT_R8_SNORM", SNORM, 1, ChR)
	unpacked(R8Uint, "VK_FORMAT_R8_UINT", UINT, 1, ChR)
	unpacked(R8Sint, "VK_FORMAT_R8_SINT", SINT, 1, ChR)
	unpacked(R8Srgb, "VK_FORMAT_R8_SRGB", SRGBKind, 1, ChR)
	pair(R8Unorm, R8Srgb)

	unpacked(R8G8Unorm, "VK_FORMAT_R8G8_UNORM", UNORM, 1, ChR, ChG)
	unpacked(R8G8Snorm, "VK_FORMAT_R8G8_SNORM", SNORM, 1, ChR, ChG)
	unpacked(R8G8Uint, "VK_FORMAT_R8G8_UINT", UINT, 1, ChR, ChG)
	unpacked(R8G8Sint, "VK_FORMAT_R8G8_SINT", SINT, 1, ChR, ChG)
	unpacked(R8G8Srgb, "VK_FORMAT_R8G8_SRGB", SRGBKind, 1, ChR, ChG)
	pair(R8G8Unorm, R8G8Srgb)

	unpacked(R8G8B8Unorm, "VK_FORMAT_R8G8B8_UNORM", UNORM, 1, ChR, ChG, ChB)
	unpacked(R8G8B8Snorm, "VK_FORMAT_R8G8B8_SNORM", SNORM, 1, ChR, ChG, ChB)
	unpacked(R8G8B8Uint, "VK_FORMAT_R8G8B8_UINT", UINT, 1, ChR, ChG, ChB)
	unpacked(R8G8B8Sint, "VK_FORMAT_R8G8B8_SINT", SINT, 1, ChR, ChG, ChB)
	unpacked(R8G8B8Srgb, "VK_FORMAT_R8G8B8_SRGB", SRGBKind, 1, ChR, ChG, ChB)
	pair(R8G8B8Unorm, R8G8B8Srgb)

	unpacked(B8G8R8Unorm, "VK_FORMAT_B8G8R8_UNORM", UNORM, 1, ChB, ChG, ChR)
	unpacked(B8G8R8Srgb, "VK_FORMAT_B8G8R8_SRGB", SRGBKind, 1, ChB, ChG, ChR)
	pair(B8G8R8Unorm, B8G8R8Srgb)

	unpacked(R8G8B8A8Unorm, "VK_FORMAT_R8G8B8A8_UNORM", UNORM, 1, ChR, ChG, ChB, ChA)
	unpacked(R8G8B8A8Snorm, "VK_FORMAT_R8G8B8A8_SNORM", SNORM, 1, ChR, ChG, ChB, ChA)
	unpacked(R8G8B8A8Uint, "VK_FORMAT_R8G8B8A8_UINT", UINT, 1, ChR, ChG, ChB, ChA)
	unpacked(R8G8B8A8Sint, "VK_FORMAT_R8G8B8A8_SINT", SINT, 1, ChR, ChG, ChB, ChA)
	unpacked(R8G8B8A8Srgb, "VK_FORMAT_R8G8B8A8_SRGB", SRGBKind, 1, ChR, ChG, ChB, ChA)
	pair(R8G8B8A8Unorm, R8G8B8A8Srgb)

	unpacked(B8G8R8A8Unorm, "VK_FORMAT_B8G8R8A8_UNORM", UNORM, 1, ChB, ChG, ChR, ChA)
	unpacked(B8G8R8A8Snorm, "VK_FORMAT_B8G8R8A8_SNORM", SNORM, 1, ChB, ChG, ChR, ChA)
	unpacked(B8G8R8A8Uint, "VK_FORMAT_B8G8R8A8_UINT", UINT, 1, ChB, ChG, ChR, ChA)
	unpacked(B8G8R8A8Sint, "VK_FORMAT_B8G8R8A8_SINT", SINT, 1, ChB, ChG, ChR, ChA)
	unpacked(B8G8R8A8Srgb, "VK_FORMAT_B8G8R8A8_SRGB", SRGBKind, 1, ChB, ChG, ChR, ChA)
	pair(B8G8R8A8Unorm, B8G8R8A8Srgb)

	// 16 bit unpacked.
	unpacked(R16Unorm, "VK_FORMAT_R16_UNORM", UNORM, 2, ChR)
	unpacked(R16Snorm, "VK_FORMAT_R16_SNORM", SNORM, 2, ChR)
	unpacked(R16Uint, "VK_FORMAT_R16_UINT", UINT, 2, ChR)
	unpacked(R16Sint, "VK_FORMAT_R16_SINT", SINT, 2, ChR)
	unpacked(R16Sfloat, "VK_FORMAT_R16_SFLOAT", SFLOAT, 2, ChR)
	unpacked(R16G16Unorm, "VK_FORMAT_R16G16_UNORM", UNORM, 2, ChR, ChG)
	unpacked(R16G16Sfloat, "VK_FORMAT_R16G16_SFLOAT", SFLOAT, 2, ChR, ChG)
	unpacked(R16G16B16Unorm, "VK_FORMAT_R16G16B16_UNORM", UNORM, 2, ChR, ChG, ChB)
	unpacked(R16G16B16Sfloat, "VK_FORMAT_R16G16B16_SFLOAT", SFLOAT, 2, ChR, ChG, ChB)
	unpacked(R16G16B16A16Unorm, "VK_FORMAT_R16G16B16A16_UNORM", UNORM, 2, ChR, ChG, ChB, ChA)
	unpacked(R16G16B16A16Snorm, "VK_FORMAT_R16G16B16A16_SNORM", SNORM, 2, ChR, ChG, ChB, ChA)
	unpacked(R16G16B16A16Uint, "VK_FORMAT_R16G16B16A16_UINT", UINT, 2, ChR, ChG, ChB, ChA)
	unpacked(R16G16B16A16Sint, "VK_FORMAT_R16G16B16A16_SINT", SINT, 2, ChR, ChG, ChB, ChA)
	unpacked(R16G16B16A16Sfloat, "VK_FORMAT_R16G16B16A16_SFLOAT", SFLOAT, 2, ChR, ChG, ChB, ChA)

	// 32 bit unpacked.
	unpacked(R32Uint, "VK_FORMAT_R32_UINT", UINT, 4, ChR)
	unpacked(R32Sint, "VK_FORMAT_R32_SINT", SINT, 4, ChR)
	unpacked(R32Sfloat, "VK_FORMAT_R32_SFLOAT", SFLOAT, 4, ChR)
	unpacked(R32G32Uint, "VK_FORMAT_R32G32_UINT", UINT, 4, ChR, ChG)
	unpacked(R32G32Sfloat, "VK_FORMAT_R32G32_SFLOAT", SFLOAT, 4, ChR, ChG)
	unpacked(R32G32B32Uint, "VK_FORMAT_R32G32B32_UINT", UINT, 4, ChR, ChG, ChB)
	unpacked(R32G32B32Sfloat, "VK_FORMAT_R32G32B32_SFLOAT", SFLOAT, 4, ChR, ChG, ChB)
	unpacked(R32G32B32A32Uint, "VK_FORMAT_R32G32B32A32_UINT", UINT, 4, ChR, ChG, ChB, ChA)
	unpacked(R32G32B32A32Sint, "VK_FORMAT_R32G32B32A32_SINT", SINT, 4, ChR, ChG, ChB, ChA)
	unpacked(R32G32B32A32Sfloat, "VK_FORMAT_R32G32B32A32_SFLOAT", SFLOAT, 4, ChR, ChG, ChB, ChA)

	// Packed bitfield formats. widths are listed MSB-first, matching the
	// channels argument order.
	packed(R4G4UnormPack8, "VK_FORMAT_R4G4_UNORM_PACK8", UNORM, []uint8{4, 4}, ChR, ChG)
	packed(R4G4B4A4UnormPack16, "VK_FORMAT_R4G4B4A4_UNORM_PACK16", UNORM, []uint8{4, 4, 4, 4}, ChR, ChG, ChB, ChA)
	packed(B4G4R4A4UnormPack16, "VK_FORMAT_B4G4R4A4_UNORM_PACK16", UNORM, []uint8{4, 4, 4, 4}, ChB, ChG, ChR, ChA)
	packed(R5G6B5UnormPack16, "VK_FORMAT_R5G6B5_UNORM_PACK16", UNORM, []uint8{5, 6, 5}, ChR, ChG, ChB)
	packed(B5G6R5UnormPack16, "VK_FORMAT_B5G6R5_UNORM_PACK16", UNORM, []uint8{5, 6, 5}, ChB, ChG, ChR)
	packed(R5G5B5A1UnormPack16, "VK_FORMAT_R5G5B5A1_UNORM_PACK16", UNORM, []uint8{5, 5, 5, 1}, ChR, ChG, ChB, ChA)
	packed(B5G5R5A1UnormPack16, "VK_FORMAT_B5G5R5A1_UNORM_PACK16", UNORM, []uint8{5, 5, 5, 1}, ChB, ChG, ChR, ChA)
	packed(A1R5G5B5UnormPack16, "VK_FORMAT_A1R5G5B5_UNORM_PACK16", UNORM, []uint8{1, 5, 5, 5}, ChA, ChR, ChG, ChB)

	packed(A8B8G8R8UnormPack32, "VK_FORMAT_A8B8G8R8_UNORM_PACK32", UNORM, []uint8{8, 8, 8, 8}, ChA, ChB, ChG, ChR)
	packed(A8B8G8R8SrgbPack32, "VK_FORMAT_A8B8G8R8_SRGB_PACK32", SRGBKind, []uint8{8, 8, 8, 8}, ChA, ChB, ChG, ChR)
	pair(A8B8G8R8UnormPack32, A8B8G8R8SrgbPack32)

	packed(A2R10G10B10UnormPack32, "VK_FORMAT_A2R10G10B10_UNORM_PACK32", UNORM, []uint8{2, 10, 10, 10}, ChA, ChR, ChG, ChB)
	packed(A2B10G10R10UnormPack32, "VK_FORMAT_A2B10G10R10_UNORM_PACK32", UNORM, []uint8{2, 10, 10, 10}, ChA, ChB, ChG, ChR)
	packed(A2B10G10R10UintPack32, "VK_FORMAT_A2B10G10R10_UINT_PACK32", UINT, []uint8{2, 10, 10, 10}, ChA, ChB, ChG, ChR)

	// Shared-exponent / packed-float.
	register(B10G11R11UfloatPack32, entry{
		name: "VK_FORMAT_B10G11R11_UFLOAT_PACK32", kind: UFLOAT, packed: true,
		channels: []Channel{ChB, ChG, ChR}, widths: []uint8{10, 11, 11},
		unsupported: true,
	})
	register(E5B9G9R9UfloatPack32, entry{
		name: "VK_FORMAT_E5B9G9R9_UFLOAT_PACK32", kind: UFLOAT, packed: true,
		channels: []Channel{ChR, ChG, ChB}, widths: []uint8{9, 9, 9},
		sharedExponent: true,
	})

	// Depth/stencil.
	register(D16Unorm, entry{name: "VK_FORMAT_D16_UNORM", depthStencil: true,
		planeSize: map[Aspect]int{AspectDepth: 2}})
	register(X8D24UnormPack32, entry{name: "VK_FORMAT_X8_D24_UNORM_PACK32", depthStencil: true,
		planeSize: map[Aspect]int{AspectDepth: 4}})
	register(D32Sfloat, entry{name: "VK_FORMAT_D32_SFLOAT", depthStencil: true,
		planeSize: map[Aspect]int{AspectDepth: 4}})
	register(S8Uint, entry{name: "VK_FORMAT_S8_UINT", depthStencil: true,
		planeSize: map[Aspect]int{AspectStencil: 1}})
	depthStencil(D16UnormS8Uint, "VK_FORMAT_D16_UNORM_S8_UINT", map[Aspect]int{AspectDepth: 2, AspectStencil: 1})
	depthStencil(D24UnormS8Uint, "VK_FORMAT_D24_UNORM_S8_UINT", map[Aspect]int{AspectDepth: 3, AspectStencil: 1})
	depthStencil(D32SfloatS8Uint, "VK_FORMAT_D32_SFLOAT_S8_UINT", map[Aspect]int{AspectDepth: 4, AspectStencil: 1})

	// Block-compressed: opaque bytes, never decoded per spec.md non-goals.
	block(Bc1RgbUnormBlock, "VK_FORMAT_BC1_RGB_UNORM_BLOCK", 8, Extent3D{4, 4, 1}, Bc1RgbSrgbBlock)
	block(Bc1RgbSrgbBlock, "VK_FORMAT_BC1_RGB_SRGB_BLOCK", 8, Extent3D{4, 4, 1}, Bc1RgbUnormBlock)
	block(Bc1RgbaUnormBlock, "VK_FORMAT_BC1_RGBA_UNORM_BLOCK", 8, Extent3D{4, 4, 1}, Bc1RgbaSrgbBlock)
	block(Bc1RgbaSrgbBlock, "VK_FORMAT_BC1_RGBA_SRGB_BLOCK", 8, Extent3D{4, 4, 1}, Bc1RgbaUnormBlock)
	block(Bc2UnormBlock, "VK_FORMAT_BC2_UNORM_BLOCK", 16, Extent3D{4, 4, 1}, Bc2SrgbBlock)
	block(Bc2SrgbBlock, "VK_FORMAT_BC2_SRGB_BLOCK", 16, Extent3D{4, 4, 1}, Bc2UnormBlock)
	block(Bc3UnormBlock, "VK_FORMAT_BC3_UNORM_BLOCK", 16, Extent3D{4, 4, 1}, Bc3SrgbBlock)
	block(Bc3SrgbBlock, "VK_FORMAT_BC3_SRGB_BLOCK", 16, Extent3D{4, 4, 1}, Bc3UnormBlock)
	block(Bc4UnormBlock, "VK_FORMAT_BC4_UNORM_BLOCK", 8, Extent3D{4, 4, 1}, Undefined)
	block(Bc4SnormBlock, "VK_FORMAT_BC4_SNORM_BLOCK", 8, Extent3D{4, 4, 1}, Undefined)
	block(Bc5UnormBlock, "VK_FORMAT_BC5_UNORM_BLOCK", 16, Extent3D{4, 4, 1}, Undefined)
	block(Bc5SnormBlock, "VK_FORMAT_BC5_SNORM_BLOCK", 16, Extent3D{4, 4, 1}, Undefined)
	block(Bc6hUfloatBlock, "VK_FORMAT_BC6H_UFLOAT_BLOCK", 16, Extent3D{4, 4, 1}, Undefined)
	block(Bc6hSfloatBlock, "VK_FORMAT_BC6H_SFLOAT_BLOCK", 16, Extent3D{4, 4, 1}, Undefined)
	block(Bc7UnormBlock, "VK_FORMAT_BC7_UNORM_BLOCK", 16, Extent3D{4, 4, 1}, Bc7SrgbBlock)
	block(Bc7SrgbBlock, "VK_FORMAT_BC7_SRGB_BLOCK", 16, Extent3D{4, 4, 1}, Bc7UnormBlock)

	block(Etc2R8G8B8UnormBlock, "VK_FORMAT_ETC2_R8G8B8_UNORM_BLOCK", 8, Extent3D{4, 4, 1}, Etc2R8G8B8SrgbBlock)
	block(Etc2R8G8B8SrgbBlock, "VK_FORMAT_ETC2_R8G8B8_SRGB_BLOCK", 8, Extent3D{4, 4, 1}, Etc2R8G8B8UnormBlock)
	block(Etc2R8G8B8A1UnormBlock, "VK_FORMAT_ETC2_R8G8B8A1_UNORM_BLOCK", 8, Extent3D{4, 4, 1}, Etc2R8G8B8A1SrgbBlock)
	block(Etc2R8G8B8A1SrgbBlock, "VK_FORMAT_ETC2_R8G8B8A1_SRGB_BLOCK", 8, Extent3D{4, 4, 1}, Etc2R8G8B8A1UnormBlock)
	block(Etc2R8G8B8A8UnormBlock, "VK_FORMAT_ETC2_R8G8B8A8_UNORM_BLOCK", 16, Extent3D{4, 4, 1}, Etc2R8G8B8A8SrgbBlock)
	block(Etc2R8G8B8A8SrgbBlock, "VK_FORMAT_ETC2_R8G8B8A8_SRGB_BLOCK", 16, Extent3D{4, 4, 1}, Etc2R8G8B8A8UnormBlock)

	block(EacR11UnormBlock, "VK_FORMAT_EAC_R11_UNORM_BLOCK", 8, Extent3D{4, 4, 1}, Undefined)
	block(EacR11SnormBlock, "VK_FORMAT_EAC_R11_SNORM_BLOCK", 8, Extent3D{4, 4, 1}, Undefined)
	block(EacR11G11UnormBlock, "VK_FORMAT_EAC_R11G11_UNORM_BLOCK", 16, Extent3D{4, 4, 1}, Undefined)
	block(EacR11G11SnormBlock, "VK_FORMAT_EAC_R11G11_SNORM_BLOCK", 16, Extent3D{4, 4, 1}, Undefined)

	block(Astc4x4UnormBlock, "VK_FORMAT_ASTC_4x4_UNORM_BLOCK", 16, Extent3D{4, 4, 1}, Astc4x4SrgbBlock)
	block(Astc4x4SrgbBlock, "VK_FORMAT_ASTC_4x4_SRGB_BLOCK", 16, Extent3D{4, 4, 1}, Astc4x4UnormBlock)
	block(Astc8x8UnormBlock, "VK_FORMAT_ASTC_8x8_UNORM_BLOCK", 16, Extent3D{8, 8, 1}, Astc8x8SrgbBlock)
	block(Astc8x8SrgbBlock, "VK_FORMAT_ASTC_8x8_SRGB_BLOCK", 16, Extent3D{8, 8, 1}, Astc8x8UnormBlock)
}
