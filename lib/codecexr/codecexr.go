// Copyright 2025 The Etc2 Authors.
//
// Licensed under the Apache License, Version 2.0 <LICENSE-APACHE or
// https://www.apache.org/licenses/LICENSE-2.0>. This file may not be copied,
// modified, or distributed except according to those terms.
//
// SPDX-License-Identifier: Apache-2.0

// ----------------

// Package codecexr reads and writes a scoped subset of OpenEXR: single-part
// flat (non-deep) images, NONE/ZIPS/ZIP compression, and — for tiled
// inputs — only the degenerate case of one tile per mip level. Multi-layer
// files interlace into one of a small set of half/float/uint Formats;
// layers whose channel set doesn't map cleanly to that set are dropped.
package codecexr

import (
	"encoding/binary"
	"errors"
	"io"
	"sort"

	"github.com/nigeltao/imgio/internal/logger"
	"github.com/nigeltao/imgio/lib/imgprov"
	"github.com/nigeltao/imgio/lib/pixfmt"
)

var ErrEmptyWindow = errors.New("codecexr: empty data window")

// plane holds one file channel's worth of pixel data for one mip level,
// row-major, channelSize(pixelType)-byte elements, width×height of that
// mip's extent.
type plane struct {
	data []byte
}

// Decode reads an OpenEXR image from r. When forceRGBA is true, every
// retained layer is padded to 4 channels instead of using its natural
// channel count.
func Decode(r io.Reader, forceRGBA bool) (imgprov.Provider, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	h, chunkTableStart, err := parseHeader(raw)
	if err != nil {
		return nil, err
	}
	if h.nonImage || h.multipart {
		return nil, ErrCantRepresent
	}
	if h.tiled && h.tileMode == tileModeRipmap {
		logger.Get(nil).Warn("codecexr: discarding non-mipmap ripmap levels")
	}

	layers, pixelType, err := splitChannels(h)
	if err != nil {
		return nil, err
	}
	if len(layers) == 0 {
		return nil, ErrEmpty
	}

	var format = pixfmt.Undefined
	kept := layers[:0]
	for _, l := range layers {
		f := parseFormat(l.mapping, pixelType, forceRGBA)
		if f == pixfmt.Undefined || (format != pixfmt.Undefined && f != format) {
			logger.Get(nil).Warn("codecexr: dropping layer with unparsable or mismatched format", "layer", l.name)
			continue
		}
		format = f
		kept = append(kept, l)
	}
	layers = kept
	if len(layers) == 0 || format == pixfmt.Undefined {
		return nil, ErrEmpty
	}

	width, height := h.width(), h.height()
	if width < 1 || height < 1 {
		return nil, ErrEmptyWindow
	}
	size := pixfmt.Extent3D{W: width, H: height, D: 1}

	var perMip [][]plane // perMip[mip][fileChannelIndex]
	if h.tiled {
		perMip, err = decodeTiled(raw, chunkTableStart, h, size)
	} else {
		perMip, err = decodeScanline(raw, chunkTableStart, h, size)
	}
	if err != nil {
		return nil, err
	}

	elemSize := pixfmt.ElementSize(format)
	chanSize := channelSize(pixelType)
	neutral := neutralBits(pixelType, chanSize)
	numChannels := elemSize / chanSize
	mips := len(perMip)

	faces := make([][]byte, mips*len(layers))
	for m := 0; m < mips; m++ {
		ext := pixfmt.MipSize(size, m)
		lw, lh := ext.W, ext.H
		for li, l := range layers {
			blob := make([]byte, int64(lw)*int64(lh)*int64(elemSize))
			for address := 0; address < lw*lh; address++ {
				dst := blob[address*elemSize:]
				for c := 0; c < numChannels; c++ {
					if l.mapping[c] == noChannel {
						copy(dst[c*chanSize:(c+1)*chanSize], neutral)
						continue
					}
					src := perMip[m][l.mapping[c]].data
					copy(dst[c*chanSize:(c+1)*chanSize], src[address*chanSize:(address+1)*chanSize])
				}
			}
			faces[m*len(layers)+li] = blob
		}
	}

	return imgprov.NewOwningFaces(size, format, len(layers), mips, false, faces)
}

func neutralBits(pixelType int32, chanSize int) []byte {
	b := make([]byte, chanSize)
	switch pixelType {
	case pixelTypeHalf:
		binary.LittleEndian.PutUint16(b, 0x3C00) // half 1.0
	case pixelTypeFloat:
		binary.LittleEndian.PutUint32(b, 0x3F800000) // float32 1.0
	case pixelTypeUint:
		binary.LittleEndian.PutUint32(b, 1)
	}
	return b
}

func sortedChannelIndices(channels []exrChannel) []int {
	idx := make([]int, len(channels))
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(a, b int) bool { return channels[idx[a]].name < channels[idx[b]].name })
	return idx
}

// allocPlanes returns one plane per file channel, sized for a level of
// extent lw×lh.
func allocPlanes(channels []exrChannel, lw, lh int) []plane {
	planes := make([]plane, len(channels))
	for i, ch := range channels {
		planes[i] = plane{data: make([]byte, lw*lh*channelSize(ch.pixelType))}
	}
	return planes
}

// decodeRows fills planes (sized for lw×lh) from a decompressed chunk body
// whose layout is, per row, every channel in sortedIdx order contributing
// lw*channelSize(pixelType) bytes.
func decodeRows(planes []plane, channels []exrChannel, sortedIdx []int, body []byte, lw, firstRow, numRows int) {
	cursor := 0
	for r := 0; r < numRows; r++ {
		row := firstRow + r
		for _, ci := range sortedIdx {
			n := lw * channelSize(channels[ci].pixelType)
			dst := planes[ci].data[row*lw*channelSize(channels[ci].pixelType):]
			copy(dst[:n], body[cursor:cursor+n])
			cursor += n
		}
	}
}

func decompressChunk(raw []byte, chunkStart, dataSize int, compression int32, expected int) ([]byte, error) {
	switch compression {
	case compressionNone:
		if dataSize != expected {
			return nil, ErrUnsupportedFormat
		}
		return raw[chunkStart : chunkStart+dataSize], nil
	case compressionZIPS, compressionZIP:
		body, err := unzip(raw[chunkStart:chunkStart+dataSize], expected)
		if err != nil {
			return nil, err
		}
		if len(body) != expected {
			return nil, ErrUnsupportedFormat
		}
		return body, nil
	default:
		return nil, ErrUnsupportedFormat
	}
}

func decodeScanline(raw []byte, tableStart int, h exrHeader, size pixfmt.Extent3D) ([][]plane, error) {
	linesPerBlock := 1
	if h.compression == compressionZIP {
		linesPerBlock = 16
	}
	height := size.H
	numBlocks := (height + linesPerBlock - 1) / linesPerBlock
	if err := need(raw, tableStart, numBlocks*8); err != nil {
		return nil, err
	}

	sortedIdx := sortedChannelIndices(h.channels)
	planes := allocPlanes(h.channels, size.W, height)
	rowBytes := 0
	for _, ch := range h.channels {
		rowBytes += size.W * channelSize(ch.pixelType)
	}

	for b := 0; b < numBlocks; b++ {
		off := binary.LittleEndian.Uint64(raw[tableStart+b*8:])
		if err := need(raw, int(off), 8); err != nil {
			return nil, err
		}
		y := int(int32(binary.LittleEndian.Uint32(raw[off:])))
		dataSize := int(int32(binary.LittleEndian.Uint32(raw[off+4:])))
		chunkStart := int(off) + 8
		if err := need(raw, chunkStart, dataSize); err != nil {
			return nil, err
		}
		firstRow := y - int(h.dataWindow[1])
		rowsInBlock := linesPerBlock
		if firstRow+rowsInBlock > height {
			rowsInBlock = height - firstRow
		}
		body, err := decompressChunk(raw, chunkStart, dataSize, h.compression, rowBytes*rowsInBlock)
		if err != nil {
			return nil, err
		}
		decodeRows(planes, h.channels, sortedIdx, body, size.W, firstRow, rowsInBlock)
	}

	return [][]plane{planes}, nil
}

func numLevels1D(n int) int {
	levels := 1
	for n > 1 {
		n >>= 1
		levels++
	}
	return levels
}

func decodeTiled(raw []byte, tableStart int, h exrHeader, size pixfmt.Extent3D) ([][]plane, error) {
	if int(h.tileXSize) != size.W || int(h.tileYSize) != size.H {
		return nil, ErrCantRepresent
	}

	var numXLevels, numYLevels, mips int
	switch h.tileMode {
	case tileModeOne:
		numXLevels, numYLevels, mips = 1, 1, 1
	case tileModeMipmap:
		n := numLevels1D(max(size.W, size.H))
		numXLevels, numYLevels, mips = n, n, n
	case tileModeRipmap:
		numXLevels = numLevels1D(size.W)
		numYLevels = numLevels1D(size.H)
		mips = min(numXLevels, numYLevels)
	default:
		return nil, ErrUnsupportedFormat
	}
	total := numXLevels * numYLevels
	if h.tileMode != tileModeRipmap {
		total = mips // one chunk per mip level
	}

	if err := need(raw, tableStart, total*8); err != nil {
		return nil, err
	}

	sortedIdx := sortedChannelIndices(h.channels)
	perMip := make([][]plane, mips)
	for m := 0; m < mips; m++ {
		ext := pixfmt.MipSize(size, m)
		perMip[m] = allocPlanes(h.channels, ext.W, ext.H)
	}

	for i := 0; i < total; i++ {
		off := binary.LittleEndian.Uint64(raw[tableStart+i*8:])
		if err := need(raw, int(off), 20); err != nil {
			return nil, err
		}
		tileX := int(int32(binary.LittleEndian.Uint32(raw[off:])))
		tileY := int(int32(binary.LittleEndian.Uint32(raw[off+4:])))
		levelX := int(int32(binary.LittleEndian.Uint32(raw[off+8:])))
		levelY := int(int32(binary.LittleEndian.Uint32(raw[off+12:])))
		dataSize := int(int32(binary.LittleEndian.Uint32(raw[off+16:])))
		chunkStart := int(off) + 20
		if err := need(raw, chunkStart, dataSize); err != nil {
			return nil, err
		}
		if levelX != levelY || levelX >= mips || tileX != 0 || tileY != 0 {
			continue // discard ripmap/non-square or unexpected multi-tile entries
		}

		ext := pixfmt.MipSize(size, levelX)
		rowBytes := 0
		for _, ch := range h.channels {
			rowBytes += ext.W * channelSize(ch.pixelType)
		}
		body, err := decompressChunk(raw, chunkStart, dataSize, h.compression, rowBytes*ext.H)
		if err != nil {
			return nil, err
		}
		decodeRows(perMip[levelX], h.channels, sortedIdx, body, ext.W, 0, ext.H)
	}

	return perMip, nil
}
