// Copyright 2025 The Etc2 Authors.
//
// Licensed under the Apache License, Version 2.0 <LICENSE-APACHE or
// https://www.apache.org/licenses/LICENSE-2.0>. This file may not be copied,
// modified, or distributed except according to those terms.
//
// SPDX-License-Identifier: Apache-2.0

package codecexr

import (
	"encoding/binary"
	"io"

	"github.com/nigeltao/imgio/internal/logger"
	"github.com/nigeltao/imgio/lib/imgprov"
	"github.com/nigeltao/imgio/lib/pixfmt"
)

// channelPlan describes, for one writable Format, the on-disk channel
// names (already in reverse-of-R,G,B,A order) and the EXR pixel type and
// per-channel byte size shared by all of them.
type channelPlan struct {
	names     []string
	pixelType int32
	chanSize  int
}

func planFor(f pixfmt.Format) (channelPlan, bool) {
	switch f {
	case pixfmt.R16Sfloat:
		return channelPlan{[]string{"R"}, pixelTypeHalf, 2}, true
	case pixfmt.R16G16Sfloat:
		return channelPlan{[]string{"G", "R"}, pixelTypeHalf, 2}, true
	case pixfmt.R16G16B16Sfloat:
		return channelPlan{[]string{"B", "G", "R"}, pixelTypeHalf, 2}, true
	case pixfmt.R16G16B16A16Sfloat:
		return channelPlan{[]string{"A", "B", "G", "R"}, pixelTypeHalf, 2}, true
	case pixfmt.R32Sfloat:
		return channelPlan{[]string{"R"}, pixelTypeFloat, 4}, true
	case pixfmt.R32G32Sfloat:
		return channelPlan{[]string{"G", "R"}, pixelTypeFloat, 4}, true
	case pixfmt.R32G32B32Sfloat:
		return channelPlan{[]string{"B", "G", "R"}, pixelTypeFloat, 4}, true
	case pixfmt.R32G32B32A32Sfloat:
		return channelPlan{[]string{"A", "B", "G", "R"}, pixelTypeFloat, 4}, true
	case pixfmt.R32Uint:
		return channelPlan{[]string{"R"}, pixelTypeUint, 4}, true
	case pixfmt.R32G32Uint:
		return channelPlan{[]string{"G", "R"}, pixelTypeUint, 4}, true
	case pixfmt.R32G32B32Uint:
		return channelPlan{[]string{"B", "G", "R"}, pixelTypeUint, 4}, true
	case pixfmt.R32G32B32A32Uint:
		return channelPlan{[]string{"A", "B", "G", "R"}, pixelTypeUint, 4}, true
	}
	return channelPlan{}, false
}

// Encode writes p's mip 0, layer 0 face as a single-part, scanline, ZIP
// compressed OpenEXR image. Only r{16,32}{,g,g_b,g_b_a}{Sfloat,Uint} are
// representable; anything else is ErrCantRepresent. Extra depth slices,
// mips, and layers are discarded with a warning rather than an error.
func Encode(w io.Writer, p imgprov.Provider) error {
	size := p.Size()
	if size.D > 1 {
		logger.Get(nil).Warn("codecexr: discarding depth slices", "count", size.D-1)
	}
	if p.Mips() > 1 {
		logger.Get(nil).Warn("codecexr: discarding mip levels", "count", p.Mips()-1)
	}
	if p.Layers() > 1 {
		logger.Get(nil).Warn("codecexr: discarding layers", "count", p.Layers()-1)
	}

	plan, ok := planFor(p.Format())
	if !ok {
		return ErrCantRepresent
	}

	face, err := p.ReadBorrow(0, 0)
	if err != nil {
		return err
	}
	elemSize := pixfmt.ElementSize(p.Format())
	width, height := size.W, size.H
	if int64(len(face)) < int64(width)*int64(height)*int64(elemSize) {
		return imgprov.ErrBufferTooSmall
	}

	nc := len(plan.names)
	planeSize := width * height * plan.chanSize
	planes := make([][]byte, nc)
	for c := 0; c < nc; c++ {
		plane := make([]byte, planeSize)
		// plan.names lists channels in reverse-of-R,G,B,A order; channel
		// code c's position within the interleaved texel is nc-c-1.
		srcChan := nc - c - 1
		for address := 0; address < width*height; address++ {
			src := face[address*elemSize+srcChan*plan.chanSize:]
			dst := plane[address*plan.chanSize:]
			copy(dst[:plan.chanSize], src[:plan.chanSize])
		}
		planes[c] = plane
	}

	header, err := buildHeader(plan, width, height)
	if err != nil {
		return err
	}
	chunks, err := compressScanlines(planes, plan, width, height)
	if err != nil {
		return err
	}

	if _, err := w.Write(header); err != nil {
		return err
	}
	return writeChunkTableAndBody(w, len(header), chunks)
}

func appendU32(b []byte, v uint32) []byte {
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], v)
	return append(b, tmp[:]...)
}

func appendI32(b []byte, v int32) []byte {
	return appendU32(b, uint32(v))
}

func appendAttr(b []byte, name, typ string, value []byte) []byte {
	b = append(b, name...)
	b = append(b, 0)
	b = append(b, typ...)
	b = append(b, 0)
	b = appendI32(b, int32(len(value)))
	return append(b, value...)
}

// buildHeader returns the magic, version, and attribute list for a
// scanline, single-part, ZIP-compressed image with plan's channels.
func buildHeader(plan channelPlan, width, height int) ([]byte, error) {
	var chlist []byte
	for _, name := range plan.names {
		chlist = append(chlist, name...)
		chlist = append(chlist, 0)
		chlist = appendI32(chlist, plan.pixelType)
		chlist = append(chlist, 0, 0, 0, 0) // pLinear + reserved[3]
		chlist = appendI32(chlist, 1)       // xSampling
		chlist = appendI32(chlist, 1)       // ySampling
	}
	chlist = append(chlist, 0)

	var dataWindow []byte
	dataWindow = appendI32(dataWindow, 0)
	dataWindow = appendI32(dataWindow, 0)
	dataWindow = appendI32(dataWindow, int32(width-1))
	dataWindow = appendI32(dataWindow, int32(height-1))

	var lineOrder []byte
	lineOrder = append(lineOrder, 0) // increasingY

	var pixelAspectRatio []byte
	pixelAspectRatio = append(pixelAspectRatio, 0, 0, 128, 63) // float32(1.0)

	var screenWindowCenter []byte
	screenWindowCenter = append(screenWindowCenter, 0, 0, 0, 0, 0, 0, 0, 0)

	var screenWindowWidth []byte
	screenWindowWidth = append(screenWindowWidth, 0, 0, 128, 63) // float32(1.0)

	var compression []byte
	compression = append(compression, byte(compressionZIP))

	var buf []byte
	buf = append(buf, magic[:]...)
	buf = appendU32(buf, 2) // version 2, single-part scanline
	buf = appendAttr(buf, "channels", "chlist", chlist)
	buf = appendAttr(buf, "compression", "compression", compression)
	buf = appendAttr(buf, "dataWindow", "box2i", dataWindow)
	buf = appendAttr(buf, "displayWindow", "box2i", dataWindow)
	buf = appendAttr(buf, "lineOrder", "lineOrder", lineOrder)
	buf = appendAttr(buf, "pixelAspectRatio", "float", pixelAspectRatio)
	buf = appendAttr(buf, "screenWindowCenter", "v2f", screenWindowCenter)
	buf = appendAttr(buf, "screenWindowWidth", "float", screenWindowWidth)
	buf = append(buf, 0) // end of attribute list
	return buf, nil
}

type scanlineChunk struct {
	y    int32
	body []byte
}

// compressScanlines ZIP-compresses planes in 16-row blocks, matching the
// decode side's linesPerBlock for compressionZIP.
func compressScanlines(planes [][]byte, plan channelPlan, width, height int) ([]scanlineChunk, error) {
	const linesPerBlock = 16
	numBlocks := (height + linesPerBlock - 1) / linesPerBlock
	chunks := make([]scanlineChunk, 0, numBlocks)

	for b := 0; b < numBlocks; b++ {
		firstRow := b * linesPerBlock
		rows := linesPerBlock
		if firstRow+rows > height {
			rows = height - firstRow
		}

		raw := make([]byte, 0, rows*width*plan.chanSize*len(plan.names))
		for r := 0; r < rows; r++ {
			row := firstRow + r
			for c := range plan.names {
				off := row * width * plan.chanSize
				raw = append(raw, planes[c][off:off+width*plan.chanSize]...)
			}
		}
		compressed, err := zip(raw)
		if err != nil {
			return nil, err
		}
		chunks = append(chunks, scanlineChunk{y: int32(firstRow), body: compressed})
	}
	return chunks, nil
}

// writeChunkTableAndBody writes the chunk offset table, then each
// chunk's (y, dataSize, data) triple. Offsets are absolute from the
// start of the file, so headerLen (the header this function's caller
// already wrote) seeds the running position.
func writeChunkTableAndBody(w io.Writer, headerLen int, chunks []scanlineChunk) error {
	tableSize := int64(len(chunks)) * 8
	pos := int64(headerLen) + tableSize

	table := make([]byte, tableSize)
	for i, c := range chunks {
		binary.LittleEndian.PutUint64(table[i*8:], uint64(pos))
		pos += 8 + int64(len(c.body))
	}
	if _, err := w.Write(table); err != nil {
		return err
	}

	for _, c := range chunks {
		var hdr [8]byte
		binary.LittleEndian.PutUint32(hdr[0:], uint32(c.y))
		binary.LittleEndian.PutUint32(hdr[4:], uint32(len(c.body)))
		if _, err := w.Write(hdr[:]); err != nil {
			return err
		}
		if _, err := w.Write(c.body); err != nil {
			return err
		}
	}
	return nil
}
