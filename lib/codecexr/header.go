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
	"errors"
)

var magic = [4]byte{0x76, 0x2f, 0x31, 0x01}

const (
	pixelTypeUint  = int32(0)
	pixelTypeHalf  = int32(1)
	pixelTypeFloat = int32(2)
)

const (
	compressionNone = int32(0)
	compressionRLE  = int32(1)
	compressionZIPS = int32(2)
	compressionZIP  = int32(3)
)

const (
	tileModeOne     = 0
	tileModeMipmap  = 1
	tileModeRipmap  = 2
)

type exrChannel struct {
	name      string
	pixelType int32
}

type exrHeader struct {
	longNames, nonImage, multipart bool
	tiled                          bool
	channels                       []exrChannel
	compression                    int32
	dataWindow                     [4]int32 // xmin, ymin, xmax, ymax
	tileXSize, tileYSize           uint32
	tileMode                       int
}

func (h exrHeader) width() int  { return int(h.dataWindow[2] - h.dataWindow[0] + 1) }
func (h exrHeader) height() int { return int(h.dataWindow[3] - h.dataWindow[1] + 1) }

func readCString(b []byte, pos int) (string, int, error) {
	start := pos
	for pos < len(b) {
		if b[pos] == 0 {
			return string(b[start:pos]), pos + 1, nil
		}
		pos++
	}
	return "", pos, ErrUnexpectedEnd
}

func need(b []byte, pos, n int) error {
	if pos+n > len(b) {
		return ErrUnexpectedEnd
	}
	return nil
}

// parseHeader reads the magic, version, and attribute list starting at
// the front of b, returning the parsed header and the byte offset of the
// data that follows it (the chunk offset table).
func parseHeader(b []byte) (exrHeader, int, error) {
	if err := need(b, 0, 8); err != nil {
		return exrHeader{}, 0, err
	}
	if [4]byte(b[:4]) != magic {
		return exrHeader{}, 0, ErrInvalidType
	}
	version := binary.LittleEndian.Uint32(b[4:8])
	h := exrHeader{
		tiled:     version&(1<<9) != 0,
		longNames: version&(1<<10) != 0,
		nonImage:  version&(1<<11) != 0,
		multipart: version&(1<<12) != 0,
	}
	pos := 8

	for {
		if err := need(b, pos, 1); err != nil {
			return exrHeader{}, 0, err
		}
		if b[pos] == 0 {
			pos++
			break
		}
		name, next, err := readCString(b, pos)
		if err != nil {
			return exrHeader{}, 0, err
		}
		pos = next
		typ, next, err := readCString(b, pos)
		if err != nil {
			return exrHeader{}, 0, err
		}
		pos = next
		if err := need(b, pos, 4); err != nil {
			return exrHeader{}, 0, err
		}
		size := int(int32(binary.LittleEndian.Uint32(b[pos:])))
		pos += 4
		if err := need(b, pos, size); err != nil {
			return exrHeader{}, 0, err
		}
		attr := b[pos : pos+size]
		pos += size

		switch name {
		case "channels":
			if typ != "chlist" {
				return exrHeader{}, 0, ErrInvalidType
			}
			h.channels, err = parseChannelList(attr)
			if err != nil {
				return exrHeader{}, 0, err
			}
		case "compression":
			if len(attr) < 1 {
				return exrHeader{}, 0, ErrUnexpectedEnd
			}
			h.compression = int32(attr[0])
		case "dataWindow":
			if len(attr) < 16 {
				return exrHeader{}, 0, ErrUnexpectedEnd
			}
			for i := 0; i < 4; i++ {
				h.dataWindow[i] = int32(binary.LittleEndian.Uint32(attr[i*4:]))
			}
		case "tiles":
			if len(attr) < 9 {
				return exrHeader{}, 0, ErrUnexpectedEnd
			}
			h.tileXSize = binary.LittleEndian.Uint32(attr[0:])
			h.tileYSize = binary.LittleEndian.Uint32(attr[4:])
			h.tileMode = int(attr[8]) & 0x0f
		}
	}
	return h, pos, nil
}

func parseChannelList(b []byte) ([]exrChannel, error) {
	var channels []exrChannel
	pos := 0
	for {
		if err := need(b, pos, 1); err != nil {
			return nil, err
		}
		if b[pos] == 0 {
			return channels, nil
		}
		name, next, err := readCString(b, pos)
		if err != nil {
			return nil, err
		}
		pos = next
		if err := need(b, pos, 16); err != nil {
			return nil, err
		}
		pixelType := int32(binary.LittleEndian.Uint32(b[pos:]))
		pos += 16 // pixelType(4) + pLinear+reserved(4) + xSampling(4) + ySampling(4)
		channels = append(channels, exrChannel{name: name, pixelType: pixelType})
	}
}

var (
	ErrInvalidType       = errors.New("codecexr: not an OpenEXR file")
	ErrCantRepresent     = errors.New("codecexr: deep, multipart, multi-tile or unwritable-format EXR not supported")
	ErrUnsupportedFormat = errors.New("codecexr: channel layout or compression not supported")
	ErrEmpty             = errors.New("codecexr: no channel layer has a parsable format")
	ErrUnexpectedEnd     = errors.New("codecexr: unexpected end of stream")
)
