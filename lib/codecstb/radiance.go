// Copyright 2025 The Etc2 Authors.
//
// Licensed under the Apache License, Version 2.0 <LICENSE-APACHE or
// https://www.apache.org/licenses/LICENSE-2.0>. This file may not be copied,
// modified, or distributed except according to those terms.
//
// SPDX-License-Identifier: Apache-2.0

package codecstb

import (
	"bufio"
	"bytes"
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/nigeltao/imgio/lib/imgprov"
	"github.com/nigeltao/imgio/lib/pixfmt"
)

var (
	ErrInvalidRadianceHeader   = errors.New("codecstb: invalid Radiance HDR header")
	ErrInvalidRadianceScanline = errors.New("codecstb: invalid Radiance HDR scanline")
)

// isRadianceHDR peeks at br without consuming it, reporting whether it
// starts with a Radiance/RGBE magic line.
func isRadianceHDR(br *bufio.Reader) bool {
	peek, _ := br.Peek(10)
	return bytes.HasPrefix(peek, []byte("#?RADIANCE")) || bytes.HasPrefix(peek, []byte("#?RGBE"))
}

// decodeRadianceHDR reads a Radiance (.hdr/.pic) RGBE image, producing a
// linear r32g32b32a32Sfloat provider with alpha forced to 1.
func decodeRadianceHDR(br *bufio.Reader) (imgprov.Provider, error) {
	for {
		line, err := br.ReadString('\n')
		if err != nil {
			return nil, ErrInvalidRadianceHeader
		}
		line = strings.TrimRight(line, "\r\n")
		if line == "" {
			break // blank line ends the header
		}
	}

	dims, err := br.ReadString('\n')
	if err != nil {
		return nil, ErrInvalidRadianceHeader
	}
	width, height, flipY, err := parseRadianceDims(dims)
	if err != nil {
		return nil, err
	}

	const format = pixfmt.R32G32B32A32Sfloat
	elemSize := pixfmt.ElementSize(format)
	blob := make([]byte, width*height*elemSize)

	row := make([]rgbe, width)
	for y := 0; y < height; y++ {
		if err := readRadianceScanline(br, row); err != nil {
			return nil, err
		}
		dstY := y
		if flipY {
			dstY = height - 1 - y
		}
		for x, px := range row {
			r, g, b := px.toFloat()
			off := (dstY*width + x) * elemSize
			putFloat32(blob[off:], r)
			putFloat32(blob[off+4:], g)
			putFloat32(blob[off+8:], b)
			putFloat32(blob[off+12:], 1)
		}
	}

	size := pixfmt.Extent3D{W: width, H: height, D: 1}
	return imgprov.NewOwningFaces(size, format, 1, 1, false, [][]byte{blob})
}

// parseRadianceDims parses a "-Y height +X width" (or axis-flipped
// variant) resolution line.
func parseRadianceDims(line string) (width, height int, flipY bool, err error) {
	fields := strings.Fields(line)
	if len(fields) != 4 {
		return 0, 0, false, ErrInvalidRadianceHeader
	}
	h, errH := strconv.Atoi(fields[1])
	w, errW := strconv.Atoi(fields[3])
	if errH != nil || errW != nil || h < 1 || w < 1 {
		return 0, 0, false, ErrInvalidRadianceHeader
	}
	// "-Y" means rows are stored top-to-bottom already; "+Y" means
	// bottom-to-top, which this decoder normalizes to top-to-bottom.
	return w, h, strings.HasPrefix(fields[0], "+Y"), nil
}

type rgbe struct{ r, g, b, e byte }

func (c rgbe) toFloat() (r, g, b float32) {
	if c.e == 0 {
		return 0, 0, 0
	}
	scale := float32(math.Ldexp(1, int(c.e)-(128+8)))
	return float32(c.r) * scale, float32(c.g) * scale, float32(c.b) * scale
}

func putFloat32(dst []byte, v float32) {
	bits := math.Float32bits(v)
	dst[0] = byte(bits)
	dst[1] = byte(bits >> 8)
	dst[2] = byte(bits >> 16)
	dst[3] = byte(bits >> 24)
}

// readRadianceScanline fills row (len(row) == width) with one scanline,
// handling both the legacy flat-RGBE encoding and the new-format
// adaptive RLE encoding (a scanline beginning with the 4-byte marker
// {2, 2, widthHi, widthLo}).
func readRadianceScanline(br *bufio.Reader, row []rgbe) error {
	width := len(row)
	if width < 8 || width > 0x7FFF {
		return readRadianceFlat(br, row)
	}

	var marker [4]byte
	if _, err := readFull(br, marker[:]); err != nil {
		return err
	}
	if marker[0] != 2 || marker[1] != 2 || (int(marker[2])<<8|int(marker[3])) != width {
		// Not the new-format marker: treat those 4 bytes as the first
		// pixel of a flat-encoded scanline.
		row[0] = rgbe{marker[0], marker[1], marker[2], marker[3]}
		return readRadianceFlat(br, row[1:])
	}

	for ch := 0; ch < 4; ch++ {
		x := 0
		for x < width {
			n, err := br.ReadByte()
			if err != nil {
				return ErrInvalidRadianceScanline
			}
			if n > 128 {
				count := int(n) - 128
				v, err := br.ReadByte()
				if err != nil || x+count > width {
					return ErrInvalidRadianceScanline
				}
				for i := 0; i < count; i++ {
					setChannel(&row[x+i], ch, v)
				}
				x += count
			} else {
				count := int(n)
				if x+count > width {
					return ErrInvalidRadianceScanline
				}
				for i := 0; i < count; i++ {
					v, err := br.ReadByte()
					if err != nil {
						return ErrInvalidRadianceScanline
					}
					setChannel(&row[x+i], ch, v)
				}
				x += count
			}
		}
	}
	return nil
}

func setChannel(px *rgbe, ch int, v byte) {
	switch ch {
	case 0:
		px.r = v
	case 1:
		px.g = v
	case 2:
		px.b = v
	case 3:
		px.e = v
	}
}

func readRadianceFlat(br *bufio.Reader, row []rgbe) error {
	var buf [4]byte
	for i := range row {
		if _, err := readFull(br, buf[:]); err != nil {
			return ErrInvalidRadianceScanline
		}
		row[i] = rgbe{buf[0], buf[1], buf[2], buf[3]}
	}
	return nil
}

func readFull(br *bufio.Reader, buf []byte) (int, error) {
	total := 0
	for total < len(buf) {
		n, err := br.Read(buf[total:])
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}
