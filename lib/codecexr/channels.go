// Copyright 2025 The Etc2 Authors.
//
// Licensed under the Apache License, Version 2.0 <LICENSE-APACHE or
// https://www.apache.org/licenses/LICENSE-2.0>. This file may not be copied,
// modified, or distributed except according to those terms.
//
// SPDX-License-Identifier: Apache-2.0

package codecexr

import (
	"strings"

	"github.com/nigeltao/imgio/lib/pixfmt"
)

const noChannel = -1

// exrLayer groups the up-to-4 channels belonging to one named layer.
// mapping[c] is the index into exrHeader.channels for channel code c (R=0,
// G=1, B=2, A=3), or noChannel if that code is absent from the layer.
type exrLayer struct {
	name    string
	mapping [4]int
}

// splitChannels groups h.channels into layers and returns the pixel type
// shared by every retained (known-code) channel. Unknown channel codes are
// dropped. A layer with more than one channel claiming the same code, or
// retained channels of differing pixel types, is an unsupportedFormat error.
func splitChannels(h exrHeader) ([]exrLayer, int32, error) {
	var layers []exrLayer
	pixelType := int32(-1)

	for i, ch := range h.channels {
		layerName, code := ch.name, ""
		if dot := strings.LastIndexByte(ch.name, '.'); dot >= 0 {
			layerName, code = ch.name[:dot], ch.name[dot+1:]
		} else {
			layerName, code = "", ch.name
		}

		id := -1
		switch code {
		case "R":
			id = 0
		case "G":
			id = 1
		case "B":
			id = 2
		case "A":
			id = 3
		default:
			continue // unknown channel code, ignored
		}

		li := -1
		for j := range layers {
			if layers[j].name == layerName {
				li = j
				break
			}
		}
		if li < 0 {
			layers = append(layers, exrLayer{name: layerName, mapping: [4]int{noChannel, noChannel, noChannel, noChannel}})
			li = len(layers) - 1
		}
		if layers[li].mapping[id] != noChannel {
			return nil, 0, ErrUnsupportedFormat
		}
		layers[li].mapping[id] = i

		if pixelType == -1 {
			pixelType = ch.pixelType
		} else if pixelType != ch.pixelType {
			return nil, 0, ErrUnsupportedFormat
		}
	}
	return layers, pixelType, nil
}

// parseFormat maps a layer's channel mapping and shared pixel type to a
// Format, by the highest channel code present (or 3 when forceRGBA).
// It returns pixfmt.Undefined for a mapping/pixelType pair with no
// corresponding Format.
func parseFormat(mapping [4]int, pixelType int32, forceRGBA bool) pixfmt.Format {
	maxChan := 0
	switch {
	case forceRGBA || mapping[3] != noChannel:
		maxChan = 3
	case mapping[2] != noChannel:
		maxChan = 2
	case mapping[1] != noChannel:
		maxChan = 1
	}

	switch maxChan {
	case 0:
		switch pixelType {
		case pixelTypeUint:
			return pixfmt.R32Uint
		case pixelTypeHalf:
			return pixfmt.R16Sfloat
		case pixelTypeFloat:
			return pixfmt.R32Sfloat
		}
	case 1:
		switch pixelType {
		case pixelTypeUint:
			return pixfmt.R32G32Uint
		case pixelTypeHalf:
			return pixfmt.R16G16Sfloat
		case pixelTypeFloat:
			return pixfmt.R32G32Sfloat
		}
	case 2:
		switch pixelType {
		case pixelTypeUint:
			return pixfmt.R32G32B32Uint
		case pixelTypeHalf:
			return pixfmt.R16G16B16Sfloat
		case pixelTypeFloat:
			return pixfmt.R32G32B32Sfloat
		}
	case 3:
		switch pixelType {
		case pixelTypeUint:
			return pixfmt.R32G32B32A32Uint
		case pixelTypeHalf:
			return pixfmt.R16G16B16A16Sfloat
		case pixelTypeFloat:
			return pixfmt.R32G32B32A32Sfloat
		}
	}
	return pixfmt.Undefined
}

func channelSize(pixelType int32) int {
	if pixelType == pixelTypeHalf {
		return 2
	}
	return 4
}
