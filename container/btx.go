// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package container

import (
	"encoding/binary"
	"fmt"

	"github.com/gogpu/blit"
	"github.com/gogpu/blit/device"
	"github.com/gogpu/gputypes"
)

// BTX is a minimal uncompressed texture container:
//
//	offset 0: magic "BTX1"
//	offset 4: uint16 width  (big-endian)
//	offset 6: uint16 height (big-endian)
//	offset 8: uint8 format code (0 = RGBA8, 1 = BGRA8)
//	offset 9: uint8 mip count (>= 1)
//	offset 10: payload, mip levels back to back, each level
//	           max(1,w>>l) * max(1,h>>l) * 4 bytes
const (
	btxMagic      = "BTX1"
	btxHeaderSize = 10
)

// BTX format codes.
const (
	btxFormatRGBA8 = 0
	btxFormatBGRA8 = 1
)

func init() {
	Register("btx", sniffBTX, btxDecoder{})
}

func sniffBTX(data []byte) bool {
	return len(data) >= 4 && string(data[:4]) == btxMagic
}

type btxDecoder struct{}

// ParseHeader reads the BTX header and validates the payload length.
func (btxDecoder) ParseHeader(data []byte) (Header, error) {
	if len(data) < btxHeaderSize {
		return Header{}, ErrTruncated
	}
	if string(data[:4]) != btxMagic {
		return Header{}, fmt.Errorf("container: bad BTX magic %q", data[:4])
	}
	w := int(binary.BigEndian.Uint16(data[4:6]))
	h := int(binary.BigEndian.Uint16(data[6:8]))
	code := data[8]
	mips := int(data[9])
	if w <= 0 || h <= 0 || mips < 1 {
		return Header{}, fmt.Errorf("container: invalid BTX header %dx%d mips=%d", w, h, mips)
	}

	var format gputypes.TextureFormat
	switch code {
	case btxFormatRGBA8:
		format = gputypes.TextureFormatRGBA8Unorm
	case btxFormatBGRA8:
		format = gputypes.TextureFormatBGRA8Unorm
	default:
		return Header{}, fmt.Errorf("container: unknown BTX format code %d", code)
	}

	if len(data) < btxHeaderSize+btxPayloadSize(w, h, mips) {
		return Header{}, ErrTruncated
	}
	return Header{Width: w, Height: h, Format: format, MipCount: mips}, nil
}

// DecodeInto copies one mip level out of the payload into dst.
func (d btxDecoder) DecodeInto(dst device.NativeTexture, data []byte, mipLevel int) error {
	hdr, err := d.ParseHeader(data)
	if err != nil {
		return err
	}
	if mipLevel < 0 || mipLevel >= hdr.MipCount {
		return fmt.Errorf("container: BTX has %d mip levels, requested %d", hdr.MipCount, mipLevel)
	}

	offset := btxHeaderSize
	w, h := hdr.Width, hdr.Height
	for l := 0; l < mipLevel; l++ {
		offset += w * h * 4
		w, h = halve(w), halve(h)
	}

	pix := blit.NewPixmap(w, h)
	copy(pix.Bytes(), data[offset:offset+w*h*4])
	return dst.Upload(pix, mipLevel)
}

// EncodeBTX packs a pixmap (and mipCount-1 derived half-resolution levels)
// into a BTX container. Intended for tooling and tests.
func EncodeBTX(pix *blit.Pixmap, mipCount int) []byte {
	if mipCount < 1 {
		mipCount = 1
	}
	out := make([]byte, btxHeaderSize, btxHeaderSize+btxPayloadSize(pix.Width(), pix.Height(), mipCount))
	copy(out[:4], btxMagic)
	binary.BigEndian.PutUint16(out[4:6], uint16(pix.Width()))
	binary.BigEndian.PutUint16(out[6:8], uint16(pix.Height()))
	out[8] = btxFormatRGBA8
	out[9] = uint8(mipCount)

	level := pix
	for l := 0; l < mipCount; l++ {
		out = append(out, level.Bytes()...)
		if l+1 < mipCount {
			level = level.Scaled(halve(level.Width()), halve(level.Height()))
		}
	}
	return out
}

func btxPayloadSize(w, h, mips int) int {
	size := 0
	for l := 0; l < mips; l++ {
		size += w * h * 4
		w, h = halve(w), halve(h)
	}
	return size
}

func halve(n int) int {
	n >>= 1
	if n < 1 {
		n = 1
	}
	return n
}
