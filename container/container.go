// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package container

import (
	"errors"

	"github.com/gogpu/blit/device"
	"github.com/gogpu/gputypes"
)

// Decoder errors.
var (
	// ErrUnknownContainer is returned when no registered decoder recognizes
	// the data.
	ErrUnknownContainer = errors.New("container: unrecognized container data")

	// ErrTruncated is returned when a container ends before its declared
	// payload.
	ErrTruncated = errors.New("container: truncated data")
)

// Header describes the texture a container decodes into.
type Header struct {
	// Width and Height are the level-0 pixel dimensions.
	Width  int
	Height int

	// Format is the pixel format of the decoded content.
	Format gputypes.TextureFormat

	// MipCount is the number of encoded mip levels (1 = no mipmaps).
	MipCount int
}

// Decoder parses container metadata and streams decoded content into a
// device texture. Implementations must be safe for concurrent use; the
// registry hands the same Decoder to every caller.
type Decoder interface {
	// ParseHeader reads the container metadata without decoding payload.
	ParseHeader(data []byte) (Header, error)

	// DecodeInto decodes one mip level into the destination handle.
	DecodeInto(dst device.NativeTexture, data []byte, mipLevel int) error
}
