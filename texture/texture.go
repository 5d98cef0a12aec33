// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package texture

import (
	"github.com/gogpu/blit"
	"github.com/gogpu/blit/device"
	"github.com/gogpu/gputypes"
)

// Texture is the contract every texture variant satisfies, regardless of
// whether it owns a device allocation ([Concrete]) or views one ([Sub]).
//
// Geometry is reported in two unit systems: Width/Height are logical
// units (pixels divided by Scale), NativeWidth/NativeHeight are raw pixel
// units of this texture's footprint.
type Texture interface {
	// Width returns the logical width. For a view with a trimmed frame
	// this is the frame's full bounding box, not the stored region.
	Width() float64

	// Height returns the logical height.
	Height() float64

	// NativeWidth returns the width in raw pixel units.
	NativeWidth() float64

	// NativeHeight returns the height in raw pixel units.
	NativeHeight() float64

	// Scale returns the ratio between pixel and logical units.
	Scale() float64

	// Format returns the pixel format of the underlying allocation.
	Format() gputypes.TextureFormat

	// PremultipliedAlpha reports whether stored RGB is premultiplied.
	PremultipliedAlpha() bool

	// MipMapping reports whether the underlying allocation carries mips.
	MipMapping() bool

	// Repeat reports whether the texture tiles. Always false for views.
	Repeat() bool

	// Frame returns the trimmed-frame rectangle, or nil. Only a view may
	// report a non-nil frame.
	Frame() *blit.Rect

	// Base returns the device handle, resolved through the view chain.
	// Nil after the root has been disposed.
	Base() device.NativeTexture

	// Root returns the concrete texture owning the device allocation.
	Root() *Concrete

	// AdjustVertexData rewrites the positions of count vertices (tightly
	// packed x,y pairs starting at element startIndex) so a quad sized to
	// this texture's logical bounds renders trimmed content at its
	// pre-trim position. A no-op unless the texture has a frame.
	AdjustVertexData(verts []float32, startIndex, count int)

	// AdjustTexCoords rewrites count UV pairs (each stride elements apart,
	// starting at element startIndex) from [0,1] texture space into this
	// texture's region of its root's texture space.
	AdjustTexCoords(coords []float32, startIndex, stride, count int)

	// Dispose releases device resources for textures that own them.
	// Disposing a view is a no-op; disposing a Concrete twice returns
	// ErrDoubleDispose.
	Dispose() error
}

// epsilon constants for dimension comparisons. Scale arithmetic is
// floating point; without the absolute term a 2x-scale texture of odd
// logical size would spuriously wrap itself in a view. Tunable, not
// load-bearing.
const (
	epsAbsolute = 1e-3
	epsRelative = 1e-9
)

// almostEqual reports whether a and b differ by no more than the combined
// absolute/relative epsilon.
func almostEqual(a, b float64) bool {
	diff := a - b
	if diff < 0 {
		diff = -diff
	}
	m := a
	if m < 0 {
		m = -m
	}
	if n := b; n > m {
		m = n
	} else if -n > m {
		m = -n
	}
	return diff <= epsAbsolute+epsRelative*m
}
