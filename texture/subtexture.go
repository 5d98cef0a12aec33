// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package texture

import (
	"fmt"

	"github.com/gogpu/blit"
	"github.com/gogpu/blit/device"
	"github.com/gogpu/gputypes"
)

// Sub is a view into another texture: a cropped region, optionally with a
// trimmed frame, a quarter-turn rotation, and an independent scale
// modifier. Views own no device resources; any number of them may
// reference the same root allocation (the atlas pattern), and disposing a
// view is a no-op.
//
// The region is expressed in the parent's logical coordinate space. With
// rotated set, the stored content is turned a quarter turn clockwise in
// the atlas and the view presents it upright, so logical width and height
// swap relative to the region.
type Sub struct {
	parent   Texture
	region   blit.Rect
	frame    *blit.Rect
	rotated  bool
	scaleMod float64

	// region size in the view's logical units (after rotation swap and
	// scale modifier), without any frame.
	width  float64
	height float64

	// toParent maps this view's [0,1] UV space into the parent's.
	toParent blit.Matrix
}

// FromTexture constructs a view of parent. A nil region defaults to the
// parent's full bounds. frame, when non-nil, declares the full pre-trim
// bounding box the region maps back into; its X/Y are the (typically
// negative) offset of the region within that box. A scaleModifier of zero
// or less defaults to 1 and multiplies into the parent's scale,
// shrinking the view's logical size by the same factor.
func FromTexture(parent Texture, region, frame *blit.Rect, rotated bool, scaleModifier float64) *Sub {
	if scaleModifier <= 0 {
		scaleModifier = 1
	}
	var r blit.Rect
	if region != nil {
		r = *region
	} else {
		r = blit.Rect{W: parent.Width(), H: parent.Height()}
	}

	s := &Sub{
		parent:   parent,
		region:   r,
		rotated:  rotated,
		scaleMod: scaleModifier,
	}
	if frame != nil {
		f := *frame
		s.frame = &f
	}
	if rotated {
		s.width = r.H / scaleModifier
		s.height = r.W / scaleModifier
	} else {
		s.width = r.W / scaleModifier
		s.height = r.H / scaleModifier
	}

	pw, ph := parent.Width(), parent.Height()
	s.toParent = blit.Translate(r.X/pw, r.Y/ph).Multiply(blit.Scale(r.W/pw, r.H/ph))
	if rotated {
		s.toParent = s.toParent.Multiply(blit.QuarterCCW())
	}
	return s
}

// Parent returns the texture this view references.
func (s *Sub) Parent() Texture { return s.parent }

// Region returns the view's region in the parent's logical space.
func (s *Sub) Region() blit.Rect { return s.region }

// Rotated reports whether the stored content is turned a quarter turn.
func (s *Sub) Rotated() bool { return s.rotated }

// Width returns the logical width. With a frame set this is the frame's
// full bounding box, so trimmed atlas entries render at their original
// pre-trim footprint.
func (s *Sub) Width() float64 {
	if s.frame != nil {
		return s.frame.W
	}
	return s.width
}

// Height returns the logical height (frame bounding box when framed).
func (s *Sub) Height() float64 {
	if s.frame != nil {
		return s.frame.H
	}
	return s.height
}

// NativeWidth returns the width in raw pixel units.
func (s *Sub) NativeWidth() float64 { return s.Width() * s.Scale() }

// NativeHeight returns the height in raw pixel units.
func (s *Sub) NativeHeight() float64 { return s.Height() * s.Scale() }

// Scale returns the parent's scale multiplied by the scale modifier.
func (s *Sub) Scale() float64 { return s.parent.Scale() * s.scaleMod }

// Format returns the root allocation's pixel format.
func (s *Sub) Format() gputypes.TextureFormat { return s.parent.Format() }

// PremultipliedAlpha reports the root allocation's alpha mode.
func (s *Sub) PremultipliedAlpha() bool { return s.parent.PremultipliedAlpha() }

// MipMapping reports whether the root allocation carries mips.
func (s *Sub) MipMapping() bool { return s.parent.MipMapping() }

// Repeat returns false: views cannot tile.
func (s *Sub) Repeat() bool { return false }

// Frame returns a copy of the trimmed-frame rectangle, or nil.
func (s *Sub) Frame() *blit.Rect {
	if s.frame == nil {
		return nil
	}
	f := *s.frame
	return &f
}

// Base resolves the device handle through the view chain.
func (s *Sub) Base() device.NativeTexture { return s.parent.Base() }

// Root resolves the owning concrete texture through the view chain.
func (s *Sub) Root() *Concrete { return s.parent.Root() }

// Dispose is a no-op: views own no device resources. Only disposing the
// root concrete texture releases GPU memory.
func (s *Sub) Dispose() error { return nil }

// AdjustVertexData repositions the four corners of a quad sized to this
// view's logical bounds so the stored (trimmed) pixels land at their
// pre-trim position, leaving transparent padding elsewhere. Vertices are
// tightly packed x,y pairs in top-left, top-right, bottom-left,
// bottom-right order. A no-op without a frame; with one, exactly four
// vertices are required.
func (s *Sub) AdjustVertexData(verts []float32, startIndex, count int) {
	if s.frame == nil {
		return
	}
	if count != 4 {
		panic(fmt.Sprintf("texture: vertex adjustment of framed textures requires 4 vertices, got %d", count))
	}
	fx, fy := s.frame.X, s.frame.Y
	deltaRight := s.frame.W + fx - s.width
	deltaBottom := s.frame.H + fy - s.height

	i := startIndex
	verts[i+0] -= float32(fx) // top-left
	verts[i+1] -= float32(fy)
	verts[i+2] -= float32(deltaRight) // top-right
	verts[i+3] -= float32(fy)
	verts[i+4] -= float32(fx) // bottom-left
	verts[i+5] -= float32(deltaBottom)
	verts[i+6] -= float32(deltaRight) // bottom-right
	verts[i+7] -= float32(deltaBottom)
}

// AdjustTexCoords maps count UV pairs (stride elements apart, starting at
// element startIndex) from this view's [0,1] space into the root's
// texture space, composing every region and rotation along the ancestor
// chain.
func (s *Sub) AdjustTexCoords(coords []float32, startIndex, stride, count int) {
	if stride < 2 {
		stride = 2
	}
	m := s.transformToRoot()
	i := startIndex
	for n := 0; n < count; n++ {
		u, v := m.Apply(float64(coords[i]), float64(coords[i+1]))
		coords[i] = float32(u)
		coords[i+1] = float32(v)
		i += stride
	}
}

// transformToRoot composes the UV transforms of every view between this
// one and the root.
func (s *Sub) transformToRoot() blit.Matrix {
	m := s.toParent
	p := s.parent
	for {
		sub, ok := p.(*Sub)
		if !ok {
			return m
		}
		m = sub.toParent.Multiply(m)
		p = sub.parent
	}
}
