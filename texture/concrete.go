// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package texture

import (
	"fmt"

	"github.com/gogpu/blit"
	"github.com/gogpu/blit/container"
	"github.com/gogpu/blit/device"
	"github.com/gogpu/gputypes"
)

// Concrete is a texture that owns exactly one device-native allocation.
// Its lifetime and the handle's lifetime are the same: disposing the
// Concrete releases the handle exactly once, and any outstanding views
// become invalid.
//
// Concretes register with their device.Context at construction and replay
// their restore strategy when the device comes back after a loss.
type Concrete struct {
	ctx  *device.Context
	base device.NativeTexture

	format       gputypes.TextureFormat
	pixWidth     int
	pixHeight    int
	pot          bool
	renderTarget bool
	mipMapping   bool
	mipLevels    int
	pma          bool
	video        bool
	scale        float64

	repeat   bool
	ready    bool
	disposed bool

	onRestore  RestoreStrategy
	unregister func()
}

// concreteConfig collects the immutable allocation parameters.
type concreteConfig struct {
	format       gputypes.TextureFormat
	renderTarget bool
	mipMapping   bool
	mipLevels    int
	pma          bool
	video        bool
	scale        float64
}

// newConcrete wraps a freshly allocated handle and registers it for
// recovery. Package-internal: all construction goes through the Factory.
func newConcrete(ctx *device.Context, base device.NativeTexture, cfg concreteConfig) *Concrete {
	if cfg.mipLevels < 1 {
		cfg.mipLevels = 1
	}
	c := &Concrete{
		ctx:          ctx,
		base:         base,
		format:       cfg.format,
		pixWidth:     base.Width(),
		pixHeight:    base.Height(),
		pot:          base.PowerOfTwo(),
		renderTarget: cfg.renderTarget,
		mipMapping:   cfg.mipMapping,
		mipLevels:    cfg.mipLevels,
		pma:          cfg.pma,
		video:        cfg.video,
		scale:        cfg.scale,
		ready:        true,
	}
	c.unregister = ctx.Register(c)
	return c
}

// Width returns the logical width of the allocation.
func (c *Concrete) Width() float64 { return float64(c.pixWidth) / c.scale }

// Height returns the logical height of the allocation.
func (c *Concrete) Height() float64 { return float64(c.pixHeight) / c.scale }

// NativeWidth returns the allocated width in pixels.
func (c *Concrete) NativeWidth() float64 { return float64(c.pixWidth) }

// NativeHeight returns the allocated height in pixels.
func (c *Concrete) NativeHeight() float64 { return float64(c.pixHeight) }

// Scale returns the ratio between pixel and logical units.
func (c *Concrete) Scale() float64 { return c.scale }

// Format returns the pixel format.
func (c *Concrete) Format() gputypes.TextureFormat { return c.format }

// PremultipliedAlpha reports whether stored RGB is premultiplied.
func (c *Concrete) PremultipliedAlpha() bool { return c.pma }

// MipMapping reports whether the allocation carries mip levels.
func (c *Concrete) MipMapping() bool { return c.mipMapping }

// MipLevels returns the length of the allocated mip chain (1 without
// mipmapping).
func (c *Concrete) MipLevels() int { return c.mipLevels }

// RenderTarget reports whether the allocation was optimized for render-
// to-texture use.
func (c *Concrete) RenderTarget() bool { return c.renderTarget }

// PowerOfTwo reports the addressing mode chosen at allocation.
func (c *Concrete) PowerOfTwo() bool { return c.pot }

// Repeat reports whether the texture tiles at its edges.
func (c *Concrete) Repeat() bool { return c.repeat }

// SetRepeat enables or disables tiling. Tiling requires power-of-two
// addressing.
func (c *Concrete) SetRepeat(repeat bool) error {
	if repeat && !c.pot {
		return ErrRepeatRequiresPOT
	}
	c.repeat = repeat
	return nil
}

// Frame returns nil; only views carry frames.
func (c *Concrete) Frame() *blit.Rect { return nil }

// Base returns the owned device handle, or nil after Dispose.
func (c *Concrete) Base() device.NativeTexture {
	if c.disposed {
		return nil
	}
	return c.base
}

// Root returns the texture itself.
func (c *Concrete) Root() *Concrete { return c }

// Ready reports whether the texture's content is resident. It is false
// between an asynchronous upload's scheduling and its completion; callers
// must not submit the texture for rendering while false.
func (c *Concrete) Ready() bool { return c.ready }

// AdjustVertexData is a no-op: a concrete texture has no frame.
func (c *Concrete) AdjustVertexData(verts []float32, startIndex, count int) {}

// AdjustTexCoords is a no-op: concrete texture space is root space.
func (c *Concrete) AdjustTexCoords(coords []float32, startIndex, stride, count int) {}

// OnRestore returns the texture's recreation strategy, or nil when the
// texture stays blank after a device loss.
func (c *Concrete) OnRestore() RestoreStrategy { return c.onRestore }

// SetOnRestore replaces the recreation strategy. Passing nil leaves the
// texture blank after a restore. Callers that hand a pixmap to the
// factory but cannot keep it alive substitute their own strategy here.
func (c *Concrete) SetOnRestore(s RestoreStrategy) { c.onRestore = s }

// UploadPixmap transfers pixel content synchronously. With mipmapping
// enabled, successive half-resolution levels are derived and uploaded
// down to 1x1.
func (c *Concrete) UploadPixmap(pix *blit.Pixmap) error {
	if c.disposed {
		return ErrDoubleDispose
	}
	if err := c.uploadLevels(pix); err != nil {
		return err
	}
	c.ready = true
	return nil
}

// UploadPixmapAsync schedules the transfer on the device's upload queue
// and returns a Pending that completes when the content is resident. The
// texture reports Ready() == false until then. If the device has no async
// queue the upload happens synchronously and the Pending is returned
// already completed.
func (c *Concrete) UploadPixmapAsync(pix *blit.Pixmap) (*Pending, error) {
	if c.disposed {
		return nil, ErrDoubleDispose
	}
	return c.scheduleAsync(func() error { return c.uploadLevels(pix) })
}

// UploadContainer decodes compressed-container bytes into the allocation.
// With useMips set, every encoded level is decoded; otherwise only the
// base level.
func (c *Concrete) UploadContainer(data []byte, useMips bool) error {
	if c.disposed {
		return ErrDoubleDispose
	}
	dec, hdr, err := container.Probe(data)
	if err != nil {
		return err
	}
	levels := 1
	if useMips {
		levels = hdr.MipCount
	}
	for l := 0; l < levels; l++ {
		if err := dec.DecodeInto(c.base, data, l); err != nil {
			return fmt.Errorf("texture: container decode (level %d): %w", l, err)
		}
	}
	c.ready = true
	return nil
}

// Clear fills the allocation with a flat color. Used by the color factory
// path and as the default restore behavior.
func (c *Concrete) Clear(col blit.RGBA) error {
	if c.disposed {
		return ErrDoubleDispose
	}
	if err := c.base.Clear(col); err != nil {
		return err
	}
	c.ready = true
	return nil
}

// Dispose releases the device handle and unregisters the texture from its
// session. The second call returns ErrDoubleDispose: the handle is
// already gone and outstanding views are invalid.
func (c *Concrete) Dispose() error {
	if c.disposed {
		return ErrDoubleDispose
	}
	c.disposed = true
	if c.unregister != nil {
		c.unregister()
	}
	c.base.Destroy()
	return nil
}

// Disposed reports whether Dispose has been called.
func (c *Concrete) Disposed() bool { return c.disposed }

// RestoreAfterLoss implements device.Restorable. The platform has already
// created dev; the texture reallocates its handle there with the original
// addressing mode and replays its restore strategy. Without a strategy
// the texture comes back blank, which is not an error.
func (c *Concrete) RestoreAfterLoss(dev device.Device) error {
	if c.disposed {
		return nil
	}
	var (
		base device.NativeTexture
		err  error
	)
	switch {
	case c.video:
		base, err = dev.CreateVideoTexture()
	case c.mipLevels > 1:
		base, err = device.CreateMipmapped(dev, c.pixWidth, c.pixHeight, c.format, c.renderTarget, c.pot, c.mipLevels)
	case c.pot:
		base, err = dev.CreatePOTTexture(c.pixWidth, c.pixHeight, c.format, c.renderTarget)
	default:
		base, err = dev.CreateTexture(c.pixWidth, c.pixHeight, c.format, c.renderTarget)
	}
	if err != nil {
		return fmt.Errorf("texture: handle recreation failed: %w", err)
	}
	c.base = base
	if c.onRestore == nil {
		return nil
	}
	if err := c.onRestore.apply(c); err != nil {
		return fmt.Errorf("texture: restore strategy %v: %w", c.onRestore.Kind(), err)
	}
	return nil
}

// uploadLevels writes level 0 and, with mipmapping, derived levels up to
// the allocated chain length.
func (c *Concrete) uploadLevels(pix *blit.Pixmap) error {
	if err := c.base.Upload(pix, 0); err != nil {
		return err
	}
	if !c.mipMapping {
		return nil
	}
	level := pix
	for l := 1; l < c.mipLevels && (level.Width() > 1 || level.Height() > 1); l++ {
		level = level.Scaled(halfDim(level.Width()), halfDim(level.Height()))
		if err := c.base.Upload(level, l); err != nil {
			return err
		}
	}
	return nil
}

// scheduleAsync runs fn through the device's upload queue, completing the
// returned Pending with the result. Devices without a queue run fn
// immediately.
func (c *Concrete) scheduleAsync(fn func() error) (*Pending, error) {
	p := newPending(c)
	dev := c.ctx.Device()
	if dev == nil {
		return nil, ErrNoDeviceContext
	}
	uploader, ok := dev.(device.AsyncUploader)
	if !ok {
		err := fn()
		if err == nil {
			c.ready = true
		}
		p.complete(err)
		return p, nil
	}
	c.ready = false
	uploader.ScheduleUpload(fn, func(err error) {
		if err == nil {
			c.ready = true
		}
		p.complete(err)
	})
	return p, nil
}

func halfDim(n int) int {
	n >>= 1
	if n < 1 {
		n = 1
	}
	return n
}
