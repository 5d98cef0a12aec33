// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package native

import (
	"errors"
	"fmt"

	"github.com/gogpu/blit"
	"github.com/gogpu/blit/device"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// Allocator errors.
var (
	// ErrNilDevice is returned when New receives a nil hal device or queue.
	ErrNilDevice = errors.New("native: hal device and queue are required")
)

// Device allocates hal textures on a host-provided wgpu device.
type Device struct {
	dev     hal.Device
	queue   hal.Queue
	profile device.Profile
}

// New wraps a hal device and queue. The profile describes the adapter's
// capability tier; wgpu adapters always support size-exact addressing, so
// anything below device.ProfileBaseline is unusual.
func New(dev hal.Device, queue hal.Queue, profile device.Profile) (*Device, error) {
	if dev == nil || queue == nil {
		return nil, ErrNilDevice
	}
	return &Device{dev: dev, queue: queue, profile: profile}, nil
}

// Profile returns the configured capability tier.
func (d *Device) Profile() device.Profile { return d.profile }

// SupportsVideoTextures reports false.
func (d *Device) SupportsVideoTextures() bool { return false }

// CreateVideoTexture returns device.ErrVideoUnsupported.
func (d *Device) CreateVideoTexture() (device.NativeTexture, error) {
	return nil, device.ErrVideoUnsupported
}

// CreateTexture allocates a size-exact hal texture.
func (d *Device) CreateTexture(width, height int, format gputypes.TextureFormat, renderTarget bool) (device.NativeTexture, error) {
	return d.create(width, height, format, renderTarget, false, 1)
}

// CreatePOTTexture allocates a power-of-two-addressed hal texture.
func (d *Device) CreatePOTTexture(width, height int, format gputypes.TextureFormat, renderTarget bool) (device.NativeTexture, error) {
	if !device.IsPowerOfTwo(width) || !device.IsPowerOfTwo(height) {
		return nil, fmt.Errorf("%w: %dx%d", device.ErrNotPowerOfTwo, width, height)
	}
	return d.create(width, height, format, renderTarget, true, 1)
}

// CreateMipTexture allocates a hal texture sized for the given mip chain
// length. WebGPU validates every upload against the descriptor's level
// count, so mipmapped textures must reserve their chain here.
func (d *Device) CreateMipTexture(width, height int, format gputypes.TextureFormat, renderTarget, pot bool, levels int) (device.NativeTexture, error) {
	if pot && (!device.IsPowerOfTwo(width) || !device.IsPowerOfTwo(height)) {
		return nil, fmt.Errorf("%w: %dx%d", device.ErrNotPowerOfTwo, width, height)
	}
	return d.create(width, height, format, renderTarget, pot, levels)
}

func (d *Device) create(width, height int, format gputypes.TextureFormat, renderTarget, pot bool, levels int) (device.NativeTexture, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", device.ErrInvalidTextureSize, width, height)
	}
	if levels < 1 {
		levels = 1
	}
	if max := device.FullMipCount(width, height); levels > max {
		return nil, fmt.Errorf("%w: %d mip levels exceed the %d-level chain of %dx%d",
			device.ErrInvalidTextureSize, levels, max, width, height)
	}
	halFormat, bpp, err := convertFormat(format)
	if err != nil {
		return nil, err
	}

	usage := gputypes.TextureUsageCopySrc | gputypes.TextureUsageCopyDst | gputypes.TextureUsageTextureBinding
	if renderTarget {
		usage |= gputypes.TextureUsageRenderAttachment
	}

	desc := &hal.TextureDescriptor{
		Label: "blit texture",
		Size: hal.Extent3D{
			Width:              uint32(width),
			Height:             uint32(height),
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: uint32(levels),
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        halFormat,
		Usage:         usage,
	}
	raw, err := d.dev.CreateTexture(desc)
	if err != nil {
		return nil, fmt.Errorf("native: texture creation failed: %w", err)
	}

	return &Texture{
		owner:  d,
		raw:    raw,
		width:  width,
		height: height,
		format: format,
		bpp:    bpp,
		pot:    pot,
		levels: levels,
	}, nil
}

// Texture wraps a hal texture handle.
type Texture struct {
	owner     *Device
	raw       hal.Texture
	width     int
	height    int
	format    gputypes.TextureFormat
	bpp       int
	pot       bool
	levels    int
	destroyed bool
}

// Width returns the allocated width in pixels.
func (t *Texture) Width() int { return t.width }

// Height returns the allocated height in pixels.
func (t *Texture) Height() int { return t.height }

// Format returns the pixel format.
func (t *Texture) Format() gputypes.TextureFormat { return t.format }

// PowerOfTwo reports the addressing mode chosen at allocation.
func (t *Texture) PowerOfTwo() bool { return t.pot }

// Raw returns the underlying hal texture, or nil after Destroy.
func (t *Texture) Raw() hal.Texture {
	if t.destroyed {
		return nil
	}
	return t.raw
}

// MipLevels returns the length of the allocated mip chain.
func (t *Texture) MipLevels() int { return t.levels }

// Upload writes pixel content into the given mip level at the top-left
// corner via the queue's WriteTexture path.
func (t *Texture) Upload(pix *blit.Pixmap, mipLevel int) error {
	if t.destroyed {
		return device.ErrTextureDestroyed
	}
	if mipLevel < 0 || mipLevel >= t.levels {
		return fmt.Errorf("native: mip level %d outside the allocated %d-level chain", mipLevel, t.levels)
	}
	dst := &hal.ImageCopyTexture{
		Texture:  t.raw,
		MipLevel: uint32(mipLevel),
		Origin:   hal.Origin3D{X: 0, Y: 0, Z: 0},
		Aspect:   gputypes.TextureAspectAll,
	}
	layout := &hal.ImageDataLayout{
		Offset:       0,
		BytesPerRow:  uint32(pix.Width() * t.bpp),
		RowsPerImage: uint32(pix.Height()),
	}
	size := &hal.Extent3D{
		Width:              uint32(pix.Width()),
		Height:             uint32(pix.Height()),
		DepthOrArrayLayers: 1,
	}
	if err := t.owner.queue.WriteTexture(dst, pix.Bytes(), layout, size); err != nil {
		return fmt.Errorf("native: texture upload failed: %w", err)
	}
	return nil
}

// Clear fills the texture with a flat color by uploading a filled buffer.
func (t *Texture) Clear(c blit.RGBA) error {
	if t.destroyed {
		return device.ErrTextureDestroyed
	}
	pix := blit.NewPixmap(t.width, t.height)
	pix.Fill(c)
	return t.Upload(pix, 0)
}

// Destroy releases the hal texture.
func (t *Texture) Destroy() {
	if t.destroyed {
		return
	}
	t.destroyed = true
	t.owner.dev.DestroyTexture(t.raw)
}

// convertFormat maps gputypes formats onto wgpu types formats, returning
// the hal format and the bytes-per-pixel of the linear layout.
func convertFormat(format gputypes.TextureFormat) (gputypes.TextureFormat, int, error) {
	switch format {
	case gputypes.TextureFormatRGBA8Unorm:
		return gputypes.TextureFormatRGBA8Unorm, 4, nil
	case gputypes.TextureFormatBGRA8Unorm:
		return gputypes.TextureFormatBGRA8Unorm, 4, nil
	case gputypes.TextureFormatR8Unorm:
		return gputypes.TextureFormatR8Unorm, 1, nil
	default:
		return gputypes.TextureFormatUndefined, 0, fmt.Errorf("%w: %v", device.ErrUnsupportedFormat, format)
	}
}
