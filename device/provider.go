// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package device

import (
	"fmt"

	"github.com/gogpu/blit"
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
)

// Provider is the host-side handle blit receives a shared GPU device
// through. A gogpu application implements it and passes it in; blit never
// creates its own device.
type Provider = gpucontext.DeviceProvider

// ProviderDevice adapts a gpucontext host into a Device. Textures are
// created through the host's gpucontext.TextureCreator; content updates go
// through gpucontext.TextureUpdater when the created texture implements
// it, and fall back to create-new/destroy-old otherwise.
//
// The host's texture path is RGBA8-only, so ErrUnsupportedFormat is
// returned for any other format. Video textures are not available through
// this bridge.
type ProviderDevice struct {
	provider Provider
	creator  gpucontext.TextureCreator
	profile  Profile
}

// NewProviderDevice wraps a host device. creator is typically obtained
// from the host's rendering context.
func NewProviderDevice(p Provider, creator gpucontext.TextureCreator, profile Profile) *ProviderDevice {
	return &ProviderDevice{provider: p, creator: creator, profile: profile}
}

// Provider returns the host-side device provider.
func (d *ProviderDevice) Provider() Provider { return d.provider }

// Profile returns the configured capability tier.
func (d *ProviderDevice) Profile() Profile { return d.profile }

// SupportsVideoTextures reports false; the gpucontext bridge has no video
// path.
func (d *ProviderDevice) SupportsVideoTextures() bool { return false }

// CreateTexture allocates a size-exact host texture.
func (d *ProviderDevice) CreateTexture(width, height int, format gputypes.TextureFormat, renderTarget bool) (NativeTexture, error) {
	return d.create(width, height, format, false)
}

// CreatePOTTexture allocates a power-of-two-addressed host texture.
func (d *ProviderDevice) CreatePOTTexture(width, height int, format gputypes.TextureFormat, renderTarget bool) (NativeTexture, error) {
	if !IsPowerOfTwo(width) || !IsPowerOfTwo(height) {
		return nil, fmt.Errorf("%w: %dx%d", ErrNotPowerOfTwo, width, height)
	}
	return d.create(width, height, format, true)
}

// CreateVideoTexture returns ErrVideoUnsupported.
func (d *ProviderDevice) CreateVideoTexture() (NativeTexture, error) {
	return nil, ErrVideoUnsupported
}

func (d *ProviderDevice) create(width, height int, format gputypes.TextureFormat, pot bool) (NativeTexture, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidTextureSize, width, height)
	}
	if format != gputypes.TextureFormatRGBA8Unorm {
		return nil, fmt.Errorf("%w: gpucontext textures are RGBA8 only", ErrUnsupportedFormat)
	}
	raw, err := d.creator.NewTextureFromRGBA(width, height, make([]byte, width*height*4))
	if err != nil {
		return nil, fmt.Errorf("device: host texture creation failed: %w", err)
	}
	return &providerTexture{
		creator: d.creator,
		raw:     raw,
		width:   width,
		height:  height,
		pot:     pot,
	}, nil
}

// textureDestroyer matches host textures with explicit destruction.
type textureDestroyer interface {
	Destroy()
}

// providerTexture wraps a host texture created through gpucontext.
type providerTexture struct {
	creator   gpucontext.TextureCreator
	raw       any
	width     int
	height    int
	pot       bool
	destroyed bool
}

// Width returns the allocated width in pixels.
func (t *providerTexture) Width() int { return t.width }

// Height returns the allocated height in pixels.
func (t *providerTexture) Height() int { return t.height }

// Format returns RGBA8, the only format the bridge supports.
func (t *providerTexture) Format() gputypes.TextureFormat {
	return gputypes.TextureFormatRGBA8Unorm
}

// PowerOfTwo reports the addressing mode chosen at allocation.
func (t *providerTexture) PowerOfTwo() bool { return t.pot }

// Raw returns the underlying host texture (e.g. for drawing through
// gpucontext.TextureDrawer). Nil after Destroy.
func (t *providerTexture) Raw() any {
	if t.destroyed {
		return nil
	}
	return t.raw
}

// Upload transfers pixel content. Host textures carry a single level, so
// only mip level 0 is accepted; mipmapped content must be regenerated by
// the host's sampler.
func (t *providerTexture) Upload(pix *blit.Pixmap, mipLevel int) error {
	if t.destroyed {
		return ErrTextureDestroyed
	}
	if mipLevel != 0 {
		return nil
	}
	data := t.expand(pix)
	if updater, ok := t.raw.(gpucontext.TextureUpdater); ok {
		if err := updater.UpdateData(data); err != nil {
			return fmt.Errorf("device: host texture update failed: %w", err)
		}
		return nil
	}
	// No in-place update path: create a replacement and destroy the old
	// handle. NewTextureFromRGBA waits for the GPU internally, so the old
	// texture's descriptors are no longer in use when we destroy it.
	raw, err := t.creator.NewTextureFromRGBA(t.width, t.height, data)
	if err != nil {
		return fmt.Errorf("device: host texture re-creation failed: %w", err)
	}
	if destroyer, ok := t.raw.(textureDestroyer); ok {
		destroyer.Destroy()
	}
	t.raw = raw
	return nil
}

// expand pads the source into a full-size RGBA buffer when the pixmap is
// smaller than the allocation (power-of-two padding).
func (t *providerTexture) expand(pix *blit.Pixmap) []byte {
	if pix.Width() == t.width && pix.Height() == t.height {
		return pix.Bytes()
	}
	data := make([]byte, t.width*t.height*4)
	rows := pix.Height()
	if rows > t.height {
		rows = t.height
	}
	cols := pix.Width()
	if cols > t.width {
		cols = t.width
	}
	for y := 0; y < rows; y++ {
		src := pix.Bytes()[y*pix.Width()*4 : y*pix.Width()*4+cols*4]
		copy(data[y*t.width*4:], src)
	}
	return data
}

// Clear fills the texture with a flat color.
func (t *providerTexture) Clear(c blit.RGBA) error {
	if t.destroyed {
		return ErrTextureDestroyed
	}
	pix := blit.NewPixmap(t.width, t.height)
	pix.Fill(c)
	return t.Upload(pix, 0)
}

// Destroy releases the host texture if it exposes destruction.
func (t *providerTexture) Destroy() {
	if t.destroyed {
		return
	}
	t.destroyed = true
	if destroyer, ok := t.raw.(textureDestroyer); ok {
		destroyer.Destroy()
	}
	t.raw = nil
}
