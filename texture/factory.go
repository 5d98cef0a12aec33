// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package texture

import (
	"fmt"
	"image"
	"math"

	"github.com/gogpu/blit"
	"github.com/gogpu/blit/container"
	"github.com/gogpu/blit/device"
	"github.com/gogpu/gputypes"
)

// Options configures texture construction. Build from DefaultOptions and
// override fields as needed; the zero value is not a usable default (its
// format is unspecified).
type Options struct {
	// Scale is the ratio between pixel and logical units. Zero or less
	// resolves to the context's content scale factor.
	Scale float64

	// Format is the pixel format of the allocation.
	Format gputypes.TextureFormat

	// MipMapping allocates and fills mip levels. Forces power-of-two
	// addressing.
	MipMapping bool

	// RenderTarget optimizes the allocation for render-to-texture use.
	RenderTarget bool

	// ForcePowerOfTwo bypasses size-exact addressing even when the device
	// profile supports it.
	ForcePowerOfTwo bool

	// PremultipliedAlpha declares whether uploaded RGB is premultiplied.
	PremultipliedAlpha bool

	// Compressed marks the content as block-compressed, which rules out
	// size-exact addressing. Set by the container path.
	Compressed bool
}

// DefaultOptions returns the options every factory path starts from:
// RGBA8, context content scale, premultiplied alpha, no mipmaps.
func DefaultOptions() Options {
	return Options{
		Format:             gputypes.TextureFormatRGBA8Unorm,
		PremultipliedAlpha: true,
	}
}

// Factory is the single construction surface for textures. It translates
// heterogeneous source inputs into correctly configured texture trees on
// the session's device and wires up recovery for each of them.
type Factory struct {
	ctx *device.Context
}

// New creates a factory bound to a rendering session.
func New(ctx *device.Context) *Factory {
	return &Factory{ctx: ctx}
}

// Context returns the session the factory allocates on.
func (f *Factory) Context() *device.Context { return f.ctx }

// Empty allocates a blank texture of the given logical size. This is the
// foundational allocator every other path funnels through.
//
// The allocation is size-exact when mipmapping is off, power-of-two is
// not forced, the content is not block-compressed, and the device profile
// supports it; otherwise pixel dimensions round up to the next power of
// two. If the allocated pixel dimensions differ from the requested ones
// beyond a rounding epsilon, the concrete allocation is wrapped in a view
// of exactly the requested logical size, so padding is never observable.
//
// The default restore strategy is ClearRestore: after a device loss the
// texture comes back blank rather than invalid.
func (f *Factory) Empty(width, height float64, opts Options) (Texture, error) {
	dev := f.ctx.Device()
	if dev == nil {
		return nil, ErrNoDeviceContext
	}
	scale := f.resolveScale(opts.Scale)
	pixW := width * scale
	pixH := height * scale
	reqW := dimFor(pixW)
	reqH := dimFor(pixH)

	useRect := !opts.MipMapping && !opts.ForcePowerOfTwo && !opts.Compressed &&
		dev.Profile().SupportsRectangleTextures()

	var (
		base      device.NativeTexture
		err       error
		mipLevels = 1
	)
	switch {
	case useRect:
		base, err = dev.CreateTexture(reqW, reqH, opts.Format, opts.RenderTarget)
	case opts.MipMapping:
		potW := device.NextPowerOfTwo(reqW)
		potH := device.NextPowerOfTwo(reqH)
		mipLevels = device.FullMipCount(potW, potH)
		base, err = device.CreateMipmapped(dev, potW, potH, opts.Format, opts.RenderTarget, true, mipLevels)
	default:
		base, err = dev.CreatePOTTexture(
			device.NextPowerOfTwo(reqW), device.NextPowerOfTwo(reqH),
			opts.Format, opts.RenderTarget)
	}
	if err != nil {
		return nil, err
	}

	c := newConcrete(f.ctx, base, concreteConfig{
		format:       opts.Format,
		renderTarget: opts.RenderTarget,
		mipMapping:   opts.MipMapping,
		mipLevels:    mipLevels,
		pma:          opts.PremultipliedAlpha,
		scale:        scale,
	})
	c.SetOnRestore(ClearRestore{})

	if !almostEqual(float64(base.Width()), pixW) || !almostEqual(float64(base.Height()), pixH) {
		blit.Logger().Debug("texture padded",
			"requested", fmt.Sprintf("%gx%g", pixW, pixH),
			"allocated", fmt.Sprintf("%dx%d", base.Width(), base.Height()))
		return FromTexture(c, &blit.Rect{W: width, H: height}, nil, false, 1), nil
	}
	return c, nil
}

// FromSource builds a texture from any recognized source kind: a pixel
// buffer (*blit.Pixmap or image.Image), compressed-container bytes
// ([]byte), or an embedded-asset descriptor (AssetSource). Unrecognized
// inputs fail with ErrUnsupportedSource.
func (f *Factory) FromSource(src any, opts Options) (Texture, error) {
	switch s := src.(type) {
	case *blit.Pixmap:
		return f.FromPixels(s, opts)
	case image.Image:
		return f.FromPixels(blit.PixmapFromImage(s), opts)
	case []byte:
		return f.FromContainer(s, opts)
	case AssetSource:
		return f.FromAsset(s, opts)
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedSource, src)
	}
}

// FromPixels allocates a texture sized to the pixel buffer (divided by
// scale), uploads its content synchronously, and installs a PixelsRestore
// retaining the same buffer. The caller must not release or mutate the
// buffer for the texture's lifetime unless it substitutes another restore
// strategy.
func (f *Factory) FromPixels(pix *blit.Pixmap, opts Options) (Texture, error) {
	tex, root, err := f.emptyForPixels(pix, opts)
	if err != nil {
		return nil, err
	}
	if err := root.UploadPixmap(pix); err != nil {
		return nil, err
	}
	root.SetOnRestore(PixelsRestore{Pix: pix})
	return tex, nil
}

// FromPixelsAsync is FromPixels with the transfer scheduled on the
// device's upload queue. The returned Pending completes when the content
// is resident; the texture must not be submitted for rendering before
// then (its root reports Ready() == false, and framed bounds aside, a
// premature draw samples undefined content).
func (f *Factory) FromPixelsAsync(pix *blit.Pixmap, opts Options) (*Pending, error) {
	tex, root, err := f.emptyForPixels(pix, opts)
	if err != nil {
		return nil, err
	}
	root.SetOnRestore(PixelsRestore{Pix: pix})
	p, err := root.UploadPixmapAsync(pix)
	if err != nil {
		return nil, err
	}
	p.tex = tex
	return p, nil
}

func (f *Factory) emptyForPixels(pix *blit.Pixmap, opts Options) (Texture, *Concrete, error) {
	scale := f.resolveScale(opts.Scale)
	opts.Scale = scale
	opts.PremultipliedAlpha = pix.Premultiplied()
	tex, err := f.Empty(float64(pix.Width())/scale, float64(pix.Height())/scale, opts)
	if err != nil {
		return nil, nil, err
	}
	return tex, tex.Root(), nil
}

// FromContainer decodes compressed-container bytes through the registered
// decoder: header metadata sizes the allocation, every requested mip
// level is decoded into it, and a ContainerRestore retains the bytes.
// Containers carry straight alpha unless opts says otherwise; set
// opts.PremultipliedAlpha accordingly.
func (f *Factory) FromContainer(data []byte, opts Options) (Texture, error) {
	c, _, err := f.emptyForContainer(data, opts)
	if err != nil {
		return nil, err
	}
	if err := c.UploadContainer(data, opts.MipMapping); err != nil {
		return nil, err
	}
	c.SetOnRestore(ContainerRestore{Data: data, MipMapped: opts.MipMapping})
	return c, nil
}

// FromContainerAsync is FromContainer with decoding scheduled on the
// device's upload queue.
func (f *Factory) FromContainerAsync(data []byte, opts Options) (*Pending, error) {
	c, _, err := f.emptyForContainer(data, opts)
	if err != nil {
		return nil, err
	}
	c.SetOnRestore(ContainerRestore{Data: data, MipMapped: opts.MipMapping})
	return c.scheduleAsync(func() error {
		return c.UploadContainer(data, opts.MipMapping)
	})
}

func (f *Factory) emptyForContainer(data []byte, opts Options) (*Concrete, container.Header, error) {
	dev := f.ctx.Device()
	if dev == nil {
		return nil, container.Header{}, ErrNoDeviceContext
	}
	_, hdr, err := container.Probe(data)
	if err != nil {
		return nil, container.Header{}, err
	}

	pot := device.IsPowerOfTwo(hdr.Width) && device.IsPowerOfTwo(hdr.Height)
	mipMapping := opts.MipMapping && hdr.MipCount > 1
	mipLevels := 1
	if mipMapping {
		mipLevels = hdr.MipCount
	}

	var base device.NativeTexture
	switch {
	case mipMapping:
		base, err = device.CreateMipmapped(dev, hdr.Width, hdr.Height, hdr.Format, false, pot, mipLevels)
	case pot:
		base, err = dev.CreatePOTTexture(hdr.Width, hdr.Height, hdr.Format, false)
	default:
		base, err = dev.CreateTexture(hdr.Width, hdr.Height, hdr.Format, false)
	}
	if err != nil {
		return nil, container.Header{}, err
	}

	c := newConcrete(f.ctx, base, concreteConfig{
		format:     hdr.Format,
		mipMapping: mipMapping,
		mipLevels:  mipLevels,
		pma:        opts.PremultipliedAlpha,
		scale:      f.resolveScale(opts.Scale),
	})
	return c, hdr, nil
}

// FromAsset instantiates an embedded-asset descriptor once to inspect its
// concrete kind (pixel buffer or container bytes), builds the texture via
// the matching path, and installs an AssetRestore that re-instantiates
// the descriptor fresh on every device restore. Compared to FromPixels
// this retains only the descriptor between losses, not decoded pixels.
func (f *Factory) FromAsset(asset AssetSource, opts Options) (Texture, error) {
	obj, err := asset.Load()
	if err != nil {
		return nil, fmt.Errorf("texture: asset instantiation failed: %w", err)
	}

	var tex Texture
	switch src := obj.(type) {
	case *blit.Pixmap:
		tex, err = f.FromPixels(src, opts)
	case image.Image:
		tex, err = f.FromPixels(blit.PixmapFromImage(src), opts)
	case []byte:
		tex, err = f.FromContainer(src, opts)
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedAsset, obj)
	}
	if err != nil {
		return nil, err
	}
	tex.Root().SetOnRestore(AssetRestore{Asset: asset})
	return tex, nil
}

// FromColor allocates a texture filled with a flat color; the restore
// strategy re-applies the same fill.
func (f *Factory) FromColor(width, height float64, col blit.RGBA, opts Options) (Texture, error) {
	tex, err := f.Empty(width, height, opts)
	if err != nil {
		return nil, err
	}
	root := tex.Root()
	if err := root.Clear(col); err != nil {
		return nil, err
	}
	root.SetOnRestore(FillRestore{Color: col})
	return tex, nil
}

// resolveScale substitutes the context's content scale for unspecified
// values.
func (f *Factory) resolveScale(scale float64) float64 {
	if scale <= 0 {
		return f.ctx.ContentScaleFactor()
	}
	return scale
}

// dimFor converts a possibly fractional pixel dimension to the allocation
// dimension, absorbing float rounding below the epsilon.
func dimFor(pix float64) int {
	d := int(math.Ceil(pix - epsAbsolute))
	if d < 1 {
		d = 1
	}
	return d
}
