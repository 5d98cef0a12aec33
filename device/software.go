// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package device

import (
	"fmt"
	"sync"

	"github.com/gogpu/blit"
	"github.com/gogpu/gputypes"
)

// SoftDevice is a CPU-backed Device. It supports software rendering
// workflows, headless operation, and tests: textures are plain pixel
// buffers with readback, asynchronous uploads run through a deterministic
// queue drained by RunPending, and device loss is simulated by dropping
// the device from its Context.
type SoftDevice struct {
	profile Profile
	video   bool

	mu      sync.Mutex
	pending []softJob
}

type softJob struct {
	run  func() error
	done func(error)
}

// SoftOption configures a SoftDevice during creation.
type SoftOption func(*SoftDevice)

// WithVideoTextures enables the video texture path.
func WithVideoTextures() SoftOption {
	return func(d *SoftDevice) { d.video = true }
}

// NewSoftDevice creates a CPU-backed device with the given profile.
func NewSoftDevice(profile Profile, opts ...SoftOption) *SoftDevice {
	d := &SoftDevice{profile: profile}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Profile returns the configured capability tier.
func (d *SoftDevice) Profile() Profile { return d.profile }

// SupportsVideoTextures reports whether WithVideoTextures was set.
func (d *SoftDevice) SupportsVideoTextures() bool { return d.video }

// CreateTexture allocates a size-exact pixel buffer.
func (d *SoftDevice) CreateTexture(width, height int, format gputypes.TextureFormat, renderTarget bool) (NativeTexture, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidTextureSize, width, height)
	}
	return newSoftTexture(width, height, format, false, renderTarget), nil
}

// CreatePOTTexture allocates a power-of-two-addressed pixel buffer.
func (d *SoftDevice) CreatePOTTexture(width, height int, format gputypes.TextureFormat, renderTarget bool) (NativeTexture, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidTextureSize, width, height)
	}
	if !IsPowerOfTwo(width) || !IsPowerOfTwo(height) {
		return nil, fmt.Errorf("%w: %dx%d", ErrNotPowerOfTwo, width, height)
	}
	return newSoftTexture(width, height, format, true, renderTarget), nil
}

// CreateVideoTexture allocates a zero-sized texture that grows when the
// video attachment delivers its first frame.
func (d *SoftDevice) CreateVideoTexture() (NativeTexture, error) {
	if !d.video {
		return nil, ErrVideoUnsupported
	}
	t := newSoftTexture(0, 0, gputypes.TextureFormatRGBA8Unorm, false, false)
	t.resizable = true
	return t, nil
}

// ScheduleUpload queues a transfer. The queue is drained by RunPending;
// CancelPending fails every queued transfer instead. This mirrors a real
// device's transfer queue while keeping tests deterministic.
func (d *SoftDevice) ScheduleUpload(run func() error, done func(error)) {
	d.mu.Lock()
	d.pending = append(d.pending, softJob{run: run, done: done})
	d.mu.Unlock()
}

// RunPending executes every queued asynchronous upload and invokes its
// completion. Returns the number of transfers run.
func (d *SoftDevice) RunPending() int {
	d.mu.Lock()
	jobs := d.pending
	d.pending = nil
	d.mu.Unlock()

	for _, j := range jobs {
		err := j.run()
		if j.done != nil {
			j.done(err)
		}
	}
	return len(jobs)
}

// CancelPending fails every queued transfer with err without touching the
// destination textures. Called by Context.LoseDevice.
func (d *SoftDevice) CancelPending(err error) {
	d.mu.Lock()
	jobs := d.pending
	d.pending = nil
	d.mu.Unlock()

	for _, j := range jobs {
		if j.done != nil {
			j.done(err)
		}
	}
}

// SoftTexture is the CPU-backed NativeTexture. Level 0 is always present;
// further mip levels appear as they are uploaded.
type SoftTexture struct {
	format       gputypes.TextureFormat
	pot          bool
	renderTarget bool
	resizable    bool
	destroyed    bool
	levels       []*blit.Pixmap
}

func newSoftTexture(width, height int, format gputypes.TextureFormat, pot, renderTarget bool) *SoftTexture {
	return &SoftTexture{
		format:       format,
		pot:          pot,
		renderTarget: renderTarget,
		levels:       []*blit.Pixmap{blit.NewPixmap(width, height)},
	}
}

// Width returns the allocated width in pixels.
func (t *SoftTexture) Width() int { return t.levels[0].Width() }

// Height returns the allocated height in pixels.
func (t *SoftTexture) Height() int { return t.levels[0].Height() }

// Format returns the pixel format.
func (t *SoftTexture) Format() gputypes.TextureFormat { return t.format }

// PowerOfTwo reports the addressing mode chosen at allocation.
func (t *SoftTexture) PowerOfTwo() bool { return t.pot }

// RenderTarget reports whether the allocation was optimized for rendering.
func (t *SoftTexture) RenderTarget() bool { return t.renderTarget }

// Resize grows or shrinks the texture. Only video textures are resizable;
// they start at 0x0 until the attachment delivers dimensions.
func (t *SoftTexture) Resize(width, height int) error {
	if t.destroyed {
		return ErrTextureDestroyed
	}
	if !t.resizable {
		return fmt.Errorf("%w: texture is not resizable", ErrInvalidTextureSize)
	}
	t.levels = []*blit.Pixmap{blit.NewPixmap(width, height)}
	return nil
}

// Upload copies pixel content into the given mip level at the top-left
// corner. The source must fit within the level's dimensions.
func (t *SoftTexture) Upload(pix *blit.Pixmap, mipLevel int) error {
	if t.destroyed {
		return ErrTextureDestroyed
	}
	lw, lh := mipDims(t.Width(), t.Height(), mipLevel)
	if pix.Width() > lw || pix.Height() > lh {
		return fmt.Errorf("%w: mip %d is %dx%d, source is %dx%d",
			ErrInvalidTextureSize, mipLevel, lw, lh, pix.Width(), pix.Height())
	}
	for len(t.levels) <= mipLevel {
		w, h := mipDims(t.Width(), t.Height(), len(t.levels))
		t.levels = append(t.levels, blit.NewPixmap(w, h))
	}
	dst := t.levels[mipLevel]
	for y := 0; y < pix.Height(); y++ {
		srcRow := pix.Bytes()[y*pix.Width()*4 : (y+1)*pix.Width()*4]
		dstOff := (y*dst.Width() + 0) * 4
		copy(dst.Bytes()[dstOff:dstOff+len(srcRow)], srcRow)
	}
	dst.SetPremultiplied(pix.Premultiplied())
	return nil
}

// Clear fills every allocated mip level with a flat color.
func (t *SoftTexture) Clear(c blit.RGBA) error {
	if t.destroyed {
		return ErrTextureDestroyed
	}
	for _, lv := range t.levels {
		lv.Fill(c)
	}
	return nil
}

// Destroy releases the pixel buffers.
func (t *SoftTexture) Destroy() {
	t.destroyed = true
	t.levels = []*blit.Pixmap{blit.NewPixmap(0, 0)}
}

// Destroyed reports whether Destroy has been called.
func (t *SoftTexture) Destroyed() bool { return t.destroyed }

// Pixels returns the level-0 pixel buffer. The returned pixmap shares
// memory with the texture; treat it as read-only.
func (t *SoftTexture) Pixels() *blit.Pixmap { return t.levels[0] }

// Hash returns a content hash of the level-0 pixels.
func (t *SoftTexture) Hash() uint64 { return t.levels[0].Hash() }

// mipDims returns the dimensions of the given mip level.
func mipDims(w, h, level int) (int, int) {
	for i := 0; i < level; i++ {
		w >>= 1
		h >>= 1
	}
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return w, h
}
