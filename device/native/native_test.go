// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package native

import (
	"errors"
	"testing"

	"github.com/gogpu/blit"
	"github.com/gogpu/blit/device"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

var _ device.MipAllocator = (*Device)(nil)

// stubHALTexture stands in for a backend texture handle.
type stubHALTexture struct{ hal.Texture }

// recordingHALDevice captures texture descriptors. Only the methods the
// allocator touches are implemented; everything else panics through the
// embedded nil interface.
type recordingHALDevice struct {
	hal.Device
	descs     []*hal.TextureDescriptor
	destroyed int
}

func (d *recordingHALDevice) CreateTexture(desc *hal.TextureDescriptor) (hal.Texture, error) {
	d.descs = append(d.descs, desc)
	return stubHALTexture{}, nil
}

func (d *recordingHALDevice) DestroyTexture(hal.Texture) { d.destroyed++ }

// recordingHALQueue captures WriteTexture calls by mip level.
type recordingHALQueue struct {
	hal.Queue
	writes []uint32
	err    error
}

func (q *recordingHALQueue) WriteTexture(dst *hal.ImageCopyTexture, data []byte, layout *hal.ImageDataLayout, size *hal.Extent3D) error {
	q.writes = append(q.writes, dst.MipLevel)
	return q.err
}

func newTestDevice(t *testing.T) (*Device, *recordingHALDevice, *recordingHALQueue) {
	t.Helper()
	hd := &recordingHALDevice{}
	hq := &recordingHALQueue{}
	d, err := New(hd, hq, device.ProfileStandard)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return d, hd, hq
}

func TestNewNilDevice(t *testing.T) {
	if _, err := New(nil, nil, device.ProfileStandard); !errors.Is(err, ErrNilDevice) {
		t.Errorf("got %v, want ErrNilDevice", err)
	}
}

func TestCreateTextureDescriptor(t *testing.T) {
	d, hd, _ := newTestDevice(t)

	if _, err := d.CreateTexture(100, 50, gputypes.TextureFormatRGBA8Unorm, false); err != nil {
		t.Fatalf("CreateTexture: %v", err)
	}
	desc := hd.descs[0]
	if desc.Size.Width != 100 || desc.Size.Height != 50 {
		t.Errorf("descriptor size %dx%d, want 100x50", desc.Size.Width, desc.Size.Height)
	}
	if desc.MipLevelCount != 1 {
		t.Errorf("MipLevelCount = %d, want 1", desc.MipLevelCount)
	}
	if desc.Usage&gputypes.TextureUsageRenderAttachment != 0 {
		t.Error("plain texture carries render attachment usage")
	}

	if _, err := d.CreateTexture(64, 64, gputypes.TextureFormatRGBA8Unorm, true); err != nil {
		t.Fatalf("CreateTexture (render target): %v", err)
	}
	if hd.descs[1].Usage&gputypes.TextureUsageRenderAttachment == 0 {
		t.Error("render target missing render attachment usage")
	}
}

func TestCreateMipTextureDescriptor(t *testing.T) {
	d, hd, _ := newTestDevice(t)

	tex, err := d.CreateMipTexture(64, 32, gputypes.TextureFormatRGBA8Unorm, false, true, 7)
	if err != nil {
		t.Fatalf("CreateMipTexture: %v", err)
	}
	if hd.descs[0].MipLevelCount != 7 {
		t.Errorf("MipLevelCount = %d, want 7", hd.descs[0].MipLevelCount)
	}
	if tex.(*Texture).MipLevels() != 7 {
		t.Errorf("MipLevels() = %d, want 7", tex.(*Texture).MipLevels())
	}
	if !tex.PowerOfTwo() {
		t.Error("POT mip texture did not report power-of-two addressing")
	}

	if _, err := d.CreateMipTexture(100, 50, gputypes.TextureFormatRGBA8Unorm, false, true, 7); !errors.Is(err, device.ErrNotPowerOfTwo) {
		t.Errorf("non-POT dims: got %v, want ErrNotPowerOfTwo", err)
	}
	if _, err := d.CreateMipTexture(64, 32, gputypes.TextureFormatRGBA8Unorm, false, true, 12); !errors.Is(err, device.ErrInvalidTextureSize) {
		t.Errorf("oversized chain: got %v, want ErrInvalidTextureSize", err)
	}
}

func TestUploadMipLevelBounds(t *testing.T) {
	d, _, hq := newTestDevice(t)
	tex, err := d.CreateMipTexture(8, 8, gputypes.TextureFormatRGBA8Unorm, false, true, 3)
	if err != nil {
		t.Fatalf("CreateMipTexture: %v", err)
	}

	if err := tex.Upload(blit.NewPixmap(2, 2), 2); err != nil {
		t.Fatalf("Upload level 2: %v", err)
	}
	if len(hq.writes) != 1 || hq.writes[0] != 2 {
		t.Errorf("queue writes = %v, want [2]", hq.writes)
	}

	if err := tex.Upload(blit.NewPixmap(1, 1), 3); err == nil {
		t.Error("expected error writing past the allocated mip chain")
	}

	// Single-level allocations only accept level 0.
	plain, _ := d.CreateTexture(4, 4, gputypes.TextureFormatRGBA8Unorm, false)
	if err := plain.Upload(blit.NewPixmap(2, 2), 1); err == nil {
		t.Error("expected error writing level 1 of a single-level texture")
	}
}

func TestUploadPropagatesQueueError(t *testing.T) {
	d, _, hq := newTestDevice(t)
	hq.err = errors.New("staging buffer allocation failed")

	tex, _ := d.CreateTexture(4, 4, gputypes.TextureFormatRGBA8Unorm, false)
	if err := tex.Upload(blit.NewPixmap(4, 4), 0); !errors.Is(err, hq.err) {
		t.Errorf("Upload = %v, want wrapped queue error", err)
	}
}

func TestDestroyReleasesHALTexture(t *testing.T) {
	d, hd, _ := newTestDevice(t)
	tex, _ := d.CreateTexture(4, 4, gputypes.TextureFormatRGBA8Unorm, false)

	tex.Destroy()
	if hd.destroyed != 1 {
		t.Errorf("hal DestroyTexture calls = %d, want 1", hd.destroyed)
	}
	if err := tex.Upload(blit.NewPixmap(1, 1), 0); !errors.Is(err, device.ErrTextureDestroyed) {
		t.Errorf("Upload after Destroy: got %v, want ErrTextureDestroyed", err)
	}
	tex.Destroy() // second call is a no-op
	if hd.destroyed != 1 {
		t.Error("Destroy released the handle twice")
	}
}

func TestConvertFormat(t *testing.T) {
	tests := []struct {
		in      gputypes.TextureFormat
		want    gputypes.TextureFormat
		wantBpp int
	}{
		{gputypes.TextureFormatRGBA8Unorm, gputypes.TextureFormatRGBA8Unorm, 4},
		{gputypes.TextureFormatBGRA8Unorm, gputypes.TextureFormatBGRA8Unorm, 4},
		{gputypes.TextureFormatR8Unorm, gputypes.TextureFormatR8Unorm, 1},
	}
	for _, tt := range tests {
		got, bpp, err := convertFormat(tt.in)
		if err != nil {
			t.Errorf("convertFormat(%v): %v", tt.in, err)
			continue
		}
		if got != tt.want || bpp != tt.wantBpp {
			t.Errorf("convertFormat(%v) = (%v, %d), want (%v, %d)", tt.in, got, bpp, tt.want, tt.wantBpp)
		}
	}

	if _, _, err := convertFormat(gputypes.TextureFormatUndefined); !errors.Is(err, device.ErrUnsupportedFormat) {
		t.Errorf("undefined format: got %v, want ErrUnsupportedFormat", err)
	}
}
