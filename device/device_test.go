// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package device

import (
	"errors"
	"testing"

	"github.com/gogpu/blit"
	"github.com/gogpu/gputypes"
)

func TestIsPowerOfTwo(t *testing.T) {
	tests := []struct {
		n    int
		want bool
	}{
		{0, false},
		{-4, false},
		{1, true},
		{2, true},
		{3, false},
		{64, true},
		{96, false},
		{1024, true},
	}
	for _, tt := range tests {
		if got := IsPowerOfTwo(tt.n); got != tt.want {
			t.Errorf("IsPowerOfTwo(%d) = %v, want %v", tt.n, got, tt.want)
		}
	}
}

func TestNextPowerOfTwo(t *testing.T) {
	tests := []struct {
		n, want int
	}{
		{-5, 1},
		{0, 1},
		{1, 1},
		{2, 2},
		{3, 4},
		{100, 128},
		{128, 128},
		{129, 256},
	}
	for _, tt := range tests {
		if got := NextPowerOfTwo(tt.n); got != tt.want {
			t.Errorf("NextPowerOfTwo(%d) = %d, want %d", tt.n, got, tt.want)
		}
	}
}

func TestProfileSupportsRectangleTextures(t *testing.T) {
	if ProfileBaselineConstrained.SupportsRectangleTextures() {
		t.Error("constrained profile should not support rectangle textures")
	}
	for _, p := range []Profile{ProfileBaseline, ProfileStandard, ProfileExtended} {
		if !p.SupportsRectangleTextures() {
			t.Errorf("%v should support rectangle textures", p)
		}
	}
}

func TestFullMipCount(t *testing.T) {
	tests := []struct {
		w, h, want int
	}{
		{1, 1, 1},
		{2, 2, 2},
		{4, 4, 3},
		{64, 32, 7},
		{128, 64, 8},
		{100, 50, 7},
		{256, 1, 9},
	}
	for _, tt := range tests {
		if got := FullMipCount(tt.w, tt.h); got != tt.want {
			t.Errorf("FullMipCount(%d, %d) = %d, want %d", tt.w, tt.h, got, tt.want)
		}
	}
}

// mipSoftDevice sizes mip chains at allocation time on top of SoftDevice.
type mipSoftDevice struct {
	*SoftDevice
	chains []int
}

func (d *mipSoftDevice) CreateMipTexture(width, height int, format gputypes.TextureFormat, renderTarget, pot bool, levels int) (NativeTexture, error) {
	d.chains = append(d.chains, levels)
	if pot {
		return d.SoftDevice.CreatePOTTexture(width, height, format, renderTarget)
	}
	return d.SoftDevice.CreateTexture(width, height, format, renderTarget)
}

func TestCreateMipmappedRoutesThroughMipAllocator(t *testing.T) {
	d := &mipSoftDevice{SoftDevice: NewSoftDevice(ProfileStandard)}
	tex, err := CreateMipmapped(d, 128, 64, gputypes.TextureFormatRGBA8Unorm, false, true, 8)
	if err != nil {
		t.Fatalf("CreateMipmapped: %v", err)
	}
	if !tex.PowerOfTwo() {
		t.Error("POT request lost its addressing mode")
	}
	if len(d.chains) != 1 || d.chains[0] != 8 {
		t.Errorf("mip allocation calls = %v, want [8]", d.chains)
	}
}

func TestCreateMipmappedFallsBackToPlainPath(t *testing.T) {
	d := NewSoftDevice(ProfileStandard)

	pot, err := CreateMipmapped(d, 64, 32, gputypes.TextureFormatRGBA8Unorm, false, true, 7)
	if err != nil {
		t.Fatalf("CreateMipmapped (POT): %v", err)
	}
	if !pot.PowerOfTwo() {
		t.Error("fallback lost power-of-two addressing")
	}

	rect, err := CreateMipmapped(d, 100, 50, gputypes.TextureFormatRGBA8Unorm, false, false, 7)
	if err != nil {
		t.Fatalf("CreateMipmapped (rectangle): %v", err)
	}
	if rect.PowerOfTwo() {
		t.Error("rectangle fallback reported power-of-two addressing")
	}
}

func TestSoftDeviceCreateTexture(t *testing.T) {
	d := NewSoftDevice(ProfileStandard)

	tex, err := d.CreateTexture(100, 50, gputypes.TextureFormatRGBA8Unorm, false)
	if err != nil {
		t.Fatalf("CreateTexture: %v", err)
	}
	if tex.Width() != 100 || tex.Height() != 50 {
		t.Errorf("got %dx%d, want 100x50", tex.Width(), tex.Height())
	}
	if tex.PowerOfTwo() {
		t.Error("rectangle texture reported power-of-two addressing")
	}

	if _, err := d.CreateTexture(0, 50, gputypes.TextureFormatRGBA8Unorm, false); !errors.Is(err, ErrInvalidTextureSize) {
		t.Errorf("zero width: got %v, want ErrInvalidTextureSize", err)
	}
}

func TestSoftDeviceCreatePOTTexture(t *testing.T) {
	d := NewSoftDevice(ProfileStandard)

	tex, err := d.CreatePOTTexture(128, 64, gputypes.TextureFormatRGBA8Unorm, false)
	if err != nil {
		t.Fatalf("CreatePOTTexture: %v", err)
	}
	if !tex.PowerOfTwo() {
		t.Error("POT texture did not report power-of-two addressing")
	}

	if _, err := d.CreatePOTTexture(100, 64, gputypes.TextureFormatRGBA8Unorm, false); !errors.Is(err, ErrNotPowerOfTwo) {
		t.Errorf("non-POT dims: got %v, want ErrNotPowerOfTwo", err)
	}
}

func TestSoftDeviceVideoTexture(t *testing.T) {
	plain := NewSoftDevice(ProfileStandard)
	if plain.SupportsVideoTextures() {
		t.Error("video support should be off by default")
	}
	if _, err := plain.CreateVideoTexture(); !errors.Is(err, ErrVideoUnsupported) {
		t.Errorf("got %v, want ErrVideoUnsupported", err)
	}

	d := NewSoftDevice(ProfileStandard, WithVideoTextures())
	tex, err := d.CreateVideoTexture()
	if err != nil {
		t.Fatalf("CreateVideoTexture: %v", err)
	}
	if tex.Width() != 0 || tex.Height() != 0 {
		t.Errorf("video texture starts at %dx%d, want 0x0", tex.Width(), tex.Height())
	}
	st := tex.(*SoftTexture)
	if err := st.Resize(640, 480); err != nil {
		t.Fatalf("Resize: %v", err)
	}
	if tex.Width() != 640 || tex.Height() != 480 {
		t.Errorf("after resize: %dx%d", tex.Width(), tex.Height())
	}
}

func TestSoftTextureNotResizable(t *testing.T) {
	d := NewSoftDevice(ProfileStandard)
	tex, _ := d.CreateTexture(10, 10, gputypes.TextureFormatRGBA8Unorm, false)
	if err := tex.(*SoftTexture).Resize(20, 20); err == nil {
		t.Error("expected error resizing a non-video texture")
	}
}

func TestSoftTextureUpload(t *testing.T) {
	d := NewSoftDevice(ProfileStandard)
	tex, _ := d.CreatePOTTexture(8, 8, gputypes.TextureFormatRGBA8Unorm, false)

	// Smaller source lands at the top-left corner (padding case).
	pix := blit.NewPixmap(4, 4)
	pix.Fill(blit.RGB(1, 0, 0))
	if err := tex.Upload(pix, 0); err != nil {
		t.Fatalf("Upload: %v", err)
	}
	got := tex.(*SoftTexture).Pixels()
	if c := got.Pixel(0, 0); c.R != 1 {
		t.Errorf("corner pixel = %+v, want red", c)
	}
	if c := got.Pixel(5, 5); c != blit.Transparent {
		t.Errorf("padding pixel = %+v, want transparent", c)
	}

	// Oversized source is rejected.
	big := blit.NewPixmap(16, 16)
	if err := tex.Upload(big, 0); !errors.Is(err, ErrInvalidTextureSize) {
		t.Errorf("oversized upload: got %v, want ErrInvalidTextureSize", err)
	}
}

func TestSoftTextureMipLevels(t *testing.T) {
	d := NewSoftDevice(ProfileStandard)
	tex, _ := d.CreatePOTTexture(4, 4, gputypes.TextureFormatRGBA8Unorm, false)

	level1 := blit.NewPixmap(2, 2)
	level1.Fill(blit.White)
	if err := tex.Upload(level1, 1); err != nil {
		t.Fatalf("Upload level 1: %v", err)
	}

	// A level-sized source for the wrong level is rejected.
	if err := tex.Upload(level1, 2); !errors.Is(err, ErrInvalidTextureSize) {
		t.Errorf("2x2 source into 1x1 level: got %v, want ErrInvalidTextureSize", err)
	}
}

func TestSoftTextureClearDestroy(t *testing.T) {
	d := NewSoftDevice(ProfileStandard)
	tex, _ := d.CreateTexture(4, 4, gputypes.TextureFormatRGBA8Unorm, false)

	if err := tex.Clear(blit.RGB(0, 0, 1)); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if c := tex.(*SoftTexture).Pixels().Pixel(2, 2); c.B != 1 {
		t.Errorf("pixel after clear = %+v, want blue", c)
	}

	tex.Destroy()
	if !tex.(*SoftTexture).Destroyed() {
		t.Error("Destroyed() false after Destroy")
	}
	if err := tex.Clear(blit.Black); !errors.Is(err, ErrTextureDestroyed) {
		t.Errorf("Clear after Destroy: got %v, want ErrTextureDestroyed", err)
	}
	if err := tex.Upload(blit.NewPixmap(1, 1), 0); !errors.Is(err, ErrTextureDestroyed) {
		t.Errorf("Upload after Destroy: got %v, want ErrTextureDestroyed", err)
	}
}

func TestSoftDeviceAsyncUploads(t *testing.T) {
	d := NewSoftDevice(ProfileStandard)

	ran := 0
	var result error
	d.ScheduleUpload(
		func() error { ran++; return nil },
		func(err error) { result = err },
	)
	if ran != 0 {
		t.Fatal("upload ran before RunPending")
	}
	if n := d.RunPending(); n != 1 {
		t.Fatalf("RunPending = %d, want 1", n)
	}
	if ran != 1 || result != nil {
		t.Errorf("ran=%d result=%v", ran, result)
	}

	// Draining an empty queue is a no-op.
	if n := d.RunPending(); n != 0 {
		t.Errorf("RunPending on empty queue = %d", n)
	}
}

func TestSoftDeviceCancelPending(t *testing.T) {
	d := NewSoftDevice(ProfileStandard)

	ran := false
	var result error
	d.ScheduleUpload(
		func() error { ran = true; return nil },
		func(err error) { result = err },
	)
	d.CancelPending(ErrDeviceLost)

	if ran {
		t.Error("cancelled upload still ran")
	}
	if !errors.Is(result, ErrDeviceLost) {
		t.Errorf("completion error = %v, want ErrDeviceLost", result)
	}
	if n := d.RunPending(); n != 0 {
		t.Errorf("queue not empty after cancel: %d", n)
	}
}
