// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package device

import (
	"errors"

	"github.com/gogpu/blit"
	"github.com/gogpu/gputypes"
)

// Allocator errors.
var (
	// ErrInvalidTextureSize is returned when texture dimensions are not positive.
	ErrInvalidTextureSize = errors.New("device: invalid texture size")

	// ErrNotPowerOfTwo is returned when CreatePOTTexture receives dimensions
	// that are not powers of two.
	ErrNotPowerOfTwo = errors.New("device: dimensions must be powers of two")

	// ErrTextureDestroyed is returned when operating on a destroyed texture.
	ErrTextureDestroyed = errors.New("device: texture has been destroyed")

	// ErrVideoUnsupported is returned by allocators without video texture
	// support.
	ErrVideoUnsupported = errors.New("device: video textures not supported")

	// ErrUnsupportedFormat is returned when an allocator cannot represent
	// the requested pixel format.
	ErrUnsupportedFormat = errors.New("device: unsupported texture format")

	// ErrDeviceLost is reported to pending upload completions when the
	// device is invalidated mid-transfer.
	ErrDeviceLost = errors.New("device: device lost")
)

// Profile identifies the capability tier of a rendering device.
type Profile int

const (
	// ProfileBaselineConstrained is the most limited tier: power-of-two
	// texture addressing only.
	ProfileBaselineConstrained Profile = iota

	// ProfileBaseline supports size-exact ("rectangle") textures.
	ProfileBaseline

	// ProfileStandard adds larger texture limits.
	ProfileStandard

	// ProfileExtended is the least constrained tier.
	ProfileExtended
)

// SupportsRectangleTextures reports whether the profile can address
// textures at their exact pixel dimensions, without power-of-two padding.
func (p Profile) SupportsRectangleTextures() bool {
	return p > ProfileBaselineConstrained
}

// String returns the profile name.
func (p Profile) String() string {
	switch p {
	case ProfileBaselineConstrained:
		return "baselineConstrained"
	case ProfileBaseline:
		return "baseline"
	case ProfileStandard:
		return "standard"
	case ProfileExtended:
		return "extended"
	default:
		return "unknown"
	}
}

// Device allocates native texture handles. Implementations wrap a real GPU
// device (device/native, NewProviderDevice) or a CPU buffer (SoftDevice).
//
// All handle mutation is expected to happen on a single logical rendering
// goroutine; Device implementations do not serialize texture operations.
type Device interface {
	// CreateTexture allocates a size-exact ("rectangle") texture addressed
	// at exactly width x height pixels.
	CreateTexture(width, height int, format gputypes.TextureFormat, renderTarget bool) (NativeTexture, error)

	// CreatePOTTexture allocates a power-of-two-addressed texture. Both
	// dimensions must already be powers of two; callers round up via
	// NextPowerOfTwo.
	CreatePOTTexture(width, height int, format gputypes.TextureFormat, renderTarget bool) (NativeTexture, error)

	// CreateVideoTexture allocates a texture whose content is attached by
	// the platform's video pipeline. Returns ErrVideoUnsupported when the
	// device has no video path.
	CreateVideoTexture() (NativeTexture, error)

	// SupportsVideoTextures reports whether CreateVideoTexture can succeed.
	SupportsVideoTextures() bool

	// Profile returns the device capability tier.
	Profile() Profile
}

// NativeTexture is the opaque device-side texture handle. Exactly one
// concrete texture owns each handle; views share it by reference.
type NativeTexture interface {
	// Width returns the allocated width in pixels.
	Width() int

	// Height returns the allocated height in pixels.
	Height() int

	// Format returns the pixel format the handle was allocated with.
	Format() gputypes.TextureFormat

	// PowerOfTwo reports whether the handle uses power-of-two addressing.
	PowerOfTwo() bool

	// Upload transfers pixel content into the given mip level. The pixmap
	// may be smaller than the allocation (power-of-two padding); content is
	// placed at the top-left corner.
	Upload(pix *blit.Pixmap, mipLevel int) error

	// Clear fills the handle with a flat color.
	Clear(c blit.RGBA) error

	// Destroy releases the device-side resource. Calling any other method
	// afterwards returns ErrTextureDestroyed.
	Destroy()
}

// AsyncUploader is implemented by devices whose transfer queue can run
// uploads asynchronously. run performs the transfer; done carries its
// result. done is invoked with ErrDeviceLost (and run skipped) if the
// device is invalidated before the transfer is executed.
type AsyncUploader interface {
	ScheduleUpload(run func() error, done func(error))
}

// MipAllocator is implemented by devices that must size a texture's mip
// chain at allocation time (GPU backends validate uploads against the
// allocated level count). Devices that accept writes to any derived
// level of a plain allocation, such as SoftDevice, do not need it.
type MipAllocator interface {
	// CreateMipTexture allocates a texture carrying levels mip levels.
	// pot selects power-of-two addressing, with the same dimension rules
	// as CreatePOTTexture.
	CreateMipTexture(width, height int, format gputypes.TextureFormat, renderTarget, pot bool, levels int) (NativeTexture, error)
}

// CreateMipmapped allocates a texture with the given mip chain length on
// dev, routing through MipAllocator when the device sizes chains up
// front and falling back to the plain creation path otherwise.
func CreateMipmapped(dev Device, width, height int, format gputypes.TextureFormat, renderTarget, pot bool, levels int) (NativeTexture, error) {
	if ma, ok := dev.(MipAllocator); ok {
		return ma.CreateMipTexture(width, height, format, renderTarget, pot, levels)
	}
	if pot {
		return dev.CreatePOTTexture(width, height, format, renderTarget)
	}
	return dev.CreateTexture(width, height, format, renderTarget)
}

// FullMipCount returns the length of a complete mip chain for the given
// base dimensions: level 0 plus every halving down to 1x1.
func FullMipCount(width, height int) int {
	n := 1
	for width > 1 || height > 1 {
		width >>= 1
		height >>= 1
		n++
	}
	return n
}

// Readback is implemented by native textures that can return their pixel
// content, such as SoftTexture. Used to verify restore behavior.
type Readback interface {
	Pixels() *blit.Pixmap
}

// IsPowerOfTwo reports whether n is a positive power of two.
func IsPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}

// NextPowerOfTwo returns the smallest power of two >= n.
func NextPowerOfTwo(n int) int {
	if n < 1 {
		return 1
	}
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
