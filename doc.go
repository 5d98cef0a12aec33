// Package blit provides the texture resource core of a 2D sprite engine
// for the GoGPU ecosystem.
//
// # Overview
//
// blit manages GPU texture lifecycles for sprite-style rendering: creating
// device-backed textures from pixel buffers, compressed containers, or
// embedded assets, carving atlas regions out of them as lightweight views,
// and restoring their content transparently after the rendering device is
// lost and recreated.
//
// # Quick Start
//
//	import (
//	    "github.com/gogpu/blit"
//	    "github.com/gogpu/blit/device"
//	    "github.com/gogpu/blit/texture"
//	)
//
//	dev := device.NewSoftDevice(device.ProfileStandard)
//	ctx := device.NewContext(dev, 2.0) // retina content scale
//	factory := texture.New(ctx)
//
//	tex, err := factory.FromPixels(pixmap, texture.DefaultOptions())
//	region := texture.FromTexture(tex, &blit.Rect{W: 32, H: 32}, nil, false, 1)
//
// # Architecture
//
// The library is organized into:
//   - Root: color, geometry (Point, Rect, Matrix), Pixmap, logging
//   - device: allocator abstraction, rendering context, software device
//   - device/native: wgpu/hal-backed allocator
//   - container: compressed-container decoder registry
//   - texture: Texture contract, Concrete/Sub variants, Factory, recovery
//
// # Coordinate System
//
// Logical units are pixels divided by the content scale factor. Texture
// coordinates are [0,1] with (0,0) at the top-left. Region and frame
// rectangles are expressed in logical units.
//
// # Device Loss
//
// blit never creates a GPU device; the host owns it and reports loss and
// restoration through device.Context. Every concrete texture carries a
// recreation strategy so content survives a lose/restore cycle without
// caller involvement.
package blit

// Version information
const (
	// Version is the current version of the library
	Version = "0.2.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 2

	// VersionPatch is the patch version
	VersionPatch = 0
)
