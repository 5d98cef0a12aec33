// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package texture manages the lifecycle of GPU textures for 2D sprite
// rendering: construction from heterogeneous sources, atlas-style views
// into shared allocations, and transparent content recovery after device
// loss.
//
// # Variants
//
// The [Texture] contract has two variants. A [Concrete] owns exactly one
// device handle; disposing it releases GPU memory exactly once. A [Sub] is
// a lightweight view into another texture (a cropped region, optionally
// with a trimmed frame and a quarter-turn rotation); disposing a view
// never touches device resources. Any number of views may share one root,
// which is the expected texture-atlas pattern.
//
// # Construction
//
// All construction goes through a [Factory] bound to a device.Context:
//
//	factory := texture.New(ctx)
//	tex, err := factory.FromPixels(pixmap, texture.DefaultOptions())
//
// The factory hides allocation details: when a device cannot address a
// texture at its exact size (power-of-two padding, or rounding of scaled
// dimensions), the returned texture is a view exposing exactly the
// requested logical size over a larger concrete allocation.
//
// # Recovery
//
// Every Concrete carries a recreation strategy ([RestoreStrategy]) — a
// value describing how to regenerate its content, not an arbitrary
// callback — which the device.Context replays after the host reports a
// device restoration. Textures without a strategy come back blank.
package texture
