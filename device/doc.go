// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package device abstracts the GPU device that backs blit textures.
//
// blit never creates a device; the host application owns it and hands it
// to a [Context], the session object that tracks the current device, the
// content scale factor, and every live concrete texture that must be
// restored when the device is lost and recreated.
//
// Three allocator implementations ship with blit:
//   - [SoftDevice]: CPU-backed, with readback and deterministic async
//     uploads; the default for tests and headless use.
//   - device/native: allocates hal textures via gogpu/wgpu.
//   - [NewProviderDevice]: adapts a host exposing gpucontext texture
//     creation (e.g. a gogpu application).
package device
