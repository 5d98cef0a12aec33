// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package native provides a GPU-backed texture allocator using gogpu/wgpu.
//
// The host application creates the hal device and queue (via wgpu or
// gogpu) and hands both to New; blit does not own device creation. Pixel
// uploads go through the queue's WriteTexture path.
//
// Video textures are not available on this allocator; they require a
// platform video pipeline that wgpu does not expose.
package native
