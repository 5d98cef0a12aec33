// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package texture

import "errors"

// Errors reported by texture construction and lifecycle operations. All
// precondition failures surface synchronously from the offending call;
// asynchronous failures surface only through Pending.Err.
var (
	// ErrNoDeviceContext is returned when an operation requires an active
	// rendering device and none exists (before creation, or while lost).
	ErrNoDeviceContext = errors.New("texture: no active device context")

	// ErrUnsupportedSource is returned by FromSource when the input matches
	// no recognized source kind.
	ErrUnsupportedSource = errors.New("texture: unsupported source kind")

	// ErrUnsupportedAsset is returned when an embedded asset instantiates
	// to neither a pixel buffer nor container bytes.
	ErrUnsupportedAsset = errors.New("texture: unsupported asset kind")

	// ErrVideoUnsupported is returned when the device has no video texture
	// path.
	ErrVideoUnsupported = errors.New("texture: video textures not supported")

	// ErrDoubleDispose is returned when Dispose is called on an already
	// disposed texture. This is a caller error; the first call released
	// the device handle.
	ErrDoubleDispose = errors.New("texture: texture already disposed")

	// ErrAsyncUpload wraps failures of asynchronous uploads, observed via
	// Pending.Err. A device loss mid-upload reports this with
	// device.ErrDeviceLost as the cause; the restore procedure supersedes
	// the cancelled transfer.
	ErrAsyncUpload = errors.New("texture: asynchronous upload failed")

	// ErrRepeatRequiresPOT is returned when enabling tiling on a texture
	// that is not power-of-two addressed.
	ErrRepeatRequiresPOT = errors.New("texture: repeat requires a power-of-two texture")
)
