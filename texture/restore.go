// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package texture

import (
	"fmt"
	"image"

	"github.com/gogpu/blit"
)

// RestoreKind tags a recreation strategy, making recovery behavior
// auditable without executing it.
type RestoreKind int

const (
	// RestoreClear fills the texture with transparent black.
	RestoreClear RestoreKind = iota

	// RestoreFill re-applies a flat color.
	RestoreFill

	// RestorePixels re-uploads a retained pixel buffer.
	RestorePixels

	// RestoreContainer re-decodes retained container bytes.
	RestoreContainer

	// RestoreAsset re-instantiates an embedded asset descriptor. Unlike
	// RestorePixels this retains only the descriptor, not decoded pixels.
	RestoreAsset

	// RestoreFunc runs a caller-supplied procedure.
	RestoreFunc
)

// String returns the kind name.
func (k RestoreKind) String() string {
	switch k {
	case RestoreClear:
		return "clear"
	case RestoreFill:
		return "fill"
	case RestorePixels:
		return "pixels"
	case RestoreContainer:
		return "container"
	case RestoreAsset:
		return "asset"
	case RestoreFunc:
		return "func"
	default:
		return "unknown"
	}
}

// RestoreStrategy describes how a Concrete regenerates its content after
// the device is recreated. The handle itself is already reallocated by
// then; a strategy only re-supplies content.
type RestoreStrategy interface {
	// Kind identifies the strategy for auditing and tests.
	Kind() RestoreKind

	apply(c *Concrete) error
}

// ClearRestore restores to transparent black. The default for every
// texture built by the factory, so each concrete texture is restorable
// even without content semantics.
type ClearRestore struct{}

// Kind returns RestoreClear.
func (ClearRestore) Kind() RestoreKind { return RestoreClear }

func (ClearRestore) apply(c *Concrete) error { return c.Clear(blit.Transparent) }

// FillRestore restores to a flat color.
type FillRestore struct {
	Color blit.RGBA
}

// Kind returns RestoreFill.
func (FillRestore) Kind() RestoreKind { return RestoreFill }

func (s FillRestore) apply(c *Concrete) error { return c.Clear(s.Color) }

// PixelsRestore re-uploads a retained pixel buffer. The buffer is held by
// reference for the texture's lifetime: callers must not release or
// mutate it unless they substitute another strategy.
type PixelsRestore struct {
	Pix *blit.Pixmap
}

// Kind returns RestorePixels.
func (PixelsRestore) Kind() RestoreKind { return RestorePixels }

func (s PixelsRestore) apply(c *Concrete) error { return c.UploadPixmap(s.Pix) }

// ContainerRestore re-decodes retained container bytes.
type ContainerRestore struct {
	Data      []byte
	MipMapped bool
}

// Kind returns RestoreContainer.
func (ContainerRestore) Kind() RestoreKind { return RestoreContainer }

func (s ContainerRestore) apply(c *Concrete) error { return c.UploadContainer(s.Data, s.MipMapped) }

// AssetRestore re-instantiates an embedded asset descriptor fresh on
// every restore, so nothing but the descriptor is retained between
// losses.
type AssetRestore struct {
	Asset AssetSource
}

// Kind returns RestoreAsset.
func (AssetRestore) Kind() RestoreKind { return RestoreAsset }

func (s AssetRestore) apply(c *Concrete) error {
	obj, err := s.Asset.Load()
	if err != nil {
		return err
	}
	switch src := obj.(type) {
	case *blit.Pixmap:
		return c.UploadPixmap(src)
	case image.Image:
		return c.UploadPixmap(blit.PixmapFromImage(src))
	case []byte:
		return c.UploadContainer(src, c.MipMapping())
	default:
		return fmt.Errorf("%w: %T", ErrUnsupportedAsset, obj)
	}
}

// FuncRestore runs a caller-supplied restore procedure. Prefer the value
// strategies above where possible; they keep recovery auditable.
type FuncRestore struct {
	Func func(c *Concrete) error
}

// Kind returns RestoreFunc.
func (FuncRestore) Kind() RestoreKind { return RestoreFunc }

func (s FuncRestore) apply(c *Concrete) error { return s.Func(c) }

// AssetSource describes an embedded asset that can be instantiated on
// demand. Load returns a *blit.Pixmap, an image.Image, or container
// bytes ([]byte); anything else fails with ErrUnsupportedAsset.
type AssetSource interface {
	Load() (any, error)
}

// AssetFunc adapts a function to the AssetSource interface.
type AssetFunc func() (any, error)

// Load implements AssetSource.
func (f AssetFunc) Load() (any, error) { return f() }
