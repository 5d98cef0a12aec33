// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package texture

import (
	"fmt"

	"github.com/gogpu/blit/device"
)

// VideoKind distinguishes the producers that can feed a video texture.
type VideoKind string

const (
	// VideoCamera is a live capture device.
	VideoCamera VideoKind = "camera"

	// VideoStream is a decoded media stream.
	VideoStream VideoKind = "stream"
)

// VideoSource produces frames into a device video texture. Attach begins
// delivery and calls ready exactly once, when the first frame has arrived
// and the destination has taken its dimensions, or with the error that
// prevented it.
type VideoSource interface {
	Kind() VideoKind
	Attach(dst device.NativeTexture, ready func(width, height int, err error))
}

// FromVideo allocates a video texture and attaches src to it. Video
// textures start at zero size: the returned Pending completes when the
// first frame arrives and the texture has taken the stream's dimensions.
// Devices without video support fail immediately with
// device.ErrVideoUnsupported.
//
// Video textures restore after a device loss by reallocating and
// re-attaching the same source; content before the next frame is blank.
func (f *Factory) FromVideo(src VideoSource, opts Options) (*Pending, error) {
	dev := f.ctx.Device()
	if dev == nil {
		return nil, ErrNoDeviceContext
	}
	if !dev.SupportsVideoTextures() {
		return nil, fmt.Errorf("%w: %w (%s source)", ErrVideoUnsupported, device.ErrVideoUnsupported, src.Kind())
	}
	base, err := dev.CreateVideoTexture()
	if err != nil {
		return nil, err
	}

	c := newConcrete(f.ctx, base, concreteConfig{
		format: opts.Format,
		pma:    opts.PremultipliedAlpha,
		video:  true,
		scale:  f.resolveScale(opts.Scale),
	})
	c.ready = false
	c.SetOnRestore(FuncRestore{Func: func(c *Concrete) error {
		c.ready = false
		src.Attach(c.base, func(width, height int, err error) {
			if err != nil {
				return
			}
			c.pixWidth, c.pixHeight = width, height
			c.ready = true
		})
		return nil
	}})

	p := newPending(c)
	src.Attach(base, func(width, height int, err error) {
		if err == nil {
			c.pixWidth, c.pixHeight = width, height
			c.ready = true
		}
		p.complete(err)
	})
	return p, nil
}
