// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package device

import (
	"sync"

	"github.com/gogpu/blit"
)

// Restorable is implemented by resources that survive a device
// lose/restore cycle. The Context invokes RestoreAfterLoss once per
// restored device, after which the resource must hold a valid handle on
// the new device.
type Restorable interface {
	RestoreAfterLoss(dev Device) error
}

// pendingCanceller is implemented by devices that track in-flight
// asynchronous uploads. LoseDevice fails them with ErrDeviceLost so their
// completions are observed as upload failures rather than left hanging.
type pendingCanceller interface {
	CancelPending(err error)
}

// Context is the rendering session object. It owns the relationship
// between the host-provided device and every live concrete texture:
// textures register themselves at construction and are restored in
// registration order when the device comes back after a loss.
//
// The zero state machine is Active -> (LoseDevice) -> Lost ->
// (RestoreDevice) -> Active. Device loss is a lifecycle event, not an
// error; consumers at most observe a transient blank frame.
//
// A Context is not an ambient global. Create one per rendering session and
// call Close for deterministic teardown.
type Context struct {
	mu          sync.Mutex
	dev         Device
	profile     Profile
	scale       float64
	nextID      uint64
	restorables []registration
}

type registration struct {
	id uint64
	r  Restorable
}

// NewContext creates a session around the given device. A contentScale of
// zero or less defaults to 1.
func NewContext(dev Device, contentScale float64) *Context {
	if contentScale <= 0 {
		contentScale = 1
	}
	c := &Context{dev: dev, scale: contentScale}
	if dev != nil {
		c.profile = dev.Profile()
	}
	return c
}

// Device returns the current device, or nil while the device is lost.
func (c *Context) Device() Device {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dev
}

// Lost reports whether the device is currently lost.
func (c *Context) Lost() bool {
	return c.Device() == nil
}

// ContentScaleFactor returns the ratio between pixel and logical units.
func (c *Context) ContentScaleFactor() float64 {
	return c.scale
}

// Profile returns the capability tier of the session's device. The value
// is retained across a loss so allocation decisions made before the new
// device arrives stay consistent.
func (c *Context) Profile() Profile {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.profile
}

// Register adds a restorable resource to the session. The returned
// function removes it again; concrete textures call it on dispose.
func (c *Context) Register(r Restorable) func() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nextID++
	id := c.nextID
	c.restorables = append(c.restorables, registration{id: id, r: r})
	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		for i, reg := range c.restorables {
			if reg.id == id {
				c.restorables = append(c.restorables[:i], c.restorables[i+1:]...)
				return
			}
		}
	}
}

// LoseDevice marks the device as lost. In-flight asynchronous uploads on
// the outgoing device fail with ErrDeviceLost; registered textures keep
// their recreation strategies and wait for RestoreDevice.
func (c *Context) LoseDevice() {
	c.mu.Lock()
	dev := c.dev
	c.dev = nil
	n := len(c.restorables)
	c.mu.Unlock()

	if dev == nil {
		return
	}
	if pc, ok := dev.(pendingCanceller); ok {
		pc.CancelPending(ErrDeviceLost)
	}
	blit.Logger().Info("device lost", "liveTextures", n)
}

// RestoreDevice installs a freshly created device and replays every
// registered texture's restore procedure in registration order. Restore
// failures are logged and skipped; the affected texture stays blank.
func (c *Context) RestoreDevice(dev Device) {
	c.mu.Lock()
	c.dev = dev
	if dev != nil {
		c.profile = dev.Profile()
	}
	regs := make([]registration, len(c.restorables))
	copy(regs, c.restorables)
	c.mu.Unlock()

	if dev == nil {
		return
	}
	restored := 0
	for _, reg := range regs {
		if err := reg.r.RestoreAfterLoss(dev); err != nil {
			blit.Logger().Warn("texture restore failed", "err", err)
			continue
		}
		restored++
	}
	blit.Logger().Info("device restored", "restored", restored, "registered", len(regs))
}

// Close tears the session down: the registry is dropped and the device
// reference released. Registered textures are not disposed; their owners
// remain responsible for that.
func (c *Context) Close() {
	c.mu.Lock()
	c.restorables = nil
	c.dev = nil
	c.mu.Unlock()
}
