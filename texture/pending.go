// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package texture

import (
	"context"
	"fmt"
	"sync"
)

// Pending is the handle returned by asynchronous factory and upload
// paths. The texture exists immediately but its content may not be
// resident yet; Pending reports when it is, or with what error the
// transfer failed.
type Pending struct {
	tex  Texture
	done chan struct{}

	mu  sync.Mutex
	err error
}

func newPending(tex Texture) *Pending {
	return &Pending{tex: tex, done: make(chan struct{})}
}

// Texture returns the texture under construction. It is valid as an
// object immediately, but must not be submitted for rendering until the
// Pending completes without error.
func (p *Pending) Texture() Texture { return p.tex }

// Done returns a channel closed when the transfer finishes, successfully
// or not.
func (p *Pending) Done() <-chan struct{} { return p.done }

// Ready reports whether the transfer has finished successfully.
func (p *Pending) Ready() bool {
	select {
	case <-p.done:
		return p.Err() == nil
	default:
		return false
	}
}

// Err returns the transfer error, nil before completion or on success.
// Failures wrap ErrAsyncUpload; a transfer cancelled by device loss also
// wraps device.ErrDeviceLost.
func (p *Pending) Err() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.err
}

// Await blocks until the transfer finishes or ctx is cancelled, and
// returns the finished texture.
func (p *Pending) Await(ctx context.Context) (Texture, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-p.done:
	}
	if err := p.Err(); err != nil {
		return nil, err
	}
	return p.tex, nil
}

// complete records the outcome exactly once; later calls are ignored so
// a device-loss cancellation racing a finishing upload stays safe.
func (p *Pending) complete(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	select {
	case <-p.done:
		return
	default:
	}
	if err != nil {
		p.err = fmt.Errorf("%w: %w", ErrAsyncUpload, err)
	}
	close(p.done)
}
