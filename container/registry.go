// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package container

import (
	"fmt"
	"sync"
)

// SniffFunc reports whether data looks like a container the associated
// decoder understands. It must be cheap: typically a magic-byte check.
type SniffFunc func(data []byte) bool

type entry struct {
	name  string
	sniff SniffFunc
	dec   Decoder
}

// registry holds decoders in registration order; Probe tries them in that
// order, so more specific formats should register first.
var registry = struct {
	mu      sync.RWMutex
	entries []entry
}{}

// Register adds a decoder under a unique name. Registering an existing
// name replaces the previous entry in place.
func Register(name string, sniff SniffFunc, dec Decoder) {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	for i, e := range registry.entries {
		if e.name == name {
			registry.entries[i] = entry{name: name, sniff: sniff, dec: dec}
			return
		}
	}
	registry.entries = append(registry.entries, entry{name: name, sniff: sniff, dec: dec})
}

// Unregister removes a decoder by name.
func Unregister(name string) {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	for i, e := range registry.entries {
		if e.name == name {
			registry.entries = append(registry.entries[:i], registry.entries[i+1:]...)
			return
		}
	}
}

// Decoders returns the registered decoder names in probe order.
func Decoders() []string {
	registry.mu.RLock()
	defer registry.mu.RUnlock()
	names := make([]string, len(registry.entries))
	for i, e := range registry.entries {
		names[i] = e.name
	}
	return names
}

// Probe finds the first decoder that recognizes data and parses its
// header. Returns ErrUnknownContainer when nothing matches.
func Probe(data []byte) (Decoder, Header, error) {
	registry.mu.RLock()
	entries := make([]entry, len(registry.entries))
	copy(entries, registry.entries)
	registry.mu.RUnlock()

	for _, e := range entries {
		if !e.sniff(data) {
			continue
		}
		hdr, err := e.dec.ParseHeader(data)
		if err != nil {
			return nil, Header{}, fmt.Errorf("container: %s header: %w", e.name, err)
		}
		return e.dec, hdr, nil
	}
	return nil, Header{}, ErrUnknownContainer
}
