// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package container consumes opaque, pre-compressed GPU texture
// containers. blit does not own any container format: decoders register
// themselves with a magic-sniffing function, and the texture factory
// probes the registry to parse headers and stream mip levels into a
// device texture.
//
// A minimal raw-RGBA container (BTX) is built in so the container path is
// usable without an external decoder. Third-party decoders (e.g. an ATF
// decoder) register in an init function:
//
//	func init() {
//	    container.Register("atf", sniffATF, &atfDecoder{})
//	}
package container
