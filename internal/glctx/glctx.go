// SPDX-License-Identifier: Unlicense OR MIT

// Package glctx manages OpenGL context lifecycles and their thread
// affinity.
//
// Every context is current on at most one goroutine at a time, tracked
// through per-goroutine activation records. Goroutines that activate
// contexts must be locked to their OS thread with runtime.LockOSThread for
// the platform make-current rules to hold; the window package does this
// for the main goroutine.
//
// A process-wide shared context anchors the share group: new contexts are
// created while it is briefly current so they inherit shareable objects
// (textures, buffers). Objects that platform rules tie to a single context
// instead of the share group are tracked in the unshared-object registry
// and released when their owning context is destroyed.
package glctx

import (
	"fmt"
	"sync/atomic"
)

// Attribute is a bitmask of context attribute flags.
type Attribute uint32

const (
	AttributeDefault Attribute = 0
	AttributeCore    Attribute = 1 << 0
	AttributeDebug   Attribute = 1 << 2
)

func (a Attribute) String() string {
	switch {
	case a&AttributeCore != 0 && a&AttributeDebug != 0:
		return "core debug"
	case a&AttributeCore != 0:
		return "core"
	case a&AttributeDebug != 0:
		return "debug"
	}
	return "default"
}

// Settings describes the attributes of a context. When requesting a
// context these are the desired values; the settings attached to a created
// context hold what the driver actually granted, which may be weaker.
type Settings struct {
	DepthBits         uint
	StencilBits       uint
	AntialiasingLevel uint
	MajorVersion      uint
	MinorVersion      uint
	AttributeFlags    Attribute
	SRGBCapable       bool
}

// DefaultSettings returns the settings requested when the caller does not
// care: a legacy 1.1 compatibility context with no ancillary buffers.
func DefaultSettings() Settings {
	return Settings{MajorVersion: 1, MinorVersion: 1}
}

func (s Settings) String() string {
	return fmt.Sprintf("version %d.%d (%v), depth %d bits, stencil %d bits, antialiasing %dx, sRGB %t",
		s.MajorVersion, s.MinorVersion, s.AttributeFlags,
		s.DepthBits, s.StencilBits, s.AntialiasingLevel, s.SRGBCapable)
}

// contextIDCounter issues unique context identities. Identities start at 1
// and are never reused; 0 is reserved to mean "no context".
var contextIDCounter uint64

func nextContextID() uint64 {
	return atomic.AddUint64(&contextIDCounter, 1)
}
