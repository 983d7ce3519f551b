// SPDX-License-Identifier: Unlicense OR MIT

package window

import "github.com/menuet/VRSFML/internal/glctx"

// ContextSettings carries the OpenGL attributes requested for a window or
// offscreen context. The settings attached to a created context hold what
// was actually obtained.
type ContextSettings = glctx.Settings

// ContextAttribute is a bitmask of context attribute flags.
type ContextAttribute = glctx.Attribute

const (
	ContextDefault = glctx.AttributeDefault
	ContextCore    = glctx.AttributeCore
	ContextDebug   = glctx.AttributeDebug
)

// DefaultSettings returns the attributes requested when the caller does
// not care: a legacy 1.1 compatibility context with no ancillary buffers.
func DefaultSettings() ContextSettings {
	return glctx.DefaultSettings()
}
