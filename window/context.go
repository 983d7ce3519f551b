// SPDX-License-Identifier: Unlicense OR MIT

package window

import (
	"image"

	"github.com/menuet/VRSFML/errstream"
	"github.com/menuet/VRSFML/internal/glctx"
)

// Context is an OpenGL context without a window, for goroutines that
// load or build resources off the rendering path. The creating goroutine
// must be locked to its OS thread; the context is current there when
// NewContext returns.
type Context struct {
	ctx *glctx.Context
}

// NewContext creates an offscreen context with the given attributes.
func NewContext(settings ContextSettings) (*Context, error) {
	g, err := glctx.Shared()
	if err != nil {
		return nil, err
	}
	ctx, err := g.CreateContext(settings, image.Pt(1, 1), 32)
	if err != nil {
		return nil, err
	}
	return &Context{ctx: ctx}, nil
}

// SetActive makes the context current on the calling goroutine, or
// releases it, and reports success.
func (c *Context) SetActive(active bool) bool {
	if c.ctx == nil {
		return false
	}
	if err := c.ctx.SetActive(active); err != nil {
		errstream.Printf("%v", err)
		return false
	}
	return true
}

// Settings reports the attributes the context actually carries.
func (c *Context) Settings() ContextSettings {
	if c.ctx == nil {
		return ContextSettings{}
	}
	return c.ctx.Settings()
}

// ID reports the context identity, 0 after Close.
func (c *Context) ID() uint64 {
	if c.ctx == nil {
		return 0
	}
	return c.ctx.ID()
}

// Close destroys the context, releasing its unshared objects first.
func (c *Context) Close() {
	if c.ctx == nil {
		return
	}
	c.ctx.Destroy()
	c.ctx = nil
}

// ActiveContextID reports the identity of the context current on the
// calling goroutine, 0 when none is.
func ActiveContextID() uint64 {
	return glctx.ActiveContextID()
}

// IsExtensionAvailable reports whether the named OpenGL extension is
// exposed by the process's contexts. The first call may create the
// shared context.
func IsExtensionAvailable(name string) bool {
	g, err := glctx.Shared()
	if err != nil {
		return false
	}
	return g.IsExtensionAvailable(name)
}
