// SPDX-License-Identifier: Unlicense OR MIT

package glctx

import (
	"errors"
	"fmt"

	"github.com/menuet/VRSFML/errstream"
	"github.com/menuet/VRSFML/internal/gl"
)

// Context is one native OpenGL context in a share group. A context is
// current on at most one goroutine at a time, and only on goroutines
// locked to their OS thread. It must not be used after Destroy returns.
type Context struct {
	g        *Graphics
	native   NativeContext
	id       uint64
	settings Settings
	unshared *unsharedObjects
}

// ID reports the context identity. Identities start at 1 and are never
// reused; 0 always means no context.
func (c *Context) ID() uint64 {
	return c.id
}

// Settings reports the attributes the context actually carries, which
// initialization may have adjusted away from what was requested.
func (c *Context) Settings() Settings {
	return c.settings
}

// NativeWindow returns the backend window handle for window-backed
// contexts, nil otherwise.
func (c *Context) NativeWindow() any {
	return c.native.NativeWindow()
}

// SetActive makes the context current on the calling goroutine, or
// releases it. Activating a context that is current is a no-op, as is
// deactivating one that is not; both report success. Activating replaces
// whatever context was current on the goroutine. The caller must have
// locked the goroutine to its OS thread.
func (c *Context) SetActive(active bool) error {
	if active {
		if rec := lookupRecord(); rec != nil && rec.id == c.id {
			return nil
		}
		c.g.mu.Lock()
		defer c.g.mu.Unlock()
		if err := c.native.MakeCurrent(); err != nil {
			return fmt.Errorf("glctx: activating context %d: %w", c.id, err)
		}
		rec := currentRecord()
		rec.id = c.id
		rec.ctx = c
		return nil
	}
	rec := lookupRecord()
	if rec == nil || rec.id != c.id {
		return nil
	}
	c.g.mu.Lock()
	defer c.g.mu.Unlock()
	if err := c.native.ReleaseCurrent(); err != nil {
		return fmt.Errorf("glctx: deactivating context %d: %w", c.id, err)
	}
	rec.id = 0
	rec.ctx = nil
	reclaimRecord(rec)
	return nil
}

// Present swaps the front and back buffers of a window-backed context.
// The context must be current on the calling goroutine.
func (c *Context) Present() error {
	return c.native.SwapBuffers()
}

// Destroy releases the unshared objects owned by the context, then the
// native context itself. It must run on a goroutine the context can go
// current on; destroying a context that is current on another goroutine
// is a caller error.
func (c *Context) Destroy() {
	c.g.mu.Lock()
	defer c.g.mu.Unlock()

	c.cleanupUnshared()

	_ = c.SetActive(false)

	c.native.Destroy()
	c.native = nil
	releaseUnsharedList()
	c.unshared = nil
}

// cleanupUnshared releases the unshared objects registered against the
// context. The context briefly goes current so the release calls run
// against it, and whichever context was current before is restored.
func (c *Context) cleanupUnshared() {
	restore := ActiveContext()
	if restore == c {
		restore = nil
	}
	if err := c.SetActive(true); err != nil {
		errstream.Printf("could not activate context %d to release its unshared objects: %v", c.id, err)
		return
	}
	c.unshared.purge(c.id)
	if restore != nil {
		if err := restore.SetActive(true); err != nil {
			errstream.Printf("could not restore context %d after releasing unshared objects: %v", restore.id, err)
		}
	}
}

// abandon tears down a context that never finished construction.
func (c *Context) abandon() {
	if rec := lookupRecord(); rec != nil && rec.id == c.id {
		rec.id = 0
		rec.ctx = nil
		reclaimRecord(rec)
	}
	c.native.Destroy()
	c.native = nil
	releaseUnsharedList()
	c.unshared = nil
}

// initialize activates the context and settles its settings: the version
// and profile the implementation actually provides, and the multisample
// and sRGB state, which only stay on when both requested and granted.
// The context is left current on the calling goroutine.
func (c *Context) initialize(requested Settings) error {
	if err := c.SetActive(true); err != nil {
		return err
	}
	f := c.g.funcs
	if f == nil {
		return errors.New("glctx: no OpenGL entry points available")
	}

	// Implementations before 3.0 reject the version enums, so the version
	// string is the fallback there.
	major := f.GetInteger(gl.MAJOR_VERSION)
	minor := f.GetInteger(gl.MINOR_VERSION)
	if f.GetError() != gl.INVALID_ENUM && major > 0 {
		c.settings.MajorVersion = uint(major)
		c.settings.MinorVersion = uint(minor)
	} else if maj, min, ok := gl.ParseVersionString(f.GetString(gl.VERSION)); ok {
		c.settings.MajorVersion = uint(maj)
		c.settings.MinorVersion = uint(min)
	} else {
		c.settings.MajorVersion = 1
		c.settings.MinorVersion = 1
		errstream.Printf("could not retrieve the OpenGL version, assuming 1.1")
	}

	c.settings.AttributeFlags = AttributeDefault
	if c.settings.MajorVersion >= 3 {
		flags := f.GetInteger(gl.CONTEXT_FLAGS)
		if flags&gl.CONTEXT_FLAG_DEBUG_BIT != 0 {
			c.settings.AttributeFlags |= AttributeDebug
		}
		if c.settings.MajorVersion == 3 && c.settings.MinorVersion == 1 {
			// 3.1 has no profile query. Core, unless the compatibility
			// extension says otherwise.
			c.settings.AttributeFlags |= AttributeCore
			n := f.GetInteger(gl.NUM_EXTENSIONS)
			for i := 0; i < n; i++ {
				if f.GetStringi(gl.EXTENSIONS, i) == "GL_ARB_compatibility" {
					c.settings.AttributeFlags &^= AttributeCore
					break
				}
			}
		} else if c.settings.MajorVersion > 3 || c.settings.MinorVersion >= 2 {
			mask := f.GetInteger(gl.CONTEXT_PROFILE_MASK)
			if mask&gl.CONTEXT_CORE_PROFILE_BIT != 0 {
				c.settings.AttributeFlags |= AttributeCore
			}
		}
	}

	if requested.AntialiasingLevel > 0 && c.settings.AntialiasingLevel > 0 {
		f.Enable(gl.MULTISAMPLE)
	} else {
		c.settings.AntialiasingLevel = 0
	}

	if requested.SRGBCapable && c.settings.SRGBCapable {
		f.Enable(gl.FRAMEBUFFER_SRGB)
		if !f.IsEnabled(gl.FRAMEBUFFER_SRGB) {
			errstream.Printf("could not enable sRGB framebuffer writes, colors will not be converted")
			c.settings.SRGBCapable = false
		}
	} else {
		c.settings.SRGBCapable = false
	}
	return nil
}

// checkSettings warns when the created context falls short of what was
// requested. A shortfall never fails creation.
func (c *Context) checkSettings(requested Settings) {
	s := c.settings
	versionShort := s.MajorVersion < requested.MajorVersion ||
		(s.MajorVersion == requested.MajorVersion && s.MinorVersion < requested.MinorVersion)
	if versionShort ||
		s.AttributeFlags != requested.AttributeFlags ||
		s.DepthBits < requested.DepthBits ||
		s.StencilBits < requested.StencilBits ||
		s.AntialiasingLevel < requested.AntialiasingLevel ||
		(requested.SRGBCapable && !s.SRGBCapable) {
		errstream.Printf("the created OpenGL context does not fully meet the requested settings\nrequested: %v\ncreated:   %v", requested, s)
	}
}
