// SPDX-License-Identifier: Unlicense OR MIT

package graphics

import (
	"fmt"
	"image"
	"sync"

	"github.com/menuet/VRSFML/errstream"
	"github.com/menuet/VRSFML/internal/gl"
	"github.com/menuet/VRSFML/internal/glctx"
)

// RenderTexture is an offscreen render target backed by a texture.
//
// The texture is shared across the whole share group, but the
// framebuffer object that wires it up as a target is not: GL scopes
// framebuffers to one context. RenderTexture therefore keeps one
// framebuffer per context it has been activated in, each registered as
// context-bound so the registry destroys it when its context dies.
type RenderTexture struct {
	ctx *glctx.Context
	tex *Texture

	mu   sync.Mutex
	fbos map[uint64]*frameBuffer
}

// frameBuffer is one context's framebuffer for a RenderTexture target.
type frameBuffer struct {
	f   gl.Functions
	fbo uint32
}

// ReleaseUnshared destroys the framebuffer. The registry calls it with
// the owning context current.
func (b *frameBuffer) ReleaseUnshared() {
	b.f.DeleteFramebuffer(b.fbo)
	b.fbo = 0
}

// NewRenderTexture creates a render target of the given size. The target
// carries its own offscreen context, so drawing works even on goroutines
// with no window context active.
func NewRenderTexture(size image.Point) (*RenderTexture, error) {
	g, err := glctx.Shared()
	if err != nil {
		return nil, err
	}
	ctx, err := g.CreateContext(glctx.DefaultSettings(), size, 32)
	if err != nil {
		return nil, err
	}
	tex, err := NewTexture(size)
	if err != nil {
		ctx.Destroy()
		return nil, err
	}
	return &RenderTexture{ctx: ctx, tex: tex, fbos: make(map[uint64]*frameBuffer)}, nil
}

// Size returns the target size in pixels.
func (rt *RenderTexture) Size() image.Point {
	return rt.tex.Size()
}

// Texture returns the texture the target renders into. The texture is
// owned by the RenderTexture; do not release it.
func (rt *RenderTexture) Texture() *Texture {
	return rt.tex
}

// SetActive binds the target in the calling goroutine's active context,
// activating the target's own context first if none is. It reports
// whether the target is ready to draw into.
func (rt *RenderTexture) SetActive(active bool) bool {
	if rt.ctx == nil {
		return false
	}
	if !active {
		if !glctx.HasActiveContext() {
			return true
		}
		f, release, err := ensureFuncs()
		if err != nil {
			return false
		}
		defer release()
		f.BindFramebuffer(gl.FRAMEBUFFER, 0)
		return true
	}

	if !glctx.HasActiveContext() {
		if err := rt.ctx.SetActive(true); err != nil {
			errstream.Printf("could not activate the render texture context: %v", err)
			return false
		}
	}
	f, release, err := ensureFuncs()
	if err != nil {
		return false
	}
	defer release()

	b, err := rt.frameBufferFor(glctx.ActiveContextID(), f)
	if err != nil {
		errstream.Printf("could not attach the render texture target: %v", err)
		return false
	}
	f.BindFramebuffer(gl.FRAMEBUFFER, b.fbo)
	return true
}

// frameBufferFor returns the calling context's framebuffer, creating and
// registering it on first use. The caller holds a context current.
func (rt *RenderTexture) frameBufferFor(contextID uint64, f gl.Functions) (*frameBuffer, error) {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	if b, ok := rt.fbos[contextID]; ok {
		return b, nil
	}
	b := &frameBuffer{f: f, fbo: f.GenFramebuffer()}
	f.BindFramebuffer(gl.FRAMEBUFFER, b.fbo)
	f.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, rt.tex.Native(), 0)
	if status := f.CheckFramebufferStatus(gl.FRAMEBUFFER); status != gl.FRAMEBUFFER_COMPLETE {
		f.BindFramebuffer(gl.FRAMEBUFFER, 0)
		f.DeleteFramebuffer(b.fbo)
		return nil, fmt.Errorf("graphics: framebuffer incomplete, status 0x%04x", uint(status))
	}
	glctx.RegisterUnshared(b)
	rt.fbos[contextID] = b
	return b, nil
}

// Display makes the pixels drawn so far visible to the texture's readers
// in every context of the share group.
func (rt *RenderTexture) Display() error {
	f, release, err := ensureFuncs()
	if err != nil {
		return err
	}
	defer release()
	f.Flush()
	rt.tex.cacheID = nextCacheID()
	return nil
}

// Release destroys the target. The framebuffer of the target's own
// context dies with that context; framebuffers created in other live
// contexts stay registered and die with theirs.
func (rt *RenderTexture) Release() {
	if rt.ctx == nil {
		return
	}
	if release, err := glctx.Ensure(); err == nil {
		rt.mu.Lock()
		fbos := make([]*frameBuffer, 0, len(rt.fbos))
		for _, b := range rt.fbos {
			fbos = append(fbos, b)
		}
		rt.mu.Unlock()
		// Only the active context's entry is dropped here; the rest are
		// not reachable from this goroutine's context.
		for _, b := range fbos {
			glctx.UnregisterUnshared(b)
		}
		release()
	}
	rt.tex.Release()
	rt.ctx.Destroy()
	rt.ctx = nil
}
