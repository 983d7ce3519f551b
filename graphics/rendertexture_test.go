// SPDX-License-Identifier: Unlicense OR MIT

package graphics

import (
	"image"
	"testing"

	"github.com/menuet/VRSFML/internal/glctx"
)

func (r *recGL) lastFramebuffer() uint32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.genFBOs) == 0 {
		return 0
	}
	return r.genFBOs[len(r.genFBOs)-1]
}

func (r *recGL) attachmentOf(f uint32) uint32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.attachments[f]
}

func countOf(names []uint32, name uint32) int {
	n := 0
	for _, c := range names {
		if c == name {
			n++
		}
	}
	return n
}

func TestRenderTextureLifecycle(t *testing.T) {
	before := theGL.framebufferCount()
	rt, err := NewRenderTexture(image.Pt(32, 32))
	if err != nil {
		t.Fatalf("NewRenderTexture: %v", err)
	}
	texName := rt.Texture().Native()

	if !rt.SetActive(true) {
		t.Fatal("SetActive(true) failed")
	}
	if got := theGL.framebufferCount() - before; got != 1 {
		t.Fatalf("got %d framebuffers, expected 1", got)
	}
	fbo := theGL.lastFramebuffer()
	if got := theGL.attachmentOf(fbo); got != texName {
		t.Errorf("framebuffer attached to texture %d, expected %d", got, texName)
	}
	if !rt.SetActive(false) {
		t.Error("SetActive(false) failed")
	}

	// Reactivating in the same context reuses the framebuffer.
	if !rt.SetActive(true) {
		t.Fatal("second SetActive(true) failed")
	}
	if got := theGL.framebufferCount() - before; got != 1 {
		t.Errorf("got %d framebuffers after reactivation, expected 1", got)
	}

	rt.Release()
	if got := countOf(theGL.deletedFramebuffers(), fbo); got != 1 {
		t.Errorf("framebuffer deleted %d times, expected once", got)
	}
	if !contains(theGL.deletedTextures(), texName) {
		t.Error("texture not destroyed with the render texture")
	}
}

func TestRenderTexturePerContextFramebuffers(t *testing.T) {
	rt, err := NewRenderTexture(image.Pt(16, 16))
	if err != nil {
		t.Fatalf("NewRenderTexture: %v", err)
	}

	g, err := glctx.Shared()
	if err != nil {
		t.Fatalf("Shared: %v", err)
	}
	ctx2, err := g.CreateContext(glctx.DefaultSettings(), image.Pt(1, 1), 32)
	if err != nil {
		t.Fatalf("CreateContext: %v", err)
	}
	if err := ctx2.SetActive(true); err != nil {
		t.Fatalf("SetActive: %v", err)
	}

	before := theGL.framebufferCount()
	if !rt.SetActive(true) {
		t.Fatal("SetActive(true) failed")
	}
	if got := theGL.framebufferCount() - before; got != 1 {
		t.Fatalf("got %d framebuffers, expected 1", got)
	}
	fbo := theGL.lastFramebuffer()
	rt.SetActive(false)

	// The framebuffer belongs to ctx2 and dies with it.
	ctx2.Destroy()
	if got := countOf(theGL.deletedFramebuffers(), fbo); got != 1 {
		t.Fatalf("framebuffer deleted %d times after context destruction, expected once", got)
	}

	// Releasing the target afterwards must not delete it again.
	rt.Release()
	if got := countOf(theGL.deletedFramebuffers(), fbo); got != 1 {
		t.Errorf("framebuffer deleted %d times after release, expected once", got)
	}
}

func TestRenderTextureDisplay(t *testing.T) {
	rt, err := NewRenderTexture(image.Pt(8, 8))
	if err != nil {
		t.Fatalf("NewRenderTexture: %v", err)
	}
	defer rt.Release()

	before := rt.Texture().CacheID()
	flushes := theGL.flushCount()
	if err := rt.Display(); err != nil {
		t.Fatalf("Display: %v", err)
	}
	if rt.Texture().CacheID() == before {
		t.Error("cache id unchanged after display")
	}
	if theGL.flushCount() == flushes {
		t.Error("display did not flush")
	}
}

func TestRenderTextureReleasedIsInactive(t *testing.T) {
	rt, err := NewRenderTexture(image.Pt(8, 8))
	if err != nil {
		t.Fatalf("NewRenderTexture: %v", err)
	}
	rt.Release()
	if rt.SetActive(true) {
		t.Error("released render texture activated")
	}
}
