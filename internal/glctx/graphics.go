// SPDX-License-Identifier: Unlicense OR MIT

package glctx

import (
	"fmt"
	"image"
	"strings"

	"github.com/menuet/VRSFML/internal/gl"
)

// Graphics anchors a share group of contexts created from one driver. It
// owns a hidden context that never renders; every other context joins its
// share group, so resources shared across contexts outlive any single
// user context. Creation and destruction of contexts serialize on an
// internal recursive lock, which also guards driver entry-point lookups.
type Graphics struct {
	drv Driver
	mu  recursiveMutex

	shared     *Context
	funcs      gl.Functions
	extensions []string
}

// New creates the share-group anchor context from drv. The anchor is left
// inactive so user contexts can go current on any goroutine afterwards.
func New(drv Driver) (*Graphics, error) {
	g := &Graphics{drv: drv}
	g.mu.Lock()
	defer g.mu.Unlock()

	settings := DefaultSettings()
	native, err := drv.NewContext(nil, ContextConfig{
		Settings:     &settings,
		Size:         image.Pt(1, 1),
		BitsPerPixel: 32,
	})
	if err != nil {
		return nil, fmt.Errorf("glctx: creating shared context: %w", err)
	}
	ctx := &Context{
		g:        g,
		native:   native,
		id:       nextContextID(),
		settings: settings,
		unshared: retainUnsharedList(),
	}
	g.shared = ctx
	if err := ctx.SetActive(true); err != nil {
		ctx.abandon()
		g.shared = nil
		return nil, err
	}
	// Entry points resolve against the share group, so they load while
	// the anchor is current.
	g.funcs = drv.Functions()
	if err := ctx.initialize(DefaultSettings()); err != nil {
		ctx.abandon()
		g.shared = nil
		return nil, err
	}
	g.loadExtensions()
	if err := ctx.SetActive(false); err != nil {
		ctx.abandon()
		g.shared = nil
		return nil, err
	}
	return g, nil
}

// CreateContext creates a context backed by a hidden surface of the given
// size, for rendering that never reaches a window. The new context is
// current on the calling goroutine when CreateContext returns.
func (g *Graphics) CreateContext(requested Settings, size image.Point, bitsPerPixel int) (*Context, error) {
	return g.create(requested, ContextConfig{Size: size, BitsPerPixel: bitsPerPixel})
}

// CreateWindowContext creates a context bound to a new window surface.
// The new context is current on the calling goroutine when
// CreateWindowContext returns.
func (g *Graphics) CreateWindowContext(requested Settings, win WindowConfig, bitsPerPixel int) (*Context, error) {
	return g.create(requested, ContextConfig{Window: &win, BitsPerPixel: bitsPerPixel})
}

// create runs the shared creation protocol: with the creation lock held,
// the anchor context goes current so the driver can join its share group,
// the driver produces the native context, the anchor steps aside again,
// and the new context initializes and reports any attribute shortfall.
func (g *Graphics) create(requested Settings, cfg ContextConfig) (*Context, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	actual := requested
	cfg.Settings = &actual

	if err := g.shared.SetActive(true); err != nil {
		return nil, err
	}
	native, err := g.drv.NewContext(g.shared.native, cfg)
	if derr := g.shared.SetActive(false); derr != nil && err == nil {
		err = derr
	}
	if err != nil {
		return nil, fmt.Errorf("glctx: creating context: %w", err)
	}
	ctx := &Context{
		g:        g,
		native:   native,
		id:       nextContextID(),
		settings: actual,
		unshared: retainUnsharedList(),
	}
	if err := ctx.initialize(requested); err != nil {
		ctx.abandon()
		return nil, err
	}
	ctx.checkSettings(requested)
	return ctx, nil
}

// SharedContext reports the anchor context of the share group.
func (g *Graphics) SharedContext() *Context {
	return g.shared
}

// Functions returns the GL entry points loaded for the share group, or
// nil if the driver could not load them.
func (g *Graphics) Functions() gl.Functions {
	return g.funcs
}

// IsExtensionAvailable reports whether the share group advertises the
// named extension.
func (g *Graphics) IsExtensionAvailable(name string) bool {
	for _, e := range g.extensions {
		if e == name {
			return true
		}
	}
	return false
}

// GetFunction resolves a GL entry point by name, 0 if unavailable. It
// briefly holds the creation lock because drivers require it for lookups.
func (g *Graphics) GetFunction(name string) uintptr {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.drv.GetProcAddress(name)
}

// Release destroys the anchor context. Callers must have destroyed every
// context created from g first.
func (g *Graphics) Release() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.shared == nil {
		return
	}
	g.shared.Destroy()
	g.shared = nil
	g.funcs = nil
	g.extensions = nil
}

// loadExtensions queries the extension list with the anchor current. GL 3+
// reports indexed strings; older implementations hand back one
// space-separated string.
func (g *Graphics) loadExtensions() {
	f := g.funcs
	if f == nil {
		return
	}
	n := f.GetInteger(gl.NUM_EXTENSIONS)
	if f.GetError() != gl.NO_ERROR || n <= 0 {
		if all := f.GetString(gl.EXTENSIONS); all != "" {
			g.extensions = strings.Fields(all)
		}
		return
	}
	exts := make([]string, 0, n)
	for i := 0; i < n; i++ {
		if e := f.GetStringi(gl.EXTENSIONS, i); e != "" {
			exts = append(exts, e)
		}
	}
	g.extensions = exts
}
