// SPDX-License-Identifier: Unlicense OR MIT

package glctx

import (
	"errors"
	"image"
	"sync"

	"github.com/menuet/VRSFML/internal/gl"
)

// WindowConfig describes the window surface a context should render to.
type WindowConfig struct {
	Title      string
	Size       image.Point
	Fullscreen bool
	Decorated  bool
	Resizable  bool
	Visible    bool
}

// ContextConfig describes the context a driver factory must produce.
type ContextConfig struct {
	// Settings carries the requested attributes. The factory overwrites
	// the pixel-format fields (depth, stencil, antialiasing, sRGB) with
	// what it actually obtained where the platform lets it know.
	Settings *Settings
	// Window, when non-nil, binds the context to a window surface created
	// by the backend.
	Window *WindowConfig
	// Size is the backbuffer size for windowless contexts.
	Size image.Point
	// BitsPerPixel is the color depth of the target surface.
	BitsPerPixel int
}

// NativeContext is a platform context produced by a Driver. Calls follow
// the platform thread rules: MakeCurrent, ReleaseCurrent, SwapBuffers and
// Destroy are only valid on the goroutine that the context activity is
// confined to at that moment.
type NativeContext interface {
	MakeCurrent() error
	ReleaseCurrent() error
	SwapBuffers() error
	Destroy()
	// NativeWindow returns the backend's window handle for window-backed
	// contexts, nil otherwise. The window backend that created the
	// context knows the concrete type.
	NativeWindow() any
}

// Driver creates native contexts and resolves GL entry points. A process
// has one driver, registered by the platform backend at init time.
type Driver interface {
	// NewContext creates a native context. When shared is non-nil it must
	// be the share-group anchor, briefly current on the calling
	// goroutine, and the new context joins its share group.
	NewContext(shared NativeContext, cfg ContextConfig) (NativeContext, error)
	// GetProcAddress resolves a GL function by name, returning 0 if the
	// implementation does not provide it. Call only with the shared
	// context lock held.
	GetProcAddress(name string) uintptr
	// Functions returns the callable GL entry points for the share
	// group, or nil if none could be loaded.
	Functions() gl.Functions
}

var (
	driverMu      sync.Mutex
	driverFactory func() (Driver, error)

	sharedOnce sync.Once
	sharedG    *Graphics
	sharedErr  error
)

// RegisterDriver installs the platform driver factory. The window
// backends call it from init; installing two drivers is a build mistake.
func RegisterDriver(factory func() (Driver, error)) {
	driverMu.Lock()
	defer driverMu.Unlock()
	if driverFactory != nil {
		panic("glctx: platform driver already registered")
	}
	driverFactory = factory
}

// Shared returns the process-wide Graphics, creating it on first use from
// the registered driver. The result is latched: repeated calls after a
// creation failure return the same error.
func Shared() (*Graphics, error) {
	sharedOnce.Do(func() {
		driverMu.Lock()
		factory := driverFactory
		driverMu.Unlock()
		if factory == nil {
			sharedErr = errors.New("glctx: no platform driver registered")
			return
		}
		drv, err := factory()
		if err != nil {
			sharedErr = err
			return
		}
		sharedG, sharedErr = New(drv)
	})
	return sharedG, sharedErr
}
