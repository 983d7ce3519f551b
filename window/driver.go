// SPDX-License-Identifier: Unlicense OR MIT

package window

import (
	"errors"
	"image"
	"runtime"
	"sync"

	"github.com/menuet/VRSFML/internal/glctx"
)

// platform is the compiled-in display backend. It creates native contexts
// for the context core and serves the window package with display modes
// and event pumping.
type platform interface {
	glctx.Driver

	desktop() VideoMode
	modes() []VideoMode

	// attach binds w to its native window for event delivery and returns
	// the handle the window methods operate on.
	attach(w *Window) backendWindow
	detach(w *Window)

	// pump translates pending native events into the attached windows'
	// queues without blocking; wait blocks until some native event
	// arrives.
	pump()
	wait()
}

// backendWindow is the native window handle behind a Window.
type backendWindow interface {
	setTitle(string)
	setVisible(bool)
	size() image.Point
	position() image.Point
	setPosition(image.Point)
	requestFocus()
	hasFocus() bool
	setCursorVisible(bool)
	// setSwapInterval applies to the context current on the calling
	// goroutine.
	setSwapInterval(int)
}

// newPlatform is set by the init of the enabled backend file.
var newPlatform func() (platform, error)

var (
	platformOnce sync.Once
	platformInst platform
	platformErr  error
)

// thePlatform returns the process display backend, initializing it on
// first use. The result is latched, errors included.
func thePlatform() (platform, error) {
	platformOnce.Do(func() {
		if newPlatform == nil {
			platformErr = errors.New("window: no display backend compiled in")
			return
		}
		platformInst, platformErr = newPlatform()
	})
	return platformInst, platformErr
}

func init() {
	// Native windowing and context activation confine themselves to the
	// thread that runs main.
	runtime.LockOSThread()

	glctx.RegisterDriver(func() (glctx.Driver, error) {
		p, err := thePlatform()
		if err != nil {
			return nil, err
		}
		return p, nil
	})
}
