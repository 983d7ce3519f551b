// SPDX-License-Identifier: Unlicense OR MIT

// Package window opens native windows with OpenGL contexts and delivers
// their input events.
//
// The package confines windowing to the goroutine that runs main by
// locking it to its OS thread at init. Windows are created, polled and
// displayed there; offscreen contexts (Context) may live on other
// goroutines that lock their own threads.
package window

import (
	"fmt"
	"image"
	"time"

	"github.com/menuet/VRSFML/errstream"
	"github.com/menuet/VRSFML/internal/glctx"
)

// Style is a bitmask of window decorations.
type Style uint32

const (
	StyleTitlebar Style = 1 << iota
	StyleResize
	StyleClose

	StyleNone    Style = 0
	StyleDefault       = StyleTitlebar | StyleResize | StyleClose
)

// Config is the state an Option mutates.
type Config struct {
	Mode       VideoMode
	Title      string
	Style      Style
	Fullscreen bool
	Settings   ContextSettings
	FrameLimit uint
}

// Option configures a window.
type Option func(*Config)

// Mode sets the window's video mode: its size, and for fullscreen
// windows the display mode.
func Mode(m VideoMode) Option {
	return func(cfg *Config) {
		cfg.Mode = m
	}
}

// Title sets the title of the window.
func Title(t string) Option {
	return func(cfg *Config) {
		cfg.Title = t
	}
}

// Styled sets the window decorations.
func Styled(s Style) Option {
	return func(cfg *Config) {
		cfg.Style = s
	}
}

// Fullscreen makes the window cover a whole display.
func Fullscreen(enabled bool) Option {
	return func(cfg *Config) {
		cfg.Fullscreen = enabled
	}
}

// Settings requests OpenGL context attributes for the window.
func Settings(s ContextSettings) Option {
	return func(cfg *Config) {
		cfg.Settings = s
	}
}

// FramerateLimit caps the frequency of Display, in frames per second.
// Zero removes the cap.
func FramerateLimit(fps uint) Option {
	return func(cfg *Config) {
		cfg.FrameLimit = fps
	}
}

func newConfig(opts []Option) Config {
	cfg := Config{
		Mode:     VideoMode{Size: image.Pt(640, 480), BitsPerPixel: 32},
		Title:    "VRSFML",
		Style:    StyleDefault,
		Settings: DefaultSettings(),
	}
	for _, o := range opts {
		o(&cfg)
	}
	return cfg
}

// Window is an operating system window with its own OpenGL context.
// Windows are not safe for concurrent use.
type Window struct {
	ctx  *glctx.Context
	plat platform
	bw   backendWindow

	queue eventQueue
	open  bool

	frameInterval time.Duration
	frameStart    time.Time
}

// New opens a window. The window's context is current on the calling
// goroutine when New returns.
func New(opts ...Option) (*Window, error) {
	cfg := newConfig(opts)

	p, err := thePlatform()
	if err != nil {
		return nil, err
	}
	g, err := glctx.Shared()
	if err != nil {
		return nil, err
	}

	if cfg.Fullscreen && !cfg.Mode.IsValid() {
		modes := FullscreenModes()
		if len(modes) == 0 {
			return nil, fmt.Errorf("window: no fullscreen mode available")
		}
		errstream.Printf("the requested video mode is not available, switching to mode %dx%dx%d",
			modes[0].Size.X, modes[0].Size.Y, modes[0].BitsPerPixel)
		cfg.Mode = modes[0]
	}

	ctx, err := g.CreateWindowContext(cfg.Settings, glctx.WindowConfig{
		Title:      cfg.Title,
		Size:       cfg.Mode.Size,
		Fullscreen: cfg.Fullscreen,
		Decorated:  cfg.Style&StyleTitlebar != 0,
		Resizable:  cfg.Style&StyleResize != 0,
		Visible:    true,
	}, cfg.Mode.BitsPerPixel)
	if err != nil {
		return nil, err
	}

	w := &Window{
		ctx:        ctx,
		plat:       p,
		open:       true,
		frameStart: time.Now(),
	}
	w.SetFramerateLimit(cfg.FrameLimit)
	w.bw = p.attach(w)
	return w, nil
}

// IsOpen reports whether the window has not been closed yet.
func (w *Window) IsOpen() bool {
	return w.open
}

// Close destroys the window and its context. The unshared objects owned
// by the context are released first.
func (w *Window) Close() {
	if !w.open {
		return
	}
	w.plat.detach(w)
	w.ctx.Destroy()
	w.ctx = nil
	w.bw = nil
	w.open = false
}

// PollEvent returns the next pending event, pumping the native event
// queue first. It reports false when no event is pending.
func (w *Window) PollEvent() (Event, bool) {
	if !w.open {
		return nil, false
	}
	w.plat.pump()
	return w.queue.pop()
}

// WaitEvent blocks until an event arrives. It reports false when the
// window is closed.
func (w *Window) WaitEvent() (Event, bool) {
	if !w.open {
		return nil, false
	}
	for {
		w.plat.pump()
		if e, ok := w.queue.pop(); ok {
			return e, true
		}
		w.plat.wait()
	}
}

// SetActive makes the window's context current on the calling goroutine,
// or releases it, and reports success. The caller's goroutine must be
// locked to its OS thread.
func (w *Window) SetActive(active bool) bool {
	if w.ctx == nil {
		return false
	}
	if err := w.ctx.SetActive(active); err != nil {
		errstream.Printf("%v", err)
		return false
	}
	return true
}

// Display swaps the buffers, showing what was rendered. When the
// window's context cannot go current the swap is skipped. The framerate
// limit, when set, paces the call by sleeping.
func (w *Window) Display() {
	if w.open && w.SetActive(true) {
		if err := w.ctx.Present(); err != nil {
			errstream.Printf("could not present the window: %v", err)
		}
	}
	if w.frameInterval > 0 {
		if elapsed := time.Since(w.frameStart); elapsed < w.frameInterval {
			time.Sleep(w.frameInterval - elapsed)
		}
		w.frameStart = time.Now()
	}
}

// Settings reports the attributes the window's context actually carries.
func (w *Window) Settings() ContextSettings {
	if w.ctx == nil {
		return ContextSettings{}
	}
	return w.ctx.Settings()
}

// ContextID reports the identity of the window's context, 0 after Close.
func (w *Window) ContextID() uint64 {
	if w.ctx == nil {
		return 0
	}
	return w.ctx.ID()
}

// Size returns the size of the drawable area in pixels.
func (w *Window) Size() image.Point {
	if !w.open {
		return image.Point{}
	}
	return w.bw.size()
}

// SetTitle changes the window title.
func (w *Window) SetTitle(title string) {
	if w.open {
		w.bw.setTitle(title)
	}
}

// SetVisible shows or hides the window.
func (w *Window) SetVisible(visible bool) {
	if w.open {
		w.bw.setVisible(visible)
	}
}

// Position returns the position of the window on the desktop.
func (w *Window) Position() image.Point {
	if !w.open {
		return image.Point{}
	}
	return w.bw.position()
}

// SetPosition moves the window on the desktop.
func (w *Window) SetPosition(pos image.Point) {
	if w.open {
		w.bw.setPosition(pos)
	}
}

// RequestFocus asks the system to give the window input focus.
func (w *Window) RequestFocus() {
	if w.open {
		w.bw.requestFocus()
	}
}

// HasFocus reports whether the window has input focus.
func (w *Window) HasFocus() bool {
	return w.open && w.bw.hasFocus()
}

// SetMouseCursorVisible shows or hides the cursor over the window.
func (w *Window) SetMouseCursorVisible(visible bool) {
	if w.open {
		w.bw.setCursorVisible(visible)
	}
}

// SetVerticalSyncEnabled synchronizes Display with the display refresh.
// A framerate limit and vertical sync do not combine well; use one.
func (w *Window) SetVerticalSyncEnabled(enabled bool) {
	if !w.open || !w.SetActive(true) {
		return
	}
	interval := 0
	if enabled {
		interval = 1
	}
	w.bw.setSwapInterval(interval)
}

// SetFramerateLimit caps the frequency of Display, in frames per second.
// Zero removes the cap.
func (w *Window) SetFramerateLimit(fps uint) {
	if fps == 0 {
		w.frameInterval = 0
		return
	}
	w.frameInterval = time.Second / time.Duration(fps)
}
