// SPDX-License-Identifier: Unlicense OR MIT

//go:build sdl

package window

import (
	"bytes"
	"fmt"
	"image"
	"strings"
	"sync"

	"github.com/veandco/go-sdl2/sdl"
	"golang.org/x/exp/slices"

	"github.com/menuet/VRSFML/f32"
	"github.com/menuet/VRSFML/internal/gl"
	"github.com/menuet/VRSFML/internal/glctx"
)

func init() {
	newPlatform = newSDLPlatform
}

// sdlPlatform drives windows and contexts through SDL2. SDL demands that
// window and event calls happen on the main thread, which the package
// init arranges by locking it.
type sdlPlatform struct {
	mu      sync.Mutex
	windows map[uint32]*Window
}

func newSDLPlatform() (platform, error) {
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return nil, fmt.Errorf("window: sdl init failed: %w", err)
	}
	sdl.StartTextInput()
	return &sdlPlatform{windows: make(map[uint32]*Window)}, nil
}

func (p *sdlPlatform) NewContext(shared glctx.NativeContext, cfg glctx.ContextConfig) (glctx.NativeContext, error) {
	if s := cfg.Settings; s != nil {
		sdl.GLSetAttribute(sdl.GL_DOUBLEBUFFER, 1)
		sdl.GLSetAttribute(sdl.GL_DEPTH_SIZE, int(s.DepthBits))
		sdl.GLSetAttribute(sdl.GL_STENCIL_SIZE, int(s.StencilBits))
		if s.AntialiasingLevel > 0 {
			sdl.GLSetAttribute(sdl.GL_MULTISAMPLEBUFFERS, 1)
			sdl.GLSetAttribute(sdl.GL_MULTISAMPLESAMPLES, int(s.AntialiasingLevel))
		} else {
			sdl.GLSetAttribute(sdl.GL_MULTISAMPLEBUFFERS, 0)
			sdl.GLSetAttribute(sdl.GL_MULTISAMPLESAMPLES, 0)
		}
		srgb := 0
		if s.SRGBCapable {
			srgb = 1
		}
		sdl.GLSetAttribute(sdl.GL_FRAMEBUFFER_SRGB_CAPABLE, srgb)
		if s.MajorVersion >= 3 {
			sdl.GLSetAttribute(sdl.GL_CONTEXT_MAJOR_VERSION, int(s.MajorVersion))
			sdl.GLSetAttribute(sdl.GL_CONTEXT_MINOR_VERSION, int(s.MinorVersion))
			if s.AttributeFlags&ContextCore != 0 {
				sdl.GLSetAttribute(sdl.GL_CONTEXT_PROFILE_MASK, sdl.GL_CONTEXT_PROFILE_CORE)
			} else {
				sdl.GLSetAttribute(sdl.GL_CONTEXT_PROFILE_MASK, sdl.GL_CONTEXT_PROFILE_COMPATIBILITY)
			}
			if s.AttributeFlags&ContextDebug != 0 {
				sdl.GLSetAttribute(sdl.GL_CONTEXT_FLAGS, sdl.GL_CONTEXT_DEBUG_FLAG)
			}
		}
	}
	// SDL shares with whatever context is current when the new one is
	// created. The caller keeps the shared context current across this
	// call, so flagging the attribute is all that is needed.
	share := 0
	if shared != nil {
		share = 1
	}
	sdl.GLSetAttribute(sdl.GL_SHARE_WITH_CURRENT_CONTEXT, share)

	title := ""
	size := cfg.Size
	var flags uint32 = sdl.WINDOW_OPENGL
	if w := cfg.Window; w != nil {
		title = w.Title
		size = w.Size
		if !w.Visible {
			flags |= sdl.WINDOW_HIDDEN
		}
		if !w.Decorated {
			flags |= sdl.WINDOW_BORDERLESS
		}
		if w.Resizable {
			flags |= sdl.WINDOW_RESIZABLE
		}
		if w.Fullscreen {
			flags |= sdl.WINDOW_FULLSCREEN
		}
	} else {
		flags |= sdl.WINDOW_HIDDEN
	}
	if size.X <= 0 || size.Y <= 0 {
		size = image.Pt(1, 1)
	}

	win, err := sdl.CreateWindow(title, sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED,
		int32(size.X), int32(size.Y), flags)
	if err != nil {
		return nil, fmt.Errorf("window: sdl window creation failed: %w", err)
	}
	glc, err := win.GLCreateContext()
	if err != nil {
		win.Destroy()
		return nil, fmt.Errorf("window: sdl context creation failed: %w", err)
	}
	return &sdlContext{win: win, glc: glc}, nil
}

func (p *sdlPlatform) GetProcAddress(name string) uintptr {
	return uintptr(sdl.GLGetProcAddress(name))
}

func (p *sdlPlatform) Functions() gl.Functions {
	return loadGLFunctions()
}

func (p *sdlPlatform) desktop() VideoMode {
	dm, err := sdl.GetDesktopDisplayMode(0)
	if err != nil {
		return VideoMode{}
	}
	return VideoMode{
		Size:         image.Pt(int(dm.W), int(dm.H)),
		BitsPerPixel: bitsPerPixel(dm.Format),
	}
}

func (p *sdlPlatform) modes() []VideoMode {
	n, err := sdl.GetNumDisplayModes(0)
	if err != nil {
		return nil
	}
	var modes []VideoMode
	for i := 0; i < n; i++ {
		dm, err := sdl.GetDisplayMode(0, i)
		if err != nil {
			continue
		}
		m := VideoMode{
			Size:         image.Pt(int(dm.W), int(dm.H)),
			BitsPerPixel: bitsPerPixel(dm.Format),
		}
		// The display reports one entry per refresh rate.
		if !slices.Contains(modes, m) {
			modes = append(modes, m)
		}
	}
	return modes
}

// bitsPerPixel unpacks the depth byte of an SDL pixel format value, the
// way the SDL_BITSPERPIXEL macro does.
func bitsPerPixel(format uint32) int {
	return int(format >> 8 & 0xff)
}

func (p *sdlPlatform) attach(w *Window) backendWindow {
	win := w.ctx.NativeWindow().(*sdl.Window)
	if id, err := win.GetID(); err == nil {
		p.mu.Lock()
		p.windows[id] = w
		p.mu.Unlock()
	}
	return &sdlWindow{win: win}
}

func (p *sdlPlatform) detach(w *Window) {
	win, ok := w.ctx.NativeWindow().(*sdl.Window)
	if !ok {
		return
	}
	if id, err := win.GetID(); err == nil {
		p.mu.Lock()
		delete(p.windows, id)
		p.mu.Unlock()
	}
}

func (p *sdlPlatform) pump() {
	for ev := sdl.PollEvent(); ev != nil; ev = sdl.PollEvent() {
		p.dispatch(ev)
	}
}

func (p *sdlPlatform) wait() {
	if ev := sdl.WaitEvent(); ev != nil {
		p.dispatch(ev)
	}
}

func (p *sdlPlatform) byID(id uint32) *Window {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.windows[id]
}

func (p *sdlPlatform) dispatch(ev sdl.Event) {
	switch e := ev.(type) {
	case *sdl.QuitEvent:
		p.mu.Lock()
		for _, w := range p.windows {
			w.queue.push(CloseEvent{})
		}
		p.mu.Unlock()
	case *sdl.WindowEvent:
		w := p.byID(e.WindowID)
		if w == nil {
			return
		}
		switch e.Event {
		case sdl.WINDOWEVENT_CLOSE:
			w.queue.push(CloseEvent{})
		case sdl.WINDOWEVENT_SIZE_CHANGED:
			w.queue.push(ResizeEvent{Size: image.Pt(int(e.Data1), int(e.Data2))})
		case sdl.WINDOWEVENT_FOCUS_GAINED:
			w.queue.push(FocusEvent{Focus: true})
		case sdl.WINDOWEVENT_FOCUS_LOST:
			w.queue.push(FocusEvent{Focus: false})
		}
	case *sdl.KeyboardEvent:
		w := p.byID(e.WindowID)
		if w == nil {
			return
		}
		st := Press
		if e.Type == sdl.KEYUP {
			st = Release
		}
		w.queue.push(KeyEvent{
			Name:      sdlKeyName(e.Keysym.Sym),
			Modifiers: sdlMods(e.Keysym.Mod),
			State:     st,
		})
	case *sdl.TextInputEvent:
		w := p.byID(e.WindowID)
		if w == nil {
			return
		}
		for _, r := range textString(e.Text[:]) {
			w.queue.push(TextEvent{Rune: r})
		}
	case *sdl.MouseMotionEvent:
		w := p.byID(e.WindowID)
		if w == nil {
			return
		}
		w.queue.push(MouseMoveEvent{Position: f32.Pt(float32(e.X), float32(e.Y))})
	case *sdl.MouseButtonEvent:
		w := p.byID(e.WindowID)
		if w == nil {
			return
		}
		var btn MouseButton
		switch e.Button {
		case sdl.BUTTON_LEFT:
			btn = MouseLeft
		case sdl.BUTTON_RIGHT:
			btn = MouseRight
		case sdl.BUTTON_MIDDLE:
			btn = MouseMiddle
		default:
			return
		}
		st := Press
		if e.State == sdl.RELEASED {
			st = Release
		}
		w.queue.push(MouseButtonEvent{
			Button:   btn,
			State:    st,
			Position: f32.Pt(float32(e.X), float32(e.Y)),
		})
	case *sdl.MouseWheelEvent:
		w := p.byID(e.WindowID)
		if w == nil {
			return
		}
		x, y, _ := sdl.GetMouseState()
		w.queue.push(WheelEvent{
			Scroll:   f32.Pt(float32(e.X), float32(e.Y)),
			Position: f32.Pt(float32(x), float32(y)),
		})
	}
}

func textString(b []byte) string {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	return string(b)
}

// sdlContext pairs the GL context with the window it was created from,
// since SDL makes a context current relative to a window.
type sdlContext struct {
	win *sdl.Window
	glc sdl.GLContext
}

func (c *sdlContext) MakeCurrent() error {
	return c.win.GLMakeCurrent(c.glc)
}

func (c *sdlContext) ReleaseCurrent() error {
	return c.win.GLMakeCurrent(nil)
}

func (c *sdlContext) SwapBuffers() error {
	c.win.GLSwap()
	return nil
}

func (c *sdlContext) Destroy() {
	sdl.GLDeleteContext(c.glc)
	c.win.Destroy()
}

func (c *sdlContext) NativeWindow() any {
	return c.win
}

type sdlWindow struct {
	win *sdl.Window
}

func (w *sdlWindow) setTitle(title string) {
	w.win.SetTitle(title)
}

func (w *sdlWindow) setVisible(visible bool) {
	if visible {
		w.win.Show()
	} else {
		w.win.Hide()
	}
}

func (w *sdlWindow) size() image.Point {
	width, height := w.win.GetSize()
	return image.Pt(int(width), int(height))
}

func (w *sdlWindow) position() image.Point {
	x, y := w.win.GetPosition()
	return image.Pt(int(x), int(y))
}

func (w *sdlWindow) setPosition(pos image.Point) {
	w.win.SetPosition(int32(pos.X), int32(pos.Y))
}

func (w *sdlWindow) requestFocus() {
	w.win.Raise()
}

func (w *sdlWindow) hasFocus() bool {
	return w.win.GetFlags()&sdl.WINDOW_INPUT_FOCUS != 0
}

func (w *sdlWindow) setCursorVisible(visible bool) {
	toggle := sdl.DISABLE
	if visible {
		toggle = sdl.ENABLE
	}
	sdl.ShowCursor(toggle)
}

func (w *sdlWindow) setSwapInterval(interval int) {
	sdl.GLSetSwapInterval(interval)
}

var sdlKeyNames = map[sdl.Keycode]string{
	sdl.K_ESCAPE:    "Escape",
	sdl.K_RETURN:    "Enter",
	sdl.K_TAB:       "Tab",
	sdl.K_BACKSPACE: "Backspace",
	sdl.K_INSERT:    "Insert",
	sdl.K_DELETE:    "Delete",
	sdl.K_RIGHT:     "Right",
	sdl.K_LEFT:      "Left",
	sdl.K_DOWN:      "Down",
	sdl.K_UP:        "Up",
	sdl.K_PAGEUP:    "PageUp",
	sdl.K_PAGEDOWN:  "PageDown",
	sdl.K_HOME:      "Home",
	sdl.K_END:       "End",
	sdl.K_SPACE:     "Space",
	sdl.K_F1:        "F1",
	sdl.K_F2:        "F2",
	sdl.K_F3:        "F3",
	sdl.K_F4:        "F4",
	sdl.K_F5:        "F5",
	sdl.K_F6:        "F6",
	sdl.K_F7:        "F7",
	sdl.K_F8:        "F8",
	sdl.K_F9:        "F9",
	sdl.K_F10:       "F10",
	sdl.K_F11:       "F11",
	sdl.K_F12:       "F12",
	sdl.K_LSHIFT:    "LShift",
	sdl.K_LCTRL:     "LCtrl",
	sdl.K_LALT:      "LAlt",
	sdl.K_LGUI:      "LSuper",
	sdl.K_RSHIFT:    "RShift",
	sdl.K_RCTRL:     "RCtrl",
	sdl.K_RALT:      "RAlt",
	sdl.K_RGUI:      "RSuper",
}

func sdlKeyName(sym sdl.Keycode) string {
	if name, ok := sdlKeyNames[sym]; ok {
		return name
	}
	if name := sdl.GetKeyName(sym); name != "" {
		return strings.ToUpper(name)
	}
	return "Unknown"
}

func sdlMods(mod uint16) Modifiers {
	var m Modifiers
	if mod&sdl.KMOD_CTRL != 0 {
		m |= ModCtrl
	}
	if mod&sdl.KMOD_SHIFT != 0 {
		m |= ModShift
	}
	if mod&sdl.KMOD_ALT != 0 {
		m |= ModAlt
	}
	if mod&sdl.KMOD_GUI != 0 {
		m |= ModSuper
	}
	return m
}
