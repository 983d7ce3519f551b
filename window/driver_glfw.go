// SPDX-License-Identifier: Unlicense OR MIT

//go:build !sdl

package window

import (
	"fmt"
	"image"
	"strings"
	"sync"

	"github.com/go-gl/glfw/v3.3/glfw"
	"golang.org/x/exp/slices"

	"github.com/menuet/VRSFML/f32"
	"github.com/menuet/VRSFML/internal/gl"
	"github.com/menuet/VRSFML/internal/glctx"
)

func init() {
	newPlatform = newGLFWPlatform
}

// glfwPlatform drives windows and contexts through GLFW. All of its
// methods except GetProcAddress and Functions must be called from the
// main thread, which the package init arranges by locking it.
type glfwPlatform struct {
	mu      sync.Mutex
	windows map[*glfw.Window]*Window
}

func newGLFWPlatform() (platform, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("window: glfw init failed: %w", err)
	}
	return &glfwPlatform{windows: make(map[*glfw.Window]*Window)}, nil
}

func (p *glfwPlatform) NewContext(shared glctx.NativeContext, cfg glctx.ContextConfig) (glctx.NativeContext, error) {
	var share *glfw.Window
	if shared != nil {
		share = shared.(*glfwContext).win
	}

	glfw.DefaultWindowHints()
	if s := cfg.Settings; s != nil {
		glfw.WindowHint(glfw.DepthBits, int(s.DepthBits))
		glfw.WindowHint(glfw.StencilBits, int(s.StencilBits))
		glfw.WindowHint(glfw.Samples, int(s.AntialiasingLevel))
		if s.SRGBCapable {
			glfw.WindowHint(glfw.SRGBCapable, glfw.True)
		}
		// Requesting a versioned context below 3.2 makes some drivers
		// fail outright, so legacy requests keep the default hints and
		// take whatever the driver hands back.
		if s.MajorVersion >= 3 {
			glfw.WindowHint(glfw.ContextVersionMajor, int(s.MajorVersion))
			glfw.WindowHint(glfw.ContextVersionMinor, int(s.MinorVersion))
			if s.AttributeFlags&ContextCore != 0 {
				glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
				glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
			}
			if s.AttributeFlags&ContextDebug != 0 {
				glfw.WindowHint(glfw.OpenGLDebugContext, glfw.True)
			}
		}
	}

	title := ""
	size := cfg.Size
	var monitor *glfw.Monitor
	if w := cfg.Window; w != nil {
		title = w.Title
		size = w.Size
		glfw.WindowHint(glfw.Visible, hint(w.Visible))
		glfw.WindowHint(glfw.Decorated, hint(w.Decorated))
		glfw.WindowHint(glfw.Resizable, hint(w.Resizable))
		if w.Fullscreen {
			monitor = glfw.GetPrimaryMonitor()
		}
	} else {
		glfw.WindowHint(glfw.Visible, glfw.False)
	}
	if size.X <= 0 || size.Y <= 0 {
		size = image.Pt(1, 1)
	}

	win, err := glfw.CreateWindow(size.X, size.Y, title, monitor, share)
	if err != nil {
		return nil, fmt.Errorf("window: glfw window creation failed: %w", err)
	}
	return &glfwContext{win: win}, nil
}

func hint(b bool) int {
	if b {
		return glfw.True
	}
	return glfw.False
}

func (p *glfwPlatform) GetProcAddress(name string) uintptr {
	return uintptr(glfw.GetProcAddress(name))
}

func (p *glfwPlatform) Functions() gl.Functions {
	return loadGLFunctions()
}

func (p *glfwPlatform) desktop() VideoMode {
	mon := glfw.GetPrimaryMonitor()
	if mon == nil {
		return VideoMode{}
	}
	vm := mon.GetVideoMode()
	if vm == nil {
		return VideoMode{}
	}
	return VideoMode{
		Size:         image.Pt(vm.Width, vm.Height),
		BitsPerPixel: vm.RedBits + vm.GreenBits + vm.BlueBits,
	}
}

func (p *glfwPlatform) modes() []VideoMode {
	mon := glfw.GetPrimaryMonitor()
	if mon == nil {
		return nil
	}
	var modes []VideoMode
	for _, vm := range mon.GetVideoModes() {
		m := VideoMode{
			Size:         image.Pt(vm.Width, vm.Height),
			BitsPerPixel: vm.RedBits + vm.GreenBits + vm.BlueBits,
		}
		// Monitors report one entry per refresh rate.
		if !slices.Contains(modes, m) {
			modes = append(modes, m)
		}
	}
	return modes
}

func (p *glfwPlatform) attach(w *Window) backendWindow {
	win := w.ctx.NativeWindow().(*glfw.Window)
	p.mu.Lock()
	p.windows[win] = w
	p.mu.Unlock()

	win.SetCloseCallback(func(_ *glfw.Window) {
		w.queue.push(CloseEvent{})
	})
	win.SetSizeCallback(func(_ *glfw.Window, width, height int) {
		w.queue.push(ResizeEvent{Size: image.Pt(width, height)})
	})
	win.SetFocusCallback(func(_ *glfw.Window, focused bool) {
		w.queue.push(FocusEvent{Focus: focused})
	})
	win.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		st := Press
		if action == glfw.Release {
			st = Release
		}
		w.queue.push(KeyEvent{
			Name:      glfwKeyName(key, scancode),
			Modifiers: glfwMods(mods),
			State:     st,
		})
	})
	win.SetCharCallback(func(_ *glfw.Window, char rune) {
		w.queue.push(TextEvent{Rune: char})
	})
	win.SetCursorPosCallback(func(_ *glfw.Window, x, y float64) {
		w.queue.push(MouseMoveEvent{Position: f32.Pt(float32(x), float32(y))})
	})
	win.SetMouseButtonCallback(func(gw *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
		var btn MouseButton
		switch button {
		case glfw.MouseButtonLeft:
			btn = MouseLeft
		case glfw.MouseButtonRight:
			btn = MouseRight
		case glfw.MouseButtonMiddle:
			btn = MouseMiddle
		default:
			return
		}
		st := Press
		if action == glfw.Release {
			st = Release
		}
		x, y := gw.GetCursorPos()
		w.queue.push(MouseButtonEvent{
			Button:   btn,
			State:    st,
			Position: f32.Pt(float32(x), float32(y)),
		})
	})
	win.SetScrollCallback(func(gw *glfw.Window, xoff, yoff float64) {
		x, y := gw.GetCursorPos()
		w.queue.push(WheelEvent{
			Scroll:   f32.Pt(float32(xoff), float32(yoff)),
			Position: f32.Pt(float32(x), float32(y)),
		})
	})

	return &glfwWindow{win: win}
}

func (p *glfwPlatform) detach(w *Window) {
	win, ok := w.ctx.NativeWindow().(*glfw.Window)
	if !ok {
		return
	}
	p.mu.Lock()
	delete(p.windows, win)
	p.mu.Unlock()
}

func (p *glfwPlatform) pump() {
	glfw.PollEvents()
}

func (p *glfwPlatform) wait() {
	glfw.WaitEvents()
}

// glfwContext adapts a GLFW window to the context interface. GLFW ties
// every GL context to a window, so offscreen contexts are hidden windows.
type glfwContext struct {
	win *glfw.Window
}

func (c *glfwContext) MakeCurrent() error {
	c.win.MakeContextCurrent()
	return nil
}

func (c *glfwContext) ReleaseCurrent() error {
	glfw.DetachCurrentContext()
	return nil
}

func (c *glfwContext) SwapBuffers() error {
	c.win.SwapBuffers()
	return nil
}

func (c *glfwContext) Destroy() {
	c.win.Destroy()
}

func (c *glfwContext) NativeWindow() any {
	return c.win
}

type glfwWindow struct {
	win *glfw.Window
}

func (w *glfwWindow) setTitle(title string) {
	w.win.SetTitle(title)
}

func (w *glfwWindow) setVisible(visible bool) {
	if visible {
		w.win.Show()
	} else {
		w.win.Hide()
	}
}

func (w *glfwWindow) size() image.Point {
	width, height := w.win.GetSize()
	return image.Pt(width, height)
}

func (w *glfwWindow) position() image.Point {
	x, y := w.win.GetPos()
	return image.Pt(x, y)
}

func (w *glfwWindow) setPosition(pos image.Point) {
	w.win.SetPos(pos.X, pos.Y)
}

func (w *glfwWindow) requestFocus() {
	w.win.Focus()
}

func (w *glfwWindow) hasFocus() bool {
	return w.win.GetAttrib(glfw.Focused) == glfw.True
}

func (w *glfwWindow) setCursorVisible(visible bool) {
	mode := glfw.CursorHidden
	if visible {
		mode = glfw.CursorNormal
	}
	w.win.SetInputMode(glfw.CursorMode, mode)
}

func (w *glfwWindow) setSwapInterval(interval int) {
	glfw.SwapInterval(interval)
}

var glfwKeyNames = map[glfw.Key]string{
	glfw.KeyEscape:       "Escape",
	glfw.KeyEnter:        "Enter",
	glfw.KeyTab:          "Tab",
	glfw.KeyBackspace:    "Backspace",
	glfw.KeyInsert:       "Insert",
	glfw.KeyDelete:       "Delete",
	glfw.KeyRight:        "Right",
	glfw.KeyLeft:         "Left",
	glfw.KeyDown:         "Down",
	glfw.KeyUp:           "Up",
	glfw.KeyPageUp:       "PageUp",
	glfw.KeyPageDown:     "PageDown",
	glfw.KeyHome:         "Home",
	glfw.KeyEnd:          "End",
	glfw.KeySpace:        "Space",
	glfw.KeyF1:           "F1",
	glfw.KeyF2:           "F2",
	glfw.KeyF3:           "F3",
	glfw.KeyF4:           "F4",
	glfw.KeyF5:           "F5",
	glfw.KeyF6:           "F6",
	glfw.KeyF7:           "F7",
	glfw.KeyF8:           "F8",
	glfw.KeyF9:           "F9",
	glfw.KeyF10:          "F10",
	glfw.KeyF11:          "F11",
	glfw.KeyF12:          "F12",
	glfw.KeyLeftShift:    "LShift",
	glfw.KeyLeftControl:  "LCtrl",
	glfw.KeyLeftAlt:      "LAlt",
	glfw.KeyLeftSuper:    "LSuper",
	glfw.KeyRightShift:   "RShift",
	glfw.KeyRightControl: "RCtrl",
	glfw.KeyRightAlt:     "RAlt",
	glfw.KeyRightSuper:   "RSuper",
}

func glfwKeyName(key glfw.Key, scancode int) string {
	if name, ok := glfwKeyNames[key]; ok {
		return name
	}
	if name := glfw.GetKeyName(key, scancode); name != "" {
		return strings.ToUpper(name)
	}
	return "Unknown"
}

func glfwMods(mods glfw.ModifierKey) Modifiers {
	var m Modifiers
	if mods&glfw.ModControl != 0 {
		m |= ModCtrl
	}
	if mods&glfw.ModShift != 0 {
		m |= ModShift
	}
	if mods&glfw.ModAlt != 0 {
		m |= ModAlt
	}
	if mods&glfw.ModSuper != 0 {
		m |= ModSuper
	}
	return m
}
