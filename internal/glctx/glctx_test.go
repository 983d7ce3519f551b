// SPDX-License-Identifier: Unlicense OR MIT

package glctx

import (
	"bytes"
	"errors"
	"image"
	"strings"
	"sync"
	"testing"

	"github.com/menuet/VRSFML/errstream"
	"github.com/menuet/VRSFML/internal/gl"
)

// stubGL is a do-nothing gl.Functions for embedding in test fakes.
type stubGL struct{}

func (stubGL) Enable(gl.Enum)                 {}
func (stubGL) GetError() gl.Enum              { return gl.NO_ERROR }
func (stubGL) GetInteger(gl.Enum) int         { return 0 }
func (stubGL) GetString(gl.Enum) string       { return "" }
func (stubGL) GetStringi(gl.Enum, int) string { return "" }
func (stubGL) IsEnabled(gl.Enum) bool         { return false }

func (stubGL) GenTexture() uint32          { return 0 }
func (stubGL) DeleteTexture(uint32)        {}
func (stubGL) BindTexture(gl.Enum, uint32) {}
func (stubGL) TexImage2D(gl.Enum, int, gl.Enum, int, int, gl.Enum, gl.Enum, []byte) {
}
func (stubGL) TexSubImage2D(gl.Enum, int, int, int, int, int, gl.Enum, gl.Enum, []byte) {
}
func (stubGL) TexParameteri(gl.Enum, gl.Enum, int) {}
func (stubGL) PixelStorei(gl.Enum, int)            {}

func (stubGL) GenBuffer() uint32                   { return 0 }
func (stubGL) DeleteBuffer(uint32)                 {}
func (stubGL) BindBuffer(gl.Enum, uint32)          {}
func (stubGL) BufferData(gl.Enum, []byte, gl.Enum) {}
func (stubGL) BufferSubData(gl.Enum, int, []byte)  {}
func (stubGL) CopyBufferSubData(gl.Enum, gl.Enum, int, int, int) {
}

func (stubGL) GenFramebuffer() uint32                                      { return 0 }
func (stubGL) DeleteFramebuffer(uint32)                                    {}
func (stubGL) BindFramebuffer(gl.Enum, uint32)                             {}
func (stubGL) FramebufferTexture2D(gl.Enum, gl.Enum, gl.Enum, uint32, int) {}
func (stubGL) CheckFramebufferStatus(gl.Enum) gl.Enum                      { return gl.FRAMEBUFFER_COMPLETE }
func (stubGL) Flush()                                                      {}

// fakeGL mimics the query surface of a driver. With modern set the
// version and indexed extension queries work; without it they raise
// INVALID_ENUM like implementations before 3.0 do.
type fakeGL struct {
	stubGL

	modern        bool
	major, minor  int
	versionString string
	contextFlags  int
	profileMask   int
	extensions    []string
	legacyExts    string
	srgbSticks    bool

	lastError gl.Enum
	enabled   map[gl.Enum]bool
}

func (f *fakeGL) GetError() gl.Enum {
	e := f.lastError
	f.lastError = gl.NO_ERROR
	return e
}

func (f *fakeGL) GetInteger(pname gl.Enum) int {
	switch pname {
	case gl.MAJOR_VERSION:
		if !f.modern {
			f.lastError = gl.INVALID_ENUM
			return 0
		}
		return f.major
	case gl.MINOR_VERSION:
		if !f.modern {
			f.lastError = gl.INVALID_ENUM
			return 0
		}
		return f.minor
	case gl.NUM_EXTENSIONS:
		if !f.modern {
			f.lastError = gl.INVALID_ENUM
			return 0
		}
		return len(f.extensions)
	case gl.CONTEXT_FLAGS:
		return f.contextFlags
	case gl.CONTEXT_PROFILE_MASK:
		return f.profileMask
	}
	return 0
}

func (f *fakeGL) GetString(name gl.Enum) string {
	switch name {
	case gl.VERSION:
		return f.versionString
	case gl.EXTENSIONS:
		return f.legacyExts
	}
	return ""
}

func (f *fakeGL) GetStringi(name gl.Enum, index int) string {
	if name == gl.EXTENSIONS && index >= 0 && index < len(f.extensions) {
		return f.extensions[index]
	}
	f.lastError = gl.INVALID_ENUM
	return ""
}

func (f *fakeGL) Enable(cap gl.Enum) {
	if cap == gl.FRAMEBUFFER_SRGB && !f.srgbSticks {
		return
	}
	if f.enabled == nil {
		f.enabled = make(map[gl.Enum]bool)
	}
	f.enabled[cap] = true
}

func (f *fakeGL) IsEnabled(cap gl.Enum) bool {
	return f.enabled[cap]
}

type fakeNative struct {
	drv       *fakeDriver
	window    *WindowConfig
	destroyed bool
	swaps     int
}

func (n *fakeNative) MakeCurrent() error {
	d := n.drv
	d.mu.Lock()
	defer d.mu.Unlock()
	if n.destroyed {
		return errors.New("context gone")
	}
	d.current[goid()] = n
	return nil
}

func (n *fakeNative) ReleaseCurrent() error {
	d := n.drv
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.current, goid())
	return nil
}

func (n *fakeNative) SwapBuffers() error {
	n.drv.mu.Lock()
	defer n.drv.mu.Unlock()
	n.swaps++
	return nil
}

func (n *fakeNative) Destroy() {
	n.drv.mu.Lock()
	defer n.drv.mu.Unlock()
	n.destroyed = true
}

func (n *fakeNative) NativeWindow() any {
	if n.window == nil {
		return nil
	}
	return n.window
}

// fakeDriver hands out fakeNative contexts and records what each creation
// call observed, so tests can assert the creation protocol.
type fakeDriver struct {
	mu    sync.Mutex
	funcs *fakeGL
	procs map[string]uintptr

	// grant, when set, overrides the pixel-format fields a creation
	// grants. Unset means the driver grants exactly what was asked.
	grant      *Settings
	failCreate bool

	current     map[uint64]*fakeNative
	created     []*fakeNative
	sharedSeen  []NativeContext
	currentSeen []*fakeNative
}

func (d *fakeDriver) NewContext(shared NativeContext, cfg ContextConfig) (NativeContext, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.failCreate {
		return nil, errors.New("creation refused")
	}
	d.sharedSeen = append(d.sharedSeen, shared)
	d.currentSeen = append(d.currentSeen, d.current[goid()])
	if d.grant != nil && cfg.Settings != nil {
		cfg.Settings.DepthBits = d.grant.DepthBits
		cfg.Settings.StencilBits = d.grant.StencilBits
		cfg.Settings.AntialiasingLevel = d.grant.AntialiasingLevel
		cfg.Settings.SRGBCapable = d.grant.SRGBCapable
	}
	n := &fakeNative{drv: d, window: cfg.Window}
	d.created = append(d.created, n)
	return n, nil
}

func (d *fakeDriver) GetProcAddress(name string) uintptr {
	return d.procs[name]
}

func (d *fakeDriver) Functions() gl.Functions {
	if d.funcs == nil {
		return nil
	}
	return d.funcs
}

func newFake() *fakeDriver {
	return &fakeDriver{
		funcs:   &fakeGL{modern: true, major: 4, minor: 1, srgbSticks: true},
		current: make(map[uint64]*fakeNative),
	}
}

func newGraphics(t *testing.T, d *fakeDriver) *Graphics {
	t.Helper()
	g, err := New(d)
	if err != nil {
		t.Fatalf("creating graphics: %v", err)
	}
	t.Cleanup(g.Release)
	return g
}

func captureDiagnostics(t *testing.T) *bytes.Buffer {
	t.Helper()
	old := errstream.Output()
	var buf bytes.Buffer
	errstream.SetOutput(&buf)
	t.Cleanup(func() { errstream.SetOutput(old) })
	return &buf
}

func TestNewLeavesAnchorInactive(t *testing.T) {
	d := newFake()
	g := newGraphics(t, d)
	if got := ActiveContextID(); got != 0 {
		t.Errorf("active context after New: got %d, expected 0", got)
	}
	if len(d.created) != 1 {
		t.Fatalf("native contexts created: got %d, expected 1", len(d.created))
	}
	if g.SharedContext().ID() == 0 {
		t.Errorf("anchor context has identity 0")
	}
}

func TestCreateContextProtocol(t *testing.T) {
	d := newFake()
	g := newGraphics(t, d)
	ctx, err := g.CreateContext(DefaultSettings(), image.Pt(64, 64), 32)
	if err != nil {
		t.Fatalf("creating context: %v", err)
	}
	defer ctx.Destroy()

	anchor := d.created[0]
	if d.sharedSeen[1] != NativeContext(anchor) {
		t.Errorf("share anchor passed to driver: got %v, expected the anchor context", d.sharedSeen[1])
	}
	if d.currentSeen[1] != anchor {
		t.Errorf("context current during creation: got %v, expected the anchor context", d.currentSeen[1])
	}
	if got := ActiveContext(); got != ctx {
		t.Errorf("active context after creation: got %v, expected the new context", got)
	}
	if ctx.ID() == 0 || ctx.ID() == g.SharedContext().ID() {
		t.Errorf("context identity %d collides with anchor %d", ctx.ID(), g.SharedContext().ID())
	}
}

func TestCreateWindowContext(t *testing.T) {
	d := newFake()
	g := newGraphics(t, d)
	win := WindowConfig{Title: "t", Size: image.Pt(200, 100), Visible: true}
	ctx, err := g.CreateWindowContext(DefaultSettings(), win, 32)
	if err != nil {
		t.Fatalf("creating window context: %v", err)
	}
	defer ctx.Destroy()
	w, ok := ctx.NativeWindow().(*WindowConfig)
	if !ok || w.Title != "t" {
		t.Errorf("native window: got %v, expected the window handed to the driver", ctx.NativeWindow())
	}
}

func TestContextIdentitiesDistinct(t *testing.T) {
	d := newFake()
	g := newGraphics(t, d)
	var prev uint64
	for i := 0; i < 4; i++ {
		ctx, err := g.CreateContext(DefaultSettings(), image.Pt(1, 1), 32)
		if err != nil {
			t.Fatalf("creating context %d: %v", i, err)
		}
		if ctx.ID() <= prev {
			t.Errorf("context identity %d not above previous %d", ctx.ID(), prev)
		}
		prev = ctx.ID()
		ctx.Destroy()
	}
}

func TestCreateFailureRestoresAnchor(t *testing.T) {
	d := newFake()
	g := newGraphics(t, d)
	d.mu.Lock()
	d.failCreate = true
	d.mu.Unlock()
	if _, err := g.CreateContext(DefaultSettings(), image.Pt(1, 1), 32); err == nil {
		t.Fatalf("creating context: got nil error, expected failure")
	}
	if got := ActiveContextID(); got != 0 {
		t.Errorf("active context after failed creation: got %d, expected 0", got)
	}
}

func TestNewWithoutFunctions(t *testing.T) {
	d := newFake()
	d.funcs = nil
	if _, err := New(d); err == nil {
		t.Fatalf("creating graphics without entry points: got nil error, expected failure")
	}
}

func TestVersionFromModernQueries(t *testing.T) {
	d := newFake()
	d.funcs.major, d.funcs.minor = 4, 6
	g := newGraphics(t, d)
	s := g.SharedContext().Settings()
	if s.MajorVersion != 4 || s.MinorVersion != 6 {
		t.Errorf("version: got %d.%d, expected 4.6", s.MajorVersion, s.MinorVersion)
	}
}

func TestVersionFromString(t *testing.T) {
	d := newFake()
	d.funcs.modern = false
	d.funcs.versionString = "2.1 Mesa 20.3.5"
	g := newGraphics(t, d)
	s := g.SharedContext().Settings()
	if s.MajorVersion != 2 || s.MinorVersion != 1 {
		t.Errorf("version: got %d.%d, expected 2.1", s.MajorVersion, s.MinorVersion)
	}
}

func TestVersionUnknownDefaultsTo11(t *testing.T) {
	buf := captureDiagnostics(t)
	d := newFake()
	d.funcs.modern = false
	d.funcs.versionString = ""
	g := newGraphics(t, d)
	s := g.SharedContext().Settings()
	if s.MajorVersion != 1 || s.MinorVersion != 1 {
		t.Errorf("version: got %d.%d, expected 1.1", s.MajorVersion, s.MinorVersion)
	}
	if !strings.Contains(buf.String(), "assuming 1.1") {
		t.Errorf("diagnostics %q do not mention the 1.1 default", buf.String())
	}
}

func TestProfileDetection(t *testing.T) {
	tests := []struct {
		name     string
		m        func(*fakeGL)
		expected Attribute
	}{
		{"4.1 core profile", func(f *fakeGL) {
			f.major, f.minor = 4, 1
			f.profileMask = gl.CONTEXT_CORE_PROFILE_BIT
		}, AttributeCore},
		{"4.1 compatibility profile", func(f *fakeGL) {
			f.major, f.minor = 4, 1
			f.profileMask = gl.CONTEXT_COMPATIBILITY_PROFILE_BIT
		}, AttributeDefault},
		{"3.1 without ARB_compatibility", func(f *fakeGL) {
			f.major, f.minor = 3, 1
			f.extensions = []string{"GL_ARB_debug_output"}
		}, AttributeCore},
		{"3.1 with ARB_compatibility", func(f *fakeGL) {
			f.major, f.minor = 3, 1
			f.extensions = []string{"GL_ARB_debug_output", "GL_ARB_compatibility"}
		}, AttributeDefault},
		{"3.3 debug core", func(f *fakeGL) {
			f.major, f.minor = 3, 3
			f.contextFlags = gl.CONTEXT_FLAG_DEBUG_BIT
			f.profileMask = gl.CONTEXT_CORE_PROFILE_BIT
		}, AttributeCore | AttributeDebug},
		{"legacy 2.1", func(f *fakeGL) {
			f.modern = false
			f.versionString = "2.1"
		}, AttributeDefault},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			d := newFake()
			test.m(d.funcs)
			g := newGraphics(t, d)
			if got := g.SharedContext().Settings().AttributeFlags; got != test.expected {
				t.Errorf("attribute flags: got %v, expected %v", got, test.expected)
			}
		})
	}
}

func TestAntialiasingNegotiation(t *testing.T) {
	buf := captureDiagnostics(t)
	d := newFake()
	d.grant = &Settings{AntialiasingLevel: 2}
	g := newGraphics(t, d)

	req := DefaultSettings()
	req.AntialiasingLevel = 4
	ctx, err := g.CreateContext(req, image.Pt(1, 1), 32)
	if err != nil {
		t.Fatalf("creating context: %v", err)
	}
	if got := ctx.Settings().AntialiasingLevel; got != 2 {
		t.Errorf("antialiasing level: got %d, expected 2", got)
	}
	if !d.funcs.IsEnabled(gl.MULTISAMPLE) {
		t.Errorf("multisampling not enabled for a granted level")
	}
	if !strings.Contains(buf.String(), "does not fully meet") {
		t.Errorf("diagnostics %q do not warn about the antialiasing shortfall", buf.String())
	}
	ctx.Destroy()
}

func TestAntialiasingUnrequestedStaysOff(t *testing.T) {
	d := newFake()
	d.grant = &Settings{AntialiasingLevel: 2}
	g := newGraphics(t, d)
	ctx, err := g.CreateContext(DefaultSettings(), image.Pt(1, 1), 32)
	if err != nil {
		t.Fatalf("creating context: %v", err)
	}
	defer ctx.Destroy()
	if got := ctx.Settings().AntialiasingLevel; got != 0 {
		t.Errorf("antialiasing level: got %d, expected 0", got)
	}
	if d.funcs.IsEnabled(gl.MULTISAMPLE) {
		t.Errorf("multisampling enabled without a request")
	}
}

func TestSRGBNegotiation(t *testing.T) {
	d := newFake()
	d.grant = &Settings{SRGBCapable: true}
	g := newGraphics(t, d)
	req := DefaultSettings()
	req.SRGBCapable = true
	ctx, err := g.CreateContext(req, image.Pt(1, 1), 32)
	if err != nil {
		t.Fatalf("creating context: %v", err)
	}
	defer ctx.Destroy()
	if !ctx.Settings().SRGBCapable {
		t.Errorf("sRGB capability lost on a capable surface")
	}
	if !d.funcs.IsEnabled(gl.FRAMEBUFFER_SRGB) {
		t.Errorf("sRGB framebuffer writes not enabled")
	}
}

func TestSRGBDowngradeWhenEnableFails(t *testing.T) {
	buf := captureDiagnostics(t)
	d := newFake()
	d.funcs.srgbSticks = false
	d.grant = &Settings{SRGBCapable: true}
	g := newGraphics(t, d)
	req := DefaultSettings()
	req.SRGBCapable = true
	ctx, err := g.CreateContext(req, image.Pt(1, 1), 32)
	if err != nil {
		t.Fatalf("creating context: %v", err)
	}
	defer ctx.Destroy()
	if ctx.Settings().SRGBCapable {
		t.Errorf("sRGB capability kept although enabling failed")
	}
	if !strings.Contains(buf.String(), "sRGB") {
		t.Errorf("diagnostics %q do not mention the sRGB downgrade", buf.String())
	}
}

func TestSettingsShortfallWarning(t *testing.T) {
	buf := captureDiagnostics(t)
	d := newFake()
	d.grant = &Settings{}
	g := newGraphics(t, d)
	req := DefaultSettings()
	req.DepthBits = 24
	req.StencilBits = 8
	ctx, err := g.CreateContext(req, image.Pt(1, 1), 32)
	if err != nil {
		t.Fatalf("creating context: %v", err)
	}
	defer ctx.Destroy()
	out := buf.String()
	if !strings.Contains(out, "does not fully meet") {
		t.Errorf("diagnostics %q do not warn about the shortfall", out)
	}
	if !strings.Contains(out, "[[VRSFML ERROR]]") {
		t.Errorf("diagnostics %q lack the error stream prefix", out)
	}
}

func TestSettingsMetExactlyStaysQuiet(t *testing.T) {
	buf := captureDiagnostics(t)
	d := newFake()
	g := newGraphics(t, d)
	req := DefaultSettings()
	req.DepthBits = 24
	ctx, err := g.CreateContext(req, image.Pt(1, 1), 32)
	if err != nil {
		t.Fatalf("creating context: %v", err)
	}
	defer ctx.Destroy()
	if buf.Len() != 0 {
		t.Errorf("unexpected diagnostics: %q", buf.String())
	}
}

func TestExtensionLookup(t *testing.T) {
	d := newFake()
	d.funcs.extensions = []string{"GL_ARB_framebuffer_object", "GL_EXT_texture_sRGB"}
	g := newGraphics(t, d)
	if !g.IsExtensionAvailable("GL_EXT_texture_sRGB") {
		t.Errorf("advertised extension not found")
	}
	if g.IsExtensionAvailable("GL_EXT_texture_compression_s3tc") {
		t.Errorf("unadvertised extension reported available")
	}
}

func TestExtensionLookupLegacy(t *testing.T) {
	d := newFake()
	d.funcs.modern = false
	d.funcs.versionString = "2.1"
	d.funcs.legacyExts = "GL_ARB_framebuffer_object GL_EXT_framebuffer_sRGB"
	g := newGraphics(t, d)
	if !g.IsExtensionAvailable("GL_EXT_framebuffer_sRGB") {
		t.Errorf("advertised extension not found on the legacy path")
	}
}

func TestGetFunction(t *testing.T) {
	d := newFake()
	d.procs = map[string]uintptr{"glFrobnicate": 42}
	g := newGraphics(t, d)
	if got := g.GetFunction("glFrobnicate"); got != 42 {
		t.Errorf("entry point address: got %d, expected 42", got)
	}
	if got := g.GetFunction("glMissing"); got != 0 {
		t.Errorf("missing entry point address: got %d, expected 0", got)
	}
}

func TestReleaseIdempotent(t *testing.T) {
	d := newFake()
	g := newGraphics(t, d)
	g.Release()
	g.Release()
	if !d.created[0].destroyed {
		t.Errorf("anchor context not destroyed by Release")
	}
}

func TestSharedWithoutDriver(t *testing.T) {
	if _, err := Shared(); err == nil {
		t.Errorf("process graphics without a registered driver: got nil error, expected failure")
	}
}

func TestPresent(t *testing.T) {
	d := newFake()
	g := newGraphics(t, d)
	ctx, err := g.CreateContext(DefaultSettings(), image.Pt(1, 1), 32)
	if err != nil {
		t.Fatalf("creating context: %v", err)
	}
	defer ctx.Destroy()
	if err := ctx.Present(); err != nil {
		t.Fatalf("presenting: %v", err)
	}
	if d.created[1].swaps != 1 {
		t.Errorf("buffer swaps: got %d, expected 1", d.created[1].swaps)
	}
}
