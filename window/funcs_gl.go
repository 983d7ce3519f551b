// SPDX-License-Identifier: Unlicense OR MIT

package window

import (
	"sync"
	"unsafe"

	gogl "github.com/go-gl/gl/v3.3-core/gl"

	"github.com/menuet/VRSFML/errstream"
	"github.com/menuet/VRSFML/internal/gl"
)

var (
	loadOnce sync.Once
	loadedGL gl.Functions
)

// loadGLFunctions binds the GL entry points through the process loader.
// The first call must happen while a context of the share group is
// current; the context core guarantees that by asking for the function
// table while constructing the shared context.
func loadGLFunctions() gl.Functions {
	loadOnce.Do(func() {
		if err := gogl.Init(); err != nil {
			errstream.Printf("could not load OpenGL entry points: %v", err)
			return
		}
		loadedGL = glFuncs{}
	})
	return loadedGL
}

// glFuncs implements gl.Functions on the go-gl bindings. All contexts in
// the process share one set of loaded entry points, which is sound
// because every context belongs to the same share group and pixel format
// family.
type glFuncs struct{}

func (glFuncs) Enable(cap gl.Enum) {
	gogl.Enable(uint32(cap))
}

func (glFuncs) GetError() gl.Enum {
	return gl.Enum(gogl.GetError())
}

func (glFuncs) GetInteger(pname gl.Enum) int {
	var v int32
	gogl.GetIntegerv(uint32(pname), &v)
	return int(v)
}

func (glFuncs) GetString(name gl.Enum) string {
	s := gogl.GetString(uint32(name))
	if s == nil {
		return ""
	}
	return gogl.GoStr(s)
}

func (glFuncs) GetStringi(name gl.Enum, index int) string {
	s := gogl.GetStringi(uint32(name), uint32(index))
	if s == nil {
		return ""
	}
	return gogl.GoStr(s)
}

func (glFuncs) IsEnabled(cap gl.Enum) bool {
	return gogl.IsEnabled(uint32(cap))
}

func (glFuncs) GenTexture() uint32 {
	var t uint32
	gogl.GenTextures(1, &t)
	return t
}

func (glFuncs) DeleteTexture(t uint32) {
	gogl.DeleteTextures(1, &t)
}

func (glFuncs) BindTexture(target gl.Enum, t uint32) {
	gogl.BindTexture(uint32(target), t)
}

func (glFuncs) TexImage2D(target gl.Enum, level int, internalFormat gl.Enum, width, height int, format, ty gl.Enum, data []byte) {
	gogl.TexImage2D(uint32(target), int32(level), int32(internalFormat), int32(width), int32(height), 0, uint32(format), uint32(ty), dataPtr(data))
}

func (glFuncs) TexSubImage2D(target gl.Enum, level, x, y, width, height int, format, ty gl.Enum, data []byte) {
	gogl.TexSubImage2D(uint32(target), int32(level), int32(x), int32(y), int32(width), int32(height), uint32(format), uint32(ty), dataPtr(data))
}

func (glFuncs) TexParameteri(target, pname gl.Enum, param int) {
	gogl.TexParameteri(uint32(target), uint32(pname), int32(param))
}

func (glFuncs) PixelStorei(pname gl.Enum, param int) {
	gogl.PixelStorei(uint32(pname), int32(param))
}

func (glFuncs) GenBuffer() uint32 {
	var b uint32
	gogl.GenBuffers(1, &b)
	return b
}

func (glFuncs) DeleteBuffer(b uint32) {
	gogl.DeleteBuffers(1, &b)
}

func (glFuncs) BindBuffer(target gl.Enum, b uint32) {
	gogl.BindBuffer(uint32(target), b)
}

func (glFuncs) BufferData(target gl.Enum, data []byte, usage gl.Enum) {
	gogl.BufferData(uint32(target), len(data), dataPtr(data), uint32(usage))
}

func (glFuncs) BufferSubData(target gl.Enum, offset int, data []byte) {
	gogl.BufferSubData(uint32(target), offset, len(data), dataPtr(data))
}

func (glFuncs) CopyBufferSubData(readTarget, writeTarget gl.Enum, readOffset, writeOffset, size int) {
	gogl.CopyBufferSubData(uint32(readTarget), uint32(writeTarget), readOffset, writeOffset, size)
}

func (glFuncs) GenFramebuffer() uint32 {
	var f uint32
	gogl.GenFramebuffers(1, &f)
	return f
}

func (glFuncs) DeleteFramebuffer(f uint32) {
	gogl.DeleteFramebuffers(1, &f)
}

func (glFuncs) BindFramebuffer(target gl.Enum, f uint32) {
	gogl.BindFramebuffer(uint32(target), f)
}

func (glFuncs) FramebufferTexture2D(target, attachment, texTarget gl.Enum, t uint32, level int) {
	gogl.FramebufferTexture2D(uint32(target), uint32(attachment), uint32(texTarget), t, int32(level))
}

func (glFuncs) CheckFramebufferStatus(target gl.Enum) gl.Enum {
	return gl.Enum(gogl.CheckFramebufferStatus(uint32(target)))
}

func (glFuncs) Flush() {
	gogl.Flush()
}

// dataPtr keeps nil uploads nil. gogl.Ptr would fault on an empty slice.
func dataPtr(data []byte) unsafe.Pointer {
	if len(data) == 0 {
		return nil
	}
	return gogl.Ptr(data)
}
