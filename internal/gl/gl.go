// SPDX-License-Identifier: Unlicense OR MIT

// Package gl holds the OpenGL enums and the function-table contract shared
// by the context core and the platform backends.
package gl

type Enum uint

const (
	ARRAY_BUFFER                      = 0x8892
	CLAMP_TO_EDGE                     = 0x812f
	COLOR_ATTACHMENT0                 = 0x8ce0
	CONTEXT_COMPATIBILITY_PROFILE_BIT = 0x00000002
	CONTEXT_CORE_PROFILE_BIT          = 0x00000001
	CONTEXT_FLAG_DEBUG_BIT            = 0x00000002
	CONTEXT_FLAGS                     = 0x821e
	CONTEXT_PROFILE_MASK              = 0x9126
	COPY_READ_BUFFER                  = 0x8f36
	COPY_WRITE_BUFFER                 = 0x8f37
	DYNAMIC_DRAW                      = 0x88e8
	EXTENSIONS                        = 0x1f03
	FALSE                             = 0
	FRAMEBUFFER                       = 0x8d40
	FRAMEBUFFER_COMPLETE              = 0x8cd5
	FRAMEBUFFER_SRGB                  = 0x8db9
	INVALID_ENUM                      = 0x0500
	LINEAR                            = 0x2601
	MAJOR_VERSION                     = 0x821b
	MAX_TEXTURE_SIZE                  = 0xd33
	MINOR_VERSION                     = 0x821c
	MULTISAMPLE                       = 0x809d
	NEAREST                           = 0x2600
	NO_ERROR                          = 0x0
	NUM_EXTENSIONS                    = 0x821d
	READ_FRAMEBUFFER                  = 0x8ca8
	RENDERER                          = 0x1f01
	REPEAT                            = 0x2901
	RGBA                              = 0x1908
	RGBA8                             = 0x8058
	SRGB8_ALPHA8                      = 0x8c43
	STATIC_DRAW                       = 0x88e4
	STREAM_DRAW                       = 0x88e0
	TEXTURE_2D                        = 0xde1
	TEXTURE_MAG_FILTER                = 0x2800
	TEXTURE_MIN_FILTER                = 0x2801
	TEXTURE_WRAP_S                    = 0x2802
	TEXTURE_WRAP_T                    = 0x2803
	TRUE                              = 1
	UNPACK_ALIGNMENT                  = 0xcf5
	UNSIGNED_BYTE                     = 0x1401
	VENDOR                            = 0x1f00
	VERSION                           = 0x1f02
)

// Functions is the subset of GL entry points the context core and the
// resource wrappers call. Platform backends implement it over their
// bindings once a context of the share group has been current; the core's
// tests implement it in pure Go.
//
// Queries that are unsupported by the running driver must behave like GL
// does: return zero values and raise INVALID_ENUM on the error flag.
type Functions interface {
	Enable(cap Enum)
	GetError() Enum
	GetInteger(pname Enum) int
	GetString(name Enum) string
	GetStringi(name Enum, index int) string
	IsEnabled(cap Enum) bool

	GenTexture() uint32
	DeleteTexture(t uint32)
	BindTexture(target Enum, t uint32)
	TexImage2D(target Enum, level int, internalFormat Enum, width, height int, format, ty Enum, data []byte)
	TexSubImage2D(target Enum, level, x, y, width, height int, format, ty Enum, data []byte)
	TexParameteri(target, pname Enum, param int)
	PixelStorei(pname Enum, param int)

	GenBuffer() uint32
	DeleteBuffer(b uint32)
	BindBuffer(target Enum, b uint32)
	BufferData(target Enum, data []byte, usage Enum)
	BufferSubData(target Enum, offset int, data []byte)
	CopyBufferSubData(readTarget, writeTarget Enum, readOffset, writeOffset, size int)

	GenFramebuffer() uint32
	DeleteFramebuffer(f uint32)
	BindFramebuffer(target Enum, f uint32)
	FramebufferTexture2D(target, attachment, texTarget Enum, t uint32, level int)
	CheckFramebufferStatus(target Enum) Enum

	Flush()
}
