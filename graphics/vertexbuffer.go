// SPDX-License-Identifier: Unlicense OR MIT

package graphics

import (
	"fmt"
	"unsafe"

	"github.com/menuet/VRSFML/internal/gl"
	gunsafe "github.com/menuet/VRSFML/internal/unsafe"
)

// Usage hints how often a vertex buffer's contents will change.
type Usage uint8

const (
	// UsageStream is for contents rewritten every frame.
	UsageStream Usage = iota
	// UsageDynamic is for contents that change now and then.
	UsageDynamic
	// UsageStatic is for contents uploaded once.
	UsageStatic
)

func (u Usage) glEnum() gl.Enum {
	switch u {
	case UsageStatic:
		return gl.STATIC_DRAW
	case UsageDynamic:
		return gl.DYNAMIC_DRAW
	default:
		return gl.STREAM_DRAW
	}
}

var vertexSize = int(unsafe.Sizeof(Vertex{}))

// VertexBuffer is a GL buffer of vertices living on the share group.
// Methods must not race with each other.
type VertexBuffer struct {
	buf   uint32
	size  int
	usage Usage
}

// NewVertexBuffer creates a buffer holding n undefined vertices.
func NewVertexBuffer(n int, usage Usage) (*VertexBuffer, error) {
	if n <= 0 {
		return nil, fmt.Errorf("graphics: invalid vertex buffer size %d", n)
	}
	f, release, err := ensureFuncs()
	if err != nil {
		return nil, err
	}
	defer release()

	vb := &VertexBuffer{buf: f.GenBuffer(), size: n, usage: usage}
	f.BindBuffer(gl.ARRAY_BUFFER, vb.buf)
	f.BufferData(gl.ARRAY_BUFFER, make([]byte, n*vertexSize), usage.glEnum())
	f.BindBuffer(gl.ARRAY_BUFFER, 0)
	return vb, nil
}

// VertexCount returns the buffer capacity in vertices.
func (vb *VertexBuffer) VertexCount() int {
	return vb.size
}

// Usage returns the usage hint the buffer was created with.
func (vb *VertexBuffer) Usage() Usage {
	return vb.usage
}

// Native returns the GL buffer name.
func (vb *VertexBuffer) Native() uint32 {
	return vb.buf
}

// Update replaces the buffer contents with vertices, growing the buffer
// when they do not fit.
func (vb *VertexBuffer) Update(vertices []Vertex) error {
	return vb.UpdateAt(0, vertices)
}

// UpdateAt writes vertices starting at the given vertex offset. A write
// past the end grows the buffer only when it starts at the beginning;
// otherwise it fails, matching the underlying partial-update semantics.
func (vb *VertexBuffer) UpdateAt(offset int, vertices []Vertex) error {
	if vb.buf == 0 {
		return fmt.Errorf("graphics: vertex buffer already released")
	}
	if len(vertices) == 0 {
		return nil
	}
	if offset < 0 || (offset > 0 && offset+len(vertices) > vb.size) {
		return fmt.Errorf("graphics: vertex range %d+%d outside buffer of %d", offset, len(vertices), vb.size)
	}
	f, release, err := ensureFuncs()
	if err != nil {
		return err
	}
	defer release()

	f.BindBuffer(gl.ARRAY_BUFFER, vb.buf)
	if len(vertices) > vb.size {
		f.BufferData(gl.ARRAY_BUFFER, make([]byte, len(vertices)*vertexSize), vb.usage.glEnum())
		vb.size = len(vertices)
	}
	f.BufferSubData(gl.ARRAY_BUFFER, offset*vertexSize, gunsafe.BytesView(vertices))
	f.BindBuffer(gl.ARRAY_BUFFER, 0)
	return nil
}

// CopyFrom copies the full contents of src into vb on the GPU. The
// destination must be at least as large as the source.
func (vb *VertexBuffer) CopyFrom(src *VertexBuffer) error {
	if vb.buf == 0 || src.buf == 0 {
		return fmt.Errorf("graphics: vertex buffer already released")
	}
	if src.size > vb.size {
		return fmt.Errorf("graphics: copy of %d vertices into buffer of %d", src.size, vb.size)
	}
	f, release, err := ensureFuncs()
	if err != nil {
		return err
	}
	defer release()

	f.BindBuffer(gl.COPY_READ_BUFFER, src.buf)
	f.BindBuffer(gl.COPY_WRITE_BUFFER, vb.buf)
	f.CopyBufferSubData(gl.COPY_READ_BUFFER, gl.COPY_WRITE_BUFFER, 0, 0, src.size*vertexSize)
	f.BindBuffer(gl.COPY_WRITE_BUFFER, 0)
	f.BindBuffer(gl.COPY_READ_BUFFER, 0)
	return nil
}

// Release destroys the GL buffer. Release is idempotent.
func (vb *VertexBuffer) Release() {
	if vb.buf == 0 {
		return
	}
	f, release, err := ensureFuncs()
	if err != nil {
		return
	}
	defer release()
	f.DeleteBuffer(vb.buf)
	vb.buf = 0
}
