package opengl

import (
	"unsafe"

	"github.com/go-gl/gl/v3.3-core/gl"
)

type VertexBuffer struct {
	api     API
	id      uint32
	size    int
	usage   uint32
	deleted bool
}

// NewVertexBuffer uploads data into a new array buffer. A zero usage means
// GL_STATIC_DRAW.
func NewVertexBuffer[T AttribComponent](api API, data []T, usage uint32) (*VertexBuffer, error) {
	if usage == 0 {
		usage = gl.STATIC_DRAW
	}
	bytes := asBytes(data)
	vb := &VertexBuffer{api: api, usage: usage, size: len(bytes)}
	vb.id = api.GenBuffer()
	if err := Call(api, "glBufferData", func() {
		api.BindBuffer(gl.ARRAY_BUFFER, vb.id)
		api.BufferData(gl.ARRAY_BUFFER, bytes, usage)
	}); err != nil {
		vb.Delete()
		return nil, err
	}
	return vb, nil
}

func (vb *VertexBuffer) ID() uint32 { return vb.id }

// Size is the uploaded size in bytes.
func (vb *VertexBuffer) Size() int { return vb.size }

func (vb *VertexBuffer) Bind() {
	vb.api.BindBuffer(gl.ARRAY_BUFFER, vb.id)
}

func (vb *VertexBuffer) Unbind() {
	vb.api.BindBuffer(gl.ARRAY_BUFFER, 0)
}

// Update replaces the buffer contents, reallocating when the size changes.
func (vb *VertexBuffer) Update(data []byte) error {
	if vb.deleted {
		return ErrDeleted
	}
	return Call(vb.api, "glBufferSubData", func() {
		vb.Bind()
		if len(data) != vb.size {
			vb.api.BufferData(gl.ARRAY_BUFFER, data, vb.usage)
			vb.size = len(data)
			return
		}
		vb.api.BufferSubData(gl.ARRAY_BUFFER, 0, data)
	})
}

func (vb *VertexBuffer) Delete() {
	if vb.deleted {
		return
	}
	vb.api.DeleteBuffer(vb.id)
	vb.deleted = true
}

// asBytes reinterprets a slice of fixed size components as its raw bytes.
func asBytes[T AttribComponent](data []T) []byte {
	if len(data) == 0 {
		return nil
	}
	var zero T
	return unsafe.Slice((*byte)(unsafe.Pointer(&data[0])), len(data)*int(unsafe.Sizeof(zero)))
}

// Bytes exposes asBytes for callers that stream typed data through Update.
func Bytes[T AttribComponent](data []T) []byte {
	return asBytes(data)
}
