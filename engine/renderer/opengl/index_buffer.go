package opengl

import "github.com/go-gl/gl/v3.3-core/gl"

type IndexBuffer struct {
	api     API
	id      uint32
	count   int32
	deleted bool
}

func NewIndexBuffer(api API, indices []uint32) (*IndexBuffer, error) {
	ib := &IndexBuffer{api: api, count: int32(len(indices))}
	ib.id = api.GenBuffer()
	if err := Call(api, "glBufferData", func() {
		api.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, ib.id)
		api.BufferData(gl.ELEMENT_ARRAY_BUFFER, asBytes(indices), gl.STATIC_DRAW)
	}); err != nil {
		ib.Delete()
		return nil, err
	}
	return ib, nil
}

func (ib *IndexBuffer) ID() uint32 { return ib.id }

func (ib *IndexBuffer) Count() int32 { return ib.count }

func (ib *IndexBuffer) Bind() {
	ib.api.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, ib.id)
}

func (ib *IndexBuffer) Unbind() {
	ib.api.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, 0)
}

func (ib *IndexBuffer) Delete() {
	if ib.deleted {
		return
	}
	ib.api.DeleteBuffer(ib.id)
	ib.deleted = true
}
