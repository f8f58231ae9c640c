package opengl

type VertexArray struct {
	api API
	id  uint32
	// next free attribute index
	attribIndex uint32
	deleted     bool
}

func NewVertexArray(api API) *VertexArray {
	return &VertexArray{api: api, id: api.GenVertexArray()}
}

func (va *VertexArray) ID() uint32 { return va.id }

// AddBuffer describes vb to the vertex array. Attribute indices continue
// after those of previously added buffers.
func (va *VertexArray) AddBuffer(vb *VertexBuffer, layout *VertexBufferLayout) error {
	va.Bind()
	vb.Bind()

	var offset uintptr
	for _, attr := range layout.Attributes() {
		size, err := SizeOfType(attr.Type)
		if err != nil {
			return err
		}
		index := va.attribIndex
		if err := Call(va.api, "glVertexAttribPointer", func() {
			va.api.EnableVertexAttribArray(index)
			va.api.VertexAttribPointer(index, attr.Count, uint32(attr.Type), attr.Normalized, layout.Stride(), offset)
		}); err != nil {
			return err
		}
		offset += uintptr(attr.Count * size)
		va.attribIndex++
	}
	return nil
}

func (va *VertexArray) Bind() {
	va.api.BindVertexArray(va.id)
}

func (va *VertexArray) Unbind() {
	va.api.BindVertexArray(0)
}

func (va *VertexArray) Delete() {
	if va.deleted {
		return
	}
	va.api.DeleteVertexArray(va.id)
	va.deleted = true
}
