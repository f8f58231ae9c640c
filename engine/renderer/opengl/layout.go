package opengl

import (
	"fmt"

	"github.com/go-gl/gl/v3.3-core/gl"
)

// AttribType is the GL component type of a vertex attribute.
type AttribType uint32

const (
	AttribFloat        AttribType = gl.FLOAT
	AttribUnsignedInt  AttribType = gl.UNSIGNED_INT
	AttribUnsignedByte AttribType = gl.UNSIGNED_BYTE
)

type VertexBufferAttribute struct {
	Type       AttribType
	Count      int32
	Normalized bool
}

// SizeOfType returns the size in bytes of one component of t.
func SizeOfType(t AttribType) (int32, error) {
	switch t {
	case AttribFloat, AttribUnsignedInt:
		return 4, nil
	case AttribUnsignedByte:
		return 1, nil
	}
	return 0, fmt.Errorf("%w: 0x%04X", ErrUnsupportedAttribType, uint32(t))
}

// VertexBufferLayout describes interleaved attributes in a vertex buffer.
type VertexBufferLayout struct {
	attributes []VertexBufferAttribute
	stride     int32
}

func NewVertexBufferLayout() *VertexBufferLayout {
	return &VertexBufferLayout{}
}

// Push appends count components of type t. Bytes are normalized to [0, 1].
func (l *VertexBufferLayout) Push(t AttribType, count int32) error {
	size, err := SizeOfType(t)
	if err != nil {
		return err
	}
	l.attributes = append(l.attributes, VertexBufferAttribute{
		Type:       t,
		Count:      count,
		Normalized: t == AttribUnsignedByte,
	})
	l.stride += count * size
	return nil
}

type AttribComponent interface {
	float32 | uint32 | uint8
}

// PushAttribute pushes an attribute whose type is inferred from T.
func PushAttribute[T AttribComponent](l *VertexBufferLayout, count int32) {
	var zero T
	var t AttribType
	switch any(zero).(type) {
	case float32:
		t = AttribFloat
	case uint32:
		t = AttribUnsignedInt
	case uint8:
		t = AttribUnsignedByte
	}
	// every member of AttribComponent is in the size table
	_ = l.Push(t, count)
}

func (l *VertexBufferLayout) Attributes() []VertexBufferAttribute {
	return l.attributes
}

func (l *VertexBufferLayout) Stride() int32 {
	return l.stride
}
