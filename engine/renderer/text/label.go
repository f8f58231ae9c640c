package text

import (
	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/lizual/lizual/engine/renderer"
	"github.com/lizual/lizual/engine/renderer/opengl"
)

const vertexShader = `#version 330 core
layout (location = 0) in vec2 a_Position;
layout (location = 1) in vec2 a_TexCoord;

uniform mat4 u_Projection;

out vec2 v_TexCoord;

void main() {
    v_TexCoord = a_TexCoord;
    gl_Position = u_Projection * vec4(a_Position, 0.0, 1.0);
}
`

const fragmentShader = `#version 330 core
in vec2 v_TexCoord;

uniform sampler2D u_Atlas;
uniform vec4 u_Color;

out vec4 FragColor;

void main() {
    FragColor = vec4(u_Color.rgb, u_Color.a * texture(u_Atlas, v_TexCoord).a);
}
`

// NewTextShader builds the program used by labels.
func NewTextShader(api opengl.API) (*opengl.Shader, error) {
	return opengl.NewShader(api, vertexShader, fragmentShader)
}

// AtlasTextureOptions keeps atlas rows top first so glyph V coordinates match
// the BMFont pixel coordinates.
func AtlasTextureOptions() opengl.TextureOptions {
	return opengl.TextureOptions{
		NoFlip:    true,
		Wrap:      gl.CLAMP_TO_EDGE,
		MinFilter: gl.LINEAR,
		MagFilter: gl.LINEAR,
		NoMipmaps: true,
	}
}

// Atlas is the texture a label samples glyphs from. *opengl.Texture is one.
type Atlas interface {
	Bind(slot uint32)
}

// Label is a piece of text drawn from a single page font atlas.
type Label struct {
	api    opengl.API
	font   *Font
	atlas  Atlas
	shader *opengl.Shader

	va *opengl.VertexArray
	vb *opengl.VertexBuffer
	ib *opengl.IndexBuffer

	text  string
	mesh  *Mesh
	Color mgl32.Vec4
}

func NewLabel(api opengl.API, font *Font, atlas Atlas, shader *opengl.Shader, text string) (*Label, error) {
	l := &Label{
		api:    api,
		font:   font,
		atlas:  atlas,
		shader: shader,
		Color:  mgl32.Vec4{1, 1, 1, 1},
	}
	if err := l.SetText(text); err != nil {
		return nil, err
	}
	return l, nil
}

func (l *Label) Text() string { return l.text }

func (l *Label) Mesh() *Mesh { return l.mesh }

// SetText rebuilds the geometry when the text changes.
func (l *Label) SetText(text string) error {
	if l.mesh != nil && text == l.text {
		return nil
	}
	l.text = text
	l.mesh = BuildMesh(l.font, text, mgl32.Vec2{})
	l.release()

	if len(l.mesh.Indices) == 0 {
		return nil
	}

	vb, err := opengl.NewVertexBuffer(l.api, l.mesh.Vertices, gl.DYNAMIC_DRAW)
	if err != nil {
		return err
	}
	ib, err := opengl.NewIndexBuffer(l.api, l.mesh.Indices)
	if err != nil {
		vb.Delete()
		return err
	}
	layout := opengl.NewVertexBufferLayout()
	opengl.PushAttribute[float32](layout, 2)
	opengl.PushAttribute[float32](layout, 2)

	va := opengl.NewVertexArray(l.api)
	if err := va.AddBuffer(vb, layout); err != nil {
		va.Delete()
		vb.Delete()
		ib.Delete()
		return err
	}
	va.Unbind()

	l.va, l.vb, l.ib = va, vb, ib
	return nil
}

// Draw renders the label with its top left corner at position, in pixels of
// a viewport of the given size.
func (l *Label) Draw(r *renderer.Renderer, viewportWidth, viewportHeight float32, position mgl32.Vec2) error {
	if l.va == nil {
		return nil
	}
	projection := mgl32.Ortho(0, viewportWidth, viewportHeight, 0, -1, 1).
		Mul4(mgl32.Translate3D(position.X(), position.Y(), 0))

	l.shader.Use()
	l.shader.SetMat4("u_Projection", projection)
	l.shader.SetUniform4f("u_Color", l.Color[0], l.Color[1], l.Color[2], l.Color[3])
	l.shader.SetInt("u_Atlas", 0)
	l.atlas.Bind(0)

	r.EnableBlending(true)
	err := r.Draw(l.va, l.ib, l.shader)
	r.EnableBlending(false)
	return err
}

func (l *Label) release() {
	if l.va != nil {
		l.va.Delete()
		l.vb.Delete()
		l.ib.Delete()
		l.va, l.vb, l.ib = nil, nil, nil
	}
}

func (l *Label) Delete() {
	l.release()
}
