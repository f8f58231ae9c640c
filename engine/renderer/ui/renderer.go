package ui

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/inkyblackness/imgui-go/v4"

	"github.com/lizual/lizual/engine/core"
	"github.com/lizual/lizual/engine/renderer/opengl"
)

const vertexShader = `#version 330 core
layout (location = 0) in vec2 Position;
layout (location = 1) in vec2 UV;
layout (location = 2) in vec4 Color;

uniform mat4 ProjMtx;

out vec2 Frag_UV;
out vec4 Frag_Color;

void main() {
    Frag_UV = UV;
    Frag_Color = Color;
    gl_Position = ProjMtx * vec4(Position.xy, 0, 1);
}
`

const fragmentShader = `#version 330 core
uniform sampler2D Texture;

in vec2 Frag_UV;
in vec4 Frag_Color;

out vec4 Out_Color;

void main() {
    Out_Color = Frag_Color * texture(Texture, Frag_UV.st);
}
`

// Renderer draws imgui draw data with OpenGL 3.3.
type Renderer struct {
	api         opengl.API
	shader      *opengl.Shader
	fontTexture *opengl.Texture
	va          *opengl.VertexArray
	vb          *opengl.VertexBuffer
	elements    uint32
}

func NewRenderer(api opengl.API, io imgui.IO) (*Renderer, error) {
	shader, err := opengl.NewShader(api, vertexShader, fragmentShader)
	if err != nil {
		return nil, fmt.Errorf("failed to create ui shader: %w", err)
	}

	r := &Renderer{api: api, shader: shader}

	// pos, uv, col
	layout := opengl.NewVertexBufferLayout()
	opengl.PushAttribute[float32](layout, 2)
	opengl.PushAttribute[float32](layout, 2)
	opengl.PushAttribute[uint8](layout, 4)
	vertexSize, _, _, _ := imgui.VertexBufferLayout()
	if int32(vertexSize) != layout.Stride() {
		core.LogWarn("imgui vertex size %d does not match layout stride %d", vertexSize, layout.Stride())
	}

	r.vb, err = opengl.NewVertexBuffer[float32](api, nil, gl.STREAM_DRAW)
	if err != nil {
		shader.Delete()
		return nil, err
	}
	r.va = opengl.NewVertexArray(api)
	if err := r.va.AddBuffer(r.vb, layout); err != nil {
		r.Destroy()
		return nil, err
	}
	r.elements = api.GenBuffer()
	api.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, r.elements)
	r.va.Unbind()

	if err := r.createFontTexture(io); err != nil {
		r.Destroy()
		return nil, err
	}
	return r, nil
}

func (r *Renderer) createFontTexture(io imgui.IO) error {
	fonts := io.Fonts()
	image := fonts.TextureDataRGBA32()
	pixels := unsafe.Slice((*byte)(image.Pixels), image.Width*image.Height*4)

	texture, err := opengl.NewTextureFromPixels(r.api, int32(image.Width), int32(image.Height), pixels, opengl.TextureOptions{
		NoFlip:    true,
		Wrap:      gl.CLAMP_TO_EDGE,
		MinFilter: gl.LINEAR,
		MagFilter: gl.LINEAR,
		NoMipmaps: true,
	})
	if err != nil {
		return fmt.Errorf("failed to upload ui font atlas: %w", err)
	}
	r.fontTexture = texture
	fonts.SetTextureID(imgui.TextureID(texture.ID()))
	return nil
}

// glState is the subset of pipeline state the overlay changes.
type glState struct {
	blend, cullFace, depthTest, scissorTest bool
}

func (r *Renderer) saveState() glState {
	return glState{
		blend:       r.api.IsEnabled(gl.BLEND),
		cullFace:    r.api.IsEnabled(gl.CULL_FACE),
		depthTest:   r.api.IsEnabled(gl.DEPTH_TEST),
		scissorTest: r.api.IsEnabled(gl.SCISSOR_TEST),
	}
}

func (r *Renderer) restoreState(s glState) {
	set := func(capability uint32, enabled bool) {
		if enabled {
			r.api.Enable(capability)
		} else {
			r.api.Disable(capability)
		}
	}
	set(gl.BLEND, s.blend)
	set(gl.CULL_FACE, s.cullFace)
	set(gl.DEPTH_TEST, s.depthTest)
	set(gl.SCISSOR_TEST, s.scissorTest)
}

// Render translates the draw data into GL calls.
func (r *Renderer) Render(displaySize, framebufferSize [2]float32, drawData imgui.DrawData) {
	fbWidth, fbHeight := framebufferSize[0], framebufferSize[1]
	if fbWidth <= 0 || fbHeight <= 0 {
		return
	}
	drawData.ScaleClipRects(imgui.Vec2{
		X: fbWidth / displaySize[0],
		Y: fbHeight / displaySize[1],
	})

	state := r.saveState()
	defer r.restoreState(state)

	r.api.Enable(gl.BLEND)
	r.api.BlendEquation(gl.FUNC_ADD)
	r.api.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	r.api.Disable(gl.CULL_FACE)
	r.api.Disable(gl.DEPTH_TEST)
	r.api.Enable(gl.SCISSOR_TEST)
	r.api.Viewport(0, 0, int32(fbWidth), int32(fbHeight))

	projection := mgl32.Ortho(0, displaySize[0], displaySize[1], 0, -1, 1)
	r.shader.Use()
	r.shader.SetInt("Texture", 0)
	r.shader.SetMat4("ProjMtx", projection)
	r.api.ActiveTexture(gl.TEXTURE0)

	r.va.Bind()
	r.api.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, r.elements)

	indexSize := imgui.IndexBufferLayout()
	drawType := uint32(gl.UNSIGNED_SHORT)
	if indexSize == 4 {
		drawType = gl.UNSIGNED_INT
	}

	for _, list := range drawData.CommandLists() {
		vertexBuffer, vertexBufferSize := list.VertexBuffer()
		if err := r.vb.Update(unsafe.Slice((*byte)(vertexBuffer), vertexBufferSize)); err != nil {
			core.LogError("failed to upload ui vertices: %s", err)
			return
		}
		indexBuffer, indexBufferSize := list.IndexBuffer()
		r.api.BufferData(gl.ELEMENT_ARRAY_BUFFER, unsafe.Slice((*byte)(indexBuffer), indexBufferSize), gl.STREAM_DRAW)

		var indexBufferOffset uintptr
		for _, cmd := range list.Commands() {
			if cmd.HasUserCallback() {
				cmd.CallUserCallback(list)
				continue
			}
			clip := cmd.ClipRect()
			r.api.BindTexture(gl.TEXTURE_2D, uint32(cmd.TextureID()))
			r.api.Scissor(int32(clip.X), int32(fbHeight)-int32(clip.W), int32(clip.Z-clip.X), int32(clip.W-clip.Y))
			r.api.DrawElements(gl.TRIANGLES, int32(cmd.ElementCount()), drawType, indexBufferOffset)
			indexBufferOffset += uintptr(cmd.ElementCount() * indexSize)
		}
	}
	r.va.Unbind()
}

func (r *Renderer) Destroy() {
	if r.va != nil {
		r.va.Delete()
	}
	if r.vb != nil {
		r.vb.Delete()
	}
	if r.elements != 0 {
		r.api.DeleteBuffer(r.elements)
		r.elements = 0
	}
	if r.fontTexture != nil {
		r.fontTexture.Delete()
	}
	if r.shader != nil {
		r.shader.Delete()
	}
}
