package testbed

import (
	"github.com/go-gl/gl/v3.3-core/gl"

	"github.com/lizual/lizual/engine/renderer/opengl"
	"github.com/lizual/lizual/engine/systems"
)

const (
	containerTexture = "textures/container.png"
	faceTexture      = "textures/awesomeface.png"
)

// TexturedScene mixes two textures on a quad with per-vertex colors.
type TexturedScene struct {
	shader    string
	textures  *systems.TextureSystem
	container *systems.TextureReference
	face      *systems.TextureReference

	va *opengl.VertexArray
	vb *opengl.VertexBuffer
	ib *opengl.IndexBuffer
}

func (s *TexturedScene) Name() string { return "textured" }

func (s *TexturedScene) Initialize(ctx *SceneContext) error {
	name, err := acquireShader(ctx.Systems.ShaderSystem, "textured")
	if err != nil {
		return err
	}
	s.shader = name

	s.textures = ctx.Systems.TextureSystem
	if s.container, s.face, err = acquireSceneTextures(s.textures); err != nil {
		return err
	}

	if s.vb, err = opengl.NewVertexBuffer(ctx.API, texturedQuadVertices, gl.STATIC_DRAW); err != nil {
		return err
	}
	if s.ib, err = opengl.NewIndexBuffer(ctx.API, texturedQuadIndices); err != nil {
		return err
	}
	layout := opengl.NewVertexBufferLayout()
	opengl.PushAttribute[float32](layout, 3)
	opengl.PushAttribute[float32](layout, 2)
	opengl.PushAttribute[float32](layout, 3)

	s.va = opengl.NewVertexArray(ctx.API)
	if err := s.va.AddBuffer(s.vb, layout); err != nil {
		return err
	}
	s.va.Unbind()
	return nil
}

func (s *TexturedScene) Update(ctx *SceneContext, deltaTime float64) error { return nil }

func (s *TexturedScene) Render(ctx *SceneContext) error {
	shader, err := ctx.Systems.ShaderSystem.Get(s.shader)
	if err != nil {
		return err
	}
	bindSceneTextures(shader, s.container, s.face, ctx.Controls.Mix)
	return ctx.Renderer.Draw(s.va, s.ib, shader)
}

func (s *TexturedScene) Destroy() {
	if s.va != nil {
		s.va.Delete()
		s.va = nil
	}
	if s.vb != nil {
		s.vb.Delete()
		s.vb = nil
	}
	if s.ib != nil {
		s.ib.Delete()
		s.ib = nil
	}
	releaseSceneTextures(s.textures, s.container, s.face)
	s.container, s.face = nil, nil
}

// acquireSceneTextures requests both tutorial textures. They load in the
// background and render as the default texture until ready.
func acquireSceneTextures(ts *systems.TextureSystem) (*systems.TextureReference, *systems.TextureReference, error) {
	container, err := ts.Acquire(containerTexture, true)
	if err != nil {
		return nil, nil, err
	}
	face, err := ts.Acquire(faceTexture, true)
	if err != nil {
		ts.Release(containerTexture)
		return nil, nil, err
	}
	return container, face, nil
}

func bindSceneTextures(shader *opengl.Shader, container, face *systems.TextureReference, mix float32) {
	shader.Use()
	shader.SetInt("u_Texture1", 0)
	shader.SetInt("u_Texture2", 1)
	shader.SetFloat("u_Mix", mix)
	container.Texture().Bind(0)
	face.Texture().Bind(1)
}

func releaseSceneTextures(ts *systems.TextureSystem, refs ...*systems.TextureReference) {
	for _, ref := range refs {
		if ref != nil {
			ts.Release(ref.Name)
		}
	}
}
