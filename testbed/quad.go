package testbed

import (
	"math"

	"github.com/go-gl/gl/v3.3-core/gl"

	"github.com/lizual/lizual/engine/renderer/opengl"
)

// QuadScene draws an indexed quad whose color cycles over time.
type QuadScene struct {
	shader string
	va     *opengl.VertexArray
	vb     *opengl.VertexBuffer
	ib     *opengl.IndexBuffer

	red float32
}

func (s *QuadScene) Name() string { return "quad" }

func (s *QuadScene) Initialize(ctx *SceneContext) error {
	name, err := acquireShader(ctx.Systems.ShaderSystem, "quad")
	if err != nil {
		return err
	}
	s.shader = name

	if s.vb, err = opengl.NewVertexBuffer(ctx.API, quadVertices, gl.STATIC_DRAW); err != nil {
		return err
	}
	if s.ib, err = opengl.NewIndexBuffer(ctx.API, quadIndices); err != nil {
		return err
	}
	layout := opengl.NewVertexBufferLayout()
	opengl.PushAttribute[float32](layout, 2)

	s.va = opengl.NewVertexArray(ctx.API)
	if err := s.va.AddBuffer(s.vb, layout); err != nil {
		return err
	}
	s.va.Unbind()
	return nil
}

func (s *QuadScene) Update(ctx *SceneContext, deltaTime float64) error {
	s.red = float32(math.Sin(ctx.Time)/2 + 0.5)
	return nil
}

func (s *QuadScene) Render(ctx *SceneContext) error {
	shader, err := ctx.Systems.ShaderSystem.Get(s.shader)
	if err != nil {
		return err
	}
	shader.Use()
	shader.SetUniform4f("u_Color", s.red, 0.3, 0.8, 1.0)
	return ctx.Renderer.Draw(s.va, s.ib, shader)
}

func (s *QuadScene) Destroy() {
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
}
