package testbed

import (
	"github.com/go-gl/gl/v3.3-core/gl"

	"github.com/lizual/lizual/engine/renderer/opengl"
)

// TriangleScene draws a single triangle with glDrawArrays.
type TriangleScene struct {
	shader string
	va     *opengl.VertexArray
	vb     *opengl.VertexBuffer
}

func (s *TriangleScene) Name() string { return "triangle" }

func (s *TriangleScene) Initialize(ctx *SceneContext) error {
	name, err := acquireShader(ctx.Systems.ShaderSystem, "triangle")
	if err != nil {
		return err
	}
	s.shader = name

	s.vb, err = opengl.NewVertexBuffer(ctx.API, triangleVertices, gl.STATIC_DRAW)
	if err != nil {
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

func (s *TriangleScene) Update(ctx *SceneContext, deltaTime float64) error { return nil }

func (s *TriangleScene) Render(ctx *SceneContext) error {
	shader, err := ctx.Systems.ShaderSystem.Get(s.shader)
	if err != nil {
		return err
	}
	return ctx.Renderer.DrawArrays(s.va, shader, 0, int32(len(triangleVertices)/2))
}

func (s *TriangleScene) Destroy() {
	if s.va != nil {
		s.va.Delete()
		s.va = nil
	}
	if s.vb != nil {
		s.vb.Delete()
		s.vb = nil
	}
}
