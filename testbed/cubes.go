package testbed

import (
	"github.com/go-gl/gl/v3.3-core/gl"

	"github.com/lizual/lizual/engine/math"
	"github.com/lizual/lizual/engine/renderer/opengl"
	"github.com/lizual/lizual/engine/systems"
)

// CubesScene draws ten textured cubes seen through the fly camera.
type CubesScene struct {
	shader    string
	textures  *systems.TextureSystem
	container *systems.TextureReference
	face      *systems.TextureReference

	va *opengl.VertexArray
	vb *opengl.VertexBuffer

	root  *math.Transform
	cubes []*math.Transform
}

func (s *CubesScene) Name() string { return "cubes" }

func (s *CubesScene) UsesCamera() bool { return true }

func (s *CubesScene) Initialize(ctx *SceneContext) error {
	name, err := acquireShader(ctx.Systems.ShaderSystem, "cube")
	if err != nil {
		return err
	}
	s.shader = name

	s.textures = ctx.Systems.TextureSystem
	if s.container, s.face, err = acquireSceneTextures(s.textures); err != nil {
		return err
	}

	if s.vb, err = opengl.NewVertexBuffer(ctx.API, cubeVertices, gl.STATIC_DRAW); err != nil {
		return err
	}
	layout := opengl.NewVertexBufferLayout()
	opengl.PushAttribute[float32](layout, 3)
	opengl.PushAttribute[float32](layout, 2)

	s.va = opengl.NewVertexArray(ctx.API)
	if err := s.va.AddBuffer(s.vb, layout); err != nil {
		return err
	}
	s.va.Unbind()

	s.root = math.TransformCreate()
	s.cubes = newCubeTransforms(s.root)
	return nil
}

func (s *CubesScene) Update(ctx *SceneContext, deltaTime float64) error {
	spinCubes(s.cubes, deltaTime)
	return nil
}

func (s *CubesScene) Render(ctx *SceneContext) error {
	shader, err := ctx.Systems.ShaderSystem.Get(s.shader)
	if err != nil {
		return err
	}
	bindSceneTextures(shader, s.container, s.face, ctx.Controls.Mix)
	shader.SetMat4("u_Projection", ctx.Camera.Projection(ctx.Aspect()))
	shader.SetMat4("u_View", ctx.Camera.GetView())

	count := int32(len(cubeVertices) / cubeFloatsPerVertex)
	for _, cube := range s.cubes {
		shader.SetMat4("u_Model", cube.GetWorld())
		if err := ctx.Renderer.DrawArrays(s.va, shader, 0, count); err != nil {
			return err
		}
	}
	return nil
}

func (s *CubesScene) Destroy() {
	if s.va != nil {
		s.va.Delete()
		s.va = nil
	}
	if s.vb != nil {
		s.vb.Delete()
		s.vb = nil
	}
	releaseSceneTextures(s.textures, s.container, s.face)
	s.container, s.face = nil, nil
}
