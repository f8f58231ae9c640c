package testbed

import (
	m "math"
	"testing"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lizual/lizual/engine/math"
	"github.com/lizual/lizual/engine/renderer/opengl"
)

func TestScenesOrder(t *testing.T) {
	assert.Equal(t, []string{"triangle", "quad", "textured", "cubes"}, Scenes())

	names := Scenes()
	names[0] = "changed"
	assert.Equal(t, "triangle", Scenes()[0])
}

func TestNewScene(t *testing.T) {
	for _, name := range Scenes() {
		s, err := NewScene(name)
		require.NoError(t, err)
		assert.Equal(t, name, s.Name())
	}
	_, err := NewScene("teapot")
	assert.ErrorContains(t, err, "teapot")
}

func TestSceneContextAspect(t *testing.T) {
	ctx := &SceneContext{Width: 800, Height: 400}
	assert.Equal(t, float32(2), ctx.Aspect())

	ctx.Height = 0
	assert.Equal(t, float32(1), ctx.Aspect())
}

func TestScenesDraw(t *testing.T) {
	tests := []struct {
		scene    string
		drawCall string
		count    int32
		calls    int
	}{
		{scene: "triangle", drawCall: "DrawArrays", count: 3, calls: 1},
		{scene: "quad", drawCall: "DrawElements", count: 6, calls: 1},
		{scene: "textured", drawCall: "DrawElements", count: 6, calls: 1},
		{scene: "cubes", drawCall: "DrawArrays", count: 36, calls: len(cubePositions)},
	}
	for _, tt := range tests {
		t.Run(tt.scene, func(t *testing.T) {
			ctx, api := newSceneContext(t)
			s, err := NewScene(tt.scene)
			require.NoError(t, err)
			require.NoError(t, s.Initialize(ctx))
			defer s.Destroy()

			require.NoError(t, s.Update(ctx, 1.0/60))
			api.Reset()
			require.NoError(t, s.Render(ctx))

			draws := api.CallsNamed(tt.drawCall)
			require.Len(t, draws, tt.calls)
			for _, d := range draws {
				switch tt.drawCall {
				case "DrawArrays":
					assert.Equal(t, tt.count, d.Args[2])
				case "DrawElements":
					assert.Equal(t, tt.count, d.Args[1])
				}
				assert.Equal(t, uint32(gl.TRIANGLES), d.Args[0])
			}
		})
	}
}

func TestScenesShareShaders(t *testing.T) {
	ctx, api := newSceneContext(t)

	first := &TriangleScene{}
	require.NoError(t, first.Initialize(ctx))
	programs := len(api.CallsNamed("CreateProgram"))

	second := &TriangleScene{}
	require.NoError(t, second.Initialize(ctx))
	assert.Len(t, api.CallsNamed("CreateProgram"), programs)

	first.Destroy()
	second.Destroy()
}

func TestQuadColorFollowsTime(t *testing.T) {
	ctx, api := newSceneContext(t)
	s := &QuadScene{}
	require.NoError(t, s.Initialize(ctx))
	defer s.Destroy()

	ctx.Time = m.Pi / 2
	require.NoError(t, s.Update(ctx, 0))
	api.Reset()
	require.NoError(t, s.Render(ctx))

	colors := api.CallsNamed("Uniform4f")
	require.Len(t, colors, 1)
	assert.InDelta(t, 1.0, colors[0].Args[1], 1e-6)
}

func TestTexturedSceneUsesMix(t *testing.T) {
	ctx, api := newSceneContext(t)
	s := &TexturedScene{}
	require.NoError(t, s.Initialize(ctx))
	defer s.Destroy()

	ctx.Controls.Mix = 0.75
	api.Reset()
	require.NoError(t, s.Render(ctx))

	floats := api.CallsNamed("Uniform1f")
	require.Len(t, floats, 1)
	assert.Equal(t, float32(0.75), floats[0].Args[1])
	// Both samplers are bound even while the images are still loading.
	assert.Len(t, api.CallsNamed("ActiveTexture"), 2)
}

func TestTexturedSceneReleasesTextures(t *testing.T) {
	ctx, _ := newSceneContext(t)
	s := &TexturedScene{}
	require.NoError(t, s.Initialize(ctx))

	ts := ctx.Systems.TextureSystem
	require.Contains(t, ts.RegisteredTextureTable, containerTexture)
	s.Destroy()
	assert.NotContains(t, ts.RegisteredTextureTable, containerTexture)
	assert.NotContains(t, ts.RegisteredTextureTable, faceTexture)
}

func TestSpinCubesTurnsEveryThirdCube(t *testing.T) {
	root := math.TransformCreate()
	cubes := newCubeTransforms(root)
	before := make([]mgl32.Mat4, len(cubes))
	for i, c := range cubes {
		before[i] = c.GetWorld()
	}

	spinCubes(cubes, 1)
	for i, c := range cubes {
		if i%3 == 0 {
			assert.False(t, before[i].ApproxEqualThreshold(c.GetWorld(), 1e-4), "cube %d should spin", i)
		} else {
			assert.True(t, before[i].ApproxEqualThreshold(c.GetWorld(), 1e-6), "cube %d should not move", i)
		}
	}
}

func TestCubesFollowRoot(t *testing.T) {
	root := math.TransformCreate()
	cubes := newCubeTransforms(root)
	root.SetPosition(mgl32.Vec3{0, 10, 0})
	assert.InDelta(t, cubePositions[1].Y()+10, cubes[1].GetWorld().Col(3).Y(), 1e-4)
}

func TestDestroyAfterPartialInitialize(t *testing.T) {
	ctx, api := newSceneContext(t)
	vb, err := opengl.NewVertexBuffer(ctx.API, texturedQuadVertices, gl.STATIC_DRAW)
	require.NoError(t, err)

	// The index buffer and vertex array were never created.
	s := &TexturedScene{vb: vb}
	assert.NotPanics(t, s.Destroy)
	assert.True(t, api.Deleted(vb.ID()))
	assert.Nil(t, s.vb)

	tri := &TriangleScene{}
	assert.NotPanics(t, tri.Destroy)
}
