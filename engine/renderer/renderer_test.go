package renderer

import (
	"io"
	"testing"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lizual/lizual/engine/core"
	"github.com/lizual/lizual/engine/renderer/opengl"
	"github.com/lizual/lizual/engine/renderer/opengl/opengltest"
)

func newTestRenderer(t *testing.T) (*Renderer, *opengltest.API) {
	t.Helper()
	core.SetLogOutput(io.Discard)
	api := opengltest.New()
	api.Strings[gl.VERSION] = "3.3.0 Mesa"
	return New(api), api
}

func TestInfo(t *testing.T) {
	r, _ := newTestRenderer(t)
	assert.Equal(t, "3.3.0 Mesa", r.Info().Version)
}

func TestClearIncludesDepthWhenEnabled(t *testing.T) {
	r, api := newTestRenderer(t)
	r.Clear([4]float32{0.2, 0.3, 0.3, 1})
	r.EnableDepthTest(true)
	r.Clear([4]float32{0, 0, 0, 1})

	clears := api.CallsNamed("Clear")
	require.Len(t, clears, 2)
	assert.Equal(t, uint32(gl.COLOR_BUFFER_BIT), clears[0].Args[0])
	assert.Equal(t, uint32(gl.COLOR_BUFFER_BIT|gl.DEPTH_BUFFER_BIT), clears[1].Args[0])
	assert.True(t, api.Enabled[gl.DEPTH_TEST])
}

func TestSetWireframe(t *testing.T) {
	r, api := newTestRenderer(t)
	r.SetWireframe(true)
	r.SetWireframe(true)
	r.SetWireframe(false)

	modes := api.CallsNamed("PolygonMode")
	require.Len(t, modes, 2)
	assert.Equal(t, uint32(gl.LINE), modes[0].Args[1])
	assert.Equal(t, uint32(gl.FILL), modes[1].Args[1])
}

func TestDrawCountsStats(t *testing.T) {
	r, api := newTestRenderer(t)
	shader, err := opengl.NewShader(api, "v", "f")
	require.NoError(t, err)
	va := opengl.NewVertexArray(api)
	ib, err := opengl.NewIndexBuffer(api, []uint32{0, 1, 2, 2, 3, 0})
	require.NoError(t, err)

	r.BeginFrame()
	require.NoError(t, r.Draw(va, ib, shader))
	require.NoError(t, r.DrawArrays(va, shader, 0, 3))
	r.EndFrame()

	assert.Equal(t, FrameStats{DrawCalls: 2, Vertices: 3, Indices: 6}, r.Stats())
	draws := api.CallsNamed("DrawElements")
	require.Len(t, draws, 1)
	assert.Equal(t, []any{uint32(gl.TRIANGLES), int32(6), uint32(gl.UNSIGNED_INT), uintptr(0)}, draws[0].Args)
}

func TestOnResizedSetsViewport(t *testing.T) {
	r, api := newTestRenderer(t)
	r.OnResized(core.EventContext{
		Type: core.EVENT_CODE_RESIZED,
		Data: &core.SystemEvent{WindowWidth: 800, WindowHeight: 600},
	})
	vp := api.CallsNamed("Viewport")
	require.Len(t, vp, 1)
	assert.Equal(t, []any{int32(0), int32(0), int32(800), int32(600)}, vp[0].Args)
}
