package testbed

import (
	"testing"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lizual/lizual/engine/config"
	"github.com/lizual/lizual/engine/core"
	"github.com/lizual/lizual/engine/renderer/opengl/opengltest"
)

func initEvents(t *testing.T) {
	t.Helper()
	if !core.EventSystemInitialize() {
		t.Skip("event system already initialized")
	}
	t.Cleanup(func() { _ = core.EventSystemShutdown() })
}

// newRunningGame initializes a TestGame the way the engine does, without a
// window or overlay.
func newRunningGame(t *testing.T, cfg *config.Config) (*TestGame, *opengltest.API) {
	t.Helper()
	initEvents(t)
	initInput(t)

	g, err := NewTestGame(cfg)
	require.NoError(t, err)

	sm, r, api := newSystems(t)
	g.SystemManager = sm
	g.Renderer = r

	require.NoError(t, g.Boot())
	require.NoError(t, g.Initialize())
	require.NoError(t, g.OnResize(800, 600))
	t.Cleanup(func() { _ = g.Shutdown() })
	return g, api
}

func TestNewTestGameRejectsUnknownScene(t *testing.T) {
	cfg := config.Default()
	cfg.Render.Scene = "teapot"
	_, err := NewTestGame(cfg)
	assert.Error(t, err)
}

func TestNewTestGameUsesConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Window.Title = "demo"
	cfg.Window.Width = 640
	g, err := NewTestGame(cfg)
	require.NoError(t, err)
	assert.Equal(t, "demo", g.ApplicationConfig.Name)
	assert.Equal(t, uint32(640), g.ApplicationConfig.StartWidth)
	assert.NotNil(t, g.FnOnConfigChanged)
}

func TestGameRendersSceneAndLabel(t *testing.T) {
	g, api := newRunningGame(t, config.Default())
	require.Equal(t, "triangle", g.CurrentScene().Name())

	state := g.state()
	require.NotNil(t, state.label)
	assert.Equal(t, "lizual - triangle", state.label.Text())

	require.NoError(t, g.Update(1.0/60))
	api.Reset()
	require.NoError(t, g.Render(1.0/60))

	assert.Len(t, api.CallsNamed("Clear"), 1)
	assert.Len(t, api.CallsNamed("DrawArrays"), 1)
	// The label is the only indexed draw.
	assert.Len(t, api.CallsNamed("DrawElements"), 1)
}

func TestSceneChangeEvent(t *testing.T) {
	g, _ := newRunningGame(t, config.Default())

	core.EventFire(core.EventContext{
		Type: core.EVENT_CODE_SCENE_CHANGE,
		Data: "cubes",
	})
	// Nothing changes until the next frame.
	assert.Equal(t, "triangle", g.CurrentScene().Name())

	require.NoError(t, g.Render(1.0/60))
	assert.Equal(t, "cubes", g.CurrentScene().Name())
	assert.Equal(t, "lizual - cubes", g.state().label.Text())
	assert.Equal(t, "cubes", g.state().controls.Scene)
}

func TestUnknownSceneKeepsCurrent(t *testing.T) {
	g, _ := newRunningGame(t, config.Default())

	g.state().pendingName = "teapot"
	require.NoError(t, g.Render(1.0/60))
	assert.Equal(t, "triangle", g.CurrentScene().Name())
	assert.Equal(t, "triangle", g.state().controls.Scene)
}

func TestTabCyclesScenes(t *testing.T) {
	g, _ := newRunningGame(t, config.Default())

	var seen []string
	for i := 0; i < len(Scenes()); i++ {
		require.NoError(t, core.InputProcessKey(core.KEY_TAB, true))
		require.NoError(t, core.InputProcessKey(core.KEY_TAB, false))
		require.NoError(t, g.Render(1.0/60))
		seen = append(seen, g.CurrentScene().Name())
	}
	assert.Equal(t, []string{"quad", "textured", "cubes", "triangle"}, seen)
}

func TestConfigChangeAppliesAtRuntime(t *testing.T) {
	g, api := newRunningGame(t, config.Default())

	cfg := config.Default()
	cfg.Render.Scene = "quad"
	cfg.Render.Wireframe = true
	cfg.Render.ClearColor = [4]float32{1, 0, 0, 1}
	cfg.Camera.FOV = 60
	require.NoError(t, g.OnConfigChanged(cfg))

	api.Reset()
	require.NoError(t, g.Render(1.0/60))
	assert.Equal(t, "quad", g.CurrentScene().Name())
	assert.Equal(t, float32(60), g.state().camera.FOV)

	clear := api.CallsNamed("ClearColor")
	require.Len(t, clear, 1)
	assert.Equal(t, float32(1), clear[0].Args[0])

	modes := api.CallsNamed("PolygonMode")
	require.NotEmpty(t, modes)
	assert.Equal(t, uint32(gl.LINE), modes[0].Args[1])
}

func TestWireframeResetWithoutLabel(t *testing.T) {
	cfg := config.Default()
	cfg.Render.Wireframe = true
	g, api := newRunningGame(t, cfg)

	state := g.state()
	state.label.Delete()
	state.label = nil

	api.Reset()
	require.NoError(t, g.Render(1.0/60))

	modes := api.CallsNamed("PolygonMode")
	require.Len(t, modes, 2)
	assert.Equal(t, uint32(gl.LINE), modes[0].Args[1])
	assert.Equal(t, uint32(gl.FILL), modes[1].Args[1])
	assert.False(t, g.Renderer.Wireframe())
}

func TestShutdownReleasesScene(t *testing.T) {
	g, _ := newRunningGame(t, config.Default())
	require.NoError(t, g.Shutdown())
	assert.Nil(t, g.CurrentScene())
	assert.Nil(t, g.state().label)
}

func TestMouseWheelZoomsCubesCamera(t *testing.T) {
	cfg := config.Default()
	cfg.Render.Scene = "cubes"
	g, _ := newRunningGame(t, cfg)
	cam := g.state().camera

	require.NoError(t, core.InputProcessMouseWheel(5))
	assert.Equal(t, float32(40), cam.FOV)

	require.NoError(t, core.InputProcessMouseWheel(100))
	assert.Equal(t, float32(minZoomFOV), cam.FOV)

	require.NoError(t, core.InputProcessMouseWheel(-100))
	assert.Equal(t, cfg.Camera.FOV, cam.FOV)
}

func TestMouseWheelIgnoredWithoutCamera(t *testing.T) {
	g, _ := newRunningGame(t, config.Default())
	fov := g.state().camera.FOV
	require.NoError(t, core.InputProcessMouseWheel(5))
	assert.Equal(t, fov, g.state().camera.FOV)
}
