package testbed

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lizual/lizual/engine/assets"
	"github.com/lizual/lizual/engine/config"
	"github.com/lizual/lizual/engine/renderer"
	"github.com/lizual/lizual/engine/renderer/opengl/opengltest"
	"github.com/lizual/lizual/engine/renderer/ui"
	"github.com/lizual/lizual/engine/systems"
)

// newSystems wires the real systems to a fake GL over the shipped assets.
func newSystems(t *testing.T) (*systems.SystemManager, *renderer.Renderer, *opengltest.API) {
	t.Helper()
	api := opengltest.New()
	api.AllUniforms = true

	am, err := assets.NewAssetManager()
	require.NoError(t, err)
	require.NoError(t, am.Initialize("../assets"))
	t.Cleanup(func() { _ = am.Close() })

	sm, err := systems.NewSystemManager(api, am, config.Default())
	require.NoError(t, err)
	require.NoError(t, sm.Initialize())
	t.Cleanup(func() { _ = sm.Shutdown() })

	return sm, renderer.New(api), api
}

func newSceneContext(t *testing.T) (*SceneContext, *opengltest.API) {
	t.Helper()
	sm, r, api := newSystems(t)
	return &SceneContext{
		API:      api,
		Renderer: r,
		Systems:  sm,
		Camera:   sm.CameraSystem.GetDefault(),
		Controls: &ui.Controls{Mix: 0.2},
		Width:    1280,
		Height:   720,
	}, api
}
