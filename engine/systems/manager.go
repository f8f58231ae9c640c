package systems

import (
	"errors"
	"runtime"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/lizual/lizual/engine/config"
	"github.com/lizual/lizual/engine/core"
	"github.com/lizual/lizual/engine/renderer/opengl"
)

type SystemManager struct {
	CameraSystem  *CameraSystem
	JobSystem     *JobSystem
	ShaderSystem  *ShaderSystem
	TextureSystem *TextureSystem
	FontSystem    *FontSystem
}

// NewSystemManager creates every system. Initialize must be called on the
// GL thread before use.
func NewSystemManager(api opengl.API, am AssetLoader, cfg *config.Config) (*SystemManager, error) {
	workers := runtime.NumCPU() - 1
	if workers < 1 {
		workers = 1
	}
	js, err := NewJobSystem(workers, 64)
	if err != nil {
		return nil, err
	}
	cs, err := NewCameraSystem(&CameraSystemConfig{
		MaxCameraCount: 100,
		Position:       mgl32.Vec3(cfg.Camera.Position),
		Pitch:          cfg.Camera.Pitch,
		Yaw:            cfg.Camera.Yaw,
		FOV:            cfg.Camera.FOV,
		Near:           cfg.Camera.Near,
		Far:            cfg.Camera.Far,
	})
	if err != nil {
		return nil, err
	}
	ss, err := NewShaderSystem(&ShaderSystemConfig{
		MaxShaderCount: 64,
	}, api, am)
	if err != nil {
		return nil, err
	}
	ts, err := NewTextureSystem(&TextureSystemConfig{
		MaxTextureCount: 1000,
	}, js, am, api)
	if err != nil {
		return nil, err
	}
	fs, err := NewFontSystem(&FontSystemConfig{
		MaxBitmapFontCount: 16,
		MaxSystemFontCount: 16,
		DefaultFontSize:    18,
	}, ts, am, api)
	if err != nil {
		return nil, err
	}
	return &SystemManager{
		CameraSystem:  cs,
		JobSystem:     js,
		ShaderSystem:  ss,
		TextureSystem: ts,
		FontSystem:    fs,
	}, nil
}

// Initialize uploads default resources and starts listening for asset changes.
func (sm *SystemManager) Initialize() error {
	if err := sm.TextureSystem.Initialize(); err != nil {
		return err
	}
	if err := sm.FontSystem.Initialize(); err != nil {
		return err
	}
	core.EventRegister(core.EVENT_CODE_ASSET_CHANGED, sm.ShaderSystem, sm.ShaderSystem.OnAssetChanged)
	core.EventRegister(core.EVENT_CODE_ASSET_CHANGED, sm.TextureSystem, sm.TextureSystem.OnAssetChanged)
	return nil
}

// Update dispatches finished jobs and pending reloads. Once per frame on the GL thread.
func (sm *SystemManager) Update() {
	sm.JobSystem.Update()
	sm.ShaderSystem.Update()
}

func (sm *SystemManager) Shutdown() error {
	core.EventUnregister(core.EVENT_CODE_ASSET_CHANGED, sm.ShaderSystem)
	core.EventUnregister(core.EVENT_CODE_ASSET_CHANGED, sm.TextureSystem)

	// Workers first so nothing completes into a torn down system.
	return errors.Join(
		sm.JobSystem.Shutdown(),
		sm.FontSystem.Shutdown(),
		sm.ShaderSystem.Shutdown(),
		sm.TextureSystem.Shutdown(),
		sm.CameraSystem.Shutdown(),
	)
}
