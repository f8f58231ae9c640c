package engine

import (
	"github.com/lizual/lizual/engine/assets"
	"github.com/lizual/lizual/engine/config"
	"github.com/lizual/lizual/engine/platform"
	"github.com/lizual/lizual/engine/renderer"
	"github.com/lizual/lizual/engine/renderer/ui"
	"github.com/lizual/lizual/engine/systems"
)

// Game is implemented by the application. The engine fills in the
// subsystem pointers before FnInitialize runs.
type Game struct {
	ApplicationConfig *ApplicationConfig
	SystemManager     *systems.SystemManager
	Renderer          *renderer.Renderer
	Overlay           *ui.Overlay
	Platform          *platform.Platform
	Assets            *assets.AssetManager
	State             interface{}

	FnBoot       Boot
	FnInitialize Initialize
	FnUpdate     Update
	FnRender     Render
	FnOnResize   OnResize
	// FnOnConfigChanged is optional and runs on the main thread after a reload.
	FnOnConfigChanged OnConfigChanged
	FnShutdown        Shutdown
}

type Boot func() error
type Initialize func() error
type Update func(deltaTime float64) error
type Render func(deltaTime float64) error
type OnResize func(width uint32, height uint32) error
type OnConfigChanged func(cfg *config.Config) error
type Shutdown func() error
