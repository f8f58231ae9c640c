package testbed

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/lizual/lizual/engine"
	"github.com/lizual/lizual/engine/config"
	"github.com/lizual/lizual/engine/core"
	"github.com/lizual/lizual/engine/math"
	"github.com/lizual/lizual/engine/renderer/components"
	"github.com/lizual/lizual/engine/renderer/opengl"
	"github.com/lizual/lizual/engine/renderer/text"
	"github.com/lizual/lizual/engine/renderer/ui"
	"github.com/lizual/lizual/engine/systems"
)

const (
	labelFontSize = 18
	minZoomFOV    = 1
)

type TestGame struct {
	*engine.Game
	config *config.Config
}

type gameState struct {
	scene       Scene
	pendingName string
	sceneCtx    *SceneContext
	controls    ui.Controls
	camera      *components.Camera
	cameraInput cameraControls

	font        *systems.FontData
	labelShader *opengl.Shader
	label       *text.Label

	width  uint32
	height uint32
}

func NewTestGame(cfg *config.Config) (*TestGame, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if _, err := NewScene(cfg.Render.Scene); err != nil {
		return nil, err
	}
	tg := &TestGame{
		Game: &engine.Game{
			ApplicationConfig: engine.NewApplicationConfig(cfg),
			State:             &gameState{},
		},
		config: cfg,
	}

	tg.FnBoot = tg.Boot
	tg.FnInitialize = tg.Initialize
	tg.FnUpdate = tg.Update
	tg.FnRender = tg.Render
	tg.FnOnResize = tg.OnResize
	tg.FnOnConfigChanged = tg.OnConfigChanged
	tg.FnShutdown = tg.Shutdown

	return tg, nil
}

func (g *TestGame) state() *gameState {
	return g.State.(*gameState)
}

// CurrentScene is the running scene, nil before Initialize.
func (g *TestGame) CurrentScene() Scene {
	return g.state().scene
}

func (g *TestGame) Boot() error {
	core.LogInfo("booting testbed (scene %s)...", g.config.Render.Scene)
	return nil
}

func (g *TestGame) Initialize() error {
	state := g.state()
	cfg := g.config

	state.camera = g.SystemManager.CameraSystem.GetDefault()
	state.cameraInput = cameraControls{
		MoveSpeed:       cfg.Camera.MoveSpeed,
		LookSensitivity: cfg.Camera.LookSensitivity,
	}
	state.controls = ui.Controls{
		ClearColor: [3]float32{cfg.Render.ClearColor[0], cfg.Render.ClearColor[1], cfg.Render.ClearColor[2]},
		Wireframe:  cfg.Render.Wireframe,
		Mix:        0.2,
	}
	state.width = g.ApplicationConfig.StartWidth
	state.height = g.ApplicationConfig.StartHeight
	state.sceneCtx = &SceneContext{
		API:      g.Renderer.API(),
		Renderer: g.Renderer,
		Systems:  g.SystemManager,
		Camera:   state.camera,
		Controls: &state.controls,
		Width:    state.width,
		Height:   state.height,
	}

	if err := g.switchScene(cfg.Render.Scene); err != nil {
		return err
	}

	core.EventRegister(core.EVENT_CODE_SCENE_CHANGE, g, g.onSceneChange)
	core.EventRegister(core.EVENT_CODE_KEY_PRESSED, g, g.onKey)
	core.EventRegister(core.EVENT_CODE_MOUSE_WHEEL, g, g.onMouseWheel)

	if err := g.createLabel(); err != nil {
		// The testbed is still usable without the caption.
		core.LogWarn("scene label disabled: %s", err)
	}

	if g.Overlay != nil {
		info := g.Renderer.Info()
		g.Overlay.AddPanel(&ui.StatsPanel{Source: func() ui.Stats {
			fps, frameTime := core.MetricsFrame()
			return ui.Stats{
				FPS:            fps,
				FrameTimeMs:    frameTime,
				DrawCalls:      g.Renderer.Stats().DrawCalls,
				CameraPosition: state.camera.GetPosition(),
				CameraPitch:    state.camera.Pitch,
				CameraYaw:      state.camera.Yaw,
				GLVersion:      info.Version,
				GLRenderer:     info.Renderer,
				Scene:          state.controls.Scene,
			}
		}})
		g.Overlay.AddPanel(&ui.ControlsPanel{
			Controls: &state.controls,
			Scenes:   Scenes(),
			OnSceneSelected: func(name string) {
				core.EventFire(core.EventContext{
					Type:   core.EVENT_CODE_SCENE_CHANGE,
					Sender: g,
					Data:   name,
				})
			},
		})
	}
	return nil
}

func (g *TestGame) createLabel() error {
	state := g.state()
	font, err := g.SystemManager.FontSystem.Acquire(systems.DEFAULT_FONT_NAME, labelFontSize)
	if err != nil {
		return err
	}
	state.font = font

	shader, err := text.NewTextShader(g.Renderer.API())
	if err != nil {
		return err
	}
	state.labelShader = shader

	label, err := text.NewLabel(g.Renderer.API(), font.Font, font, shader, g.caption())
	if err != nil {
		return err
	}
	state.label = label
	return nil
}

func (g *TestGame) caption() string {
	return fmt.Sprintf("lizual - %s", g.state().controls.Scene)
}

// switchScene brings up name before tearing down the current scene, so
// shared shaders and textures stay loaded.
func (g *TestGame) switchScene(name string) error {
	state := g.state()
	next, err := NewScene(name)
	if err != nil {
		return err
	}
	state.sceneCtx.Time = 0
	if err := next.Initialize(state.sceneCtx); err != nil {
		next.Destroy()
		return fmt.Errorf("scene %s: %w", name, err)
	}
	if state.scene != nil {
		state.scene.Destroy()
	}
	state.scene = next
	state.controls.Scene = name
	if state.label != nil {
		if err := state.label.SetText(g.caption()); err != nil {
			core.LogWarn("failed to update scene label: %s", err)
		}
	}
	core.LogInfo("scene %s running", name)
	return nil
}

func (g *TestGame) onSceneChange(context core.EventContext) bool {
	name, ok := context.Data.(string)
	if !ok {
		return false
	}
	// Applied at the start of the next render so a scene is never torn down
	// while it is drawing.
	g.state().pendingName = name
	return true
}

func (g *TestGame) onKey(context core.EventContext) bool {
	ke, ok := context.Data.(*core.KeyEvent)
	if !ok {
		return false
	}
	state := g.state()
	if g.Overlay != nil && g.Overlay.WantCaptureKeyboard() {
		return false
	}
	switch ke.KeyCode {
	case core.KEY_TAB:
		names := Scenes()
		next := names[0]
		for i, n := range names {
			if n == state.controls.Scene {
				next = names[(i+1)%len(names)]
				break
			}
		}
		state.pendingName = next
		return true
	case core.KEY_F1:
		state.controls.Wireframe = !state.controls.Wireframe
		return true
	case core.KEY_R:
		state.camera.Reset()
		return true
	}
	return false
}

// onMouseWheel zooms the camera between minZoomFOV and the configured FOV.
func (g *TestGame) onMouseWheel(context core.EventContext) bool {
	me, ok := context.Data.(*core.MouseEvent)
	if !ok {
		return false
	}
	state := g.state()
	if uc, ok := state.scene.(UsesCamera); !ok || !uc.UsesCamera() {
		return false
	}
	if g.Overlay != nil && g.Overlay.WantCaptureMouse() {
		return false
	}
	state.camera.FOV = math.Clamp(state.camera.FOV-float32(me.Scroll), minZoomFOV, g.config.Camera.FOV)
	return true
}

func (g *TestGame) applyPendingScene() {
	state := g.state()
	name := state.pendingName
	state.pendingName = ""
	if name == "" || name == state.controls.Scene {
		return
	}
	if err := g.switchScene(name); err != nil {
		core.LogError("failed to switch scene: %s", err)
		// Keep the panel in sync with what is actually running.
		if state.scene != nil {
			state.controls.Scene = state.scene.Name()
		}
	}
}

func (g *TestGame) Update(deltaTime float64) error {
	state := g.state()
	state.sceneCtx.Time += deltaTime
	return state.scene.Update(state.sceneCtx, deltaTime)
}

func (g *TestGame) Render(deltaTime float64) error {
	state := g.state()
	g.applyPendingScene()

	if uc, ok := state.scene.(UsesCamera); ok && uc.UsesCamera() {
		var ignoreKeyboard, ignoreMouse bool
		if g.Overlay != nil {
			ignoreKeyboard = g.Overlay.WantCaptureKeyboard()
			ignoreMouse = g.Overlay.WantCaptureMouse()
		}
		state.cameraInput.apply(state.camera, deltaTime, ignoreKeyboard, ignoreMouse)
	}

	c := state.controls.ClearColor
	g.Renderer.Clear([4]float32{c[0], c[1], c[2], 1})
	g.Renderer.SetWireframe(state.controls.Wireframe)
	err := state.scene.Render(state.sceneCtx)
	// The label and the overlay drawn after this are always filled.
	g.Renderer.SetWireframe(false)
	if err != nil {
		return err
	}

	if state.label != nil {
		g.Renderer.EnableDepthTest(false)
		err := state.label.Draw(g.Renderer, float32(state.width), float32(state.height), mgl32.Vec2{10, float32(state.height) - 30})
		g.Renderer.EnableDepthTest(true)
		if err != nil {
			return err
		}
	}
	return nil
}

func (g *TestGame) OnResize(width uint32, height uint32) error {
	state := g.state()
	state.width = width
	state.height = height
	if state.sceneCtx != nil {
		state.sceneCtx.Width = width
		state.sceneCtx.Height = height
	}
	return nil
}

// OnConfigChanged applies the parts of a reloaded configuration that can
// change at runtime.
func (g *TestGame) OnConfigChanged(cfg *config.Config) error {
	state := g.state()
	g.config = cfg
	state.controls.ClearColor = [3]float32{cfg.Render.ClearColor[0], cfg.Render.ClearColor[1], cfg.Render.ClearColor[2]}
	state.controls.Wireframe = cfg.Render.Wireframe
	state.cameraInput = cameraControls{
		MoveSpeed:       cfg.Camera.MoveSpeed,
		LookSensitivity: cfg.Camera.LookSensitivity,
	}
	if state.camera != nil {
		if cfg.Camera.FOV > 0 {
			state.camera.FOV = cfg.Camera.FOV
		}
		if cfg.Camera.Near > 0 {
			state.camera.Near = cfg.Camera.Near
		}
		if cfg.Camera.Far > 0 {
			state.camera.Far = cfg.Camera.Far
		}
	}
	if cfg.Render.Scene != state.controls.Scene {
		state.pendingName = cfg.Render.Scene
	}
	return nil
}

func (g *TestGame) Shutdown() error {
	state := g.state()
	core.EventUnregister(core.EVENT_CODE_SCENE_CHANGE, g)
	core.EventUnregister(core.EVENT_CODE_KEY_PRESSED, g)
	core.EventUnregister(core.EVENT_CODE_MOUSE_WHEEL, g)

	if state.scene != nil {
		state.scene.Destroy()
		state.scene = nil
	}
	if state.label != nil {
		state.label.Delete()
		state.label = nil
	}
	if state.labelShader != nil {
		state.labelShader.Delete()
		state.labelShader = nil
	}
	if state.font != nil {
		g.SystemManager.FontSystem.Release(systems.DEFAULT_FONT_NAME)
		state.font = nil
	}
	core.LogInfo("testbed shut down")
	return nil
}
