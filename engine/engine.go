package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/afero"

	"github.com/lizual/lizual/engine/assets"
	"github.com/lizual/lizual/engine/config"
	"github.com/lizual/lizual/engine/containers"
	"github.com/lizual/lizual/engine/core"
	"github.com/lizual/lizual/engine/platform"
	"github.com/lizual/lizual/engine/renderer"
	"github.com/lizual/lizual/engine/renderer/opengl"
	"github.com/lizual/lizual/engine/renderer/ui"
	"github.com/lizual/lizual/engine/systems"
)

type Stage uint8

const (
	// Engine is in an uninitialized state
	EngineStageUninitialized Stage = iota
	// Engine is currently booting up
	EngineStageBooting
	// Engine completed boot process and is ready to be initialized
	EngineStageBootComplete
	// Engine is currently initializing
	EngineStageInitializing
	// Engine initialization is complete
	EngineStageInitialized
	// Engine is currently running
	EngineStageRunning
	// Engine is in the process of shutting down
	EngineStageShuttingDown
)

func (s Stage) String() string {
	switch s {
	case EngineStageUninitialized:
		return "uninitialized"
	case EngineStageBooting:
		return "booting"
	case EngineStageBootComplete:
		return "boot complete"
	case EngineStageInitializing:
		return "initializing"
	case EngineStageInitialized:
		return "initialized"
	case EngineStageRunning:
		return "running"
	case EngineStageShuttingDown:
		return "shutting down"
	}
	return fmt.Sprintf("stage(%d)", uint8(s))
}

var ErrWrongStage = errors.New("engine is in the wrong stage")

// How often the loop checks for a restore while the window is minimized.
const suspendedSleepMS = 16

type Engine struct {
	currentStage  Stage
	gameInstance  *Game
	config        *config.Config
	isRunning     bool
	isSuspended   bool
	platform      *platform.Platform
	assetManager  *assets.AssetManager
	systemManager *systems.SystemManager
	renderer      *renderer.Renderer
	overlay       *ui.Overlay
	width         uint32
	height        uint32
	clock         *core.Clock
	lastTime      float64
	step          fixedStep

	configPath    string
	configLoader  config.LoaderFunc
	pendingConfig *containers.RingQueue[*config.Config]
}

func New(g *Game, cfg *config.Config) (*Engine, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if g.ApplicationConfig == nil {
		g.ApplicationConfig = NewApplicationConfig(cfg)
	}
	core.SetLogLevel(g.ApplicationConfig.LogLevel)

	p, err := platform.New()
	if err != nil {
		return nil, err
	}
	am, err := assets.NewAssetManager()
	if err != nil {
		core.LogError(err.Error())
		return nil, err
	}

	return &Engine{
		currentStage:  EngineStageUninitialized,
		gameInstance:  g,
		config:        cfg,
		clock:         core.NewClock(),
		platform:      p,
		assetManager:  am,
		width:         g.ApplicationConfig.StartWidth,
		height:        g.ApplicationConfig.StartHeight,
		pendingConfig: containers.NewRingQueue[*config.Config](4),
	}, nil
}

// WatchConfig reloads the configuration from path whenever it changes while
// Run is active. load defaults to config.Load.
func (e *Engine) WatchConfig(path string, load config.LoaderFunc) {
	e.configPath = path
	e.configLoader = load
}

func (e *Engine) Stage() Stage {
	return e.currentStage
}

// Config is the configuration currently in effect.
func (e *Engine) Config() *config.Config {
	return e.config
}

func (e *Engine) Initialize() error {
	if e.currentStage != EngineStageUninitialized {
		return fmt.Errorf("%w: initialize called while %s", ErrWrongStage, e.currentStage)
	}
	g := e.gameInstance
	app := g.ApplicationConfig

	e.currentStage = EngineStageBooting
	if g.FnBoot != nil {
		if err := g.FnBoot(); err != nil {
			core.LogError("game boot failed: %s", err)
			return err
		}
	}
	e.currentStage = EngineStageBootComplete

	e.currentStage = EngineStageInitializing
	// initialize input
	if err := core.InputInitialize(); err != nil {
		return err
	}
	// initialize events
	if !core.EventSystemInitialize() {
		return fmt.Errorf("failed to initialize the event system")
	}
	if err := core.MetricsInitialize(); err != nil {
		return err
	}

	// register some events
	core.EventRegister(core.EVENT_CODE_APPLICATION_QUIT, e, e.onEvent)
	core.EventRegister(core.EVENT_CODE_KEY_PRESSED, e, e.onKey)
	core.EventRegister(core.EVENT_CODE_RESIZED, e, e.onResized)

	if err := e.platform.Startup(app.Name, app.StartPosX, app.StartPosY, app.StartWidth, app.StartHeight, platform.Options{
		VSync:     e.config.Window.VSync,
		Resizable: e.config.Window.Resizable,
		Debug:     e.config.Render.GLDebug,
	}); err != nil {
		return err
	}

	driver, err := opengl.NewDriver()
	if err != nil {
		return err
	}
	opengl.SetDebug(e.config.Render.GLDebug)

	e.renderer = renderer.New(driver)
	core.EventRegister(core.EVENT_CODE_RESIZED, e.renderer, e.renderer.OnResized)
	fbW, fbH := e.platform.FramebufferSize()
	e.renderer.Viewport(int32(fbW), int32(fbH))
	e.renderer.EnableDepthTest(true)

	// initialize subsystems
	if err := e.assetManager.Initialize(e.config.Assets.Dir); err != nil {
		return err
	}
	sm, err := systems.NewSystemManager(driver, e.assetManager, e.config)
	if err != nil {
		return err
	}
	if err := sm.Initialize(); err != nil {
		return err
	}
	e.systemManager = sm

	overlay, err := ui.NewOverlay(driver, e.platform)
	if err != nil {
		return err
	}
	e.overlay = overlay

	g.SystemManager = e.systemManager
	g.Renderer = e.renderer
	g.Overlay = e.overlay
	g.Platform = e.platform
	g.Assets = e.assetManager

	if g.FnInitialize != nil {
		if err := g.FnInitialize(); err != nil {
			core.LogError("game initialization failed: %s", err)
			return err
		}
	}
	if g.FnOnResize != nil {
		if err := g.FnOnResize(fbW, fbH); err != nil {
			return err
		}
	}

	e.currentStage = EngineStageInitialized
	return nil
}

// Run drives the main loop until the window closes, quit is requested or
// ctx is cancelled. It must be called from the thread that ran Initialize.
func (e *Engine) Run(ctx context.Context) error {
	if e.currentStage != EngineStageInitialized {
		return fmt.Errorf("%w: run called while %s", ErrWrongStage, e.currentStage)
	}
	e.currentStage = EngineStageRunning
	e.isRunning = true
	e.clock.Start()
	e.clock.Update()
	e.lastTime = e.clock.Elapsed()

	if e.configPath != "" {
		go e.watchConfig(ctx)
	}

	for e.isRunning {
		select {
		case <-ctx.Done():
			core.LogInfo("run context cancelled, shutting down.")
			e.isRunning = false
			continue
		default:
		}

		if !e.platform.PumpMessages() {
			e.isRunning = false
			break
		}
		e.applyPendingConfig()

		e.isSuspended = e.platform.Minimized()
		if e.isSuspended {
			e.platform.Sleep(suspendedSleepMS)
			// Keep the clock moving so resuming does not produce a huge delta.
			e.clock.Update()
			e.lastTime = e.clock.Elapsed()
			continue
		}

		if err := e.frame(); err != nil {
			e.isRunning = false
			return err
		}
	}
	return nil
}

func (e *Engine) frame() error {
	// Update clock and get delta time.
	e.clock.Update()
	currentTime := e.clock.Elapsed()
	delta := currentTime - e.lastTime
	frameStartTime := e.platform.GetAbsoluteTime()

	e.systemManager.Update()

	// update_rate is read every frame so a reload takes effect immediately.
	steps, stepSize := e.step.Advance(delta, e.config.Render.UpdateRate)
	for i := 0; i < steps; i++ {
		if err := e.gameInstance.FnUpdate(stepSize); err != nil {
			core.LogError("Game update failed, shutting down: %s", err)
			return err
		}
	}

	e.renderer.BeginFrame()
	// Call the game's render routine.
	if err := e.gameInstance.FnRender(delta); err != nil {
		core.LogError("Game render failed, shutting down: %s", err)
		return err
	}
	e.overlay.Render(delta)
	e.renderer.EndFrame()
	e.platform.SwapBuffers()

	frameElapsedTime := e.platform.GetAbsoluteTime() - frameStartTime
	core.MetricsUpdate(frameElapsedTime)

	// NOTE: Input update/state copying should always be handled
	// after any input should be recorded; I.E. before this line.
	// As a safety, input is the last thing to be updated before
	// this frame ends.
	if err := core.InputUpdate(delta); err != nil {
		core.LogWarn("input update failed: %s", err)
	}

	// Update last time
	e.lastTime = currentTime
	return nil
}

func (e *Engine) watchConfig(ctx context.Context) {
	w := config.NewWatcher(afero.NewOsFs(), e.configLoader)
	err := w.Watch(ctx, e.configPath, func(cfg *config.Config) {
		if err := e.pendingConfig.Enqueue(cfg); err != nil {
			core.LogWarn("config reload dropped: %s", err)
		}
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		core.LogError("config watcher stopped: %s", err)
	}
}

// applyPendingConfig swaps in the newest reloaded configuration.
func (e *Engine) applyPendingConfig() {
	pending := e.pendingConfig.Drain()
	if len(pending) == 0 {
		return
	}
	cfg := pending[len(pending)-1]
	e.config = cfg
	core.LogInfo("configuration reloaded (update_rate=%d)", cfg.Render.UpdateRate)
	if err := core.SetLogLevelFromString(cfg.Log.Level); err != nil {
		core.LogWarn("ignoring log level %q: %s", cfg.Log.Level, err)
	}
	core.EventFire(core.EventContext{
		Type:   core.EVENT_CODE_CONFIG_CHANGED,
		Sender: e,
		Data:   cfg,
	})
	if e.gameInstance.FnOnConfigChanged != nil {
		if err := e.gameInstance.FnOnConfigChanged(cfg); err != nil {
			core.LogError("game rejected the new configuration: %s", err)
		}
	}
}

func (e *Engine) Shutdown() error {
	e.currentStage = EngineStageShuttingDown
	e.isRunning = false

	var errs []error
	if e.gameInstance.FnShutdown != nil {
		errs = append(errs, e.gameInstance.FnShutdown())
	}
	if e.overlay != nil {
		e.overlay.Destroy()
	}
	if e.systemManager != nil {
		errs = append(errs, e.systemManager.Shutdown())
	}
	errs = append(errs, e.assetManager.Close())
	errs = append(errs, core.EventSystemShutdown())
	errs = append(errs, core.InputShutdown())
	if e.platform.Window != nil {
		errs = append(errs, e.platform.Shutdown())
	}
	e.currentStage = EngineStageUninitialized
	return errors.Join(errs...)
}

// GetFramebufferSize returns the width and height (in this order)
// of the application framebuffer.
func (e *Engine) GetFramebufferSize() (uint32, uint32) {
	return e.width, e.height
}

func (e *Engine) onEvent(context core.EventContext) bool {
	switch context.Type {
	case core.EVENT_CODE_APPLICATION_QUIT:
		core.LogInfo("EVENT_CODE_APPLICATION_QUIT received, shutting down.")
		e.isRunning = false
		return true
	}
	return false
}

func (e *Engine) onKey(context core.EventContext) bool {
	ke, ok := context.Data.(*core.KeyEvent)
	if !ok {
		core.LogError("wrong event associated with the event type `%d`", context.Type)
		return false
	}
	if ke.KeyCode == core.KEY_ESCAPE {
		// NOTE: Technically firing an event to itself, but there may be other listeners.
		core.EventFire(core.EventContext{
			Type: core.EVENT_CODE_APPLICATION_QUIT,
		})
		// Block anything else from processing this.
		return true
	}
	return false
}

func (e *Engine) onResized(context core.EventContext) bool {
	se, ok := context.Data.(*core.SystemEvent)
	if !ok {
		core.LogError("wrong event associated with the event type `%d`", context.Type)
		return false
	}
	width, height := se.WindowWidth, se.WindowHeight

	// Check if different. If so, pass the resize on.
	if width == e.width && height == e.height {
		return false
	}
	e.width, e.height = width, height
	core.LogDebug("Window resize: %d, %d", width, height)

	// Handle minimization
	if width == 0 || height == 0 {
		core.LogInfo("Window minimized, suspending application.")
		e.isSuspended = true
		return false
	}
	if e.isSuspended {
		core.LogInfo("Window restored, resuming application.")
		e.isSuspended = false
	}
	if e.gameInstance.FnOnResize != nil {
		if err := e.gameInstance.FnOnResize(width, height); err != nil {
			core.LogError(err.Error())
		}
	}
	// Let the renderer see it too.
	return false
}
