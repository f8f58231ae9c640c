package platform

import (
	"runtime"
	"time"

	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/lizual/lizual/engine/core"
)

func init() {
	// GLFW event handling must run on the main OS thread
	runtime.LockOSThread()
}

// RawInputHandler receives GLFW input before it is translated into engine
// key codes. The UI overlay needs characters and modifier state that the
// engine input tables do not carry.
type RawInputHandler interface {
	OnKey(key glfw.Key, action glfw.Action, mods glfw.ModifierKey)
	OnChar(char rune)
	OnMouseButton(button glfw.MouseButton, action glfw.Action)
	OnScroll(xoff, yoff float64)
}

type Options struct {
	VSync     bool
	Resizable bool
	// Requests a debug context so driver messages are available.
	Debug bool
}

type Platform struct {
	Window *glfw.Window

	startTime float64
	minimized bool
	handlers  []RawInputHandler
}

func New() (*Platform, error) {
	return &Platform{
		Window: nil,
	}, nil
}

// Startup creates the window with an OpenGL 3.3 core, forward compatible
// context and makes that context current on the calling thread.
func (p *Platform) Startup(applicationName string, x, y int32, width, height uint32, opts Options) error {
	if err := glfw.Init(); err != nil {
		core.LogError("failed to initialize glfw: %s", err)
		return err
	}

	glfw.WindowHint(glfw.Visible, glfw.False)
	glfw.WindowHint(glfw.Resizable, boolHint(opts.Resizable))
	glfw.WindowHint(glfw.ContextVersionMajor, 3)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.OpenGLDebugContext, boolHint(opts.Debug))

	window, err := glfw.CreateWindow(int(width), int(height), applicationName, nil, nil)
	if err != nil {
		core.LogError("failed to create window: %s", err)
		glfw.Terminate()
		return err
	}
	window.MakeContextCurrent()
	if opts.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}
	p.Window = window

	p.Window.SetKeyCallback(p.keyCallback)
	p.Window.SetCharCallback(p.charCallback)
	p.Window.SetMouseButtonCallback(p.mouseButtonCallback)
	p.Window.SetCursorPosCallback(p.cursorPosCallback)
	p.Window.SetScrollCallback(p.scrollCallback)
	p.Window.SetFramebufferSizeCallback(p.framebufferSizeCallback)
	p.Window.SetIconifyCallback(p.iconifyCallback)
	p.Window.SetPos(int(x), int(y))
	p.Window.Show()

	p.startTime = glfw.GetTime()

	return nil
}

func (p *Platform) Shutdown() error {
	if p.Window != nil {
		p.Window.Destroy()
		p.Window = nil
	}
	glfw.Terminate()
	return nil
}

// PumpMessages processes pending window events. It returns false once the
// window has been asked to close.
func (p *Platform) PumpMessages() bool {
	glfw.PollEvents()
	return !p.Window.ShouldClose()
}

func (p *Platform) RequestClose() {
	p.Window.SetShouldClose(true)
}

func (p *Platform) SwapBuffers() {
	p.Window.SwapBuffers()
}

func (p *Platform) FramebufferSize() (uint32, uint32) {
	w, h := p.Window.GetFramebufferSize()
	return uint32(w), uint32(h)
}

func (p *Platform) WindowSize() (uint32, uint32) {
	w, h := p.Window.GetSize()
	return uint32(w), uint32(h)
}

func (p *Platform) Minimized() bool {
	return p.minimized
}

func (p *Platform) SetTitle(title string) {
	p.Window.SetTitle(title)
}

// SetCursorCaptured hides and locks the cursor for mouse look.
func (p *Platform) SetCursorCaptured(captured bool) {
	if captured {
		p.Window.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)
		return
	}
	p.Window.SetInputMode(glfw.CursorMode, glfw.CursorNormal)
}

func (p *Platform) AddRawInputHandler(h RawInputHandler) {
	p.handlers = append(p.handlers, h)
}

// GetAbsoluteTime returns seconds since Startup.
func (p *Platform) GetAbsoluteTime() float64 {
	return glfw.GetTime() - p.startTime
}

func (p *Platform) Sleep(ms uint64) {
	time.Sleep(time.Duration(ms) * time.Millisecond)
}

func (p *Platform) keyCallback(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	for _, h := range p.handlers {
		h.OnKey(key, action, mods)
	}
	if action == glfw.Repeat {
		return
	}
	code, ok := TranslateKey(key)
	if !ok {
		return
	}
	if err := core.InputProcessKey(code, action == glfw.Press); err != nil {
		core.LogWarn("dropped key event: %s", err)
	}
}

func (p *Platform) charCallback(w *glfw.Window, char rune) {
	for _, h := range p.handlers {
		h.OnChar(char)
	}
}

func (p *Platform) mouseButtonCallback(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
	for _, h := range p.handlers {
		h.OnMouseButton(button, action)
	}
	b, ok := TranslateButton(button)
	if !ok {
		return
	}
	if err := core.InputProcessButton(b, action == glfw.Press); err != nil {
		core.LogWarn("dropped mouse button event: %s", err)
	}
}

func (p *Platform) cursorPosCallback(w *glfw.Window, xpos, ypos float64) {
	if err := core.InputProcessMouseMove(xpos, ypos); err != nil {
		core.LogWarn("dropped mouse move event: %s", err)
	}
}

func (p *Platform) scrollCallback(w *glfw.Window, xoff, yoff float64) {
	for _, h := range p.handlers {
		h.OnScroll(xoff, yoff)
	}
	if err := core.InputProcessMouseWheel(yoff); err != nil {
		core.LogWarn("dropped mouse wheel event: %s", err)
	}
}

func (p *Platform) framebufferSizeCallback(w *glfw.Window, width, height int) {
	p.minimized = width == 0 || height == 0
	core.EventFire(core.EventContext{
		Type:   core.EVENT_CODE_RESIZED,
		Sender: p,
		Data: &core.SystemEvent{
			WindowWidth:  uint32(width),
			WindowHeight: uint32(height),
		},
	})
}

func (p *Platform) iconifyCallback(w *glfw.Window, iconified bool) {
	p.minimized = iconified
}

func boolHint(b bool) int {
	if b {
		return glfw.True
	}
	return glfw.False
}
