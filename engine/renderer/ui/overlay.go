package ui

import (
	"math"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/inkyblackness/imgui-go/v4"

	"github.com/lizual/lizual/engine/platform"
	"github.com/lizual/lizual/engine/renderer/opengl"
)

// Panel is a window drawn into the overlay every frame.
type Panel interface {
	Draw()
}

// Overlay owns the imgui context, feeds it window input and renders it on
// top of the scene.
type Overlay struct {
	context  *imgui.Context
	io       imgui.IO
	renderer *Renderer
	platform *platform.Platform

	mouseJustPressed [3]bool
	wantMouse        bool
	wantKeyboard     bool

	panels  []Panel
	Visible bool
}

func NewOverlay(api opengl.API, p *platform.Platform) (*Overlay, error) {
	context := imgui.CreateContext(nil)
	io := imgui.CurrentIO()
	io.SetIniFilename("")

	renderer, err := NewRenderer(api, io)
	if err != nil {
		context.Destroy()
		return nil, err
	}

	o := &Overlay{
		context:  context,
		io:       io,
		renderer: renderer,
		platform: p,
		Visible:  true,
	}
	o.setKeyMapping()
	if p != nil {
		p.AddRawInputHandler(o)
	}
	return o, nil
}

func (o *Overlay) AddPanel(panel Panel) {
	o.panels = append(o.panels, panel)
}

// WantCaptureMouse reports whether the last frame used the mouse, in which
// case the scene should ignore it.
func (o *Overlay) WantCaptureMouse() bool {
	return o.Visible && o.wantMouse
}

func (o *Overlay) WantCaptureKeyboard() bool {
	return o.Visible && o.wantKeyboard
}

// Render builds and draws one overlay frame.
func (o *Overlay) Render(deltaTime float64) {
	if !o.Visible || o.platform == nil {
		return
	}
	displayW, displayH := o.platform.WindowSize()
	fbW, fbH := o.platform.FramebufferSize()
	if displayW == 0 || displayH == 0 {
		return
	}

	o.io.SetDisplaySize(imgui.Vec2{X: float32(displayW), Y: float32(displayH)})
	if deltaTime > 0 {
		o.io.SetDeltaTime(float32(deltaTime))
	}

	window := o.platform.Window
	if window.GetAttrib(glfw.Focused) != 0 {
		x, y := window.GetCursorPos()
		o.io.SetMousePosition(imgui.Vec2{X: float32(x), Y: float32(y)})
	} else {
		o.io.SetMousePosition(imgui.Vec2{X: -math.MaxFloat32, Y: -math.MaxFloat32})
	}
	for i := 0; i < len(o.mouseJustPressed); i++ {
		down := o.mouseJustPressed[i] || window.GetMouseButton(glfwButtonIDByIndex[i]) == glfw.Press
		o.io.SetMouseButtonDown(i, down)
		o.mouseJustPressed[i] = false
	}

	imgui.NewFrame()
	for _, panel := range o.panels {
		panel.Draw()
	}
	imgui.Render()

	o.wantMouse = o.io.WantCaptureMouse()
	o.wantKeyboard = o.io.WantCaptureKeyboard()

	o.renderer.Render(
		[2]float32{float32(displayW), float32(displayH)},
		[2]float32{float32(fbW), float32(fbH)},
		imgui.RenderedDrawData(),
	)
}

func (o *Overlay) Destroy() {
	o.renderer.Destroy()
	o.context.Destroy()
}

func (o *Overlay) OnKey(key glfw.Key, action glfw.Action, mods glfw.ModifierKey) {
	if action == glfw.Press {
		o.io.KeyPress(int(key))
	}
	if action == glfw.Release {
		o.io.KeyRelease(int(key))
	}

	// Modifiers are not reliable across systems
	o.io.KeyCtrl(int(glfw.KeyLeftControl), int(glfw.KeyRightControl))
	o.io.KeyShift(int(glfw.KeyLeftShift), int(glfw.KeyRightShift))
	o.io.KeyAlt(int(glfw.KeyLeftAlt), int(glfw.KeyRightAlt))
	o.io.KeySuper(int(glfw.KeyLeftSuper), int(glfw.KeyRightSuper))
}

func (o *Overlay) OnChar(char rune) {
	o.io.AddInputCharacters(string(char))
}

func (o *Overlay) OnMouseButton(button glfw.MouseButton, action glfw.Action) {
	if index, known := glfwButtonIndexByID[button]; known && action == glfw.Press {
		o.mouseJustPressed[index] = true
	}
}

func (o *Overlay) OnScroll(xoff, yoff float64) {
	o.io.AddMouseWheelDelta(float32(xoff), float32(yoff))
}

func (o *Overlay) setKeyMapping() {
	// Keyboard mapping. ImGui will use those indices to peek into the io.KeysDown[] array.
	o.io.KeyMap(imgui.KeyTab, int(glfw.KeyTab))
	o.io.KeyMap(imgui.KeyLeftArrow, int(glfw.KeyLeft))
	o.io.KeyMap(imgui.KeyRightArrow, int(glfw.KeyRight))
	o.io.KeyMap(imgui.KeyUpArrow, int(glfw.KeyUp))
	o.io.KeyMap(imgui.KeyDownArrow, int(glfw.KeyDown))
	o.io.KeyMap(imgui.KeyPageUp, int(glfw.KeyPageUp))
	o.io.KeyMap(imgui.KeyPageDown, int(glfw.KeyPageDown))
	o.io.KeyMap(imgui.KeyHome, int(glfw.KeyHome))
	o.io.KeyMap(imgui.KeyEnd, int(glfw.KeyEnd))
	o.io.KeyMap(imgui.KeyInsert, int(glfw.KeyInsert))
	o.io.KeyMap(imgui.KeyDelete, int(glfw.KeyDelete))
	o.io.KeyMap(imgui.KeyBackspace, int(glfw.KeyBackspace))
	o.io.KeyMap(imgui.KeySpace, int(glfw.KeySpace))
	o.io.KeyMap(imgui.KeyEnter, int(glfw.KeyEnter))
	o.io.KeyMap(imgui.KeyEscape, int(glfw.KeyEscape))
	o.io.KeyMap(imgui.KeyA, int(glfw.KeyA))
	o.io.KeyMap(imgui.KeyC, int(glfw.KeyC))
	o.io.KeyMap(imgui.KeyV, int(glfw.KeyV))
	o.io.KeyMap(imgui.KeyX, int(glfw.KeyX))
	o.io.KeyMap(imgui.KeyY, int(glfw.KeyY))
	o.io.KeyMap(imgui.KeyZ, int(glfw.KeyZ))
}

var glfwButtonIndexByID = map[glfw.MouseButton]int{
	glfw.MouseButton1: 0,
	glfw.MouseButton2: 1,
	glfw.MouseButton3: 2,
}

var glfwButtonIDByIndex = map[int]glfw.MouseButton{
	0: glfw.MouseButton1,
	1: glfw.MouseButton2,
	2: glfw.MouseButton3,
}
