package ui

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/inkyblackness/imgui-go/v4"
)

// Stats is what the stats panel shows. The engine fills it once per frame.
type Stats struct {
	FPS         float64
	FrameTimeMs float64
	DrawCalls   int

	CameraPosition mgl32.Vec3
	CameraPitch    float32
	CameraYaw      float32

	GLVersion  string
	GLRenderer string
	Scene      string
}

type StatsPanel struct {
	Source func() Stats
}

func (p *StatsPanel) Draw() {
	if p.Source == nil {
		return
	}
	s := p.Source()

	imgui.SetNextWindowPosV(imgui.Vec2{X: 10, Y: 10}, imgui.ConditionFirstUseEver, imgui.Vec2{})
	imgui.Begin("Stats")
	imgui.Text(fmt.Sprintf("%.1f FPS (%.3f ms/frame)", s.FPS, s.FrameTimeMs))
	imgui.Text(fmt.Sprintf("draw calls: %d", s.DrawCalls))
	imgui.Separator()
	imgui.Text(fmt.Sprintf("scene: %s", s.Scene))
	imgui.Text(fmt.Sprintf("camera: (%.2f, %.2f, %.2f)", s.CameraPosition.X(), s.CameraPosition.Y(), s.CameraPosition.Z()))
	imgui.Text(fmt.Sprintf("pitch %.1f  yaw %.1f", s.CameraPitch, s.CameraYaw))
	imgui.Separator()
	imgui.Text(s.GLRenderer)
	imgui.Text(s.GLVersion)
	imgui.End()
}

// Controls is the state edited by the controls panel.
type Controls struct {
	ClearColor [3]float32
	Wireframe  bool
	Mix        float32
	Scene      string
}

type ControlsPanel struct {
	Controls *Controls
	Scenes   []string
	// OnSceneSelected is called when a different scene is picked.
	OnSceneSelected func(name string)
}

func (p *ControlsPanel) Draw() {
	if p.Controls == nil {
		return
	}
	c := p.Controls

	imgui.SetNextWindowPosV(imgui.Vec2{X: 10, Y: 200}, imgui.ConditionFirstUseEver, imgui.Vec2{})
	imgui.Begin("Controls")
	imgui.ColorEdit3("clear color", &c.ClearColor)
	imgui.Checkbox("wireframe", &c.Wireframe)
	imgui.SliderFloat("mix", &c.Mix, 0, 1)

	if len(p.Scenes) > 0 {
		imgui.Separator()
		for _, name := range p.Scenes {
			if imgui.RadioButton(name, name == c.Scene) && name != c.Scene {
				c.Scene = name
				if p.OnSceneSelected != nil {
					p.OnSceneSelected(name)
				}
			}
		}
	}
	imgui.End()
}
