package testbed

import (
	"fmt"

	"github.com/lizual/lizual/engine/renderer"
	"github.com/lizual/lizual/engine/renderer/components"
	"github.com/lizual/lizual/engine/renderer/opengl"
	"github.com/lizual/lizual/engine/renderer/ui"
	"github.com/lizual/lizual/engine/systems"
)

// SceneContext is what a scene may touch while it runs.
type SceneContext struct {
	API      opengl.API
	Renderer *renderer.Renderer
	Systems  *systems.SystemManager
	Camera   *components.Camera
	Controls *ui.Controls

	Width  uint32
	Height uint32
	// Seconds of simulated time since the scene started.
	Time float64
}

func (c *SceneContext) Aspect() float32 {
	if c.Height == 0 {
		return 1
	}
	return float32(c.Width) / float32(c.Height)
}

type Scene interface {
	Name() string
	Initialize(ctx *SceneContext) error
	// Update runs at the fixed update rate.
	Update(ctx *SceneContext, deltaTime float64) error
	Render(ctx *SceneContext) error
	Destroy()
}

// UsesCamera is implemented by scenes that want camera input.
type UsesCamera interface {
	UsesCamera() bool
}

var sceneOrder = []string{"triangle", "quad", "textured", "cubes"}

var sceneFactories = map[string]func() Scene{
	"triangle": func() Scene { return &TriangleScene{} },
	"quad":     func() Scene { return &QuadScene{} },
	"textured": func() Scene { return &TexturedScene{} },
	"cubes":    func() Scene { return &CubesScene{} },
}

// Scenes lists scene names in tutorial order.
func Scenes() []string {
	return append([]string(nil), sceneOrder...)
}

func NewScene(name string) (Scene, error) {
	factory, ok := sceneFactories[name]
	if !ok {
		return nil, fmt.Errorf("unknown scene %q, expected one of %v", name, sceneOrder)
	}
	return factory(), nil
}

// shaderConfig names the vertex and fragment stages shaders/<name>.vert|frag.
func shaderConfig(name string) systems.ShaderConfig {
	return systems.ShaderConfig{
		Name:         name,
		VertexPath:   "shaders/" + name + ".vert",
		FragmentPath: "shaders/" + name + ".frag",
	}
}

// acquireShader creates the shader on first use and reuses it afterwards,
// so switching back to a scene does not recompile.
func acquireShader(ss *systems.ShaderSystem, name string) (string, error) {
	if _, err := ss.Get(name); err == nil {
		return name, nil
	}
	if _, err := ss.CreateShader(shaderConfig(name)); err != nil {
		return "", err
	}
	return name, nil
}
