package renderer

import (
	"github.com/go-gl/gl/v3.3-core/gl"

	"github.com/lizual/lizual/engine/core"
	"github.com/lizual/lizual/engine/renderer/opengl"
)

// Info describes the active GL implementation.
type Info struct {
	Vendor   string
	Renderer string
	Version  string
	GLSL     string
}

// FrameStats counts the work submitted since BeginFrame.
type FrameStats struct {
	DrawCalls int
	Vertices  int
	Indices   int
}

type Renderer struct {
	api        opengl.API
	info       Info
	wireframe  bool
	depthTest  bool
	stats      FrameStats
	lastStats  FrameStats
	clearColor [4]float32
}

func New(api opengl.API) *Renderer {
	r := &Renderer{
		api: api,
		info: Info{
			Vendor:   api.GetString(gl.VENDOR),
			Renderer: api.GetString(gl.RENDERER),
			Version:  api.GetString(gl.VERSION),
			GLSL:     api.GetString(gl.SHADING_LANGUAGE_VERSION),
		},
	}
	core.LogInfo("OpenGL %s on %s (%s), GLSL %s", r.info.Version, r.info.Renderer, r.info.Vendor, r.info.GLSL)
	return r
}

func (r *Renderer) API() opengl.API { return r.api }

func (r *Renderer) Info() Info { return r.info }

// OnResized matches the viewport to the new framebuffer size.
func (r *Renderer) OnResized(context core.EventContext) bool {
	if e, ok := context.Data.(*core.SystemEvent); ok {
		r.Viewport(int32(e.WindowWidth), int32(e.WindowHeight))
	}
	return false
}

func (r *Renderer) BeginFrame() {
	r.stats = FrameStats{}
}

func (r *Renderer) EndFrame() {
	r.lastStats = r.stats
}

// Stats returns the counters of the last completed frame.
func (r *Renderer) Stats() FrameStats {
	return r.lastStats
}

func (r *Renderer) Clear(color [4]float32) {
	r.clearColor = color
	mask := uint32(gl.COLOR_BUFFER_BIT)
	if r.depthTest {
		mask |= gl.DEPTH_BUFFER_BIT
	}
	_ = opengl.Call(r.api, "glClear", func() {
		r.api.ClearColor(color[0], color[1], color[2], color[3])
		r.api.Clear(mask)
	})
}

func (r *Renderer) SetWireframe(enabled bool) {
	if r.wireframe == enabled {
		return
	}
	r.wireframe = enabled
	mode := uint32(gl.FILL)
	if enabled {
		mode = gl.LINE
	}
	r.api.PolygonMode(gl.FRONT_AND_BACK, mode)
}

func (r *Renderer) Wireframe() bool { return r.wireframe }

func (r *Renderer) EnableDepthTest(enabled bool) {
	r.depthTest = enabled
	if enabled {
		r.api.Enable(gl.DEPTH_TEST)
		return
	}
	r.api.Disable(gl.DEPTH_TEST)
}

// EnableBlending turns on straight alpha blending, used by text.
func (r *Renderer) EnableBlending(enabled bool) {
	if enabled {
		r.api.Enable(gl.BLEND)
		r.api.BlendEquation(gl.FUNC_ADD)
		r.api.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
		return
	}
	r.api.Disable(gl.BLEND)
}

func (r *Renderer) Viewport(width, height int32) {
	r.api.Viewport(0, 0, width, height)
}

// Draw renders ib.Count() indices as triangles.
func (r *Renderer) Draw(va *opengl.VertexArray, ib *opengl.IndexBuffer, shader *opengl.Shader) error {
	shader.Use()
	va.Bind()
	ib.Bind()
	r.stats.DrawCalls++
	r.stats.Indices += int(ib.Count())
	return opengl.Call(r.api, "glDrawElements", func() {
		r.api.DrawElements(gl.TRIANGLES, ib.Count(), gl.UNSIGNED_INT, 0)
	})
}

func (r *Renderer) DrawArrays(va *opengl.VertexArray, shader *opengl.Shader, first, count int32) error {
	shader.Use()
	va.Bind()
	r.stats.DrawCalls++
	r.stats.Vertices += int(count)
	return opengl.Call(r.api, "glDrawArrays", func() {
		r.api.DrawArrays(gl.TRIANGLES, first, count)
	})
}
