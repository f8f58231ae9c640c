package text

import (
	"image"
	"io"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lizual/lizual/engine/core"
	"github.com/lizual/lizual/engine/renderer"
	"github.com/lizual/lizual/engine/renderer/opengl"
	"github.com/lizual/lizual/engine/renderer/opengl/opengltest"
)

func TestLabelRebuildsOnTextChange(t *testing.T) {
	core.SetLogOutput(io.Discard)
	api := opengltest.New()

	shader, err := NewTextShader(api)
	require.NoError(t, err)
	atlas, err := opengl.NewTextureFromImage(api, image.NewRGBA(image.Rect(0, 0, 64, 64)), AtlasTextureOptions())
	require.NoError(t, err)

	label, err := NewLabel(api, testFont(), atlas, shader, "AB")
	require.NoError(t, err)
	assert.Equal(t, 2, label.Mesh().GlyphCount())

	r := renderer.New(api)
	require.NoError(t, label.Draw(r, 640, 480, mgl32.Vec2{10, 10}))
	draws := api.CallsNamed("DrawElements")
	require.Len(t, draws, 1)
	assert.Equal(t, int32(12), draws[0].Args[1])

	// same text keeps the buffers
	buffers := len(api.CallsNamed("GenBuffer"))
	require.NoError(t, label.SetText("AB"))
	assert.Len(t, api.CallsNamed("GenBuffer"), buffers)

	require.NoError(t, label.SetText("A"))
	assert.Len(t, api.CallsNamed("GenBuffer"), buffers+2)
	assert.Len(t, api.CallsNamed("DeleteVertexArray"), 1)

	// whitespace only text has nothing to draw
	require.NoError(t, label.SetText("  "))
	require.NoError(t, label.Draw(r, 640, 480, mgl32.Vec2{}))
	assert.Len(t, api.CallsNamed("DrawElements"), 1)

	label.Delete()
}
