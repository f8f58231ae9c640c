package opengl

import (
	"image"
	"image/color"
	"testing"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lizual/lizual/engine/renderer/opengl/opengltest"
)

func twoRowImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.NRGBA{R: 255, A: 255})
	img.Set(1, 0, color.NRGBA{R: 255, A: 255})
	img.Set(0, 1, color.NRGBA{B: 255, A: 255})
	img.Set(1, 1, color.NRGBA{B: 255, A: 255})
	return img
}

func TestToRGBAFlipsRows(t *testing.T) {
	rgba := ToRGBA(twoRowImage(), true)
	// bottom (blue) row first
	assert.Equal(t, []byte{0, 0, 255, 255}, rgba.Pix[0:4])
	assert.Equal(t, []byte{255, 0, 0, 255}, rgba.Pix[8:12])

	rgba = ToRGBA(twoRowImage(), false)
	assert.Equal(t, []byte{255, 0, 0, 255}, rgba.Pix[0:4])
}

func TestToRGBADoesNotMutateInput(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 1, 2))
	src.Set(0, 0, color.RGBA{R: 255, A: 255})
	ToRGBA(src, true)
	assert.Equal(t, uint8(255), src.Pix[0])
}

func TestToRGBAOffsetBounds(t *testing.T) {
	src := image.NewRGBA(image.Rect(5, 5, 7, 6))
	src.Set(5, 5, color.RGBA{G: 255, A: 255})
	rgba := ToRGBA(src, false)
	assert.Equal(t, image.Rect(0, 0, 2, 1), rgba.Rect)
	assert.Equal(t, []byte{0, 255, 0, 255}, rgba.Pix[0:4])
}

func TestNewTextureFromImage(t *testing.T) {
	api := opengltest.New()
	tex, err := NewTextureFromImage(api, twoRowImage(), DefaultTextureOptions())
	require.NoError(t, err)

	assert.Equal(t, int32(2), tex.Width())
	assert.Equal(t, int32(2), tex.Height())
	assert.Len(t, api.Textures[tex.ID()], 16)
	assert.Len(t, api.CallsNamed("GenerateMipmap"), 1)

	api.Reset()
	tex.Bind(1)
	assert.Equal(t, []any{uint32(gl.TEXTURE1)}, api.CallsNamed("ActiveTexture")[0].Args)

	tex.Delete()
	assert.True(t, api.Deleted(tex.ID()))
}

func TestNewTextureWithoutMipmaps(t *testing.T) {
	api := opengltest.New()
	_, err := NewTextureFromImage(api, twoRowImage(), TextureOptions{NoMipmaps: true})
	require.NoError(t, err)
	assert.Empty(t, api.CallsNamed("GenerateMipmap"))

	var minFilter int32
	for _, c := range api.CallsNamed("TexParameteri") {
		if c.Args[1] == uint32(gl.TEXTURE_MIN_FILTER) {
			minFilter = c.Args[2].(int32)
		}
	}
	assert.Equal(t, int32(gl.LINEAR), minFilter)
}
