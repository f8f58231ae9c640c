package text

import (
	"image"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bakeDefault(t *testing.T, charset string) (*Font, *image.RGBA) {
	t.Helper()
	f, err := DefaultFont()
	require.NoError(t, err)
	font, atlas, err := BakeFont(f, "Go Regular", 24, charset)
	require.NoError(t, err)
	return font, atlas
}

func TestBakeFontASCII(t *testing.T) {
	font, atlas := bakeDefault(t, ASCII)

	assert.Equal(t, "Go Regular", font.Face)
	assert.Len(t, font.Glyphs, len(ASCII))
	assert.Greater(t, font.LineHeight, int32(0))
	assert.Equal(t, int32(atlas.Bounds().Dx()), font.AtlasSizeX)
	assert.Equal(t, int32(atlas.Bounds().Dy()), font.AtlasSizeY)

	space := font.Glyphs[' ']
	require.NotNil(t, space)
	assert.Greater(t, space.XAdvance, int16(0))
	assert.Equal(t, float32(space.XAdvance)*4, font.TabXAdvance)

	// Every visible glyph fits the atlas and left ink behind.
	for r, g := range font.Glyphs {
		assert.LessOrEqual(t, int32(g.X)+int32(g.Width), font.AtlasSizeX, "glyph %q", r)
		assert.LessOrEqual(t, int32(g.Y)+int32(g.Height), font.AtlasSizeY, "glyph %q", r)
	}
	a := font.Glyphs['A']
	require.NotNil(t, a)
	var ink bool
	for y := int(a.Y); y < int(a.Y+a.Height) && !ink; y++ {
		for x := int(a.X); x < int(a.X+a.Width); x++ {
			if atlas.RGBAAt(x, y).A > 0 {
				ink = true
				break
			}
		}
	}
	assert.True(t, ink)
}

func TestBakeFontSkipsDuplicates(t *testing.T) {
	font, _ := bakeDefault(t, "aab")
	assert.Len(t, font.Glyphs, 2)
}

func TestBakeFontLaysOutLikeBitmapFonts(t *testing.T) {
	font, _ := bakeDefault(t, ASCII)

	mesh := BuildMesh(font, "Hi\nthere", mgl32.Vec2{})
	assert.Equal(t, 7, mesh.GlyphCount())
	assert.Equal(t, float32(2*font.LineHeight), mesh.Height)
	assert.Greater(t, mesh.Width, float32(0))
}

func TestBakeFontRejectsBadSize(t *testing.T) {
	f, err := DefaultFont()
	require.NoError(t, err)
	_, _, err = BakeFont(f, "x", 0, ASCII)
	assert.Error(t, err)
}

func TestNextPowerOfTwo(t *testing.T) {
	assert.Equal(t, 1, nextPowerOfTwo(0))
	assert.Equal(t, 64, nextPowerOfTwo(33))
	assert.Equal(t, 64, nextPowerOfTwo(64))
}
