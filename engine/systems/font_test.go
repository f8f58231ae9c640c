package systems

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/opentype"

	"github.com/lizual/lizual/engine/assets/loaders"
	"github.com/lizual/lizual/engine/renderer/text"
	"github.com/lizual/lizual/engine/resources"
)

func newFontSystem(t *testing.T) (*FontSystem, *TextureSystem, *JobSystem, *memAssets) {
	t.Helper()
	ts, js, am, api := newTextureSystem(t)
	fs, err := NewFontSystem(&FontSystemConfig{
		MaxBitmapFontCount: 2,
		MaxSystemFontCount: 2,
		Charset:            "abcABC ",
	}, ts, am, api)
	require.NoError(t, err)
	require.NoError(t, fs.Initialize())
	return fs, ts, js, am
}

func TestDefaultFontVariants(t *testing.T) {
	fs, _, _, _ := newFontSystem(t)

	def, err := fs.Acquire(DEFAULT_FONT_NAME, 0)
	require.NoError(t, err)
	assert.Equal(t, uint32(18), def.Font.Size)
	assert.Len(t, def.Font.Glyphs, 7)
	require.NotNil(t, def.Texture())
	assert.Equal(t, def.Font.AtlasSizeY, def.Texture().Height())

	big, err := fs.Acquire(DEFAULT_FONT_NAME, 32)
	require.NoError(t, err)
	assert.NotSame(t, def, big)
	assert.Greater(t, big.Font.LineHeight, def.Font.LineHeight)

	same, err := fs.Acquire(DEFAULT_FONT_NAME, 18)
	require.NoError(t, err)
	assert.Same(t, def, same)
	assert.Equal(t, uint16(3), fs.SystemFontLookup[DEFAULT_FONT_NAME].ReferenceCount)

	_, err = fs.Acquire("comic", 12)
	assert.ErrorIs(t, err, ErrFontNotFound)
}

func TestLoadSystemFont(t *testing.T) {
	fs, _, _, am := newFontSystem(t)

	mono, err := opentype.Parse(gomono.TTF)
	require.NoError(t, err)
	am.other["fonts/gomono.ttf"] = &resources.Resource{
		Type: resources.ResourceTypeSystemFont,
		Data: &loaders.SystemFontResourceData{Faces: []string{"gomono"}, Fonts: []*opentype.Font{mono}},
	}

	require.NoError(t, fs.LoadSystemFont(SystemFontConfig{Name: "mono", ResourceName: "fonts/gomono.ttf", DefaultSize: 14}))
	data, err := fs.Acquire("mono", 14)
	require.NoError(t, err)
	// Monospace: every glyph advances the same.
	assert.Equal(t, data.Font.Glyphs['a'].XAdvance, data.Font.Glyphs['B'].XAdvance)

	// Loading again is not an error.
	require.NoError(t, fs.LoadSystemFont(SystemFontConfig{Name: "mono", ResourceName: "fonts/gomono.ttf"}))

	// Capacity is two, the default font already holds one slot.
	am.other["fonts/second.ttf"] = &resources.Resource{
		Type: resources.ResourceTypeSystemFont,
		Data: &loaders.SystemFontResourceData{Faces: []string{"second"}, Fonts: []*opentype.Font{mono}},
	}
	assert.Error(t, fs.LoadSystemFont(SystemFontConfig{ResourceName: "fonts/second.ttf"}))
}

func TestLoadBitmapFontUsesTextureSystem(t *testing.T) {
	fs, ts, js, am := newFontSystem(t)

	am.setImage("/assets/fonts/tiny_0.png", redOverGreen())
	am.other["fonts/tiny.fnt"] = &resources.Resource{
		Type: resources.ResourceTypeBitmapFont,
		Data: &text.Font{
			Face:       "tiny",
			LineHeight: 2,
			AtlasSizeX: 1,
			AtlasSizeY: 2,
			Glyphs:     map[rune]*text.FontGlyph{'a': {Codepoint: 'a', Width: 1, Height: 1, XAdvance: 1}},
			Pages:      []text.FontPage{{ID: 0, File: "/assets/fonts/tiny_0.png"}},
		},
	}

	require.NoError(t, fs.LoadBitmapFont(BitmapFontConfig{Name: "tiny", ResourceName: "fonts/tiny.fnt"}))
	data, err := fs.Acquire("tiny", 99)
	require.NoError(t, err)
	assert.Same(t, ts.GetDefaultTexture(), data.Texture(), "atlas still loading")

	waitForJobs(t, js, 1)
	atlas := data.Texture()
	require.NotSame(t, ts.GetDefaultTexture(), atlas)
	assert.Equal(t, int32(2), atlas.Height())

	assert.Error(t, fs.LoadBitmapFont(BitmapFontConfig{Name: "other", ResourceName: "fonts/missing.fnt"}))

	fs.Release("tiny")
	require.NoError(t, fs.Shutdown())
	assert.NotContains(t, ts.RegisteredTextureTable, "/assets/fonts/tiny_0.png")
}
