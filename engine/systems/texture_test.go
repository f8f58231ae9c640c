package systems

import (
	"image"
	"image/color"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lizual/lizual/engine/core"
	"github.com/lizual/lizual/engine/renderer/opengl/opengltest"
)

func newTextureSystem(t *testing.T) (*TextureSystem, *JobSystem, *memAssets, *opengltest.API) {
	t.Helper()
	api := opengltest.New()
	am := newMemAssets()
	js, err := NewJobSystem(1, 8)
	require.NoError(t, err)
	t.Cleanup(func() { js.Shutdown() })

	ts, err := NewTextureSystem(&TextureSystemConfig{MaxTextureCount: 4}, js, am, api)
	require.NoError(t, err)
	require.NoError(t, ts.Initialize())
	return ts, js, am, api
}

// redOverGreen is one pixel wide, red on the top row and green below.
func redOverGreen() image.Image {
	img := image.NewRGBA(image.Rect(0, 0, 1, 2))
	img.SetRGBA(0, 0, color.RGBA{R: 255, A: 255})
	img.SetRGBA(0, 1, color.RGBA{G: 255, A: 255})
	return img
}

func waitForJobs(t *testing.T, js *JobSystem, want int) {
	t.Helper()
	got := 0
	require.Eventually(t, func() bool {
		got += js.Update()
		return got >= want
	}, 2*time.Second, time.Millisecond)
}

func TestDefaultTexture(t *testing.T) {
	ts, _, _, api := newTextureSystem(t)
	def := ts.GetDefaultTexture()
	require.NotNil(t, def)
	assert.Equal(t, int32(256), def.Width())
	assert.Len(t, api.Textures[def.ID()], 256*256*4)

	ref, err := ts.Acquire(DEFAULT_TEXTURE_NAME, false)
	require.NoError(t, err)
	assert.Same(t, def, ref.Texture())
}

func TestAcquireLoadsInBackground(t *testing.T) {
	ts, js, am, api := newTextureSystem(t)
	am.setImage("textures/wall.png", redOverGreen())

	ref, err := ts.Acquire("textures/wall.png", true)
	require.NoError(t, err)
	assert.False(t, ref.Loaded())
	assert.Same(t, ts.GetDefaultTexture(), ref.Texture(), "default until the upload")

	waitForJobs(t, js, 1)
	require.True(t, ref.Loaded())
	assert.Equal(t, uint32(1), ref.Generation)
	assert.Equal(t, int32(1), ref.Texture().Width())
	assert.Equal(t, int32(2), ref.Texture().Height())

	// Flipped for GL: bottom row first.
	pixels := api.Textures[ref.Texture().ID()]
	require.Len(t, pixels, 8)
	assert.Equal(t, []byte{0, 255, 0, 255}, pixels[:4])

	again, err := ts.Acquire("textures/wall.png", true)
	require.NoError(t, err)
	assert.Same(t, ref, again)
	assert.Equal(t, uint32(2), ref.ReferenceCount)

	id := ref.Texture().ID()
	ts.Release("textures/wall.png")
	assert.False(t, api.Deleted(id))
	ts.Release("textures/wall.png")
	assert.True(t, api.Deleted(id))
	assert.NotContains(t, ts.RegisteredTextureTable, "textures/wall.png")
}

func TestAcquireMissingImageKeepsDefault(t *testing.T) {
	ts, js, _, _ := newTextureSystem(t)

	ref, err := ts.Acquire("textures/missing.png", false)
	require.NoError(t, err)
	waitForJobs(t, js, 1)

	assert.False(t, ref.Loaded())
	assert.Same(t, ts.GetDefaultTexture(), ref.Texture())
}

func TestTextureReloadOnAssetChange(t *testing.T) {
	ts, js, am, api := newTextureSystem(t)
	am.setImage("textures/wall.png", redOverGreen())

	ref, err := ts.Acquire("textures/wall.png", false)
	require.NoError(t, err)
	waitForJobs(t, js, 1)
	first := ref.Texture().ID()

	am.setImage("textures/wall.png", image.NewRGBA(image.Rect(0, 0, 4, 4)))
	ts.OnAssetChanged(core.EventContext{Data: &core.AssetEvent{Path: "/assets/textures/wall.png"}})
	waitForJobs(t, js, 1)

	assert.Equal(t, uint32(2), ref.Generation)
	assert.Equal(t, int32(4), ref.Texture().Width())
	assert.True(t, api.Deleted(first))
}

func TestTextureCapacity(t *testing.T) {
	ts, _, am, _ := newTextureSystem(t)
	for i, name := range []string{"a.png", "b.png", "c.png", "d.png"} {
		am.setImage(name, redOverGreen())
		_, err := ts.Acquire(name, false)
		require.NoError(t, err, "texture %d", i)
	}
	_, err := ts.Acquire("e.png", false)
	assert.Error(t, err)
}

func TestAcquireFailureFreesSlot(t *testing.T) {
	ts, js, am, _ := newTextureSystem(t)
	am.setImage("textures/a.png", redOverGreen())
	require.NoError(t, js.Shutdown())

	_, err := ts.Acquire("textures/a.png", true)
	assert.ErrorIs(t, err, ErrJobSystemClosed)
	assert.NotContains(t, ts.RegisteredTextureTable, "textures/a.png")

	// Every slot is still available.
	for _, name := range []string{"a.png", "b.png", "c.png", "d.png"} {
		_, err := ts.Acquire(name, false)
		assert.ErrorIs(t, err, ErrJobSystemClosed)
	}
	assert.Empty(t, ts.RegisteredTextureTable)
}
