package loaders

import (
	"image"
	"image/color"
	"image/jpeg"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/lizual/lizual/engine/config"
	"github.com/lizual/lizual/engine/resources"
)

func TestShaderStageFromPath(t *testing.T) {
	assert.Equal(t, resources.ShaderStageVertex, ShaderStageFromPath("basic.vert"))
	assert.Equal(t, resources.ShaderStageFragment, ShaderStageFromPath("dir/basic.frag"))
	assert.Equal(t, resources.ShaderStageVertex, ShaderStageFromPath("basic.vert.glsl"))
	assert.Equal(t, resources.ShaderStageFragment, ShaderStageFromPath("basic.fs"))
	assert.Equal(t, resources.ShaderStageUnknown, ShaderStageFromPath("common.glsl"))
}

func TestShaderLoaderMissingFile(t *testing.T) {
	_, err := (&ShaderLoader{}).Load(filepath.Join(t.TempDir(), "nope.vert"), nil)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestImageLoaderDecodesJPEG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wall.jpg")
	img := image.NewRGBA(image.Rect(0, 0, 8, 4))
	for i := range img.Pix {
		img.Pix[i] = 200
	}
	img.Set(0, 0, color.Black)
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, jpeg.Encode(f, img, nil))
	require.NoError(t, f.Close())

	res, err := (&ImageLoader{}).Load(path, nil)
	require.NoError(t, err)
	data := res.Data.(*ImageResourceData)
	assert.Equal(t, "jpeg", data.Format)
	assert.True(t, data.FlipY, "images flip by default")
	assert.Equal(t, image.Pt(8, 4), data.Image.Bounds().Size())
	assert.Equal(t, "wall.jpg", res.Name)
}

func TestImageLoaderRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.png")
	require.NoError(t, os.WriteFile(path, []byte("not an image"), 0o644))
	_, err := (&ImageLoader{}).Load(path, nil)
	assert.ErrorIs(t, err, image.ErrFormat)
}

func TestSystemFontLoader(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "goregular.ttf"), goregular.TTF, 0o644))

	res, err := (&SystemFontLoader{}).Load(filepath.Join(dir, "goregular.ttf"), nil)
	require.NoError(t, err)
	data := res.Data.(*SystemFontResourceData)
	assert.Equal(t, []string{"goregular"}, data.Faces)
	assert.Len(t, data.Fonts, 1)

	cfg := "# system fonts\nfile=goregular.ttf\nface=Go Regular\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "go.fontcfg"), []byte(cfg), 0o644))
	res, err = (&SystemFontLoader{}).Load(filepath.Join(dir, "go.fontcfg"), nil)
	require.NoError(t, err)
	assert.Equal(t, "Go Regular", res.Name)
	assert.Equal(t, resources.ResourceTypeSystemFont, res.Type)

	_, err = (&SystemFontLoader{}).Load(filepath.Join(dir, "go.woff2"), nil)
	assert.ErrorIs(t, err, resources.ErrUnknownResourceType)
}

func TestSystemFontLoaderEmptyConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.fontcfg")
	require.NoError(t, os.WriteFile(path, []byte("face=Nothing\n"), 0o644))
	_, err := (&SystemFontLoader{}).Load(path, nil)
	assert.Error(t, err)
}

func TestBitmapFontLoaderRejectsOtherExtensions(t *testing.T) {
	_, err := (&BitmapFontLoader{}).Load("font.kbf", nil)
	assert.ErrorIs(t, err, resources.ErrUnknownResourceType)
}

func TestConfigLoader(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/old.cfg", []byte("update_rate = 30\n"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/lizual.toml", []byte("[render]\nupdate_rate = 120\n"), 0o644))

	loader := &ConfigLoader{Fs: fs}

	res, err := loader.Load("/old.cfg", nil)
	require.NoError(t, err)
	cfg := res.Data.(*config.Config)
	assert.Equal(t, uint32(30), cfg.Render.UpdateRate)
	assert.Equal(t, config.Default().Window, cfg.Window)

	res, err = loader.Load("/lizual.toml", nil)
	require.NoError(t, err)
	assert.Equal(t, uint32(120), res.Data.(*config.Config).Render.UpdateRate)

	require.NoError(t, loader.Unload(res))
	assert.Nil(t, res.Data)
}
