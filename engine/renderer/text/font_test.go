package text

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDescriptor = `info face="Test" size=16 bold=0 italic=0 charset="" unicode=1 stretchH=100 smooth=1 aa=1 padding=0,0,0,0 spacing=1,1 outline=0
common lineHeight=18 base=14 scaleW=64 scaleH=64 pages=1 packed=0 alphaChnl=0 redChnl=0 greenChnl=0 blueChnl=0
page id=0 file="test_0.png"
chars count=3
char id=32   x=0     y=0     width=0     height=0     xoffset=0     yoffset=0     xadvance=5     page=0  chnl=15
char id=65   x=0     y=0     width=8     height=10    xoffset=1     yoffset=4     xadvance=9     page=0  chnl=15
char id=66   x=8     y=0     width=8     height=10    xoffset=0     yoffset=4     xadvance=9     page=0  chnl=15
kernings count=1
kerning first=65  second=66  amount=-2
`

func writeTestFont(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "test.fnt")
	require.NoError(t, os.WriteFile(path, []byte(testDescriptor), 0o644))

	page, err := os.Create(filepath.Join(dir, "test_0.png"))
	require.NoError(t, err)
	defer page.Close()
	require.NoError(t, png.Encode(page, image.NewNRGBA(image.Rect(0, 0, 64, 64))))
	return path
}

func TestLoadFont(t *testing.T) {
	path := writeTestFont(t)

	f, err := LoadFont(path)
	require.NoError(t, err)

	assert.Equal(t, "Test", f.Face)
	assert.Equal(t, uint32(16), f.Size)
	assert.Equal(t, int32(18), f.LineHeight)
	assert.Equal(t, int32(14), f.Baseline)
	assert.Equal(t, int32(64), f.AtlasSizeX)
	assert.Len(t, f.Glyphs, 3)
	assert.Equal(t, int16(9), f.Glyphs['A'].XAdvance)
	assert.Equal(t, int16(-2), f.Kerning('A', 'B'))
	assert.Equal(t, float32(20), f.TabXAdvance)

	require.Len(t, f.Pages, 1)
	assert.Equal(t, filepath.Join(filepath.Dir(path), "test_0.png"), f.Pages[0].File)
}

func TestLoadFontMissing(t *testing.T) {
	_, err := LoadFont(filepath.Join(t.TempDir(), "nope.fnt"))
	assert.Error(t, err)
}
