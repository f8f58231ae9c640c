package text

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testFont has a 64x64 atlas with A, B and a blank space.
func testFont() *Font {
	f := &Font{
		Face:       "Test",
		Size:       16,
		LineHeight: 18,
		Baseline:   14,
		AtlasSizeX: 64,
		AtlasSizeY: 64,
		Glyphs: map[rune]*FontGlyph{
			'A': {Codepoint: 'A', X: 0, Y: 0, Width: 8, Height: 10, XOffset: 1, YOffset: 4, XAdvance: 9},
			'B': {Codepoint: 'B', X: 8, Y: 0, Width: 8, Height: 10, XOffset: 0, YOffset: 4, XAdvance: 9},
			' ': {Codepoint: ' ', XAdvance: 5},
		},
		Kernings: map[KerningPair]int16{
			{First: 'A', Second: 'B'}: -2,
		},
	}
	f.setTabAdvance()
	return f
}

func TestBuildMeshSingleGlyph(t *testing.T) {
	m := BuildMesh(testFont(), "A", mgl32.Vec2{10, 20})

	require.Equal(t, 1, m.GlyphCount())
	assert.Equal(t, []float32{
		11, 24, 0, 0,
		19, 24, 0.125, 0,
		19, 34, 0.125, 0.15625,
		11, 34, 0, 0.15625,
	}, m.Vertices)
	assert.Equal(t, []uint32{0, 1, 2, 2, 3, 0}, m.Indices)
	assert.Equal(t, float32(9), m.Width)
	assert.Equal(t, float32(18), m.Height)
}

func TestBuildMeshKerningAndSpaces(t *testing.T) {
	m := BuildMesh(testFont(), "AB A", mgl32.Vec2{})

	// the space has no quad
	require.Equal(t, 3, m.GlyphCount())
	// B starts after A's advance minus the kerning
	assert.Equal(t, float32(9-2), m.Vertices[4*FloatsPerVertex])
	// second A after B (9) and the space (5)
	assert.Equal(t, float32(7+9+5+1), m.Vertices[8*FloatsPerVertex])
	assert.Equal(t, []uint32{8, 9, 10, 10, 11, 8}, m.Indices[12:])
}

func TestBuildMeshNewlines(t *testing.T) {
	m := BuildMesh(testFont(), "A\nB", mgl32.Vec2{})

	require.Equal(t, 2, m.GlyphCount())
	// B is at the start of the second line
	assert.Equal(t, float32(0), m.Vertices[4*FloatsPerVertex])
	assert.Equal(t, float32(18+4), m.Vertices[4*FloatsPerVertex+1])
	assert.Equal(t, float32(36), m.Height)
}

func TestBuildMeshUnknownRunes(t *testing.T) {
	m := BuildMesh(testFont(), "A?A", mgl32.Vec2{})

	require.Equal(t, 2, m.GlyphCount())
	// the unknown rune advances like a space
	assert.Equal(t, float32(9+5+1), m.Vertices[4*FloatsPerVertex])

	f := testFont()
	delete(f.Glyphs, ' ')
	m = BuildMesh(f, "A?A", mgl32.Vec2{})
	assert.Equal(t, float32(9+1), m.Vertices[4*FloatsPerVertex])
}

func TestBuildMeshTabs(t *testing.T) {
	m := BuildMesh(testFont(), "\tA", mgl32.Vec2{})
	require.Equal(t, 1, m.GlyphCount())
	assert.Equal(t, float32(20+1), m.Vertices[0])
}

func TestBuildMeshEmpty(t *testing.T) {
	m := BuildMesh(testFont(), "", mgl32.Vec2{})
	assert.Zero(t, m.GlyphCount())
	assert.Empty(t, m.Vertices)

	m = BuildMesh(nil, "A", mgl32.Vec2{})
	assert.Zero(t, m.GlyphCount())
}
