package text

import "github.com/go-gl/mathgl/mgl32"

// FloatsPerVertex is x, y, u, v.
const FloatsPerVertex = 4

type Mesh struct {
	Vertices []float32
	Indices  []uint32
	// Width and Height of the laid out text in pixels.
	Width  float32
	Height float32
}

// GlyphCount is the number of quads in the mesh.
func (m *Mesh) GlyphCount() int {
	return len(m.Indices) / 6
}

// BuildMesh lays text out in screen space, y growing downwards, starting at
// origin. Runes missing from the font advance by the space glyph when there
// is one.
func BuildMesh(font *Font, text string, origin mgl32.Vec2) *Mesh {
	mesh := &Mesh{}
	if font == nil || len(text) == 0 {
		return mesh
	}

	atlasW := float32(font.AtlasSizeX)
	atlasH := float32(font.AtlasSizeY)
	lineHeight := float32(font.LineHeight)

	x, y := origin.X(), origin.Y()
	maxX := x
	lines := 1

	runes := []rune(text)
	for i, r := range runes {
		switch r {
		case '\n':
			x = origin.X()
			y += lineHeight
			lines++
			continue
		case '\t':
			x += font.TabXAdvance
			maxX = max(maxX, x)
			continue
		}

		g, ok := font.Glyphs[r]
		if !ok {
			if space, hasSpace := font.Glyphs[' ']; hasSpace {
				x += float32(space.XAdvance)
				maxX = max(maxX, x)
			}
			continue
		}

		if g.Width > 0 && g.Height > 0 {
			x0 := x + float32(g.XOffset)
			y0 := y + float32(g.YOffset)
			x1 := x0 + float32(g.Width)
			y1 := y0 + float32(g.Height)

			u0 := float32(g.X) / atlasW
			v0 := float32(g.Y) / atlasH
			u1 := float32(g.X+g.Width) / atlasW
			v1 := float32(g.Y+g.Height) / atlasH

			base := uint32(len(mesh.Vertices) / FloatsPerVertex)
			mesh.Vertices = append(mesh.Vertices,
				x0, y0, u0, v0,
				x1, y0, u1, v0,
				x1, y1, u1, v1,
				x0, y1, u0, v1,
			)
			mesh.Indices = append(mesh.Indices,
				base+0, base+1, base+2,
				base+2, base+3, base+0,
			)
			maxX = max(maxX, x1)
		}

		x += float32(g.XAdvance)
		if i+1 < len(runes) {
			x += float32(font.Kerning(r, runes[i+1]))
		}
		maxX = max(maxX, x)
	}

	mesh.Width = maxX - origin.X()
	mesh.Height = float32(lines) * lineHeight
	return mesh
}
