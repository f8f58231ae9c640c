package text

import (
	"fmt"
	"image"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// ASCII is the printable ASCII range.
const ASCII = " !\"#$%&'()*+,-./0123456789:;<=>?@ABCDEFGHIJKLMNOPQRSTUVWXYZ[\\]^_`abcdefghijklmnopqrstuvwxyz{|}~"

const (
	bakeAtlasWidth = 512
	bakePadding    = 1
)

// DefaultFont is Go Regular, bundled with x/image.
func DefaultFont() (*opentype.Font, error) {
	return opentype.Parse(goregular.TTF)
}

// BakeFont rasterizes charset from a TrueType/OpenType font into a single
// page atlas. The result lays out exactly like a BMFont loaded from disk,
// with the atlas stored top row first.
func BakeFont(f *opentype.Font, name string, size float64, charset string) (*Font, *image.RGBA, error) {
	if size <= 0 {
		return nil, nil, fmt.Errorf("invalid font size %v", size)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, nil, err
	}
	defer face.Close()

	metrics := face.Metrics()
	ascent := metrics.Ascent.Ceil()

	out := &Font{
		Face:       name,
		Size:       uint32(size),
		LineHeight: int32(metrics.Height.Ceil()),
		Baseline:   int32(ascent),
		Glyphs:     make(map[rune]*FontGlyph),
		Kernings:   make(map[KerningPair]int16),
		Pages:      []FontPage{{ID: 0}},
	}

	type placement struct {
		glyph *FontGlyph
		mask  image.Image
	}
	var placed []placement

	x, y, rowHeight := bakePadding, bakePadding, 0
	dot := fixed.P(0, ascent)
	for _, r := range charset {
		if _, seen := out.Glyphs[r]; seen {
			continue
		}
		dr, mask, maskp, advance, ok := face.Glyph(dot, r)
		if !ok {
			// Blank glyphs such as space may have no outline at all.
			adv, hasAdvance := face.GlyphAdvance(r)
			if !hasAdvance {
				continue
			}
			dr, mask, maskp, advance = image.Rectangle{}, nil, image.Point{}, adv
		}
		w, h := dr.Dx(), dr.Dy()
		if w > bakeAtlasWidth-2*bakePadding {
			return nil, nil, fmt.Errorf("glyph %q is wider than the atlas", r)
		}
		if x+w+bakePadding > bakeAtlasWidth {
			x = bakePadding
			y += rowHeight + bakePadding
			rowHeight = 0
		}

		g := &FontGlyph{
			Codepoint: r,
			X:         uint16(x),
			Y:         uint16(y),
			Width:     uint16(w),
			Height:    uint16(h),
			XOffset:   int16(dr.Min.X),
			YOffset:   int16(dr.Min.Y),
			XAdvance:  int16(advance.Round()),
		}
		out.Glyphs[r] = g
		// The face reuses its mask buffer between calls.
		var owned image.Image
		if mask != nil && w > 0 && h > 0 {
			alpha := image.NewAlpha(image.Rect(0, 0, w, h))
			draw.Draw(alpha, alpha.Bounds(), mask, maskp, draw.Src)
			owned = alpha
		}
		placed = append(placed, placement{glyph: g, mask: owned})

		x += w + bakePadding
		rowHeight = max(rowHeight, h)
	}

	atlasHeight := nextPowerOfTwo(y + rowHeight + bakePadding)
	out.AtlasSizeX = bakeAtlasWidth
	out.AtlasSizeY = int32(atlasHeight)

	atlas := image.NewRGBA(image.Rect(0, 0, bakeAtlasWidth, atlasHeight))
	for _, p := range placed {
		g := p.glyph
		if g.Width == 0 || g.Height == 0 || p.mask == nil {
			continue
		}
		dst := image.Rect(int(g.X), int(g.Y), int(g.X)+int(g.Width), int(g.Y)+int(g.Height))
		draw.DrawMask(atlas, dst, image.White, image.Point{}, p.mask, image.Point{}, draw.Over)
	}

	for a := range out.Glyphs {
		for b := range out.Glyphs {
			if k := face.Kern(a, b).Round(); k != 0 {
				out.Kernings[KerningPair{First: a, Second: b}] = int16(k)
			}
		}
	}

	out.setTabAdvance()
	return out, atlas, nil
}

func nextPowerOfTwo(v int) int {
	n := 1
	for n < v {
		n <<= 1
	}
	return n
}
