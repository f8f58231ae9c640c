package text

import (
	"fmt"
	"path/filepath"

	"github.com/fzipp/bmfont"
)

type FontGlyph struct {
	Codepoint rune
	X         uint16
	Y         uint16
	Width     uint16
	Height    uint16
	XOffset   int16
	YOffset   int16
	XAdvance  int16
	PageID    uint8
}

type KerningPair struct {
	First  rune
	Second rune
}

type FontPage struct {
	ID int
	// File is resolved relative to the directory of the .fnt file.
	File string
}

// Font is a bitmap font atlas description.
type Font struct {
	Face        string
	Size        uint32
	LineHeight  int32
	Baseline    int32
	AtlasSizeX  int32
	AtlasSizeY  int32
	Glyphs      map[rune]*FontGlyph
	Kernings    map[KerningPair]int16
	Pages       []FontPage
	TabXAdvance float32
}

// LoadFont reads an AngelCode BMFont descriptor.
func LoadFont(path string) (*Font, error) {
	f, err := bmfont.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load bitmap font %s: %w", path, err)
	}
	d := f.Descriptor

	font := &Font{
		Face:       d.Info.Face,
		Size:       uint32(d.Info.Size),
		LineHeight: int32(d.Common.LineHeight),
		Baseline:   int32(d.Common.Base),
		AtlasSizeX: int32(d.Common.ScaleW),
		AtlasSizeY: int32(d.Common.ScaleH),
		Glyphs:     make(map[rune]*FontGlyph, len(d.Chars)),
		Kernings:   make(map[KerningPair]int16, len(d.Kerning)),
	}

	dir := filepath.Dir(path)
	for _, p := range d.Pages {
		font.Pages = append(font.Pages, FontPage{
			ID:   int(p.ID),
			File: filepath.Join(dir, p.File),
		})
	}

	for _, g := range d.Chars {
		font.Glyphs[rune(g.ID)] = &FontGlyph{
			Codepoint: rune(g.ID),
			X:         uint16(g.X),
			Y:         uint16(g.Y),
			Width:     uint16(g.Width),
			Height:    uint16(g.Height),
			XOffset:   int16(g.XOffset),
			YOffset:   int16(g.YOffset),
			XAdvance:  int16(g.XAdvance),
			PageID:    uint8(g.Page),
		}
	}

	for p, k := range d.Kerning {
		font.Kernings[KerningPair{First: rune(p.First), Second: rune(p.Second)}] = int16(k.Amount)
	}

	font.setTabAdvance()
	return font, nil
}

// setTabAdvance uses four spaces, or the font size when there is no space glyph.
func (f *Font) setTabAdvance() {
	if space, ok := f.Glyphs[' ']; ok {
		f.TabXAdvance = float32(space.XAdvance) * 4
		return
	}
	f.TabXAdvance = float32(f.Size) * 4
}

func (f *Font) Kerning(first, second rune) int16 {
	return f.Kernings[KerningPair{First: first, Second: second}]
}
