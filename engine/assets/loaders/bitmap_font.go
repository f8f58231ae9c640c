package loaders

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/lizual/lizual/engine/renderer/text"
	"github.com/lizual/lizual/engine/resources"
)

type BitmapFontLoader struct{}

type BitmapFontFileType int

const (
	BITMAP_FONT_FILE_TYPE_NOT_FOUND BitmapFontFileType = iota
	BITMAP_FONT_FILE_TYPE_FNT
)

func bitmapFontFileType(path string) BitmapFontFileType {
	if strings.EqualFold(filepath.Ext(path), ".fnt") {
		return BITMAP_FONT_FILE_TYPE_FNT
	}
	return BITMAP_FONT_FILE_TYPE_NOT_FOUND
}

// Load parses an AngelCode .fnt descriptor. The atlas pages are not
// decoded here; they are loaded as images by whoever owns the font.
func (fl *BitmapFontLoader) Load(path string, params interface{}) (*resources.Resource, error) {
	if bitmapFontFileType(path) == BITMAP_FONT_FILE_TYPE_NOT_FOUND {
		return nil, fmt.Errorf("unable to load bitmap font '%s': %w", path, resources.ErrUnknownResourceType)
	}
	font, err := text.LoadFont(path)
	if err != nil {
		return nil, err
	}
	return &resources.Resource{
		Name:     font.Face,
		FullPath: path,
		Type:     resources.ResourceTypeBitmapFont,
		DataSize: uint64(len(font.Glyphs)),
		Data:     font,
	}, nil
}

func (fl *BitmapFontLoader) Unload(resource *resources.Resource) error {
	resource.Data = nil
	resource.DataSize = 0
	return nil
}
