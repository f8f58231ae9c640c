package loaders

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/font/opentype"

	"github.com/lizual/lizual/engine/resources"
)

type SystemFontLoader struct{}

type SystemFontResourceData struct {
	Faces []string
	Fonts []*opentype.Font
}

// Load accepts either a TrueType/OpenType file or a .fontcfg descriptor
// with `file=` and `face=` lines. Files in a descriptor are resolved
// relative to the descriptor itself.
func (fl *SystemFontLoader) Load(path string, params interface{}) (*resources.Resource, error) {
	rd := &SystemFontResourceData{}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".ttf", ".otf", ".ttc":
		if err := rd.addFile(path); err != nil {
			return nil, err
		}
		rd.Faces = append(rd.Faces, strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)))
	case ".fontcfg":
		if err := rd.parseConfig(path); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unable to load system font '%s': %w", path, resources.ErrUnknownResourceType)
	}

	if len(rd.Fonts) == 0 {
		return nil, fmt.Errorf("no font data found in '%s'", path)
	}

	return &resources.Resource{
		Name:     rd.Faces[0],
		FullPath: path,
		Type:     resources.ResourceTypeSystemFont,
		DataSize: uint64(len(rd.Fonts)),
		Data:     rd,
	}, nil
}

func (fl *SystemFontLoader) Unload(resource *resources.Resource) error {
	resource.Data = nil
	resource.DataSize = 0
	return nil
}

func (rd *SystemFontResourceData) parseConfig(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	dir := filepath.Dir(path)
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		// Skip comments and empty lines
		if len(line) == 0 || strings.HasPrefix(line, "#") {
			continue
		}

		if strings.HasPrefix(line, "file=") {
			name := strings.TrimPrefix(line, "file=")
			if err := rd.addFile(filepath.Join(dir, name)); err != nil {
				return err
			}
		} else if strings.HasPrefix(line, "face=") {
			rd.Faces = append(rd.Faces, strings.TrimPrefix(line, "face="))
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	if len(rd.Faces) < len(rd.Fonts) {
		for i := len(rd.Faces); i < len(rd.Fonts); i++ {
			rd.Faces = append(rd.Faces, fmt.Sprintf("face_%d", i))
		}
	}
	return nil
}

func (rd *SystemFontResourceData) addFile(path string) error {
	fontBytes, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	collection, err := opentype.ParseCollection(fontBytes)
	if err != nil {
		return fmt.Errorf("failed to parse font %s: %w", path, err)
	}
	for i := 0; i < collection.NumFonts(); i++ {
		f, err := collection.Font(i)
		if err != nil {
			return err
		}
		rd.Fonts = append(rd.Fonts, f)
	}
	return nil
}
