package systems

import (
	"errors"
	"fmt"
	"sync"

	"golang.org/x/image/font/opentype"

	"github.com/lizual/lizual/engine/assets/loaders"
	"github.com/lizual/lizual/engine/core"
	"github.com/lizual/lizual/engine/renderer/opengl"
	"github.com/lizual/lizual/engine/renderer/text"
)

/** @brief The name of the built-in system font. */
const DEFAULT_FONT_NAME = "default"

var ErrFontNotFound = errors.New("font not found")

// FontData is a laid out font plus the atlas its glyphs live in.
type FontData struct {
	Font *text.Font

	atlas    *opengl.Texture
	atlasRef *TextureReference
}

// Texture is the current atlas. Bitmap font atlases load in the background
// and show the default texture until then.
func (f *FontData) Texture() *opengl.Texture {
	if f.atlasRef != nil {
		return f.atlasRef.Texture()
	}
	return f.atlas
}

func (f *FontData) Bind(slot uint32) {
	if t := f.Texture(); t != nil {
		t.Bind(slot)
	}
}

type BitmapFontLookup struct {
	ID             uint16
	ReferenceCount uint16
	ResourceName   string
	Data           *FontData
}

type SystemFontLookup struct {
	ID             uint16
	ReferenceCount uint16
	Face           string
	Font           *opentype.Font
	SizeVariants   map[uint16]*FontData
}

type BitmapFontConfig struct {
	Name string
	// Asset name of the .fnt descriptor.
	ResourceName string
}

type SystemFontConfig struct {
	Name string
	// Asset name of the .ttf/.otf file or .fontcfg descriptor.
	ResourceName string
	DefaultSize  uint16
}

type FontSystemConfig struct {
	BitmapFontConfigs  []BitmapFontConfig
	SystemFontConfigs  []SystemFontConfig
	MaxSystemFontCount uint8
	MaxBitmapFontCount uint8
	// Size of the built-in default font.
	DefaultFontSize uint16
	// Runes baked into system font atlases. Defaults to printable ASCII.
	Charset string
}

type FontSystem struct {
	Config           *FontSystemConfig
	BitmapFontLookup map[string]*BitmapFontLookup
	SystemFontLookup map[string]*SystemFontLookup
	// subsystems
	textureSystem *TextureSystem
	assets        AssetLoader
	api           opengl.API

	mu     sync.Mutex
	nextID uint16
}

func NewFontSystem(config *FontSystemConfig, ts *TextureSystem, am AssetLoader, api opengl.API) (*FontSystem, error) {
	if config.MaxBitmapFontCount == 0 || config.MaxSystemFontCount == 0 {
		return nil, fmt.Errorf("NewFontSystem - config.MaxBitmapFontCount and config.MaxSystemFontCount must be > 0")
	}
	if config.DefaultFontSize == 0 {
		config.DefaultFontSize = 18
	}
	if config.Charset == "" {
		config.Charset = text.ASCII
	}
	return &FontSystem{
		Config:           config,
		BitmapFontLookup: make(map[string]*BitmapFontLookup),
		SystemFontLookup: make(map[string]*SystemFontLookup),
		textureSystem:    ts,
		assets:           am,
		api:              api,
	}, nil
}

// Initialize registers the built-in default font and loads the configured
// ones. Must run on the GL thread.
func (fs *FontSystem) Initialize() error {
	def, err := text.DefaultFont()
	if err != nil {
		return err
	}
	if err := fs.addSystemFont(DEFAULT_FONT_NAME, def, fs.Config.DefaultFontSize); err != nil {
		return err
	}
	// Load up any default fonts.
	for _, cfg := range fs.Config.BitmapFontConfigs {
		if err := fs.LoadBitmapFont(cfg); err != nil {
			core.LogError("failed to load bitmap font: %s", cfg.Name)
			return err
		}
	}
	for _, cfg := range fs.Config.SystemFontConfigs {
		if err := fs.LoadSystemFont(cfg); err != nil {
			core.LogError("failed to load system font: %s", cfg.Name)
			return err
		}
	}
	return nil
}

func (fs *FontSystem) Shutdown() error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	// Cleanup bitmap fonts.
	for name, lookup := range fs.BitmapFontLookup {
		if lookup.Data.atlasRef != nil {
			fs.textureSystem.Release(lookup.Data.atlasRef.Name)
		}
		delete(fs.BitmapFontLookup, name)
	}
	// Cleanup system fonts.
	for name, lookup := range fs.SystemFontLookup {
		for _, variant := range lookup.SizeVariants {
			variant.atlas.Delete()
		}
		delete(fs.SystemFontLookup, name)
	}
	return nil
}

func (fs *FontSystem) LoadBitmapFont(config BitmapFontConfig) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	if _, ok := fs.BitmapFontLookup[config.Name]; ok {
		core.LogWarn("a font named '%s' already exists and will not be loaded again", config.Name)
		// Not a hard error, return success since it already exists and can be used.
		return nil
	}
	if len(fs.BitmapFontLookup) >= int(fs.Config.MaxBitmapFontCount) {
		return fmt.Errorf("no space left to allocate a new bitmap font. Increase maximum number allowed in font system config")
	}

	res, err := fs.assets.LoadAsset(config.ResourceName, nil)
	if err != nil {
		return err
	}
	font, ok := res.Data.(*text.Font)
	if !ok {
		return fmt.Errorf("asset '%s' is a %s, not a bitmap font", config.ResourceName, res.Type)
	}
	if len(font.Pages) == 0 {
		return fmt.Errorf("bitmap font '%s' has no pages", config.Name)
	}
	if len(font.Pages) > 1 {
		core.LogWarn("bitmap font '%s' has %d pages, only the first is used", config.Name, len(font.Pages))
	}

	// Acquire the texture.
	atlas, err := fs.textureSystem.AcquireWithOptions(font.Pages[0].File, true, text.AtlasTextureOptions())
	if err != nil {
		return err
	}

	fs.BitmapFontLookup[config.Name] = &BitmapFontLookup{
		ID:           fs.newID(),
		ResourceName: config.ResourceName,
		Data:         &FontData{Font: font, atlasRef: atlas},
	}
	return nil
}

// LoadSystemFont registers every face found in the resource, each with a
// variant at the configured default size.
func (fs *FontSystem) LoadSystemFont(config SystemFontConfig) error {
	res, err := fs.assets.LoadAsset(config.ResourceName, nil)
	if err != nil {
		return err
	}
	data, ok := res.Data.(*loaders.SystemFontResourceData)
	if !ok {
		return fmt.Errorf("asset '%s' is a %s, not a system font", config.ResourceName, res.Type)
	}
	size := config.DefaultSize
	if size == 0 {
		size = fs.Config.DefaultFontSize
	}
	for i, f := range data.Fonts {
		name := data.Faces[i]
		// The configured name aliases the first face.
		if i == 0 && config.Name != "" {
			name = config.Name
		}
		if err := fs.addSystemFont(name, f, size); err != nil {
			return err
		}
	}
	return nil
}

func (fs *FontSystem) addSystemFont(name string, f *opentype.Font, size uint16) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	if _, ok := fs.SystemFontLookup[name]; ok {
		core.LogWarn("a font named '%s' already exists and will not be loaded again.", name)
		return nil
	}
	if len(fs.SystemFontLookup) >= int(fs.Config.MaxSystemFontCount) {
		return fmt.Errorf("no space left to allocate a new font. Increase maximum number allowed in font system config")
	}
	lookup := &SystemFontLookup{
		ID:           fs.newID(),
		Face:         name,
		Font:         f,
		SizeVariants: make(map[uint16]*FontData),
	}
	// Create a default size variant.
	if _, err := fs.createSystemFontVariant(lookup, size); err != nil {
		return err
	}
	fs.SystemFontLookup[name] = lookup
	return nil
}

func (fs *FontSystem) createSystemFontVariant(lookup *SystemFontLookup, size uint16) (*FontData, error) {
	font, atlasImage, err := text.BakeFont(lookup.Font, lookup.Face, float64(size), fs.Config.Charset)
	if err != nil {
		return nil, fmt.Errorf("failed to bake %s at size %d: %w", lookup.Face, size, err)
	}
	atlas, err := opengl.NewTextureFromRGBA(fs.api, atlasImage, text.AtlasTextureOptions())
	if err != nil {
		return nil, err
	}
	variant := &FontData{Font: font, atlas: atlas}
	lookup.SizeVariants[size] = variant
	core.LogDebug("baked font '%s' size %d (%dx%d atlas)", lookup.Face, size, font.AtlasSizeX, font.AtlasSizeY)
	return variant, nil
}

// Acquire returns the named font. Bitmap fonts ignore size; system fonts
// bake a new variant the first time a size is requested. Must run on the GL
// thread.
func (fs *FontSystem) Acquire(name string, size uint16) (*FontData, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	if lookup, ok := fs.BitmapFontLookup[name]; ok {
		lookup.ReferenceCount++
		return lookup.Data, nil
	}
	lookup, ok := fs.SystemFontLookup[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrFontNotFound, name)
	}
	if size == 0 {
		size = fs.Config.DefaultFontSize
	}
	variant, ok := lookup.SizeVariants[size]
	if !ok {
		var err error
		if variant, err = fs.createSystemFontVariant(lookup, size); err != nil {
			return nil, err
		}
	}
	lookup.ReferenceCount++
	return variant, nil
}

func (fs *FontSystem) Release(name string) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	if lookup, ok := fs.BitmapFontLookup[name]; ok && lookup.ReferenceCount > 0 {
		lookup.ReferenceCount--
		return
	}
	if lookup, ok := fs.SystemFontLookup[name]; ok && lookup.ReferenceCount > 0 {
		lookup.ReferenceCount--
		return
	}
	core.LogWarn("font system Release: '%s' is not acquired", name)
}

func (fs *FontSystem) newID() uint16 {
	id := fs.nextID
	fs.nextID++
	return id
}
