package systems

import (
	"fmt"
	"image"
	"image/color"
	"sync"

	"github.com/lizual/lizual/engine/assets/loaders"
	"github.com/lizual/lizual/engine/core"
	"github.com/lizual/lizual/engine/renderer/opengl"
	"github.com/lizual/lizual/engine/resources"
)

/** @brief The name of the default texture. */
const DEFAULT_TEXTURE_NAME = "default"

type TextureSystemConfig struct {
	/** @brief The maximum number of textures that can be loaded at once. */
	MaxTextureCount uint32
}

type TextureReference struct {
	Name           string
	ReferenceCount uint32
	AutoRelease    bool
	// Generation is zero until the first successful upload and bumps on every reload.
	Generation uint32
	Options    opengl.TextureOptions

	texture  *opengl.Texture
	fallback *opengl.Texture
}

// Texture is the uploaded texture, or the default texture while the image
// is still loading or failed to load.
func (r *TextureReference) Texture() *opengl.Texture {
	if r.texture != nil {
		return r.texture
	}
	return r.fallback
}

func (r *TextureReference) Loaded() bool {
	return r.texture != nil
}

type TextureSystem struct {
	Config         *TextureSystemConfig
	DefaultTexture *opengl.Texture
	// Hashtable for texture lookups.
	RegisteredTextureTable map[string]*TextureReference
	// sub systems
	jobSystem *JobSystem
	assets    AssetLoader
	api       opengl.API

	mu sync.Mutex
}

type textureLoadResult struct {
	ref    *TextureReference
	pixels *image.RGBA
}

func NewTextureSystem(config *TextureSystemConfig, js *JobSystem, am AssetLoader, api opengl.API) (*TextureSystem, error) {
	if config.MaxTextureCount == 0 {
		err := fmt.Errorf("func NewTextureSystem - config.MaxTextureCount must be > 0")
		core.LogError(err.Error())
		return nil, err
	}
	return &TextureSystem{
		Config:                 config,
		RegisteredTextureTable: make(map[string]*TextureReference),
		jobSystem:              js,
		assets:                 am,
		api:                    api,
	}, nil
}

// Initialize uploads the default texture. Must run on the GL thread.
func (ts *TextureSystem) Initialize() error {
	const texDimension = 256
	const tileSize = 16
	// Blue and white checkerboard, easy to spot when something failed to load.
	img := image.NewRGBA(image.Rect(0, 0, texDimension, texDimension))
	for y := 0; y < texDimension; y++ {
		for x := 0; x < texDimension; x++ {
			c := color.RGBA{R: 255, G: 255, B: 255, A: 255}
			if (x/tileSize+y/tileSize)%2 == 0 {
				c = color.RGBA{B: 255, A: 255}
			}
			img.SetRGBA(x, y, c)
		}
	}
	opts := opengl.DefaultTextureOptions()
	opts.NoFlip = true
	t, err := opengl.NewTextureFromRGBA(ts.api, img, opts)
	if err != nil {
		return err
	}
	ts.DefaultTexture = t
	return nil
}

func (ts *TextureSystem) Shutdown() error {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	// Destroy all loaded textures.
	for name, ref := range ts.RegisteredTextureTable {
		if ref.texture != nil {
			ref.texture.Delete()
		}
		delete(ts.RegisteredTextureTable, name)
	}
	if ts.DefaultTexture != nil {
		ts.DefaultTexture.Delete()
		ts.DefaultTexture = nil
	}
	return nil
}

func (ts *TextureSystem) GetDefaultTexture() *opengl.Texture {
	return ts.DefaultTexture
}

// Acquire returns the reference for the image asset name, loading it in the
// background on first use. The reference count is incremented.
func (ts *TextureSystem) Acquire(name string, autoRelease bool) (*TextureReference, error) {
	return ts.AcquireWithOptions(name, autoRelease, opengl.DefaultTextureOptions())
}

// AcquireWithOptions is Acquire with explicit upload options. Options only
// apply when the texture is first loaded.
func (ts *TextureSystem) AcquireWithOptions(name string, autoRelease bool, opts opengl.TextureOptions) (*TextureReference, error) {
	// Return default texture, but warn about it since this should be returned via GetDefaultTexture.
	if name == DEFAULT_TEXTURE_NAME {
		core.LogWarn("texture system Acquire called for default texture. Use GetDefaultTexture for texture 'default'")
		return &TextureReference{Name: name, fallback: ts.DefaultTexture}, nil
	}

	ts.mu.Lock()
	ref, ok := ts.RegisteredTextureTable[name]
	if ok {
		ref.ReferenceCount++
		ts.mu.Unlock()
		return ref, nil
	}
	if uint32(len(ts.RegisteredTextureTable)) >= ts.Config.MaxTextureCount {
		ts.mu.Unlock()
		err := fmt.Errorf("texture system Acquire failed to obtain a new slot for '%s'", name)
		core.LogError(err.Error())
		return nil, err
	}
	ref = &TextureReference{
		Name:           name,
		ReferenceCount: 1,
		AutoRelease:    autoRelease,
		Options:        opts,
		fallback:       ts.DefaultTexture,
	}
	ts.RegisteredTextureTable[name] = ref
	ts.mu.Unlock()

	if err := ts.LoadTexture(ref); err != nil {
		// Nothing will ever fill the slot, so give it back.
		ts.mu.Lock()
		if ts.RegisteredTextureTable[name] == ref {
			delete(ts.RegisteredTextureTable, name)
		}
		ts.mu.Unlock()
		return nil, err
	}
	return ref, nil
}

// Release decrements the reference count. Auto released textures are
// destroyed when it reaches zero. Must run on the GL thread.
func (ts *TextureSystem) Release(name string) {
	// Ignore release requests for the default texture.
	if name == DEFAULT_TEXTURE_NAME {
		return
	}
	ts.mu.Lock()
	defer ts.mu.Unlock()

	ref, ok := ts.RegisteredTextureTable[name]
	if !ok || ref.ReferenceCount == 0 {
		core.LogError("texture system Release failed to release texture '%s' properly.", name)
		return
	}
	ref.ReferenceCount--
	if ref.ReferenceCount == 0 && ref.AutoRelease {
		if ref.texture != nil {
			ref.texture.Delete()
			ref.texture = nil
		}
		delete(ts.RegisteredTextureTable, name)
		core.LogDebug("texture '%s' released and destroyed", name)
	}
}

// LoadTexture kicks off a texture loading job. The job only handles loading
// from disk to CPU; the GPU upload happens when the job system is updated.
func (ts *TextureSystem) LoadTexture(ref *TextureReference) error {
	_, err := ts.jobSystem.Submit(JobTask{
		Name:        "texture load " + ref.Name,
		InputParams: ref,
		OnStart:     ts.textureLoadJobStart,
		OnComplete:  ts.textureLoadJobSuccess,
		OnFailure: func(err error) {
			core.LogWarn("texture '%s' failed to load, using default: %s", ref.Name, err)
		},
	})
	return err
}

func (ts *TextureSystem) textureLoadJobStart(params interface{}) (interface{}, error) {
	ref := params.(*TextureReference)
	flip := !ref.Options.NoFlip

	res, err := ts.assets.LoadAsset(ref.Name, &resources.ImageResourceParams{FlipY: flip})
	if err != nil {
		return nil, err
	}
	data, ok := res.Data.(*loaders.ImageResourceData)
	if !ok {
		return nil, fmt.Errorf("asset '%s' is a %s, not an image", ref.Name, res.Type)
	}
	return &textureLoadResult{ref: ref, pixels: opengl.ToRGBA(data.Image, data.FlipY)}, nil
}

func (ts *TextureSystem) textureLoadJobSuccess(result interface{}) {
	r := result.(*textureLoadResult)

	ts.mu.Lock()
	defer ts.mu.Unlock()
	// Released while loading.
	if current, ok := ts.RegisteredTextureTable[r.ref.Name]; !ok || current != r.ref {
		return
	}

	// Already flipped on the worker.
	opts := r.ref.Options
	opts.NoFlip = true
	t, err := opengl.NewTextureFromRGBA(ts.api, r.pixels, opts)
	if err != nil {
		core.LogError("texture '%s' upload failed: %s", r.ref.Name, err)
		return
	}
	if r.ref.texture != nil {
		r.ref.texture.Delete()
	}
	r.ref.texture = t
	r.ref.Generation++
	core.LogDebug("texture '%s' loaded (%dx%d, generation %d)", r.ref.Name, t.Width(), t.Height(), r.ref.Generation)
}

// OnAssetChanged reloads registered textures whose file changed. It may be
// called from any goroutine.
func (ts *TextureSystem) OnAssetChanged(context core.EventContext) bool {
	ev, ok := context.Data.(*core.AssetEvent)
	if !ok {
		return false
	}
	ts.mu.Lock()
	var changed []*TextureReference
	for name, ref := range ts.RegisteredTextureTable {
		if ts.assets.Path(name) == ev.Path {
			changed = append(changed, ref)
		}
	}
	ts.mu.Unlock()

	for _, ref := range changed {
		if err := ts.LoadTexture(ref); err != nil {
			core.LogWarn("texture '%s' reload not queued: %s", ref.Name, err)
		}
	}
	return false
}
