package systems

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/lizual/lizual/engine/containers"
	"github.com/lizual/lizual/engine/core"
	"github.com/lizual/lizual/engine/renderer/opengl"
	"github.com/lizual/lizual/engine/resources"
)

var ErrShaderNotFound = errors.New("shader not found")

// AssetLoader is the part of the asset manager the systems need.
type AssetLoader interface {
	LoadAsset(name string, params interface{}) (*resources.Resource, error)
	// Path resolves an asset name to the absolute path used in change events.
	Path(name string) string
}

/** @brief Configuration for the shader system. */
type ShaderSystemConfig struct {
	/** @brief The maximum number of shaders held in the system. */
	MaxShaderCount uint16
}

/** @brief Asset names of the stages making up a shader. */
type ShaderConfig struct {
	Name         string
	VertexPath   string
	FragmentPath string
}

type ShaderEntry struct {
	Config ShaderConfig
	Shader *opengl.Shader
	// Generation is bumped every time the program is rebuilt.
	Generation uint32
}

type ShaderSystem struct {
	// This system's configuration.
	Config *ShaderSystemConfig
	// A lookup table for shader name->entry
	Lookup map[string]*ShaderEntry
	// The name of the currently bound shader.
	CurrentShaderName string

	api     opengl.API
	assets  AssetLoader
	pending *containers.RingQueue[string]
	mu      sync.Mutex
}

func NewShaderSystem(config *ShaderSystemConfig, api opengl.API, am AssetLoader) (*ShaderSystem, error) {
	if config.MaxShaderCount == 0 {
		err := fmt.Errorf("NewShaderSystem - config.MaxShaderCount must be greater than 0")
		core.LogError(err.Error())
		return nil, err
	}
	return &ShaderSystem{
		Config:  config,
		Lookup:  make(map[string]*ShaderEntry),
		api:     api,
		assets:  am,
		pending: containers.NewRingQueue[string](int(config.MaxShaderCount)),
	}, nil
}

func (ss *ShaderSystem) Shutdown() error {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	// Destroy any shaders still in existence.
	for name, entry := range ss.Lookup {
		entry.Shader.Delete()
		delete(ss.Lookup, name)
	}
	ss.CurrentShaderName = ""
	return nil
}

// CreateShader compiles and links the stages named in config and registers
// the program under config.Name.
func (ss *ShaderSystem) CreateShader(config ShaderConfig) (*ShaderEntry, error) {
	ss.mu.Lock()
	defer ss.mu.Unlock()

	if _, exists := ss.Lookup[config.Name]; exists {
		return nil, fmt.Errorf("shader '%s' already exists", config.Name)
	}
	if len(ss.Lookup) >= int(ss.Config.MaxShaderCount) {
		return nil, fmt.Errorf("unable to find free slot to create shader '%s'", config.Name)
	}
	shader, err := ss.build(config)
	if err != nil {
		core.LogError("failed to create shader '%s': %s", config.Name, err)
		return nil, err
	}
	entry := &ShaderEntry{Config: config, Shader: shader}
	ss.Lookup[config.Name] = entry
	return entry, nil
}

func (ss *ShaderSystem) build(config ShaderConfig) (*opengl.Shader, error) {
	vertex, err := ss.source(config.VertexPath)
	if err != nil {
		return nil, err
	}
	fragment, err := ss.source(config.FragmentPath)
	if err != nil {
		return nil, err
	}
	return opengl.NewShader(ss.api, vertex, fragment)
}

func (ss *ShaderSystem) source(name string) (string, error) {
	res, err := ss.assets.LoadAsset(name, nil)
	if err != nil {
		return "", err
	}
	data, ok := res.Data.(*resources.ShaderResourceData)
	if !ok {
		return "", fmt.Errorf("asset '%s' is a %s, not a shader", name, res.Type)
	}
	return data.Source, nil
}

func (ss *ShaderSystem) Get(name string) (*opengl.Shader, error) {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	entry, ok := ss.Lookup[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrShaderNotFound, name)
	}
	return entry.Shader, nil
}

// Use binds the named program.
func (ss *ShaderSystem) Use(name string) (*opengl.Shader, error) {
	shader, err := ss.Get(name)
	if err != nil {
		core.LogError("shader use: %s", err)
		return nil, err
	}
	shader.Use()
	ss.CurrentShaderName = name
	return shader, nil
}

// Reload rebuilds the named program from disk. On failure the previous
// program stays in place.
func (ss *ShaderSystem) Reload(name string) error {
	ss.mu.Lock()
	defer ss.mu.Unlock()

	entry, ok := ss.Lookup[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrShaderNotFound, name)
	}
	shader, err := ss.build(entry.Config)
	if err != nil {
		core.LogError("shader '%s' reload failed, keeping the previous program: %s", name, err)
		return err
	}
	entry.Shader.Delete()
	entry.Shader = shader
	entry.Generation++
	if ss.CurrentShaderName == name {
		shader.Use()
	}
	core.LogInfo("shader '%s' reloaded (generation %d)", name, entry.Generation)
	return nil
}

// OnAssetChanged queues reloads for shaders using the changed file. It may
// be called from any goroutine; the reload itself happens in Update.
func (ss *ShaderSystem) OnAssetChanged(context core.EventContext) bool {
	ev, ok := context.Data.(*core.AssetEvent)
	if !ok {
		return false
	}
	ss.mu.Lock()
	var names []string
	for name, entry := range ss.Lookup {
		if ss.assets.Path(entry.Config.VertexPath) == ev.Path || ss.assets.Path(entry.Config.FragmentPath) == ev.Path {
			names = append(names, name)
		}
	}
	ss.mu.Unlock()

	for _, name := range names {
		if err := ss.pending.Enqueue(name); err != nil {
			core.LogWarn("dropping reload of shader '%s': %s", name, err)
		}
	}
	// Other systems may care about the same file.
	return false
}

// Update performs queued reloads. Must run on the GL thread.
func (ss *ShaderSystem) Update() {
	queued := ss.pending.Drain()
	if len(queued) == 0 {
		return
	}
	seen := make(map[string]struct{}, len(queued))
	for _, name := range queued {
		seen[name] = struct{}{}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		_ = ss.Reload(name)
	}
}
