package systems

import (
	"fmt"
	"image"
	"path"
	"sync"

	"github.com/lizual/lizual/engine/assets/loaders"
	"github.com/lizual/lizual/engine/resources"
)

// memAssets serves resources from memory under a fake /assets root.
type memAssets struct {
	mu     sync.Mutex
	shader map[string]string
	images map[string]image.Image
	other  map[string]*resources.Resource
}

func newMemAssets() *memAssets {
	return &memAssets{
		shader: make(map[string]string),
		images: make(map[string]image.Image),
		other:  make(map[string]*resources.Resource),
	}
}

func (m *memAssets) Path(name string) string {
	if path.IsAbs(name) {
		return name
	}
	return path.Join("/assets", name)
}

func (m *memAssets) setShader(name, source string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.shader[name] = source
}

func (m *memAssets) setImage(name string, img image.Image) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.images[name] = img
}

func (m *memAssets) LoadAsset(name string, params interface{}) (*resources.Resource, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if src, ok := m.shader[name]; ok {
		return &resources.Resource{
			Name: name,
			Type: resources.ResourceTypeShader,
			Data: &resources.ShaderResourceData{Stage: loaders.ShaderStageFromPath(name), Source: src},
		}, nil
	}
	if img, ok := m.images[name]; ok {
		flip := true
		if p, ok := params.(*resources.ImageResourceParams); ok {
			flip = p.FlipY
		}
		return &resources.Resource{
			Name: name,
			Type: resources.ResourceTypeImage,
			Data: &loaders.ImageResourceData{Image: img, Format: "mem", FlipY: flip},
		}, nil
	}
	if res, ok := m.other[name]; ok {
		return res, nil
	}
	return nil, fmt.Errorf("%w: %s", resources.ErrResourceNotFound, name)
}
