package loaders

import (
	"os"
	"path/filepath"

	"github.com/lizual/lizual/engine/resources"
)

type ShaderLoader struct{}

func (sl *ShaderLoader) Load(path string, params interface{}) (*resources.Resource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return &resources.Resource{
		Name:     filepath.Base(path),
		FullPath: path,
		Type:     resources.ResourceTypeShader,
		DataSize: uint64(len(data)),
		Data: &resources.ShaderResourceData{
			Stage:  ShaderStageFromPath(path),
			Source: string(data),
		},
	}, nil
}

func (sl *ShaderLoader) Unload(resource *resources.Resource) error {
	resource.Data = nil
	resource.DataSize = 0
	return nil
}

// ShaderStageFromPath infers the stage from the extension, or from a
// `.vert.glsl` / `.frag.glsl` double extension.
func ShaderStageFromPath(path string) resources.ShaderStage {
	ext := filepath.Ext(path)
	if ext == ".glsl" {
		ext = filepath.Ext(path[:len(path)-len(ext)])
	}
	switch ext {
	case ".vert", ".vs":
		return resources.ShaderStageVertex
	case ".frag", ".fs":
		return resources.ShaderStageFragment
	}
	return resources.ShaderStageUnknown
}
