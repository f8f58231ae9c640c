package loaders

import (
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/lizual/lizual/engine/config"
	"github.com/lizual/lizual/engine/resources"
)

// ConfigLoader reads TOML configs, or `field=value` files when the
// extension is .cfg. Legacy files apply on top of the defaults.
type ConfigLoader struct {
	Fs afero.Fs
}

func (cl *ConfigLoader) fs() afero.Fs {
	if cl.Fs == nil {
		return afero.NewOsFs()
	}
	return cl.Fs
}

func (cl *ConfigLoader) Load(path string, params interface{}) (*resources.Resource, error) {
	var cfg *config.Config
	if strings.EqualFold(filepath.Ext(path), ".cfg") {
		cfg = config.Default()
		if err := config.LoadKeyValue(cl.fs(), path, cfg); err != nil {
			return nil, err
		}
	} else {
		var err error
		if cfg, err = config.Load(cl.fs(), path); err != nil {
			return nil, err
		}
	}
	return &resources.Resource{
		Name:     filepath.Base(path),
		FullPath: path,
		Type:     resources.ResourceTypeConfig,
		DataSize: 1,
		Data:     cfg,
	}, nil
}

func (cl *ConfigLoader) Unload(resource *resources.Resource) error {
	resource.Data = nil
	resource.DataSize = 0
	return nil
}
