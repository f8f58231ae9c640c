package engine

import (
	"github.com/lizual/lizual/engine/config"
	"github.com/lizual/lizual/engine/core"
)

type ApplicationConfig struct {
	// Window starting position x axis, if applicable.
	StartPosX int32
	// Window starting position y axis, if applicable.
	StartPosY int32
	// Window starting width, if applicable.
	StartWidth uint32
	// Window starting height, if applicable.
	StartHeight uint32
	// The application name used in windowing, if applicable.
	Name     string
	LogLevel core.LogLevel
}

// NewApplicationConfig takes the window settings from cfg. An unknown log
// level falls back to info.
func NewApplicationConfig(cfg *config.Config) *ApplicationConfig {
	level := core.InfoLevel
	if l, err := core.ParseLogLevel(cfg.Log.Level); err == nil {
		level = l
	}
	return &ApplicationConfig{
		StartPosX:   cfg.Window.PosX,
		StartPosY:   cfg.Window.PosY,
		StartWidth:  cfg.Window.Width,
		StartHeight: cfg.Window.Height,
		Name:        cfg.Window.Title,
		LogLevel:    level,
	}
}
