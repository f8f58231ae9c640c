package config

import (
	"errors"
	"fmt"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/afero"
)

var ErrInvalidConfig = errors.New("invalid configuration")

type WindowConfig struct {
	Title     string `toml:"title"`
	Width     uint32 `toml:"width"`
	Height    uint32 `toml:"height"`
	PosX      int32  `toml:"pos_x"`
	PosY      int32  `toml:"pos_y"`
	VSync     bool   `toml:"vsync"`
	Resizable bool   `toml:"resizable"`
}

type RenderConfig struct {
	// Fixed update steps per second.
	UpdateRate uint32     `toml:"update_rate"`
	ClearColor [4]float32 `toml:"clear_color"`
	Scene      string     `toml:"scene"`
	Wireframe  bool       `toml:"wireframe"`
	// Checks glGetError after every wrapped call.
	GLDebug bool `toml:"gl_debug"`
}

type CameraConfig struct {
	Position        [3]float32 `toml:"position"`
	Pitch           float32    `toml:"pitch"`
	Yaw             float32    `toml:"yaw"`
	FOV             float32    `toml:"fov"`
	Near            float32    `toml:"near"`
	Far             float32    `toml:"far"`
	MoveSpeed       float32    `toml:"move_speed"`
	LookSensitivity float32    `toml:"look_sensitivity"`
}

type LogConfig struct {
	Level string `toml:"level"`
}

type AssetsConfig struct {
	Dir string `toml:"dir"`
}

type Config struct {
	Window WindowConfig `toml:"window"`
	Render RenderConfig `toml:"render"`
	Camera CameraConfig `toml:"camera"`
	Log    LogConfig    `toml:"log"`
	Assets AssetsConfig `toml:"assets"`
}

func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:     "lizual",
			Width:     1280,
			Height:    720,
			PosX:      100,
			PosY:      100,
			VSync:     true,
			Resizable: true,
		},
		Render: RenderConfig{
			UpdateRate: 60,
			ClearColor: [4]float32{0.2, 0.3, 0.3, 1.0},
			Scene:      "triangle",
		},
		Camera: CameraConfig{
			Position:        [3]float32{0, 0, 3},
			FOV:             45,
			Near:            0.1,
			Far:             100,
			MoveSpeed:       2.5,
			LookSensitivity: 0.1,
		},
		Log:    LogConfig{Level: "info"},
		Assets: AssetsConfig{Dir: "assets"},
	}
}

// Load reads a TOML file on top of the defaults, so a partial file only
// overrides the keys it names.
func Load(fs afero.Fs, path string) (*Config, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration as TOML.
func (c *Config) Save(fs afero.Fs, path string) error {
	data, err := toml.Marshal(c)
	if err != nil {
		return err
	}
	return afero.WriteFile(fs, path, data, 0o644)
}

func (c *Config) Validate() error {
	if c.Window.Width == 0 || c.Window.Height == 0 {
		return fmt.Errorf("%w: window size %dx%d", ErrInvalidConfig, c.Window.Width, c.Window.Height)
	}
	if c.Render.UpdateRate < 1 || c.Render.UpdateRate > 1000 {
		return fmt.Errorf("%w: update_rate %d out of range [1, 1000]", ErrInvalidConfig, c.Render.UpdateRate)
	}
	if c.Camera.Near <= 0 || c.Camera.Near >= c.Camera.Far {
		return fmt.Errorf("%w: camera near %v must be positive and below far %v", ErrInvalidConfig, c.Camera.Near, c.Camera.Far)
	}
	if c.Camera.FOV <= 0 || c.Camera.FOV >= 180 {
		return fmt.Errorf("%w: camera fov %v out of range (0, 180)", ErrInvalidConfig, c.Camera.FOV)
	}
	return nil
}
