// Package config loads viewer settings from TOML
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/lixenwraith/cubehelix/preview"
)

// Config holds host settings. Colour path parameters are not stored here.
type Config struct {
	Preview  Preview  `toml:"preview"`
	Mapper   Mapper   `toml:"mapper"`
	Display  Display  `toml:"display"`
	Controls Controls `toml:"controls"`
	Log      Log      `toml:"log"`
}

// Preview sizes the gradient strip
type Preview struct {
	Width  int `toml:"width"`
	Height int `toml:"height"`
}

// Mapper tunes bulk mapping
type Mapper struct {
	Workers int `toml:"workers"` // 0 = GOMAXPROCS
}

// Display controls terminal output
type Display struct {
	ColorMode  string `toml:"color_mode"`  // auto, truecolor, 256
	RenderMode string `toml:"render_mode"` // bg, half, quadrant
	Status     bool   `toml:"status"`
	Live       bool   `toml:"live"` // remap image on every parameter change
}

// Controls tunes parameter editing
type Controls struct {
	Step float64 `toml:"step"`
}

// Log configures debug logging
type Log struct {
	Debug bool   `toml:"debug"`
	Dir   string `toml:"dir"`
}

// Default returns built-in settings
func Default() Config {
	return Config{
		Preview:  Preview{Width: preview.DefaultWidth, Height: preview.DefaultHeight},
		Display:  Display{ColorMode: "auto", RenderMode: "half", Status: true},
		Controls: Controls{Step: 0.05},
		Log:      Log{Dir: "logs"},
	}
}

// Load reads path over the defaults; a missing file yields defaults
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("config read: %w", err)
	}

	if err := Parse(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes TOML into cfg, keeping fields absent from data, then validates
func Parse(data []byte, cfg *Config) error {
	if err := toml.Unmarshal(data, cfg); err != nil {
		var de *toml.DecodeError
		if errors.As(err, &de) {
			row, col := de.Position()
			return fmt.Errorf("parse at %d:%d: %w", row, col, err)
		}
		return fmt.Errorf("parse: %w", err)
	}
	return cfg.Validate()
}

// Validate rejects settings the viewer cannot honor
func (c Config) Validate() error {
	if c.Preview.Width <= 0 || c.Preview.Height <= 0 {
		return fmt.Errorf("preview size %dx%d must be positive", c.Preview.Width, c.Preview.Height)
	}
	if c.Mapper.Workers < 0 {
		return fmt.Errorf("mapper workers %d must not be negative", c.Mapper.Workers)
	}
	if !(c.Controls.Step > 0 && c.Controls.Step <= 1) {
		return fmt.Errorf("controls step %v must be in (0, 1]", c.Controls.Step)
	}
	switch c.Display.ColorMode {
	case "", "auto", "true", "truecolor", "24bit", "256":
	default:
		return fmt.Errorf("display color_mode %q unknown", c.Display.ColorMode)
	}
	switch c.Display.RenderMode {
	case "", "bg", "background", "half", "quadrant", "q":
	default:
		return fmt.Errorf("display render_mode %q unknown", c.Display.RenderMode)
	}
	return nil
}
