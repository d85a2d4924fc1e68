// Package config holds the tunables of the prototype. Defaults live in code;
// a JSON file may override any subset of them.
package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/1siamBot/rts-command/engine/core"
	"github.com/1siamBot/rts-command/engine/geom"
)

// ScreenConfig is the window setup
type ScreenConfig struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Title  string `json:"title"`
}

// SelectionConfig tunes the selection phases and formation drag. Distances
// are screen pixels, spacings world units, times seconds.
type SelectionConfig struct {
	ClickThreshold         float64 `json:"click_threshold"`
	FormationDragThreshold float64 `json:"formation_drag_threshold"`
	PixelsPerLine          float64 `json:"pixels_per_line"`
	MaxLines               int     `json:"max_lines"`
	SpacingPerPixel        float64 `json:"spacing_per_pixel"`
	MinSpacing             float64 `json:"min_spacing"`
	MaxSpacing             float64 `json:"max_spacing"`
	FallbackRows           int     `json:"fallback_rows"`
	DefaultSpacing         float64 `json:"default_spacing"`
	RepeatInterval         float64 `json:"repeat_interval"`
}

// MenuConfig tunes the radial menu. Radius is in screen pixels, Offset in
// world units from the building, times in seconds.
type MenuConfig struct {
	Radius             float64   `json:"radius"`
	Offset             geom.Vec2 `json:"offset"`
	StaggerDelay       float64   `json:"stagger_delay"`
	OpenDuration       float64   `json:"open_duration"`
	SettleDelay        float64   `json:"settle_delay"`
	CollapseDuration   float64   `json:"collapse_duration"`
	CancelCleanupDelay float64   `json:"cancel_cleanup_delay"`
	CloseDelay         float64   `json:"close_delay"`
	HoverScale         float64   `json:"hover_scale"`
	HoverDuration      float64   `json:"hover_duration"`
	InfoHideDelay      float64   `json:"info_hide_delay"`
	ItemSize           float64   `json:"item_size"`
}

// CameraConfig sets up the top-down camera
type CameraConfig struct {
	PixelsPerUnit float64 `json:"pixels_per_unit"`
	Speed         float64 `json:"speed"`
	MinZoom       float64 `json:"min_zoom"`
	MaxZoom       float64 `json:"max_zoom"`
	EdgeScroll    bool    `json:"edge_scroll"`
	EdgeSize      int     `json:"edge_size"`
}

// Config is the full set of tunables
type Config struct {
	Screen    ScreenConfig    `json:"screen"`
	TickRate  float64         `json:"tick_rate"`
	Selection SelectionConfig `json:"selection"`
	Menu      MenuConfig      `json:"menu"`
	Camera    CameraConfig    `json:"camera"`
	Resources core.Resources  `json:"resources"`
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		Screen: ScreenConfig{
			Width:  1280,
			Height: 720,
			Title:  "RTS Command Prototype",
		},
		TickRate: 20,
		Selection: SelectionConfig{
			ClickThreshold:         15,
			FormationDragThreshold: 10,
			PixelsPerLine:          20,
			MaxLines:               10,
			SpacingPerPixel:        0.1,
			MinSpacing:             1.0,
			MaxSpacing:             3.0,
			FallbackRows:           3,
			DefaultSpacing:         1.5,
			RepeatInterval:         0.1,
		},
		Menu: MenuConfig{
			Radius:             100,
			Offset:             geom.Vec2{X: 0, Y: -2},
			StaggerDelay:       0.1,
			OpenDuration:       0.4,
			SettleDelay:        0.5,
			CollapseDuration:   0.25,
			CancelCleanupDelay: 0.3,
			CloseDelay:         0.4,
			HoverScale:         1.2,
			HoverDuration:      0.15,
			InfoHideDelay:      0.1,
			ItemSize:           44,
		},
		Camera: CameraConfig{
			PixelsPerUnit: 32,
			Speed:         500,
			MinZoom:       0.25,
			MaxZoom:       3.0,
			EdgeScroll:    true,
			EdgeSize:      20,
		},
		Resources: core.Resources{Metal: 200, Stone: 200, Wood: 300, Gold: 100, Food: 400},
	}
}

// Load reads a JSON file over the defaults. Fields missing from the file
// keep their default values.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects values the core cannot work with
func (c Config) Validate() error {
	switch {
	case c.TickRate <= 0:
		return fmt.Errorf("tick_rate must be positive, got %v", c.TickRate)
	case c.Selection.ClickThreshold <= 0:
		return fmt.Errorf("selection.click_threshold must be positive")
	case c.Selection.MaxLines < 1:
		return fmt.Errorf("selection.max_lines must be at least 1")
	case c.Selection.FallbackRows < 1:
		return fmt.Errorf("selection.fallback_rows must be at least 1")
	case c.Selection.PixelsPerLine <= 0:
		return fmt.Errorf("selection.pixels_per_line must be positive")
	case c.Selection.MinSpacing > c.Selection.MaxSpacing:
		return fmt.Errorf("selection.min_spacing exceeds max_spacing")
	case c.Selection.RepeatInterval <= 0:
		return fmt.Errorf("selection.repeat_interval must be positive")
	case c.Camera.PixelsPerUnit <= 0:
		return fmt.Errorf("camera.pixels_per_unit must be positive")
	}
	return nil
}
