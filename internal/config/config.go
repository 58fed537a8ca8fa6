// Package config provides YAML-based configuration loading for the
// image-map MCP server.
package config

import (
	"fmt"

	"github.com/charmbracelet/log"
)

// Config contains all server settings.
type Config struct {
	LogLevel               string        `yaml:"log_level"`
	BaseDir                string        `yaml:"base_dir"`
	TransposeDefaultCenter bool          `yaml:"transpose_default_center"`
	OCR                    OCRConfig     `yaml:"ocr"`
	Overlay                OverlayConfig `yaml:"overlay"`
	Suggest                SuggestConfig `yaml:"suggest"`

	// Source is the file the configuration was read from, or empty for
	// the built-in defaults.
	Source string `yaml:"-"`
}

// OCRConfig defines OCR parameters.
type OCRConfig struct {
	Language string `yaml:"language"`
}

// OverlayConfig defines how map_overlay renders.
type OverlayConfig struct {
	Dim         float64 `yaml:"dim"`
	StrokeWidth float64 `yaml:"stroke_width"`
	ShowLabels  bool    `yaml:"show_labels"`
}

// SuggestConfig defines the default thresholds of map_suggest_areas.
type SuggestConfig struct {
	MinArea   int     `yaml:"min_area"`
	Tolerance float64 `yaml:"tolerance"`
	MinRadius int     `yaml:"min_radius"`
	MaxRadius int     `yaml:"max_radius"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		LogLevel:               "info",
		TransposeDefaultCenter: true,
		OCR: OCRConfig{
			Language: "eng",
		},
		Overlay: OverlayConfig{
			Dim:         0.35,
			StrokeWidth: 2,
			ShowLabels:  true,
		},
		Suggest: SuggestConfig{
			MinArea:   100,
			Tolerance: 0.8,
			MinRadius: 5,
		},
	}
}

// Level parses LogLevel. An empty level means info.
func (c Config) Level() (log.Level, error) {
	if c.LogLevel == "" {
		return log.InfoLevel, nil
	}
	return log.ParseLevel(c.LogLevel)
}

// Validate reports the first setting that is out of range.
func (c Config) Validate() error {
	if _, err := c.Level(); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	if c.Overlay.Dim < 0 || c.Overlay.Dim > 1 {
		return fmt.Errorf("overlay.dim must be between 0 and 1, got %v", c.Overlay.Dim)
	}
	if c.Overlay.StrokeWidth < 0 {
		return fmt.Errorf("overlay.stroke_width must not be negative, got %v", c.Overlay.StrokeWidth)
	}
	if c.Suggest.Tolerance < 0 || c.Suggest.Tolerance > 1 {
		return fmt.Errorf("suggest.tolerance must be between 0 and 1, got %v", c.Suggest.Tolerance)
	}
	if c.Suggest.MinArea < 0 || c.Suggest.MinRadius < 0 || c.Suggest.MaxRadius < 0 {
		return fmt.Errorf("suggest sizes must not be negative")
	}
	if c.Suggest.MaxRadius > 0 && c.Suggest.MaxRadius < c.Suggest.MinRadius {
		return fmt.Errorf("suggest.max_radius %d is below min_radius %d", c.Suggest.MaxRadius, c.Suggest.MinRadius)
	}
	return nil
}
