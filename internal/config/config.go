// Package config handles sketch configuration loading and management.
package config

import (
	"errors"
	"fmt"
)

// Projection modes for flattening a stroke before triangulation.
const (
	ProjectionReference = "reference" // inverse of the orientation captured at stroke start
	ProjectionBestFit   = "best_fit"  // plane fitted to the stroke itself
)

// Config holds all settings.
type Config struct {
	Drawing  DrawingConfig  `yaml:"drawing"`
	Collider ColliderConfig `yaml:"collider"`
	Shapes   ShapesConfig   `yaml:"shapes"`
	Graphics GraphicsConfig `yaml:"graphics"`
	Audio    AudioConfig    `yaml:"audio"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// DrawingConfig holds stroke capture and closure settings.
type DrawingConfig struct {
	MinDistance      float32 `yaml:"min_distance"`      // spacing below which samples are dropped
	ClosureThreshold float32 `yaml:"closure_threshold"` // max start-to-end gap for a closed loop
	MinPoints        int     `yaml:"min_points"`
	TriggerPress     float32 `yaml:"trigger_press"`
	TriggerRelease   float32 `yaml:"trigger_release"`
	Projection       string  `yaml:"projection"`
}

// ColliderConfig holds the physics flags attached to generated shapes.
type ColliderConfig struct {
	Convex     bool   `yaml:"convex"`
	UseGravity bool   `yaml:"use_gravity"`
	Kinematic  bool   `yaml:"kinematic"`
	Layer      string `yaml:"layer"`
}

// ShapesConfig holds procedural primitive settings.
type ShapesConfig struct {
	ConeSegments       int     `yaml:"cone_segments"`
	DoubleConeSegments int     `yaml:"double_cone_segments"`
	CapBase            bool    `yaml:"cap_base"`
	Radius             float32 `yaml:"radius"`
	Height             float32 `yaml:"height"`
}

// GraphicsConfig holds display settings for the viewer.
type GraphicsConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
}

// AudioConfig holds viewer feedback sound settings. Empty sound paths use
// built-in tones.
type AudioConfig struct {
	Enabled        bool    `yaml:"enabled"`
	Volume         float64 `yaml:"volume"`
	CreatedSound   string  `yaml:"created_sound"`
	DiscardedSound string  `yaml:"discarded_sound"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Drawing: DrawingConfig{
			MinDistance:      0.05,
			ClosureThreshold: 0.2,
			MinPoints:        4,
			TriggerPress:     0.2,
			TriggerRelease:   0.1,
			Projection:       ProjectionReference,
		},
		Collider: ColliderConfig{
			Convex:     true,
			UseGravity: false,
			Kinematic:  false,
			Layer:      "Grabbable",
		},
		Shapes: ShapesConfig{
			ConeSegments:       24,
			DoubleConeSegments: 32,
			CapBase:            true,
			Radius:             0.5,
			Height:             1,
		},
		Graphics: GraphicsConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
		},
		Audio: AudioConfig{
			Enabled: true,
			Volume:  0.6,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate reports every inconsistent setting, joined into one error.
func (c *Config) Validate() error {
	d := c.Drawing
	var errs []error
	if d.MinDistance < 0 {
		errs = append(errs, fmt.Errorf("drawing.min_distance must not be negative, got %v", d.MinDistance))
	}
	if d.ClosureThreshold <= 0 {
		errs = append(errs, fmt.Errorf("drawing.closure_threshold must be positive, got %v", d.ClosureThreshold))
	}
	if d.MinPoints < 4 {
		errs = append(errs, fmt.Errorf("drawing.min_points must be at least 4, got %d", d.MinPoints))
	}
	if d.TriggerRelease > d.TriggerPress {
		errs = append(errs, fmt.Errorf("drawing.trigger_release (%v) above trigger_press (%v)", d.TriggerRelease, d.TriggerPress))
	}
	switch d.Projection {
	case ProjectionReference, ProjectionBestFit:
	default:
		errs = append(errs, fmt.Errorf("drawing.projection: unknown mode %q", d.Projection))
	}
	if c.Shapes.ConeSegments < 3 || c.Shapes.DoubleConeSegments < 3 {
		errs = append(errs, errors.New("shapes: segment counts must be at least 3"))
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		errs = append(errs, fmt.Errorf("audio.volume must be within [0, 1], got %v", c.Audio.Volume))
	}
	return errors.Join(errs...)
}
