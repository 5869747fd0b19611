package config

import "flag"

var (
	flagConfig      = flag.String("config", "", "Path to config file")
	flagDebug       = flag.Bool("debug", false, "Enable debug logging")
	flagMinDistance = flag.Float64("min-distance", 0, "Minimum spacing between recorded stroke points")
	flagClosure     = flag.Float64("closure", 0, "Maximum start/end gap for a stroke to close")
	flagProjection  = flag.String("projection", "", "Stroke flattening mode: reference or best_fit")
	flagWindowed    = flag.Bool("windowed", false, "Run in windowed mode")
	flagFullscreen  = flag.Bool("fullscreen", false, "Run in fullscreen mode")
	flagWidth       = flag.Int("width", 0, "Window width")
	flagHeight      = flag.Int("height", 0, "Window height")
	flagMute        = flag.Bool("mute", false, "Disable feedback sounds")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagMinDistance > 0 {
		cfg.Drawing.MinDistance = float32(*flagMinDistance)
	}
	if *flagClosure > 0 {
		cfg.Drawing.ClosureThreshold = float32(*flagClosure)
	}
	if *flagProjection != "" {
		cfg.Drawing.Projection = *flagProjection
	}
	if *flagWindowed {
		cfg.Graphics.Fullscreen = false
	}
	if *flagFullscreen {
		cfg.Graphics.Fullscreen = true
	}
	if *flagWidth > 0 {
		cfg.Graphics.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Graphics.Height = *flagHeight
	}
	if *flagMute {
		cfg.Audio.Enabled = false
	}
}
