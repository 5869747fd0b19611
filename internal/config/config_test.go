package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	// Drawing defaults match the pen's tuning
	if cfg.Drawing.MinDistance != 0.05 {
		t.Errorf("expected min distance 0.05, got %v", cfg.Drawing.MinDistance)
	}
	if cfg.Drawing.ClosureThreshold != 0.2 {
		t.Errorf("expected closure threshold 0.2, got %v", cfg.Drawing.ClosureThreshold)
	}
	if cfg.Drawing.MinPoints != 4 {
		t.Errorf("expected min points 4, got %d", cfg.Drawing.MinPoints)
	}
	if cfg.Drawing.Projection != ProjectionReference {
		t.Errorf("expected reference projection, got %s", cfg.Drawing.Projection)
	}

	if !cfg.Collider.Convex {
		t.Error("expected convex collider by default")
	}
	if cfg.Collider.UseGravity {
		t.Error("expected gravity off by default")
	}

	if cfg.Shapes.ConeSegments != 24 || cfg.Shapes.DoubleConeSegments != 32 {
		t.Errorf("unexpected segment defaults: %d/%d", cfg.Shapes.ConeSegments, cfg.Shapes.DoubleConeSegments)
	}

	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"negative spacing", func(c *Config) { c.Drawing.MinDistance = -1 }, "min_distance"},
		{"zero closure", func(c *Config) { c.Drawing.ClosureThreshold = 0 }, "closure_threshold"},
		{"too few points", func(c *Config) { c.Drawing.MinPoints = 2 }, "min_points"},
		{"triangle outline", func(c *Config) { c.Drawing.MinPoints = 3 }, "min_points"},
		{"inverted hysteresis", func(c *Config) { c.Drawing.TriggerRelease = 0.5 }, "trigger_release"},
		{"unknown projection", func(c *Config) { c.Drawing.Projection = "ortho" }, "projection"},
		{"few segments", func(c *Config) { c.Shapes.ConeSegments = 2 }, "segment"},
		{"loud", func(c *Config) { c.Audio.Volume = 1.5 }, "audio.volume"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestValidateReportsEverySetting(t *testing.T) {
	cfg := Default()
	cfg.Drawing.MinPoints = 3
	cfg.Audio.Volume = -1
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error, got nil")
	}
	for _, want := range []string{"min_points", "audio.volume"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not mention %q", err, want)
		}
	}

	cfg = Default()
	cfg.Drawing.MinDistance = 0
	if err := cfg.Validate(); err != nil {
		t.Errorf("zero min_distance should validate: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
drawing:
  min_distance: 0.01
  closure_threshold: 0.3
  projection: best_fit

collider:
  use_gravity: true
  layer: "Props"

graphics:
  width: 1920
  height: 1080

logging:
  level: "debug"
  log_file: "sketch.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Drawing.MinDistance != 0.01 {
		t.Errorf("expected min distance 0.01, got %v", cfg.Drawing.MinDistance)
	}
	if cfg.Drawing.ClosureThreshold != 0.3 {
		t.Errorf("expected closure 0.3, got %v", cfg.Drawing.ClosureThreshold)
	}
	if cfg.Drawing.Projection != ProjectionBestFit {
		t.Errorf("expected best_fit projection, got %s", cfg.Drawing.Projection)
	}
	// Untouched keys keep their defaults
	if cfg.Drawing.MinPoints != 4 {
		t.Errorf("expected min points to stay 4, got %d", cfg.Drawing.MinPoints)
	}
	if !cfg.Collider.UseGravity {
		t.Error("expected use_gravity to be true")
	}
	if cfg.Collider.Layer != "Props" {
		t.Errorf("expected layer Props, got %s", cfg.Collider.Layer)
	}
	if cfg.Graphics.Width != 1920 || cfg.Graphics.Height != 1080 {
		t.Errorf("expected 1920x1080, got %dx%d", cfg.Graphics.Width, cfg.Graphics.Height)
	}
	if cfg.Logging.LogFile != "sketch.log" {
		t.Errorf("expected log file 'sketch.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
drawing:
  min_distance: not a number
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	if err := loadFromFile(cfg, "/nonexistent/path/config.yaml"); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()
	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Chdir(t.TempDir())

	if path := findConfigFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	if err := os.WriteFile("config.yaml", []byte("drawing:\n  min_distance: 0.1\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	if path := findConfigFile(); path == "" {
		t.Error("expected to find config.yaml in current directory")
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*testing.T, *Config)
		teardown func()
	}{
		{
			name:  "debug flag",
			setup: func() { *flagDebug = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() { *flagDebug = false },
		},
		{
			name: "drawing flags",
			setup: func() {
				*flagMinDistance = 0.02
				*flagClosure = 0.5
				*flagProjection = ProjectionBestFit
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Drawing.MinDistance != float32(0.02) {
					t.Errorf("expected min distance 0.02, got %v", cfg.Drawing.MinDistance)
				}
				if cfg.Drawing.ClosureThreshold != 0.5 {
					t.Errorf("expected closure 0.5, got %v", cfg.Drawing.ClosureThreshold)
				}
				if cfg.Drawing.Projection != ProjectionBestFit {
					t.Errorf("expected best_fit, got %s", cfg.Drawing.Projection)
				}
			},
			teardown: func() {
				*flagMinDistance = 0
				*flagClosure = 0
				*flagProjection = ""
			},
		},
		{
			name:  "fullscreen flag",
			setup: func() { *flagFullscreen = true },
			verify: func(t *testing.T, cfg *Config) {
				if !cfg.Graphics.Fullscreen {
					t.Error("expected fullscreen to be true with fullscreen flag")
				}
			},
			teardown: func() { *flagFullscreen = false },
		},
		{
			name:  "mute flag",
			setup: func() { *flagMute = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Audio.Enabled {
					t.Error("expected audio disabled with mute flag")
				}
			},
			teardown: func() { *flagMute = false },
		},
		{
			name: "width and height flags",
			setup: func() {
				*flagWidth = 2560
				*flagHeight = 1440
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Graphics.Width != 2560 || cfg.Graphics.Height != 1440 {
					t.Errorf("expected 2560x1440, got %dx%d", cfg.Graphics.Width, cfg.Graphics.Height)
				}
			},
			teardown: func() {
				*flagWidth = 0
				*flagHeight = 0
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)
			tt.verify(t, cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
drawing:
  min_distance: 0.08
  closure_threshold: 0.25
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	*flagClosure = 0.4
	defer func() {
		*flagConfig = ""
		*flagClosure = 0
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Closure from flag, spacing from file
	if cfg.Drawing.ClosureThreshold != float32(0.4) {
		t.Errorf("expected closure 0.4 from flag, got %v", cfg.Drawing.ClosureThreshold)
	}
	if cfg.Drawing.MinDistance != float32(0.08) {
		t.Errorf("expected min distance 0.08 from file, got %v", cfg.Drawing.MinDistance)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte("drawing:\n  projection: sideways\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	defer func() { *flagConfig = "" }()

	if _, err := Load(); err == nil {
		t.Error("expected Load to reject unknown projection")
	}
}

func TestSaveTo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := Default()
	cfg.Drawing.Projection = ProjectionBestFit

	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if loaded.Drawing.Projection != ProjectionBestFit {
		t.Errorf("expected saved projection best_fit, got %s", loaded.Drawing.Projection)
	}
}
