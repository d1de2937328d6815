package config

import (
	"encoding/json"
	"fmt"
	"os"
	"runtime"
)

// Config holds all configurable paths and conversion settings.
type Config struct {
	// Paths
	SceneDir   string `json:"scene_dir"`
	OutputDir  string `json:"output_dir"`
	TextureDir string `json:"texture_dir"`

	// Conversion settings
	Workers       int    `json:"workers"`
	TextureFormat string `json:"texture_format"`
	WriteQC       bool   `json:"write_qc"`
	WritePreview  bool   `json:"write_preview"`
}

// Load reads a JSON config file and returns Config.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Resolve fills in any empty fields with defaults.
// CLI flags take priority when non-zero/non-empty.
func (c *Config) Resolve(flags Flags) {
	// CLI flags override config file
	if flags.SceneDir != "" {
		c.SceneDir = flags.SceneDir
	}
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}
	if flags.TextureFormat != "" {
		c.TextureFormat = flags.TextureFormat
	}

	if c.SceneDir == "" {
		c.SceneDir = "."
	}
	if c.OutputDir == "" {
		c.OutputDir = "models"
	}
	if c.TextureDir == "" {
		c.TextureDir = c.OutputDir
	}
	if c.TextureFormat == "" {
		c.TextureFormat = "bmp"
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	SceneDir      string
	OutputDir     string
	Workers       int
	TextureFormat string
}
