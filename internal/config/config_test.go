package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	body := `{"scene_dir": "scenes", "output_dir": "out", "workers": 4, "write_qc": true}`
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.SceneDir != "scenes" || cfg.OutputDir != "out" || cfg.Workers != 4 || !cfg.WriteQC {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestLoad_Errors(t *testing.T) {
	if _, err := Load("missing.json"); err == nil {
		t.Error("missing file accepted")
	}

	path := filepath.Join(t.TempDir(), "bad.json")
	os.WriteFile(path, []byte("{not json"), 0644)
	if _, err := Load(path); err == nil {
		t.Error("malformed file accepted")
	}
}

func TestResolve_Defaults(t *testing.T) {
	var cfg Config
	cfg.Resolve(Flags{})

	if cfg.SceneDir != "." {
		t.Errorf("SceneDir = %q", cfg.SceneDir)
	}
	if cfg.OutputDir != "models" {
		t.Errorf("OutputDir = %q", cfg.OutputDir)
	}
	if cfg.TextureDir != cfg.OutputDir {
		t.Errorf("TextureDir = %q", cfg.TextureDir)
	}
	if cfg.TextureFormat != "bmp" {
		t.Errorf("TextureFormat = %q", cfg.TextureFormat)
	}
	if cfg.Workers <= 0 {
		t.Errorf("Workers = %d", cfg.Workers)
	}
}

func TestResolve_FlagsOverrideFile(t *testing.T) {
	cfg := Config{SceneDir: "from-file", OutputDir: "file-out", Workers: 2}
	cfg.Resolve(Flags{SceneDir: "from-flag", Workers: 8, TextureFormat: "webp"})

	if cfg.SceneDir != "from-flag" {
		t.Errorf("SceneDir = %q", cfg.SceneDir)
	}
	if cfg.OutputDir != "file-out" {
		t.Errorf("OutputDir = %q", cfg.OutputDir)
	}
	if cfg.Workers != 8 {
		t.Errorf("Workers = %d", cfg.Workers)
	}
	if cfg.TextureFormat != "webp" {
		t.Errorf("TextureFormat = %q", cfg.TextureFormat)
	}
}
