package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Layout.AspectRatio != 1.6 {
		t.Errorf("AspectRatio = %v, want 1.6", cfg.Layout.AspectRatio)
	}
	if cfg.Card.Width != 180 || cfg.Card.Height != 72 {
		t.Errorf("card = %vx%v, want 180x72", cfg.Card.Width, cfg.Card.Height)
	}
	if cfg.Card.GapX != 24 || cfg.Card.GapY != 48 || cfg.Card.GapGrid != 16 || cfg.Card.Channel != 36 {
		t.Errorf("gaps = %+v", cfg.Card)
	}
	if cfg.Render.Style != "simple" || cfg.Render.Scale != 2.0 {
		t.Errorf("render = %+v", cfg.Render)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("addr = %q, want :8080", cfg.Server.Addr)
	}
	if cfg.Store.Database != "harkje" {
		t.Errorf("database = %q, want harkje", cfg.Store.Database)
	}
}

func TestLoadMissingDefaultPath(t *testing.T) {
	// Run from a directory without a config file.
	wd, _ := os.Getwd()
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	defer os.Chdir(wd)

	cfg, err := Load(DefaultPath)
	if err != nil {
		t.Fatalf("missing default config should not error: %v", err)
	}
	if cfg.Layout.AspectRatio != 1.6 {
		t.Error("missing default config should yield the defaults")
	}
}

func TestLoadMissingExplicitPath(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err == nil {
		t.Fatal("missing explicit config should error")
	}
	if !strings.Contains(err.Error(), "not found") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestLoadOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "harkje.toml")
	content := `
[layout]
aspect_ratio = 2.5

[card]
width = 200.0

[server]
addr = ":9090"

[cache]
redis_addr = "localhost:6379"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	// Overridden values
	if cfg.Layout.AspectRatio != 2.5 {
		t.Errorf("AspectRatio = %v, want 2.5", cfg.Layout.AspectRatio)
	}
	if cfg.Card.Width != 200 {
		t.Errorf("Width = %v, want 200", cfg.Card.Width)
	}
	if cfg.Server.Addr != ":9090" {
		t.Errorf("Addr = %q, want :9090", cfg.Server.Addr)
	}
	if cfg.Cache.RedisAddr != "localhost:6379" {
		t.Errorf("RedisAddr = %q", cfg.Cache.RedisAddr)
	}

	// Untouched values keep their defaults
	if cfg.Card.Height != 72 {
		t.Errorf("Height = %v, want default 72", cfg.Card.Height)
	}
	if cfg.Render.Style != "simple" {
		t.Errorf("Style = %q, want default simple", cfg.Render.Style)
	}
}

func TestLoadInvalidTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(path, []byte("not [valid toml"), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Error("invalid TOML should error")
	}
}
