// Package config loads the harkje configuration file.
//
// Configuration is a TOML file (harkje.toml by default) covering card
// geometry, layout defaults, rendering, the HTTP server, caching and
// the optional mongo store. Every value has a sensible default; CLI
// flags override file values.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// DefaultPath is the configuration file looked up when no --config flag
// is given.
const DefaultPath = "harkje.toml"

// Config is the top-level configuration.
type Config struct {
	Layout LayoutConfig `toml:"layout"`
	Card   CardConfig   `toml:"card"`
	Render RenderConfig `toml:"render"`
	Server ServerConfig `toml:"server"`
	Cache  CacheConfig  `toml:"cache"`
	Store  StoreConfig  `toml:"store"`
}

// LayoutConfig holds layout defaults.
type LayoutConfig struct {
	AspectRatio float64 `toml:"aspect_ratio"`
}

// CardConfig holds the card geometry.
type CardConfig struct {
	Width   float64 `toml:"width"`
	Height  float64 `toml:"height"`
	GapX    float64 `toml:"gap_x"`
	GapY    float64 `toml:"gap_y"`
	GapGrid float64 `toml:"gap_grid"`
	Channel float64 `toml:"channel"`
}

// RenderConfig holds rendering defaults.
type RenderConfig struct {
	Style string  `toml:"style"`
	Scale float64 `toml:"scale"` // PNG scale factor
}

// ServerConfig holds the HTTP server settings.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// CacheConfig holds cache backend settings. When RedisAddr is set the
// redis backend is used, otherwise the file cache in Dir.
type CacheConfig struct {
	Dir       string `toml:"dir"`
	RedisAddr string `toml:"redis_addr"`
	RedisDB   int    `toml:"redis_db"`
}

// StoreConfig holds the optional mongo snapshot store settings.
type StoreConfig struct {
	MongoURI string `toml:"mongo_uri"`
	Database string `toml:"database"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Layout: LayoutConfig{AspectRatio: 1.6},
		Card: CardConfig{
			Width:   180,
			Height:  72,
			GapX:    24,
			GapY:    48,
			GapGrid: 16,
			Channel: 36,
		},
		Render: RenderConfig{Style: "simple", Scale: 2.0},
		Server: ServerConfig{Addr: ":8080"},
		Cache:  CacheConfig{},
		Store:  StoreConfig{Database: "harkje"},
	}
}

// Load reads the configuration file at path, overlaying the defaults.
// A missing file at the default path is not an error; a missing file at
// an explicitly requested path is.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		if path == DefaultPath {
			return cfg, nil
		}
		return cfg, fmt.Errorf("config file not found: %s", path)
	}
	if err != nil {
		return cfg, err
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}
