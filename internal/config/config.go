package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/depeter/jellyflow/internal/gallery"
)

type Config struct {
	Server  ServerConfig  `toml:"server"`
	Gallery GalleryConfig `toml:"gallery"`
	UI      UIConfig      `toml:"ui"`
}

type ServerConfig struct {
	URL       string `toml:"url"`
	Username  string `toml:"username"`
	Token     string `toml:"token"`
	UserID    string `toml:"user_id"`
	LibraryID string `toml:"library_id"`
}

// GalleryConfig mirrors gallery.Config with a string orientation so the
// file stays readable.
type GalleryConfig struct {
	ItemSpacing  int     `toml:"item_spacing"`
	ScaleCount   int     `toml:"scale_count"`
	ScaleRatio   float64 `toml:"scale_ratio"`
	Orientation  string  `toml:"orientation"`
	Infinite     bool    `toml:"infinite"`
	InitialIndex int     `toml:"initial_index"`
}

type UIConfig struct {
	Fullscreen   bool `toml:"fullscreen"`
	Width        int  `toml:"width"`
	Height       int  `toml:"height"`
	PosterWidth  int  `toml:"poster_width"`
	PosterHeight int  `toml:"poster_height"`
	Debug        bool `toml:"debug"`
}

func DefaultConfig() *Config {
	g := gallery.DefaultConfig()
	return &Config{
		Server: ServerConfig{},
		Gallery: GalleryConfig{
			ItemSpacing: g.ItemSpacing,
			ScaleCount:  g.ScaleCount,
			ScaleRatio:  g.ScaleRatio,
			Orientation: g.Orientation.String(),
		},
		UI: UIConfig{
			Fullscreen:   false,
			Width:        1920,
			Height:       1080,
			PosterWidth:  300,
			PosterHeight: 450,
		},
	}
}

// Layout converts the [gallery] section into an engine configuration.
// Invalid values are reported, never corrected.
func (c *Config) Layout() (gallery.Config, error) {
	o, err := gallery.ParseOrientation(c.Gallery.Orientation)
	if err != nil {
		return gallery.Config{}, err
	}
	g := gallery.Config{
		ItemSpacing: c.Gallery.ItemSpacing,
		ScaleCount:  c.Gallery.ScaleCount,
		ScaleRatio:  c.Gallery.ScaleRatio,
		Orientation: o,
		Infinite:    c.Gallery.Infinite,
	}
	if err := g.Validate(); err != nil {
		return gallery.Config{}, err
	}
	return g, nil
}

// HasServer reports whether enough is configured to talk to a Jellyfin
// server without logging in.
func (c *Config) HasServer() bool {
	return c.Server.URL != "" && c.Server.Token != "" && c.Server.UserID != ""
}

func ConfigDir() (string, error) {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "jellyflow"), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// CacheDir is where downloaded posters are kept.
func CacheDir() (string, error) {
	cacheHome := os.Getenv("XDG_CACHE_HOME")
	if cacheHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		cacheHome = filepath.Join(home, ".cache")
	}
	return filepath.Join(cacheHome, "jellyflow", "images"), nil
}

// Load reads the default config file. A missing file yields the defaults.
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return DefaultConfig(), nil
	}
	return LoadFile(path)
}

// LoadFile reads path over the defaults. A missing file yields the defaults.
func LoadFile(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) Save() error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return c.SaveFile(path)
}

func (c *Config) SaveFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(c)
}
