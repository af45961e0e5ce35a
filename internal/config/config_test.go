package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/depeter/jellyflow/internal/gallery"
)

func TestLoadFileMissingReturnsDefaults(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	g, err := cfg.Layout()
	if err != nil {
		t.Fatalf("Layout() error = %v", err)
	}
	if g != gallery.DefaultConfig() {
		t.Errorf("Layout() = %+v, want defaults %+v", g, gallery.DefaultConfig())
	}
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := `
[gallery]
item_spacing = 12
orientation = "vertical"
infinite = true

[ui]
debug = true
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	g, err := cfg.Layout()
	if err != nil {
		t.Fatalf("Layout() error = %v", err)
	}
	want := gallery.DefaultConfig()
	want.ItemSpacing = 12
	want.Orientation = gallery.Vertical
	want.Infinite = true
	if g != want {
		t.Errorf("Layout() = %+v, want %+v", g, want)
	}
	if !cfg.UI.Debug || cfg.UI.PosterWidth != 300 {
		t.Errorf("UI = %+v, want debug on and default poster width", cfg.UI)
	}
}

func TestGalleryRejectsInvalid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"even scale count", func(c *Config) { c.Gallery.ScaleCount = 6 }},
		{"ratio above one", func(c *Config) { c.Gallery.ScaleRatio = 1.5 }},
		{"negative spacing", func(c *Config) { c.Gallery.ItemSpacing = -3 }},
		{"unknown orientation", func(c *Config) { c.Gallery.Orientation = "sideways" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if _, err := cfg.Layout(); !errors.Is(err, gallery.ErrInvalidConfig) {
				t.Errorf("Layout() error = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg := DefaultConfig()
	cfg.Server.URL = "https://media.example.org"
	cfg.Gallery.ScaleCount = 7
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	got, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got.Server.URL != cfg.Server.URL || got.Gallery.ScaleCount != 7 {
		t.Errorf("Load() = %+v, want saved values", got)
	}
}

func TestConfigDirHonoursXDG(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	got, err := ConfigPath()
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(dir, "jellyflow", "config.toml"); got != want {
		t.Errorf("ConfigPath() = %q, want %q", got, want)
	}
}

func TestLoadFileBadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[gallery\nitem_spacing = "), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(path); err == nil {
		t.Error("LoadFile() accepted malformed TOML")
	}
}
