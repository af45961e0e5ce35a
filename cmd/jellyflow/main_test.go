package main

import (
	"bytes"
	"errors"
	"path/filepath"
	"testing"

	"github.com/depeter/jellyflow/internal/catalog"
	"github.com/depeter/jellyflow/internal/config"
	"github.com/depeter/jellyflow/internal/gallery"
	"github.com/depeter/jellyflow/internal/snapshot"
)

func TestParseSize(t *testing.T) {
	tests := []struct {
		in      string
		want    gallery.Size
		wantErr bool
	}{
		{"1080x400", gallery.Size{W: 1080, H: 400}, false},
		{" 300X200 ", gallery.Size{W: 300, H: 200}, false},
		{"1080", gallery.Size{}, true},
		{"axb", gallery.Size{}, true},
		{"0x10", gallery.Size{}, true},
		{"-5x10", gallery.Size{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseSize(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseSize(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("parseSize(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestApplyFlags(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Gallery.InitialIndex = 3
	s, err := applyFlags(cfg, &globalFlags{orientation: "vertical", infinite: true, selected: 9, debug: true})
	if err != nil {
		t.Fatalf("applyFlags() error = %v", err)
	}
	if s.layout.Orientation != gallery.Vertical || !s.layout.Infinite {
		t.Errorf("layout = %+v, want vertical and infinite", s.layout)
	}
	if s.initial != 9 || !s.debug || s.trace() == nil {
		t.Errorf("initial=%d debug=%v, want 9 and true with a trace hook", s.initial, s.debug)
	}

	s, err = applyFlags(config.DefaultConfig(), &globalFlags{selected: -1})
	if err != nil {
		t.Fatal(err)
	}
	if s.initial != 0 || s.trace() != nil {
		t.Errorf("defaults: initial=%d, trace set=%v", s.initial, s.trace() != nil)
	}

	_, err = applyFlags(config.DefaultConfig(), &globalFlags{orientation: "diagonal", selected: -1})
	if !errors.Is(err, gallery.ErrInvalidConfig) {
		t.Errorf("applyFlags() error = %v, want ErrInvalidConfig", err)
	}
}

func TestSettingsSource(t *testing.T) {
	s := &settings{cfg: config.DefaultConfig()}

	src, remote := s.source(12)
	if d, ok := src.(catalog.DemoSource); !ok || d.Count != 12 || remote {
		t.Errorf("source(12) = %#v remote=%v, want 12 generated posters", src, remote)
	}

	src, remote = s.source(0)
	if d, ok := src.(catalog.DemoSource); !ok || d.Count != demoCount || remote {
		t.Errorf("source(0) without a server = %#v remote=%v", src, remote)
	}

	s.cfg.Server = config.ServerConfig{URL: "http://jf.local:8096", Token: "tok", UserID: "u1", LibraryID: "lib"}
	src, remote = s.source(0)
	js, ok := src.(*catalog.JellyfinSource)
	if !ok || !remote {
		t.Fatalf("source(0) with a server = %#v remote=%v", src, remote)
	}
	if js.LibraryID != "lib" || js.PosterWidth != s.cfg.UI.PosterWidth {
		t.Errorf("jellyfin source = %+v", js)
	}
}

func TestInspectCommand(t *testing.T) {
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetArgs([]string{
		"inspect",
		"--config", filepath.Join(t.TempDir(), "config.toml"),
		"--items", "10",
		"--selected", "5",
		"--scroll", "450,80,-5000",
	})
	if err := root.Execute(); err != nil {
		t.Fatalf("inspect: %v", err)
	}

	rep, err := snapshot.Decode(&out)
	if err != nil {
		t.Fatalf("output is not a snapshot: %v", err)
	}
	if rep.Initial != 5 || rep.Attach.Selected != 5 {
		t.Errorf("initial=%d selected=%d, want 5", rep.Initial, rep.Attach.Selected)
	}
	want := []int{450, 30, -1200}
	if len(rep.Steps) != len(want) {
		t.Fatalf("got %d steps, want %d", len(rep.Steps), len(want))
	}
	for i, w := range want {
		if rep.Steps[i].Applied != w {
			t.Errorf("step %d applied = %d, want %d", i, rep.Steps[i].Applied, w)
		}
	}
}

func TestInspectRejectsBadViewport(t *testing.T) {
	root := newRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetArgs([]string{
		"inspect",
		"--config", filepath.Join(t.TempDir(), "config.toml"),
		"--viewport", "wide",
	})
	if err := root.Execute(); err == nil {
		t.Fatal("expected an error for --viewport wide")
	}
}
