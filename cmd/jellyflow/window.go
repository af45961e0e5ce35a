package main

import (
	"context"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/depeter/jellyflow/assets/icon"
	"github.com/depeter/jellyflow/internal/app"
	"github.com/depeter/jellyflow/internal/cache"
	"github.com/depeter/jellyflow/internal/config"
	"github.com/depeter/jellyflow/internal/ui"
)

const pageSize = 100

func runWindow(ctx context.Context, gf *globalFlags) error {
	s, err := loadSettings(gf)
	if err != nil {
		return err
	}
	cfg := s.cfg

	if err := ui.InitDefaultFonts(); err != nil {
		return fmt.Errorf("failed to init fonts: %w", err)
	}
	ui.SetDebugOverlay(s.debug)

	src, remote := s.source(gf.items)
	var imgCache *cache.ImageCache
	if remote {
		dir, err := config.CacheDir()
		if err != nil {
			return fmt.Errorf("failed to locate image cache: %w", err)
		}
		imgCache, err = cache.NewImageCache(dir)
		if err != nil {
			return fmt.Errorf("failed to init image cache: %w", err)
		}
	}

	game := app.NewGame(ctx, cfg, app.Options{
		Source:   src,
		PageSize: pageSize,
		Cache:    imgCache,
		Layout:   s.layout,
		Initial:  s.initial,
		Trace:    s.trace(),
	})
	defer game.Close()

	ebiten.SetWindowSize(cfg.UI.Width, cfg.UI.Height)
	ebiten.SetWindowTitle("JellyFlow")
	ebiten.SetWindowIcon(icon.Generate())
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetFullscreen(cfg.UI.Fullscreen)

	if err := ebiten.RunGame(game); err != nil {
		return err
	}
	return nil
}
