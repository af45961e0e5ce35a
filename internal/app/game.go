package app

import (
	"context"
	"image"
	"log"
	"sync/atomic"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/depeter/jellyflow/internal/cache"
	"github.com/depeter/jellyflow/internal/catalog"
	"github.com/depeter/jellyflow/internal/config"
	"github.com/depeter/jellyflow/internal/gallery"
	"github.com/depeter/jellyflow/internal/ui"
)

// Options carries what the game needs besides the config file.
type Options struct {
	Source   catalog.Source
	PageSize int
	Cache    *cache.ImageCache // nil for sources without artwork
	Layout   gallery.Config
	Initial  int
	Trace    func(format string, args ...any)
}

// Game implements ebiten.Game and manages the overall application.
type Game struct {
	Config  *config.Config
	Catalog *catalog.Catalog
	Screens *ui.ScreenManager

	Width, Height int

	ctx       context.Context
	cancel    context.CancelFunc
	source    catalog.Source
	pageSize  int
	reloading atomic.Bool
}

// NewGame starts loading the catalog and shows a loading screen until the
// first page set arrives.
func NewGame(ctx context.Context, cfg *config.Config, opts Options) *Game {
	ctx, cancel := context.WithCancel(ctx)
	g := &Game{
		Config:   cfg,
		Catalog:  catalog.New(),
		Width:    cfg.UI.Width,
		Height:   cfg.UI.Height,
		ctx:      ctx,
		cancel:   cancel,
		source:   opts.Source,
		pageSize: opts.PageSize,
	}

	done := make(chan error, 1)
	go func() { done <- g.Catalog.Load(ctx, opts.Source, opts.PageSize) }()

	view := ui.NewGalleryView(ctx, g.Catalog, opts.Cache, GalleryArea(g.Width, g.Height), cfg.UI.PosterHeight)
	g.Screens = ui.NewScreenManager(ui.NewLoadingScreen(done, func() (ui.Screen, error) {
		return ui.NewGalleryScreen(view, g.Catalog, opts.Layout, opts.Initial, opts.Trace)
	}))
	return g
}

// GalleryArea is the screen region between the header and the caption band.
func GalleryArea(width, height int) image.Rectangle {
	return image.Rect(0, ui.HeaderHeight, width, height-ui.CaptionHeight)
}

// Close stops background loads.
func (g *Game) Close() {
	g.cancel()
	g.Screens.Close()
}

// reload fetches the catalog again; the gallery keeps its selection.
func (g *Game) reload() {
	if !g.reloading.CompareAndSwap(false, true) {
		return
	}
	go func() {
		defer g.reloading.Store(false)
		if err := g.Catalog.Load(g.ctx, g.source, g.pageSize); err != nil {
			log.Printf("Failed to reload posters: %v", err)
		}
	}()
}

func (g *Game) Update() error {
	// Alt+Enter toggles fullscreen
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) && ebiten.IsKeyPressed(ebiten.KeyAlt) {
		ebiten.SetFullscreen(!ebiten.IsFullscreen())
	}

	// F12 toggles debug overlay
	ui.ToggleDebugOverlay()

	if inpututil.IsKeyJustPressed(ebiten.KeyF5) {
		g.reload()
	}

	if err := g.Screens.Update(); err != nil {
		return err
	}

	ui.UpdateInputState()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(ui.ColorBackground)
	g.Screens.Draw(screen)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.Width, g.Height
}
