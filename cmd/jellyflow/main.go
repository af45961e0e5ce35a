package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/depeter/jellyflow/internal/catalog"
	"github.com/depeter/jellyflow/internal/config"
	"github.com/depeter/jellyflow/internal/gallery"
	"github.com/depeter/jellyflow/internal/jellyfin"
)

var version = "0.1.0"

// demoCount is the collection size when no server is configured.
const demoCount = 200

// globalFlags are shared by every subcommand.
type globalFlags struct {
	configPath  string
	orientation string
	infinite    bool
	selected    int
	items       int
	debug       bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	gf := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:   "jellyflow",
		Short: "JellyFlow - a scrolling poster gallery for Jellyfin",
		Long: `JellyFlow shows a Jellyfin library as a gallery of posters that shrink
away from the center. Without a configured server it shows generated posters.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWindow(cmd.Context(), gf)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&gf.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/jellyflow/config.toml)")
	pf.StringVar(&gf.orientation, "orientation", "", "override gallery orientation: horizontal or vertical")
	pf.BoolVar(&gf.infinite, "infinite", false, "scroll without bounds")
	pf.IntVar(&gf.selected, "selected", -1, "index to center first (default from config)")
	pf.IntVar(&gf.items, "items", 0, "show this many generated posters instead of a library")
	pf.BoolVar(&gf.debug, "debug", false, "trace layout decisions and show the debug overlay")

	rootCmd.AddCommand(runCmd(gf))
	rootCmd.AddCommand(tuiCmd(gf))
	rootCmd.AddCommand(inspectCmd(gf))
	rootCmd.AddCommand(loginCmd(gf))
	return rootCmd
}

func runCmd(gf *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Open the gallery window",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWindow(cmd.Context(), gf)
		},
	}
}

// settings is the loaded config with command line overrides applied.
type settings struct {
	cfg     *config.Config
	path    string
	layout  gallery.Config
	initial int
	debug   bool
}

func loadSettings(gf *globalFlags) (*settings, error) {
	path := gf.configPath
	if path == "" {
		p, err := config.ConfigPath()
		if err != nil {
			return nil, fmt.Errorf("failed to locate config: %w", err)
		}
		path = p
	}
	cfg, err := config.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	s, err := applyFlags(cfg, gf)
	if err != nil {
		return nil, err
	}
	s.path = path
	return s, nil
}

// applyFlags folds the command line into cfg and validates the layout.
func applyFlags(cfg *config.Config, gf *globalFlags) (*settings, error) {
	if gf.orientation != "" {
		cfg.Gallery.Orientation = gf.orientation
	}
	if gf.infinite {
		cfg.Gallery.Infinite = true
	}
	if gf.selected >= 0 {
		cfg.Gallery.InitialIndex = gf.selected
	}
	if gf.debug {
		cfg.UI.Debug = true
	}
	layout, err := cfg.Layout()
	if err != nil {
		return nil, fmt.Errorf("invalid gallery settings: %w", err)
	}
	return &settings{
		cfg:     cfg,
		layout:  layout,
		initial: cfg.Gallery.InitialIndex,
		debug:   cfg.UI.Debug,
	}, nil
}

// trace returns the layout trace hook, nil unless debugging.
func (s *settings) trace() func(string, ...any) {
	if !s.debug {
		return nil
	}
	return log.Printf
}

// source picks where posters come from: generated ones when --items is
// set or no server is configured, the Jellyfin library otherwise.
func (s *settings) source(items int) (catalog.Source, bool) {
	if items > 0 {
		return catalog.DemoSource{Count: items}, false
	}
	if !s.cfg.HasServer() {
		log.Printf("No Jellyfin server configured, showing %d generated posters", demoCount)
		return catalog.DemoSource{Count: demoCount}, false
	}
	return &catalog.JellyfinSource{
		Client: jellyfin.Resume(jellyfin.Session{
			ServerURL: s.cfg.Server.URL,
			Token:     s.cfg.Server.Token,
			UserID:    s.cfg.Server.UserID,
		}),
		LibraryID:   s.cfg.Server.LibraryID,
		PosterWidth: s.cfg.UI.PosterWidth,
	}, true
}
