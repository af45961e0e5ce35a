package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/depeter/jellyflow/internal/gallery"
	"github.com/depeter/jellyflow/internal/snapshot"
)

func inspectCmd(gf *globalFlags) *cobra.Command {
	var (
		viewport string
		item     string
		scroll   []int
	)

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Print a scripted layout session as YAML",
		Long: `Lays out --items uniform items without a window, applies each --scroll
delta in order and prints the engine state after every step.`,
		Example: `  jellyflow inspect --items 10 --selected 5 --scroll 450,80,-5000
  jellyflow inspect --orientation vertical --viewport 400x1000 --item 300x200`,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSettings(gf)
			if err != nil {
				return err
			}
			vp, err := parseSize(viewport)
			if err != nil {
				return fmt.Errorf("invalid --viewport: %w", err)
			}
			sz, err := parseSize(item)
			if err != nil {
				return fmt.Errorf("invalid --item: %w", err)
			}
			count := gf.items
			if count <= 0 {
				count = 20
			}

			fx := &snapshot.Fixture{Count: count, Item: sz, Viewport: vp}
			rep, err := snapshot.Run(s.layout, fx, s.initial, scroll, s.trace())
			if err != nil {
				return err
			}
			return snapshot.Encode(cmd.OutOrStdout(), rep)
		},
	}

	cmd.Flags().StringVar(&viewport, "viewport", "1080x400", "viewport size in pixels, WxH")
	cmd.Flags().StringVar(&item, "item", "200x300", "item size in pixels, WxH")
	cmd.Flags().IntSliceVar(&scroll, "scroll", nil, "scroll deltas to apply in order")
	return cmd
}

// parseSize reads "WxH".
func parseSize(s string) (gallery.Size, error) {
	w, h, ok := strings.Cut(strings.ToLower(strings.TrimSpace(s)), "x")
	if !ok {
		return gallery.Size{}, fmt.Errorf("%q is not WxH", s)
	}
	var sz gallery.Size
	if _, err := fmt.Sscanf(w+" "+h, "%d %d", &sz.W, &sz.H); err != nil {
		return gallery.Size{}, fmt.Errorf("%q is not WxH: %w", s, err)
	}
	if sz.W <= 0 || sz.H <= 0 {
		return gallery.Size{}, fmt.Errorf("%q must be positive", s)
	}
	return sz, nil
}
