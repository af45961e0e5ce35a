package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/depeter/jellyflow/internal/catalog"
	"github.com/depeter/jellyflow/internal/config"
	"github.com/depeter/jellyflow/internal/termview"
)

func tuiCmd(gf *globalFlags) *cobra.Command {
	var posterRows int

	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Browse the gallery in the terminal",
		Long: `Lays out the same gallery on a grid of terminal cells. With --debug the
layout trace is written to jellyflow.log in the config directory.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSettings(gf)
			if err != nil {
				return err
			}

			if s.debug {
				dir, err := config.ConfigDir()
				if err != nil {
					return err
				}
				if err := os.MkdirAll(dir, 0755); err != nil {
					return err
				}
				f, err := tea.LogToFile(filepath.Join(dir, "jellyflow.log"), "jellyflow")
				if err != nil {
					return fmt.Errorf("failed to open log file: %w", err)
				}
				defer f.Close()
			} else {
				// Log output would tear the alt screen.
				log.SetOutput(io.Discard)
			}

			src, _ := s.source(gf.items)
			m, err := termview.New(cmd.Context(), catalog.New(), s.layout, termview.Options{
				Source:     src,
				PosterRows: posterRows,
				Initial:    s.initial,
				Trace:      s.trace(),
			})
			if err != nil {
				return err
			}

			final, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run()
			if err != nil {
				return err
			}
			if fm, ok := final.(termview.Model); ok && fm.Err() != nil {
				return fm.Err()
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&posterRows, "poster-rows", termview.DefaultPosterRows, "height of the centered poster in terminal rows")
	return cmd
}
