package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/depeter/jellyflow/internal/jellyfin"
)

func loginCmd(gf *globalFlags) *cobra.Command {
	var server, user, password, library string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in to a Jellyfin server and save the token",
		Long: `Authenticates against a Jellyfin server and stores the access token in
the config file. --library picks the library to browse by name or ID; without
it the available libraries are listed and every movie and series is shown.
The password may also be given in JELLYFLOW_PASSWORD.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSettings(gf)
			if err != nil {
				return err
			}
			if server == "" {
				server = s.cfg.Server.URL
			}
			if server == "" || user == "" {
				return fmt.Errorf("--server and --user are required")
			}
			if password == "" {
				password = os.Getenv("JELLYFLOW_PASSWORD")
			}

			ctx := cmd.Context()
			client := jellyfin.NewClient(server)
			session, err := client.Login(ctx, user, password)
			if err != nil {
				return fmt.Errorf("login failed: %w", err)
			}
			views, err := client.GetViews(ctx)
			if err != nil {
				return fmt.Errorf("failed to list libraries: %w", err)
			}

			out := cmd.OutOrStdout()
			libraryID := ""
			if library != "" {
				v, ok := findView(views, library)
				if !ok {
					return fmt.Errorf("no library named %q", library)
				}
				libraryID = v.ID
				fmt.Fprintf(out, "Browsing library %s\n", v.Name)
			} else {
				fmt.Fprintln(out, "Libraries:")
				for _, v := range views {
					fmt.Fprintf(out, "  %s  %s\n", v.ID, v.Name)
				}
			}

			s.cfg.Server.URL = session.ServerURL
			s.cfg.Server.Username = user
			s.cfg.Server.Token = session.Token
			s.cfg.Server.UserID = session.UserID
			s.cfg.Server.LibraryID = libraryID
			if err := s.cfg.SaveFile(s.path); err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}
			fmt.Fprintf(out, "Signed in as %s, saved to %s\n", user, s.path)
			return nil
		},
	}

	cmd.Flags().StringVar(&server, "server", "", "Jellyfin server URL (default from config)")
	cmd.Flags().StringVarP(&user, "user", "u", "", "user name")
	cmd.Flags().StringVarP(&password, "password", "p", "", "password")
	cmd.Flags().StringVar(&library, "library", "", "library to browse, by name or ID")
	return cmd
}

func findView(views []jellyfin.MediaItem, key string) (jellyfin.MediaItem, bool) {
	for _, v := range views {
		if v.ID == key || strings.EqualFold(v.Name, key) {
			return v, true
		}
	}
	return jellyfin.MediaItem{}, false
}
