package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"scrivo/internal/adapters/github"
	"scrivo/internal/adapters/sqlite"
	"scrivo/internal/application"
	"scrivo/internal/config"
	"scrivo/internal/ports"
)

var (
	contentDir string
	store      *sqlite.Store
	sessionRec ports.SessionRecord
	repo       ports.ContentRepository
)

var rootCmd = &cobra.Command{
	Use:   "scrivo-cli",
	Short: "CLI for editing a Markdown blog repository",
	Long: `scrivo-cli manages the Markdown posts of a blog hosted in a GitHub
repository: list, show, create, rename, and delete posts, and inspect
locally stored drafts.

Sign in once with "scrivo-cli login"; the session is shared with the
scrivo TUI and MCP server.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for help commands
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}
		var err error
		store, err = sqlite.Open(config.DatabasePath())
		if err != nil {
			return err
		}
		if cmd.Name() == "login" {
			return nil
		}
		rec, ok, err := store.Sessions().Load()
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: run \"scrivo-cli login\" first", application.ErrNoSession)
		}
		sessionRec = rec
		repo = github.NewClient(rec, contentDir)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if store != nil {
			store.Close()
		}
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&contentDir, "content-dir", "c", config.ContentDir(), "repository directory holding the posts")
}

// GetRepo returns the initialized content repository
func GetRepo() ports.ContentRepository {
	return repo
}
