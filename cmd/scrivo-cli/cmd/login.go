package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"scrivo/internal/adapters/github"
	"scrivo/internal/application"
	"scrivo/internal/ports"
)

var loginToken string

var loginCmd = &cobra.Command{
	Use:   "login <account> <repository>",
	Short: "Sign in to a blog repository",
	Long: `Verify access to the given repository and remember the session.

The personal access token is taken from --token or the SCRIVO_TOKEN
environment variable.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		token := loginToken
		if token == "" {
			token = os.Getenv("SCRIVO_TOKEN")
		}
		if token == "" {
			return fmt.Errorf("no token: pass --token or set SCRIVO_TOKEN")
		}

		rec := ports.SessionRecord{Account: args[0], Repository: args[1], Token: token}
		client := github.NewClient(rec, contentDir)
		if err := application.Probe(context.Background(), client); err != nil {
			return err
		}

		if err := store.Sessions().Save(rec); err != nil {
			return err
		}
		fmt.Printf("Signed in to %s/%s\n", rec.Account, rec.Repository)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the remembered session",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := store.Sessions().Clear(); err != nil {
			return err
		}
		fmt.Println("Signed out")
		return nil
	},
}

func init() {
	loginCmd.Flags().StringVarP(&loginToken, "token", "t", "", "personal access token")
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
}
