package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"scrivo/internal/application"
	"scrivo/internal/domain"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List posts in the repository",
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := application.NewListPostsCommand(GetRepo()).Execute(context.Background())
		if err != nil {
			return err
		}
		for _, ref := range res.Posts {
			fmt.Printf("%-40s %s\n", domain.Slug(ref.Name), ref.Path)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
