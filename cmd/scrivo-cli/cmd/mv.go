package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"scrivo/internal/application"
)

var mvCmd = &cobra.Command{
	Use:   "mv <path-or-slug> <new-filename>",
	Short: "Rename a post",
	Long: `Rename a post. The new filename is normalized, and the post is
created at the new path before the old one is removed, so a failure
never loses content.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		path, err := resolvePath(ctx, args[0])
		if err != nil {
			return err
		}

		file, err := GetRepo().Read(ctx, path)
		if err != nil {
			return err
		}

		res, err := application.NewRenamePostCommand(GetRepo(), path, args[1], file.SHA, file.Content).Execute(ctx)
		if err != nil {
			return err
		}
		fmt.Println(res.Message)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(mvCmd)
}
