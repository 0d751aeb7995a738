package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"scrivo/internal/application"
)

var rmYes bool

var rmCmd = &cobra.Command{
	Use:   "rm <path-or-slug>",
	Short: "Delete a post from the repository",
	Args:  cobra.ExactArgs(1),
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

		if !rmYes {
			fmt.Printf("Delete %s? [y/N] ", path)
			line, _ := bufio.NewReader(os.Stdin).ReadString('\n')
			if answer := strings.ToLower(strings.TrimSpace(line)); answer != "y" && answer != "yes" {
				fmt.Println("Aborted")
				return nil
			}
		}

		res, err := application.NewDeletePostCommand(GetRepo(), path, file.SHA).Execute(ctx)
		if err != nil {
			return err
		}
		fmt.Println(res.Message)
		return nil
	},
}

func init() {
	rmCmd.Flags().BoolVarP(&rmYes, "yes", "y", false, "skip the confirmation prompt")
	rootCmd.AddCommand(rmCmd)
}
