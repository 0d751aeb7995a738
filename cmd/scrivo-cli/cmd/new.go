package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"scrivo/internal/application"
)

var newBodyFile string

var newCmd = &cobra.Command{
	Use:   "new <filename>",
	Short: "Create a new post in the repository",
	Long: `Create a post with template front matter. The filename is normalized
(lowercase, hyphens, .md suffix); the raw input becomes the title.

An initial body can be read from a file with --body-file, or from
stdin with --body-file -.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var body string
		switch newBodyFile {
		case "":
		case "-":
			data, err := io.ReadAll(os.Stdin)
			if err != nil {
				return err
			}
			body = string(data)
		default:
			data, err := os.ReadFile(newBodyFile)
			if err != nil {
				return err
			}
			body = string(data)
		}

		res, err := application.NewCreatePostCommand(GetRepo(), contentDir, args[0], body).Execute(context.Background())
		if err != nil {
			return err
		}
		fmt.Println(res.Message)
		return nil
	},
}

func init() {
	newCmd.Flags().StringVarP(&newBodyFile, "body-file", "b", "", "file with the initial body (- for stdin)")
	rootCmd.AddCommand(newCmd)
}
