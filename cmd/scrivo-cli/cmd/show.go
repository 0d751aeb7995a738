package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"scrivo/internal/application"
	"scrivo/internal/domain"
)

var showCmd = &cobra.Command{
	Use:   "show <path-or-slug>",
	Short: "Print a post's raw text",
	Long: `Print a post's full text, front matter included.

The argument is either a repository path (source/_posts/hello.md) or a
bare slug (hello), which is resolved against the post listing.`,
	Args: cobra.ExactArgs(1),
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
		fmt.Print(file.Content)
		return nil
	},
}

// resolvePath turns a bare slug into a repository path via the post
// listing; anything containing a slash is taken as a path already.
func resolvePath(ctx context.Context, arg string) (string, error) {
	if strings.ContainsRune(arg, '/') {
		return arg, nil
	}
	res, err := application.NewListPostsCommand(GetRepo()).Execute(ctx)
	if err != nil {
		return "", err
	}
	for _, ref := range res.Posts {
		if domain.Slug(ref.Name) == arg {
			return ref.Path, nil
		}
	}
	return "", fmt.Errorf("no post with slug %q", arg)
}

func init() {
	rootCmd.AddCommand(showCmd)
}
