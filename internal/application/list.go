package application

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"scrivo/internal/ports"
)

// ListPostsResult contains the result of listing posts
type ListPostsResult struct {
	Posts []ports.FileRef
}

// ListPostsCommand lists every post in the remote content directory
type ListPostsCommand struct {
	repo ports.ContentRepository
}

// NewListPostsCommand creates a new ListPostsCommand
func NewListPostsCommand(repo ports.ContentRepository) *ListPostsCommand {
	return &ListPostsCommand{repo: repo}
}

// Execute runs the list command. Posts are sorted by name so dated
// filenames come out in chronological order.
func (c *ListPostsCommand) Execute(ctx context.Context) (*ListPostsResult, error) {
	refs, err := c.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}

	posts := make([]ports.FileRef, 0, len(refs))
	for _, ref := range refs {
		if strings.HasSuffix(ref.Name, ".md") {
			posts = append(posts, ref)
		}
	}
	slices.SortFunc(posts, func(a, b ports.FileRef) int {
		return strings.Compare(a.Name, b.Name)
	})

	return &ListPostsResult{Posts: posts}, nil
}
