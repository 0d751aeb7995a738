package application

import (
	"context"
	"fmt"
	"path"
	"time"

	"scrivo/internal/domain"
	"scrivo/internal/ports"
)

// CreatePostResult contains the result of creating a post remotely
type CreatePostResult struct {
	Path    string
	SHA     string
	Meta    domain.PostMeta
	Message string
}

// CreatePostCommand creates a brand-new post directly on the remote
// repository, populated from the template defaults. This is the
// headless (CLI/MCP) path; the interactive editor defers the remote
// create until the first save.
type CreatePostCommand struct {
	repo     ports.ContentRepository
	Dir      string // content directory prefix
	Filename string // raw user input
	Body     string
	now      func() time.Time
}

// NewCreatePostCommand creates a new CreatePostCommand
func NewCreatePostCommand(repo ports.ContentRepository, dir, filename, body string) *CreatePostCommand {
	return &CreatePostCommand{
		repo:     repo,
		Dir:      dir,
		Filename: filename,
		Body:     body,
		now:      time.Now,
	}
}

// Validate checks if the create operation is valid
func (c *CreatePostCommand) Validate() error {
	_, err := ValidateFilename(c.Filename)
	return err
}

// Execute runs the create command
func (c *CreatePostCommand) Execute(ctx context.Context) (*CreatePostResult, error) {
	name, err := ValidateFilename(c.Filename)
	if err != nil {
		return nil, err
	}

	postPath := path.Join(c.Dir, name)
	meta := domain.NewPostMeta(c.Filename, c.now())
	text := domain.SerializeDocument(meta, c.Body)

	sha, err := c.repo.Create(ctx, postPath, text)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", postPath, err)
	}

	return &CreatePostResult{
		Path:    postPath,
		SHA:     sha,
		Meta:    meta,
		Message: fmt.Sprintf("Created %s", postPath),
	}, nil
}
