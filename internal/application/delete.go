package application

import (
	"context"
	"fmt"

	"scrivo/internal/ports"
)

// DeletePostResult contains the result of a delete operation
type DeletePostResult struct {
	DeletedPath string
	Message     string
}

// DeletePostCommand removes a post from the remote repository
type DeletePostCommand struct {
	repo ports.ContentRepository
	Path string
	SHA  string
}

// NewDeletePostCommand creates a new DeletePostCommand
func NewDeletePostCommand(repo ports.ContentRepository, path, sha string) *DeletePostCommand {
	return &DeletePostCommand{
		repo: repo,
		Path: path,
		SHA:  sha,
	}
}

// Validate checks if the delete operation is valid
func (c *DeletePostCommand) Validate() error {
	if c.Path == "" {
		return &ValidationError{
			Field:   "path",
			Message: "path is required",
		}
	}
	return ValidateSHA(c.Path, c.SHA)
}

// Execute runs the delete command
func (c *DeletePostCommand) Execute(ctx context.Context) (*DeletePostResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	if err := c.repo.Delete(ctx, c.Path, c.SHA); err != nil {
		return nil, fmt.Errorf("failed to delete %s: %w", c.Path, err)
	}

	return &DeletePostResult{
		DeletedPath: c.Path,
		Message:     fmt.Sprintf("Deleted %s", c.Path),
	}, nil
}
