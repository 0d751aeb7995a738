package application

import (
	"context"
	"fmt"

	"scrivo/internal/domain"
	"scrivo/internal/ports"
)

// SavePostResult contains the result of persisting a post remotely
type SavePostResult struct {
	Path    string
	SHA     string // version token of the new remote revision
	Message string
}

// SavePostCommand writes a post to the remote repository. A new post
// (no remote counterpart yet) is created; an existing one is updated
// under its held version token.
type SavePostCommand struct {
	repo  ports.ContentRepository
	Path  string
	Meta  domain.PostMeta
	Body  string
	SHA   string
	IsNew bool
}

// NewSavePostCommand creates a new SavePostCommand
func NewSavePostCommand(repo ports.ContentRepository, path string, meta domain.PostMeta, body, sha string, isNew bool) *SavePostCommand {
	return &SavePostCommand{
		repo:  repo,
		Path:  path,
		Meta:  meta,
		Body:  body,
		SHA:   sha,
		IsNew: isNew,
	}
}

// Validate checks if the save operation is valid. An update without a
// held version token fails here, before any remote call is attempted.
func (c *SavePostCommand) Validate() error {
	if c.Path == "" {
		return &ValidationError{
			Field:   "path",
			Message: "path is required",
		}
	}
	if !c.IsNew {
		return ValidateSHA(c.Path, c.SHA)
	}
	return nil
}

// Execute runs the save command
func (c *SavePostCommand) Execute(ctx context.Context) (*SavePostResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	text := domain.SerializeDocument(c.Meta, c.Body)

	var (
		sha string
		err error
	)
	if c.IsNew {
		sha, err = c.repo.Create(ctx, c.Path, text)
	} else {
		sha, err = c.repo.Update(ctx, c.Path, text, c.SHA)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to save %s: %w", c.Path, err)
	}

	return &SavePostResult{
		Path:    c.Path,
		SHA:     sha,
		Message: fmt.Sprintf("Saved %s", c.Path),
	}, nil
}
