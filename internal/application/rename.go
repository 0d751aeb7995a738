package application

import (
	"context"
	"fmt"
	"path"

	"scrivo/internal/ports"
)

// RenamePostResult contains the result of a rename operation
type RenamePostResult struct {
	OldPath string
	NewPath string
	NewSHA  string
	Message string
}

// RenamePostCommand moves a post to a new filename in the same
// directory. There is no atomic remote rename, so this is two phases:
// create at the new path first, then delete the old one. A failure in
// the second phase leaves the post present at both paths, reported as
// a RenameIncompleteError.
type RenamePostCommand struct {
	repo        ports.ContentRepository
	OldPath     string
	NewFilename string // raw user input, normalized during Validate
	SHA         string
	Text        string // full serialized document to carry over
}

// NewRenamePostCommand creates a new RenamePostCommand
func NewRenamePostCommand(repo ports.ContentRepository, oldPath, newFilename, sha, text string) *RenamePostCommand {
	return &RenamePostCommand{
		repo:        repo,
		OldPath:     oldPath,
		NewFilename: newFilename,
		SHA:         sha,
		Text:        text,
	}
}

// NewPath returns the normalized destination path, or an error when
// the new filename is unusable or unchanged.
func (c *RenamePostCommand) NewPath() (string, error) {
	name, err := ValidateFilename(c.NewFilename)
	if err != nil {
		return "", err
	}
	newPath := path.Join(path.Dir(c.OldPath), name)
	if newPath == c.OldPath {
		return "", &ValidationError{
			Field:   "filename",
			Message: "new filename is the same as the current one",
		}
	}
	return newPath, nil
}

// Validate checks if the rename operation is valid
func (c *RenamePostCommand) Validate() error {
	if c.OldPath == "" {
		return &ValidationError{
			Field:   "path",
			Message: "path is required",
		}
	}
	if _, err := c.NewPath(); err != nil {
		return err
	}
	return ValidateSHA(c.OldPath, c.SHA)
}

// Execute runs the rename command
func (c *RenamePostCommand) Execute(ctx context.Context) (*RenamePostResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	newPath, err := c.NewPath()
	if err != nil {
		return nil, err
	}

	newSHA, err := c.repo.Create(ctx, newPath, c.Text)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", newPath, err)
	}

	if err := c.repo.Delete(ctx, c.OldPath, c.SHA); err != nil {
		return nil, &RenameIncompleteError{
			OldPath: c.OldPath,
			NewPath: newPath,
			NewSHA:  newSHA,
			Cause:   err,
		}
	}

	return &RenamePostResult{
		OldPath: c.OldPath,
		NewPath: newPath,
		NewSHA:  newSHA,
		Message: fmt.Sprintf("Renamed %s to %s", c.OldPath, newPath),
	}, nil
}
