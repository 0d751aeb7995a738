package ports

import "context"

// FileRef identifies one remote file in a repository listing
type FileRef struct {
	Name string // e.g., "hello-world.md"
	Path string // e.g., "content/posts/hello-world.md"
	SHA  string // version token of the current remote revision
}

// RemoteFile is the decoded content of one remote file
type RemoteFile struct {
	Content string
	SHA     string
}

// ContentRepository defines the interface for the remote content store.
// Every write is keyed by path and, except for Create, by the version
// token (SHA) of the revision it expects to replace; a mismatch fails
// with a conflict. No operation retries on failure.
type ContentRepository interface {
	// List returns every post file in the content directory
	List(ctx context.Context) ([]FileRef, error)

	// Read fetches one file's text and current version token
	Read(ctx context.Context, path string) (*RemoteFile, error)

	// Create writes a file that must not yet exist and returns the
	// new version token
	Create(ctx context.Context, path, text string) (string, error)

	// Update overwrites an existing file; sha must match the current
	// remote revision. Returns the new version token.
	Update(ctx context.Context, path, text, sha string) (string, error)

	// Delete removes an existing file; sha must match the current
	// remote revision
	Delete(ctx context.Context, path, sha string) error
}
