package github

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"scrivo/internal/application"
	"scrivo/internal/ports"
)

const defaultBaseURL = "https://api.github.com"

// Client implements ports.ContentRepository against the GitHub
// contents API. Every call carries the session credential; writes are
// keyed by the blob SHA GitHub returned for the revision being
// replaced, so a stale write fails with a conflict instead of
// clobbering someone else's commit.
type Client struct {
	http    *http.Client
	baseURL string
	account string
	repo    string
	token   string
	dir     string // content directory listed for posts
}

// Ensure Client implements ContentRepository
var _ ports.ContentRepository = (*Client)(nil)

// Option configures a Client
type Option func(*Client)

// WithBaseURL points the client at a different API root (tests,
// GitHub Enterprise).
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimSuffix(u, "/") }
}

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// NewClient creates a contents-API client for one session
func NewClient(rec ports.SessionRecord, contentDir string, opts ...Option) *Client {
	c := &Client{
		http:    &http.Client{Timeout: 30 * time.Second},
		baseURL: defaultBaseURL,
		account: rec.Account,
		repo:    rec.Repository,
		token:   rec.Token,
		dir:     contentDir,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// listEntry is one element of a directory listing response
type listEntry struct {
	Name string `json:"name"`
	Path string `json:"path"`
	SHA  string `json:"sha"`
	Type string `json:"type"`
}

// fileResponse is a content-bearing file response
type fileResponse struct {
	Content  string `json:"content"`
	SHA      string `json:"sha"`
	Encoding string `json:"encoding"`
}

// writeResponse is the envelope returned by PUT/DELETE
type writeResponse struct {
	Content *struct {
		SHA string `json:"sha"`
	} `json:"content"`
}

// writeRequest is the JSON body for PUT/DELETE
type writeRequest struct {
	Message string `json:"message"`
	Content string `json:"content,omitempty"`
	SHA     string `json:"sha,omitempty"`
}

// List returns every file in the content directory
func (c *Client) List(ctx context.Context) ([]ports.FileRef, error) {
	body, err := c.do(ctx, http.MethodGet, c.dir, nil)
	if err != nil {
		return nil, err
	}

	var entries []listEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, fmt.Errorf("decoding listing: %w", err)
	}

	refs := make([]ports.FileRef, 0, len(entries))
	for _, e := range entries {
		if e.Type != "file" {
			continue
		}
		refs = append(refs, ports.FileRef{Name: e.Name, Path: e.Path, SHA: e.SHA})
	}
	return refs, nil
}

// Read fetches one file's decoded text and version token
func (c *Client) Read(ctx context.Context, path string) (*ports.RemoteFile, error) {
	body, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	var file fileResponse
	if err := json.Unmarshal(body, &file); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}

	text, err := decodeContent(file.Content)
	if err != nil {
		return nil, fmt.Errorf("decoding %s content: %w", path, err)
	}
	return &ports.RemoteFile{Content: text, SHA: file.SHA}, nil
}

// Create writes a file that must not yet exist
func (c *Client) Create(ctx context.Context, path, text string) (string, error) {
	return c.write(ctx, path, writeRequest{
		Message: fmt.Sprintf("Create %s", path),
		Content: encodeContent(text),
	})
}

// Update overwrites an existing file under its version token
func (c *Client) Update(ctx context.Context, path, text, sha string) (string, error) {
	return c.write(ctx, path, writeRequest{
		Message: fmt.Sprintf("Update %s", path),
		Content: encodeContent(text),
		SHA:     sha,
	})
}

func (c *Client) write(ctx context.Context, path string, req writeRequest) (string, error) {
	body, err := c.do(ctx, http.MethodPut, path, &req)
	if err != nil {
		return "", err
	}

	var resp writeResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("decoding write response for %s: %w", path, err)
	}
	if resp.Content == nil {
		return "", fmt.Errorf("write response for %s carries no content SHA", path)
	}
	return resp.Content.SHA, nil
}

// Delete removes an existing file under its version token
func (c *Client) Delete(ctx context.Context, path, sha string) error {
	_, err := c.do(ctx, http.MethodDelete, path, &writeRequest{
		Message: fmt.Sprintf("Delete %s", path),
		SHA:     sha,
	})
	return err
}

// do performs one API call and maps non-success statuses onto the
// application error taxonomy. No retries happen here; retry policy,
// if any, belongs to the caller.
func (c *Client) do(ctx context.Context, method, contentPath string, payload *writeRequest) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.contentURL(contentPath), reqBody)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "token "+c.token)
	req.Header.Set("Accept", "application/vnd.github+json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, contentPath, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s %s: reading response: %w", method, contentPath, err)
	}

	switch {
	case resp.StatusCode == http.StatusNoContent:
		// Bare success, no body to hand back.
		return nil, nil
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return body, nil
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%s: %w", contentPath, application.ErrNotFound)
	case resp.StatusCode == http.StatusConflict,
		resp.StatusCode == http.StatusUnprocessableEntity:
		return nil, fmt.Errorf("%s: %s: %w", contentPath, apiMessage(body, resp.StatusCode), application.ErrConflict)
	default:
		return nil, &application.TransportError{
			Status:  resp.StatusCode,
			Message: apiMessage(body, resp.StatusCode),
		}
	}
}

func (c *Client) contentURL(contentPath string) string {
	segments := strings.Split(contentPath, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return fmt.Sprintf("%s/repos/%s/%s/contents/%s",
		c.baseURL, url.PathEscape(c.account), url.PathEscape(c.repo), strings.Join(segments, "/"))
}

// apiMessage pulls the human-readable message out of an error body,
// falling back to the HTTP status text.
func apiMessage(body []byte, status int) string {
	var envelope struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Message != "" {
		return envelope.Message
	}
	return http.StatusText(status)
}

// encodeContent base64-encodes UTF-8 text for transport. The encoding
// is byte-exact for the full Unicode range.
func encodeContent(text string) string {
	return base64.StdEncoding.EncodeToString([]byte(text))
}

// decodeContent reverses encodeContent. GitHub wraps encoded content
// in newlines, which base64 rejects, so whitespace is stripped first.
func decodeContent(encoded string) (string, error) {
	compact := strings.Map(func(r rune) rune {
		switch r {
		case '\n', '\r', ' ', '\t':
			return -1
		}
		return r
	}, encoded)
	raw, err := base64.StdEncoding.DecodeString(compact)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}
