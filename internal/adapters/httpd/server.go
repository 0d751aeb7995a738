// Package httpd serves raw post Markdown by slug: the read-only
// companion endpoint for downloading a published post's source file.
package httpd

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"scrivo/internal/domain"
)

// Handler resolves slugs against a local directory of Markdown posts
type Handler struct {
	contentDir string
}

// NewHandler creates a handler serving posts from contentDir
func NewHandler(contentDir string) *Handler {
	return &Handler{contentDir: contentDir}
}

// Routes returns the HTTP mux for the download endpoint
func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /posts/{slug}", h.handleDownload)
	return mux
}

func (h *Handler) handleDownload(w http.ResponseWriter, r *http.Request) {
	slug := strings.TrimSuffix(r.PathValue("slug"), ".md")
	if slug == "" {
		http.NotFound(w, r)
		return
	}

	path, err := h.resolve(slug)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			http.NotFound(w, r)
			return
		}
		log.Printf("httpd: resolving %q: %v", slug, err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	text, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			http.NotFound(w, r)
			return
		}
		log.Printf("httpd: reading %s: %v", path, err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", slug+".md"))
	w.Write(text)
}

// resolve locates the post file whose filename matches the slug
func (h *Handler) resolve(slug string) (string, error) {
	entries, err := os.ReadDir(h.contentDir)
	if err != nil {
		return "", err
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}
		if domain.Slug(entry.Name()) == slug {
			return filepath.Join(h.contentDir, entry.Name()), nil
		}
	}
	return "", fs.ErrNotExist
}
