package domain

import (
	"reflect"
	"testing"
	"time"
)

func TestSplitTags(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"simple", "a,b,c", []string{"a", "b", "c"}},
		{"whitespace trimmed", "a, b , c", []string{"a", "b", "c"}},
		{"empty entries dropped", "a,,b,  ,c,", []string{"a", "b", "c"}},
		{"empty string", "", nil},
		{"only separators", ", ,", nil},
		{"single tag", "go", []string{"go"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitTags(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SplitTags(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeFilename(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "hello", "hello.md"},
		{"already suffixed", "hello.md", "hello.md"},
		{"uppercase", "Hello World", "hello-world.md"},
		{"inner whitespace collapsed", "my   new\tpost", "my-new-post.md"},
		{"disallowed stripped", "what?! a post:", "what-a-post.md"},
		{"unicode stripped", "café", "caf.md"},
		{"empty", "", ""},
		{"only disallowed", "???", ""},
		{"surrounding whitespace", "  draft  ", "draft.md"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeFilename(tt.input); got != tt.want {
				t.Errorf("NormalizeFilename(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSlug(t *testing.T) {
	tests := []struct {
		name string
		path string
		want string
	}{
		{"full path", "content/posts/hello-world.md", "hello-world"},
		{"bare filename", "hello.md", "hello"},
		{"no extension", "content/posts/readme", "readme"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Slug(tt.path); got != tt.want {
				t.Errorf("Slug(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestNewPostMeta(t *testing.T) {
	now := time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)
	meta := NewPostMeta("My Raw Title?!", now)

	if meta.Title != "My Raw Title?!" {
		t.Errorf("title = %q, want raw input preserved", meta.Title)
	}
	if meta.Published != "2024-03-15" || meta.Updated != "2024-03-15" {
		t.Errorf("dates = %q/%q, want 2024-03-15", meta.Published, meta.Updated)
	}
	if len(meta.Tags) != 0 || meta.Description != "" || meta.Category != "" {
		t.Errorf("expected empty tags/description/category, got %+v", meta)
	}
}
