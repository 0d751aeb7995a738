package domain

import (
	"regexp"
	"strings"
	"time"
)

// PostMeta is the front-matter metadata of a blog post.
type PostMeta struct {
	Title       string
	Published   string // e.g., "2024-01-01"
	Updated     string
	Description string
	Tags        []string
	Category    string
}

// DateFormat is the layout used for published/updated fields.
const DateFormat = "2006-01-02"

// NewPostMeta returns template metadata for a freshly created post.
// The title keeps the user's raw input; dates are set to today.
func NewPostMeta(title string, now time.Time) PostMeta {
	date := now.Format(DateFormat)
	return PostMeta{
		Title:     title,
		Published: date,
		Updated:   date,
	}
}

// SplitTags turns a comma-delimited tag string into an ordered list of
// trimmed, non-empty tags. Already-clean input passes through unchanged.
func SplitTags(s string) []string {
	var tags []string
	for _, part := range strings.Split(s, ",") {
		if tag := strings.TrimSpace(part); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// JoinTags renders a tag list back into the comma-delimited editing form.
func JoinTags(tags []string) string {
	return strings.Join(tags, ", ")
}

// NormalizeTags trims every tag and drops empty entries, preserving order.
func NormalizeTags(tags []string) []string {
	var out []string
	for _, tag := range tags {
		if t := strings.TrimSpace(tag); t != "" {
			out = append(out, t)
		}
	}
	return out
}

var disallowedFilenameChars = regexp.MustCompile(`[^a-z0-9._-]`)

// NormalizeFilename converts free-form user input into a safe post
// filename: lowercase, whitespace collapsed to hyphens, disallowed
// characters stripped, and a .md suffix enforced. An empty or
// all-disallowed input yields "".
func NormalizeFilename(input string) string {
	name := strings.ToLower(strings.TrimSpace(input))
	name = strings.TrimSuffix(name, ".md")
	name = strings.Join(strings.Fields(name), "-")
	name = disallowedFilenameChars.ReplaceAllString(name, "")
	name = strings.Trim(name, "-.")
	if name == "" {
		return ""
	}
	return name + ".md"
}

// Slug derives the public URL identifier of a post from its path:
// the base filename without the .md extension.
func Slug(path string) string {
	name := path
	if idx := strings.LastIndexByte(name, '/'); idx >= 0 {
		name = name[idx+1:]
	}
	return strings.TrimSuffix(name, ".md")
}
