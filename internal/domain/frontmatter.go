package domain

import (
	"fmt"
	"log"
	"strings"

	"gopkg.in/yaml.v3"
)

// Delimiter separating front matter from the post body.
const frontMatterDelimiter = "---"

// frontMatter is the YAML wire shape of PostMeta. Field order here is
// the order rendered into the serialized block.
type frontMatter struct {
	Title       string  `yaml:"title"`
	Published   string  `yaml:"published"`
	Updated     string  `yaml:"updated"`
	Description string  `yaml:"description"`
	Tags        tagList `yaml:"tags,flow"`
	Category    string  `yaml:"category"`
}

// tagList decodes from either a YAML sequence or a single
// comma-delimited scalar, normalizing to trimmed non-empty tags.
type tagList []string

func (t *tagList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		*t = SplitTags(value.Value)
		return nil
	case yaml.SequenceNode:
		var items []string
		if err := value.Decode(&items); err != nil {
			return err
		}
		*t = NormalizeTags(items)
		return nil
	default:
		return fmt.Errorf("tags: unsupported YAML node kind %v", value.Kind)
	}
}

// ParseDocument splits raw post text into metadata and body. Absent or
// malformed front matter degrades gracefully: the whole input becomes
// the body and the metadata is empty. Parsing never fails.
func ParseDocument(raw string) (PostMeta, string) {
	text := strings.TrimPrefix(raw, "\ufeff")
	if !strings.HasPrefix(text, frontMatterDelimiter) {
		return PostMeta{}, raw
	}
	rest := text[len(frontMatterDelimiter):]
	end := strings.Index(rest, "\n"+frontMatterDelimiter)
	if end < 0 {
		return PostMeta{}, raw
	}

	block := rest[:end]
	body := rest[end+len("\n"+frontMatterDelimiter):]
	// Drop the delimiter's own line break plus the conventional blank
	// line, but nothing beyond that.
	body = strings.TrimPrefix(body, "\r")
	body = strings.TrimPrefix(body, "\n")
	body = strings.TrimPrefix(body, "\r")
	body = strings.TrimPrefix(body, "\n")

	var fm frontMatter
	if err := yaml.Unmarshal([]byte(block), &fm); err != nil {
		log.Printf("frontmatter: unparseable metadata block: %v", err)
		return PostMeta{}, raw
	}
	return PostMeta{
		Title:       fm.Title,
		Published:   fm.Published,
		Updated:     fm.Updated,
		Description: fm.Description,
		Tags:        fm.Tags,
		Category:    fm.Category,
	}, body
}

// SerializeDocument renders metadata and body into canonical full-post
// text: a front-matter block, a blank line, then the body unchanged.
func SerializeDocument(meta PostMeta, body string) string {
	fm := frontMatter{
		Title:       meta.Title,
		Published:   meta.Published,
		Updated:     meta.Updated,
		Description: meta.Description,
		Tags:        tagList(NormalizeTags(meta.Tags)),
		Category:    meta.Category,
	}
	out, err := yaml.Marshal(&fm)
	if err != nil {
		// A flat struct of strings cannot fail to marshal; keep the
		// body rather than lose the user's text.
		log.Printf("frontmatter: serialize: %v", err)
		return body
	}
	block := stripValueQuotes(string(out), "published", "updated", "tags")
	return frontMatterDelimiter + "\n" + block + frontMatterDelimiter + "\n\n" + body
}

// stripValueQuotes removes quote characters from the values of the
// named keys only. The YAML serializer quotes date-like scalars and
// flow-sequence entries; the rendered front matter wants them bare.
// Free-text fields keep their quotes untouched.
func stripValueQuotes(block string, keys ...string) string {
	lines := strings.Split(block, "\n")
	for i, line := range lines {
		key, value, found := strings.Cut(line, ":")
		if !found {
			continue
		}
		for _, k := range keys {
			if strings.TrimSpace(key) == k {
				lines[i] = key + ":" + strings.ReplaceAll(strings.ReplaceAll(value, `"`, ""), `'`, "")
				break
			}
		}
	}
	return strings.Join(lines, "\n")
}
