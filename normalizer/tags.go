package normalizer

import (
	"regexp"
	"strings"
)

var (
	nonSlugChars   = regexp.MustCompile(`[^a-z0-9\s-]`)
	whitespaceRuns = regexp.MustCompile(`\s+`)
	dashRuns       = regexp.MustCompile(`-+`)
)

// NormalizeStringList trims every entry and drops the empty ones. The result
// is never nil.
func NormalizeStringList(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// TagOption is a tag offered to editors. Title is what the dashboard shows
// and what old documents stored, Value is what gets persisted now.
type TagOption struct {
	Title string `yaml:"title" json:"title"`
	Value string `yaml:"value" json:"value"`
}

// TagCatalog lists the tag options of each category key.
type TagCatalog map[string][]TagOption

// LegacyTagMap maps the titles of the tags of category to their values. It
// is empty for unknown categories.
func (c TagCatalog) LegacyTagMap(category string) map[string]string {
	options := c[category]
	m := make(map[string]string, len(options))
	for _, o := range options {
		if o.Title != "" && o.Value != "" {
			m[o.Title] = o.Value
		}
	}
	return m
}

// NormalizeTags trims, drops empty, maps legacy titles to values and
// de-duplicates tags, keeping the first occurrence order. legacy may be nil.
func NormalizeTags(values []string, legacy map[string]string) []string {
	out := NormalizeStringList(values)
	for i, v := range out {
		if mapped, ok := legacy[v]; ok {
			out[i] = mapped
		}
	}
	return dedupe(out)
}

// SlugifyTag turns a free-form tag into a lowercase ASCII slug. Characters
// outside [a-z0-9], whitespace and dashes are removed.
func SlugifyTag(value string) string {
	slug := strings.ToLower(strings.TrimSpace(value))
	slug = nonSlugChars.ReplaceAllString(slug, "")
	slug = whitespaceRuns.ReplaceAllString(slug, "-")
	slug = dashRuns.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

// NormalizeTechTags slugifies every tech tag and de-duplicates the result.
func NormalizeTechTags(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if slug := SlugifyTag(v); slug != "" {
			out = append(out, slug)
		}
	}
	return dedupe(out)
}

func dedupe(values []string) []string {
	seen := make(map[string]bool, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}
