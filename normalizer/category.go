package normalizer

import (
	"strings"

	"github.com/Luismorlan/maag/model"
)

const (
	// LegacyHotContentCategory used to be a category; it is a flag now.
	LegacyHotContentCategory = "hotContent"
	// NewsFallbackCategory is where legacy "news" articles end up.
	NewsFallbackCategory = "culture"
)

// articleCategoryLabels maps a category key to its display label. Old
// documents stored the label instead of the key.
var articleCategoryLabels = map[string]string{
	"culture": "Культура",
	"paris":   "Париж",
}

var legacyNewsCategories = map[string]bool{
	"news":    true,
	"новости": true,
}

var eventCategories = map[string]model.EventCategory{
	"exhibition":  model.EventExhibition,
	"concert":     model.EventConcert,
	"performance": model.EventPerformance,
	"выставка":    model.EventExhibition,
	"концерт":     model.EventConcert,
	"спектакль":   model.EventPerformance,
}

var eventCategoryLabels = map[model.EventCategory]string{
	model.EventExhibition:  "Выставка",
	model.EventConcert:     "Концерт",
	model.EventPerformance: "Спектакль",
}

// ArticleCategory is the outcome of normalizing a raw article category.
type ArticleCategory struct {
	Category     string
	IsHotContent bool
	IsNews       bool
}

// NormalizeArticleCategory resolves legacy category values:
//   - "hotContent" becomes an empty category with the hot flag
//   - "news" / "новости" become "culture" with the news flag
//   - display labels become keys
func NormalizeArticleCategory(raw string) ArticleCategory {
	trimmed := strings.TrimSpace(raw)
	if trimmed == LegacyHotContentCategory {
		return ArticleCategory{IsHotContent: true}
	}
	if IsLegacyNewsCategory(trimmed) {
		return ArticleCategory{Category: NewsFallbackCategory, IsNews: true}
	}
	for key, label := range articleCategoryLabels {
		if trimmed == label {
			return ArticleCategory{Category: key}
		}
	}
	return ArticleCategory{Category: trimmed}
}

// IsLegacyNewsCategory reports whether the category predates the isNews flag.
func IsLegacyNewsCategory(raw string) bool {
	return legacyNewsCategories[strings.ToLower(strings.TrimSpace(raw))]
}

// NormalizeEventCategory accepts English keys and Russian labels, case
// insensitive.
func NormalizeEventCategory(raw string) (model.EventCategory, bool) {
	c, ok := eventCategories[strings.ToLower(strings.TrimSpace(raw))]
	return c, ok
}

func EventCategoryLabel(c model.EventCategory) string {
	return eventCategoryLabels[c]
}
