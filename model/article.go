package model

import (
	"time"

	"gorm.io/datatypes"
)

/*

Article is a magazine article. News items are articles with IsNews set.

Id: primary key, UUID generated on creation
AuthorId: id of the Author document, denormalized, not enforced
Content: JSON array of ContentBlock
Lead: short introduction shown in listings
Category: category key, e.g. "culture", "paris". Empty for legacy hot content
Tags: editorial tags, trimmed and de-duplicated
TechTags: slugified free-form tags

IsHotContent: shown in the "hot" strip
IsOnLanding: the single article shown on the landing page, at most one
IsMainInCategory: the main article of its category, at most one per category
IsNews: true for news items
*/
type Article struct {
	Id               string         `json:"id" gorm:"primaryKey"`
	Title            string         `json:"title"`
	Lead             string         `json:"lead"`
	AuthorId         string         `json:"authorId" gorm:"index"`
	Content          datatypes.JSON `json:"content"`
	ImageUrl         string         `json:"imageUrl"`
	ImageCaption     string         `json:"imageCaption"`
	Category         string         `json:"category" gorm:"index"`
	Tags             StringList     `json:"tags"`
	TechTags         StringList     `json:"techTags"`
	IsHotContent     bool           `json:"isHotContent"`
	IsOnLanding      bool           `json:"isOnLanding"`
	IsMainInCategory bool           `json:"isMainInCategory"`
	IsNews           bool           `json:"isNews"`
	CreatedAt        time.Time      `json:"createdAt" gorm:"index"`
	ModifiedAt       *time.Time     `json:"updatedAt,omitempty" gorm:"column:updated_at"`
}

// ArticleWithAuthor is the detail view of an article. Author is null when
// the referenced author document does not exist.
type ArticleWithAuthor struct {
	Article
	Author *Author `json:"author"`
}
