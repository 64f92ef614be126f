package model

import "time"

// Flipper is a carousel of image slides with captions.
type Flipper struct {
	Id              string     `json:"id" gorm:"primaryKey"`
	Title           string     `json:"title"`
	Category        string     `json:"category"`
	Tags            StringList `json:"tags"`
	TechTags        StringList `json:"techTags"`
	CarouselContent Slides     `json:"carouselContent"`
	CreatedAt       time.Time  `json:"createdAt"`
	ModifiedAt      *time.Time `json:"updatedAt,omitempty" gorm:"column:updated_at"`
}
