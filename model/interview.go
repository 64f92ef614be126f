package model

import (
	"time"

	"gorm.io/datatypes"
)

type Interview struct {
	Id           string         `json:"id" gorm:"primaryKey"`
	Title        string         `json:"title"`
	Interviewee  string         `json:"interviewee"`
	Lead         string         `json:"lead"`
	MainQuote    string         `json:"mainQuote"`
	AuthorId     string         `json:"authorId" gorm:"index"`
	Content      datatypes.JSON `json:"content"`
	ImageUrl     string         `json:"imageUrl"`
	ImageCaption string         `json:"imageCaption"`
	Tags         StringList     `json:"tags"`
	CreatedAt    time.Time      `json:"createdAt" gorm:"index"`
	ModifiedAt   *time.Time     `json:"updatedAt,omitempty" gorm:"column:updated_at"`
}

type InterviewWithAuthor struct {
	Interview
	Author *Author `json:"author"`
}
