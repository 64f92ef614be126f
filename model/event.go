package model

import (
	"time"

	"gorm.io/datatypes"
)

// EventCategory is the closed set of event kinds.
type EventCategory string

const (
	EventExhibition  EventCategory = "exhibition"
	EventConcert     EventCategory = "concert"
	EventPerformance EventCategory = "performance"
)

const (
	DateTypeSingle   = "single"
	DateTypeDuration = "duration"

	TimeModeNone  = "none"
	TimeModeStart = "start"
	TimeModeRange = "range"
)

/*

Event is a cultural event shown on the events page and the calendar.

StartDate: required
EndDate: optional, never earlier than StartDate
DateType: "single" or "duration", derived from the dates
TimeMode: "none", "start" or "range", tells which of StartTime/EndTime are set
StartTime, EndTime: "HH:MM"
IsOnLanding: at most one event is on the landing page
*/
type Event struct {
	Id           string         `json:"id" gorm:"primaryKey"`
	Title        string         `json:"title"`
	AuthorId     string         `json:"authorId" gorm:"index"`
	Content      datatypes.JSON `json:"content"`
	ImageUrl     string         `json:"imageUrl"`
	ImageCaption string         `json:"imageCaption"`
	Category     EventCategory  `json:"category" gorm:"index"`
	Tags         StringList     `json:"tags"`
	TechTags     StringList     `json:"techTags"`
	StartDate    time.Time      `json:"startDate" gorm:"index"`
	EndDate      *time.Time     `json:"endDate"`
	DateType     string         `json:"dateType"`
	TimeMode     string         `json:"timeMode"`
	StartTime    *string        `json:"startTime"`
	EndTime      *string        `json:"endTime"`
	Address      string         `json:"address"`
	IsOnLanding  bool           `json:"isOnLanding"`
	CreatedAt    time.Time      `json:"createdAt"`
	ModifiedAt   *time.Time     `json:"updatedAt,omitempty" gorm:"column:updated_at"`
}
