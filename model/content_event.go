package model

import "time"

type ContentKind string

const (
	KindArticle      ContentKind = "article"
	KindEvent        ContentKind = "event"
	KindInterview    ContentKind = "interview"
	KindFlipper      ContentKind = "flipper"
	KindAuthor       ContentKind = "author"
	KindSubscription ContentKind = "subscription"
)

type ContentAction string

const (
	ActionCreated ContentAction = "created"
	ActionUpdated ContentAction = "updated"
	ActionDeleted ContentAction = "deleted"
)

// ContentEvent is published on the event bus after every successful write.
// MediaUrls carries the images owned by the document so that consumers can
// clean them up after a deletion. Status is only set for subscription
// events.
type ContentEvent struct {
	Kind      ContentKind   `json:"kind"`
	Action    ContentAction `json:"action"`
	Id        string        `json:"id"`
	Title     string        `json:"title"`
	MediaUrls []string      `json:"mediaUrls,omitempty"`
	Status    string        `json:"status,omitempty"`
	At        time.Time     `json:"at"`
}
