package events

const (
	// Content writes, payload is a JSON encoded model.ContentEvent.
	TopicContent = "topic.content"

	DdogContentEventCounter = "maag.content.event"
)
