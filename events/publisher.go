package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Luismorlan/maag/model"
	Logger "github.com/Luismorlan/maag/utils/log"
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/pkg/errors"
)

// Publisher announces content writes.
type Publisher interface {
	Publish(e model.ContentEvent) error
}

type BusPublisher struct {
	EventBus *gochannel.GoChannel
	// Now is replaced in tests.
	Now func() time.Time
}

func NewBusPublisher(e *gochannel.GoChannel) *BusPublisher {
	return &BusPublisher{EventBus: e, Now: time.Now}
}

func (p *BusPublisher) Publish(e model.ContentEvent) error {
	if e.At.IsZero() {
		e.At = p.Now().UTC()
	}
	data, err := json.Marshal(e)
	if err != nil {
		return errors.Wrap(err, "fail to encode content event")
	}
	msg := message.NewMessage(watermill.NewUUID(), data)
	return errors.Wrap(p.EventBus.Publish(TopicContent, msg), "fail to publish content event")
}

func DecodeContentEvent(msg *message.Message) (model.ContentEvent, error) {
	var e model.ContentEvent
	err := json.Unmarshal(msg.Payload, &e)
	return e, errors.Wrap(err, "fail to decode content event")
}

// NopPublisher drops every event.
type NopPublisher struct{}

func (NopPublisher) Publish(model.ContentEvent) error { return nil }

// NewEventBus creates the bus shared by the publisher and the engine.
func NewEventBus() *gochannel.GoChannel {
	return gochannel.NewGoChannel(
		gochannel.Config{},
		watermill.NewStdLogger(false, false),
	)
}

// ConsumeContentEvents subscribes to the content topic and calls handle for
// each event until ctx is done. Undecodable messages are logged and skipped.
func ConsumeContentEvents(ctx context.Context, bus *gochannel.GoChannel, handle func(model.ContentEvent)) error {
	messages, err := bus.Subscribe(ctx, TopicContent)
	if err != nil {
		return errors.Wrap(err, "fail to subscribe to content topic")
	}

	for msg := range messages {
		msg.Ack()
		e, err := DecodeContentEvent(msg)
		if err != nil {
			Logger.Log.WithError(err).Warn("skip malformed content event")
			continue
		}
		handle(e)
	}
	return nil
}
