package modules

import (
	"context"

	"github.com/Luismorlan/maag/bot"
	"github.com/Luismorlan/maag/events"
	"github.com/Luismorlan/maag/model"
	Logger "github.com/Luismorlan/maag/utils/log"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/slack-go/slack"
)

type NotifierConfig struct {
	Name        string
	WebhookUrl  string
	FrontendUrl string
}

// Notifier tells the editorial Slack channel about new publications and
// subscription status changes.
type Notifier struct {
	Config NotifierConfig

	EventBus *gochannel.GoChannel

	// Push delivers a message, bot.PushViaWebhook in production.
	Push func(webhookUrl string, msg *slack.WebhookMessage) error
}

func NewNotifier(config NotifierConfig, e *gochannel.GoChannel) *Notifier {
	return &Notifier{
		Config:   config,
		EventBus: e,
		Push:     bot.PushViaWebhook,
	}
}

// BuildMessage returns nil for events that are not announced.
func (n *Notifier) BuildMessage(e model.ContentEvent) *slack.WebhookMessage {
	switch {
	case e.Kind == model.KindSubscription:
		return bot.BuildSubscriptionMessage(e)
	case e.Action == model.ActionCreated && e.Kind != model.KindAuthor:
		return bot.BuildContentMessage(n.Config.FrontendUrl, e)
	}
	return nil
}

func (n *Notifier) RunModule(ctx context.Context) error {
	if n.Config.WebhookUrl == "" {
		Logger.Log.Info("no slack webhook configured, notifier disabled")
		<-ctx.Done()
		return nil
	}
	return events.ConsumeContentEvents(ctx, n.EventBus, func(e model.ContentEvent) {
		msg := n.BuildMessage(e)
		if msg == nil {
			return
		}
		if err := n.Push(n.Config.WebhookUrl, msg); err != nil {
			Logger.Log.WithError(err).Error("fail to notify slack")
		}
	})
}

func (n *Notifier) Name() string {
	return n.Config.Name
}

func (n *Notifier) Shutdown() {}
