package bot

import (
	"fmt"
	"strings"

	"github.com/Luismorlan/maag/model"
	"github.com/pkg/errors"
	"github.com/slack-go/slack"
)

var kindLabels = map[model.ContentKind]string{
	model.KindArticle:   "Статья",
	model.KindEvent:     "Событие",
	model.KindInterview: "Интервью",
	model.KindFlipper:   "Листалка",
	model.KindAuthor:    "Автор",
}

var kindPaths = map[model.ContentKind]string{
	model.KindArticle:   "news",
	model.KindEvent:     "events",
	model.KindInterview: "interviews",
	model.KindFlipper:   "flippers",
}

// BuildContentLink returns the public page of a document, "" for kinds
// without one.
func BuildContentLink(frontendUrl string, e model.ContentEvent) string {
	p, ok := kindPaths[e.Kind]
	if !ok || e.Id == "" {
		return ""
	}
	return fmt.Sprintf("%s/%s/%s", strings.TrimSuffix(frontendUrl, "/"), p, e.Id)
}

func buildTitleText(frontendUrl string, e model.ContentEvent) string {
	title := e.Title
	if title == "" {
		title = e.Id
	}
	if link := BuildContentLink(frontendUrl, e); link != "" {
		return fmt.Sprintf("<%s|%s>", link, title)
	}
	return title
}

// BuildContentMessage renders a publication notice. Only the first media
// url is shown as an image.
func BuildContentMessage(frontendUrl string, e model.ContentEvent) *slack.WebhookMessage {
	label, ok := kindLabels[e.Kind]
	if !ok {
		label = string(e.Kind)
	}
	text := fmt.Sprintf("*%s опубликовано:* %s", label, buildTitleText(frontendUrl, e))

	blocks := []slack.Block{
		slack.NewSectionBlock(slack.NewTextBlockObject("mrkdwn", text, false, false), nil, nil),
	}
	if len(e.MediaUrls) > 0 && e.MediaUrls[0] != "" {
		blocks = append(blocks, slack.NewImageBlock(e.MediaUrls[0], e.Title, "", nil))
	}
	blocks = append(blocks, slack.NewContextBlock("",
		slack.NewTextBlockObject("mrkdwn", e.At.UTC().Format("02.01.2006 15:04 UTC"), false, false)))

	return &slack.WebhookMessage{
		Text:   text,
		Blocks: &slack.Blocks{BlockSet: blocks},
	}
}

// BuildSubscriptionMessage renders a subscription status change of a user.
func BuildSubscriptionMessage(e model.ContentEvent) *slack.WebhookMessage {
	text := fmt.Sprintf("Подписка пользователя `%s`: *%s*", e.Id, e.Status)
	return &slack.WebhookMessage{
		Text: text,
		Blocks: &slack.Blocks{BlockSet: []slack.Block{
			slack.NewSectionBlock(slack.NewTextBlockObject("mrkdwn", text, false, false), nil, nil),
		}},
	}
}

// PushViaWebhook posts msg to an incoming webhook.
func PushViaWebhook(webhookUrl string, msg *slack.WebhookMessage) error {
	return errors.Wrap(slack.PostWebhook(webhookUrl, msg), "fail to post slack webhook")
}
