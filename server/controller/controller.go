package controller

import (
	"time"

	"github.com/Luismorlan/maag/billing"
	"github.com/Luismorlan/maag/events"
	"github.com/Luismorlan/maag/file_store"
	"github.com/Luismorlan/maag/model"
	"github.com/Luismorlan/maag/normalizer"
	"github.com/Luismorlan/maag/utils"
	Logger "github.com/Luismorlan/maag/utils/log"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Controller serves as dependency injection for the http handlers, add any
// dependencies you require here.
type Controller struct {
	DB *gorm.DB

	Media     file_store.MediaStore
	Billing   billing.Provider
	Publisher events.Publisher

	// Tag options per category, used to map legacy tag titles.
	Tags normalizer.TagCatalog

	// Remembers handled webhook deliveries.
	ProcessedEvents utils.ProcessedEventStore
	WebhookSecret   string

	// Now and NewId are replaced in tests.
	Now   func() time.Time
	NewId func() string
}

func New(db *gorm.DB, media file_store.MediaStore, provider billing.Provider, publisher events.Publisher, processed utils.ProcessedEventStore, webhookSecret string) *Controller {
	return &Controller{
		DB:              db,
		Media:           media,
		Billing:         provider,
		Publisher:       publisher,
		ProcessedEvents: processed,
		WebhookSecret:   webhookSecret,
		Now:             func() time.Time { return time.Now().UTC() },
		NewId:           uuid.NewString,
	}
}

func (ctrl *Controller) subscriptionSync() *billing.SubscriptionSync {
	return &billing.SubscriptionSync{DB: ctrl.DB, Provider: ctrl.Billing}
}

// publish announces a successful write. Event bus failures never fail the
// request.
func (ctrl *Controller) publish(kind model.ContentKind, action model.ContentAction, id string, title string, mediaUrls []string) {
	ctrl.publishEvent(model.ContentEvent{
		Kind:      kind,
		Action:    action,
		Id:        id,
		Title:     title,
		MediaUrls: mediaUrls,
	})
}

func (ctrl *Controller) publishEvent(e model.ContentEvent) {
	e.At = ctrl.Now()
	if err := ctrl.Publisher.Publish(e); err != nil {
		Logger.Log.WithError(err).WithField("id", e.Id).Warn("fail to publish content event")
	}
}
