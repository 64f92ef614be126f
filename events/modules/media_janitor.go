package modules

import (
	"context"

	"github.com/Luismorlan/maag/events"
	"github.com/Luismorlan/maag/file_store"
	"github.com/Luismorlan/maag/model"
	Logger "github.com/Luismorlan/maag/utils/log"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type MediaJanitorConfig struct {
	Name string
}

// MediaJanitor removes uploaded media once the document owning it is
// deleted. Failures are logged only, an orphaned file is harmless.
type MediaJanitor struct {
	Config MediaJanitorConfig

	Store file_store.MediaStore

	EventBus *gochannel.GoChannel
}

func NewMediaJanitor(config MediaJanitorConfig, store file_store.MediaStore, e *gochannel.GoChannel) *MediaJanitor {
	return &MediaJanitor{
		Config:   config,
		Store:    store,
		EventBus: e,
	}
}

func (j *MediaJanitor) RunModule(ctx context.Context) error {
	return events.ConsumeContentEvents(ctx, j.EventBus, func(e model.ContentEvent) {
		if e.Action != model.ActionDeleted || len(e.MediaUrls) == 0 {
			return
		}
		if err := file_store.DeleteAll(ctx, j.Store, e.MediaUrls); err != nil {
			Logger.Log.WithError(err).WithField("id", e.Id).Error("fail to delete media")
		}
	})
}

func (j *MediaJanitor) Name() string {
	return j.Config.Name
}

func (j *MediaJanitor) Shutdown() {}
