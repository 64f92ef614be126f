package server

import (
	"context"
	"os"
	"time"

	"github.com/DataDog/datadog-go/statsd"
	"github.com/Luismorlan/maag/app_config"
	"github.com/Luismorlan/maag/billing"
	"github.com/Luismorlan/maag/events"
	"github.com/Luismorlan/maag/events/modules"
	"github.com/Luismorlan/maag/file_store"
	"github.com/Luismorlan/maag/server/controller"
	"github.com/Luismorlan/maag/utils"
	Logger "github.com/Luismorlan/maag/utils/log"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/pkg/errors"
)

const (
	StripeSecretKeyEnv     = "STRIPE_SECRET_KEY"
	StripeWebhookSecretEnv = "STRIPE_WEBHOOK_SECRET"
)

// Services holds everything a server process shares between its http
// handlers and its event modules.
type Services struct {
	Controller *controller.Controller
	Media      file_store.MediaStore
	EventBus   *gochannel.GoChannel
}

// NewMediaStore returns the S3 store, or an in-memory store outside
// production when no bucket is configured.
func NewMediaStore(cfg app_config.ServerAppConfig) (file_store.MediaStore, error) {
	if cfg.MEDIA_BUCKET == "" {
		if utils.IsProdEnv() {
			return nil, errors.New("MEDIA_BUCKET is required in production")
		}
		Logger.Log.Warn("no media bucket configured, uploads are kept in memory")
		return file_store.NewFakeFileStore(), nil
	}
	return file_store.NewS3FileStore(cfg.MEDIA_BUCKET, cfg.MEDIA_REGION, cfg.MEDIA_KEY_PREFIX, cfg.MEDIA_PUBLIC_URL)
}

// NewProcessedEventStore connects to redis. Outside production a memory
// store is used when redis is unreachable.
func NewProcessedEventStore(ctx context.Context) (utils.ProcessedEventStore, error) {
	store, err := utils.GetRedisEventStore(ctx)
	if err == nil {
		return store, nil
	}
	if utils.IsProdEnv() {
		return nil, err
	}
	Logger.Log.WithError(err).Warn("redis unavailable, processed webhook events are kept in memory")
	return utils.NewMemoryEventStore(), nil
}

func NewServices(ctx context.Context, cfg app_config.ServerAppConfig) (*Services, error) {
	db, err := utils.GetDBConnection()
	if err != nil {
		return nil, errors.Wrap(err, "fail to connect to database")
	}
	if err := utils.DatabaseSetupAndMigration(db); err != nil {
		return nil, err
	}

	media, err := NewMediaStore(cfg)
	if err != nil {
		return nil, err
	}
	processed, err := NewProcessedEventStore(ctx)
	if err != nil {
		return nil, err
	}

	bus := events.NewEventBus()
	provider := billing.NewStripeProvider(os.Getenv(StripeSecretKeyEnv), cfg.FRONTEND_URL)
	ctrl := controller.New(db, media, provider, events.NewBusPublisher(bus), processed, os.Getenv(StripeWebhookSecretEnv))
	ctrl.Tags = cfg.CATEGORY_TAGS

	return &Services{Controller: ctrl, Media: media, EventBus: bus}, nil
}

// NewEventEngine wires the modules consuming content events. The reporter
// only runs when a statsd address is configured.
func NewEventEngine(ctx context.Context, cfg app_config.ServerAppConfig, s *Services) *events.Engine {
	ms := []events.Module{
		modules.NewNotifier(modules.NotifierConfig{
			Name:        "notifier",
			WebhookUrl:  cfg.SLACK_WEBHOOK_URL,
			FrontendUrl: cfg.FRONTEND_URL,
		}, s.EventBus),
		modules.NewMediaJanitor(modules.MediaJanitorConfig{Name: "media_janitor"}, s.Media, s.EventBus),
	}

	if cfg.STATSD_ADDR != "" {
		client, err := statsd.New(cfg.STATSD_ADDR)
		if err != nil {
			Logger.Log.WithError(err).Warn("fail to create statsd client, content metrics disabled")
		} else {
			ms = append(ms, modules.NewReporter(modules.ReporterConfig{Name: "reporter"}, client, s.EventBus))
		}
	}

	return events.NewEngine(ctx, ms, s.EventBus, time.Duration(cfg.MODULE_RESTART_DELAY_SECOND)*time.Second)
}
