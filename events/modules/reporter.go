package modules

import (
	"context"

	"github.com/Luismorlan/maag/events"
	"github.com/Luismorlan/maag/model"
	Logger "github.com/Luismorlan/maag/utils/log"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type ReporterConfig struct {
	Name string
}

// StatsdClient is the part of *statsd.Client the reporter uses.
type StatsdClient interface {
	Incr(name string, tags []string, rate float64) error
	Close() error
}

// Reporter's job is to listen to content writes and count them in Datadog for
// monitoring purpose.
type Reporter struct {
	Config ReporterConfig

	Statsd StatsdClient

	EventBus *gochannel.GoChannel
}

func NewReporter(config ReporterConfig, statsd StatsdClient, e *gochannel.GoChannel) *Reporter {
	return &Reporter{
		Config:   config,
		Statsd:   statsd,
		EventBus: e,
	}
}

func ContentEventTags(e model.ContentEvent) []string {
	tags := []string{"kind:" + string(e.Kind), "action:" + string(e.Action)}
	if e.Status != "" {
		tags = append(tags, "status:"+e.Status)
	}
	return tags
}

// Report content event to datadog.
func ReportContentEvent(e model.ContentEvent, statsd StatsdClient) {
	if err := statsd.Incr(events.DdogContentEventCounter, ContentEventTags(e), 1); err != nil {
		Logger.Log.WithError(err).Info("cannot report content event")
	}
}

func (r *Reporter) RunModule(ctx context.Context) error {
	return events.ConsumeContentEvents(ctx, r.EventBus, func(e model.ContentEvent) {
		ReportContentEvent(e, r.Statsd)
	})
}

func (r *Reporter) Name() string {
	return r.Config.Name
}

func (r *Reporter) Shutdown() {
	if err := r.Statsd.Close(); err != nil {
		Logger.Log.WithError(err).Warn("fail to close statsd client")
	}
}
