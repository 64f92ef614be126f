package modules

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/Luismorlan/maag/events"
	"github.com/Luismorlan/maag/file_store"
	"github.com/Luismorlan/maag/model"
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/slack-go/slack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Persistent so that events published before the module subscribes are
// still delivered.
func newTestBus() *gochannel.GoChannel {
	return gochannel.NewGoChannel(
		gochannel.Config{Persistent: true},
		watermill.NewStdLogger(false, false),
	)
}

func runInBackground(t *testing.T, m events.Module) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		m.RunModule(ctx)
		close(done)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})
}

type fakeStatsd struct {
	mu     sync.Mutex
	counts map[string]int
	closed bool
}

func (f *fakeStatsd) Incr(name string, tags []string, rate float64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := name
	for _, t := range tags {
		key += "|" + t
	}
	f.counts[key]++
	return nil
}

func (f *fakeStatsd) Close() error {
	f.closed = true
	return nil
}

func (f *fakeStatsd) get(key string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.counts[key]
}

func TestReporter(t *testing.T) {
	bus := newTestBus()
	publisher := events.NewBusPublisher(bus)
	statsd := &fakeStatsd{counts: map[string]int{}}
	r := NewReporter(ReporterConfig{Name: "reporter"}, statsd, bus)

	require.NoError(t, publisher.Publish(model.ContentEvent{Kind: model.KindArticle, Action: model.ActionCreated, Id: "a1"}))
	require.NoError(t, publisher.Publish(model.ContentEvent{Kind: model.KindArticle, Action: model.ActionCreated, Id: "a2"}))
	require.NoError(t, publisher.Publish(model.ContentEvent{Kind: model.KindEvent, Action: model.ActionDeleted, Id: "e1"}))
	runInBackground(t, r)

	assert.Eventually(t, func() bool {
		return statsd.get(events.DdogContentEventCounter+"|kind:article|action:created") == 2 &&
			statsd.get(events.DdogContentEventCounter+"|kind:event|action:deleted") == 1
	}, time.Second, 10*time.Millisecond)

	r.Shutdown()
	assert.True(t, statsd.closed)
}

func TestContentEventTags(t *testing.T) {
	assert.Equal(t,
		[]string{"kind:subscription", "action:updated", "status:active"},
		ContentEventTags(model.ContentEvent{Kind: model.KindSubscription, Action: model.ActionUpdated, Status: "active"}))
}

func TestNotifierBuildMessage(t *testing.T) {
	n := NewNotifier(NotifierConfig{Name: "notifier", FrontendUrl: "https://maag.fr"}, newTestBus())

	assert.NotNil(t, n.BuildMessage(model.ContentEvent{Kind: model.KindArticle, Action: model.ActionCreated}))
	assert.NotNil(t, n.BuildMessage(model.ContentEvent{Kind: model.KindSubscription, Action: model.ActionUpdated, Status: "active"}))
	assert.Nil(t, n.BuildMessage(model.ContentEvent{Kind: model.KindArticle, Action: model.ActionUpdated}))
	assert.Nil(t, n.BuildMessage(model.ContentEvent{Kind: model.KindAuthor, Action: model.ActionCreated}))
}

func TestNotifierPushes(t *testing.T) {
	bus := newTestBus()
	n := NewNotifier(NotifierConfig{Name: "notifier", WebhookUrl: "https://hooks.test/x", FrontendUrl: "https://maag.fr"}, bus)

	var mu sync.Mutex
	var texts []string
	n.Push = func(url string, msg *slack.WebhookMessage) error {
		mu.Lock()
		defer mu.Unlock()
		texts = append(texts, msg.Text)
		return errors.New("ignored")
	}

	publisher := events.NewBusPublisher(bus)
	require.NoError(t, publisher.Publish(model.ContentEvent{Kind: model.KindFlipper, Action: model.ActionCreated, Id: "f1", Title: "Слайды"}))
	require.NoError(t, publisher.Publish(model.ContentEvent{Kind: model.KindFlipper, Action: model.ActionDeleted, Id: "f1"}))
	runInBackground(t, n)

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(texts) == 1
	}, time.Second, 10*time.Millisecond)
	mu.Lock()
	assert.Equal(t, "*Листалка опубликовано:* <https://maag.fr/flippers/f1|Слайды>", texts[0])
	mu.Unlock()
}

func TestNotifierDisabledWithoutWebhook(t *testing.T) {
	n := NewNotifier(NotifierConfig{Name: "notifier"}, newTestBus())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.NoError(t, n.RunModule(ctx))
}

func TestMediaJanitor(t *testing.T) {
	bus := newTestBus()
	store := file_store.NewFakeFileStore()
	ctx := context.Background()

	owned, err := store.Store(ctx, "cover.png", "image/png", bytesReader("img"))
	require.NoError(t, err)
	kept, err := store.Store(ctx, "kept.png", "image/png", bytesReader("img"))
	require.NoError(t, err)

	publisher := events.NewBusPublisher(bus)
	require.NoError(t, publisher.Publish(model.ContentEvent{Kind: model.KindArticle, Action: model.ActionUpdated, Id: "a0", MediaUrls: []string{kept}}))
	require.NoError(t, publisher.Publish(model.ContentEvent{Kind: model.KindArticle, Action: model.ActionDeleted, Id: "a1", MediaUrls: []string{owned, "https://elsewhere.com/x.png"}}))
	runInBackground(t, NewMediaJanitor(MediaJanitorConfig{Name: "janitor"}, store, bus))

	assert.Eventually(t, func() bool {
		return len(store.DeletedUrls()) == 1
	}, time.Second, 10*time.Millisecond)
	assert.Equal(t, []string{owned}, store.DeletedUrls())
}
