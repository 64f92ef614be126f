package controller

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/Luismorlan/maag/billing"
	"github.com/Luismorlan/maag/file_store"
	"github.com/Luismorlan/maag/model"
	"github.com/Luismorlan/maag/utils"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testWebhookSecret = "whsec_controller"

var testEpoch = time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC)

type recordingPublisher struct {
	mu     sync.Mutex
	events []model.ContentEvent
}

func (p *recordingPublisher) Publish(e model.ContentEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return nil
}

func (p *recordingPublisher) ofKind(kind model.ContentKind) []model.ContentEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	res := []model.ContentEvent{}
	for _, e := range p.events {
		if e.Kind == kind {
			res = append(res, e)
		}
	}
	return res
}

type testEnv struct {
	db        *gorm.DB
	ctrl      *Controller
	router    *gin.Engine
	media     *file_store.FakeFileStore
	billing   *billing.FakeProvider
	published *recordingPublisher
}

// newTestEnv serves every handler without auth. The clock advances one
// minute per reading so creation order is observable.
func newTestEnv(t *testing.T) *testEnv {
	gin.SetMode(gin.TestMode)
	db, _ := utils.CreateTempDB(t)

	env := &testEnv{
		db:        db,
		media:     file_store.NewFakeFileStore(),
		billing:   billing.NewFakeProvider(),
		published: &recordingPublisher{},
	}
	env.ctrl = New(db, env.media, env.billing, env.published, utils.NewMemoryEventStore(), testWebhookSecret)

	var mu sync.Mutex
	ticks, ids := 0, 0
	env.ctrl.Now = func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		ticks++
		return testEpoch.Add(time.Duration(ticks) * time.Minute)
	}
	env.ctrl.NewId = func() string {
		mu.Lock()
		defer mu.Unlock()
		ids++
		return fmt.Sprintf("id-%d", ids)
	}

	r := gin.New()
	api := r.Group("/api")
	for _, res := range []struct {
		path                                  string
		list, get, create, update, deleteFunc gin.HandlerFunc
	}{
		{"/articles", env.ctrl.ListArticles, env.ctrl.GetArticle, env.ctrl.CreateArticle, env.ctrl.UpdateArticle, env.ctrl.DeleteArticle},
		{"/events", env.ctrl.ListEvents, env.ctrl.GetEvent, env.ctrl.CreateEvent, env.ctrl.UpdateEvent, env.ctrl.DeleteEvent},
		{"/interviews", env.ctrl.ListInterviews, env.ctrl.GetInterview, env.ctrl.CreateInterview, env.ctrl.UpdateInterview, env.ctrl.DeleteInterview},
		{"/flippers", env.ctrl.ListFlippers, env.ctrl.GetFlipper, env.ctrl.CreateFlipper, env.ctrl.UpdateFlipper, env.ctrl.DeleteFlipper},
	} {
		g := api.Group(res.path)
		g.GET("", res.list)
		if res.path == "/events" {
			g.GET("/calendar", env.ctrl.GetCalendar)
		}
		g.GET("/:id", res.get)
		g.POST("", res.create)
		g.PUT("/:id", res.update)
		g.DELETE("/:id", res.deleteFunc)
	}
	api.GET("/authors", env.ctrl.ListAuthors)
	api.POST("/authors", env.ctrl.CreateAuthor)
	api.POST("/users", env.ctrl.CreateUserProfile)
	api.GET("/users/:uid", env.ctrl.GetUserProfile)
	api.PUT("/users/:uid", env.ctrl.UpdateUserProfile)
	api.POST("/uploads", env.ctrl.Upload)
	api.POST("/stripe/create-checkout-session", env.ctrl.CreateCheckoutSession)
	api.POST("/stripe/create-portal-session", env.ctrl.CreatePortalSession)
	api.POST("/stripe/webhook", env.ctrl.StripeWebhook)
	env.router = r
	return env
}

func (env *testEnv) request(t *testing.T, method, path string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	case []byte:
		reader = bytes.NewBuffer(b)
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewBuffer(data)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

func (env *testEnv) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	return env.request(t, method, path, body, nil)
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}

func messageOf(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var res struct {
		Message string `json:"message"`
	}
	decode(t, w, &res)
	return res.Message
}

func paragraphs(texts ...string) []map[string]interface{} {
	blocks := []map[string]interface{}{}
	for _, text := range texts {
		blocks = append(blocks, map[string]interface{}{"type": "paragraph", "text": text})
	}
	return blocks
}
