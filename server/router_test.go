package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Luismorlan/maag/billing"
	"github.com/Luismorlan/maag/events"
	"github.com/Luismorlan/maag/file_store"
	"github.com/Luismorlan/maag/model"
	"github.com/Luismorlan/maag/server/controller"
	"github.com/Luismorlan/maag/server/middlewares"
	"github.com/Luismorlan/maag/utils"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testOrigin = "http://localhost:5173"

func newTestRouter(t *testing.T, bypass bool) (*gin.Engine, *gorm.DB) {
	gin.SetMode(gin.TestMode)
	db, _ := utils.CreateTempDB(t)
	require.NoError(t, db.Create(&model.UserProfile{Uid: "editor", Role: model.RoleAuthor}).Error)
	require.NoError(t, db.Create(&model.UserProfile{Uid: "reader", Role: model.RoleReader}).Error)

	ctrl := controller.New(db, file_store.NewFakeFileStore(), billing.NewFakeProvider(), events.NopPublisher{}, utils.NewMemoryEventStore(), "whsec")
	router := NewRouter(ctrl, RouterConfig{
		AllowedOrigins: []string{testOrigin},
		ByPassAuth:     bypass,
		Verifier:       middlewares.StaticVerifier{"editor-token": "editor", "reader-token": "reader"},
	})
	return router, db
}

func send(r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

var newArticle = gin.H{
	"title":    "Заголовок",
	"authorId": "a1",
	"content":  []gin.H{{"type": "paragraph", "text": "Текст"}},
}

func TestGreetingAndPing(t *testing.T) {
	r, _ := newTestRouter(t, false)

	w := send(r, http.MethodGet, "/api", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, Greeting, w.Body.String())

	w = send(r, http.MethodGet, "/api/ping", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message": "pong"}`, w.Body.String())
}

func TestContentWritesNeedEditor(t *testing.T) {
	r, _ := newTestRouter(t, false)

	assert.Equal(t, http.StatusUnauthorized, send(r, http.MethodPost, "/api/articles", "", newArticle).Code)
	assert.Equal(t, http.StatusForbidden, send(r, http.MethodPost, "/api/articles", "reader-token", newArticle).Code)
	assert.Equal(t, http.StatusCreated, send(r, http.MethodPost, "/api/articles", "editor-token", newArticle).Code)

	w := send(r, http.MethodGet, "/api/articles", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var articles []model.Article
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &articles))
	assert.Len(t, articles, 1)

	assert.Equal(t, http.StatusUnauthorized, send(r, http.MethodPost, "/api/authors", "", gin.H{"firstName": "a", "lastName": "b"}).Code)
	assert.Equal(t, http.StatusUnauthorized, send(r, http.MethodPost, "/api/uploads", "", nil).Code)
}

func TestCalendarIsNotAnEventId(t *testing.T) {
	r, _ := newTestRouter(t, false)
	w := send(r, http.MethodGet, "/api/events/calendar?date=2025-03-05", "", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"filters"`)
}

func TestUserRoutes(t *testing.T) {
	r, _ := newTestRouter(t, false)

	assert.Equal(t, http.StatusOK, send(r, http.MethodGet, "/api/users/reader", "reader-token", nil).Code)
	assert.Equal(t, http.StatusForbidden, send(r, http.MethodGet, "/api/users/editor", "reader-token", nil).Code)
	assert.Equal(t, http.StatusUnauthorized, send(r, http.MethodGet, "/api/users/reader", "", nil).Code)

	w := send(r, http.MethodPost, "/api/stripe/create-checkout-session", "reader-token", gin.H{"priceId": "p", "userId": "reader"})
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func TestWebhookIsPublic(t *testing.T) {
	r, _ := newTestRouter(t, false)
	// Reaches the handler, which rejects the missing signature.
	w := send(r, http.MethodPost, "/api/stripe/webhook", "", gin.H{"id": "evt"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestByPassAuth(t *testing.T) {
	r, _ := newTestRouter(t, true)
	assert.Equal(t, http.StatusCreated, send(r, http.MethodPost, "/api/articles", "", newArticle).Code)
	assert.Equal(t, http.StatusOK, send(r, http.MethodGet, "/api/users/editor", "", nil).Code)
}

func TestCors(t *testing.T) {
	r, _ := newTestRouter(t, false)
	req := httptest.NewRequest(http.MethodGet, "/api/ping", nil)
	req.Header.Set("Origin", testOrigin)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, testOrigin, w.Header().Get("Access-Control-Allow-Origin"))
}
