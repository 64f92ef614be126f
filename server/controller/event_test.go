package controller

import (
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/Luismorlan/maag/calendar"
	"github.com/Luismorlan/maag/model"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func eventBody(title string, extra gin.H) gin.H {
	body := gin.H{
		"title":     title,
		"authorId":  "author-1",
		"content":   paragraphs("Описание"),
		"category":  "concert",
		"startDate": "2025-03-07",
	}
	for k, v := range extra {
		body[k] = v
	}
	return body
}

func createEvent(t *testing.T, env *testEnv, body gin.H) model.Event {
	t.Helper()
	w := env.do(t, http.MethodPost, "/api/events", body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var e model.Event
	decode(t, w, &e)
	return e
}

func TestCreateEvent(t *testing.T) {
	env := newTestEnv(t)

	e := createEvent(t, env, eventBody("Моне", gin.H{
		"category":  "Выставка",
		"startDate": "2025-03-05",
		"endDate":   "2025-03-09",
		"timeMode":  "start",
		"startTime": "19:00",
		"address":   " Musée d'Orsay ",
	}))

	assert.Equal(t, model.EventExhibition, e.Category)
	assert.Equal(t, model.DateTypeDuration, e.DateType)
	assert.Equal(t, model.TimeModeStart, e.TimeMode)
	require.NotNil(t, e.StartTime)
	assert.Equal(t, "19:00", *e.StartTime)
	assert.Nil(t, e.EndTime)
	assert.Equal(t, "Musée d'Orsay", e.Address)
	assert.True(t, e.StartDate.Equal(time.Date(2025, time.March, 5, 0, 0, 0, 0, time.UTC)))
	require.NotNil(t, e.EndDate)

	single := createEvent(t, env, eventBody("Концерт", nil))
	assert.Equal(t, model.DateTypeSingle, single.DateType)
	assert.Equal(t, model.TimeModeNone, single.TimeMode)
	assert.Nil(t, single.EndDate)

	assert.Len(t, env.published.ofKind(model.KindEvent), 2)
}

func TestCreateEventValidation(t *testing.T) {
	env := newTestEnv(t)

	for _, tc := range []struct {
		name    string
		body    gin.H
		message string
	}{
		{"missing title", eventBody("", nil), contentFieldsMissing},
		{"bad category", eventBody("x", gin.H{"category": "lecture"}), "Unsupported event category"},
		{"missing start", eventBody("x", gin.H{"startDate": ""}), "Start date is required for event"},
		{"end before start", eventBody("x", gin.H{"endDate": "2025-03-01"}), "Finish date can not be earlier than start date"},
		{"range without end", eventBody("x", gin.H{"timeMode": "range", "startTime": "10:00"}), "Start and end time are required for a time range"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			w := env.do(t, http.MethodPost, "/api/events", tc.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, tc.message, messageOf(t, w))
		})
	}
	assert.Empty(t, env.published.ofKind(model.KindEvent))
}

func TestListEventsNewestStartFirst(t *testing.T) {
	env := newTestEnv(t)
	createEvent(t, env, eventBody("march", gin.H{"startDate": "2025-03-07"}))
	createEvent(t, env, eventBody("may", gin.H{"startDate": "2025-05-01"}))
	createEvent(t, env, eventBody("april", gin.H{"startDate": "2025-04-01"}))

	w := env.do(t, http.MethodGet, "/api/events", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var events []model.Event
	decode(t, w, &events)
	require.Len(t, events, 3)
	assert.Equal(t, "may", events[0].Title)
	assert.Equal(t, "april", events[1].Title)
	assert.Equal(t, "march", events[2].Title)
}

func TestEventOnLandingIsExclusive(t *testing.T) {
	env := newTestEnv(t)
	first := createEvent(t, env, eventBody("first", gin.H{"isOnLanding": true}))
	createEvent(t, env, eventBody("second", gin.H{"isOnLanding": true}))

	var reloaded model.Event
	require.NoError(t, env.db.First(&reloaded, "id = ?", first.Id).Error)
	assert.False(t, reloaded.IsOnLanding)
}

func TestGetCalendar(t *testing.T) {
	env := newTestEnv(t)
	createEvent(t, env, eventBody("Моне", gin.H{
		"category":  "exhibition",
		"startDate": "2025-03-05",
		"endDate":   "2025-03-09",
	}))
	createEvent(t, env, eventBody("Джаз", gin.H{"startDate": "2025-03-07", "timeMode": "start", "startTime": "20:00"}))

	getDay := func(query string) calendar.Day {
		w := env.do(t, http.MethodGet, "/api/events/calendar"+query, nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var day calendar.Day
		decode(t, w, &day)
		return day
	}

	day := getDay("?date=2025-03-05")
	assert.Equal(t, []string{calendar.AllFilter, "Выставка", "Концерт"}, day.Filters)
	require.Len(t, day.Events, 1)
	assert.Equal(t, "Моне", day.Events[0].Title)
	assert.Equal(t, "5 марта – 9 марта 2025 г.", day.Events[0].DateRangeLabel)
	assert.Empty(t, day.SmallEvents)

	day = getDay("?date=2025-03-07")
	require.Len(t, day.Events, 1)
	assert.Equal(t, "Джаз", day.Events[0].Title)
	assert.Equal(t, "Начало в 20:00", day.Events[0].Time)
	assert.Equal(t, calendar.DefaultLocation, day.Events[0].Location)
	require.Len(t, day.SmallEvents, 1)
	assert.Equal(t, "Моне", day.SmallEvents[0].Title)

	day = getDay("?date=2025-03-07&tag=" + url.QueryEscape("Концерт"))
	require.Len(t, day.Events, 1)
	assert.Empty(t, day.SmallEvents)

	// The clock is on March 1st, the nearest start is March 5th.
	day = getDay("")
	assert.True(t, day.Date.Equal(time.Date(2025, time.March, 5, 0, 0, 0, 0, time.UTC)))
	require.Len(t, day.Events, 1)

	w := env.do(t, http.MethodGet, "/api/events/calendar?date=garbage", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid date", messageOf(t, w))
}

func TestUpdateAndDeleteEvent(t *testing.T) {
	env := newTestEnv(t)
	e := createEvent(t, env, eventBody("before", nil))

	w := env.do(t, http.MethodPut, "/api/events/"+e.Id, eventBody("after", gin.H{"endDate": "2025-03-08"}))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var updated model.Event
	decode(t, w, &updated)
	assert.Equal(t, "after", updated.Title)
	assert.Equal(t, model.DateTypeDuration, updated.DateType)
	require.NotNil(t, updated.ModifiedAt)

	w = env.do(t, http.MethodPut, "/api/events/nope", eventBody("after", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, eventNotFound, messageOf(t, w))

	w = env.do(t, http.MethodDelete, "/api/events/"+e.Id, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = env.do(t, http.MethodGet, "/api/events/"+e.Id, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
