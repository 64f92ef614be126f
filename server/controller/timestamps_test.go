package controller

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type updatedAtRow struct {
	UpdatedAt *time.Time
}

func TestUpdatedAtFollowsControllerClock(t *testing.T) {
	env := newTestEnv(t)
	for _, tc := range []struct {
		path  string
		table string
		body  gin.H
	}{
		{"/api/articles", "articles", articleBody("статья", nil)},
		{"/api/events", "events", eventBody("событие", nil)},
		{"/api/interviews", "interviews", gin.H{"title": "интервью", "authorId": "author-1", "content": paragraphs("текст")}},
		{"/api/flippers", "flippers", gin.H{"title": "листалка", "carouselContent": []gin.H{{"imageUrl": "https://media.test/uploads/1.jpg"}}}},
	} {
		t.Run(tc.table, func(t *testing.T) {
			w := env.do(t, http.MethodPost, tc.path, tc.body)
			require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
			var created map[string]interface{}
			decode(t, w, &created)
			assert.NotContains(t, created, "updatedAt")
			id := created["id"].(string)

			var stored updatedAtRow
			require.NoError(t, env.db.Table(tc.table).Select("updated_at").Where("id = ?", id).Scan(&stored).Error)
			assert.Nil(t, stored.UpdatedAt)

			w = env.do(t, http.MethodPut, tc.path+"/"+id, tc.body)
			require.Equal(t, http.StatusOK, w.Code, w.Body.String())
			var updated struct {
				CreatedAt time.Time  `json:"createdAt"`
				UpdatedAt *time.Time `json:"updatedAt"`
			}
			decode(t, w, &updated)
			require.NotNil(t, updated.UpdatedAt)
			assert.True(t, updated.UpdatedAt.After(updated.CreatedAt))
			assert.True(t, updated.UpdatedAt.Before(testEpoch.Add(time.Hour)), "updatedAt %v is not from the controller clock", updated.UpdatedAt)

			stored = updatedAtRow{}
			require.NoError(t, env.db.Table(tc.table).Select("updated_at").Where("id = ?", id).Scan(&stored).Error)
			require.NotNil(t, stored.UpdatedAt)
			assert.True(t, stored.UpdatedAt.Equal(*updated.UpdatedAt))
		})
	}
}
