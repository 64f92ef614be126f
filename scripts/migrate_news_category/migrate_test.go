package main

import (
	"testing"
	"time"

	"github.com/Luismorlan/maag/model"
	"github.com/Luismorlan/maag/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedArticles(t *testing.T, db *gorm.DB) {
	for id, category := range map[string]string{
		"a": "news",
		"b": " Новости ",
		"c": "culture",
		"d": "paris",
		"e": "NEWS",
	} {
		require.NoError(t, db.Create(&model.Article{Id: id, Title: id, Category: category, CreatedAt: time.Now()}).Error)
	}
}

func TestMigrateNewsCategoryDryRun(t *testing.T) {
	db, _ := utils.CreateTempDB(t)
	seedArticles(t, db)

	report, err := MigrateNewsCategory(db, false)
	require.NoError(t, err)
	assert.Equal(t, Report{Scanned: 5, Matched: 3, Updated: 0}, report)

	var a model.Article
	require.NoError(t, db.First(&a, "id = ?", "a").Error)
	assert.Equal(t, "news", a.Category)
	assert.False(t, a.IsNews)
}

func TestMigrateNewsCategoryApply(t *testing.T) {
	db, _ := utils.CreateTempDB(t)
	seedArticles(t, db)

	report, err := MigrateNewsCategory(db, true)
	require.NoError(t, err)
	assert.Equal(t, Report{Scanned: 5, Matched: 3, Updated: 3}, report)

	var news []model.Article
	require.NoError(t, db.Where("is_news = ?", true).Order("id").Find(&news).Error)
	require.Len(t, news, 3)
	for _, a := range news {
		assert.Equal(t, "culture", a.Category)
	}

	report, err = MigrateNewsCategory(db, true)
	require.NoError(t, err)
	assert.Equal(t, 0, report.Matched)
}
