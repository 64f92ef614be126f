package main

import (
	"github.com/Luismorlan/maag/model"
	"github.com/Luismorlan/maag/normalizer"
	Logger "github.com/Luismorlan/maag/utils/log"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const batchSize = 200

type Report struct {
	Scanned int
	Matched int
	Updated int
}

// MigrateNewsCategory finds articles still filed under the legacy news
// category and, when apply is set, turns them into culture news.
func MigrateNewsCategory(db *gorm.DB, apply bool) (Report, error) {
	var report Report
	matched := []model.Article{}

	var batch []model.Article
	res := db.Select("id", "title", "category").FindInBatches(&batch, batchSize, func(tx *gorm.DB, _ int) error {
		for _, a := range batch {
			report.Scanned++
			if !normalizer.IsLegacyNewsCategory(a.Category) {
				continue
			}
			report.Matched++
			matched = append(matched, a)
			Logger.Log.WithFields(logrus.Fields{"id": a.Id, "title": a.Title, "category": a.Category}).Info("legacy news article")
		}
		return nil
	})
	if res.Error != nil {
		return report, errors.Wrap(res.Error, "fail to scan articles")
	}
	if !apply {
		return report, nil
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		for _, a := range matched {
			res := tx.Model(&model.Article{}).Where("id = ?", a.Id).Updates(map[string]interface{}{
				"is_news":  true,
				"category": normalizer.NewsFallbackCategory,
			})
			if res.Error != nil {
				return errors.Wrapf(res.Error, "fail to update article %s", a.Id)
			}
			report.Updated += int(res.RowsAffected)
		}
		return nil
	})
	if err != nil {
		report.Updated = 0
	}
	return report, err
}
