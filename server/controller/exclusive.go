package controller

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// ExclusiveFlag is a boolean column that may be true on at most one row, or
// on at most one row per value of ScopeColumn.
type ExclusiveFlag struct {
	Model       interface{}
	Column      string
	ScopeColumn string
}

// Reset clears the flag on every row but keepId. It must run in the
// transaction that saves keepId so both commit or fail together.
func (f ExclusiveFlag) Reset(tx *gorm.DB, keepId string, scope interface{}) (int64, error) {
	q := tx.Model(f.Model).Where(f.Column+" = ?", true).Where("id <> ?", keepId)
	if f.ScopeColumn != "" {
		q = q.Where(f.ScopeColumn+" = ?", scope)
	}
	res := q.Update(f.Column, false)
	return res.RowsAffected, errors.Wrapf(res.Error, "fail to reset %s", f.Column)
}
