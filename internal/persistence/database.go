package persistence

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"MultiStepForm/internal/model"
)

// DatabaseStore 用单表保存表单 blob，按 key 覆盖写。生产环境是 postgres
type DatabaseStore struct {
	db *gorm.DB
}

func NewDatabaseStore(db *gorm.DB) *DatabaseStore {
	return &DatabaseStore{db: db}
}

func (s *DatabaseStore) GetItem(ctx context.Context, key string) (string, bool, error) {
	var blob model.FormDataBlob
	err := s.db.WithContext(ctx).Where(map[string]interface{}{"key": key}).Take(&blob).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("query form data %s: %w", key, err)
	}
	return blob.Value, true, nil
}

func (s *DatabaseStore) SetItem(ctx context.Context, key, value string) error {
	blob := model.FormDataBlob{Key: key, Value: value}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&blob).Error
	if err != nil {
		return fmt.Errorf("upsert form data %s: %w", key, err)
	}
	return nil
}
