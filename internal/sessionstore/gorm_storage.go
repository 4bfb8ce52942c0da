package sessionstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/justsurfingit/jobboard/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormBackend keeps session items in the wizard_session_items table.
type GormBackend struct {
	DB *gorm.DB
}

// NewGormBackend returns a backend over db. The table must already be
// migrated (see database.Migrate).
func NewGormBackend(db *gorm.DB) *GormBackend {
	return &GormBackend{DB: db}
}

// Session implements Backend.
func (b *GormBackend) Session(id string) Storage {
	return &gormStorage{db: b.DB, sessionID: id}
}

// Purge implements Purger.
func (b *GormBackend) Purge(ctx context.Context, cutoff time.Time) (int64, error) {
	res := b.DB.WithContext(ctx).
		Where("updated_at < ?", cutoff).
		Delete(&models.WizardSessionItem{})
	if res.Error != nil {
		return 0, fmt.Errorf("purge session items: %w", res.Error)
	}
	return res.RowsAffected, nil
}

type gormStorage struct {
	db        *gorm.DB
	sessionID string
}

func (s *gormStorage) GetItem(ctx context.Context, key string) (string, bool, error) {
	var item models.WizardSessionItem
	err := s.db.WithContext(ctx).
		Where("session_id = ? AND item_key = ?", s.sessionID, key).
		Take(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get session item: %w", err)
	}
	return item.Value, true, nil
}

func (s *gormStorage) SetItem(ctx context.Context, key, value string) error {
	item := models.WizardSessionItem{SessionID: s.sessionID, Key: key, Value: value}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "session_id"}, {Name: "item_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&item).Error
	if err != nil {
		return fmt.Errorf("set session item: %w", err)
	}
	return nil
}

func (s *gormStorage) RemoveItem(ctx context.Context, key string) error {
	err := s.db.WithContext(ctx).
		Where("session_id = ? AND item_key = ?", s.sessionID, key).
		Delete(&models.WizardSessionItem{}).Error
	if err != nil {
		return fmt.Errorf("remove session item: %w", err)
	}
	return nil
}
