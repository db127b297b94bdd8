package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"planly/internal/model"
)

// SlotRepository stores named blobs in the slots table.
type SlotRepository struct {
	db *gorm.DB
}

func NewSlotRepository(db *gorm.DB) *SlotRepository {
	return &SlotRepository{db: db}
}

// Get returns the value stored under key. The bool is false when nothing was
// ever written there.
func (r *SlotRepository) Get(ctx context.Context, key string) (string, bool, error) {
	var slot model.Slot
	err := r.db.WithContext(ctx).First(&slot, "key = ?", key).Error
	switch {
	case err == nil:
		return slot.Value, true, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return "", false, nil
	default:
		return "", false, fmt.Errorf("find slot %q: %w", key, err)
	}
}

// Set inserts or overwrites the value under key.
func (r *SlotRepository) Set(ctx context.Context, key, value string) error {
	slot := model.Slot{Key: key, Value: value}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&slot).Error
	if err != nil {
		return fmt.Errorf("save slot %q: %w", key, err)
	}
	return nil
}
