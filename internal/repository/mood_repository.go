package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"mytime/internal/model"
)

// MoodRepository stores the append-only mood journal.
type MoodRepository struct {
	db *gorm.DB
}

func NewMoodRepository(db *gorm.DB) *MoodRepository {
	return &MoodRepository{db: db}
}

func (r *MoodRepository) Create(ctx context.Context, entry *model.MoodEntry) error {
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return fmt.Errorf("create mood entry: %w", err)
	}
	return nil
}

// List returns entries newest-first.
func (r *MoodRepository) List(ctx context.Context) ([]model.MoodEntry, error) {
	var entries []model.MoodEntry
	if err := r.db.WithContext(ctx).Order("created_at DESC, id ASC").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *MoodRepository) Delete(ctx context.Context, id string) error {
	if err := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.MoodEntry{}).Error; err != nil {
		return fmt.Errorf("delete mood entry: %w", err)
	}
	return nil
}
