package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"mytime/internal/model"
)

// DocumentRepository stores JSON blobs under namespaced keys: the
// suggestion bundle, breakdown steps and personal notes.
type DocumentRepository struct {
	db *gorm.DB
}

func NewDocumentRepository(db *gorm.DB) *DocumentRepository {
	return &DocumentRepository{db: db}
}

// Load decodes the document at key into out. It returns false when the
// key is missing or its value does not decode; callers fall back to
// their default in that case. A corrupt document is never an error.
func (r *DocumentRepository) Load(ctx context.Context, key string, out any) bool {
	var doc model.Document
	err := r.db.WithContext(ctx).First(&doc, "key = ?", key).Error
	if err != nil {
		return false
	}
	if err := json.Unmarshal([]byte(doc.Value), out); err != nil {
		return false
	}
	return true
}

// Save encodes v and writes it under key, replacing any prior value.
func (r *DocumentRepository) Save(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode document %q: %w", key, err)
	}
	doc := model.Document{Key: key, Value: string(data)}
	if err := r.db.WithContext(ctx).Save(&doc).Error; err != nil {
		return fmt.Errorf("save document %q: %w", key, err)
	}
	return nil
}

// Delete removes the document at key. Missing keys are not an error.
func (r *DocumentRepository) Delete(ctx context.Context, key string) error {
	err := r.db.WithContext(ctx).Delete(&model.Document{}, "key = ?", key).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("delete document %q: %w", key, err)
	}
	return nil
}
