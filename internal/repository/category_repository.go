package repository

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"mytime/internal/model"
)

// CategoryRepository manages the ordered category list.
type CategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// List returns all categories in insertion order.
func (r *CategoryRepository) List(ctx context.Context) ([]model.Category, error) {
	var categories []model.Category
	if err := r.db.WithContext(ctx).Order("position ASC").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// FindByName matches a category case-insensitively.
func (r *CategoryRepository) FindByName(ctx context.Context, name string) (*model.Category, error) {
	var category model.Category
	err := r.db.WithContext(ctx).
		Where("LOWER(name) = ?", strings.ToLower(strings.TrimSpace(name))).
		First(&category).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// Append adds a category at the end of the ordered list.
func (r *CategoryRepository) Append(ctx context.Context, name string) (*model.Category, error) {
	var maxPos int
	row := r.db.WithContext(ctx).Model(&model.Category{}).Select("COALESCE(MAX(position), -1)").Row()
	if err := row.Scan(&maxPos); err != nil {
		return nil, fmt.Errorf("max position: %w", err)
	}

	category := model.Category{Name: name, Position: maxPos + 1}
	if err := r.db.WithContext(ctx).Create(&category).Error; err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	return &category, nil
}

// Delete removes a category by id.
func (r *CategoryRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&model.Category{}, id).Error; err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}

// Count returns the number of categories.
func (r *CategoryRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&model.Category{}).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

// SeedDefaults inserts the fixed starter categories when the table is empty.
func (r *CategoryRepository) SeedDefaults(ctx context.Context) error {
	n, err := r.Count(ctx)
	if err != nil {
		return fmt.Errorf("count categories: %w", err)
	}
	if n > 0 {
		return nil
	}
	for i, name := range model.DefaultCategories {
		category := model.Category{Name: name, Position: i}
		if err := r.db.WithContext(ctx).Create(&category).Error; err != nil {
			return fmt.Errorf("seed category %q: %w", name, err)
		}
	}
	return nil
}
