package service

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"mytime/internal/model"
	"mytime/internal/repository"
)

// CategoryService manages the ordered category list and the reassignment
// side effect of deleting a category.
type CategoryService struct {
	categoryRepo *repository.CategoryRepository
	taskRepo     *repository.TaskRepository
}

func NewCategoryService(categoryRepo *repository.CategoryRepository, taskRepo *repository.TaskRepository) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo, taskRepo: taskRepo}
}

func (s *CategoryService) List(ctx context.Context) ([]model.Category, error) {
	return s.categoryRepo.List(ctx)
}

// Add appends a new category. Names are trimmed and deduplicated
// case-insensitively against the existing list.
func (s *CategoryService) Add(ctx context.Context, name string) (*model.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyCategory
	}

	existing, err := s.categoryRepo.FindByName(ctx, name)
	switch {
	case err == nil && existing != nil:
		return nil, ErrDuplicateCategory
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, err
	}

	return s.categoryRepo.Append(ctx, name)
}

// Delete removes a category and reassigns its tasks to the first
// remaining category. Deleting the only category is rejected.
func (s *CategoryService) Delete(ctx context.Context, name string) error {
	category, err := s.categoryRepo.FindByName(ctx, name)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCategoryNotFound
		}
		return err
	}

	count, err := s.categoryRepo.Count(ctx)
	if err != nil {
		return err
	}
	if count <= 1 {
		return ErrLastCategory
	}

	if err := s.categoryRepo.Delete(ctx, category.ID); err != nil {
		return err
	}

	remaining, err := s.categoryRepo.List(ctx)
	if err != nil {
		return err
	}
	if len(remaining) == 0 {
		return nil
	}
	return s.taskRepo.ReassignCategory(ctx, category.Name, remaining[0].Name)
}
