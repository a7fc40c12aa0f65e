package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"mytime/internal/model"
)

// TaskRepository handles CRUD for planner tasks.
type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) Create(ctx context.Context, task *model.Task) error {
	if err := r.db.WithContext(ctx).Create(task).Error; err != nil {
		return fmt.Errorf("create task: %w", err)
	}
	return nil
}

// List returns all tasks newest-first, the planner's display order.
func (r *TaskRepository) List(ctx context.Context) ([]model.Task, error) {
	var tasks []model.Task
	if err := r.db.WithContext(ctx).Order("created_at DESC, id ASC").Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *TaskRepository) FindByID(ctx context.Context, id string) (*model.Task, error) {
	var task model.Task
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *TaskRepository) Save(ctx context.Context, task *model.Task) error {
	if err := r.db.WithContext(ctx).Save(task).Error; err != nil {
		return fmt.Errorf("save task: %w", err)
	}
	return nil
}

// StampEnded records the instant a session for this task terminated.
func (r *TaskRepository) StampEnded(ctx context.Context, id string, endedAt time.Time) error {
	if err := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("id = ?", id).
		Update("ended_at", endedAt).Error; err != nil {
		return fmt.Errorf("stamp ended: %w", err)
	}
	return nil
}

func (r *TaskRepository) Delete(ctx context.Context, id string) error {
	if err := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Task{}).Error; err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	return nil
}

// ReassignCategory moves every task in from to the to category. Used when
// a category is deleted.
func (r *TaskRepository) ReassignCategory(ctx context.Context, from, to string) error {
	if err := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("category = ?", from).
		Update("category", to).Error; err != nil {
		return fmt.Errorf("reassign category: %w", err)
	}
	return nil
}
