package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"mytime/internal/model"
	"mytime/internal/repository"
	"mytime/internal/timeutil"
)

// TaskInput holds the fields for creating a task.
type TaskInput struct {
	Category    string
	Label       string
	Description string
	Date        string
	StartTime   string
	EndTime     string
}

// TaskPatch holds optional updates; nil fields are left unchanged.
type TaskPatch struct {
	Category    *string
	Label       *string
	Description *string
	Date        *string
	StartTime   *string
	EndTime     *string
}

// TaskService wraps task business logic: creation with window
// validation, shallow patching, and removal with its session side effect.
type TaskService struct {
	taskRepo     *repository.TaskRepository
	categoryRepo *repository.CategoryRepository
	sessionRepo  *repository.SessionRepository
	loc          *time.Location
}

func NewTaskService(taskRepo *repository.TaskRepository, categoryRepo *repository.CategoryRepository, sessionRepo *repository.SessionRepository, loc *time.Location) *TaskService {
	return &TaskService{taskRepo: taskRepo, categoryRepo: categoryRepo, sessionRepo: sessionRepo, loc: loc}
}

func (s *TaskService) List(ctx context.Context) ([]model.Task, error) {
	return s.taskRepo.List(ctx)
}

func (s *TaskService) Get(ctx context.Context, id string) (*model.Task, error) {
	return s.taskRepo.FindByID(ctx, id)
}

// Create validates input and stores a new task with a fresh id.
func (s *TaskService) Create(ctx context.Context, input TaskInput, now time.Time) (*model.Task, error) {
	label := strings.TrimSpace(input.Label)
	if label == "" {
		return nil, ErrEmptyLabel
	}

	category, err := s.categoryRepo.FindByName(ctx, input.Category)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnknownCategory
		}
		return nil, err
	}

	task := model.Task{
		ID:          uuid.NewString(),
		Category:    category.Name,
		Label:       label,
		Description: strings.TrimSpace(input.Description),
		Date:        strings.TrimSpace(input.Date),
		StartTime:   strings.TrimSpace(input.StartTime),
		EndTime:     strings.TrimSpace(input.EndTime),
		CreatedAt:   now,
	}

	if err := s.validateWindow(task); err != nil {
		return nil, err
	}

	if err := s.taskRepo.Create(ctx, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// Update shallow-merges patch into the task and revalidates the merged
// window. An unknown id is a no-op and returns nil.
func (s *TaskService) Update(ctx context.Context, id string, patch TaskPatch) (*model.Task, error) {
	task, err := s.taskRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	if patch.Label != nil {
		label := strings.TrimSpace(*patch.Label)
		if label == "" {
			return nil, ErrEmptyLabel
		}
		task.Label = label
	}
	if patch.Category != nil {
		category, err := s.categoryRepo.FindByName(ctx, *patch.Category)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrUnknownCategory
			}
			return nil, err
		}
		task.Category = category.Name
	}
	if patch.Description != nil {
		task.Description = strings.TrimSpace(*patch.Description)
	}
	if patch.Date != nil {
		task.Date = strings.TrimSpace(*patch.Date)
	}
	if patch.StartTime != nil {
		task.StartTime = strings.TrimSpace(*patch.StartTime)
	}
	if patch.EndTime != nil {
		task.EndTime = strings.TrimSpace(*patch.EndTime)
	}

	if err := s.validateWindow(*task); err != nil {
		return nil, err
	}

	if err := s.taskRepo.Save(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// Remove deletes the task. An active session referencing it is cleared
// without stamping an end time, since the task no longer exists.
func (s *TaskService) Remove(ctx context.Context, id string) error {
	session, err := s.sessionRepo.Get(ctx)
	if err != nil {
		return err
	}
	if session != nil && session.TaskID == id {
		if err := s.sessionRepo.Clear(ctx); err != nil {
			return err
		}
	}
	return s.taskRepo.Delete(ctx, id)
}

// validateWindow rejects tasks with a partial date/time triple or an end
// instant that is not strictly after the start.
func (s *TaskService) validateWindow(task model.Task) error {
	if task.Date == "" && task.StartTime == "" && task.EndTime == "" {
		return nil
	}
	if task.Date == "" || task.StartTime == "" || task.EndTime == "" {
		return ErrPartialWindow
	}
	if _, _, ok := timeutil.TaskWindow(task, s.loc); !ok {
		return ErrInvalidWindow
	}
	return nil
}
