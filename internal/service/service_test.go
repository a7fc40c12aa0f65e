package service

import (
	"context"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"mytime/internal/model"
	"mytime/internal/repository"
)

// fixture wires every service against a fresh in-memory database.
type fixture struct {
	categories *CategoryService
	tasks      *TaskService
	sessions   *SessionService
	moods      *MoodService
	breakdown  *BreakdownService
	reminders  *ReminderService

	categoryRepo *repository.CategoryRepository
	taskRepo     *repository.TaskRepository
	sessionRepo  *repository.SessionRepository
	docRepo      *repository.DocumentRepository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Discard})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap test db: %v", err)
	}
	// A pooled second connection would see a different :memory: database.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := db.AutoMigrate(
		&model.Category{},
		&model.Task{},
		&model.MoodEntry{},
		&model.ActiveSession{},
		&model.Document{},
	); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}

	categoryRepo := repository.NewCategoryRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	moodRepo := repository.NewMoodRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	docRepo := repository.NewDocumentRepository(db)

	taskSvc := NewTaskService(taskRepo, categoryRepo, sessionRepo, time.UTC)

	return &fixture{
		categories:   NewCategoryService(categoryRepo, taskRepo),
		tasks:        taskSvc,
		sessions:     NewSessionService(sessionRepo, taskRepo, time.UTC),
		moods:        NewMoodService(moodRepo),
		breakdown:    NewBreakdownService(docRepo, categoryRepo, taskSvc),
		reminders:    NewReminderService(taskRepo, categoryRepo, moodRepo, time.UTC),
		categoryRepo: categoryRepo,
		taskRepo:     taskRepo,
		sessionRepo:  sessionRepo,
		docRepo:      docRepo,
	}
}

func (f *fixture) seedCategories(t *testing.T, names ...string) {
	t.Helper()
	for _, name := range names {
		if _, err := f.categories.Add(context.Background(), name); err != nil {
			t.Fatalf("seed category %q: %v", name, err)
		}
	}
}

func (f *fixture) mustCreateTask(t *testing.T, input TaskInput, now time.Time) *model.Task {
	t.Helper()
	task, err := f.tasks.Create(context.Background(), input, now)
	if err != nil {
		t.Fatalf("create task: %v", err)
	}
	return task
}
