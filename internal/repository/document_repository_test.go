package repository

import (
	"context"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"mytime/internal/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Discard})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap test db: %v", err)
	}
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
	return db
}

type sampleDoc struct {
	Text string `json:"text"`
}

func TestDocumentRoundTrip(t *testing.T) {
	repo := NewDocumentRepository(newTestDB(t))
	ctx := context.Background()

	if err := repo.Save(ctx, model.DocNotes, sampleDoc{Text: "prefers mornings"}); err != nil {
		t.Fatalf("save: %v", err)
	}

	var loaded sampleDoc
	if !repo.Load(ctx, model.DocNotes, &loaded) {
		t.Fatal("expected load to succeed")
	}
	if loaded.Text != "prefers mornings" {
		t.Fatalf("got %q", loaded.Text)
	}

	// Saving again replaces the value.
	if err := repo.Save(ctx, model.DocNotes, sampleDoc{Text: "updated"}); err != nil {
		t.Fatalf("save again: %v", err)
	}
	if !repo.Load(ctx, model.DocNotes, &loaded) || loaded.Text != "updated" {
		t.Fatalf("got %q, want updated", loaded.Text)
	}
}

func TestDocumentLoadMissingKey(t *testing.T) {
	repo := NewDocumentRepository(newTestDB(t))

	var doc sampleDoc
	if repo.Load(context.Background(), "mytime:absent", &doc) {
		t.Fatal("load of a missing key must report false")
	}
	if doc.Text != "" {
		t.Fatalf("output mutated: %q", doc.Text)
	}
}

func TestDocumentLoadCorruptValue(t *testing.T) {
	db := newTestDB(t)
	repo := NewDocumentRepository(db)
	ctx := context.Background()

	broken := model.Document{Key: model.DocNotes, Value: "{not json"}
	if err := db.Create(&broken).Error; err != nil {
		t.Fatalf("seed corrupt doc: %v", err)
	}

	var doc sampleDoc
	if repo.Load(ctx, model.DocNotes, &doc) {
		t.Fatal("corrupt JSON must report false, not error")
	}
}

func TestDocumentLoadWrongShape(t *testing.T) {
	db := newTestDB(t)
	repo := NewDocumentRepository(db)
	ctx := context.Background()

	// An object where a list is expected.
	stored := model.Document{Key: model.DocBreakdown, Value: `{"steps": 42}`}
	if err := db.Create(&stored).Error; err != nil {
		t.Fatalf("seed doc: %v", err)
	}

	var steps []string
	if repo.Load(ctx, model.DocBreakdown, &steps) {
		t.Fatal("shape mismatch must report false")
	}
}

func TestDocumentDelete(t *testing.T) {
	repo := NewDocumentRepository(newTestDB(t))
	ctx := context.Background()

	if err := repo.Save(ctx, model.DocNotes, sampleDoc{Text: "x"}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := repo.Delete(ctx, model.DocNotes); err != nil {
		t.Fatalf("delete: %v", err)
	}
	var doc sampleDoc
	if repo.Load(ctx, model.DocNotes, &doc) {
		t.Fatal("document still present after delete")
	}

	// Deleting an absent key is not an error.
	if err := repo.Delete(ctx, "mytime:absent"); err != nil {
		t.Fatalf("delete absent: %v", err)
	}
}
