package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"mytime/internal/model"
	"mytime/internal/repository"
)

// MoodService manages the append-only mood journal.
type MoodService struct {
	moodRepo *repository.MoodRepository
}

func NewMoodService(moodRepo *repository.MoodRepository) *MoodService {
	return &MoodService{moodRepo: moodRepo}
}

// Add appends a journal entry. Any non-empty mood string is accepted;
// the dashboard offers the known tags from the model package.
func (s *MoodService) Add(ctx context.Context, mood, note string, now time.Time) (*model.MoodEntry, error) {
	mood = strings.TrimSpace(mood)
	if mood == "" {
		return nil, ErrEmptyMood
	}

	entry := model.MoodEntry{
		ID:        uuid.NewString(),
		Mood:      mood,
		Note:      strings.TrimSpace(note),
		CreatedAt: now,
	}
	if err := s.moodRepo.Create(ctx, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

func (s *MoodService) List(ctx context.Context) ([]model.MoodEntry, error) {
	return s.moodRepo.List(ctx)
}

func (s *MoodService) Delete(ctx context.Context, id string) error {
	return s.moodRepo.Delete(ctx, id)
}
