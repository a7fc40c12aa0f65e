package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"mytime/internal/model"
)

// SessionRepository manages the singleton active-session row.
type SessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// Get returns the active session, or nil when none is running.
func (r *SessionRepository) Get(ctx context.Context) (*model.ActiveSession, error) {
	var session model.ActiveSession
	err := r.db.WithContext(ctx).First(&session, model.ActiveSessionID).Error
	switch {
	case err == nil:
		return &session, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, nil
	default:
		return nil, fmt.Errorf("load session: %w", err)
	}
}

// Set replaces the active session.
func (r *SessionRepository) Set(ctx context.Context, session model.ActiveSession) error {
	session.ID = model.ActiveSessionID
	if err := r.db.WithContext(ctx).Save(&session).Error; err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Clear removes the active session if present.
func (r *SessionRepository) Clear(ctx context.Context) error {
	if err := r.db.WithContext(ctx).Delete(&model.ActiveSession{}, model.ActiveSessionID).Error; err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
