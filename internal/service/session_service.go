package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"mytime/internal/model"
	"mytime/internal/repository"
	"mytime/internal/timeutil"
)

// Task status labels shown on the planner.
const (
	StatusEnded = "ENDED"
	StatusWait  = "WAIT"
	StatusStart = "START"
)

// SessionService enforces the single-active-session rule and derives
// session state from an injected wall-clock sample, so transitions are
// deterministic under test.
type SessionService struct {
	sessionRepo *repository.SessionRepository
	taskRepo    *repository.TaskRepository
	loc         *time.Location
}

func NewSessionService(sessionRepo *repository.SessionRepository, taskRepo *repository.TaskRepository, loc *time.Location) *SessionService {
	return &SessionService{sessionRepo: sessionRepo, taskRepo: taskRepo, loc: loc}
}

func (s *SessionService) Get(ctx context.Context) (*model.ActiveSession, error) {
	return s.sessionRepo.Get(ctx)
}

// Start begins a session for the task. Guards: the task must have a
// valid time window, its planned start must have arrived, and no other
// session may be running. A running session makes Start a no-op that
// returns the existing session unchanged.
func (s *SessionService) Start(ctx context.Context, taskID string, now time.Time) (*model.ActiveSession, error) {
	existing, err := s.sessionRepo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	task, err := s.taskRepo.FindByID(ctx, taskID)
	if err != nil {
		return nil, fmt.Errorf("find task: %w", err)
	}

	start, end, ok := timeutil.TaskWindow(*task, s.loc)
	if !ok {
		return nil, ErrTaskNotTimed
	}
	if start.After(now) {
		return nil, ErrSessionNotDue
	}

	session := model.ActiveSession{
		TaskID:    task.ID,
		StartedAt: now,
		EndsAt:    now.Add(end.Sub(start)),
	}
	if err := s.sessionRepo.Set(ctx, session); err != nil {
		return nil, err
	}
	session.ID = model.ActiveSessionID
	return &session, nil
}

// End terminates the running session and stamps the task's end time
// with the current instant.
func (s *SessionService) End(ctx context.Context, now time.Time) error {
	session, err := s.sessionRepo.Get(ctx)
	if err != nil {
		return err
	}
	if session == nil {
		return ErrNoSession
	}

	if err := s.taskRepo.StampEnded(ctx, session.TaskID, now); err != nil {
		return err
	}
	return s.sessionRepo.Clear(ctx)
}

// Advance is the periodic tick. Once the wall clock passes the session's
// scheduled end, the task is stamped with that scheduled end (not the
// tick time, so poll granularity cannot drift the stamp) and the
// session clears. A session whose task vanished clears without stamping.
func (s *SessionService) Advance(ctx context.Context, now time.Time) error {
	session, err := s.sessionRepo.Get(ctx)
	if err != nil {
		return err
	}
	if session == nil {
		return nil
	}

	if _, err := s.taskRepo.FindByID(ctx, session.TaskID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return s.sessionRepo.Clear(ctx)
		}
		return err
	}

	if now.Before(session.EndsAt) {
		return nil
	}

	if err := s.taskRepo.StampEnded(ctx, session.TaskID, session.EndsAt); err != nil {
		return err
	}
	return s.sessionRepo.Clear(ctx)
}

// TaskStatus derives the planner label for a task: ENDED once an end
// time is stamped, WAIT while the planned start is in the future,
// otherwise START.
func TaskStatus(task model.Task, now time.Time, loc *time.Location) string {
	if task.EndedAt != nil {
		return StatusEnded
	}
	if start, ok := timeutil.CombineDateAndTime(task.Date, task.StartTime, loc); ok && start.After(now) {
		return StatusWait
	}
	return StatusStart
}

// Countdown renders the mm:ss time remaining in a running session,
// clamped at zero.
func Countdown(session model.ActiveSession, now time.Time) string {
	remaining := session.EndsAt.Sub(now)
	if remaining < 0 {
		remaining = 0
	}
	remaining = remaining.Round(time.Second)
	minutes := int(remaining / time.Minute)
	seconds := int(remaining%time.Minute) / int(time.Second)
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}
