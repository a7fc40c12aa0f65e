package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"mytime/internal/model"
)

func timedTask(f *fixture, t *testing.T, label, start, end string) *model.Task {
	t.Helper()
	created := time.Date(2024, 1, 5, 8, 0, 0, 0, time.UTC)
	return f.mustCreateTask(t, TaskInput{
		Category: "Study", Label: label, Date: "2024-01-05", StartTime: start, EndTime: end,
	}, created)
}

func TestSessionLifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seedCategories(t, "Study")

	task := timedTask(f, t, "Read Ch 3", "09:00", "10:00")

	// Before the planned start the task waits and a session is refused.
	before := time.Date(2024, 1, 5, 8, 30, 0, 0, time.UTC)
	if got := TaskStatus(*task, before, time.UTC); got != StatusWait {
		t.Fatalf("status before start = %q, want WAIT", got)
	}
	if _, err := f.sessions.Start(ctx, task.ID, before); !errors.Is(err, ErrSessionNotDue) {
		t.Fatalf("expected ErrSessionNotDue, got %v", err)
	}

	// At 09:00 the task is startable.
	at := time.Date(2024, 1, 5, 9, 0, 0, 0, time.UTC)
	if got := TaskStatus(*task, at, time.UTC); got != StatusStart {
		t.Fatalf("status at start = %q, want START", got)
	}

	session, err := f.sessions.Start(ctx, task.ID, at)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	wantEnd := time.Date(2024, 1, 5, 10, 0, 0, 0, time.UTC)
	if !session.EndsAt.Equal(wantEnd) {
		t.Fatalf("endsAt = %v, want %v", session.EndsAt, wantEnd)
	}

	// One second past the scheduled end the tick auto-terminates and
	// stamps the scheduled end, not the tick time.
	tick := time.Date(2024, 1, 5, 10, 0, 1, 0, time.UTC)
	if err := f.sessions.Advance(ctx, tick); err != nil {
		t.Fatalf("advance: %v", err)
	}

	cleared, err := f.sessions.Get(ctx)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if cleared != nil {
		t.Fatalf("session not cleared: %+v", cleared)
	}

	ended, err := f.tasks.Get(ctx, task.ID)
	if err != nil {
		t.Fatalf("get task: %v", err)
	}
	if ended.EndedAt == nil || !ended.EndedAt.Equal(wantEnd) {
		t.Fatalf("endedAt = %v, want %v", ended.EndedAt, wantEnd)
	}
	if got := TaskStatus(*ended, tick, time.UTC); got != StatusEnded {
		t.Fatalf("status after expiry = %q, want ENDED", got)
	}
}

func TestStartWhileRunningIsNoop(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seedCategories(t, "Study")

	first := timedTask(f, t, "first", "09:00", "10:00")
	second := timedTask(f, t, "second", "09:00", "11:00")

	now := time.Date(2024, 1, 5, 9, 0, 0, 0, time.UTC)
	started, err := f.sessions.Start(ctx, first.ID, now)
	if err != nil {
		t.Fatalf("start first: %v", err)
	}

	again, err := f.sessions.Start(ctx, second.ID, now.Add(time.Minute))
	if err != nil {
		t.Fatalf("second start should be a no-op, got error: %v", err)
	}
	if again.TaskID != first.ID {
		t.Fatalf("session moved to %s, want %s", again.TaskID, first.ID)
	}
	if !again.EndsAt.Equal(started.EndsAt) {
		t.Fatalf("endsAt changed: %v -> %v", started.EndsAt, again.EndsAt)
	}
}

func TestStartRequiresValidWindow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seedCategories(t, "Study")

	untimed := f.mustCreateTask(t, TaskInput{Category: "Study", Label: "someday"},
		time.Date(2024, 1, 5, 8, 0, 0, 0, time.UTC))

	now := time.Date(2024, 1, 5, 9, 0, 0, 0, time.UTC)
	if _, err := f.sessions.Start(ctx, untimed.ID, now); !errors.Is(err, ErrTaskNotTimed) {
		t.Fatalf("expected ErrTaskNotTimed, got %v", err)
	}
}

func TestManualEndStampsCurrentTime(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seedCategories(t, "Study")

	task := timedTask(f, t, "Read", "09:00", "10:00")
	start := time.Date(2024, 1, 5, 9, 0, 0, 0, time.UTC)
	if _, err := f.sessions.Start(ctx, task.ID, start); err != nil {
		t.Fatalf("start: %v", err)
	}

	endAt := time.Date(2024, 1, 5, 9, 25, 0, 0, time.UTC)
	if err := f.sessions.End(ctx, endAt); err != nil {
		t.Fatalf("end: %v", err)
	}

	session, err := f.sessions.Get(ctx)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if session != nil {
		t.Fatal("session still present after end")
	}

	ended, err := f.tasks.Get(ctx, task.ID)
	if err != nil {
		t.Fatalf("get task: %v", err)
	}
	if ended.EndedAt == nil || !ended.EndedAt.Equal(endAt) {
		t.Fatalf("endedAt = %v, want %v", ended.EndedAt, endAt)
	}
}

func TestEndWithoutSession(t *testing.T) {
	f := newFixture(t)
	if err := f.sessions.End(context.Background(), time.Now()); !errors.Is(err, ErrNoSession) {
		t.Fatalf("expected ErrNoSession, got %v", err)
	}
}

func TestAdvanceBeforeExpiryKeepsSession(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seedCategories(t, "Study")

	task := timedTask(f, t, "Read", "09:00", "10:00")
	start := time.Date(2024, 1, 5, 9, 0, 0, 0, time.UTC)
	if _, err := f.sessions.Start(ctx, task.ID, start); err != nil {
		t.Fatalf("start: %v", err)
	}

	if err := f.sessions.Advance(ctx, start.Add(30*time.Minute)); err != nil {
		t.Fatalf("advance: %v", err)
	}
	session, err := f.sessions.Get(ctx)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if session == nil {
		t.Fatal("session cleared before its scheduled end")
	}
}

func TestCountdown(t *testing.T) {
	session := model.ActiveSession{
		EndsAt: time.Date(2024, 1, 5, 10, 0, 0, 0, time.UTC),
	}
	cases := []struct {
		now  time.Time
		want string
	}{
		{time.Date(2024, 1, 5, 9, 58, 35, 0, time.UTC), "01:25"},
		{time.Date(2024, 1, 5, 9, 0, 0, 0, time.UTC), "60:00"},
		{time.Date(2024, 1, 5, 10, 0, 1, 0, time.UTC), "00:00"},
	}
	for _, c := range cases {
		if got := Countdown(session, c.now); got != c.want {
			t.Fatalf("Countdown at %v = %q, want %q", c.now, got, c.want)
		}
	}
}
