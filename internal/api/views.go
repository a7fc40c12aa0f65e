package api

import (
	"time"

	"mytime/internal/model"
	"mytime/internal/service"
	"mytime/internal/timeutil"
)

// taskView is the JSON shape of a planner task, with its derived status
// label and, when a session is running for it, the mm:ss countdown.
type taskView struct {
	ID          string     `json:"id"`
	Category    string     `json:"category"`
	Label       string     `json:"label"`
	Description string     `json:"description,omitempty"`
	Date        string     `json:"date,omitempty"`
	StartTime   string     `json:"startTime,omitempty"`
	EndTime     string     `json:"endTime,omitempty"`
	EndedAt     *time.Time `json:"endedAt"`
	CreatedAt   time.Time  `json:"createdAt"`
	Status      string     `json:"status"`
	Duration    string     `json:"duration,omitempty"`
	Countdown   string     `json:"countdown,omitempty"`
}

func (s *Server) taskView(task model.Task, session *model.ActiveSession, now time.Time) taskView {
	view := taskView{
		ID:          task.ID,
		Category:    task.Category,
		Label:       task.Label,
		Description: task.Description,
		Date:        task.Date,
		StartTime:   task.StartTime,
		EndTime:     task.EndTime,
		EndedAt:     task.EndedAt,
		CreatedAt:   task.CreatedAt,
		Status:      service.TaskStatus(task, now, s.loc),
	}
	if d, ok := timeutil.TaskDuration(task, s.loc); ok {
		view.Duration = timeutil.FormatMinutes(d)
	}
	if session != nil && session.TaskID == task.ID {
		view.Countdown = service.Countdown(*session, now)
	}
	return view
}

func (s *Server) taskViews(tasks []model.Task, session *model.ActiveSession, now time.Time) []taskView {
	views := make([]taskView, 0, len(tasks))
	for _, task := range tasks {
		views = append(views, s.taskView(task, session, now))
	}
	return views
}

type moodView struct {
	ID        string    `json:"id"`
	Mood      string    `json:"mood"`
	Note      string    `json:"note,omitempty"`
	DateLabel string    `json:"dateLabel"`
	CreatedAt time.Time `json:"createdAt"`
}

func moodViews(entries []model.MoodEntry) []moodView {
	views := make([]moodView, 0, len(entries))
	for _, e := range entries {
		views = append(views, moodView{
			ID:        e.ID,
			Mood:      e.Mood,
			Note:      e.Note,
			DateLabel: e.DateLabel(),
			CreatedAt: e.CreatedAt,
		})
	}
	return views
}

type sessionView struct {
	TaskID    string    `json:"taskId"`
	StartedAt time.Time `json:"startedAt"`
	EndsAt    time.Time `json:"endsAt"`
	Countdown string    `json:"countdown"`
}

func newSessionView(session model.ActiveSession, now time.Time) sessionView {
	return sessionView{
		TaskID:    session.TaskID,
		StartedAt: session.StartedAt,
		EndsAt:    session.EndsAt,
		Countdown: service.Countdown(session, now),
	}
}

// notesDoc is the persisted personal-notes document.
type notesDoc struct {
	Text string `json:"text"`
}
