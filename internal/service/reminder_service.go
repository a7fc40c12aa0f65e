package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"mytime/internal/model"
	"mytime/internal/repository"
	"mytime/internal/timeutil"
)

// ReminderService builds the plain-text daily digest: today's schedule,
// the work balance and the latest mood.
type ReminderService struct {
	taskRepo     *repository.TaskRepository
	categoryRepo *repository.CategoryRepository
	moodRepo     *repository.MoodRepository
	loc          *time.Location
}

func NewReminderService(taskRepo *repository.TaskRepository, categoryRepo *repository.CategoryRepository, moodRepo *repository.MoodRepository, loc *time.Location) *ReminderService {
	return &ReminderService{taskRepo: taskRepo, categoryRepo: categoryRepo, moodRepo: moodRepo, loc: loc}
}

// DailyDigest renders the digest for the day containing now.
func (s *ReminderService) DailyDigest(ctx context.Context, now time.Time) (string, error) {
	tasks, err := s.taskRepo.List(ctx)
	if err != nil {
		return "", err
	}
	categories, err := s.categoryRepo.List(ctx)
	if err != nil {
		return "", err
	}
	moods, err := s.moodRepo.List(ctx)
	if err != nil {
		return "", err
	}

	today := now.Format(timeutil.DateLayout)
	var todays []model.Task
	for _, task := range tasks {
		if task.Date == today {
			todays = append(todays, task)
		}
	}
	sort.SliceStable(todays, func(i, j int) bool {
		return todays[i].StartTime < todays[j].StartTime
	})

	var b strings.Builder
	fmt.Fprintf(&b, "Today's Adventure - %s\n\n", now.Format("Mon Jan 02"))

	if len(todays) == 0 {
		b.WriteString("No tasks scheduled for today.\n")
	}
	for _, task := range todays {
		status := TaskStatus(task, now, s.loc)
		if task.StartTime != "" && task.EndTime != "" {
			fmt.Fprintf(&b, "[%s-%s %s] %s - [%s]\n", task.StartTime, task.EndTime, task.Category, task.Label, status)
		} else {
			fmt.Fprintf(&b, "[%s] %s - [%s]\n", task.Category, task.Label, status)
		}
	}

	b.WriteString("\nWork Balance\n")
	for _, bar := range BalanceBars(categories, tasks) {
		fmt.Fprintf(&b, "- %s: %d%% (%d)\n", bar.Category, bar.Percent, bar.Count)
	}

	if len(moods) > 0 {
		latest := moods[0]
		fmt.Fprintf(&b, "\nLatest mood: %s (%s)", latest.Mood, latest.DateLabel())
		if latest.Note != "" {
			fmt.Fprintf(&b, " - %s", latest.Note)
		}
		b.WriteString("\n")
	}

	if next := NextUpcoming(tasks, now, s.loc); next != nil {
		fmt.Fprintf(&b, "\nNext up: %s\n", next.Label)
	}

	return strings.TrimSpace(b.String()), nil
}
