package service

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"mytime/internal/model"
	"mytime/internal/repository"
	"mytime/internal/timeutil"
)

// Step duration parsing bounds.
const (
	defaultStepMinutes = 30
	minStepMinutes     = 5
	maxStepMinutes     = 300
)

// Assigned steps always start at the fixed default time.
const stepStartTime = "09:00"

var stepMinutesRe = regexp.MustCompile(`\((\d+)\s*[mM]\)`)

// BreakdownContext is the snapshot of the assignment the steps were
// generated for.
type BreakdownContext struct {
	TaskName string `json:"taskName"`
	TaskDate string `json:"taskDate"`
	Priority string `json:"priority"`
}

// BreakdownState is the persisted steps document.
type BreakdownState struct {
	Steps   []string         `json:"steps"`
	Context BreakdownContext `json:"context"`
}

// BreakdownService manages the step list and materializes steps into
// planner tasks.
type BreakdownService struct {
	docRepo      *repository.DocumentRepository
	categoryRepo *repository.CategoryRepository
	taskSvc      *TaskService
}

func NewBreakdownService(docRepo *repository.DocumentRepository, categoryRepo *repository.CategoryRepository, taskSvc *TaskService) *BreakdownService {
	return &BreakdownService{docRepo: docRepo, categoryRepo: categoryRepo, taskSvc: taskSvc}
}

// State loads the current steps document; a missing or corrupt document
// yields an empty state.
func (s *BreakdownService) State(ctx context.Context) BreakdownState {
	var state BreakdownState
	if !s.docRepo.Load(ctx, model.DocBreakdown, &state) {
		return BreakdownState{Steps: []string{}}
	}
	if state.Steps == nil {
		state.Steps = []string{}
	}
	return state
}

// SetSteps replaces the step list and its context snapshot.
func (s *BreakdownService) SetSteps(ctx context.Context, steps []string, bctx BreakdownContext) (BreakdownState, error) {
	state := BreakdownState{Steps: steps, Context: bctx}
	if state.Steps == nil {
		state.Steps = []string{}
	}
	if err := s.docRepo.Save(ctx, model.DocBreakdown, state); err != nil {
		return BreakdownState{}, err
	}
	return state, nil
}

// UpdateStep rewrites one step in place.
func (s *BreakdownService) UpdateStep(ctx context.Context, index int, text string) (BreakdownState, error) {
	state := s.State(ctx)
	if index < 0 || index >= len(state.Steps) {
		return BreakdownState{}, ErrStepOutOfRange
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return BreakdownState{}, ErrEmptyLabel
	}
	state.Steps[index] = text
	if err := s.docRepo.Save(ctx, model.DocBreakdown, state); err != nil {
		return BreakdownState{}, err
	}
	return state, nil
}

// DeleteStep removes one step.
func (s *BreakdownService) DeleteStep(ctx context.Context, index int) (BreakdownState, error) {
	state := s.State(ctx)
	if index < 0 || index >= len(state.Steps) {
		return BreakdownState{}, ErrStepOutOfRange
	}
	state.Steps = append(state.Steps[:index], state.Steps[index+1:]...)
	if err := s.docRepo.Save(ctx, model.DocBreakdown, state); err != nil {
		return BreakdownState{}, err
	}
	return state, nil
}

// AssignStep materializes one step as a planner task: a same-day task
// starting at 09:00 lasting the step's embedded duration, in the Study
// category when it exists. The step stays in the list.
func (s *BreakdownService) AssignStep(ctx context.Context, index int, now time.Time) (*model.Task, error) {
	state := s.State(ctx)
	if index < 0 || index >= len(state.Steps) {
		return nil, ErrStepOutOfRange
	}
	return s.assign(ctx, state.Steps[index], state.Context, now)
}

// AssignAll materializes every step in order.
func (s *BreakdownService) AssignAll(ctx context.Context, now time.Time) ([]model.Task, error) {
	state := s.State(ctx)
	tasks := make([]model.Task, 0, len(state.Steps))
	for _, step := range state.Steps {
		task, err := s.assign(ctx, step, state.Context, now)
		if err != nil {
			return tasks, err
		}
		tasks = append(tasks, *task)
	}
	return tasks, nil
}

func (s *BreakdownService) assign(ctx context.Context, step string, bctx BreakdownContext, now time.Time) (*model.Task, error) {
	minutes := ParseStepMinutes(step)

	start, _ := time.Parse(timeutil.ClockLayout, stepStartTime)
	end := start.Add(time.Duration(minutes) * time.Minute)

	category, err := s.pickCategory(ctx)
	if err != nil {
		return nil, err
	}

	label := strings.TrimSpace(step)
	if name := strings.TrimSpace(bctx.TaskName); name != "" {
		label = fmt.Sprintf("%s: %s", name, label)
	}

	date := now.Format(timeutil.DateLayout)
	if due := strings.TrimSpace(bctx.TaskDate); due != "" {
		if _, err := time.Parse(timeutil.DateLayout, due); err == nil {
			date = due
		}
	}

	return s.taskSvc.Create(ctx, TaskInput{
		Category:  category,
		Label:     label,
		Date:      date,
		StartTime: start.Format(timeutil.ClockLayout),
		EndTime:   end.Format(timeutil.ClockLayout),
	}, now)
}

// pickCategory prefers Study, falling back to the first known category.
func (s *BreakdownService) pickCategory(ctx context.Context) (string, error) {
	categories, err := s.categoryRepo.List(ctx)
	if err != nil {
		return "", err
	}
	if len(categories) == 0 {
		return "", ErrCategoryNotFound
	}
	for _, c := range categories {
		if strings.EqualFold(c.Name, "Study") {
			return c.Name, nil
		}
	}
	return categories[0].Name, nil
}

// ParseStepMinutes extracts the parenthesized "(Nm)" estimate embedded
// in a step, defaulting to 30 and clamping to [5, 300].
func ParseStepMinutes(step string) int {
	match := stepMinutesRe.FindStringSubmatch(step)
	if match == nil {
		return defaultStepMinutes
	}
	minutes, err := strconv.Atoi(match[1])
	if err != nil {
		return defaultStepMinutes
	}
	if minutes < minStepMinutes {
		return minStepMinutes
	}
	if minutes > maxStepMinutes {
		return maxStepMinutes
	}
	return minutes
}
