package service

import "errors"

var (
	ErrEmptyLabel        = errors.New("service: task label is required")
	ErrInvalidWindow     = errors.New("service: end time must be after start time")
	ErrPartialWindow     = errors.New("service: date, start time and end time are required together")
	ErrUnknownCategory   = errors.New("service: category does not exist")
	ErrEmptyCategory     = errors.New("service: category name is required")
	ErrDuplicateCategory = errors.New("service: category already exists")
	ErrLastCategory      = errors.New("service: cannot delete the last category")
	ErrCategoryNotFound  = errors.New("service: category not found")
	ErrEmptyMood         = errors.New("service: mood is required")
	ErrNoSession         = errors.New("service: no active session")
	ErrTaskNotTimed      = errors.New("service: task has no valid time window")
	ErrSessionNotDue     = errors.New("service: planned start has not arrived yet")
	ErrStepOutOfRange    = errors.New("service: step index out of range")
)
