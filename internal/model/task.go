package model

import "time"

// Task represents a single schedulable unit of work in the planner.
//
// Date holds "2006-01-02", StartTime and EndTime hold "15:04". A task is
// "timed" when all three are set; the end instant must be strictly after
// the start instant. EndedAt is stamped when a work session for the task
// completes or is ended manually.
type Task struct {
	ID          string `gorm:"primaryKey"`
	Category    string `gorm:"index"`
	Label       string
	Description string
	Date        string
	StartTime   string
	EndTime     string
	EndedAt     *time.Time
	CreatedAt   time.Time `gorm:"index"`
	UpdatedAt   time.Time
}
