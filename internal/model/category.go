package model

import "time"

// Category is a user-defined label grouping planner tasks (Study, Self, Work, ...).
// Position preserves insertion order, which drives balance-bar display order.
type Category struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"uniqueIndex"`
	Position  int    `gorm:"index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// DefaultCategories seeds an empty database on first run.
var DefaultCategories = []string{"Study", "Self", "Work"}
