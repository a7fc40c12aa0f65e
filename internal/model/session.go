package model

import "time"

// ActiveSession is the single running work session. At most one row
// exists; the fixed primary key enforces that at the storage level.
type ActiveSession struct {
	ID        uint   `gorm:"primaryKey"`
	TaskID    string `gorm:"index"`
	StartedAt time.Time
	EndsAt    time.Time
}

// ActiveSessionID is the key of the singleton row.
const ActiveSessionID uint = 1
