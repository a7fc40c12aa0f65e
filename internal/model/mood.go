package model

import "time"

// Known mood tags. The field accepts any non-empty string; these are the
// values the dashboard offers.
const (
	MoodGreat       = "Great"
	MoodGood        = "Good"
	MoodNeutral     = "Neutral"
	MoodStressed    = "Stressed"
	MoodOverwhelmed = "Overwhelmed"
)

// MoodEntry is an append-only journal record. Entries are deleted by
// explicit user action and never edited in place.
type MoodEntry struct {
	ID        string `gorm:"primaryKey"`
	Mood      string
	Note      string
	CreatedAt time.Time `gorm:"index"`
}

// DateLabel renders the short date shown next to an entry and fed into
// suggestion prompts.
func (m MoodEntry) DateLabel() string {
	return m.CreatedAt.Format("Jan 02")
}
