package model

import "time"

// Document is a namespaced key with a JSON-encoded value. It backs the
// state slices that are plain cached blobs rather than relational data:
// the AI suggestion bundle, breakdown steps with their context snapshot,
// and free-text personal notes.
type Document struct {
	Key       string `gorm:"primaryKey"`
	Value     string
	UpdatedAt time.Time
}

// Document keys.
const (
	DocSuggestions = "mytime:suggestions"
	DocBreakdown   = "mytime:breakdown"
	DocNotes       = "mytime:notes"
)
