package timeutil

import (
	"fmt"
	"strings"
	"time"

	"mytime/internal/model"
)

const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04"
)

// CombineDateAndTime resolves a calendar date plus a clock time into an
// absolute instant in loc. ok is false when either part is absent or
// does not parse.
func CombineDateAndTime(date, clock string, loc *time.Location) (time.Time, bool) {
	date = strings.TrimSpace(date)
	clock = strings.TrimSpace(clock)
	if date == "" || clock == "" {
		return time.Time{}, false
	}
	t, err := time.ParseInLocation(DateLayout+" "+ClockLayout, date+" "+clock, loc)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// TaskWindow resolves a task's planned start and end instants. ok is
// false unless both resolve and end is strictly after start.
func TaskWindow(task model.Task, loc *time.Location) (start, end time.Time, ok bool) {
	start, ok = CombineDateAndTime(task.Date, task.StartTime, loc)
	if !ok {
		return time.Time{}, time.Time{}, false
	}
	end, ok = CombineDateAndTime(task.Date, task.EndTime, loc)
	if !ok || !end.After(start) {
		return time.Time{}, time.Time{}, false
	}
	return start, end, true
}

// TaskDuration returns the planned duration of a timed task.
func TaskDuration(task model.Task, loc *time.Location) (time.Duration, bool) {
	start, end, ok := TaskWindow(task, loc)
	if !ok {
		return 0, false
	}
	return end.Sub(start), true
}

// FormatMinutes renders a duration as whole hours and/or minutes,
// rounded to the nearest minute: "1 hour 30 minutes", "45 minutes",
// "2 hours". Zero or negative durations render as "".
func FormatMinutes(d time.Duration) string {
	total := int(d.Round(time.Minute) / time.Minute)
	if total <= 0 {
		return ""
	}
	hours := total / 60
	minutes := total % 60

	var parts []string
	if hours > 0 {
		parts = append(parts, fmt.Sprintf("%d %s", hours, plural(hours, "hour")))
	}
	if minutes > 0 {
		parts = append(parts, fmt.Sprintf("%d %s", minutes, plural(minutes, "minute")))
	}
	return strings.Join(parts, " ")
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
