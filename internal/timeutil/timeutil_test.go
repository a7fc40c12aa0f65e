package timeutil

import (
	"testing"
	"time"

	"mytime/internal/model"
)

func TestCombineDateAndTime(t *testing.T) {
	got, ok := CombineDateAndTime("2024-01-05", "09:00", time.UTC)
	if !ok {
		t.Fatal("expected valid instant")
	}
	want := time.Date(2024, 1, 5, 9, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestCombineDateAndTimeRejectsBadInput(t *testing.T) {
	cases := []struct{ date, clock string }{
		{"", "09:00"},
		{"2024-01-05", ""},
		{"not-a-date", "09:00"},
		{"2024-01-05", "25:61"},
	}
	for _, c := range cases {
		if _, ok := CombineDateAndTime(c.date, c.clock, time.UTC); ok {
			t.Fatalf("expected failure for %q %q", c.date, c.clock)
		}
	}
}

func TestTaskDuration(t *testing.T) {
	task := model.Task{Date: "2024-01-05", StartTime: "09:00", EndTime: "10:30"}
	d, ok := TaskDuration(task, time.UTC)
	if !ok {
		t.Fatal("expected a duration")
	}
	if d != 90*time.Minute {
		t.Fatalf("got %v, want 90m", d)
	}
}

func TestTaskDurationRequiresEndAfterStart(t *testing.T) {
	cases := []model.Task{
		{Date: "2024-01-05", StartTime: "10:00", EndTime: "09:00"},
		{Date: "2024-01-05", StartTime: "09:00", EndTime: "09:00"},
		{Date: "2024-01-05", StartTime: "09:00"},
		{StartTime: "09:00", EndTime: "10:00"},
	}
	for i, task := range cases {
		if _, ok := TaskDuration(task, time.UTC); ok {
			t.Fatalf("case %d: expected no duration", i)
		}
	}
}

func TestFormatMinutes(t *testing.T) {
	cases := []struct {
		d    time.Duration
		want string
	}{
		{90 * time.Minute, "1 hour 30 minutes"},
		{45 * time.Minute, "45 minutes"},
		{2 * time.Hour, "2 hours"},
		{time.Minute, "1 minute"},
		{61 * time.Minute, "1 hour 1 minute"},
		{0, ""},
		{-time.Hour, ""},
		{29 * time.Second, ""},
		{31 * time.Second, "1 minute"},
	}
	for _, c := range cases {
		if got := FormatMinutes(c.d); got != c.want {
			t.Fatalf("FormatMinutes(%v) = %q, want %q", c.d, got, c.want)
		}
	}
}
