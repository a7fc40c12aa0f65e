package service

import (
	"testing"
	"time"

	"mytime/internal/model"
)

func categories(names ...string) []model.Category {
	out := make([]model.Category, len(names))
	for i, name := range names {
		out[i] = model.Category{ID: uint(i + 1), Name: name, Position: i}
	}
	return out
}

func TestCategoryCountsIgnoresUnknown(t *testing.T) {
	cats := categories("Study", "Self")
	tasks := []model.Task{
		{ID: "a", Category: "Study"},
		{ID: "b", Category: "Study"},
		{ID: "c", Category: "Self"},
		{ID: "d", Category: "Ghost"},
	}

	counts := CategoryCounts(cats, tasks)
	if counts["Study"] != 2 || counts["Self"] != 1 {
		t.Fatalf("unexpected counts: %v", counts)
	}
	if _, ok := counts["Ghost"]; ok {
		t.Fatal("unknown category counted")
	}
}

func TestBalanceBarsTwoThirdsSplit(t *testing.T) {
	cats := categories("Study", "Self")
	tasks := []model.Task{
		{ID: "a", Category: "Study"},
		{ID: "b", Category: "Study"},
		{ID: "c", Category: "Self"},
	}

	bars := BalanceBars(cats, tasks)
	if len(bars) != 2 {
		t.Fatalf("got %d bars", len(bars))
	}
	if bars[0].Category != "Study" || bars[0].Percent != 67 {
		t.Fatalf("top bar = %+v, want Study at 67", bars[0])
	}
	if bars[1].Category != "Self" || bars[1].Percent != 33 {
		t.Fatalf("second bar = %+v, want Self at 33", bars[1])
	}

	if got := TopCategory(cats, tasks); got != "Study" {
		t.Fatalf("TopCategory = %q, want Study", got)
	}
}

func TestBalanceBarsNoTasks(t *testing.T) {
	bars := BalanceBars(categories("Study", "Self"), nil)
	for _, bar := range bars {
		if bar.Percent != 0 || bar.Count != 0 {
			t.Fatalf("expected all-zero bars, got %+v", bar)
		}
	}
}

func TestBalancePercentagesSumNear100(t *testing.T) {
	cats := categories("A", "B", "C")
	tasks := []model.Task{
		{ID: "1", Category: "A"},
		{ID: "2", Category: "A"},
		{ID: "3", Category: "B"},
		{ID: "4", Category: "B"},
		{ID: "5", Category: "C"},
		{ID: "6", Category: "C"},
		{ID: "7", Category: "C"},
	}

	var sum int
	for _, bar := range BalanceBars(cats, tasks) {
		sum += bar.Percent
	}
	if sum < 97 || sum > 103 {
		t.Fatalf("percentages sum to %d, want ~100", sum)
	}
}

func TestBalanceBarsStableOnTies(t *testing.T) {
	cats := categories("Study", "Self", "Work")
	tasks := []model.Task{
		{ID: "a", Category: "Self"},
		{ID: "b", Category: "Study"},
	}

	bars := BalanceBars(cats, tasks)
	// Study and Self tie at 1; original category order breaks the tie.
	if bars[0].Category != "Study" || bars[1].Category != "Self" || bars[2].Category != "Work" {
		t.Fatalf("unexpected order: %+v", bars)
	}
}

func TestTopCategoryFallbacks(t *testing.T) {
	if got := TopCategory(nil, nil); got != "" {
		t.Fatalf("no categories: got %q, want empty", got)
	}
	if got := TopCategory(categories("Study", "Self"), nil); got != "Study" {
		t.Fatalf("all-zero counts: got %q, want Study", got)
	}
}

func TestNextUpcoming(t *testing.T) {
	now := time.Date(2024, 1, 5, 9, 30, 0, 0, time.UTC)
	ended := now.Add(-time.Hour)

	tasks := []model.Task{
		{ID: "past", Label: "past", Date: "2024-01-05", StartTime: "09:00", EndTime: "10:00"},
		{ID: "soonest", Label: "soonest", Date: "2024-01-05", StartTime: "10:00", EndTime: "11:00"},
		{ID: "later", Label: "later", Date: "2024-01-05", StartTime: "12:00", EndTime: "13:00"},
		{ID: "done", Label: "done", Date: "2024-01-05", StartTime: "10:00", EndTime: "11:00", EndedAt: &ended},
		{ID: "untimed", Label: "untimed"},
	}

	next := NextUpcoming(tasks, now, time.UTC)
	if next == nil || next.ID != "soonest" {
		t.Fatalf("next = %+v, want soonest", next)
	}
	if !HasUpcoming(tasks, now, time.UTC) {
		t.Fatal("HasUpcoming = false, want true")
	}
}

func TestNextUpcomingTieBreaksOnID(t *testing.T) {
	now := time.Date(2024, 1, 5, 9, 0, 0, 0, time.UTC)
	tasks := []model.Task{
		{ID: "b", Label: "second", Date: "2024-01-05", StartTime: "10:00", EndTime: "11:00"},
		{ID: "a", Label: "first", Date: "2024-01-05", StartTime: "10:00", EndTime: "11:00"},
	}

	next := NextUpcoming(tasks, now, time.UTC)
	if next == nil || next.ID != "a" {
		t.Fatalf("next = %+v, want task a", next)
	}
}

func TestNoUpcoming(t *testing.T) {
	now := time.Date(2024, 1, 5, 14, 0, 0, 0, time.UTC)
	tasks := []model.Task{
		{ID: "past", Date: "2024-01-05", StartTime: "09:00", EndTime: "10:00"},
	}
	if HasUpcoming(tasks, now, time.UTC) {
		t.Fatal("HasUpcoming = true, want false")
	}
	if next := NextUpcoming(tasks, now, time.UTC); next != nil {
		t.Fatalf("next = %+v, want nil", next)
	}
}
