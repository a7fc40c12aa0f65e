package service

import (
	"math"
	"sort"
	"time"

	"mytime/internal/model"
	"mytime/internal/timeutil"
)

// BalanceBar is one column of the work-balance view.
type BalanceBar struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
	Percent  int    `json:"percent"`
}

// CategoryCounts maps each known category to the number of tasks
// assigned to it. Tasks in an unknown category are not counted.
func CategoryCounts(categories []model.Category, tasks []model.Task) map[string]int {
	counts := make(map[string]int, len(categories))
	for _, c := range categories {
		counts[c.Name] = 0
	}
	for _, t := range tasks {
		if _, ok := counts[t.Category]; ok {
			counts[t.Category]++
		}
	}
	return counts
}

// BalanceBars computes percentage bars sorted by descending count,
// stable on the original category order. Percentages round to the
// nearest integer of count over the total task count.
func BalanceBars(categories []model.Category, tasks []model.Task) []BalanceBar {
	counts := CategoryCounts(categories, tasks)

	total := len(tasks)
	if total < 1 {
		total = 1
	}

	bars := make([]BalanceBar, 0, len(categories))
	for _, c := range categories {
		count := counts[c.Name]
		bars = append(bars, BalanceBar{
			Category: c.Name,
			Count:    count,
			Percent:  int(math.Round(100 * float64(count) / float64(total))),
		})
	}

	sort.SliceStable(bars, func(i, j int) bool {
		return bars[i].Count > bars[j].Count
	})
	return bars
}

// TopCategory is the category with the highest task count. Ties resolve
// to the first-encountered category; an all-zero count falls back to the
// first category; no categories yields "".
func TopCategory(categories []model.Category, tasks []model.Task) string {
	if len(categories) == 0 {
		return ""
	}

	counts := CategoryCounts(categories, tasks)
	top := categories[0].Name
	best := counts[top]
	for _, c := range categories[1:] {
		if counts[c.Name] > best {
			top = c.Name
			best = counts[c.Name]
		}
	}
	return top
}

// HasUpcoming reports whether any non-ended task has a planned start
// strictly after now.
func HasUpcoming(tasks []model.Task, now time.Time, loc *time.Location) bool {
	return NextUpcoming(tasks, now, loc) != nil
}

// NextUpcoming returns the non-ended task with the soonest future
// planned start, or nil. Equal start instants resolve to the lowest
// task id so the result is deterministic.
func NextUpcoming(tasks []model.Task, now time.Time, loc *time.Location) *model.Task {
	var next *model.Task
	var nextStart time.Time

	for i := range tasks {
		task := tasks[i]
		if task.EndedAt != nil {
			continue
		}
		start, ok := timeutil.CombineDateAndTime(task.Date, task.StartTime, loc)
		if !ok || !start.After(now) {
			continue
		}
		switch {
		case next == nil,
			start.Before(nextStart),
			start.Equal(nextStart) && task.ID < next.ID:
			next = &tasks[i]
			nextStart = start
		}
	}
	return next
}
