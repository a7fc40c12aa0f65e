package suggest

import (
	"fmt"
	"sort"
	"strings"
)

// MoodLine is one journal entry as fed to the model.
type MoodLine struct {
	Date string `json:"date"`
	Mood string `json:"mood"`
	Note string `json:"note"`
}

// Payload is the state snapshot a suggestion call is built from.
type Payload struct {
	Moods                 []MoodLine     `json:"moods"`
	TaskCounts            map[string]int `json:"taskCounts"`
	TopCategory           string         `json:"topCategory"`
	HasUpcomingAssignment bool           `json:"hasUpcomingAssignment"`
	NextAssignment        string         `json:"nextAssignment"`
	PersonalNotes         string         `json:"personalNotes"`
}

// Insight modes.
const (
	ModeMoodCorrelations = "moodCorrelations"
	ModeMoodSummary      = "moodSummary"
	ModeQuickCheck       = "quickCheck"
)

// Only the most recent entries are sent, to bound prompt size.
const maxMoodLines = 30

func moodTimeline(moods []MoodLine) string {
	if len(moods) > maxMoodLines {
		moods = moods[:maxMoodLines]
	}
	var lines []string
	for _, m := range moods {
		line := fmt.Sprintf("- %s | %s", strings.TrimSpace(m.Date), strings.TrimSpace(m.Mood))
		if note := strings.TrimSpace(m.Note); note != "" {
			line += " | " + note
		}
		lines = append(lines, line)
	}
	if len(lines) == 0 {
		return "(no entries)"
	}
	return strings.Join(lines, "\n")
}

func countLines(counts map[string]int) string {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var lines []string
	for _, k := range keys {
		lines = append(lines, fmt.Sprintf("- %s: %d", k, counts[k]))
	}
	return strings.Join(lines, "\n")
}

// BuildSuggestionPrompt renders the full-bundle prompt.
func BuildSuggestionPrompt(p Payload) string {
	lines := []string{
		"You are a helpful study-skills assistant.",
		"Return ONLY valid JSON in this exact shape (no extra keys, no markdown):",
		`{"moodCorrelations":["..."],"moodSummary":"...","quickCheck":{"mood":"...","balance":"...","tip":"..."},"guidedTips":["..."]}`,
		"Rules:",
		"- moodCorrelations: 2 to 5 short, data-based bullets.",
		"- moodSummary: ONE sentence, <= 12 words.",
		"- quickCheck.mood/balance/tip: each <= 10 words; tip is actionable and supportive.",
		"- guidedTips: up to 5 short study tips grounded in the inputs.",
		"Inputs:",
	}

	if top := strings.TrimSpace(p.TopCategory); top != "" {
		lines = append(lines, "- Top category: "+top)
	} else {
		lines = append(lines, "- Top category: (unknown)")
	}

	upcoming := "no"
	if p.HasUpcomingAssignment {
		upcoming = "yes"
	}
	lines = append(lines, "- Has upcoming assignment session: "+upcoming)

	if next := strings.TrimSpace(p.NextAssignment); next != "" {
		lines = append(lines, "- Next assignment: "+next)
	}
	if notes := strings.TrimSpace(p.PersonalNotes); notes != "" {
		lines = append(lines, "Personal notes:", notes)
	}

	if counts := countLines(p.TaskCounts); counts != "" {
		lines = append(lines, "Task counts:\n"+counts)
	} else {
		lines = append(lines, "Task counts: (none)")
	}

	lines = append(lines, "Mood timeline:", moodTimeline(p.Moods))
	return strings.Join(lines, "\n")
}

// BuildInsightPrompt renders the single-mode prompt for /insights.
func BuildInsightPrompt(mode string, p Payload) string {
	timeline := moodTimeline(p.Moods)

	switch mode {
	case ModeMoodCorrelations:
		return strings.Join([]string{
			"You analyze a mood timeline and output ONLY valid JSON.",
			"Shape:",
			`{"bullets":["bullet 1","bullet 2"]}`,
			"Rules:",
			"- 2 to 5 bullets",
			"- Bullets must be short, specific, and based on the data",
			"- No extra keys, no extra text",
			"Mood timeline:",
			timeline,
		}, "\n")
	case ModeMoodSummary:
		return strings.Join([]string{
			"Summarize the overall mood trend in ONE short sentence.",
			"Return ONLY valid JSON.",
			"Shape:",
			`{"summary":"..."}`,
			"Rules:",
			"- <= 12 words",
			"- No extra keys, no extra text",
			"Mood timeline:",
			timeline,
		}, "\n")
	}

	lines := []string{
		"You generate a quick dashboard check-in based on moods and planner balance.",
		"Return ONLY valid JSON.",
		"Shape:",
		`{"mood":"...","balance":"...","tip":"..."}`,
		"Rules:",
		"- Each value must be short (<= 10 words)",
		"- Balance should reflect the top category if provided",
		"- Tip must be actionable and supportive",
		"Inputs:",
	}
	if top := strings.TrimSpace(p.TopCategory); top != "" {
		lines = append(lines, "- Top category: "+top)
	} else {
		lines = append(lines, "- Top category: (unknown)")
	}
	if counts := countLines(p.TaskCounts); counts != "" {
		lines = append(lines, "Task counts:\n"+counts)
	} else {
		lines = append(lines, "Task counts: (none)")
	}
	lines = append(lines, "Mood timeline:", timeline)
	return strings.Join(lines, "\n")
}

// StepsRequest describes the assignment a breakdown is generated for.
type StepsRequest struct {
	TaskName        string `json:"taskName"`
	TaskDate        string `json:"taskDate"`
	Priority        string `json:"priority"`
	ContextText     string `json:"contextText,omitempty"`
	ContextFileName string `json:"contextFileName,omitempty"`
}

// BuildStepsPrompt renders the breakdown-generation prompt.
func BuildStepsPrompt(req StepsRequest) string {
	lines := []string{
		"You break a study assignment into concrete steps.",
		"Return ONLY valid JSON in this exact shape (no extra keys, no markdown):",
		`{"steps":["Step text (30m)"]}`,
		"Rules:",
		"- 3 to 6 steps, each ending with an estimated duration like (30m)",
		"- Steps must be small and actionable",
	}
	if name := strings.TrimSpace(req.TaskName); name != "" {
		lines = append(lines, "Assignment: "+name)
	}
	if date := strings.TrimSpace(req.TaskDate); date != "" {
		lines = append(lines, "Due date: "+date)
	}
	if priority := strings.TrimSpace(req.Priority); priority != "" {
		lines = append(lines, "Priority: "+priority)
	}
	if text := strings.TrimSpace(req.ContextText); text != "" {
		if len(text) > 4000 {
			text = text[:4000]
		}
		header := "Context"
		if req.ContextFileName != "" {
			header += " (" + req.ContextFileName + ")"
		}
		lines = append(lines, header+":", text)
	}
	return strings.Join(lines, "\n")
}
