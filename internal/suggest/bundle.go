package suggest

import (
	"encoding/json"
	"strings"
)

// Maximum bullets kept per list field.
const maxBullets = 5

// QuickCheck is the three-line dashboard check-in.
type QuickCheck struct {
	Mood        string `json:"mood"`
	WorkBalance string `json:"workBalance"`
	Tip         string `json:"tip"`
}

// Bundle is the cached set of AI-derived suggestions. GeneratedAt is
// nil until the first successful fetch; the dashboard uses it as the
// "is AI data ready" signal.
type Bundle struct {
	GeneratedAt      *int64     `json:"generatedAt"`
	MoodCorrelations []string   `json:"moodCorrelations"`
	MoodSummary      string     `json:"moodSummary"`
	QuickCheck       QuickCheck `json:"quickCheck"`
	GuidedTips       []string   `json:"guidedTips"`
}

// EmptyBundle is the placeholder returned before any fetch succeeded.
func EmptyBundle() Bundle {
	return Bundle{MoodCorrelations: []string{}, GuidedTips: []string{}}
}

// rawBundle mirrors the shape the model is asked to produce. The model
// reports balance under "balance"; it maps to QuickCheck.WorkBalance.
type rawBundle struct {
	MoodCorrelations json.RawMessage `json:"moodCorrelations"`
	MoodSummary      json.RawMessage `json:"moodSummary"`
	QuickCheck       struct {
		Mood    json.RawMessage `json:"mood"`
		Balance json.RawMessage `json:"balance"`
		Tip     json.RawMessage `json:"tip"`
	} `json:"quickCheck"`
	GuidedTips json.RawMessage `json:"guidedTips"`
}

// CoerceBundle turns an untrusted completion body into a well-formed
// bundle. It is total: any input (invalid JSON, nulls, wrong-typed
// fields) yields a bundle satisfying every field constraint.
func CoerceBundle(body string) Bundle {
	var raw rawBundle
	// A parse failure is treated as an empty object, never propagated.
	_ = json.Unmarshal([]byte(stripFences(body)), &raw)

	return Bundle{
		MoodCorrelations: coerceStrings(raw.MoodCorrelations, maxBullets),
		MoodSummary:      coerceString(raw.MoodSummary),
		QuickCheck: QuickCheck{
			Mood:        coerceString(raw.QuickCheck.Mood),
			WorkBalance: coerceString(raw.QuickCheck.Balance),
			Tip:         coerceString(raw.QuickCheck.Tip),
		},
		GuidedTips: coerceStrings(raw.GuidedTips, maxBullets),
	}
}

// coerceString yields a trimmed string, or "" when the value is not a
// JSON string.
func coerceString(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return strings.TrimSpace(s)
}

// coerceStrings yields trimmed non-empty strings from a JSON array,
// dropping non-string elements, truncated to maxLen. Anything that is
// not an array yields an empty list.
func coerceStrings(raw json.RawMessage, maxLen int) []string {
	var values []json.RawMessage
	if err := json.Unmarshal(raw, &values); err != nil {
		return []string{}
	}

	out := make([]string, 0, len(values))
	for _, v := range values {
		var s string
		if err := json.Unmarshal(v, &s); err != nil {
			continue
		}
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		out = append(out, s)
		if len(out) == maxLen {
			break
		}
	}
	return out
}

// stripFences removes a markdown code fence the model sometimes wraps
// around its JSON.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
