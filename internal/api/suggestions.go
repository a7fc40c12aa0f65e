package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"mytime/internal/model"
	"mytime/internal/service"
	"mytime/internal/suggest"
)

// buildPayload snapshots current state for a completion call.
func (s *Server) buildPayload(ctx context.Context, now time.Time) (suggest.Payload, error) {
	moods, err := s.moods.List(ctx)
	if err != nil {
		return suggest.Payload{}, err
	}
	tasks, err := s.tasks.List(ctx)
	if err != nil {
		return suggest.Payload{}, err
	}
	categories, err := s.categories.List(ctx)
	if err != nil {
		return suggest.Payload{}, err
	}

	lines := make([]suggest.MoodLine, 0, len(moods))
	for _, m := range moods {
		lines = append(lines, suggest.MoodLine{
			Date: m.DateLabel(),
			Mood: m.Mood,
			Note: m.Note,
		})
	}

	var next string
	if task := service.NextUpcoming(tasks, now, s.loc); task != nil {
		next = task.Label
	}

	var notes notesDoc
	s.docs.Load(ctx, model.DocNotes, &notes)

	return suggest.Payload{
		Moods:                 lines,
		TaskCounts:            service.CategoryCounts(categories, tasks),
		TopCategory:           service.TopCategory(categories, tasks),
		HasUpcomingAssignment: next != "",
		NextAssignment:        next,
		PersonalNotes:         notes.Text,
	}, nil
}

func (s *Server) getSuggestions(w http.ResponseWriter, r *http.Request) {
	bundle := suggest.EmptyBundle()
	s.docs.Load(r.Context(), model.DocSuggestions, &bundle)
	writeJSON(w, http.StatusOK, bundle)
}

// refreshSuggestions is the only way a new bundle is fetched; there is
// no background refresh, which bounds completion-API spend. A failed
// call leaves the cached bundle untouched.
func (s *Server) refreshSuggestions(w http.ResponseWriter, r *http.Request) {
	if s.suggest == nil {
		writeError(w, http.StatusInternalServerError, "Missing OPENAI_API_KEY")
		return
	}

	ctx := r.Context()
	now := time.Now().In(s.loc)

	payload, err := s.buildPayload(ctx, now)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	bundle, err := s.suggest.Suggestions(ctx, payload, now)
	if err != nil {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}

	if err := s.docs.Save(ctx, model.DocSuggestions, bundle); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, bundle)
}

func (s *Server) insights(w http.ResponseWriter, r *http.Request) {
	if s.suggest == nil {
		writeError(w, http.StatusInternalServerError, "Missing OPENAI_API_KEY")
		return
	}

	var req struct {
		Mode string `json:"mode"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ctx := r.Context()
	payload, err := s.buildPayload(ctx, time.Now().In(s.loc))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	result, err := s.suggest.Insight(ctx, req.Mode, payload)
	if err != nil {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}

	switch req.Mode {
	case suggest.ModeMoodCorrelations:
		writeJSON(w, http.StatusOK, map[string]any{"bullets": result.Bullets})
	case suggest.ModeMoodSummary:
		writeJSON(w, http.StatusOK, map[string]any{"summary": result.Summary})
	default:
		writeJSON(w, http.StatusOK, map[string]any{
			"mood":    result.Quick.Mood,
			"balance": result.Quick.WorkBalance,
			"tip":     result.Quick.Tip,
		})
	}
}
