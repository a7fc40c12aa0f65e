package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"mytime/internal/service"
	"mytime/internal/suggest"
)

func (s *Server) getBreakdown(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.breakdown.State(r.Context()))
}

// generateBreakdown fetches suggested steps for an assignment. Without
// a completion client the fixed default steps are used, so the wizard
// still works offline.
func (s *Server) generateBreakdown(w http.ResponseWriter, r *http.Request) {
	var req suggest.StepsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ctx := r.Context()

	steps := append([]string(nil), suggest.DefaultSteps...)
	if s.suggest != nil {
		generated, err := s.suggest.GenerateSteps(ctx, req)
		if err != nil {
			writeError(w, http.StatusBadGateway, err.Error())
			return
		}
		steps = generated
	}

	state, err := s.breakdown.SetSteps(ctx, steps, service.BreakdownContext{
		TaskName: req.TaskName,
		TaskDate: req.TaskDate,
		Priority: req.Priority,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (s *Server) stepIndex(r *http.Request) (int, bool) {
	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil || index < 0 {
		return 0, false
	}
	return index, true
}

func (s *Server) updateStep(w http.ResponseWriter, r *http.Request) {
	index, ok := s.stepIndex(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid step index")
		return
	}

	var req struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	state, err := s.breakdown.UpdateStep(r.Context(), index, req.Text)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (s *Server) deleteStep(w http.ResponseWriter, r *http.Request) {
	index, ok := s.stepIndex(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid step index")
		return
	}

	state, err := s.breakdown.DeleteStep(r.Context(), index)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (s *Server) assignStep(w http.ResponseWriter, r *http.Request) {
	index, ok := s.stepIndex(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid step index")
		return
	}

	now := time.Now().In(s.loc)
	task, err := s.breakdown.AssignStep(r.Context(), index, now)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, s.taskView(*task, nil, now))
}

func (s *Server) assignAllSteps(w http.ResponseWriter, r *http.Request) {
	now := time.Now().In(s.loc)
	tasks, err := s.breakdown.AssignAll(r.Context(), now)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	views := make([]taskView, 0, len(tasks))
	for _, task := range tasks {
		views = append(views, s.taskView(task, nil, now))
	}
	writeJSON(w, http.StatusCreated, map[string]any{"tasks": views})
}
