package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"gorm.io/gorm"

	"mytime/internal/model"
	"mytime/internal/service"
	"mytime/internal/suggest"
)

func (s *Server) dashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	now := time.Now().In(s.loc)

	tasks, err := s.tasks.List(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	categories, err := s.categories.List(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	moods, err := s.moods.List(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	session, err := s.sessions.Get(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	bundle := suggest.EmptyBundle()
	s.docs.Load(ctx, model.DocSuggestions, &bundle)

	var next string
	if task := service.NextUpcoming(tasks, now, s.loc); task != nil {
		next = task.Label
	}

	var sview *sessionView
	if session != nil {
		v := newSessionView(*session, now)
		sview = &v
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"date":         now.Format("Mon Jan 02"),
		"tasks":        s.taskViews(tasks, session, now),
		"balance":      service.BalanceBars(categories, tasks),
		"topCategory":  service.TopCategory(categories, tasks),
		"hasUpcoming":  service.HasUpcoming(tasks, now, s.loc),
		"nextUpcoming": next,
		"session":      sview,
		"suggestions":  bundle,
		"moods":        moodViews(moods),
	})
}

func (s *Server) listCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := s.categories.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	names := make([]string, 0, len(categories))
	for _, c := range categories {
		names = append(names, c.Name)
	}
	writeJSON(w, http.StatusOK, map[string]any{"categories": names})
}

func (s *Server) addCategory(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	category, err := s.categories.Add(r.Context(), req.Name)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"name": category.Name})
}

func (s *Server) deleteCategory(w http.ResponseWriter, r *http.Request) {
	if err := s.categories.Delete(r.Context(), r.PathValue("name")); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (s *Server) listTasks(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	now := time.Now().In(s.loc)

	tasks, err := s.tasks.List(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	session, err := s.sessions.Get(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"tasks": s.taskViews(tasks, session, now)})
}

func (s *Server) createTask(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Category    string `json:"category"`
		Label       string `json:"label"`
		Description string `json:"description"`
		Date        string `json:"date"`
		StartTime   string `json:"startTime"`
		EndTime     string `json:"endTime"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	now := time.Now().In(s.loc)
	task, err := s.tasks.Create(r.Context(), service.TaskInput{
		Category:    req.Category,
		Label:       req.Label,
		Description: req.Description,
		Date:        req.Date,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
	}, now)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, s.taskView(*task, nil, now))
}

func (s *Server) updateTask(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Category    *string `json:"category"`
		Label       *string `json:"label"`
		Description *string `json:"description"`
		Date        *string `json:"date"`
		StartTime   *string `json:"startTime"`
		EndTime     *string `json:"endTime"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	task, err := s.tasks.Update(r.Context(), r.PathValue("id"), service.TaskPatch{
		Category:    req.Category,
		Label:       req.Label,
		Description: req.Description,
		Date:        req.Date,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if task == nil {
		writeError(w, http.StatusNotFound, "task not found")
		return
	}
	writeJSON(w, http.StatusOK, s.taskView(*task, nil, time.Now().In(s.loc)))
}

func (s *Server) deleteTask(w http.ResponseWriter, r *http.Request) {
	if err := s.tasks.Remove(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (s *Server) getSession(w http.ResponseWriter, r *http.Request) {
	session, err := s.sessions.Get(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if session == nil {
		writeJSON(w, http.StatusOK, map[string]any{"session": nil})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"session": newSessionView(*session, time.Now().In(s.loc)),
	})
}

func (s *Server) startSession(w http.ResponseWriter, r *http.Request) {
	var req struct {
		TaskID string `json:"taskId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	now := time.Now().In(s.loc)
	session, err := s.sessions.Start(r.Context(), req.TaskID, now)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeError(w, http.StatusNotFound, "task not found")
			return
		}
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"session": newSessionView(*session, now)})
}

func (s *Server) endSession(w http.ResponseWriter, r *http.Request) {
	if err := s.sessions.End(r.Context(), time.Now().In(s.loc)); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ended"})
}

func (s *Server) listMoods(w http.ResponseWriter, r *http.Request) {
	entries, err := s.moods.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"moods": moodViews(entries)})
}

func (s *Server) addMood(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Mood string `json:"mood"`
		Note string `json:"note"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	entry, err := s.moods.Add(r.Context(), req.Mood, req.Note, time.Now().In(s.loc))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, moodViews([]model.MoodEntry{*entry})[0])
}

func (s *Server) deleteMood(w http.ResponseWriter, r *http.Request) {
	if err := s.moods.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (s *Server) getNotes(w http.ResponseWriter, r *http.Request) {
	var notes notesDoc
	s.docs.Load(r.Context(), model.DocNotes, &notes)
	writeJSON(w, http.StatusOK, notes)
}

func (s *Server) putNotes(w http.ResponseWriter, r *http.Request) {
	var notes notesDoc
	if err := json.NewDecoder(r.Body).Decode(&notes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := s.docs.Save(r.Context(), model.DocNotes, notes); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, notes)
}
