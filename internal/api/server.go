package api

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"gorm.io/gorm"

	"mytime/internal/repository"
	"mytime/internal/service"
	"mytime/internal/suggest"
)

// Server handles HTTP requests for the planner.
type Server struct {
	addr string
	loc  *time.Location

	categories *service.CategoryService
	tasks      *service.TaskService
	sessions   *service.SessionService
	moods      *service.MoodService
	breakdown  *service.BreakdownService
	docs       *repository.DocumentRepository

	// nil when no completion API key is configured; AI endpoints then
	// report the missing key.
	suggest *suggest.Client
}

func New(addr string, loc *time.Location, categories *service.CategoryService, tasks *service.TaskService, sessions *service.SessionService, moods *service.MoodService, breakdown *service.BreakdownService, docs *repository.DocumentRepository, suggestClient *suggest.Client) *Server {
	return &Server{
		addr:       addr,
		loc:        loc,
		categories: categories,
		tasks:      tasks,
		sessions:   sessions,
		moods:      moods,
		breakdown:  breakdown,
		docs:       docs,
		suggest:    suggestClient,
	}
}

// Run starts the HTTP server and shuts it down when ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.health)
	mux.HandleFunc("GET /dashboard", s.dashboard)

	mux.HandleFunc("GET /categories", s.listCategories)
	mux.HandleFunc("POST /categories", s.addCategory)
	mux.HandleFunc("DELETE /categories/{name}", s.deleteCategory)

	mux.HandleFunc("GET /tasks", s.listTasks)
	mux.HandleFunc("POST /tasks", s.createTask)
	mux.HandleFunc("PATCH /tasks/{id}", s.updateTask)
	mux.HandleFunc("DELETE /tasks/{id}", s.deleteTask)

	mux.HandleFunc("GET /session", s.getSession)
	mux.HandleFunc("POST /session/start", s.startSession)
	mux.HandleFunc("POST /session/end", s.endSession)

	mux.HandleFunc("GET /moods", s.listMoods)
	mux.HandleFunc("POST /moods", s.addMood)
	mux.HandleFunc("DELETE /moods/{id}", s.deleteMood)

	mux.HandleFunc("GET /suggestions", s.getSuggestions)
	mux.HandleFunc("POST /suggestions/refresh", s.refreshSuggestions)
	mux.HandleFunc("POST /insights", s.insights)

	mux.HandleFunc("GET /breakdown", s.getBreakdown)
	mux.HandleFunc("POST /breakdown/generate", s.generateBreakdown)
	mux.HandleFunc("PUT /breakdown/steps/{index}", s.updateStep)
	mux.HandleFunc("DELETE /breakdown/steps/{index}", s.deleteStep)
	mux.HandleFunc("POST /breakdown/steps/{index}/assign", s.assignStep)
	mux.HandleFunc("POST /breakdown/assign-all", s.assignAllSteps)

	mux.HandleFunc("GET /notes", s.getNotes)
	mux.HandleFunc("PUT /notes", s.putNotes)

	mux.HandleFunc("POST /extract", s.extract)

	server := &http.Server{Addr: s.addr, Handler: withCORS(mux)}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("http shutdown: %v", err)
		}
	}()

	log.Printf("[info] http server listening on %s", s.addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// withCORS adds CORS headers for frontend development.
func withCORS(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		h.ServeHTTP(w, r)
	})
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// writeServiceError maps service sentinel errors onto HTTP statuses.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrEmptyLabel),
		errors.Is(err, service.ErrInvalidWindow),
		errors.Is(err, service.ErrPartialWindow),
		errors.Is(err, service.ErrEmptyCategory),
		errors.Is(err, service.ErrEmptyMood),
		errors.Is(err, service.ErrUnknownCategory),
		errors.Is(err, service.ErrTaskNotTimed),
		errors.Is(err, service.ErrSessionNotDue):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrDuplicateCategory),
		errors.Is(err, service.ErrLastCategory):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrCategoryNotFound),
		errors.Is(err, service.ErrNoSession),
		errors.Is(err, service.ErrStepOutOfRange),
		errors.Is(err, gorm.ErrRecordNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}
