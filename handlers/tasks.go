package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"cinelist/services/scheduler"
)

type taskRunner interface {
	Status() []scheduler.TaskStatus
	RunNow(ctx context.Context, id string) error
}

// TasksHandler exposes the background scheduler.
type TasksHandler struct {
	Scheduler taskRunner
}

func NewTasksHandler(s taskRunner) *TasksHandler {
	return &TasksHandler{Scheduler: s}
}

func (h *TasksHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"tasks": h.Scheduler.Status()})
}

// Run executes a task immediately and waits for it.
func (h *TasksHandler) Run(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := h.Scheduler.RunNow(r.Context(), id); err != nil {
		switch {
		case errors.Is(err, scheduler.ErrUnknownTask):
			jsonError(w, err.Error(), http.StatusNotFound)
		case errors.Is(err, scheduler.ErrTaskRunning):
			jsonError(w, err.Error(), http.StatusConflict)
		default:
			writeServiceError(w, err)
		}
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "task": id})
}

func (h *TasksHandler) Register(r *mux.Router, guard func(http.HandlerFunc) http.HandlerFunc) {
	if guard == nil {
		guard = func(next http.HandlerFunc) http.HandlerFunc { return next }
	}
	r.HandleFunc("/tasks", h.List).Methods(http.MethodGet)
	r.HandleFunc("/tasks/{id}/run", guard(h.Run)).Methods(http.MethodPost)
}
