// Package api exposes the task registry and time tracking core over HTTP.
// Handlers stay thin: they parse, delegate to the services, and map typed
// errors onto status codes.
package api

import (
	"log"
	"net/http"
	"time"

	"timeclock/internal/errors"
	"timeclock/internal/httputil"
	"timeclock/internal/services"
)

// API bundles the HTTP handlers for tasks and time logs.
type API struct {
	tasks   services.TaskService
	timer   services.TimerService
	summary services.SummaryService
	loc     *time.Location
	mux     *http.ServeMux
}

// New creates the API. loc is used to interpret date-only query parameters.
func New(tasks services.TaskService, timer services.TimerService, summary services.SummaryService, loc *time.Location) *API {
	if loc == nil {
		loc = time.Local
	}
	a := &API{
		tasks:   tasks,
		timer:   timer,
		summary: summary,
		loc:     loc,
		mux:     http.NewServeMux(),
	}

	a.setupRoutes()
	return a
}

func (a *API) setupRoutes() {
	a.mux.HandleFunc("/api/tasks", a.handleTasks)
	a.mux.HandleFunc("/api/tasks/", a.handleTaskByID)
	a.mux.HandleFunc("/api/timelogs/start", a.handleStart)
	a.mux.HandleFunc("/api/timelogs/stop", a.handleStop)
	a.mux.HandleFunc("/api/timelogs/daily", a.handleDailySummary)
	a.mux.HandleFunc("/api/timelogs", a.handleListTimeLogs)
}

func (a *API) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.mux.ServeHTTP(w, r)
}

// writeError maps a typed service error onto an HTTP response.
func writeError(w http.ResponseWriter, err error) {
	if errors.ShouldLogError(err) {
		log.Printf("request failed: %v", err)
	}

	appErr, ok := errors.AsAppError(err)
	if !ok {
		httputil.WriteJSONError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	switch appErr.Type {
	case errors.ErrorTypeNotFound:
		httputil.WriteJSONError(w, errors.GetUserMessage(err), http.StatusNotFound)
	case errors.ErrorTypeConflict:
		activeTaskID, _ := errors.ActiveTaskID(err)
		httputil.WriteJSON(w, http.StatusConflict, map[string]string{
			"message":      "You already have an active time log",
			"activeTaskId": activeTaskID,
		})
	case errors.ErrorTypeValidation, errors.ErrorTypeInvalidInput:
		httputil.WriteJSONError(w, errors.GetUserMessage(err), http.StatusBadRequest)
	default:
		httputil.WriteJSONError(w, errors.GetUserMessage(err), http.StatusInternalServerError)
	}
}
