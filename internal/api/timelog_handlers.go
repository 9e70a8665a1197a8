package api

import (
	"encoding/json"
	"net/http"
	"time"

	"timeclock/internal/domain"
	"timeclock/internal/errors"
	"timeclock/internal/httputil"
	"timeclock/internal/middleware"
)

type timerRequest struct {
	TaskID string `json:"taskId"`
}

type taskRefResponse struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

type startedLogResponse struct {
	ID        string          `json:"id"`
	Task      taskRefResponse `json:"task"`
	StartTime time.Time       `json:"startTime"`
	Duration  *int64          `json:"duration"` // always null for a fresh log
}

type stoppedLogResponse struct {
	ID                string          `json:"id"`
	Task              taskRefResponse `json:"task"`
	StartTime         time.Time       `json:"startTime"`
	EndTime           *time.Time      `json:"endTime"`
	Duration          int64           `json:"duration"`
	FormattedDuration string          `json:"formattedDuration"`
}

func (a *API) handleStart(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httputil.WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req timerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSONError(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	session, err := a.timer.Start(r.Context(), middleware.GetUserID(r), req.TaskID)
	if err != nil {
		writeError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, startedLogResponse{
		ID: session.Log.ID,
		Task: taskRefResponse{
			ID:    session.Task.ID,
			Title: session.Task.Title,
		},
		StartTime: session.Log.StartTime,
	})
}

func (a *API) handleStop(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httputil.WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req timerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSONError(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	session, err := a.timer.Stop(r.Context(), middleware.GetUserID(r), req.TaskID)
	if err != nil {
		writeError(w, err)
		return
	}

	taskRef := taskRefResponse{ID: req.TaskID}
	if session.Task != nil {
		taskRef.Title = session.Task.Title
	}

	endTime := *session.Log.EndTime
	httputil.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Time log stopped successfully",
		"log": stoppedLogResponse{
			ID:                session.Log.ID,
			Task:              taskRef,
			StartTime:         session.Log.StartTime,
			EndTime:           session.Log.EndTime,
			Duration:          session.Log.DurationSeconds(endTime),
			FormattedDuration: session.Duration,
		},
	})
}

func (a *API) handleDailySummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httputil.WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var day *time.Time
	if raw := r.URL.Query().Get("date"); raw != "" {
		parsed, err := time.ParseInLocation("2006-01-02", raw, a.loc)
		if err != nil {
			httputil.WriteJSONError(w, "Invalid date, expected YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		day = &parsed
	}

	summary, err := a.summary.GetDailySummary(r.Context(), middleware.GetUserID(r), day)
	if err != nil {
		writeError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"summary": summary,
	})
}

func (a *API) handleListTimeLogs(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httputil.WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	filter, err := a.parseTimeLogFilter(r)
	if err != nil {
		writeError(w, err)
		return
	}

	logs, err := a.summary.ListTimeLogs(r.Context(), middleware.GetUserID(r), filter)
	if err != nil {
		writeError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"logs":    logs,
		"count":   len(logs),
	})
}

// parseTimeLogFilter reads the optional startDate, endDate and taskId query
// parameters. Date-only values cover whole days: startDate is that day's
// midnight, endDate the following midnight.
func (a *API) parseTimeLogFilter(r *http.Request) (domain.TimeLogFilter, error) {
	var filter domain.TimeLogFilter
	query := r.URL.Query()

	if raw := query.Get("startDate"); raw != "" {
		t, err := a.parseDateParam(raw, false)
		if err != nil {
			return filter, errors.NewInvalidInputError("startDate", raw, "expected YYYY-MM-DD or RFC3339")
		}
		filter.StartDate = &t
	}
	if raw := query.Get("endDate"); raw != "" {
		t, err := a.parseDateParam(raw, true)
		if err != nil {
			return filter, errors.NewInvalidInputError("endDate", raw, "expected YYYY-MM-DD or RFC3339")
		}
		filter.EndDate = &t
	}
	if taskID := query.Get("taskId"); taskID != "" {
		filter.TaskID = &taskID
	}

	return filter, nil
}

func (a *API) parseDateParam(raw string, endOfDay bool) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	t, err := time.ParseInLocation("2006-01-02", raw, a.loc)
	if err != nil {
		return time.Time{}, err
	}
	if endOfDay {
		t = t.Add(24 * time.Hour)
	}
	return t, nil
}
