package api

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"timeclock/internal/domain"
	"timeclock/internal/httputil"
	"timeclock/internal/middleware"
	"timeclock/internal/services"
)

type createTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type updateTaskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
}

type taskResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func toTaskResponse(task *domain.Task) taskResponse {
	return taskResponse{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Status:      string(task.Status),
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
}

func (a *API) handleTasks(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		a.createTask(w, r)
	case http.MethodGet:
		a.listTasks(w, r)
	default:
		httputil.WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (a *API) createTask(w http.ResponseWriter, r *http.Request) {
	var req createTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSONError(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	task, err := a.tasks.CreateTask(r.Context(), middleware.GetUserID(r), req.Title, req.Description)
	if err != nil {
		writeError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Task created successfully",
		"task":    toTaskResponse(task),
	})
}

func (a *API) listTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := a.tasks.ListTasks(r.Context(), middleware.GetUserID(r))
	if err != nil {
		writeError(w, err)
		return
	}

	responses := make([]taskResponse, len(tasks))
	for i, task := range tasks {
		responses[i] = toTaskResponse(task)
	}
	httputil.WriteJSON(w, http.StatusOK, responses)
}

func (a *API) handleTaskByID(w http.ResponseWriter, r *http.Request) {
	taskID := strings.TrimPrefix(r.URL.Path, "/api/tasks/")
	if taskID == "" || strings.Contains(taskID, "/") {
		httputil.WriteJSONError(w, "Task ID is required", http.StatusBadRequest)
		return
	}

	switch r.Method {
	case http.MethodPut:
		a.updateTask(w, r, taskID)
	case http.MethodDelete:
		a.deleteTask(w, r, taskID)
	default:
		httputil.WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (a *API) updateTask(w http.ResponseWriter, r *http.Request, taskID string) {
	var req updateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSONError(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	params := services.UpdateTaskParams{
		Title:       req.Title,
		Description: req.Description,
	}
	if req.Status != nil {
		status := domain.TaskStatus(*req.Status)
		params.Status = &status
	}

	task, err := a.tasks.UpdateTask(r.Context(), middleware.GetUserID(r), taskID, params)
	if err != nil {
		writeError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Task updated successfully",
		"task":    toTaskResponse(task),
	})
}

func (a *API) deleteTask(w http.ResponseWriter, r *http.Request, taskID string) {
	if err := a.tasks.DeleteTask(r.Context(), middleware.GetUserID(r), taskID); err != nil {
		writeError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]string{
		"message": "Task deleted successfully",
	})
}
