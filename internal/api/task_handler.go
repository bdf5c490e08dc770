package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/dkemper/driftboard-api/internal/api/shared"
	"github.com/dkemper/driftboard-api/internal/domain"
	"github.com/dkemper/driftboard-api/internal/service"
	"github.com/dkemper/driftboard-api/internal/store"
)

// CreateTaskRequest represents the request body for creating a new task
type CreateTaskRequest struct {
	ColumnID string `json:"column_id" validate:"required,uuid"`
	Title    string `json:"title"     validate:"required,min=1"`
	Notes    string `json:"notes"`
}

// MarkStaleRequest represents the request body for flagging a task stale.
// IsStale defaults to true when the field is omitted.
type MarkStaleRequest struct {
	IsStale *bool `json:"is_stale"`
}

// MoveTaskRequest represents the request body for moving a task
type MoveTaskRequest struct {
	ColumnID string `json:"column_id" validate:"required,uuid"`
}

// TaskResponse represents the response data for a task
type TaskResponse struct {
	ID          string    `json:"id"`
	BoardID     string    `json:"board_id"`
	ColumnID    string    `json:"column_id"`
	Title       string    `json:"title"`
	Notes       string    `json:"notes,omitempty"`
	IsDone      bool      `json:"is_done"`
	IsStale     bool      `json:"is_stale"`
	LastMovedAt time.Time `json:"last_moved_at"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// StaleTaskResponse is a TaskResponse extended with column context for triage.
type StaleTaskResponse struct {
	TaskResponse
	ColumnName string `json:"column_name,omitempty"`
	ColumnType string `json:"column_type,omitempty"`
}

// TaskHandler handles task-related HTTP requests
type TaskHandler struct {
	taskService service.TaskService
	validator   *validator.Validate
}

// NewTaskHandler creates a new TaskHandler
func NewTaskHandler(taskService service.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
		validator:   validator.New(),
	}
}

// CreateTask handles POST /api/boards/{boardID}/tasks requests
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	boardID, err := domain.ParseBoardID(chi.URLParam(r, "boardID"))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, GetSafeErrorMessage(err))
		return
	}

	var req CreateTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	columnID, err := domain.ParseColumnID(req.ColumnID)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, GetSafeErrorMessage(err))
		return
	}

	task, err := h.taskService.CreateTask(r.Context(), boardID, columnID, req.Title, req.Notes)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, taskToDTOResponse(task))
}

// GetStaleTasks handles GET /api/boards/{boardID}/tasks/stale requests.
// The staleness threshold in days can be overridden with the
// threshold_days query parameter.
func (h *TaskHandler) GetStaleTasks(w http.ResponseWriter, r *http.Request) {
	boardID, err := domain.ParseBoardID(chi.URLParam(r, "boardID"))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, GetSafeErrorMessage(err))
		return
	}

	thresholdDays := 0
	if raw := r.URL.Query().Get("threshold_days"); raw != "" {
		thresholdDays, err = strconv.Atoi(raw)
		if err != nil || thresholdDays <= 0 {
			shared.RespondWithError(w, r, http.StatusBadRequest, "threshold_days must be a positive integer")
			return
		}
	}

	staleTasks, err := h.taskService.GetStaleTasks(r.Context(), boardID, thresholdDays)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	response := make([]StaleTaskResponse, 0, len(staleTasks))
	for _, tc := range staleTasks {
		response = append(response, staleTaskToDTOResponse(tc))
	}

	shared.RespondWithJSON(w, r, http.StatusOK, response)
}

// MarkStale handles POST /api/tasks/{taskID}/stale requests
func (h *TaskHandler) MarkStale(w http.ResponseWriter, r *http.Request) {
	taskID, err := domain.ParseTaskID(chi.URLParam(r, "taskID"))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, GetSafeErrorMessage(err))
		return
	}

	// An empty body means "flag as stale"
	isStale := true
	var req MarkStaleRequest
	if err := shared.DecodeJSON(r, &req); err == nil && req.IsStale != nil {
		isStale = *req.IsStale
	}

	task, err := h.taskService.MarkStale(r.Context(), taskID, isStale)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, taskToDTOResponse(task))
}

// MoveTask handles POST /api/tasks/{taskID}/move requests
func (h *TaskHandler) MoveTask(w http.ResponseWriter, r *http.Request) {
	taskID, err := domain.ParseTaskID(chi.URLParam(r, "taskID"))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, GetSafeErrorMessage(err))
		return
	}

	var req MoveTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	columnID, err := domain.ParseColumnID(req.ColumnID)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, GetSafeErrorMessage(err))
		return
	}

	task, err := h.taskService.MoveTask(r.Context(), taskID, columnID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, taskToDTOResponse(task))
}

// CompleteTask handles POST /api/tasks/{taskID}/complete requests
func (h *TaskHandler) CompleteTask(w http.ResponseWriter, r *http.Request) {
	taskID, err := domain.ParseTaskID(chi.URLParam(r, "taskID"))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, GetSafeErrorMessage(err))
		return
	}

	task, err := h.taskService.CompleteTask(r.Context(), taskID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, taskToDTOResponse(task))
}

// taskToDTOResponse converts a domain.Task to a TaskResponse
func taskToDTOResponse(task *domain.Task) TaskResponse {
	return TaskResponse{
		ID:          task.ID.String(),
		BoardID:     task.BoardID.String(),
		ColumnID:    task.ColumnID.String(),
		Title:       task.Title,
		Notes:       task.Notes,
		IsDone:      task.IsDone,
		IsStale:     task.IsStale,
		LastMovedAt: task.LastMovedAt,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
}

// staleTaskToDTOResponse converts a task with column context to a StaleTaskResponse
func staleTaskToDTOResponse(tc *store.TaskWithContext) StaleTaskResponse {
	response := StaleTaskResponse{
		TaskResponse: taskToDTOResponse(tc.Task),
	}
	if tc.Column != nil {
		response.ColumnName = tc.Column.Name
		response.ColumnType = string(tc.Column.Type)
	}
	return response
}
