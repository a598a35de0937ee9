package api

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/phrazzld/task-api/internal/api/shared"
	"github.com/phrazzld/task-api/internal/config"
	"github.com/phrazzld/task-api/internal/domain"
	"github.com/phrazzld/task-api/internal/platform/logger"
	"github.com/phrazzld/task-api/internal/redact"
	"github.com/phrazzld/task-api/internal/service"
	"github.com/phrazzld/task-api/internal/store"
)

// TaskHandler handles task-related HTTP requests
type TaskHandler struct {
	taskService service.TaskService
	pagination  config.PaginationConfig
	logger      *slog.Logger
}

// NewTaskHandler creates a new TaskHandler
func NewTaskHandler(
	taskService service.TaskService,
	pagination config.PaginationConfig,
	log *slog.Logger,
) *TaskHandler {
	if taskService == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("taskService cannot be nil for TaskHandler")
	}
	if log == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for TaskHandler")
	}

	return &TaskHandler{
		taskService: taskService,
		pagination:  pagination,
		logger:      log.With(slog.String("component", "task_handler")),
	}
}

// ListTasks handles GET /api/v1/tasks requests
// It returns a filtered, sorted, paginated listing with a pagination envelope.
func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	query, err := h.parseListQuery(r)
	if err != nil {
		log.Warn("invalid list query", slog.String("error", err.Error()))
		shared.RespondWithError(w, r, http.StatusBadRequest, GetSafeErrorMessage(err))
		return
	}

	page, err := h.taskService.ListTasks(r.Context(), query)
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		if statusCode == http.StatusInternalServerError {
			safeMessage = "Failed to list tasks"
		}
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	data := make([]TaskResponse, 0, len(page.Tasks))
	for _, task := range page.Tasks {
		data = append(data, taskToResponse(task))
	}

	shared.RespondWithJSON(w, r, http.StatusOK, ListTasksResponse{
		Data: data,
		Meta: ListTasksMeta{
			Page:  page.Page,
			Limit: page.Limit,
			Total: page.Total,
		},
	})
}

// CreateTask handles POST /api/v1/tasks requests
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req TaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request format", slog.String("error", redact.Error(err)))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.Validate.Struct(req); err != nil {
		log.Warn("validation error", slog.String("error", redact.Error(err)))
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	input, err := requestToInput(req)
	if err != nil {
		log.Warn("invalid task payload", slog.String("error", err.Error()))
		shared.RespondWithError(w, r, http.StatusBadRequest, GetSafeErrorMessage(err))
		return
	}

	task, err := h.taskService.CreateTask(r.Context(), input)
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		if statusCode == http.StatusInternalServerError {
			safeMessage = "Failed to create task"
		}
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	log.Debug("task created", slog.String("task_id", task.ID.String()))
	shared.RespondWithJSON(w, r, http.StatusCreated, taskToResponse(task))
}

// GetTask handles GET /api/v1/tasks/{id} requests
func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, err := getPathUUID(r, "id")
	if err != nil {
		log.Warn("invalid task ID in path", slog.String("error", err.Error()))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid task ID format")
		return
	}

	task, err := h.taskService.GetTask(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrTaskNotFound) {
			shared.RespondWithError(w, r, http.StatusNotFound,
				fmt.Sprintf("Task with id %s not found", id))
			return
		}
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), "Failed to get task", err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, taskToResponse(task))
}

// UpdateTask handles PUT /api/v1/tasks/{id} requests
// The payload is a full record replacement: omitted optional fields clear
// the stored value, except status which is retained when omitted.
func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, err := getPathUUID(r, "id")
	if err != nil {
		log.Warn("invalid task ID in path", slog.String("error", err.Error()))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid task ID format")
		return
	}

	var req TaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request format",
			slog.String("error", redact.Error(err)),
			slog.String("task_id", id.String()))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.Validate.Struct(req); err != nil {
		log.Warn("validation error",
			slog.String("error", redact.Error(err)),
			slog.String("task_id", id.String()))
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	input, err := requestToInput(req)
	if err != nil {
		log.Warn("invalid task payload",
			slog.String("error", err.Error()),
			slog.String("task_id", id.String()))
		shared.RespondWithError(w, r, http.StatusBadRequest, GetSafeErrorMessage(err))
		return
	}

	task, err := h.taskService.UpdateTask(r.Context(), id, input)
	if err != nil {
		if errors.Is(err, service.ErrTaskNotFound) {
			shared.RespondWithError(w, r, http.StatusNotFound,
				fmt.Sprintf("Task with id %s not found", id))
			return
		}
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		if statusCode == http.StatusInternalServerError {
			safeMessage = "Failed to update task"
		}
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	log.Debug("task updated", slog.String("task_id", task.ID.String()))
	shared.RespondWithJSON(w, r, http.StatusOK, taskToResponse(task))
}

// DeleteTask handles DELETE /api/v1/tasks/{id} requests
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, err := getPathUUID(r, "id")
	if err != nil {
		log.Warn("invalid task ID in path", slog.String("error", err.Error()))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid task ID format")
		return
	}

	result, err := h.taskService.DeleteTask(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrTaskNotFound) {
			shared.RespondWithError(w, r, http.StatusNotFound,
				fmt.Sprintf("Task with id %s not found", id))
			return
		}
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), "Failed to delete task", err)
		return
	}

	log.Debug("task deleted", slog.String("task_id", result.ID.String()))
	shared.RespondWithJSON(w, r, http.StatusOK, DeleteTaskResponse{
		Success: true,
		Message: fmt.Sprintf("Task with id %s deleted successfully", result.ID),
	})
}

// parseListQuery builds a store.TaskQuery from the request's query string.
// Filter values are validated here; sort parameters are passed through and
// fall back to the default ordering when unrecognized.
func (h *TaskHandler) parseListQuery(r *http.Request) (store.TaskQuery, error) {
	values := r.URL.Query()

	page, err := parsePositiveIntParam(r, "page", store.DefaultPage)
	if err != nil {
		return store.TaskQuery{}, err
	}

	limit, err := parsePositiveIntParam(r, "limit", h.pagination.DefaultLimit)
	if err != nil {
		return store.TaskQuery{}, err
	}
	if h.pagination.MaxLimit > 0 && limit > h.pagination.MaxLimit {
		limit = h.pagination.MaxLimit
	}

	query := store.TaskQuery{
		Page:      page,
		Limit:     limit,
		Search:    values.Get("search"),
		SortBy:    store.TaskSortField(values.Get("sortBy")),
		SortOrder: store.SortOrder(values.Get("sortOrder")),
	}

	if raw := values.Get("status"); raw != "" {
		status := domain.TaskStatus(raw)
		if !domain.IsValidTaskStatus(status) {
			return store.TaskQuery{}, fmt.Errorf("%w: invalid status filter", domain.ErrInvalidTaskStatus)
		}
		query.Status = &status
	}

	if raw := values.Get("priority"); raw != "" {
		priority := domain.TaskPriority(raw)
		if !domain.IsValidTaskPriority(priority) {
			return store.TaskQuery{}, fmt.Errorf("%w: invalid priority filter", domain.ErrInvalidTaskPriority)
		}
		query.Priority = &priority
	}

	return query, nil
}

// requestToInput converts a validated TaskRequest into a service input,
// parsing the due date and narrowing enum strings to domain types.
func requestToInput(req TaskRequest) (service.TaskInput, error) {
	input := service.TaskInput{
		Title:       req.Title,
		Description: req.Description,
	}

	if req.Status != nil {
		input.Status = domain.TaskStatus(*req.Status)
	}

	if req.Priority != nil {
		priority := domain.TaskPriority(*req.Priority)
		input.Priority = &priority
	}

	if req.DueDate != nil {
		due, err := parseDueDate(*req.DueDate)
		if err != nil {
			return service.TaskInput{}, err
		}
		input.DueDate = &due
	}

	return input, nil
}

// taskToResponse converts a domain.Task to a TaskResponse
func taskToResponse(task *domain.Task) TaskResponse {
	resp := TaskResponse{
		ID:          task.ID.String(),
		Title:       task.Title,
		Description: task.Description,
		Status:      string(task.Status),
		DueDate:     task.DueDate,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}

	if task.Priority != nil {
		priority := string(*task.Priority)
		resp.Priority = &priority
	}

	return resp
}
