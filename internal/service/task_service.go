// Package service implements the application's use cases on top of the
// store interfaces, keeping transport concerns out of the business logic.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/task-api/internal/domain"
	"github.com/phrazzld/task-api/internal/platform/logger"
	"github.com/phrazzld/task-api/internal/store"
)

// TaskInput carries the caller-supplied fields for creating or replacing a
// task. Optional fields are pointers; a nil pointer means the field was
// omitted from the request.
type TaskInput struct {
	Title       string
	Description *string
	Status      domain.TaskStatus // empty string when omitted
	Priority    *domain.TaskPriority
	DueDate     *time.Time
}

// DeleteTaskResult acknowledges a successful delete.
type DeleteTaskResult struct {
	ID uuid.UUID
}

// TaskService provides task query and mutation operations.
type TaskService interface {
	// ListTasks returns a filtered, sorted, paginated view over the task
	// collection. An empty page is a valid, non-error outcome.
	ListTasks(ctx context.Context, query store.TaskQuery) (*store.TaskPage, error)

	// CreateTask creates a new task. A missing status defaults to pending.
	CreateTask(ctx context.Context, input TaskInput) (*domain.Task, error)

	// GetTask retrieves a task by ID, or ErrTaskNotFound.
	GetTask(ctx context.Context, id uuid.UUID) (*domain.Task, error)

	// UpdateTask replaces the stored task's fields from the input.
	// Title, description, priority and due date are overwritten
	// unconditionally (omitted optional fields clear the stored value);
	// status is retained when the input omits it. This asymmetry is
	// preserved deliberately for API compatibility with existing clients.
	UpdateTask(ctx context.Context, id uuid.UUID, input TaskInput) (*domain.Task, error)

	// DeleteTask removes a task permanently and returns an acknowledgment
	// carrying the deleted ID, or ErrTaskNotFound.
	DeleteTask(ctx context.Context, id uuid.UUID) (*DeleteTaskResult, error)
}

// Common sentinel errors for TaskService
var (
	// ErrTaskNotFound indicates that the task does not exist
	ErrTaskNotFound = errors.New("task not found")
)

// TaskServiceError wraps errors from the task service with context.
type TaskServiceError struct {
	// Operation is the operation that failed (e.g., "create_task", "list_tasks")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for TaskServiceError.
func (e *TaskServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("task service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("task service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *TaskServiceError) Unwrap() error {
	return e.Err
}

// NewTaskServiceError creates a new TaskServiceError.
// It returns known sentinel errors directly without wrapping.
func NewTaskServiceError(operation, message string, err error) error {
	if err == nil {
		return nil
	}

	// Map store-level not-found onto the service sentinel
	if errors.Is(err, ErrTaskNotFound) || errors.Is(err, store.ErrTaskNotFound) {
		return ErrTaskNotFound
	}

	// Domain validation errors pass through untouched so callers can map
	// them to 400 responses
	if errors.Is(err, domain.ErrValidation) ||
		errors.Is(err, domain.ErrEmptyTaskTitle) ||
		errors.Is(err, domain.ErrTaskTitleTooLong) ||
		errors.Is(err, domain.ErrInvalidTaskStatus) ||
		errors.Is(err, domain.ErrInvalidTaskPriority) {
		return err
	}

	return &TaskServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}

// taskServiceImpl implements the TaskService interface
type taskServiceImpl struct {
	taskStore store.TaskStore
	logger    *slog.Logger
}

// NewTaskService creates a new TaskService with the given task store.
// Returns an error if any dependency is nil.
func NewTaskService(taskStore store.TaskStore, log *slog.Logger) (TaskService, error) {
	if taskStore == nil {
		return nil, fmt.Errorf("taskStore cannot be nil")
	}
	if log == nil {
		return nil, fmt.Errorf("logger cannot be nil")
	}

	return &taskServiceImpl{
		taskStore: taskStore,
		logger:    log.With(slog.String("component", "task_service")),
	}, nil
}

// ListTasks implements TaskService.ListTasks
func (s *taskServiceImpl) ListTasks(
	ctx context.Context,
	query store.TaskQuery,
) (*store.TaskPage, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	page, err := s.taskStore.List(ctx, query.Normalize())
	if err != nil {
		log.Error("failed to list tasks", slog.String("error", err.Error()))
		return nil, NewTaskServiceError("list_tasks", "failed to list tasks", err)
	}

	return page, nil
}

// CreateTask implements TaskService.CreateTask
func (s *taskServiceImpl) CreateTask(
	ctx context.Context,
	input TaskInput,
) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	task, err := domain.NewTask(
		input.Title,
		input.Description,
		input.Status,
		input.Priority,
		input.DueDate,
	)
	if err != nil {
		log.Warn("invalid task input", slog.String("error", err.Error()))
		return nil, NewTaskServiceError("create_task", "invalid task input", err)
	}

	if err := s.taskStore.Create(ctx, task); err != nil {
		log.Error("failed to create task",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()))
		return nil, NewTaskServiceError("create_task", "failed to save task", err)
	}

	log.Info("task created",
		slog.String("task_id", task.ID.String()),
		slog.String("status", string(task.Status)))
	return task, nil
}

// GetTask implements TaskService.GetTask
func (s *taskServiceImpl) GetTask(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	task, err := s.taskStore.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrTaskNotFound) {
			log.Debug("task not found", slog.String("task_id", id.String()))
			return nil, ErrTaskNotFound
		}
		log.Error("failed to get task",
			slog.String("error", err.Error()),
			slog.String("task_id", id.String()))
		return nil, NewTaskServiceError("get_task", "failed to load task", err)
	}

	return task, nil
}

// UpdateTask implements TaskService.UpdateTask
func (s *taskServiceImpl) UpdateTask(
	ctx context.Context,
	id uuid.UUID,
	input TaskInput,
) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	task, err := s.taskStore.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrTaskNotFound) {
			log.Debug("task not found for update", slog.String("task_id", id.String()))
			return nil, ErrTaskNotFound
		}
		log.Error("failed to load task for update",
			slog.String("error", err.Error()),
			slog.String("task_id", id.String()))
		return nil, NewTaskServiceError("update_task", "failed to load task", err)
	}

	// Full overwrite for title, description, priority and due date; an
	// omitted optional field clears the stored value. Status is the one
	// exception: it is only replaced when the input carries it.
	task.Title = input.Title
	task.Description = input.Description
	if input.Status != "" {
		task.Status = input.Status
	}
	task.Priority = input.Priority
	task.DueDate = input.DueDate
	task.UpdatedAt = time.Now().UTC()

	if err := task.Validate(); err != nil {
		log.Warn("invalid task input for update",
			slog.String("error", err.Error()),
			slog.String("task_id", id.String()))
		return nil, NewTaskServiceError("update_task", "invalid task input", err)
	}

	if err := s.taskStore.Update(ctx, task); err != nil {
		if errors.Is(err, store.ErrTaskNotFound) {
			// The task vanished between the read and the write; surface the
			// same not-found the caller would have seen on the read.
			return nil, ErrTaskNotFound
		}
		log.Error("failed to update task",
			slog.String("error", err.Error()),
			slog.String("task_id", id.String()))
		return nil, NewTaskServiceError("update_task", "failed to save task", err)
	}

	log.Info("task updated",
		slog.String("task_id", task.ID.String()),
		slog.String("status", string(task.Status)))
	return task, nil
}

// DeleteTask implements TaskService.DeleteTask
func (s *taskServiceImpl) DeleteTask(
	ctx context.Context,
	id uuid.UUID,
) (*DeleteTaskResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := s.taskStore.Delete(ctx, id); err != nil {
		if errors.Is(err, store.ErrTaskNotFound) {
			log.Debug("task not found for delete", slog.String("task_id", id.String()))
			return nil, ErrTaskNotFound
		}
		log.Error("failed to delete task",
			slog.String("error", err.Error()),
			slog.String("task_id", id.String()))
		return nil, NewTaskServiceError("delete_task", "failed to delete task", err)
	}

	log.Info("task deleted", slog.String("task_id", id.String()))
	return &DeleteTaskResult{ID: id}, nil
}
