package api

import (
	"time"
)

// Common request/response structures
//
// JSON field names are camelCase to stay wire-compatible with existing
// clients of the /api/v1/tasks surface.

// TaskRequest defines the payload for the create and update task endpoints.
// Both operations accept the same full-record shape; optional fields that
// are omitted arrive as nil pointers.
type TaskRequest struct {
	Title       string  `json:"title"                 validate:"required,min=1,max=255"`
	Description *string `json:"description,omitempty"`
	Status      *string `json:"status,omitempty"      validate:"omitempty,oneof=PENDING IN_PROGRESS COMPLETED CANCELLED"`
	Priority    *string `json:"priority,omitempty"    validate:"omitempty,oneof=LOW MEDIUM HIGH"`
	DueDate     *string `json:"dueDate,omitempty"`
}

// TaskResponse defines the task record returned by every task endpoint.
type TaskResponse struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description *string    `json:"description,omitempty"`
	Status      string     `json:"status"`
	Priority    *string    `json:"priority,omitempty"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// ListTasksMeta carries the pagination envelope for task listings.
type ListTasksMeta struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
}

// ListTasksResponse defines the successful response for the task listing endpoint.
type ListTasksResponse struct {
	Data []TaskResponse `json:"data"`
	Meta ListTasksMeta  `json:"meta"`
}

// DeleteTaskResponse acknowledges a successful delete.
type DeleteTaskResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
