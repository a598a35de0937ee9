package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/task-api/internal/domain"
)

// TaskSortField identifies a column tasks can be ordered by.
type TaskSortField string

// Sortable task fields
const (
	TaskSortTitle     TaskSortField = "title"
	TaskSortStatus    TaskSortField = "status"
	TaskSortPriority  TaskSortField = "priority"
	TaskSortDueDate   TaskSortField = "dueDate"
	TaskSortCreatedAt TaskSortField = "createdAt"
)

// SortOrder is the direction of a sort.
type SortOrder string

// Sort directions
const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// Default pagination values applied when a query omits them.
const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// TaskQuery describes a filtered, sorted, paginated view over the task
// collection. All filters are conjunctive; an omitted filter means no
// restriction. Page and Limit are assumed to be positive; callers are
// responsible for validating raw input before building a TaskQuery.
type TaskQuery struct {
	Page      int
	Limit     int
	Status    *domain.TaskStatus
	Priority  *domain.TaskPriority
	Search    string
	SortBy    TaskSortField
	SortOrder SortOrder
}

// Normalize fills in default page and limit values for a query that
// omitted them (zero values).
func (q TaskQuery) Normalize() TaskQuery {
	if q.Page < 1 {
		q.Page = DefaultPage
	}
	if q.Limit < 1 {
		q.Limit = DefaultLimit
	}
	return q
}

// Offset returns the number of records to skip for the query's page.
func (q TaskQuery) Offset() int {
	return (q.Page - 1) * q.Limit
}

// TaskPage is one page of a filtered, sorted task listing. Total is the
// number of records matching the filters before pagination was applied.
type TaskPage struct {
	Tasks []*domain.Task
	Page  int
	Limit int
	Total int64
}

// TaskStore defines the persistence operations for tasks.
type TaskStore interface {
	// Create saves a new task.
	// Returns validation errors if the task data is invalid.
	Create(ctx context.Context, task *domain.Task) error

	// GetByID retrieves a task by its unique ID.
	// Returns ErrTaskNotFound if the task does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error)

	// Update saves changes to an existing task. Every mutable column is
	// overwritten from the given task, including nil optional fields.
	// Returns ErrTaskNotFound if the task does not exist.
	Update(ctx context.Context, task *domain.Task) error

	// Delete removes a task permanently.
	// Returns ErrTaskNotFound if the task does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// List returns the page of tasks selected by the query along with the
	// total count of matching records. An empty page is not an error.
	List(ctx context.Context, query TaskQuery) (*TaskPage, error)
}
