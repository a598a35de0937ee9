package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/phrazzld/task-api/internal/domain"
	"github.com/phrazzld/task-api/internal/platform/logger"
	"github.com/phrazzld/task-api/internal/store"
)

// sortColumns whitelists the task columns exposed for sorting. Requests
// naming any other field fall back to the default ordering.
var sortColumns = map[store.TaskSortField]string{
	store.TaskSortTitle:     "title",
	store.TaskSortStatus:    "status",
	store.TaskSortPriority:  "priority",
	store.TaskSortDueDate:   "due_date",
	store.TaskSortCreatedAt: "created_at",
}

// nullableSortColumns are the sortable columns that may hold NULL. Rows with
// NULL in the sort key always sort to the end of the requested traversal:
// NULLS LAST when ascending, NULLS FIRST when descending.
var nullableSortColumns = map[store.TaskSortField]bool{
	store.TaskSortPriority: true,
	store.TaskSortDueDate:  true,
}

// PostgresTaskStore implements the store.TaskStore interface
// using a PostgreSQL database as the storage backend.
type PostgresTaskStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresTaskStore creates a new PostgreSQL implementation of the TaskStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresTaskStore(db store.DBTX, logger *slog.Logger) *PostgresTaskStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresTaskStore{
		db:     db,
		logger: logger.With(slog.String("component", "task_store")),
	}
}

// Ensure PostgresTaskStore implements store.TaskStore interface
var _ store.TaskStore = (*PostgresTaskStore)(nil)

// Create implements store.TaskStore.Create
// It saves a new task to the database, handling domain validation.
// Returns validation errors from the domain Task if data is invalid.
func (s *PostgresTaskStore) Create(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		log.Warn("task validation failed during create",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()))
		return err
	}

	query := `
		INSERT INTO tasks (id, title, description, status, priority, due_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		task.ID,
		task.Title,
		task.Description,
		task.Status,
		priorityValue(task.Priority),
		task.DueDate,
		task.CreatedAt,
		task.UpdatedAt,
	)

	if err != nil {
		log.Error("failed to create task",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()))
		return MapError(err)
	}

	log.Info("task created successfully",
		slog.String("task_id", task.ID.String()),
		slog.String("status", string(task.Status)))
	return nil
}

// GetByID implements store.TaskStore.GetByID
// It retrieves a task by its unique ID.
// Returns store.ErrTaskNotFound if the task does not exist.
func (s *PostgresTaskStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	log.Debug("retrieving task by ID", slog.String("task_id", id.String()))

	query := `
		SELECT id, title, description, status, priority, due_date, created_at, updated_at
		FROM tasks
		WHERE id = $1
	`

	task, err := scanTask(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("task not found", slog.String("task_id", id.String()))
			return nil, store.ErrTaskNotFound
		}
		log.Error("failed to get task by ID",
			slog.String("error", err.Error()),
			slog.String("task_id", id.String()))
		return nil, MapError(err)
	}

	log.Debug("task retrieved successfully",
		slog.String("task_id", id.String()),
		slog.String("status", string(task.Status)))
	return task, nil
}

// Update implements store.TaskStore.Update
// It overwrites every mutable column from the given task, writing NULL for
// optional fields that are nil. Returns store.ErrTaskNotFound if the task
// does not exist.
func (s *PostgresTaskStore) Update(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		log.Warn("task validation failed during update",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()))
		return err
	}

	query := `
		UPDATE tasks
		SET title = $1, description = $2, status = $3, priority = $4, due_date = $5, updated_at = $6
		WHERE id = $7
	`

	result, err := s.db.ExecContext(
		ctx,
		query,
		task.Title,
		task.Description,
		task.Status,
		priorityValue(task.Priority),
		task.DueDate,
		task.UpdatedAt,
		task.ID,
	)

	if err != nil {
		log.Error("failed to update task",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, "task"); err != nil {
		if IsNotFoundError(err) {
			log.Debug("task not found for update",
				slog.String("task_id", task.ID.String()))
			return store.ErrTaskNotFound
		}
		return err
	}

	log.Info("task updated successfully",
		slog.String("task_id", task.ID.String()),
		slog.String("status", string(task.Status)))
	return nil
}

// Delete implements store.TaskStore.Delete
// It removes a task permanently.
// Returns store.ErrTaskNotFound if the task does not exist.
func (s *PostgresTaskStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete task",
			slog.String("error", err.Error()),
			slog.String("task_id", id.String()))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, "task"); err != nil {
		if IsNotFoundError(err) {
			log.Debug("task not found for delete", slog.String("task_id", id.String()))
			return store.ErrTaskNotFound
		}
		return err
	}

	log.Info("task deleted successfully", slog.String("task_id", id.String()))
	return nil
}

// List implements store.TaskStore.List
// It returns one page of the filtered, sorted task collection along with the
// total count of matching rows (counted before pagination).
func (s *PostgresTaskStore) List(ctx context.Context, query store.TaskQuery) (*store.TaskPage, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query = query.Normalize()

	where, args := buildTaskFilter(query)

	log.Debug("listing tasks",
		slog.Int("page", query.Page),
		slog.Int("limit", query.Limit),
		slog.String("sort_by", string(query.SortBy)),
		slog.String("sort_order", string(query.SortOrder)))

	// Total matches the filters regardless of page/limit
	var total int64
	countQuery := "SELECT COUNT(*) FROM tasks" + where
	if err := s.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		log.Error("failed to count tasks", slog.String("error", err.Error()))
		return nil, MapError(err)
	}

	listQuery := fmt.Sprintf(
		"SELECT id, title, description, status, priority, due_date, created_at, updated_at FROM tasks%s ORDER BY %s LIMIT $%d OFFSET $%d",
		where,
		buildTaskOrder(query),
		len(args)+1,
		len(args)+2,
	)
	args = append(args, query.Limit, query.Offset())

	rows, err := s.db.QueryContext(ctx, listQuery, args...)
	if err != nil {
		log.Error("failed to query tasks", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	tasks := []*domain.Task{}
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			log.Error("failed to scan task row", slog.String("error", err.Error()))
			return nil, err
		}
		tasks = append(tasks, task)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows", slog.String("error", err.Error()))
		return nil, MapError(err)
	}

	log.Debug("listed tasks",
		slog.Int("count", len(tasks)),
		slog.Int64("total", total))

	return &store.TaskPage{
		Tasks: tasks,
		Page:  query.Page,
		Limit: query.Limit,
		Total: total,
	}, nil
}

// buildTaskFilter renders the conjunctive WHERE clause for a query along
// with its positional arguments. An empty clause is returned when no filter
// is set.
func buildTaskFilter(query store.TaskQuery) (string, []any) {
	var conditions []string
	var args []any

	if query.Status != nil {
		args = append(args, *query.Status)
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}

	if query.Priority != nil {
		args = append(args, *query.Priority)
		conditions = append(conditions, fmt.Sprintf("priority = $%d", len(args)))
	}

	if query.Search != "" {
		args = append(args, "%"+query.Search+"%")
		conditions = append(conditions, fmt.Sprintf("title ILIKE $%d", len(args)))
	}

	if len(conditions) == 0 {
		return "", nil
	}

	return " WHERE " + strings.Join(conditions, " AND "), args
}

// buildTaskOrder renders the ORDER BY expression for a query. Unrecognized
// sort fields fall back to created_at DESC; an omitted sort order defaults
// to ascending for a recognized field.
func buildTaskOrder(query store.TaskQuery) string {
	column, ok := sortColumns[query.SortBy]
	if !ok || (query.SortOrder != "" && query.SortOrder != store.SortAsc && query.SortOrder != store.SortDesc) {
		return "created_at DESC"
	}

	direction := "ASC"
	if query.SortOrder == store.SortDesc {
		direction = "DESC"
	}

	if nullableSortColumns[query.SortBy] {
		nulls := "NULLS LAST"
		if direction == "DESC" {
			nulls = "NULLS FIRST"
		}
		return fmt.Sprintf("%s %s %s", column, direction, nulls)
	}

	return fmt.Sprintf("%s %s", column, direction)
}

// rowScanner abstracts *sql.Row and *sql.Rows for scanTask.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanTask reads one task row in SELECT column order, converting nullable
// columns into the domain's pointer fields.
func scanTask(row rowScanner) (*domain.Task, error) {
	var task domain.Task
	var status string
	var description sql.NullString
	var priority sql.NullString
	var dueDate sql.NullTime

	err := row.Scan(
		&task.ID,
		&task.Title,
		&description,
		&status,
		&priority,
		&dueDate,
		&task.CreatedAt,
		&task.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	task.Status = domain.TaskStatus(status)
	if description.Valid {
		task.Description = &description.String
	}
	if priority.Valid {
		p := domain.TaskPriority(priority.String)
		task.Priority = &p
	}
	if dueDate.Valid {
		due := dueDate.Time.UTC()
		task.DueDate = &due
	}

	return &task, nil
}

// priorityValue converts an optional priority into a driver value, keeping
// NULL for tasks without one.
func priorityValue(priority *domain.TaskPriority) any {
	if priority == nil {
		return nil
	}
	return string(*priority)
}
