package postgres

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/task-api/internal/domain"
	"github.com/phrazzld/task-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildTaskFilter(t *testing.T) {
	status := domain.TaskStatusPending
	priority := domain.TaskPriorityHigh

	tests := []struct {
		name         string
		query        store.TaskQuery
		expectedSQL  string
		expectedArgs []any
	}{
		{
			name:         "no_filters",
			query:        store.TaskQuery{},
			expectedSQL:  "",
			expectedArgs: nil,
		},
		{
			name:         "status_only",
			query:        store.TaskQuery{Status: &status},
			expectedSQL:  " WHERE status = $1",
			expectedArgs: []any{status},
		},
		{
			name:         "priority_only",
			query:        store.TaskQuery{Priority: &priority},
			expectedSQL:  " WHERE priority = $1",
			expectedArgs: []any{priority},
		},
		{
			name:         "search_only",
			query:        store.TaskQuery{Search: "report"},
			expectedSQL:  " WHERE title ILIKE $1",
			expectedArgs: []any{"%report%"},
		},
		{
			name:  "all_filters_conjoined",
			query: store.TaskQuery{Status: &status, Priority: &priority, Search: "q"},
			expectedSQL: " WHERE status = $1 AND priority = $2" +
				" AND title ILIKE $3",
			expectedArgs: []any{status, priority, "%q%"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			where, args := buildTaskFilter(tt.query)
			assert.Equal(t, tt.expectedSQL, where)
			assert.Equal(t, tt.expectedArgs, args)
		})
	}
}

func TestBuildTaskFilterEscapesNothing(t *testing.T) {
	// Wildcard characters in the search term are passed through to ILIKE
	// unescaped; a client searching for "100%" matches titles containing "100".
	where, args := buildTaskFilter(store.TaskQuery{Search: "100%"})
	assert.Equal(t, " WHERE title ILIKE $1", where)
	assert.Equal(t, []any{"%100%%"}, args)
}

func TestBuildTaskOrder(t *testing.T) {
	tests := []struct {
		name      string
		sortBy    store.TaskSortField
		sortOrder store.SortOrder
		expected  string
	}{
		{
			name:     "default_when_unset",
			expected: "created_at DESC",
		},
		{
			name:     "unknown_field_falls_back",
			sortBy:   "owner",
			expected: "created_at DESC",
		},
		{
			name:      "invalid_order_falls_back_entirely",
			sortBy:    store.TaskSortTitle,
			sortOrder: "sideways",
			expected:  "created_at DESC",
		},
		{
			name:     "title_defaults_to_ascending",
			sortBy:   store.TaskSortTitle,
			expected: "title ASC",
		},
		{
			name:      "status_descending",
			sortBy:    store.TaskSortStatus,
			sortOrder: store.SortDesc,
			expected:  "status DESC",
		},
		{
			name:      "created_at_ascending",
			sortBy:    store.TaskSortCreatedAt,
			sortOrder: store.SortAsc,
			expected:  "created_at ASC",
		},
		{
			name:      "nullable_priority_ascending_nulls_last",
			sortBy:    store.TaskSortPriority,
			sortOrder: store.SortAsc,
			expected:  "priority ASC NULLS LAST",
		},
		{
			name:      "nullable_priority_descending_nulls_first",
			sortBy:    store.TaskSortPriority,
			sortOrder: store.SortDesc,
			expected:  "priority DESC NULLS FIRST",
		},
		{
			name:      "nullable_due_date_ascending_nulls_last",
			sortBy:    store.TaskSortDueDate,
			sortOrder: store.SortAsc,
			expected:  "due_date ASC NULLS LAST",
		},
		{
			name:      "nullable_due_date_descending_nulls_first",
			sortBy:    store.TaskSortDueDate,
			sortOrder: store.SortDesc,
			expected:  "due_date DESC NULLS FIRST",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query := store.TaskQuery{SortBy: tt.sortBy, SortOrder: tt.sortOrder}
			assert.Equal(t, tt.expected, buildTaskOrder(query))
		})
	}
}

// fakeRow implements rowScanner with canned column values.
type fakeRow struct {
	values []any
}

func (r fakeRow) Scan(dest ...any) error {
	for i, d := range dest {
		switch target := d.(type) {
		case *uuid.UUID:
			*target = r.values[i].(uuid.UUID)
		case *string:
			*target = r.values[i].(string)
		case *time.Time:
			*target = r.values[i].(time.Time)
		default:
			// sql.Null* types implement sql.Scanner
			if scanner, ok := d.(interface{ Scan(any) error }); ok {
				if err := scanner.Scan(r.values[i]); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func TestScanTask(t *testing.T) {
	id := uuid.New()
	created := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	updated := created.Add(time.Hour)
	due := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)

	t.Run("all_columns_present", func(t *testing.T) {
		row := fakeRow{values: []any{
			id, "Ship the release", "notes", "IN_PROGRESS", "HIGH", due, created, updated,
		}}

		task, err := scanTask(row)
		require.NoError(t, err)

		assert.Equal(t, id, task.ID)
		assert.Equal(t, "Ship the release", task.Title)
		require.NotNil(t, task.Description)
		assert.Equal(t, "notes", *task.Description)
		assert.Equal(t, domain.TaskStatusInProgress, task.Status)
		require.NotNil(t, task.Priority)
		assert.Equal(t, domain.TaskPriorityHigh, *task.Priority)
		require.NotNil(t, task.DueDate)
		assert.True(t, task.DueDate.Equal(due))
		assert.True(t, task.CreatedAt.Equal(created))
		assert.True(t, task.UpdatedAt.Equal(updated))
	})

	t.Run("null_optionals_become_nil", func(t *testing.T) {
		row := fakeRow{values: []any{
			id, "Bare task", nil, "PENDING", nil, nil, created, created,
		}}

		task, err := scanTask(row)
		require.NoError(t, err)

		assert.Nil(t, task.Description)
		assert.Nil(t, task.Priority)
		assert.Nil(t, task.DueDate)
		assert.Equal(t, domain.TaskStatusPending, task.Status)
	})
}

func TestPriorityValue(t *testing.T) {
	assert.Nil(t, priorityValue(nil))

	priority := domain.TaskPriorityMedium
	assert.Equal(t, "MEDIUM", priorityValue(&priority))
}

func TestNewPostgresTaskStorePanicsOnNilDB(t *testing.T) {
	assert.Panics(t, func() {
		NewPostgresTaskStore(nil, nil)
	})
}
