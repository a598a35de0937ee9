package domain

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestNewTask(t *testing.T) {
	t.Parallel() // Enable parallel execution
	// Test valid task creation with all fields
	title := "Write release notes"
	description := "Cover the pagination changes"
	priority := TaskPriorityHigh
	due := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	task, err := NewTask(title, &description, TaskStatusInProgress, &priority, &due)

	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if task.ID == uuid.Nil {
		t.Error("Expected non-nil UUID, got nil UUID")
	}

	if task.Title != title {
		t.Errorf("Expected title %s, got %s", title, task.Title)
	}

	if task.Description == nil || *task.Description != description {
		t.Errorf("Expected description %s, got %v", description, task.Description)
	}

	if task.Status != TaskStatusInProgress {
		t.Errorf("Expected status %s, got %s", TaskStatusInProgress, task.Status)
	}

	if task.Priority == nil || *task.Priority != priority {
		t.Errorf("Expected priority %s, got %v", priority, task.Priority)
	}

	if task.DueDate == nil || !task.DueDate.Equal(due) {
		t.Errorf("Expected due date %s, got %v", due, task.DueDate)
	}

	if task.CreatedAt.IsZero() {
		t.Error("Expected non-zero CreatedAt time")
	}

	if !task.CreatedAt.Equal(task.UpdatedAt) {
		t.Error("Expected CreatedAt and UpdatedAt to match on creation")
	}

	// Test status defaulting: an omitted status becomes pending
	task, err = NewTask(title, nil, "", nil, nil)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if task.Status != TaskStatusPending {
		t.Errorf("Expected status %s, got %s", TaskStatusPending, task.Status)
	}
	if task.Description != nil {
		t.Errorf("Expected nil description, got %v", task.Description)
	}
	if task.Priority != nil {
		t.Errorf("Expected nil priority, got %v", task.Priority)
	}
	if task.DueDate != nil {
		t.Errorf("Expected nil due date, got %v", task.DueDate)
	}

	// Test invalid title
	_, err = NewTask("", nil, "", nil, nil)
	if err != ErrEmptyTaskTitle {
		t.Errorf("Expected error %v, got %v", ErrEmptyTaskTitle, err)
	}

	// Test invalid status
	_, err = NewTask(title, nil, "NOT_A_STATUS", nil, nil)
	if err != ErrInvalidTaskStatus {
		t.Errorf("Expected error %v, got %v", ErrInvalidTaskStatus, err)
	}

	// Test invalid priority
	badPriority := TaskPriority("URGENT")
	_, err = NewTask(title, nil, "", &badPriority, nil)
	if err != ErrInvalidTaskPriority {
		t.Errorf("Expected error %v, got %v", ErrInvalidTaskPriority, err)
	}
}

func TestTaskValidate(t *testing.T) {
	t.Parallel() // Enable parallel execution
	validTask := Task{
		ID:     uuid.New(),
		Title:  "Test task",
		Status: TaskStatusPending,
	}

	// Test valid task
	if err := validTask.Validate(); err != nil {
		t.Errorf("Expected no error, got %v", err)
	}

	// Test invalid ID
	invalidTask := validTask
	invalidTask.ID = uuid.Nil
	if err := invalidTask.Validate(); err != ErrEmptyTaskID {
		t.Errorf("Expected error %v, got %v", ErrEmptyTaskID, err)
	}

	// Test empty title
	invalidTask = validTask
	invalidTask.Title = ""
	if err := invalidTask.Validate(); err != ErrEmptyTaskTitle {
		t.Errorf("Expected error %v, got %v", ErrEmptyTaskTitle, err)
	}

	// Test title at the length boundary
	boundaryTask := validTask
	boundaryTask.Title = strings.Repeat("a", MaxTaskTitleLength)
	if err := boundaryTask.Validate(); err != nil {
		t.Errorf("Expected no error for title at max length, got %v", err)
	}

	// Test title over the length boundary
	invalidTask = validTask
	invalidTask.Title = strings.Repeat("a", MaxTaskTitleLength+1)
	if err := invalidTask.Validate(); err != ErrTaskTitleTooLong {
		t.Errorf("Expected error %v, got %v", ErrTaskTitleTooLong, err)
	}

	// Test invalid status
	invalidTask = validTask
	invalidTask.Status = "invalid_status"
	if err := invalidTask.Validate(); err != ErrInvalidTaskStatus {
		t.Errorf("Expected error %v, got %v", ErrInvalidTaskStatus, err)
	}

	// Test invalid priority
	invalidTask = validTask
	badPriority := TaskPriority("invalid_priority")
	invalidTask.Priority = &badPriority
	if err := invalidTask.Validate(); err != ErrInvalidTaskPriority {
		t.Errorf("Expected error %v, got %v", ErrInvalidTaskPriority, err)
	}
}

func TestIsValidTaskStatus(t *testing.T) {
	t.Parallel() // Enable parallel execution
	valid := []TaskStatus{
		TaskStatusPending,
		TaskStatusInProgress,
		TaskStatusCompleted,
		TaskStatusCancelled,
	}
	for _, status := range valid {
		if !IsValidTaskStatus(status) {
			t.Errorf("Expected status %s to be valid", status)
		}
	}

	invalid := []TaskStatus{"", "pending", "DONE", "IN PROGRESS"}
	for _, status := range invalid {
		if IsValidTaskStatus(status) {
			t.Errorf("Expected status %q to be invalid", status)
		}
	}
}

func TestIsValidTaskPriority(t *testing.T) {
	t.Parallel() // Enable parallel execution
	valid := []TaskPriority{TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh}
	for _, priority := range valid {
		if !IsValidTaskPriority(priority) {
			t.Errorf("Expected priority %s to be valid", priority)
		}
	}

	invalid := []TaskPriority{"", "low", "URGENT", "CRITICAL"}
	for _, priority := range invalid {
		if IsValidTaskPriority(priority) {
			t.Errorf("Expected priority %q to be invalid", priority)
		}
	}
}
