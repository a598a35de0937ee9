package api

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/task-api/internal/domain"
)

// getPathUUID extracts a UUID from the URL path parameters.
// It parses and validates the UUID, handling common error cases.
func getPathUUID(r *http.Request, paramName string) (uuid.UUID, error) {
	pathParam := chi.URLParam(r, paramName)
	if pathParam == "" {
		return uuid.Nil, fmt.Errorf("%w: %s is required", domain.ErrValidation, paramName)
	}

	id, err := uuid.Parse(pathParam)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %s has invalid format", domain.ErrInvalidID, paramName)
	}

	return id, nil
}

// parsePositiveIntParam reads an optional positive integer query parameter,
// returning the fallback when the parameter is absent. Non-numeric or
// non-positive values are validation errors.
func parsePositiveIntParam(r *http.Request, name string, fallback int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, nil
	}

	value, err := strconv.Atoi(raw)
	if err != nil || value < 1 {
		return 0, fmt.Errorf("%w: %s must be a positive integer", domain.ErrValidation, name)
	}

	return value, nil
}

// parseDueDate converts a request's due date string into a UTC timestamp.
// Both full RFC 3339 timestamps and bare dates (2006-01-02, normalized to
// midnight UTC) are accepted, matching what existing clients send.
func parseDueDate(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC(), nil
	}

	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t.UTC(), nil
	}

	return time.Time{}, fmt.Errorf("%w: dueDate must be an ISO-8601 date", domain.ErrInvalidFormat)
}
