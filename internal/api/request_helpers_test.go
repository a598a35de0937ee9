package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/task-api/internal/domain"
)

func TestParseDueDate(t *testing.T) {
	t.Parallel()

	t.Run("full RFC 3339 timestamp", func(t *testing.T) {
		due, err := parseDueDate("2025-06-15T14:30:00+02:00")
		require.NoError(t, err)
		assert.Equal(t, time.Date(2025, 6, 15, 12, 30, 0, 0, time.UTC), due)
	})

	t.Run("bare date normalizes to midnight UTC", func(t *testing.T) {
		due, err := parseDueDate("2025-06-15")
		require.NoError(t, err)
		assert.Equal(t, time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC), due)
	})

	t.Run("unparseable input is an invalid format error", func(t *testing.T) {
		_, err := parseDueDate("15/06/2025")
		assert.ErrorIs(t, err, domain.ErrInvalidFormat)

		_, err = parseDueDate("soon")
		assert.ErrorIs(t, err, domain.ErrInvalidFormat)
	})
}

func TestParsePositiveIntParam(t *testing.T) {
	t.Parallel()

	newRequest := func(query string) *http.Request {
		return httptest.NewRequest(http.MethodGet, "/tasks?"+query, nil)
	}

	t.Run("absent parameter returns fallback", func(t *testing.T) {
		value, err := parsePositiveIntParam(newRequest(""), "page", 1)
		require.NoError(t, err)
		assert.Equal(t, 1, value)
	})

	t.Run("valid value passes through", func(t *testing.T) {
		value, err := parsePositiveIntParam(newRequest("page=7"), "page", 1)
		require.NoError(t, err)
		assert.Equal(t, 7, value)
	})

	t.Run("non-numeric value is a validation error", func(t *testing.T) {
		_, err := parsePositiveIntParam(newRequest("page=seven"), "page", 1)
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("zero and negative values are validation errors", func(t *testing.T) {
		_, err := parsePositiveIntParam(newRequest("limit=0"), "limit", 10)
		assert.ErrorIs(t, err, domain.ErrValidation)

		_, err = parsePositiveIntParam(newRequest("limit=-5"), "limit", 10)
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}
