package handlers

import (
	"errors"
	"net/http"
	"testing"

	"ticket-booking/internal/status"

	"github.com/pocketbase/pocketbase/tools/router"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApiError_StatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"not found", status.NotFound("Event not found."), http.StatusNotFound, "Event not found."},
		{"forbidden", status.Forbidden("Not your booking."), http.StatusForbidden, "Not your booking."},
		{"invalid", status.Invalid("Quantity must be at least 1."), http.StatusBadRequest, "Quantity must be at least 1."},
		{"unavailable", status.Unavailable("No seats available."), http.StatusBadRequest, "No seats available."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var apiErr *router.ApiError
			require.ErrorAs(t, apiError(tt.err), &apiErr)

			assert.Equal(t, tt.wantStatus, apiErr.Status)
			assert.Equal(t, tt.wantMsg, apiErr.Message)
		})
	}
}

func TestApiError_UnexpectedError(t *testing.T) {
	var apiErr *router.ApiError
	require.ErrorAs(t, apiError(errors.New("disk full")), &apiErr)

	assert.Equal(t, http.StatusInternalServerError, apiErr.Status)
	// Internal details never leak to the client.
	assert.NotContains(t, apiErr.Message, "disk full")
}
