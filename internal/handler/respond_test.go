package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DenisMurerwa/EBU/internal/repository"
	"github.com/DenisMurerwa/EBU/internal/service"
)

func TestWriteServiceErrorStatusMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", service.ErrInvalidPhone, http.StatusBadRequest},
		{"wrapped validation", service.ErrInvalidDelta, http.StatusBadRequest},
		{"bad credentials", service.ErrInvalidCredentials, http.StatusUnauthorized},
		{"dead session", service.ErrSessionExpired, http.StatusUnauthorized},
		{"missing user", repository.ErrUserNotFound, http.StatusNotFound},
		{"missing record", repository.ErrSalesRecordNotFound, http.StatusNotFound},
		{"duplicate phone", repository.ErrDuplicatePhone, http.StatusConflict},
		{"duplicate national id", repository.ErrDuplicateNationalID, http.StatusConflict},
		{"storage failure", errors.New("connection refused"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeServiceError(rec, tt.err)

			assert.Equal(t, tt.want, rec.Code)

			var resp APIResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.False(t, resp.Success)
			assert.NotEmpty(t, resp.Error)
		})
	}
}

func TestWriteServiceErrorHidesInternalDetail(t *testing.T) {
	rec := httptest.NewRecorder()
	writeServiceError(rec, errors.New("dial tcp 10.0.0.3:5432: connection refused"))

	var resp APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "internal error", resp.Error)
}
